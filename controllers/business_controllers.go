package controllers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/dineboard/reservation-app/availability"
	"github.com/dineboard/reservation-app/events"
	"github.com/dineboard/reservation-app/models"
	"github.com/dineboard/reservation-app/utils"
	"gorm.io/gorm"
)

type BusinessController struct {
	DB *gorm.DB
}

func NewBusinessController(db *gorm.DB) *BusinessController {
	return &BusinessController{DB: db}
}

// GetProfile -> profil bisnis (single-tenant, satu baris)
func (bc *BusinessController) GetProfile(c *gin.Context) {
	business, err := loadBusiness(bc.DB)
	if err != nil {
		utils.RespondError(c, http.StatusNotFound, errors.New("business profile not configured"))
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Business profile", business)
}

// UpsertProfile -> buat/ubah profil. Timezone divalidasi lewat normalizer
// engine supaya konfigurasi rusak ketahuan di sini, bukan saat query slot.
func (bc *BusinessController) UpsertProfile(c *gin.Context) {
	var req struct {
		Name                   string `json:"name" binding:"required"`
		Timezone               string `json:"timezone" binding:"required"`
		MaxBookingAdvanceHours int    `json:"max_booking_advance_hours"`
		Address                string `json:"address"`
		Phone                  string `json:"phone"`
		Email                  string `json:"email"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	if _, err := availability.Location(req.Timezone); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	business, err := loadBusiness(bc.DB)
	if err != nil {
		business = models.Business{}
	}

	business.Name = req.Name
	business.Timezone = req.Timezone
	if req.MaxBookingAdvanceHours > 0 {
		business.MaxBookingAdvanceHours = req.MaxBookingAdvanceHours
	}
	business.Address = req.Address
	business.Phone = req.Phone
	business.Email = req.Email

	if err := bc.DB.Save(&business).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.InfoLogger.Printf("Business profile saved: %s (tz=%s)", business.Name, business.Timezone)
	utils.RespondJSON(c, http.StatusOK, "Business profile saved", business)
}

// GetDashboardStats -> statistik reservasi hari ini untuk dashboard admin
func (bc *BusinessController) GetDashboardStats(c *gin.Context) {
	roleInterface, exists := c.Get("role")
	if !exists || roleInterface != "admin" && roleInterface != "manager" {
		utils.RespondError(c, http.StatusUnauthorized, errors.New("unauthorized access"))
		return
	}

	business, err := loadBusiness(bc.DB)
	if err != nil {
		utils.RespondError(c, http.StatusNotFound, errors.New("business profile not configured"))
		return
	}
	loc, err := availability.Location(business.Timezone)
	if err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	dayStart := availability.BusinessDate(time.Now(), loc)
	dayEnd := dayStart.AddDate(0, 0, 1)

	var stats struct {
		TotalReservations int64            `json:"total_reservations"`
		TodayReservations int64            `json:"today_reservations"`
		TodayCovers       int64            `json:"today_covers"`
		ByStatus          map[string]int64 `json:"by_status"`
	}
	stats.ByStatus = make(map[string]int64)

	bc.DB.Model(&models.Reservation{}).Count(&stats.TotalReservations)

	today := bc.DB.Model(&models.Reservation{}).
		Where("starts_at >= ? AND starts_at < ?", dayStart.UTC(), dayEnd.UTC())
	today.Count(&stats.TodayReservations)

	var covers struct{ Total int64 }
	bc.DB.Model(&models.Reservation{}).
		Select("COALESCE(SUM(party_size),0) AS total").
		Where("starts_at >= ? AND starts_at < ? AND status NOT IN ?",
			dayStart.UTC(), dayEnd.UTC(),
			[]string{models.ReservationCancelled, models.ReservationNoShow}).
		Scan(&covers)
	stats.TodayCovers = covers.Total

	for _, status := range []string{
		models.ReservationBooked, models.ReservationSeated,
		models.ReservationCompleted, models.ReservationNoShow,
		models.ReservationCancelled,
	} {
		var n int64
		bc.DB.Model(&models.Reservation{}).
			Where("starts_at >= ? AND starts_at < ? AND status = ?",
				dayStart.UTC(), dayEnd.UTC(), status).
			Count(&n)
		stats.ByStatus[status] = n
	}

	events.BroadcastDashboardUpdate(stats)

	utils.RespondJSON(c, http.StatusOK, "Dashboard stats", stats)
}
