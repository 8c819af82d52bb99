package controllers

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/dineboard/reservation-app/availability"
	"github.com/dineboard/reservation-app/events"
	"github.com/dineboard/reservation-app/models"
	"github.com/dineboard/reservation-app/services"
	"github.com/dineboard/reservation-app/utils"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type ReservationController struct {
	DB       *gorm.DB
	Engine   *availability.Engine
	Notifier *services.Notifier
}

func NewReservationController(db *gorm.DB) *ReservationController {
	return &ReservationController{
		DB:       db,
		Engine:   availability.NewEngine(utils.ErrorLogger),
		Notifier: services.NewNotifier(db),
	}
}

// loadBusiness mengambil profil bisnis (aplikasi single-tenant).
func loadBusiness(db *gorm.DB) (models.Business, error) {
	var business models.Business
	err := db.First(&business).Error
	return business, err
}

func businessID(db *gorm.DB) uint {
	business, err := loadBusiness(db)
	if err != nil {
		return 0
	}
	return business.ID
}

// reservationsInRange menyusun query reservasi satu rentang waktu. Dengan
// lock=true baris-barisnya di-SELECT ... FOR UPDATE sehingga dua booking
// bersamaan untuk tanggal yang sama saling menunggu, bukan sama-sama lolos
// re-check. sqlite (dipakai test) tidak mengenal FOR UPDATE dan memang
// hanya mengizinkan satu penulis.
func reservationsInRange(db *gorm.DB, businessID uint, from, to time.Time, lock bool) *gorm.DB {
	query := db.Where("business_id = ? AND starts_at >= ? AND starts_at < ?",
		businessID, from.UTC(), to.UTC())
	if lock && db.Dialector.Name() != "sqlite" {
		query = query.Clauses(clause.Locking{Strength: "UPDATE"})
	}
	return query
}

// engineRequest mengumpulkan seluruh input engine untuk satu tanggal:
// settings, reservasi yang overlap tanggal lokal tsb, dan tipe meja.
// Engine sendiri tidak pernah menyentuh database (dependency injection).
// lockReservations dipakai jalur tulis booking (lihat reservationsInRange).
func (rc *ReservationController) engineRequest(db *gorm.DB, business models.Business, date time.Time, partySize int, lockReservations bool) (availability.Request, error) {
	loc, err := availability.Location(business.Timezone)
	if err != nil {
		return availability.Request{}, err
	}

	var settings []models.ReservationSetting
	if err := db.Preload("CapacitySettings").
		Where("business_id = ?", business.ID).
		Find(&settings).Error; err != nil {
		return availability.Request{}, err
	}

	// Ambil reservasi dalam rentang UTC yang menutupi tanggal lokal;
	// filter per-tanggal-lokal final dilakukan engine lewat normalizer.
	dayStart := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, loc)
	dayEnd := dayStart.AddDate(0, 0, 1)

	var reservations []models.Reservation
	if err := reservationsInRange(db, business.ID, dayStart, dayEnd, lockReservations).
		Find(&reservations).Error; err != nil {
		return availability.Request{}, err
	}

	var tableTypes []models.TableType
	if err := db.Where("business_id = ?", business.ID).Find(&tableTypes).Error; err != nil {
		return availability.Request{}, err
	}

	return availability.Request{
		Date:         date,
		PartySize:    partySize,
		Timezone:     business.Timezone,
		Settings:     settings,
		Reservations: reservations,
		TableTypes:   tableTypes,
	}, nil
}

// GetAvailability -> daftar slot untuk tanggal + jumlah orang.
// GET /availability?date=2006-01-02&party_size=N
func (rc *ReservationController) GetAvailability(c *gin.Context) {
	dateStr := c.Query("date")
	date, err := time.Parse("2006-01-02", dateStr)
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, errors.New("date must be formatted YYYY-MM-DD"))
		return
	}

	partySize, err := strconv.Atoi(c.DefaultQuery("party_size", "2"))
	if err != nil || partySize < 1 {
		utils.RespondError(c, http.StatusBadRequest, errors.New("party_size must be a positive number"))
		return
	}

	business, err := loadBusiness(rc.DB)
	if err != nil {
		utils.RespondError(c, http.StatusInternalServerError, errors.New("business profile not configured"))
		return
	}

	// Batas booking ke depan di-enforce di sini, bukan di engine.
	if err := rc.checkAdvanceBound(business, date); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	req, err := rc.engineRequest(rc.DB, business, date, partySize, false)
	if err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	slots, err := rc.Engine.DailySlots(req)
	if err != nil {
		if errors.Is(err, availability.ErrInvalidTimezone) || errors.Is(err, availability.ErrAmbiguousSettings) {
			utils.RespondError(c, http.StatusInternalServerError, err)
			return
		}
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Available time slots", gin.H{
		"date":       dateStr,
		"party_size": partySize,
		"slots":      slots,
	})
}

func (rc *ReservationController) checkAdvanceBound(business models.Business, date time.Time) error {
	if business.MaxBookingAdvanceHours <= 0 {
		return nil
	}
	loc, err := availability.Location(business.Timezone)
	if err != nil {
		return err
	}
	dayStart := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, loc)
	now := time.Now().In(loc)
	if dayStart.Before(availability.BusinessDate(now, loc)) {
		return errors.New("date is in the past")
	}
	limit := now.Add(time.Duration(business.MaxBookingAdvanceHours) * time.Hour)
	if dayStart.After(limit) {
		return ErrTooFarInAdvance
	}
	return nil
}

// CreateReservation -> booking baru. Ketersediaan dicek ulang di dalam
// transaction supaya dua request bersamaan tidak double-book slot yang sama.
func (rc *ReservationController) CreateReservation(c *gin.Context) {
	var req struct {
		Date       string `json:"date" binding:"required"`       // "2006-01-02"
		StartTime  string `json:"start_time" binding:"required"` // "HH:MM"
		PartySize  int    `json:"party_size" binding:"required,min=1"`
		CustomerID *uint  `json:"customer_id"`
		Notes      string `json:"notes"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	date, err := time.Parse("2006-01-02", req.Date)
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, errors.New("date must be formatted YYYY-MM-DD"))
		return
	}
	startMinute, err := availability.ParseClock(req.StartTime)
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	business, err := loadBusiness(rc.DB)
	if err != nil {
		utils.RespondError(c, http.StatusInternalServerError, errors.New("business profile not configured"))
		return
	}
	if err := rc.checkAdvanceBound(business, date); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	loc, err := availability.Location(business.Timezone)
	if err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	if req.CustomerID != nil {
		var customer models.Customer
		if err := rc.DB.First(&customer, *req.CustomerID).Error; err != nil {
			utils.RespondError(c, http.StatusNotFound, errors.New("customer not found"))
			return
		}
	}

	var reservation models.Reservation
	err = rc.DB.Transaction(func(tx *gorm.DB) error {
		engineReq, err := rc.engineRequest(tx, business, date, req.PartySize, true)
		if err != nil {
			return err
		}

		slots, err := rc.Engine.DailySlots(engineReq)
		if err != nil {
			return err
		}
		if len(slots) == 0 {
			return ErrBusinessClosed
		}

		var chosen *availability.TimeSlot
		for i := range slots {
			if slots[i].Start == req.StartTime {
				chosen = &slots[i]
				break
			}
		}
		if chosen == nil {
			return ErrOutsideHours
		}
		if !chosen.Available {
			return ErrSlotUnavailable
		}

		endMinute, err := availability.ParseClock(chosen.End)
		if err != nil {
			return err
		}

		// Susun timestamp dari komponen wall-clock, bukan midnight+durasi:
		// di hari transisi DST keduanya beda satu jam.
		startsAt := time.Date(date.Year(), date.Month(), date.Day(),
			startMinute/60, startMinute%60, 0, 0, loc)
		endsAt := time.Date(date.Year(), date.Month(), date.Day(),
			endMinute/60, endMinute%60, 0, 0, loc)

		reservation = models.Reservation{
			BusinessID: business.ID,
			CustomerID: req.CustomerID,
			Code:       uuid.NewString(),
			StartsAt:   startsAt.UTC(),
			EndsAt:     endsAt.UTC(),
			PartySize:  req.PartySize,
			Status:     models.ReservationBooked,
			Notes:      req.Notes,
		}
		return tx.Create(&reservation).Error
	})
	if err != nil {
		switch {
		case errors.Is(err, ErrSlotUnavailable):
			utils.RespondError(c, http.StatusConflict, err)
		case errors.Is(err, ErrOutsideHours), errors.Is(err, ErrBusinessClosed):
			utils.RespondError(c, http.StatusBadRequest, err)
		default:
			utils.RespondError(c, http.StatusInternalServerError, err)
		}
		return
	}

	events.BroadcastReservationCreate(reservation)
	rc.Notifier.ReservationBooked(reservation)

	utils.InfoLogger.Printf("Reservation %s created: %s %s party=%d",
		reservation.Code, req.Date, req.StartTime, reservation.PartySize)
	utils.RespondJSON(c, http.StatusCreated, "Reservation created", reservation)
}

// GetAllReservations -> list reservasi, bisa difilter tanggal/status.
// GET /reservations?date=2006-01-02&status=booked
func (rc *ReservationController) GetAllReservations(c *gin.Context) {
	query := rc.DB.Preload("Customer")

	if dateStr := c.Query("date"); dateStr != "" {
		date, err := time.Parse("2006-01-02", dateStr)
		if err != nil {
			utils.RespondError(c, http.StatusBadRequest, errors.New("date must be formatted YYYY-MM-DD"))
			return
		}
		business, err := loadBusiness(rc.DB)
		if err != nil {
			utils.RespondError(c, http.StatusInternalServerError, err)
			return
		}
		loc, err := availability.Location(business.Timezone)
		if err != nil {
			utils.RespondError(c, http.StatusInternalServerError, err)
			return
		}
		dayStart := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, loc)
		query = query.Where("starts_at >= ? AND starts_at < ?",
			dayStart.UTC(), dayStart.AddDate(0, 0, 1).UTC())
	}

	if status := c.Query("status"); status != "" {
		query = query.Where("status = ?", status)
	}

	var reservations []models.Reservation
	if err := query.Order("starts_at ASC").Find(&reservations).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "List of reservations", reservations)
}

// GetReservationByID -> detail satu reservasi
func (rc *ReservationController) GetReservationByID(c *gin.Context) {
	reservationID := c.Param("reservation_id")
	var reservation models.Reservation
	if err := rc.DB.Preload("Customer").First(&reservation, reservationID).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Reservation detail", reservation)
}

// validTransitions membatasi perubahan status reservasi.
var validTransitions = map[string][]string{
	models.ReservationBooked: {models.ReservationSeated, models.ReservationCancelled, models.ReservationNoShow},
	models.ReservationSeated: {models.ReservationCompleted, models.ReservationCancelled},
}

// UpdateReservationStatus -> seat/complete/cancel/no-show
func (rc *ReservationController) UpdateReservationStatus(c *gin.Context) {
	reservationID := c.Param("reservation_id")
	var body struct {
		Status string `json:"status" binding:"required"`
	}

	if err := c.ShouldBindJSON(&body); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	var reservation models.Reservation
	if err := rc.DB.First(&reservation, reservationID).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, err)
		return
	}

	allowed := false
	for _, next := range validTransitions[reservation.Status] {
		if next == body.Status {
			allowed = true
			break
		}
	}
	if !allowed {
		utils.RespondError(c, http.StatusBadRequest, ErrInvalidTransition)
		return
	}

	reservation.Status = body.Status
	if err := rc.DB.Save(&reservation).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	if body.Status == models.ReservationCancelled {
		events.BroadcastReservationCancel(reservation)
		rc.Notifier.ReservationCancelled(reservation)
	} else {
		events.BroadcastReservationUpdate(reservation)
	}

	utils.InfoLogger.Printf("Reservation %d status changed to %s", reservation.ID, reservation.Status)
	utils.RespondJSON(c, http.StatusOK, "Reservation status updated", reservation)
}

// DeleteReservation -> hapus permanen (untuk data uji/salah input; cancel
// adalah jalur normal)
func (rc *ReservationController) DeleteReservation(c *gin.Context) {
	reservationID := c.Param("reservation_id")
	var reservation models.Reservation

	if err := rc.DB.First(&reservation, reservationID).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, err)
		return
	}

	if err := rc.DB.Delete(&reservation).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.InfoLogger.Printf("Reservation %d deleted", reservation.ID)
	utils.RespondJSON(c, http.StatusOK, "Reservation deleted", gin.H{"id": reservation.ID})
}
