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

type ReservationSettingController struct {
	DB *gorm.DB
}

func NewReservationSettingController(db *gorm.DB) *ReservationSettingController {
	return &ReservationSettingController{DB: db}
}

// Quantity boleh nol (hari tanpa kapasitas); `required` menolak zero value
// jadi hanya min yang dipakai.
type capacityInput struct {
	TableTypeID uint `json:"table_type_id" binding:"required"`
	Quantity    int  `json:"quantity" binding:"min=0"`
}

type settingInput struct {
	DayOfWeek    *int            `json:"day_of_week"`    // 0=Minggu .. 6=Sabtu
	SpecificDate *string         `json:"specific_date"`  // "2006-01-02"
	IsDefault    bool            `json:"is_default"`
	StartTime    string          `json:"start_time" binding:"required"`
	EndTime      string          `json:"end_time" binding:"required"`
	SlotMinutes  int             `json:"timeslot_length_minutes" binding:"required,min=1"`
	Capacity     []capacityInput `json:"capacity_settings"`
}

// buildSetting memvalidasi input dan menerjemahkannya ke model. Setting
// harus berbentuk default mingguan ATAU override tanggal, tidak dua-duanya.
func (rsc *ReservationSettingController) buildSetting(in settingInput) (*models.ReservationSetting, error) {
	if _, err := availability.ParseClock(in.StartTime); err != nil {
		return nil, err
	}
	if _, err := availability.ParseClock(in.EndTime); err != nil {
		return nil, err
	}

	setting := models.ReservationSetting{
		BusinessID:            businessID(rsc.DB),
		IsDefault:             in.IsDefault,
		StartTime:             in.StartTime,
		EndTime:               in.EndTime,
		TimeslotLengthMinutes: in.SlotMinutes,
	}

	switch {
	case in.SpecificDate != nil:
		if in.DayOfWeek != nil || in.IsDefault {
			return nil, errors.New("a date override cannot also be a weekly default")
		}
		date, err := time.Parse("2006-01-02", *in.SpecificDate)
		if err != nil {
			return nil, err
		}
		setting.SpecificDate = &date
	case in.DayOfWeek != nil:
		if *in.DayOfWeek < 0 || *in.DayOfWeek > 6 {
			return nil, errors.New("day_of_week must be between 0 and 6")
		}
		setting.DayOfWeek = in.DayOfWeek
		setting.IsDefault = true
	default:
		return nil, errors.New("either day_of_week or specific_date is required")
	}

	for _, entry := range in.Capacity {
		var tableType models.TableType
		if err := rsc.DB.First(&tableType, entry.TableTypeID).Error; err != nil {
			return nil, errors.New("capacity entry references unknown table type")
		}
		setting.CapacitySettings = append(setting.CapacitySettings, models.CapacitySetting{
			TableTypeID:   tableType.ID,
			TableTypeName: tableType.Name,
			Quantity:      entry.Quantity,
		})
	}

	return &setting, nil
}

// CreateSetting -> membuat jam operasional baru (default mingguan atau
// override tanggal)
func (rsc *ReservationSettingController) CreateSetting(c *gin.Context) {
	var in settingInput
	if err := c.ShouldBindJSON(&in); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	setting, err := rsc.buildSetting(in)
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	// Tolak duplikat pada precedence yang sama; resolver menganggapnya
	// error konfigurasi, jadi cegah dari sini.
	var count int64
	if setting.SpecificDate != nil {
		rsc.DB.Model(&models.ReservationSetting{}).
			Where("specific_date = ?", setting.SpecificDate).
			Count(&count)
	} else {
		rsc.DB.Model(&models.ReservationSetting{}).
			Where("is_default = ? AND day_of_week = ?", true, *setting.DayOfWeek).
			Count(&count)
	}
	if count > 0 {
		utils.RespondError(c, http.StatusConflict,
			errors.New("a setting already exists for that day"))
		return
	}

	if err := rsc.DB.Create(setting).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	events.BroadcastSettingUpdate(*setting)

	utils.InfoLogger.Printf("Reservation setting %d created (%s-%s, slot=%dm)",
		setting.ID, setting.StartTime, setting.EndTime, setting.TimeslotLengthMinutes)
	utils.RespondJSON(c, http.StatusCreated, "Reservation setting created", setting)
}

// GetAllSettings -> seluruh setting termasuk capacity
func (rsc *ReservationSettingController) GetAllSettings(c *gin.Context) {
	var settings []models.ReservationSetting
	if err := rsc.DB.Preload("CapacitySettings").Find(&settings).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "List of reservation settings", settings)
}

// GetSettingByID
func (rsc *ReservationSettingController) GetSettingByID(c *gin.Context) {
	settingID := c.Param("setting_id")
	var setting models.ReservationSetting
	if err := rsc.DB.Preload("CapacitySettings").First(&setting, settingID).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Reservation setting detail", setting)
}

// UpdateSetting -> mengganti isi setting (termasuk capacity) secara utuh
func (rsc *ReservationSettingController) UpdateSetting(c *gin.Context) {
	settingID := c.Param("setting_id")

	var existing models.ReservationSetting
	if err := rsc.DB.Preload("CapacitySettings").First(&existing, settingID).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, err)
		return
	}

	var in settingInput
	if err := c.ShouldBindJSON(&in); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	updated, err := rsc.buildSetting(in)
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	err = rsc.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("reservation_setting_id = ?", existing.ID).
			Delete(&models.CapacitySetting{}).Error; err != nil {
			return err
		}
		updated.ID = existing.ID
		updated.CreatedAt = existing.CreatedAt
		return tx.Save(updated).Error
	})
	if err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	events.BroadcastSettingUpdate(*updated)

	utils.InfoLogger.Printf("Reservation setting %d updated", updated.ID)
	utils.RespondJSON(c, http.StatusOK, "Reservation setting updated", updated)
}

// DeleteSetting
func (rsc *ReservationSettingController) DeleteSetting(c *gin.Context) {
	settingID := c.Param("setting_id")

	var setting models.ReservationSetting
	if err := rsc.DB.First(&setting, settingID).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, err)
		return
	}

	err := rsc.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("reservation_setting_id = ?", setting.ID).
			Delete(&models.CapacitySetting{}).Error; err != nil {
			return err
		}
		return tx.Delete(&setting).Error
	})
	if err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Reservation setting deleted", gin.H{"id": setting.ID})
}
