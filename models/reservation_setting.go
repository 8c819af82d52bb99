package models

import "time"

// ReservationSetting menentukan jam operasional reservasi untuk satu hari.
// Ada dua bentuk: default mingguan (IsDefault=true + DayOfWeek terisi) atau
// override tanggal spesifik (SpecificDate terisi, misal jam libur).
// Override selalu menang atas default untuk tanggal yang sama.
type ReservationSetting struct {
	ID                    uint       `gorm:"primaryKey" json:"id"`
	BusinessID            uint       `gorm:"not null;index" json:"business_id"`
	DayOfWeek             *int       `gorm:"type:smallint" json:"day_of_week,omitempty"` // 0=Minggu .. 6=Sabtu
	SpecificDate          *time.Time `gorm:"type:date;index" json:"specific_date,omitempty"`
	IsDefault             bool       `gorm:"not null;default:false" json:"is_default"`
	StartTime             string     `gorm:"type:varchar(5);not null" json:"start_time"` // "HH:MM"
	EndTime               string     `gorm:"type:varchar(5);not null" json:"end_time"`   // "HH:MM"
	TimeslotLengthMinutes int        `gorm:"not null" json:"timeslot_length_minutes"`

	CapacitySettings []CapacitySetting `gorm:"foreignKey:ReservationSettingID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"capacity_settings"`

	CreatedAt time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null" json:"updated_at"`
}

// CapacitySetting adalah jumlah meja per tipe yang tersedia selama window
// milik satu ReservationSetting.
type CapacitySetting struct {
	ID                   uint   `gorm:"primaryKey" json:"id"`
	ReservationSettingID uint   `gorm:"not null;index" json:"reservation_setting_id"`
	TableTypeID          uint   `gorm:"not null" json:"table_type_id"`
	TableTypeName        string `gorm:"type:varchar(100)" json:"table_type_name"`
	Quantity             int    `gorm:"not null" json:"quantity"`
}
