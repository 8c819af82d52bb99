package models

import "time"

// Business menyimpan profil restoran (satu baris per bisnis).
// Timezone dipakai oleh engine availability untuk konversi waktu lokal.
type Business struct {
	ID                      uint      `gorm:"primaryKey" json:"id"`
	Name                    string    `gorm:"type:varchar(255);not null" json:"name"`
	Timezone                string    `gorm:"type:varchar(64);not null;default:'UTC'" json:"timezone"`
	MaxBookingAdvanceHours  int       `gorm:"not null;default:720" json:"max_booking_advance_hours"`
	Address                 string    `gorm:"type:text" json:"address"`
	Phone                   string    `gorm:"type:varchar(32)" json:"phone"`
	Email                   string    `gorm:"type:varchar(255)" json:"email"`
	CreatedAt               time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt               time.Time `gorm:"not null" json:"updated_at"`
}
