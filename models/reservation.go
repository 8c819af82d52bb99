package models

import "time"

// Status lifecycle reservasi.
const (
	ReservationBooked    = "booked"
	ReservationSeated    = "seated"
	ReservationCompleted = "completed"
	ReservationNoShow    = "no_show"
	ReservationCancelled = "cancelled"
)

// Reservation menyimpan satu booking. StartsAt/EndsAt disimpan UTC;
// konversi ke tanggal lokal bisnis selalu lewat package availability.
type Reservation struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	BusinessID uint      `gorm:"not null;index" json:"business_id"`
	CustomerID *uint     `gorm:"index" json:"customer_id,omitempty"`
	Customer   *Customer `gorm:"foreignKey:CustomerID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:SET NULL" json:"customer,omitempty"`
	Code       string    `gorm:"type:varchar(36);uniqueIndex" json:"code"`
	StartsAt   time.Time `gorm:"not null;index" json:"starts_at"`
	EndsAt     time.Time `gorm:"not null" json:"ends_at"`
	PartySize  int       `gorm:"not null" json:"party_size"`
	Status     string    `gorm:"type:varchar(20);not null;default:'booked'" json:"status"`
	Notes      string    `gorm:"type:text" json:"notes"`
	CreatedAt  time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt  time.Time `gorm:"not null" json:"updated_at"`
}

// Active melaporkan apakah reservasi masih memakai kapasitas meja.
// Hanya reservasi cancelled yang melepas kapasitas.
func (r *Reservation) Active() bool {
	return r.Status != ReservationCancelled
}
