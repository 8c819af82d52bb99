package models

import (
	"time"
)

// Customer adalah buku tamu: data kontak pelanggan yang pernah reservasi.
type Customer struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	BusinessID uint      `gorm:"not null;index" json:"business_id"`
	Name       string    `gorm:"type:varchar(255);not null" json:"name"`
	Phone      string    `gorm:"type:varchar(32);index" json:"phone"`
	Email      *string   `gorm:"type:varchar(255)" json:"email,omitempty"`
	Notes      string    `gorm:"type:text" json:"notes"`
	CreatedAt  time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt  time.Time `gorm:"not null" json:"updated_at"`
}
