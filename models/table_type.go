package models

import "time"

// TableType adalah kategori meja fisik dengan kapasitas kursi tetap.
type TableType struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	BusinessID uint      `gorm:"not null;index" json:"business_id"`
	Name       string    `gorm:"type:varchar(100);not null" json:"name"`
	Seats      int       `gorm:"not null" json:"seats"`
	CreatedAt  time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt  time.Time `gorm:"not null" json:"updated_at"`
}
