package models

import "time"

// Product adalah item katalog (menu makanan/minuman) milik bisnis.
type Product struct {
	ID          uint            `gorm:"primaryKey" json:"id"`
	BusinessID  uint            `gorm:"not null;index" json:"business_id"`
	CategoryID  uint            `gorm:"not null" json:"category_id"`
	Category    ProductCategory `gorm:"foreignKey:CategoryID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT" json:"category"`
	Name        string          `gorm:"type:varchar(255);not null" json:"name"`
	Price       float64         `gorm:"type:decimal(10,2);not null" json:"price"`
	Stock       int             `json:"stock"`
	Description string          `gorm:"type:text" json:"description"`
	IsActive    bool            `gorm:"not null;default:true" json:"is_active"`
	CreatedAt   time.Time       `gorm:"not null" json:"created_at"`
	UpdatedAt   time.Time       `gorm:"not null" json:"updated_at"`
}
