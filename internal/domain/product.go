package domain

import "time"

// Product is a purchasable plan under a Service.
type Product struct {
	ID           int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	ServiceID    int64     `gorm:"index;not null" json:"service_id"`
	Name         string    `gorm:"size:200;not null" json:"name"`
	Price        float64   `gorm:"not null" json:"price"` // main currency units
	Description  string    `gorm:"type:text" json:"description"`
	Observations string    `gorm:"type:text" json:"observations"`
	Image        string    `gorm:"type:text" json:"image"` // may be a large data URI
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

func (Product) TableName() string {
	return "products"
}
