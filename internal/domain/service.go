package domain

import "time"

// Service is a subscription provider being resold (a streaming brand, a
// design tool...). Deleting a service removes its products.
type Service struct {
	ID        int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	Name      string    `gorm:"size:200;not null" json:"name"`
	Logo      string    `gorm:"type:text;not null" json:"logo"` // URL or data URI
	Products  []Product `gorm:"foreignKey:ServiceID;constraint:OnDelete:CASCADE" json:"-"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (Service) TableName() string {
	return "services"
}
