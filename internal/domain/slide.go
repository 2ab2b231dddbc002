package domain

import "time"

// Slide is a promotional banner entry shown in rotation on the home page.
type Slide struct {
	ID        int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	Message   string    `gorm:"size:500;not null" json:"message"`
	Image     string    `gorm:"type:text;not null" json:"image"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (Slide) TableName() string {
	return "slides"
}
