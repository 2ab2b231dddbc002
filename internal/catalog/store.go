package catalog

import (
	"context"
	"math"
	"strings"

	"gorm.io/gorm"

	"github.com/talkincode/streamstore/internal/domain"
)

// Store is the data access layer over services, products and slides.
// Every method validates its input and returns one of the typed errors
// declared in errors.go.
type Store struct {
	db *gorm.DB
}

func NewStore(db *gorm.DB) *Store {
	return &Store{db: db}
}

// Counts holds the size of each catalog table.
type Counts struct {
	Services int64 `json:"services"`
	Products int64 `json:"products"`
	Slides   int64 `json:"slides"`
}

func (s *Store) Counts(ctx context.Context) (Counts, error) {
	var c Counts
	db := s.db.WithContext(ctx)
	if err := db.Model(&domain.Service{}).Count(&c.Services).Error; err != nil {
		return c, storeErr("count services", err)
	}
	if err := db.Model(&domain.Product{}).Count(&c.Products).Error; err != nil {
		return c, storeErr("count products", err)
	}
	if err := db.Model(&domain.Slide{}).Count(&c.Slides).Error; err != nil {
		return c, storeErr("count slides", err)
	}
	return c, nil
}

func checkID(id int64) error {
	if id <= 0 {
		return invalid("id", "must be a positive integer")
	}
	return nil
}

// required trims v and fails when nothing is left.
func required(field, v string, max int) (string, error) {
	v = strings.TrimSpace(v)
	if v == "" {
		return "", invalid(field, "is required")
	}
	if max > 0 && len([]rune(v)) > max {
		return "", invalid(field, "is too long")
	}
	return v, nil
}

func checkPrice(p float64) error {
	if math.IsNaN(p) || math.IsInf(p, 0) {
		return invalid("price", "must be a number")
	}
	if p < 0 {
		return invalid("price", "must not be negative")
	}
	return nil
}
