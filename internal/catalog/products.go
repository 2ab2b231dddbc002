package catalog

import (
	"context"
	"strings"

	"gorm.io/gorm"

	"github.com/talkincode/streamstore/internal/domain"
)

// ProductInput is a full product record. Description, Observations and
// Image are optional.
type ProductInput struct {
	ServiceID    int64
	Name         string
	Price        float64
	Description  string
	Observations string
	Image        string
}

type ProductPatch struct {
	ServiceID    *int64
	Name         *string
	Price        *float64
	Description  *string
	Observations *string
	Image        *string
}

// ProductFilter narrows ListProducts; a nil ServiceID returns every product.
type ProductFilter struct {
	ServiceID *int64
}

func (in ProductInput) normalize() (ProductInput, error) {
	var err error
	if in.ServiceID <= 0 {
		return in, invalid("service_id", "is required")
	}
	if in.Name, err = required("name", in.Name, 200); err != nil {
		return in, err
	}
	if err = checkPrice(in.Price); err != nil {
		return in, err
	}
	in.Description = strings.TrimSpace(in.Description)
	in.Observations = strings.TrimSpace(in.Observations)
	in.Image = strings.TrimSpace(in.Image)
	return in, nil
}

func (p *ProductPatch) apply(dst *ProductInput) {
	if p.ServiceID != nil {
		dst.ServiceID = *p.ServiceID
	}
	if p.Name != nil {
		dst.Name = *p.Name
	}
	if p.Price != nil {
		dst.Price = *p.Price
	}
	if p.Description != nil {
		dst.Description = *p.Description
	}
	if p.Observations != nil {
		dst.Observations = *p.Observations
	}
	if p.Image != nil {
		dst.Image = *p.Image
	}
}

func (s *Store) ListProducts(ctx context.Context, filter ProductFilter) ([]domain.Product, error) {
	db := s.db.WithContext(ctx).Model(&domain.Product{})
	if filter.ServiceID != nil {
		db = db.Where("service_id = ?", *filter.ServiceID)
	}
	var rows []domain.Product
	if err := db.Order("id").Find(&rows).Error; err != nil {
		return nil, storeErr("list products", err)
	}
	return rows, nil
}

func (s *Store) GetProduct(ctx context.Context, id int64) (*domain.Product, error) {
	if err := checkID(id); err != nil {
		return nil, err
	}
	var p domain.Product
	if err := s.db.WithContext(ctx).First(&p, id).Error; err != nil {
		return nil, lookupErr("product", id, err)
	}
	return &p, nil
}

// ProductsByIDs returns the products that still exist among ids, in id order.
func (s *Store) ProductsByIDs(ctx context.Context, ids []int64) ([]domain.Product, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	var rows []domain.Product
	if err := s.db.WithContext(ctx).Where("id IN ?", ids).Order("id").Find(&rows).Error; err != nil {
		return nil, storeErr("load products", err)
	}
	return rows, nil
}

func (s *Store) CreateProduct(ctx context.Context, in ProductInput) (*domain.Product, error) {
	in, err := in.normalize()
	if err != nil {
		return nil, err
	}
	p := domain.Product{
		ServiceID:    in.ServiceID,
		Name:         in.Name,
		Price:        in.Price,
		Description:  in.Description,
		Observations: in.Observations,
		Image:        in.Image,
	}
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		ok, err := serviceExists(tx, in.ServiceID)
		if err != nil {
			return err
		}
		if !ok {
			return &ReferentialError{ServiceID: in.ServiceID}
		}
		if err := tx.Create(&p).Error; err != nil {
			return storeErr("create product", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (s *Store) UpdateProduct(ctx context.Context, id int64, patch ProductPatch) (*domain.Product, error) {
	if err := checkID(id); err != nil {
		return nil, err
	}
	var p domain.Product
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&p, id).Error; err != nil {
			return lookupErr("product", id, err)
		}
		in := ProductInput{
			ServiceID:    p.ServiceID,
			Name:         p.Name,
			Price:        p.Price,
			Description:  p.Description,
			Observations: p.Observations,
			Image:        p.Image,
		}
		patch.apply(&in)
		in, err := in.normalize()
		if err != nil {
			return err
		}
		if in.ServiceID != p.ServiceID {
			ok, err := serviceExists(tx, in.ServiceID)
			if err != nil {
				return err
			}
			if !ok {
				return &ReferentialError{ServiceID: in.ServiceID}
			}
		}
		p.ServiceID = in.ServiceID
		p.Name = in.Name
		p.Price = in.Price
		p.Description = in.Description
		p.Observations = in.Observations
		p.Image = in.Image
		if err := tx.Save(&p).Error; err != nil {
			return storeErr("update product", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (s *Store) DeleteProduct(ctx context.Context, id int64) error {
	if err := checkID(id); err != nil {
		return err
	}
	res := s.db.WithContext(ctx).Delete(&domain.Product{}, id)
	if res.Error != nil {
		return storeErr("delete product", res.Error)
	}
	if res.RowsAffected == 0 {
		return &NotFoundError{Entity: "product", ID: id}
	}
	return nil
}

// SweepOrphans deletes products whose service no longer exists and returns
// how many were removed.
func (s *Store) SweepOrphans(ctx context.Context) (int64, error) {
	db := s.db.WithContext(ctx)
	res := db.Where("service_id NOT IN (?)", db.Model(&domain.Service{}).Select("id")).
		Delete(&domain.Product{})
	if res.Error != nil {
		return 0, storeErr("sweep orphan products", res.Error)
	}
	return res.RowsAffected, nil
}
