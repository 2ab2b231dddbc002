package catalog

import (
	"context"

	"gorm.io/gorm"

	"github.com/talkincode/streamstore/internal/domain"
)

type ServiceInput struct {
	Name string
	Logo string
}

// ServicePatch carries a partial update; nil fields are left unchanged.
type ServicePatch struct {
	Name *string
	Logo *string
}

func (in ServiceInput) normalize() (ServiceInput, error) {
	var err error
	if in.Name, err = required("name", in.Name, 200); err != nil {
		return in, err
	}
	if in.Logo, err = required("logo", in.Logo, 0); err != nil {
		return in, err
	}
	return in, nil
}

// ListServices returns all services ordered by id.
func (s *Store) ListServices(ctx context.Context) ([]domain.Service, error) {
	var rows []domain.Service
	if err := s.db.WithContext(ctx).Order("id").Find(&rows).Error; err != nil {
		return nil, storeErr("list services", err)
	}
	return rows, nil
}

func (s *Store) GetService(ctx context.Context, id int64) (*domain.Service, error) {
	if err := checkID(id); err != nil {
		return nil, err
	}
	var svc domain.Service
	if err := s.db.WithContext(ctx).First(&svc, id).Error; err != nil {
		return nil, lookupErr("service", id, err)
	}
	return &svc, nil
}

func (s *Store) CreateService(ctx context.Context, in ServiceInput) (*domain.Service, error) {
	in, err := in.normalize()
	if err != nil {
		return nil, err
	}
	svc := domain.Service{Name: in.Name, Logo: in.Logo}
	if err := s.db.WithContext(ctx).Create(&svc).Error; err != nil {
		return nil, storeErr("create service", err)
	}
	return &svc, nil
}

func (s *Store) UpdateService(ctx context.Context, id int64, patch ServicePatch) (*domain.Service, error) {
	svc, err := s.GetService(ctx, id)
	if err != nil {
		return nil, err
	}
	in := ServiceInput{Name: svc.Name, Logo: svc.Logo}
	if patch.Name != nil {
		in.Name = *patch.Name
	}
	if patch.Logo != nil {
		in.Logo = *patch.Logo
	}
	if in, err = in.normalize(); err != nil {
		return nil, err
	}
	svc.Name, svc.Logo = in.Name, in.Logo
	if err := s.db.WithContext(ctx).Save(svc).Error; err != nil {
		return nil, storeErr("update service", err)
	}
	return svc, nil
}

// DeleteService removes the service and every product that references it in
// a single transaction. It returns how many products were removed.
func (s *Store) DeleteService(ctx context.Context, id int64) (int64, error) {
	if err := checkID(id); err != nil {
		return 0, err
	}
	var removed int64
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var svc domain.Service
		if err := tx.Select("id").First(&svc, id).Error; err != nil {
			return lookupErr("service", id, err)
		}
		res := tx.Where("service_id = ?", id).Delete(&domain.Product{})
		if res.Error != nil {
			return storeErr("delete service products", res.Error)
		}
		removed = res.RowsAffected
		if err := tx.Delete(&domain.Service{}, id).Error; err != nil {
			return storeErr("delete service", err)
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return removed, nil
}

// serviceExists is used by product writes; tx may be a transaction handle.
func serviceExists(tx *gorm.DB, id int64) (bool, error) {
	var n int64
	if err := tx.Model(&domain.Service{}).Where("id = ?", id).Count(&n).Error; err != nil {
		return false, storeErr("check service", err)
	}
	return n > 0, nil
}
