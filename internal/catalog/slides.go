package catalog

import (
	"context"

	"github.com/talkincode/streamstore/internal/domain"
)

type SlideInput struct {
	Message string
	Image   string
}

type SlidePatch struct {
	Message *string
	Image   *string
}

func (in SlideInput) normalize() (SlideInput, error) {
	var err error
	if in.Message, err = required("message", in.Message, 500); err != nil {
		return in, err
	}
	if in.Image, err = required("image", in.Image, 0); err != nil {
		return in, err
	}
	return in, nil
}

func (s *Store) ListSlides(ctx context.Context) ([]domain.Slide, error) {
	var rows []domain.Slide
	if err := s.db.WithContext(ctx).Order("id").Find(&rows).Error; err != nil {
		return nil, storeErr("list slides", err)
	}
	return rows, nil
}

func (s *Store) GetSlide(ctx context.Context, id int64) (*domain.Slide, error) {
	if err := checkID(id); err != nil {
		return nil, err
	}
	var sl domain.Slide
	if err := s.db.WithContext(ctx).First(&sl, id).Error; err != nil {
		return nil, lookupErr("slide", id, err)
	}
	return &sl, nil
}

func (s *Store) CreateSlide(ctx context.Context, in SlideInput) (*domain.Slide, error) {
	in, err := in.normalize()
	if err != nil {
		return nil, err
	}
	sl := domain.Slide{Message: in.Message, Image: in.Image}
	if err := s.db.WithContext(ctx).Create(&sl).Error; err != nil {
		return nil, storeErr("create slide", err)
	}
	return &sl, nil
}

func (s *Store) UpdateSlide(ctx context.Context, id int64, patch SlidePatch) (*domain.Slide, error) {
	sl, err := s.GetSlide(ctx, id)
	if err != nil {
		return nil, err
	}
	in := SlideInput{Message: sl.Message, Image: sl.Image}
	if patch.Message != nil {
		in.Message = *patch.Message
	}
	if patch.Image != nil {
		in.Image = *patch.Image
	}
	if in, err = in.normalize(); err != nil {
		return nil, err
	}
	sl.Message, sl.Image = in.Message, in.Image
	if err := s.db.WithContext(ctx).Save(sl).Error; err != nil {
		return nil, storeErr("update slide", err)
	}
	return sl, nil
}

func (s *Store) DeleteSlide(ctx context.Context, id int64) error {
	if err := checkID(id); err != nil {
		return err
	}
	res := s.db.WithContext(ctx).Delete(&domain.Slide{}, id)
	if res.Error != nil {
		return storeErr("delete slide", res.Error)
	}
	if res.RowsAffected == 0 {
		return &NotFoundError{Entity: "slide", ID: id}
	}
	return nil
}
