package catalog

import (
	"context"

	"github.com/montanaflynn/stats"
	"golang.org/x/sync/errgroup"

	"github.com/talkincode/streamstore/internal/domain"
)

// ServiceSummary aggregates the price list of one service.
type ServiceSummary struct {
	ServiceID   int64   `json:"service_id"`
	Name        string  `json:"name"`
	Products    int     `json:"products"`
	MinPrice    float64 `json:"min_price"`
	MaxPrice    float64 `json:"max_price"`
	MeanPrice   float64 `json:"mean_price"`
	MedianPrice float64 `json:"median_price"`
}

type Summary struct {
	Counts
	PerService []ServiceSummary `json:"per_service"`
}

// Summary loads services, products and the slide count concurrently and
// computes per-service price statistics.
func (s *Store) Summary(ctx context.Context) (*Summary, error) {
	var (
		services []domain.Service
		products []domain.Product
		slides   int64
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		services, err = s.ListServices(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		products, err = s.ListProducts(gctx, ProductFilter{})
		return err
	})
	g.Go(func() error {
		if err := s.db.WithContext(gctx).Model(&domain.Slide{}).Count(&slides).Error; err != nil {
			return storeErr("count slides", err)
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	prices := make(map[int64]stats.Float64Data, len(services))
	for _, p := range products {
		prices[p.ServiceID] = append(prices[p.ServiceID], p.Price)
	}

	out := &Summary{
		Counts: Counts{
			Services: int64(len(services)),
			Products: int64(len(products)),
			Slides:   slides,
		},
		PerService: make([]ServiceSummary, 0, len(services)),
	}
	for _, svc := range services {
		row := ServiceSummary{ServiceID: svc.ID, Name: svc.Name}
		data := prices[svc.ID]
		row.Products = data.Len()
		if row.Products > 0 {
			// errors are only returned for empty input
			row.MinPrice, _ = data.Min()
			row.MaxPrice, _ = data.Max()
			mean, _ := data.Mean()
			row.MeanPrice, _ = stats.Round(mean, 2)
			median, _ := data.Median()
			row.MedianPrice, _ = stats.Round(median, 2)
		}
		out.PerService = append(out.PerService, row)
	}
	return out, nil
}
