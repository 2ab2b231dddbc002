package catalog

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/talkincode/streamstore/internal/domain"
)

// setupTestDB creates an in-memory SQLite database for testing. A single
// connection keeps every query on the same in-memory database.
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	require.NoError(t, db.AutoMigrate(domain.Tables...))
	return db
}

func newTestStore(t *testing.T) (*Store, *gorm.DB) {
	db := setupTestDB(t)
	return NewStore(db), db
}

func mustService(t *testing.T, s *Store, name string) *domain.Service {
	t.Helper()
	svc, err := s.CreateService(context.Background(), ServiceInput{Name: name, Logo: "https://img/" + name + ".svg"})
	require.NoError(t, err)
	return svc
}

func mustProduct(t *testing.T, s *Store, serviceID int64, name string, price float64) *domain.Product {
	t.Helper()
	p, err := s.CreateProduct(context.Background(), ProductInput{ServiceID: serviceID, Name: name, Price: price})
	require.NoError(t, err)
	return p
}

func ptr[T any](v T) *T { return &v }

func TestServiceRoundTrip(t *testing.T) {
	s, _ := newTestStore(t)
	ctx := context.Background()

	created, err := s.CreateService(ctx, ServiceInput{Name: "  Netflix ", Logo: "data:image/png;base64,AAAA"})
	require.NoError(t, err)
	require.NotZero(t, created.ID)

	got, err := s.GetService(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "Netflix", got.Name)
	assert.Equal(t, "data:image/png;base64,AAAA", got.Logo)

	all, err := s.ListServices(ctx)
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.Equal(t, created.ID, all[0].ID)
}

func TestProductRoundTrip(t *testing.T) {
	s, _ := newTestStore(t)
	ctx := context.Background()
	svc := mustService(t, s, "Canva")

	in := ProductInput{
		ServiceID:    svc.ID,
		Name:         "Canva Pro",
		Price:        15.90,
		Description:  "Acesso total ao Canva Pro.",
		Observations: "Ativação no seu e-mail.",
		Image:        "https://picsum.photos/seed/canva/400/300",
	}
	created, err := s.CreateProduct(ctx, in)
	require.NoError(t, err)

	got, err := s.GetProduct(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, in.ServiceID, got.ServiceID)
	assert.Equal(t, in.Name, got.Name)
	assert.Equal(t, in.Price, got.Price)
	assert.Equal(t, in.Description, got.Description)
	assert.Equal(t, in.Observations, got.Observations)
	assert.Equal(t, in.Image, got.Image)
}

func TestSlideRoundTrip(t *testing.T) {
	s, _ := newTestStore(t)
	ctx := context.Background()

	created, err := s.CreateSlide(ctx, SlideInput{Message: "Promoções exclusivas", Image: "https://picsum.photos/seed/stream1/1200/600"})
	require.NoError(t, err)

	got, err := s.GetSlide(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "Promoções exclusivas", got.Message)
	assert.Equal(t, "https://picsum.photos/seed/stream1/1200/600", got.Image)
}

func TestCreateProduct_UnknownServiceRejected(t *testing.T) {
	s, db := newTestStore(t)

	_, err := s.CreateProduct(context.Background(), ProductInput{ServiceID: 4242, Name: "ghost", Price: 1})
	require.Error(t, err)
	assert.True(t, IsReferential(err))

	var n int64
	require.NoError(t, db.Model(&domain.Product{}).Count(&n).Error)
	assert.Zero(t, n, "nothing must be stored")
}

func TestCreateProduct_Validation(t *testing.T) {
	s, _ := newTestStore(t)
	svc := mustService(t, s, "Spotify")

	cases := map[string]ProductInput{
		"missing service": {Name: "x", Price: 1},
		"blank name":      {ServiceID: svc.ID, Name: "   ", Price: 1},
		"negative price":  {ServiceID: svc.ID, Name: "x", Price: -0.01},
	}
	for name, in := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := s.CreateProduct(context.Background(), in)
			require.Error(t, err)
			assert.True(t, IsValidation(err), "got %v", err)
		})
	}

	// description and observations are optional
	p, err := s.CreateProduct(context.Background(), ProductInput{ServiceID: svc.ID, Name: "Premium", Price: 0})
	require.NoError(t, err)
	assert.Empty(t, p.Description)
	assert.Empty(t, p.Observations)
}

func TestCreateService_Validation(t *testing.T) {
	s, _ := newTestStore(t)
	_, err := s.CreateService(context.Background(), ServiceInput{Name: "", Logo: "x"})
	assert.True(t, IsValidation(err))
	_, err = s.CreateService(context.Background(), ServiceInput{Name: "x", Logo: " "})
	assert.True(t, IsValidation(err))
	_, err = s.CreateSlide(context.Background(), SlideInput{Message: "", Image: "x"})
	assert.True(t, IsValidation(err))
}

func TestListProducts_Filter(t *testing.T) {
	s, _ := newTestStore(t)
	ctx := context.Background()
	netflix := mustService(t, s, "Netflix")
	capcut := mustService(t, s, "CapCut")
	mustProduct(t, s, netflix.ID, "4K 30 Dias", 24.90)
	mustProduct(t, s, netflix.ID, "4K 7 Dias", 8.90)
	mustProduct(t, s, capcut.ID, "Pro 7 Dias", 7.90)

	all, err := s.ListProducts(ctx, ProductFilter{})
	require.NoError(t, err)
	assert.Len(t, all, 3)

	only, err := s.ListProducts(ctx, ProductFilter{ServiceID: &netflix.ID})
	require.NoError(t, err)
	require.Len(t, only, 2)
	for _, p := range only {
		assert.Equal(t, netflix.ID, p.ServiceID)
	}

	none, err := s.ListProducts(ctx, ProductFilter{ServiceID: ptr(int64(999))})
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestDeleteService_Cascades(t *testing.T) {
	for _, n := range []int{0, 1, 5} {
		n := n
		t.Run(fmt.Sprintf("products=%d", n), func(t *testing.T) {
			s, db := newTestStore(t)
			ctx := context.Background()
			target := mustService(t, s, "Target")
			other := mustService(t, s, "Other")
			for i := 0; i < n; i++ {
				mustProduct(t, s, target.ID, "plan", float64(i))
			}
			keep := mustProduct(t, s, other.ID, "keep", 1)

			removed, err := s.DeleteService(ctx, target.ID)
			require.NoError(t, err)
			assert.EqualValues(t, n, removed)

			var left int64
			require.NoError(t, db.Model(&domain.Product{}).Where("service_id = ?", target.ID).Count(&left).Error)
			assert.Zero(t, left)

			_, err = s.GetService(ctx, target.ID)
			assert.True(t, IsNotFound(err))
			_, err = s.GetProduct(ctx, keep.ID)
			assert.NoError(t, err, "other services' products survive")
		})
	}
}

func TestDeleteService_NotFoundLeavesDataIntact(t *testing.T) {
	s, _ := newTestStore(t)
	svc := mustService(t, s, "Prime Video")
	mustProduct(t, s, svc.ID, "Conta Completa", 12.90)

	_, err := s.DeleteService(context.Background(), svc.ID+100)
	require.Error(t, err)
	assert.True(t, IsNotFound(err))

	rows, err := s.ListProducts(context.Background(), ProductFilter{})
	require.NoError(t, err)
	assert.Len(t, rows, 1)
}

func TestUpdateProduct_Partial(t *testing.T) {
	s, _ := newTestStore(t)
	ctx := context.Background()
	svc := mustService(t, s, "Paramount+")
	p, err := s.CreateProduct(ctx, ProductInput{ServiceID: svc.ID, Name: "Conta", Price: 18.90, Description: "desc"})
	require.NoError(t, err)

	updated, err := s.UpdateProduct(ctx, p.ID, ProductPatch{Price: ptr(19.90)})
	require.NoError(t, err)
	assert.Equal(t, 19.90, updated.Price)
	assert.Equal(t, "Conta", updated.Name)
	assert.Equal(t, "desc", updated.Description)

	_, err = s.UpdateProduct(ctx, p.ID, ProductPatch{ServiceID: ptr(int64(777))})
	assert.True(t, IsReferential(err))

	other := mustService(t, s, "Other")
	moved, err := s.UpdateProduct(ctx, p.ID, ProductPatch{ServiceID: &other.ID})
	require.NoError(t, err)
	assert.Equal(t, other.ID, moved.ServiceID)

	_, err = s.UpdateProduct(ctx, 9999, ProductPatch{Name: ptr("x")})
	assert.True(t, IsNotFound(err))
}

func TestUpdateServiceAndSlide(t *testing.T) {
	s, _ := newTestStore(t)
	ctx := context.Background()
	svc := mustService(t, s, "Old")

	updated, err := s.UpdateService(ctx, svc.ID, ServicePatch{Name: ptr("New")})
	require.NoError(t, err)
	assert.Equal(t, "New", updated.Name)
	assert.Equal(t, svc.Logo, updated.Logo)

	_, err = s.UpdateService(ctx, svc.ID, ServicePatch{Name: ptr(" ")})
	assert.True(t, IsValidation(err))

	sl, err := s.CreateSlide(ctx, SlideInput{Message: "a", Image: "b"})
	require.NoError(t, err)
	sl2, err := s.UpdateSlide(ctx, sl.ID, SlidePatch{Image: ptr("c")})
	require.NoError(t, err)
	assert.Equal(t, "a", sl2.Message)
	assert.Equal(t, "c", sl2.Image)
}

func TestDeleteProductAndSlide_NotFound(t *testing.T) {
	s, _ := newTestStore(t)
	ctx := context.Background()
	assert.True(t, IsNotFound(s.DeleteProduct(ctx, 1)))
	assert.True(t, IsNotFound(s.DeleteSlide(ctx, 1)))
	assert.True(t, IsValidation(s.DeleteSlide(ctx, 0)))

	sl, err := s.CreateSlide(ctx, SlideInput{Message: "m", Image: "i"})
	require.NoError(t, err)
	require.NoError(t, s.DeleteSlide(ctx, sl.ID))
	_, err = s.GetSlide(ctx, sl.ID)
	assert.True(t, IsNotFound(err))
}

func TestSweepOrphans(t *testing.T) {
	s, db := newTestStore(t)
	ctx := context.Background()
	svc := mustService(t, s, "Live")
	mustProduct(t, s, svc.ID, "ok", 1)

	require.NoError(t, db.Exec("PRAGMA foreign_keys = OFF").Error)
	require.NoError(t, db.Create(&domain.Product{ServiceID: 555, Name: "orphan", Price: 1}).Error)

	n, err := s.SweepOrphans(ctx)
	require.NoError(t, err)
	assert.EqualValues(t, 1, n)

	rows, err := s.ListProducts(ctx, ProductFilter{})
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "ok", rows[0].Name)
}

func TestProductsByIDs(t *testing.T) {
	s, _ := newTestStore(t)
	svc := mustService(t, s, "S")
	a := mustProduct(t, s, svc.ID, "a", 1)
	b := mustProduct(t, s, svc.ID, "b", 2)

	rows, err := s.ProductsByIDs(context.Background(), []int64{b.ID, a.ID, 999})
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, a.ID, rows[0].ID)

	rows, err = s.ProductsByIDs(context.Background(), nil)
	require.NoError(t, err)
	assert.Empty(t, rows)
}

func TestSummary(t *testing.T) {
	s, _ := newTestStore(t)
	ctx := context.Background()
	netflix := mustService(t, s, "Netflix")
	empty := mustService(t, s, "Empty")
	mustProduct(t, s, netflix.ID, "a", 10)
	mustProduct(t, s, netflix.ID, "b", 20)
	mustProduct(t, s, netflix.ID, "c", 40)
	_, err := s.CreateSlide(ctx, SlideInput{Message: "m", Image: "i"})
	require.NoError(t, err)

	sum, err := s.Summary(ctx)
	require.NoError(t, err)
	assert.EqualValues(t, 2, sum.Services)
	assert.EqualValues(t, 3, sum.Products)
	assert.EqualValues(t, 1, sum.Slides)
	require.Len(t, sum.PerService, 2)

	assert.Equal(t, netflix.ID, sum.PerService[0].ServiceID)
	assert.Equal(t, 3, sum.PerService[0].Products)
	assert.Equal(t, 10.0, sum.PerService[0].MinPrice)
	assert.Equal(t, 40.0, sum.PerService[0].MaxPrice)
	assert.Equal(t, 23.33, sum.PerService[0].MeanPrice)
	assert.Equal(t, 20.0, sum.PerService[0].MedianPrice)

	assert.Equal(t, empty.ID, sum.PerService[1].ServiceID)
	assert.Zero(t, sum.PerService[1].Products)

	counts, err := s.Counts(ctx)
	require.NoError(t, err)
	assert.Equal(t, sum.Counts, counts)
}
