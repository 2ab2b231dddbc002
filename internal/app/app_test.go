package app

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/talkincode/streamstore/config"
	"github.com/talkincode/streamstore/internal/audit"
	"github.com/talkincode/streamstore/internal/catalog"
	"github.com/talkincode/streamstore/internal/domain"
	"github.com/talkincode/streamstore/pkg/metrics"
)

func testConfig(t *testing.T) *config.AppConfig {
	t.Helper()
	cfg := *config.DefaultAppConfig
	cfg.System.Workdir = t.TempDir()
	cfg.Admin.Password = "secret"
	cfg.Web.Secret = "test-secret"
	cfg.Jobs.Enabled = false
	require.NoError(t, cfg.InitDirs())
	return &cfg
}

func newTestApp(t *testing.T) *Application {
	t.Helper()
	cfg := testConfig(t)
	a := NewApplication(cfg)
	require.NoError(t, a.Init(cfg))
	t.Cleanup(a.Release)
	return a
}

func TestInit_SeedsCatalog(t *testing.T) {
	a := newTestApp(t)
	ctx := context.Background()

	counts, err := a.Catalog().Counts(ctx)
	require.NoError(t, err)
	assert.EqualValues(t, 6, counts.Services)
	assert.EqualValues(t, 10, counts.Products)
	assert.EqualValues(t, 3, counts.Slides)

	services, err := a.Catalog().ListServices(ctx)
	require.NoError(t, err)
	assert.Equal(t, "Netflix", services[0].Name)

	netflix := services[0].ID
	products, err := a.Catalog().ListProducts(ctx, catalog.ProductFilter{ServiceID: &netflix})
	require.NoError(t, err)
	assert.Len(t, products, 4)
	assert.Equal(t, 24.90, products[0].Price)

	// seeding twice does not duplicate
	a.checkCatalog()
	a.checkSlides()
	counts, err = a.Catalog().Counts(ctx)
	require.NoError(t, err)
	assert.EqualValues(t, 6, counts.Services)
	assert.EqualValues(t, 3, counts.Slides)
}

func TestInit_NoSeed(t *testing.T) {
	cfg := testConfig(t)
	cfg.System.Seed = false
	a := NewApplication(cfg)
	require.NoError(t, a.Init(cfg))
	t.Cleanup(a.Release)

	counts, err := a.Catalog().Counts(context.Background())
	require.NoError(t, err)
	assert.Zero(t, counts.Services)
	assert.Zero(t, counts.Slides)
}

func TestInit_GeneratesSecretWhenEmpty(t *testing.T) {
	cfg := testConfig(t)
	cfg.Web.Secret = ""
	a := NewApplication(cfg)
	require.NoError(t, a.Init(cfg))
	t.Cleanup(a.Release)

	assert.Len(t, cfg.Web.Secret, 32)
	s, err := a.Auth().Login("admin", "secret")
	require.NoError(t, err)
	_, err = a.Auth().Verify(s.Token)
	require.NoError(t, err)
}

func TestInitDb_ResetsToSeed(t *testing.T) {
	a := newTestApp(t)
	ctx := context.Background()
	_, err := a.Catalog().CreateService(ctx, catalog.ServiceInput{Name: "Extra", Logo: "x"})
	require.NoError(t, err)

	require.NoError(t, a.InitDb())
	counts, err := a.Catalog().Counts(ctx)
	require.NoError(t, err)
	assert.EqualValues(t, 6, counts.Services)
}

func TestJobs(t *testing.T) {
	a := newTestApp(t)
	ctx := context.Background()

	a.SchedCatalogGaugeTask()
	v, ok := metrics.GetGauge(MetricProducts)
	require.True(t, ok)
	assert.EqualValues(t, 10, v)

	a.SchedProcessMonitorTask()
	_, ok = metrics.GetGauge(MetricProcessMem)
	assert.True(t, ok)

	// an orphan written behind the store's back
	require.NoError(t, a.DB().Exec("PRAGMA foreign_keys = OFF").Error)
	require.NoError(t, a.DB().Create(&domain.Product{ServiceID: 999, Name: "ghost", Price: 1}).Error)
	require.NoError(t, a.DB().Exec("PRAGMA foreign_keys = ON").Error)
	a.SchedSweepOrphansTask()
	var ghosts int64
	require.NoError(t, a.DB().Model(&domain.Product{}).Where("service_id = ?", 999).Count(&ghosts).Error)
	assert.Zero(t, ghosts)

	a.Auditor().Record(audit.Entry{Operator: "admin", Action: "old", Time: time.Now().AddDate(-2, 0, 0)})
	a.Auditor().Record(audit.Entry{Operator: "admin", Action: "recent"})
	a.Auditor().Flush()
	a.SchedAuditPruneTask()
	rows, err := a.Auditor().List(ctx, time.Time{}, 0)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "recent", rows[0].OptAction)

	a.SchedPruneRevokedTask()
}

func TestInitJob_RegistersSchedule(t *testing.T) {
	cfg := testConfig(t)
	cfg.Jobs.Enabled = true
	a := NewApplication(cfg)
	require.NoError(t, a.Init(cfg))
	t.Cleanup(a.Release)

	require.NotNil(t, a.Scheduler())
	assert.Len(t, a.Scheduler().Entries(), 4)
}
