package app

import (
	"github.com/robfig/cron/v3"
	"gorm.io/gorm"

	"github.com/talkincode/streamstore/config"
	"github.com/talkincode/streamstore/internal/audit"
	"github.com/talkincode/streamstore/internal/auth"
	"github.com/talkincode/streamstore/internal/cart"
	"github.com/talkincode/streamstore/internal/catalog"
	"github.com/talkincode/streamstore/internal/notify"
)

// DBProvider provides database access
type DBProvider interface {
	DB() *gorm.DB
}

// ConfigProvider provides application configuration
type ConfigProvider interface {
	Config() *config.AppConfig
}

// SchedulerProvider provides task scheduling capability
type SchedulerProvider interface {
	Scheduler() *cron.Cron
}

// StoreProvider exposes the storefront components used by HTTP handlers.
type StoreProvider interface {
	Catalog() *catalog.Store
	Auditor() *audit.Recorder
	Auth() *auth.Manager
	Checkout() *cart.Checkout
	Notifier() notify.Notifier
}

// AppContext combines all provider interfaces for full application context
type AppContext interface {
	DBProvider
	ConfigProvider
	SchedulerProvider
	StoreProvider

	MigrateDB(track bool) error
	InitDb() error
	DropAll()
}
