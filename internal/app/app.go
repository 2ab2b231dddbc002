package app

import (
	"context"
	"os"
	"runtime/debug"
	"time"
	_ "time/tzdata"

	"github.com/asaskevich/EventBus"
	"github.com/labstack/gommon/random"
	"github.com/pkg/errors"
	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
	"gorm.io/gorm"

	"github.com/talkincode/streamstore/config"
	"github.com/talkincode/streamstore/internal/audit"
	"github.com/talkincode/streamstore/internal/auth"
	"github.com/talkincode/streamstore/internal/cart"
	"github.com/talkincode/streamstore/internal/catalog"
	"github.com/talkincode/streamstore/internal/domain"
	"github.com/talkincode/streamstore/internal/notify"
	"github.com/talkincode/streamstore/pkg/metrics"
)

type Application struct {
	appConfig *config.AppConfig
	gormDB    *gorm.DB
	sched     *cron.Cron
	bus       EventBus.Bus
	catalog   *catalog.Store
	auditor   *audit.Recorder
	revoked   *auth.RevocationStore
	authMgr   *auth.Manager
	checkout  *cart.Checkout
	notifier  notify.Notifier
}

// Ensure Application implements all interfaces
var (
	_ DBProvider        = (*Application)(nil)
	_ ConfigProvider    = (*Application)(nil)
	_ SchedulerProvider = (*Application)(nil)
	_ AppContext        = (*Application)(nil)
)

func NewApplication(appConfig *config.AppConfig) *Application {
	return &Application{appConfig: appConfig}
}

func (a *Application) Config() *config.AppConfig {
	return a.appConfig
}

func (a *Application) DB() *gorm.DB {
	return a.gormDB
}

func (a *Application) Scheduler() *cron.Cron {
	return a.sched
}

func (a *Application) Catalog() *catalog.Store {
	return a.catalog
}

func (a *Application) Auditor() *audit.Recorder {
	return a.auditor
}

func (a *Application) Auth() *auth.Manager {
	return a.authMgr
}

func (a *Application) Checkout() *cart.Checkout {
	return a.checkout
}

func (a *Application) Notifier() notify.Notifier {
	return a.notifier
}

// initLogger installs the global zap logger.
func initLogger(cfg *config.AppConfig) error {
	var zapConfig zap.Config
	if cfg.Logger.Mode == "production" {
		zapConfig = zap.NewProductionConfig()
	} else {
		zapConfig = zap.NewDevelopmentConfig()
	}
	zapConfig.OutputPaths = []string{"stdout"}

	var logger *zap.Logger
	if cfg.Logger.FileEnable {
		filename := cfg.Logger.Filename
		if filename == "" {
			filename = cfg.GetLogDir() + "/streamstore.log"
		}
		lumberJackLogger := &lumberjack.Logger{
			Filename:   filename,
			MaxSize:    64,
			MaxBackups: 7,
			MaxAge:     7,
			Compress:   false,
		}
		core := zapcore.NewTee(
			zapcore.NewCore(
				zapcore.NewJSONEncoder(zap.NewProductionEncoderConfig()),
				zapcore.AddSync(lumberJackLogger),
				zapConfig.Level,
			),
			zapcore.NewCore(
				zapcore.NewConsoleEncoder(zap.NewDevelopmentEncoderConfig()),
				zapcore.AddSync(os.Stdout),
				zapConfig.Level,
			),
		)
		logger = zap.New(core, zap.AddCaller())
	} else {
		var err error
		logger, err = zapConfig.Build(zap.AddCaller())
		if err != nil {
			return errors.Wrap(err, "build logger")
		}
	}
	zap.ReplaceGlobals(logger)
	return nil
}

// Init opens every resource the server needs. On error the caller should
// still call Release to close what was opened.
func (a *Application) Init(cfg *config.AppConfig) error {
	a.appConfig = cfg
	if loc, err := time.LoadLocation(cfg.System.Location); err != nil {
		zap.S().Error("timezone config error")
	} else {
		time.Local = loc
	}

	if err := initLogger(cfg); err != nil {
		return err
	}

	if err := metrics.InitMetrics(cfg.GetMetricsDir()); err != nil {
		zap.S().Warn("Failed to initialize metrics:", err)
	}

	db, err := getDatabase(cfg.Database, cfg.GetDataDir())
	if err != nil {
		return err
	}
	a.gormDB = db
	zap.S().Infof("Database connection successful, type: %s", cfg.Database.Type)

	if err := a.MigrateDB(false); err != nil {
		return err
	}
	if cfg.System.Seed {
		a.checkCatalog()
		a.checkSlides()
	}

	a.catalog = catalog.NewStore(a.gormDB)
	a.bus = EventBus.New()
	if a.auditor, err = audit.NewRecorder(a.gormDB, a.bus, cfg.Jobs.AuditWorkers); err != nil {
		return err
	}

	if a.revoked, err = auth.OpenRevocationStore(cfg.GetRevocationFile()); err != nil {
		return err
	}
	secret := cfg.Web.Secret
	if secret == "" {
		secret = random.String(32)
		cfg.Web.Secret = secret
		zap.L().Warn("web.secret is empty, using a random secret; sessions will not survive a restart")
	}
	mgr, generated, err := auth.NewManager(auth.Options{
		Username:     cfg.Admin.Username,
		Password:     cfg.Admin.Password,
		PasswordHash: cfg.Admin.PasswordHash,
		Secret:       secret,
		TTL:          cfg.Web.SessionTTL,
	}, a.revoked)
	if err != nil {
		return err
	}
	a.authMgr = mgr
	if generated != "" {
		zap.L().Warn("no admin password configured, generated one",
			zap.String("username", cfg.Admin.Username),
			zap.String("password", generated))
	}

	if a.checkout, err = cart.NewCheckout(cart.CheckoutOptions{
		StoreName: cfg.Checkout.StoreName,
		Phone:     cfg.Checkout.Phone,
		Currency:  cfg.Checkout.Currency,
		Footer:    cfg.Checkout.Footer,
		NodeID:    cfg.Checkout.NodeID,
	}); err != nil {
		return err
	}

	a.notifier = notify.Noop{}
	if cfg.Notify.Enabled {
		a.notifier = notify.NewSMTPNotifier(notify.SMTPConfig{
			Host: cfg.Notify.SmtpHost,
			Port: cfg.Notify.SmtpPort,
			User: cfg.Notify.SmtpUser,
			Pass: cfg.Notify.SmtpPass,
			From: cfg.Notify.From,
			To:   cfg.Notify.To,
		})
	}

	if cfg.Jobs.Enabled {
		a.initJob()
	}
	return nil
}

func (a *Application) MigrateDB(track bool) (err error) {
	defer func() {
		if err1 := recover(); err1 != nil {
			if os.Getenv("GO_DEGUB_TRACE") != "" {
				debug.PrintStack()
			}
			err = errors.Errorf("migrate panic: %v", err1)
			zap.S().Error(err)
		}
	}()
	db := a.gormDB
	if track {
		db = db.Debug()
	}
	if err := db.Migrator().AutoMigrate(domain.Tables...); err != nil {
		return errors.Wrap(err, "auto migrate")
	}
	return nil
}

func (a *Application) DropAll() {
	_ = a.gormDB.Migrator().DropTable(domain.Tables...)
}

// InitDb drops and recreates every table, then seeds the catalog.
func (a *Application) InitDb() error {
	a.DropAll()
	if err := a.MigrateDB(false); err != nil {
		return err
	}
	a.checkCatalog()
	a.checkSlides()
	return nil
}

// Release stops jobs and closes resources in reverse order of Init.
func (a *Application) Release() {
	if a.sched != nil {
		<-a.sched.Stop().Done()
	}
	if a.auditor != nil {
		a.auditor.Close()
	}
	if a.revoked != nil {
		if err := a.revoked.Close(); err != nil {
			zap.L().Error("close revocation store", zap.Error(err))
		}
	}
	if a.gormDB != nil {
		if sqlDB, err := a.gormDB.DB(); err == nil {
			_ = sqlDB.Close()
		}
	}
	_ = metrics.Close()
	_ = zap.L().Sync()
}

// Shutdown is Release bounded by ctx.
func (a *Application) Shutdown(ctx context.Context) error {
	done := make(chan struct{})
	go func() {
		a.Release()
		close(done)
	}()
	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
