package config

import (
	"os"
	"path"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/pkg/errors"
	"github.com/spf13/cast"
	"gopkg.in/yaml.v3"
)

const envPrefix = "STREAMSTORE_"

// DBConfig Database config
type DBConfig struct {
	Type     string `yaml:"type"` // sqlite | postgres
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	Name     string `yaml:"name"`
	User     string `yaml:"user"`
	Passwd   string `yaml:"passwd"`
	MaxConn  int    `yaml:"max_conn"`
	IdleConn int    `yaml:"idle_conn"`
	Debug    bool   `yaml:"debug"`
}

// SysConfig System config
type SysConfig struct {
	Appid    string `yaml:"appid"`
	Location string `yaml:"location"`
	Workdir  string `yaml:"workdir"`
	Debug    bool   `yaml:"debug"`
	Seed     bool   `yaml:"seed"`
}

// WebConfig WEB Config
type WebConfig struct {
	Host         string        `yaml:"host"`
	Port         int           `yaml:"port"`
	Secret       string        `yaml:"secret"`
	BodyLimit    string        `yaml:"body_limit"`
	StaticDir    string        `yaml:"static_dir"`
	SessionTTL   time.Duration `yaml:"session_ttl"`
	ReadTimeout  time.Duration `yaml:"read_timeout"`
	WriteTimeout time.Duration `yaml:"write_timeout"`
}

type LogConfig struct {
	Mode       string `yaml:"mode"`
	FileEnable bool   `yaml:"file_enable"`
	Filename   string `yaml:"filename"`
}

// AdminConfig holds the single admin credential. PasswordHash is a bcrypt
// hash and wins over Password when both are set.
type AdminConfig struct {
	Username     string `yaml:"username"`
	Password     string `yaml:"password"`
	PasswordHash string `yaml:"password_hash"`
}

// CheckoutConfig controls the WhatsApp order hand-off.
type CheckoutConfig struct {
	StoreName string `yaml:"store_name"`
	Phone     string `yaml:"phone"`
	Currency  string `yaml:"currency"`
	Footer    string `yaml:"footer"`
	NodeID    int64  `yaml:"node_id"`
}

// NotifyConfig SMTP settings for order notification mails
type NotifyConfig struct {
	Enabled  bool   `yaml:"enabled"`
	SmtpHost string `yaml:"smtp_host"`
	SmtpPort int    `yaml:"smtp_port"`
	SmtpUser string `yaml:"smtp_user"`
	SmtpPass string `yaml:"smtp_pass"`
	From     string `yaml:"from"`
	To       string `yaml:"to"`
}

type JobsConfig struct {
	Enabled            bool `yaml:"enabled"`
	AuditRetentionDays int  `yaml:"audit_retention_days"`
	AuditWorkers       int  `yaml:"audit_workers"`
}

type AppConfig struct {
	System   SysConfig      `yaml:"system"`
	Web      WebConfig      `yaml:"web"`
	Database DBConfig       `yaml:"database"`
	Logger   LogConfig      `yaml:"logger"`
	Admin    AdminConfig    `yaml:"admin"`
	Checkout CheckoutConfig `yaml:"checkout"`
	Notify   NotifyConfig   `yaml:"notify"`
	Jobs     JobsConfig     `yaml:"jobs"`
}

func (c *AppConfig) GetLogDir() string {
	return path.Join(c.System.Workdir, "logs")
}

func (c *AppConfig) GetDataDir() string {
	return path.Join(c.System.Workdir, "data")
}

// GetRevocationFile is the bbolt file that holds logged-out session ids.
func (c *AppConfig) GetRevocationFile() string {
	return path.Join(c.GetDataDir(), "sessions.db")
}

// GetMetricsDir is the tstorage data path.
func (c *AppConfig) GetMetricsDir() string {
	return path.Join(c.GetDataDir(), "metrics")
}

// InitDirs creates the working directories
func (c *AppConfig) InitDirs() error {
	for _, dir := range []string{c.GetLogDir(), c.GetDataDir()} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return errors.Wrapf(err, "create %s", dir)
		}
	}
	return nil
}

var DefaultAppConfig = &AppConfig{
	System: SysConfig{
		Appid:    "StreamStore",
		Location: "America/Fortaleza",
		Workdir:  "/var/streamstore",
		Debug:    true,
		Seed:     true,
	},
	Web: WebConfig{
		Host:         "0.0.0.0",
		Port:         3000,
		BodyLimit:    "50M",
		SessionTTL:   12 * time.Hour,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
	},
	Database: DBConfig{
		Type:     "sqlite",
		Host:     "127.0.0.1",
		Port:     5432,
		Name:     "store.db",
		User:     "postgres",
		Passwd:   "",
		MaxConn:  100,
		IdleConn: 10,
		Debug:    false,
	},
	Logger: LogConfig{
		Mode:       "development",
		FileEnable: false,
		Filename:   "/var/streamstore/logs/streamstore.log",
	},
	Admin: AdminConfig{
		Username: "admin",
	},
	Checkout: CheckoutConfig{
		StoreName: "StreamStore",
		Phone:     "5585982349916",
		Currency:  "R$",
		Footer:    "_Aguardando instruções para pagamento._",
		NodeID:    1,
	},
	Notify: NotifyConfig{
		Enabled:  false,
		SmtpPort: 587,
	},
	Jobs: JobsConfig{
		Enabled:            true,
		AuditRetentionDays: 365,
		AuditWorkers:       4,
	},
}

// LoadConfig reads the YAML file at cfile (when it exists), then the .env
// file in the working directory, then STREAMSTORE_* environment overrides.
func LoadConfig(cfile string) (*AppConfig, error) {
	cfg := *DefaultAppConfig
	if cfile == "" {
		cfile = "streamstore.yml"
	}
	if _, err := os.Stat(cfile); err == nil {
		data, err := os.ReadFile(cfile)
		if err != nil {
			return nil, errors.Wrapf(err, "read config %s", cfile)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, errors.Wrapf(err, "parse config %s", cfile)
		}
	}

	// a missing .env is the normal case
	_ = godotenv.Load()

	applyEnv(&cfg)
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks values that would otherwise fail late at startup.
func (c *AppConfig) Validate() error {
	switch strings.ToLower(c.Database.Type) {
	case "sqlite", "sqlite3", "postgres", "postgresql":
	default:
		return errors.Errorf("unsupported database type %q", c.Database.Type)
	}
	if c.Web.Port <= 0 || c.Web.Port > 65535 {
		return errors.Errorf("invalid web port %d", c.Web.Port)
	}
	if c.Web.SessionTTL <= 0 {
		return errors.New("web.session_ttl must be positive")
	}
	if strings.TrimSpace(c.Admin.Username) == "" {
		return errors.New("admin.username is required")
	}
	if c.Notify.Enabled && (c.Notify.SmtpHost == "" || c.Notify.To == "") {
		return errors.New("notify.smtp_host and notify.to are required when notify is enabled")
	}
	return nil
}

func setEnvValue(name string, f func(string)) {
	if v, ok := os.LookupEnv(envPrefix + name); ok && strings.TrimSpace(v) != "" {
		f(strings.TrimSpace(v))
	}
}

func applyEnv(cfg *AppConfig) {
	setEnvValue("SYSTEM_WORKDIR", func(v string) { cfg.System.Workdir = v })
	setEnvValue("SYSTEM_LOCATION", func(v string) { cfg.System.Location = v })
	setEnvValue("SYSTEM_DEBUG", func(v string) { cfg.System.Debug = cast.ToBool(v) })
	setEnvValue("SYSTEM_SEED", func(v string) { cfg.System.Seed = cast.ToBool(v) })

	setEnvValue("WEB_HOST", func(v string) { cfg.Web.Host = v })
	setEnvValue("WEB_PORT", func(v string) { cfg.Web.Port = cast.ToInt(v) })
	setEnvValue("WEB_SECRET", func(v string) { cfg.Web.Secret = v })
	setEnvValue("WEB_BODY_LIMIT", func(v string) { cfg.Web.BodyLimit = v })
	setEnvValue("WEB_STATIC_DIR", func(v string) { cfg.Web.StaticDir = v })
	setEnvValue("WEB_SESSION_TTL", func(v string) { cfg.Web.SessionTTL = cast.ToDuration(v) })

	setEnvValue("DB_TYPE", func(v string) { cfg.Database.Type = v })
	setEnvValue("DB_HOST", func(v string) { cfg.Database.Host = v })
	setEnvValue("DB_PORT", func(v string) { cfg.Database.Port = cast.ToInt(v) })
	setEnvValue("DB_NAME", func(v string) { cfg.Database.Name = v })
	setEnvValue("DB_USER", func(v string) { cfg.Database.User = v })
	setEnvValue("DB_PWD", func(v string) { cfg.Database.Passwd = v })
	setEnvValue("DB_DEBUG", func(v string) { cfg.Database.Debug = cast.ToBool(v) })

	setEnvValue("LOGGER_MODE", func(v string) { cfg.Logger.Mode = v })
	setEnvValue("LOGGER_FILE_ENABLE", func(v string) { cfg.Logger.FileEnable = cast.ToBool(v) })

	setEnvValue("ADMIN_USERNAME", func(v string) { cfg.Admin.Username = v })
	setEnvValue("ADMIN_PASSWORD", func(v string) { cfg.Admin.Password = v })
	setEnvValue("ADMIN_PASSWORD_HASH", func(v string) { cfg.Admin.PasswordHash = v })

	setEnvValue("CHECKOUT_PHONE", func(v string) { cfg.Checkout.Phone = v })
	setEnvValue("CHECKOUT_STORE_NAME", func(v string) { cfg.Checkout.StoreName = v })

	setEnvValue("NOTIFY_ENABLED", func(v string) { cfg.Notify.Enabled = cast.ToBool(v) })
	setEnvValue("NOTIFY_SMTP_HOST", func(v string) { cfg.Notify.SmtpHost = v })
	setEnvValue("NOTIFY_SMTP_PORT", func(v string) { cfg.Notify.SmtpPort = cast.ToInt(v) })
	setEnvValue("NOTIFY_SMTP_USER", func(v string) { cfg.Notify.SmtpUser = v })
	setEnvValue("NOTIFY_SMTP_PASS", func(v string) { cfg.Notify.SmtpPass = v })
	setEnvValue("NOTIFY_FROM", func(v string) { cfg.Notify.From = v })
	setEnvValue("NOTIFY_TO", func(v string) { cfg.Notify.To = v })

	setEnvValue("JOBS_ENABLED", func(v string) { cfg.Jobs.Enabled = cast.ToBool(v) })
}
