package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Config holds the application configuration
type Config struct {
	Port        int    `env:"PORT" envDefault:"8080"`
	LogLevel    string `env:"LOG_LEVEL" envDefault:"info"`
	LogFormat   string `env:"LOG_FORMAT" envDefault:"text"`
	Environment string `env:"ENVIRONMENT" envDefault:"dev"`
	ServiceName string `env:"SERVICE_NAME" envDefault:"fairy-grove"`
	Version     string `env:"APP_VERSION" envDefault:"dev"`

	// Storage
	DBDriver   string `env:"DB_DRIVER" envDefault:"postgres"`
	DBURL      string `env:"DB_URL"`
	DBUser     string `env:"DB_USER" envDefault:"postgres"`
	DBPassword string `env:"DB_PASSWORD" envDefault:"postgres"`
	DBHost     string `env:"DB_HOST" envDefault:"localhost"`
	DBPort     string `env:"DB_PORT" envDefault:"5432"`
	DBName     string `env:"DB_NAME" envDefault:"fairygrove"`
	SQLitePath string `env:"SQLITE_PATH" envDefault:"fairygrove.db"`

	DBMaxConns        int           `env:"DB_MAX_CONNS" envDefault:"10"`
	DBMaxConnIdleTime time.Duration `env:"DB_MAX_CONN_IDLE_TIME" envDefault:"5m"`
	DBMaxConnLifetime time.Duration `env:"DB_MAX_CONN_LIFETIME" envDefault:"1h"`

	// Telegram
	TelegramBotToken string        `env:"TELEGRAM_BOT_TOKEN"`
	AllowDevAuth     bool          `env:"ALLOW_DEV_AUTH" envDefault:"false"`
	InitDataMaxAge   time.Duration `env:"INIT_DATA_MAX_AGE" envDefault:"1h"`
	TelegramAPIURL   string        `env:"TELEGRAM_API_URL" envDefault:"https://api.telegram.org"`
	WebhookSecret    string        `env:"TELEGRAM_WEBHOOK_SECRET"`

	// Cosmetic naming
	NamingAPIKey  string        `env:"NAMING_API_KEY"`
	NamingAPIURL  string        `env:"NAMING_API_URL" envDefault:"https://api.groq.com/openai/v1/chat/completions"`
	NamingModel   string        `env:"NAMING_MODEL" envDefault:"llama3-8b-8192"`
	NamingTimeout time.Duration `env:"NAMING_TIMEOUT" envDefault:"3s"`

	MaxSaveRetries int `env:"MAX_SAVE_RETRIES" envDefault:"3"`

	// Event system
	EventMaxRetries         int           `env:"EVENT_MAX_RETRIES" envDefault:"5"`
	EventRetryDelay         time.Duration `env:"EVENT_RETRY_DELAY" envDefault:"2s"`
	EventDeadLetterPath     string        `env:"EVENT_DEADLETTER_PATH" envDefault:"logs/event_deadletter.jsonl"`
	EventLogRetention       time.Duration `env:"EVENT_LOG_RETENTION" envDefault:"720h"`
	EventLogCleanupInterval time.Duration `env:"EVENT_LOG_CLEANUP_INTERVAL" envDefault:"24h"`

	// HTTP
	TrustedProxies  []string      `env:"TRUSTED_PROXIES" envSeparator:","`
	MaxRequestBytes int64         `env:"MAX_REQUEST_BYTES" envDefault:"1048576"`
	CORSOrigins     []string      `env:"CORS_ALLOWED_ORIGINS" envSeparator:"," envDefault:"https://web.telegram.org,https://t.me"`
	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT" envDefault:"10s"`
}

// Load loads the configuration from environment variables
func Load() (*Config, error) {
	// Load .env file if it exists, but don't fail if it doesn't (could be real env vars)
	_ = godotenv.Load()

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// GetDBConnString returns the PostgreSQL connection string
func (c *Config) GetDBConnString() string {
	if c.DBURL != "" {
		return c.DBURL
	}
	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=disable",
		c.DBUser,
		c.DBPassword,
		c.DBHost,
		c.DBPort,
		c.DBName,
	)
}

// SQLiteDSN returns the modernc sqlite data source name
func (c *Config) SQLiteDSN() string {
	return c.SQLitePath + SQLitePragmas
}

// IsDevelopment reports whether the service runs in a dev environment
func (c *Config) IsDevelopment() bool {
	return c.Environment == EnvDev || c.Environment == EnvDevelopment
}

// DevAuthAllowed reports whether unsigned requests may use the mock dev user
func (c *Config) DevAuthAllowed() bool {
	return c.AllowDevAuth || (c.TelegramBotToken == "" && c.IsDevelopment())
}

// PaymentsEnabled reports whether Telegram Stars invoices can be issued
func (c *Config) PaymentsEnabled() bool {
	return c.TelegramBotToken != ""
}

// NamingEnabled reports whether the remote name generator is configured
func (c *Config) NamingEnabled() bool {
	return c.NamingAPIKey != ""
}
