package config

import (
	"fmt"
	"strings"
)

// Validate rejects inconsistent settings
func (c *Config) Validate() error {
	var problems []string

	if c.Port <= 0 || c.Port > 65535 {
		problems = append(problems, fmt.Sprintf("PORT out of range: %d", c.Port))
	}

	switch c.DBDriver {
	case DBDriverPostgres, DBDriverSQLite, DBDriverMemory:
	default:
		problems = append(problems, fmt.Sprintf("DB_DRIVER must be one of postgres, sqlite, memory (got %q)", c.DBDriver))
	}

	if c.isProduction() {
		if c.TelegramBotToken == "" {
			problems = append(problems, "TELEGRAM_BOT_TOKEN must be set in production")
		}
		if c.AllowDevAuth {
			problems = append(problems, "ALLOW_DEV_AUTH cannot be enabled in production")
		}
		if c.DBDriver == DBDriverMemory {
			problems = append(problems, "DB_DRIVER=memory is not allowed in production")
		}
		if c.WebhookSecret == "" {
			problems = append(problems, "TELEGRAM_WEBHOOK_SECRET must be set in production")
		}
	}

	if c.MaxSaveRetries < 1 {
		problems = append(problems, "MAX_SAVE_RETRIES must be at least 1")
	}
	if c.DBMaxConns < 1 {
		problems = append(problems, "DB_MAX_CONNS must be at least 1")
	}
	if c.MaxRequestBytes <= 0 {
		problems = append(problems, "MAX_REQUEST_BYTES must be positive")
	}
	if c.NamingTimeout <= 0 {
		problems = append(problems, "NAMING_TIMEOUT must be positive")
	}
	if c.EventLogRetention <= 0 {
		problems = append(problems, "EVENT_LOG_RETENTION must be positive")
	}
	if c.EventLogCleanupInterval <= 0 {
		problems = append(problems, "EVENT_LOG_CLEANUP_INTERVAL must be positive")
	}

	if len(problems) > 0 {
		return fmt.Errorf("invalid configuration: %s", strings.Join(problems, "; "))
	}
	return nil
}

// Warnings returns non-fatal issues such as example values left in place
func (c *Config) Warnings() []string {
	var warnings []string

	if c.DBPassword == ExampleDBPassword {
		warnings = append(warnings, "DB_PASSWORD appears to be using the example value - please use a secure password")
	}
	if c.TelegramBotToken == ExampleBotToken {
		warnings = append(warnings, "TELEGRAM_BOT_TOKEN appears to be using the example value")
	}
	if c.DevAuthAllowed() {
		warnings = append(warnings, "development auth bypass is active - requests without init data use a mock player")
	}

	return warnings
}

func (c *Config) isProduction() bool {
	return c.Environment == EnvProduction || c.Environment == EnvProd
}
