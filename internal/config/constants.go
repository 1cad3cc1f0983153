package config

// Environment names
const (
	EnvDev         = "dev"
	EnvDevelopment = "development"
	EnvStaging     = "staging"
	EnvProduction  = "production"
	EnvProd        = "prod"
)

// Storage drivers
const (
	DBDriverPostgres = "postgres"
	DBDriverSQLite   = "sqlite"
	DBDriverMemory   = "memory"
)

// SQLitePragmas is appended to the sqlite path
const SQLitePragmas = "?_pragma=journal_mode(WAL)&_pragma=foreign_keys(ON)&_pragma=busy_timeout(5000)"

// Placeholder values shipped in .env.example
const (
	ExampleDBPassword = "change_this_secure_password"
	ExampleBotToken   = "123456:replace_with_bot_token"
)
