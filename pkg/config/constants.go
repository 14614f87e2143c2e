package config

// EnvPrefix scopes every environment variable read by envconfig.
const EnvPrefix = "DISTROCART"

const (
	AppEnvDev  = "dev"
	AppEnvProd = "production"
)

// Database drivers the db client knows how to open.
const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

const (
	EnvAppEnv   = "DISTROCART_APP_ENV"
	EnvPort     = "DISTROCART_APP_PORT"
	EnvDBDSN    = "DISTROCART_DB_DSN"
	EnvDBHost   = "DISTROCART_DB_HOST"
	EnvDBUser   = "DISTROCART_DB_USER"
	EnvDBName   = "DISTROCART_DB_NAME"
	EnvRedisURL = "DISTROCART_REDIS_URL"

	EnvUseSQLite = "DISTROCART_USE_SQLITE"

	EnvJWTSecret  = "DISTROCART_JWT_SECRET"
	EnvJWTIssuer  = "DISTROCART_JWT_ISSUER"
	EnvJWTExpMins = "DISTROCART_JWT_EXPIRATION_MINUTES"
)

var legacyDBEnvVars = []string{EnvDBHost, EnvDBUser, EnvDBName}
