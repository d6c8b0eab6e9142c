package config

// EnvPrefix namespaces every environment variable consumed by the service.
const EnvPrefix = "VENUEHQ"

const (
	AppEnvDev  = "dev"
	AppEnvProd = "prod"
)

const (
	EnvAppEnv   = "VENUEHQ_APP_ENV"
	EnvPort     = "VENUEHQ_APP_PORT"
	EnvRedisURL = "VENUEHQ_REDIS_URL"
	EnvDBDSN    = "VENUEHQ_DB_DSN"
	EnvDBHost   = "VENUEHQ_DB_HOST"
	EnvDBUser   = "VENUEHQ_DB_USER"
	EnvDBName   = "VENUEHQ_DB_NAME"
)

var legacyDBEnvVars = []string{EnvDBHost, EnvDBUser, EnvDBName}
