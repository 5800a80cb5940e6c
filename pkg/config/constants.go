package config

const (
	// EnvPrefix namespaces every environment variable the service reads.
	EnvPrefix = "LOGYSMA"

	AppEnvDev  = "dev"
	AppEnvProd = "prod"

	EnvDBDSN  = "LOGYSMA_DB_DSN"
	EnvDBHost = "LOGYSMA_DB_HOST"
	EnvDBUser = "LOGYSMA_DB_USER"
	EnvDBName = "LOGYSMA_DB_NAME"
)

var legacyDBEnvVars = []string{EnvDBHost, EnvDBUser, EnvDBName}
