package config

// EnvPrefix namespaces every environment variable read by Load.
const EnvPrefix = "XEROS"

const (
	AppEnvDev  = "dev"
	AppEnvProd = "prod"
)

const (
	EnvDBDSN  = "XEROS_DB_DSN"
	EnvDBHost = "XEROS_DB_HOST"
	EnvDBUser = "XEROS_DB_USER"
	EnvDBName = "XEROS_DB_NAME"
)

var legacyDBEnvVars = []string{EnvDBHost, EnvDBUser, EnvDBName}
