package config

// EnvPrefix is the envconfig prefix shared by every variable the app reads.
const EnvPrefix = "barbarashop"

const (
	AppEnvDev  = "development"
	AppEnvProd = "production"
)

const (
	EnvDBDSN  = "BARBARASHOP_DB_DSN"
	EnvDBHost = "BARBARASHOP_DB_HOST"
	EnvDBUser = "BARBARASHOP_DB_USER"
	EnvDBName = "BARBARASHOP_DB_NAME"
)

var legacyDBEnvVars = []string{EnvDBHost, EnvDBUser, EnvDBName}
