package config

// EnvPrefix is handed to envconfig; individual fields carry full variable
// names so the prefix mostly documents ownership.
const EnvPrefix = "shopkart"

const (
	AppEnvDev  = "dev"
	AppEnvProd = "prod"
)

const (
	EnvDBDSN  = "SHOPKART_DB_DSN"
	EnvDBHost = "SHOPKART_DB_HOST"
	EnvDBUser = "SHOPKART_DB_USER"
	EnvDBName = "SHOPKART_DB_NAME"
)

var requiredDBEnvVars = []string{EnvDBHost, EnvDBUser, EnvDBName}
