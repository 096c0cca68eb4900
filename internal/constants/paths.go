package constants

// DefaultEnvPath is the default path to the .env file
const DefaultEnvPath = "./.env"

// DefaultConfigPath is the config file used by `cronty config validate` when
// no path is given.
const DefaultConfigPath = "./config.toml"

// HealthzPath is the liveness endpoint of the http transport.
const HealthzPath = "/healthz"
