package config

import (
	"os"

	"github.com/joho/godotenv"

	"github.com/kodipay/kodipay-server/internal/utils"
)

// AppName identifies the service in log output.
const AppName = "kodipay-server"

// Config holds all application configuration.
type Config struct {
	AppPort string
	AppURL  string
	DBUrl   string

	JWTSecret        []byte
	JWTRefreshSecret []byte

	MpesaConsumerKey    string
	MpesaConsumerSecret string
	MpesaShortCode      string
	MpesaPasskey        string
	MpesaSandbox        bool
}

// LoadConfig reads the environment (optionally seeded from a .env file) and
// fatals on anything required being absent.
func LoadConfig() *Config {
	//----------------------------------------------------------------------
	// Load .env if present. Real deployments set the environment directly.
	//----------------------------------------------------------------------
	if err := godotenv.Load(); err != nil {
		utils.Logger.Debug("No .env file found; using process environment")
	}

	utils.Logger.Info("Loading config for app: ", AppName)

	cfg := &Config{
		AppPort:             mustGetEnv("APP_PORT"),
		AppURL:              mustGetEnv("APP_URL"),
		DBUrl:               mustGetEnv("DATABASE_URL"),
		JWTSecret:           []byte(mustGetEnv("JWT_SECRET")),
		JWTRefreshSecret:    []byte(mustGetEnv("JWT_REFRESH_SECRET")),
		MpesaConsumerKey:    mustGetEnv("MPESA_CONSUMER_KEY"),
		MpesaConsumerSecret: mustGetEnv("MPESA_CONSUMER_SECRET"),
		MpesaShortCode:      mustGetEnv("MPESA_SHORT_CODE"),
		MpesaPasskey:        mustGetEnv("MPESA_PASSKEY"),
		MpesaSandbox:        os.Getenv("MPESA_ENV") != "production",
	}

	utils.Logger.Debugf("App can be accessed at: %s", cfg.AppURL)
	return cfg
}

func mustGetEnv(key string) string {
	v := os.Getenv(key)
	if v == "" {
		utils.Logger.Fatalf("%s env var is missing", key)
	}
	return v
}
