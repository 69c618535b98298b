package config

import (
	"fmt"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds runtime configuration for the back-office service.
type Config struct {
	AppEnv            string
	AppPort           string
	BaseURL           string
	DatabaseDSN       string
	JWTSecret         string
	AllowRegistration bool
	AllowedOrigins    []string
	GeminiAPIKey      string
}

// HTTPAddress returns the address the HTTP server should listen on.
func (c Config) HTTPAddress() string {
	if strings.HasPrefix(c.AppPort, ":") {
		return c.AppPort
	}
	return fmt.Sprintf(":%s", c.AppPort)
}

// Load reads configuration from environment variables and an optional .env file.
func Load() (Config, error) {
	// .env is optional; real deployments set the environment directly.
	_ = godotenv.Load()

	v := viper.New()
	v.SetEnvPrefix("POS")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	v.SetDefault("app.env", "development")
	v.SetDefault("app.port", "8080")
	v.SetDefault("base.url", "http://localhost:8080")
	v.SetDefault("allow.registration", false)
	v.SetDefault("allowed.origins", "http://localhost:5173")

	cfg := Config{
		AppEnv:            v.GetString("app.env"),
		AppPort:           v.GetString("app.port"),
		BaseURL:           v.GetString("base.url"),
		DatabaseDSN:       v.GetString("db.dsn"),
		JWTSecret:         v.GetString("jwt.secret"),
		AllowRegistration: v.GetBool("allow.registration"),
		AllowedOrigins:    strings.Split(v.GetString("allowed.origins"), ","),
		GeminiAPIKey:      v.GetString("gemini.api.key"),
	}

	if cfg.DatabaseDSN == "" {
		return Config{}, fmt.Errorf("POS_DB_DSN is required")
	}
	if cfg.JWTSecret == "" {
		return Config{}, fmt.Errorf("POS_JWT_SECRET is required")
	}

	return cfg, nil
}
