package config

import "fmt"

// AppConfig holds HTTP server configuration
type AppConfig struct {
	Host string `env:"APP_HOST" env-default:"localhost"`
	Port uint16 `env:"APP_PORT" env-default:"8000"`
}

// Addr returns the host:port listen address
func (a AppConfig) Addr() string {
	return fmt.Sprintf("%s:%d", a.Host, a.Port)
}

// DatabaseConfig holds PostgreSQL database configuration
type DatabaseConfig struct {
	Host     string `env:"ADMIN_PG_HOST" env-default:"localhost"`
	Port     uint16 `env:"ADMIN_PG_PORT" env-default:"5432"`
	Database string `env:"ADMIN_PG_DATABASE" env-default:"admin_db"`
	User     string `env:"ADMIN_PG_USER" env-default:"admin"`
	Password string `env:"ADMIN_PG_PASSWORD" env-default:"pwd"`
}

// ToDatabaseURL converts the config to a PostgreSQL connection URL
func (d DatabaseConfig) ToDatabaseURL() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=disable",
		d.User, d.Password, d.Host, d.Port, d.Database)
}

// TokenConfig holds access token configuration.
// ExpiryMinutes of 0 means issued tokens never expire.
type TokenConfig struct {
	ExpiryMinutes int `env:"TOKEN_EXPIRY_MINUTES" env-default:"0"`
}

// CorsConfig holds allowed origins for the SPA front-end
type CorsConfig struct {
	AllowedOrigins []string `env:"CORS_ALLOWED_ORIGINS" env-default:"http://localhost:5173"`
}
