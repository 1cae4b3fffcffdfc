package utils

import (
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	App      AppConfig
	Database DatabaseConfig
	JWT      JWTConfig
	Email    EmailConfig
	Checkout CheckoutConfig
	Catalog  CatalogConfig
}

type AppConfig struct {
	Name        string
	Port        string
	Debug       bool
	LogPath     string
	CORSOrigins []string
}

type DatabaseConfig struct {
	Host     string
	Port     string
	Name     string
	User     string
	Password string
	SSLMode  string
	MaxConns int32
}

type JWTConfig struct {
	Secret      string
	ExpiryHours int
}

type EmailConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	From     string
	Support  string
	Timeout  time.Duration // bounds a whole delivery, from dial to QUIT
}

// CheckoutConfig toggles the optional guards around order placement.
type CheckoutConfig struct {
	CompensateOrphans bool
	ShortRefLength    int
}

type CatalogConfig struct {
	FeaturedLimit int
}

// LoadConfig reads path (a dotenv file) when it exists, then lets the process
// environment override every key.
func LoadConfig(path string) (*Config, error) {
	v := viper.New()
	v.SetConfigType("env")

	v.SetDefault("APP_NAME", "storefront")
	v.SetDefault("PORT", "8080")
	v.SetDefault("DEBUG", false)
	v.SetDefault("LOG_PATH", "logs/")
	v.SetDefault("CORS_ORIGINS", "*")
	v.SetDefault("DB_HOST", "localhost")
	v.SetDefault("DB_PORT", "5432")
	v.SetDefault("DB_SSLMODE", "disable")
	v.SetDefault("DB_MAX_CONNS", 10)
	v.SetDefault("JWT_EXPIRY_HOURS", 24)
	v.SetDefault("SMTP_PORT", 25)
	v.SetDefault("SMTP_TIMEOUT_SECONDS", 10)
	v.SetDefault("CHECKOUT_COMPENSATE_ORPHANS", false)
	v.SetDefault("CHECKOUT_SHORT_REF_LENGTH", 8)
	v.SetDefault("CATALOG_FEATURED_LIMIT", 4)

	if path != "" {
		if _, err := os.Stat(path); err == nil {
			v.SetConfigFile(path)
			if err := v.ReadInConfig(); err != nil {
				return nil, err
			}
		}
	}

	v.AutomaticEnv()

	config := &Config{
		App: AppConfig{
			Name:        v.GetString("APP_NAME"),
			Port:        v.GetString("PORT"),
			Debug:       v.GetBool("DEBUG"),
			LogPath:     v.GetString("LOG_PATH"),
			CORSOrigins: splitList(v.GetString("CORS_ORIGINS")),
		},
		Database: DatabaseConfig{
			Host:     v.GetString("DB_HOST"),
			Port:     v.GetString("DB_PORT"),
			Name:     v.GetString("DB_NAME"),
			User:     v.GetString("DB_USER"),
			Password: v.GetString("DB_PASS"),
			SSLMode:  v.GetString("DB_SSLMODE"),
			MaxConns: v.GetInt32("DB_MAX_CONNS"),
		},
		JWT: JWTConfig{
			Secret:      v.GetString("JWT_SECRET"),
			ExpiryHours: v.GetInt("JWT_EXPIRY_HOURS"),
		},
		Email: EmailConfig{
			Host:     v.GetString("SMTP_HOST"),
			Port:     v.GetInt("SMTP_PORT"),
			User:     v.GetString("SMTP_USER"),
			Password: v.GetString("SMTP_PASS"),
			From:     v.GetString("EMAIL_FROM"),
			Support:  v.GetString("EMAIL_SUPPORT"),
			Timeout:  time.Duration(v.GetInt("SMTP_TIMEOUT_SECONDS")) * time.Second,
		},
		Checkout: CheckoutConfig{
			CompensateOrphans: v.GetBool("CHECKOUT_COMPENSATE_ORPHANS"),
			ShortRefLength:    v.GetInt("CHECKOUT_SHORT_REF_LENGTH"),
		},
		Catalog: CatalogConfig{
			FeaturedLimit: v.GetInt("CATALOG_FEATURED_LIMIT"),
		},
	}

	return config, nil
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
