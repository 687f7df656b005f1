package config

import (
	"fmt"
	"os"
	"strconv"
)

type Config struct {
	Port        string
	MongoDBURI  string
	MongoDBName string
	JWTSecret   string

	SMTPHost string
	SMTPPort int
	SMTPUser string
	SMTPPass string

	SightengineURL    string
	SightengineUser   string
	SightengineSecret string

	PublicDir   string
	Environment string
	LogLevel    string
}

func LoadConfig() (*Config, error) {
	smtpPort, err := strconv.Atoi(getEnvWithDefault("SMTP_PORT", "587"))
	if err != nil {
		return nil, fmt.Errorf("invalid SMTP_PORT: %v", err)
	}

	cfg := &Config{
		Port:              getEnvWithDefault("PORT", "8080"),
		MongoDBURI:        os.Getenv("MONGODB_URI"),
		MongoDBName:       getEnvWithDefault("MONGODB_DB", "kedai"),
		JWTSecret:         os.Getenv("JWT_SECRET"),
		SMTPHost:          getEnvWithDefault("SMTP_HOST", "smtp.gmail.com"),
		SMTPPort:          smtpPort,
		SMTPUser:          os.Getenv("EMAIL_USER"),
		SMTPPass:          os.Getenv("EMAIL_PASS"),
		SightengineURL:    getEnvWithDefault("SIGHTENGINE_URL", "https://api.sightengine.com/1.0/check.json"),
		SightengineUser:   os.Getenv("SIGHTENGINE_USER"),
		SightengineSecret: os.Getenv("SIGHTENGINE_SECRET"),
		PublicDir:         getEnvWithDefault("PUBLIC_DIR", "public"),
		Environment:       getEnvWithDefault("ENVIRONMENT", "development"),
		LogLevel:          getEnvWithDefault("LOG_LEVEL", "info"),
	}

	// Validate required fields
	if cfg.MongoDBURI == "" {
		return nil, fmt.Errorf("MONGODB_URI is required")
	}
	if cfg.JWTSecret == "" {
		return nil, fmt.Errorf("JWT_SECRET is required")
	}

	return cfg, nil
}

func getEnvWithDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

func (c *Config) IsDevelopment() bool {
	return c.Environment == "development"
}
