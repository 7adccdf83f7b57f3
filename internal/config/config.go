package config

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	_ "github.com/joho/godotenv/autoload"
)

/*
	Every setting comes from the environment. A .env file next to
	the binary is loaded automatically for local runs.

	https://www.reddit.com/r/golang/comments/1dzxah6/comment/lcjfw2h
*/

type Config struct {
	Host    string
	Port    string
	AppEnv  string
	Server  ServerConfig
	Session SessionConfig
	Ledger  LedgerConfig
	CORS    CORSConfig
	Logging LogConfig
}

func (c *Config) Addr() string {
	return c.Host + ":" + c.Port
}

type LogConfig struct {
	Style string // e.g. json, text
	Level string // e.g. debug, info, warn, error
}

type ServerConfig struct {
	ReadHeaderTimeout time.Duration
}

type SessionConfig struct {
	CookieName string
	Domain     string
	SameSite   http.SameSite
	Secure     bool
	SecretKey  []byte // for signing cookies
}

type LedgerConfig struct {
	// Opening balances, e.g. alice:50000,hacker:0
	Seed map[string]int64
}

type CORSConfig struct {
	AllowedOrigins []string
}

const defaultSeed = "alice:50000,hacker:0"

func LoadConfig() (*Config, error) {
	appEnv := strings.ToUpper(getEnv("APP_ENV", "DEV"))
	switch appEnv {
	case "DEV":
	case "TEST":
	case "STAGING":
	case "PROD":
	default:
		return nil, fmt.Errorf("[CONFIG] APP_ENV=%s invalid", appEnv)
	}

	sameSite, err := parseSameSite(getEnv("SESSION_SAMESITE", ""))
	if err != nil {
		return nil, err
	}

	seed, err := parseSeed(getEnv("LEDGER_SEED", defaultSeed))
	if err != nil {
		return nil, err
	}

	session := SessionConfig{
		CookieName: getEnv("SESSION_COOKIE_NAME", "session"),
		Domain:     getEnv("SESSION_COOKIE_DOMAIN", ""),
		SameSite:   sameSite,
		Secure:     getEnvBool("SESSION_SECURE", false),
		SecretKey:  getEnvSecretKey("SESSION_SECRET"),
	}

	config := &Config{
		Host:   getEnv("HOST", "localhost"),
		Port:   getEnv("PORT", "3000"),
		AppEnv: appEnv,
		Server: ServerConfig{
			ReadHeaderTimeout: getEnvDuration("SERVER_READ_HEADER_TIMEOUT", 5*time.Second),
		},
		Session: session,
		Ledger:  LedgerConfig{Seed: seed},
		CORS: CORSConfig{
			AllowedOrigins: splitList(getEnv("CORS_ALLOWED_ORIGINS", "")),
		},
		Logging: LogConfig{
			Style: getEnv("LOG_STYLE", "text"),
			Level: getEnv("LOG_LEVEL", "info"),
		},
	}

	return config, nil
}
