package config

import (
	"crypto/sha256"
	"fmt"
	"io"
	"net/http"
	"os"
	"strconv"
	"strings"
	"time"

	"golang.org/x/crypto/hkdf"
)

func getEnvOrPanic(key string) string {
	val := os.Getenv(key)
	if val == "" {
		panic(fmt.Sprintf("[CONFIG] %s not set", key))
	}
	return val
}

func getEnv(key string, defaultValue string) string {
	val := os.Getenv(key)
	if val == "" {
		return defaultValue
	}
	return val
}

func getEnvBool(key string, defaultValue bool) bool {
	valueString := os.Getenv(key)
	if valueString == "" {
		return defaultValue
	}

	value, err := strconv.ParseBool(valueString)
	if err != nil {
		fmt.Fprintf(os.Stdout, "[CONFIG] %s: %s invalid, using default: %v\n", key, valueString, defaultValue)
		return defaultValue
	}

	return value
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	valueString := os.Getenv(key)
	if valueString == "" {
		fmt.Fprintf(os.Stdout, "[CONFIG] %s not set, using default: %s\n", key, defaultValue)
		return defaultValue
	}

	value, err := time.ParseDuration(valueString)
	if err != nil {
		fmt.Fprintf(os.Stdout, "[CONFIG] %s: %s invalid, using default: %v\n", key, valueString, defaultValue)
		return defaultValue
	}

	return value
}

const keyLength = 32

// The secret is a passphrase, not raw key material, so the signing key
// is stretched out of it with HKDF.
func getEnvSecretKey(key string) []byte {
	return deriveKey(getEnvOrPanic(key))
}

func deriveKey(secret string) []byte {
	kdf := hkdf.New(sha256.New, []byte(secret), nil, []byte("bank-demo session cookie"))

	derived := make([]byte, keyLength)
	if _, err := io.ReadFull(kdf, derived); err != nil {
		panic(fmt.Sprintf("[CONFIG] key derivation failed: %v", err))
	}

	return derived
}

func parseSameSite(value string) (http.SameSite, error) {
	switch strings.ToLower(value) {
	case "":
		// No attribute at all: the browser default applies.
		return 0, nil
	case "lax":
		return http.SameSiteLaxMode, nil
	case "strict":
		return http.SameSiteStrictMode, nil
	case "none":
		return http.SameSiteNoneMode, nil
	default:
		return 0, fmt.Errorf("[CONFIG] SESSION_SAMESITE=%s invalid", value)
	}
}

func parseSeed(value string) (map[string]int64, error) {
	seed := make(map[string]int64)

	for _, entry := range splitList(value) {
		name, balanceString, ok := strings.Cut(entry, ":")
		name = strings.TrimSpace(name)
		if !ok || name == "" {
			return nil, fmt.Errorf("[CONFIG] LEDGER_SEED entry %q invalid", entry)
		}

		balance, err := strconv.ParseInt(strings.TrimSpace(balanceString), 10, 64)
		if err != nil || balance < 0 {
			return nil, fmt.Errorf("[CONFIG] LEDGER_SEED balance for %s invalid", name)
		}

		seed[name] = balance
	}

	return seed, nil
}

func splitList(value string) []string {
	var out []string
	for _, part := range strings.Split(value, ",") {
		part = strings.TrimSpace(part)
		if part != "" {
			out = append(out, part)
		}
	}
	return out
}
