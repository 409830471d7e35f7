package config

import (
	"os"
	"strconv"
	"time"

	// Loads server/.env (if present) before parseEnv reads the environment,
	// matching the dotenv behavior of the deployment scripts.
	_ "github.com/joho/godotenv/autoload"
)

// parseEnv overlays Config fields from environment variables.
//
// Supported variables:
//
//	ADDRESS            HTTP bind address
//	DATABASE_DSN       PostgreSQL DSN
//	SECRET_KEY         JWT HMAC secret
//	TOKEN_VALIDITY     token validity, minutes
//	DEMO_WAIT_MS       demo_wait pacing hint, milliseconds
//	ECHO_NOTE_CREATES  "1"/"true" to echo new_note to the sender
//	CORS_ORIGIN        CORS allowed origin
//
// Unset or malformed values leave the current Config value untouched.
func parseEnv(config *Config) {
	if v, ok := os.LookupEnv("ADDRESS"); ok {
		config.EndpointAddrHTTP = v
	}
	if v, ok := os.LookupEnv("DATABASE_DSN"); ok {
		config.DatabaseDSN = v
	}
	if v, ok := os.LookupEnv("SECRET_KEY"); ok {
		config.SecretKey = v
	}
	if v, ok := os.LookupEnv("TOKEN_VALIDITY"); ok {
		if minutes, err := strconv.Atoi(v); err == nil {
			config.TokenValidityDuration = time.Duration(minutes) * time.Minute
		}
	}
	if v, ok := os.LookupEnv("DEMO_WAIT_MS"); ok {
		if ms, err := strconv.Atoi(v); err == nil {
			config.DemoWait = time.Duration(ms) * time.Millisecond
		}
	}
	if v, ok := os.LookupEnv("ECHO_NOTE_CREATES"); ok {
		if b, err := strconv.ParseBool(v); err == nil {
			config.EchoNoteCreates = b
		}
	}
	if v, ok := os.LookupEnv("CORS_ORIGIN"); ok {
		config.CORSAllowedOrigin = v
	}
}
