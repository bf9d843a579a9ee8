package config

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	LogLevel   string
	LogFormat  string
	Input      string
	Output     string
	ReportPath string
	PlanPath   string
	DryRun     bool
}

// Load reads configuration from the environment. A .env file in the working
// directory is applied first when present; real environment variables win.
func Load() Config {
	_ = godotenv.Load()

	return Config{
		LogLevel:   envStr("LOG_LEVEL", "info"),
		LogFormat:  envStr("LOG_FORMAT", "json"),
		Input:      envStr("SIEVE_INPUT", ""),
		Output:     envStr("SIEVE_OUTPUT", ""),
		ReportPath: envStr("SIEVE_REPORT", ""),
		PlanPath:   envStr("SIEVE_PLAN", ""),
		DryRun:     envBool("SIEVE_DRY_RUN", false),
	}
}

func envStr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envBool(key string, fallback bool) bool {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return fallback
}
