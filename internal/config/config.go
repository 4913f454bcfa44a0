package config

import (
	"os"
	"strings"

	"github.com/joho/godotenv"
)

type Config struct {
	ListenAddr   string
	StoreBackend string
	DBPath       string
	BadgerDir    string
	CORSOrigins  []string
	LogLevel     string
	LogFile      string
}

// Load reads configuration from the environment. A .env file in the working
// directory is loaded first when present; variables already set win.
func Load() *Config {
	_ = godotenv.Load()

	return &Config{
		ListenAddr:   getEnv("LISTEN_ADDR", ":5000"),
		StoreBackend: getEnv("STORE_BACKEND", "sqlite"),
		DBPath:       getEnv("DB_PATH", "./data/gardenlog.db"),
		BadgerDir:    getEnv("BADGER_DIR", "./data/badger"),
		CORSOrigins:  splitList(getEnv("CORS_ORIGINS", "http://localhost:3000")),
		LogLevel:     getEnv("LOG_LEVEL", "info"),
		LogFile:      getEnv("LOG_FILE", ""),
	}
}

func getEnv(key, defaultVal string) string {
	if val, exists := os.LookupEnv(key); exists {
		return val
	}
	return defaultVal
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
