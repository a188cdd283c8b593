package config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config holds all application configuration loaded from environment variables.
type Config struct {
	ListenAddr string

	PostgresHost     string
	PostgresPort     string
	PostgresUser     string
	PostgresPassword string
	PostgresDB       string
	PostgresSSLMode  string

	// SourceDomain is the substring an import URL must contain to be accepted.
	SourceDomain string
	UserAgent    string

	FetchTimeoutSec int
	MaxRetries      int

	BrowserEnabled     bool
	BrowserConcurrency int
	BrowserRateMs      int
	ChromeBin          string

	CSVAuditPath string
	Debug        bool
}

// Load reads the .env file and returns a populated Config struct.
func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("[config] No .env file found, falling back to system env vars")
	}

	return &Config{
		ListenAddr: getEnv("LISTEN_ADDR", ":8080"),

		PostgresHost:     getEnv("POSTGRES_HOST", "localhost"),
		PostgresPort:     getEnv("POSTGRES_PORT", "5432"),
		PostgresUser:     getEnv("POSTGRES_USER", "importer"),
		PostgresPassword: getEnv("POSTGRES_PASSWORD", "importer123"),
		PostgresDB:       getEnv("POSTGRES_DB", "treehouse_db"),
		PostgresSSLMode:  getEnv("POSTGRES_SSLMODE", "disable"),

		SourceDomain: getEnv("SOURCE_DOMAIN", "airbnb.com"),
		UserAgent: getEnv("USER_AGENT",
			"Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 "+
				"(KHTML, like Gecko) Chrome/91.0.4472.124 Safari/537.36"),

		FetchTimeoutSec: getEnvInt("FETCH_TIMEOUT_SEC", 30),
		MaxRetries:      getEnvInt("MAX_RETRIES", 3),

		BrowserEnabled:     getEnvBool("BROWSER_ENABLED", true),
		BrowserConcurrency: getEnvInt("BROWSER_CONCURRENCY", 2),
		BrowserRateMs:      getEnvInt("BROWSER_RATE_MS", 2000),
		ChromeBin:          getEnv("CHROME_BIN", ""),

		CSVAuditPath: getEnv("CSV_AUDIT_PATH", "./output/imported_listings.csv"),
		Debug:        getEnvBool("DEBUG", false),
	}
}

// DSN returns the PostgreSQL connection string.
func (c *Config) DSN() string {
	return "host=" + c.PostgresHost +
		" port=" + c.PostgresPort +
		" user=" + c.PostgresUser +
		" password=" + c.PostgresPassword +
		" dbname=" + c.PostgresDB +
		" sslmode=" + c.PostgresSSLMode
}

func getEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if val := os.Getenv(key); val != "" {
		n, err := strconv.Atoi(val)
		if err == nil {
			return n
		}
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	if val := os.Getenv(key); val != "" {
		b, err := strconv.ParseBool(val)
		if err == nil {
			return b
		}
	}
	return fallback
}
