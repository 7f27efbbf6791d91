package config

import (
	"os"
	"strconv"
	"time"
)

// Config holds application configuration
type Config struct {
	Port          string
	DBPath        string
	JWTSecret     string
	GeoAPIBaseURL string        // ip-api compatible endpoint for IP geolocation
	SessionTTL    time.Duration // idle map-session lifetime
	LocateTimeout time.Duration // bound on a geolocation request
}

// Load reads configuration from environment variables with defaults
func Load() *Config {
	port := os.Getenv("PORT")
	if port == "" {
		port = ":8080"
	}

	dbPath := os.Getenv("DB_PATH")
	if dbPath == "" {
		dbPath = "./data/species.db"
	}

	jwtSecret := os.Getenv("JWT_SECRET")
	if jwtSecret == "" {
		jwtSecret = "your-secret-key-change-in-production"
	}

	geoAPI := os.Getenv("GEO_API_BASE_URL")
	if geoAPI == "" {
		geoAPI = "http://ip-api.com"
	}

	return &Config{
		Port:          port,
		DBPath:        dbPath,
		JWTSecret:     jwtSecret,
		GeoAPIBaseURL: geoAPI,
		SessionTTL:    durationEnv("SESSION_TTL_MINUTES", 30) * time.Minute,
		LocateTimeout: durationEnv("LOCATE_TIMEOUT_SECONDS", 15) * time.Second,
	}
}

func durationEnv(key string, def int) time.Duration {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			return time.Duration(n)
		}
	}
	return time.Duration(def)
}
