package config

import (
	"fmt"
	"os"
	"strings"
)

// AppConfig gathers the runtime configuration for the service.
type AppConfig struct {
	ListenAddr       string
	Port             string
	DatabasePath     string
	SessionSecret    string
	GinMode          string
	AuthBaseURL      string
	TokenPageURL     string
	TranslateAPIKey  string
	TranslateBaseURL string
	BookingURL       string
}

// Load reads the application configuration from environment variables and
// falls back to safe defaults for anything unset. An empty
// TRANSLATE_API_KEY disables machine translation entirely.
func Load() AppConfig {
	port := strings.TrimSpace(os.Getenv("PORT"))
	if port == "" {
		port = "8080"
	}

	listenAddr := strings.TrimSpace(os.Getenv("LISTEN_ADDR"))
	if listenAddr == "" {
		listenAddr = fmt.Sprintf(":%s", port)
	}

	databasePath := strings.TrimSpace(os.Getenv("DATABASE_PATH"))
	if databasePath == "" {
		databasePath = "cravelog.db"
	}

	sessionSecret := strings.TrimSpace(os.Getenv("SESSION_SECRET"))
	if sessionSecret == "" {
		sessionSecret = "cravelog-dev-secret"
	}

	ginMode := strings.TrimSpace(os.Getenv("GIN_MODE"))
	if ginMode == "" {
		ginMode = "release"
	}

	authBaseURL := strings.TrimSpace(os.Getenv("AUTH_BASE_URL"))
	if authBaseURL == "" {
		authBaseURL = "https://api.mantracare.com"
	}

	tokenPageURL := strings.TrimSpace(os.Getenv("TOKEN_PAGE_URL"))
	if tokenPageURL == "" {
		tokenPageURL = "/token"
	}

	translateBaseURL := strings.TrimSpace(os.Getenv("TRANSLATE_BASE_URL"))
	if translateBaseURL == "" {
		translateBaseURL = "https://translation.googleapis.com/language/translate/v2"
	}

	bookingURL := strings.TrimSpace(os.Getenv("BOOKING_URL"))
	if bookingURL == "" {
		bookingURL = "https://www.mantracare.com/book"
	}

	return AppConfig{
		ListenAddr:       listenAddr,
		Port:             port,
		DatabasePath:     databasePath,
		SessionSecret:    sessionSecret,
		GinMode:          ginMode,
		AuthBaseURL:      authBaseURL,
		TokenPageURL:     tokenPageURL,
		TranslateAPIKey:  strings.TrimSpace(os.Getenv("TRANSLATE_API_KEY")),
		TranslateBaseURL: translateBaseURL,
		BookingURL:       bookingURL,
	}
}
