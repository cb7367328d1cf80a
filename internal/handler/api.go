package handler

import (
	"github.com/cravelog/internal/config"
	"github.com/cravelog/internal/service"
	"gorm.io/gorm"
)

// API bundles shared dependencies for HTTP handlers.
type API struct {
	db           *gorm.DB
	cravings     *service.CravingLogService
	insights     *service.InsightService
	translations *service.TranslationService
	auth         *service.AuthClient
	settings     *service.SystemSettingService
	tokenPageURL string
}

// NewAPI constructs a handler set with shared services. A translate key
// stored in system settings overrides the environment credential.
func NewAPI(gdb *gorm.DB, cfg config.AppConfig) *API {
	settings := service.NewSystemSettingService(gdb, service.AppSettings{
		BookingURL:      cfg.BookingURL,
		TranslateAPIKey: cfg.TranslateAPIKey,
	})

	translations := service.NewTranslationService(cfg.TranslateAPIKey)
	if cfg.TranslateBaseURL != "" {
		translations.SetBaseURL(cfg.TranslateBaseURL)
	}
	if stored, err := settings.GetSettings(); err == nil {
		translations.SetAPIKey(stored.TranslateAPIKey)
	}

	return &API{
		db:           gdb,
		cravings:     service.NewCravingLogService(gdb),
		insights:     service.NewInsightService(gdb),
		translations: translations,
		auth:         service.NewAuthClient(cfg.AuthBaseURL),
		settings:     settings,
		tokenPageURL: cfg.TokenPageURL,
	}
}

// DB exposes the underlying gorm instance for legacy paths.
func (a *API) DB() *gorm.DB {
	return a.db
}

// Translations exposes the shared translation cache, mainly for tests.
func (a *API) Translations() *service.TranslationService {
	return a.translations
}

// AuthService exposes the token exchange client, mainly for tests.
func (a *API) AuthService() *service.AuthClient {
	return a.auth
}
