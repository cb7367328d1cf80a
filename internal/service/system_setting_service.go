package service

import (
	"fmt"
	"strings"

	"github.com/cravelog/internal/db"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// AppSettings 描述后台可配置的系统信息。
type AppSettings struct {
	SiteName        string
	BookingURL      string
	TranslateAPIKey string
}

// AppSettingsInput 用于更新系统设置。
type AppSettingsInput struct {
	SiteName        string
	BookingURL      string
	TranslateAPIKey string
}

// SystemSettingService 提供系统设置的读取与更新能力。
// 空值回退到构造时注入的默认值（通常来自环境变量）。
type SystemSettingService struct {
	db       *gorm.DB
	defaults AppSettings
}

// NewSystemSettingService 构造 SystemSettingService。
func NewSystemSettingService(gdb *gorm.DB, defaults AppSettings) *SystemSettingService {
	if strings.TrimSpace(defaults.SiteName) == "" {
		defaults.SiteName = "Craving Tracker"
	}
	return &SystemSettingService{db: gdb, defaults: defaults}
}

var settingKeys = []string{
	db.SettingKeySiteName,
	db.SettingKeyBookingURL,
	db.SettingKeyTranslateAPIKey,
}

// GetSettings 读取系统设置，如未设置将返回默认值。
func (s *SystemSettingService) GetSettings() (AppSettings, error) {
	result := s.defaults

	var records []db.SystemSetting
	if err := s.db.Where("key IN ?", settingKeys).Find(&records).Error; err != nil {
		return result, fmt.Errorf("load system settings: %w", err)
	}

	for _, record := range records {
		value := strings.TrimSpace(record.Value)
		if value == "" {
			continue
		}
		switch record.Key {
		case db.SettingKeySiteName:
			result.SiteName = value
		case db.SettingKeyBookingURL:
			result.BookingURL = value
		case db.SettingKeyTranslateAPIKey:
			result.TranslateAPIKey = value
		}
	}

	return result, nil
}

// UpdateSettings 保存系统设置，空字段会清除覆盖并回退到默认值。
func (s *SystemSettingService) UpdateSettings(input AppSettingsInput) (AppSettings, error) {
	sanitized := AppSettings{
		SiteName:        strings.TrimSpace(input.SiteName),
		BookingURL:      strings.TrimSpace(input.BookingURL),
		TranslateAPIKey: strings.TrimSpace(input.TranslateAPIKey),
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := upsertSetting(tx, db.SettingKeySiteName, sanitized.SiteName); err != nil {
			return err
		}
		if err := upsertSetting(tx, db.SettingKeyBookingURL, sanitized.BookingURL); err != nil {
			return err
		}
		return upsertSetting(tx, db.SettingKeyTranslateAPIKey, sanitized.TranslateAPIKey)
	})
	if err != nil {
		return AppSettings{}, fmt.Errorf("update system settings: %w", err)
	}

	return s.GetSettings()
}

func upsertSetting(tx *gorm.DB, key, value string) error {
	setting := db.SystemSetting{Key: key, Value: value}
	if err := tx.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "key"}},
		DoUpdates: clause.Assignments(map[string]interface{}{
			"value":      value,
			"updated_at": gorm.Expr("CURRENT_TIMESTAMP"),
		}),
	}).Create(&setting).Error; err != nil {
		return fmt.Errorf("upsert setting %s: %w", key, err)
	}
	return nil
}
