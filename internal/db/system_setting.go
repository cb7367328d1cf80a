package db

import "gorm.io/gorm"

// SystemSetting stores one operator tunable as a key/value row.
type SystemSetting struct {
	gorm.Model
	Key   string `gorm:"uniqueIndex;size:64"`
	Value string
}

// Known setting keys.
const (
	SettingKeySiteName        = "site_name"
	SettingKeyBookingURL      = "booking_url"
	SettingKeyTranslateAPIKey = "translate_api_key"
)
