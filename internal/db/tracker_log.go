package db

import (
	"time"

	"gorm.io/gorm"
)

// Companion tracker records written by the other tools on the platform.
// The craving dashboard only reads them to derive cross-tracker insights,
// so the models stay minimal.

// SleepLog is one night recorded by the sleep tracker.
type SleepLog struct {
	gorm.Model
	UserID  uint `gorm:"index"`
	SleptAt time.Time
	Hours   float64
	Quality int
}

// MoodLog is one check-in recorded by the mood tracker.
type MoodLog struct {
	gorm.Model
	UserID   uint `gorm:"index"`
	LoggedAt time.Time
	Mood     string
	Score    int
}

// WithdrawalLog is one symptom entry recorded by the withdrawal tracker.
type WithdrawalLog struct {
	gorm.Model
	UserID   uint `gorm:"index"`
	LoggedAt time.Time
	Symptom  string
	Severity int
}
