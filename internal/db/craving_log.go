package db

import (
	"time"

	"gorm.io/gorm"
)

// Outcome values for a craving log. Exactly one of the two is valid.
const (
	OutcomeResisted = "resisted"
	OutcomeSmoked   = "smoked"
)

// CravingLog records one user-reported nicotine craving event.
// ClientRef is a uuid minted at creation time; UserID+ClientRef carry a
// unique index so duplicate submissions stay idempotent and deletes can
// address a record the client has not yet reconciled with a numeric id.
// IntensityLabel is always derived from Intensity on write.
type CravingLog struct {
	gorm.Model
	UserID         uint      `gorm:"index;index:idx_craving_user_ref,unique"`
	ClientRef      string    `gorm:"size:36;index:idx_craving_user_ref,unique"`
	Timestamp      time.Time `gorm:"index"`
	Intensity      int
	IntensityLabel string
	Outcome        string
	Trigger        string
	Location       string
	Quantity       int
	Notes          string
}
