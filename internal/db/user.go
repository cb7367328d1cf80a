package db

import (
	"errors"
	"time"

	"gorm.io/gorm/clause"
)

// User mirrors an account on the remote EAP platform. The primary key is
// assigned by the auth provider during the token exchange, never locally.
type User struct {
	ID        uint `gorm:"primaryKey"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

// EnsureUser upserts a user row for an externally assigned id so that
// foreign rows always have an owner on first sight.
func EnsureUser(userID uint) error {
	if DB == nil {
		return errors.New("database not initialized")
	}
	if userID == 0 {
		return errors.New("user id is required")
	}

	user := User{ID: userID}
	return DB.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "id"}},
		DoNothing: true,
	}).Create(&user).Error
}
