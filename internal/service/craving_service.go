package service

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/cravelog/internal/db"
	"github.com/google/uuid"
	"github.com/microcosm-cc/bluemonday"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var (
	// ErrCravingNotFound 在指定记录不存在或不属于当前用户时返回
	ErrCravingNotFound = errors.New("craving log not found")
	// ErrInvalidIntensity 当强度不在 1-10 区间时返回
	ErrInvalidIntensity = errors.New("intensity must be between 1 and 10")
	// ErrInvalidOutcome 当结果不是 resisted/smoked 时返回
	ErrInvalidOutcome = errors.New("outcome must be resisted or smoked")
	// ErrUserRequired 当调用方没有提供用户 ID 时返回
	ErrUserRequired = errors.New("user id is required")
)

// freeTextPolicy strips all markup from user supplied free text.
var freeTextPolicy = bluemonday.StrictPolicy()

// IntensityLabel derives the text bucket for an intensity value. The
// label is always computed from the value so the two cannot drift apart.
func IntensityLabel(intensity int) string {
	switch {
	case intensity <= 2:
		return "Minimal"
	case intensity <= 4:
		return "Mild"
	case intensity <= 6:
		return "Moderate"
	case intensity <= 8:
		return "High"
	default:
		return "Severe"
	}
}

// CravingLogService 负责 craving 记录的增删查，所有查询都以用户维度过滤
type CravingLogService struct {
	db *gorm.DB
}

// CravingLogInput 定义创建记录时可配置字段
type CravingLogInput struct {
	ClientRef string
	Timestamp time.Time
	Intensity int
	Outcome   string
	Trigger   string
	Location  string
	Quantity  int
	Notes     string
}

// NewCravingLogService 构造 CravingLogService
func NewCravingLogService(gdb *gorm.DB) *CravingLogService {
	return &CravingLogService{db: gdb}
}

// List returns every log for the user ordered by timestamp ascending.
// Display order (most recent first) is the client's concern.
func (s *CravingLogService) List(userID uint) ([]db.CravingLog, error) {
	if userID == 0 {
		return nil, ErrUserRequired
	}

	var logs []db.CravingLog
	if err := s.db.Where("user_id = ?", userID).
		Order("timestamp ASC").
		Find(&logs).Error; err != nil {
		return nil, fmt.Errorf("list craving logs: %w", err)
	}

	return logs, nil
}

// Create validates and persists one craving event. The intensity label is
// derived server side, free text is stripped of markup before storage,
// and creation is idempotent on (user, client ref): replaying the same
// submission returns the already persisted record.
func (s *CravingLogService) Create(userID uint, input CravingLogInput) (*db.CravingLog, error) {
	if userID == 0 {
		return nil, ErrUserRequired
	}
	if input.Intensity < 1 || input.Intensity > 10 {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidIntensity, input.Intensity)
	}

	outcome := strings.ToLower(strings.TrimSpace(input.Outcome))
	if outcome != db.OutcomeResisted && outcome != db.OutcomeSmoked {
		return nil, fmt.Errorf("%w: got %q", ErrInvalidOutcome, input.Outcome)
	}

	clientRef := strings.TrimSpace(input.ClientRef)
	if clientRef == "" {
		clientRef = uuid.NewString()
	}

	timestamp := input.Timestamp
	if timestamp.IsZero() {
		timestamp = time.Now()
	}

	quantity := input.Quantity
	if quantity < 0 {
		quantity = 0
	}

	record := db.CravingLog{
		UserID:         userID,
		ClientRef:      clientRef,
		Timestamp:      timestamp,
		Intensity:      input.Intensity,
		IntensityLabel: IntensityLabel(input.Intensity),
		Outcome:        outcome,
		Trigger:        sanitizeFreeText(input.Trigger),
		Location:       sanitizeFreeText(input.Location),
		Quantity:       quantity,
		Notes:          sanitizeFreeText(input.Notes),
	}

	if err := s.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}, {Name: "client_ref"}},
		DoNothing: true,
	}).Create(&record).Error; err != nil {
		return nil, fmt.Errorf("create craving log: %w", err)
	}

	if err := s.db.Where("user_id = ? AND client_ref = ?", userID, clientRef).
		First(&record).Error; err != nil {
		return nil, fmt.Errorf("reload craving log: %w", err)
	}

	return &record, nil
}

// Delete removes a log by its persisted id, scoped to the acting user.
func (s *CravingLogService) Delete(userID, id uint) error {
	if userID == 0 {
		return ErrUserRequired
	}

	result := s.db.Where("user_id = ?", userID).Delete(&db.CravingLog{}, id)
	if result.Error != nil {
		return fmt.Errorf("delete craving log: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrCravingNotFound
	}

	return nil
}

// DeleteByClientRef removes a log by the client reference assigned at
// creation, for clients that have not reconciled the numeric id yet.
func (s *CravingLogService) DeleteByClientRef(userID uint, clientRef string) error {
	if userID == 0 {
		return ErrUserRequired
	}

	ref := strings.TrimSpace(clientRef)
	if ref == "" {
		return ErrCravingNotFound
	}

	result := s.db.Where("user_id = ? AND client_ref = ?", userID, ref).
		Delete(&db.CravingLog{})
	if result.Error != nil {
		return fmt.Errorf("delete craving log by ref: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrCravingNotFound
	}

	return nil
}

func sanitizeFreeText(value string) string {
	return strings.TrimSpace(freeTextPolicy.Sanitize(value))
}
