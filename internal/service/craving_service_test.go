package service

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/cravelog/internal/db"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupCravingTestDB(t *testing.T) (*gorm.DB, func()) {
	t.Helper()

	dsn := fmt.Sprintf("file:craving-%d?mode=memory&cache=shared", time.Now().UnixNano())
	gdb, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}

	if err := gdb.AutoMigrate(&db.User{}, &db.CravingLog{}); err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}

	return gdb, func() {
		sqlDB, err := gdb.DB()
		if err == nil {
			sqlDB.Close()
		}
	}
}

func TestCravingLogCreateDerivesLabel(t *testing.T) {
	gdb, cleanup := setupCravingTestDB(t)
	defer cleanup()

	svc := NewCravingLogService(gdb)

	entry, err := svc.Create(7, CravingLogInput{Intensity: 8, Outcome: "smoked"})
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}

	if entry.ID == 0 {
		t.Fatal("expected entry to have ID")
	}
	if entry.IntensityLabel != "High" {
		t.Fatalf("expected label High, got %s", entry.IntensityLabel)
	}
	if entry.ClientRef == "" {
		t.Fatal("expected a generated client ref")
	}
	if entry.Timestamp.IsZero() {
		t.Fatal("expected a default timestamp")
	}
}

func TestCravingLogCreateValidation(t *testing.T) {
	gdb, cleanup := setupCravingTestDB(t)
	defer cleanup()

	svc := NewCravingLogService(gdb)

	if _, err := svc.Create(7, CravingLogInput{Intensity: 0, Outcome: "smoked"}); !errors.Is(err, ErrInvalidIntensity) {
		t.Fatalf("expected ErrInvalidIntensity, got %v", err)
	}
	if _, err := svc.Create(7, CravingLogInput{Intensity: 11, Outcome: "smoked"}); !errors.Is(err, ErrInvalidIntensity) {
		t.Fatalf("expected ErrInvalidIntensity, got %v", err)
	}
	if _, err := svc.Create(7, CravingLogInput{Intensity: 5, Outcome: "skipped"}); !errors.Is(err, ErrInvalidOutcome) {
		t.Fatalf("expected ErrInvalidOutcome, got %v", err)
	}
	if _, err := svc.Create(0, CravingLogInput{Intensity: 5, Outcome: "smoked"}); !errors.Is(err, ErrUserRequired) {
		t.Fatalf("expected ErrUserRequired, got %v", err)
	}
}

func TestCravingLogCreateIdempotentOnClientRef(t *testing.T) {
	gdb, cleanup := setupCravingTestDB(t)
	defer cleanup()

	svc := NewCravingLogService(gdb)

	input := CravingLogInput{ClientRef: "ref-1", Intensity: 4, Outcome: "resisted"}
	first, err := svc.Create(7, input)
	if err != nil {
		t.Fatalf("first Create returned error: %v", err)
	}

	second, err := svc.Create(7, input)
	if err != nil {
		t.Fatalf("replayed Create returned error: %v", err)
	}

	if first.ID != second.ID {
		t.Fatalf("expected replay to return the same record, got %d and %d", first.ID, second.ID)
	}

	logs, err := svc.List(7)
	if err != nil {
		t.Fatalf("List returned error: %v", err)
	}
	if len(logs) != 1 {
		t.Fatalf("expected 1 log, got %d", len(logs))
	}
}

func TestCravingLogCreateSanitizesFreeText(t *testing.T) {
	gdb, cleanup := setupCravingTestDB(t)
	defer cleanup()

	svc := NewCravingLogService(gdb)

	entry, err := svc.Create(7, CravingLogInput{
		Intensity: 3,
		Outcome:   "resisted",
		Trigger:   "<b>after coffee</b>",
		Notes:     "  quiet <i>room</i>  ",
	})
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}

	if entry.Trigger != "after coffee" {
		t.Fatalf("expected markup stripped from trigger, got %q", entry.Trigger)
	}
	if entry.Notes != "quiet room" {
		t.Fatalf("expected markup stripped from notes, got %q", entry.Notes)
	}
}

func TestCravingLogListOrderAndScoping(t *testing.T) {
	gdb, cleanup := setupCravingTestDB(t)
	defer cleanup()

	svc := NewCravingLogService(gdb)
	base := time.Date(2024, 5, 1, 9, 0, 0, 0, time.Local)

	// Inserted newest first on purpose; List must return ascending.
	for i := 2; i >= 0; i-- {
		input := CravingLogInput{
			ClientRef: fmt.Sprintf("u1-%d", i),
			Timestamp: base.Add(time.Duration(i) * time.Hour),
			Intensity: 5,
			Outcome:   "resisted",
		}
		if _, err := svc.Create(1, input); err != nil {
			t.Fatalf("Create returned error: %v", err)
		}
	}
	if _, err := svc.Create(2, CravingLogInput{ClientRef: "u2-0", Intensity: 5, Outcome: "smoked"}); err != nil {
		t.Fatalf("Create for other user returned error: %v", err)
	}

	logs, err := svc.List(1)
	if err != nil {
		t.Fatalf("List returned error: %v", err)
	}

	if len(logs) != 3 {
		t.Fatalf("expected 3 logs for user 1, got %d", len(logs))
	}
	for i := 1; i < len(logs); i++ {
		if logs[i].Timestamp.Before(logs[i-1].Timestamp) {
			t.Fatal("expected ascending timestamp order")
		}
	}
}

func TestCravingLogDeleteByStableIdentifier(t *testing.T) {
	gdb, cleanup := setupCravingTestDB(t)
	defer cleanup()

	svc := NewCravingLogService(gdb)
	base := time.Date(2024, 5, 1, 9, 0, 0, 0, time.Local)

	var ids []uint
	for i := 0; i < 3; i++ {
		entry, err := svc.Create(1, CravingLogInput{
			ClientRef: fmt.Sprintf("ref-%d", i),
			Timestamp: base.Add(time.Duration(i) * time.Hour),
			Intensity: 5,
			Outcome:   "smoked",
		})
		if err != nil {
			t.Fatalf("Create returned error: %v", err)
		}
		ids = append(ids, entry.ID)
	}

	// The history view shows most recent first, so display index 0 is the
	// chronologically last record. Deleting by its id must remove exactly
	// that record.
	logs, err := svc.List(1)
	if err != nil {
		t.Fatalf("List returned error: %v", err)
	}
	newest := logs[len(logs)-1]

	if err := svc.Delete(1, newest.ID); err != nil {
		t.Fatalf("Delete returned error: %v", err)
	}

	remaining, err := svc.List(1)
	if err != nil {
		t.Fatalf("List after delete returned error: %v", err)
	}
	if len(remaining) != 2 {
		t.Fatalf("expected 2 remaining logs, got %d", len(remaining))
	}
	for _, entry := range remaining {
		if entry.ID == newest.ID {
			t.Fatal("newest record should have been deleted")
		}
	}
	if remaining[0].ID != ids[0] || remaining[1].ID != ids[1] {
		t.Fatal("delete removed the wrong record")
	}

	// Wrong owner must not see or delete the record.
	if err := svc.Delete(2, remaining[0].ID); !errors.Is(err, ErrCravingNotFound) {
		t.Fatalf("expected ErrCravingNotFound for wrong user, got %v", err)
	}

	if err := svc.DeleteByClientRef(1, "ref-0"); err != nil {
		t.Fatalf("DeleteByClientRef returned error: %v", err)
	}
	if err := svc.DeleteByClientRef(1, "ref-0"); !errors.Is(err, ErrCravingNotFound) {
		t.Fatalf("expected ErrCravingNotFound on replayed ref delete, got %v", err)
	}
}
