package service

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/studio360-next/internal/constants"
	"github.com/studio360-next/internal/models"
	"github.com/studio360-next/internal/repository"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
)

func setupAnnouncementServiceTest(t *testing.T) *AnnouncementService {
	t.Helper()
	dsn := fmt.Sprintf("file:announcement_service_test_%d?mode=memory&cache=shared", time.Now().UnixNano())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	if err := db.AutoMigrate(&models.Announcement{}); err != nil {
		t.Fatalf("auto migrate failed: %v", err)
	}
	models.DB = db
	return NewAnnouncementService(repository.NewAnnouncementRepository(db))
}

func TestCreateAnnouncementValidation(t *testing.T) {
	svc := setupAnnouncementServiceTest(t)

	if _, err := svc.Create(AnnouncementInput{Title: "  ", Message: "body"}); !errors.Is(err, ErrAnnouncementTitleMissing) {
		t.Fatalf("expected ErrAnnouncementTitleMissing, got %v", err)
	}
	if _, err := svc.Create(AnnouncementInput{Title: "Maintenance window", Message: "   "}); !errors.Is(err, ErrAnnouncementBodyMissing) {
		t.Fatalf("expected ErrAnnouncementBodyMissing, got %v", err)
	}
	if _, err := svc.Create(AnnouncementInput{Title: "Maintenance window", Message: "body", Type: "urgent"}); !errors.Is(err, ErrAnnouncementTypeInvalid) {
		t.Fatalf("expected ErrAnnouncementTypeInvalid, got %v", err)
	}

	// 类型留空时默认 info，大小写不敏感
	created, err := svc.Create(AnnouncementInput{Title: " Payout schedule ", Message: "Payouts run every Friday.", Type: " WARNING ", CreatedBy: 7})
	if err != nil {
		t.Fatalf("create announcement failed: %v", err)
	}
	if created.Title != "Payout schedule" {
		t.Fatalf("expected trimmed title, got %q", created.Title)
	}
	if created.Type != constants.AnnouncementTypeWarning {
		t.Fatalf("expected warning type, got %q", created.Type)
	}
	if !created.IsActive {
		t.Fatalf("expected new announcement to be active")
	}
	if created.CreatedBy != 7 {
		t.Fatalf("expected created_by 7, got %d", created.CreatedBy)
	}
}

func TestUpdateAndToggleAnnouncement(t *testing.T) {
	svc := setupAnnouncementServiceTest(t)

	created, err := svc.Create(AnnouncementInput{Title: "Holiday notice", Message: "Closed on Dec 25.", Type: constants.AnnouncementTypeInfo})
	if err != nil {
		t.Fatalf("create announcement failed: %v", err)
	}

	inactive := false
	updated, err := svc.Update(created.ID, AnnouncementInput{
		Title:    "Holiday notice",
		Message:  "Closed on Dec 25 and Jan 1.",
		Type:     constants.AnnouncementTypeMaintenance,
		IsActive: &inactive,
	})
	if err != nil {
		t.Fatalf("update announcement failed: %v", err)
	}
	if updated.Message != "Closed on Dec 25 and Jan 1." {
		t.Fatalf("unexpected message after update: %q", updated.Message)
	}
	if updated.Type != constants.AnnouncementTypeMaintenance {
		t.Fatalf("expected maintenance type, got %q", updated.Type)
	}
	if updated.IsActive {
		t.Fatalf("expected announcement to be inactive after update")
	}

	toggled, err := svc.Toggle(created.ID)
	if err != nil {
		t.Fatalf("toggle announcement failed: %v", err)
	}
	if !toggled.IsActive {
		t.Fatalf("expected toggle to re-activate announcement")
	}

	if _, err := svc.Update(9999, AnnouncementInput{Title: "x", Message: "y"}); !errors.Is(err, ErrAnnouncementNotFound) {
		t.Fatalf("expected ErrAnnouncementNotFound, got %v", err)
	}
}

func TestListPublicHonorsScheduleWindow(t *testing.T) {
	svc := setupAnnouncementServiceTest(t)

	now := time.Now()
	past := now.Add(-time.Hour)
	future := now.Add(time.Hour)

	if _, err := svc.Create(AnnouncementInput{Title: "Live now", Message: "visible"}); err != nil {
		t.Fatalf("create announcement failed: %v", err)
	}
	if _, err := svc.Create(AnnouncementInput{Title: "Not yet", Message: "scheduled", StartsAt: &future}); err != nil {
		t.Fatalf("create scheduled announcement failed: %v", err)
	}
	if _, err := svc.Create(AnnouncementInput{Title: "Expired", Message: "gone", ExpiresAt: &past}); err != nil {
		t.Fatalf("create expired announcement failed: %v", err)
	}
	disabled, err := svc.Create(AnnouncementInput{Title: "Disabled", Message: "hidden"})
	if err != nil {
		t.Fatalf("create announcement failed: %v", err)
	}
	if _, err := svc.Toggle(disabled.ID); err != nil {
		t.Fatalf("toggle announcement failed: %v", err)
	}

	visible, err := svc.ListPublic(context.Background(), 10)
	if err != nil {
		t.Fatalf("list public failed: %v", err)
	}
	if len(visible) != 1 {
		t.Fatalf("expected 1 visible announcement, got %d", len(visible))
	}
	if visible[0].Title != "Live now" {
		t.Fatalf("unexpected visible announcement: %q", visible[0].Title)
	}

	if err := svc.Delete(visible[0].ID); err != nil {
		t.Fatalf("delete announcement failed: %v", err)
	}
	visible, err = svc.ListPublic(context.Background(), 10)
	if err != nil {
		t.Fatalf("list public failed: %v", err)
	}
	if len(visible) != 0 {
		t.Fatalf("expected no visible announcements after delete, got %d", len(visible))
	}
}
