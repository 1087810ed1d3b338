package repository

import (
	"fmt"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"

	"github.com/studio360-next/internal/constants"
	"github.com/studio360-next/internal/models"
)

func setupVoucherRepoTest(t *testing.T) *GormVoucherRepository {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(fmt.Sprintf("file:voucher_repo_test_%d?mode=memory&cache=shared", time.Now().UnixNano())), &gorm.Config{})
	if err != nil {
		t.Fatalf("open test db failed: %v", err)
	}
	if err := db.AutoMigrate(&models.Voucher{}, &models.VoucherUsage{}); err != nil {
		t.Fatalf("migrate test db failed: %v", err)
	}
	return NewVoucherRepository(db)
}

func createTestVoucher(t *testing.T, repo *GormVoucherRepository, code string, mutate func(*models.Voucher)) *models.Voucher {
	t.Helper()

	voucher := &models.Voucher{
		Code:      code,
		Name:      "Test Voucher " + code,
		Type:      constants.VoucherTypePercentage,
		Value:     models.NewMoneyFromFloat(10),
		Status:    constants.VoucherStatusActive,
		ValidFrom: time.Now().Add(-time.Hour),
		SellerID:  1,
	}
	if mutate != nil {
		mutate(voucher)
	}
	if err := repo.Create(voucher); err != nil {
		t.Fatalf("create test voucher failed: %v", err)
	}
	return voucher
}

func TestVoucherRepositoryGetByCode(t *testing.T) {
	repo := setupVoucherRepoTest(t)
	created := createTestVoucher(t, repo, "WELCOME10", nil)

	found, err := repo.GetByCode("welcome10")
	if err != nil {
		t.Fatalf("get by code failed: %v", err)
	}
	if found == nil || found.ID != created.ID {
		t.Fatalf("get by code should match created voucher, got %+v", found)
	}

	missing, err := repo.GetByCode("NOPE0000")
	if err != nil {
		t.Fatalf("get missing code failed: %v", err)
	}
	if missing != nil {
		t.Fatalf("missing code should return nil, got %+v", missing)
	}
}

func TestVoucherRepositoryListFilters(t *testing.T) {
	repo := setupVoucherRepoTest(t)
	now := time.Now()
	past := now.Add(-time.Hour)
	future := now.Add(24 * time.Hour)

	createTestVoucher(t, repo, "ACTIVE01", func(v *models.Voucher) {
		v.ValidUntil = &future
	})
	createTestVoucher(t, repo, "EXPIRED1", func(v *models.Voucher) {
		v.ValidUntil = &past
	})
	createTestVoucher(t, repo, "FIXED001", func(v *models.Voucher) {
		v.Type = constants.VoucherTypeFixedAmount
		v.Value = models.NewMoneyFromFloat(50)
		v.Status = constants.VoucherStatusInactive
	})

	active, total, err := repo.List(VoucherListFilter{Status: constants.VoucherStatusActive, Now: now, Page: 1, PageSize: 10})
	if err != nil {
		t.Fatalf("list active failed: %v", err)
	}
	if total != 1 || len(active) != 1 || active[0].Code != "ACTIVE01" {
		t.Fatalf("active filter mismatch, total=%d list=%+v", total, active)
	}

	expired, total, err := repo.List(VoucherListFilter{Status: constants.VoucherStatusExpired, Now: now, Page: 1, PageSize: 10})
	if err != nil {
		t.Fatalf("list expired failed: %v", err)
	}
	if total != 1 || len(expired) != 1 || expired[0].Code != "EXPIRED1" {
		t.Fatalf("expired filter should pick up past valid_until, total=%d list=%+v", total, expired)
	}

	fixed, total, err := repo.List(VoucherListFilter{Type: constants.VoucherTypeFixedAmount, Page: 1, PageSize: 10})
	if err != nil {
		t.Fatalf("list by type failed: %v", err)
	}
	if total != 1 || fixed[0].Code != "FIXED001" {
		t.Fatalf("type filter mismatch, total=%d list=%+v", total, fixed)
	}

	searched, total, err := repo.List(VoucherListFilter{Search: "fixed0", Page: 1, PageSize: 10})
	if err != nil {
		t.Fatalf("list by search failed: %v", err)
	}
	if total != 1 || searched[0].Code != "FIXED001" {
		t.Fatalf("search should be case-insensitive over code, total=%d list=%+v", total, searched)
	}
}

func TestVoucherRepositoryTryConsume(t *testing.T) {
	repo := setupVoucherRepoTest(t)
	voucher := createTestVoucher(t, repo, "LIMIT002", func(v *models.Voucher) {
		v.UsageLimit = 2
	})

	for i := 0; i < 2; i++ {
		ok, err := repo.TryConsume(voucher.ID)
		if err != nil {
			t.Fatalf("try consume %d failed: %v", i, err)
		}
		if !ok {
			t.Fatalf("consume %d should succeed", i)
		}
	}

	ok, err := repo.TryConsume(voucher.ID)
	if err != nil {
		t.Fatalf("try consume over limit failed: %v", err)
	}
	if ok {
		t.Fatalf("consume past usage limit should be rejected")
	}

	reloaded, err := repo.GetByID(voucher.ID)
	if err != nil {
		t.Fatalf("reload voucher failed: %v", err)
	}
	if reloaded.UsedCount != 2 {
		t.Fatalf("used count should stop at limit, got %d", reloaded.UsedCount)
	}

	if err := repo.MarkUsedIfExhausted(voucher.ID); err != nil {
		t.Fatalf("mark used failed: %v", err)
	}
	reloaded, _ = repo.GetByID(voucher.ID)
	if reloaded.Status != constants.VoucherStatusUsed {
		t.Fatalf("exhausted voucher should flip to used, got %s", reloaded.Status)
	}
}

func TestVoucherRepositoryTryConsumeUnlimited(t *testing.T) {
	repo := setupVoucherRepoTest(t)
	voucher := createTestVoucher(t, repo, "NOLIMIT1", nil)

	for i := 0; i < 5; i++ {
		ok, err := repo.TryConsume(voucher.ID)
		if err != nil || !ok {
			t.Fatalf("unlimited consume %d should succeed, ok=%v err=%v", i, ok, err)
		}
	}

	if err := repo.MarkUsedIfExhausted(voucher.ID); err != nil {
		t.Fatalf("mark used failed: %v", err)
	}
	reloaded, _ := repo.GetByID(voucher.ID)
	if reloaded.Status != constants.VoucherStatusActive {
		t.Fatalf("unlimited voucher should stay active, got %s", reloaded.Status)
	}
}

func TestVoucherRepositoryHardDelete(t *testing.T) {
	repo := setupVoucherRepoTest(t)
	voucher := createTestVoucher(t, repo, "DELETEME", nil)

	if err := repo.Delete(voucher.ID); err != nil {
		t.Fatalf("delete failed: %v", err)
	}

	found, err := repo.GetByID(voucher.ID)
	if err != nil {
		t.Fatalf("get after delete failed: %v", err)
	}
	if found != nil {
		t.Fatalf("deleted voucher should be gone, got %+v", found)
	}

	exists, err := repo.ExistsByCode("DELETEME")
	if err != nil {
		t.Fatalf("exists after delete failed: %v", err)
	}
	if exists {
		t.Fatalf("deleted code should be reusable")
	}
}

func TestVoucherRepositoryStats(t *testing.T) {
	repo := setupVoucherRepoTest(t)
	now := time.Now()
	past := now.Add(-time.Hour)

	createTestVoucher(t, repo, "STATSAC1", nil)
	createTestVoucher(t, repo, "STATSIN1", func(v *models.Voucher) {
		v.Status = constants.VoucherStatusInactive
	})
	createTestVoucher(t, repo, "STATSEX1", func(v *models.Voucher) {
		v.ValidUntil = &past
	})
	createTestVoucher(t, repo, "STATSUS1", func(v *models.Voucher) {
		v.Status = constants.VoucherStatusUsed
		v.UsageLimit = 1
		v.UsedCount = 1
	})

	stats, err := repo.Stats(0, now)
	if err != nil {
		t.Fatalf("stats failed: %v", err)
	}
	if stats.Total != 4 {
		t.Fatalf("total want 4 got %d", stats.Total)
	}
	if stats.Active != 1 || stats.Inactive != 1 || stats.Used != 1 || stats.Expired != 1 {
		t.Fatalf("status breakdown mismatch: %+v", stats)
	}
	if stats.TotalRedemptions != 1 {
		t.Fatalf("total redemptions want 1 got %d", stats.TotalRedemptions)
	}
}
