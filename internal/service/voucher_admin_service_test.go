package service

import (
	"errors"
	"fmt"
	"regexp"
	"testing"
	"time"

	"github.com/studio360-next/internal/constants"
	"github.com/studio360-next/internal/models"
	"github.com/studio360-next/internal/repository"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
)

func setupVoucherAdminTest(t *testing.T) *VoucherAdminService {
	t.Helper()
	dsn := fmt.Sprintf("file:voucher_admin_test_%d?mode=memory&cache=shared", time.Now().UnixNano())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	if err := db.AutoMigrate(&models.Voucher{}, &models.VoucherUsage{}); err != nil {
		t.Fatalf("auto migrate failed: %v", err)
	}
	models.DB = db
	return NewVoucherAdminService(repository.NewVoucherRepository(db), repository.NewVoucherUsageRepository(db))
}

func TestCreateGeneratesCodeFormat(t *testing.T) {
	admin := setupVoucherAdminTest(t)
	pattern := regexp.MustCompile(`^[A-Z0-9]{8}$`)

	seen := make(map[string]bool)
	for i := 0; i < 20; i++ {
		voucher, err := admin.Create(VoucherInput{
			Name:  fmt.Sprintf("Voucher %d", i),
			Type:  constants.VoucherTypePercentage,
			Value: models.NewMoneyFromFloat(5),
		})
		if err != nil {
			t.Fatalf("create %d failed: %v", i, err)
		}
		if !pattern.MatchString(voucher.Code) {
			t.Fatalf("code %q should be 8 uppercase alphanumerics", voucher.Code)
		}
		if seen[voucher.Code] {
			t.Fatalf("duplicate code generated: %s", voucher.Code)
		}
		seen[voucher.Code] = true
	}
}

func TestCreateValidationOrder(t *testing.T) {
	admin := setupVoucherAdminTest(t)
	now := time.Now()
	earlier := now.Add(-time.Hour)

	cases := []struct {
		name  string
		input VoucherInput
		want  error
	}{
		{
			name:  "missing name",
			input: VoucherInput{Type: constants.VoucherTypePercentage, Value: models.NewMoneyFromFloat(5)},
			want:  ErrVoucherNameRequired,
		},
		{
			name:  "missing type",
			input: VoucherInput{Name: "x", Value: models.NewMoneyFromFloat(5)},
			want:  ErrVoucherTypeRequired,
		},
		{
			name:  "bad type",
			input: VoucherInput{Name: "x", Type: "bogo", Value: models.NewMoneyFromFloat(5)},
			want:  ErrVoucherTypeInvalid,
		},
		{
			name:  "zero value",
			input: VoucherInput{Name: "x", Type: constants.VoucherTypeFixedAmount},
			want:  ErrVoucherValueInvalid,
		},
		{
			name:  "percent over 100",
			input: VoucherInput{Name: "x", Type: constants.VoucherTypePercentage, Value: models.NewMoneyFromFloat(150)},
			want:  ErrVoucherPercentTooHigh,
		},
		{
			name: "negative min order",
			input: VoucherInput{
				Name: "x", Type: constants.VoucherTypePercentage,
				Value: models.NewMoneyFromFloat(10), MinOrderAmount: models.NewMoneyFromFloat(-1),
			},
			want: ErrVoucherMinNegative,
		},
		{
			name: "negative max discount",
			input: VoucherInput{
				Name: "x", Type: constants.VoucherTypePercentage,
				Value: models.NewMoneyFromFloat(10), MaxDiscount: models.NewMoneyFromFloat(-5),
			},
			want: ErrVoucherMaxNegative,
		},
		{
			name: "negative usage limit",
			input: VoucherInput{
				Name: "x", Type: constants.VoucherTypePercentage,
				Value: models.NewMoneyFromFloat(10), UsageLimit: -1,
			},
			want: ErrVoucherUsageLimitLow,
		},
		{
			name: "dates out of order",
			input: VoucherInput{
				Name: "x", Type: constants.VoucherTypePercentage,
				Value: models.NewMoneyFromFloat(10), ValidFrom: &now, ValidUntil: &earlier,
			},
			want: ErrVoucherDateOrder,
		},
	}

	for _, tc := range cases {
		if _, err := admin.Create(tc.input); !errors.Is(err, tc.want) {
			t.Fatalf("%s: want %v got %v", tc.name, tc.want, err)
		}
	}

	// 100% 恰好合法
	if _, err := admin.Create(VoucherInput{
		Name: "full", Type: constants.VoucherTypePercentage, Value: models.NewMoneyFromFloat(100),
	}); err != nil {
		t.Fatalf("100 percent should be accepted, got %v", err)
	}
}

func TestCreateRejectsTakenCode(t *testing.T) {
	admin := setupVoucherAdminTest(t)
	if _, err := admin.Create(VoucherInput{
		Name: "first", Type: constants.VoucherTypePercentage,
		Value: models.NewMoneyFromFloat(10), Code: "samecode",
	}); err != nil {
		t.Fatalf("create failed: %v", err)
	}

	// 提供的码会被归一化为大写再查重
	if _, err := admin.Create(VoucherInput{
		Name: "second", Type: constants.VoucherTypePercentage,
		Value: models.NewMoneyFromFloat(10), Code: "SAMECODE",
	}); !errors.Is(err, ErrVoucherCodeTaken) {
		t.Fatalf("want ErrVoucherCodeTaken got %v", err)
	}
}

func TestToggleStatusRoundTrip(t *testing.T) {
	admin := setupVoucherAdminTest(t)
	voucher, err := admin.Create(VoucherInput{
		Name: "toggle", Type: constants.VoucherTypePercentage, Value: models.NewMoneyFromFloat(10),
	})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}

	states := []string{
		constants.VoucherStatusInactive,
		constants.VoucherStatusActive,
		constants.VoucherStatusInactive,
		constants.VoucherStatusActive,
	}
	for i, want := range states {
		toggled, err := admin.ToggleStatus(voucher.ID, 0)
		if err != nil {
			t.Fatalf("toggle %d failed: %v", i, err)
		}
		if toggled.Status != want {
			t.Fatalf("toggle %d want %s got %s", i, want, toggled.Status)
		}
	}
}

func TestVoucherOwnershipIsolation(t *testing.T) {
	admin := setupVoucherAdminTest(t)
	voucher, err := admin.Create(VoucherInput{
		Name: "mine", Type: constants.VoucherTypePercentage,
		Value: models.NewMoneyFromFloat(10), SellerID: 1,
	})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}

	// 他人的券一律按不存在处理
	if _, err := admin.Get(voucher.ID, 2); !errors.Is(err, ErrVoucherNotFound) {
		t.Fatalf("foreign get want ErrVoucherNotFound got %v", err)
	}
	if _, err := admin.Update(voucher.ID, VoucherInput{
		Name: "hijacked", Type: constants.VoucherTypePercentage,
		Value: models.NewMoneyFromFloat(10), SellerID: 2,
	}); !errors.Is(err, ErrVoucherNotFound) {
		t.Fatalf("foreign update want ErrVoucherNotFound got %v", err)
	}
	if err := admin.Delete(voucher.ID, 2); !errors.Is(err, ErrVoucherNotFound) {
		t.Fatalf("foreign delete want ErrVoucherNotFound got %v", err)
	}
	if _, err := admin.ToggleStatus(voucher.ID, 2); !errors.Is(err, ErrVoucherNotFound) {
		t.Fatalf("foreign toggle want ErrVoucherNotFound got %v", err)
	}
	if _, _, err := admin.ListUsages(voucher.ID, 2, 1, 10); !errors.Is(err, ErrVoucherNotFound) {
		t.Fatalf("foreign usages want ErrVoucherNotFound got %v", err)
	}

	// 归属人与后台（sellerID 0）不受影响
	reloaded, err := admin.Get(voucher.ID, 1)
	if err != nil {
		t.Fatalf("owner get failed: %v", err)
	}
	if reloaded.Name != "mine" {
		t.Fatalf("voucher must be untouched by foreign update, got name %q", reloaded.Name)
	}
	if _, err := admin.Get(voucher.ID, 0); err != nil {
		t.Fatalf("unscoped get failed: %v", err)
	}
}

func TestUpdateReplacesFieldsKeepsCode(t *testing.T) {
	admin := setupVoucherAdminTest(t)
	voucher, err := admin.Create(VoucherInput{
		Name: "before", Type: constants.VoucherTypePercentage, Value: models.NewMoneyFromFloat(10),
	})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	originalCode := voucher.Code

	updated, err := admin.Update(voucher.ID, VoucherInput{
		Name:        "after",
		Description: "updated description",
		Type:        constants.VoucherTypeFixedAmount,
		Value:       models.NewMoneyFromFloat(25),
		Code:        "IGNORED1",
	})
	if err != nil {
		t.Fatalf("update failed: %v", err)
	}
	if updated.Code != originalCode {
		t.Fatalf("code must be immutable, want %s got %s", originalCode, updated.Code)
	}
	if updated.Name != "after" || updated.Type != constants.VoucherTypeFixedAmount {
		t.Fatalf("update should replace fields, got %+v", updated)
	}

	if _, err := admin.Update(9999, VoucherInput{
		Name: "missing", Type: constants.VoucherTypePercentage, Value: models.NewMoneyFromFloat(10),
	}); !errors.Is(err, ErrVoucherNotFound) {
		t.Fatalf("updating missing voucher want ErrVoucherNotFound got %v", err)
	}
}

func TestStatsDerivedExpired(t *testing.T) {
	admin := setupVoucherAdminTest(t)
	past := time.Now().Add(-time.Hour)
	farPast := time.Now().Add(-2 * time.Hour)

	if _, err := admin.Create(VoucherInput{
		Name: "live", Type: constants.VoucherTypePercentage, Value: models.NewMoneyFromFloat(10),
	}); err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if _, err := admin.Create(VoucherInput{
		Name: "dead", Type: constants.VoucherTypePercentage, Value: models.NewMoneyFromFloat(10),
		ValidFrom: &farPast, ValidUntil: &past,
	}); err != nil {
		t.Fatalf("create failed: %v", err)
	}

	stats, err := admin.Stats(0)
	if err != nil {
		t.Fatalf("stats failed: %v", err)
	}
	if stats.Summary.Total != 2 || stats.Summary.Active != 1 || stats.Summary.Expired != 1 {
		t.Fatalf("stats mismatch: %+v", stats.Summary)
	}
	if len(stats.TypeStats) != 1 || stats.TypeStats[0].Type != constants.VoucherTypePercentage || stats.TypeStats[0].Count != 2 {
		t.Fatalf("type stats mismatch: %+v", stats.TypeStats)
	}
}
