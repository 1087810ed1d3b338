package service

import (
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

func setupVoucherServiceTest(t *testing.T) (*VoucherService, *VoucherAdminService) {
	t.Helper()
	dsn := fmt.Sprintf("file:voucher_service_test_%d?mode=memory&cache=shared", time.Now().UnixNano())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	if err := db.AutoMigrate(&models.Voucher{}, &models.VoucherUsage{}); err != nil {
		t.Fatalf("auto migrate failed: %v", err)
	}
	models.DB = db
	voucherRepo := repository.NewVoucherRepository(db)
	usageRepo := repository.NewVoucherUsageRepository(db)
	return NewVoucherService(voucherRepo, usageRepo), NewVoucherAdminService(voucherRepo, usageRepo)
}

func createVoucher(t *testing.T, admin *VoucherAdminService, input VoucherInput) *models.Voucher {
	t.Helper()
	voucher, err := admin.Create(input)
	if err != nil {
		t.Fatalf("create voucher failed: %v", err)
	}
	return voucher
}

func TestEvaluateWelcomeScenario(t *testing.T) {
	svc, admin := setupVoucherServiceTest(t)
	createVoucher(t, admin, VoucherInput{
		Code:           "WELCOME10",
		Name:           "Welcome Discount",
		Type:           constants.VoucherTypePercentage,
		Value:          models.NewMoneyFromFloat(10),
		MinOrderAmount: models.NewMoneyFromFloat(500),
	})

	result, err := svc.Evaluate("WELCOME10", models.NewMoneyFromFloat(1000))
	if err != nil {
		t.Fatalf("evaluate failed: %v", err)
	}
	if result.DiscountAmount.String() != "100.00" {
		t.Fatalf("discount want 100.00 got %s", result.DiscountAmount.String())
	}
	if result.FinalAmount.String() != "900.00" {
		t.Fatalf("final want 900.00 got %s", result.FinalAmount.String())
	}

	// 门槛不足时带金额的提示
	_, err = svc.Evaluate("WELCOME10", models.NewMoneyFromFloat(400))
	var minErr *MinOrderAmountError
	if !errors.As(err, &minErr) {
		t.Fatalf("want MinOrderAmountError got %v", err)
	}
	if minErr.Error() != "Minimum order amount of 500.00 required" {
		t.Fatalf("unexpected message: %s", minErr.Error())
	}
}

func TestEvaluatePercentageMaxDiscountClamp(t *testing.T) {
	svc, admin := setupVoucherServiceTest(t)
	createVoucher(t, admin, VoucherInput{
		Name:        "Capped Percent",
		Type:        constants.VoucherTypePercentage,
		Value:       models.NewMoneyFromFloat(20),
		MaxDiscount: models.NewMoneyFromFloat(150),
		Code:        "CAP20OFF",
	})

	result, err := svc.Evaluate("CAP20OFF", models.NewMoneyFromFloat(1000))
	if err != nil {
		t.Fatalf("evaluate failed: %v", err)
	}
	if result.DiscountAmount.String() != "150.00" {
		t.Fatalf("capped discount want 150.00 got %s", result.DiscountAmount.String())
	}
}

func TestEvaluateFixedAmountClampToOrder(t *testing.T) {
	svc, admin := setupVoucherServiceTest(t)
	createVoucher(t, admin, VoucherInput{
		Name:  "Big Fixed",
		Type:  constants.VoucherTypeFixedAmount,
		Value: models.NewMoneyFromFloat(500),
		Code:  "FIXED500",
	})

	result, err := svc.Evaluate("FIXED500", models.NewMoneyFromFloat(300))
	if err != nil {
		t.Fatalf("evaluate failed: %v", err)
	}
	if result.DiscountAmount.String() != "300.00" {
		t.Fatalf("fixed discount should clamp to order amount, got %s", result.DiscountAmount.String())
	}
	if result.FinalAmount.String() != "0.00" {
		t.Fatalf("final want 0.00 got %s", result.FinalAmount.String())
	}
}

func TestEvaluateFreeShipping(t *testing.T) {
	svc, admin := setupVoucherServiceTest(t)
	createVoucher(t, admin, VoucherInput{
		Name:  "Free Ship",
		Type:  constants.VoucherTypeFreeShipping,
		Value: models.NewMoneyFromFloat(1),
		Code:  "SHIPFREE",
	})

	result, err := svc.Evaluate("SHIPFREE", models.NewMoneyFromFloat(200))
	if err != nil {
		t.Fatalf("evaluate failed: %v", err)
	}
	if !result.IsFreeShipping {
		t.Fatalf("free shipping flag should be set")
	}
	if !result.DiscountAmount.Decimal.IsZero() {
		t.Fatalf("free shipping discount should be zero, got %s", result.DiscountAmount.String())
	}
}

func TestEvaluateRejectionOrder(t *testing.T) {
	svc, admin := setupVoucherServiceTest(t)
	now := time.Now()
	past := now.Add(-time.Hour)
	future := now.Add(time.Hour)
	farFuture := now.Add(48 * time.Hour)

	if _, err := svc.Evaluate("MISSING1", models.NewMoneyFromFloat(100)); !errors.Is(err, ErrVoucherInvalidCode) {
		t.Fatalf("unknown code want ErrVoucherInvalidCode got %v", err)
	}

	createVoucher(t, admin, VoucherInput{
		Name: "Inactive", Type: constants.VoucherTypePercentage,
		Value: models.NewMoneyFromFloat(10), Code: "INACTIV1",
		Status: constants.VoucherStatusInactive,
	})
	if _, err := svc.Evaluate("INACTIV1", models.NewMoneyFromFloat(100)); !errors.Is(err, ErrVoucherNotActive) {
		t.Fatalf("inactive want ErrVoucherNotActive got %v", err)
	}

	createVoucher(t, admin, VoucherInput{
		Name: "Expired", Type: constants.VoucherTypePercentage,
		Value: models.NewMoneyFromFloat(10), Code: "EXPIRED2",
		ValidFrom: &past, ValidUntil: &now,
	})
	time.Sleep(5 * time.Millisecond)
	if _, err := svc.Evaluate("EXPIRED2", models.NewMoneyFromFloat(100)); !errors.Is(err, ErrVoucherExpired) {
		t.Fatalf("expired want ErrVoucherExpired got %v", err)
	}

	createVoucher(t, admin, VoucherInput{
		Name: "Later", Type: constants.VoucherTypePercentage,
		Value: models.NewMoneyFromFloat(10), Code: "NOTYET01",
		ValidFrom: &future, ValidUntil: &farFuture,
	})
	if _, err := svc.Evaluate("NOTYET01", models.NewMoneyFromFloat(100)); !errors.Is(err, ErrVoucherNotYetValid) {
		t.Fatalf("not yet valid want ErrVoucherNotYetValid got %v", err)
	}
}

func TestRedeemRespectsUsageLimit(t *testing.T) {
	svc, admin := setupVoucherServiceTest(t)
	voucher := createVoucher(t, admin, VoucherInput{
		Name:       "Limit One",
		Type:       constants.VoucherTypeFixedAmount,
		Value:      models.NewMoneyFromFloat(10),
		Code:       "ONESHOT1",
		UsageLimit: 1,
	})

	first, err := svc.Redeem("ONESHOT1", models.NewMoneyFromFloat(100))
	if err != nil {
		t.Fatalf("first redeem failed: %v", err)
	}
	if first.Voucher.UsedCount != 1 {
		t.Fatalf("used count want 1 got %d", first.Voucher.UsedCount)
	}
	if first.Voucher.Status != constants.VoucherStatusUsed {
		t.Fatalf("exhausted voucher should flip to used, got %s", first.Voucher.Status)
	}

	if _, err := svc.Redeem("ONESHOT1", models.NewMoneyFromFloat(100)); err == nil {
		t.Fatalf("second redeem should be rejected")
	}

	reloaded, err := admin.Get(voucher.ID, 0)
	if err != nil {
		t.Fatalf("reload failed: %v", err)
	}
	if reloaded.UsedCount != 1 {
		t.Fatalf("used count must never pass the limit, got %d", reloaded.UsedCount)
	}
}

func TestRedeemWritesUsageRecord(t *testing.T) {
	svc, admin := setupVoucherServiceTest(t)
	voucher := createVoucher(t, admin, VoucherInput{
		Name:  "Track Me",
		Type:  constants.VoucherTypePercentage,
		Value: models.NewMoneyFromFloat(10),
		Code:  "TRACKED1",
	})

	if _, err := svc.Redeem("TRACKED1", models.NewMoneyFromFloat(200)); err != nil {
		t.Fatalf("redeem failed: %v", err)
	}

	usages, total, err := admin.ListUsages(voucher.ID, 0, 1, 10)
	if err != nil {
		t.Fatalf("list usages failed: %v", err)
	}
	if total != 1 || len(usages) != 1 {
		t.Fatalf("usage record count want 1 got %d", total)
	}
	if usages[0].DiscountAmount.String() != "20.00" {
		t.Fatalf("usage discount want 20.00 got %s", usages[0].DiscountAmount.String())
	}
}

func TestApplyGuardsUsageLimit(t *testing.T) {
	svc, admin := setupVoucherServiceTest(t)
	voucher := createVoucher(t, admin, VoucherInput{
		Name:       "Apply Limit",
		Type:       constants.VoucherTypeFixedAmount,
		Value:      models.NewMoneyFromFloat(5),
		Code:       "APPLYLIM",
		UsageLimit: 2,
	})

	for i := 0; i < 2; i++ {
		updated, err := svc.Apply(voucher.ID, 0)
		if err != nil {
			t.Fatalf("apply %d failed: %v", i, err)
		}
		if updated.UsedCount != i+1 {
			t.Fatalf("apply %d used count want %d got %d", i, i+1, updated.UsedCount)
		}
	}

	if _, err := svc.Apply(voucher.ID, 0); !errors.Is(err, ErrVoucherUsageLimit) {
		t.Fatalf("apply past limit want ErrVoucherUsageLimit got %v", err)
	}
}

func TestApplyRejectsForeignSeller(t *testing.T) {
	svc, admin := setupVoucherServiceTest(t)
	voucher := createVoucher(t, admin, VoucherInput{
		Name:     "Owned",
		Type:     constants.VoucherTypeFixedAmount,
		Value:    models.NewMoneyFromFloat(5),
		Code:     "OWNED001",
		SellerID: 1,
	})

	if _, err := svc.Apply(voucher.ID, 2); !errors.Is(err, ErrVoucherNotFound) {
		t.Fatalf("foreign apply want ErrVoucherNotFound got %v", err)
	}

	updated, err := svc.Apply(voucher.ID, 1)
	if err != nil {
		t.Fatalf("owner apply failed: %v", err)
	}
	if updated.UsedCount != 1 {
		t.Fatalf("owner apply used count want 1 got %d", updated.UsedCount)
	}
}
