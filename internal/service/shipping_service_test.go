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

func setupShippingServiceTest(t *testing.T) *ShippingService {
	t.Helper()
	dsn := fmt.Sprintf("file:shipping_service_test_%d?mode=memory&cache=shared", time.Now().UnixNano())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	if err := db.AutoMigrate(&models.Courier{}, &models.CourierRate{}, &models.Setting{}); err != nil {
		t.Fatalf("auto migrate failed: %v", err)
	}
	models.DB = db
	return NewShippingService(repository.NewCourierRepository(db), repository.NewSettingRepository(db))
}

func createCourierWithRate(t *testing.T, svc *ShippingService, sellerID uint, name, region string, price float64) *models.Courier {
	t.Helper()
	courier, err := svc.CreateCourier(sellerID, CourierInput{Name: name})
	if err != nil {
		t.Fatalf("create courier failed: %v", err)
	}
	if _, err := svc.UpsertRate(courier.ID, sellerID, RateInput{
		Region: region,
		Price:  models.NewMoneyFromFloat(price),
	}); err != nil {
		t.Fatalf("upsert rate failed: %v", err)
	}
	return courier
}

func TestCreateCourierRequiresName(t *testing.T) {
	svc := setupShippingServiceTest(t)
	if _, err := svc.CreateCourier(1, CourierInput{Name: "   "}); !errors.Is(err, ErrCourierNameRequired) {
		t.Fatalf("want ErrCourierNameRequired got %v", err)
	}
}

func TestUpsertRateValidation(t *testing.T) {
	svc := setupShippingServiceTest(t)
	courier, err := svc.CreateCourier(1, CourierInput{Name: "J&T Express"})
	if err != nil {
		t.Fatalf("create courier failed: %v", err)
	}

	if _, err := svc.UpsertRate(courier.ID, 1, RateInput{Region: "mars", Price: models.NewMoneyFromFloat(80)}); !errors.Is(err, ErrShippingRegion) {
		t.Fatalf("unknown region want ErrShippingRegion got %v", err)
	}
	if _, err := svc.UpsertRate(courier.ID, 1, RateInput{Region: constants.ShippingRegionLuzon, Price: models.NewMoneyFromFloat(-1)}); !errors.Is(err, ErrShippingRateInvalid) {
		t.Fatalf("negative price want ErrShippingRateInvalid got %v", err)
	}
	if _, err := svc.UpsertRate(999, 1, RateInput{Region: constants.ShippingRegionLuzon, Price: models.NewMoneyFromFloat(80)}); !errors.Is(err, ErrCourierNotFound) {
		t.Fatalf("missing courier want ErrCourierNotFound got %v", err)
	}

	// 区域大小写不敏感，重复写入覆盖原值
	if _, err := svc.UpsertRate(courier.ID, 1, RateInput{Region: " Metro-Manila ", Price: models.NewMoneyFromFloat(85)}); err != nil {
		t.Fatalf("upsert rate failed: %v", err)
	}
	if _, err := svc.UpsertRate(courier.ID, 1, RateInput{Region: constants.ShippingRegionMetroManila, Price: models.NewMoneyFromFloat(95)}); err != nil {
		t.Fatalf("second upsert failed: %v", err)
	}
	_, rates, err := svc.GetCourier(courier.ID, 1)
	if err != nil {
		t.Fatalf("get courier failed: %v", err)
	}
	if len(rates) != 1 {
		t.Fatalf("rates want 1 got %d", len(rates))
	}
	if rates[0].Price.String() != "95.00" {
		t.Fatalf("rate price want 95.00 got %s", rates[0].Price.String())
	}
}

func TestQuoteReturnsActiveCouriersOnly(t *testing.T) {
	svc := setupShippingServiceTest(t)
	createCourierWithRate(t, svc, 1, "J&T Express", constants.ShippingRegionLuzon, 95)
	inactive := createCourierWithRate(t, svc, 1, "Slow Cargo", constants.ShippingRegionLuzon, 60)

	off := false
	if _, err := svc.UpdateCourier(inactive.ID, 1, CourierInput{Name: "Slow Cargo", IsActive: &off}); err != nil {
		t.Fatalf("disable courier failed: %v", err)
	}

	options, err := svc.Quote(1, "luzon", models.NewMoneyFromFloat(500))
	if err != nil {
		t.Fatalf("quote failed: %v", err)
	}
	if len(options) != 1 {
		t.Fatalf("options want 1 got %d", len(options))
	}
	if options[0].CourierName != "J&T Express" {
		t.Fatalf("courier want J&T Express got %s", options[0].CourierName)
	}
	if options[0].Fee.String() != "95.00" || options[0].IsFree {
		t.Fatalf("fee want 95.00 paid got %s free=%v", options[0].Fee.String(), options[0].IsFree)
	}
}

func TestQuoteFreeShippingThreshold(t *testing.T) {
	svc := setupShippingServiceTest(t)
	createCourierWithRate(t, svc, 1, "LBC", constants.ShippingRegionVisayas, 130)

	if _, err := svc.UpdateFreeShippingConfig(1, FreeShippingConfig{
		Enabled:            true,
		MinimumOrderAmount: models.NewMoneyFromFloat(1000),
	}); err != nil {
		t.Fatalf("update free shipping config failed: %v", err)
	}

	// 达标订单运费清零
	options, err := svc.Quote(1, constants.ShippingRegionVisayas, models.NewMoneyFromFloat(1000))
	if err != nil {
		t.Fatalf("quote failed: %v", err)
	}
	if len(options) != 1 || !options[0].IsFree {
		t.Fatalf("expected free shipping option, got %+v", options)
	}
	if options[0].Fee.String() != "0.00" {
		t.Fatalf("free fee want 0.00 got %s", options[0].Fee.String())
	}

	// 未达标仍收取原价
	options, err = svc.Quote(1, constants.ShippingRegionVisayas, models.NewMoneyFromFloat(999.99))
	if err != nil {
		t.Fatalf("quote failed: %v", err)
	}
	if len(options) != 1 || options[0].IsFree {
		t.Fatalf("expected paid shipping option, got %+v", options)
	}
	if options[0].Fee.String() != "130.00" {
		t.Fatalf("fee want 130.00 got %s", options[0].Fee.String())
	}
}

func TestFreeShippingConfigRoundTrip(t *testing.T) {
	svc := setupShippingServiceTest(t)

	cfg, err := svc.GetFreeShippingConfig(1)
	if err != nil {
		t.Fatalf("get default config failed: %v", err)
	}
	if cfg.Enabled {
		t.Fatalf("default free shipping should be disabled")
	}

	if _, err := svc.UpdateFreeShippingConfig(1, FreeShippingConfig{
		Enabled:            true,
		MinimumOrderAmount: models.NewMoneyFromFloat(750),
	}); err != nil {
		t.Fatalf("update config failed: %v", err)
	}

	cfg, err = svc.GetFreeShippingConfig(1)
	if err != nil {
		t.Fatalf("get config failed: %v", err)
	}
	if !cfg.Enabled || cfg.MinimumOrderAmount.String() != "750.00" {
		t.Fatalf("config round trip failed: %+v", cfg)
	}

	if _, err := svc.UpdateFreeShippingConfig(1, FreeShippingConfig{
		MinimumOrderAmount: models.NewMoneyFromFloat(-5),
	}); !errors.Is(err, ErrShippingRateInvalid) {
		t.Fatalf("negative threshold want ErrShippingRateInvalid got %v", err)
	}
}

func TestShippingIsolationAcrossSellers(t *testing.T) {
	svc := setupShippingServiceTest(t)
	mine := createCourierWithRate(t, svc, 1, "J&T Express", constants.ShippingRegionLuzon, 95)
	createCourierWithRate(t, svc, 2, "LBC", constants.ShippingRegionLuzon, 120)

	// 列表只含本卖家的承运商
	couriers, err := svc.ListCouriers(1)
	if err != nil {
		t.Fatalf("list couriers failed: %v", err)
	}
	if len(couriers) != 1 || couriers[0].Name != "J&T Express" {
		t.Fatalf("seller 1 couriers want [J&T Express] got %+v", couriers)
	}

	// 他人的承运商按不存在处理
	if _, _, err := svc.GetCourier(mine.ID, 2); !errors.Is(err, ErrCourierNotFound) {
		t.Fatalf("foreign get want ErrCourierNotFound got %v", err)
	}
	if _, err := svc.UpdateCourier(mine.ID, 2, CourierInput{Name: "hijacked"}); !errors.Is(err, ErrCourierNotFound) {
		t.Fatalf("foreign update want ErrCourierNotFound got %v", err)
	}
	if err := svc.DeleteCourier(mine.ID, 2); !errors.Is(err, ErrCourierNotFound) {
		t.Fatalf("foreign delete want ErrCourierNotFound got %v", err)
	}
	if _, err := svc.UpsertRate(mine.ID, 2, RateInput{Region: constants.ShippingRegionLuzon, Price: models.NewMoneyFromFloat(1)}); !errors.Is(err, ErrCourierNotFound) {
		t.Fatalf("foreign upsert rate want ErrCourierNotFound got %v", err)
	}

	// 报价只取被报价店铺的承运商
	options, err := svc.Quote(2, constants.ShippingRegionLuzon, models.NewMoneyFromFloat(500))
	if err != nil {
		t.Fatalf("quote failed: %v", err)
	}
	if len(options) != 1 || options[0].CourierName != "LBC" {
		t.Fatalf("seller 2 quote want [LBC] got %+v", options)
	}

	// 免运费配置按卖家独立
	if _, err := svc.UpdateFreeShippingConfig(2, FreeShippingConfig{
		Enabled:            true,
		MinimumOrderAmount: models.NewMoneyFromFloat(100),
	}); err != nil {
		t.Fatalf("update config failed: %v", err)
	}
	options, err = svc.Quote(1, constants.ShippingRegionLuzon, models.NewMoneyFromFloat(500))
	if err != nil {
		t.Fatalf("quote failed: %v", err)
	}
	if len(options) != 1 || options[0].IsFree {
		t.Fatalf("seller 1 quote should stay paid, got %+v", options)
	}
}
