package public

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/studio360-next/internal/constants"
	"github.com/studio360-next/internal/models"
	"github.com/studio360-next/internal/provider"
	"github.com/studio360-next/internal/repository"
	"github.com/studio360-next/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
)

func setupVoucherHandlerTest(t *testing.T) (*gin.Engine, *gorm.DB) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	dsn := fmt.Sprintf("file:voucher_handler_test_%d?mode=memory&cache=shared", time.Now().UnixNano())
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
	handler := New(&provider.Container{
		VoucherAdminService: service.NewVoucherAdminService(voucherRepo, usageRepo),
		VoucherService:      service.NewVoucherService(voucherRepo, usageRepo),
	})

	engine := gin.New()
	engine.Use(func(c *gin.Context) {
		c.Set("seller_id", uint(1))
		c.Set("seller_email", "seller@example.ph")
	})
	engine.GET("/vouchers", handler.ListVouchers)
	engine.GET("/vouchers/:id", handler.GetVoucher)
	return engine, db
}

func TestVoucherResponsesUseDerivedStatus(t *testing.T) {
	engine, db := setupVoucherHandlerTest(t)

	// 落库状态仍为 active，有效期已过
	past := time.Now().Add(-time.Hour)
	voucher := &models.Voucher{
		Code:       "EXPIRED9",
		Name:       "Lapsed promo",
		Type:       constants.VoucherTypePercentage,
		Value:      models.NewMoneyFromFloat(10),
		ValidFrom:  past.Add(-time.Hour),
		ValidUntil: &past,
		Status:     constants.VoucherStatusActive,
		SellerID:   1,
	}
	if err := db.Create(voucher).Error; err != nil {
		t.Fatalf("seed voucher failed: %v", err)
	}

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/vouchers?status=expired", nil)
	engine.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("list status want 200 got %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), `"status":"expired"`) {
		t.Fatalf("list body should report derived status expired, got %s", w.Body.String())
	}
	if strings.Contains(w.Body.String(), `"status":"active"`) {
		t.Fatalf("list body must not leak stored status, got %s", w.Body.String())
	}

	w = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodGet, fmt.Sprintf("/vouchers/%d", voucher.ID), nil)
	engine.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("get status want 200 got %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), `"status":"expired"`) {
		t.Fatalf("get body should report derived status expired, got %s", w.Body.String())
	}
}

func TestGetVoucherHidesForeignSeller(t *testing.T) {
	engine, db := setupVoucherHandlerTest(t)

	voucher := &models.Voucher{
		Code:      "FOREIGN1",
		Name:      "Not yours",
		Type:      constants.VoucherTypeFixedAmount,
		Value:     models.NewMoneyFromFloat(50),
		ValidFrom: time.Now().Add(-time.Hour),
		Status:    constants.VoucherStatusActive,
		SellerID:  2,
	}
	if err := db.Create(voucher).Error; err != nil {
		t.Fatalf("seed voucher failed: %v", err)
	}

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, fmt.Sprintf("/vouchers/%d", voucher.ID), nil)
	engine.ServeHTTP(w, req)
	if w.Code != http.StatusNotFound {
		t.Fatalf("foreign voucher want 404 got %d body %s", w.Code, w.Body.String())
	}
}
