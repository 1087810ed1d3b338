package service

import (
	"testing"

	"github.com/studio360-next/internal/constants"
)

func TestUpdateShippingSettingNormalized(t *testing.T) {
	repo := newMockSettingRepo()
	svc := NewSettingService(repo)

	result, err := svc.Update(constants.SettingKeyShippingConfig, map[string]interface{}{
		constants.SettingFieldFreeShipping: "yes",
		constants.SettingFieldFreeShipMin:  "  1499.999 ",
		"extra":                            "keep",
	})
	if err != nil {
		t.Fatalf("update shipping config failed: %v", err)
	}

	if result[constants.SettingFieldFreeShipping] != true {
		t.Fatalf("unexpected enable_free_shipping: %v", result[constants.SettingFieldFreeShipping])
	}
	if result[constants.SettingFieldFreeShipMin] != "1500.00" {
		t.Fatalf("unexpected minimum_order_amount: %v", result[constants.SettingFieldFreeShipMin])
	}
	if result["extra"] != "keep" {
		t.Fatalf("unexpected extra field: %v", result["extra"])
	}
}

func TestUpdateShippingSettingNegativeMinimum(t *testing.T) {
	repo := newMockSettingRepo()
	svc := NewSettingService(repo)

	result, err := svc.Update(constants.SettingKeyShippingConfig, map[string]interface{}{
		constants.SettingFieldFreeShipMin: -50.0,
	})
	if err != nil {
		t.Fatalf("update shipping config failed: %v", err)
	}
	if result[constants.SettingFieldFreeShipMin] != "0.00" {
		t.Fatalf("unexpected minimum_order_amount: %v", result[constants.SettingFieldFreeShipMin])
	}
	if result[constants.SettingFieldFreeShipping] != false {
		t.Fatalf("unexpected enable_free_shipping: %v", result[constants.SettingFieldFreeShipping])
	}
}

func TestUpdateShopProfileNormalized(t *testing.T) {
	repo := newMockSettingRepo()
	svc := NewSettingService(repo)

	result, err := svc.Update(constants.SettingKeyShopProfile, map[string]interface{}{
		constants.SettingFieldShopName:     "  Sunny Crafts  ",
		constants.SettingFieldContactEmail: " hello@sunnycrafts.ph ",
		constants.SettingFieldShopCategory: 123,
	})
	if err != nil {
		t.Fatalf("update shop profile failed: %v", err)
	}

	if result[constants.SettingFieldShopName] != "Sunny Crafts" {
		t.Fatalf("unexpected shop_name: %v", result[constants.SettingFieldShopName])
	}
	if result[constants.SettingFieldContactEmail] != "hello@sunnycrafts.ph" {
		t.Fatalf("unexpected contact_email: %v", result[constants.SettingFieldContactEmail])
	}
	if result[constants.SettingFieldShopCategory] != "" {
		t.Fatalf("unexpected category: %v", result[constants.SettingFieldShopCategory])
	}
}
