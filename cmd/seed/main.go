package main

import (
	"fmt"
	"time"

	"github.com/studio360-next/internal/config"
	"github.com/studio360-next/internal/constants"
	"github.com/studio360-next/internal/logger"
	"github.com/studio360-next/internal/models"

	"golang.org/x/crypto/bcrypt"
)

func main() {
	// 连接数据库
	cfg := config.Load()
	logger.Init(cfg.Server.Mode, cfg.Log.ToLoggerOptions())
	stdLog := logger.StdLogger()
	if err := models.InitDB(cfg.Database.Driver, cfg.Database.DSN, models.DBPoolConfig{
		MaxOpenConns:           cfg.Database.Pool.MaxOpenConns,
		MaxIdleConns:           cfg.Database.Pool.MaxIdleConns,
		ConnMaxLifetimeSeconds: cfg.Database.Pool.ConnMaxLifetimeSeconds,
		ConnMaxIdleTimeSeconds: cfg.Database.Pool.ConnMaxIdleTimeSeconds,
	}); err != nil {
		stdLog.Fatalf("Failed to connect database: %v", err)
	}

	// 自动迁移
	if err := models.AutoMigrate(); err != nil {
		stdLog.Fatalf("Failed to migrate database: %v", err)
	}

	// 演示卖家账号
	seller := seedDemoSeller(stdLog.Printf)
	if seller == nil {
		stdLog.Fatalf("Failed to seed demo seller")
	}

	now := time.Now()

	// 演示代金券
	percentOff := now.AddDate(0, 1, 0)
	fixedOff := now.AddDate(0, 0, 14)
	expired := now.AddDate(0, 0, -1)
	vouchers := []models.Voucher{
		{
			Code:           "WELCOME1",
			Name:           "Welcome 10% Off",
			Description:    "10% off for new buyers, capped at PHP 150",
			Type:           constants.VoucherTypePercentage,
			Value:          models.NewMoneyFromFloat(10),
			MinOrderAmount: models.NewMoneyFromFloat(500),
			MaxDiscount:    models.NewMoneyFromFloat(150),
			UsageLimit:     100,
			ValidFrom:      now.AddDate(0, 0, -7),
			ValidUntil:     &percentOff,
			ApplicableTo:   constants.VoucherApplicableAll,
			Status:         constants.VoucherStatusActive,
			SellerID:       seller.ID,
			CreatedBy:      seller.Email,
		},
		{
			Code:           "PISO50PH",
			Name:           "PHP 50 Off",
			Description:    "Flat PHP 50 discount on orders over PHP 300",
			Type:           constants.VoucherTypeFixedAmount,
			Value:          models.NewMoneyFromFloat(50),
			MinOrderAmount: models.NewMoneyFromFloat(300),
			UsageLimit:     50,
			ValidFrom:      now.AddDate(0, 0, -3),
			ValidUntil:     &fixedOff,
			ApplicableTo:   constants.VoucherApplicableAll,
			Status:         constants.VoucherStatusActive,
			SellerID:       seller.ID,
			CreatedBy:      seller.Email,
		},
		{
			Code:         "FREESHIP",
			Name:         "Free Shipping Promo",
			Description:  "Free shipping nationwide, no minimum",
			Type:         constants.VoucherTypeFreeShipping,
			Value:        models.NewMoneyFromFloat(0),
			ValidFrom:    now.AddDate(0, 0, -1),
			ApplicableTo: constants.VoucherApplicableAll,
			Status:       constants.VoucherStatusActive,
			SellerID:     seller.ID,
			CreatedBy:    seller.Email,
		},
		{
			Code:         "EXPIRED1",
			Name:         "Lapsed Promo",
			Description:  "Already past its validity window",
			Type:         constants.VoucherTypeFixedAmount,
			Value:        models.NewMoneyFromFloat(20),
			ValidFrom:    now.AddDate(0, 0, -30),
			ValidUntil:   &expired,
			ApplicableTo: constants.VoucherApplicableAll,
			Status:       constants.VoucherStatusActive,
			SellerID:     seller.ID,
			CreatedBy:    seller.Email,
		},
	}
	for _, voucher := range vouchers {
		var existing models.Voucher
		if err := models.DB.Where("code = ?", voucher.Code).First(&existing).Error; err != nil {
			if err := models.DB.Create(&voucher).Error; err != nil {
				stdLog.Printf("Failed to create voucher %s: %v", voucher.Code, err)
			} else {
				stdLog.Printf("Created voucher: %s", voucher.Code)
			}
		} else {
			stdLog.Printf("Voucher already exists: %s", voucher.Code)
		}
	}

	// 演示承运商与分区运费
	courierPlans := []struct {
		Name  string
		Sort  int
		Rates map[string]float64
	}{
		{
			Name: "J&T Express",
			Sort: 300,
			Rates: map[string]float64{
				constants.ShippingRegionMetroManila: 85,
				constants.ShippingRegionLuzon:       95,
				constants.ShippingRegionVisayas:     100,
				constants.ShippingRegionMindanao:    105,
				constants.ShippingRegionIslands:     115,
			},
		},
		{
			Name: "LBC",
			Sort: 200,
			Rates: map[string]float64{
				constants.ShippingRegionMetroManila: 100,
				constants.ShippingRegionLuzon:       120,
				constants.ShippingRegionVisayas:     130,
				constants.ShippingRegionMindanao:    140,
			},
		},
		{
			Name: "Ninja Van",
			Sort: 100,
			Rates: map[string]float64{
				constants.ShippingRegionMetroManila: 79,
				constants.ShippingRegionLuzon:       89,
			},
		},
	}
	for _, plan := range courierPlans {
		var courier models.Courier
		if err := models.DB.Where("seller_id = ? AND name = ?", seller.ID, plan.Name).First(&courier).Error; err != nil {
			courier = models.Courier{SellerID: seller.ID, Name: plan.Name, IsActive: true, SortOrder: plan.Sort}
			if err := models.DB.Create(&courier).Error; err != nil {
				stdLog.Printf("Failed to create courier %s: %v", plan.Name, err)
				continue
			}
			stdLog.Printf("Created courier: %s", plan.Name)
		}
		for region, price := range plan.Rates {
			var rate models.CourierRate
			if err := models.DB.Where("courier_id = ? AND region = ?", courier.ID, region).First(&rate).Error; err != nil {
				rate = models.CourierRate{
					CourierID:   courier.ID,
					Region:      region,
					Description: "2-5 business days",
					Price:       models.NewMoneyFromFloat(price),
					IsActive:    true,
				}
				if err := models.DB.Create(&rate).Error; err != nil {
					stdLog.Printf("Failed to create rate %s/%s: %v", plan.Name, region, err)
				}
			}
		}
	}

	// 演示系统公告
	maintenanceEnd := now.AddDate(0, 0, 7)
	announcements := []models.Announcement{
		{
			Title:    "Welcome to STUDIO360",
			Message:  "Manage your vouchers, shipping rates, bookkeeping and support tickets from one dashboard.",
			Type:     constants.AnnouncementTypeInfo,
			IsActive: true,
		},
		{
			Title:     "Scheduled Maintenance",
			Message:   "The platform will undergo maintenance this Sunday 02:00-04:00 PHT. Dashboard access may be interrupted.",
			Type:      constants.AnnouncementTypeMaintenance,
			IsActive:  true,
			ExpiresAt: &maintenanceEnd,
		},
	}
	for _, announcement := range announcements {
		var existing models.Announcement
		if err := models.DB.Where("title = ?", announcement.Title).First(&existing).Error; err != nil {
			if err := models.DB.Create(&announcement).Error; err != nil {
				stdLog.Printf("Failed to create announcement %s: %v", announcement.Title, err)
			} else {
				stdLog.Printf("Created announcement: %s", announcement.Title)
			}
		} else {
			stdLog.Printf("Announcement already exists: %s", announcement.Title)
		}
	}

	// 演示日记账分录（借贷平衡）
	seedJournalEntries(seller.ID, now, stdLog.Printf)

	// 店铺资料设置
	seedShopProfile(stdLog.Printf)

	fmt.Println("\n✅ Demo data created successfully!")
	fmt.Println("Summary:")
	fmt.Println("- 1 Demo seller (demo@studio360.ph / demo1234)")
	fmt.Println("- 4 Vouchers (percentage, fixed, free shipping, expired)")
	fmt.Println("- 3 Couriers with regional rates")
	fmt.Println("- 2 Announcements")
	fmt.Println("- 2 Journal entries")
	fmt.Println("- Shop profile settings")
}

func seedDemoSeller(logf func(string, ...interface{})) *models.Seller {
	const email = "demo@studio360.ph"
	var existing models.Seller
	if err := models.DB.Where("email = ?", email).First(&existing).Error; err == nil {
		logf("Seller already exists: %s", email)
		return &existing
	}

	hash, err := bcrypt.GenerateFromPassword([]byte("demo1234"), bcrypt.DefaultCost)
	if err != nil {
		logf("Failed to hash demo seller password: %v", err)
		return nil
	}
	seller := models.Seller{
		Email:        email,
		PasswordHash: string(hash),
		ShopName:     "Demo Crafts MNL",
		Status:       constants.SellerStatusActive,
	}
	if err := models.DB.Create(&seller).Error; err != nil {
		logf("Failed to create demo seller: %v", err)
		return nil
	}
	logf("Created seller: %s", email)
	return &seller
}

func seedJournalEntries(sellerID uint, now time.Time, logf func(string, ...interface{})) {
	entries := []models.JournalEntry{
		{
			SellerID:  sellerID,
			EntryDate: now.AddDate(0, 0, -5),
			Reference: "SEED-0001",
			Remarks:   "Cash sale of handmade tote bags",
			Lines: []models.JournalLine{
				{
					AccountCode:  constants.AccountCodeCash,
					AccountTitle: constants.ChartOfAccounts[constants.AccountCodeCash],
					Debit:        models.NewMoneyFromFloat(1500),
				},
				{
					AccountCode:  constants.AccountCodeSalesRevenue,
					AccountTitle: constants.ChartOfAccounts[constants.AccountCodeSalesRevenue],
					Credit:       models.NewMoneyFromFloat(1500),
				},
			},
		},
		{
			SellerID:  sellerID,
			EntryDate: now.AddDate(0, 0, -2),
			Reference: "SEED-0002",
			Remarks:   "Courier fees for the week",
			Lines: []models.JournalLine{
				{
					AccountCode:  constants.AccountCodeShippingExpense,
					AccountTitle: constants.ChartOfAccounts[constants.AccountCodeShippingExpense],
					Debit:        models.NewMoneyFromFloat(420),
				},
				{
					AccountCode:  constants.AccountCodeCash,
					AccountTitle: constants.ChartOfAccounts[constants.AccountCodeCash],
					Credit:       models.NewMoneyFromFloat(420),
				},
			},
		},
	}
	for _, entry := range entries {
		var existing models.JournalEntry
		if err := models.DB.Where("seller_id = ? AND reference = ?", sellerID, entry.Reference).First(&existing).Error; err != nil {
			if err := models.DB.Create(&entry).Error; err != nil {
				logf("Failed to create journal entry %s: %v", entry.Reference, err)
			} else {
				logf("Created journal entry: %s", entry.Reference)
			}
		} else {
			logf("Journal entry already exists: %s", entry.Reference)
		}
	}
}

func seedShopProfile(logf func(string, ...interface{})) {
	profile := map[string]interface{}{
		constants.SettingFieldShopName:      "Demo Crafts MNL",
		constants.SettingFieldContactEmail:  "hello@studio360.ph",
		constants.SettingFieldContactPhone:  "+63 917 000 0000",
		constants.SettingFieldShopCategory:  "handicrafts",
		constants.SettingFieldStreetAddress: "123 Katipunan Ave, Quezon City",
	}

	var setting models.Setting
	if err := models.DB.Where("key = ?", constants.SettingKeyShopProfile).First(&setting).Error; err != nil {
		setting = models.Setting{
			Key:       constants.SettingKeyShopProfile,
			ValueJSON: models.JSON(profile),
		}
		if err := models.DB.Create(&setting).Error; err != nil {
			logf("Failed to create shop profile: %v", err)
		} else {
			logf("Created shop profile")
		}
	} else {
		setting.ValueJSON = models.JSON(profile)
		if err := models.DB.Save(&setting).Error; err != nil {
			logf("Failed to update shop profile: %v", err)
		} else {
			logf("Updated shop profile")
		}
	}
}
