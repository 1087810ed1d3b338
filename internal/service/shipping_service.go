package service

import (
	"fmt"
	"strings"

	"github.com/studio360-next/internal/constants"
	"github.com/studio360-next/internal/models"
	"github.com/studio360-next/internal/repository"

	"github.com/shopspring/decimal"
)

// ShippingService 配送配置与运费计算服务
type ShippingService struct {
	courierRepo repository.CourierRepository
	settingRepo repository.SettingRepository
}

// NewShippingService 创建配送服务
func NewShippingService(courierRepo repository.CourierRepository, settingRepo repository.SettingRepository) *ShippingService {
	return &ShippingService{
		courierRepo: courierRepo,
		settingRepo: settingRepo,
	}
}

// FreeShippingConfig 免运费配置
type FreeShippingConfig struct {
	Enabled            bool         `json:"enable_free_shipping"`
	MinimumOrderAmount models.Money `json:"minimum_order_amount"`
}

// CourierInput 创建/更新承运商输入
type CourierInput struct {
	Name      string
	IsActive  *bool
	SortOrder int
}

// RateInput 分区运费输入
type RateInput struct {
	Region      string
	Description string
	Price       models.Money
	IsActive    *bool
}

// ShippingOption 前台运费报价选项
type ShippingOption struct {
	CourierID   uint         `json:"courier_id"`
	CourierName string       `json:"courier_name"`
	Region      string       `json:"region"`
	Description string       `json:"description"`
	Fee         models.Money `json:"fee"`
	IsFree      bool         `json:"is_free"`
}

// shippingConfigKey 免运费配置按卖家落键
func shippingConfigKey(sellerID uint) string {
	return fmt.Sprintf("%s:%d", constants.SettingKeyShippingConfig, sellerID)
}

// getOwnedCourier 读取承运商并校验归属，他人的承运商按不存在处理
func (s *ShippingService) getOwnedCourier(id, sellerID uint) (*models.Courier, error) {
	courier, err := s.courierRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if courier == nil {
		return nil, ErrCourierNotFound
	}
	if sellerID > 0 && courier.SellerID != sellerID {
		return nil, ErrCourierNotFound
	}
	return courier, nil
}

// normalizeRegion 归一化并校验配送区域
func normalizeRegion(region string) (string, error) {
	normalized := strings.ToLower(strings.TrimSpace(region))
	for _, r := range constants.ShippingRegions {
		if normalized == r {
			return normalized, nil
		}
	}
	return "", ErrShippingRegion
}

// GetFreeShippingConfig 读取卖家的免运费配置
func (s *ShippingService) GetFreeShippingConfig(sellerID uint) (FreeShippingConfig, error) {
	cfg := FreeShippingConfig{}
	setting, err := s.settingRepo.GetByKey(shippingConfigKey(sellerID))
	if err != nil {
		return cfg, err
	}
	if setting == nil {
		return cfg, nil
	}
	if enabled, ok := setting.ValueJSON[constants.SettingFieldFreeShipping].(bool); ok {
		cfg.Enabled = enabled
	}
	switch v := setting.ValueJSON[constants.SettingFieldFreeShipMin].(type) {
	case float64:
		cfg.MinimumOrderAmount = models.NewMoneyFromFloat(v)
	case string:
		if d, err := decimal.NewFromString(v); err == nil {
			cfg.MinimumOrderAmount = models.NewMoneyFromDecimal(d)
		}
	}
	return cfg, nil
}

// UpdateFreeShippingConfig 保存卖家的免运费配置
func (s *ShippingService) UpdateFreeShippingConfig(sellerID uint, cfg FreeShippingConfig) (FreeShippingConfig, error) {
	if cfg.MinimumOrderAmount.Decimal.IsNegative() {
		return cfg, ErrShippingRateInvalid
	}
	value := models.JSON{
		constants.SettingFieldFreeShipping: cfg.Enabled,
		constants.SettingFieldFreeShipMin:  cfg.MinimumOrderAmount.String(),
	}
	if _, err := s.settingRepo.Upsert(shippingConfigKey(sellerID), value); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// ListCouriers 获取卖家的全部承运商
func (s *ShippingService) ListCouriers(sellerID uint) ([]models.Courier, error) {
	return s.courierRepo.ListAll(sellerID)
}

// GetCourier 获取承运商及其分区运费
func (s *ShippingService) GetCourier(id, sellerID uint) (*models.Courier, []models.CourierRate, error) {
	courier, err := s.getOwnedCourier(id, sellerID)
	if err != nil {
		return nil, nil, err
	}
	rates, err := s.courierRepo.ListRatesByCourier(id)
	if err != nil {
		return nil, nil, err
	}
	return courier, rates, nil
}

// CreateCourier 创建承运商
func (s *ShippingService) CreateCourier(sellerID uint, input CourierInput) (*models.Courier, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, ErrCourierNameRequired
	}
	courier := &models.Courier{
		SellerID:  sellerID,
		Name:      name,
		IsActive:  true,
		SortOrder: input.SortOrder,
	}
	if input.IsActive != nil {
		courier.IsActive = *input.IsActive
	}
	if err := s.courierRepo.Create(courier); err != nil {
		return nil, err
	}
	return courier, nil
}

// UpdateCourier 更新承运商
func (s *ShippingService) UpdateCourier(id, sellerID uint, input CourierInput) (*models.Courier, error) {
	courier, err := s.getOwnedCourier(id, sellerID)
	if err != nil {
		return nil, err
	}
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, ErrCourierNameRequired
	}
	courier.Name = name
	courier.SortOrder = input.SortOrder
	if input.IsActive != nil {
		courier.IsActive = *input.IsActive
	}
	if err := s.courierRepo.Update(courier); err != nil {
		return nil, err
	}
	return courier, nil
}

// DeleteCourier 删除承运商
func (s *ShippingService) DeleteCourier(id, sellerID uint) error {
	if _, err := s.getOwnedCourier(id, sellerID); err != nil {
		return err
	}
	return s.courierRepo.Delete(id)
}

// UpsertRate 写入承运商分区运费
func (s *ShippingService) UpsertRate(courierID, sellerID uint, input RateInput) (*models.CourierRate, error) {
	if _, err := s.getOwnedCourier(courierID, sellerID); err != nil {
		return nil, err
	}
	region, err := normalizeRegion(input.Region)
	if err != nil {
		return nil, err
	}
	if input.Price.Decimal.IsNegative() {
		return nil, ErrShippingRateInvalid
	}

	rate := &models.CourierRate{
		CourierID:   courierID,
		Region:      region,
		Description: strings.TrimSpace(input.Description),
		Price:       input.Price,
		IsActive:    true,
	}
	if input.IsActive != nil {
		rate.IsActive = *input.IsActive
	}
	if err := s.courierRepo.UpsertRate(rate); err != nil {
		return nil, err
	}
	return rate, nil
}

// Quote 前台运费报价：按被报价的店铺（卖家）取承运商与免运费配置
// 免运费开启且小计达标时费用清零，仅返回启用中的承运商
func (s *ShippingService) Quote(sellerID uint, region string, subtotal models.Money) ([]ShippingOption, error) {
	normalized, err := normalizeRegion(region)
	if err != nil {
		return nil, err
	}

	freeCfg, err := s.GetFreeShippingConfig(sellerID)
	if err != nil {
		return nil, err
	}
	freeEligible := freeCfg.Enabled &&
		subtotal.Decimal.GreaterThanOrEqual(freeCfg.MinimumOrderAmount.Decimal)

	rates, err := s.courierRepo.ListActiveRatesByRegion(sellerID, normalized)
	if err != nil {
		return nil, err
	}

	couriers, err := s.courierRepo.ListActive(sellerID)
	if err != nil {
		return nil, err
	}
	courierNames := make(map[uint]string, len(couriers))
	for _, c := range couriers {
		courierNames[c.ID] = c.Name
	}

	options := make([]ShippingOption, 0, len(rates))
	for _, rate := range rates {
		name, ok := courierNames[rate.CourierID]
		if !ok {
			// 承运商已停用，跳过其费率
			continue
		}
		option := ShippingOption{
			CourierID:   rate.CourierID,
			CourierName: name,
			Region:      rate.Region,
			Description: rate.Description,
			Fee:         rate.Price,
		}
		if freeEligible {
			option.Fee = models.Money{}
			option.IsFree = true
		}
		options = append(options, option)
	}
	return options, nil
}
