package repository

import (
	"errors"

	"github.com/studio360-next/internal/models"

	"gorm.io/gorm"
)

// CourierRepository 承运商数据访问接口
type CourierRepository interface {
	GetByID(id uint) (*models.Courier, error)
	ListAll(sellerID uint) ([]models.Courier, error)
	ListActive(sellerID uint) ([]models.Courier, error)
	Create(courier *models.Courier) error
	Update(courier *models.Courier) error
	Delete(id uint) error
	GetRate(courierID uint, region string) (*models.CourierRate, error)
	ListRatesByCourier(courierID uint) ([]models.CourierRate, error)
	ListActiveRatesByRegion(sellerID uint, region string) ([]models.CourierRate, error)
	UpsertRate(rate *models.CourierRate) error
	DeleteRate(id uint) error
}

// GormCourierRepository GORM 实现
type GormCourierRepository struct {
	db *gorm.DB
}

// NewCourierRepository 创建承运商仓库
func NewCourierRepository(db *gorm.DB) *GormCourierRepository {
	return &GormCourierRepository{db: db}
}

// GetByID 根据ID获取承运商
func (r *GormCourierRepository) GetByID(id uint) (*models.Courier, error) {
	var courier models.Courier
	if err := r.db.First(&courier, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &courier, nil
}

// ListAll 获取卖家的全部承运商
func (r *GormCourierRepository) ListAll(sellerID uint) ([]models.Courier, error) {
	couriers := make([]models.Courier, 0)
	err := r.db.Where("seller_id = ?", sellerID).
		Order("sort_order ASC, id ASC").
		Find(&couriers).Error
	if err != nil {
		return nil, err
	}
	return couriers, nil
}

// ListActive 获取卖家启用中的承运商
func (r *GormCourierRepository) ListActive(sellerID uint) ([]models.Courier, error) {
	couriers := make([]models.Courier, 0)
	err := r.db.Where("seller_id = ? AND is_active = ?", sellerID, true).
		Order("sort_order ASC, id ASC").
		Find(&couriers).Error
	if err != nil {
		return nil, err
	}
	return couriers, nil
}

// Create 创建承运商
func (r *GormCourierRepository) Create(courier *models.Courier) error {
	return r.db.Create(courier).Error
}

// Update 更新承运商
func (r *GormCourierRepository) Update(courier *models.Courier) error {
	return r.db.Save(courier).Error
}

// Delete 删除承运商及其运费（软删除）
func (r *GormCourierRepository) Delete(id uint) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("courier_id = ?", id).Delete(&models.CourierRate{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Courier{}, id).Error
	})
}

// GetRate 获取指定承运商在指定区域的运费
func (r *GormCourierRepository) GetRate(courierID uint, region string) (*models.CourierRate, error) {
	var rate models.CourierRate
	err := r.db.Where("courier_id = ? AND region = ?", courierID, region).First(&rate).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &rate, nil
}

// ListRatesByCourier 获取承运商的全部分区运费
func (r *GormCourierRepository) ListRatesByCourier(courierID uint) ([]models.CourierRate, error) {
	rates := make([]models.CourierRate, 0)
	err := r.db.Where("courier_id = ?", courierID).
		Order("region ASC").
		Find(&rates).Error
	if err != nil {
		return nil, err
	}
	return rates, nil
}

// ListActiveRatesByRegion 获取卖家在指定区域的全部可用运费
func (r *GormCourierRepository) ListActiveRatesByRegion(sellerID uint, region string) ([]models.CourierRate, error) {
	rates := make([]models.CourierRate, 0)
	err := r.db.Model(&models.CourierRate{}).
		Joins("JOIN couriers ON couriers.id = courier_rates.courier_id").
		Where("couriers.seller_id = ? AND couriers.deleted_at IS NULL", sellerID).
		Where("courier_rates.region = ? AND courier_rates.is_active = ?", region, true).
		Order("courier_rates.price ASC").
		Find(&rates).Error
	if err != nil {
		return nil, err
	}
	return rates, nil
}

// UpsertRate 写入或更新分区运费
func (r *GormCourierRepository) UpsertRate(rate *models.CourierRate) error {
	existing, err := r.GetRate(rate.CourierID, rate.Region)
	if err != nil {
		return err
	}
	if existing == nil {
		return r.db.Create(rate).Error
	}
	rate.ID = existing.ID
	rate.CreatedAt = existing.CreatedAt
	return r.db.Save(rate).Error
}

// DeleteRate 删除分区运费
func (r *GormCourierRepository) DeleteRate(id uint) error {
	return r.db.Delete(&models.CourierRate{}, id).Error
}
