package repository

import (
	"github.com/studio360-next/internal/models"

	"gorm.io/gorm"
)

// VoucherUsageRepository 代金券核销记录数据访问接口
type VoucherUsageRepository interface {
	Create(usage *models.VoucherUsage) error
	List(filter VoucherUsageListFilter) ([]models.VoucherUsage, int64, error)
	CountByVoucherID(voucherID uint) (int64, error)
	WithTx(tx *gorm.DB) *GormVoucherUsageRepository
}

// GormVoucherUsageRepository GORM 实现
type GormVoucherUsageRepository struct {
	db *gorm.DB
}

// NewVoucherUsageRepository 创建核销记录仓库
func NewVoucherUsageRepository(db *gorm.DB) *GormVoucherUsageRepository {
	return &GormVoucherUsageRepository{db: db}
}

// WithTx 绑定事务
func (r *GormVoucherUsageRepository) WithTx(tx *gorm.DB) *GormVoucherUsageRepository {
	if tx == nil {
		return r
	}
	return &GormVoucherUsageRepository{db: tx}
}

// Create 写入核销记录
func (r *GormVoucherUsageRepository) Create(usage *models.VoucherUsage) error {
	return r.db.Create(usage).Error
}

// List 查询核销记录
func (r *GormVoucherUsageRepository) List(filter VoucherUsageListFilter) ([]models.VoucherUsage, int64, error) {
	var usages []models.VoucherUsage
	query := r.db.Model(&models.VoucherUsage{})

	if filter.VoucherID > 0 {
		query = query.Where("voucher_id = ?", filter.VoucherID)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	query = applyPagination(query, filter.Page, filter.PageSize)

	if err := query.Order("redeemed_at DESC").Find(&usages).Error; err != nil {
		return nil, 0, err
	}
	return usages, total, nil
}

// CountByVoucherID 统计某券的核销次数
func (r *GormVoucherUsageRepository) CountByVoucherID(voucherID uint) (int64, error) {
	var count int64
	err := r.db.Model(&models.VoucherUsage{}).
		Where("voucher_id = ?", voucherID).
		Count(&count).Error
	return count, err
}
