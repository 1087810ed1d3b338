package repository

import (
	"errors"
	"strings"
	"time"

	"github.com/studio360-next/internal/constants"
	"github.com/studio360-next/internal/models"

	"gorm.io/gorm"
)

// VoucherRepository 代金券数据访问接口
type VoucherRepository interface {
	GetByID(id uint) (*models.Voucher, error)
	GetByCode(code string) (*models.Voucher, error)
	ExistsByCode(code string) (bool, error)
	Create(voucher *models.Voucher) error
	Update(voucher *models.Voucher) error
	Delete(id uint) error
	List(filter VoucherListFilter) ([]models.Voucher, int64, error)
	TryConsume(id uint) (bool, error)
	MarkUsedIfExhausted(id uint) error
	UpdateStatus(id uint, status string) error
	Stats(sellerID uint, now time.Time) (VoucherStats, error)
	TypeStats(sellerID uint) ([]VoucherTypeCount, error)
	WithTx(tx *gorm.DB) *GormVoucherRepository
}

// VoucherTypeCount 按券类型统计
type VoucherTypeCount struct {
	Type  string `json:"type"`
	Count int64  `json:"count"`
}

// VoucherStats 代金券统计汇总
type VoucherStats struct {
	Total            int64 `json:"totalVouchers"`
	Active           int64 `json:"activeVouchers"`
	Inactive         int64 `json:"inactiveVouchers"`
	Used             int64 `json:"usedVouchers"`
	Expired          int64 `json:"expiredVouchers"`
	TotalRedemptions int64 `json:"totalRedemptions"`
}

// GormVoucherRepository GORM 实现
type GormVoucherRepository struct {
	db *gorm.DB
}

// NewVoucherRepository 创建代金券仓库
func NewVoucherRepository(db *gorm.DB) *GormVoucherRepository {
	return &GormVoucherRepository{db: db}
}

// WithTx 绑定事务
func (r *GormVoucherRepository) WithTx(tx *gorm.DB) *GormVoucherRepository {
	if tx == nil {
		return r
	}
	return &GormVoucherRepository{db: tx}
}

// GetByID 根据ID获取代金券
func (r *GormVoucherRepository) GetByID(id uint) (*models.Voucher, error) {
	var voucher models.Voucher
	if err := r.db.First(&voucher, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &voucher, nil
}

// GetByCode 根据兑换码获取代金券
func (r *GormVoucherRepository) GetByCode(code string) (*models.Voucher, error) {
	var voucher models.Voucher
	if err := r.db.Where("code = ?", strings.ToUpper(strings.TrimSpace(code))).First(&voucher).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &voucher, nil
}

// ExistsByCode 判断兑换码是否已被占用
func (r *GormVoucherRepository) ExistsByCode(code string) (bool, error) {
	var count int64
	err := r.db.Model(&models.Voucher{}).
		Where("code = ?", strings.ToUpper(strings.TrimSpace(code))).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// Create 创建代金券
func (r *GormVoucherRepository) Create(voucher *models.Voucher) error {
	return r.db.Create(voucher).Error
}

// Update 更新代金券
func (r *GormVoucherRepository) Update(voucher *models.Voucher) error {
	return r.db.Save(voucher).Error
}

// Delete 删除代金券（物理删除）
func (r *GormVoucherRepository) Delete(id uint) error {
	return r.db.Delete(&models.Voucher{}, id).Error
}

// List 获取代金券列表
// 按创建时间倒序；status 为 expired 时按有效期推导过滤
func (r *GormVoucherRepository) List(filter VoucherListFilter) ([]models.Voucher, int64, error) {
	var vouchers []models.Voucher
	query := r.db.Model(&models.Voucher{})

	if filter.SellerID > 0 {
		query = query.Where("seller_id = ?", filter.SellerID)
	}
	if filter.Type != "" {
		query = query.Where("type = ?", filter.Type)
	}

	now := filter.Now
	if now.IsZero() {
		now = time.Now()
	}
	switch filter.Status {
	case "":
		// 不过滤
	case constants.VoucherStatusExpired:
		query = query.Where("valid_until IS NOT NULL AND valid_until < ?", now).
			Where("status <> ?", constants.VoucherStatusUsed)
	case constants.VoucherStatusUsed:
		query = query.Where("status = ?", constants.VoucherStatusUsed)
	default:
		query = query.Where("status = ?", filter.Status).
			Where("(valid_until IS NULL OR valid_until >= ?)", now)
	}

	if search := strings.TrimSpace(filter.Search); search != "" {
		condition, argCount := buildSearchCondition(r.db, []string{"name", "code", "description"})
		like := "%" + search + "%"
		query = query.Where(condition, repeatLikeArgs(like, argCount)...)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	query = applyPagination(query, filter.Page, filter.PageSize)

	if err := query.Order("created_at DESC").Find(&vouchers).Error; err != nil {
		return nil, 0, err
	}
	return vouchers, total, nil
}

// TryConsume 带余量校验的使用次数自增
// 余量不足时不更新任何行，返回 false
func (r *GormVoucherRepository) TryConsume(id uint) (bool, error) {
	result := r.db.Model(&models.Voucher{}).
		Where("id = ?", id).
		Where("usage_limit = 0 OR used_count < usage_limit").
		UpdateColumn("used_count", gorm.Expr("used_count + 1"))
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

// MarkUsedIfExhausted 用完额度后将状态置为 used
func (r *GormVoucherRepository) MarkUsedIfExhausted(id uint) error {
	return r.db.Model(&models.Voucher{}).
		Where("id = ?", id).
		Where("usage_limit > 0 AND used_count >= usage_limit").
		UpdateColumn("status", constants.VoucherStatusUsed).Error
}

// UpdateStatus 更新代金券状态
func (r *GormVoucherRepository) UpdateStatus(id uint, status string) error {
	return r.db.Model(&models.Voucher{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{"status": status}).Error
}

// Stats 统计代金券汇总数据
// expired 为推导口径：有效期已过且未用完的券
func (r *GormVoucherRepository) Stats(sellerID uint, now time.Time) (VoucherStats, error) {
	var stats VoucherStats
	base := func() *gorm.DB {
		q := r.db.Model(&models.Voucher{})
		if sellerID > 0 {
			q = q.Where("seller_id = ?", sellerID)
		}
		return q
	}

	if err := base().Count(&stats.Total).Error; err != nil {
		return stats, err
	}

	notExpired := "(valid_until IS NULL OR valid_until >= ?)"
	if err := base().Where("status = ?", constants.VoucherStatusActive).
		Where(notExpired, now).Count(&stats.Active).Error; err != nil {
		return stats, err
	}
	if err := base().Where("status = ?", constants.VoucherStatusInactive).
		Where(notExpired, now).Count(&stats.Inactive).Error; err != nil {
		return stats, err
	}
	if err := base().Where("status = ?", constants.VoucherStatusUsed).
		Count(&stats.Used).Error; err != nil {
		return stats, err
	}
	if err := base().Where("valid_until IS NOT NULL AND valid_until < ?", now).
		Where("status <> ?", constants.VoucherStatusUsed).
		Count(&stats.Expired).Error; err != nil {
		return stats, err
	}

	var redemptions struct {
		Sum int64
	}
	if err := base().Select("COALESCE(SUM(used_count), 0) AS sum").
		Scan(&redemptions).Error; err != nil {
		return stats, err
	}
	stats.TotalRedemptions = redemptions.Sum

	return stats, nil
}

// TypeStats 按类型统计代金券数量
func (r *GormVoucherRepository) TypeStats(sellerID uint) ([]VoucherTypeCount, error) {
	query := r.db.Model(&models.Voucher{})
	if sellerID > 0 {
		query = query.Where("seller_id = ?", sellerID)
	}

	var counts []VoucherTypeCount
	if err := query.Select("type, COUNT(*) AS count").
		Group("type").Order("type").Scan(&counts).Error; err != nil {
		return nil, err
	}
	return counts, nil
}
