package repository

import (
	"errors"
	"strings"

	"github.com/studio360-next/internal/models"

	"gorm.io/gorm"
)

// SellerRepository 卖家数据访问接口
type SellerRepository interface {
	GetByEmail(email string) (*models.Seller, error)
	GetByID(id uint) (*models.Seller, error)
	Create(seller *models.Seller) error
	Update(seller *models.Seller) error
	List(filter SellerListFilter) ([]models.Seller, int64, error)
	UpdateStatus(id uint, status string) error
}

// GormSellerRepository GORM 实现
type GormSellerRepository struct {
	db *gorm.DB
}

// NewSellerRepository 创建卖家仓库
func NewSellerRepository(db *gorm.DB) *GormSellerRepository {
	return &GormSellerRepository{db: db}
}

// GetByEmail 根据邮箱获取卖家
func (r *GormSellerRepository) GetByEmail(email string) (*models.Seller, error) {
	var seller models.Seller
	if err := r.db.Where("email = ?", strings.ToLower(strings.TrimSpace(email))).First(&seller).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &seller, nil
}

// GetByID 根据ID获取卖家
func (r *GormSellerRepository) GetByID(id uint) (*models.Seller, error) {
	var seller models.Seller
	if err := r.db.First(&seller, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &seller, nil
}

// Create 创建卖家
func (r *GormSellerRepository) Create(seller *models.Seller) error {
	return r.db.Create(seller).Error
}

// Update 更新卖家
func (r *GormSellerRepository) Update(seller *models.Seller) error {
	return r.db.Save(seller).Error
}

// List 获取卖家列表
func (r *GormSellerRepository) List(filter SellerListFilter) ([]models.Seller, int64, error) {
	var sellers []models.Seller
	query := r.db.Model(&models.Seller{})

	if keyword := strings.TrimSpace(filter.Keyword); keyword != "" {
		condition, argCount := buildSearchCondition(r.db, []string{"email", "shop_name"})
		like := "%" + keyword + "%"
		query = query.Where(condition, repeatLikeArgs(like, argCount)...)
	}
	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}
	if filter.CreatedFrom != nil {
		query = query.Where("created_at >= ?", *filter.CreatedFrom)
	}
	if filter.CreatedTo != nil {
		query = query.Where("created_at <= ?", *filter.CreatedTo)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	query = applyPagination(query, filter.Page, filter.PageSize)

	if err := query.Order("created_at DESC").Find(&sellers).Error; err != nil {
		return nil, 0, err
	}
	return sellers, total, nil
}

// UpdateStatus 更新卖家账号状态
func (r *GormSellerRepository) UpdateStatus(id uint, status string) error {
	return r.db.Model(&models.Seller{}).
		Where("id = ?", id).
		Update("status", status).Error
}
