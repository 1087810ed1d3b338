package repository

import (
	"errors"
	"strings"
	"time"

	"github.com/studio360-next/internal/models"

	"gorm.io/gorm"
)

// AnnouncementRepository 系统公告数据访问接口
type AnnouncementRepository interface {
	List(filter AnnouncementListFilter) ([]models.Announcement, int64, error)
	ListValid(limit int, now time.Time) ([]models.Announcement, error)
	GetByID(id uint) (*models.Announcement, error)
	Create(announcement *models.Announcement) error
	Update(announcement *models.Announcement) error
	Delete(id uint) error
}

// GormAnnouncementRepository GORM 实现
type GormAnnouncementRepository struct {
	db *gorm.DB
}

// NewAnnouncementRepository 创建公告仓库
func NewAnnouncementRepository(db *gorm.DB) *GormAnnouncementRepository {
	return &GormAnnouncementRepository{db: db}
}

// List 公告列表
func (r *GormAnnouncementRepository) List(filter AnnouncementListFilter) ([]models.Announcement, int64, error) {
	var announcements []models.Announcement
	query := r.db.Model(&models.Announcement{})

	if filter.Type != "" {
		query = query.Where("type = ?", filter.Type)
	}
	if filter.IsActive != nil {
		query = query.Where("is_active = ?", *filter.IsActive)
	}
	if filter.OnlyValid {
		now := time.Now()
		query = query.Where("is_active = ?", true)
		query = query.Where("(starts_at IS NULL OR starts_at <= ?)", now)
		query = query.Where("(expires_at IS NULL OR expires_at >= ?)", now)
	}
	if search := strings.TrimSpace(filter.Search); search != "" {
		condition, argCount := buildSearchCondition(r.db, []string{"title", "message"})
		like := "%" + search + "%"
		query = query.Where(condition, repeatLikeArgs(like, argCount)...)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	query = applyPagination(query, filter.Page, filter.PageSize)

	if err := query.Order("created_at DESC").Find(&announcements).Error; err != nil {
		return nil, 0, err
	}
	return announcements, total, nil
}

// ListValid 获取当前有效的公告
func (r *GormAnnouncementRepository) ListValid(limit int, now time.Time) ([]models.Announcement, error) {
	var announcements []models.Announcement
	query := r.db.Model(&models.Announcement{}).
		Where("is_active = ?", true).
		Where("(starts_at IS NULL OR starts_at <= ?)", now).
		Where("(expires_at IS NULL OR expires_at >= ?)", now)

	if limit > 0 {
		query = query.Limit(limit)
	}

	if err := query.Order("created_at DESC").Find(&announcements).Error; err != nil {
		return nil, err
	}
	return announcements, nil
}

// GetByID 根据ID获取公告
func (r *GormAnnouncementRepository) GetByID(id uint) (*models.Announcement, error) {
	var announcement models.Announcement
	if err := r.db.First(&announcement, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &announcement, nil
}

// Create 创建公告
func (r *GormAnnouncementRepository) Create(announcement *models.Announcement) error {
	return r.db.Create(announcement).Error
}

// Update 更新公告
func (r *GormAnnouncementRepository) Update(announcement *models.Announcement) error {
	return r.db.Save(announcement).Error
}

// Delete 删除公告
func (r *GormAnnouncementRepository) Delete(id uint) error {
	return r.db.Delete(&models.Announcement{}, id).Error
}
