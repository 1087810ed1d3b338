package service

import (
	"context"
	"strings"
	"time"

	"github.com/studio360-next/internal/cache"
	"github.com/studio360-next/internal/constants"
	"github.com/studio360-next/internal/logger"
	"github.com/studio360-next/internal/models"
	"github.com/studio360-next/internal/repository"
)

const (
	announcementCacheKey = "announcements:valid"
	announcementCacheTTL = 60 * time.Second
)

// AnnouncementService 系统公告服务
type AnnouncementService struct {
	repo repository.AnnouncementRepository
}

// NewAnnouncementService 创建公告服务
func NewAnnouncementService(repo repository.AnnouncementRepository) *AnnouncementService {
	return &AnnouncementService{repo: repo}
}

// AnnouncementInput 创建/更新公告输入
type AnnouncementInput struct {
	Title     string
	Message   string
	Type      string
	IsActive  *bool
	StartsAt  *time.Time
	ExpiresAt *time.Time
	CreatedBy uint
}

func buildAnnouncementEntity(input AnnouncementInput, existing *models.Announcement) (*models.Announcement, error) {
	title := strings.TrimSpace(input.Title)
	if title == "" {
		return nil, ErrAnnouncementTitleMissing
	}
	message := strings.TrimSpace(input.Message)
	if message == "" {
		return nil, ErrAnnouncementBodyMissing
	}

	announcementType := strings.ToLower(strings.TrimSpace(input.Type))
	if announcementType == "" {
		announcementType = constants.AnnouncementTypeInfo
	}
	switch announcementType {
	case constants.AnnouncementTypeInfo, constants.AnnouncementTypeWarning, constants.AnnouncementTypeMaintenance:
	default:
		return nil, ErrAnnouncementTypeInvalid
	}

	announcement := existing
	if announcement == nil {
		announcement = &models.Announcement{
			IsActive:  true,
			CreatedBy: input.CreatedBy,
		}
	}

	announcement.Title = title
	announcement.Message = message
	announcement.Type = announcementType
	announcement.StartsAt = input.StartsAt
	announcement.ExpiresAt = input.ExpiresAt
	if input.IsActive != nil {
		announcement.IsActive = *input.IsActive
	}
	return announcement, nil
}

// ListAdmin 后台公告列表
func (s *AnnouncementService) ListAdmin(filter repository.AnnouncementListFilter) ([]models.Announcement, int64, error) {
	return s.repo.List(filter)
}

// ListPublic 获取当前有效公告，命中缓存时直接返回
func (s *AnnouncementService) ListPublic(ctx context.Context, limit int) ([]models.Announcement, error) {
	var cached []models.Announcement
	if hit, err := cache.GetJSON(ctx, announcementCacheKey, &cached); err == nil && hit {
		return cached, nil
	}

	announcements, err := s.repo.ListValid(limit, time.Now())
	if err != nil {
		return nil, err
	}

	if err := cache.SetJSON(ctx, announcementCacheKey, announcements, announcementCacheTTL); err != nil {
		logger.Debugw("announcement_cache_set_failed", "error", err)
	}
	return announcements, nil
}

// GetByID 根据ID获取公告
func (s *AnnouncementService) GetByID(id uint) (*models.Announcement, error) {
	announcement, err := s.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if announcement == nil {
		return nil, ErrAnnouncementNotFound
	}
	return announcement, nil
}

// Create 创建公告
func (s *AnnouncementService) Create(input AnnouncementInput) (*models.Announcement, error) {
	announcement, err := buildAnnouncementEntity(input, nil)
	if err != nil {
		return nil, err
	}
	if err := s.repo.Create(announcement); err != nil {
		return nil, err
	}
	s.invalidateCache()
	return announcement, nil
}

// Update 更新公告
func (s *AnnouncementService) Update(id uint, input AnnouncementInput) (*models.Announcement, error) {
	existing, err := s.GetByID(id)
	if err != nil {
		return nil, err
	}
	announcement, err := buildAnnouncementEntity(input, existing)
	if err != nil {
		return nil, err
	}
	if err := s.repo.Update(announcement); err != nil {
		return nil, err
	}
	s.invalidateCache()
	return announcement, nil
}

// Toggle 启用/停用公告
func (s *AnnouncementService) Toggle(id uint) (*models.Announcement, error) {
	announcement, err := s.GetByID(id)
	if err != nil {
		return nil, err
	}
	announcement.IsActive = !announcement.IsActive
	if err := s.repo.Update(announcement); err != nil {
		return nil, err
	}
	s.invalidateCache()
	return announcement, nil
}

// Delete 删除公告
func (s *AnnouncementService) Delete(id uint) error {
	if _, err := s.GetByID(id); err != nil {
		return err
	}
	if err := s.repo.Delete(id); err != nil {
		return err
	}
	s.invalidateCache()
	return nil
}

func (s *AnnouncementService) invalidateCache() {
	if err := cache.Del(context.Background(), announcementCacheKey); err != nil {
		logger.Debugw("announcement_cache_del_failed", "error", err)
	}
}
