package admin

import (
	"errors"
	"strconv"
	"strings"
	"time"

	handlershared "github.com/studio360-next/internal/http/handlers/shared"
	"github.com/studio360-next/internal/http/response"
	"github.com/studio360-next/internal/repository"
	"github.com/studio360-next/internal/service"

	"github.com/gin-gonic/gin"
)

// AnnouncementRequest 创建/更新公告请求
type AnnouncementRequest struct {
	Title     string     `json:"title"`
	Message   string     `json:"message"`
	Type      string     `json:"type"`
	IsActive  *bool      `json:"is_active"`
	StartsAt  *time.Time `json:"starts_at"`
	ExpiresAt *time.Time `json:"expires_at"`
}

func respondAnnouncementError(c *gin.Context, err error, fallback string) {
	switch {
	case errors.Is(err, service.ErrAnnouncementNotFound):
		respondError(c, response.CodeNotFound, service.ErrAnnouncementNotFound.Error(), nil)
	case errors.Is(err, service.ErrAnnouncementTitleMissing):
		respondError(c, response.CodeBadRequest, service.ErrAnnouncementTitleMissing.Error(), nil)
	case errors.Is(err, service.ErrAnnouncementBodyMissing):
		respondError(c, response.CodeBadRequest, service.ErrAnnouncementBodyMissing.Error(), nil)
	case errors.Is(err, service.ErrAnnouncementTypeInvalid):
		respondError(c, response.CodeBadRequest, service.ErrAnnouncementTypeInvalid.Error(), nil)
	default:
		respondError(c, response.CodeInternal, fallback, err)
	}
}

// ListAnnouncements 分页查询公告
func (h *Handler) ListAnnouncements(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "10"))
	page, limit = handlershared.NormalizePagination(page, limit)

	var isActive *bool
	if raw := strings.TrimSpace(c.Query("is_active")); raw != "" {
		parsed, err := strconv.ParseBool(raw)
		if err == nil {
			isActive = &parsed
		}
	}

	announcements, total, err := h.AnnouncementService.ListAdmin(repository.AnnouncementListFilter{
		Page:     page,
		PageSize: limit,
		Type:     strings.TrimSpace(c.Query("type")),
		Search:   strings.TrimSpace(c.Query("search")),
		IsActive: isActive,
	})
	if err != nil {
		respondError(c, response.CodeInternal, "failed to list announcements", err)
		return
	}

	response.SuccessWithPage(c, announcements, response.NewPagination(page, limit, total))
}

// CreateAnnouncement 创建公告
func (h *Handler) CreateAnnouncement(c *gin.Context) {
	adminID, ok := getAdminID(c)
	if !ok {
		return
	}

	var req AnnouncementRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "invalid request payload", err)
		return
	}

	announcement, err := h.AnnouncementService.Create(service.AnnouncementInput{
		Title:     req.Title,
		Message:   req.Message,
		Type:      req.Type,
		IsActive:  req.IsActive,
		StartsAt:  req.StartsAt,
		ExpiresAt: req.ExpiresAt,
		CreatedBy: adminID,
	})
	if err != nil {
		respondAnnouncementError(c, err, "failed to create announcement")
		return
	}

	response.Created(c, announcement)
}

// UpdateAnnouncement 更新公告
func (h *Handler) UpdateAnnouncement(c *gin.Context) {
	adminID, ok := getAdminID(c)
	if !ok {
		return
	}
	id, ok := parseAdminResourceID(c)
	if !ok {
		return
	}

	var req AnnouncementRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "invalid request payload", err)
		return
	}

	announcement, err := h.AnnouncementService.Update(id, service.AnnouncementInput{
		Title:     req.Title,
		Message:   req.Message,
		Type:      req.Type,
		IsActive:  req.IsActive,
		StartsAt:  req.StartsAt,
		ExpiresAt: req.ExpiresAt,
		CreatedBy: adminID,
	})
	if err != nil {
		respondAnnouncementError(c, err, "failed to update announcement")
		return
	}

	response.Success(c, announcement)
}

// ToggleAnnouncement 切换公告启用状态
func (h *Handler) ToggleAnnouncement(c *gin.Context) {
	id, ok := parseAdminResourceID(c)
	if !ok {
		return
	}

	announcement, err := h.AnnouncementService.Toggle(id)
	if err != nil {
		respondAnnouncementError(c, err, "failed to toggle announcement")
		return
	}

	response.Success(c, announcement)
}

// DeleteAnnouncement 删除公告
func (h *Handler) DeleteAnnouncement(c *gin.Context) {
	id, ok := parseAdminResourceID(c)
	if !ok {
		return
	}

	if err := h.AnnouncementService.Delete(id); err != nil {
		respondAnnouncementError(c, err, "failed to delete announcement")
		return
	}

	response.SuccessWithMsg(c, "Announcement deleted successfully", nil)
}

func parseAdminResourceID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(strings.TrimSpace(c.Param("id")), 10, 64)
	if err != nil || id == 0 {
		respondError(c, response.CodeBadRequest, "invalid id", nil)
		return 0, false
	}
	return uint(id), true
}
