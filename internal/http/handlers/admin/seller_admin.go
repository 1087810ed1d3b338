package admin

import (
	"strconv"
	"strings"
	"time"

	"github.com/studio360-next/internal/cache"
	"github.com/studio360-next/internal/constants"
	handlershared "github.com/studio360-next/internal/http/handlers/shared"
	"github.com/studio360-next/internal/http/response"
	"github.com/studio360-next/internal/logger"
	"github.com/studio360-next/internal/repository"

	"github.com/gin-gonic/gin"
)

// SellerStatusRequest 更新卖家账号状态请求
type SellerStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// ListSellers 分页查询卖家账号
func (h *Handler) ListSellers(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "10"))
	page, limit = handlershared.NormalizePagination(page, limit)

	filter := repository.SellerListFilter{
		Page:     page,
		PageSize: limit,
		Keyword:  strings.TrimSpace(c.Query("keyword")),
		Status:   strings.TrimSpace(c.Query("status")),
	}
	if from := parseAdminDateQuery(c.Query("created_from")); from != nil {
		filter.CreatedFrom = from
	}
	if to := parseAdminDateQuery(c.Query("created_to")); to != nil {
		filter.CreatedTo = to
	}

	sellers, total, err := h.SellerRepo.List(filter)
	if err != nil {
		respondError(c, response.CodeInternal, "failed to list sellers", err)
		return
	}

	response.SuccessWithPage(c, sellers, response.NewPagination(page, limit, total))
}

// GetSeller 查看卖家账号详情
func (h *Handler) GetSeller(c *gin.Context) {
	id, ok := parseAdminResourceID(c)
	if !ok {
		return
	}

	seller, err := h.SellerRepo.GetByID(id)
	if err != nil {
		respondError(c, response.CodeInternal, "failed to load seller", err)
		return
	}
	if seller == nil {
		respondError(c, response.CodeNotFound, "seller not found", nil)
		return
	}

	response.Success(c, seller)
}

// UpdateSellerStatus 启用/停用卖家账号
func (h *Handler) UpdateSellerStatus(c *gin.Context) {
	id, ok := parseAdminResourceID(c)
	if !ok {
		return
	}

	var req SellerStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "invalid request payload", err)
		return
	}
	status := strings.TrimSpace(req.Status)
	if status != constants.SellerStatusActive && status != constants.SellerStatusDisabled {
		respondError(c, response.CodeBadRequest, "invalid seller status", nil)
		return
	}

	seller, err := h.SellerRepo.GetByID(id)
	if err != nil {
		respondError(c, response.CodeInternal, "failed to load seller", err)
		return
	}
	if seller == nil {
		respondError(c, response.CodeNotFound, "seller not found", nil)
		return
	}

	if err := h.SellerRepo.UpdateStatus(id, status); err != nil {
		respondError(c, response.CodeInternal, "failed to update seller status", err)
		return
	}

	// 状态变更后作废鉴权快照，下次请求重新加载
	if err := cache.DelSellerAuthState(c.Request.Context(), id); err != nil {
		logger.Warnw("seller_auth_state_invalidate_failed", "seller_id", id, "error", err)
	}

	logger.Infow("admin_seller_status_updated",
		"request_id", c.GetString("request_id"),
		"seller_id", id,
		"status", status,
	)

	seller.Status = status
	response.Success(c, seller)
}

func parseAdminDateQuery(raw string) *time.Time {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil
	}
	if t, err := time.Parse("2006-01-02", raw); err == nil {
		return &t
	}
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return &t
	}
	return nil
}
