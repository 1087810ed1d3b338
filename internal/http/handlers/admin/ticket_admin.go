package admin

import (
	"errors"
	"strconv"
	"strings"

	"github.com/studio360-next/internal/constants"
	handlershared "github.com/studio360-next/internal/http/handlers/shared"
	"github.com/studio360-next/internal/http/response"
	"github.com/studio360-next/internal/repository"
	"github.com/studio360-next/internal/service"

	"github.com/gin-gonic/gin"
)

// AdminTicketReplyRequest 管理员回复工单请求
type AdminTicketReplyRequest struct {
	Message string `json:"message" binding:"required"`
}

// AdminTicketStatusRequest 管理员更新工单状态请求
type AdminTicketStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

func respondTicketAdminError(c *gin.Context, err error, fallback string) {
	switch {
	case errors.Is(err, service.ErrTicketNotFound):
		respondError(c, response.CodeNotFound, service.ErrTicketNotFound.Error(), nil)
	case errors.Is(err, service.ErrTicketClosed):
		respondError(c, response.CodeBadRequest, service.ErrTicketClosed.Error(), nil)
	case errors.Is(err, service.ErrTicketStatusInvalid):
		respondError(c, response.CodeBadRequest, service.ErrTicketStatusInvalid.Error(), nil)
	case errors.Is(err, service.ErrTicketBodyMissing):
		respondError(c, response.CodeBadRequest, service.ErrTicketBodyMissing.Error(), nil)
	default:
		respondError(c, response.CodeInternal, fallback, err)
	}
}

// ListAllTickets 分页查询全部卖家工单
func (h *Handler) ListAllTickets(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "10"))
	page, limit = handlershared.NormalizePagination(page, limit)

	var sellerID uint
	if raw := strings.TrimSpace(c.Query("seller_id")); raw != "" {
		parsed, err := strconv.ParseUint(raw, 10, 64)
		if err == nil {
			sellerID = uint(parsed)
		}
	}

	tickets, total, err := h.TicketService.List(repository.TicketListFilter{
		Page:     page,
		PageSize: limit,
		SellerID: sellerID,
		Status:   strings.TrimSpace(c.Query("status")),
		Category: strings.TrimSpace(c.Query("category")),
		Priority: strings.TrimSpace(c.Query("priority")),
		Search:   strings.TrimSpace(c.Query("search")),
	})
	if err != nil {
		respondError(c, response.CodeInternal, "failed to list tickets", err)
		return
	}

	response.SuccessWithPage(c, tickets, response.NewPagination(page, limit, total))
}

// GetTicketAdmin 查看工单详情（含消息）
func (h *Handler) GetTicketAdmin(c *gin.Context) {
	id, ok := parseAdminResourceID(c)
	if !ok {
		return
	}

	detail, err := h.TicketService.Get(id, 0)
	if err != nil {
		respondTicketAdminError(c, err, "failed to load ticket")
		return
	}

	response.Success(c, detail)
}

// ReplyTicketAdmin 管理员回复工单
func (h *Handler) ReplyTicketAdmin(c *gin.Context) {
	adminID, ok := getAdminID(c)
	if !ok {
		return
	}
	id, ok := parseAdminResourceID(c)
	if !ok {
		return
	}

	var req AdminTicketReplyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "invalid request payload", err)
		return
	}

	message, err := h.TicketService.Reply(id, constants.TicketAuthorAdmin, adminID, req.Message)
	if err != nil {
		respondTicketAdminError(c, err, "failed to reply ticket")
		return
	}

	response.Created(c, message)
}

// UpdateTicketStatus 更新工单状态
func (h *Handler) UpdateTicketStatus(c *gin.Context) {
	id, ok := parseAdminResourceID(c)
	if !ok {
		return
	}

	var req AdminTicketStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "invalid request payload", err)
		return
	}

	ticket, err := h.TicketService.UpdateStatus(id, req.Status)
	if err != nil {
		respondTicketAdminError(c, err, "failed to update ticket status")
		return
	}

	response.Success(c, ticket)
}

// TicketStatsAdmin 全平台工单统计
func (h *Handler) TicketStatsAdmin(c *gin.Context) {
	stats, err := h.TicketService.Stats(0)
	if err != nil {
		respondError(c, response.CodeInternal, "failed to load ticket stats", err)
		return
	}

	response.Success(c, stats)
}
