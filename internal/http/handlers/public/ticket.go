package public

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

// TicketCreateRequest 创建工单请求
type TicketCreateRequest struct {
	Subject  string `json:"subject"`
	Category string `json:"category"`
	Priority string `json:"priority"`
	Message  string `json:"message"`
}

// TicketReplyRequest 工单留言请求
type TicketReplyRequest struct {
	Message string `json:"message" binding:"required"`
}

func respondTicketError(c *gin.Context, err error, fallback string) {
	switch {
	case errors.Is(err, service.ErrTicketNotFound):
		respondError(c, response.CodeNotFound, service.ErrTicketNotFound.Error(), nil)
	case errors.Is(err, service.ErrTicketAccessDenied):
		respondError(c, response.CodeForbidden, service.ErrTicketAccessDenied.Error(), nil)
	case errors.Is(err, service.ErrTicketClosed):
		respondError(c, response.CodeBadRequest, service.ErrTicketClosed.Error(), nil)
	case errors.Is(err, service.ErrTicketSubjectMissing):
		respondError(c, response.CodeBadRequest, service.ErrTicketSubjectMissing.Error(), nil)
	case errors.Is(err, service.ErrTicketBodyMissing):
		respondError(c, response.CodeBadRequest, service.ErrTicketBodyMissing.Error(), nil)
	default:
		respondError(c, response.CodeInternal, fallback, err)
	}
}

// CreateTicket 卖家创建工单
func (h *Handler) CreateTicket(c *gin.Context) {
	sellerID, ok := getSellerID(c)
	if !ok {
		return
	}

	var req TicketCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "invalid request payload", err)
		return
	}

	ticket, err := h.TicketService.Create(service.CreateTicketInput{
		SellerID: sellerID,
		Subject:  req.Subject,
		Category: req.Category,
		Priority: req.Priority,
		Message:  req.Message,
	})
	if err != nil {
		respondTicketError(c, err, "failed to create ticket")
		return
	}

	response.Created(c, ticket)
}

// ListTickets 卖家查询自己的工单
func (h *Handler) ListTickets(c *gin.Context) {
	sellerID, ok := getSellerID(c)
	if !ok {
		return
	}

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "10"))
	page, limit = handlershared.NormalizePagination(page, limit)

	tickets, total, err := h.TicketService.List(repository.TicketListFilter{
		Page:     page,
		PageSize: limit,
		SellerID: sellerID,
		Status:   strings.TrimSpace(c.Query("status")),
		Category: strings.TrimSpace(c.Query("category")),
		Priority: strings.TrimSpace(c.Query("priority")),
	})
	if err != nil {
		respondError(c, response.CodeInternal, "failed to list tickets", err)
		return
	}

	response.SuccessWithPage(c, tickets, response.NewPagination(page, limit, total))
}

// GetTicket 卖家查询工单详情（含留言）
func (h *Handler) GetTicket(c *gin.Context) {
	sellerID, ok := getSellerID(c)
	if !ok {
		return
	}
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	detail, err := h.TicketService.Get(id, sellerID)
	if err != nil {
		respondTicketError(c, err, "failed to fetch ticket")
		return
	}

	response.Success(c, detail)
}

// ReplyTicket 卖家追加留言
func (h *Handler) ReplyTicket(c *gin.Context) {
	sellerID, ok := getSellerID(c)
	if !ok {
		return
	}
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	var req TicketReplyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "invalid request payload", err)
		return
	}

	message, err := h.TicketService.Reply(id, constants.TicketAuthorSeller, sellerID, req.Message)
	if err != nil {
		respondTicketError(c, err, "failed to reply to ticket")
		return
	}

	response.Created(c, message)
}
