package public

import (
	"errors"
	"strconv"
	"strings"
	"time"

	handlershared "github.com/studio360-next/internal/http/handlers/shared"
	"github.com/studio360-next/internal/http/response"
	"github.com/studio360-next/internal/models"
	"github.com/studio360-next/internal/repository"
	"github.com/studio360-next/internal/service"

	"github.com/gin-gonic/gin"
)

// JournalLineRequest 分录行请求
type JournalLineRequest struct {
	AccountCode string       `json:"accountCode"`
	Debit       models.Money `json:"debit"`
	Credit      models.Money `json:"credit"`
}

// JournalEntryRequest 创建分录请求
type JournalEntryRequest struct {
	EntryDate *time.Time           `json:"entryDate"`
	Reference string               `json:"reference"`
	Remarks   string               `json:"remarks"`
	Lines     []JournalLineRequest `json:"lines"`
}

// journalValidationErrors 分录校验失败统一按 400 返回原始文案
var journalValidationErrors = []error{
	service.ErrJournalNoLines,
	service.ErrJournalBadAccount,
	service.ErrJournalLineAmounts,
	service.ErrJournalUnbalanced,
}

func respondJournalError(c *gin.Context, err error, fallback string) {
	for _, target := range journalValidationErrors {
		if errors.Is(err, target) {
			respondError(c, response.CodeBadRequest, target.Error(), nil)
			return
		}
	}
	if errors.Is(err, service.ErrJournalNotFound) {
		respondError(c, response.CodeNotFound, service.ErrJournalNotFound.Error(), nil)
		return
	}
	respondError(c, response.CodeInternal, fallback, err)
}

func parseDateQuery(c *gin.Context, key string) *time.Time {
	raw := strings.TrimSpace(c.Query(key))
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

// CreateJournalEntry 创建日记账分录
func (h *Handler) CreateJournalEntry(c *gin.Context) {
	sellerID, ok := getSellerID(c)
	if !ok {
		return
	}

	var req JournalEntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "invalid request payload", err)
		return
	}

	input := service.JournalEntryInput{
		SellerID:  sellerID,
		Reference: req.Reference,
		Remarks:   req.Remarks,
	}
	if req.EntryDate != nil {
		input.EntryDate = *req.EntryDate
	}
	for _, line := range req.Lines {
		input.Lines = append(input.Lines, service.JournalLineInput{
			AccountCode: line.AccountCode,
			Debit:       line.Debit,
			Credit:      line.Credit,
		})
	}

	entry, err := h.JournalService.Create(input)
	if err != nil {
		respondJournalError(c, err, "failed to create journal entry")
		return
	}

	response.Created(c, entry)
}

// ListJournalEntries 分页查询日记账分录
func (h *Handler) ListJournalEntries(c *gin.Context) {
	sellerID, ok := getSellerID(c)
	if !ok {
		return
	}

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "10"))
	page, limit = handlershared.NormalizePagination(page, limit)

	entries, total, err := h.JournalService.List(repository.JournalListFilter{
		Page:     page,
		PageSize: limit,
		SellerID: sellerID,
		DateFrom: parseDateQuery(c, "date_from"),
		DateTo:   parseDateQuery(c, "date_to"),
		Account:  strings.TrimSpace(c.Query("account")),
	})
	if err != nil {
		respondError(c, response.CodeInternal, "failed to list journal entries", err)
		return
	}

	response.SuccessWithPage(c, entries, response.NewPagination(page, limit, total))
}

// GetJournalEntry 查询单条分录
func (h *Handler) GetJournalEntry(c *gin.Context) {
	sellerID, ok := getSellerID(c)
	if !ok {
		return
	}
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	entry, err := h.JournalService.Get(id, sellerID)
	if err != nil {
		respondJournalError(c, err, "failed to fetch journal entry")
		return
	}

	response.Success(c, entry)
}

// DeleteJournalEntry 删除分录
func (h *Handler) DeleteJournalEntry(c *gin.Context) {
	sellerID, ok := getSellerID(c)
	if !ok {
		return
	}
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	if err := h.JournalService.Delete(id, sellerID); err != nil {
		respondJournalError(c, err, "failed to delete journal entry")
		return
	}

	response.SuccessWithMsg(c, "Journal entry deleted successfully", nil)
}

// GetLedgerSummary 总账汇总
func (h *Handler) GetLedgerSummary(c *gin.Context) {
	sellerID, ok := getSellerID(c)
	if !ok {
		return
	}

	summary, err := h.JournalService.Ledger(sellerID)
	if err != nil {
		respondError(c, response.CodeInternal, "failed to build ledger summary", err)
		return
	}

	response.Success(c, summary)
}

// GetChartOfAccounts 科目表
func (h *Handler) GetChartOfAccounts(c *gin.Context) {
	response.Success(c, h.JournalService.ChartOfAccounts())
}
