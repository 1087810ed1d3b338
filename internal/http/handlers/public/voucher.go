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

// VoucherRequest 创建/更新代金券请求
type VoucherRequest struct {
	Code           string       `json:"code"`
	Name           string       `json:"name"`
	Description    string       `json:"description"`
	Type           string       `json:"type"`
	Value          models.Money `json:"value"`
	MinOrderAmount models.Money `json:"minOrderAmount"`
	MaxDiscount    models.Money `json:"maxDiscount"`
	UsageLimit     int          `json:"usageLimit"`
	ValidFrom      *time.Time   `json:"validFrom"`
	ValidUntil     *time.Time   `json:"validUntil"`
	ApplicableTo   string       `json:"applicableTo"`
	ApplicableIDs  []int64      `json:"applicableIds"`
	Status         string       `json:"status"`
}

// VoucherValidateRequest 代金券资格校验请求
type VoucherValidateRequest struct {
	Code        string       `json:"code" binding:"required"`
	OrderAmount models.Money `json:"orderAmount"`
}

func (r VoucherRequest) toInput(sellerID uint, createdBy string) service.VoucherInput {
	return service.VoucherInput{
		Code:           r.Code,
		Name:           r.Name,
		Description:    r.Description,
		Type:           r.Type,
		Value:          r.Value,
		MinOrderAmount: r.MinOrderAmount,
		MaxDiscount:    r.MaxDiscount,
		UsageLimit:     r.UsageLimit,
		ValidFrom:      r.ValidFrom,
		ValidUntil:     r.ValidUntil,
		ApplicableTo:   r.ApplicableTo,
		ApplicableIDs:  r.ApplicableIDs,
		Status:         r.Status,
		SellerID:       sellerID,
		CreatedBy:      createdBy,
	}
}

// voucherValidationErrors 输入校验失败统一按 400 返回原始文案
var voucherValidationErrors = []error{
	service.ErrVoucherNameRequired,
	service.ErrVoucherTypeRequired,
	service.ErrVoucherTypeInvalid,
	service.ErrVoucherValueInvalid,
	service.ErrVoucherPercentTooHigh,
	service.ErrVoucherMinNegative,
	service.ErrVoucherMaxNegative,
	service.ErrVoucherUsageLimitLow,
	service.ErrVoucherDateOrder,
	service.ErrVoucherCodeTaken,
}

// voucherEligibilityErrors 资格校验失败统一按 400 返回原始文案
var voucherEligibilityErrors = []error{
	service.ErrVoucherInvalidCode,
	service.ErrVoucherNotActive,
	service.ErrVoucherExpired,
	service.ErrVoucherNotYetValid,
	service.ErrVoucherUsageLimit,
}

func respondVoucherWriteError(c *gin.Context, err error, fallback string) {
	for _, target := range voucherValidationErrors {
		if errors.Is(err, target) {
			respondError(c, response.CodeBadRequest, target.Error(), nil)
			return
		}
	}
	switch {
	case errors.Is(err, service.ErrVoucherNotFound):
		respondError(c, response.CodeNotFound, service.ErrVoucherNotFound.Error(), nil)
	case errors.Is(err, service.ErrVoucherCodeGenerate):
		respondError(c, response.CodeInternal, service.ErrVoucherCodeGenerate.Error(), err)
	default:
		respondError(c, response.CodeInternal, fallback, err)
	}
}

func respondVoucherEligibilityError(c *gin.Context, err error, fallback string) {
	for _, target := range voucherEligibilityErrors {
		if errors.Is(err, target) {
			respondError(c, response.CodeBadRequest, target.Error(), nil)
			return
		}
	}
	var minErr *service.MinOrderAmountError
	if errors.As(err, &minErr) {
		respondError(c, response.CodeBadRequest, minErr.Error(), nil)
		return
	}
	respondError(c, response.CodeInternal, fallback, err)
}

// voucherViews 以推导状态（含 expired）构建展示列表
func voucherViews(vouchers []models.Voucher, now time.Time) []models.VoucherView {
	views := make([]models.VoucherView, 0, len(vouchers))
	for i := range vouchers {
		views = append(views, vouchers[i].View(now))
	}
	return views
}

func parseIDParam(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		respondError(c, response.CodeBadRequest, "invalid id", nil)
		return 0, false
	}
	return uint(id), true
}

// ListVouchers 分页查询代金券
func (h *Handler) ListVouchers(c *gin.Context) {
	sellerID, ok := getSellerID(c)
	if !ok {
		return
	}

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "10"))
	page, limit = handlershared.NormalizePagination(page, limit)

	filter := repository.VoucherListFilter{
		Page:     page,
		PageSize: limit,
		SellerID: sellerID,
		Status:   strings.TrimSpace(c.Query("status")),
		Type:     strings.TrimSpace(c.Query("type")),
		Search:   strings.TrimSpace(c.Query("search")),
		Now:      time.Now(),
	}

	vouchers, total, err := h.VoucherAdminService.List(filter)
	if err != nil {
		respondError(c, response.CodeInternal, "failed to list vouchers", err)
		return
	}

	response.SuccessWithPage(c, voucherViews(vouchers, filter.Now), response.NewPagination(page, limit, total))
}

// CreateVoucher 创建代金券
func (h *Handler) CreateVoucher(c *gin.Context) {
	sellerID, ok := getSellerID(c)
	if !ok {
		return
	}

	var req VoucherRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "invalid request payload", err)
		return
	}

	voucher, err := h.VoucherAdminService.Create(req.toInput(sellerID, c.GetString("seller_email")))
	if err != nil {
		respondVoucherWriteError(c, err, "failed to create voucher")
		return
	}

	response.Created(c, voucher)
}

// GetVoucher 查询单个代金券
func (h *Handler) GetVoucher(c *gin.Context) {
	sellerID, ok := getSellerID(c)
	if !ok {
		return
	}
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	voucher, err := h.VoucherAdminService.Get(id, sellerID)
	if err != nil {
		respondVoucherWriteError(c, err, "failed to fetch voucher")
		return
	}

	response.Success(c, voucher.View(time.Now()))
}

// UpdateVoucher 全量更新代金券
func (h *Handler) UpdateVoucher(c *gin.Context) {
	sellerID, ok := getSellerID(c)
	if !ok {
		return
	}
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	var req VoucherRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "invalid request payload", err)
		return
	}

	voucher, err := h.VoucherAdminService.Update(id, req.toInput(sellerID, c.GetString("seller_email")))
	if err != nil {
		respondVoucherWriteError(c, err, "failed to update voucher")
		return
	}

	response.Success(c, voucher)
}

// DeleteVoucher 删除代金券
func (h *Handler) DeleteVoucher(c *gin.Context) {
	sellerID, ok := getSellerID(c)
	if !ok {
		return
	}
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	if err := h.VoucherAdminService.Delete(id, sellerID); err != nil {
		respondVoucherWriteError(c, err, "failed to delete voucher")
		return
	}

	response.SuccessWithMsg(c, "Voucher deleted successfully", nil)
}

// ToggleVoucherStatus 启用/停用代金券
func (h *Handler) ToggleVoucherStatus(c *gin.Context) {
	sellerID, ok := getSellerID(c)
	if !ok {
		return
	}
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	voucher, err := h.VoucherAdminService.ToggleStatus(id, sellerID)
	if err != nil {
		respondVoucherWriteError(c, err, "failed to toggle voucher status")
		return
	}

	response.Success(c, voucher)
}

// ApplyVoucher 核销一次代金券（守护式自增）
func (h *Handler) ApplyVoucher(c *gin.Context) {
	sellerID, ok := getSellerID(c)
	if !ok {
		return
	}
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	voucher, err := h.VoucherService.Apply(id, sellerID)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrVoucherNotFound):
			respondError(c, response.CodeNotFound, service.ErrVoucherNotFound.Error(), nil)
		case errors.Is(err, service.ErrVoucherUsageLimit):
			respondError(c, response.CodeBadRequest, service.ErrVoucherUsageLimit.Error(), nil)
		default:
			respondError(c, response.CodeInternal, "failed to apply voucher", err)
		}
		return
	}

	response.Success(c, voucher)
}

// VoucherStats 代金券统计汇总
func (h *Handler) VoucherStats(c *gin.Context) {
	sellerID, ok := getSellerID(c)
	if !ok {
		return
	}

	stats, err := h.VoucherAdminService.Stats(sellerID)
	if err != nil {
		respondError(c, response.CodeInternal, "failed to fetch voucher stats", err)
		return
	}

	response.Success(c, stats)
}

// ListVoucherUsages 分页查询核销记录
func (h *Handler) ListVoucherUsages(c *gin.Context) {
	sellerID, ok := getSellerID(c)
	if !ok {
		return
	}
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "10"))
	page, limit = handlershared.NormalizePagination(page, limit)

	usages, total, err := h.VoucherAdminService.ListUsages(id, sellerID, page, limit)
	if err != nil {
		if errors.Is(err, service.ErrVoucherNotFound) {
			respondError(c, response.CodeNotFound, service.ErrVoucherNotFound.Error(), nil)
			return
		}
		respondError(c, response.CodeInternal, "failed to fetch voucher usage history", err)
		return
	}

	response.SuccessWithPage(c, usages, response.NewPagination(page, limit, total))
}

// ValidateVoucher 只读资格校验（结账预检）
func (h *Handler) ValidateVoucher(c *gin.Context) {
	var req VoucherValidateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "invalid request payload", err)
		return
	}

	result, err := h.VoucherService.Evaluate(req.Code, req.OrderAmount)
	if err != nil {
		respondVoucherEligibilityError(c, err, "failed to validate voucher")
		return
	}

	response.Success(c, result)
}

// RedeemVoucher 校验并核销（单事务）
func (h *Handler) RedeemVoucher(c *gin.Context) {
	var req VoucherValidateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "invalid request payload", err)
		return
	}

	result, err := h.VoucherService.Redeem(req.Code, req.OrderAmount)
	if err != nil {
		respondVoucherEligibilityError(c, err, "failed to redeem voucher")
		return
	}

	response.Success(c, result)
}
