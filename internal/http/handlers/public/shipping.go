package public

import (
	"errors"

	"github.com/studio360-next/internal/http/response"
	"github.com/studio360-next/internal/models"
	"github.com/studio360-next/internal/service"

	"github.com/gin-gonic/gin"
)

// CourierRequest 创建/更新承运商请求
type CourierRequest struct {
	Name      string `json:"name"`
	IsActive  *bool  `json:"is_active"`
	SortOrder int    `json:"sort_order"`
}

// CourierRateRequest 运费档位请求
type CourierRateRequest struct {
	Region      string       `json:"region"`
	Description string       `json:"description"`
	Price       models.Money `json:"price"`
	IsActive    *bool        `json:"is_active"`
}

// ShippingQuoteRequest 运费报价请求，sellerId 标识被报价的店铺
type ShippingQuoteRequest struct {
	SellerID uint         `json:"sellerId" binding:"required"`
	Region   string       `json:"region" binding:"required"`
	Subtotal models.Money `json:"subtotal"`
}

func respondShippingError(c *gin.Context, err error, fallback string) {
	switch {
	case errors.Is(err, service.ErrCourierNotFound):
		respondError(c, response.CodeNotFound, service.ErrCourierNotFound.Error(), nil)
	case errors.Is(err, service.ErrCourierNameRequired):
		respondError(c, response.CodeBadRequest, service.ErrCourierNameRequired.Error(), nil)
	case errors.Is(err, service.ErrShippingRegion):
		respondError(c, response.CodeBadRequest, service.ErrShippingRegion.Error(), nil)
	case errors.Is(err, service.ErrShippingRateInvalid):
		respondError(c, response.CodeBadRequest, service.ErrShippingRateInvalid.Error(), nil)
	default:
		respondError(c, response.CodeInternal, fallback, err)
	}
}

// ListCouriers 查询承运商列表
func (h *Handler) ListCouriers(c *gin.Context) {
	sellerID, ok := getSellerID(c)
	if !ok {
		return
	}

	couriers, err := h.ShippingService.ListCouriers(sellerID)
	if err != nil {
		respondError(c, response.CodeInternal, "failed to list couriers", err)
		return
	}
	response.Success(c, couriers)
}

// GetCourier 查询承运商及其运费档位
func (h *Handler) GetCourier(c *gin.Context) {
	sellerID, ok := getSellerID(c)
	if !ok {
		return
	}
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	courier, rates, err := h.ShippingService.GetCourier(id, sellerID)
	if err != nil {
		respondShippingError(c, err, "failed to fetch courier")
		return
	}

	response.Success(c, gin.H{
		"courier": courier,
		"rates":   rates,
	})
}

// CreateCourier 创建承运商
func (h *Handler) CreateCourier(c *gin.Context) {
	sellerID, ok := getSellerID(c)
	if !ok {
		return
	}

	var req CourierRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "invalid request payload", err)
		return
	}

	courier, err := h.ShippingService.CreateCourier(sellerID, service.CourierInput{
		Name:      req.Name,
		IsActive:  req.IsActive,
		SortOrder: req.SortOrder,
	})
	if err != nil {
		respondShippingError(c, err, "failed to create courier")
		return
	}

	response.Created(c, courier)
}

// UpdateCourier 更新承运商
func (h *Handler) UpdateCourier(c *gin.Context) {
	sellerID, ok := getSellerID(c)
	if !ok {
		return
	}
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	var req CourierRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "invalid request payload", err)
		return
	}

	courier, err := h.ShippingService.UpdateCourier(id, sellerID, service.CourierInput{
		Name:      req.Name,
		IsActive:  req.IsActive,
		SortOrder: req.SortOrder,
	})
	if err != nil {
		respondShippingError(c, err, "failed to update courier")
		return
	}

	response.Success(c, courier)
}

// DeleteCourier 删除承运商
func (h *Handler) DeleteCourier(c *gin.Context) {
	sellerID, ok := getSellerID(c)
	if !ok {
		return
	}
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	if err := h.ShippingService.DeleteCourier(id, sellerID); err != nil {
		respondShippingError(c, err, "failed to delete courier")
		return
	}

	response.SuccessWithMsg(c, "Courier deleted successfully", nil)
}

// UpsertCourierRate 新增或更新承运商某区域的运费档位
func (h *Handler) UpsertCourierRate(c *gin.Context) {
	sellerID, ok := getSellerID(c)
	if !ok {
		return
	}
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	var req CourierRateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "invalid request payload", err)
		return
	}

	rate, err := h.ShippingService.UpsertRate(id, sellerID, service.RateInput{
		Region:      req.Region,
		Description: req.Description,
		Price:       req.Price,
		IsActive:    req.IsActive,
	})
	if err != nil {
		respondShippingError(c, err, "failed to save courier rate")
		return
	}

	response.Success(c, rate)
}

// GetFreeShippingConfig 查询免运费配置
func (h *Handler) GetFreeShippingConfig(c *gin.Context) {
	sellerID, ok := getSellerID(c)
	if !ok {
		return
	}

	cfg, err := h.ShippingService.GetFreeShippingConfig(sellerID)
	if err != nil {
		respondError(c, response.CodeInternal, "failed to load shipping settings", err)
		return
	}
	response.Success(c, cfg)
}

// UpdateFreeShippingConfig 更新免运费配置
func (h *Handler) UpdateFreeShippingConfig(c *gin.Context) {
	sellerID, ok := getSellerID(c)
	if !ok {
		return
	}

	var req service.FreeShippingConfig
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "invalid request payload", err)
		return
	}

	cfg, err := h.ShippingService.UpdateFreeShippingConfig(sellerID, req)
	if err != nil {
		respondError(c, response.CodeInternal, "failed to save shipping settings", err)
		return
	}
	response.Success(c, cfg)
}

// QuoteShipping 按区域与小计返回可用承运商报价
func (h *Handler) QuoteShipping(c *gin.Context) {
	var req ShippingQuoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "invalid request payload", err)
		return
	}

	options, err := h.ShippingService.Quote(req.SellerID, req.Region, req.Subtotal)
	if err != nil {
		respondShippingError(c, err, "failed to quote shipping")
		return
	}

	response.Success(c, gin.H{"options": options})
}
