package public

import (
	"errors"
	"time"

	"github.com/studio360-next/internal/constants"
	"github.com/studio360-next/internal/http/response"
	"github.com/studio360-next/internal/models"
	"github.com/studio360-next/internal/service"

	"github.com/gin-gonic/gin"
)

// SellerRegisterRequest 卖家注册请求
type SellerRegisterRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
	ShopName string `json:"shop_name"`
}

// SellerLoginRequest 卖家登录请求
type SellerLoginRequest struct {
	Email          string                `json:"email" binding:"required"`
	Password       string                `json:"password" binding:"required"`
	RememberMe     bool                  `json:"remember_me"`
	CaptchaPayload CaptchaPayloadRequest `json:"captcha_payload"`
}

// SellerChangePasswordRequest 卖家修改密码请求
type SellerChangePasswordRequest struct {
	OldPassword string `json:"old_password" binding:"required"`
	NewPassword string `json:"new_password" binding:"required"`
}

// SellerUpdateProfileRequest 卖家更新资料请求
type SellerUpdateProfileRequest struct {
	ShopName string `json:"shop_name" binding:"required"`
}

func sellerView(seller *models.Seller) gin.H {
	return gin.H{
		"id":            seller.ID,
		"email":         seller.Email,
		"shop_name":     seller.ShopName,
		"status":        seller.Status,
		"last_login_at": seller.LastLoginAt,
		"created_at":    seller.CreatedAt,
	}
}

func sellerAuthView(seller *models.Seller, token string, expiresAt time.Time) gin.H {
	return gin.H{
		"seller":     sellerView(seller),
		"token":      token,
		"expires_at": expiresAt.Format(time.RFC3339),
	}
}

// SellerRegister 卖家注册
func (h *Handler) SellerRegister(c *gin.Context) {
	var req SellerRegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "invalid request payload", err)
		return
	}

	seller, token, expiresAt, err := h.SellerAuthService.Register(req.Email, req.Password, req.ShopName)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidEmail):
			respondError(c, response.CodeBadRequest, service.ErrInvalidEmail.Error(), nil)
		case errors.Is(err, service.ErrEmailTaken):
			respondError(c, response.CodeBadRequest, service.ErrEmailTaken.Error(), nil)
		case errors.Is(err, service.ErrWeakPassword):
			respondError(c, response.CodeBadRequest, err.Error(), nil)
		default:
			respondError(c, response.CodeInternal, "registration failed", err)
		}
		return
	}

	response.Created(c, sellerAuthView(seller, token, expiresAt))
}

// SellerLogin 卖家登录
func (h *Handler) SellerLogin(c *gin.Context) {
	var req SellerLoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "invalid request payload", err)
		return
	}

	if h.CaptchaService != nil {
		if captchaErr := h.CaptchaService.Verify(constants.CaptchaSceneSellerLogin, req.CaptchaPayload.ToServicePayload()); captchaErr != nil {
			switch {
			case errors.Is(captchaErr, service.ErrCaptchaRequired):
				respondError(c, response.CodeBadRequest, service.ErrCaptchaRequired.Error(), nil)
			case errors.Is(captchaErr, service.ErrCaptchaInvalid):
				respondError(c, response.CodeBadRequest, service.ErrCaptchaInvalid.Error(), nil)
			default:
				respondError(c, response.CodeInternal, "captcha verification failed", captchaErr)
			}
			return
		}
	}

	seller, token, expiresAt, err := h.SellerAuthService.LoginWithRememberMe(req.Email, req.Password, req.RememberMe)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidEmail):
			respondError(c, response.CodeBadRequest, service.ErrInvalidEmail.Error(), nil)
		case errors.Is(err, service.ErrInvalidCredentials):
			respondError(c, response.CodeUnauthorized, "invalid email or password", nil)
		case errors.Is(err, service.ErrAccountDisabled):
			respondError(c, response.CodeUnauthorized, service.ErrAccountDisabled.Error(), nil)
		default:
			respondError(c, response.CodeInternal, "login failed", err)
		}
		return
	}

	response.Success(c, sellerAuthView(seller, token, expiresAt))
}

// SellerProfile 获取当前卖家资料
func (h *Handler) SellerProfile(c *gin.Context) {
	sellerID, ok := getSellerID(c)
	if !ok {
		return
	}

	seller, err := h.SellerAuthService.GetSellerByID(sellerID)
	if err != nil {
		respondError(c, response.CodeInternal, "failed to load profile", err)
		return
	}
	if seller == nil {
		respondError(c, response.CodeNotFound, "seller not found", nil)
		return
	}

	response.Success(c, sellerView(seller))
}

// SellerUpdateProfile 更新当前卖家资料
func (h *Handler) SellerUpdateProfile(c *gin.Context) {
	sellerID, ok := getSellerID(c)
	if !ok {
		return
	}

	var req SellerUpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "invalid request payload", err)
		return
	}

	seller, err := h.SellerAuthService.UpdateProfile(sellerID, req.ShopName)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrShopNameRequired):
			respondError(c, response.CodeBadRequest, service.ErrShopNameRequired.Error(), nil)
		case errors.Is(err, service.ErrNotFound):
			respondError(c, response.CodeNotFound, "seller not found", nil)
		default:
			respondError(c, response.CodeInternal, "failed to update profile", err)
		}
		return
	}

	response.Success(c, sellerView(seller))
}

// SellerChangePassword 修改当前卖家密码
func (h *Handler) SellerChangePassword(c *gin.Context) {
	sellerID, ok := getSellerID(c)
	if !ok {
		return
	}

	var req SellerChangePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "invalid request payload", err)
		return
	}

	if err := h.SellerAuthService.ChangePassword(sellerID, req.OldPassword, req.NewPassword); err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidPassword):
			respondError(c, response.CodeBadRequest, "current password is incorrect", nil)
		case errors.Is(err, service.ErrWeakPassword):
			respondError(c, response.CodeBadRequest, err.Error(), nil)
		case errors.Is(err, service.ErrNotFound):
			respondError(c, response.CodeNotFound, "seller not found", nil)
		default:
			respondError(c, response.CodeInternal, "failed to change password", err)
		}
		return
	}

	response.SuccessWithMsg(c, "password updated", nil)
}
