package public

import (
	"github.com/studio360-next/internal/constants"
	"github.com/studio360-next/internal/http/response"

	"github.com/gin-gonic/gin"
)

// GetShopProfile 查询店铺资料设置
func (h *Handler) GetShopProfile(c *gin.Context) {
	if _, ok := getSellerID(c); !ok {
		return
	}

	defaults := map[string]interface{}{
		constants.SettingFieldShopName:      "",
		constants.SettingFieldContactEmail:  "",
		constants.SettingFieldContactPhone:  "",
		constants.SettingFieldShopCategory:  "",
		constants.SettingFieldStreetAddress: "",
	}
	profile, err := h.SettingService.GetShopProfile(defaults)
	if err != nil {
		respondError(c, response.CodeInternal, "failed to load shop profile", err)
		return
	}

	response.Success(c, profile)
}

// UpdateShopProfile 更新店铺资料设置
func (h *Handler) UpdateShopProfile(c *gin.Context) {
	if _, ok := getSellerID(c); !ok {
		return
	}

	var req map[string]interface{}
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "invalid request payload", err)
		return
	}

	value, err := h.SettingService.Update(constants.SettingKeyShopProfile, req)
	if err != nil {
		respondError(c, response.CodeInternal, "failed to save shop profile", err)
		return
	}

	response.Success(c, value)
}
