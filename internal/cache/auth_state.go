package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/studio360-next/internal/models"
)

const authStateCacheTTL = 10 * time.Minute

// SellerAuthState 卖家鉴权快照
// token_invalid_before 为 Unix 秒时间戳，0 表示未设置
// 该结构仅用于服务端 Redis 缓存
// 字段保持简洁，避免重复查询数据库
type SellerAuthState struct {
	SellerID           uint   `json:"seller_id"`
	Status             string `json:"status"`
	TokenVersion       uint64 `json:"token_version"`
	TokenInvalidBefore int64  `json:"token_invalid_before"`
	UpdatedAt          int64  `json:"updated_at"`
}

// AdminAuthState 管理员鉴权快照
type AdminAuthState struct {
	AdminID            uint   `json:"admin_id"`
	Username           string `json:"username"`
	TokenVersion       uint64 `json:"token_version"`
	TokenInvalidBefore int64  `json:"token_invalid_before"`
	IsSuper            bool   `json:"is_super"`
	UpdatedAt          int64  `json:"updated_at"`
}

func sellerAuthStateKey(sellerID uint) string {
	return fmt.Sprintf("auth:seller:%d", sellerID)
}

func adminAuthStateKey(adminID uint) string {
	return fmt.Sprintf("auth:admin:%d", adminID)
}

// BuildSellerAuthState 从卖家模型构建鉴权快照
func BuildSellerAuthState(seller *models.Seller) *SellerAuthState {
	if seller == nil {
		return nil
	}
	state := &SellerAuthState{
		SellerID:     seller.ID,
		Status:       seller.Status,
		TokenVersion: seller.TokenVersion,
		UpdatedAt:    time.Now().Unix(),
	}
	if seller.TokenInvalidBefore != nil {
		state.TokenInvalidBefore = seller.TokenInvalidBefore.Unix()
	}
	return state
}

// BuildAdminAuthState 从管理员模型构建鉴权快照
func BuildAdminAuthState(admin *models.Admin) *AdminAuthState {
	if admin == nil {
		return nil
	}
	state := &AdminAuthState{
		AdminID:      admin.ID,
		Username:     admin.Username,
		TokenVersion: admin.TokenVersion,
		IsSuper:      admin.IsSuper,
		UpdatedAt:    time.Now().Unix(),
	}
	if admin.TokenInvalidBefore != nil {
		state.TokenInvalidBefore = admin.TokenInvalidBefore.Unix()
	}
	return state
}

// GetSellerAuthState 获取卖家鉴权快照
func GetSellerAuthState(ctx context.Context, sellerID uint) (*SellerAuthState, bool, error) {
	if sellerID == 0 {
		return nil, false, nil
	}
	var state SellerAuthState
	hit, err := GetJSON(ctx, sellerAuthStateKey(sellerID), &state)
	if err != nil || !hit {
		return nil, hit, err
	}
	return &state, true, nil
}

// SetSellerAuthState 写入卖家鉴权快照
func SetSellerAuthState(ctx context.Context, state *SellerAuthState) error {
	if state == nil || state.SellerID == 0 {
		return nil
	}
	return SetJSON(ctx, sellerAuthStateKey(state.SellerID), state, authStateCacheTTL)
}

// DelSellerAuthState 删除卖家鉴权快照
func DelSellerAuthState(ctx context.Context, sellerID uint) error {
	if sellerID == 0 {
		return nil
	}
	return Del(ctx, sellerAuthStateKey(sellerID))
}

// GetAdminAuthState 获取管理员鉴权快照
func GetAdminAuthState(ctx context.Context, adminID uint) (*AdminAuthState, bool, error) {
	if adminID == 0 {
		return nil, false, nil
	}
	var state AdminAuthState
	hit, err := GetJSON(ctx, adminAuthStateKey(adminID), &state)
	if err != nil || !hit {
		return nil, hit, err
	}
	return &state, true, nil
}

// SetAdminAuthState 写入管理员鉴权快照
func SetAdminAuthState(ctx context.Context, state *AdminAuthState) error {
	if state == nil || state.AdminID == 0 {
		return nil
	}
	return SetJSON(ctx, adminAuthStateKey(state.AdminID), state, authStateCacheTTL)
}

// DelAdminAuthState 删除管理员鉴权快照
func DelAdminAuthState(ctx context.Context, adminID uint) error {
	if adminID == 0 {
		return nil
	}
	return Del(ctx, adminAuthStateKey(adminID))
}
