package models

import (
	"strings"

	"golang.org/x/crypto/bcrypt"

	"github.com/studio360-next/internal/constants"
	"github.com/studio360-next/internal/logger"
)

// InitDefaultAdmin 初始化默认平台管理员账号
func InitDefaultAdmin(username, password string) error {
	var count int64
	DB.Model(&Admin{}).Count(&count)

	// 如果已有管理员，确保默认 admin 拥有超级管理员权限
	if count > 0 {
		if err := DB.Model(&Admin{}).Where("username = ?", "admin").Update("is_super", true).Error; err != nil {
			logger.Warnw("ensure_default_admin_super_failed", "error", err)
		}
		return nil
	}

	if username == "" {
		username = "admin"
	}
	if password == "" {
		password = "admin123"
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	admin := Admin{
		Username:     username,
		PasswordHash: string(hash),
		IsSuper:      strings.EqualFold(strings.TrimSpace(username), "admin"),
	}

	if err := DB.Create(&admin).Error; err != nil {
		return err
	}

	if password == "admin123" {
		logger.Warnw("default_admin_created_with_default_password", "username", username, "password", password)
		logger.Warnw("default_admin_password_change_required", "username", username)
	} else {
		logger.Warnw("default_admin_created", "username", username, "password_hidden", true)
	}

	return nil
}

// InitDefaultSeller 初始化默认卖家账号（便于首次部署后直接登录仪表盘）
func InitDefaultSeller(email, password string) error {
	if email == "" {
		return nil
	}

	var count int64
	DB.Model(&Seller{}).Where("email = ?", email).Count(&count)
	if count > 0 {
		return nil
	}

	if password == "" {
		password = "seller123"
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	seller := Seller{
		Email:        email,
		PasswordHash: string(hash),
		ShopName:     "My Shop",
		Status:       constants.SellerStatusActive,
	}
	if err := DB.Create(&seller).Error; err != nil {
		return err
	}

	logger.Warnw("default_seller_created", "email", email)
	return nil
}
