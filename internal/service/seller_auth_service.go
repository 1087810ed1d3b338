package service

import (
	"context"
	"errors"
	"net/mail"
	"strings"
	"time"

	"github.com/studio360-next/internal/cache"
	"github.com/studio360-next/internal/config"
	"github.com/studio360-next/internal/constants"
	"github.com/studio360-next/internal/models"
	"github.com/studio360-next/internal/repository"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

// SellerAuthService 卖家认证服务
type SellerAuthService struct {
	cfg        *config.Config
	sellerRepo repository.SellerRepository
}

// NewSellerAuthService 创建卖家认证服务
func NewSellerAuthService(cfg *config.Config, sellerRepo repository.SellerRepository) *SellerAuthService {
	return &SellerAuthService{
		cfg:        cfg,
		sellerRepo: sellerRepo,
	}
}

// SellerJWTClaims 卖家 JWT 声明
type SellerJWTClaims struct {
	SellerID     uint   `json:"seller_id"`
	Email        string `json:"email"`
	TokenVersion uint64 `json:"token_version"`
	jwt.RegisteredClaims
}

// GenerateSellerJWT 生成卖家 JWT Token
func (s *SellerAuthService) GenerateSellerJWT(seller *models.Seller, expireHours int) (string, time.Time, error) {
	resolvedHours := expireHours
	if resolvedHours <= 0 {
		resolvedHours = resolveSellerJWTExpireHours(s.cfg.SellerJWT)
	}
	expiresAt := time.Now().Add(time.Duration(resolvedHours) * time.Hour)
	claims := SellerJWTClaims{
		SellerID:     seller.ID,
		Email:        seller.Email,
		TokenVersion: seller.TokenVersion,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			NotBefore: jwt.NewNumericDate(time.Now()),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString([]byte(s.cfg.SellerJWT.SecretKey))
	if err != nil {
		return "", time.Time{}, err
	}
	return tokenString, expiresAt, nil
}

// ParseSellerJWT 解析卖家 JWT Token
func (s *SellerAuthService) ParseSellerJWT(tokenString string) (*SellerJWTClaims, error) {
	parser := jwt.NewParser(jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	claims := &SellerJWTClaims{}
	token, err := parser.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		return []byte(s.cfg.SellerJWT.SecretKey), nil
	})
	if err != nil {
		return nil, err
	}
	if claims, ok := token.Claims.(*SellerJWTClaims); ok && token.Valid {
		return claims, nil
	}
	return nil, errors.New("无效的 token")
}

// Register 卖家注册
func (s *SellerAuthService) Register(email, password, shopName string) (*models.Seller, string, time.Time, error) {
	normalized, err := normalizeEmail(email)
	if err != nil {
		return nil, "", time.Time{}, err
	}
	if err := validatePassword(s.cfg.Security.PasswordPolicy, password); err != nil {
		return nil, "", time.Time{}, err
	}

	exist, err := s.sellerRepo.GetByEmail(normalized)
	if err != nil {
		return nil, "", time.Time{}, err
	}
	if exist != nil {
		return nil, "", time.Time{}, ErrEmailTaken
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, "", time.Time{}, err
	}

	now := time.Now()
	seller := &models.Seller{
		Email:        normalized,
		PasswordHash: string(hashedPassword),
		ShopName:     resolveShopName(shopName, normalized),
		Status:       constants.SellerStatusActive,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := s.sellerRepo.Create(seller); err != nil {
		return nil, "", time.Time{}, err
	}

	token, expiresAt, err := s.GenerateSellerJWT(seller, 0)
	if err != nil {
		return nil, "", time.Time{}, err
	}

	seller.LastLoginAt = &now
	if err := s.sellerRepo.Update(seller); err != nil {
		return nil, "", time.Time{}, err
	}
	_ = cache.SetSellerAuthState(context.Background(), cache.BuildSellerAuthState(seller))

	return seller, token, expiresAt, nil
}

// Login 卖家登录
func (s *SellerAuthService) Login(email, password string) (*models.Seller, string, time.Time, error) {
	return s.LoginWithRememberMe(email, password, false)
}

// LoginWithRememberMe 卖家登录（支持记住我）
func (s *SellerAuthService) LoginWithRememberMe(email, password string, rememberMe bool) (*models.Seller, string, time.Time, error) {
	normalized, err := normalizeEmail(email)
	if err != nil {
		return nil, "", time.Time{}, err
	}
	seller, err := s.sellerRepo.GetByEmail(normalized)
	if err != nil {
		return nil, "", time.Time{}, err
	}
	if seller == nil {
		return nil, "", time.Time{}, ErrInvalidCredentials
	}
	if strings.ToLower(seller.Status) != constants.SellerStatusActive {
		return nil, "", time.Time{}, ErrAccountDisabled
	}
	if err := bcrypt.CompareHashAndPassword([]byte(seller.PasswordHash), []byte(password)); err != nil {
		return nil, "", time.Time{}, ErrInvalidCredentials
	}

	expireHours := resolveSellerJWTExpireHours(s.cfg.SellerJWT)
	if rememberMe {
		expireHours = resolveRememberMeExpireHours(s.cfg.SellerJWT)
	}
	token, expiresAt, err := s.GenerateSellerJWT(seller, expireHours)
	if err != nil {
		return nil, "", time.Time{}, err
	}

	now := time.Now()
	seller.LastLoginAt = &now
	if err := s.sellerRepo.Update(seller); err != nil {
		return nil, "", time.Time{}, err
	}
	_ = cache.SetSellerAuthState(context.Background(), cache.BuildSellerAuthState(seller))

	return seller, token, expiresAt, nil
}

// ChangePassword 登录态修改密码
func (s *SellerAuthService) ChangePassword(sellerID uint, oldPassword, newPassword string) error {
	if sellerID == 0 {
		return ErrNotFound
	}

	seller, err := s.sellerRepo.GetByID(sellerID)
	if err != nil {
		return err
	}
	if seller == nil {
		return ErrNotFound
	}

	if err := bcrypt.CompareHashAndPassword([]byte(seller.PasswordHash), []byte(oldPassword)); err != nil {
		return ErrInvalidPassword
	}

	if err := validatePassword(s.cfg.Security.PasswordPolicy, newPassword); err != nil {
		return err
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	now := time.Now()
	seller.PasswordHash = string(hashedPassword)
	seller.UpdatedAt = now
	seller.TokenVersion++
	seller.TokenInvalidBefore = &now
	if err := s.sellerRepo.Update(seller); err != nil {
		return err
	}
	_ = cache.SetSellerAuthState(context.Background(), cache.BuildSellerAuthState(seller))
	return nil
}

// UpdateProfile 更新店铺名称
func (s *SellerAuthService) UpdateProfile(sellerID uint, shopName string) (*models.Seller, error) {
	if sellerID == 0 {
		return nil, ErrNotFound
	}
	seller, err := s.sellerRepo.GetByID(sellerID)
	if err != nil {
		return nil, err
	}
	if seller == nil {
		return nil, ErrNotFound
	}

	trimmed := strings.TrimSpace(shopName)
	if trimmed == "" {
		return nil, ErrShopNameRequired
	}
	seller.ShopName = trimmed
	seller.UpdatedAt = time.Now()
	if err := s.sellerRepo.Update(seller); err != nil {
		return nil, err
	}
	return seller, nil
}

// GetSellerByID 获取卖家信息
func (s *SellerAuthService) GetSellerByID(id uint) (*models.Seller, error) {
	if id == 0 {
		return nil, ErrNotFound
	}
	return s.sellerRepo.GetByID(id)
}

func normalizeEmail(email string) (string, error) {
	normalized := strings.ToLower(strings.TrimSpace(email))
	if normalized == "" {
		return "", ErrInvalidEmail
	}
	if _, err := mail.ParseAddress(normalized); err != nil {
		return "", ErrInvalidEmail
	}
	return normalized, nil
}

// NormalizeEmail 统一邮箱格式
func NormalizeEmail(email string) (string, error) {
	return normalizeEmail(email)
}

func resolveShopName(shopName, email string) string {
	trimmed := strings.TrimSpace(shopName)
	if trimmed != "" {
		return trimmed
	}
	parts := strings.SplitN(email, "@", 2)
	if len(parts) == 2 && strings.TrimSpace(parts[0]) != "" {
		return strings.TrimSpace(parts[0])
	}
	return email
}

func resolveSellerJWTExpireHours(cfg config.JWTConfig) int {
	if cfg.ExpireHours <= 0 {
		return 24
	}
	return cfg.ExpireHours
}

func resolveRememberMeExpireHours(cfg config.JWTConfig) int {
	if cfg.RememberMeExpireHours <= 0 {
		return resolveSellerJWTExpireHours(cfg)
	}
	return cfg.RememberMeExpireHours
}
