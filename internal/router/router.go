package router

import (
	"fmt"
	"sort"
	"strings"

	"github.com/studio360-next/internal/authz"
	"github.com/studio360-next/internal/cache"
	"github.com/studio360-next/internal/config"
	adminhandlers "github.com/studio360-next/internal/http/handlers/admin"
	publichandlers "github.com/studio360-next/internal/http/handlers/public"
	"github.com/studio360-next/internal/http/response"
	"github.com/studio360-next/internal/logger"
	"github.com/studio360-next/internal/provider"

	"github.com/gin-gonic/gin"
)

// SetupRouter 初始化路由
func SetupRouter(cfg *config.Config, c *provider.Container) *gin.Engine {
	log := logger.L
	if log == nil {
		log = logger.Init(cfg.Server.Mode, cfg.Log.ToLoggerOptions())
	}
	r := gin.New()

	// 初始化 Handler（按卖家端/管理端分组）
	publicHandler := publichandlers.New(c)
	adminHandler := adminhandlers.New(c)
	redisPrefix := strings.TrimSpace(cfg.Redis.Prefix)
	if redisPrefix == "" {
		redisPrefix = "s360"
	}
	redisClient := cache.Client()
	loginRule := RateLimitRule{
		Prefix:        fmt.Sprintf("%s:rate:login", redisPrefix),
		WindowSeconds: cfg.Security.LoginRateLimit.WindowSeconds,
		MaxRequests:   cfg.Security.LoginRateLimit.MaxAttempts,
		Message:       "too many login attempts, please retry in %d seconds",
	}
	adminLoginRule := RateLimitRule{
		Prefix:        fmt.Sprintf("%s:rate:admin_login", redisPrefix),
		WindowSeconds: cfg.Security.LoginRateLimit.WindowSeconds,
		MaxRequests:   cfg.Security.LoginRateLimit.MaxAttempts,
		Message:       "too many login attempts, please retry in %d seconds",
	}
	redeemRule := RateLimitRule{
		Prefix:        fmt.Sprintf("%s:rate:redeem", redisPrefix),
		WindowSeconds: cfg.Security.RedeemRateLimit.WindowSeconds,
		MaxRequests:   cfg.Security.RedeemRateLimit.MaxAttempts,
		Message:       "too many redemption attempts, please retry in %d seconds",
	}

	// 中间件
	r.Use(gin.Recovery())
	r.Use(RequestIDMiddleware())
	r.Use(LoggerMiddleware(log))
	r.Use(CORSMiddleware(cfg.CORS))

	// API 路由组
	apiV1 := r.Group("/api/v1")
	{
		// 公开接口（无需鉴权，买家结账页调用）
		public := apiV1.Group("/public")
		{
			public.GET("/captcha/image", publicHandler.GetImageCaptcha)
			public.GET("/captcha/setting", publicHandler.GetCaptchaSetting)
			public.GET("/announcements", publicHandler.ListActiveAnnouncements)
			public.POST("/vouchers/validate", publicHandler.ValidateVoucher)
			public.POST("/vouchers/redeem", RateLimitMiddleware(redisClient, redeemRule, KeyByIPAndJSONField("code")), publicHandler.RedeemVoucher)
			public.POST("/shipping/quote", publicHandler.QuoteShipping)
		}

		// 卖家认证接口
		auth := apiV1.Group("/auth")
		{
			auth.POST("/register", publicHandler.SellerRegister)
			auth.POST("/login", RateLimitMiddleware(redisClient, loginRule, KeyByIPAndJSONField("email")), publicHandler.SellerLogin)
		}

		// 卖家接口（需鉴权）
		seller := apiV1.Group("")
		seller.Use(SellerJWTAuthMiddleware(cfg.SellerJWT.SecretKey, c.SellerRepo))
		{
			seller.GET("/me", publicHandler.SellerProfile)
			seller.PUT("/me/profile", publicHandler.SellerUpdateProfile)
			seller.PUT("/me/password", publicHandler.SellerChangePassword)

			// 代金券管理
			seller.GET("/vouchers", publicHandler.ListVouchers)
			seller.POST("/vouchers", publicHandler.CreateVoucher)
			seller.GET("/vouchers/stats/summary", publicHandler.VoucherStats)
			seller.GET("/vouchers/:id", publicHandler.GetVoucher)
			seller.PUT("/vouchers/:id", publicHandler.UpdateVoucher)
			seller.DELETE("/vouchers/:id", publicHandler.DeleteVoucher)
			seller.PATCH("/vouchers/:id/toggle-status", publicHandler.ToggleVoucherStatus)
			seller.POST("/vouchers/:id/apply", publicHandler.ApplyVoucher)
			seller.GET("/vouchers/:id/usage", publicHandler.ListVoucherUsages)

			// 物流渠道与运费
			seller.GET("/couriers", publicHandler.ListCouriers)
			seller.POST("/couriers", publicHandler.CreateCourier)
			seller.GET("/couriers/:id", publicHandler.GetCourier)
			seller.PUT("/couriers/:id", publicHandler.UpdateCourier)
			seller.DELETE("/couriers/:id", publicHandler.DeleteCourier)
			seller.PUT("/couriers/:id/rates", publicHandler.UpsertCourierRate)
			seller.GET("/shipping/free-shipping", publicHandler.GetFreeShippingConfig)
			seller.PUT("/shipping/free-shipping", publicHandler.UpdateFreeShippingConfig)

			// 总账簿记
			seller.POST("/journal/entries", publicHandler.CreateJournalEntry)
			seller.GET("/journal/entries", publicHandler.ListJournalEntries)
			seller.GET("/journal/entries/:id", publicHandler.GetJournalEntry)
			seller.DELETE("/journal/entries/:id", publicHandler.DeleteJournalEntry)
			seller.GET("/journal/summary", publicHandler.GetLedgerSummary)
			seller.GET("/journal/accounts", publicHandler.GetChartOfAccounts)

			// 工单
			seller.POST("/tickets", publicHandler.CreateTicket)
			seller.GET("/tickets", publicHandler.ListTickets)
			seller.GET("/tickets/:id", publicHandler.GetTicket)
			seller.POST("/tickets/:id/reply", publicHandler.ReplyTicket)

			// 店铺资料
			seller.GET("/shop/profile", publicHandler.GetShopProfile)
			seller.PUT("/shop/profile", publicHandler.UpdateShopProfile)
		}

		// 管理员接口
		admin := apiV1.Group("/admin")
		{
			// 登录接口（无需鉴权）
			admin.POST("/login", RateLimitMiddleware(redisClient, adminLoginRule, KeyByIP), adminHandler.AdminLogin)

			// 需要鉴权的接口
			authorized := admin.Use(JWTAuthMiddleware(cfg.JWT.SecretKey, c.AdminRepo), AdminRBACMiddleware(c.AuthzService))
			{
				authorized.PUT("/password", adminHandler.UpdateAdminPassword) // 修改密码

				// 公告管理
				authorized.GET("/announcements", adminHandler.ListAnnouncements)
				authorized.POST("/announcements", adminHandler.CreateAnnouncement)
				authorized.PUT("/announcements/:id", adminHandler.UpdateAnnouncement)
				authorized.PATCH("/announcements/:id/toggle", adminHandler.ToggleAnnouncement)
				authorized.DELETE("/announcements/:id", adminHandler.DeleteAnnouncement)

				// 工单管理
				authorized.GET("/tickets", adminHandler.ListAllTickets)
				authorized.GET("/tickets/stats", adminHandler.TicketStatsAdmin)
				authorized.GET("/tickets/:id", adminHandler.GetTicketAdmin)
				authorized.POST("/tickets/:id/reply", adminHandler.ReplyTicketAdmin)
				authorized.PATCH("/tickets/:id/status", adminHandler.UpdateTicketStatus)

				// 卖家账号管理
				authorized.GET("/sellers", adminHandler.ListSellers)
				authorized.GET("/sellers/:id", adminHandler.GetSeller)
				authorized.PATCH("/sellers/:id/status", adminHandler.UpdateSellerStatus)

				// 设置管理
				authorized.GET("/settings/smtp", adminHandler.GetSMTPSettings)
				authorized.PUT("/settings/smtp", adminHandler.UpdateSMTPSettings)
				authorized.POST("/settings/smtp/test", adminHandler.TestSMTPSettings)
				authorized.GET("/settings/captcha", adminHandler.GetCaptchaSettings)
				authorized.PUT("/settings/captcha", adminHandler.UpdateCaptchaSettings)

				// 权限管理
				authorized.GET("/authz/me", adminHandler.GetAuthzMe)
				authorized.GET("/authz/roles", adminHandler.ListAuthzRoles)
				authorized.GET("/authz/admins", adminHandler.ListAuthzAdmins)
				authorized.POST("/authz/admins", adminHandler.CreateAuthzAdmin)
				authorized.PUT("/authz/admins/:id", adminHandler.UpdateAuthzAdmin)
				authorized.DELETE("/authz/admins/:id", adminHandler.DeleteAuthzAdmin)
				authorized.GET("/authz/permissions/catalog", func(ctx *gin.Context) {
					response.Success(ctx, buildAdminPermissionCatalog(r))
				})
				authorized.POST("/authz/roles", adminHandler.CreateAuthzRole)
				authorized.DELETE("/authz/roles/:role", adminHandler.DeleteAuthzRole)
				authorized.GET("/authz/roles/:role/policies", adminHandler.GetAuthzRolePolicies)
				authorized.POST("/authz/policies", adminHandler.GrantAuthzPolicy)
				authorized.DELETE("/authz/policies", adminHandler.RevokeAuthzPolicy)
				authorized.GET("/authz/admins/:id/roles", adminHandler.GetAuthzAdminRoles)
				authorized.PUT("/authz/admins/:id/roles", adminHandler.SetAuthzAdminRoles)
			}
		}
	}

	// 健康检查
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	return r
}

type adminPermissionCatalogItem struct {
	Module     string `json:"module"`
	Method     string `json:"method"`
	Object     string `json:"object"`
	Permission string `json:"permission"`
}

func buildAdminPermissionCatalog(engine *gin.Engine) []adminPermissionCatalogItem {
	if engine == nil {
		return []adminPermissionCatalogItem{}
	}

	routes := engine.Routes()
	seen := make(map[string]struct{}, len(routes))
	items := make([]adminPermissionCatalogItem, 0, len(routes))

	for _, item := range routes {
		method := strings.ToUpper(strings.TrimSpace(item.Method))
		if method == "" || method == "OPTIONS" || method == "HEAD" {
			continue
		}
		if !strings.HasPrefix(item.Path, "/api/v1/admin/") {
			continue
		}
		if item.Path == "/api/v1/admin/login" {
			continue
		}
		object := authz.NormalizeObject(item.Path)
		permission := method + ":" + object
		if _, exists := seen[permission]; exists {
			continue
		}
		seen[permission] = struct{}{}
		items = append(items, adminPermissionCatalogItem{
			Module:     deriveAdminPermissionModule(object),
			Method:     method,
			Object:     object,
			Permission: permission,
		})
	}

	sort.Slice(items, func(i, j int) bool {
		if items[i].Module == items[j].Module {
			if items[i].Object == items[j].Object {
				return items[i].Method < items[j].Method
			}
			return items[i].Object < items[j].Object
		}
		return items[i].Module < items[j].Module
	})

	return items
}

func deriveAdminPermissionModule(object string) string {
	normalized := strings.TrimPrefix(strings.TrimSpace(object), "/")
	if normalized == "" {
		return "system"
	}
	segments := strings.Split(normalized, "/")
	if len(segments) <= 1 {
		return segments[0]
	}
	if segments[0] != "admin" {
		return segments[0]
	}
	if segments[1] == "authz" {
		return "authz"
	}
	return segments[1]
}
