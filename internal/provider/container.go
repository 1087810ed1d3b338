package provider

import (
	"github.com/studio360-next/internal/authz"
	"github.com/studio360-next/internal/cache"
	"github.com/studio360-next/internal/config"
	"github.com/studio360-next/internal/logger"
	"github.com/studio360-next/internal/models"
	"github.com/studio360-next/internal/queue"
	"github.com/studio360-next/internal/repository"
	"github.com/studio360-next/internal/service"
)

// Container 依赖注入容器
type Container struct {
	Config      *config.Config
	QueueClient *queue.Client

	// Repositories
	AdminRepo        repository.AdminRepository
	SellerRepo       repository.SellerRepository
	VoucherRepo      repository.VoucherRepository
	VoucherUsageRepo repository.VoucherUsageRepository
	CourierRepo      repository.CourierRepository
	AnnouncementRepo repository.AnnouncementRepository
	TicketRepo       repository.TicketRepository
	JournalRepo      repository.JournalRepository
	SettingRepo      repository.SettingRepository

	// Services
	AuthzService        *authz.Service
	AuthService         *service.AuthService
	SellerAuthService   *service.SellerAuthService
	EmailService        *service.EmailService
	CaptchaService      *service.CaptchaService
	SettingService      *service.SettingService
	VoucherAdminService *service.VoucherAdminService
	VoucherService      *service.VoucherService
	ShippingService     *service.ShippingService
	AnnouncementService *service.AnnouncementService
	TicketService       *service.TicketService
	JournalService      *service.JournalService
}

// NewContainer 初始化容器
func NewContainer(cfg *config.Config) *Container {
	// 初始化缓存
	if err := cache.InitRedis(&cfg.Redis); err != nil {
		logger.Warnw("provider_init_redis_failed", "error", err)
	}

	// 初始化队列客户端
	var queueClient *queue.Client
	if cfg.Queue.Enabled {
		qc, err := queue.NewClient(&cfg.Queue)
		if err != nil {
			logger.Errorw("provider_init_queue_client_failed", "error", err)
		} else {
			queueClient = qc
		}
	}

	c := &Container{
		Config:      cfg,
		QueueClient: queueClient,
	}

	// 1. 初始化 Repositories
	c.initRepositories()

	// 2. 初始化 Services
	c.initServices()

	return c
}

func (c *Container) initRepositories() {
	db := models.DB
	c.AdminRepo = repository.NewAdminRepository(db)
	c.SellerRepo = repository.NewSellerRepository(db)
	c.VoucherRepo = repository.NewVoucherRepository(db)
	c.VoucherUsageRepo = repository.NewVoucherUsageRepository(db)
	c.CourierRepo = repository.NewCourierRepository(db)
	c.AnnouncementRepo = repository.NewAnnouncementRepository(db)
	c.TicketRepo = repository.NewTicketRepository(db)
	c.JournalRepo = repository.NewJournalRepository(db)
	c.SettingRepo = repository.NewSettingRepository(db)
}

func (c *Container) initServices() {
	authzService, err := authz.NewService(models.DB)
	if err != nil {
		logger.Errorw("provider_init_authz_failed", "error", err)
		panic(err)
	}
	c.AuthzService = authzService
	if err := c.AuthzService.BootstrapBuiltinRoles(); err != nil {
		logger.Errorw("provider_bootstrap_builtin_roles_failed", "error", err)
		panic(err)
	}

	c.SettingService = service.NewSettingService(c.SettingRepo)
	smtpSetting, err := c.SettingService.GetSMTPSetting(c.Config.Email)
	if err != nil {
		logger.Warnw("provider_load_smtp_setting_failed", "error", err)
	} else {
		c.Config.Email = service.SMTPSettingToConfig(smtpSetting)
	}

	captchaSetting, err := c.SettingService.GetCaptchaSetting(c.Config.Captcha)
	if err != nil {
		logger.Warnw("provider_load_captcha_setting_failed", "error", err)
	} else {
		c.Config.Captcha = service.CaptchaSettingToConfig(captchaSetting)
	}

	c.EmailService = service.NewEmailService(&c.Config.Email)
	c.CaptchaService = service.NewCaptchaService(c.SettingService, c.Config.Captcha)
	c.AuthService = service.NewAuthService(c.Config, c.AdminRepo)
	c.SellerAuthService = service.NewSellerAuthService(c.Config, c.SellerRepo)
	c.VoucherAdminService = service.NewVoucherAdminService(c.VoucherRepo, c.VoucherUsageRepo)
	c.VoucherService = service.NewVoucherService(c.VoucherRepo, c.VoucherUsageRepo)
	c.ShippingService = service.NewShippingService(c.CourierRepo, c.SettingRepo)
	c.AnnouncementService = service.NewAnnouncementService(c.AnnouncementRepo)
	c.TicketService = service.NewTicketService(c.TicketRepo, c.QueueClient)
	c.JournalService = service.NewJournalService(c.JournalRepo)
}
