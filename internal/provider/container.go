package provider

import (
	"github.com/linkmart/internal/analytics"
	"github.com/linkmart/internal/authz"
	"github.com/linkmart/internal/cache"
	"github.com/linkmart/internal/config"
	"github.com/linkmart/internal/logger"
	"github.com/linkmart/internal/metrics"
	"github.com/linkmart/internal/models"
	"github.com/linkmart/internal/payment/stripe"
	"github.com/linkmart/internal/queue"
	"github.com/linkmart/internal/repository"
	"github.com/linkmart/internal/service"
)

// Container 依赖注入容器
type Container struct {
	Config      *config.Config
	QueueClient *queue.Client
	Metrics     *metrics.StoreMetrics

	// Repositories
	AdminRepo           repository.AdminRepository
	CategoryRepo        repository.CategoryRepository
	BrandRepo           repository.BrandRepository
	ProductRepo         repository.ProductRepository
	BannerAdRepo        repository.BannerAdRepository
	ProductBannerAdRepo repository.ProductBannerAdRepository
	OrderRepo           repository.OrderRepository
	PaymentRepo         repository.PaymentRepository
	CustomerRepo        repository.CustomerRepository
	CustomerSessionRepo repository.CustomerSessionRepository
	CustomerAddressRepo repository.CustomerAddressRepository
	WishlistRepo        repository.WishlistRepository
	RewardRepo          repository.RewardRepository
	NotificationRepo    repository.NotificationRepository
	PageRepo            repository.PageRepository
	SettingRepo         repository.SettingRepository
	AnalyticsRepo       repository.AnalyticsRepository
	ContactRepo         repository.ContactRepository

	// Services
	AuthzService        *authz.Service
	AuthService         *service.AuthService
	SiteAdminService    *service.SiteAdminService
	AdminService        *service.AdminService
	CategoryService     *service.CategoryService
	BrandService        *service.BrandService
	ProductService      *service.ProductService
	BannerService       *service.BannerService
	OrderService        *service.OrderService
	PaymentService      *service.PaymentService
	CustomerAuthService *service.CustomerAuthService
	CustomerService     *service.CustomerService
	PageService         *service.PageService
	SettingService      *service.SettingService
	AnalyticsService    *service.AnalyticsService
	ContactService      *service.ContactService
	EmailService        *service.EmailService

	// 外部客户端
	StripeClient       *stripe.Client
	AnalyticsPublisher analytics.Publisher
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
		Metrics:     metrics.NewStoreMetrics(),
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
	c.CategoryRepo = repository.NewCategoryRepository(db)
	c.BrandRepo = repository.NewBrandRepository(db)
	c.ProductRepo = repository.NewProductRepository(db)
	c.BannerAdRepo = repository.NewBannerAdRepository(db)
	c.ProductBannerAdRepo = repository.NewProductBannerAdRepository(db)
	c.OrderRepo = repository.NewOrderRepository(db)
	c.PaymentRepo = repository.NewPaymentRepository(db)
	c.CustomerRepo = repository.NewCustomerRepository(db)
	c.CustomerSessionRepo = repository.NewCustomerSessionRepository(db)
	c.CustomerAddressRepo = repository.NewCustomerAddressRepository(db)
	c.WishlistRepo = repository.NewWishlistRepository(db)
	c.RewardRepo = repository.NewRewardRepository(db)
	c.NotificationRepo = repository.NewNotificationRepository(db)
	c.PageRepo = repository.NewPageRepository(db)
	c.SettingRepo = repository.NewSettingRepository(db)
	c.AnalyticsRepo = repository.NewAnalyticsRepository(db)
	c.ContactRepo = repository.NewContactRepository(db)
}

func (c *Container) initServices() {
	authzService, err := authz.NewService(models.DB)
	if err != nil {
		logger.Errorw("provider_init_authz_failed", "error", err)
		panic(err)
	}
	c.AuthzService = authzService
	if err := authz.BootstrapRoles(c.AuthzService); err != nil {
		logger.Errorw("provider_bootstrap_roles_failed", "error", err)
		panic(err)
	}

	stripeClient, err := stripe.NewClient(&c.Config.Stripe)
	if err != nil {
		logger.Warnw("provider_init_stripe_failed", "error", err)
	} else {
		c.StripeClient = stripeClient
	}

	if publisher := analytics.NewKafkaPublisher(&c.Config.Analytics); publisher != nil {
		c.AnalyticsPublisher = publisher
	}

	policy := c.Config.Security.PasswordPolicy

	c.SettingService = service.NewSettingService(c.SettingRepo)
	c.EmailService = service.NewEmailService(&c.Config.Email, c.Config.Store)
	c.AuthService = service.NewAuthService(c.AdminRepo, c.Config.JWT)
	c.SiteAdminService = service.NewSiteAdminService(c.Config.SiteAdmin)
	c.AdminService = service.NewAdminService(c.AdminRepo, c.AuthzService, policy)
	c.CategoryService = service.NewCategoryService(c.CategoryRepo)
	c.BrandService = service.NewBrandService(c.BrandRepo)
	c.ProductService = service.NewProductService(c.ProductRepo, c.CategoryRepo, c.BrandRepo)
	c.BannerService = service.NewBannerService(c.BannerAdRepo, c.ProductBannerAdRepo, c.Metrics)
	c.OrderService = service.NewOrderService(c.OrderRepo, c.ProductRepo, c.QueueClient, c.Metrics, c.Config.Store)
	c.PaymentService = service.NewPaymentService(c.PaymentRepo, c.StripeClient, c.OrderService, c.BannerService, c.Metrics)
	c.CustomerAuthService = service.NewCustomerAuthService(c.CustomerRepo, c.CustomerSessionRepo, c.QueueClient, policy)
	c.CustomerService = service.NewCustomerService(
		c.CustomerRepo,
		c.CustomerSessionRepo,
		c.CustomerAddressRepo,
		c.WishlistRepo,
		c.RewardRepo,
		c.NotificationRepo,
		c.ProductRepo,
	)
	c.PageService = service.NewPageService(c.PageRepo)
	c.AnalyticsService = service.NewAnalyticsService(c.AnalyticsRepo, c.QueueClient, c.AnalyticsPublisher, c.Metrics)
	c.ContactService = service.NewContactService(c.ContactRepo, c.QueueClient)
}
