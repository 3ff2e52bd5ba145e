package router

import (
	"fmt"
	"strings"

	"github.com/linkmart/internal/cache"
	"github.com/linkmart/internal/config"
	adminhandlers "github.com/linkmart/internal/http/handlers/admin"
	publichandlers "github.com/linkmart/internal/http/handlers/public"
	"github.com/linkmart/internal/logger"
	"github.com/linkmart/internal/provider"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// SetupRouter 初始化路由
func SetupRouter(cfg *config.Config, c *provider.Container) *gin.Engine {
	log := logger.L
	if log == nil {
		log = logger.Init(cfg.Server.Mode, cfg.Log.ToLoggerOptions())
	}
	r := gin.New()

	publicHandler := publichandlers.New(c)
	adminHandler := adminhandlers.New(c)

	redisPrefix := strings.TrimSpace(cfg.Redis.Prefix)
	if redisPrefix == "" {
		redisPrefix = "lm"
	}
	redisClient := cache.Client()
	adminLoginRule := RateLimitRule{
		Prefix:        fmt.Sprintf("%s:rate:admin_login", redisPrefix),
		WindowSeconds: cfg.Security.LoginRateLimit.WindowSeconds,
		MaxRequests:   cfg.Security.LoginRateLimit.MaxAttempts,
		Message:       "too many login attempts, please try again later",
	}

	r.Use(gin.Recovery())
	r.Use(RequestIDMiddleware())
	r.Use(LoggerMiddleware(log, c.Metrics))
	r.Use(CORSMiddleware(cfg.CORS))

	// 静态文件服务（上传的图片）
	r.Static("/uploads", "./uploads")

	r.GET("/healthz", func(ctx *gin.Context) {
		ctx.JSON(200, gin.H{"status": "ok"})
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	apiV1 := r.Group("/api/v1")
	{
		// 公开接口
		public := apiV1.Group("/public")
		{
			public.GET("/config", publicHandler.GetConfig)
			public.GET("/categories", publicHandler.GetCategories)
			public.GET("/categories/:slug", publicHandler.GetCategoryBySlug)
			public.GET("/subcategories/:id", publicHandler.GetSubcategories)
			public.GET("/brands", publicHandler.GetBrands)
			public.GET("/brands/:slug", publicHandler.GetBrandBySlug)
			public.GET("/products", publicHandler.GetProducts)
			public.GET("/products/:slug", publicHandler.GetProductBySlug)
			public.GET("/banners/latest", publicHandler.GetLatestBanner)
			public.POST("/banners/:id/click", publicHandler.ClickBanner)
			public.GET("/product-banners/latest", publicHandler.GetLatestProductBanner)
			public.POST("/product-banners/:id/click", publicHandler.ClickProductBanner)
			public.GET("/pages/:slug", publicHandler.GetPage)
			public.POST("/contact", publicHandler.SubmitContact)
		}

		// 分析事件上报，登录态可选
		apiV1.POST("/events",
			OptionalCustomerAuthMiddleware(c.CustomerAuthService),
			publicHandler.TrackEvent,
		)

		// 下单与游客订单查询
		apiV1.POST("/orders",
			OptionalCustomerAuthMiddleware(c.CustomerAuthService),
			publicHandler.CreateOrder,
		)
		apiV1.GET("/orders/:order_no", publicHandler.LookupOrder)

		// 支付
		apiV1.POST("/payments/order-intent", publicHandler.CreateOrderIntent)
		apiV1.POST("/payments/banner-intent", publicHandler.CreateBannerIntent)
		apiV1.POST("/payments/webhook/stripe", publicHandler.StripeWebhook)

		// 顾客认证
		auth := apiV1.Group("/auth")
		{
			auth.POST("/register", publicHandler.Register)
			auth.POST("/login", publicHandler.Login)
			auth.POST("/logout", publicHandler.Logout)
			auth.POST("/forgot-password", publicHandler.ForgotPassword)
			auth.POST("/verify-reset-token", publicHandler.VerifyResetToken)
			auth.POST("/reset-password", publicHandler.ResetPassword)
		}

		// 顾客接口（需鉴权）
		me := apiV1.Group("/me")
		me.Use(CustomerAuthMiddleware(c.CustomerAuthService))
		{
			me.GET("", publicHandler.Me)
			me.PUT("/profile", publicHandler.UpdateProfile)
			me.PUT("/password", publicHandler.ChangePassword)
			me.GET("/addresses", publicHandler.GetAddresses)
			me.POST("/addresses", publicHandler.CreateAddress)
			me.PUT("/addresses/:id", publicHandler.UpdateAddress)
			me.DELETE("/addresses/:id", publicHandler.DeleteAddress)
			me.GET("/wishlist", publicHandler.GetWishlist)
			me.POST("/wishlist", publicHandler.AddToWishlist)
			me.DELETE("/wishlist/:product_id", publicHandler.RemoveFromWishlist)
			me.GET("/rewards", publicHandler.GetRewards)
			me.GET("/notifications", publicHandler.GetNotifications)
			me.POST("/notifications/:id/read", publicHandler.MarkNotificationRead)
			me.POST("/notifications/read-all", publicHandler.MarkAllNotificationsRead)
			me.GET("/orders", publicHandler.GetMyOrders)
			me.GET("/orders/:order_no", publicHandler.GetMyOrder)
		}

		// 管理员接口
		admin := apiV1.Group("/admin")
		{
			admin.POST("/login",
				RateLimitMiddleware(redisClient, adminLoginRule, KeyByIPAndJSONField("username")),
				adminHandler.Login,
			)

			authed := admin.Group("")
			authed.Use(AdminAuthMiddleware(c.SiteAdminService, c.AuthService, c.AuthzService))
			authed.Use(AdminPermissionMiddleware())
			{
				authed.GET("/me", adminHandler.Me)
				authed.PUT("/password", adminHandler.ChangePassword)

				authed.GET("/categories", adminHandler.GetCategories)
				authed.POST("/categories", adminHandler.CreateCategory)
				authed.PUT("/categories/:id", adminHandler.UpdateCategory)
				authed.DELETE("/categories/:id", adminHandler.DeleteCategory)

				authed.GET("/brands", adminHandler.GetBrands)
				authed.POST("/brands", adminHandler.CreateBrand)
				authed.PUT("/brands/:id", adminHandler.UpdateBrand)
				authed.DELETE("/brands/:id", adminHandler.DeleteBrand)

				authed.GET("/products", adminHandler.GetProducts)
				authed.POST("/products", adminHandler.CreateProduct)
				authed.GET("/products/:id", adminHandler.GetProduct)
				authed.PUT("/products/:id", adminHandler.UpdateProduct)
				authed.DELETE("/products/:id", adminHandler.DeleteProduct)
				authed.POST("/products/:id/reset-sales", adminHandler.ResetProductSales)
				authed.GET("/products/:id/seo", adminHandler.GetProductSEO)
				authed.PUT("/products/:id/seo", adminHandler.UpsertProductSEO)

				authed.GET("/banners", adminHandler.GetBanners)
				authed.POST("/banners", adminHandler.CreateBanner)
				authed.PUT("/banners/:id", adminHandler.UpdateBanner)
				authed.DELETE("/banners/:id", adminHandler.DeleteBanner)

				authed.GET("/product-banners", adminHandler.GetProductBanners)
				authed.POST("/product-banners", adminHandler.CreateProductBanner)
				authed.PUT("/product-banners/:id", adminHandler.UpdateProductBanner)
				authed.DELETE("/product-banners/:id", adminHandler.DeleteProductBanner)
				authed.POST("/product-banners/:id/mark-paid", adminHandler.MarkProductBannerPaid)

				authed.GET("/orders", adminHandler.GetOrders)
				authed.GET("/orders/:id", adminHandler.GetOrder)
				authed.PUT("/orders/:id/status", adminHandler.UpdateOrderStatus)
				authed.POST("/orders/:id/cancel", adminHandler.CancelOrder)
				authed.POST("/orders/:id/mark-paid", adminHandler.MarkOrderPaid)
				authed.POST("/reset-sales", adminHandler.ResetSalesData)

				authed.GET("/customers", adminHandler.GetCustomers)
				authed.GET("/customers/:id", adminHandler.GetCustomer)
				authed.PUT("/customers/:id/active", adminHandler.SetCustomerActive)
				authed.POST("/customers/:id/rewards", adminHandler.AdjustCustomerRewards)
				authed.POST("/customers/:id/notify", adminHandler.NotifyCustomer)

				authed.GET("/payments", adminHandler.GetPayments)
				authed.GET("/payments/:id", adminHandler.GetPayment)

				authed.GET("/settings", adminHandler.GetSettings)
				authed.PUT("/settings", adminHandler.UpsertSetting)
				authed.POST("/settings/batch", adminHandler.UpsertSettings)
				authed.DELETE("/settings/:key", adminHandler.DeleteSetting)

				authed.GET("/pages", adminHandler.GetPages)
				authed.POST("/pages", adminHandler.CreatePage)
				authed.GET("/pages/:id", adminHandler.GetPage)
				authed.PUT("/pages/:id", adminHandler.UpdatePage)
				authed.DELETE("/pages/:id", adminHandler.DeletePage)

				authed.GET("/contact-messages", adminHandler.GetContactMessages)
				authed.GET("/contact-messages/:id", adminHandler.GetContactMessage)
				authed.POST("/contact-messages/:id/reply", adminHandler.MarkContactReplied)
				authed.DELETE("/contact-messages/:id", adminHandler.DeleteContactMessage)

				authed.GET("/admins", adminHandler.GetAdmins)
				authed.POST("/admins", adminHandler.CreateAdmin)
				authed.PUT("/admins/:id", adminHandler.UpdateAdmin)
				authed.DELETE("/admins/:id", adminHandler.DeleteAdmin)
				authed.POST("/admins/:id/reset-password", adminHandler.ResetAdminPassword)

				authed.GET("/roles", adminHandler.GetRoles)
				authed.DELETE("/roles/:role", adminHandler.DeleteRole)
				authed.GET("/roles/:role/policies", adminHandler.GetRolePolicies)
				authed.POST("/roles/:role/policies", adminHandler.GrantRolePolicy)
				authed.POST("/roles/:role/policies/revoke", adminHandler.RevokeRolePolicy)

				authed.GET("/analytics/events", adminHandler.GetAnalyticsEvents)
				authed.GET("/analytics/summary", adminHandler.GetAnalyticsSummary)

				authed.POST("/smtp/test", adminHandler.TestSMTP)
			}
		}
	}

	return r
}
