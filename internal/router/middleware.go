package router

import (
	"strconv"
	"strings"
	"time"

	"github.com/linkmart/internal/authz"
	"github.com/linkmart/internal/config"
	"github.com/linkmart/internal/http/response"
	"github.com/linkmart/internal/logger"
	"github.com/linkmart/internal/metrics"
	"github.com/linkmart/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

const requestIDKey = "request_id"
const requestIDHeader = "X-Request-ID"
const principalContextKey = "admin_principal"

// CORSMiddleware 跨域中间件
func CORSMiddleware(cfg config.CORSConfig) gin.HandlerFunc {
	allowedOrigins := cfg.AllowedOrigins
	if len(allowedOrigins) == 0 {
		allowedOrigins = []string{"*"}
	}
	allowedMethods := cfg.AllowedMethods
	if len(allowedMethods) == 0 {
		allowedMethods = []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"}
	}
	allowedHeaders := cfg.AllowedHeaders
	if len(allowedHeaders) == 0 {
		allowedHeaders = []string{
			"Content-Type",
			"Content-Length",
			"Accept-Encoding",
			"Authorization",
			"Cache-Control",
			"X-Requested-With",
		}
	}
	methodsHeader := strings.Join(allowedMethods, ", ")
	headersHeader := strings.Join(allowedHeaders, ", ")

	return func(c *gin.Context) {
		origin := c.GetHeader("Origin")
		allowedOrigin := resolveAllowedOrigin(origin, allowedOrigins, cfg.AllowCredentials)
		if allowedOrigin != "" {
			c.Writer.Header().Set("Access-Control-Allow-Origin", allowedOrigin)
			if allowedOrigin != "*" {
				c.Writer.Header().Add("Vary", "Origin")
			}
		}
		if cfg.AllowCredentials {
			c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
		}
		c.Writer.Header().Set("Access-Control-Allow-Headers", headersHeader)
		c.Writer.Header().Set("Access-Control-Allow-Methods", methodsHeader)
		if cfg.MaxAge > 0 {
			c.Writer.Header().Set("Access-Control-Max-Age", strconv.Itoa(cfg.MaxAge))
		}

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	}
}

func resolveAllowedOrigin(origin string, allowedOrigins []string, allowCredentials bool) string {
	if len(allowedOrigins) == 0 {
		return ""
	}
	for _, allowed := range allowedOrigins {
		if allowed == "*" {
			if allowCredentials && origin != "" {
				return origin
			}
			return "*"
		}
	}
	if origin == "" {
		return ""
	}
	for _, allowed := range allowedOrigins {
		if strings.EqualFold(allowed, origin) {
			return origin
		}
	}
	return ""
}

// RequestIDMiddleware 请求 ID 中间件
func RequestIDMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := strings.TrimSpace(c.GetHeader(requestIDHeader))
		if requestID == "" {
			requestID = uuid.NewString()
		}
		c.Set(requestIDKey, requestID)
		c.Writer.Header().Set(requestIDHeader, requestID)
		c.Next()
	}
}

// LoggerMiddleware 结构化请求日志中间件，同时上报 HTTP 指标
func LoggerMiddleware(log *zap.Logger, m *metrics.StoreMetrics) gin.HandlerFunc {
	if log == nil {
		log = zap.L()
	}
	sugar := log.Sugar()
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		elapsed := time.Since(start)
		path := c.FullPath()
		if path == "" {
			path = c.Request.URL.Path
		}
		m.RecordHTTPRequest(c.Request.Method, path, strconv.Itoa(c.Writer.Status()), elapsed.Seconds())

		entry := sugar.With(
			"request_id", getRequestID(c),
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", c.Writer.Status(),
			"latency_ms", elapsed.Milliseconds(),
			"client_ip", c.ClientIP(),
		)
		if len(c.Errors) > 0 {
			entry.Errorw("request", "errors", c.Errors.String())
			return
		}
		entry.Infow("request")
	}
}

func getRequestID(c *gin.Context) string {
	value, ok := c.Get(requestIDKey)
	if !ok {
		return ""
	}
	if requestID, ok := value.(string); ok {
		return requestID
	}
	return ""
}

func abortUnauthorized(c *gin.Context, msg string) {
	response.Unauthorized(c, msg)
	c.Abort()
}

// AdminAuthMiddleware 管理端统一鉴权中间件
// 先按站点管理员票据校验，未命中再按数据库管理员 JWT 校验，
// 两种来源都会在上下文写入统一的管理员主体。
func AdminAuthMiddleware(
	siteAdmin *service.SiteAdminService,
	authService *service.AuthService,
	authzService *authz.Service,
) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			abortUnauthorized(c, "authorization header missing")
			return
		}
		parts := strings.SplitN(authHeader, " ", 2)
		if !(len(parts) == 2 && parts[0] == "Bearer") {
			abortUnauthorized(c, "authorization header invalid")
			return
		}
		token := strings.TrimSpace(parts[1])

		if siteAdmin != nil && siteAdmin.Enabled() {
			if username, err := siteAdmin.Verify(token); err == nil {
				c.Set(principalContextKey, service.AdminPrincipal(&service.SiteAdminPrincipal{Username: username}))
				c.Next()
				return
			}
		}

		if authService == nil {
			abortUnauthorized(c, "token invalid")
			return
		}
		admin, err := authService.VerifyToken(c.Request.Context(), token)
		if err != nil || admin == nil {
			abortUnauthorized(c, "token invalid")
			return
		}

		c.Set("admin_id", admin.ID)
		c.Set("username", admin.Username)
		c.Set(principalContextKey, service.AdminPrincipal(&service.DBAdminPrincipal{
			Admin: admin,
			Authz: authzService,
		}))
		c.Next()
	}
}

// AdminPermissionMiddleware 管理端权限中间件
// 以路由模板为资源、HTTP 方法为动作，交给统一主体判定。
func AdminPermissionMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		value, exists := c.Get(principalContextKey)
		if !exists {
			abortUnauthorized(c, "unauthorized")
			return
		}
		principal, ok := value.(service.AdminPrincipal)
		if !ok || principal == nil {
			abortUnauthorized(c, "unauthorized")
			return
		}
		if principal.IsSuperuser() {
			c.Next()
			return
		}

		resource := c.FullPath()
		if strings.TrimSpace(resource) == "" {
			resource = c.Request.URL.Path
		}
		allowed, err := principal.HasPermission(resource, c.Request.Method)
		if err != nil {
			logger.Errorw("admin_permission_enforce_failed",
				"subject", principal.Subject(),
				"method", c.Request.Method,
				"path", c.Request.URL.Path,
				"error", err,
			)
			abortUnauthorized(c, "unauthorized")
			return
		}
		if !allowed {
			logger.Warnw("admin_permission_denied",
				"subject", principal.Subject(),
				"method", c.Request.Method,
				"path", c.Request.URL.Path,
				"resource", authz.NormalizeObject(resource),
			)
			response.Forbidden(c, "forbidden")
			c.Abort()
			return
		}

		c.Next()
	}
}

// CustomerAuthMiddleware 顾客会话鉴权中间件
func CustomerAuthMiddleware(authService *service.CustomerAuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		if authService == nil {
			abortUnauthorized(c, "token invalid")
			return
		}
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			abortUnauthorized(c, "authorization header missing")
			return
		}
		parts := strings.SplitN(authHeader, " ", 2)
		if !(len(parts) == 2 && parts[0] == "Bearer") {
			abortUnauthorized(c, "authorization header invalid")
			return
		}

		customer, err := authService.Authenticate(strings.TrimSpace(parts[1]))
		if err != nil || customer == nil {
			abortUnauthorized(c, "token invalid")
			return
		}

		c.Set("customer_id", customer.ID)
		c.Set("customer_email", customer.Email)
		c.Next()
	}
}

// OptionalCustomerAuthMiddleware 可选顾客鉴权
// 有合法令牌时注入 customer_id，没有令牌按游客放行。
func OptionalCustomerAuthMiddleware(authService *service.CustomerAuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		if authService == nil {
			c.Next()
			return
		}
		authHeader := c.GetHeader("Authorization")
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) == 2 && parts[0] == "Bearer" {
			if customer, err := authService.Authenticate(strings.TrimSpace(parts[1])); err == nil && customer != nil {
				c.Set("customer_id", customer.ID)
				c.Set("customer_email", customer.Email)
			}
		}
		c.Next()
	}
}
