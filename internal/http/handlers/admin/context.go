package admin

import (
	"strconv"

	handlershared "github.com/linkmart/internal/http/handlers/shared"
	"github.com/linkmart/internal/http/response"
	"github.com/linkmart/internal/service"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// PrincipalContextKey 鉴权中间件写入管理员主体的上下文键
const PrincipalContextKey = "admin_principal"

func getPrincipal(c *gin.Context) (service.AdminPrincipal, bool) {
	value, exists := c.Get(PrincipalContextKey)
	if !exists {
		respondError(c, response.CodeUnauthorized, "unauthorized", nil)
		return nil, false
	}
	principal, ok := value.(service.AdminPrincipal)
	if !ok || principal == nil {
		respondError(c, response.CodeInternal, "invalid principal", nil)
		return nil, false
	}
	return principal, true
}

func requestLog(c *gin.Context) *zap.SugaredLogger {
	return handlershared.RequestLog(c)
}

func respondError(c *gin.Context, code int, msg string, err error) {
	handlershared.RespondError(c, code, msg, err)
}

func respondServiceError(c *gin.Context, err error) {
	handlershared.RespondServiceError(c, err)
}

func parseUintParam(c *gin.Context, name string) (uint, bool) {
	return handlershared.ParseUintParam(c, name)
}

func parsePagination(c *gin.Context) (int, int) {
	return handlershared.ParsePagination(c)
}

func parseQueryUint(raw string) uint {
	v, err := strconv.ParseUint(raw, 10, 64)
	if err != nil {
		return 0
	}
	return uint(v)
}

func parseQueryBoolPtr(c *gin.Context, name string) *bool {
	raw := c.Query(name)
	if raw == "" {
		return nil
	}
	v, err := strconv.ParseBool(raw)
	if err != nil {
		return nil
	}
	return &v
}
