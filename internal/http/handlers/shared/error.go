package shared

import (
	"errors"

	"github.com/linkmart/internal/http/response"
	"github.com/linkmart/internal/logger"
	"github.com/linkmart/internal/service"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// RequestLog 提供携带 request_id 的日志实例。
func RequestLog(c *gin.Context) *zap.SugaredLogger {
	if c == nil {
		return logger.S()
	}
	if requestID, ok := c.Get("request_id"); ok {
		if id, ok := requestID.(string); ok && id != "" {
			return logger.SW("request_id", id)
		}
	}
	return logger.S()
}

// RespondError 返回错误响应，并在有原始错误时记录日志。
func RespondError(c *gin.Context, code int, msg string, err error) {
	appErr := response.WrapError(code, msg, err)
	if err != nil {
		RequestLog(c).Errorw("handler_error",
			"code", appErr.Code,
			"message", appErr.Message,
			"error", err,
		)
	}
	response.Error(c, appErr.Code, appErr.Message)
}

// serviceErrorRule 业务哨兵错误到响应码的映射
type serviceErrorRule struct {
	target error
	code   int
	msg    string
}

var serviceErrorRules = []serviceErrorRule{
	{target: service.ErrNotFound, code: response.CodeNotFound, msg: "record not found"},
	{target: service.ErrSlugExists, code: response.CodeConflict, msg: "slug already exists"},
	{target: service.ErrEmailExists, code: response.CodeConflict, msg: "email already registered"},
	{target: service.ErrUsernameExists, code: response.CodeConflict, msg: "username already taken"},
	{target: service.ErrCategoryInUse, code: response.CodeConflict, msg: "category still has products or subcategories"},
	{target: service.ErrBrandInUse, code: response.CodeConflict, msg: "brand still has products"},
	{target: service.ErrParentInvalid, code: response.CodeBadRequest, msg: "parent must be a top-level category"},
	{target: service.ErrCategoryMismatch, code: response.CodeBadRequest, msg: "subcategory does not belong to the chosen category"},
	{target: service.ErrInvalidCredentials, code: response.CodeUnauthorized, msg: "invalid credentials"},
	{target: service.ErrAccountDisabled, code: response.CodeUnauthorized, msg: "account disabled"},
	{target: service.ErrInvalidPassword, code: response.CodeBadRequest, msg: "current password is incorrect"},
	{target: service.ErrWeakPassword, code: response.CodeBadRequest, msg: "password does not meet the policy"},
	{target: service.ErrTokenInvalid, code: response.CodeUnauthorized, msg: "token invalid or expired"},
	{target: service.ErrResetTokenInvalid, code: response.CodeBadRequest, msg: "reset token invalid or expired"},
	{target: service.ErrPermissionDenied, code: response.CodeForbidden, msg: "permission denied"},
	{target: service.ErrOutOfStock, code: response.CodeBadRequest, msg: "insufficient stock"},
	{target: service.ErrEmptyOrder, code: response.CodeBadRequest, msg: "order has no items"},
	{target: service.ErrAffiliateProduct, code: response.CodeBadRequest, msg: "product can only be purchased via its affiliate link"},
	{target: service.ErrOrderNotCancelable, code: response.CodeBadRequest, msg: "order can no longer be cancelled"},
	{target: service.ErrStatusInvalid, code: response.CodeBadRequest, msg: "invalid status transition"},
	{target: service.ErrPaymentFinal, code: response.CodeBadRequest, msg: "payment already finalized"},
	{target: service.ErrAlreadyWishlisted, code: response.CodeConflict, msg: "product already in wishlist"},
	{target: service.ErrInvalidEmail, code: response.CodeBadRequest, msg: "invalid email address"},
	{target: service.ErrInvalidInput, code: response.CodeBadRequest, msg: "invalid input"},
}

// RespondServiceError 将业务哨兵错误映射为业务响应码，未命中按内部错误处理。
func RespondServiceError(c *gin.Context, err error) {
	for _, rule := range serviceErrorRules {
		if errors.Is(err, rule.target) {
			RespondError(c, rule.code, rule.msg, nil)
			return
		}
	}
	RespondError(c, response.CodeInternal, "internal error", err)
}
