package response

// 业务码与 HTTP 状态码同值，0 表示成功
const (
	CodeOK              = 0
	CodeBadRequest      = 400 // 参数校验失败
	CodeUnauthorized    = 401 // 未登录或令牌失效
	CodeForbidden       = 403 // 身份有效但权限不足
	CodeNotFound        = 404
	CodeConflict        = 409 // 唯一键冲突或删除被依赖阻止
	CodeTooManyRequests = 429
	CodeInternal        = 500 // 含上游支付/邮件等第三方失败
)
