package admin

import (
	"github.com/linkmart/internal/http/response"

	"github.com/gin-gonic/gin"
)

// SMTPTestRequest SMTP 测试请求
type SMTPTestRequest struct {
	To      string `json:"to" binding:"required"`
	Subject string `json:"subject"`
	Body    string `json:"body"`
}

// TestSMTP 发送一封测试邮件验证 SMTP 配置
func (h *Handler) TestSMTP(c *gin.Context) {
	var req SMTPTestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "invalid request body", err)
		return
	}

	subject := req.Subject
	if subject == "" {
		subject = "SMTP test"
	}
	body := req.Body
	if body == "" {
		body = "This is a test email. Your SMTP configuration works."
	}

	if err := h.EmailService.SendCustomEmail(req.To, subject, body); err != nil {
		respondServiceError(c, err)
		return
	}
	response.Success(c, gin.H{"sent": true})
}
