package public

import (
	"errors"
	"io"
	"time"

	"github.com/linkmart/internal/http/response"
	"github.com/linkmart/internal/payment/stripe"

	"github.com/gin-gonic/gin"
)

// StripeWebhook Stripe webhook 回调
// 验签失败返回 400 促使 Stripe 重试告警，业务层失败返回 500 触发重投。
func (h *Handler) StripeWebhook(c *gin.Context) {
	log := requestLog(c)

	body, err := io.ReadAll(c.Request.Body)
	if err != nil {
		log.Warnw("stripe_webhook_body_read_failed", "error", err)
		respondError(c, response.CodeBadRequest, "invalid request body", err)
		return
	}
	sigHeader := c.GetHeader("Stripe-Signature")

	log.Infow("stripe_webhook_received",
		"client_ip", c.ClientIP(),
		"body_size", len(body),
	)

	if err := h.PaymentService.HandleWebhook(c.Request.Context(), sigHeader, body, time.Now()); err != nil {
		if errors.Is(err, stripe.ErrSignatureInvalid) {
			log.Warnw("stripe_webhook_signature_invalid", "client_ip", c.ClientIP())
			respondError(c, response.CodeBadRequest, "invalid signature", nil)
			return
		}
		log.Errorw("stripe_webhook_handle_failed", "error", err)
		respondError(c, response.CodeInternal, "webhook processing failed", err)
		return
	}

	response.Success(c, gin.H{"received": true})
}
