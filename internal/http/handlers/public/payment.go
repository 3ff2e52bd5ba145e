package public

import (
	"strings"

	"github.com/linkmart/internal/http/response"
	"github.com/linkmart/internal/models"

	"github.com/gin-gonic/gin"
)

// CreateOrderIntentRequest 创建订单支付意向请求
type CreateOrderIntentRequest struct {
	OrderNo string `json:"order_no" binding:"required"`
	Email   string `json:"email" binding:"required"`
}

// CreateOrderIntent 为待支付订单创建支付意向
func (h *Handler) CreateOrderIntent(c *gin.Context) {
	var req CreateOrderIntentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "invalid request body", err)
		return
	}

	intent, err := h.PaymentService.CreateOrderIntent(c.Request.Context(), req.OrderNo, req.Email)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.Success(c, intent)
}

// CreateBannerIntentRequest 创建横幅推广支付意向请求
type CreateBannerIntentRequest struct {
	BannerAdID   uint   `json:"banner_ad_id" binding:"required"`
	Amount       string `json:"amount" binding:"required"`
	DurationDays int    `json:"duration_days" binding:"required"`
	Email        string `json:"email"`
}

// CreateBannerIntent 为商品推广横幅创建支付意向
func (h *Handler) CreateBannerIntent(c *gin.Context) {
	var req CreateBannerIntentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "invalid request body", err)
		return
	}

	amount, err := models.NewMoneyFromString(strings.TrimSpace(req.Amount))
	if err != nil {
		respondError(c, response.CodeBadRequest, "invalid amount", err)
		return
	}

	intent, err := h.PaymentService.CreateBannerIntent(c.Request.Context(), req.BannerAdID, amount, req.DurationDays, req.Email)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.Success(c, intent)
}
