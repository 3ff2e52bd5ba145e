package public

import (
	"github.com/linkmart/internal/http/response"
	"github.com/linkmart/internal/service"

	"github.com/gin-gonic/gin"
)

// TrackEventRequest 前台分析事件上报请求
type TrackEventRequest struct {
	EventType string                 `json:"event_type" binding:"required"`
	PagePath  string                 `json:"page_path"`
	Referrer  string                 `json:"referrer"`
	ProductID *uint                  `json:"product_id"`
	SessionID string                 `json:"session_id"`
	Metadata  map[string]interface{} `json:"metadata"`
}

// TrackEvent 上报分析事件
// IP 与 UserAgent 以服务端观察值为准，忽略请求体中的声明。
func (h *Handler) TrackEvent(c *gin.Context) {
	var req TrackEventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "invalid request body", err)
		return
	}

	input := service.TrackInput{
		EventType: req.EventType,
		PagePath:  req.PagePath,
		Referrer:  req.Referrer,
		ProductID: req.ProductID,
		SessionID: req.SessionID,
		IP:        c.ClientIP(),
		UserAgent: c.Request.UserAgent(),
		Metadata:  req.Metadata,
	}
	if raw, exists := c.Get("customer_id"); exists {
		if customerID, ok := raw.(uint); ok && customerID > 0 {
			input.CustomerID = &customerID
		}
	}

	if err := h.AnalyticsService.Track(input); err != nil {
		respondServiceError(c, err)
		return
	}
	response.Success(c, gin.H{"tracked": true})
}
