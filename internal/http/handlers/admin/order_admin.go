package admin

import (
	"strings"
	"time"

	"github.com/linkmart/internal/http/response"
	"github.com/linkmart/internal/repository"
	"github.com/linkmart/internal/service"

	"github.com/gin-gonic/gin"
)

// GetOrders 订单列表
func (h *Handler) GetOrders(c *gin.Context) {
	page, pageSize := parsePagination(c)

	filter := repository.OrderListFilter{
		Page:          page,
		PageSize:      pageSize,
		Status:        strings.TrimSpace(c.Query("status")),
		PaymentStatus: strings.TrimSpace(c.Query("payment_status")),
		OrderNo:       strings.TrimSpace(c.Query("order_no")),
		Email:         strings.TrimSpace(c.Query("email")),
		Search:        strings.TrimSpace(c.Query("search")),
	}
	if raw := strings.TrimSpace(c.Query("customer_id")); raw != "" {
		filter.CustomerID = parseQueryUint(raw)
	}

	orders, total, err := h.OrderService.List(filter)
	if err != nil {
		respondError(c, response.CodeInternal, "failed to fetch orders", err)
		return
	}
	response.SuccessWithPage(c, orders, response.BuildPagination(page, pageSize, total))
}

// GetOrder 订单详情
func (h *Handler) GetOrder(c *gin.Context) {
	id, ok := parseUintParam(c, "id")
	if !ok {
		return
	}
	order, err := h.OrderService.Get(id)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.Success(c, order)
}

// OrderStatusRequest 订单状态更新请求
type OrderStatusRequest struct {
	Status         string `json:"status" binding:"required"`
	TrackingNumber string `json:"tracking_number"`
	Carrier        string `json:"carrier"`
}

// UpdateOrderStatus 更新订单状态与物流信息
func (h *Handler) UpdateOrderStatus(c *gin.Context) {
	id, ok := parseUintParam(c, "id")
	if !ok {
		return
	}
	var req OrderStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "invalid request body", err)
		return
	}
	order, err := h.OrderService.UpdateStatus(id, service.OrderStatusInput{
		Status:         req.Status,
		TrackingNumber: req.TrackingNumber,
		Carrier:        req.Carrier,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.Success(c, order)
}

// CancelOrder 取消订单并回补库存
func (h *Handler) CancelOrder(c *gin.Context) {
	id, ok := parseUintParam(c, "id")
	if !ok {
		return
	}
	order, err := h.OrderService.Cancel(id)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.Success(c, order)
}

// ResetSalesData 清空全部销售数据，维护用途
func (h *Handler) ResetSalesData(c *gin.Context) {
	removed, err := h.OrderService.ResetSalesData()
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.Success(c, gin.H{"orders_removed": removed})
}

// MarkOrderPaid 人工标记订单已支付（线下收款等场景）
func (h *Handler) MarkOrderPaid(c *gin.Context) {
	id, ok := parseUintParam(c, "id")
	if !ok {
		return
	}
	order, err := h.OrderService.MarkPaid(id, time.Now())
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.Success(c, order)
}
