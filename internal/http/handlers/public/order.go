package public

import (
	"strings"

	"github.com/linkmart/internal/http/response"
	"github.com/linkmart/internal/repository"
	"github.com/linkmart/internal/service"

	"github.com/gin-gonic/gin"
)

// OrderItemRequest 下单商品项
type OrderItemRequest struct {
	ProductID uint `json:"product_id" binding:"required"`
	Quantity  int  `json:"quantity" binding:"required"`
}

// CreateOrderRequest 下单请求
type CreateOrderRequest struct {
	CustomerEmail   string             `json:"customer_email" binding:"required"`
	CustomerName    string             `json:"customer_name" binding:"required"`
	CustomerPhone   string             `json:"customer_phone"`
	ShippingAddress string             `json:"shipping_address" binding:"required"`
	ShippingCity    string             `json:"shipping_city"`
	ShippingState   string             `json:"shipping_state"`
	ShippingZip     string             `json:"shipping_zip"`
	ShippingCountry string             `json:"shipping_country"`
	Notes           string             `json:"notes"`
	Items           []OrderItemRequest `json:"items" binding:"required"`
}

// CreateOrder 创建订单
// 已登录顾客的订单会绑定到其账户，游客订单仅凭订单号与邮箱查询。
func (h *Handler) CreateOrder(c *gin.Context) {
	var req CreateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "invalid request body", err)
		return
	}

	input := service.OrderInput{
		CustomerEmail:   req.CustomerEmail,
		CustomerName:    req.CustomerName,
		CustomerPhone:   req.CustomerPhone,
		ShippingAddress: req.ShippingAddress,
		ShippingCity:    req.ShippingCity,
		ShippingState:   req.ShippingState,
		ShippingZip:     req.ShippingZip,
		ShippingCountry: req.ShippingCountry,
		Notes:           req.Notes,
	}
	for _, item := range req.Items {
		input.Items = append(input.Items, service.OrderItemInput{
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
		})
	}

	// 可选登录态：中间件注入 customer_id 时绑定订单归属
	if raw, exists := c.Get("customer_id"); exists {
		if customerID, ok := raw.(uint); ok && customerID > 0 {
			input.CustomerID = &customerID
		}
	}

	order, err := h.OrderService.Create(input)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	response.Success(c, order)
}

// LookupOrder 游客凭订单号与下单邮箱查询订单
func (h *Handler) LookupOrder(c *gin.Context) {
	orderNo := strings.TrimSpace(c.Param("order_no"))
	email := strings.TrimSpace(c.Query("email"))
	if orderNo == "" || email == "" {
		respondError(c, response.CodeBadRequest, "order number and email are required", nil)
		return
	}

	order, err := h.OrderService.LookupForGuest(orderNo, email)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.Success(c, order)
}

// GetMyOrders 获取当前顾客的订单列表
func (h *Handler) GetMyOrders(c *gin.Context) {
	customerID, ok := getCustomerID(c)
	if !ok {
		return
	}
	page, pageSize := parsePagination(c)

	orders, total, err := h.OrderService.List(repository.OrderListFilter{
		Page:       page,
		PageSize:   pageSize,
		CustomerID: customerID,
		Status:     strings.TrimSpace(c.Query("status")),
	})
	if err != nil {
		respondError(c, response.CodeInternal, "failed to fetch orders", err)
		return
	}
	response.SuccessWithPage(c, orders, response.BuildPagination(page, pageSize, total))
}

// GetMyOrder 当前顾客查看自己的某个订单
func (h *Handler) GetMyOrder(c *gin.Context) {
	customerID, ok := getCustomerID(c)
	if !ok {
		return
	}
	orderNo := strings.TrimSpace(c.Param("order_no"))
	order, err := h.OrderService.LookupForCustomer(orderNo, customerID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.Success(c, order)
}
