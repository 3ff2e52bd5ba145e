package public

import (
	"github.com/linkmart/internal/http/response"
	"github.com/linkmart/internal/service"

	"github.com/gin-gonic/gin"
)

// UpdateProfileRequest 更新资料请求
type UpdateProfileRequest struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Phone     string `json:"phone"`
}

// UpdateProfile 更新当前顾客资料
func (h *Handler) UpdateProfile(c *gin.Context) {
	customerID, ok := getCustomerID(c)
	if !ok {
		return
	}
	var req UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "invalid request body", err)
		return
	}

	customer, err := h.CustomerService.UpdateProfile(customerID, service.ProfileInput{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Phone:     req.Phone,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.Success(c, customer)
}

// AddressRequest 收货地址请求
type AddressRequest struct {
	Label     string `json:"label"`
	Recipient string `json:"recipient" binding:"required"`
	Phone     string `json:"phone"`
	Address   string `json:"address" binding:"required"`
	City      string `json:"city"`
	State     string `json:"state"`
	Zip       string `json:"zip"`
	Country   string `json:"country"`
	IsDefault bool   `json:"is_default"`
}

func (r AddressRequest) toInput() service.AddressInput {
	return service.AddressInput{
		Label:     r.Label,
		Recipient: r.Recipient,
		Phone:     r.Phone,
		Address:   r.Address,
		City:      r.City,
		State:     r.State,
		Zip:       r.Zip,
		Country:   r.Country,
		IsDefault: r.IsDefault,
	}
}

// GetAddresses 获取当前顾客的收货地址
func (h *Handler) GetAddresses(c *gin.Context) {
	customerID, ok := getCustomerID(c)
	if !ok {
		return
	}
	addresses, err := h.CustomerService.ListAddresses(customerID)
	if err != nil {
		respondError(c, response.CodeInternal, "failed to fetch addresses", err)
		return
	}
	response.Success(c, addresses)
}

// CreateAddress 新增收货地址
func (h *Handler) CreateAddress(c *gin.Context) {
	customerID, ok := getCustomerID(c)
	if !ok {
		return
	}
	var req AddressRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "invalid request body", err)
		return
	}
	address, err := h.CustomerService.CreateAddress(customerID, req.toInput())
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.Success(c, address)
}

// UpdateAddress 更新收货地址
func (h *Handler) UpdateAddress(c *gin.Context) {
	customerID, ok := getCustomerID(c)
	if !ok {
		return
	}
	addressID, ok := parseUintParam(c, "id")
	if !ok {
		return
	}
	var req AddressRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "invalid request body", err)
		return
	}
	address, err := h.CustomerService.UpdateAddress(customerID, addressID, req.toInput())
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.Success(c, address)
}

// DeleteAddress 删除收货地址
func (h *Handler) DeleteAddress(c *gin.Context) {
	customerID, ok := getCustomerID(c)
	if !ok {
		return
	}
	addressID, ok := parseUintParam(c, "id")
	if !ok {
		return
	}
	if err := h.CustomerService.DeleteAddress(customerID, addressID); err != nil {
		respondServiceError(c, err)
		return
	}
	response.Success(c, gin.H{"deleted": true})
}

// GetWishlist 获取心愿单
func (h *Handler) GetWishlist(c *gin.Context) {
	customerID, ok := getCustomerID(c)
	if !ok {
		return
	}
	items, err := h.CustomerService.ListWishlist(customerID)
	if err != nil {
		respondError(c, response.CodeInternal, "failed to fetch wishlist", err)
		return
	}
	response.Success(c, items)
}

// AddWishlistRequest 加入心愿单请求
type AddWishlistRequest struct {
	ProductID uint `json:"product_id" binding:"required"`
}

// AddToWishlist 加入心愿单
func (h *Handler) AddToWishlist(c *gin.Context) {
	customerID, ok := getCustomerID(c)
	if !ok {
		return
	}
	var req AddWishlistRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "invalid request body", err)
		return
	}
	item, err := h.CustomerService.AddToWishlist(customerID, req.ProductID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.Success(c, item)
}

// RemoveFromWishlist 移出心愿单
func (h *Handler) RemoveFromWishlist(c *gin.Context) {
	customerID, ok := getCustomerID(c)
	if !ok {
		return
	}
	productID, ok := parseUintParam(c, "product_id")
	if !ok {
		return
	}
	if err := h.CustomerService.RemoveFromWishlist(customerID, productID); err != nil {
		respondServiceError(c, err)
		return
	}
	response.Success(c, gin.H{"removed": true})
}

// GetRewards 获取积分流水与余额
func (h *Handler) GetRewards(c *gin.Context) {
	customerID, ok := getCustomerID(c)
	if !ok {
		return
	}
	page, pageSize := parsePagination(c)

	entries, total, balance, err := h.CustomerService.ListRewards(customerID, page, pageSize)
	if err != nil {
		respondError(c, response.CodeInternal, "failed to fetch rewards", err)
		return
	}
	response.Success(c, gin.H{
		"balance":    balance,
		"entries":    entries,
		"pagination": response.BuildPagination(page, pageSize, total),
	})
}

// GetNotifications 获取站内通知
func (h *Handler) GetNotifications(c *gin.Context) {
	customerID, ok := getCustomerID(c)
	if !ok {
		return
	}
	page, pageSize := parsePagination(c)

	notifications, total, err := h.CustomerService.ListNotifications(customerID, page, pageSize)
	if err != nil {
		respondError(c, response.CodeInternal, "failed to fetch notifications", err)
		return
	}
	unread, err := h.CustomerService.UnreadNotificationCount(customerID)
	if err != nil {
		respondError(c, response.CodeInternal, "failed to fetch notifications", err)
		return
	}
	response.Success(c, gin.H{
		"notifications": notifications,
		"unread_count":  unread,
		"pagination":    response.BuildPagination(page, pageSize, total),
	})
}

// MarkNotificationRead 标记单条通知已读
func (h *Handler) MarkNotificationRead(c *gin.Context) {
	customerID, ok := getCustomerID(c)
	if !ok {
		return
	}
	id, ok := parseUintParam(c, "id")
	if !ok {
		return
	}
	if err := h.CustomerService.MarkNotificationRead(customerID, id); err != nil {
		respondServiceError(c, err)
		return
	}
	response.Success(c, gin.H{"read": true})
}

// MarkAllNotificationsRead 标记全部通知已读
func (h *Handler) MarkAllNotificationsRead(c *gin.Context) {
	customerID, ok := getCustomerID(c)
	if !ok {
		return
	}
	if err := h.CustomerService.MarkAllNotificationsRead(customerID); err != nil {
		respondServiceError(c, err)
		return
	}
	response.Success(c, gin.H{"read": true})
}
