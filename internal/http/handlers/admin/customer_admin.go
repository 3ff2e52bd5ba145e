package admin

import (
	"strings"

	"github.com/linkmart/internal/http/response"
	"github.com/linkmart/internal/repository"

	"github.com/gin-gonic/gin"
)

// GetCustomers 顾客列表
func (h *Handler) GetCustomers(c *gin.Context) {
	page, pageSize := parsePagination(c)

	customers, total, err := h.CustomerService.List(repository.CustomerListFilter{
		Page:     page,
		PageSize: pageSize,
		Keyword:  strings.TrimSpace(c.Query("keyword")),
	})
	if err != nil {
		respondError(c, response.CodeInternal, "failed to fetch customers", err)
		return
	}
	response.SuccessWithPage(c, customers, response.BuildPagination(page, pageSize, total))
}

// GetCustomer 顾客详情
func (h *Handler) GetCustomer(c *gin.Context) {
	id, ok := parseUintParam(c, "id")
	if !ok {
		return
	}
	customer, err := h.CustomerService.Get(id)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.Success(c, customer)
}

// SetCustomerActiveRequest 启停顾客账号请求
type SetCustomerActiveRequest struct {
	IsActive *bool `json:"is_active" binding:"required"`
}

// SetCustomerActive 启用或停用顾客账号，停用时吊销其全部会话
func (h *Handler) SetCustomerActive(c *gin.Context) {
	id, ok := parseUintParam(c, "id")
	if !ok {
		return
	}
	var req SetCustomerActiveRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.IsActive == nil {
		respondError(c, response.CodeBadRequest, "invalid request body", err)
		return
	}
	customer, err := h.CustomerService.SetActive(id, *req.IsActive)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.Success(c, customer)
}

// AdjustRewardsRequest 积分调整请求
type AdjustRewardsRequest struct {
	Points int    `json:"points" binding:"required"`
	Reason string `json:"reason" binding:"required"`
}

// AdjustCustomerRewards 人工调整顾客积分，负值不可透支余额
func (h *Handler) AdjustCustomerRewards(c *gin.Context) {
	id, ok := parseUintParam(c, "id")
	if !ok {
		return
	}
	var req AdjustRewardsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "invalid request body", err)
		return
	}
	entry, err := h.CustomerService.AdjustRewards(id, req.Points, req.Reason)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.Success(c, entry)
}

// NotifyCustomerRequest 站内通知请求
type NotifyCustomerRequest struct {
	Title   string `json:"title" binding:"required"`
	Body    string `json:"body"`
	Kind    string `json:"kind"`
	LinkURL string `json:"link_url"`
}

// NotifyCustomer 给顾客发送站内通知
func (h *Handler) NotifyCustomer(c *gin.Context) {
	id, ok := parseUintParam(c, "id")
	if !ok {
		return
	}
	var req NotifyCustomerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "invalid request body", err)
		return
	}
	notification, err := h.CustomerService.Notify(id, req.Title, req.Body, req.Kind, req.LinkURL)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.Success(c, notification)
}
