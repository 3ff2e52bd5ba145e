package admin

import (
	"strings"

	"github.com/linkmart/internal/http/response"
	"github.com/linkmart/internal/repository"

	"github.com/gin-gonic/gin"
)

// GetPayments 支付记录列表
func (h *Handler) GetPayments(c *gin.Context) {
	page, pageSize := parsePagination(c)

	filter := repository.PaymentListFilter{
		Page:     page,
		PageSize: pageSize,
		Status:   strings.TrimSpace(c.Query("status")),
		Email:    strings.TrimSpace(c.Query("email")),
	}
	if raw := strings.TrimSpace(c.Query("order_id")); raw != "" {
		filter.OrderID = parseQueryUint(raw)
	}

	payments, total, err := h.PaymentService.List(filter)
	if err != nil {
		respondError(c, response.CodeInternal, "failed to fetch payments", err)
		return
	}
	response.SuccessWithPage(c, payments, response.BuildPagination(page, pageSize, total))
}

// GetPayment 支付记录详情
func (h *Handler) GetPayment(c *gin.Context) {
	id, ok := parseUintParam(c, "id")
	if !ok {
		return
	}
	payment, err := h.PaymentService.Get(id)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.Success(c, payment)
}
