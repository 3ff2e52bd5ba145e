package admin

import (
	"strings"
	"time"

	"github.com/linkmart/internal/http/response"
	"github.com/linkmart/internal/repository"

	"github.com/gin-gonic/gin"
)

func parseQueryTime(c *gin.Context, name string) *time.Time {
	raw := strings.TrimSpace(c.Query(name))
	if raw == "" {
		return nil
	}
	t, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return nil
	}
	return &t
}

// GetAnalyticsEvents 分析事件列表
func (h *Handler) GetAnalyticsEvents(c *gin.Context) {
	page, pageSize := parsePagination(c)

	filter := repository.AnalyticsListFilter{
		Page:        page,
		PageSize:    pageSize,
		EventType:   strings.TrimSpace(c.Query("event_type")),
		SessionID:   strings.TrimSpace(c.Query("session_id")),
		CreatedFrom: parseQueryTime(c, "from"),
		CreatedTo:   parseQueryTime(c, "to"),
	}
	if raw := strings.TrimSpace(c.Query("product_id")); raw != "" {
		filter.ProductID = parseQueryUint(raw)
	}

	events, total, err := h.AnalyticsService.List(filter)
	if err != nil {
		respondError(c, response.CodeInternal, "failed to fetch events", err)
		return
	}
	response.SuccessWithPage(c, events, response.BuildPagination(page, pageSize, total))
}

// GetAnalyticsSummary 按事件类型汇总计数
func (h *Handler) GetAnalyticsSummary(c *gin.Context) {
	var from, to time.Time
	if t := parseQueryTime(c, "from"); t != nil {
		from = *t
	}
	if t := parseQueryTime(c, "to"); t != nil {
		to = *t
	}

	summary, err := h.AnalyticsService.Summary(from, to)
	if err != nil {
		respondError(c, response.CodeInternal, "failed to fetch summary", err)
		return
	}
	response.Success(c, summary)
}
