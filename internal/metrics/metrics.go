package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// StoreMetrics 商城核心指标
type StoreMetrics struct {
	// HTTP 请求
	HTTPRequestsTotal   prometheus.CounterVec
	HTTPRequestDuration prometheus.HistogramVec

	// 订单
	OrdersCreatedTotal     prometheus.CounterVec
	OrdersPaidTotal        prometheus.CounterVec
	OrdersPaidAmountTotal  prometheus.CounterVec
	OrdersCancelledTotal   prometheus.CounterVec

	// 支付
	PaymentIntentsTotal prometheus.CounterVec

	// 分析事件
	AnalyticsEventsTotal prometheus.CounterVec

	// 横幅点击
	BannerClicksTotal prometheus.CounterVec
}

// NewStoreMetrics 创建并注册全部指标
func NewStoreMetrics() *StoreMetrics {
	return &StoreMetrics{
		HTTPRequestsTotal: *promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "http_requests_total",
				Help: "HTTP 请求总数",
			},
			[]string{"method", "path", "status"},
		),
		HTTPRequestDuration: *promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "http_request_duration_seconds",
				Help:    "HTTP 请求耗时（秒）",
				Buckets: prometheus.ExponentialBuckets(0.005, 2, 12),
			},
			[]string{"method", "path"},
		),
		OrdersCreatedTotal: *promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "orders_created_total",
				Help: "创建订单总数",
			},
			[]string{"currency"},
		),
		OrdersPaidTotal: *promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "orders_paid_total",
				Help: "支付成功订单总数",
			},
			[]string{"currency"},
		),
		OrdersPaidAmountTotal: *promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "orders_paid_amount_total",
				Help: "支付成功订单金额合计",
			},
			[]string{"currency"},
		),
		OrdersCancelledTotal: *promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "orders_cancelled_total",
				Help: "取消订单总数",
			},
			[]string{"currency"},
		),
		PaymentIntentsTotal: *promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "payment_intents_total",
				Help: "支付意图数，按用途与结果统计",
			},
			[]string{"purpose", "status"},
		),
		AnalyticsEventsTotal: *promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "analytics_events_total",
				Help: "分析事件接收总数",
			},
			[]string{"event_type"},
		),
		BannerClicksTotal: *promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "banner_clicks_total",
				Help: "横幅点击总数",
			},
			[]string{"kind"},
		),
	}
}

// RecordHTTPRequest 记录一次 HTTP 请求
func (m *StoreMetrics) RecordHTTPRequest(method, path, status string, durationSeconds float64) {
	if m == nil {
		return
	}
	m.HTTPRequestsTotal.WithLabelValues(method, path, status).Inc()
	m.HTTPRequestDuration.WithLabelValues(method, path).Observe(durationSeconds)
}

// RecordOrderCreated 记录创建订单
func (m *StoreMetrics) RecordOrderCreated(currency string) {
	if m == nil {
		return
	}
	m.OrdersCreatedTotal.WithLabelValues(currency).Inc()
}

// RecordOrderPaid 记录订单支付成功
func (m *StoreMetrics) RecordOrderPaid(currency string, amount float64) {
	if m == nil {
		return
	}
	m.OrdersPaidTotal.WithLabelValues(currency).Inc()
	m.OrdersPaidAmountTotal.WithLabelValues(currency).Add(amount)
}

// RecordOrderCancelled 记录订单取消
func (m *StoreMetrics) RecordOrderCancelled(currency string) {
	if m == nil {
		return
	}
	m.OrdersCancelledTotal.WithLabelValues(currency).Inc()
}

// RecordPaymentIntent 记录支付意图状态变化
func (m *StoreMetrics) RecordPaymentIntent(purpose, status string) {
	if m == nil {
		return
	}
	m.PaymentIntentsTotal.WithLabelValues(purpose, status).Inc()
}

// RecordAnalyticsEvent 记录分析事件
func (m *StoreMetrics) RecordAnalyticsEvent(eventType string) {
	if m == nil {
		return
	}
	m.AnalyticsEventsTotal.WithLabelValues(eventType).Inc()
}

// RecordBannerClick 记录横幅点击
func (m *StoreMetrics) RecordBannerClick(kind string) {
	if m == nil {
		return
	}
	m.BannerClicksTotal.WithLabelValues(kind).Inc()
}
