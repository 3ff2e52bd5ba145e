package service

import (
	"strings"
	"time"

	"github.com/linkmart/internal/analytics"
	"github.com/linkmart/internal/logger"
	"github.com/linkmart/internal/metrics"
	"github.com/linkmart/internal/models"
	"github.com/linkmart/internal/queue"
	"github.com/linkmart/internal/repository"
)

// AnalyticsService 访问分析事件服务
// 采集走异步队列削峰，队列不可用时直接落库兜底
type AnalyticsService struct {
	repo      repository.AnalyticsRepository
	queue     *queue.Client
	publisher analytics.Publisher
	metrics   *metrics.StoreMetrics
}

// NewAnalyticsService 创建分析服务
func NewAnalyticsService(
	repo repository.AnalyticsRepository,
	queueClient *queue.Client,
	publisher analytics.Publisher,
	m *metrics.StoreMetrics,
) *AnalyticsService {
	return &AnalyticsService{
		repo:      repo,
		queue:     queueClient,
		publisher: publisher,
		metrics:   m,
	}
}

// TrackInput 事件采集输入
type TrackInput struct {
	EventType  string
	PagePath   string
	Referrer   string
	ProductID  *uint
	CustomerID *uint
	SessionID  string
	IP         string
	UserAgent  string
	Metadata   map[string]interface{}
}

// Track 采集事件：优先入队，队列关闭时同步落库
func (s *AnalyticsService) Track(input TrackInput) error {
	eventType := strings.TrimSpace(input.EventType)
	if eventType == "" {
		return ErrInvalidInput
	}
	s.metrics.RecordAnalyticsEvent(eventType)

	if s.queue.Enabled() {
		return s.queue.EnqueueAnalyticsEvent(queue.AnalyticsEventPayload{
			EventType:  eventType,
			PagePath:   input.PagePath,
			Referrer:   input.Referrer,
			ProductID:  input.ProductID,
			CustomerID: input.CustomerID,
			SessionID:  input.SessionID,
			IP:         input.IP,
			UserAgent:  input.UserAgent,
			Metadata:   input.Metadata,
			OccurredAt: time.Now().Unix(),
		})
	}

	return s.Persist(&models.AnalyticsEvent{
		EventType:  eventType,
		PagePath:   input.PagePath,
		Referrer:   input.Referrer,
		ProductID:  input.ProductID,
		CustomerID: input.CustomerID,
		SessionID:  input.SessionID,
		IP:         input.IP,
		UserAgent:  input.UserAgent,
		Metadata:   models.JSON(input.Metadata),
	})
}

// Persist 事件落库并外发 Kafka，外发失败只记日志
func (s *AnalyticsService) Persist(event *models.AnalyticsEvent) error {
	if event == nil || strings.TrimSpace(event.EventType) == "" {
		return ErrInvalidInput
	}
	if err := s.repo.Create(event); err != nil {
		return err
	}
	if s.publisher != nil {
		if err := s.publisher.Publish(event); err != nil {
			logger.Warnw("analytics_kafka_publish_failed", "event_type", event.EventType, "error", err)
		}
	}
	return nil
}

// List 事件列表
func (s *AnalyticsService) List(filter repository.AnalyticsListFilter) ([]models.AnalyticsEvent, int64, error) {
	return s.repo.List(filter)
}

// Summary 时间段内按事件类型聚合
func (s *AnalyticsService) Summary(from, to time.Time) ([]repository.EventTypeCount, error) {
	if to.IsZero() {
		to = time.Now()
	}
	if from.IsZero() {
		from = to.AddDate(0, 0, -30)
	}
	return s.repo.CountByType(from, to)
}

// CountSince 某类型自某时刻起的事件数
func (s *AnalyticsService) CountSince(eventType string, since time.Time) (int64, error) {
	return s.repo.CountSince(eventType, since)
}
