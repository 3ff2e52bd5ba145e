package repository

import (
	"time"

	"github.com/linkmart/internal/models"

	"gorm.io/gorm"
)

// EventTypeCount 按事件类型聚合的计数
type EventTypeCount struct {
	EventType string `json:"event_type"`
	Count     int64  `json:"count"`
}

// AnalyticsRepository 分析事件数据访问接口
type AnalyticsRepository interface {
	Create(event *models.AnalyticsEvent) error
	List(filter AnalyticsListFilter) ([]models.AnalyticsEvent, int64, error)
	CountByType(from, to time.Time) ([]EventTypeCount, error)
	CountSince(eventType string, since time.Time) (int64, error)
}

// GormAnalyticsRepository GORM 实现
type GormAnalyticsRepository struct {
	db *gorm.DB
}

// NewAnalyticsRepository 创建分析事件仓库
func NewAnalyticsRepository(db *gorm.DB) *GormAnalyticsRepository {
	return &GormAnalyticsRepository{db: db}
}

// Create 追加事件
func (r *GormAnalyticsRepository) Create(event *models.AnalyticsEvent) error {
	return r.db.Create(event).Error
}

// List 事件列表
func (r *GormAnalyticsRepository) List(filter AnalyticsListFilter) ([]models.AnalyticsEvent, int64, error) {
	query := r.db.Model(&models.AnalyticsEvent{})
	if filter.EventType != "" {
		query = query.Where("event_type = ?", filter.EventType)
	}
	if filter.ProductID > 0 {
		query = query.Where("product_id = ?", filter.ProductID)
	}
	if filter.SessionID != "" {
		query = query.Where("session_id = ?", filter.SessionID)
	}
	if filter.CreatedFrom != nil {
		query = query.Where("created_at >= ?", *filter.CreatedFrom)
	}
	if filter.CreatedTo != nil {
		query = query.Where("created_at <= ?", *filter.CreatedTo)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var events []models.AnalyticsEvent
	err := applyPagination(query.Order("created_at DESC, id DESC"), filter.Page, filter.PageSize).
		Find(&events).Error
	if err != nil {
		return nil, 0, err
	}
	return events, total, nil
}

// CountByType 按事件类型统计时间段内事件数
func (r *GormAnalyticsRepository) CountByType(from, to time.Time) ([]EventTypeCount, error) {
	var counts []EventTypeCount
	err := r.db.Model(&models.AnalyticsEvent{}).
		Select("event_type, COUNT(*) as count").
		Where("created_at >= ? AND created_at <= ?", from, to).
		Group("event_type").
		Order("count DESC").
		Scan(&counts).Error
	if err != nil {
		return nil, err
	}
	return counts, nil
}

// CountSince 统计某类型自某时刻起的事件数
func (r *GormAnalyticsRepository) CountSince(eventType string, since time.Time) (int64, error) {
	var count int64
	query := r.db.Model(&models.AnalyticsEvent{}).Where("created_at >= ?", since)
	if eventType != "" {
		query = query.Where("event_type = ?", eventType)
	}
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
