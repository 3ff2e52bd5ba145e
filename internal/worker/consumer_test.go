package worker

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"testing"

	"github.com/linkmart/internal/models"
	"github.com/linkmart/internal/provider"
	"github.com/linkmart/internal/queue"
	"github.com/linkmart/internal/repository"
	"github.com/linkmart/internal/service"

	"github.com/glebarez/sqlite"
	"github.com/hibiken/asynq"
	"gorm.io/gorm"
)

func setupConsumerTest(t *testing.T) (*Consumer, *gorm.DB) {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	if err := db.AutoMigrate(&models.AnalyticsEvent{}, &models.ContactMessage{}); err != nil {
		t.Fatalf("migrate failed: %v", err)
	}

	container := &provider.Container{
		AnalyticsRepo: repository.NewAnalyticsRepository(db),
		ContactRepo:   repository.NewContactRepository(db),
	}
	container.AnalyticsService = service.NewAnalyticsService(container.AnalyticsRepo, nil, nil, nil)
	return NewConsumer(container), db
}

func TestHandleAnalyticsEventPersists(t *testing.T) {
	consumer, db := setupConsumerTest(t)

	productID := uint(12)
	payload, err := json.Marshal(queue.AnalyticsEventPayload{
		EventType:  "product_view",
		PagePath:   "/products/usb-hub",
		ProductID:  &productID,
		SessionID:  "sess-abc",
		IP:         "10.0.0.9",
		OccurredAt: 1760000000,
		Metadata:   map[string]interface{}{"source": "home"},
	})
	if err != nil {
		t.Fatalf("marshal payload failed: %v", err)
	}

	task := asynq.NewTask(queue.TaskAnalyticsEvent, payload)
	if err := consumer.handleAnalyticsEvent(context.Background(), task); err != nil {
		t.Fatalf("handle analytics event failed: %v", err)
	}

	var event models.AnalyticsEvent
	if err := db.Where("event_type = ?", "product_view").First(&event).Error; err != nil {
		t.Fatalf("expected persisted event: %v", err)
	}
	if event.PagePath != "/products/usb-hub" {
		t.Fatalf("page path want /products/usb-hub got %s", event.PagePath)
	}
	if event.ProductID == nil || *event.ProductID != 12 {
		t.Fatalf("product id want 12 got %v", event.ProductID)
	}
	if event.CreatedAt.Unix() != 1760000000 {
		t.Fatalf("created_at want 1760000000 got %d", event.CreatedAt.Unix())
	}
}

func TestHandleAnalyticsEventBadPayload(t *testing.T) {
	consumer, _ := setupConsumerTest(t)

	task := asynq.NewTask(queue.TaskAnalyticsEvent, []byte("not-json"))
	if err := consumer.handleAnalyticsEvent(context.Background(), task); err == nil {
		t.Fatalf("expected unmarshal error")
	}
}

func TestHandleAnalyticsEventSkipsEmptyType(t *testing.T) {
	consumer, db := setupConsumerTest(t)

	payload, _ := json.Marshal(queue.AnalyticsEventPayload{PagePath: "/"})
	task := asynq.NewTask(queue.TaskAnalyticsEvent, payload)
	// 缺事件类型的脏数据直接丢弃，不触发重试
	if err := consumer.handleAnalyticsEvent(context.Background(), task); err != nil {
		t.Fatalf("empty event type should not fail: %v", err)
	}

	var count int64
	if err := db.Model(&models.AnalyticsEvent{}).Count(&count).Error; err != nil {
		t.Fatalf("count failed: %v", err)
	}
	if count != 0 {
		t.Fatalf("expected no rows, got %d", count)
	}
}

func TestHandleContactNotifyWithoutEmailService(t *testing.T) {
	consumer, db := setupConsumerTest(t)

	msg := &models.ContactMessage{
		Name:    "Alice",
		Email:   "alice@example.com",
		Subject: "Shipping question",
		Message: "Where is my order?",
	}
	if err := db.Create(msg).Error; err != nil {
		t.Fatalf("create message failed: %v", err)
	}

	payload, _ := json.Marshal(queue.ContactNotifyPayload{MessageID: msg.ID})
	task := asynq.NewTask(queue.TaskContactNotify, payload)
	if err := consumer.handleContactNotify(context.Background(), task); err != nil {
		t.Fatalf("missing email service should skip, not fail: %v", err)
	}
}

func TestHandleContactNotifyMissingMessage(t *testing.T) {
	consumer, _ := setupConsumerTest(t)

	payload, _ := json.Marshal(queue.ContactNotifyPayload{MessageID: 99999})
	task := asynq.NewTask(queue.TaskContactNotify, payload)
	if err := consumer.handleContactNotify(context.Background(), task); err != nil {
		t.Fatalf("missing message should skip, not fail: %v", err)
	}
}

func TestHandleOrderConfirmEmailInvalidPayload(t *testing.T) {
	consumer, _ := setupConsumerTest(t)

	payload, _ := json.Marshal(queue.OrderConfirmEmailPayload{OrderID: 0})
	task := asynq.NewTask(queue.TaskOrderConfirmEmail, payload)
	if err := consumer.handleOrderConfirmEmail(context.Background(), task); err != nil {
		t.Fatalf("zero order id should skip, not fail: %v", err)
	}
}
