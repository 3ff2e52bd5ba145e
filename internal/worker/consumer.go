package worker

import (
	"context"
	"encoding/json"
	"time"

	"github.com/linkmart/internal/logger"
	"github.com/linkmart/internal/models"
	"github.com/linkmart/internal/provider"
	"github.com/linkmart/internal/queue"

	"github.com/hibiken/asynq"
)

// Consumer 异步任务消费者
type Consumer struct {
	*provider.Container
}

// NewConsumer 创建消费者
func NewConsumer(c *provider.Container) *Consumer {
	return &Consumer{
		Container: c,
	}
}

// Register 注册消费者
func (c *Consumer) Register(mux *asynq.ServeMux) {
	if c == nil || mux == nil {
		logger.Debugw("worker_register_skip_nil", "consumer_nil", c == nil, "mux_nil", mux == nil)
		return
	}
	mux.HandleFunc(queue.TaskAnalyticsEvent, c.handleAnalyticsEvent)
	mux.HandleFunc(queue.TaskPasswordResetEmail, c.handlePasswordResetEmail)
	mux.HandleFunc(queue.TaskOrderConfirmEmail, c.handleOrderConfirmEmail)
	mux.HandleFunc(queue.TaskContactNotify, c.handleContactNotify)
}

func (c *Consumer) handleAnalyticsEvent(_ context.Context, task *asynq.Task) error {
	if c == nil || task == nil {
		return nil
	}
	var payload queue.AnalyticsEventPayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		logger.Warnw("worker_analytics_event_unmarshal_failed", "error", err)
		return err
	}
	if payload.EventType == "" {
		logger.Debugw("worker_analytics_event_skip_empty_type")
		return nil
	}
	event := &models.AnalyticsEvent{
		EventType:  payload.EventType,
		PagePath:   payload.PagePath,
		Referrer:   payload.Referrer,
		ProductID:  payload.ProductID,
		CustomerID: payload.CustomerID,
		SessionID:  payload.SessionID,
		IP:         payload.IP,
		UserAgent:  payload.UserAgent,
		Metadata:   models.JSON(payload.Metadata),
	}
	if payload.OccurredAt > 0 {
		event.CreatedAt = time.Unix(payload.OccurredAt, 0)
	}
	if err := c.AnalyticsService.Persist(event); err != nil {
		logger.Warnw("worker_analytics_event_persist_failed", "event_type", payload.EventType, "error", err)
		return err
	}
	return nil
}

func (c *Consumer) handlePasswordResetEmail(_ context.Context, task *asynq.Task) error {
	if c == nil || task == nil {
		return nil
	}
	var payload queue.PasswordResetEmailPayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		logger.Warnw("worker_password_reset_email_unmarshal_failed", "error", err)
		return err
	}
	if payload.Email == "" || payload.ResetToken == "" {
		logger.Debugw("worker_password_reset_email_skip_invalid_payload", "customer_id", payload.CustomerID)
		return nil
	}
	if c.EmailService == nil {
		logger.Warnw("worker_password_reset_email_skip_email_service_nil", "customer_id", payload.CustomerID)
		return nil
	}
	if err := c.EmailService.SendPasswordResetEmail(payload.Email, payload.ResetToken); err != nil {
		logger.Warnw("worker_password_reset_email_send_failed",
			"customer_id", payload.CustomerID,
			"error", err,
		)
		return err
	}
	return nil
}

func (c *Consumer) handleOrderConfirmEmail(_ context.Context, task *asynq.Task) error {
	if c == nil || task == nil {
		return nil
	}
	var payload queue.OrderConfirmEmailPayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		logger.Warnw("worker_order_confirm_email_unmarshal_failed", "error", err)
		return err
	}
	if payload.OrderID == 0 {
		logger.Debugw("worker_order_confirm_email_skip_invalid_payload", "order_id", payload.OrderID)
		return nil
	}
	order, err := c.OrderRepo.GetByID(payload.OrderID)
	if err != nil {
		logger.Warnw("worker_order_confirm_email_fetch_order_failed", "order_id", payload.OrderID, "error", err)
		return err
	}
	if order == nil || order.CustomerEmail == "" {
		logger.Debugw("worker_order_confirm_email_skip_no_receiver", "order_id", payload.OrderID)
		return nil
	}
	if c.EmailService == nil {
		logger.Warnw("worker_order_confirm_email_skip_email_service_nil", "order_id", order.ID)
		return nil
	}
	if err := c.EmailService.SendOrderConfirmEmail(order); err != nil {
		logger.Warnw("worker_order_confirm_email_send_failed",
			"order_id", order.ID,
			"order_no", order.OrderNo,
			"error", err,
		)
		return err
	}
	return nil
}

func (c *Consumer) handleContactNotify(_ context.Context, task *asynq.Task) error {
	if c == nil || task == nil {
		return nil
	}
	var payload queue.ContactNotifyPayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		logger.Warnw("worker_contact_notify_unmarshal_failed", "error", err)
		return err
	}
	if payload.MessageID == 0 {
		return nil
	}
	msg, err := c.ContactRepo.GetByID(payload.MessageID)
	if err != nil {
		logger.Warnw("worker_contact_notify_fetch_failed", "message_id", payload.MessageID, "error", err)
		return err
	}
	if msg == nil {
		logger.Debugw("worker_contact_notify_skip_not_found", "message_id", payload.MessageID)
		return nil
	}
	if c.EmailService == nil {
		logger.Warnw("worker_contact_notify_skip_email_service_nil", "message_id", msg.ID)
		return nil
	}
	if err := c.EmailService.SendContactNotifyEmail(msg); err != nil {
		logger.Warnw("worker_contact_notify_send_failed", "message_id", msg.ID, "error", err)
		return err
	}
	return nil
}
