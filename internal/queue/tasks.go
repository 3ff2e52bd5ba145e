package queue

import (
	"encoding/json"

	"github.com/linkmart/internal/constants"

	"github.com/hibiken/asynq"
)

const (
	// TaskAnalyticsEvent 分析事件落库任务
	TaskAnalyticsEvent = constants.TaskAnalyticsEvent
	// TaskPasswordResetEmail 密码重置邮件任务
	TaskPasswordResetEmail = constants.TaskPasswordResetEmail
	// TaskOrderConfirmEmail 订单确认邮件任务
	TaskOrderConfirmEmail = constants.TaskOrderConfirmEmail
	// TaskContactNotify 联系表单通知任务
	TaskContactNotify = constants.TaskContactNotify
)

// AnalyticsEventPayload 分析事件任务载荷
type AnalyticsEventPayload struct {
	EventType  string                 `json:"event_type"`
	PagePath   string                 `json:"page_path"`
	Referrer   string                 `json:"referrer"`
	ProductID  *uint                  `json:"product_id"`
	CustomerID *uint                  `json:"customer_id"`
	SessionID  string                 `json:"session_id"`
	IP         string                 `json:"ip"`
	UserAgent  string                 `json:"user_agent"`
	Metadata   map[string]interface{} `json:"metadata"`
	OccurredAt int64                  `json:"occurred_at"`
}

// PasswordResetEmailPayload 密码重置邮件任务载荷
type PasswordResetEmailPayload struct {
	CustomerID uint   `json:"customer_id"`
	Email      string `json:"email"`
	ResetToken string `json:"reset_token"`
}

// OrderConfirmEmailPayload 订单确认邮件任务载荷
type OrderConfirmEmailPayload struct {
	OrderID uint `json:"order_id"`
}

// ContactNotifyPayload 联系表单通知任务载荷
type ContactNotifyPayload struct {
	MessageID uint `json:"message_id"`
}

// NewAnalyticsEventTask 创建分析事件任务
func NewAnalyticsEventTask(payload AnalyticsEventPayload) (*asynq.Task, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskAnalyticsEvent, body), nil
}

// NewPasswordResetEmailTask 创建密码重置邮件任务
func NewPasswordResetEmailTask(payload PasswordResetEmailPayload) (*asynq.Task, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskPasswordResetEmail, body), nil
}

// NewOrderConfirmEmailTask 创建订单确认邮件任务
func NewOrderConfirmEmailTask(payload OrderConfirmEmailPayload) (*asynq.Task, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskOrderConfirmEmail, body), nil
}

// NewContactNotifyTask 创建联系表单通知任务
func NewContactNotifyTask(payload ContactNotifyPayload) (*asynq.Task, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskContactNotify, body), nil
}
