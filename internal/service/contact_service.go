package service

import (
	"strings"
	"time"

	"github.com/linkmart/internal/logger"
	"github.com/linkmart/internal/models"
	"github.com/linkmart/internal/queue"
	"github.com/linkmart/internal/repository"
)

// ContactService 联系表单服务，留言先落库再异步通知
type ContactService struct {
	repo  repository.ContactRepository
	queue *queue.Client
}

// NewContactService 创建联系表单服务
func NewContactService(repo repository.ContactRepository, queueClient *queue.Client) *ContactService {
	return &ContactService{repo: repo, queue: queueClient}
}

// ContactInput 留言输入
type ContactInput struct {
	Name    string
	Email   string
	Subject string
	Message string
	IP      string
}

// Submit 提交留言。落库成功即视为提交成功，通知任务失败不回滚
func (s *ContactService) Submit(input ContactInput) (*models.ContactMessage, error) {
	name := strings.TrimSpace(input.Name)
	email := strings.ToLower(strings.TrimSpace(input.Email))
	body := strings.TrimSpace(input.Message)
	if name == "" || body == "" {
		return nil, ErrInvalidInput
	}
	if email == "" || !strings.Contains(email, "@") {
		return nil, ErrInvalidEmail
	}

	message := models.ContactMessage{
		Name:    name,
		Email:   email,
		Subject: strings.TrimSpace(input.Subject),
		Message: body,
		IP:      input.IP,
	}
	if err := s.repo.Create(&message); err != nil {
		return nil, err
	}

	if err := s.queue.EnqueueContactNotify(queue.ContactNotifyPayload{MessageID: message.ID}); err != nil {
		logger.Warnw("contact_notify_enqueue_failed", "message_id", message.ID, "error", err)
	}
	return &message, nil
}

// Get 根据 ID 获取留言
func (s *ContactService) Get(id uint) (*models.ContactMessage, error) {
	message, err := s.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if message == nil {
		return nil, ErrNotFound
	}
	return message, nil
}

// List 留言列表
func (s *ContactService) List(filter repository.ContactListFilter) ([]models.ContactMessage, int64, error) {
	return s.repo.List(filter)
}

// MarkReplied 标记已回复
func (s *ContactService) MarkReplied(id uint) error {
	if _, err := s.Get(id); err != nil {
		return err
	}
	return s.repo.MarkReplied(id, time.Now())
}

// Delete 删除留言
func (s *ContactService) Delete(id uint) error {
	if _, err := s.Get(id); err != nil {
		return err
	}
	return s.repo.Delete(id)
}
