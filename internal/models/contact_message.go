package models

import "time"

// ContactMessage 联系表单留言，先落库再异步通知
type ContactMessage struct {
	ID        uint       `gorm:"primarykey" json:"id"`
	Name      string     `gorm:"size:200;not null" json:"name"`
	Email     string     `gorm:"size:200;not null" json:"email"`
	Subject   string     `gorm:"size:300" json:"subject"`
	Message   string     `gorm:"type:text;not null" json:"message"`
	IP        string     `gorm:"size:64" json:"ip"`
	RepliedAt *time.Time `json:"replied_at"`
	CreatedAt time.Time  `json:"created_at"`
}

// TableName 指定表名
func (ContactMessage) TableName() string {
	return "contact_messages"
}
