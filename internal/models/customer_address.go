package models

import "time"

// CustomerAddress 顾客收货地址
type CustomerAddress struct {
	ID         uint   `gorm:"primarykey" json:"id"`
	CustomerID uint   `gorm:"not null;index" json:"customer_id"`
	Label      string `gorm:"size:60" json:"label"`
	Recipient  string `gorm:"size:200" json:"recipient"`
	Phone      string `gorm:"size:50" json:"phone"`
	Address    string `gorm:"size:500;not null" json:"address"`
	City       string `gorm:"size:120" json:"city"`
	State      string `gorm:"size:120" json:"state"`
	Zip        string `gorm:"size:30" json:"zip"`
	Country    string `gorm:"size:120" json:"country"`
	IsDefault  bool   `gorm:"default:false" json:"is_default"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName 指定表名
func (CustomerAddress) TableName() string {
	return "customer_addresses"
}
