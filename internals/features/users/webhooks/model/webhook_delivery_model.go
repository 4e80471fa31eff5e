package model

import (
	"time"

	"gorm.io/datatypes"
)

// WebhookDeliveryModel records every verified Clerk delivery by svix-id.
type WebhookDeliveryModel struct {
	SvixID     string         `gorm:"column:svix_id;type:varchar(100);primaryKey" json:"svix_id"`
	Type       string         `gorm:"column:type;type:varchar(100);not null;index" json:"type"`
	Payload    datatypes.JSON `gorm:"column:payload;not null" json:"payload"`
	ReceivedAt time.Time      `gorm:"column:received_at;not null;autoCreateTime" json:"received_at"`
}

func (WebhookDeliveryModel) TableName() string { return "webhook_deliveries" }
