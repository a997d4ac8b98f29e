// Package deliverymodels chứa models cho domain Delivery.
package deliverymodels

import (
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Kênh gửi tin
const (
	ChannelSMS   = "sms"
	ChannelEmail = "email"
)

// Trạng thái queue item
const (
	QueueStatusPending    = "pending"
	QueueStatusProcessing = "processing"
	QueueStatusSent       = "sent"
	QueueStatusFailed     = "failed"
)

// DeliveryQueueItem là một tin nhắn chờ gửi trong queue
type DeliveryQueueItem struct {
	ID          primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"`
	Recipient   string             `json:"recipient" bson:"recipient"` // số điện thoại hoặc email
	ChannelType string             `json:"channelType" bson:"channelType"`
	Subject     string             `json:"subject,omitempty" bson:"subject,omitempty"` // email only
	Content     string             `json:"content" bson:"content"`
	WorkflowID  primitive.ObjectID `json:"workflowId,omitempty" bson:"workflowId,omitempty"`
	DedupeKey   string             `json:"dedupeKey,omitempty" bson:"dedupeKey,omitempty"`
	Status      string             `json:"status" bson:"status" default:"pending"`
	RetryCount  int                `json:"retryCount" bson:"retryCount"`
	MaxRetries  int                `json:"maxRetries" bson:"maxRetries" default:"3"`
	Priority    int                `json:"priority" bson:"priority" default:"3"` // 1 cao nhất
	NextRetryAt *int64             `json:"nextRetryAt,omitempty" bson:"nextRetryAt,omitempty"`
	Error       string             `json:"error,omitempty" bson:"error,omitempty"`
	CreatedAt   int64              `json:"createdAt" bson:"createdAt"`
	UpdatedAt   int64              `json:"updatedAt" bson:"updatedAt"`
}
