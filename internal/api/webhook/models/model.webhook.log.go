// Package webhookmodels chứa models cho domain Webhook.
package webhookmodels

import (
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// WebhookLog ghi lại mỗi webhook inbound đã nhận.
// Unique index trên providerMessageId là lớp dedupe đầu tiên:
// provider retry cùng một tin thì insert thứ hai bị chặn ngay tại đây.
type WebhookLog struct {
	ID                primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"`
	Provider          string             `json:"provider" bson:"provider" default:"sms"`
	ProviderMessageID string             `json:"providerMessageId" bson:"providerMessageId"`
	FromPhone         string             `json:"fromPhone" bson:"fromPhone"`
	Body              string             `json:"body" bson:"body"`
	Reply             string             `json:"reply,omitempty" bson:"reply,omitempty"`
	Processed         bool               `json:"processed" bson:"processed"`
	ProcessError      string             `json:"processError,omitempty" bson:"processError,omitempty"`
	CreatedAt         int64              `json:"createdAt" bson:"createdAt"`
	UpdatedAt         int64              `json:"updatedAt" bson:"updatedAt"`
}
