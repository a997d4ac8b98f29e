// Package deliverydto chứa input structures cho domain Delivery.
package deliverydto

// DeliveryQueueCreateInput cho phép operator enqueue tin thủ công
type DeliveryQueueCreateInput struct {
	Recipient   string `json:"recipient" validate:"required"`
	ChannelType string `json:"channelType" validate:"required,oneof=sms email"`
	Subject     string `json:"subject,omitempty"`
	Content     string `json:"content" validate:"required"`
	Priority    int    `json:"priority,omitempty" validate:"omitempty,gte=1,lte=5"`
}

// DeliveryQueueUpdateInput cho phép chỉnh priority/maxRetries của item chưa gửi
type DeliveryQueueUpdateInput struct {
	Priority   *int `json:"priority,omitempty" validate:"omitempty,gte=1,lte=5"`
	MaxRetries *int `json:"maxRetries,omitempty" validate:"omitempty,gte=0,lte=10"`
}
