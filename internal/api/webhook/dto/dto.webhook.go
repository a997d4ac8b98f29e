// Package webhookdto chứa DTO cho domain Webhook.
package webhookdto

// InboundSMSInput là payload webhook SMS inbound (Twilio-style form hoặc JSON)
type InboundSMSInput struct {
	From       string `json:"From" form:"From"`
	Body       string `json:"Body" form:"Body"`
	MessageSid string `json:"MessageSid" form:"MessageSid"`
}
