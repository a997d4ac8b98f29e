// Package workflowmodels chứa models cho domain Workflow.
package workflowmodels

import (
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Loại workflow
const (
	TypeContentApproval = "content_approval"
	TypeDailySuggestion = "daily_suggestion"
)

// Trạng thái workflow. pending và editing là trạng thái hoạt động,
// approved/rejected/expired là trạng thái cuối (không bao giờ đổi nữa).
const (
	StatusPending  = "pending"
	StatusApproved = "approved"
	StatusRejected = "rejected"
	StatusEditing  = "editing"
	StatusExpired  = "expired"
)

// ActiveStatuses là các trạng thái còn nhận lệnh
var ActiveStatuses = []string{StatusPending, StatusEditing}

// IdeaSnapshot là một suggestion đã chốt vào workflow daily_suggestion.
// Snapshot để menu gửi đi và lựa chọn của chủ nhà hàng luôn khớp nhau,
// kể cả khi suggestion engine đổi ranking sau đó.
type IdeaSnapshot struct {
	Rank        int    `json:"rank" bson:"rank"` // 1-5
	Title       string `json:"title" bson:"title"`
	Description string `json:"description" bson:"description"`
	Platform    string `json:"platform" bson:"platform"`
	Score       int    `json:"score" bson:"score"`
}

// Workflow là một phiên duyệt nội dung qua tin nhắn hai chiều
type Workflow struct {
	ID             primitive.ObjectID   `json:"id,omitempty" bson:"_id,omitempty"`
	Type           string               `json:"type" bson:"type"`
	UserID         string               `json:"userId" bson:"userId"`
	PrimaryItemID  primitive.ObjectID   `json:"primaryItemId,omitempty" bson:"primaryItemId,omitempty"`
	ItemIDs        []primitive.ObjectID `json:"itemIds,omitempty" bson:"itemIds,omitempty"`
	RecipientPhone string               `json:"recipientPhone" bson:"recipientPhone"`
	Language       string               `json:"language" bson:"language" default:"en"`
	Status         string               `json:"status" bson:"status" default:"pending"`
	LastMessageID  string               `json:"lastMessageId,omitempty" bson:"lastMessageId,omitempty"`
	Suggestions    []IdeaSnapshot       `json:"suggestions,omitempty" bson:"suggestions,omitempty"`
	Selection      string               `json:"selection,omitempty" bson:"selection,omitempty"` // "1".."5" hoặc "custom"
	SupersededBy   primitive.ObjectID   `json:"supersededBy,omitempty" bson:"supersededBy,omitempty"`
	ExpiresAt      int64                `json:"expiresAt" bson:"expiresAt"` // UnixMilli
	CreatedAt      int64                `json:"createdAt" bson:"createdAt"`
	UpdatedAt      int64                `json:"updatedAt" bson:"updatedAt"`
}

// IsActive cho biết workflow còn nhận lệnh không
func (w *Workflow) IsActive() bool {
	return w.Status == StatusPending || w.Status == StatusEditing
}

// IsTerminal cho biết workflow đã ở trạng thái cuối chưa
func (w *Workflow) IsTerminal() bool {
	return w.Status == StatusApproved || w.Status == StatusRejected || w.Status == StatusExpired
}

// DailyContext là dữ liệu cần để tạo workflow daily_suggestion cho một user
type DailyContext struct {
	UserID         string
	RestaurantName string
	Cuisine        string
	Phone          string
	Language       string
	Ideas          []IdeaSnapshot
}
