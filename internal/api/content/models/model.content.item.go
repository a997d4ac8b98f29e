// Package contentmodels chứa models cho domain Content.
package contentmodels

import (
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Trạng thái của content item
const (
	ContentStatusDraft     = "draft"
	ContentStatusPublished = "published"
	ContentStatusDiscarded = "discarded"
)

// ContentItem là một draft nội dung cho một platform cụ thể,
// sinh ra từ một lần submit voice/image của chủ nhà hàng.
type ContentItem struct {
	ID                primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"`
	UserID            string             `json:"userId" bson:"userId"`
	Platform          string             `json:"platform" bson:"platform"` // instagram, short_video, feed_post
	Caption           string             `json:"caption" bson:"caption"`
	Tags              []string           `json:"tags" bson:"tags"`
	MediaURL          string             `json:"mediaUrl,omitempty" bson:"mediaUrl,omitempty"`
	Transcript        string             `json:"transcript" bson:"transcript"`
	VisualDescription string             `json:"visualDescription,omitempty" bson:"visualDescription,omitempty"`
	ViralityScore     int                `json:"viralityScore" bson:"viralityScore" default:"50"` // 0-100
	BestPostTime      string             `json:"bestPostTime" bson:"bestPostTime"`                // HH:MM
	Language          string             `json:"language" bson:"language" default:"en"`
	Fallback          bool               `json:"fallback" bson:"fallback"` // draft sinh từ fallback content
	Status            string             `json:"status" bson:"status" default:"draft"`
	PublishedAt       *int64             `json:"publishedAt,omitempty" bson:"publishedAt,omitempty"`
	CreatedAt         int64              `json:"createdAt" bson:"createdAt"`
	UpdatedAt         int64              `json:"updatedAt" bson:"updatedAt"`
}

// IsTerminal cho biết item đã ở trạng thái cuối chưa
func (c *ContentItem) IsTerminal() bool {
	return c.Status == ContentStatusPublished || c.Status == ContentStatusDiscarded
}
