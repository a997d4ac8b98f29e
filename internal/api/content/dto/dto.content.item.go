// Package contentdto chứa DTO cho domain Content.
package contentdto

// ContentItemCreateInput là input tạo content item (chủ yếu dùng nội bộ từ pipeline)
type ContentItemCreateInput struct {
	UserID            string   `json:"userId" validate:"required"`
	Platform          string   `json:"platform" validate:"required,platform"`
	Caption           string   `json:"caption" validate:"required"`
	Tags              []string `json:"tags"`
	MediaURL          string   `json:"mediaUrl"`
	Transcript        string   `json:"transcript"`
	VisualDescription string   `json:"visualDescription"`
	ViralityScore     int      `json:"viralityScore" validate:"gte=0,lte=100"`
	BestPostTime      string   `json:"bestPostTime"`
	Language          string   `json:"language" validate:"omitempty,lang_tag"`
}

// ContentItemUpdateInput là input cập nhật content item (chỉ các field sửa được)
type ContentItemUpdateInput struct {
	Caption      *string  `json:"caption,omitempty"`
	Tags         []string `json:"tags,omitempty"`
	BestPostTime *string  `json:"bestPostTime,omitempty"`
}
