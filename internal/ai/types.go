// Package ai chứa các adapter gọi provider AI: transcription (Whisper),
// mô tả hình ảnh và sinh draft nội dung. Kỷ luật chung của cả ba adapter:
// KHÔNG BAO GIỜ trả lỗi provider về caller — mọi thất bại đều được phân loại
// và thay bằng fallback để pipeline phía trên luôn đi tiếp được.
package ai

import "context"

// FailureClass phân loại nguyên nhân fallback
type FailureClass string

const (
	FailureNone        FailureClass = ""
	FailureRateLimited FailureClass = "rate_limited"
	FailureAuth        FailureClass = "auth"
	FailureTransient   FailureClass = "transient"
	FailureBadOutput   FailureClass = "bad_output"
	FailureEmpty       FailureClass = "empty_result"
)

// Transcription là kết quả của transcription adapter
type Transcription struct {
	Text         string       `json:"text"`
	Language     string       `json:"language"`
	Fallback     bool         `json:"fallback"`
	FailureClass FailureClass `json:"failureClass,omitempty"`
}

// VisualDescription là kết quả của visual description adapter
type VisualDescription struct {
	Text         string       `json:"text"`
	Fallback     bool         `json:"fallback"`
	FailureClass FailureClass `json:"failureClass,omitempty"`
}

// PlatformDraft là một draft nội dung cho một platform cụ thể
type PlatformDraft struct {
	Platform      string   `json:"platform"`
	Caption       string   `json:"caption"`
	Tags          []string `json:"tags"`
	ViralityScore int      `json:"viralityScore"`
	BestPostTime  string   `json:"bestPostTime"`
	Fallback      bool     `json:"fallback"`
}

// DraftRequest là input cho content generation adapter
type DraftRequest struct {
	Transcript        string
	VisualDescription string
	RestaurantName    string
	Cuisine           string
	Language          string
	Platforms         []string
	EditInstructions  string // chỉ dùng khi regenerate theo yêu cầu sửa
}

// Transcriber chuyển audio thành text, không bao giờ trả error
type Transcriber interface {
	Transcribe(ctx context.Context, audio []byte, mimeType, language string) Transcription
}

// VisionDescriber mô tả hình ảnh món ăn, không bao giờ trả error
type VisionDescriber interface {
	Describe(ctx context.Context, image []byte, mimeType, language string) VisualDescription
}

// DraftGenerator sinh drafts cho các platforms, không bao giờ trả error.
// Luôn trả về đúng một draft cho mỗi platform được yêu cầu.
type DraftGenerator interface {
	GenerateDrafts(ctx context.Context, req DraftRequest) []PlatformDraft
}
