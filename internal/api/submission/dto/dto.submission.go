// Package submissiondto chứa DTO cho domain Submission.
package submissiondto

import (
	contentmodels "github.com/cardinalconseils/chefsocial-voice-sub000/internal/api/content/models"
	workflowmodels "github.com/cardinalconseils/chefsocial-voice-sub000/internal/api/workflow/models"
)

// SubmitRequest là input của voice submission pipeline.
// Audio bắt buộc, image tùy chọn. Base64 chuẩn (không data URL).
type SubmitRequest struct {
	UserID        string   `json:"userId" validate:"required"`
	AudioBase64   string   `json:"audioBase64" validate:"required"`
	AudioMimeType string   `json:"audioMimeType,omitempty"`
	ImageBase64   string   `json:"imageBase64,omitempty"`
	ImageMimeType string   `json:"imageMimeType,omitempty"`
	Language      string   `json:"language,omitempty" validate:"omitempty,lang_tag"`
	Phone         string   `json:"phone,omitempty" validate:"omitempty,phone_e164"`
	Platforms     []string `json:"platforms,omitempty" validate:"omitempty,dive,platform"`
}

// SubmitResult là output của pipeline: drafts đã lưu + workflow duyệt (nếu có)
type SubmitResult struct {
	Items             []contentmodels.ContentItem `json:"items"`
	Workflow          *workflowmodels.Workflow    `json:"workflow,omitempty"`
	Transcript        string                      `json:"transcript"`
	VisualDescription string                      `json:"visualDescription,omitempty"`
	Fallback          bool                        `json:"fallback"`
}
