// Package workflowdto chứa DTO cho domain Workflow.
package workflowdto

// ApprovalCreateInput là input tạo approval workflow cho một content item.
// Phone bỏ trống thì lấy từ restaurant profile của chủ item.
type ApprovalCreateInput struct {
	ItemID string `json:"itemId" validate:"required"`
	Phone  string `json:"phone" validate:"omitempty,phone_e164"`
}

// ResendInput là input gửi lại preview của một workflow
type ResendInput struct {
	WorkflowID string `json:"workflowId" validate:"required"`
}
