// Package command diễn giải tin nhắn trả lời của chủ nhà hàng thành lệnh.
// Bảng từ vựng là contract cố định được in trong tin nhắn HELP,
// nên parser phải deterministic tuyệt đối: không model, không fuzzy matching.
package command

import "strings"

// Intent là loại lệnh đã nhận diện
type Intent string

const (
	IntentApprove     Intent = "approve"
	IntentEdit        Intent = "edit"
	IntentReject      Intent = "reject"
	IntentView        Intent = "view"
	IntentHelp        Intent = "help"
	IntentSuggestions Intent = "suggestions"
	IntentStatus      Intent = "status"
	IntentSelect      Intent = "select"
	IntentCustom      Intent = "custom"
	IntentUnknown     Intent = "unknown"
)

// Command là kết quả parse một tin nhắn inbound
type Command struct {
	Intent    Intent
	Selection int    // 1-5, chỉ có nghĩa khi Intent == IntentSelect
	RawText   string // nguyên văn sau trim, dùng làm edit instructions khi unknown
}

// aliases map từ khóa chuẩn hóa sang intent.
// Emoji được chấp nhận ngang với từ khóa chữ.
var aliases = map[string]Intent{
	"approve":     IntentApprove,
	"yes":         IntentApprove,
	"✅":           IntentApprove,
	"edit":        IntentEdit,
	"✏️":          IntentEdit,
	"✏":           IntentEdit,
	"reject":      IntentReject,
	"no":          IntentReject,
	"❌":           IntentReject,
	"view":        IntentView,
	"📱":           IntentView,
	"help":        IntentHelp,
	"?":           IntentHelp,
	"suggestions": IntentSuggestions,
	"status":      IntentStatus,
	"custom":      IntentCustom,
}

// Parse diễn giải body tin nhắn thành Command.
// Không phân biệt hoa thường, bỏ khoảng trắng thừa.
// Chữ số đơn 1-5 là chọn suggestion. Mọi thứ khác là unknown
// (unknown mang theo nguyên văn để dùng làm edit instructions).
func Parse(body string) Command {
	raw := strings.TrimSpace(body)
	normalized := strings.ToLower(raw)

	if intent, ok := aliases[normalized]; ok {
		return Command{Intent: intent, RawText: raw}
	}

	if len(normalized) == 1 && normalized[0] >= '1' && normalized[0] <= '5' {
		return Command{
			Intent:    IntentSelect,
			Selection: int(normalized[0] - '0'),
			RawText:   raw,
		}
	}

	return Command{Intent: IntentUnknown, RawText: raw}
}
