package command

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParse(t *testing.T) {
	t.Run("✅ Nhận diện từ khóa chuẩn", func(t *testing.T) {
		cases := map[string]Intent{
			"APPROVE":     IntentApprove,
			"approve":     IntentApprove,
			"YES":         IntentApprove,
			"✅":           IntentApprove,
			"EDIT":        IntentEdit,
			"✏️":          IntentEdit,
			"REJECT":      IntentReject,
			"NO":          IntentReject,
			"❌":           IntentReject,
			"VIEW":        IntentView,
			"📱":           IntentView,
			"HELP":        IntentHelp,
			"?":           IntentHelp,
			"SUGGESTIONS": IntentSuggestions,
			"STATUS":      IntentStatus,
			"CUSTOM":      IntentCustom,
		}
		for body, want := range cases {
			cmd := Parse(body)
			assert.Equal(t, want, cmd.Intent, "body=%q", body)
		}
	})

	t.Run("✅ Không phân biệt hoa thường và khoảng trắng", func(t *testing.T) {
		assert.Equal(t, IntentApprove, Parse("  ApPrOvE  ").Intent)
		assert.Equal(t, IntentReject, Parse("\tno\n").Intent)
	})

	t.Run("✅ Chữ số 1-5 là chọn suggestion", func(t *testing.T) {
		for n := 1; n <= 5; n++ {
			cmd := Parse(string(rune('0' + n)))
			assert.Equal(t, IntentSelect, cmd.Intent)
			assert.Equal(t, n, cmd.Selection)
		}
	})

	t.Run("❌ Chữ số ngoài 1-5 không phải select", func(t *testing.T) {
		assert.Equal(t, IntentUnknown, Parse("0").Intent)
		assert.Equal(t, IntentUnknown, Parse("6").Intent)
		assert.Equal(t, IntentUnknown, Parse("12").Intent)
	})

	t.Run("✅ Unknown giữ nguyên văn để làm edit instructions", func(t *testing.T) {
		cmd := Parse("  make it shorter and add the daily special  ")
		assert.Equal(t, IntentUnknown, cmd.Intent)
		assert.Equal(t, "make it shorter and add the daily special", cmd.RawText)
	})

	t.Run("❌ Chuỗi rỗng là unknown", func(t *testing.T) {
		cmd := Parse("   ")
		assert.Equal(t, IntentUnknown, cmd.Intent)
		assert.Equal(t, "", cmd.RawText)
	})
}
