package webhookhdl

import (
	"io"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Các path không chạm tới store (payload hỏng, thiếu From/Body) phải
// acknowledge 200 với body rỗng — provider diễn giải nội dung response.
func TestReceiveSMS_AckContract(t *testing.T) {
	app := fiber.New()
	h := &WebhookHandler{}
	app.Post("/webhook/sms", h.ReceiveSMS)

	t.Run("✅ thiếu From/Body vẫn 200 body rỗng", func(t *testing.T) {
		req := httptest.NewRequest("POST", "/webhook/sms", strings.NewReader("From=&Body="))
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

		resp, err := app.Test(req)
		require.NoError(t, err)
		defer resp.Body.Close()

		assert.Equal(t, 200, resp.StatusCode)
		body, err := io.ReadAll(resp.Body)
		require.NoError(t, err)
		assert.Empty(t, body)
	})

	t.Run("✅ payload không parse được vẫn 200 body rỗng", func(t *testing.T) {
		req := httptest.NewRequest("POST", "/webhook/sms", strings.NewReader("{broken json"))
		req.Header.Set("Content-Type", "application/json")

		resp, err := app.Test(req)
		require.NoError(t, err)
		defer resp.Body.Close()

		assert.Equal(t, 200, resp.StatusCode)
		body, err := io.ReadAll(resp.Body)
		require.NoError(t, err)
		assert.Empty(t, body)
	})
}
