package middleware

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"

	"github.com/gofiber/fiber/v3"

	basehdl "github.com/cardinalconseils/chefsocial-voice-sub000/internal/api/base/handler"
	"github.com/cardinalconseils/chefsocial-voice-sub000/internal/common"
	"github.com/cardinalconseils/chefsocial-voice-sub000/internal/global"
	"github.com/cardinalconseils/chefsocial-voice-sub000/internal/logger"
)

// VerifyWebhookSignature kiểm tra HMAC-SHA256 của raw body với secret cấu hình.
// Secret rỗng nghĩa là môi trường dev/test: bỏ qua kiểm tra.
// Header: X-Webhook-Signature (hex).
func VerifyWebhookSignature() fiber.Handler {
	return func(c fiber.Ctx) error {
		secret := ""
		if global.Config != nil {
			secret = global.Config.WebhookAuthSecret
		}
		if secret == "" {
			return c.Next()
		}

		mac := hmac.New(sha256.New, []byte(secret))
		mac.Write(c.Body())
		expected := hex.EncodeToString(mac.Sum(nil))

		got := c.Get("X-Webhook-Signature")
		if !hmac.Equal([]byte(expected), []byte(got)) {
			logger.WithRequest(c).Warn("📱 [SMS WEBHOOK] Signature không hợp lệ, từ chối request")
			return basehdl.HandleResponse(c, nil, common.ErrBadSignature)
		}
		return c.Next()
	}
}
