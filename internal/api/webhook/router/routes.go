// Package webhookrouter đăng ký routes cho domain Webhook.
package webhookrouter

import (
	"github.com/gofiber/fiber/v3"

	"github.com/cardinalconseils/chefsocial-voice-sub000/internal/api/middleware"
	apirouter "github.com/cardinalconseils/chefsocial-voice-sub000/internal/api/router"
	webhookhdl "github.com/cardinalconseils/chefsocial-voice-sub000/internal/api/webhook/handler"
)

// Register đăng ký routes của domain Webhook.
// Webhook không dùng API token: xác thực bằng HMAC signature của provider.
func Register(v1 fiber.Router, r *apirouter.Router) error {
	handler, err := webhookhdl.NewWebhookHandler()
	if err != nil {
		return err
	}

	mws := []fiber.Handler{middleware.VerifyWebhookSignature()}
	return apirouter.RegisterRouteWithMiddleware(v1, fiber.MethodPost, "/webhook/sms", mws, handler.ReceiveSMS)
}
