// Package middleware chứa các middleware dùng chung cho API.
package middleware

import (
	"crypto/subtle"
	"strings"

	"github.com/gofiber/fiber/v3"

	basehdl "github.com/cardinalconseils/chefsocial-voice-sub000/internal/api/base/handler"
	"github.com/cardinalconseils/chefsocial-voice-sub000/internal/common"
	"github.com/cardinalconseils/chefsocial-voice-sub000/internal/global"
)

// RequireAPIToken kiểm tra bearer token tĩnh cho các endpoint vận hành.
// Webhook inbound không dùng middleware này (provider không gửi token của ta).
func RequireAPIToken() fiber.Handler {
	return func(c fiber.Ctx) error {
		token := strings.TrimPrefix(c.Get("Authorization"), "Bearer ")
		expected := ""
		if global.Config != nil {
			expected = global.Config.APIAccessToken
		}

		if expected == "" || subtle.ConstantTimeCompare([]byte(token), []byte(expected)) != 1 {
			return basehdl.HandleResponse(c, nil, common.ErrUnauthorized)
		}
		return c.Next()
	}
}
