// Package contentrouter đăng ký routes cho domain Content.
package contentrouter

import (
	"github.com/gofiber/fiber/v3"

	contenthdl "github.com/cardinalconseils/chefsocial-voice-sub000/internal/api/content/handler"
	"github.com/cardinalconseils/chefsocial-voice-sub000/internal/api/middleware"
	apirouter "github.com/cardinalconseils/chefsocial-voice-sub000/internal/api/router"
)

// Register đăng ký routes của domain Content
func Register(v1 fiber.Router, r *apirouter.Router) error {
	handler, err := contenthdl.NewContentItemHandler()
	if err != nil {
		return err
	}

	mws := []fiber.Handler{middleware.RequireAPIToken()}

	// Đăng ký by-user trước để không bị route /:id nuốt mất
	if err := apirouter.RegisterRouteWithMiddleware(v1, fiber.MethodGet, "/content-items/by-user/:userId", mws, handler.FindByUser); err != nil {
		return err
	}

	// Items do pipeline tạo: surface chỉ đọc + update caption/tags
	cfg := apirouter.CRUDConfig{Read: true, Update: true, Count: true}
	return apirouter.RegisterCRUDRoutes(v1, "/content-items", handler, cfg, mws)
}
