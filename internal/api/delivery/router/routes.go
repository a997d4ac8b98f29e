// Package deliveryrouter đăng ký routes cho domain Delivery.
package deliveryrouter

import (
	"github.com/gofiber/fiber/v3"

	deliveryhdl "github.com/cardinalconseils/chefsocial-voice-sub000/internal/api/delivery/handler"
	"github.com/cardinalconseils/chefsocial-voice-sub000/internal/api/middleware"
	apirouter "github.com/cardinalconseils/chefsocial-voice-sub000/internal/api/router"
)

// Register đăng ký routes của domain Delivery (chỉ cho operator)
func Register(v1 fiber.Router, r *apirouter.Router) error {
	handler, err := deliveryhdl.NewDeliveryHandler()
	if err != nil {
		return err
	}

	mws := []fiber.Handler{middleware.RequireAPIToken()}

	if err := apirouter.RegisterRouteWithMiddleware(v1, fiber.MethodPost, "/delivery/resend/:id", mws, handler.Resend); err != nil {
		return err
	}
	if err := apirouter.RegisterRouteWithMiddleware(v1, fiber.MethodGet, "/delivery/history/:queueItemId", mws, handler.FindHistory); err != nil {
		return err
	}

	cfg := apirouter.CRUDConfig{Create: true, Read: true, Count: true}
	return apirouter.RegisterCRUDRoutes(v1, "/delivery/queue", handler, cfg, mws)
}
