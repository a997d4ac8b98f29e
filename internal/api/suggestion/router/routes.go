// Package suggestionrouter đăng ký routes cho domain Suggestion.
package suggestionrouter

import (
	"github.com/gofiber/fiber/v3"

	"github.com/cardinalconseils/chefsocial-voice-sub000/internal/api/middleware"
	apirouter "github.com/cardinalconseils/chefsocial-voice-sub000/internal/api/router"
	suggestionhdl "github.com/cardinalconseils/chefsocial-voice-sub000/internal/api/suggestion/handler"
)

// Register đăng ký routes của domain Suggestion
func Register(v1 fiber.Router, r *apirouter.Router) error {
	handler, err := suggestionhdl.NewSuggestionHandler()
	if err != nil {
		return err
	}

	mws := []fiber.Handler{middleware.RequireAPIToken()}

	if err := apirouter.RegisterRouteWithMiddleware(v1, fiber.MethodPost, "/suggestions/daily", mws, handler.TriggerDaily); err != nil {
		return err
	}
	if err := apirouter.RegisterRouteWithMiddleware(v1, fiber.MethodGet, "/suggestions/daily/:userId", mws, handler.PreviewDaily); err != nil {
		return err
	}

	return apirouter.RegisterCRUDRoutes(v1, "/restaurant-profiles", handler, apirouter.ReadWriteConfig, mws)
}
