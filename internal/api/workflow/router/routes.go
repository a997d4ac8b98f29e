// Package workflowrouter đăng ký routes cho domain Workflow.
package workflowrouter

import (
	"github.com/gofiber/fiber/v3"

	"github.com/cardinalconseils/chefsocial-voice-sub000/internal/api/middleware"
	apirouter "github.com/cardinalconseils/chefsocial-voice-sub000/internal/api/router"
	workflowhdl "github.com/cardinalconseils/chefsocial-voice-sub000/internal/api/workflow/handler"
)

// Register đăng ký routes của domain Workflow.
// Không có PUT/DELETE: trạng thái chỉ đổi qua engine (SMS hoặc resend).
func Register(v1 fiber.Router, r *apirouter.Router) error {
	handler, err := workflowhdl.NewWorkflowHandler()
	if err != nil {
		return err
	}

	mws := []fiber.Handler{middleware.RequireAPIToken()}

	if err := apirouter.RegisterRouteWithMiddleware(v1, fiber.MethodPost, "/workflows/approval", mws, handler.CreateApproval); err != nil {
		return err
	}
	if err := apirouter.RegisterRouteWithMiddleware(v1, fiber.MethodGet, "/workflows/by-user/:userId", mws, handler.FindByUser); err != nil {
		return err
	}
	if err := apirouter.RegisterRouteWithMiddleware(v1, fiber.MethodPost, "/workflows/:id/resend", mws, handler.Resend); err != nil {
		return err
	}
	return apirouter.RegisterRouteWithMiddleware(v1, fiber.MethodGet, "/workflows/:id", mws, handler.FindOneById)
}
