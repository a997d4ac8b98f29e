// Package submissionrouter đăng ký routes cho domain Submission.
package submissionrouter

import (
	"github.com/gofiber/fiber/v3"

	"github.com/cardinalconseils/chefsocial-voice-sub000/internal/api/middleware"
	apirouter "github.com/cardinalconseils/chefsocial-voice-sub000/internal/api/router"
	submissionhdl "github.com/cardinalconseils/chefsocial-voice-sub000/internal/api/submission/handler"
)

// Register đăng ký routes của domain Submission
func Register(v1 fiber.Router, r *apirouter.Router) error {
	handler, err := submissionhdl.NewSubmissionHandler()
	if err != nil {
		return err
	}

	mws := []fiber.Handler{middleware.RequireAPIToken()}
	return apirouter.RegisterRouteWithMiddleware(v1, fiber.MethodPost, "/submissions/voice", mws, handler.SubmitVoice)
}
