package main

import (
	"fmt"
	"strings"
	"time"

	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/middleware/cors"
	"github.com/gofiber/fiber/v3/middleware/limiter"
	"github.com/gofiber/fiber/v3/middleware/recover"
	"github.com/gofiber/fiber/v3/middleware/requestid"

	contentrouter "github.com/cardinalconseils/chefsocial-voice-sub000/internal/api/content/router"
	deliveryrouter "github.com/cardinalconseils/chefsocial-voice-sub000/internal/api/delivery/router"
	apirouter "github.com/cardinalconseils/chefsocial-voice-sub000/internal/api/router"
	submissionrouter "github.com/cardinalconseils/chefsocial-voice-sub000/internal/api/submission/router"
	suggestionrouter "github.com/cardinalconseils/chefsocial-voice-sub000/internal/api/suggestion/router"
	webhookrouter "github.com/cardinalconseils/chefsocial-voice-sub000/internal/api/webhook/router"
	workflowrouter "github.com/cardinalconseils/chefsocial-voice-sub000/internal/api/workflow/router"
	"github.com/cardinalconseils/chefsocial-voice-sub000/internal/common"
	"github.com/cardinalconseils/chefsocial-voice-sub000/internal/global"
	"github.com/cardinalconseils/chefsocial-voice-sub000/internal/logger"
)

// InitFiberApp khởi tạo ứng dụng Fiber với middleware stack và routes
func InitFiberApp() *fiber.App {
	log := logger.GetAppLogger()

	app := fiber.New(fiber.Config{
		AppName:       "ChefSocial Voice API",
		ServerHeader:  "ChefSocial Voice API",
		StrictRouting: true,
		CaseSensitive: true,
		UnescapePath:  true,

		// Audio base64 trong submission payload có thể lớn
		BodyLimit:       25 * 1024 * 1024,
		Concurrency:     256 * 1024,
		ReadBufferSize:  4096,
		WriteBufferSize: 4096,

		ReadTimeout:  60 * time.Second, // submission pipeline chờ AI provider
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  120 * time.Second,

		ErrorHandler: func(c fiber.Ctx, err error) error {
			code := fiber.StatusInternalServerError
			message := common.MsgInternalError
			errorCode := common.CodeSystemError.Code

			if e, ok := err.(*fiber.Error); ok {
				code = e.Code
				message = e.Message
				switch code {
				case fiber.StatusBadRequest:
					errorCode = common.CodeInvalidInput.Code
				case fiber.StatusUnauthorized:
					errorCode = common.CodeUnauthorized.Code
				case fiber.StatusNotFound:
					errorCode = common.CodeNotFound.Code
				}
			}

			logger.WithRequest(c).WithFields(map[string]interface{}{
				"code":      code,
				"errorCode": errorCode,
			}).Error("Request error")

			return c.Status(code).JSON(fiber.Map{
				"code":    errorCode,
				"message": message,
				"status":  "error",
			})
		},
	})

	// 1. Request ID để trace request qua logs
	app.Use(requestid.New(requestid.Config{
		Header: "X-Request-ID",
		Generator: func() string {
			return fmt.Sprintf("%d", time.Now().UnixNano())
		},
	}))

	// 2. CORS - đặt trước các middleware khác để xử lý preflight
	var allowOrigins []string
	if corsOrigins := global.Config.CORS; corsOrigins == "*" {
		allowOrigins = []string{"*"}
	} else {
		allowOrigins = strings.Split(corsOrigins, ",")
		for i, origin := range allowOrigins {
			allowOrigins[i] = strings.TrimSpace(origin)
		}
	}
	app.Use(cors.New(cors.Config{
		AllowOrigins:  allowOrigins,
		AllowMethods:  []string{"GET", "POST", "PUT", "DELETE", "PATCH", "HEAD", "OPTIONS"},
		AllowHeaders:  []string{"Origin", "Content-Type", "Accept", "Authorization", "X-Request-ID", "X-Webhook-Signature"},
		ExposeHeaders: []string{"Content-Length", "X-Request-ID"},
		MaxAge:        24 * 60 * 60,
	}))

	// 3. Rate limiting - bỏ qua health check, OPTIONS và webhook
	// (provider retry webhook không được nằm trong rate limit của client)
	if max := global.Config.RateLimit; max > 0 {
		app.Use(limiter.New(limiter.Config{
			Max:        max,
			Expiration: 60 * time.Second,
			KeyGenerator: func(c fiber.Ctx) string {
				return c.IP()
			},
			LimitReached: func(c fiber.Ctx) error {
				return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{
					"code":    common.CodeRateLimited.Code,
					"message": "Quá nhiều yêu cầu, vui lòng thử lại sau",
					"status":  "error",
				})
			},
			Next: func(c fiber.Ctx) bool {
				return c.Path() == "/health" ||
					c.Method() == "OPTIONS" ||
					strings.HasPrefix(c.Path(), "/api/v1/webhook/")
			},
		}))
		log.Infof("Rate limiting enabled: %d requests per 60 seconds", max)
	} else {
		log.Info("Rate limiting disabled")
	}

	// 4. Recover với stack trace
	app.Use(recover.New(recover.Config{
		EnableStackTrace: true,
		StackTraceHandler: func(c fiber.Ctx, e interface{}) {
			logger.WithRequest(c).WithFields(map[string]interface{}{
				"panic": e,
			}).Error("Panic recovered")
		},
		Next: func(c fiber.Ctx) bool {
			return c.Path() == "/health"
		},
	}))

	// Health check không qua auth
	app.Get("/health", func(c fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "time": time.Now().Format(time.RFC3339)})
	})

	if err := apirouter.SetupRoutes(app,
		submissionrouter.Register,
		contentrouter.Register,
		workflowrouter.Register,
		suggestionrouter.Register,
		webhookrouter.Register,
		deliveryrouter.Register,
	); err != nil {
		log.Fatalf("Failed to setup routes: %v", err)
	}

	return app
}
