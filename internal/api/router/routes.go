// Package apirouter quản lý việc đăng ký routes cho toàn bộ API.
// Mỗi domain tự cung cấp hàm Register(v1, r) và được gom lại trong SetupRoutes.
package apirouter

import (
	"fmt"

	"github.com/gofiber/fiber/v3"

	"github.com/cardinalconseils/chefsocial-voice-sub000/internal/logger"
)

// RoutePrefix chứa các prefix chuẩn của API
type RoutePrefix struct {
	Base string
	V1   string
}

// DefaultRoutePrefix là prefix mặc định
var DefaultRoutePrefix = RoutePrefix{
	Base: "/api",
	V1:   "/api/v1",
}

// Router bọc fiber.Router và giữ prefix chuẩn
type Router struct {
	App    *fiber.App
	Prefix RoutePrefix
}

// NewRouter tạo router mới trên fiber app
func NewRouter(app *fiber.App) *Router {
	return &Router{
		App:    app,
		Prefix: DefaultRoutePrefix,
	}
}

// RegisterRouteWithMiddleware đăng ký route kèm middleware chain.
//
// ⚠️ LƯU Ý Fiber v3: truyền middleware trực tiếp vào app.Get(path, mw, handler)
// không chạy middleware đúng thứ tự trong một số trường hợp group lồng nhau.
// Workaround ổn định: tạo group theo đúng path rồi .Use() middleware lên group.
func RegisterRouteWithMiddleware(router fiber.Router, method string, path string, middlewares []fiber.Handler, handler fiber.Handler) error {
	group := router.Group(path)
	for _, mw := range middlewares {
		group.Use(mw)
	}

	switch method {
	case fiber.MethodGet:
		group.Get("", handler)
	case fiber.MethodPost:
		group.Post("", handler)
	case fiber.MethodPut:
		group.Put("", handler)
	case fiber.MethodPatch:
		group.Patch("", handler)
	case fiber.MethodDelete:
		group.Delete("", handler)
	default:
		return fmt.Errorf("HTTP method không hỗ trợ: %s", method)
	}
	return nil
}

// CRUDHandler là interface mà BaseHandler đã thỏa mãn,
// dùng để đăng ký nhanh các route CRUD chuẩn.
type CRUDHandler interface {
	InsertOne(c fiber.Ctx) error
	FindOneById(c fiber.Ctx) error
	FindWithPagination(c fiber.Ctx) error
	UpdateById(c fiber.Ctx) error
	DeleteById(c fiber.Ctx) error
	CountDocuments(c fiber.Ctx) error
}

// CRUDConfig bật/tắt từng route CRUD cho một resource
type CRUDConfig struct {
	Create bool
	Read   bool
	Update bool
	Delete bool
	Count  bool
}

// ReadOnlyConfig chỉ bật các route đọc
var ReadOnlyConfig = CRUDConfig{Read: true, Count: true}

// ReadWriteConfig bật toàn bộ CRUD
var ReadWriteConfig = CRUDConfig{Create: true, Read: true, Update: true, Delete: true, Count: true}

// RegisterCRUDRoutes đăng ký các route CRUD chuẩn cho một resource
func RegisterCRUDRoutes(router fiber.Router, basePath string, handler CRUDHandler, cfg CRUDConfig, middlewares []fiber.Handler) error {
	if cfg.Count {
		if err := RegisterRouteWithMiddleware(router, fiber.MethodGet, basePath+"/count", middlewares, handler.CountDocuments); err != nil {
			return err
		}
	}
	if cfg.Read {
		if err := RegisterRouteWithMiddleware(router, fiber.MethodGet, basePath, middlewares, handler.FindWithPagination); err != nil {
			return err
		}
		if err := RegisterRouteWithMiddleware(router, fiber.MethodGet, basePath+"/:id", middlewares, handler.FindOneById); err != nil {
			return err
		}
	}
	if cfg.Create {
		if err := RegisterRouteWithMiddleware(router, fiber.MethodPost, basePath, middlewares, handler.InsertOne); err != nil {
			return err
		}
	}
	if cfg.Update {
		if err := RegisterRouteWithMiddleware(router, fiber.MethodPut, basePath+"/:id", middlewares, handler.UpdateById); err != nil {
			return err
		}
	}
	if cfg.Delete {
		if err := RegisterRouteWithMiddleware(router, fiber.MethodDelete, basePath+"/:id", middlewares, handler.DeleteById); err != nil {
			return err
		}
	}
	return nil
}

// RegisterFunc là hàm đăng ký routes của một domain
type RegisterFunc func(v1 fiber.Router, r *Router) error

// SetupRoutes gom việc đăng ký routes của tất cả domains
func SetupRoutes(app *fiber.App, regs ...RegisterFunc) error {
	log := logger.GetAppLogger()
	r := NewRouter(app)
	v1 := app.Group(r.Prefix.V1)

	for _, reg := range regs {
		if err := reg(v1, r); err != nil {
			return fmt.Errorf("failed to register routes: %w", err)
		}
	}

	log.WithField("prefix", r.Prefix.V1).Info("✅ API routes registered")
	return nil
}
