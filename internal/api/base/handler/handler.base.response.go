// Package basehdl cung cấp generic handler và response envelope chuẩn.
package basehdl

import (
	"errors"
	"fmt"

	"github.com/gofiber/fiber/v3"

	"github.com/cardinalconseils/chefsocial-voice-sub000/internal/common"
	"github.com/cardinalconseils/chefsocial-voice-sub000/internal/logger"
)

// JSONResponse trả về JSON với charset utf-8 (caption/tags có tiếng Việt, emoji)
func JSONResponse(c fiber.Ctx, statusCode int, data interface{}) error {
	c.Set("Content-Type", "application/json; charset=utf-8")
	return c.Status(statusCode).JSON(data)
}

// HandleResponse trả về response theo envelope chuẩn:
//
//	thành công: {code: 200, message, data, status: "success"}
//	lỗi:        {code, message, details, status: "error"}
func HandleResponse(c fiber.Ctx, data interface{}, err error) error {
	if err != nil {
		var customErr *common.Error
		if errors.As(err, &customErr) {
			body := fiber.Map{
				"code":    customErr.Code.Code,
				"message": customErr.Message,
				"status":  "error",
			}
			if customErr.Details != nil {
				body["details"] = customErr.Details
			}
			return JSONResponse(c, customErr.StatusCode, body)
		}

		// Lỗi không xác định: không leak message gốc ra ngoài
		logger.WithRequest(c).WithError(err).Error("Unhandled error in request")
		return JSONResponse(c, common.StatusInternalServerError, fiber.Map{
			"code":    common.CodeSystemError.Code,
			"message": common.MsgInternalError,
			"status":  "error",
		})
	}

	return JSONResponse(c, common.StatusOK, fiber.Map{
		"code":    common.StatusOK,
		"message": common.MsgSuccess,
		"data":    data,
		"status":  "success",
	})
}

// SafeHandler bọc handler với recover, panic trong handler không làm chết server
func SafeHandler(c fiber.Ctx, fn func() error) error {
	var err error
	func() {
		defer func() {
			if r := recover(); r != nil {
				logger.WithRequest(c).WithField("panic", fmt.Sprintf("%v", r)).Error("Handler panic recovered")
				err = HandleResponse(c, nil, common.ErrSystem)
			}
		}()
		err = fn()
	}()
	return err
}

// SafeHandlerWrapper chuyển một handler thường thành handler có recover
func SafeHandlerWrapper(fn func(c fiber.Ctx) error) fiber.Handler {
	return func(c fiber.Ctx) error {
		return SafeHandler(c, func() error {
			return fn(c)
		})
	}
}
