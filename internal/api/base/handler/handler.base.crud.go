package basehdl

import (
	"encoding/json"

	"github.com/gofiber/fiber/v3"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/options"

	basesvc "github.com/cardinalconseils/chefsocial-voice-sub000/internal/api/base/service"
	"github.com/cardinalconseils/chefsocial-voice-sub000/internal/common"
	"github.com/cardinalconseils/chefsocial-voice-sub000/internal/global"
	"github.com/cardinalconseils/chefsocial-voice-sub000/internal/utility"
)

// FilterOptions giới hạn filter mà client được phép gửi qua query param
type FilterOptions struct {
	DeniedFields []string // các fields không cho phép filter
	MaxFields    int      // số field tối đa trong một filter
}

// DefaultFilterOptions trả về cấu hình filter mặc định
func DefaultFilterOptions() FilterOptions {
	return FilterOptions{
		DeniedFields: []string{},
		MaxFields:    10,
	}
}

// BaseHandler là generic handler CRUD cho một model T với input DTO riêng.
// Domain handler embed BaseHandler và chỉ viết thêm các route đặc thù.
type BaseHandler[T any, CreateInput any, UpdateInput any] struct {
	Service       basesvc.BaseServiceMongo[T]
	FilterOptions FilterOptions
}

// ParsePagination đọc page/limit từ query string, mặc định 1/20.
// Giá trị không parse được nhận mặc định (helper generic của Fiber v3).
func ParsePagination(c fiber.Ctx) (int64, int64) {
	page := int64(fiber.Query(c, "page", 1))
	limit := int64(fiber.Query(c, "limit", 20))
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 20
	}
	return page, limit
}

// ParseRequestBody parse JSON body vào DTO
func (h *BaseHandler[T, C, U]) ParseRequestBody(c fiber.Ctx, input interface{}) error {
	if err := c.Bind().Body(input); err != nil {
		return common.NewError(common.CodeInvalidFormat, "Body không đúng định dạng JSON", common.StatusBadRequest, err)
	}
	return nil
}

// ValidateInput validate DTO bằng validator toàn cục
func (h *BaseHandler[T, C, U]) ValidateInput(input interface{}) error {
	if global.Validate == nil {
		return nil
	}
	if err := global.Validate.Struct(input); err != nil {
		return common.NewError(common.CodeInvalidInput, common.MsgValidationFailed, common.StatusBadRequest, err).
			WithDetails(map[string]interface{}{"validation": err.Error()})
	}
	return nil
}

// ParseIDParam lấy và parse :id param thành ObjectID
func (h *BaseHandler[T, C, U]) ParseIDParam(c fiber.Ctx) (primitive.ObjectID, error) {
	id, err := utility.String2ObjectID(c.Params("id"))
	if err != nil {
		return primitive.NilObjectID, common.NewError(common.CodeInvalidFormat, "ID không hợp lệ", common.StatusBadRequest, err)
	}
	return id, nil
}

// ParseFilter parse query param `filter` (JSON) thành bson.M, áp FilterOptions.
func (h *BaseHandler[T, C, U]) ParseFilter(c fiber.Ctx) (bson.M, error) {
	raw := c.Query("filter")
	if raw == "" {
		return bson.M{}, nil
	}

	var filter map[string]interface{}
	if err := json.Unmarshal([]byte(raw), &filter); err != nil {
		return nil, common.NewError(common.CodeInvalidFormat, "Filter không đúng định dạng JSON", common.StatusBadRequest, err)
	}

	if h.FilterOptions.MaxFields > 0 && len(filter) > h.FilterOptions.MaxFields {
		return nil, common.NewError(common.CodeInvalidInput, "Filter có quá nhiều fields", common.StatusBadRequest, nil)
	}
	for _, denied := range h.FilterOptions.DeniedFields {
		if _, ok := filter[denied]; ok {
			return nil, common.NewError(common.CodeInvalidInput, "Filter chứa field không được phép", common.StatusBadRequest, nil).
				WithDetails(map[string]interface{}{"field": denied})
		}
	}
	return bson.M(filter), nil
}

// transformToModel chuyển DTO sang model qua JSON roundtrip
func transformToModel[T any](input interface{}) (T, error) {
	var model T
	bytes, err := json.Marshal(input)
	if err != nil {
		return model, common.NewError(common.CodeSystemError, "Không chuyển đổi được dữ liệu", common.StatusInternalServerError, err)
	}
	if err := json.Unmarshal(bytes, &model); err != nil {
		return model, common.NewError(common.CodeSystemError, "Không chuyển đổi được dữ liệu", common.StatusInternalServerError, err)
	}
	return model, nil
}

// InsertOne xử lý POST / — parse, validate, transform, insert
func (h *BaseHandler[T, C, U]) InsertOne(c fiber.Ctx) error {
	return SafeHandler(c, func() error {
		var input C
		if err := h.ParseRequestBody(c, &input); err != nil {
			return HandleResponse(c, nil, err)
		}
		if err := h.ValidateInput(&input); err != nil {
			return HandleResponse(c, nil, err)
		}

		model, err := transformToModel[T](input)
		if err != nil {
			return HandleResponse(c, nil, err)
		}

		result, err := h.Service.InsertOne(c.Context(), model)
		return HandleResponse(c, result, err)
	})
}

// FindOneById xử lý GET /:id
func (h *BaseHandler[T, C, U]) FindOneById(c fiber.Ctx) error {
	return SafeHandler(c, func() error {
		id, err := h.ParseIDParam(c)
		if err != nil {
			return HandleResponse(c, nil, err)
		}
		result, err := h.Service.FindOneById(c.Context(), id)
		return HandleResponse(c, result, err)
	})
}

// FindWithPagination xử lý GET / với filter + page + limit
func (h *BaseHandler[T, C, U]) FindWithPagination(c fiber.Ctx) error {
	return SafeHandler(c, func() error {
		filter, err := h.ParseFilter(c)
		if err != nil {
			return HandleResponse(c, nil, err)
		}

		page, limit := ParsePagination(c)

		opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
		result, err := h.Service.FindWithPagination(c.Context(), filter, page, limit, opts)
		return HandleResponse(c, result, err)
	})
}

// UpdateById xử lý PUT /:id — chỉ $set các fields có trong DTO
func (h *BaseHandler[T, C, U]) UpdateById(c fiber.Ctx) error {
	return SafeHandler(c, func() error {
		id, err := h.ParseIDParam(c)
		if err != nil {
			return HandleResponse(c, nil, err)
		}

		var input U
		if err := h.ParseRequestBody(c, &input); err != nil {
			return HandleResponse(c, nil, err)
		}
		if err := h.ValidateInput(&input); err != nil {
			return HandleResponse(c, nil, err)
		}

		setMap, err := utility.ToMap(input)
		if err != nil {
			return HandleResponse(c, nil, common.NewError(common.CodeSystemError, "Không chuyển đổi được dữ liệu", common.StatusInternalServerError, err))
		}
		// Bỏ các field null để update partial không ghi đè
		for k, v := range setMap {
			if v == nil {
				delete(setMap, k)
			}
		}

		result, err := h.Service.UpdateById(c.Context(), id, &basesvc.UpdateData{Set: setMap})
		return HandleResponse(c, result, err)
	})
}

// DeleteById xử lý DELETE /:id
func (h *BaseHandler[T, C, U]) DeleteById(c fiber.Ctx) error {
	return SafeHandler(c, func() error {
		id, err := h.ParseIDParam(c)
		if err != nil {
			return HandleResponse(c, nil, err)
		}
		err = h.Service.DeleteById(c.Context(), id)
		return HandleResponse(c, fiber.Map{"deleted": err == nil}, err)
	})
}

// CountDocuments xử lý GET /count
func (h *BaseHandler[T, C, U]) CountDocuments(c fiber.Ctx) error {
	return SafeHandler(c, func() error {
		filter, err := h.ParseFilter(c)
		if err != nil {
			return HandleResponse(c, nil, err)
		}
		count, err := h.Service.CountDocuments(c.Context(), filter)
		return HandleResponse(c, fiber.Map{"count": count}, err)
	})
}
