package common

import (
	"fmt"
	"net/http"
	"strings"

	"go.mongodb.org/mongo-driver/mongo"
)

// ====================================
// HTTP STATUS CODES
// ====================================

const (
	StatusOK                  = http.StatusOK
	StatusCreated             = http.StatusCreated
	StatusNoContent           = http.StatusNoContent
	StatusBadRequest          = http.StatusBadRequest
	StatusUnauthorized        = http.StatusUnauthorized
	StatusForbidden           = http.StatusForbidden
	StatusNotFound            = http.StatusNotFound
	StatusConflict            = http.StatusConflict
	StatusTooManyRequests     = http.StatusTooManyRequests
	StatusInternalServerError = http.StatusInternalServerError
	StatusServiceUnavailable  = http.StatusServiceUnavailable
)

// ====================================
// RESPONSE MESSAGES
// ====================================

const (
	MsgSuccess          = "Thao tác thành công"
	MsgCreated          = "Tạo mới thành công"
	MsgUpdated          = "Cập nhật thành công"
	MsgDeleted          = "Xóa thành công"
	MsgNotFound         = "Không tìm thấy dữ liệu"
	MsgBadRequest       = "Yêu cầu không hợp lệ"
	MsgValidationFailed = "Dữ liệu không hợp lệ"
	MsgInternalError    = "Lỗi hệ thống, vui lòng thử lại sau"
	MsgWebhookReceived  = "Webhook đã được nhận và lưu log"
)

// ====================================
// ERROR CODES
// ====================================

// ErrorCode định nghĩa mã lỗi có cấu trúc: <CATEGORY>_<NUMBER>
type ErrorCode struct {
	Code        string // Mã lỗi, ví dụ: "WF_001"
	Category    string // Nhóm lỗi: SYS, VAL, DB, BIZ, WF, AI, DLV
	Description string // Mô tả ngắn cho dev
}

var (
	// Hệ thống
	CodeSystemError  = ErrorCode{Code: "SYS_001", Category: "SYS", Description: "Lỗi hệ thống không xác định"}
	CodeConfigError  = ErrorCode{Code: "SYS_002", Category: "SYS", Description: "Lỗi cấu hình"}
	CodeUnauthorized = ErrorCode{Code: "SYS_003", Category: "SYS", Description: "Thiếu hoặc sai token truy cập"}
	CodeRateLimited  = ErrorCode{Code: "SYS_004", Category: "SYS", Description: "Vượt giới hạn request"}
	CodeBadSignature = ErrorCode{Code: "SYS_005", Category: "SYS", Description: "Chữ ký webhook không hợp lệ"}

	// Validation
	CodeInvalidInput  = ErrorCode{Code: "VAL_001", Category: "VAL", Description: "Dữ liệu đầu vào không hợp lệ"}
	CodeInvalidFormat = ErrorCode{Code: "VAL_002", Category: "VAL", Description: "Định dạng dữ liệu không hợp lệ"}
	CodeRequiredField = ErrorCode{Code: "VAL_003", Category: "VAL", Description: "Thiếu trường bắt buộc"}
	CodeInvalidAudio  = ErrorCode{Code: "VAL_004", Category: "VAL", Description: "Audio không hợp lệ hoặc không decode được"}

	// Database
	CodeDatabaseError = ErrorCode{Code: "DB_001", Category: "DB", Description: "Lỗi thao tác database"}
	CodeNotFound      = ErrorCode{Code: "DB_002", Category: "DB", Description: "Không tìm thấy bản ghi"}
	CodeDuplicate     = ErrorCode{Code: "DB_003", Category: "DB", Description: "Bản ghi đã tồn tại"}

	// Business
	CodeBusinessRule = ErrorCode{Code: "BIZ_001", Category: "BIZ", Description: "Vi phạm quy tắc nghiệp vụ"}

	// Workflow
	CodeWorkflowNotFound = ErrorCode{Code: "WF_001", Category: "WF", Description: "Không tìm thấy workflow"}
	CodeWorkflowTerminal = ErrorCode{Code: "WF_002", Category: "WF", Description: "Workflow đã ở trạng thái kết thúc"}
	CodeWorkflowExpired  = ErrorCode{Code: "WF_003", Category: "WF", Description: "Workflow đã hết hạn"}
	CodeWorkflowConflict = ErrorCode{Code: "WF_004", Category: "WF", Description: "Content item đã có workflow đang hoạt động"}
	CodeWorkflowRaced    = ErrorCode{Code: "WF_005", Category: "WF", Description: "Transition thua CAS với request khác"}

	// AI adapters
	CodeAIRateLimited = ErrorCode{Code: "AI_001", Category: "AI", Description: "Provider AI trả về rate limit"}
	CodeAIAuthFailed  = ErrorCode{Code: "AI_002", Category: "AI", Description: "Provider AI từ chối credentials"}
	CodeAITransient   = ErrorCode{Code: "AI_003", Category: "AI", Description: "Lỗi tạm thời từ provider AI"}
	CodeAIBadOutput   = ErrorCode{Code: "AI_004", Category: "AI", Description: "Output của model không parse được"}

	// Delivery
	CodeDeliveryFailed = ErrorCode{Code: "DLV_001", Category: "DLV", Description: "Gửi tin nhắn thất bại"}
)

// ====================================
// ERROR TYPE
// ====================================

// Error là custom error của toàn hệ thống, mang theo mã lỗi và HTTP status.
type Error struct {
	Code       ErrorCode
	Message    string
	StatusCode int
	Details    map[string]interface{}
	Err        error // lỗi gốc (nếu có)
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("[%s] %s", e.Code.Code, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Is so sánh theo mã lỗi, cho phép errors.Is với các error định nghĩa sẵn.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return e.Code.Code == t.Code.Code
}

// NewError tạo Error mới với mã lỗi, message và HTTP status.
func NewError(code ErrorCode, message string, statusCode int, err error) *Error {
	return &Error{
		Code:       code,
		Message:    message,
		StatusCode: statusCode,
		Err:        err,
	}
}

// WithDetails gắn thêm chi tiết vào error (trả về chính error để chain).
func (e *Error) WithDetails(details map[string]interface{}) *Error {
	e.Details = details
	return e
}

// ====================================
// PREDEFINED ERRORS
// ====================================

var (
	ErrSystem           = NewError(CodeSystemError, MsgInternalError, StatusInternalServerError, nil)
	ErrUnauthorized     = NewError(CodeUnauthorized, "Không có quyền truy cập", StatusUnauthorized, nil)
	ErrBadSignature     = NewError(CodeBadSignature, "Chữ ký webhook không hợp lệ", StatusUnauthorized, nil)
	ErrInvalidInput     = NewError(CodeInvalidInput, MsgValidationFailed, StatusBadRequest, nil)
	ErrInvalidFormat    = NewError(CodeInvalidFormat, "Định dạng dữ liệu không hợp lệ", StatusBadRequest, nil)
	ErrRequiredField    = NewError(CodeRequiredField, "Thiếu trường bắt buộc", StatusBadRequest, nil)
	ErrInvalidAudio     = NewError(CodeInvalidAudio, "Audio không hợp lệ", StatusBadRequest, nil)
	ErrNotFound         = NewError(CodeNotFound, MsgNotFound, StatusNotFound, nil)
	ErrDuplicate        = NewError(CodeDuplicate, "Bản ghi đã tồn tại", StatusConflict, nil)
	ErrDatabase         = NewError(CodeDatabaseError, "Lỗi thao tác database", StatusInternalServerError, nil)
	ErrWorkflowNotFound = NewError(CodeWorkflowNotFound, "Không tìm thấy workflow", StatusNotFound, nil)
	ErrWorkflowTerminal = NewError(CodeWorkflowTerminal, "Workflow đã kết thúc, không thể thay đổi", StatusConflict, nil)
	ErrWorkflowExpired  = NewError(CodeWorkflowExpired, "Workflow đã hết hạn", StatusConflict, nil)
	ErrWorkflowConflict = NewError(CodeWorkflowConflict, "Content item đã có workflow đang hoạt động", StatusConflict, nil)
	ErrWorkflowRaced    = NewError(CodeWorkflowRaced, "Transition không áp dụng được", StatusConflict, nil)
	ErrDeliveryFailed   = NewError(CodeDeliveryFailed, "Gửi tin nhắn thất bại", StatusServiceUnavailable, nil)
)

// ====================================
// MONGO ERROR CONVERSION
// ====================================

// ConvertMongoError chuyển lỗi từ mongo-driver sang Error chuẩn của hệ thống.
// Gọi tại mọi boundary với MongoDB để handler không phải hiểu lỗi driver.
func ConvertMongoError(err error) error {
	if err == nil {
		return nil
	}

	if err == mongo.ErrNoDocuments {
		return ErrNotFound
	}

	if mongo.IsDuplicateKeyError(err) {
		return NewError(CodeDuplicate, "Bản ghi đã tồn tại", StatusConflict, err)
	}

	if mongo.IsTimeout(err) {
		return NewError(CodeDatabaseError, "Database timeout", StatusServiceUnavailable, err)
	}

	if mongo.IsNetworkError(err) {
		return NewError(CodeDatabaseError, "Không kết nối được database", StatusServiceUnavailable, err)
	}

	// Lỗi write khác (validation của schema, v.v.)
	if strings.Contains(err.Error(), "WriteError") {
		return NewError(CodeDatabaseError, "Lỗi ghi dữ liệu", StatusInternalServerError, err)
	}

	return NewError(CodeDatabaseError, "Lỗi thao tác database", StatusInternalServerError, err)
}
