// Package utility chứa các hàm tiện ích dùng chung.
package utility

import (
	"encoding/json"
	"fmt"
	"strings"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ToMap chuyển struct sang map[string]interface{} qua JSON roundtrip.
// Dùng khi cần build update document từ DTO.
func ToMap(data interface{}) (map[string]interface{}, error) {
	bytes, err := json.Marshal(data)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal data: %w", err)
	}

	var result map[string]interface{}
	if err := json.Unmarshal(bytes, &result); err != nil {
		return nil, fmt.Errorf("failed to unmarshal data to map: %w", err)
	}
	return result, nil
}

// String2ObjectID chuyển string sang primitive.ObjectID
func String2ObjectID(id string) (primitive.ObjectID, error) {
	objectID, err := primitive.ObjectIDFromHex(strings.TrimSpace(id))
	if err != nil {
		return primitive.NilObjectID, fmt.Errorf("id '%s' không phải ObjectID hợp lệ: %w", id, err)
	}
	return objectID, nil
}

// NormalizePhone chuẩn hóa số điện thoại về dạng E.164 thô:
// bỏ khoảng trắng, dấu gạch, dấu ngoặc. Không validate ở đây.
func NormalizePhone(phone string) string {
	replacer := strings.NewReplacer(" ", "", "-", "", "(", "", ")", "", ".", "")
	return replacer.Replace(strings.TrimSpace(phone))
}

// TruncateString cắt chuỗi theo số runes, thêm "…" nếu bị cắt
func TruncateString(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	if max <= 1 {
		return string(runes[:max])
	}
	return string(runes[:max-1]) + "…"
}
