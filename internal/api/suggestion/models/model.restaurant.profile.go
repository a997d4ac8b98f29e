// Package suggestionmodels chứa models cho domain Suggestion.
package suggestionmodels

import (
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// RestaurantProfile là hồ sơ nhà hàng dùng để cá nhân hóa suggestions
// và resolve số điện thoại nhận approval messages.
type RestaurantProfile struct {
	ID       primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"`
	UserID   string             `json:"userId" bson:"userId"`
	Name     string             `json:"name" bson:"name"`
	Cuisine  string             `json:"cuisine" bson:"cuisine"`
	Phone    string             `json:"phone" bson:"phone"`
	Email    string             `json:"email,omitempty" bson:"email,omitempty"`
	Language string             `json:"language" bson:"language" default:"en"`

	// Performance là điểm hiệu quả gần đây theo platform (0-100),
	// cập nhật từ hệ thống analytics bên ngoài.
	Performance map[string]int `json:"performance,omitempty" bson:"performance,omitempty"`

	CreatedAt int64 `json:"createdAt" bson:"createdAt"`
	UpdatedAt int64 `json:"updatedAt" bson:"updatedAt"`
}
