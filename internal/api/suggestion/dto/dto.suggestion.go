// Package suggestiondto chứa DTO cho domain Suggestion.
package suggestiondto

// RestaurantProfileCreateInput là input tạo restaurant profile
type RestaurantProfileCreateInput struct {
	UserID      string         `json:"userId" validate:"required"`
	Name        string         `json:"name" validate:"required"`
	Cuisine     string         `json:"cuisine" validate:"required"`
	Phone       string         `json:"phone" validate:"required,phone_e164"`
	Email       string         `json:"email" validate:"omitempty,email"`
	Language    string         `json:"language" validate:"omitempty,lang_tag"`
	Performance map[string]int `json:"performance"`
}

// RestaurantProfileUpdateInput là input cập nhật restaurant profile
type RestaurantProfileUpdateInput struct {
	Name        *string        `json:"name,omitempty"`
	Cuisine     *string        `json:"cuisine,omitempty"`
	Phone       *string        `json:"phone,omitempty" validate:"omitempty,phone_e164"`
	Email       *string        `json:"email,omitempty" validate:"omitempty,email"`
	Language    *string        `json:"language,omitempty" validate:"omitempty,lang_tag"`
	Performance map[string]int `json:"performance,omitempty"`
}

// DailyTriggerInput là input kích hoạt daily suggestions cho một user
type DailyTriggerInput struct {
	UserID string `json:"userId" validate:"required"`
}
