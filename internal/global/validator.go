package global

import (
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
)

// phoneE164Regex kiểm tra số điện thoại dạng E.164 (+14155552671)
var phoneE164Regex = regexp.MustCompile(`^\+[1-9]\d{6,14}$`)

// langTagRegex kiểm tra language tag dạng BCP-47 đơn giản (en, fr, es, fr-CA)
var langTagRegex = regexp.MustCompile(`^[a-z]{2}(-[A-Za-z]{2})?$`)

// validPlatforms là danh sách platform hỗ trợ
var validPlatforms = map[string]bool{
	"instagram":   true,
	"short_video": true,
	"feed_post":   true,
}

// InitValidator khởi tạo validator toàn cục với các custom rules:
//   - platform: platform phải nằm trong danh sách hỗ trợ
//   - phone_e164: số điện thoại dạng E.164
//   - lang_tag: language tag hợp lệ
func InitValidator() error {
	v := validator.New()

	if err := v.RegisterValidation("platform", func(fl validator.FieldLevel) bool {
		return validPlatforms[strings.ToLower(fl.Field().String())]
	}); err != nil {
		return err
	}

	if err := v.RegisterValidation("phone_e164", func(fl validator.FieldLevel) bool {
		return phoneE164Regex.MatchString(fl.Field().String())
	}); err != nil {
		return err
	}

	if err := v.RegisterValidation("lang_tag", func(fl validator.FieldLevel) bool {
		return langTagRegex.MatchString(fl.Field().String())
	}); err != nil {
		return err
	}

	Validate = v
	return nil
}

// IsValidPlatform kiểm tra platform có được hỗ trợ không
func IsValidPlatform(platform string) bool {
	return validPlatforms[strings.ToLower(platform)]
}
