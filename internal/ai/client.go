package ai

import (
	"errors"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"

	"github.com/cardinalconseils/chefsocial-voice-sub000/config"
)

// Client bọc OpenAI client với models từ cấu hình.
// Một client dùng chung cho cả ba adapter.
type Client struct {
	api             openai.Client
	chatModel       string
	transcribeModel string
}

// NewClient tạo client từ cấu hình ứng dụng
func NewClient(cfg *config.Configuration) (*Client, error) {
	if cfg.OpenAIAPIKey == "" {
		return nil, errors.New("thiếu OPENAI_API_KEY")
	}

	opts := []option.RequestOption{option.WithAPIKey(cfg.OpenAIAPIKey)}
	if cfg.OpenAIBaseURL != "" {
		opts = append(opts, option.WithBaseURL(cfg.OpenAIBaseURL))
	}

	return &Client{
		api:             openai.NewClient(opts...),
		chatModel:       cfg.OpenAIChatModel,
		transcribeModel: cfg.OpenAITranscribeModel,
	}, nil
}

// classifyError phân loại lỗi provider theo HTTP status / bản chất lỗi.
// Mọi lỗi không xác định coi là transient (retry được ở lần submit sau).
func classifyError(err error) FailureClass {
	if err == nil {
		return FailureNone
	}

	var apierr *openai.Error
	if errors.As(err, &apierr) {
		switch {
		case apierr.StatusCode == 429:
			return FailureRateLimited
		case apierr.StatusCode == 401 || apierr.StatusCode == 403:
			return FailureAuth
		case apierr.StatusCode >= 500:
			return FailureTransient
		default:
			return FailureBadOutput
		}
	}

	// Network error, timeout, context deadline: transient
	return FailureTransient
}
