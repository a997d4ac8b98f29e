// Package config quản lý cấu hình của ChefSocial Voice API.
// Cấu hình được load từ file config/env/<GO_ENV>.env rồi parse bằng env tags.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/caarlos0/env"
	"github.com/joho/godotenv"
)

// Configuration là cấu trúc chứa toàn bộ cấu hình của ứng dụng
type Configuration struct {
	// Server
	Address   string `env:"ADDRESS" envDefault:"0.0.0.0:8080"`
	BaseURL   string `env:"BASE_URL" envDefault:"http://localhost:8080"`
	TLSCert   string `env:"TLS_CERT_FILE"`
	TLSKey    string `env:"TLS_KEY_FILE"`
	CORS      string `env:"CORS" envDefault:"*"`
	RateLimit int    `env:"RATE_LIMIT" envDefault:"100"`

	// Token tĩnh cho các endpoint vận hành (webhook không dùng)
	APIAccessToken string `env:"API_ACCESS_TOKEN,required"`

	// MongoDB
	MongoDBURI  string `env:"MONGODB_CONNECTION_URI,required"`
	MongoDBName string `env:"MONGODB_DBNAME_DATA,required"`

	// OpenAI
	OpenAIAPIKey          string `env:"OPENAI_API_KEY,required"`
	OpenAIBaseURL         string `env:"OPENAI_BASE_URL"`
	OpenAIChatModel       string `env:"OPENAI_CHAT_MODEL" envDefault:"gpt-4o"`
	OpenAITranscribeModel string `env:"OPENAI_TRANSCRIBE_MODEL" envDefault:"whisper-1"`

	// Pipeline
	PipelineTimeoutSeconds int `env:"PIPELINE_TIMEOUT_SECONDS" envDefault:"30"`

	// Workflow
	WorkflowTTLHours       int `env:"WORKFLOW_TTL_HOURS" envDefault:"24"`
	CleanupIntervalMinutes int `env:"CLEANUP_INTERVAL_MINUTES" envDefault:"60"`

	// SMS provider (Twilio-compatible API)
	SMSAPIBaseURL     string `env:"SMS_API_BASE_URL" envDefault:"https://api.twilio.com"`
	SMSAccountSID     string `env:"SMS_ACCOUNT_SID"`
	SMSAuthToken      string `env:"SMS_AUTH_TOKEN"`
	SMSFromNumber     string `env:"SMS_FROM_NUMBER"`
	WebhookAuthSecret string `env:"WEBHOOK_AUTH_SECRET"`

	// Email (kênh phụ cho daily digest)
	SMTPHost     string `env:"SMTP_HOST"`
	SMTPPort     int    `env:"SMTP_PORT" envDefault:"587"`
	SMTPUser     string `env:"SMTP_USER"`
	SMTPPassword string `env:"SMTP_PASSWORD"`
	SMTPFrom     string `env:"SMTP_FROM"`

	// Delivery
	DeliveryPollSeconds int `env:"DELIVERY_POLL_SECONDS" envDefault:"5"`
	DeliveryBatchSize   int `env:"DELIVERY_BATCH_SIZE" envDefault:"20"`
}

// getEnvPath tìm file env theo GO_ENV, đi lên tối đa 5 cấp từ working directory
// để chạy được cả từ root project lẫn từ cmd/server.
func getEnvPath() (string, error) {
	goEnv := os.Getenv("GO_ENV")
	if goEnv == "" {
		goEnv = "development"
	}

	dir, err := os.Getwd()
	if err != nil {
		return "", err
	}

	for i := 0; i < 5; i++ {
		envPath := filepath.Join(dir, "config", "env", goEnv+".env")
		if _, err := os.Stat(envPath); err == nil {
			return envPath, nil
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}

	return "", fmt.Errorf("không tìm thấy file env cho môi trường '%s'", goEnv)
}

// NewConfig load file env (nếu có) và parse cấu hình từ environment variables
func NewConfig() (*Configuration, error) {
	if envPath, err := getEnvPath(); err == nil {
		if err := godotenv.Load(envPath); err != nil {
			return nil, fmt.Errorf("lỗi load file env %s: %w", envPath, err)
		}
	}

	cfg := &Configuration{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("lỗi parse cấu hình: %w", err)
	}
	return cfg, nil
}
