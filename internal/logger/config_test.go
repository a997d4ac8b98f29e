package logger

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDefaultConfig(t *testing.T) {
	t.Run("✅ development mặc định debug/text", func(t *testing.T) {
		t.Setenv("GO_ENV", "development")
		t.Setenv("LOG_LEVEL", "")
		t.Setenv("LOG_FORMAT", "")
		t.Setenv("LOG_OUTPUT", "")
		t.Setenv("LOG_PATH", "")
		t.Setenv("LOG_APP_FILE", "")

		cfg := DefaultConfig()
		assert.Equal(t, "debug", cfg.Level)
		assert.Equal(t, "text", cfg.Format)
		assert.Equal(t, "both", cfg.Output)
		assert.Equal(t, "./logs", cfg.LogPath)
		assert.Equal(t, "app.log", cfg.AppFile)
	})

	t.Run("✅ production mặc định info/json", func(t *testing.T) {
		t.Setenv("GO_ENV", "production")
		t.Setenv("LOG_LEVEL", "")
		t.Setenv("LOG_FORMAT", "")

		cfg := DefaultConfig()
		assert.Equal(t, "info", cfg.Level)
		assert.Equal(t, "json", cfg.Format)
	})

	t.Run("✅ environment variables override từng field", func(t *testing.T) {
		t.Setenv("GO_ENV", "production")
		t.Setenv("LOG_LEVEL", "WARN")
		t.Setenv("LOG_OUTPUT", "stdout")
		t.Setenv("LOG_MAX_BACKUPS", "3")
		t.Setenv("LOG_COMPRESS", "false")
		t.Setenv("LOG_PATH", "/tmp/chefsocial-logs")

		cfg := DefaultConfig()
		assert.Equal(t, "warn", cfg.Level)
		assert.Equal(t, "stdout", cfg.Output)
		assert.Equal(t, 3, cfg.MaxBackups)
		assert.False(t, cfg.Compress)
		assert.Equal(t, "/tmp/chefsocial-logs", cfg.LogPath)
	})

	t.Run("✅ giá trị số không hợp lệ giữ mặc định", func(t *testing.T) {
		t.Setenv("GO_ENV", "production")
		t.Setenv("LOG_MAX_SIZE", "not-a-number")
		t.Setenv("LOG_MAX_AGE", "-5")

		cfg := DefaultConfig()
		assert.Equal(t, 100, cfg.MaxSize)
		assert.Equal(t, 7, cfg.MaxAge)
	})
}
