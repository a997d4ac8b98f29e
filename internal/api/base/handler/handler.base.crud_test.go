package basehdl

import (
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParsePagination(t *testing.T) {
	app := fiber.New()

	var page, limit int64
	app.Get("/items", func(c fiber.Ctx) error {
		page, limit = ParsePagination(c)
		return c.SendString("ok")
	})

	get := func(t *testing.T, target string) {
		t.Helper()
		resp, err := app.Test(httptest.NewRequest("GET", target, nil))
		require.NoError(t, err)
		resp.Body.Close()
	}

	t.Run("✅ đọc page/limit từ query string", func(t *testing.T) {
		get(t, "/items?page=3&limit=5")
		assert.Equal(t, int64(3), page)
		assert.Equal(t, int64(5), limit)
	})

	t.Run("✅ không truyền dùng mặc định 1/20", func(t *testing.T) {
		get(t, "/items")
		assert.Equal(t, int64(1), page)
		assert.Equal(t, int64(20), limit)
	})

	t.Run("✅ giá trị không hợp lệ về mặc định", func(t *testing.T) {
		get(t, "/items?page=abc&limit=-2")
		assert.Equal(t, int64(1), page)
		assert.Equal(t, int64(20), limit)
	})
}
