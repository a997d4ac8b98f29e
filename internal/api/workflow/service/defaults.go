package workflowsvc

import "sync"

var (
	defaultEngine   *Engine
	defaultEngineMu sync.RWMutex
)

// SetDefaultEngine đăng ký engine toàn cục (gọi một lần khi khởi động server).
// Handlers lấy engine qua DefaultEngine thay vì tự dựng dependencies.
func SetDefaultEngine(e *Engine) {
	defaultEngineMu.Lock()
	defer defaultEngineMu.Unlock()
	defaultEngine = e
}

// DefaultEngine trả về engine toàn cục (nil nếu chưa khởi tạo)
func DefaultEngine() *Engine {
	defaultEngineMu.RLock()
	defer defaultEngineMu.RUnlock()
	return defaultEngine
}
