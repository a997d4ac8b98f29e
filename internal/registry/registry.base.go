// Package registry cung cấp generic registry thread-safe cho các shared resources
// (MongoDB collections, database instances, ...).
package registry

import (
	"fmt"
	"sync"
)

// Registry là generic registry thread-safe.
//
// Ví dụ:
//
//	regs := registry.NewRegistry[*mongo.Collection]()
//	regs.Register("content_items", collection)
//	col, ok := regs.Get("content_items")
type Registry[T any] struct {
	mu    sync.RWMutex
	items map[string]T
}

// NewRegistry tạo registry mới
func NewRegistry[T any]() *Registry[T] {
	return &Registry[T]{
		items: make(map[string]T),
	}
}

// Register đăng ký item với tên. Trả về lỗi nếu tên đã tồn tại.
func (r *Registry[T]) Register(name string, item T) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.items[name]; exists {
		return fmt.Errorf("item '%s' đã được đăng ký", name)
	}
	r.items[name] = item
	return nil
}

// Get lấy item theo tên
func (r *Registry[T]) Get(name string) (T, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	item, ok := r.items[name]
	return item, ok
}

// GetOrCreate lấy item theo tên, nếu chưa có thì tạo bằng factory và đăng ký.
func (r *Registry[T]) GetOrCreate(name string, factory func() (T, error)) (T, error) {
	r.mu.RLock()
	if item, ok := r.items[name]; ok {
		r.mu.RUnlock()
		return item, nil
	}
	r.mu.RUnlock()

	r.mu.Lock()
	defer r.mu.Unlock()

	// Double-check sau khi lấy write lock
	if item, ok := r.items[name]; ok {
		return item, nil
	}

	item, err := factory()
	if err != nil {
		var zero T
		return zero, err
	}
	r.items[name] = item
	return item, nil
}

// Remove xóa item theo tên
func (r *Registry[T]) Remove(name string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.items, name)
}

// Names trả về danh sách tên đã đăng ký
func (r *Registry[T]) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.items))
	for name := range r.items {
		names = append(names, name)
	}
	return names
}

// Count trả về số item trong registry
func (r *Registry[T]) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.items)
}

// Clear xóa toàn bộ items
func (r *Registry[T]) Clear() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.items = make(map[string]T)
}
