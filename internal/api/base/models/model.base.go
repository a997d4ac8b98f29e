// Package basemodels chứa các model dùng chung cho tầng base.
package basemodels

// PaginateResult là kết quả phân trang chuẩn cho mọi collection
type PaginateResult[T any] struct {
	Items      []T   `json:"items"`
	Page       int64 `json:"page"`
	Limit      int64 `json:"limit"`
	ItemCount  int64 `json:"itemCount"`
	TotalCount int64 `json:"totalCount"`
	TotalPages int64 `json:"totalPages"`
}
