// Package workflowsvc chứa store và engine cho domain Workflow.
package workflowsvc

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	workflowmodels "github.com/cardinalconseils/chefsocial-voice-sub000/internal/api/workflow/models"
)

// Store là interface lưu trữ workflows. Engine chỉ nói chuyện qua interface này:
// production dùng MongoStore, tests dùng MemStore — cùng semantics CAS.
type Store interface {
	// Create tạo workflow mới. Trả về ErrWorkflowConflict nếu content item
	// đã có workflow đang hoạt động.
	Create(ctx context.Context, wf workflowmodels.Workflow) (workflowmodels.Workflow, error)

	// FindByID tìm workflow theo ID
	FindByID(ctx context.Context, id primitive.ObjectID) (workflowmodels.Workflow, error)

	// FindActiveByPhone tìm workflow đang hoạt động mới nhất của một số điện thoại
	FindActiveByPhone(ctx context.Context, phone string) (workflowmodels.Workflow, error)

	// FindByUser trả về các workflows gần nhất của một user
	FindByUser(ctx context.Context, userID string, limit int64) ([]workflowmodels.Workflow, error)

	// ApplyTransition thực hiện chuyển trạng thái nguyên tử:
	// chỉ áp dụng khi status hiện tại nằm trong from. Ghi lại messageID và extra.
	// Document không match (đã terminal, đã bị race) → ErrNotFound.
	ApplyTransition(ctx context.Context, id primitive.ObjectID, from []string, to string, messageID string, extra map[string]interface{}) (workflowmodels.Workflow, error)

	// ExpireOlderThan chuyển mọi workflow hoạt động có expiresAt <= now sang expired,
	// trả về số lượng đã chuyển. An toàn khi chạy song song với ApplyTransition.
	ExpireOlderThan(ctx context.Context, now time.Time) (int64, error)
}
