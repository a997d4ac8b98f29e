package workflowsvc

import (
	"context"
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	workflowmodels "github.com/cardinalconseils/chefsocial-voice-sub000/internal/api/workflow/models"
	"github.com/cardinalconseils/chefsocial-voice-sub000/internal/common"
)

// MemStore là implementation in-memory của Store, cùng semantics CAS với MongoStore.
// Dùng cho tests và chạy local không cần MongoDB.
type MemStore struct {
	mu    sync.Mutex
	items map[primitive.ObjectID]workflowmodels.Workflow
}

// NewMemStore tạo MemStore rỗng
func NewMemStore() *MemStore {
	return &MemStore{items: make(map[primitive.ObjectID]workflowmodels.Workflow)}
}

// Create tạo workflow mới, chặn workflow hoạt động thứ hai cho cùng content item
func (s *MemStore) Create(_ context.Context, wf workflowmodels.Workflow) (workflowmodels.Workflow, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !wf.PrimaryItemID.IsZero() {
		for _, existing := range s.items {
			if existing.PrimaryItemID == wf.PrimaryItemID && existing.IsActive() {
				return workflowmodels.Workflow{}, common.ErrWorkflowConflict
			}
		}
	}

	wf.ID = primitive.NewObjectID()
	now := time.Now().UnixMilli()
	wf.CreatedAt = now
	wf.UpdatedAt = now
	if wf.Status == "" {
		wf.Status = workflowmodels.StatusPending
	}
	s.items[wf.ID] = wf
	return wf, nil
}

// FindByID tìm workflow theo ID
func (s *MemStore) FindByID(_ context.Context, id primitive.ObjectID) (workflowmodels.Workflow, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	wf, ok := s.items[id]
	if !ok {
		return workflowmodels.Workflow{}, common.ErrNotFound
	}
	return wf, nil
}

// FindActiveByPhone tìm workflow hoạt động mới nhất của một số điện thoại
func (s *MemStore) FindActiveByPhone(_ context.Context, phone string) (workflowmodels.Workflow, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var found *workflowmodels.Workflow
	for id := range s.items {
		wf := s.items[id]
		if wf.RecipientPhone != phone || !wf.IsActive() {
			continue
		}
		if found == nil || wf.CreatedAt > found.CreatedAt {
			copied := wf
			found = &copied
		}
	}
	if found == nil {
		return workflowmodels.Workflow{}, common.ErrNotFound
	}
	return *found, nil
}

// FindByUser trả về các workflows của một user (mới nhất trước)
func (s *MemStore) FindByUser(_ context.Context, userID string, limit int64) ([]workflowmodels.Workflow, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var results []workflowmodels.Workflow
	for id := range s.items {
		if s.items[id].UserID == userID {
			results = append(results, s.items[id])
		}
	}
	// sort đơn giản theo createdAt giảm dần
	for i := 0; i < len(results); i++ {
		for j := i + 1; j < len(results); j++ {
			if results[j].CreatedAt > results[i].CreatedAt {
				results[i], results[j] = results[j], results[i]
			}
		}
	}
	if limit > 0 && int64(len(results)) > limit {
		results = results[:limit]
	}
	return results, nil
}

// ApplyTransition chuyển trạng thái với cùng semantics CAS như MongoStore
func (s *MemStore) ApplyTransition(_ context.Context, id primitive.ObjectID, from []string, to string, messageID string, extra map[string]interface{}) (workflowmodels.Workflow, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	wf, ok := s.items[id]
	if !ok {
		return workflowmodels.Workflow{}, common.ErrNotFound
	}

	matched := false
	for _, st := range from {
		if wf.Status == st {
			matched = true
			break
		}
	}
	if !matched {
		return workflowmodels.Workflow{}, common.ErrNotFound
	}

	wf.Status = to
	wf.UpdatedAt = time.Now().UnixMilli()
	if messageID != "" {
		wf.LastMessageID = messageID
	}
	for k, v := range extra {
		switch k {
		case "selection":
			if sel, ok := v.(string); ok {
				wf.Selection = sel
			}
		case "supersededBy":
			if oid, ok := v.(primitive.ObjectID); ok {
				wf.SupersededBy = oid
			}
		}
	}

	s.items[id] = wf
	return wf, nil
}

// ExpireOlderThan chuyển mọi workflow hoạt động quá hạn sang expired
func (s *MemStore) ExpireOlderThan(_ context.Context, now time.Time) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var count int64
	cutoff := now.UnixMilli()
	for id, wf := range s.items {
		if wf.IsActive() && wf.ExpiresAt <= cutoff {
			wf.Status = workflowmodels.StatusExpired
			wf.UpdatedAt = time.Now().UnixMilli()
			s.items[id] = wf
			count++
		}
	}
	return count, nil
}
