package worker

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	workflowmodels "github.com/cardinalconseils/chefsocial-voice-sub000/internal/api/workflow/models"
	workflowsvc "github.com/cardinalconseils/chefsocial-voice-sub000/internal/api/workflow/service"
)

// failingExpirer luôn trả lỗi, dùng để kiểm tra worker không chết vì lỗi sweep
type failingExpirer struct{}

func (failingExpirer) ExpireOlderThan(context.Context, time.Time) (int64, error) {
	return 0, errors.New("db down")
}

// panickyExpirer panic khi sweep, worker phải recover được
type panickyExpirer struct{}

func (panickyExpirer) ExpireOlderThan(context.Context, time.Time) (int64, error) {
	panic("boom")
}

func TestWorkflowCleanupWorker_RunOnce(t *testing.T) {
	ctx := context.Background()

	t.Run("✅ sweep chuyển workflows quá hạn sang expired", func(t *testing.T) {
		store := workflowsvc.NewMemStore()

		expired, err := store.Create(ctx, workflowmodels.Workflow{
			Type:           workflowmodels.TypeContentApproval,
			RecipientPhone: "+15551110001",
			Status:         workflowmodels.StatusPending,
			ExpiresAt:      time.Now().Add(-time.Hour).UnixMilli(),
		})
		require.NoError(t, err)

		alive, err := store.Create(ctx, workflowmodels.Workflow{
			Type:           workflowmodels.TypeContentApproval,
			RecipientPhone: "+15551110002",
			Status:         workflowmodels.StatusPending,
			ExpiresAt:      time.Now().Add(time.Hour).UnixMilli(),
		})
		require.NoError(t, err)

		w := NewWorkflowCleanupWorker(store, time.Minute)
		w.RunOnce()

		got, _ := store.FindByID(ctx, expired.ID)
		assert.Equal(t, workflowmodels.StatusExpired, got.Status)

		stillAlive, _ := store.FindByID(ctx, alive.ID)
		assert.Equal(t, workflowmodels.StatusPending, stillAlive.Status)
	})

	t.Run("✅ lỗi sweep không panic", func(t *testing.T) {
		w := NewWorkflowCleanupWorker(failingExpirer{}, time.Minute)
		assert.NotPanics(t, w.RunOnce)
	})

	t.Run("✅ panic trong sweep được recover", func(t *testing.T) {
		w := NewWorkflowCleanupWorker(panickyExpirer{}, time.Minute)
		assert.NotPanics(t, w.RunOnce)
	})
}
