// Package worker chứa các background workers chạy theo chu kỳ.
package worker

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/cardinalconseils/chefsocial-voice-sub000/internal/logger"
)

// WorkflowExpirer là phần của workflow store mà cleanup worker cần
type WorkflowExpirer interface {
	ExpireOlderThan(ctx context.Context, now time.Time) (int64, error)
}

// WorkflowCleanupWorker quét workflows quá hạn sang expired theo chu kỳ.
// Đây là lớp dọn dẹp thứ hai: engine đã có lazy expiry khi nhận tin,
// sweep này xử lý các workflows không còn ai nhắn đến nữa.
type WorkflowCleanupWorker struct {
	store    WorkflowExpirer
	interval time.Duration
	log      *logrus.Logger
	stop     chan struct{}
	now      func() time.Time
}

// NewWorkflowCleanupWorker tạo worker (interval <= 0 → 60 phút)
func NewWorkflowCleanupWorker(store WorkflowExpirer, interval time.Duration) *WorkflowCleanupWorker {
	if interval <= 0 {
		interval = 60 * time.Minute
	}
	return &WorkflowCleanupWorker{
		store:    store,
		interval: interval,
		log:      logger.GetAppLogger(),
		stop:     make(chan struct{}),
		now:      time.Now,
	}
}

// Start chạy vòng lặp sweep. Gọi trong goroutine riêng.
func (w *WorkflowCleanupWorker) Start() {
	w.log.WithField("interval", w.interval.String()).
		Info("🔄 [WORKFLOW_CLEANUP] Worker started")

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-w.stop:
			w.log.Info("🔄 [WORKFLOW_CLEANUP] Worker stopped")
			return
		case <-ticker.C:
			w.RunOnce()
		}
	}
}

// Stop dừng worker
func (w *WorkflowCleanupWorker) Stop() {
	close(w.stop)
}

// RunOnce thực hiện một lần sweep, recover để panic không giết worker
func (w *WorkflowCleanupWorker) RunOnce() {
	defer func() {
		if r := recover(); r != nil {
			w.log.WithField("panic", r).Error("🔄 [WORKFLOW_CLEANUP] Recovered from panic")
		}
	}()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	expired, err := w.store.ExpireOlderThan(ctx, w.now())
	if err != nil {
		w.log.WithError(err).Error("🔄 [WORKFLOW_CLEANUP] Sweep thất bại")
		return
	}
	if expired > 0 {
		w.log.WithField("expired", expired).Info("🔄 [WORKFLOW_CLEANUP] Workflows quá hạn đã chuyển sang expired")
	}
}
