package workflowsvc

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/cardinalconseils/chefsocial-voice-sub000/internal/ai"
	contentmodels "github.com/cardinalconseils/chefsocial-voice-sub000/internal/api/content/models"
	workflowmodels "github.com/cardinalconseils/chefsocial-voice-sub000/internal/api/workflow/models"
	"github.com/cardinalconseils/chefsocial-voice-sub000/internal/common"
)

// fakeGateway ghi lại mọi tin nhắn đã gửi
type fakeGateway struct {
	sent []string
}

func (g *fakeGateway) SendText(_ context.Context, to, body string) error {
	g.sent = append(g.sent, body)
	return nil
}

// fakeContent là ContentStore in-memory với cùng semantics CAS publish/discard
type fakeContent struct {
	items        map[primitive.ObjectID]contentmodels.ContentItem
	publishCalls int
}

func newFakeContent() *fakeContent {
	return &fakeContent{items: make(map[primitive.ObjectID]contentmodels.ContentItem)}
}

func (f *fakeContent) InsertOne(_ context.Context, item contentmodels.ContentItem) (contentmodels.ContentItem, error) {
	item.ID = primitive.NewObjectID()
	if item.Status == "" {
		item.Status = contentmodels.ContentStatusDraft
	}
	f.items[item.ID] = item
	return item, nil
}

func (f *fakeContent) FindOneById(_ context.Context, id primitive.ObjectID) (contentmodels.ContentItem, error) {
	item, ok := f.items[id]
	if !ok {
		return contentmodels.ContentItem{}, common.ErrNotFound
	}
	return item, nil
}

func (f *fakeContent) MarkPublished(_ context.Context, id primitive.ObjectID) (contentmodels.ContentItem, error) {
	item, ok := f.items[id]
	if !ok || item.Status != contentmodels.ContentStatusDraft {
		return contentmodels.ContentItem{}, common.ErrNotFound
	}
	f.publishCalls++
	item.Status = contentmodels.ContentStatusPublished
	f.items[id] = item
	return item, nil
}

func (f *fakeContent) MarkDiscarded(_ context.Context, id primitive.ObjectID) (contentmodels.ContentItem, error) {
	item, ok := f.items[id]
	if !ok || item.Status != contentmodels.ContentStatusDraft {
		return contentmodels.ContentItem{}, common.ErrNotFound
	}
	item.Status = contentmodels.ContentStatusDiscarded
	f.items[id] = item
	return item, nil
}

// fakeGenerator trả về đúng một draft cho mỗi platform được yêu cầu
type fakeGenerator struct{}

func (fakeGenerator) GenerateDrafts(_ context.Context, req ai.DraftRequest) []ai.PlatformDraft {
	drafts := make([]ai.PlatformDraft, 0, len(req.Platforms))
	for _, p := range req.Platforms {
		caption := "Generated caption"
		if req.EditInstructions != "" {
			caption = "Revised: " + req.EditInstructions
		}
		drafts = append(drafts, ai.PlatformDraft{
			Platform:      p,
			Caption:       caption,
			Tags:          []string{"chef", "food"},
			ViralityScore: 70,
			BestPostTime:  "18:00",
		})
	}
	return drafts
}

// fakeIdeas trả về daily context cố định cho mọi số điện thoại
type fakeIdeas struct {
	ideas []workflowmodels.IdeaSnapshot
	lang  string
	err   error
}

func (f *fakeIdeas) BuildDailyForPhone(_ context.Context, phone string, _ time.Time) (workflowmodels.DailyContext, error) {
	if f.err != nil {
		return workflowmodels.DailyContext{}, f.err
	}
	lang := f.lang
	if lang == "" {
		lang = "en"
	}
	return workflowmodels.DailyContext{
		UserID:   "user-1",
		Phone:    phone,
		Language: lang,
		Ideas:    f.ideas,
	}, nil
}

func testIdeas() []workflowmodels.IdeaSnapshot {
	ideas := make([]workflowmodels.IdeaSnapshot, 0, 5)
	for i := 1; i <= 5; i++ {
		ideas = append(ideas, workflowmodels.IdeaSnapshot{
			Rank:        i,
			Title:       fmt.Sprintf("Idea %d", i),
			Description: fmt.Sprintf("Description for idea %d", i),
			Platform:    "instagram",
			Score:       100 - i,
		})
	}
	return ideas
}

func newTestEngine() (*Engine, *MemStore, *fakeContent, *fakeGateway) {
	store := NewMemStore()
	content := newFakeContent()
	gateway := &fakeGateway{}
	engine := NewEngine(store, content, &fakeIdeas{ideas: testIdeas()}, fakeGenerator{}, gateway, 24*time.Hour)
	return engine, store, content, gateway
}

func seedApproval(t *testing.T, engine *Engine, content *fakeContent, phone string) (contentmodels.ContentItem, workflowmodels.Workflow) {
	t.Helper()
	item, err := content.InsertOne(context.Background(), contentmodels.ContentItem{
		UserID:        "user-1",
		Platform:      "instagram",
		Caption:       "Fresh lobster special tonight",
		Tags:          []string{"lobster", "special"},
		ViralityScore: 80,
		BestPostTime:  "18:00",
		Language:      "en",
	})
	require.NoError(t, err)

	wf, err := engine.CreateApproval(context.Background(), item, phone)
	require.NoError(t, err)
	return item, wf
}

func TestEngine_Approve(t *testing.T) {
	ctx := context.Background()

	t.Run("✅ APPROVE publish item và đóng workflow", func(t *testing.T) {
		engine, store, content, _ := newTestEngine()
		item, wf := seedApproval(t, engine, content, "+15551230001")

		reply, err := engine.HandleInbound(ctx, "+15551230001", "APPROVE", "msg-1")
		require.NoError(t, err)
		assert.Contains(t, reply, "✅")

		current, err := store.FindByID(ctx, wf.ID)
		require.NoError(t, err)
		assert.Equal(t, workflowmodels.StatusApproved, current.Status)
		assert.Equal(t, "msg-1", current.LastMessageID)

		published, err := content.FindOneById(ctx, item.ID)
		require.NoError(t, err)
		assert.Equal(t, contentmodels.ContentStatusPublished, published.Status)
		assert.Equal(t, 1, content.publishCalls)
	})

	t.Run("✅ emoji ✅ tương đương APPROVE", func(t *testing.T) {
		engine, store, content, _ := newTestEngine()
		_, wf := seedApproval(t, engine, content, "+15551230002")

		_, err := engine.HandleInbound(ctx, "+15551230002", "✅", "msg-1")
		require.NoError(t, err)

		current, _ := store.FindByID(ctx, wf.ID)
		assert.Equal(t, workflowmodels.StatusApproved, current.Status)
	})

	t.Run("❌ APPROVE thứ hai không publish lần nữa", func(t *testing.T) {
		engine, _, content, _ := newTestEngine()
		seedApproval(t, engine, content, "+15551230003")

		_, err := engine.HandleInbound(ctx, "+15551230003", "APPROVE", "msg-1")
		require.NoError(t, err)

		// Workflow đã terminal nên không còn active workflow cho số này
		reply, err := engine.HandleInbound(ctx, "+15551230003", "APPROVE", "msg-2")
		require.NoError(t, err)
		assert.Equal(t, 1, content.publishCalls)
		assert.Contains(t, reply, "no content waiting")
	})
}

func TestEngine_Reject(t *testing.T) {
	ctx := context.Background()

	t.Run("✅ REJECT discard item và đóng workflow", func(t *testing.T) {
		engine, store, content, _ := newTestEngine()
		item, wf := seedApproval(t, engine, content, "+15551230010")

		reply, err := engine.HandleInbound(ctx, "+15551230010", "NO", "msg-1")
		require.NoError(t, err)
		assert.Contains(t, reply, "❌")

		current, _ := store.FindByID(ctx, wf.ID)
		assert.Equal(t, workflowmodels.StatusRejected, current.Status)

		discarded, _ := content.FindOneById(ctx, item.ID)
		assert.Equal(t, contentmodels.ContentStatusDiscarded, discarded.Status)
		assert.Equal(t, 0, content.publishCalls)
	})
}

func TestEngine_Idempotence(t *testing.T) {
	ctx := context.Background()

	t.Run("✅ cùng messageID chỉ acknowledge, không áp dụng lại", func(t *testing.T) {
		engine, store, content, _ := newTestEngine()
		_, wf := seedApproval(t, engine, content, "+15551230020")

		_, err := engine.HandleInbound(ctx, "+15551230020", "EDIT", "msg-1")
		require.NoError(t, err)

		current, _ := store.FindByID(ctx, wf.ID)
		assert.Equal(t, workflowmodels.StatusEditing, current.Status)

		// Provider retry cùng messageID
		reply, err := engine.HandleInbound(ctx, "+15551230020", "EDIT", "msg-1")
		require.NoError(t, err)
		assert.Equal(t, alreadyHandled("en"), reply)

		after, _ := store.FindByID(ctx, wf.ID)
		assert.Equal(t, workflowmodels.StatusEditing, after.Status)
	})
}

func TestEngine_Expiry(t *testing.T) {
	ctx := context.Background()

	t.Run("✅ lazy expiry khi nhận tin sau TTL", func(t *testing.T) {
		engine, store, content, _ := newTestEngine()
		item, wf := seedApproval(t, engine, content, "+15551230030")

		engine.now = func() time.Time { return time.Now().Add(25 * time.Hour) }

		reply, err := engine.HandleInbound(ctx, "+15551230030", "APPROVE", "msg-1")
		require.NoError(t, err)
		assert.Equal(t, expiredNotice("en"), reply)

		current, _ := store.FindByID(ctx, wf.ID)
		assert.Equal(t, workflowmodels.StatusExpired, current.Status)

		// Item không được publish khi workflow hết hạn
		stale, _ := content.FindOneById(ctx, item.ID)
		assert.Equal(t, contentmodels.ContentStatusDraft, stale.Status)
	})

	t.Run("✅ sweep ExpireOlderThan chuyển hàng loạt", func(t *testing.T) {
		engine, store, content, _ := newTestEngine()
		seedApproval(t, engine, content, "+15551230031")

		count, err := store.ExpireOlderThan(ctx, time.Now().Add(25*time.Hour))
		require.NoError(t, err)
		assert.Equal(t, int64(1), count)
	})
}

func TestEngine_EditCycle(t *testing.T) {
	ctx := context.Background()

	t.Run("✅ EDIT rồi gửi yêu cầu sửa tạo item mới + workflow mới", func(t *testing.T) {
		engine, store, content, _ := newTestEngine()
		item, wf := seedApproval(t, engine, content, "+15551230040")

		_, err := engine.HandleInbound(ctx, "+15551230040", "EDIT", "msg-1")
		require.NoError(t, err)

		reply, err := engine.HandleInbound(ctx, "+15551230040", "make it shorter, mention the lobster", "msg-2")
		require.NoError(t, err)
		assert.Contains(t, reply, "Revised: make it shorter, mention the lobster")

		// Workflow cũ đóng terminal và trỏ sang item thay thế
		old, _ := store.FindByID(ctx, wf.ID)
		assert.Equal(t, workflowmodels.StatusRejected, old.Status)
		assert.False(t, old.SupersededBy.IsZero())
		assert.NotEqual(t, item.ID, old.SupersededBy)

		// Workflow mới pending trên item mới với TTL mới
		fresh, err := store.FindActiveByPhone(ctx, "+15551230040")
		require.NoError(t, err)
		assert.Equal(t, workflowmodels.StatusPending, fresh.Status)
		assert.Equal(t, old.SupersededBy, fresh.PrimaryItemID)

		newItem, err := content.FindOneById(ctx, fresh.PrimaryItemID)
		require.NoError(t, err)
		assert.Equal(t, "Revised: make it shorter, mention the lobster", newItem.Caption)
		assert.Equal(t, item.Platform, newItem.Platform)
	})

	t.Run("✅ thua CAS khi đóng workflow cũ thì draft thay thế bị discard", func(t *testing.T) {
		engine, store, content, _ := newTestEngine()
		_, wf := seedApproval(t, engine, content, "+15551230042")

		_, err := engine.HandleInbound(ctx, "+15551230042", "EDIT", "msg-1")
		require.NoError(t, err)

		editing, err := store.FindByID(ctx, wf.ID)
		require.NoError(t, err)

		// Sweep đóng workflow ngay trước khi edit instructions được áp dụng
		_, err = store.ApplyTransition(ctx, wf.ID, workflowmodels.ActiveStatuses, workflowmodels.StatusExpired, "", nil)
		require.NoError(t, err)

		reply, err := engine.applyEditInstructions(ctx, editing, "shorter please", "msg-2")
		require.NoError(t, err)
		assert.Equal(t, expiredNotice("en"), reply)

		// Không có workflow mới, và draft thay thế không bị mồ côi ở trạng thái draft
		_, err = store.FindActiveByPhone(ctx, "+15551230042")
		assert.True(t, errors.Is(err, common.ErrNotFound))

		found := false
		for _, item := range content.items {
			if item.Caption == "Revised: shorter please" {
				found = true
				assert.Equal(t, contentmodels.ContentStatusDiscarded, item.Status)
			}
		}
		assert.True(t, found)
	})

	t.Run("❌ text tự do khi chưa EDIT chỉ trả về help", func(t *testing.T) {
		engine, store, content, _ := newTestEngine()
		_, wf := seedApproval(t, engine, content, "+15551230041")

		reply, err := engine.HandleInbound(ctx, "+15551230041", "random gibberish here", "msg-1")
		require.NoError(t, err)
		assert.Equal(t, helpMessage("en"), reply)

		current, _ := store.FindByID(ctx, wf.ID)
		assert.Equal(t, workflowmodels.StatusPending, current.Status)
	})
}

func TestEngine_ViewAndStatus(t *testing.T) {
	ctx := context.Background()

	t.Run("✅ VIEW gửi lại preview với caption", func(t *testing.T) {
		engine, _, content, _ := newTestEngine()
		item, _ := seedApproval(t, engine, content, "+15551230050")

		reply, err := engine.HandleInbound(ctx, "+15551230050", "VIEW", "msg-1")
		require.NoError(t, err)
		assert.Contains(t, reply, item.Caption)
		assert.Contains(t, reply, "#lobster")
	})

	t.Run("✅ STATUS trả về tóm tắt trạng thái", func(t *testing.T) {
		engine, _, content, _ := newTestEngine()
		seedApproval(t, engine, content, "+15551230051")

		reply, err := engine.HandleInbound(ctx, "+15551230051", "STATUS", "msg-1")
		require.NoError(t, err)
		assert.Contains(t, reply, string(workflowmodels.TypeContentApproval))
		assert.Contains(t, reply, workflowmodels.StatusPending)
	})
}

func TestEngine_DailySuggestions(t *testing.T) {
	ctx := context.Background()

	t.Run("✅ chọn số mở approval workflow cho ý tưởng", func(t *testing.T) {
		engine, store, content, _ := newTestEngine()

		dc := workflowmodels.DailyContext{
			UserID: "user-1", Phone: "+15551230060", Language: "en", Ideas: testIdeas(),
		}
		daily, err := engine.CreateDailySuggestions(ctx, dc)
		require.NoError(t, err)

		reply, err := engine.HandleInbound(ctx, "+15551230060", "2", "msg-1")
		require.NoError(t, err)
		assert.Contains(t, reply, "Generated caption")

		closed, _ := store.FindByID(ctx, daily.ID)
		assert.Equal(t, workflowmodels.StatusApproved, closed.Status)
		assert.Equal(t, "2", closed.Selection)

		// Approval workflow mới trên item vừa sinh từ ý tưởng số 2
		fresh, err := store.FindActiveByPhone(ctx, "+15551230060")
		require.NoError(t, err)
		assert.Equal(t, workflowmodels.TypeContentApproval, fresh.Type)

		item, err := content.FindOneById(ctx, fresh.PrimaryItemID)
		require.NoError(t, err)
		assert.Equal(t, "Description for idea 2", item.Transcript)
	})

	t.Run("❌ số ngoài khoảng gửi lại menu", func(t *testing.T) {
		engine, store, _, _ := newTestEngine()

		dc := workflowmodels.DailyContext{
			UserID: "user-1", Phone: "+15551230061", Language: "en", Ideas: testIdeas(),
		}
		daily, err := engine.CreateDailySuggestions(ctx, dc)
		require.NoError(t, err)

		reply, err := engine.HandleInbound(ctx, "+15551230061", "9", "msg-1")
		require.NoError(t, err)
		assert.True(t, strings.Contains(reply, "Idea 1"))

		current, _ := store.FindByID(ctx, daily.ID)
		assert.Equal(t, workflowmodels.StatusPending, current.Status)
	})

	t.Run("✅ CUSTOM đóng workflow và mời thu âm", func(t *testing.T) {
		engine, store, _, _ := newTestEngine()

		dc := workflowmodels.DailyContext{
			UserID: "user-1", Phone: "+15551230062", Language: "en", Ideas: testIdeas(),
		}
		daily, err := engine.CreateDailySuggestions(ctx, dc)
		require.NoError(t, err)

		reply, err := engine.HandleInbound(ctx, "+15551230062", "CUSTOM", "msg-1")
		require.NoError(t, err)
		assert.Equal(t, customInvite("en"), reply)

		closed, _ := store.FindByID(ctx, daily.ID)
		assert.Equal(t, workflowmodels.StatusApproved, closed.Status)
		assert.Equal(t, "custom", closed.Selection)
	})
}

func TestEngine_NoActiveWorkflow(t *testing.T) {
	ctx := context.Background()

	t.Run("✅ tin nhắn lạ trả về notice + help", func(t *testing.T) {
		engine, _, _, _ := newTestEngine()

		reply, err := engine.HandleInbound(ctx, "+15559990000", "APPROVE", "msg-1")
		require.NoError(t, err)
		assert.Equal(t, noActiveNotice("en"), reply)
	})

	t.Run("✅ notice theo ngôn ngữ profile của người gửi", func(t *testing.T) {
		store := NewMemStore()
		content := newFakeContent()
		gateway := &fakeGateway{}
		engine := NewEngine(store, content, &fakeIdeas{ideas: testIdeas(), lang: "fr"}, fakeGenerator{}, gateway, 24*time.Hour)

		reply, err := engine.HandleInbound(ctx, "+15559990002", "APPROVE", "msg-1")
		require.NoError(t, err)
		assert.Equal(t, noActiveNotice("fr"), reply)
	})

	t.Run("✅ không tra được profile rơi về tiếng Anh", func(t *testing.T) {
		store := NewMemStore()
		content := newFakeContent()
		gateway := &fakeGateway{}
		engine := NewEngine(store, content, &fakeIdeas{err: common.ErrNotFound}, fakeGenerator{}, gateway, 24*time.Hour)

		reply, err := engine.HandleInbound(ctx, "+15559990003", "hello", "msg-1")
		require.NoError(t, err)
		assert.Equal(t, noActiveNotice("en"), reply)
	})

	t.Run("✅ SUGGESTIONS mở daily workflow ngay cả khi không có workflow", func(t *testing.T) {
		engine, store, _, _ := newTestEngine()

		reply, err := engine.HandleInbound(ctx, "+15559990001", "SUGGESTIONS", "msg-1")
		require.NoError(t, err)
		assert.Contains(t, reply, "Idea 1")

		fresh, err := store.FindActiveByPhone(ctx, "+15559990001")
		require.NoError(t, err)
		assert.Equal(t, workflowmodels.TypeDailySuggestion, fresh.Type)
	})
}

func TestEngine_Conflict(t *testing.T) {
	ctx := context.Background()

	t.Run("❌ item đã có workflow hoạt động không mở thêm được", func(t *testing.T) {
		engine, _, content, _ := newTestEngine()
		item, _ := seedApproval(t, engine, content, "+15551230070")

		_, err := engine.CreateApproval(ctx, item, "+15551230070")
		assert.True(t, errors.Is(err, common.ErrWorkflowConflict))
	})
}

func TestEngine_ResendPreview(t *testing.T) {
	ctx := context.Background()

	t.Run("✅ resend gửi lại preview của workflow hoạt động", func(t *testing.T) {
		engine, _, content, gateway := newTestEngine()
		item, wf := seedApproval(t, engine, content, "+15551230080")

		before := len(gateway.sent)
		reply, err := engine.ResendPreview(ctx, wf.ID)
		require.NoError(t, err)
		assert.Contains(t, reply, item.Caption)
		assert.Equal(t, before+1, len(gateway.sent))
	})

	t.Run("❌ workflow terminal không resend được", func(t *testing.T) {
		engine, _, content, _ := newTestEngine()
		_, wf := seedApproval(t, engine, content, "+15551230081")

		_, err := engine.HandleInbound(ctx, "+15551230081", "REJECT", "msg-1")
		require.NoError(t, err)

		_, err = engine.ResendPreview(ctx, wf.ID)
		assert.True(t, errors.Is(err, common.ErrWorkflowTerminal))
	})
}
