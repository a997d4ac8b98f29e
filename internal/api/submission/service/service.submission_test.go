package submissionsvc

import (
	"context"
	"encoding/base64"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/cardinalconseils/chefsocial-voice-sub000/internal/ai"
	contentmodels "github.com/cardinalconseils/chefsocial-voice-sub000/internal/api/content/models"
	submissiondto "github.com/cardinalconseils/chefsocial-voice-sub000/internal/api/submission/dto"
	suggestionmodels "github.com/cardinalconseils/chefsocial-voice-sub000/internal/api/suggestion/models"
	workflowmodels "github.com/cardinalconseils/chefsocial-voice-sub000/internal/api/workflow/models"
	"github.com/cardinalconseils/chefsocial-voice-sub000/internal/common"
)

type fakeInserter struct {
	items []contentmodels.ContentItem
}

func (f *fakeInserter) InsertOne(_ context.Context, item contentmodels.ContentItem) (contentmodels.ContentItem, error) {
	item.ID = primitive.NewObjectID()
	f.items = append(f.items, item)
	return item, nil
}

type fakeProfiles struct {
	profile suggestionmodels.RestaurantProfile
	err     error
}

func (f *fakeProfiles) FindByUserID(context.Context, string) (suggestionmodels.RestaurantProfile, error) {
	return f.profile, f.err
}

type fakeTranscriber struct {
	result ai.Transcription
}

func (f *fakeTranscriber) Transcribe(context.Context, []byte, string, string) ai.Transcription {
	return f.result
}

type fakeVision struct {
	result ai.VisualDescription
	called bool
}

func (f *fakeVision) Describe(context.Context, []byte, string, string) ai.VisualDescription {
	f.called = true
	return f.result
}

type fakeGenerator struct{}

func (fakeGenerator) GenerateDrafts(_ context.Context, req ai.DraftRequest) []ai.PlatformDraft {
	drafts := make([]ai.PlatformDraft, 0, len(req.Platforms))
	for _, p := range req.Platforms {
		drafts = append(drafts, ai.PlatformDraft{
			Platform:      p,
			Caption:       "Caption for " + p,
			Tags:          []string{"tag"},
			ViralityScore: 65,
			BestPostTime:  "18:00",
		})
	}
	return drafts
}

type fakeApprovals struct {
	created []contentmodels.ContentItem
	phone   string
	err     error
}

func (f *fakeApprovals) CreateApproval(_ context.Context, item contentmodels.ContentItem, phone string) (workflowmodels.Workflow, error) {
	if f.err != nil {
		return workflowmodels.Workflow{}, f.err
	}
	f.created = append(f.created, item)
	f.phone = phone
	return workflowmodels.Workflow{
		ID:            primitive.NewObjectID(),
		Type:          workflowmodels.TypeContentApproval,
		PrimaryItemID: item.ID,
		Status:        workflowmodels.StatusPending,
	}, nil
}

func validAudio() string {
	return base64.StdEncoding.EncodeToString([]byte("fake-audio-bytes"))
}

func newTestPipeline(content *fakeInserter, profiles *fakeProfiles, vision *fakeVision, approvals *fakeApprovals) *SubmissionService {
	transcriber := &fakeTranscriber{result: ai.Transcription{Text: "Tonight we serve fresh lobster", Language: "en"}}
	return NewSubmissionService(content, profiles, transcriber, vision, fakeGenerator{}, approvals, 30*time.Second)
}

func TestSubmissionPipeline(t *testing.T) {
	ctx := context.Background()

	t.Run("❌ audio không phải base64 trả về lỗi VAL", func(t *testing.T) {
		pipeline := newTestPipeline(&fakeInserter{}, &fakeProfiles{err: common.ErrNotFound}, &fakeVision{}, &fakeApprovals{})

		_, err := pipeline.Process(ctx, submissiondto.SubmitRequest{
			UserID:      "user-1",
			AudioBase64: "!!not-base64!!",
		})
		assert.True(t, errors.Is(err, common.ErrInvalidAudio))
	})

	t.Run("❌ image không phải base64 trả về lỗi VAL", func(t *testing.T) {
		pipeline := newTestPipeline(&fakeInserter{}, &fakeProfiles{err: common.ErrNotFound}, &fakeVision{}, &fakeApprovals{})

		_, err := pipeline.Process(ctx, submissiondto.SubmitRequest{
			UserID:      "user-1",
			AudioBase64: validAudio(),
			ImageBase64: "%%%",
		})
		require.Error(t, err)

		var customErr *common.Error
		require.True(t, errors.As(err, &customErr))
		assert.Equal(t, common.CodeInvalidFormat, customErr.Code)
	})

	t.Run("✅ tạo một item cho mỗi platform với transcript chung", func(t *testing.T) {
		content := &fakeInserter{}
		pipeline := newTestPipeline(content, &fakeProfiles{err: common.ErrNotFound}, &fakeVision{}, &fakeApprovals{})

		result, err := pipeline.Process(ctx, submissiondto.SubmitRequest{
			UserID:      "user-1",
			AudioBase64: validAudio(),
			Platforms:   []string{"instagram", "feed_post"},
			Language:    "en",
		})
		require.NoError(t, err)
		require.Len(t, result.Items, 2)

		assert.Equal(t, "instagram", result.Items[0].Platform)
		assert.Equal(t, "feed_post", result.Items[1].Platform)
		for _, item := range result.Items {
			assert.Equal(t, "Tonight we serve fresh lobster", item.Transcript)
			assert.Equal(t, "user-1", item.UserID)
		}
		assert.Equal(t, "Tonight we serve fresh lobster", result.Transcript)
		assert.False(t, result.Fallback)
	})

	t.Run("✅ không chỉ định platform dùng cả ba mặc định", func(t *testing.T) {
		content := &fakeInserter{}
		pipeline := newTestPipeline(content, &fakeProfiles{err: common.ErrNotFound}, &fakeVision{}, &fakeApprovals{})

		result, err := pipeline.Process(ctx, submissiondto.SubmitRequest{
			UserID:      "user-1",
			AudioBase64: validAudio(),
		})
		require.NoError(t, err)
		assert.Len(t, result.Items, 3)
	})

	t.Run("✅ vision chỉ chạy khi có image", func(t *testing.T) {
		vision := &fakeVision{result: ai.VisualDescription{Text: "A plated dish"}}
		pipeline := newTestPipeline(&fakeInserter{}, &fakeProfiles{err: common.ErrNotFound}, vision, &fakeApprovals{})

		_, err := pipeline.Process(ctx, submissiondto.SubmitRequest{
			UserID:      "user-1",
			AudioBase64: validAudio(),
		})
		require.NoError(t, err)
		assert.False(t, vision.called)

		result, err := pipeline.Process(ctx, submissiondto.SubmitRequest{
			UserID:      "user-1",
			AudioBase64: validAudio(),
			ImageBase64: base64.StdEncoding.EncodeToString([]byte("fake-image")),
		})
		require.NoError(t, err)
		assert.True(t, vision.called)
		assert.Equal(t, "A plated dish", result.VisualDescription)
	})

	t.Run("✅ có phone mở approval cho platform ưu tiên instagram", func(t *testing.T) {
		approvals := &fakeApprovals{}
		pipeline := newTestPipeline(&fakeInserter{}, &fakeProfiles{err: common.ErrNotFound}, &fakeVision{}, approvals)

		result, err := pipeline.Process(ctx, submissiondto.SubmitRequest{
			UserID:      "user-1",
			AudioBase64: validAudio(),
			Phone:       "+15551234567",
			Platforms:   []string{"feed_post", "instagram", "short_video"},
		})
		require.NoError(t, err)
		require.NotNil(t, result.Workflow)
		require.Len(t, approvals.created, 1)
		assert.Equal(t, "instagram", approvals.created[0].Platform)
		assert.Equal(t, "+15551234567", approvals.phone)
	})

	t.Run("✅ không có phone trong request lấy từ profile", func(t *testing.T) {
		approvals := &fakeApprovals{}
		profiles := &fakeProfiles{profile: suggestionmodels.RestaurantProfile{
			UserID: "user-1", Name: "Chez Marcel", Phone: "+15557654321", Language: "fr",
		}}
		pipeline := newTestPipeline(&fakeInserter{}, profiles, &fakeVision{}, approvals)

		result, err := pipeline.Process(ctx, submissiondto.SubmitRequest{
			UserID:      "user-1",
			AudioBase64: validAudio(),
			Platforms:   []string{"instagram"},
		})
		require.NoError(t, err)
		require.NotNil(t, result.Workflow)
		assert.Equal(t, "+15557654321", approvals.phone)

		// Language lấy từ profile khi request không chỉ định
		assert.Equal(t, "fr", result.Items[0].Language)
	})

	t.Run("✅ không có phone nào thì chỉ lưu drafts, không workflow", func(t *testing.T) {
		approvals := &fakeApprovals{}
		pipeline := newTestPipeline(&fakeInserter{}, &fakeProfiles{err: common.ErrNotFound}, &fakeVision{}, approvals)

		result, err := pipeline.Process(ctx, submissiondto.SubmitRequest{
			UserID:      "user-1",
			AudioBase64: validAudio(),
			Platforms:   []string{"instagram"},
		})
		require.NoError(t, err)
		assert.Nil(t, result.Workflow)
		assert.Empty(t, approvals.created)
	})

	t.Run("✅ lỗi mở workflow không làm fail pipeline", func(t *testing.T) {
		approvals := &fakeApprovals{err: errors.New("engine down")}
		pipeline := newTestPipeline(&fakeInserter{}, &fakeProfiles{err: common.ErrNotFound}, &fakeVision{}, approvals)

		result, err := pipeline.Process(ctx, submissiondto.SubmitRequest{
			UserID:      "user-1",
			AudioBase64: validAudio(),
			Phone:       "+15551234567",
			Platforms:   []string{"instagram"},
		})
		require.NoError(t, err)
		assert.Len(t, result.Items, 1)
		assert.Nil(t, result.Workflow)
	})
}

func TestPickPrimary(t *testing.T) {
	mk := func(platform string) contentmodels.ContentItem {
		return contentmodels.ContentItem{ID: primitive.NewObjectID(), Platform: platform}
	}

	t.Run("✅ instagram thắng mọi platform khác", func(t *testing.T) {
		item, ok := pickPrimary([]contentmodels.ContentItem{mk("feed_post"), mk("short_video"), mk("instagram")})
		require.True(t, ok)
		assert.Equal(t, "instagram", item.Platform)
	})

	t.Run("✅ short_video thắng feed_post", func(t *testing.T) {
		item, ok := pickPrimary([]contentmodels.ContentItem{mk("feed_post"), mk("short_video")})
		require.True(t, ok)
		assert.Equal(t, "short_video", item.Platform)
	})

	t.Run("❌ danh sách rỗng", func(t *testing.T) {
		_, ok := pickPrimary(nil)
		assert.False(t, ok)
	})
}
