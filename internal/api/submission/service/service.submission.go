// Package submissionsvc chứa voice submission pipeline:
// audio (+image) → transcription + vision song song → drafts → content items → approval workflow.
package submissionsvc

import (
	"context"
	"encoding/base64"
	"errors"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/cardinalconseils/chefsocial-voice-sub000/internal/ai"
	contentmodels "github.com/cardinalconseils/chefsocial-voice-sub000/internal/api/content/models"
	submissiondto "github.com/cardinalconseils/chefsocial-voice-sub000/internal/api/submission/dto"
	suggestionmodels "github.com/cardinalconseils/chefsocial-voice-sub000/internal/api/suggestion/models"
	workflowmodels "github.com/cardinalconseils/chefsocial-voice-sub000/internal/api/workflow/models"
	"github.com/cardinalconseils/chefsocial-voice-sub000/internal/common"
	"github.com/cardinalconseils/chefsocial-voice-sub000/internal/logger"
	"github.com/cardinalconseils/chefsocial-voice-sub000/internal/utility"
)

// defaultPlatforms khi request không chỉ định platform nào
var defaultPlatforms = []string{"instagram", "short_video", "feed_post"}

// primaryPlatformOrder quyết định platform nào được đưa vào approval workflow
var primaryPlatformOrder = []string{"instagram", "short_video", "feed_post"}

// ContentInserter là phần của content service mà pipeline cần
type ContentInserter interface {
	InsertOne(ctx context.Context, item contentmodels.ContentItem) (contentmodels.ContentItem, error)
}

// ProfileResolver tìm restaurant profile để lấy phone/tên nhà hàng
type ProfileResolver interface {
	FindByUserID(ctx context.Context, userID string) (suggestionmodels.RestaurantProfile, error)
}

// ApprovalCreator mở approval workflow cho item chính (workflow engine)
type ApprovalCreator interface {
	CreateApproval(ctx context.Context, item contentmodels.ContentItem, phone string) (workflowmodels.Workflow, error)
}

// SubmissionService điều phối pipeline từ submission đến approval workflow
type SubmissionService struct {
	content     ContentInserter
	profiles    ProfileResolver
	transcriber ai.Transcriber
	vision      ai.VisionDescriber
	generator   ai.DraftGenerator
	approvals   ApprovalCreator
	timeout     time.Duration
	log         *logrus.Logger
}

// NewSubmissionService tạo pipeline service (timeout <= 0 → 30s)
func NewSubmissionService(content ContentInserter, profiles ProfileResolver, transcriber ai.Transcriber, vision ai.VisionDescriber, generator ai.DraftGenerator, approvals ApprovalCreator, timeout time.Duration) *SubmissionService {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &SubmissionService{
		content:     content,
		profiles:    profiles,
		transcriber: transcriber,
		vision:      vision,
		generator:   generator,
		approvals:   approvals,
		timeout:     timeout,
		log:         logger.GetAppLogger(),
	}
}

// Process chạy toàn bộ pipeline cho một submission.
// Sau khi input đã decode được thì pipeline không fail nữa:
// AI adapters tự fallback, lỗi gửi SMS chỉ log.
func (s *SubmissionService) Process(ctx context.Context, req submissiondto.SubmitRequest) (submissiondto.SubmitResult, error) {
	audio, err := base64.StdEncoding.DecodeString(req.AudioBase64)
	if err != nil {
		return submissiondto.SubmitResult{}, common.ErrInvalidAudio
	}

	var image []byte
	if req.ImageBase64 != "" {
		image, err = base64.StdEncoding.DecodeString(req.ImageBase64)
		if err != nil {
			return submissiondto.SubmitResult{}, common.NewError(common.CodeInvalidFormat, "Image không phải base64 hợp lệ", common.StatusBadRequest, err)
		}
	}

	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	platforms := req.Platforms
	if len(platforms) == 0 {
		platforms = defaultPlatforms
	}

	// Profile cung cấp tên nhà hàng/cuisine cho prompt và phone khi request không có
	profile, perr := s.resolveProfile(ctx, req.UserID)
	lang := req.Language
	if lang == "" {
		lang = profile.Language
	}
	if lang == "" {
		lang = "en"
	}

	// Transcription và vision độc lập nhau → chạy song song
	var (
		wg            sync.WaitGroup
		transcription ai.Transcription
		visual        ai.VisualDescription
	)
	wg.Add(1)
	go func() {
		defer wg.Done()
		transcription = s.transcriber.Transcribe(ctx, audio, req.AudioMimeType, lang)
	}()
	if len(image) > 0 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			visual = s.vision.Describe(ctx, image, req.ImageMimeType, lang)
		}()
	}
	wg.Wait()

	drafts := s.generator.GenerateDrafts(ctx, ai.DraftRequest{
		Transcript:        transcription.Text,
		VisualDescription: visual.Text,
		RestaurantName:    profile.Name,
		Cuisine:           profile.Cuisine,
		Language:          lang,
		Platforms:         platforms,
	})

	fallback := transcription.Fallback || visual.Fallback
	items := make([]contentmodels.ContentItem, 0, len(drafts))
	for _, d := range drafts {
		item, ierr := s.content.InsertOne(ctx, contentmodels.ContentItem{
			UserID:            req.UserID,
			Platform:          d.Platform,
			Caption:           d.Caption,
			Tags:              d.Tags,
			Transcript:        transcription.Text,
			VisualDescription: visual.Text,
			ViralityScore:     d.ViralityScore,
			BestPostTime:      d.BestPostTime,
			Language:          lang,
			Fallback:          d.Fallback || fallback,
		})
		if ierr != nil {
			return submissiondto.SubmitResult{}, ierr
		}
		items = append(items, item)
	}

	s.log.WithFields(logrus.Fields{
		"userId":    req.UserID,
		"platforms": platforms,
		"items":     len(items),
		"fallback":  fallback,
		"language":  lang,
	}).Info("🎙️ [SUBMISSION] Pipeline completed")

	result := submissiondto.SubmitResult{
		Items:             items,
		Transcript:        transcription.Text,
		VisualDescription: visual.Text,
		Fallback:          fallback,
	}

	// Mở approval workflow cho platform chính nếu có phone nhận duyệt
	phone := req.Phone
	if phone == "" && perr == nil {
		phone = profile.Phone
	}
	phone = utility.NormalizePhone(phone)
	if phone != "" && s.approvals != nil {
		if primary, ok := pickPrimary(items); ok {
			wf, werr := s.approvals.CreateApproval(ctx, primary, phone)
			if werr != nil && !errors.Is(werr, common.ErrWorkflowConflict) {
				s.log.WithError(werr).WithField("itemId", primary.ID.Hex()).
					Warn("🎙️ [SUBMISSION] Không mở được approval workflow, drafts vẫn đã lưu")
			}
			if werr == nil {
				result.Workflow = &wf
			}
		}
	}

	return result, nil
}

// resolveProfile trả về profile của user, hoặc zero value khi không có
func (s *SubmissionService) resolveProfile(ctx context.Context, userID string) (suggestionmodels.RestaurantProfile, error) {
	if s.profiles == nil {
		return suggestionmodels.RestaurantProfile{}, common.ErrNotFound
	}
	profile, err := s.profiles.FindByUserID(ctx, userID)
	if err != nil {
		return suggestionmodels.RestaurantProfile{}, err
	}
	return profile, nil
}

// pickPrimary chọn item cho approval workflow theo thứ tự ưu tiên platform
func pickPrimary(items []contentmodels.ContentItem) (contentmodels.ContentItem, bool) {
	for _, platform := range primaryPlatformOrder {
		for _, item := range items {
			if item.Platform == platform {
				return item, true
			}
		}
	}
	if len(items) > 0 {
		return items[0], true
	}
	return contentmodels.ContentItem{}, false
}
