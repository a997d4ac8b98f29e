package workflowsvc

import (
	"context"
	"errors"
	"strconv"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/cardinalconseils/chefsocial-voice-sub000/internal/ai"
	contentmodels "github.com/cardinalconseils/chefsocial-voice-sub000/internal/api/content/models"
	workflowmodels "github.com/cardinalconseils/chefsocial-voice-sub000/internal/api/workflow/models"
	"github.com/cardinalconseils/chefsocial-voice-sub000/internal/command"
	"github.com/cardinalconseils/chefsocial-voice-sub000/internal/common"
	"github.com/cardinalconseils/chefsocial-voice-sub000/internal/logger"
)

// Gateway gửi tin nhắn text ra ngoài. Production là delivery queue,
// tests dùng fake ghi lại tin nhắn.
type Gateway interface {
	SendText(ctx context.Context, to, body string) error
}

// ContentStore là phần của content service mà engine cần
type ContentStore interface {
	InsertOne(ctx context.Context, item contentmodels.ContentItem) (contentmodels.ContentItem, error)
	FindOneById(ctx context.Context, id primitive.ObjectID) (contentmodels.ContentItem, error)
	MarkPublished(ctx context.Context, id primitive.ObjectID) (contentmodels.ContentItem, error)
	MarkDiscarded(ctx context.Context, id primitive.ObjectID) (contentmodels.ContentItem, error)
}

// IdeaProvider xây daily suggestion context cho một số điện thoại
type IdeaProvider interface {
	BuildDailyForPhone(ctx context.Context, phone string, now time.Time) (workflowmodels.DailyContext, error)
}

// Engine điều phối approval loop qua tin nhắn hai chiều.
// Engine KHÔNG có lock nội bộ: tính đúng đắn đến từ CAS của Store —
// hai lệnh đua nhau thì một bên thắng, bên thua nhận ErrNotFound và báo lại trạng thái mới.
type Engine struct {
	store     Store
	content   ContentStore
	ideas     IdeaProvider
	generator ai.DraftGenerator
	gateway   Gateway
	ttl       time.Duration
	now       func() time.Time
}

// NewEngine tạo engine với TTL cho workflow (mặc định 24h nếu ttl <= 0)
func NewEngine(store Store, content ContentStore, ideas IdeaProvider, generator ai.DraftGenerator, gateway Gateway, ttl time.Duration) *Engine {
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &Engine{
		store:     store,
		content:   content,
		ideas:     ideas,
		generator: generator,
		gateway:   gateway,
		ttl:       ttl,
		now:       time.Now,
	}
}

// send gửi tin best-effort: gửi lỗi không làm fail nghiệp vụ,
// nội dung vẫn còn trong store và xem lại được bằng VIEW.
func (e *Engine) send(ctx context.Context, to, body string) {
	if e.gateway == nil || to == "" {
		return
	}
	if err := e.gateway.SendText(ctx, to, body); err != nil {
		logger.WithModule("workflow").WithError(err).WithField("recipient", to).
			Warn("📨 [WORKFLOW] Gửi tin nhắn thất bại, nội dung vẫn xem lại được bằng VIEW")
	}
}

// CreateApproval tạo workflow duyệt cho một content item và gửi preview.
// Item đã có workflow đang hoạt động → ErrWorkflowConflict.
func (e *Engine) CreateApproval(ctx context.Context, item contentmodels.ContentItem, phone string) (workflowmodels.Workflow, error) {
	wf := workflowmodels.Workflow{
		Type:           workflowmodels.TypeContentApproval,
		UserID:         item.UserID,
		PrimaryItemID:  item.ID,
		ItemIDs:        []primitive.ObjectID{item.ID},
		RecipientPhone: phone,
		Language:       item.Language,
		Status:         workflowmodels.StatusPending,
		ExpiresAt:      e.now().Add(e.ttl).UnixMilli(),
	}

	created, err := e.store.Create(ctx, wf)
	if err != nil {
		return workflowmodels.Workflow{}, err
	}

	logger.WithModule("workflow").WithFields(map[string]interface{}{
		"workflowId": created.ID.Hex(),
		"itemId":     item.ID.Hex(),
		"platform":   item.Platform,
	}).Info("📨 [WORKFLOW] Approval workflow created")

	e.send(ctx, phone, previewMessage(created.Language, item))
	return created, nil
}

// CreateDailySuggestions tạo workflow daily_suggestion và gửi menu 5 ý tưởng
func (e *Engine) CreateDailySuggestions(ctx context.Context, dc workflowmodels.DailyContext) (workflowmodels.Workflow, error) {
	wf := workflowmodels.Workflow{
		Type:           workflowmodels.TypeDailySuggestion,
		UserID:         dc.UserID,
		RecipientPhone: dc.Phone,
		Language:       dc.Language,
		Status:         workflowmodels.StatusPending,
		Suggestions:    dc.Ideas,
		ExpiresAt:      e.now().Add(e.ttl).UnixMilli(),
	}

	created, err := e.store.Create(ctx, wf)
	if err != nil {
		return workflowmodels.Workflow{}, err
	}

	logger.WithModule("workflow").WithFields(map[string]interface{}{
		"workflowId": created.ID.Hex(),
		"userId":     dc.UserID,
		"ideas":      len(dc.Ideas),
	}).Info("💡 [WORKFLOW] Daily suggestion workflow created")

	e.send(ctx, dc.Phone, suggestionMenu(created.Language, dc.Ideas))
	return created, nil
}

// HandleInbound xử lý một tin nhắn trả lời. Idempotent trên messageID:
// tin đã xử lý rồi chỉ được acknowledge, không áp dụng lại transition.
// Trả về nội dung tin đã trả lời (tiện cho test và webhook log).
func (e *Engine) HandleInbound(ctx context.Context, from, body, messageID string) (string, error) {
	cmd := command.Parse(body)

	wf, err := e.store.FindActiveByPhone(ctx, from)
	if errors.Is(err, common.ErrNotFound) {
		return e.handleNoActive(ctx, from, cmd)
	}
	if err != nil {
		return "", err
	}

	lang := wf.Language

	// Idempotence: cùng messageID với lần xử lý trước → chỉ acknowledge
	if messageID != "" && wf.LastMessageID == messageID {
		reply := alreadyHandled(lang)
		e.send(ctx, from, reply)
		return reply, nil
	}

	// Lazy expiry: workflow quá hạn mà sweep chưa chạy tới
	if wf.ExpiresAt <= e.now().UnixMilli() {
		_, _ = e.store.ApplyTransition(ctx, wf.ID, workflowmodels.ActiveStatuses, workflowmodels.StatusExpired, messageID, nil)
		reply := expiredNotice(lang)
		e.send(ctx, from, reply)
		return reply, nil
	}

	if wf.Type == workflowmodels.TypeDailySuggestion {
		return e.handleDailyCommand(ctx, wf, cmd, messageID)
	}
	return e.handleApprovalCommand(ctx, wf, cmd, messageID)
}

// handleNoActive xử lý tin nhắn khi không có workflow hoạt động.
// Notice theo ngôn ngữ profile của người gửi (tra qua IdeaProvider),
// không tra được thì tiếng Anh.
func (e *Engine) handleNoActive(ctx context.Context, from string, cmd command.Command) (string, error) {
	lang := "en"
	if e.ideas != nil {
		if dc, err := e.ideas.BuildDailyForPhone(ctx, from, e.now()); err == nil {
			if dc.Language != "" {
				lang = dc.Language
			}
			if cmd.Intent == command.IntentSuggestions {
				if created, cerr := e.CreateDailySuggestions(ctx, dc); cerr == nil {
					return suggestionMenu(created.Language, created.Suggestions), nil
				}
			}
		}
	}

	reply := noActiveNotice(lang)
	e.send(ctx, from, reply)
	return reply, nil
}

// handleApprovalCommand xử lý lệnh trên workflow content_approval
func (e *Engine) handleApprovalCommand(ctx context.Context, wf workflowmodels.Workflow, cmd command.Command, messageID string) (string, error) {
	lang := wf.Language

	switch cmd.Intent {
	case command.IntentApprove:
		updated, err := e.store.ApplyTransition(ctx, wf.ID, workflowmodels.ActiveStatuses, workflowmodels.StatusApproved, messageID, nil)
		if err != nil {
			return e.replyRaced(ctx, wf, lang)
		}

		// Publish đúng một lần: CAS trên status draft, ErrNotFound = đã publish rồi
		item, perr := e.content.MarkPublished(ctx, wf.PrimaryItemID)
		if perr != nil && !errors.Is(perr, common.ErrNotFound) {
			logger.WithModule("workflow").WithError(perr).WithField("itemId", wf.PrimaryItemID.Hex()).
				Error("📨 [WORKFLOW] Publish content item thất bại sau khi approve")
		}

		platform := item.Platform
		if platform == "" {
			platform = "social"
		}
		reply := confirmApproved(lang, platform)
		e.send(ctx, updated.RecipientPhone, reply)
		return reply, nil

	case command.IntentReject:
		updated, err := e.store.ApplyTransition(ctx, wf.ID, workflowmodels.ActiveStatuses, workflowmodels.StatusRejected, messageID, nil)
		if err != nil {
			return e.replyRaced(ctx, wf, lang)
		}

		if _, derr := e.content.MarkDiscarded(ctx, wf.PrimaryItemID); derr != nil && !errors.Is(derr, common.ErrNotFound) {
			logger.WithModule("workflow").WithError(derr).WithField("itemId", wf.PrimaryItemID.Hex()).
				Error("📨 [WORKFLOW] Discard content item thất bại sau khi reject")
		}

		reply := confirmRejected(lang)
		e.send(ctx, updated.RecipientPhone, reply)
		return reply, nil

	case command.IntentEdit:
		if wf.Status != workflowmodels.StatusEditing {
			if _, err := e.store.ApplyTransition(ctx, wf.ID, []string{workflowmodels.StatusPending}, workflowmodels.StatusEditing, messageID, nil); err != nil {
				return e.replyRaced(ctx, wf, lang)
			}
		}
		reply := editPrompt(lang)
		e.send(ctx, wf.RecipientPhone, reply)
		return reply, nil

	case command.IntentView:
		item, err := e.content.FindOneById(ctx, wf.PrimaryItemID)
		if err != nil {
			return "", err
		}
		reply := previewMessage(lang, item)
		e.send(ctx, wf.RecipientPhone, reply)
		return reply, nil

	case command.IntentStatus:
		expires := time.UnixMilli(wf.ExpiresAt).UTC().Format("15:04 MST")
		reply := statusSummary(lang, wf, expires)
		e.send(ctx, wf.RecipientPhone, reply)
		return reply, nil

	case command.IntentSuggestions:
		return e.handleNoActive(ctx, wf.RecipientPhone, cmd)

	case command.IntentUnknown:
		if wf.Status == workflowmodels.StatusEditing && cmd.RawText != "" {
			return e.applyEditInstructions(ctx, wf, cmd.RawText, messageID)
		}
		fallthrough

	default:
		reply := helpMessage(lang)
		e.send(ctx, wf.RecipientPhone, reply)
		return reply, nil
	}
}

// applyEditInstructions sinh lại draft theo yêu cầu sửa:
// item mới + workflow pending mới (TTL chạy lại từ đầu),
// workflow cũ đóng terminal với tham chiếu sang item thay thế.
func (e *Engine) applyEditInstructions(ctx context.Context, wf workflowmodels.Workflow, instructions, messageID string) (string, error) {
	lang := wf.Language

	orig, err := e.content.FindOneById(ctx, wf.PrimaryItemID)
	if err != nil {
		return "", err
	}

	drafts := e.generator.GenerateDrafts(ctx, ai.DraftRequest{
		Transcript:        orig.Transcript,
		VisualDescription: orig.VisualDescription,
		Language:          lang,
		Platforms:         []string{orig.Platform},
		EditInstructions:  instructions,
	})
	if len(drafts) == 0 {
		reply := helpMessage(lang)
		e.send(ctx, wf.RecipientPhone, reply)
		return reply, nil
	}
	d := drafts[0]

	newItem, err := e.content.InsertOne(ctx, contentmodels.ContentItem{
		UserID:            orig.UserID,
		Platform:          orig.Platform,
		Caption:           d.Caption,
		Tags:              d.Tags,
		MediaURL:          orig.MediaURL,
		Transcript:        orig.Transcript,
		VisualDescription: orig.VisualDescription,
		ViralityScore:     d.ViralityScore,
		BestPostTime:      d.BestPostTime,
		Language:          lang,
		Fallback:          d.Fallback,
	})
	if err != nil {
		return "", err
	}

	// Đóng workflow cũ trước để giữ bất biến "mỗi item một workflow hoạt động"
	if _, err := e.store.ApplyTransition(ctx, wf.ID, []string{workflowmodels.StatusEditing}, workflowmodels.StatusRejected, messageID, map[string]interface{}{
		"supersededBy": newItem.ID,
	}); err != nil {
		// Thua CAS (sweep hoặc lệnh khác đã đóng workflow): draft vừa sinh
		// chưa gắn vào workflow nào, discard luôn để không thành item mồ côi
		if _, derr := e.content.MarkDiscarded(ctx, newItem.ID); derr != nil && !errors.Is(derr, common.ErrNotFound) {
			logger.WithModule("workflow").WithError(derr).WithField("itemId", newItem.ID.Hex()).
				Error("📨 [WORKFLOW] Discard draft thay thế thất bại sau khi thua CAS")
		}
		return e.replyRaced(ctx, wf, lang)
	}

	created, err := e.CreateApproval(ctx, newItem, wf.RecipientPhone)
	if err != nil {
		return "", err
	}
	return previewMessage(created.Language, newItem), nil
}

// handleDailyCommand xử lý lệnh trên workflow daily_suggestion
func (e *Engine) handleDailyCommand(ctx context.Context, wf workflowmodels.Workflow, cmd command.Command, messageID string) (string, error) {
	lang := wf.Language

	switch cmd.Intent {
	case command.IntentSelect:
		if cmd.Selection < 1 || cmd.Selection > len(wf.Suggestions) {
			reply := suggestionMenu(lang, wf.Suggestions)
			e.send(ctx, wf.RecipientPhone, reply)
			return reply, nil
		}
		idea := wf.Suggestions[cmd.Selection-1]

		if _, err := e.store.ApplyTransition(ctx, wf.ID, workflowmodels.ActiveStatuses, workflowmodels.StatusApproved, messageID, map[string]interface{}{
			"selection": strconv.Itoa(cmd.Selection),
		}); err != nil {
			return e.replyRaced(ctx, wf, lang)
		}

		drafts := e.generator.GenerateDrafts(ctx, ai.DraftRequest{
			Transcript: idea.Description,
			Language:   lang,
			Platforms:  []string{idea.Platform},
		})
		if len(drafts) == 0 {
			reply := helpMessage(lang)
			e.send(ctx, wf.RecipientPhone, reply)
			return reply, nil
		}
		d := drafts[0]

		item, err := e.content.InsertOne(ctx, contentmodels.ContentItem{
			UserID:        wf.UserID,
			Platform:      idea.Platform,
			Caption:       d.Caption,
			Tags:          d.Tags,
			Transcript:    idea.Description,
			ViralityScore: d.ViralityScore,
			BestPostTime:  d.BestPostTime,
			Language:      lang,
			Fallback:      d.Fallback,
		})
		if err != nil {
			return "", err
		}

		created, err := e.CreateApproval(ctx, item, wf.RecipientPhone)
		if err != nil {
			return "", err
		}
		return previewMessage(created.Language, item), nil

	case command.IntentCustom:
		if _, err := e.store.ApplyTransition(ctx, wf.ID, workflowmodels.ActiveStatuses, workflowmodels.StatusApproved, messageID, map[string]interface{}{
			"selection": "custom",
		}); err != nil {
			return e.replyRaced(ctx, wf, lang)
		}
		reply := customInvite(lang)
		e.send(ctx, wf.RecipientPhone, reply)
		return reply, nil

	case command.IntentReject:
		if _, err := e.store.ApplyTransition(ctx, wf.ID, workflowmodels.ActiveStatuses, workflowmodels.StatusRejected, messageID, nil); err != nil {
			return e.replyRaced(ctx, wf, lang)
		}
		reply := confirmRejected(lang)
		e.send(ctx, wf.RecipientPhone, reply)
		return reply, nil

	case command.IntentView:
		reply := suggestionMenu(lang, wf.Suggestions)
		e.send(ctx, wf.RecipientPhone, reply)
		return reply, nil

	case command.IntentStatus:
		expires := time.UnixMilli(wf.ExpiresAt).UTC().Format("15:04 MST")
		reply := statusSummary(lang, wf, expires)
		e.send(ctx, wf.RecipientPhone, reply)
		return reply, nil

	case command.IntentHelp:
		reply := helpMessage(lang)
		e.send(ctx, wf.RecipientPhone, reply)
		return reply, nil

	default:
		reply := suggestionMenu(lang, wf.Suggestions)
		e.send(ctx, wf.RecipientPhone, reply)
		return reply, nil
	}
}

// ResendPreview gửi lại tin nhắn hiện hành của một workflow đang hoạt động:
// preview item với approval, menu ý tưởng với daily suggestion.
func (e *Engine) ResendPreview(ctx context.Context, id primitive.ObjectID) (string, error) {
	wf, err := e.store.FindByID(ctx, id)
	if err != nil {
		return "", err
	}
	if !wf.IsActive() {
		return "", common.ErrWorkflowTerminal
	}

	var reply string
	if wf.Type == workflowmodels.TypeDailySuggestion {
		reply = suggestionMenu(wf.Language, wf.Suggestions)
	} else {
		item, err := e.content.FindOneById(ctx, wf.PrimaryItemID)
		if err != nil {
			return "", err
		}
		reply = previewMessage(wf.Language, item)
	}

	e.send(ctx, wf.RecipientPhone, reply)
	return reply, nil
}

// replyRaced xử lý khi transition thua CAS: đọc lại trạng thái mới và báo cho user
func (e *Engine) replyRaced(ctx context.Context, wf workflowmodels.Workflow, lang string) (string, error) {
	current, err := e.store.FindByID(ctx, wf.ID)
	status := wf.Status
	if err == nil {
		status = current.Status
	}

	var reply string
	if status == workflowmodels.StatusExpired {
		reply = expiredNotice(lang)
	} else {
		reply = terminalNotice(lang, status)
	}
	e.send(ctx, wf.RecipientPhone, reply)
	return reply, nil
}
