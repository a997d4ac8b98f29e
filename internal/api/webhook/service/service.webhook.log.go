// Package webhooksvc chứa service data access cho domain Webhook.
package webhooksvc

import (
	"context"
	"errors"
	"fmt"

	basesvc "github.com/cardinalconseils/chefsocial-voice-sub000/internal/api/base/service"
	webhookmodels "github.com/cardinalconseils/chefsocial-voice-sub000/internal/api/webhook/models"
	"github.com/cardinalconseils/chefsocial-voice-sub000/internal/common"
	"github.com/cardinalconseils/chefsocial-voice-sub000/internal/global"
)

// WebhookLogService quản lý webhook logs với dedupe theo providerMessageId
type WebhookLogService struct {
	*basesvc.BaseServiceMongoImpl[webhookmodels.WebhookLog]
}

// NewWebhookLogService tạo mới WebhookLogService
func NewWebhookLogService() (*WebhookLogService, error) {
	collection, exist := global.RegistryCollections.Get(global.MongoDB_ColNames.WebhookLogs)
	if !exist {
		return nil, fmt.Errorf("failed to get webhook_logs collection: %v", common.ErrNotFound)
	}

	return &WebhookLogService{
		BaseServiceMongoImpl: basesvc.NewBaseServiceMongo[webhookmodels.WebhookLog](collection),
	}, nil
}

// CreateIfNew insert log cho một inbound message.
// Trả về (log, true, nil) nếu là tin mới; (zero, false, nil) nếu
// providerMessageId đã có — tức provider retry, caller chỉ cần acknowledge.
func (s *WebhookLogService) CreateIfNew(ctx context.Context, log webhookmodels.WebhookLog) (webhookmodels.WebhookLog, bool, error) {
	created, err := s.InsertOne(ctx, log)
	if err != nil {
		if errors.Is(err, common.ErrDuplicate) {
			return webhookmodels.WebhookLog{}, false, nil
		}
		return webhookmodels.WebhookLog{}, false, err
	}
	return created, true, nil
}

// UpdateProcessedStatus cập nhật kết quả xử lý của một log
func (s *WebhookLogService) UpdateProcessedStatus(ctx context.Context, log webhookmodels.WebhookLog, reply string, processErr error) error {
	set := map[string]interface{}{
		"processed": processErr == nil,
		"reply":     reply,
	}
	if processErr != nil {
		set["processError"] = processErr.Error()
	}

	_, err := s.UpdateById(ctx, log.ID, &basesvc.UpdateData{Set: set})
	return err
}
