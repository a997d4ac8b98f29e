// Package contentsvc chứa service data access cho domain Content.
package contentsvc

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/options"

	basesvc "github.com/cardinalconseils/chefsocial-voice-sub000/internal/api/base/service"
	contentmodels "github.com/cardinalconseils/chefsocial-voice-sub000/internal/api/content/models"
	"github.com/cardinalconseils/chefsocial-voice-sub000/internal/common"
	"github.com/cardinalconseils/chefsocial-voice-sub000/internal/global"
)

// ContentItemService quản lý content items.
// Publish/discard là CAS trên status để đảm bảo mỗi item chỉ publish đúng một lần.
type ContentItemService struct {
	*basesvc.BaseServiceMongoImpl[contentmodels.ContentItem]
}

// NewContentItemService tạo mới ContentItemService
func NewContentItemService() (*ContentItemService, error) {
	collection, exist := global.RegistryCollections.Get(global.MongoDB_ColNames.ContentItems)
	if !exist {
		return nil, fmt.Errorf("failed to get content_items collection: %v", common.ErrNotFound)
	}

	return &ContentItemService{
		BaseServiceMongoImpl: basesvc.NewBaseServiceMongo[contentmodels.ContentItem](collection),
	}, nil
}

// MarkPublished chuyển item từ draft sang published (CAS, đúng một lần).
// Item không còn ở draft thì trả về ErrNotFound — caller diễn giải là đã xử lý rồi.
func (s *ContentItemService) MarkPublished(ctx context.Context, id primitive.ObjectID) (contentmodels.ContentItem, error) {
	now := time.Now().UnixMilli()
	filter := bson.M{"_id": id, "status": contentmodels.ContentStatusDraft}
	update := bson.M{"$set": bson.M{
		"status":      contentmodels.ContentStatusPublished,
		"publishedAt": now,
		"updatedAt":   now,
	}}
	return s.FindOneAndUpdate(ctx, filter, update, nil)
}

// MarkDiscarded chuyển item từ draft sang discarded (CAS)
func (s *ContentItemService) MarkDiscarded(ctx context.Context, id primitive.ObjectID) (contentmodels.ContentItem, error) {
	filter := bson.M{"_id": id, "status": contentmodels.ContentStatusDraft}
	update := bson.M{"$set": bson.M{
		"status":    contentmodels.ContentStatusDiscarded,
		"updatedAt": time.Now().UnixMilli(),
	}}
	return s.FindOneAndUpdate(ctx, filter, update, nil)
}

// FindRecentByUser trả về các items gần nhất của một user
func (s *ContentItemService) FindRecentByUser(ctx context.Context, userID string, limit int64) ([]contentmodels.ContentItem, error) {
	opts := options.Find().
		SetSort(bson.D{{Key: "createdAt", Value: -1}}).
		SetLimit(limit)
	return s.Find(ctx, bson.M{"userId": userID}, opts)
}
