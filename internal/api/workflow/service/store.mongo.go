package workflowsvc

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/options"

	basesvc "github.com/cardinalconseils/chefsocial-voice-sub000/internal/api/base/service"
	workflowmodels "github.com/cardinalconseils/chefsocial-voice-sub000/internal/api/workflow/models"
	"github.com/cardinalconseils/chefsocial-voice-sub000/internal/common"
	"github.com/cardinalconseils/chefsocial-voice-sub000/internal/global"
)

// MongoStore là implementation MongoDB của Store.
// Mọi transition đi qua FindOneAndUpdate với filter trạng thái —
// hai request cùng lúc thì chỉ một bên thắng, bên thua nhận ErrNotFound.
type MongoStore struct {
	*basesvc.BaseServiceMongoImpl[workflowmodels.Workflow]
}

// NewMongoStore tạo MongoStore trên collection workflows
func NewMongoStore() (*MongoStore, error) {
	collection, exist := global.RegistryCollections.Get(global.MongoDB_ColNames.Workflows)
	if !exist {
		return nil, fmt.Errorf("failed to get workflows collection: %v", common.ErrNotFound)
	}

	return &MongoStore{
		BaseServiceMongoImpl: basesvc.NewBaseServiceMongo[workflowmodels.Workflow](collection),
	}, nil
}

// Create tạo workflow mới. Unique partial index trên primaryItemId
// (status in pending/editing) chặn workflow hoạt động thứ hai cho cùng item.
func (s *MongoStore) Create(ctx context.Context, wf workflowmodels.Workflow) (workflowmodels.Workflow, error) {
	created, err := s.InsertOne(ctx, wf)
	if err != nil {
		if errors.Is(err, common.ErrDuplicate) {
			return workflowmodels.Workflow{}, common.ErrWorkflowConflict
		}
		return workflowmodels.Workflow{}, err
	}
	return created, nil
}

// FindByID tìm workflow theo ID
func (s *MongoStore) FindByID(ctx context.Context, id primitive.ObjectID) (workflowmodels.Workflow, error) {
	return s.FindOneById(ctx, id)
}

// FindActiveByPhone tìm workflow hoạt động mới nhất của một số điện thoại
func (s *MongoStore) FindActiveByPhone(ctx context.Context, phone string) (workflowmodels.Workflow, error) {
	filter := bson.M{
		"recipientPhone": phone,
		"status":         bson.M{"$in": workflowmodels.ActiveStatuses},
	}
	opts := options.FindOne().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	return s.FindOne(ctx, filter, opts)
}

// FindByUser trả về các workflows gần nhất của một user
func (s *MongoStore) FindByUser(ctx context.Context, userID string, limit int64) ([]workflowmodels.Workflow, error) {
	opts := options.Find().
		SetSort(bson.D{{Key: "createdAt", Value: -1}}).
		SetLimit(limit)
	return s.Find(ctx, bson.M{"userId": userID}, opts)
}

// ApplyTransition chuyển trạng thái nguyên tử qua FindOneAndUpdate
func (s *MongoStore) ApplyTransition(ctx context.Context, id primitive.ObjectID, from []string, to string, messageID string, extra map[string]interface{}) (workflowmodels.Workflow, error) {
	set := bson.M{
		"status":    to,
		"updatedAt": time.Now().UnixMilli(),
	}
	if messageID != "" {
		set["lastMessageId"] = messageID
	}
	for k, v := range extra {
		set[k] = v
	}

	filter := bson.M{
		"_id":    id,
		"status": bson.M{"$in": from},
	}
	return s.FindOneAndUpdate(ctx, filter, bson.M{"$set": set}, nil)
}

// ExpireOlderThan quét mọi workflow hoạt động đã quá hạn sang expired
func (s *MongoStore) ExpireOlderThan(ctx context.Context, now time.Time) (int64, error) {
	filter := bson.M{
		"status":    bson.M{"$in": workflowmodels.ActiveStatuses},
		"expiresAt": bson.M{"$lte": now.UnixMilli()},
	}
	update := bson.M{"$set": bson.M{
		"status":    workflowmodels.StatusExpired,
		"updatedAt": time.Now().UnixMilli(),
	}}
	return s.UpdateMany(ctx, filter, update)
}
