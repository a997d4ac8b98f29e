package database

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/cardinalconseils/chefsocial-voice-sub000/internal/global"
	"github.com/cardinalconseils/chefsocial-voice-sub000/internal/logger"
)

// workflowIndexModels trả về indexes cho collection workflows:
//   - unique partial index đảm bảo mỗi content item chỉ có 1 workflow đang hoạt động.
//     Filter phải kèm $exists: daily_suggestion workflows không có primaryItemId,
//     thiếu điều kiện này thì chúng đụng nhau trên null key dù khác user.
//   - lookup theo phone + status cho inbound commands
//   - expiresAt cho cleanup sweep
func workflowIndexModels() []mongo.IndexModel {
	return []mongo.IndexModel{
		{
			Keys: bson.D{{Key: "primaryItemId", Value: 1}},
			Options: options.Index().
				SetUnique(true).
				SetPartialFilterExpression(bson.M{
					"primaryItemId": bson.M{"$exists": true},
					"status":        bson.M{"$in": []string{"pending", "editing"}},
				}),
		},
		{Keys: bson.D{{Key: "recipientPhone", Value: 1}, {Key: "status", Value: 1}, {Key: "createdAt", Value: -1}}},
		{Keys: bson.D{{Key: "status", Value: 1}, {Key: "expiresAt", Value: 1}}},
		{Keys: bson.D{{Key: "userId", Value: 1}, {Key: "createdAt", Value: -1}}},
	}
}

// EnsureIndexes tạo các indexes cần thiết cho hệ thống.
// Gọi khi khởi động server, idempotent.
func EnsureIndexes(ctx context.Context, db *mongo.Database) error {
	log := logger.GetAppLogger()
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	// content_items: query theo user và trạng thái
	contentIndexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "userId", Value: 1}, {Key: "createdAt", Value: -1}}},
		{Keys: bson.D{{Key: "status", Value: 1}}},
		{Keys: bson.D{{Key: "platform", Value: 1}}},
	}
	if _, err := db.Collection(global.MongoDB_ColNames.ContentItems).Indexes().CreateMany(ctx, contentIndexes); err != nil {
		return err
	}

	if _, err := db.Collection(global.MongoDB_ColNames.Workflows).Indexes().CreateMany(ctx, workflowIndexModels()); err != nil {
		return err
	}

	// restaurant_profiles: mỗi user một profile, lookup theo phone
	profileIndexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "userId", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "phone", Value: 1}}},
	}
	if _, err := db.Collection(global.MongoDB_ColNames.RestaurantProfiles).Indexes().CreateMany(ctx, profileIndexes); err != nil {
		return err
	}

	// webhook_logs: unique trên provider message id để dedupe inbound
	webhookIndexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "providerMessageId", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{Keys: bson.D{{Key: "createdAt", Value: -1}}},
	}
	if _, err := db.Collection(global.MongoDB_ColNames.WebhookLogs).Indexes().CreateMany(ctx, webhookIndexes); err != nil {
		return err
	}

	// delivery_queue: dequeue theo status + nextRetryAt
	queueIndexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "status", Value: 1}, {Key: "nextRetryAt", Value: 1}, {Key: "createdAt", Value: 1}}},
	}
	if _, err := db.Collection(global.MongoDB_ColNames.DeliveryQueue).Indexes().CreateMany(ctx, queueIndexes); err != nil {
		return err
	}

	// delivery_history: tra cứu theo queue item và thời gian
	historyIndexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "queueItemId", Value: 1}}},
		{Keys: bson.D{{Key: "createdAt", Value: -1}}},
	}
	if _, err := db.Collection(global.MongoDB_ColNames.DeliveryHistory).Indexes().CreateMany(ctx, historyIndexes); err != nil {
		return err
	}

	log.Info("✅ MongoDB indexes ensured")
	return nil
}
