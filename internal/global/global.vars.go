// Package global chứa các biến dùng chung toàn hệ thống:
// cấu hình, session MongoDB, registry collections và validator.
package global

import (
	"github.com/go-playground/validator/v10"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/cardinalconseils/chefsocial-voice-sub000/config"
	"github.com/cardinalconseils/chefsocial-voice-sub000/internal/registry"
)

// MongoDBColNames chứa tên các collections trong database
type MongoDBColNames struct {
	ContentItems       string
	Workflows          string
	RestaurantProfiles string
	WebhookLogs        string
	DeliveryQueue      string
	DeliveryHistory    string
}

var (
	// Config là cấu hình toàn cục của ứng dụng
	Config *config.Configuration

	// MongoDBSession là session kết nối MongoDB
	MongoDBSession *mongo.Client

	// MongoDB_ColNames là tên các collections
	MongoDB_ColNames = MongoDBColNames{
		ContentItems:       "content_items",
		Workflows:          "workflows",
		RestaurantProfiles: "restaurant_profiles",
		WebhookLogs:        "webhook_logs",
		DeliveryQueue:      "delivery_queue",
		DeliveryHistory:    "delivery_history",
	}

	// RegistryCollections là registry chứa các MongoDB collections đã khởi tạo
	RegistryCollections = registry.NewRegistry[*mongo.Collection]()

	// Validate là validator toàn cục (khởi tạo trong InitValidator)
	Validate *validator.Validate
)

// ColNameSlice trả về danh sách tên tất cả collections (dùng khi khởi tạo registry)
func ColNameSlice() []string {
	return []string{
		MongoDB_ColNames.ContentItems,
		MongoDB_ColNames.Workflows,
		MongoDB_ColNames.RestaurantProfiles,
		MongoDB_ColNames.WebhookLogs,
		MongoDB_ColNames.DeliveryQueue,
		MongoDB_ColNames.DeliveryHistory,
	}
}
