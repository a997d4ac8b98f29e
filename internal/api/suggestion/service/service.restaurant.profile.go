// Package suggestionsvc chứa service cho domain Suggestion.
package suggestionsvc

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"

	basesvc "github.com/cardinalconseils/chefsocial-voice-sub000/internal/api/base/service"
	suggestionmodels "github.com/cardinalconseils/chefsocial-voice-sub000/internal/api/suggestion/models"
	"github.com/cardinalconseils/chefsocial-voice-sub000/internal/common"
	"github.com/cardinalconseils/chefsocial-voice-sub000/internal/global"
	"github.com/cardinalconseils/chefsocial-voice-sub000/internal/utility"
)

// RestaurantProfileService quản lý restaurant profiles
type RestaurantProfileService struct {
	*basesvc.BaseServiceMongoImpl[suggestionmodels.RestaurantProfile]
}

// NewRestaurantProfileService tạo mới RestaurantProfileService
func NewRestaurantProfileService() (*RestaurantProfileService, error) {
	collection, exist := global.RegistryCollections.Get(global.MongoDB_ColNames.RestaurantProfiles)
	if !exist {
		return nil, fmt.Errorf("failed to get restaurant_profiles collection: %v", common.ErrNotFound)
	}

	return &RestaurantProfileService{
		BaseServiceMongoImpl: basesvc.NewBaseServiceMongo[suggestionmodels.RestaurantProfile](collection),
	}, nil
}

// FindByUserID tìm profile theo user id
func (s *RestaurantProfileService) FindByUserID(ctx context.Context, userID string) (suggestionmodels.RestaurantProfile, error) {
	return s.FindOne(ctx, bson.M{"userId": userID}, nil)
}

// FindByPhone tìm profile theo số điện thoại (đã chuẩn hóa)
func (s *RestaurantProfileService) FindByPhone(ctx context.Context, phone string) (suggestionmodels.RestaurantProfile, error) {
	return s.FindOne(ctx, bson.M{"phone": utility.NormalizePhone(phone)}, nil)
}
