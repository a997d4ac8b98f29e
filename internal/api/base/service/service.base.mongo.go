// Package basesvc cung cấp generic service CRUD trên MongoDB.
// Mọi service domain embed BaseServiceMongoImpl[T] để có sẵn các thao tác chuẩn:
// insert với timestamps + default tags, find/pagination, update, CAS qua FindOneAndUpdate.
package basesvc

import (
	"context"
	"reflect"
	"strconv"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	basemodels "github.com/cardinalconseils/chefsocial-voice-sub000/internal/api/base/models"
	"github.com/cardinalconseils/chefsocial-voice-sub000/internal/common"
)

// UpdateData mô tả một update document có cấu trúc,
// tránh cho caller tự viết bson.M{"$set": ...} rải rác.
type UpdateData struct {
	Set         map[string]interface{}
	SetOnInsert map[string]interface{}
	Unset       map[string]interface{}
	Push        map[string]interface{}
	AddToSet    map[string]interface{}
}

// BuildUpdateDocument chuyển UpdateData thành bson.M cho mongo-driver.
// updatedAt luôn được set tự động.
func (u *UpdateData) BuildUpdateDocument() bson.M {
	doc := bson.M{}

	set := bson.M{}
	for k, v := range u.Set {
		set[k] = v
	}
	set["updatedAt"] = time.Now().UnixMilli()
	doc["$set"] = set

	if len(u.SetOnInsert) > 0 {
		doc["$setOnInsert"] = bson.M(u.SetOnInsert)
	}
	if len(u.Unset) > 0 {
		doc["$unset"] = bson.M(u.Unset)
	}
	if len(u.Push) > 0 {
		doc["$push"] = bson.M(u.Push)
	}
	if len(u.AddToSet) > 0 {
		doc["$addToSet"] = bson.M(u.AddToSet)
	}
	return doc
}

// BaseServiceMongo là interface chuẩn cho mọi service trên MongoDB
type BaseServiceMongo[T any] interface {
	InsertOne(ctx context.Context, data T) (T, error)
	InsertMany(ctx context.Context, data []T) ([]T, error)
	FindOne(ctx context.Context, filter interface{}, opts *options.FindOneOptions) (T, error)
	FindOneById(ctx context.Context, id primitive.ObjectID) (T, error)
	Find(ctx context.Context, filter interface{}, opts *options.FindOptions) ([]T, error)
	FindWithPagination(ctx context.Context, filter interface{}, page, limit int64, opts *options.FindOptions) (*basemodels.PaginateResult[T], error)
	FindOneAndUpdate(ctx context.Context, filter interface{}, update interface{}, opts *options.FindOneAndUpdateOptions) (T, error)
	UpdateById(ctx context.Context, id primitive.ObjectID, update *UpdateData) (T, error)
	UpdateMany(ctx context.Context, filter interface{}, update interface{}) (int64, error)
	DeleteOne(ctx context.Context, filter interface{}) error
	DeleteById(ctx context.Context, id primitive.ObjectID) error
	CountDocuments(ctx context.Context, filter interface{}) (int64, error)
	DocumentExists(ctx context.Context, filter interface{}) (bool, error)
	Collection() *mongo.Collection
}

// BaseServiceMongoImpl là implementation chuẩn của BaseServiceMongo
type BaseServiceMongoImpl[T any] struct {
	collection *mongo.Collection
}

// NewBaseServiceMongo tạo base service trên một collection
func NewBaseServiceMongo[T any](collection *mongo.Collection) *BaseServiceMongoImpl[T] {
	return &BaseServiceMongoImpl[T]{collection: collection}
}

// Collection trả về collection gốc cho các query đặc thù của domain
func (s *BaseServiceMongoImpl[T]) Collection() *mongo.Collection {
	return s.collection
}

// applyInsertDefaults set timestamps và các field có tag `default` khi còn zero value.
// Hỗ trợ string, int các loại, float, bool.
func applyInsertDefaults[T any](data *T) {
	v := reflect.ValueOf(data).Elem()
	if v.Kind() != reflect.Struct {
		return
	}
	t := v.Type()

	for i := 0; i < t.NumField(); i++ {
		field := v.Field(i)
		def := t.Field(i).Tag.Get("default")
		if def == "" || !field.CanSet() || !field.IsZero() {
			continue
		}

		switch field.Kind() {
		case reflect.String:
			field.SetString(def)
		case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
			if n, err := strconv.ParseInt(def, 10, 64); err == nil {
				field.SetInt(n)
			}
		case reflect.Float32, reflect.Float64:
			if f, err := strconv.ParseFloat(def, 64); err == nil {
				field.SetFloat(f)
			}
		case reflect.Bool:
			if b, err := strconv.ParseBool(def); err == nil {
				field.SetBool(b)
			}
		}
	}

	// createdAt/updatedAt theo UnixMilli nếu model có khai báo
	now := time.Now().UnixMilli()
	for _, name := range []string{"CreatedAt", "UpdatedAt"} {
		if f := v.FieldByName(name); f.IsValid() && f.CanSet() && f.Kind() == reflect.Int64 && f.IsZero() {
			f.SetInt(now)
		}
	}
}

// InsertOne thêm một document, tự set timestamps + defaults và gán lại ID.
func (s *BaseServiceMongoImpl[T]) InsertOne(ctx context.Context, data T) (T, error) {
	applyInsertDefaults(&data)

	result, err := s.collection.InsertOne(ctx, data)
	if err != nil {
		var zero T
		return zero, common.ConvertMongoError(err)
	}

	if oid, ok := result.InsertedID.(primitive.ObjectID); ok {
		setObjectIDField(&data, oid)
	}
	return data, nil
}

// setObjectIDField gán ObjectID vào field ID của struct (nếu có)
func setObjectIDField[T any](data *T, id primitive.ObjectID) {
	v := reflect.ValueOf(data).Elem()
	if v.Kind() != reflect.Struct {
		return
	}
	f := v.FieldByName("ID")
	if f.IsValid() && f.CanSet() && f.Type() == reflect.TypeOf(primitive.ObjectID{}) {
		f.Set(reflect.ValueOf(id))
	}
}

// InsertMany thêm nhiều documents
func (s *BaseServiceMongoImpl[T]) InsertMany(ctx context.Context, data []T) ([]T, error) {
	if len(data) == 0 {
		return nil, nil
	}

	docs := make([]interface{}, len(data))
	for i := range data {
		applyInsertDefaults(&data[i])
		docs[i] = data[i]
	}

	result, err := s.collection.InsertMany(ctx, docs)
	if err != nil {
		return nil, common.ConvertMongoError(err)
	}

	for i, insertedID := range result.InsertedIDs {
		if oid, ok := insertedID.(primitive.ObjectID); ok && i < len(data) {
			setObjectIDField(&data[i], oid)
		}
	}
	return data, nil
}

// FindOne tìm một document theo filter
func (s *BaseServiceMongoImpl[T]) FindOne(ctx context.Context, filter interface{}, opts *options.FindOneOptions) (T, error) {
	var result T
	err := s.collection.FindOne(ctx, filter, opts).Decode(&result)
	if err != nil {
		var zero T
		return zero, common.ConvertMongoError(err)
	}
	return result, nil
}

// FindOneById tìm một document theo ObjectID
func (s *BaseServiceMongoImpl[T]) FindOneById(ctx context.Context, id primitive.ObjectID) (T, error) {
	return s.FindOne(ctx, bson.M{"_id": id}, nil)
}

// Find tìm nhiều documents theo filter
func (s *BaseServiceMongoImpl[T]) Find(ctx context.Context, filter interface{}, opts *options.FindOptions) ([]T, error) {
	cursor, err := s.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, common.ConvertMongoError(err)
	}
	defer cursor.Close(ctx)

	var results []T
	if err := cursor.All(ctx, &results); err != nil {
		return nil, common.ConvertMongoError(err)
	}
	return results, nil
}

// FindWithPagination tìm documents có phân trang. page bắt đầu từ 1.
func (s *BaseServiceMongoImpl[T]) FindWithPagination(ctx context.Context, filter interface{}, page, limit int64, opts *options.FindOptions) (*basemodels.PaginateResult[T], error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 200 {
		limit = 20
	}

	totalCount, err := s.collection.CountDocuments(ctx, filter)
	if err != nil {
		return nil, common.ConvertMongoError(err)
	}

	if opts == nil {
		opts = options.Find()
	}
	opts.SetSkip((page - 1) * limit).SetLimit(limit)

	items, err := s.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}

	totalPages := totalCount / limit
	if totalCount%limit > 0 {
		totalPages++
	}

	return &basemodels.PaginateResult[T]{
		Items:      items,
		Page:       page,
		Limit:      limit,
		ItemCount:  int64(len(items)),
		TotalCount: totalCount,
		TotalPages: totalPages,
	}, nil
}

// FindOneAndUpdate thực hiện update nguyên tử trên một document.
// Đây là primitive cho mọi CAS transition: filter chứa điều kiện trạng thái,
// không match thì trả về ErrNotFound — caller tự diễn giải.
func (s *BaseServiceMongoImpl[T]) FindOneAndUpdate(ctx context.Context, filter interface{}, update interface{}, opts *options.FindOneAndUpdateOptions) (T, error) {
	if opts == nil {
		opts = options.FindOneAndUpdate().SetReturnDocument(options.After)
	}

	var result T
	err := s.collection.FindOneAndUpdate(ctx, filter, update, opts).Decode(&result)
	if err != nil {
		var zero T
		return zero, common.ConvertMongoError(err)
	}
	return result, nil
}

// UpdateById cập nhật document theo ID và trả về bản sau update
func (s *BaseServiceMongoImpl[T]) UpdateById(ctx context.Context, id primitive.ObjectID, update *UpdateData) (T, error) {
	return s.FindOneAndUpdate(ctx, bson.M{"_id": id}, update.BuildUpdateDocument(), nil)
}

// UpdateMany cập nhật nhiều documents, trả về số lượng đã modify
func (s *BaseServiceMongoImpl[T]) UpdateMany(ctx context.Context, filter interface{}, update interface{}) (int64, error) {
	result, err := s.collection.UpdateMany(ctx, filter, update)
	if err != nil {
		return 0, common.ConvertMongoError(err)
	}
	return result.ModifiedCount, nil
}

// DeleteOne xóa một document theo filter
func (s *BaseServiceMongoImpl[T]) DeleteOne(ctx context.Context, filter interface{}) error {
	result, err := s.collection.DeleteOne(ctx, filter)
	if err != nil {
		return common.ConvertMongoError(err)
	}
	if result.DeletedCount == 0 {
		return common.ErrNotFound
	}
	return nil
}

// DeleteById xóa document theo ObjectID
func (s *BaseServiceMongoImpl[T]) DeleteById(ctx context.Context, id primitive.ObjectID) error {
	return s.DeleteOne(ctx, bson.M{"_id": id})
}

// CountDocuments đếm documents theo filter
func (s *BaseServiceMongoImpl[T]) CountDocuments(ctx context.Context, filter interface{}) (int64, error) {
	count, err := s.collection.CountDocuments(ctx, filter)
	if err != nil {
		return 0, common.ConvertMongoError(err)
	}
	return count, nil
}

// DocumentExists kiểm tra document có tồn tại không
func (s *BaseServiceMongoImpl[T]) DocumentExists(ctx context.Context, filter interface{}) (bool, error) {
	count, err := s.collection.CountDocuments(ctx, filter, options.Count().SetLimit(1))
	if err != nil {
		return false, common.ConvertMongoError(err)
	}
	return count > 0, nil
}
