package main

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/cardinalconseils/chefsocial-voice-sub000/internal/database"
	"github.com/cardinalconseils/chefsocial-voice-sub000/internal/global"
)

// InitIndexes tạo các indexes cần thiết. Chạy sau khi registry sẵn sàng.
// Unique partial index trên workflows là bất biến nghiệp vụ
// (mỗi content item chỉ có một workflow đang hoạt động) nên fail là fatal.
func InitIndexes() {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	db := global.MongoDBSession.Database(global.Config.MongoDBName)
	if err := database.EnsureIndexes(ctx, db); err != nil {
		logrus.Fatalf("Failed to ensure indexes: %v", err)
	}

	logrus.Info("Ensured database indexes")
}
