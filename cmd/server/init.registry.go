package main

import (
	"github.com/sirupsen/logrus"

	"github.com/cardinalconseils/chefsocial-voice-sub000/internal/global"
)

// InitRegistry đăng ký các MongoDB collections vào registry toàn cục.
// Services lấy collection qua registry thay vì giữ tham chiếu database.
func InitRegistry() {
	db := global.MongoDBSession.Database(global.Config.MongoDBName)

	for _, name := range global.ColNameSlice() {
		if err := global.RegistryCollections.Register(name, db.Collection(name)); err != nil {
			logrus.Fatalf("Failed to register collection %s: %v", name, err)
		}
	}

	logrus.WithField("collections", len(global.ColNameSlice())).Info("Initialized collection registry")
}
