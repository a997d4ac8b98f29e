package main

import (
	"github.com/sirupsen/logrus"

	"github.com/cardinalconseils/chefsocial-voice-sub000/config"
	"github.com/cardinalconseils/chefsocial-voice-sub000/internal/database"
	"github.com/cardinalconseils/chefsocial-voice-sub000/internal/global"
)

// InitGlobal khởi tạo các biến toàn cục theo đúng thứ tự:
// config → validator → database.
func InitGlobal() {
	initConfig()
	initValidator()
	initDatabase()
}

// initConfig load cấu hình từ env
func initConfig() {
	cfg, err := config.NewConfig()
	if err != nil {
		logrus.Fatalf("Failed to initialize config: %v", err)
	}
	global.Config = cfg
	logrus.Info("Initialized server config")
}

// initValidator đăng ký custom validators (platform, phone_e164, lang_tag)
func initValidator() {
	global.InitValidator()
	logrus.Info("Initialized validator")
}

// initDatabase kết nối MongoDB
func initDatabase() {
	session, err := database.GetInstance(global.Config.MongoDBURI)
	if err != nil {
		logrus.Fatalf("Failed to get database instance: %v", err)
	}
	global.MongoDBSession = session
	logrus.Info("Connected to MongoDB")
}
