package main

import (
	"crypto/tls"
	"fmt"
	"net"
	"os"
	"path/filepath"
	"time"

	"github.com/gofiber/fiber/v3"

	"github.com/cardinalconseils/chefsocial-voice-sub000/internal/ai"
	contentsvc "github.com/cardinalconseils/chefsocial-voice-sub000/internal/api/content/service"
	deliverysvc "github.com/cardinalconseils/chefsocial-voice-sub000/internal/api/delivery/service"
	suggestionsvc "github.com/cardinalconseils/chefsocial-voice-sub000/internal/api/suggestion/service"
	workflowsvc "github.com/cardinalconseils/chefsocial-voice-sub000/internal/api/workflow/service"
	"github.com/cardinalconseils/chefsocial-voice-sub000/internal/delivery"
	"github.com/cardinalconseils/chefsocial-voice-sub000/internal/global"
	"github.com/cardinalconseils/chefsocial-voice-sub000/internal/logger"
	"github.com/cardinalconseils/chefsocial-voice-sub000/internal/messaging"
	"github.com/cardinalconseils/chefsocial-voice-sub000/internal/worker"
)

// initLogger khởi tạo logger cho toàn bộ ứng dụng
func initLogger() {
	if err := logger.Init(nil); err != nil {
		panic(fmt.Sprintf("Failed to initialize logger: %v", err))
	}
	logger.GetAppLogger().Info("Logger system initialized successfully")
}

// initEngine nối workflow engine với các dependencies thật
// và đăng ký làm default engine cho handlers.
func initEngine() {
	log := logger.GetAppLogger()

	store, err := workflowsvc.NewMongoStore()
	if err != nil {
		log.Fatalf("Failed to create workflow store: %v", err)
	}
	content, err := contentsvc.NewContentItemService()
	if err != nil {
		log.Fatalf("Failed to create content service: %v", err)
	}
	suggestions, err := suggestionsvc.NewSuggestionService()
	if err != nil {
		log.Fatalf("Failed to create suggestion service: %v", err)
	}
	queue, err := deliverysvc.NewDeliveryQueueService()
	if err != nil {
		log.Fatalf("Failed to create delivery queue service: %v", err)
	}
	client, err := ai.NewClient(global.Config)
	if err != nil {
		log.Fatalf("Failed to create AI client: %v", err)
	}

	ttl := time.Duration(global.Config.WorkflowTTLHours) * time.Hour
	gateway := messaging.NewQueuedGateway(queue)
	engine := workflowsvc.NewEngine(store, content, suggestions, client, gateway, ttl)
	workflowsvc.SetDefaultEngine(engine)

	log.WithField("ttl", ttl.String()).Info("✅ Workflow engine initialized")
}

// startWorkers khởi động delivery processor và workflow cleanup worker
func startWorkers() {
	log := logger.GetAppLogger()

	queue, err := deliverysvc.NewDeliveryQueueService()
	if err != nil {
		log.Fatalf("Failed to create delivery queue service: %v", err)
	}
	history, err := deliverysvc.NewDeliveryHistoryService()
	if err != nil {
		log.Fatalf("Failed to create delivery history service: %v", err)
	}
	store, err := workflowsvc.NewMongoStore()
	if err != nil {
		log.Fatalf("Failed to create workflow store: %v", err)
	}

	processor := delivery.NewProcessor(global.Config, queue, history)
	go processor.Start()

	cleanupInterval := time.Duration(global.Config.CleanupIntervalMinutes) * time.Minute
	cleanup := worker.NewWorkflowCleanupWorker(store, cleanupInterval)
	go cleanup.Start()
}

// resolvePath tìm đường dẫn tuyệt đối từ project root (nơi có config/env)
func resolvePath(path string) string {
	if filepath.IsAbs(path) {
		return path
	}
	currentDir, err := os.Getwd()
	if err != nil {
		return path
	}
	for {
		envDir := filepath.Join(currentDir, "config", "env")
		if _, err := os.Stat(envDir); err == nil {
			return filepath.Join(currentDir, path)
		}
		parentDir := filepath.Dir(currentDir)
		if parentDir == currentDir {
			return path
		}
		currentDir = parentDir
	}
}

// serve chạy Fiber server với TLS nếu được cấu hình
func serve(app *fiber.App) {
	log := logger.GetAppLogger()
	cfg := global.Config
	address := cfg.Address

	if cfg.TLSCert != "" && cfg.TLSKey != "" {
		certPath := resolvePath(cfg.TLSCert)
		keyPath := resolvePath(cfg.TLSKey)

		cert, err := tls.LoadX509KeyPair(certPath, keyPath)
		if err != nil {
			log.Fatalf("Error loading TLS certificate: %v", err)
		}

		ln, err := net.Listen("tcp", address)
		if err != nil {
			log.Fatalf("Error creating listener: %v", err)
		}
		tlsListener := tls.NewListener(ln, &tls.Config{
			Certificates: []tls.Certificate{cert},
			MinVersion:   tls.VersionTLS12,
		})

		log.WithFields(map[string]interface{}{
			"address": address,
			"cert":    certPath,
		}).Info("Starting server with HTTPS/TLS")

		if err := app.Listener(tlsListener); err != nil {
			log.Fatalf("Error in Fiber Listener with TLS: %v", err)
		}
		return
	}

	log.WithFields(map[string]interface{}{
		"address":  address,
		"protocol": "HTTP",
	}).Info("Starting server with HTTP")

	if err := app.Listen(address, fiber.ListenConfig{}); err != nil {
		log.Fatalf("Error in Fiber Listen: %v", err)
	}
}

func main() {
	initLogger()
	InitGlobal()
	InitRegistry()
	InitIndexes()
	initEngine()
	startWorkers()

	app := InitFiberApp()
	serve(app)
}
