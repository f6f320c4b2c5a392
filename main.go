package main

import (
	"Spotiquiz/config"
	_ "Spotiquiz/docs"
	"Spotiquiz/middleware"
	"Spotiquiz/routes"
	"Spotiquiz/services/queue"
	"Spotiquiz/services/quiz"
	"Spotiquiz/services/redis"
	"Spotiquiz/services/socket_io"
	socketio_types "Spotiquiz/services/socket_io/types"
	spotisync "Spotiquiz/sync"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
)

// @title Spotiquiz API
// @version 1.0
// @description Gin-Gonic server for the Spotiquiz dashboard and two-player quiz
// @BasePath /
// @securityDefinitions.apikey ApiKeyAuth
// @in header
// @name Authorization
func main() {
	godotenv.Load()
	log.Println("Setting up server...")

	if config.GetEnvBool("PROD", false) {
		gin.SetMode(gin.ReleaseMode)
	}

	gormDB, err := config.ConnectGORM()
	if err != nil {
		log.Fatalf("Error connecting to PostgreSQL: %v", err)
	}
	log.Println("GORM Connected")

	// Only migrate in development or during deployment
	if config.GetEnvBool("MIGRATE_POSTGRES", false) {
		log.Println("Migrating PostgreSQL database...")
		if err := config.MigrateDatabase(gormDB); err != nil {
			log.Printf("Warning: Database migration failed: %v", err)
		} else {
			log.Println("Database migrated successfully")
		}
	}

	sqlDB, err := gormDB.DB()
	if err != nil {
		log.Fatalf("Error reading GORM PostgreSQL instance: %v", err)
	}

	redisClient, err := config.Connect_redis()
	if err != nil {
		log.Fatalf("Error connecting to Redis: %v", err)
	}
	log.Println("Connection to Redis successful")

	snapshots := redis.NewRoomSnapshotWriter(redisClient, 256)

	// Finished games also go to the broker when one is configured
	var publisher spotisync.ResultPublisher
	var resultsQueue *queue.GameResultQueue
	if amqpURL := config.GetEnv("AMQP_URL", ""); amqpURL != "" {
		resultsQueue, err = queue.NewGameResultQueue(amqpURL, config.GetEnv("GAME_RESULTS_QUEUE", "game_results"))
		if err != nil {
			log.Printf("Warning: game results will not be published: %v", err)
		} else {
			publisher = resultsQueue
		}
	}
	syncManager := spotisync.NewSyncManager(gormDB, publisher)

	sio := socketio_types.NewSocketServer()
	settings := config.LoadQuizSettings()
	store := quiz.NewRoomStore(
		quiz.WithEmitter(sio),
		quiz.WithRoundDuration(settings.RoundDuration),
		quiz.WithMaxQuestions(settings.MaxQuestions),
		quiz.WithMaxNameLength(settings.NameMaxLength),
		quiz.WithCodeLength(settings.RoomCodeLength),
		quiz.WithResultRecorder(syncManager),
		quiz.WithRoomObserver(snapshots),
	)

	r := gin.Default()

	middleware.SetUpMiddleware(r)

	routes.SetupRoutes(r, gormDB, redisClient, []byte(config.GetEnv("JWT_SECRET", "")))

	socketServer := (*socket_io.MySocketServer)(sio)
	socketServer.Start(r, store, redisClient, !config.GetEnvBool("PROD", false))

	signalC := make(chan os.Signal, 1)
	signal.Notify(signalC, syscall.SIGHUP, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)
	go func() {
		s := <-signalC
		log.Printf("Received %v, shutting down", s)
		store.Shutdown()
		socketServer.Close()
		snapshots.Close()
		if resultsQueue != nil {
			resultsQueue.Close()
		}
		redis.CloseRedis(redisClient)
		sqlDB.Close()
		os.Exit(0)
	}()

	// Configure port
	useHTTPS := config.GetEnvBool("USE_HTTPS", false)
	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
		if useHTTPS {
			port = "443"
		}
	}

	log.Printf("Starting server on port %s", port)
	if useHTTPS {
		certFile := config.GetEnv("TLS_CERT_FILE", "")
		keyFile := config.GetEnv("TLS_KEY_FILE", "")
		if err := r.RunTLS(":"+port, certFile, keyFile); err != nil {
			log.Fatalf("Error starting server: %v", err)
		}
	} else {
		if err := r.Run(":" + port); err != nil {
			log.Fatalf("Error starting server: %v", err)
		}
	}
}
