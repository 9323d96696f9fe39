package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	dbadapter "socialfeed/internal/adapters/database"
	"socialfeed/internal/adapters/httpapi"
	mongoadapter "socialfeed/internal/adapters/mongo"
	redisadapter "socialfeed/internal/adapters/redis"
	storageadapter "socialfeed/internal/adapters/storage"
	"socialfeed/internal/config"
	attachmentapp "socialfeed/internal/core/attachment/service"
	feedapp "socialfeed/internal/core/feed/service"
	"socialfeed/internal/core/follower"
	followerapp "socialfeed/internal/core/follower/service"
	"socialfeed/internal/core/notification"
	notificationapp "socialfeed/internal/core/notification/service"
	postapp "socialfeed/internal/core/post/service"
	"socialfeed/internal/core/user"
	userapp "socialfeed/internal/core/user/service"
	"socialfeed/internal/workers"

	"github.com/go-redis/redis/v8"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func main() {
	// logger موقت تا قبل از خواندن تنظیمات
	bootLogger, err := config.NewLogger(os.Getenv("APP_ENV"))
	if err != nil {
		log.Fatalf("failed to build logger: %v", err)
	}
	cfg := mustLoadConfig(bootLogger)
	_ = bootLogger.Sync()

	logger, err := config.NewLogger(cfg.AppEnv)
	if err != nil {
		log.Fatalf("failed to build logger: %v", err)
	}
	defer logger.Sync()

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	// اتصال به دیتابیس و اجرای مایگریشن‌ها
	db, err := config.OpenMySQL(cfg.DBDSN, logger)
	if err != nil {
		logger.Fatal("Failed to connect to database", zap.Error(err))
	}
	if err := db.AutoMigrate(
		&user.User{},
		&user.LikedPost{},
		&follower.Follower{},
		&notification.Notification{},
	); err != nil {
		logger.Fatal("Error during migrations", zap.Error(err))
	}
	logger.Info("✅ Database migrations completed")

	// اتصال به Redis
	rdb, err := config.NewRedis(ctx, cfg, logger)
	if err != nil {
		logger.Fatal("Failed to connect to Redis", zap.Error(err))
	}

	// اتصال به MongoDB
	mongoClient, err := config.ConnectMongo(ctx, cfg.MongoURI, logger)
	if err != nil {
		logger.Fatal("Failed to connect to MongoDB", zap.Error(err))
	}

	// بستن منابع بعد از اتمام کار سرور
	defer closeResources(logger, db, rdb, mongoClient)

	postRepo := mongoadapter.NewPostRepositoryMongo(mongoClient.Database(cfg.MongoDB)) // آداپتر خروجی
	if err := postRepo.EnsureIndexes(ctx); err != nil {
		logger.Fatal("Failed to create post indexes", zap.Error(err))
	}
	// آداپترهای خروجی
	userRepo := dbadapter.NewUserRepositoryDatabase(db)
	followerRepo := dbadapter.NewFollowerRepositoryDatabase(db)
	likedRepo := dbadapter.NewLikedPostRepositoryDatabase(db)
	notificationRepo := dbadapter.NewNotificationRepositoryDatabase(db)
	profileCache := redisadapter.NewProfileCacheRedis(rdb, cfg.ProfileCacheTTL, logger)
	objectStorage, err := storageadapter.NewLocalStorage(cfg.StorageDir, cfg.StorageBaseURL)
	if err != nil {
		logger.Fatal("Failed to prepare storage dir", zap.Error(err))
	}

	attachmentSvc := attachmentapp.NewAttachmentService(objectStorage, logger)
	notificationSvc := notificationapp.NewNotificationService(notificationRepo, logger)
	userSvc := userapp.NewUserService(userRepo, []byte(cfg.JWTSecret), logger)
	followerSvc := followerapp.NewFollowerService(followerRepo, userRepo, logger)
	postSvc := postapp.NewPostService(postRepo, userRepo, likedRepo, attachmentSvc, notificationSvc, logger)
	feedSvc := feedapp.NewFeedService(postRepo, userRepo, followerRepo, likedRepo, profileCache, logger)

	r := httpapi.SetupRoutes(httpapi.UseCases{ // تزریق یوزکیس به آداپتر ورودی
		User:         userSvc,
		Post:         postSvc,
		Feed:         feedSvc,
		Follower:     followerSvc,
		Notification: notificationSvc,
	}, httpapi.RouterOptions{
		JWTSecret: []byte(cfg.JWTSecret),
		MediaDir:  cfg.StorageDir,
		MediaPath: cfg.StorageBaseURL,
	})

	// اجرای worker در پس‌زمینه
	mirrorWorker := workers.NewMirrorWorker(postRepo, likedRepo, cfg.MirrorInterval, cfg.BatchSize, logger)
	go mirrorWorker.Run(ctx)

	logger.Info("App is running...", zap.String("port", cfg.AppPort))
	// اجرای سرور Gin (در اینجا سرور به صورت بلوکینگ عمل می‌کند)
	if err := r.Run(":" + cfg.AppPort); err != nil {
		logger.Error("Server failed", zap.Error(err))
	}
}

// closeResources بستن اتصالات به Redis، MongoDB و دیتابیس
func closeResources(logger *zap.Logger, db *gorm.DB, rdb *redis.Client, mongoClient *mongo.Client) {
	if err := rdb.Close(); err != nil {
		logger.Error("Error closing Redis connection", zap.Error(err))
	}

	if err := mongoClient.Disconnect(context.Background()); err != nil {
		logger.Error("Error closing MongoDB connection", zap.Error(err))
	}

	sqlDB, err := db.DB() // گرفتن *sql.DB از *gorm.DB
	if err != nil {
		logger.Error("Error getting raw DB", zap.Error(err))
		return
	}
	if err := sqlDB.Close(); err != nil {
		logger.Error("Error closing database connection", zap.Error(err))
	}
}

// mustLoadConfig بارگذاری تنظیمات از .env و محیط؛ در صورت خطا Fatal
func mustLoadConfig(logger *zap.Logger) *config.Config {
	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("❌ Invalid configuration", zap.Error(err))
	}
	return cfg
}
