package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	AppPort         string
	AppEnv          string
	DBDSN           string
	RedisAddr       string
	RedisPassword   string
	RedisDB         int
	MongoURI        string
	MongoDB         string
	JWTSecret       string
	StorageDir      string
	StorageBaseURL  string
	ProfileCacheTTL time.Duration
	MirrorInterval  time.Duration
	BatchSize       int
}

func (c *Config) IsProd() bool {
	return c.AppEnv == "production"
}

// Load بارگذاری تنظیمات از .env و متغیرهای محیطی
//
// A missing .env file is not an error; missing required keys are.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		AppPort:        getenv("APP_PORT", "8080"),
		AppEnv:         getenv("APP_ENV", "development"),
		DBDSN:          os.Getenv("DB_DSN"),
		RedisAddr:      os.Getenv("REDIS_ADDR"),
		RedisPassword:  os.Getenv("REDIS_PASSWORD"),
		MongoURI:       os.Getenv("MONGO_URI"),
		MongoDB:        getenv("MONGO_DB", "socialfeed"),
		JWTSecret:      os.Getenv("JWT_SECRET"),
		StorageDir:     getenv("STORAGE_DIR", "media"),
		StorageBaseURL: getenv("STORAGE_BASE_URL", "/media"),
	}

	for key, val := range map[string]string{
		"DB_DSN":     cfg.DBDSN,
		"REDIS_ADDR": cfg.RedisAddr,
		"MONGO_URI":  cfg.MongoURI,
		"JWT_SECRET": cfg.JWTSecret,
	} {
		if val == "" {
			return nil, fmt.Errorf("%s is not set", key)
		}
	}

	redisDB, err := strconv.Atoi(getenv("REDIS_DB", "0"))
	if err != nil {
		return nil, fmt.Errorf("REDIS_DB: %w", err)
	}
	cfg.RedisDB = redisDB

	ttl, err := time.ParseDuration(getenv("PROFILE_CACHE_TTL", "10m"))
	if err != nil {
		return nil, fmt.Errorf("PROFILE_CACHE_TTL: %w", err)
	}
	cfg.ProfileCacheTTL = ttl

	interval, err := time.ParseDuration(getenv("MIRROR_REPAIR_INTERVAL", "5m"))
	if err != nil {
		return nil, fmt.Errorf("MIRROR_REPAIR_INTERVAL: %w", err)
	}
	if interval <= 0 {
		return nil, fmt.Errorf("MIRROR_REPAIR_INTERVAL must be positive")
	}
	cfg.MirrorInterval = interval

	// تعداد رکوردهای batch برای worker
	batchSize, err := strconv.Atoi(getenv("BATCH_SIZE", "100"))
	if err != nil || batchSize <= 0 {
		batchSize = 100
	}
	cfg.BatchSize = batchSize

	return cfg, nil
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
