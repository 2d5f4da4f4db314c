package config

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Server    ServerConfig
	Database  DatabaseConfig
	JWT       JWTConfig
	Storage   StorageConfig
	Tracing   TracingConfig `mapstructure:"tracing"`
	Redis     RedisConfig
	AI        AIConfig
	CORS      CORSConfig      `mapstructure:"cors"`
	RateLimit RateLimitConfig `mapstructure:"rate_limit"`
	Retrieval RetrievalConfig `mapstructure:"retrieval"`
	Mastery   MasteryConfig   `mapstructure:"mastery"`

	// Runtime flags set from command line, not from the config file.
	ForceMigrate bool `mapstructure:"-"`
	MigrateOnly  bool `mapstructure:"-"`
}

type CORSConfig struct {
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

type RateLimitConfig struct {
	MaxRequests   int `mapstructure:"max_requests"`
	WindowMinutes int `mapstructure:"window_minutes"`
}

type AIConfig struct {
	BaseURL string `mapstructure:"base_url"`
	APIKey  string `mapstructure:"api_key"`
	Model   string `mapstructure:"model"`
}

type ServerConfig struct {
	Port string
	Mode string
}

type DatabaseConfig struct {
	Host      string
	Port      int
	User      string
	Password  string
	DBName    string
	Charset   string
	ParseTime bool
}

type JWTConfig struct {
	Secret     string        `mapstructure:"secret"`
	ExpireTime time.Duration `mapstructure:"expire_hours"`
}

type StorageConfig struct {
	Type          string `mapstructure:"type"`
	LocalPath     string `mapstructure:"local_path"`
	MinioEndpoint string `mapstructure:"minio_endpoint"`
	MinioAccessID string `mapstructure:"minio_access_key"`
	MinioSecret   string `mapstructure:"minio_secret_key"`
	MinioBucket   string `mapstructure:"minio_bucket"`
	OSSEndpoint   string `mapstructure:"oss_endpoint"`
	OSSAccessKey  string `mapstructure:"oss_access_key"`
	OSSSecretKey  string `mapstructure:"oss_secret_key"`
	OSSBucket     string `mapstructure:"oss_bucket"`
}

type TracingConfig struct {
	Enabled           bool   `mapstructure:"enabled"`
	CollectorEndpoint string `mapstructure:"collector_endpoint"`
}

type RedisConfig struct {
	Host     string
	Port     int
	Password string
	DB       int
}

// RetrievalConfig tunes the document chunking and ranking pipeline.
// Zero values fall back to the defaults applied in LoadConfig, so a
// deployment only overrides what it needs.
type RetrievalConfig struct {
	ChunkSize      int `mapstructure:"chunk_size"`
	ChunkOverlap   int `mapstructure:"chunk_overlap"`
	MinChunkLength int `mapstructure:"min_chunk_length"`
	TopK           int `mapstructure:"top_k"`
	CharsPerPage   int `mapstructure:"chars_per_page"`

	// Optional overrides for the built-in topic keyword and synonym
	// tables (internal/retrieval/tables.go). Keys are topic names /
	// query keywords, values are keyword lists.
	Topics   map[string][]string `mapstructure:"topics"`
	Synonyms map[string][]string `mapstructure:"synonyms"`
}

// MasteryConfig tunes the learning-curve and decay model.
type MasteryConfig struct {
	EarlyStep       int     `mapstructure:"early_step"`
	EarlyCap        int     `mapstructure:"early_cap"`
	MidStep         int     `mapstructure:"mid_step"`
	LateStep        int     `mapstructure:"late_step"`
	GrowthCap       int     `mapstructure:"growth_cap"`
	DecayGraceDays  int     `mapstructure:"decay_grace_days"`
	DecayMildDays   int     `mapstructure:"decay_mild_days"`
	DecayMildFactor float64 `mapstructure:"decay_mild_factor"`
	DecayDailyRate  float64 `mapstructure:"decay_daily_rate"`
	DecayMaxLoss    float64 `mapstructure:"decay_max_loss"`
}

func LoadConfig(path string) (*Config, error) {
	viper.AddConfigPath(path)
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")

	viper.SetEnvPrefix("MATLAB_TUTOR")
	viper.AutomaticEnv()

	// Database
	viper.BindEnv("database.host", "DATABASE_HOST")
	viper.BindEnv("database.port", "DATABASE_PORT")
	viper.BindEnv("database.user", "DATABASE_USER")
	viper.BindEnv("database.password", "DATABASE_PASSWORD")
	viper.BindEnv("database.dbname", "DATABASE_NAME")

	// JWT
	viper.BindEnv("jwt.secret", "JWT_SECRET")

	// Redis
	viper.BindEnv("redis.host", "REDIS_HOST")
	viper.BindEnv("redis.port", "REDIS_PORT")
	viper.BindEnv("redis.password", "REDIS_PASSWORD")

	// Server
	viper.BindEnv("server.mode", "SERVER_MODE")

	// AI
	viper.BindEnv("ai.base_url", "AI_BASE_URL")
	viper.BindEnv("ai.api_key", "AI_API_KEY")
	viper.BindEnv("ai.model", "AI_MODEL")

	// Storage
	viper.BindEnv("storage.type", "STORAGE_TYPE")
	viper.BindEnv("storage.oss_endpoint", "OSS_ENDPOINT")
	viper.BindEnv("storage.oss_access_key", "OSS_ACCESS_KEY")
	viper.BindEnv("storage.oss_secret_key", "OSS_SECRET_KEY")
	viper.BindEnv("storage.oss_bucket", "OSS_BUCKET")
	viper.BindEnv("storage.minio_endpoint", "MINIO_ENDPOINT")
	viper.BindEnv("storage.minio_access_key", "MINIO_ACCESS_KEY")
	viper.BindEnv("storage.minio_secret_key", "MINIO_SECRET_KEY")
	viper.BindEnv("storage.minio_bucket", "MINIO_BUCKET")

	// Tracing
	viper.BindEnv("tracing.enabled", "TRACING_ENABLED")
	viper.BindEnv("tracing.collector_endpoint", "TRACING_COLLECTOR_ENDPOINT")

	if err := viper.ReadInConfig(); err != nil {
		return nil, err
	}

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, err
	}

	cfg.JWT.ExpireTime = cfg.JWT.ExpireTime * time.Hour

	applyRetrievalDefaults(&cfg.Retrieval)
	applyMasteryDefaults(&cfg.Mastery)

	if cfg.Server.Mode == "release" && len(cfg.JWT.Secret) < 32 {
		return nil, fmt.Errorf("JWT secret is too short (%d chars), must be at least 32 characters in release mode", len(cfg.JWT.Secret))
	}

	if cfg.Storage.Type == "local" {
		if _, err := os.Stat(cfg.Storage.LocalPath); os.IsNotExist(err) {
			os.MkdirAll(cfg.Storage.LocalPath, 0755)
		}
	}

	return &cfg, nil
}

func applyRetrievalDefaults(rc *RetrievalConfig) {
	if rc.ChunkSize <= 0 {
		rc.ChunkSize = 500
	}
	if rc.ChunkOverlap <= 0 {
		rc.ChunkOverlap = 100
	}
	if rc.ChunkOverlap >= rc.ChunkSize {
		rc.ChunkOverlap = rc.ChunkSize / 5
	}
	if rc.MinChunkLength <= 0 {
		rc.MinChunkLength = 50
	}
	if rc.TopK <= 0 {
		rc.TopK = 5
	}
	if rc.CharsPerPage <= 0 {
		rc.CharsPerPage = 1800
	}
}

func applyMasteryDefaults(mc *MasteryConfig) {
	if mc.EarlyStep <= 0 {
		mc.EarlyStep = 8
	}
	if mc.EarlyCap <= 0 {
		mc.EarlyCap = 40
	}
	if mc.MidStep <= 0 {
		mc.MidStep = 8
	}
	if mc.LateStep <= 0 {
		mc.LateStep = 2
	}
	if mc.GrowthCap <= 0 {
		mc.GrowthCap = 95
	}
	if mc.DecayGraceDays <= 0 {
		mc.DecayGraceDays = 7
	}
	if mc.DecayMildDays <= 0 {
		mc.DecayMildDays = 14
	}
	if mc.DecayMildFactor <= 0 {
		mc.DecayMildFactor = 0.95
	}
	if mc.DecayDailyRate <= 0 {
		mc.DecayDailyRate = 0.02
	}
	if mc.DecayMaxLoss <= 0 {
		mc.DecayMaxLoss = 0.3
	}
}
