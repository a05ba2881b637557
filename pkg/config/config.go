package config

import (
	"errors"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	EnvDevelopment = "development"
	EnvProduction  = "production"
)

type Config struct {
	Env       string
	Port      int
	APIPrefix string

	Database  DatabaseConfig
	Redis     RedisConfig
	Supabase  SupabaseConfig
	CORS      CORSConfig
	Log       LogConfig
	Sentry    SentryConfig
	Analytics AnalyticsConfig
	Groups    GroupsConfig
	Partners  PartnersConfig
	AIUsage   AIUsageConfig
	Exports   ExportsConfig
	Events    EventsConfig
	Internal  InternalConfig
}

type DatabaseConfig struct {
	URL          string
	Host         string
	Port         int
	User         string
	Password     string
	Name         string
	SSLMode      string
	MaxOpenConns int
	MaxIdleConns int
}

type RedisConfig struct {
	URL      string
	Host     string
	Port     int
	Password string
	DB       int
}

// SupabaseConfig holds what is needed to verify Supabase-issued access tokens.
type SupabaseConfig struct {
	URL         string
	JWTSecret   string
	JWTAudience string
	CookieName  string
}

type CORSConfig struct {
	AllowedOrigins []string
}

type LogConfig struct {
	Level  string
	Format string
}

// SentryConfig enables error reporting when DSN is set.
type SentryConfig struct {
	DSN              string
	Environment      string
	TracesSampleRate float64
}

// AnalyticsConfig governs feature flagging and cache behaviour for admin analytics.
type AnalyticsConfig struct {
	Enabled  bool
	CacheTTL time.Duration
}

// GroupsConfig bounds study group sizes and invite lifetimes.
type GroupsConfig struct {
	MinMembers        int
	MaxMembers        int
	DefaultMaxMembers int
	InviteTTL         time.Duration
	MaxInvitesPerCall int
}

// PartnersConfig tunes partner search paging.
type PartnersConfig struct {
	MaxPageSize int
}

// AIUsageConfig configures the asynchronous AI usage ingest pipeline.
type AIUsageConfig struct {
	Workers    int
	BufferSize int
	MaxRetries int
}

// ExportsConfig controls admin export storage and signed download links.
type ExportsConfig struct {
	StorageDir      string
	SignedURLSecret string
	SignedURLTTL    time.Duration
	CleanupInterval time.Duration
}

// EventsConfig points the domain event publisher at Kafka. Empty brokers disable publishing.
type EventsConfig struct {
	Brokers  []string
	Topic    string
	ClientID string
}

// InternalConfig secures service-to-service endpoints.
type InternalConfig struct {
	APIKey string
}

func Load() (*Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	v.SetConfigFile(".env")
	v.SetConfigType("env")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !errors.Is(err, os.ErrNotExist) {
			return nil, err
		}
	}

	cfg := &Config{}

	cfg.Env = v.GetString("ENV")
	cfg.Port = v.GetInt("PORT")
	cfg.APIPrefix = v.GetString("API_PREFIX")

	cfg.Database = DatabaseConfig{
		URL:          v.GetString("DATABASE_URL"),
		Host:         v.GetString("DB_HOST"),
		Port:         v.GetInt("DB_PORT"),
		User:         v.GetString("DB_USER"),
		Password:     v.GetString("DB_PASSWORD"),
		Name:         v.GetString("DB_NAME"),
		SSLMode:      v.GetString("DB_SSL_MODE"),
		MaxOpenConns: v.GetInt("DB_MAX_OPEN_CONNS"),
		MaxIdleConns: v.GetInt("DB_MAX_IDLE_CONNS"),
	}

	cfg.Redis = RedisConfig{
		URL:      v.GetString("REDIS_URL"),
		Host:     v.GetString("REDIS_HOST"),
		Port:     v.GetInt("REDIS_PORT"),
		Password: v.GetString("REDIS_PASSWORD"),
		DB:       v.GetInt("REDIS_DB"),
	}

	cfg.Supabase = SupabaseConfig{
		URL:         v.GetString("SUPABASE_URL"),
		JWTSecret:   v.GetString("SUPABASE_JWT_SECRET"),
		JWTAudience: v.GetString("SUPABASE_JWT_AUDIENCE"),
		CookieName:  v.GetString("SUPABASE_ACCESS_COOKIE"),
	}

	cfg.CORS = CORSConfig{AllowedOrigins: splitAndTrim(v.GetString("ALLOWED_ORIGINS"))}

	cfg.Log = LogConfig{
		Level:  v.GetString("LOG_LEVEL"),
		Format: v.GetString("LOG_FORMAT"),
	}

	cfg.Sentry = SentryConfig{
		DSN:              v.GetString("SENTRY_DSN"),
		Environment:      v.GetString("SENTRY_ENVIRONMENT"),
		TracesSampleRate: v.GetFloat64("SENTRY_TRACES_SAMPLE_RATE"),
	}
	if cfg.Sentry.Environment == "" {
		cfg.Sentry.Environment = cfg.Env
	}

	cfg.Analytics = AnalyticsConfig{
		Enabled:  v.GetBool("ENABLE_ANALYTICS_CACHE"),
		CacheTTL: parseDuration(v.GetString("ANALYTICS_CACHE_TTL"), 5*time.Minute),
	}

	cfg.Groups = GroupsConfig{
		MinMembers:        v.GetInt("GROUP_MIN_MEMBERS"),
		MaxMembers:        v.GetInt("GROUP_MAX_MEMBERS"),
		DefaultMaxMembers: v.GetInt("GROUP_DEFAULT_MAX_MEMBERS"),
		InviteTTL:         parseDuration(v.GetString("GROUP_INVITE_TTL"), 7*24*time.Hour),
		MaxInvitesPerCall: v.GetInt("GROUP_MAX_INVITES_PER_CALL"),
	}

	cfg.Partners = PartnersConfig{
		MaxPageSize: v.GetInt("PARTNER_SEARCH_MAX_PAGE_SIZE"),
	}

	cfg.AIUsage = AIUsageConfig{
		Workers:    v.GetInt("AI_USAGE_WORKERS"),
		BufferSize: v.GetInt("AI_USAGE_BUFFER"),
		MaxRetries: v.GetInt("AI_USAGE_MAX_RETRIES"),
	}

	cfg.Exports = ExportsConfig{
		StorageDir:      v.GetString("EXPORTS_STORAGE_DIR"),
		SignedURLSecret: v.GetString("EXPORTS_SIGNED_URL_SECRET"),
		SignedURLTTL:    parseDuration(v.GetString("EXPORTS_SIGNED_URL_TTL"), time.Hour),
		CleanupInterval: parseDuration(v.GetString("EXPORTS_CLEANUP_INTERVAL"), 30*time.Minute),
	}

	cfg.Events = EventsConfig{
		Brokers:  splitAndTrim(v.GetString("KAFKA_BROKERS")),
		Topic:    v.GetString("KAFKA_TOPIC"),
		ClientID: v.GetString("KAFKA_CLIENT_ID"),
	}

	cfg.Internal = InternalConfig{APIKey: v.GetString("INTERNAL_API_KEY")}

	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("ENV", EnvDevelopment)
	v.SetDefault("PORT", 8080)
	v.SetDefault("API_PREFIX", "/api")

	v.SetDefault("DATABASE_URL", "")
	v.SetDefault("DB_HOST", "localhost")
	v.SetDefault("DB_PORT", 5432)
	v.SetDefault("DB_USER", "postgres")
	v.SetDefault("DB_PASSWORD", "postgres")
	v.SetDefault("DB_NAME", "studybuddy")
	v.SetDefault("DB_SSL_MODE", "disable")
	v.SetDefault("DB_MAX_OPEN_CONNS", 10)
	v.SetDefault("DB_MAX_IDLE_CONNS", 5)

	v.SetDefault("REDIS_URL", "")
	v.SetDefault("REDIS_HOST", "localhost")
	v.SetDefault("REDIS_PORT", 6379)
	v.SetDefault("REDIS_PASSWORD", "")
	v.SetDefault("REDIS_DB", 0)

	v.SetDefault("SUPABASE_URL", "")
	v.SetDefault("SUPABASE_JWT_SECRET", "dev_supabase_secret")
	v.SetDefault("SUPABASE_JWT_AUDIENCE", "authenticated")
	v.SetDefault("SUPABASE_ACCESS_COOKIE", "sb-access-token")

	v.SetDefault("ALLOWED_ORIGINS", "")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FORMAT", "json")

	v.SetDefault("SENTRY_DSN", "")
	v.SetDefault("SENTRY_ENVIRONMENT", "")
	v.SetDefault("SENTRY_TRACES_SAMPLE_RATE", 0.2)

	v.SetDefault("ENABLE_ANALYTICS_CACHE", true)
	v.SetDefault("ANALYTICS_CACHE_TTL", "5m")

	v.SetDefault("GROUP_MIN_MEMBERS", 2)
	v.SetDefault("GROUP_MAX_MEMBERS", 50)
	v.SetDefault("GROUP_DEFAULT_MAX_MEMBERS", 10)
	v.SetDefault("GROUP_INVITE_TTL", "168h")
	v.SetDefault("GROUP_MAX_INVITES_PER_CALL", 20)

	v.SetDefault("PARTNER_SEARCH_MAX_PAGE_SIZE", 50)

	v.SetDefault("AI_USAGE_WORKERS", 2)
	v.SetDefault("AI_USAGE_BUFFER", 256)
	v.SetDefault("AI_USAGE_MAX_RETRIES", 3)

	v.SetDefault("EXPORTS_STORAGE_DIR", "./exports")
	v.SetDefault("EXPORTS_SIGNED_URL_SECRET", "dev_exports_secret")
	v.SetDefault("EXPORTS_SIGNED_URL_TTL", "1h")
	v.SetDefault("EXPORTS_CLEANUP_INTERVAL", "30m")

	v.SetDefault("KAFKA_BROKERS", "")
	v.SetDefault("KAFKA_TOPIC", "studybuddy.events")
	v.SetDefault("KAFKA_CLIENT_ID", "studybuddy-api")

	v.SetDefault("INTERNAL_API_KEY", "")
}

func parseDuration(raw string, fallback time.Duration) time.Duration {
	if raw == "" {
		return fallback
	}

	d, err := time.ParseDuration(raw)
	if err != nil {
		return fallback
	}

	return d
}

func splitAndTrim(raw string) []string {
	if raw == "" {
		return nil
	}

	parts := strings.Split(raw, ",")
	result := make([]string, 0, len(parts))
	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if trimmed != "" {
			result = append(result, trimmed)
		}
	}

	return result
}
