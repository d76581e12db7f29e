package config

import (
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds application configuration.
type Config struct {
	Port              string
	Env               string
	CORSAllowOrigin   []string
	ObjectStoreType   string
	LocalStoreDir     string
	PublicUploadBase  string
	AWSRegion         string
	S3Bucket          string
	S3Prefix          string
	S3PublicBaseURL   string
	SSEKMSKeyID       string
	AIProvider        string
	GeminiAPIKey      string
	GeminiModel       string
	OpenAIAPIKey      string
	OpenAIModel       string
	AITimeout         time.Duration
	DatabaseURL       string
	RedisURL          string
	AnalyticsCacheTTL time.Duration
	MaxUploadBytes    int64
	LogJSON           bool
	LogLevel          string
}

var defaults = map[string]any{
	"PORT":                "8080",
	"ENV":                 "dev",
	"CORS_ALLOW_ORIGINS":  "http://localhost:5173",
	"OBJECT_STORE":        "local",
	"LOCAL_STORE_DIR":     "./uploads",
	"PUBLIC_UPLOAD_BASE":  "/uploads",
	"AI_PROVIDER":         "gemini",
	"GEMINI_MODEL":        "gemini-2.5-flash",
	"OPENAI_MODEL":        "gpt-4o-mini",
	"AI_TIMEOUT":          "60s",
	"ANALYTICS_CACHE_TTL": "30s",
	"MAX_UPLOAD_BYTES":    int64(8 << 20),
	"LOG_JSON":            true,
	"LOG_LEVEL":           "info",
}

// Load reads configuration from the environment. Local .env files are merged
// first without overriding variables already set.
func Load() Config {
	if files := existing(".env", "cmd/.env"); len(files) > 0 {
		_ = godotenv.Load(files...)
	}
	return FromViper(newViper())
}

func newViper() *viper.Viper {
	v := viper.New()
	for key, val := range defaults {
		v.SetDefault(key, val)
	}
	v.AutomaticEnv()
	return v
}

// FromViper resolves a Config from an already populated viper instance.
func FromViper(v *viper.Viper) Config {
	return Config{
		Port:              v.GetString("PORT"),
		Env:               normalizeEnv(v.GetString("ENV")),
		CORSAllowOrigin:   splitAndTrim(v.GetString("CORS_ALLOW_ORIGINS")),
		ObjectStoreType:   normalizeStoreType(v.GetString("OBJECT_STORE")),
		LocalStoreDir:     v.GetString("LOCAL_STORE_DIR"),
		PublicUploadBase:  v.GetString("PUBLIC_UPLOAD_BASE"),
		AWSRegion:         v.GetString("AWS_REGION"),
		S3Bucket:          v.GetString("S3_BUCKET"),
		S3Prefix:          v.GetString("S3_PREFIX"),
		S3PublicBaseURL:   v.GetString("S3_PUBLIC_BASE_URL"),
		SSEKMSKeyID:       v.GetString("SSE_KMS_KEY_ID"),
		AIProvider:        strings.ToLower(strings.TrimSpace(v.GetString("AI_PROVIDER"))),
		GeminiAPIKey:      v.GetString("GEMINI_API_KEY"),
		GeminiModel:       v.GetString("GEMINI_MODEL"),
		OpenAIAPIKey:      v.GetString("OPENAI_API_KEY"),
		OpenAIModel:       v.GetString("OPENAI_MODEL"),
		AITimeout:         positiveDuration(v, "AI_TIMEOUT"),
		DatabaseURL:       v.GetString("DATABASE_URL"),
		RedisURL:          v.GetString("REDIS_URL"),
		AnalyticsCacheTTL: positiveDuration(v, "ANALYTICS_CACHE_TTL"),
		MaxUploadBytes:    positiveInt64(v, "MAX_UPLOAD_BYTES"),
		LogJSON:           v.GetBool("LOG_JSON"),
		LogLevel:          v.GetString("LOG_LEVEL"),
	}
}

// IsDevLike reports whether missing infrastructure may fall back to in-process substitutes.
func (c Config) IsDevLike() bool {
	return c.Env == "dev" || c.Env == "local"
}

func existing(paths ...string) []string {
	var out []string
	for _, p := range paths {
		if info, err := os.Stat(p); err == nil && !info.IsDir() {
			out = append(out, p)
		}
	}
	return out
}

func positiveDuration(v *viper.Viper, key string) time.Duration {
	if d := v.GetDuration(key); d > 0 {
		return d
	}
	d, _ := time.ParseDuration(defaults[key].(string))
	return d
}

func positiveInt64(v *viper.Viper, key string) int64 {
	if n := v.GetInt64(key); n > 0 {
		return n
	}
	return defaults[key].(int64)
}

func splitAndTrim(raw string) []string {
	parts := strings.Split(raw, ",")
	var out []string
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

func normalizeEnv(raw string) string {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "production", "prod":
		return "production"
	case "staging":
		return "staging"
	case "local":
		return "local"
	default:
		return "dev"
	}
}

func normalizeStoreType(raw string) string {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "s3":
		return "s3"
	default:
		return "local"
	}
}
