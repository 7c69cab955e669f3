package config

import (
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all application configuration.
type Config struct {
	Server   ServerConfig
	Log      LogConfig
	CORS     CORSConfig
	Auth     AuthConfig
	LLM      LLMConfig
	Pipeline PipelineConfig
	Store    StoreConfig
	Upload   UploadConfig
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Port         string        `mapstructure:"port"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
	Environment  string        `mapstructure:"environment"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// CORSConfig holds CORS settings.
type CORSConfig struct {
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

// UserConfig declares one reviewer account. Password hashes are bcrypt.
type UserConfig struct {
	Username     string
	PasswordHash string
}

// AuthConfig holds JWT signing settings and the configured user accounts.
// With no users configured, authentication is disabled entirely.
type AuthConfig struct {
	JWTSecret   string        `mapstructure:"jwt_secret"`
	TokenExpiry time.Duration `mapstructure:"token_expiry"`
	Issuer      string        `mapstructure:"issuer"`
	Users       []UserConfig  `mapstructure:"users"`
}

// Enabled reports whether any user accounts are configured.
func (a *AuthConfig) Enabled() bool {
	return len(a.Users) > 0
}

// FindUser returns the configured user with the given username, or nil.
func (a *AuthConfig) FindUser(username string) *UserConfig {
	for i := range a.Users {
		if a.Users[i].Username == username {
			return &a.Users[i]
		}
	}
	return nil
}

// LLMProviderConfig holds settings for a single text-generation provider.
type LLMProviderConfig struct {
	Provider     string `mapstructure:"provider"`
	APIKey       string `mapstructure:"api_key"`
	DefaultModel string `mapstructure:"default_model"`
	TimeoutSecs  int    `mapstructure:"timeout_secs"`
}

// LLMConfig holds text-generation settings with multi-provider fallback.
type LLMConfig struct {
	// Legacy flat fields (single-provider setups)
	Provider     string `mapstructure:"provider"`
	APIKey       string `mapstructure:"api_key"`
	DefaultModel string `mapstructure:"default_model"`
	TimeoutSecs  int    `mapstructure:"timeout_secs"`

	Primary   LLMProviderConfig `mapstructure:"primary"`
	Secondary LLMProviderConfig `mapstructure:"secondary"`
	Tertiary  LLMProviderConfig `mapstructure:"tertiary"`
}

// PrimaryConfig returns the primary provider config, falling back to the
// legacy flat fields.
func (l *LLMConfig) PrimaryConfig() *LLMProviderConfig {
	if l.Primary.Provider != "" {
		return &l.Primary
	}
	return &LLMProviderConfig{
		Provider:     l.Provider,
		APIKey:       l.APIKey,
		DefaultModel: l.DefaultModel,
		TimeoutSecs:  l.TimeoutSecs,
	}
}

// SecondaryConfig returns the secondary provider config, or nil if not configured.
func (l *LLMConfig) SecondaryConfig() *LLMProviderConfig {
	if l.Secondary.Provider != "" {
		return &l.Secondary
	}
	return nil
}

// TertiaryConfig returns the tertiary provider config, or nil if not configured.
func (l *LLMConfig) TertiaryConfig() *LLMProviderConfig {
	if l.Tertiary.Provider != "" {
		return &l.Tertiary
	}
	return nil
}

// PipelineConfig holds analysis pipeline settings.
type PipelineConfig struct {
	// MaxFullTextChars caps the leading slice of the document handed to the
	// comprehensive full-text clause pass.
	MaxFullTextChars int `mapstructure:"max_fulltext_chars"`
	// StageTimeout bounds each individual capability call.
	StageTimeout time.Duration `mapstructure:"stage_timeout"`
}

// StoreConfig holds in-memory analysis store settings.
type StoreConfig struct {
	MaxAnalyses int           `mapstructure:"max_analyses"`
	TTL         time.Duration `mapstructure:"ttl"`
}

// UploadConfig holds contract upload limits.
type UploadConfig struct {
	MaxFileSizeMB int64 `mapstructure:"max_file_size_mb"`
}

// Load reads configuration from environment variables with the CLAUSEVET_ prefix.
func Load() (*Config, error) {
	v := viper.New()
	v.SetEnvPrefix("CLAUSEVET")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Server defaults
	v.SetDefault("server.port", ":8080")
	v.SetDefault("server.read_timeout", "30s")
	v.SetDefault("server.write_timeout", "300s")
	v.SetDefault("server.environment", "development")

	// Log defaults
	v.SetDefault("log.level", "debug")
	v.SetDefault("log.format", "console")

	// CORS defaults (localhost origins for development)
	v.SetDefault("cors.allowed_origins", "http://localhost:3000,http://127.0.0.1:3000")

	// Auth defaults (no users => auth disabled)
	v.SetDefault("auth.jwt_secret", "change-me-in-production")
	v.SetDefault("auth.token_expiry", "12h")
	v.SetDefault("auth.issuer", "clausevet")
	v.SetDefault("auth.users", "")

	// LLM defaults (legacy flat)
	v.SetDefault("llm.provider", "openai")
	v.SetDefault("llm.api_key", "")
	v.SetDefault("llm.default_model", "gpt-4o")
	v.SetDefault("llm.timeout_secs", 120)

	for _, tier := range []string{"primary", "secondary", "tertiary"} {
		v.SetDefault("llm."+tier+".provider", "")
		v.SetDefault("llm."+tier+".api_key", "")
		v.SetDefault("llm."+tier+".default_model", "")
		v.SetDefault("llm."+tier+".timeout_secs", 120)
	}

	// Pipeline defaults
	v.SetDefault("pipeline.max_fulltext_chars", 8000)
	v.SetDefault("pipeline.stage_timeout", "120s")

	// Store defaults
	v.SetDefault("store.max_analyses", 200)
	v.SetDefault("store.ttl", "1h")

	// Upload defaults
	v.SetDefault("upload.max_file_size_mb", 20)

	// Bind environment variables explicitly for nested keys
	envBindings := map[string]string{
		"server.port":                  "CLAUSEVET_SERVER_PORT",
		"server.read_timeout":          "CLAUSEVET_SERVER_READ_TIMEOUT",
		"server.write_timeout":         "CLAUSEVET_SERVER_WRITE_TIMEOUT",
		"server.environment":           "CLAUSEVET_SERVER_ENVIRONMENT",
		"log.level":                    "CLAUSEVET_LOG_LEVEL",
		"log.format":                   "CLAUSEVET_LOG_FORMAT",
		"cors.allowed_origins":         "CLAUSEVET_CORS_ALLOWED_ORIGINS",
		"auth.jwt_secret":              "CLAUSEVET_AUTH_JWT_SECRET",
		"auth.token_expiry":            "CLAUSEVET_AUTH_TOKEN_EXPIRY",
		"auth.issuer":                  "CLAUSEVET_AUTH_ISSUER",
		"auth.users":                   "CLAUSEVET_AUTH_USERS",
		"llm.provider":                 "CLAUSEVET_LLM_PROVIDER",
		"llm.api_key":                  "CLAUSEVET_LLM_API_KEY",
		"llm.default_model":            "CLAUSEVET_LLM_DEFAULT_MODEL",
		"llm.timeout_secs":             "CLAUSEVET_LLM_TIMEOUT_SECS",
		"llm.primary.provider":         "CLAUSEVET_LLM_PRIMARY_PROVIDER",
		"llm.primary.api_key":          "CLAUSEVET_LLM_PRIMARY_API_KEY",
		"llm.primary.default_model":    "CLAUSEVET_LLM_PRIMARY_DEFAULT_MODEL",
		"llm.primary.timeout_secs":     "CLAUSEVET_LLM_PRIMARY_TIMEOUT_SECS",
		"llm.secondary.provider":       "CLAUSEVET_LLM_SECONDARY_PROVIDER",
		"llm.secondary.api_key":        "CLAUSEVET_LLM_SECONDARY_API_KEY",
		"llm.secondary.default_model":  "CLAUSEVET_LLM_SECONDARY_DEFAULT_MODEL",
		"llm.secondary.timeout_secs":   "CLAUSEVET_LLM_SECONDARY_TIMEOUT_SECS",
		"llm.tertiary.provider":        "CLAUSEVET_LLM_TERTIARY_PROVIDER",
		"llm.tertiary.api_key":         "CLAUSEVET_LLM_TERTIARY_API_KEY",
		"llm.tertiary.default_model":   "CLAUSEVET_LLM_TERTIARY_DEFAULT_MODEL",
		"llm.tertiary.timeout_secs":    "CLAUSEVET_LLM_TERTIARY_TIMEOUT_SECS",
		"pipeline.max_fulltext_chars":  "CLAUSEVET_PIPELINE_MAX_FULLTEXT_CHARS",
		"pipeline.stage_timeout":       "CLAUSEVET_PIPELINE_STAGE_TIMEOUT",
		"store.max_analyses":           "CLAUSEVET_STORE_MAX_ANALYSES",
		"store.ttl":                    "CLAUSEVET_STORE_TTL",
		"upload.max_file_size_mb":      "CLAUSEVET_UPLOAD_MAX_FILE_SIZE_MB",
	}
	for key, env := range envBindings {
		_ = v.BindEnv(key, env)
	}

	cfg := &Config{}

	// Railway/Heroku/Render set a PORT env var. Use it if CLAUSEVET_SERVER_PORT
	// is not explicitly set.
	serverPort := v.GetString("server.port")
	if port := os.Getenv("PORT"); port != "" && os.Getenv("CLAUSEVET_SERVER_PORT") == "" {
		serverPort = ":" + port
	}

	cfg.Server = ServerConfig{
		Port:         serverPort,
		ReadTimeout:  v.GetDuration("server.read_timeout"),
		WriteTimeout: v.GetDuration("server.write_timeout"),
		Environment:  v.GetString("server.environment"),
	}
	cfg.Log = LogConfig{
		Level:  v.GetString("log.level"),
		Format: v.GetString("log.format"),
	}
	cfg.CORS = CORSConfig{
		AllowedOrigins: splitCommaList(v.GetString("cors.allowed_origins")),
	}
	cfg.Auth = AuthConfig{
		JWTSecret:   v.GetString("auth.jwt_secret"),
		TokenExpiry: v.GetDuration("auth.token_expiry"),
		Issuer:      v.GetString("auth.issuer"),
		Users:       parseUsers(v.GetString("auth.users")),
	}
	cfg.LLM = LLMConfig{
		Provider:     v.GetString("llm.provider"),
		APIKey:       v.GetString("llm.api_key"),
		DefaultModel: v.GetString("llm.default_model"),
		TimeoutSecs:  v.GetInt("llm.timeout_secs"),
		Primary:      loadProvider(v, "primary"),
		Secondary:    loadProvider(v, "secondary"),
		Tertiary:     loadProvider(v, "tertiary"),
	}
	cfg.Pipeline = PipelineConfig{
		MaxFullTextChars: v.GetInt("pipeline.max_fulltext_chars"),
		StageTimeout:     v.GetDuration("pipeline.stage_timeout"),
	}
	cfg.Store = StoreConfig{
		MaxAnalyses: v.GetInt("store.max_analyses"),
		TTL:         v.GetDuration("store.ttl"),
	}
	cfg.Upload = UploadConfig{
		MaxFileSizeMB: v.GetInt64("upload.max_file_size_mb"),
	}

	return cfg, nil
}

func loadProvider(v *viper.Viper, tier string) LLMProviderConfig {
	return LLMProviderConfig{
		Provider:     v.GetString("llm." + tier + ".provider"),
		APIKey:       v.GetString("llm." + tier + ".api_key"),
		DefaultModel: v.GetString("llm." + tier + ".default_model"),
		TimeoutSecs:  v.GetInt("llm." + tier + ".timeout_secs"),
	}
}

func splitCommaList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part != "" {
			out = append(out, part)
		}
	}
	return out
}

// parseUsers parses "alice:$2a$...,bob:$2a$..." into user configs.
// Entries without a colon are skipped.
func parseUsers(s string) []UserConfig {
	var users []UserConfig
	for _, entry := range strings.Split(s, ",") {
		entry = strings.TrimSpace(entry)
		if entry == "" {
			continue
		}
		name, hash, ok := strings.Cut(entry, ":")
		if !ok || name == "" || hash == "" {
			continue
		}
		users = append(users, UserConfig{Username: name, PasswordHash: hash})
	}
	return users
}
