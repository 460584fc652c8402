package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/vladimiradmaev/vaidya-health/internal/logger"
)

const (
	ProviderGemini = "gemini"
	ProviderOpenAI = "openai"

	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

type Config struct {
	TelegramToken string
	AI            AIConfig
	DB            DBConfig
	Storage       StorageConfig
	Redis         RedisConfig
	Logger        LoggerConfig
}

type AIConfig struct {
	Provider     string
	GeminiAPIKey string
	GeminiModel  string
	OpenAIAPIKey string
	OpenAIModel  string
	Generation   GenerationConfig
}

// GenerationConfig mirrors the sampling parameters sent with every prompt.
type GenerationConfig struct {
	Temperature     float32
	TopK            int32
	TopP            float32
	MaxOutputTokens int32
}

type DBConfig struct {
	Driver   string
	Host     string
	Port     string
	User     string
	Password string
	DBName   string
	Path     string // sqlite file
}

type StorageConfig struct {
	Bucket        string
	Region        string
	Endpoint      string
	PublicBaseURL string
	PublicACL     bool
}

// Enabled reports whether file uploads can be stored
func (s StorageConfig) Enabled() bool {
	return s.Bucket != ""
}

type RedisConfig struct {
	Host string
	Port string
}

// Enabled reports whether session state should live in Redis
func (r RedisConfig) Enabled() bool {
	return r.Host != ""
}

type LoggerConfig struct {
	Level      logger.LogLevel
	OutputPath string
	Format     string
	MaxSizeMB  int
	MaxBackups int
	MaxAgeDays int
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getFloatOrDefault(key string, defaultValue float32) (float32, error) {
	raw := os.Getenv(key)
	if raw == "" {
		return defaultValue, nil
	}
	v, err := strconv.ParseFloat(raw, 32)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", key, err)
	}
	return float32(v), nil
}

func getIntOrDefault(key string, defaultValue int) (int, error) {
	raw := os.Getenv(key)
	if raw == "" {
		return defaultValue, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", key, err)
	}
	return v, nil
}

func parseLogLevel(level string) logger.LogLevel {
	switch strings.ToLower(level) {
	case "debug":
		return logger.LevelDebug
	case "info":
		return logger.LevelInfo
	case "warn", "warning":
		return logger.LevelWarn
	case "error":
		return logger.LevelError
	default:
		return logger.LevelInfo
	}
}

// Load reads the configuration from the environment. Numeric values that
// fail to parse are reported; missing keys are checked by Validate.
func Load() (*Config, error) {
	temperature, err := getFloatOrDefault("AI_TEMPERATURE", 0.7)
	if err != nil {
		return nil, err
	}
	topP, err := getFloatOrDefault("AI_TOP_P", 0.95)
	if err != nil {
		return nil, err
	}
	topK, err := getIntOrDefault("AI_TOP_K", 40)
	if err != nil {
		return nil, err
	}
	maxTokens, err := getIntOrDefault("AI_MAX_OUTPUT_TOKENS", 1024)
	if err != nil {
		return nil, err
	}
	logMaxSize, err := getIntOrDefault("LOG_MAX_SIZE_MB", 50)
	if err != nil {
		return nil, err
	}
	logMaxBackups, err := getIntOrDefault("LOG_MAX_BACKUPS", 5)
	if err != nil {
		return nil, err
	}
	logMaxAge, err := getIntOrDefault("LOG_MAX_AGE_DAYS", 30)
	if err != nil {
		return nil, err
	}
	publicACL, err := strconv.ParseBool(getEnvOrDefault("S3_PUBLIC_ACL", "false"))
	if err != nil {
		return nil, fmt.Errorf("S3_PUBLIC_ACL: %w", err)
	}

	return &Config{
		TelegramToken: os.Getenv("TELEGRAM_BOT_TOKEN"),
		AI: AIConfig{
			Provider:     strings.ToLower(getEnvOrDefault("AI_PROVIDER", ProviderGemini)),
			GeminiAPIKey: os.Getenv("GEMINI_API_KEY"),
			GeminiModel:  getEnvOrDefault("GEMINI_MODEL", "gemini-1.5-flash"),
			OpenAIAPIKey: os.Getenv("OPENAI_API_KEY"),
			OpenAIModel:  getEnvOrDefault("OPENAI_MODEL", "gpt-4o-mini"),
			Generation: GenerationConfig{
				Temperature:     temperature,
				TopK:            int32(topK),
				TopP:            topP,
				MaxOutputTokens: int32(maxTokens),
			},
		},
		DB: DBConfig{
			Driver:   strings.ToLower(getEnvOrDefault("DB_DRIVER", DriverPostgres)),
			Host:     getEnvOrDefault("DB_HOST", "localhost"),
			Port:     getEnvOrDefault("DB_PORT", "5432"),
			User:     getEnvOrDefault("DB_USER", "postgres"),
			Password: getEnvOrDefault("DB_PASSWORD", "postgres"),
			DBName:   getEnvOrDefault("DB_NAME", "vaidya_health"),
			Path:     getEnvOrDefault("DB_PATH", "data/vaidya.db"),
		},
		Storage: StorageConfig{
			Bucket:        os.Getenv("S3_BUCKET"),
			Region:        getEnvOrDefault("S3_REGION", "us-east-1"),
			Endpoint:      os.Getenv("S3_ENDPOINT"),
			PublicBaseURL: strings.TrimRight(os.Getenv("S3_PUBLIC_BASE_URL"), "/"),
			PublicACL:     publicACL,
		},
		Redis: RedisConfig{
			Host: os.Getenv("REDIS_HOST"),
			Port: getEnvOrDefault("REDIS_PORT", "6379"),
		},
		Logger: LoggerConfig{
			Level:      parseLogLevel(getEnvOrDefault("LOG_LEVEL", "info")),
			OutputPath: getEnvOrDefault("LOG_OUTPUT", "logs/app.log"),
			Format:     getEnvOrDefault("LOG_FORMAT", "json"),
			MaxSizeMB:  logMaxSize,
			MaxBackups: logMaxBackups,
			MaxAgeDays: logMaxAge,
		},
	}, nil
}

// Validate checks that every key required by the selected providers is set.
func (c *Config) Validate() error {
	var problems []string

	if c.TelegramToken == "" {
		problems = append(problems, "TELEGRAM_BOT_TOKEN is not set")
	}

	switch c.AI.Provider {
	case ProviderGemini:
		if c.AI.GeminiAPIKey == "" {
			problems = append(problems, "GEMINI_API_KEY is not set")
		}
	case ProviderOpenAI:
		if c.AI.OpenAIAPIKey == "" {
			problems = append(problems, "OPENAI_API_KEY is not set")
		}
	default:
		problems = append(problems, fmt.Sprintf("AI_PROVIDER %q is not supported", c.AI.Provider))
	}

	if c.AI.Generation.Temperature < 0 || c.AI.Generation.Temperature > 2 {
		problems = append(problems, "AI_TEMPERATURE must be between 0 and 2")
	}
	if c.AI.Generation.TopP <= 0 || c.AI.Generation.TopP > 1 {
		problems = append(problems, "AI_TOP_P must be in (0, 1]")
	}
	if c.AI.Generation.MaxOutputTokens <= 0 {
		problems = append(problems, "AI_MAX_OUTPUT_TOKENS must be positive")
	}

	switch c.DB.Driver {
	case DriverPostgres, DriverSQLite:
	default:
		problems = append(problems, fmt.Sprintf("DB_DRIVER %q is not supported", c.DB.Driver))
	}

	if len(problems) > 0 {
		return fmt.Errorf("invalid configuration:\n  - %s", strings.Join(problems, "\n  - "))
	}
	return nil
}
