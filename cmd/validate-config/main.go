package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/vladimiradmaev/vaidya-health/internal/config"
)

func main() {
	fmt.Println("🔍 Checking configuration...")

	if err := godotenv.Load(); err != nil {
		fmt.Printf("⚠️  .env file not found: %v\n", err)
	}

	cfg, err := config.Load()
	if err == nil {
		err = cfg.Validate()
	}
	if err != nil {
		fmt.Printf("❌ Configuration is invalid:\n%v\n", err)
		os.Exit(1)
	}

	fmt.Println("✅ Configuration is valid!")
	fmt.Printf("📋 Details:\n")
	fmt.Printf("  - Telegram Token: %s\n", maskToken(cfg.TelegramToken))
	fmt.Printf("  - AI Provider: %s\n", cfg.AI.Provider)
	switch cfg.AI.Provider {
	case config.ProviderGemini:
		fmt.Printf("  - Gemini API Key: %s\n", maskToken(cfg.AI.GeminiAPIKey))
		fmt.Printf("  - Gemini Model: %s\n", cfg.AI.GeminiModel)
	case config.ProviderOpenAI:
		fmt.Printf("  - OpenAI API Key: %s\n", maskToken(cfg.AI.OpenAIAPIKey))
		fmt.Printf("  - OpenAI Model: %s\n", cfg.AI.OpenAIModel)
	}
	fmt.Printf("  - Generation: temperature=%.2f topK=%d topP=%.2f maxTokens=%d\n",
		cfg.AI.Generation.Temperature, cfg.AI.Generation.TopK, cfg.AI.Generation.TopP, cfg.AI.Generation.MaxOutputTokens)
	fmt.Printf("  - DB Driver: %s\n", cfg.DB.Driver)
	if cfg.DB.Driver == config.DriverSQLite {
		fmt.Printf("  - DB Path: %s\n", cfg.DB.Path)
	} else {
		fmt.Printf("  - DB Host: %s:%s\n", cfg.DB.Host, cfg.DB.Port)
		fmt.Printf("  - DB User: %s\n", cfg.DB.User)
		fmt.Printf("  - DB Name: %s\n", cfg.DB.DBName)
	}
	if cfg.Storage.Enabled() {
		fmt.Printf("  - S3 Bucket: %s (%s)\n", cfg.Storage.Bucket, cfg.Storage.Region)
	} else {
		fmt.Printf("  - S3 Bucket: <not set, uploads disabled>\n")
	}
	if cfg.Redis.Enabled() {
		fmt.Printf("  - Redis: %s:%s\n", cfg.Redis.Host, cfg.Redis.Port)
	} else {
		fmt.Printf("  - Redis: <not set, in-memory sessions>\n")
	}
	fmt.Printf("  - Log Level: %s\n", cfg.Logger.Level.String())
	fmt.Printf("  - Log Output: %s\n", cfg.Logger.OutputPath)
	fmt.Printf("  - Log Format: %s\n", cfg.Logger.Format)
	fmt.Printf("  - Log Rotation: %d MB, %d backups, %d days\n", cfg.Logger.MaxSizeMB, cfg.Logger.MaxBackups, cfg.Logger.MaxAgeDays)
}

func maskToken(token string) string {
	if token == "" {
		return "<not set>"
	}
	if len(token) <= 8 {
		return "***"
	}
	return token[:4] + "..." + token[len(token)-4:]
}
