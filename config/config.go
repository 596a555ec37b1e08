package config

import (
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

type Config struct {
	DatabasePath     string
	JWTSecret        string
	ServerPort       string
	Environment      string
	UploadDir        string
	MaxFileSize      int64
	AllowedFileTypes []string
	S3ProxyBaseURL   string
	CloudinaryURL    string
	TelegramBotToken string
	TelegramChatIDs  []string
}

var AppConfig *Config

func Load() error {
	// Load .env file if it exists
	if err := godotenv.Load(); err != nil {
		// .env file is optional, continue without it
	}

	AppConfig = &Config{
		DatabasePath:     getEnv("DATABASE_PATH", "./printing_platform.db"),
		JWTSecret:        getEnv("JWT_SECRET", "your-secret-key-change-in-production"),
		ServerPort:       getEnv("PORT", "8080"),
		Environment:      getEnv("ENVIRONMENT", "development"),
		UploadDir:        getEnv("UPLOAD_DIR", "uploads"),
		MaxFileSize:      getEnvInt64("MAX_FILE_SIZE", 50*1024*1024),
		AllowedFileTypes: []string{".stl", ".obj", ".3mf", ".jpg", ".jpeg", ".png"},
		S3ProxyBaseURL:   getEnv("S3_PROXY_BASE_URL", "https://s3.twcstorage.ru/66fcbd3b-259fc9df-4acc-4f84-bb9b-1ab070192e19"),
		CloudinaryURL:    getEnv("CLOUDINARY_URL", ""),
		TelegramBotToken: getEnv("TELEGRAM_BOT_TOKEN", ""),
		TelegramChatIDs:  getEnvList("TELEGRAM_ADMIN_CHAT_IDS"),
	}

	return nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt64(key string, defaultValue int64) int64 {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.ParseInt(value, 10, 64); err == nil {
			return parsed
		}
	}
	return defaultValue
}

// getEnvList splits a comma-separated env value, dropping empty entries.
func getEnvList(key string) []string {
	value := os.Getenv(key)
	if value == "" {
		return nil
	}
	var items []string
	for _, part := range strings.Split(value, ",") {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			items = append(items, trimmed)
		}
	}
	return items
}
