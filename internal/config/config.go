package config

import (
	"errors"
	"log/slog"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Server    ServerConfig
	Database  DatabaseConfig
	Auth      AuthConfig
	Editor    EditorConfig
	AI        AIConfig
	Render    RenderConfig
	Artifacts ArtifactConfig
}

type ServerConfig struct {
	Port         string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	BodyLimit    int
}

type DatabaseConfig struct {
	URL string
}

type AuthConfig struct {
	JWTSecret string
}

type EditorConfig struct {
	// ResumeAPIURL is the storage API sessions save to; empty means this
	// process's own /resumes routes.
	ResumeAPIURL        string
	// ServicesAPIURL hosts /api/gemini, /api/fetch-jd and /api/ats/analyze
	// for sessions; empty means in-process providers.
	ServicesAPIURL      string
	AutoSaveDelay       time.Duration
	ExperienceBullets   int
	TemplatePresetsFile string
}

type AIConfig struct {
	GeminiAPIKey string
	GeminiModel  string
}

type RenderConfig struct {
	ChromePath string
	Timeout    time.Duration
}

type ArtifactConfig struct {
	Dir       string
	Bucket    string
	Endpoint  string
	Region    string
	AccessKey string
	SecretKey string
}

// Load reads an optional .env file and then the environment.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		slog.Warn("could not read .env file", "error", err)
	}

	cfg := &Config{
		Server: ServerConfig{
			Port:         getEnv("PORT", "3000"),
			ReadTimeout:  getEnvAsDuration("READ_TIMEOUT", 15*time.Second),
			WriteTimeout: getEnvAsDuration("WRITE_TIMEOUT", 90*time.Second),
			BodyLimit:    getEnvAsInt("BODY_LIMIT", 10*1024*1024),
		},
		Database: DatabaseConfig{
			URL: getEnv("DATABASE_URL", ""),
		},
		Auth: AuthConfig{
			JWTSecret: getEnv("JWT_SECRET", ""),
		},
		Editor: EditorConfig{
			ResumeAPIURL:        getEnv("RESUME_API_URL", ""),
			ServicesAPIURL:      getEnv("SERVICES_API_URL", ""),
			AutoSaveDelay:       getEnvAsDuration("AUTOSAVE_DELAY", 2*time.Second),
			ExperienceBullets:   getEnvAsInt("EXPERIENCE_BULLETS", 0),
			TemplatePresetsFile: getEnv("TEMPLATE_PRESETS_FILE", ""),
		},
		AI: AIConfig{
			GeminiAPIKey: getEnv("GEMINI_API_KEY", ""),
			GeminiModel:  getEnv("GEMINI_MODEL", "gemini-2.5-flash"),
		},
		Render: RenderConfig{
			ChromePath: getEnv("CHROME_PATH", ""),
			Timeout:    getEnvAsDuration("RENDER_TIMEOUT", 60*time.Second),
		},
		Artifacts: ArtifactConfig{
			Dir:       getEnv("ARTIFACT_DIR", ""),
			Bucket:    getEnv("ARTIFACT_BUCKET", ""),
			Endpoint:  getEnv("S3_ENDPOINT", ""),
			Region:    getEnv("S3_REGION", "auto"),
			AccessKey: getEnv("S3_ACCESS_KEY", ""),
			SecretKey: getEnv("S3_SECRET_KEY", ""),
		},
	}

	if cfg.Auth.JWTSecret == "" {
		return nil, errors.New("JWT_SECRET is required")
	}
	return cfg, nil
}

func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value, exists := os.LookupEnv(key); exists {
		v, err := strconv.Atoi(value)
		if err != nil {
			slog.Warn("invalid int env var, using default", "key", key, "error", err)
			return defaultValue
		}
		return v
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	if value, exists := os.LookupEnv(key); exists {
		d, err := time.ParseDuration(value)
		if err != nil {
			slog.Warn("invalid duration env var, using default", "key", key, "error", err)
			return defaultValue
		}
		return d
	}
	return defaultValue
}
