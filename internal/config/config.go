package config

import (
	"errors"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// Config for the analysis service. Values come from an optional YAML file
// (CONFIG_FILE) with environment variables taking precedence.
type Config struct {
	Port string `yaml:"port"`

	MongoURI        string `yaml:"mongo_uri"`
	MongoDatabase   string `yaml:"mongo_database"`
	MongoCollection string `yaml:"mongo_collection"`

	RedisAddr string `yaml:"redis_addr"`
	QueueKey  string `yaml:"queue_key"`

	TranscriberURL string `yaml:"transcriber_url"`
	ClassifierURL  string `yaml:"classifier_url"`

	FFmpegPath  string `yaml:"ffmpeg_path"`
	FFprobePath string `yaml:"ffprobe_path"`

	UploadDir string `yaml:"upload_dir"`
	MediaDir  string `yaml:"media_dir"`
	WorkDir   string `yaml:"work_dir"`

	WorkerCount         int `yaml:"worker_count"`
	FrameUnitSeconds    int `yaml:"frame_unit_seconds"`
	CleanupGraceSeconds int `yaml:"cleanup_grace_seconds"`

	JanitorSchedule   string `yaml:"janitor_schedule"`
	JanitorMaxAgeHours int   `yaml:"janitor_max_age_hours"`

	AllowedOrigins []string `yaml:"allowed_origins"`
}

func Load() (*Config, error) {
	cfg := &Config{
		Port:                "8080",
		MongoDatabase:       "interviewlens",
		MongoCollection:     "interviews",
		RedisAddr:           "localhost:6379",
		QueueKey:            "interviewlens:jobs",
		TranscriberURL:      "http://localhost:9000",
		ClassifierURL:       "http://localhost:9001",
		UploadDir:           "./uploads",
		MediaDir:            "./media",
		WorkDir:             os.TempDir(),
		WorkerCount:         2,
		FrameUnitSeconds:    1,
		CleanupGraceSeconds: 1,
		JanitorSchedule:     "0 * * * *",
		JanitorMaxAgeHours:  6,
		AllowedOrigins:      []string{"http://localhost:5173"},
	}

	if path := os.Getenv("CONFIG_FILE"); path != "" {
		f, err := os.Open(path)
		if err != nil {
			return nil, err
		}
		defer f.Close()
		if err := yaml.NewDecoder(f).Decode(cfg); err != nil {
			return nil, err
		}
	}

	applyEnv(cfg)

	if err := validate(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func applyEnv(cfg *Config) {
	cfg.Port = getEnvOrDefault("PORT", cfg.Port)
	cfg.MongoURI = getEnvOrDefault("MONGO_URI", cfg.MongoURI)
	cfg.MongoDatabase = getEnvOrDefault("MONGO_DB", cfg.MongoDatabase)
	cfg.MongoCollection = getEnvOrDefault("MONGO_COLLECTION", cfg.MongoCollection)
	cfg.RedisAddr = getEnvOrDefault("REDIS_ADDR", cfg.RedisAddr)
	cfg.QueueKey = getEnvOrDefault("QUEUE_KEY", cfg.QueueKey)
	cfg.TranscriberURL = getEnvOrDefault("TRANSCRIBER_URL", cfg.TranscriberURL)
	cfg.ClassifierURL = getEnvOrDefault("CLASSIFIER_URL", cfg.ClassifierURL)
	cfg.FFmpegPath = getEnvOrDefault("FFMPEG_PATH", cfg.FFmpegPath)
	cfg.FFprobePath = getEnvOrDefault("FFPROBE_PATH", cfg.FFprobePath)
	cfg.UploadDir = getEnvOrDefault("UPLOAD_DIR", cfg.UploadDir)
	cfg.MediaDir = getEnvOrDefault("MEDIA_DIR", cfg.MediaDir)
	cfg.WorkDir = getEnvOrDefault("WORK_DIR", cfg.WorkDir)
	cfg.WorkerCount = getEnvInt("WORKER_COUNT", cfg.WorkerCount)
	cfg.FrameUnitSeconds = getEnvInt("FRAME_UNIT_SECONDS", cfg.FrameUnitSeconds)
	cfg.CleanupGraceSeconds = getEnvInt("CLEANUP_GRACE_SECONDS", cfg.CleanupGraceSeconds)
	cfg.JanitorSchedule = getEnvOrDefault("JANITOR_SCHEDULE", cfg.JanitorSchedule)
	cfg.JanitorMaxAgeHours = getEnvInt("JANITOR_MAX_AGE_HOURS", cfg.JanitorMaxAgeHours)
	if v := os.Getenv("ALLOWED_ORIGINS"); v != "" {
		cfg.AllowedOrigins = splitAndTrim(v)
	}
}

func validate(cfg *Config) error {
	if cfg.WorkerCount < 1 {
		return errors.New("worker_count must be at least 1")
	}
	if cfg.FrameUnitSeconds < 1 {
		return errors.New("frame_unit_seconds must be at least 1")
	}
	if cfg.TranscriberURL == "" {
		return errors.New("transcriber_url is required")
	}
	if cfg.ClassifierURL == "" {
		return errors.New("classifier_url is required")
	}
	return nil
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if n, err := strconv.Atoi(value); err == nil {
			return n
		}
	}
	return defaultValue
}

func splitAndTrim(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
