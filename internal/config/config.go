package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

type Config struct {
	Server struct {
		Port        int               `yaml:"port"`
		CORSOrigins []string          `yaml:"corsOrigins"`
		AdminKeys   map[string]string `yaml:"adminKeys"`
		// TrustProxy pakai X-Forwarded-For / X-Real-IP, hanya kalau di belakang proxy
		TrustProxy bool `yaml:"trustProxy"`
	} `yaml:"server"`

	Log struct {
		Level   string `yaml:"level"`
		NoColor bool   `yaml:"noColor"`
	} `yaml:"log"`

	OpenAI struct {
		APIKey      string   `yaml:"apiKey"`
		BaseURL     string   `yaml:"baseURL"`
		Model       string   `yaml:"model"`
		MaxTokens   int      `yaml:"maxTokens"`
		Temperature *float32 `yaml:"temperature"`
		Detail      string   `yaml:"detail"`
		TimeoutSec  int      `yaml:"timeoutSec"`
	} `yaml:"openai"`

	Upload struct {
		MaxBytes    int64 `yaml:"maxBytes"`
		JPEGQuality int   `yaml:"jpegQuality"`
		MaxEdge     int   `yaml:"maxEdge"`
		MaxPixels   int64 `yaml:"maxPixels"`
	} `yaml:"upload"`

	Session struct {
		TTLMinutes      int `yaml:"ttlMinutes"`
		FlowIdleMinutes int `yaml:"flowIdleMinutes"`
		PurgeEverySec   int `yaml:"purgeEverySec"`
	} `yaml:"session"`

	RateLimit struct {
		Capacity   int `yaml:"capacity"`
		RefillRate int `yaml:"refillRate"`
	} `yaml:"rateLimit"`

	// Storage.Driver: memory | mysql | postgres
	Storage struct {
		Driver string `yaml:"driver"`
	} `yaml:"storage"`

	Database struct {
		Host     string `yaml:"host"`
		Port     int    `yaml:"port"`
		User     string `yaml:"user"`
		Password string `yaml:"password"`
		Name     string `yaml:"name"`
	} `yaml:"database"`

	Postgres struct {
		Host     string `yaml:"host"`
		Port     int    `yaml:"port"`
		User     string `yaml:"user"`
		Password string `yaml:"password"`
		Name     string `yaml:"name"`
		SSLMode  string `yaml:"sslMode"`
	} `yaml:"postgres"`

	Minio struct {
		Enabled    bool   `yaml:"enabled"`
		Endpoint   string `yaml:"endpoint"`
		AccessKey  string `yaml:"accessKey"`
		SecretKey  string `yaml:"secretKey"`
		BucketName string `yaml:"bucketName"`
		Region     string `yaml:"region"`
		UseSSL     bool   `yaml:"useSSL"`
	} `yaml:"minio"`
}

// Load baca file config.yaml. File yang tidak ada bukan error, semua nilai
// punya default dan bisa dioverride dari env/.env
func Load(path string) (*Config, error) {
	// .env opsional
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("load .env: %w", err)
	}

	var cfg Config
	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("parse %s: %w", path, err)
		}
	case errors.Is(err, fs.ErrNotExist):
	default:
		return nil, err
	}

	if err := cfg.applyEnv(os.LookupEnv); err != nil {
		return nil, err
	}
	cfg.applyDefaults()
	return &cfg, cfg.Validate()
}

// Parse untuk test: yaml bytes + env lookup tanpa menyentuh filesystem
func Parse(data []byte, lookup func(string) (string, bool)) (*Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}
	if lookup != nil {
		if err := cfg.applyEnv(lookup); err != nil {
			return nil, err
		}
	}
	cfg.applyDefaults()
	return &cfg, cfg.Validate()
}

func (c *Config) applyEnv(lookup func(string) (string, bool)) error {
	str := func(key string, dst *string) {
		if v, ok := lookup(key); ok && v != "" {
			*dst = v
		}
	}
	num := func(key string, dst *int) error {
		v, ok := lookup(key)
		if !ok || v == "" {
			return nil
		}
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%s: %w", key, err)
		}
		*dst = n
		return nil
	}

	str("OPENAI_API_KEY", &c.OpenAI.APIKey)
	str("OPENAI_BASE_URL", &c.OpenAI.BaseURL)
	str("OPENAI_MODEL", &c.OpenAI.Model)
	str("IMAGE_DETAIL_LEVEL", &c.OpenAI.Detail)
	str("STORAGE_DRIVER", &c.Storage.Driver)
	str("LOG_LEVEL", &c.Log.Level)
	if err := num("OPENAI_MAX_TOKENS", &c.OpenAI.MaxTokens); err != nil {
		return err
	}
	if err := num("PORT", &c.Server.Port); err != nil {
		return err
	}
	if v, ok := lookup("OPENAI_TEMPERATURE"); ok && v != "" {
		f, err := strconv.ParseFloat(v, 32)
		if err != nil {
			return fmt.Errorf("OPENAI_TEMPERATURE: %w", err)
		}
		t := float32(f)
		c.OpenAI.Temperature = &t
	}
	return nil
}

func (c *Config) applyDefaults() {
	if c.Server.Port == 0 {
		c.Server.Port = 8080
	}
	if c.Log.Level == "" {
		c.Log.Level = "info"
	}
	if c.OpenAI.Model == "" {
		c.OpenAI.Model = "gpt-4o-mini"
	}
	if c.OpenAI.MaxTokens == 0 {
		c.OpenAI.MaxTokens = 4000
	}
	if c.OpenAI.Temperature == nil {
		t := float32(0.3)
		c.OpenAI.Temperature = &t
	}
	if c.OpenAI.Detail == "" {
		c.OpenAI.Detail = "high"
	}
	if c.OpenAI.TimeoutSec == 0 {
		c.OpenAI.TimeoutSec = 60
	}
	if c.Upload.MaxBytes == 0 {
		c.Upload.MaxBytes = 10 << 20
	}
	if c.Upload.JPEGQuality == 0 {
		c.Upload.JPEGQuality = 80
	}
	if c.Upload.MaxEdge == 0 {
		c.Upload.MaxEdge = 1600
	}
	if c.Upload.MaxPixels == 0 {
		c.Upload.MaxPixels = 40_000_000
	}
	if c.Session.TTLMinutes == 0 {
		c.Session.TTLMinutes = 30
	}
	if c.Session.FlowIdleMinutes == 0 {
		c.Session.FlowIdleMinutes = 60
	}
	if c.Session.PurgeEverySec == 0 {
		c.Session.PurgeEverySec = 60
	}
	if c.RateLimit.Capacity == 0 {
		c.RateLimit.Capacity = 10
	}
	if c.RateLimit.RefillRate == 0 {
		c.RateLimit.RefillRate = 1
	}
	if c.Storage.Driver == "" {
		c.Storage.Driver = "memory"
	}
	c.Storage.Driver = strings.ToLower(c.Storage.Driver)
	if c.Database.Port == 0 {
		c.Database.Port = 3306
	}
	if c.Postgres.Port == 0 {
		c.Postgres.Port = 5432
	}
}

// Validate cek kombinasi nilai yang tidak masuk akal
func (c *Config) Validate() error {
	switch c.Storage.Driver {
	case "memory", "mysql", "postgres":
	default:
		return fmt.Errorf("invalid storage driver %q (allowed: memory, mysql, postgres)", c.Storage.Driver)
	}
	switch c.OpenAI.Detail {
	case "low", "high", "auto":
	default:
		return fmt.Errorf("invalid image detail level %q (allowed: low, high, auto)", c.OpenAI.Detail)
	}
	if c.Upload.JPEGQuality < 1 || c.Upload.JPEGQuality > 100 {
		return fmt.Errorf("jpegQuality must be 1..100, got %d", c.Upload.JPEGQuality)
	}
	if c.Minio.Enabled && (c.Minio.Endpoint == "" || c.Minio.BucketName == "") {
		return errors.New("minio enabled but endpoint/bucketName empty")
	}
	return nil
}

func (c *Config) SessionTTL() time.Duration {
	return time.Duration(c.Session.TTLMinutes) * time.Minute
}

func (c *Config) FlowIdle() time.Duration {
	return time.Duration(c.Session.FlowIdleMinutes) * time.Minute
}

func (c *Config) PurgeEvery() time.Duration {
	return time.Duration(c.Session.PurgeEverySec) * time.Second
}

func (c *Config) OpenAITimeout() time.Duration {
	return time.Duration(c.OpenAI.TimeoutSec) * time.Second
}
