package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"keywatch/models"
)

type Config struct {
	OpenseaAPIKey      string
	CollectionSlug     string
	Contract           string // optional, narrows item lookups
	Mode               string
	Limit              int
	TargetDiscountRate float64
	RateLimitPerSec    float64
	Scheduler          SchedulerConfig
	LogPath            string
	PricingFile        string
}

type SchedulerConfig struct {
	Interval time.Duration
	Cron     string
}

// PricingOverrides is the optional YAML override file: replacement
// pricing factor tables plus per-house seed overrides.
type PricingOverrides struct {
	Pricing *models.PricingConfig `yaml:"pricing"`
	Houses  []models.HouseInfo    `yaml:"houses"`
}

func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		OpenseaAPIKey:      os.Getenv("OPENSEA_API_KEY"),
		CollectionSlug:     getEnv("COLLECTION_SLUG", "not-a-hotel-the-key"),
		Contract:           os.Getenv("THE_KEY_CONTRACT"),
		Mode:               getEnv("LISTINGS_MODE", "all"),
		Limit:              getEnvInt("SNAPSHOT_LIMIT", 24),
		TargetDiscountRate: getEnvFloat("TARGET_DISCOUNT_RATE", 0.25),
		RateLimitPerSec:    getEnvFloat("OPENSEA_RATE_LIMIT", 4),
		LogPath:            getEnv("LOG_PATH", "keywatch.log"),
		PricingFile:        os.Getenv("PRICING_FILE"),
		Scheduler: SchedulerConfig{
			Cron: os.Getenv("REFRESH_CRON"),
		},
	}

	if interval := os.Getenv("REFRESH_INTERVAL"); interval != "" {
		if d, err := time.ParseDuration(interval); err == nil {
			cfg.Scheduler.Interval = d
		}
	}

	return cfg, nil
}

// LoadPricingOverrides reads the optional YAML override file. No
// configured file means no overrides, not an error.
func (c *Config) LoadPricingOverrides() (*PricingOverrides, error) {
	if c.PricingFile == "" {
		return &PricingOverrides{}, nil
	}
	data, err := os.ReadFile(c.PricingFile)
	if err != nil {
		return nil, fmt.Errorf("read pricing file: %w", err)
	}
	var out PricingOverrides
	if err := yaml.Unmarshal(data, &out); err != nil {
		return nil, fmt.Errorf("parse pricing file %s: %w", c.PricingFile, err)
	}
	return &out, nil
}

// HouseOverrides returns the override entries keyed by house id.
func (o *PricingOverrides) HouseOverrides() map[models.HouseID]models.HouseInfo {
	if len(o.Houses) == 0 {
		return nil
	}
	out := make(map[models.HouseID]models.HouseInfo, len(o.Houses))
	for _, h := range o.Houses {
		out[h.ID] = h
	}
	return out
}

func getEnv(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}

func getEnvInt(key string, defaultVal int) int {
	if val := os.Getenv(key); val != "" {
		if i, err := strconv.Atoi(val); err == nil {
			return i
		}
	}
	return defaultVal
}

func getEnvFloat(key string, defaultVal float64) float64 {
	if val := os.Getenv(key); val != "" {
		if f, err := strconv.ParseFloat(val, 64); err == nil {
			return f
		}
	}
	return defaultVal
}
