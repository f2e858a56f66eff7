package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoad_Defaults(t *testing.T) {
	for _, key := range []string{
		"OPENSEA_API_KEY", "COLLECTION_SLUG", "THE_KEY_CONTRACT", "LISTINGS_MODE",
		"SNAPSHOT_LIMIT", "TARGET_DISCOUNT_RATE", "OPENSEA_RATE_LIMIT",
		"REFRESH_CRON", "REFRESH_INTERVAL", "LOG_PATH", "PRICING_FILE",
	} {
		t.Setenv(key, "")
		os.Unsetenv(key)
	}

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.CollectionSlug != "not-a-hotel-the-key" {
		t.Fatalf("slug = %q", cfg.CollectionSlug)
	}
	if cfg.Mode != "all" || cfg.Limit != 24 {
		t.Fatalf("mode/limit = %q/%d", cfg.Mode, cfg.Limit)
	}
	if cfg.TargetDiscountRate != 0.25 || cfg.RateLimitPerSec != 4 {
		t.Fatalf("rates = %v/%v", cfg.TargetDiscountRate, cfg.RateLimitPerSec)
	}
	if cfg.Scheduler.Cron != "" || cfg.Scheduler.Interval != 0 {
		t.Fatalf("scheduler should be off by default: %+v", cfg.Scheduler)
	}
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("COLLECTION_SLUG", "some-other-collection")
	t.Setenv("SNAPSHOT_LIMIT", "50")
	t.Setenv("TARGET_DISCOUNT_RATE", "0.3")
	t.Setenv("REFRESH_INTERVAL", "15m")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.CollectionSlug != "some-other-collection" {
		t.Fatalf("slug = %q", cfg.CollectionSlug)
	}
	if cfg.Limit != 50 {
		t.Fatalf("limit = %d", cfg.Limit)
	}
	if cfg.TargetDiscountRate != 0.3 {
		t.Fatalf("target = %v", cfg.TargetDiscountRate)
	}
	if cfg.Scheduler.Interval != 15*time.Minute {
		t.Fatalf("interval = %v", cfg.Scheduler.Interval)
	}
}

func TestLoad_BadNumbersFallBack(t *testing.T) {
	t.Setenv("SNAPSHOT_LIMIT", "lots")
	t.Setenv("TARGET_DISCOUNT_RATE", "quarter")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Limit != 24 || cfg.TargetDiscountRate != 0.25 {
		t.Fatalf("bad values must fall back, got %d/%v", cfg.Limit, cfg.TargetDiscountRate)
	}
}

const overridesYAML = `
pricing:
  eth_jpy: 700000
  dow_factor:
    Fri: 1.2
houses:
  - id: "+CHEF_FUKUOKA"
    display_name: "+CHEF FUKUOKA"
    area: FUKUOKA
    baseline_per_night_jpy: 210000
    official_url: https://notahotel.com/shop/fukuoka/chef
`

func TestLoadPricingOverrides(t *testing.T) {
	path := filepath.Join(t.TempDir(), "pricing.yaml")
	if err := os.WriteFile(path, []byte(overridesYAML), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg := &Config{PricingFile: path}
	out, err := cfg.LoadPricingOverrides()
	if err != nil {
		t.Fatalf("LoadPricingOverrides: %v", err)
	}
	if out.Pricing == nil || out.Pricing.EthJpy != 700000 {
		t.Fatalf("pricing = %+v", out.Pricing)
	}
	if out.Pricing.DowFactor["Fri"] != 1.2 {
		t.Fatalf("dow = %v", out.Pricing.DowFactor)
	}

	overrides := out.HouseOverrides()
	h, ok := overrides["+CHEF_FUKUOKA"]
	if !ok {
		t.Fatalf("house override missing: %v", overrides)
	}
	if h.BaselinePerNightJpy != 210000 {
		t.Fatalf("baseline = %d", h.BaselinePerNightJpy)
	}
}

func TestLoadPricingOverrides_NoFileConfigured(t *testing.T) {
	cfg := &Config{}
	out, err := cfg.LoadPricingOverrides()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out.Pricing != nil || out.HouseOverrides() != nil {
		t.Fatalf("expected empty overrides, got %+v", out)
	}
}

func TestLoadPricingOverrides_MalformedYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "pricing.yaml")
	if err := os.WriteFile(path, []byte(":\n  - ["), 0o644); err != nil {
		t.Fatal(err)
	}
	cfg := &Config{PricingFile: path}
	if _, err := cfg.LoadPricingOverrides(); err == nil {
		t.Fatal("expected a parse error")
	}
}
