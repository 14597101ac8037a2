package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
)

func lookup(vars map[string]string) func(string) string {
	return func(k string) string { return vars[k] }
}

func TestLoadFromDefaults(t *testing.T) {
	t.Parallel()

	cfg, err := LoadFrom(lookup(nil))
	if err != nil {
		t.Fatalf("LoadFrom failed: %v", err)
	}
	if cfg.ServiceName != DefaultServiceName || cfg.Language != "ru" {
		t.Errorf("Unexpected identity defaults: %+v", cfg)
	}
	if !cfg.BigMoneyThreshold.Equal(decimal.NewFromInt(5000)) {
		t.Errorf("Expected threshold 5000, got %s", cfg.BigMoneyThreshold)
	}
	if cfg.SuspiciousDaysThreshold != 365 || cfg.DefaultDaysSinceLastPayment != 5 {
		t.Errorf("Unexpected history defaults: %d/%d", cfg.SuspiciousDaysThreshold, cfg.DefaultDaysSinceLastPayment)
	}
	if cfg.PacingInterval != 0 || cfg.EnableSuspiciousStage || cfg.StrictValidation || len(cfg.Stages) != 0 {
		t.Errorf("Expected optional features off by default: %+v", cfg)
	}
}

func TestLoadFromOverrides(t *testing.T) {
	t.Parallel()

	cfg, err := LoadFrom(lookup(map[string]string{
		"LANGUAGE":                        "EN",
		"BIG_MONEY_THRESHOLD":             "7500.50",
		"SUSPICIOUS_DAYS_THRESHOLD":       "30",
		"DEFAULT_DAYS_SINCE_LAST_PAYMENT": "0",
		"PACING_INTERVAL":                 "250ms",
		"MONITORING_SEED":                 "99",
		"ENABLE_SUSPICIOUS_STAGE":         "yes",
		"STRICT_VALIDATION":               "true",
	}))
	if err != nil {
		t.Fatalf("LoadFrom failed: %v", err)
	}
	if cfg.Language != "en" {
		t.Errorf("Expected language en, got %q", cfg.Language)
	}
	if cfg.BigMoneyThreshold.String() != "7500.5" {
		t.Errorf("Expected threshold 7500.5, got %s", cfg.BigMoneyThreshold)
	}
	if cfg.SuspiciousDaysThreshold != 30 || cfg.DefaultDaysSinceLastPayment != 0 {
		t.Errorf("Unexpected day settings: %+v", cfg)
	}
	if cfg.PacingInterval != 250*time.Millisecond || cfg.MonitoringSeed != 99 {
		t.Errorf("Unexpected pacing/seed: %v/%d", cfg.PacingInterval, cfg.MonitoringSeed)
	}
	if !cfg.EnableSuspiciousStage || !cfg.StrictValidation {
		t.Error("Expected boolean flags to be set")
	}
}

func TestLoadFromRejectsInvalid(t *testing.T) {
	t.Parallel()

	tests := map[string]map[string]string{
		"bad threshold":      {"BIG_MONEY_THRESHOLD": "lots"},
		"negative threshold": {"BIG_MONEY_THRESHOLD": "-1"},
		"zero days":          {"SUSPICIOUS_DAYS_THRESHOLD": "0"},
		"bad days":           {"SUSPICIOUS_DAYS_THRESHOLD": "a year"},
		"negative fallback":  {"DEFAULT_DAYS_SINCE_LAST_PAYMENT": "-3"},
		"bad pacing":         {"PACING_INTERVAL": "soon"},
		"negative pacing":    {"PACING_INTERVAL": "-1s"},
		"bad seed":           {"MONITORING_SEED": "x"},
		"missing chain file": {"CHAIN_FILE": "/nonexistent/chain.yaml"},
	}

	for name, vars := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			if cfg, err := LoadFrom(lookup(vars)); err == nil {
				t.Errorf("Expected error, got %+v", cfg)
			}
		})
	}
}

func TestLoadFromChainFile(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "chain.yaml")
	doc := "stages: [base, big_money, suspicious_activity, comment]\n" +
		"big_money_threshold: \"10000\"\n" +
		"suspicious_days_threshold: 90\n"
	if err := os.WriteFile(path, []byte(doc), 0o600); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}

	cfg, err := LoadFrom(lookup(map[string]string{
		"CHAIN_FILE":          path,
		"BIG_MONEY_THRESHOLD": "1",
	}))
	if err != nil {
		t.Fatalf("LoadFrom failed: %v", err)
	}
	want := []string{"base", "big_money", "suspicious_activity", "comment"}
	if len(cfg.Stages) != len(want) {
		t.Fatalf("Expected stages %v, got %v", want, cfg.Stages)
	}
	for i := range want {
		if cfg.Stages[i] != want[i] {
			t.Errorf("Stage %d: expected %s, got %s", i, want[i], cfg.Stages[i])
		}
	}
	if !cfg.BigMoneyThreshold.Equal(decimal.NewFromInt(10000)) {
		t.Errorf("Expected file threshold to win, got %s", cfg.BigMoneyThreshold)
	}
	if cfg.SuspiciousDaysThreshold != 90 {
		t.Errorf("Expected 90 days, got %d", cfg.SuspiciousDaysThreshold)
	}
}

func TestChainFileApplyKeepsUnsetValues(t *testing.T) {
	t.Parallel()

	file, err := ParseChainFile([]byte("stages: [comment]\n"))
	if err != nil {
		t.Fatalf("ParseChainFile failed: %v", err)
	}
	cfg := &Config{BigMoneyThreshold: decimal.NewFromInt(5000), SuspiciousDaysThreshold: 365}
	if err := file.Apply(cfg); err != nil {
		t.Fatalf("Apply failed: %v", err)
	}
	if !cfg.BigMoneyThreshold.Equal(decimal.NewFromInt(5000)) || cfg.SuspiciousDaysThreshold != 365 {
		t.Errorf("Unset file values overwrote config: %+v", cfg)
	}

	if _, err := ParseChainFile([]byte("stages: {")); err == nil {
		t.Error("Expected parse error for malformed YAML")
	}
	bad := &ChainFile{BigMoneyThreshold: "many"}
	if err := bad.Apply(cfg); err == nil {
		t.Error("Expected error for malformed threshold")
	}
}

func TestChainFileExplicitZeroDaysIsRejected(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "chain.yaml")
	if err := os.WriteFile(path, []byte("suspicious_days_threshold: 0\n"), 0o600); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}

	cfg, err := LoadFrom(lookup(map[string]string{
		"CHAIN_FILE":                path,
		"SUSPICIOUS_DAYS_THRESHOLD": "30",
	}))
	if err == nil {
		t.Fatalf("Expected the file's zero threshold to be rejected, got %+v", cfg)
	}
	if !strings.Contains(err.Error(), "SUSPICIOUS_DAYS_THRESHOLD") {
		t.Errorf("Expected the error to name the setting, got %v", err)
	}
}
