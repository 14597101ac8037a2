package config

import (
	"fmt"
	"os"

	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"
)

// ChainFile is the YAML assembly document referenced by CHAIN_FILE.
//
//	stages: [base, big_money, suspicious_activity, comment]
//	big_money_threshold: "5000"
//	suspicious_days_threshold: 365
type ChainFile struct {
	Stages                  []string `yaml:"stages"`
	BigMoneyThreshold       string   `yaml:"big_money_threshold"`
	SuspiciousDaysThreshold *int     `yaml:"suspicious_days_threshold"`
}

func LoadChainFile(path string) (*ChainFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: read chain file: %w", err)
	}
	return ParseChainFile(data)
}

func ParseChainFile(data []byte) (*ChainFile, error) {
	var file ChainFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("config: parse chain file: %w", err)
	}
	return &file, nil
}

// Apply overrides cfg with every value the file sets. Values are checked by Config.Validate.
func (f *ChainFile) Apply(cfg *Config) error {
	if len(f.Stages) > 0 {
		cfg.Stages = append([]string(nil), f.Stages...)
	}
	if f.BigMoneyThreshold != "" {
		threshold, err := decimal.NewFromString(f.BigMoneyThreshold)
		if err != nil {
			return fmt.Errorf("config: chain file big_money_threshold: %w", err)
		}
		cfg.BigMoneyThreshold = threshold
	}
	if f.SuspiciousDaysThreshold != nil {
		cfg.SuspiciousDaysThreshold = *f.SuspiciousDaysThreshold
	}
	return nil
}
