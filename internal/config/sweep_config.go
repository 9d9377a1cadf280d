package config

import (
	"fmt"

	"github.com/robfig/cron/v3"
	"github.com/spf13/viper"
)

type SweepConfig struct {
	Cron string `mapstructure:"cron"`
}

func (config SweepConfig) validate() error {
	if config.Cron == "" {
		return fmt.Errorf("missing variable: sweep cron")
	}
	if _, err := cron.ParseStandard(config.Cron); err != nil {
		return fmt.Errorf("invalid sweep cron %q: %w", config.Cron, err)
	}
	return nil
}

func (config SweepConfig) bindEnvironmentVariables() error {
	viper.SetDefault("sweep.cron", "0 3 * * *")
	return viper.BindEnv("sweep.cron", "SWEEP_CRON")
}
