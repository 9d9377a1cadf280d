package config

import (
	"fmt"

	"github.com/spf13/viper"
)

type ServerConfig struct {
	MetricsPort int `mapstructure:"metrics_port"`
}

func (config ServerConfig) validate() error {
	if config.MetricsPort <= 0 || config.MetricsPort > 65535 {
		return fmt.Errorf("metrics_port must be a valid port, got %d", config.MetricsPort)
	}
	return nil
}

func (config ServerConfig) bindEnvironmentVariables() error {
	viper.SetDefault("server.metrics_port", 8080)
	return viper.BindEnv("server.metrics_port", "METRICS_PORT")
}
