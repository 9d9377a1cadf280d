package config

import (
	"os"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
)

func Test_Config_EnvironmentOverrideWorksCorrect(t *testing.T) {
	override := Config{
		DB:     DBConfig{ConnectionString: "newConnectionString"},
		Server: ServerConfig{MetricsPort: 9999},
		AI: AIConfig{
			Key:   "overrideKey",
			Model: "super_duper_model",
		},
		Sweep: SweepConfig{Cron: "30 4 * * *"},
	}
	os.Setenv("CONFIG_PATH", "../../configs/config.yaml")

	os.Setenv("DB_CONNECTION_STRING", override.DB.ConnectionString)
	os.Setenv("METRICS_PORT", strconv.Itoa(override.Server.MetricsPort))
	os.Setenv("AI_KEY", override.AI.Key)
	os.Setenv("AI_MODEL", override.AI.Model)
	os.Setenv("SWEEP_CRON", override.Sweep.Cron)

	cfg := Get()

	assert.Equal(t, override.DB.ConnectionString, cfg.DB.ConnectionString)
	assert.Equal(t, override.Server.MetricsPort, cfg.Server.MetricsPort)
	assert.Equal(t, override.AI.Key, cfg.AI.Key)
	assert.Equal(t, override.AI.Model, cfg.AI.Model)
	assert.Equal(t, override.Sweep.Cron, cfg.Sweep.Cron)
}

func Test_SweepConfig_RejectsMalformedCron(t *testing.T) {
	assert.Error(t, SweepConfig{Cron: "not a cron"}.validate())
	assert.Error(t, SweepConfig{Cron: ""}.validate())
	assert.NoError(t, SweepConfig{Cron: "0 3 * * *"}.validate())
}
