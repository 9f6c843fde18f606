package config

import (
	"fmt"
	"time"

	"github.com/dayvsonmarques/sub-acquirer-payments/pkg/lock"
	"github.com/dayvsonmarques/sub-acquirer-payments/pkg/mq"
	"github.com/dayvsonmarques/sub-acquirer-payments/pkg/mysql"
	"github.com/spf13/viper"
)

type Config struct {
	API      API          `mapstructure:"api"`
	Database mysql.Config `mapstructure:"database"`
	RabbitMQ mq.Config    `mapstructure:"rabbitmq"`
	Redis    lock.Config  `mapstructure:"redis"`
	Webhooks Webhooks     `mapstructure:"webhooks"`
}

type API struct {
	Port string `mapstructure:"port"`
}

type Webhooks struct {
	Simulation Simulation    `mapstructure:"simulation"`
	Retry      Retry         `mapstructure:"retry"`
	LockTTL    time.Duration `mapstructure:"lock_ttl"`
	StaleAfter time.Duration `mapstructure:"stale_after"`
}

type Simulation struct {
	DelayMin time.Duration `mapstructure:"delay_min"`
	DelayMax time.Duration `mapstructure:"delay_max"`
}

type Retry struct {
	MaxAttempts int             `mapstructure:"max_attempts"`
	Backoff     []time.Duration `mapstructure:"backoff"`
}

func Load() (cfg *Config, err error) {
	viper.SetConfigName("config")
	viper.SetConfigType("yml")
	viper.AddConfigPath("./config")

	err = viper.ReadInConfig()
	if err != nil {
		return cfg, fmt.Errorf("failed to load config: %w", err)
	}

	err = viper.Unmarshal(&cfg)
	if err != nil {
		return nil, err
	}

	return cfg, nil
}
