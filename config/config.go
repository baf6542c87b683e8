package config

import (
	"os"
	"time"

	log "github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"

	"klob/pkg/types"
)

type Config struct {
	ExchangeConfigs map[string]*ExchangeConfig `yaml:"exchange"`
	Server          *ServerConfig              `yaml:"server"`
}

type ExchangeConfig struct {
	Connector     string   `yaml:"connector"`
	Chain         string   `yaml:"chain"`
	Network       string   `yaml:"network"`
	GatewayURL    string   `yaml:"gatewayUrl"`
	WalletAddress string   `yaml:"walletAddress"`
	TradingPairs  []string `yaml:"tradingPairs"`

	// Intervals and timeouts in seconds; defaults are applied when omitted.
	MarketsUpdateIntervalSec  int `yaml:"marketsUpdateIntervalSec"`
	ExchangeOrderIDTimeoutSec int `yaml:"exchangeOrderIdTimeoutSec"`
}

type ServerConfig struct {
	Port int `yaml:"port"`
}

const (
	defaultMarketsUpdateInterval  = 30 * time.Second
	defaultExchangeOrderIDTimeout = 10 * time.Second
)

func (c *ExchangeConfig) MarketsUpdateInterval() time.Duration {
	if c.MarketsUpdateIntervalSec <= 0 {
		return defaultMarketsUpdateInterval
	}
	return time.Duration(c.MarketsUpdateIntervalSec) * time.Second
}

func (c *ExchangeConfig) ExchangeOrderIDTimeout() time.Duration {
	if c.ExchangeOrderIDTimeoutSec <= 0 {
		return defaultExchangeOrderIDTimeout
	}
	return time.Duration(c.ExchangeOrderIDTimeoutSec) * time.Second
}

func LoadConfig(envName types.EnvName) (*Config, error) {
	yamlFiles := map[types.EnvName]string{
		types.EnvLocal: "klob.yaml",
		types.EnvDev:   "klob.dev.yaml",
		types.EnvProd:  "klob.prod.yaml",
	}
	fileName := yamlFiles[envName]
	data, err := os.ReadFile(fileName)
	if err != nil {
		log.Fatalf("fail to load config file '%s': %v", fileName, err)
	}

	var config Config
	if err := yaml.Unmarshal(data, &config); err != nil {
		log.Fatalf("fail to decode config file '%s': %v", fileName, err)
	}
	return &config, nil
}
