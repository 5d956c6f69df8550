package main

import (
	"github.com/skynet2/bank-sms-importer/pkg/repo"
)

type Config struct {
	Storage       repo.StorageConfig
	FireflyURL    string `env:"FIREFLY_URL,required"`
	FireflyApiKey string `env:"FIREFLY_API_KEY,required"`
	LogLevel      string `env:"LOG_LEVEL" envDefault:"info"`
}
