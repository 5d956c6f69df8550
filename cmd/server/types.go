package main

import (
	"time"

	"github.com/cockroachdb/errors"

	"github.com/skynet2/bank-sms-importer/pkg/database"
	"github.com/skynet2/bank-sms-importer/pkg/llm"
	"github.com/skynet2/bank-sms-importer/pkg/repo"
	"github.com/skynet2/bank-sms-importer/pkg/worker"
)

type Config struct {
	ListenAddr string `env:"LISTEN_ADDR" envDefault:":8080"`
	ApiKey     string `env:"API_KEY,notEmpty"`
	LogLevel   string `env:"LOG_LEVEL" envDefault:"info"`
	LogPretty  bool   `env:"LOG_PRETTY"`

	Storage repo.StorageConfig
	LLM     llm.Config

	// AccountRegistry is either "storage" or "firefly".
	AccountRegistry string `env:"ACCOUNT_REGISTRY" envDefault:"storage"`
	FireflyURL      string `env:"FIREFLY_URL"`
	FireflyApiKey   string `env:"FIREFLY_API_KEY"`

	ExtractorTimeout  time.Duration `env:"EXTRACTOR_TIMEOUT" envDefault:"15s"`
	LowValueThreshold string        `env:"LOW_VALUE_THRESHOLD" envDefault:"100"`
	WorkerConcurrency int           `env:"WORKER_CONCURRENCY" envDefault:"4"`

	TelegramBotToken string `env:"TELEGRAM_BOT_TOKEN"`
	TelegramChatID   int64  `env:"TELEGRAM_CHAT_ID"`
}

// SmsEvent is the payload posted by SMS forwarder apps.
type SmsEvent struct {
	Body            string `json:"body"`
	SenderAddress   string `json:"senderAddress"`
	TimestampMillis int64  `json:"timestampMillis"`
}

type SmsBatch struct {
	Messages []SmsEvent `json:"messages"`
}

type ErrorResponse struct {
	Error     string `json:"error"`
	Retryable bool   `json:"retryable"`
}

type Webhook struct {
	Message  Message `json:"message"`
	UpdateId int64   `json:"update_id"`
}

type Message struct {
	Date          int64          `json:"date"`
	ForwardOrigin *ForwardOrigin `json:"forward_origin"`
	Text          string         `json:"text"`
	Chat          Chat           `json:"chat"`
	MessageID     int64          `json:"message_id"`
}

type Chat struct {
	Id int64 `json:"id"`
}

type ForwardOrigin struct {
	Date       int64      `json:"date"`
	SenderUser SenderUser `json:"sender_user"`
}

type SenderUser struct {
	UserName string `json:"username"`
	Id       int64  `json:"id"`
	IsBot    bool   `json:"is_bot"`
}

type ResultResponse struct {
	Outcome     worker.Outcome        `json:"outcome"`
	Transaction *database.Transaction `json:"transaction,omitempty"`
	Error       string                `json:"error,omitempty"`
}

type BatchResponse struct {
	Results []*ResultResponse `json:"results"`
	Summary string            `json:"summary"`
}

var errFireflyConfig = errors.New("FIREFLY_URL and FIREFLY_API_KEY are required for the firefly registry")
