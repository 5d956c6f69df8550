package main

import (
	"context"
	"net/http"
	"os"
	"time"

	"github.com/caarlos0/env/v10"
	"github.com/imroc/req/v3"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"

	"github.com/skynet2/bank-sms-importer/pkg/duplicatecleaner"
	"github.com/skynet2/bank-sms-importer/pkg/firefly"
	"github.com/skynet2/bank-sms-importer/pkg/llm"
	"github.com/skynet2/bank-sms-importer/pkg/logger"
	"github.com/skynet2/bank-sms-importer/pkg/matcher"
	"github.com/skynet2/bank-sms-importer/pkg/notifications"
	"github.com/skynet2/bank-sms-importer/pkg/parser"
	"github.com/skynet2/bank-sms-importer/pkg/preprocessor"
	"github.com/skynet2/bank-sms-importer/pkg/printer"
	"github.com/skynet2/bank-sms-importer/pkg/processor"
	"github.com/skynet2/bank-sms-importer/pkg/repo"
	"github.com/skynet2/bank-sms-importer/pkg/tagger"
	"github.com/skynet2/bank-sms-importer/pkg/worker"
)

func main() {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		log.Fatal().Err(err).Msg("failed to parse config")
	}

	lg := logger.New(cfg.LogLevel, cfg.LogPretty)
	ctx := lg.WithContext(context.Background())

	storage, err := repo.Open(cfg.Storage)
	if err != nil {
		lg.Fatal().Err(err).Str("driver", cfg.Storage.Driver).Msg("failed to open storage")
	}

	registry, err := buildRegistry(cfg, storage)
	if err != nil {
		lg.Fatal().Err(err).Msg("failed to build account registry")
	}

	transport, err := llm.NewTransport(ctx, cfg.LLM, req.DefaultClient())
	if err != nil {
		lg.Fatal().Err(err).Msg("failed to build llm transport")
	}

	threshold, err := decimal.NewFromString(cfg.LowValueThreshold)
	if err != nil {
		lg.Fatal().Err(err).Str("value", cfg.LowValueThreshold).Msg("invalid low value threshold")
	}

	processorSvc := processor.NewProcessor(&processor.Config{
		Preprocessor: preprocessor.NewPreprocessor(nil),
		Extractors: []processor.Extractor{
			llm.NewExtractor(transport),
			parser.NewParser(nil),
		},
		Matcher:          matcher.NewMatcher(registry),
		ExtractorTimeout: cfg.ExtractorTimeout,
	})

	printerSvc := printer.NewPrinter()

	workerCfg := &worker.Config{
		Processor:        processorSvc,
		Tagger:           tagger.NewTagger(threshold),
		Repo:             storage,
		DuplicateCleaner: duplicatecleaner.NewDuplicateCleaner(storage),
		Printer:          printerSvc,
		ChatID:           cfg.TelegramChatID,
		Concurrency:      cfg.WorkerConcurrency,
	}

	var reactor Reactor

	if cfg.TelegramBotToken != "" {
		tgNotifier := notifications.NewTelegram(cfg.TelegramBotToken, req.DefaultClient())

		workerCfg.NotificationSvc = tgNotifier
		reactor = tgNotifier
	}

	status := processorSvc.Status()
	lg.Info().
		Bool("cloud_available", status.CloudAvailable).
		Bool("pattern_available", status.PatternFallbackAvailable).
		Str("storage", cfg.Storage.Driver).
		Str("registry", cfg.AccountRegistry).
		Msg("pipeline configured")

	handle := NewHandler(
		worker.NewWorker(workerCfg),
		processorSvc,
		storage,
		registry,
		printerSvc,
		reactor,
		cfg.ApiKey,
	)

	listenAddr := cfg.ListenAddr
	if val, ok := os.LookupEnv("FUNCTIONS_CUSTOMHANDLER_PORT"); ok {
		listenAddr = ":" + val
	}

	srv := &http.Server{
		Handler:      handle.Router(lg),
		Addr:         listenAddr,
		WriteTimeout: 60 * time.Second,
		ReadTimeout:  60 * time.Second,
	}

	lg.Info().Str("addr", listenAddr).Msg("listening")

	if err = srv.ListenAndServe(); err != nil {
		lg.Fatal().Err(err).Msg("server stopped")
	}
}

func buildRegistry(cfg Config, storage repo.Storage) (matcher.Registry, error) {
	if cfg.AccountRegistry != "firefly" {
		return storage, nil
	}

	if cfg.FireflyURL == "" || cfg.FireflyApiKey == "" {
		return nil, errFireflyConfig
	}

	return firefly.NewRegistry(firefly.NewFirefly(cfg.FireflyApiKey, cfg.FireflyURL, req.DefaultClient())), nil
}
