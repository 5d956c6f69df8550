package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/caarlos0/env/v10"
	"github.com/cockroachdb/errors"
	"github.com/imroc/req/v3"
	"github.com/rs/zerolog"

	"github.com/skynet2/bank-sms-importer/pkg/database"
	"github.com/skynet2/bank-sms-importer/pkg/llm"
	"github.com/skynet2/bank-sms-importer/pkg/logger"
	"github.com/skynet2/bank-sms-importer/pkg/matcher"
	"github.com/skynet2/bank-sms-importer/pkg/parser"
	"github.com/skynet2/bank-sms-importer/pkg/preprocessor"
	"github.com/skynet2/bank-sms-importer/pkg/printer"
	"github.com/skynet2/bank-sms-importer/pkg/processor"
	"github.com/skynet2/bank-sms-importer/pkg/repo"
	"github.com/skynet2/bank-sms-importer/pkg/tagger"
)

type Config struct {
	LLM     llm.Config
	Storage repo.StorageConfig
}

type options struct {
	sender       string
	useCloud     bool
	useRegistry  bool
	timeout      time.Duration
	logLevel     string
	messageParts []string
}

// extract runs one SMS through the pipeline and prints the outcome without storing anything.
func main() {
	fs := flag.NewFlagSet("extract", flag.ExitOnError)
	sender := fs.String("sender", "", "SMS sender address")
	useCloud := fs.Bool("cloud", false, "use the cloud extractor when GEMINI_API_KEY is set")
	useRegistry := fs.Bool("registry", false, "match accounts against the configured storage")
	timeout := fs.Duration("timeout", 15*time.Second, "per-extractor timeout")
	logLevel := fs.String("log-level", "warn", "log level")
	_ = fs.Parse(os.Args[1:])

	out, err := run(context.Background(), options{
		sender:       *sender,
		useCloud:     *useCloud,
		useRegistry:  *useRegistry,
		timeout:      *timeout,
		logLevel:     *logLevel,
		messageParts: fs.Args(),
	}, os.Stdin)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	fmt.Println(out)
}

func run(ctx context.Context, opts options, stdin io.Reader) (string, error) {
	lg := logger.NewWithWriter(zerolog.ConsoleWriter{Out: os.Stderr}, opts.logLevel)
	ctx = lg.WithContext(ctx)

	body := strings.Join(opts.messageParts, " ")
	if body == "" {
		b, err := io.ReadAll(stdin)
		if err != nil {
			return "", errors.Wrap(err, "failed to read stdin")
		}

		body = string(b)
	}

	body = strings.TrimSpace(body)
	if body == "" {
		return "", errors.New("no message given, pass it as arguments or on stdin")
	}

	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return "", errors.Wrap(err, "failed to parse config")
	}

	var transport llm.Transport

	if opts.useCloud {
		var err error
		if transport, err = llm.NewTransport(ctx, cfg.LLM, req.DefaultClient()); err != nil {
			return "", err
		}
	}

	var registry matcher.Registry = matcher.AccountList{}

	if opts.useRegistry {
		storage, err := repo.Open(cfg.Storage)
		if err != nil {
			return "", err
		}

		registry = storage
	}

	pre := preprocessor.NewPreprocessor(nil)

	srv := processor.NewProcessor(&processor.Config{
		Preprocessor: pre,
		Extractors: []processor.Extractor{
			llm.NewExtractor(transport),
			parser.NewParser(nil),
		},
		Matcher:          matcher.NewMatcher(registry),
		ExtractorTimeout: opts.timeout,
	})

	msg := database.NewRawMessage(body, opts.sender, 0)

	tx, err := srv.Process(ctx, msg)
	if err != nil {
		return "", err
	}

	if tx != nil {
		tagger.NewTagger(tagger.DefaultThreshold).Apply(tx)
	}

	return printer.NewPrinter().DryRun(string(pre.Classify(msg.Body, msg.SenderAddress)), tx), nil
}
