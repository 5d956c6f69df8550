package worker

import (
	"context"

	"github.com/cockroachdb/errors"
	"github.com/gammazero/workerpool"
	"github.com/rs/zerolog"

	"github.com/skynet2/bank-sms-importer/pkg/common"
	"github.com/skynet2/bank-sms-importer/pkg/database"
)

const defaultConcurrency = 4

type Worker struct {
	cfg *Config
}

func NewWorker(cfg *Config) *Worker {
	if cfg.Concurrency <= 0 {
		cfg.Concurrency = defaultConcurrency
	}

	return &Worker{
		cfg: cfg,
	}
}

// Handle takes one message through dedup, extraction, tagging and storage.
// Any returned error is marked retryable and nothing was persisted for the message.
func (w *Worker) Handle(
	ctx context.Context,
	msg database.RawMessage,
) (*Result, error) {
	lg := zerolog.Ctx(ctx).With().Str("sender", msg.SenderAddress).Logger()
	ctx = lg.WithContext(ctx)

	result := &Result{
		Message: msg,
	}

	key := w.cfg.DuplicateCleaner.Key(msg)

	if key != "" {
		dup, err := w.cfg.DuplicateCleaner.IsDuplicate(ctx, key)
		if err != nil {
			return w.fail(result, common.Retryable(errors.Wrap(err, "failed to check duplicates")))
		}

		if dup {
			lg.Info().Msg("duplicate message skipped")

			result.Outcome = OutcomeDuplicate
			return result, nil
		}
	}

	tx, err := w.cfg.Processor.Process(ctx, msg)
	if err != nil {
		return w.fail(result, common.Retryable(err))
	}

	if tx == nil {
		result.Outcome = OutcomeFiltered
		return result, nil
	}

	if w.cfg.Tagger.Apply(tx) {
		lg.Debug().Str("category", tx.Category).Msg("low value transaction tagged")
	}

	tx.DeduplicationKey = key
	result.Transaction = tx

	if err = w.cfg.Repo.AddTransaction(ctx, tx); err != nil {
		if errors.Is(err, common.ErrDuplicate) {
			lg.Info().Str("transaction_id", tx.ID).Msg("transaction already stored")

			result.Outcome = OutcomeDuplicate
			return result, nil
		}

		return w.fail(result, common.Retryable(errors.Wrap(err, "failed to store transaction")))
	}

	result.Outcome = OutcomeStored

	w.notify(ctx, tx)

	return result, nil
}

func (w *Worker) fail(result *Result, err error) (*Result, error) {
	result.Outcome = OutcomeFailed
	result.Error = err

	return result, err
}

func (w *Worker) notify(ctx context.Context, tx *database.Transaction) {
	if w.cfg.NotificationSvc == nil || w.cfg.ChatID == 0 {
		return
	}

	if err := w.cfg.NotificationSvc.SendMessage(ctx, w.cfg.ChatID, w.cfg.Printer.Transaction(tx)); err != nil {
		zerolog.Ctx(ctx).Error().Err(err).Str("transaction_id", tx.ID).Msg("failed to send notification")
	}
}

// ProcessBatch returns one result per message in input order. Failures stay inside the results.
func (w *Worker) ProcessBatch(
	ctx context.Context,
	messages []database.RawMessage,
) []*Result {
	results := make([]*Result, len(messages))

	pool := workerpool.New(w.cfg.Concurrency)

	for i, msg := range messages {
		pool.Submit(func() {
			results[i], _ = w.Handle(ctx, msg)
		})
	}

	pool.StopWait()

	return results
}
