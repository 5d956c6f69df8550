package processor

import (
	"context"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/samber/lo"

	"github.com/skynet2/bank-sms-importer/pkg/common"
	"github.com/skynet2/bank-sms-importer/pkg/database"
)

// Processor runs a single message through preprocessing, extraction and reconciliation.
// It keeps no per-call state and is safe for concurrent use.
type Processor struct {
	cfg *Config
}

func NewProcessor(
	cfg *Config,
) *Processor {
	if cfg.Clock == nil {
		cfg.Clock = func() time.Time {
			return time.Now().UTC()
		}
	}

	return &Processor{
		cfg: cfg,
	}
}

// Process returns (nil, nil) for filtered or non-transactional messages.
// Errors only come from the account registry and are always marked retryable.
func (p *Processor) Process(
	ctx context.Context,
	msg database.RawMessage,
) (*database.Transaction, error) {
	lg := zerolog.Ctx(ctx)

	if !p.cfg.Preprocessor.ShouldProcess(msg.Body, msg.SenderAddress) {
		lg.Debug().Str("sender", msg.SenderAddress).Msg("message filtered by preprocessor")
		return nil, nil
	}

	candidate, extractorName := p.extract(ctx, msg)
	if candidate == nil {
		lg.Debug().Str("sender", msg.SenderAddress).Msg("no extractor produced a transaction")
		return nil, nil
	}

	acc, err := p.cfg.Matcher.Match(ctx, candidate.AccountTail, candidate.BankHint)
	if err != nil {
		return nil, common.Retryable(errors.Wrap(err, "failed to reconcile account"))
	}

	now := p.cfg.Clock()

	tx := &database.Transaction{
		ID:              uuid.NewString(),
		Candidate:       *candidate,
		OriginalMessage: msg.Body,
		SenderAddress:   msg.SenderAddress,
		Status:          database.StatusPending,
		ExtractedBy:     extractorName,
		ReceivedAt:      msg.ReceivedAt,
		ExtractedAt:     now,
		UpdatedAt:       now,
	}

	if acc != nil {
		tx.AccountID = acc.ID
	}

	lg.Info().
		Str("extractor", extractorName).
		Str("direction", string(tx.Direction)).
		Str("amount", tx.Amount.String()).
		Str("account_id", tx.AccountID).
		Msg("transaction extracted")

	return tx, nil
}

func (p *Processor) extract(
	ctx context.Context,
	msg database.RawMessage,
) (*database.Candidate, string) {
	for _, extractor := range p.cfg.Extractors {
		if !extractor.Available() {
			continue
		}

		candidate := p.runExtractor(ctx, extractor, msg)
		if !candidate.Valid() {
			continue
		}

		return candidate, extractor.Name()
	}

	return nil, ""
}

// runExtractor treats a timeout exactly like an empty result.
func (p *Processor) runExtractor(
	ctx context.Context,
	extractor Extractor,
	msg database.RawMessage,
) *database.Candidate {
	if p.cfg.ExtractorTimeout <= 0 {
		return extractor.Extract(ctx, msg)
	}

	callCtx, cancel := context.WithTimeout(ctx, p.cfg.ExtractorTimeout)
	defer cancel()

	result := make(chan *database.Candidate, 1)
	go func() {
		result <- extractor.Extract(callCtx, msg)
	}()

	select {
	case candidate := <-result:
		return candidate
	case <-callCtx.Done():
		zerolog.Ctx(ctx).Warn().
			Str("extractor", extractor.Name()).
			Dur("timeout", p.cfg.ExtractorTimeout).
			Msg("extractor timed out")

		return nil
	}
}

func (p *Processor) Status() ProcessingStatus {
	status := ProcessingStatus{
		Extractors: lo.SliceToMap(p.cfg.Extractors, func(e Extractor) (string, bool) {
			return e.Name(), e.Available()
		}),
	}

	status.CloudAvailable = status.Extractors[database.ExtractorCloud]
	status.PatternFallbackAvailable = status.Extractors[database.ExtractorPattern]

	return status
}
