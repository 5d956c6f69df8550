package llm

import (
	"context"
	"encoding/json"
	"regexp"
	"strings"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/davecgh/go-spew/spew"
	"github.com/rs/zerolog"

	"github.com/skynet2/bank-sms-importer/pkg/database"
)

var (
	digitsRegex = regexp.MustCompile(`\d`)
	dateLayouts = []string{time.DateOnly, "02-01-2006", "02/01/2006", "2006/01/02"}
)

// Extractor delegates field extraction to a language model.
// It never returns an error: every failure collapses to a nil candidate.
type Extractor struct {
	transport Transport
	available bool
}

// NewExtractor fixes availability for the lifetime of the process. A nil transport means unavailable.
func NewExtractor(transport Transport) *Extractor {
	return &Extractor{
		transport: transport,
		available: transport != nil,
	}
}

func (e *Extractor) Name() string {
	return database.ExtractorCloud
}

func (e *Extractor) Available() bool {
	return e.available
}

func (e *Extractor) Extract(ctx context.Context, msg database.RawMessage) *database.Candidate {
	if !e.available {
		return nil
	}

	lg := zerolog.Ctx(ctx)

	raw, err := e.transport.Generate(ctx, BuildPrompt(msg.Body, msg.SenderAddress, msg.ReceivedAt))
	if err != nil {
		lg.Warn().Err(err).Msg("cloud extraction request failed")
		return nil
	}

	candidate, err := e.ParseResponse(raw)
	if err != nil {
		lg.Warn().Err(err).Msg("cloud extraction response rejected")
		return nil
	}

	return candidate
}

// ParseResponse returns (nil, nil) for an explicit "not a transaction" answer.
func (e *Extractor) ParseResponse(raw string) (*database.Candidate, error) {
	cleaned := cleanModelJSON(raw)
	if cleaned == "" {
		return nil, errors.New("empty model response")
	}

	var resp extractionResponse
	if err := json.Unmarshal([]byte(cleaned), &resp); err != nil {
		return nil, errors.Wrap(err, "failed to decode model response")
	}

	if resp.IsTransaction == nil {
		return nil, errors.Newf("model response has no is_transaction flag: %v", spew.Sdump(resp))
	}

	if !*resp.IsTransaction {
		return nil, nil
	}

	if resp.Amount == nil || !resp.Amount.IsPositive() {
		return nil, errors.Newf("model response has no positive amount: %v", spew.Sdump(resp.Amount))
	}

	direction, ok := parseDirection(resp.Type)
	if !ok {
		return nil, errors.Newf("unexpected transaction type %q", resp.Type)
	}

	candidate := &database.Candidate{
		Amount:          *resp.Amount,
		Direction:       direction,
		MerchantName:    strings.TrimSpace(resp.Merchant),
		BankHint:        strings.TrimSpace(resp.Bank),
		AccountTail:     normalizeTail(resp.AccountLast4),
		Reference:       strings.TrimSpace(resp.Reference),
		TransactionDate: parseDate(resp.Date),
		Description:     strings.TrimSpace(resp.Description),
	}

	if resp.Balance.Valid {
		candidate.BalanceAfter = resp.Balance
	}

	if candidate.Description == "" {
		candidate.Description = candidate.MerchantName
	}

	if candidate.Description == "" {
		candidate.Description = defaultDescription(direction)
	}

	return candidate, nil
}

func parseDirection(raw string) (database.Direction, bool) {
	switch strings.ToUpper(strings.TrimSpace(raw)) {
	case string(database.DirectionDebit):
		return database.DirectionDebit, true
	case string(database.DirectionCredit):
		return database.DirectionCredit, true
	default:
		return "", false
	}
}

func normalizeTail(raw string) string {
	digits := strings.Join(digitsRegex.FindAllString(raw, -1), "")
	if len(digits) < 4 {
		return ""
	}

	return digits[len(digits)-4:]
}

func parseDate(raw string) *time.Time {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil
	}

	for _, layout := range dateLayouts {
		if parsed, err := time.ParseInLocation(layout, raw, time.UTC); err == nil {
			return &parsed
		}
	}

	return nil
}

func defaultDescription(direction database.Direction) string {
	if direction == database.DirectionCredit {
		return "Credit transaction"
	}

	return "Debit transaction"
}
