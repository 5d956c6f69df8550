package parser

import (
	"context"
	"strings"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/skynet2/bank-sms-importer/pkg/database"
)

// Parser is the deterministic pattern extractor. It holds only the shared read-only pattern tables.
type Parser struct {
	patterns *Patterns
}

func NewParser(patterns *Patterns) *Parser {
	if patterns == nil {
		patterns = DefaultPatterns()
	}

	return &Parser{
		patterns: patterns,
	}
}

func (p *Parser) Name() string {
	return database.ExtractorPattern
}

func (p *Parser) Available() bool {
	return true
}

// Extract expects a body that already passed the preprocessor.
func (p *Parser) Extract(ctx context.Context, msg database.RawMessage) *database.Candidate {
	candidate := p.Parse(msg.Body)
	if candidate == nil {
		zerolog.Ctx(ctx).Debug().Int("body_len", len(msg.Body)).Msg("pattern extractor found no transaction")
	}

	return candidate
}

// Parse returns nil when the body does not look like a completed transaction or carries no usable amount.
func (p *Parser) Parse(body string) *database.Candidate {
	body = normalizeSpaces(body)
	if body == "" {
		return nil
	}

	if !p.IsLikelyTransaction(body) {
		return nil
	}

	amount, ok := p.ExtractAmount(body)
	if !ok {
		return nil
	}

	direction := p.ExtractDirection(body)
	merchant := p.ExtractMerchant(body)

	candidate := &database.Candidate{
		Amount:          amount,
		Direction:       direction,
		MerchantName:    merchant,
		BankHint:        p.ExtractBankHint(body),
		AccountTail:     p.ExtractAccountTail(body),
		BalanceAfter:    p.ExtractBalance(body),
		Reference:       p.ExtractReference(body),
		TransactionDate: p.ExtractDate(body),
	}

	candidate.Description = p.describe(body, candidate)

	return candidate
}

func (p *Parser) IsLikelyTransaction(body string) bool {
	if !p.hasAmount(body) {
		return false
	}

	if p.patterns.StrongKeywords.MatchString(body) {
		return true
	}

	for _, r := range p.patterns.BankShapes {
		if r.MatchString(body) {
			return true
		}
	}

	return false
}

func (p *Parser) hasAmount(body string) bool {
	for _, r := range p.patterns.Amounts {
		if r.MatchString(body) {
			return true
		}
	}

	return false
}

// ExtractAmount takes the first matching amount pattern as authoritative.
func (p *Parser) ExtractAmount(body string) (decimal.Decimal, bool) {
	for idx, r := range p.patterns.Amounts {
		for _, loc := range r.FindAllStringSubmatchIndex(body, -1) {
			if idx != p.patterns.VerbAmountIdx && p.patterns.BalanceContext.MatchString(body[:loc[0]]) {
				continue
			}

			return parseAmount(body[loc[2]:loc[3]])
		}
	}

	return decimal.Zero, false
}

// ExtractDirection defaults to debit and only flips on strictly more credit words.
func (p *Parser) ExtractDirection(body string) database.Direction {
	debits := len(p.patterns.DebitWords.FindAllStringIndex(body, -1))
	credits := len(p.patterns.CreditWords.FindAllStringIndex(body, -1))

	if credits > debits {
		return database.DirectionCredit
	}

	return database.DirectionDebit
}

func (p *Parser) ExtractBankHint(body string) string {
	for _, bank := range p.patterns.Banks {
		if bank.Regex.MatchString(body) {
			return bank.Name
		}
	}

	for _, m := range p.patterns.GenericBank.FindAllStringSubmatch(body, -1) {
		if _, skip := bankStopWords[strings.ToLower(m[1])]; skip {
			continue
		}

		return m[1]
	}

	return ""
}

func (p *Parser) ExtractAccountTail(body string) string {
	return firstGroup(p.patterns.AccountTails, body)
}

func (p *Parser) ExtractBalance(body string) decimal.NullDecimal {
	raw := firstGroup(p.patterns.Balances, body)
	if raw == "" {
		return decimal.NullDecimal{}
	}

	amount, ok := parseAmount(raw)
	if !ok {
		return decimal.NullDecimal{}
	}

	return decimal.NewNullDecimal(amount)
}

func (p *Parser) ExtractReference(body string) string {
	for _, r := range p.patterns.References {
		for _, m := range r.FindAllStringSubmatch(body, -1) {
			if len(m[1]) >= MinReferenceLen {
				return m[1]
			}
		}
	}

	return ""
}

func (p *Parser) ExtractMerchant(body string) string {
	for _, r := range p.patterns.Merchants {
		for _, m := range r.FindAllStringSubmatch(body, -1) {
			merchant := strings.Trim(strings.TrimSpace(m[1]), ".,;:-'")
			if merchant == "" || p.isGenericMerchant(merchant) {
				continue
			}

			return merchant
		}
	}

	return ""
}

func (p *Parser) isGenericMerchant(merchant string) bool {
	lower := strings.ToLower(merchant)
	if !letterRegex.MatchString(lower) || strings.Contains(lower, "a/c") {
		return true
	}

	for _, token := range strings.Fields(lower) {
		token = strings.Trim(token, ".,;:-'")
		if _, ok := p.patterns.NonMerchantWords[token]; ok {
			return true
		}

		if isMaskedNumber(token) || isAmountToken(token) {
			return true
		}
	}

	return false
}

func (p *Parser) describe(body string, candidate *database.Candidate) string {
	if candidate.MerchantName != "" {
		return candidate.MerchantName
	}

	for _, rule := range p.patterns.DescriptionRules {
		if !rule.Regex.MatchString(body) {
			continue
		}

		if candidate.Direction == database.DirectionCredit {
			return rule.Credit
		}

		return rule.Debit
	}

	if candidate.Direction == database.DirectionCredit {
		return "Credit transaction"
	}

	return "Debit transaction"
}
