package parser

import (
	"regexp"
	"strings"

	"github.com/shopspring/decimal"
)

var (
	maskedNumberRegex = regexp.MustCompile(`^[x*]{2,}\d*$|^\d{4,}$`)
	amountTokenRegex  = regexp.MustCompile(`^(?:rs\.?|inr|₹)\s*\d`)
	letterRegex       = regexp.MustCompile(`[A-Za-z]`)

	bankStopWords = map[string]struct{}{
		"your": {}, "the": {}, "my": {}, "our": {}, "any": {}, "this": {}, "same": {},
		"other": {}, "net": {}, "mobile": {}, "internet": {}, "beneficiary": {}, "payee": {},
	}
)

func normalizeSpaces(input string) string {
	return strings.Join(strings.Fields(input), " ")
}

func parseAmount(raw string) (decimal.Decimal, bool) {
	amount, err := decimal.NewFromString(strings.ReplaceAll(raw, ",", ""))
	if err != nil {
		return decimal.Zero, false
	}

	if !amount.IsPositive() {
		return decimal.Zero, false
	}

	return amount, true
}

func firstGroup(patterns []*regexp.Regexp, body string) string {
	for _, r := range patterns {
		m := r.FindStringSubmatch(body)
		if len(m) < 2 || m[1] == "" {
			continue
		}

		return m[1]
	}

	return ""
}

func isMaskedNumber(token string) bool {
	return maskedNumberRegex.MatchString(token)
}

func isAmountToken(token string) bool {
	return amountTokenRegex.MatchString(token)
}
