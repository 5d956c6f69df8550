package preprocessor

import (
	"regexp"
)

// Rules is built once at startup and shared read-only between goroutines.
type Rules struct {
	SensitiveKeywords []string

	// SensitiveWords holds short codes that would hit inside ordinary words as substrings.
	// They match at a word start, glued digits and plurals included.
	SensitiveWords *regexp.Regexp
	OtpPatterns    []*regexp.Regexp
	Vocabulary     *regexp.Regexp
}

func DefaultRules() *Rules {
	return &Rules{
		SensitiveKeywords: []string{
			"one time password",
			"one-time password",
			"verification code",
			"security code",
			"authentication code",
			"do not share",
			"don't share",
			"never share",
			"valid for",
			"valid till",
			"expires in",
			"will be debited",
			"will be credited",
			"is due on",
			"mandate",
			"auto-debit",
			"autodebit",
			"auto debit",
			"approval required",
			"approve the request",
			"collect request",
			"your pin",
			"upi pin",
			"atm pin",
		},
		SensitiveWords: regexp.MustCompile(`(?i)\b(?:otp|cvv|mpin|tpin)(?:s\b|\b|\d)`),
		OtpPatterns: []*regexp.Regexp{
			regexp.MustCompile(`(?i)(?:otp|pin)\d{4,8}`),
			regexp.MustCompile(`(?i)\b(?:otp|pin|passcode|password|verification|verify|code|login)\b[^0-9]{0,30}\b\d{4,8}\b`),
			regexp.MustCompile(`(?i)\b\d{4,8}\b[^0-9]{0,30}\b(?:otp|passcode|password|verification|is your code)\b`),
		},
		Vocabulary: regexp.MustCompile(
			`(?i)(?:\b(?:debited|credited|withdrawn|deposited|payment|txn|upi|atm|balance|account|card|a/c|acct|rs\.?|inr)\b|₹)`,
		),
	}
}
