package preprocessor

import (
	"strings"
)

type Verdict string

const (
	VerdictAccepted         = Verdict("accepted")
	VerdictSensitive        = Verdict("sensitive")
	VerdictNonTransactional = Verdict("non_transactional")
)

type Preprocessor struct {
	rules *Rules
}

func NewPreprocessor(rules *Rules) *Preprocessor {
	if rules == nil {
		rules = DefaultRules()
	}

	return &Preprocessor{
		rules: rules,
	}
}

func (p *Preprocessor) ShouldProcess(body string, senderAddress string) bool {
	return p.Classify(body, senderAddress) == VerdictAccepted
}

// Classify never looks at the sender: banks share short codes with OTP traffic.
func (p *Preprocessor) Classify(body string, _ string) Verdict {
	if strings.TrimSpace(body) == "" {
		return VerdictNonTransactional
	}

	if p.IsSensitive(body) {
		return VerdictSensitive
	}

	if !p.rules.Vocabulary.MatchString(body) {
		return VerdictNonTransactional
	}

	return VerdictAccepted
}

func (p *Preprocessor) IsSensitive(body string) bool {
	lower := strings.ToLower(body)

	for _, keyword := range p.rules.SensitiveKeywords {
		if strings.Contains(lower, keyword) {
			return true
		}
	}

	if p.rules.SensitiveWords.MatchString(body) {
		return true
	}

	for _, pattern := range p.rules.OtpPatterns {
		if pattern.MatchString(body) {
			return true
		}
	}

	return false
}
