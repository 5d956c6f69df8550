package llm

import (
	"fmt"
	"strings"
	"time"
)

const promptTemplate = `You extract bank transactions from SMS messages.

Rules:
- Only extract COMPLETED, past-tense transactions (money already debited or credited).
- Messages with OTPs, verification codes, pending, scheduled, future-dated, mandate or payment request wording are NOT transactions.
- Promotional messages and balance-only alerts are NOT transactions.
- "amount" must be a positive number without currency symbols or thousands separators.
- "type" must be "DEBIT" or "CREDIT".
- "account_last4" holds the last 4 digits of the account or card, or null.
- "date" uses YYYY-MM-DD, or null when the message has no date.
- Unknown fields are null.

Respond with raw JSON only, no markdown, using exactly this shape:
{"is_transaction": true, "amount": 0, "type": "DEBIT", "merchant": null, "bank": null, "account_last4": null, "balance": null, "reference": null, "date": null, "description": null}

If the message is not a completed transaction respond with:
{"is_transaction": false}

Sender: %s
Received at: %s
Message:
%s`

func BuildPrompt(body string, sender string, receivedAt time.Time) string {
	return fmt.Sprintf(promptTemplate, sender, receivedAt.UTC().Format(time.RFC3339), strings.TrimSpace(body))
}

// cleanModelJSON strips markdown fences and anything outside the outermost object.
func cleanModelJSON(raw string) string {
	s := strings.TrimSpace(raw)

	if strings.HasPrefix(s, "```") {
		if idx := strings.Index(s, "\n"); idx != -1 {
			s = s[idx+1:]
		} else {
			s = strings.TrimPrefix(s, "```json")
			s = strings.TrimPrefix(s, "```")
		}
	}

	if idx := strings.LastIndex(s, "```"); idx != -1 {
		s = s[:idx]
	}

	s = strings.TrimSpace(s)

	if start := strings.Index(s, "{"); start != -1 {
		if end := strings.LastIndex(s, "}"); end > start {
			s = s[start : end+1]
		}
	}

	return s
}
