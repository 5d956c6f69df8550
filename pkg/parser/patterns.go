package parser

import (
	"regexp"
)

const amountGroup = `(\d[\d,]*(?:\.\d{1,2})?)`

// referenceGroup needs at least one digit. Length is checked against MinReferenceLen after matching.
const referenceGroup = `([A-Za-z0-9]*\d[A-Za-z0-9]*)`

const MinReferenceLen = 6

type BankPattern struct {
	Regex *regexp.Regexp
	Name  string
}

// Patterns holds every ordered regex list used by the extractor.
// Build it once with DefaultPatterns and share the pointer.
type Patterns struct {
	StrongKeywords *regexp.Regexp
	BankShapes     []*regexp.Regexp

	Amounts        []*regexp.Regexp
	BalanceContext *regexp.Regexp
	// VerbAmountIdx points to the verb-anchored amount, the only one trusted without a balance context check.
	VerbAmountIdx int

	DebitWords  *regexp.Regexp
	CreditWords *regexp.Regexp

	Banks       []BankPattern
	GenericBank *regexp.Regexp

	AccountTails []*regexp.Regexp
	Balances     []*regexp.Regexp
	References   []*regexp.Regexp
	Merchants    []*regexp.Regexp
	Dates        []*regexp.Regexp
	DateLayouts  []string

	NonMerchantWords map[string]struct{}
	DescriptionRules []DescriptionRule
}

type DescriptionRule struct {
	Regex  *regexp.Regexp
	Debit  string
	Credit string
}

func DefaultPatterns() *Patterns {
	return &Patterns{
		StrongKeywords: regexp.MustCompile(
			`(?i)\b(?:debited|credited|withdrawn|deposited|upi|atm|neft|imps|rtgs|txn|a/c\s*no|card\s+ending|spent|purchase|transferred|sent|received)\b`,
		),
		BankShapes: []*regexp.Regexp{
			regexp.MustCompile(`(?i)\b[a-z]+\s+bank\b`),
			regexp.MustCompile(`(?i)\b(?:sbi|hdfc|icici|axis|kotak|pnb|bob|canara|idbi|idfc|indusind|federal)\b`),
			regexp.MustCompile(`(?i)\b(?:a/c|acct|account|card)\s*(?:no\.?|number)?\s*[:\-]?\s*[x*]+\d{3,}`),
			regexp.MustCompile(`(?i)\b[x*]{2,}\d{4}\b`),
		},

		Amounts: []*regexp.Regexp{
			regexp.MustCompile(`(?i)\b(?:debited|credited|withdrawn|deposited|paid|spent|received|sent|transferred|charged|refunded|payment\s+of|purchase\s+of)\s*(?:with|by|for|of|from|to)?\s*(?:rs\.?|inr|₹)\s*` + amountGroup),
			regexp.MustCompile(`(?i)(?:\brs\.?|\binr|₹)\s*` + amountGroup),
			regexp.MustCompile(`(?i)\b` + amountGroup + `\s*(?:rs\b|inr\b|₹|rupees\b)`),
		},
		BalanceContext: regexp.MustCompile(`(?i)\bbal(?:ance)?\b[^0-9]{0,15}$|\bavl\b[^0-9]{0,15}$`),
		VerbAmountIdx:  0,

		DebitWords: regexp.MustCompile(
			`(?i)\b(?:debited|debit|withdrawn|withdrawal|spent|paid|sent|purchase|purchased|charged|dr)\b`,
		),
		CreditWords: regexp.MustCompile(
			`(?i)\b(?:credited|credit|deposited|received|refund|refunded|cashback|reversed|cr)\b`,
		),

		Banks: []BankPattern{
			{Regex: regexp.MustCompile(`(?i)\b(?:sbi|state bank of india|state bank)\b`), Name: "SBI"},
			{Regex: regexp.MustCompile(`(?i)\bhdfc\b`), Name: "HDFC"},
			{Regex: regexp.MustCompile(`(?i)\bicici\b`), Name: "ICICI"},
			{Regex: regexp.MustCompile(`(?i)\baxis\b`), Name: "Axis"},
			{Regex: regexp.MustCompile(`(?i)\bkotak\b`), Name: "Kotak"},
			{Regex: regexp.MustCompile(`(?i)\b(?:pnb|punjab national bank)\b`), Name: "PNB"},
			{Regex: regexp.MustCompile(`(?i)\b(?:bob|bank of baroda)\b`), Name: "Baroda"},
			{Regex: regexp.MustCompile(`(?i)\bcanara\b`), Name: "Canara"},
			{Regex: regexp.MustCompile(`(?i)\bidfc\b`), Name: "IDFC"},
			{Regex: regexp.MustCompile(`(?i)\bidbi\b`), Name: "IDBI"},
			{Regex: regexp.MustCompile(`(?i)\byes\s+bank\b`), Name: "Yes Bank"},
			{Regex: regexp.MustCompile(`(?i)\bindusind\b`), Name: "IndusInd"},
			{Regex: regexp.MustCompile(`(?i)\bunion\s+bank\b`), Name: "Union Bank"},
			{Regex: regexp.MustCompile(`(?i)\bfederal\s+bank\b`), Name: "Federal"},
		},
		GenericBank: regexp.MustCompile(`\b([A-Z][A-Za-z]+)\s+(?i:bank)\b`),

		AccountTails: []*regexp.Regexp{
			regexp.MustCompile(`(?i)\b(?:a/c|acct|account|card)\s*(?:no\.?|number|ending\s+with|ending\s+in|ending)?\s*[:\-]?\s*[x*\d]*?(\d{4})\b`),
			regexp.MustCompile(`(?i)\b[x*]{2,}(\d{4})\b`),
			regexp.MustCompile(`(?i)\bending\s+(?:with\s+|in\s+)?(\d{4})\b`),
		},
		Balances: []*regexp.Regexp{
			regexp.MustCompile(`(?i)(?:avl|avbl|avail|available|clear|closing|total)?\.?\s*bal(?:ance)?\.?\s*(?:is|:|-|of|now)?\s*:?\s*(?:rs\.?|inr|₹)\s*` + amountGroup),
			regexp.MustCompile(`(?i)\bbal(?:ance)?\b[\s:.\-]*` + amountGroup),
		},
		References: []*regexp.Regexp{
			regexp.MustCompile(`(?i)\bupi\s*(?:ref(?:erence)?)\.?\s*(?:no\.?|number)?\s*[:.\-#]?\s*(\d{12})\b`),
			regexp.MustCompile(`(?i)\b(?:txn|transaction|trans)\s*(?:id|no\.?|ref(?:erence)?(?:\s*no\.?)?|#)\s*[:.\-#]?\s*` + referenceGroup),
			regexp.MustCompile(`(?i)\b(?:ref(?:erence)?|utr|rrn)\b\.?\s*(?:no\.?|number|id)?\s*[:.\-#]?\s*` + referenceGroup),
		},
		Merchants: []*regexp.Regexp{
			regexp.MustCompile(`(?i)\b(?:info|merchant|payee)\s*[:\-]\s*([A-Za-z0-9][A-Za-z0-9&.'_\- ]{1,40}?)(?:\s*[.,;]|\s+(?:on|ref|txn)\b|$)`),
			regexp.MustCompile(`(?i)\b(?:to|from)\s+(?:vpa\s+)?([a-z][a-z0-9._\-]*)@[a-z]+`),
			regexp.MustCompile(
				`(?i)\b(?:at|to|towards|for)\s+([A-Za-z0-9][A-Za-z0-9&.'_\-]*(?:\s+[A-Za-z0-9&'_\-][A-Za-z0-9&.'_\-]*){0,3}?)` +
					`(?:\s+(?:on|via|using|ref|txn|upi|with|from|dated|thru|through|avl|avbl|is|has|and)\b|[.,;](?:\s|$)|$)`,
			),
		},
		Dates: []*regexp.Regexp{
			regexp.MustCompile(`\b(\d{4}-\d{2}-\d{2})\b`),
			regexp.MustCompile(`\b(\d{1,2}[-/.](?:\d{1,2}|[A-Za-z]{3,9})[-/.]\d{2,4})\b`),
			regexp.MustCompile(`\b(\d{1,2}\s+[A-Za-z]{3,9},?\s+\d{2,4})\b`),
		},
		DateLayouts: []string{
			"2006-01-02",
			"02-01-2006",
			"2-1-2006",
			"02-01-06",
			"2-1-06",
			"02-Jan-2006",
			"2-Jan-2006",
			"02-Jan-06",
			"2-Jan-06",
			"02-January-2006",
			"2-January-2006",
			"02-January-06",
			"2-January-06",
		},

		NonMerchantWords: toSet(
			"bank", "card", "account", "a/c", "acct", "upi", "wallet", "paytm", "phonepe", "gpay",
			"googlepay", "your", "you", "self", "sbi", "hdfc", "icici", "axis", "kotak", "pnb",
			"ac", "atm", "balance", "credit", "debit", "rs", "inr", "neft", "imps", "rtgs",
			"reference", "ref", "purpose", "purposes", "record", "records", "information", "verification",
		),
		DescriptionRules: []DescriptionRule{
			{Regex: regexp.MustCompile(`(?i)\batm\b`), Debit: "ATM withdrawal", Credit: "ATM deposit"},
			{Regex: regexp.MustCompile(`(?i)\b(?:neft|imps|rtgs|transfer|transferred)\b`), Debit: "Bank transfer", Credit: "Bank transfer"},
			{Regex: regexp.MustCompile(`(?i)\bupi\b`), Debit: "UPI transaction", Credit: "UPI transaction"},
		},
	}
}

func toSet(words ...string) map[string]struct{} {
	final := make(map[string]struct{}, len(words))
	for _, w := range words {
		final[w] = struct{}{}
	}

	return final
}
