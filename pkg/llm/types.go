package llm

import (
	"github.com/shopspring/decimal"
)

type extractionResponse struct {
	IsTransaction *bool               `json:"is_transaction"`
	Amount        *decimal.Decimal    `json:"amount"`
	Type          string              `json:"type"`
	Merchant      string              `json:"merchant"`
	Bank          string              `json:"bank"`
	AccountLast4  string              `json:"account_last4"`
	Balance       decimal.NullDecimal `json:"balance"`
	Reference     string              `json:"reference"`
	Date          string              `json:"date"`
	Description   string              `json:"description"`
}

type generateRequest struct {
	Contents         []content        `json:"contents"`
	GenerationConfig generationConfig `json:"generationConfig"`
}

type content struct {
	Role  string `json:"role,omitempty"`
	Parts []part `json:"parts"`
}

type part struct {
	Text string `json:"text"`
}

type generationConfig struct {
	Temperature      float64 `json:"temperature"`
	ResponseMimeType string  `json:"responseMimeType"`
}

type generateResponse struct {
	Candidates []struct {
		Content content `json:"content"`
	} `json:"candidates"`
}
