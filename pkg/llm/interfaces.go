package llm

import (
	"context"
)

//go:generate mockgen -destination interfaces_mocks_test.go -package llm_test -source=interfaces.go

// Transport sends a prompt to a language model and returns its raw text answer.
type Transport interface {
	Generate(ctx context.Context, prompt string) (string, error)
}
