package processor

import (
	"context"

	"github.com/skynet2/bank-sms-importer/pkg/database"
)

//go:generate mockgen -destination interfaces_mocks_test.go -package processor_test -source=interfaces.go
//go:generate mockgen -destination transport_mocks_test.go -package processor_test github.com/skynet2/bank-sms-importer/pkg/llm Transport

type Preprocessor interface {
	ShouldProcess(body string, senderAddress string) bool
}

// Extractor is one extraction tier. Extract returns nil when it could not produce a candidate.
type Extractor interface {
	Name() string
	Available() bool
	Extract(ctx context.Context, msg database.RawMessage) *database.Candidate
}

type AccountMatcher interface {
	Match(ctx context.Context, tail string, bankHint string) (*database.Account, error)
}
