package common

import "github.com/cockroachdb/errors"

var (
	ErrDuplicate = errors.New("duplicate transaction")
	// ErrRetryable marks failures the scheduler may retry. Nothing is persisted when it is returned.
	ErrRetryable = errors.New("retryable failure")
)

func Retryable(err error) error {
	if err == nil {
		return nil
	}

	return errors.Mark(err, ErrRetryable)
}

func IsRetryable(err error) bool {
	return errors.Is(err, ErrRetryable)
}
