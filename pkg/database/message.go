package database

import (
	"time"
)

// RawMessage is a single inbound SMS event. It is never stored as-is.
type RawMessage struct {
	Body          string    `json:"body"`
	SenderAddress string    `json:"senderAddress"`
	ReceivedAt    time.Time `json:"receivedAt"`
}

func NewRawMessage(body string, sender string, timestampMillis int64) RawMessage {
	receivedAt := time.Now().UTC()
	if timestampMillis > 0 {
		receivedAt = time.UnixMilli(timestampMillis).UTC()
	}

	return RawMessage{
		Body:          body,
		SenderAddress: sender,
		ReceivedAt:    receivedAt,
	}
}
