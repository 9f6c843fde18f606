package service

import (
	"context"
	"time"
)

const (
	EventTransactionConfirmed = "transaction.confirmed"
	EventTransactionPaid      = "transaction.paid"
)

type TransactionEvent struct {
	Name            string    `json:"name"`
	TransactionType string    `json:"transaction_type"`
	TransactionID   int64     `json:"id"`
	TransactionRef  string    `json:"transaction_id"`
	ExternalID      *string   `json:"external_id"`
	Amount          string    `json:"amount"`
	OccurredAt      time.Time `json:"occurred_at"`
}

// EventSink receives lifecycle events after a transaction reaches a terminal
// confirmed state. Emission happens at most once per transaction, inside the
// confirmation lock.
type EventSink interface {
	Emit(ctx context.Context, event TransactionEvent) error
}
