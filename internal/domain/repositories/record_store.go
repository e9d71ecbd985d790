package repositories

import (
	"context"

	"transfer-flow.backend/internal/domain/entities"
)

// UserRecordRepository defines user record operations. Creation is
// idempotent: upserting an address that already exists is a no-op.
type UserRecordRepository interface {
	Upsert(ctx context.Context, address string) error
	GetByAddress(ctx context.Context, address string) (*entities.UserRecord, error)
	// AppendTransaction appends a transaction reference to the user's
	// history, preserving prior entries and insertion order. Appending a
	// reference that is already present is a no-op.
	AppendTransaction(ctx context.Context, address, txHash string) error
}

// TransactionRecordRepository defines transaction record operations,
// keyed by transaction hash with idempotent-create semantics.
type TransactionRecordRepository interface {
	Upsert(ctx context.Context, record *entities.TransactionRecord) error
	GetByHash(ctx context.Context, hash string) (*entities.TransactionRecord, error)
	// ListByUser returns the transactions linked to the user, in link
	// insertion order.
	ListByUser(ctx context.Context, address string) ([]*entities.TransactionRecord, error)
}
