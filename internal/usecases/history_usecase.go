package usecases

import (
	"context"

	"transfer-flow.backend/internal/domain/entities"
	"transfer-flow.backend/internal/domain/repositories"
)

// HistoryUsecase reads persisted users and their transaction history
type HistoryUsecase struct {
	users repositories.UserRecordRepository
	txs   repositories.TransactionRecordRepository
}

// NewHistoryUsecase creates a new history usecase
func NewHistoryUsecase(users repositories.UserRecordRepository, txs repositories.TransactionRecordRepository) *HistoryUsecase {
	return &HistoryUsecase{users: users, txs: txs}
}

// GetUser gets a user record by address
func (u *HistoryUsecase) GetUser(ctx context.Context, address string) (*entities.UserRecord, error) {
	return u.users.GetByAddress(ctx, address)
}

// GetHistory returns a user together with their confirmed transactions
// in insertion order. Only transactions with both a record and a link
// are visible.
func (u *HistoryUsecase) GetHistory(ctx context.Context, address string) (*entities.UserHistory, error) {
	user, err := u.users.GetByAddress(ctx, address)
	if err != nil {
		return nil, err
	}

	transactions, err := u.txs.ListByUser(ctx, address)
	if err != nil {
		return nil, err
	}

	return &entities.UserHistory{User: user, Transactions: transactions}, nil
}
