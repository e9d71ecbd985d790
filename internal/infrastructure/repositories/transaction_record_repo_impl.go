package repositories

import (
	"context"
	"errors"

	"github.com/volatiletech/null/v8"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"transfer-flow.backend/internal/domain/entities"
	domainerrors "transfer-flow.backend/internal/domain/errors"
	"transfer-flow.backend/internal/infrastructure/models"
)

// TransactionRecordRepository implements transaction record persistence
type TransactionRecordRepository struct {
	db *gorm.DB
}

// NewTransactionRecordRepository creates a new transaction record repository
func NewTransactionRecordRepository(db *gorm.DB) *TransactionRecordRepository {
	return &TransactionRecordRepository{db: db}
}

// Upsert creates the transaction record keyed by hash if it does not
// exist. A record that already exists is never overwritten.
func (r *TransactionRecordRepository) Upsert(ctx context.Context, record *entities.TransactionRecord) error {
	m := &models.TransactionRecord{
		Hash:        record.Hash,
		FromAddress: record.FromAddress,
		ToAddress:   record.ToAddress,
		Amount:      record.Amount,
		BlockNumber: record.BlockNumber.Ptr(),
		Timestamp:   record.Timestamp,
	}
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(m).Error
}

// GetByHash gets a transaction record by hash
func (r *TransactionRecordRepository) GetByHash(ctx context.Context, hash string) (*entities.TransactionRecord, error) {
	var m models.TransactionRecord
	if err := r.db.WithContext(ctx).Where("hash = ?", hash).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainerrors.ErrNotFound
		}
		return nil, err
	}
	return toTransactionEntity(&m), nil
}

// ListByUser lists the transactions linked to the user's history, in
// link insertion order. Only linked records are visible here, so a
// reader never observes a half-persisted submission.
func (r *TransactionRecordRepository) ListByUser(ctx context.Context, address string) ([]*entities.TransactionRecord, error) {
	var txModels []models.TransactionRecord
	err := r.db.WithContext(ctx).
		Joins("JOIN user_transactions ut ON ut.tx_hash = transaction_records.hash").
		Where("ut.user_address = ?", address).
		Order("ut.position ASC").
		Find(&txModels).Error
	if err != nil {
		return nil, err
	}

	records := make([]*entities.TransactionRecord, 0, len(txModels))
	for _, m := range txModels {
		model := m
		records = append(records, toTransactionEntity(&model))
	}
	return records, nil
}

func toTransactionEntity(m *models.TransactionRecord) *entities.TransactionRecord {
	return &entities.TransactionRecord{
		Hash:        m.Hash,
		FromAddress: m.FromAddress,
		ToAddress:   m.ToAddress,
		Amount:      m.Amount,
		BlockNumber: null.Int64FromPtr(m.BlockNumber),
		Timestamp:   m.Timestamp,
		CreatedAt:   m.CreatedAt,
	}
}
