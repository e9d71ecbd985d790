package repositories

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"transfer-flow.backend/internal/domain/entities"
	domainerrors "transfer-flow.backend/internal/domain/errors"
	"transfer-flow.backend/internal/infrastructure/models"
)

// UserRecordRepository implements user record persistence
type UserRecordRepository struct {
	db *gorm.DB
}

// NewUserRecordRepository creates a new user record repository
func NewUserRecordRepository(db *gorm.DB) *UserRecordRepository {
	return &UserRecordRepository{db: db}
}

// Upsert creates the user record if it does not exist. An existing
// record is left untouched, never overwritten.
func (r *UserRecordRepository) Upsert(ctx context.Context, address string) error {
	m := &models.UserRecord{
		Address:     address,
		DisplayName: entities.DefaultDisplayName,
	}
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(m).Error
}

// GetByAddress gets a user record by address
func (r *UserRecordRepository) GetByAddress(ctx context.Context, address string) (*entities.UserRecord, error) {
	var m models.UserRecord
	if err := r.db.WithContext(ctx).Where("address = ?", address).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainerrors.ErrNotFound
		}
		return nil, err
	}
	return toUserEntity(&m), nil
}

// AppendTransaction appends a transaction reference to the user's
// history. The position is taken past the current tail so insertion
// order is preserved; re-appending an existing reference is a no-op.
func (r *UserRecordRepository) AppendTransaction(ctx context.Context, address, txHash string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var next int64
		if err := tx.Model(&models.UserTransaction{}).
			Where("user_address = ?", address).
			Select("COALESCE(MAX(position), -1) + 1").
			Scan(&next).Error; err != nil {
			return err
		}

		link := &models.UserTransaction{
			UserAddress: address,
			TxHash:      txHash,
			Position:    int(next),
		}
		return tx.Clauses(clause.OnConflict{DoNothing: true}).Create(link).Error
	})
}

func toUserEntity(m *models.UserRecord) *entities.UserRecord {
	return &entities.UserRecord{
		Address:     m.Address,
		DisplayName: m.DisplayName,
		CreatedAt:   m.CreatedAt,
		UpdatedAt:   m.UpdatedAt,
	}
}
