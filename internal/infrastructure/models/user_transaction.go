package models

import "time"

// UserTransaction links a transaction record into a user's history.
// Position preserves insertion order; the composite key makes duplicate
// appends no-ops.
type UserTransaction struct {
	UserAddress string `gorm:"type:varchar(64);primaryKey"`
	TxHash      string `gorm:"type:varchar(66);primaryKey"`
	Position    int    `gorm:"not null"`
	CreatedAt   time.Time
}

func (UserTransaction) TableName() string {
	return "user_transactions"
}
