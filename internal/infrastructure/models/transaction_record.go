package models

import "time"

type TransactionRecord struct {
	Hash        string  `gorm:"type:varchar(66);primaryKey"`
	FromAddress string  `gorm:"type:varchar(64);not null;index"`
	ToAddress   string  `gorm:"type:varchar(64);not null"`
	Amount      float64 `gorm:"not null"`
	BlockNumber *int64
	Timestamp   time.Time `gorm:"not null"`
	CreatedAt   time.Time
}

func (TransactionRecord) TableName() string {
	return "transaction_records"
}
