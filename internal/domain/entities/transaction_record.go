package entities

import (
	"time"

	"github.com/volatiletech/null/v8"
)

// TransactionRecord is the durable record of a confirmed transfer.
// The transaction hash is the record identity; creation is idempotent.
type TransactionRecord struct {
	Hash        string     `json:"txHash"`
	FromAddress string     `json:"fromAddress"`
	ToAddress   string     `json:"toAddress"`
	Amount      float64    `json:"amount"`
	BlockNumber null.Int64 `json:"blockNumber,omitempty"`
	Timestamp   time.Time  `json:"timestamp"`
	CreatedAt   time.Time  `json:"createdAt"`
}
