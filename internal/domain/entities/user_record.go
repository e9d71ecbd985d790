package entities

import "time"

// DefaultDisplayName is assigned when a user record is first created.
const DefaultDisplayName = "Unnamed"

// UserRecord is the durable record of a wallet account. The address is
// the record identity; creation is idempotent.
type UserRecord struct {
	Address     string    `json:"address"`
	DisplayName string    `json:"displayName"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// UserHistory is a user record together with its confirmed transactions
// in insertion order.
type UserHistory struct {
	User         *UserRecord          `json:"user"`
	Transactions []*TransactionRecord `json:"transactions"`
}
