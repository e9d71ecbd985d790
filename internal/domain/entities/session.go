package entities

// Account is a chain address as reported by the wallet provider. It is
// treated as opaque; case sensitivity is whatever the chain defines.
type Account string

// IsZero reports whether no account is connected.
func (a Account) IsZero() bool {
	return a == ""
}

// SessionState represents the orchestrator state machine
type SessionState string

const (
	StateDisconnected SessionState = "DISCONNECTED"
	StateConnected    SessionState = "CONNECTED"
	StateSubmitting   SessionState = "SUBMITTING"
	StateConfirming   SessionState = "CONFIRMING"
)

// InFlight reports whether a submission is currently being processed.
// The UI derives its loading view from this, never from separate state.
func (s SessionState) InFlight() bool {
	return s == StateSubmitting || s == StateConfirming
}

// TransferKind represents the kind of published transaction
type TransferKind string

const (
	TransferKindTransfer TransferKind = "TRANSFER"
)

// TransferForm holds the user-editable transfer inputs. Validation is
// deferred to submission time.
type TransferForm struct {
	AddressTo string `json:"addressTo"`
	Amount    string `json:"amount"`
}

// UpdateFormInput represents a single form field edit
type UpdateFormInput struct {
	Field string `json:"field" binding:"required,oneof=addressTo amount"`
	Value string `json:"value"`
}

// PendingTransaction is the in-memory record of a submission between
// broadcast and confirmation. It never outlives the submit flow.
type PendingTransaction struct {
	Hash        string
	FromAddress Account
	ToAddress   string
	Amount      string
}

// StateChange is emitted to observers on every orchestrator transition.
type StateChange struct {
	State   SessionState
	Account Account
}
