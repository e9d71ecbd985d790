package usecases

import (
	"context"
	"errors"
	"fmt"
	"math/big"
	"strings"
	"sync"
	"time"

	"github.com/volatiletech/null/v8"
	"go.uber.org/zap"
	"transfer-flow.backend/internal/domain/entities"
	domainerrors "transfer-flow.backend/internal/domain/errors"
	"transfer-flow.backend/internal/domain/repositories"
	"transfer-flow.backend/internal/infrastructure/blockchain"
	"transfer-flow.backend/internal/infrastructure/wallet"
	"transfer-flow.backend/pkg/logger"
)

// WalletGateway is the wallet provider boundary consumed by the
// orchestrator.
type WalletGateway interface {
	RequestAccounts(ctx context.Context) (entities.Account, error)
	GetAccounts(ctx context.Context) (entities.Account, error)
	SendTransaction(ctx context.Context, params wallet.TxParams) (string, error)
}

// PendingHandle is a broadcast submission awaiting finality.
type PendingHandle interface {
	Hash() string
	AwaitConfirmation(ctx context.Context) (*blockchain.Confirmation, error)
}

// ContractClient publishes transfers to the registry contract.
type ContractClient interface {
	PublishTransaction(ctx context.Context, from entities.Account, to string, amount *big.Int, memo string, kind entities.TransferKind) (PendingHandle, error)
}

// SessionSnapshot is the UI-facing view of orchestrator state. The
// loading flag is derived from the state, never stored separately.
type SessionSnapshot struct {
	State     entities.SessionState `json:"state"`
	Account   entities.Account      `json:"account"`
	Form      entities.TransferForm `json:"form"`
	IsLoading bool                  `json:"isLoading"`
}

// TransactionOrchestrator owns the per-session connection and
// submission state machine. Collaborators only return values; all state
// mutation happens here, under the mutex. The lock is released across
// suspension points (wallet prompts, confirmation wait, persistence) so
// form edits stay live while a submission is in flight.
type TransactionOrchestrator struct {
	mu         sync.Mutex
	state      entities.SessionState
	account    entities.Account
	form       entities.TransferForm
	pending    *entities.PendingTransaction
	connecting bool
	observers  []func(entities.StateChange)

	gateway  WalletGateway
	contract ContractClient
	users    repositories.UserRecordRepository
	txs      repositories.TransactionRecordRepository
}

// NewTransactionOrchestrator creates a new orchestrator in the
// Disconnected state. The gateway is injected explicitly; there is no
// ambient provider binding.
func NewTransactionOrchestrator(
	gateway WalletGateway,
	contract ContractClient,
	users repositories.UserRecordRepository,
	txs repositories.TransactionRecordRepository,
) *TransactionOrchestrator {
	return &TransactionOrchestrator{
		state:    entities.StateDisconnected,
		gateway:  gateway,
		contract: contract,
		users:    users,
		txs:      txs,
	}
}

// Subscribe registers an observer for state transitions. The navigation
// adapter uses this to reflect the loading state into the URL without
// coupling the orchestrator to any routing layer.
func (o *TransactionOrchestrator) Subscribe(fn func(entities.StateChange)) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.observers = append(o.observers, fn)
}

// Connect acquires a wallet connection interactively. Already connected
// is a no-op. A declined prompt leaves the session Disconnected without
// an error; a missing provider surfaces ErrProviderMissing for the UI
// to turn into an install prompt.
func (o *TransactionOrchestrator) Connect(ctx context.Context) (entities.Account, error) {
	o.mu.Lock()
	if o.state != entities.StateDisconnected {
		account := o.account
		o.mu.Unlock()
		return account, nil
	}
	// Only one wallet prompt at a time; a concurrent connect attempt is
	// a no-op while the first is outstanding.
	if o.connecting {
		o.mu.Unlock()
		return "", nil
	}
	o.connecting = true
	o.mu.Unlock()
	defer o.clearConnecting()

	account, err := o.gateway.RequestAccounts(ctx)
	if err != nil {
		if errors.Is(err, domainerrors.ErrUserRejected) {
			logger.Debug(ctx, "wallet connect declined by user")
			return "", nil
		}
		return "", err
	}

	o.setConnected(account)

	// User record creation is an awaited step of the connect sequence,
	// not a fire-and-forget watcher. A store failure degrades to a
	// warning; the wallet connection itself stands.
	if err := o.users.Upsert(ctx, string(account)); err != nil {
		logger.Warn(ctx, "user record upsert failed", zap.String("address", string(account)), zap.Error(err))
	}
	return account, nil
}

// ReconnectSilently restores an already-authorized connection without
// prompting, typically on session startup. No account means stay
// Disconnected, which is not an error.
func (o *TransactionOrchestrator) ReconnectSilently(ctx context.Context) (entities.Account, error) {
	o.mu.Lock()
	if o.state != entities.StateDisconnected {
		account := o.account
		o.mu.Unlock()
		return account, nil
	}
	if o.connecting {
		o.mu.Unlock()
		return "", nil
	}
	o.connecting = true
	o.mu.Unlock()
	defer o.clearConnecting()

	account, err := o.gateway.GetAccounts(ctx)
	if err != nil {
		return "", err
	}
	if account.IsZero() {
		return "", nil
	}

	o.setConnected(account)

	if err := o.users.Upsert(ctx, string(account)); err != nil {
		logger.Warn(ctx, "user record upsert failed", zap.String("address", string(account)), zap.Error(err))
	}
	return account, nil
}

// UpdateForm applies a single field edit. Permitted in any state; an
// in-flight submission works from a copy frozen at submit time, so
// edits never leak into it.
func (o *TransactionOrchestrator) UpdateForm(field, value string) error {
	o.mu.Lock()
	defer o.mu.Unlock()

	switch field {
	case "addressTo":
		o.form.AddressTo = value
	case "amount":
		o.form.Amount = value
	default:
		return fmt.Errorf("%w: unknown form field %q", domainerrors.ErrInvalidInput, field)
	}
	return nil
}

// Submit runs the full submission sequence: validate, broadcast the
// value transfer, publish to the registry contract, await confirmation,
// persist the record and link it to the sender. Exactly one submission
// may be in flight; every failure path reverts to Connected.
func (o *TransactionOrchestrator) Submit(ctx context.Context) (*entities.TransactionRecord, error) {
	o.mu.Lock()
	if o.state.InFlight() {
		o.mu.Unlock()
		return nil, domainerrors.ErrAlreadyInProgress
	}
	if o.state != entities.StateConnected {
		// UI is expected to disable submission while disconnected.
		o.mu.Unlock()
		logger.Debug(ctx, "submit ignored while disconnected")
		return nil, nil
	}
	form := o.form
	account := o.account

	// Validation is pure, so it runs under the lock and causes no state
	// change on failure. The transition to Submitting happens in the
	// same critical section as the in-flight check; a concurrent Submit
	// observes Submitting and gets ErrAlreadyInProgress.
	if strings.TrimSpace(form.AddressTo) == "" {
		o.mu.Unlock()
		return nil, fmt.Errorf("%w: recipient address is required", domainerrors.ErrInvalidInput)
	}
	amountWei, err := wallet.ParseEther(form.Amount)
	if err != nil {
		o.mu.Unlock()
		return nil, err
	}

	o.state = entities.StateSubmitting
	o.pending = nil
	change := entities.StateChange{State: o.state, Account: o.account}
	observers := append([]func(entities.StateChange){}, o.observers...)
	o.mu.Unlock()
	o.publish(observers, change)
	transfersSubmittedTotal.Inc()

	// The wallet signs and broadcasts the value transfer first, then
	// the registry publication, mirroring the original flow.
	if _, err := o.gateway.SendTransaction(ctx, wallet.TxParams{
		From:  account,
		To:    form.AddressTo,
		Value: amountWei,
	}); err != nil {
		o.transition(entities.StateConnected, nil)
		transferFailuresTotal.WithLabelValues("submission").Inc()
		return nil, fmt.Errorf("%w: %v", domainerrors.ErrSubmissionFailed, err)
	}

	memo := fmt.Sprintf("Transferring ETH %s to %s", form.Amount, form.AddressTo)
	pending, err := o.contract.PublishTransaction(ctx, account, form.AddressTo, amountWei, memo, entities.TransferKindTransfer)
	if err != nil {
		o.transition(entities.StateConnected, nil)
		transferFailuresTotal.WithLabelValues("submission").Inc()
		return nil, fmt.Errorf("%w: %v", domainerrors.ErrSubmissionFailed, err)
	}

	o.transition(entities.StateConfirming, &entities.PendingTransaction{
		Hash:        pending.Hash(),
		FromAddress: account,
		ToAddress:   form.AddressTo,
		Amount:      form.Amount,
	})

	confirmation, err := pending.AwaitConfirmation(ctx)
	if err != nil {
		// The transaction may or may not have landed on-chain; that
		// ambiguity is surfaced to the caller, never resolved here.
		o.transition(entities.StateConnected, nil)
		transferFailuresTotal.WithLabelValues("confirmation").Inc()
		return nil, err
	}

	record := &entities.TransactionRecord{
		Hash:        confirmation.Hash,
		FromAddress: string(account),
		ToAddress:   form.AddressTo,
		Amount:      wallet.ToEther(amountWei),
		BlockNumber: null.Int64From(confirmation.BlockNumber),
		Timestamp:   time.Now().UTC(),
	}

	// Persistence is strictly sequenced: user, then record, then link,
	// so a reader never observes a link to a nonexistent transaction.
	if err := o.persistConfirmed(ctx, account, record); err != nil {
		o.transition(entities.StateConnected, nil)
		transferFailuresTotal.WithLabelValues("persistence").Inc()
		return nil, fmt.Errorf("%w: %v", domainerrors.ErrPersistenceFailed, err)
	}

	o.mu.Lock()
	o.form = entities.TransferForm{}
	o.pending = nil
	o.state = entities.StateConnected
	change = entities.StateChange{State: o.state, Account: o.account}
	observers = append([]func(entities.StateChange){}, o.observers...)
	o.mu.Unlock()
	o.publish(observers, change)

	transfersConfirmedTotal.Inc()
	logger.Info(ctx, "transfer confirmed",
		zap.String("hash", record.Hash),
		zap.String("from", record.FromAddress),
		zap.String("to", record.ToAddress),
	)
	return record, nil
}

func (o *TransactionOrchestrator) persistConfirmed(ctx context.Context, account entities.Account, record *entities.TransactionRecord) error {
	if err := o.users.Upsert(ctx, string(account)); err != nil {
		return err
	}
	if err := o.txs.Upsert(ctx, record); err != nil {
		return err
	}
	return o.users.AppendTransaction(ctx, string(account), record.Hash)
}

// Snapshot returns the UI-facing view of the current state.
func (o *TransactionOrchestrator) Snapshot() SessionSnapshot {
	o.mu.Lock()
	defer o.mu.Unlock()
	return SessionSnapshot{
		State:     o.state,
		Account:   o.account,
		Form:      o.form,
		IsLoading: o.state.InFlight(),
	}
}

// State returns the current state machine state.
func (o *TransactionOrchestrator) State() entities.SessionState {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.state
}

// Account returns the connected account, if any.
func (o *TransactionOrchestrator) Account() entities.Account {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.account
}

// FormData returns the current form values.
func (o *TransactionOrchestrator) FormData() entities.TransferForm {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.form
}

// IsLoading reports whether a submission is in flight. Always derived
// from the state machine.
func (o *TransactionOrchestrator) IsLoading() bool {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.state.InFlight()
}

func (o *TransactionOrchestrator) clearConnecting() {
	o.mu.Lock()
	o.connecting = false
	o.mu.Unlock()
}

func (o *TransactionOrchestrator) setConnected(account entities.Account) {
	o.mu.Lock()
	o.account = account
	o.state = entities.StateConnected
	change := entities.StateChange{State: o.state, Account: o.account}
	observers := append([]func(entities.StateChange){}, o.observers...)
	o.mu.Unlock()
	o.publish(observers, change)
}

func (o *TransactionOrchestrator) transition(state entities.SessionState, pending *entities.PendingTransaction) {
	o.mu.Lock()
	o.state = state
	o.pending = pending
	change := entities.StateChange{State: o.state, Account: o.account}
	observers := append([]func(entities.StateChange){}, o.observers...)
	o.mu.Unlock()
	o.publish(observers, change)
}

// publish runs outside the lock so observers may call back into the
// orchestrator.
func (o *TransactionOrchestrator) publish(observers []func(entities.StateChange), change entities.StateChange) {
	for _, fn := range observers {
		fn(change)
	}
}
