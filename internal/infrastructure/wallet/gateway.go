package wallet

import (
	"context"
	"errors"
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/rpc"
	"transfer-flow.backend/internal/domain/entities"
	domainerrors "transfer-flow.backend/internal/domain/errors"
)

// userRejectedCode is the provider rejection code for a user declining
// a prompt (EIP-1193).
const userRejectedCode = 4001

// DefaultGasLimit is the fixed gas ceiling attached to every transfer
// (0x7ef40).
const DefaultGasLimit = 520000

// TxParams describes a transfer-shaped payload handed to the provider
// for signing and broadcast.
type TxParams struct {
	From  entities.Account
	To    string
	Value *big.Int // smallest chain unit
	Data  []byte
}

type sendTxArgs struct {
	From  string `json:"from"`
	To    string `json:"to"`
	Gas   string `json:"gas"`
	Value string `json:"value,omitempty"`
	Data  string `json:"data,omitempty"`
}

// Gateway wraps the injected wallet provider. A nil provider models a
// missing wallet extension.
type Gateway struct {
	provider Provider
	gasLimit uint64
}

// NewGateway creates a new wallet gateway. gasLimit zero falls back to
// the default ceiling.
func NewGateway(provider Provider, gasLimit uint64) *Gateway {
	if gasLimit == 0 {
		gasLimit = DefaultGasLimit
	}
	return &Gateway{provider: provider, gasLimit: gasLimit}
}

// RequestAccounts prompts the user for account access and suspends
// until they respond. A declined prompt maps to ErrUserRejected.
func (g *Gateway) RequestAccounts(ctx context.Context) (entities.Account, error) {
	if g.provider == nil {
		return "", domainerrors.ErrProviderMissing
	}

	var accounts []string
	if err := g.provider.Request(ctx, &accounts, "eth_requestAccounts"); err != nil {
		var rpcErr rpc.Error
		if errors.As(err, &rpcErr) && rpcErr.ErrorCode() == userRejectedCode {
			return "", domainerrors.ErrUserRejected
		}
		return "", fmt.Errorf("%w: %v", domainerrors.ErrProviderFault, err)
	}
	if len(accounts) == 0 {
		return "", fmt.Errorf("%w: provider returned no accounts", domainerrors.ErrProviderFault)
	}
	return entities.Account(accounts[0]), nil
}

// GetAccounts returns the already-authorized account without prompting.
// An empty result is not an error; it simply means nothing to reconnect.
// The rejection-code special case does not apply to this silent path.
func (g *Gateway) GetAccounts(ctx context.Context) (entities.Account, error) {
	if g.provider == nil {
		return "", domainerrors.ErrProviderMissing
	}

	var accounts []string
	if err := g.provider.Request(ctx, &accounts, "eth_accounts"); err != nil {
		return "", fmt.Errorf("%w: %v", domainerrors.ErrProviderFault, err)
	}
	if len(accounts) == 0 {
		return "", nil
	}
	return entities.Account(accounts[0]), nil
}

// SendTransaction delegates the payload to the provider for signing and
// broadcast, suspending until the user approves or rejects in their
// wallet. The gas ceiling is fixed; the value rides as smallest-unit hex.
func (g *Gateway) SendTransaction(ctx context.Context, params TxParams) (string, error) {
	if g.provider == nil {
		return "", domainerrors.ErrProviderMissing
	}

	args := sendTxArgs{
		From: string(params.From),
		To:   params.To,
		Gas:  hexutil.EncodeUint64(g.gasLimit),
	}
	if params.Value != nil {
		args.Value = hexutil.EncodeBig(params.Value)
	}
	if len(params.Data) > 0 {
		args.Data = hexutil.Encode(params.Data)
	}

	var txHash string
	if err := g.provider.Request(ctx, &txHash, "eth_sendTransaction", args); err != nil {
		var rpcErr rpc.Error
		if errors.As(err, &rpcErr) && rpcErr.ErrorCode() == userRejectedCode {
			return "", domainerrors.ErrUserRejected
		}
		return "", fmt.Errorf("%w: %v", domainerrors.ErrProviderFault, err)
	}
	return txHash, nil
}
