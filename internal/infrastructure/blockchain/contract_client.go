package blockchain

import (
	"context"
	"errors"
	"fmt"
	"math/big"
	"strings"
	"time"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/ethclient"
	"transfer-flow.backend/internal/domain/entities"
	domainerrors "transfer-flow.backend/internal/domain/errors"
	"transfer-flow.backend/internal/infrastructure/wallet"
)

var dialEVMClient = ethclient.DialContext

// TransferRegistryABI is the single externally callable entry point of
// the deployed transfer registry contract.
var TransferRegistryABI = mustParseABI(`[
	{"inputs":[{"internalType":"address","name":"receiver","type":"address"},{"internalType":"uint256","name":"amount","type":"uint256"},{"internalType":"string","name":"message","type":"string"},{"internalType":"string","name":"keyword","type":"string"}],"name":"publishTransaction","outputs":[],"stateMutability":"nonpayable","type":"function"}
]`)

func mustParseABI(raw string) abi.ABI {
	parsed, err := abi.JSON(strings.NewReader(raw))
	if err != nil {
		panic(err)
	}
	return parsed
}

// TransactionSender broadcasts a signed transaction through the wallet
// provider. Satisfied by *wallet.Gateway.
type TransactionSender interface {
	SendTransaction(ctx context.Context, params wallet.TxParams) (string, error)
}

// ReceiptBackend looks up transaction receipts. Satisfied by
// *ethclient.Client.
type ReceiptBackend interface {
	TransactionReceipt(ctx context.Context, txHash common.Hash) (*types.Receipt, error)
}

// DialReceiptBackend connects to the chain RPC used for receipt polling.
func DialReceiptBackend(ctx context.Context, rpcURL string) (*ethclient.Client, error) {
	return dialEVMClient(ctx, rpcURL)
}

// Confirmation is the result of a mined submission.
type Confirmation struct {
	Hash        string
	BlockNumber int64
}

// ContractClient binds the registry contract address to the wallet
// signer. It never holds keys; signing happens in the user's wallet.
type ContractClient struct {
	sender              TransactionSender
	backend             ReceiptBackend
	contractAddress     string
	contractABI         abi.ABI
	pollInterval        time.Duration
	confirmationTimeout time.Duration
}

// NewContractClient creates a new contract client
func NewContractClient(sender TransactionSender, backend ReceiptBackend, contractAddress string, pollInterval, confirmationTimeout time.Duration) *ContractClient {
	if pollInterval <= 0 {
		pollInterval = 2 * time.Second
	}
	if confirmationTimeout <= 0 {
		confirmationTimeout = 2 * time.Minute
	}
	return &ContractClient{
		sender:              sender,
		backend:             backend,
		contractAddress:     contractAddress,
		contractABI:         TransferRegistryABI,
		pollInterval:        pollInterval,
		confirmationTimeout: confirmationTimeout,
	}
}

// PublishTransaction invokes publishTransaction on the registry
// contract, signed by the connected account via the wallet provider.
// Calling this without a connected account is a caller bug, not a
// recoverable runtime condition.
func (c *ContractClient) PublishTransaction(ctx context.Context, from entities.Account, to string, amount *big.Int, memo string, kind entities.TransferKind) (*PendingTx, error) {
	if from.IsZero() {
		return nil, fmt.Errorf("publish transaction: no connected account")
	}

	data, err := c.contractABI.Pack("publishTransaction", common.HexToAddress(to), amount, memo, string(kind))
	if err != nil {
		return nil, fmt.Errorf("%w: pack calldata: %v", domainerrors.ErrSubmissionFailed, err)
	}

	hash, err := c.sender.SendTransaction(ctx, wallet.TxParams{
		From: from,
		To:   c.contractAddress,
		Data: data,
	})
	if err != nil {
		return nil, err
	}

	return &PendingTx{
		hash:         hash,
		backend:      c.backend,
		pollInterval: c.pollInterval,
		timeout:      c.confirmationTimeout,
	}, nil
}

// PendingTx is a handle on a broadcast submission awaiting finality.
type PendingTx struct {
	hash         string
	backend      ReceiptBackend
	pollInterval time.Duration
	timeout      time.Duration
}

// Hash returns the transaction hash reported at broadcast time.
func (p *PendingTx) Hash() string {
	return p.hash
}

// AwaitConfirmation polls for the receipt until the network reports the
// submission mined. It does not retry past the timeout and never
// resubmits; a timeout leaves the transaction's existence ambiguous and
// surfaces ErrConfirmationFailed for the caller to decide.
func (p *PendingTx) AwaitConfirmation(ctx context.Context) (*Confirmation, error) {
	ctx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	ticker := time.NewTicker(p.pollInterval)
	defer ticker.Stop()

	for {
		receipt, err := p.backend.TransactionReceipt(ctx, common.HexToHash(p.hash))
		switch {
		case err == nil:
			if receipt.Status == types.ReceiptStatusFailed {
				return nil, fmt.Errorf("%w: transaction %s reverted", domainerrors.ErrConfirmationFailed, p.hash)
			}
			confirmation := &Confirmation{Hash: p.hash}
			if receipt.BlockNumber != nil {
				confirmation.BlockNumber = receipt.BlockNumber.Int64()
			}
			return confirmation, nil
		case errors.Is(err, ethereum.NotFound):
			// not mined yet, keep polling
		default:
			return nil, fmt.Errorf("%w: %v", domainerrors.ErrConfirmationFailed, err)
		}

		select {
		case <-ctx.Done():
			return nil, fmt.Errorf("%w: %v", domainerrors.ErrConfirmationFailed, ctx.Err())
		case <-ticker.C:
		}
	}
}
