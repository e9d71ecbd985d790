package wallet

import (
	"context"

	"github.com/ethereum/go-ethereum/rpc"
)

// Provider is the injected wallet provider boundary. Implementations
// speak the provider's request protocol (eth_requestAccounts,
// eth_accounts, eth_sendTransaction); the gateway owns error mapping.
type Provider interface {
	Request(ctx context.Context, result interface{}, method string, args ...interface{}) error
}

type rpcProvider struct {
	client *rpc.Client
}

// DialProvider connects to a wallet provider endpoint over JSON-RPC.
func DialProvider(ctx context.Context, url string) (Provider, error) {
	client, err := rpc.DialContext(ctx, url)
	if err != nil {
		return nil, err
	}
	return &rpcProvider{client: client}, nil
}

func (p *rpcProvider) Request(ctx context.Context, result interface{}, method string, args ...interface{}) error {
	return p.client.CallContext(ctx, result, method, args...)
}
