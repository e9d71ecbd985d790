package wallet

import (
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum/params"
	domainerrors "transfer-flow.backend/internal/domain/errors"
)

var weiPerEther = big.NewInt(params.Ether)

// ParseEther converts a positive decimal amount in the chain-native
// unit to the smallest-unit integer. Integer arithmetic throughout, so
// no floating-point precision loss.
func ParseEther(amount string) (*big.Int, error) {
	rat, ok := new(big.Rat).SetString(amount)
	if !ok {
		return nil, fmt.Errorf("%w: amount %q is not a decimal number", domainerrors.ErrInvalidInput, amount)
	}
	if rat.Sign() <= 0 {
		return nil, fmt.Errorf("%w: amount must be positive", domainerrors.ErrInvalidInput)
	}

	wei := new(big.Int).Mul(rat.Num(), weiPerEther)
	rem := new(big.Int)
	wei.QuoRem(wei, rat.Denom(), rem)
	if rem.Sign() != 0 {
		return nil, fmt.Errorf("%w: amount %q has sub-wei precision", domainerrors.ErrInvalidInput, amount)
	}
	return wei, nil
}

// ToEther converts a smallest-unit integer back to its decimal value in
// the chain-native unit.
func ToEther(wei *big.Int) float64 {
	value, _ := new(big.Rat).SetFrac(wei, weiPerEther).Float64()
	return value
}
