package swap

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"math/big"

	"github.com/shopspring/decimal"

	"priceScope/internal/dex"
	"priceScope/internal/model"
	"priceScope/internal/registry"
)

var (
	// ErrNoQuote means the swap cannot be priced (empty reserves or a
	// non-positive amount). A normal outcome, not a chain failure.
	ErrNoQuote = errors.New("no quote")
	// ErrZeroReserve means a spot price would divide by a zero reserve.
	ErrZeroReserve = errors.New("zero reserve")
)

// Quoter resolves pair reserves through the registry and prices swaps
// against them.
type Quoter struct {
	registry *registry.Registry
	caller   dex.ContractCaller
}

// NewQuoter builds a Quoter over the given registry and chain caller.
func NewQuoter(reg *registry.Registry, caller dex.ContractCaller) *Quoter {
	return &Quoter{registry: reg, caller: caller}
}

// Reserves returns the pool reserves for the pair {tokenA, tokenB} in human
// units, ordered as (tokenA, tokenB) regardless of the pair's native storage
// order.
func (q *Quoter) Reserves(ctx context.Context, tokenA, tokenB string) (model.ReservePair, error) {
	rawA, rawB, infoA, infoB, err := q.rawReserves(ctx, tokenA, tokenB)
	if err != nil {
		return model.ReservePair{}, err
	}

	return model.ReservePair{
		ReserveA: decimal.NewFromBigInt(rawA, -int32(infoA.Decimals)),
		ReserveB: decimal.NewFromBigInt(rawB, -int32(infoB.Decimals)),
	}, nil
}

// SpotPrice returns reserveA/reserveB for the pair, i.e. the marginal price
// of tokenB denominated in tokenA.
func (q *Quoter) SpotPrice(ctx context.Context, tokenA, tokenB string) (decimal.Decimal, error) {
	reserves, err := q.Reserves(ctx, tokenA, tokenB)
	if err != nil {
		return decimal.Zero, err
	}
	if reserves.ReserveB.IsZero() {
		return decimal.Zero, fmt.Errorf("%w: %s/%s", ErrZeroReserve, tokenA, tokenB)
	}
	return reserves.ReserveA.Div(reserves.ReserveB), nil
}

// QuoteSwap returns how many tokenOut a given amount of tokenIn buys,
// including the pair fee. Amounts are in human units.
func (q *Quoter) QuoteSwap(ctx context.Context, amount decimal.Decimal, tokenIn, tokenOut string) (decimal.Decimal, error) {
	rawIn, rawOut, infoIn, infoOut, err := q.rawReserves(ctx, tokenIn, tokenOut)
	if err != nil {
		return decimal.Zero, err
	}

	amountIn := amount.Shift(int32(infoIn.Decimals)).BigInt()
	amountOut := AmountOut(amountIn, rawIn, rawOut)
	if amountOut == nil {
		return decimal.Zero, fmt.Errorf("%w: %s %s -> %s", ErrNoQuote, amount, tokenIn, tokenOut)
	}
	return decimal.NewFromBigInt(amountOut, -int32(infoOut.Decimals)), nil
}

// rawReserves fetches the pair's integer reserves reordered from native
// storage order to (tokenA, tokenB). On V2 pairs the native token0 is the
// token with the lower address.
func (q *Quoter) rawReserves(ctx context.Context, tokenA, tokenB string) (*big.Int, *big.Int, model.TokenInfo, model.TokenInfo, error) {
	var none model.TokenInfo

	infoA, err := q.registry.Token(tokenA)
	if err != nil {
		return nil, nil, none, none, err
	}
	infoB, err := q.registry.Token(tokenB)
	if err != nil {
		return nil, nil, none, none, err
	}

	pool, err := q.registry.PairPool(tokenA, tokenB)
	if err != nil {
		return nil, nil, none, none, err
	}

	reserve0, reserve1, err := dex.ReadReserves(ctx, q.caller, pool.Address)
	if err != nil {
		return nil, nil, none, none, fmt.Errorf("pool %s: %w", pool.Address.Hex(), err)
	}

	if bytes.Compare(infoA.Address[:], infoB.Address[:]) > 0 {
		reserve0, reserve1 = reserve1, reserve0
	}
	return reserve0, reserve1, infoA, infoB, nil
}
