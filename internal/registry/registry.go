package registry

import (
	"errors"
	"fmt"

	"github.com/ethereum/go-ethereum/common"

	"priceScope/internal/model"
)

var (
	// ErrUnknownToken is returned when a symbol or address is not in the
	// registry.
	ErrUnknownToken = errors.New("unknown token")
	// ErrPoolNotFound is returned when no registered pool trades the
	// requested pair.
	ErrPoolNotFound = errors.New("pool not found")
)

// TokenEntry is a raw token declaration used to build a Registry.
type TokenEntry struct {
	Symbol   string
	Address  string
	Decimals uint8
}

// PoolEntry is a raw pool declaration used to build a Registry.
type PoolEntry struct {
	TokenA  string
	TokenB  string
	Address string
}

// Registry is an immutable lookup table over registered tokens and pools.
// All lookups are map-backed and safe for concurrent use after construction.
type Registry struct {
	tokensBySymbol  map[string]model.TokenInfo
	tokensByAddress map[common.Address]model.TokenInfo
	poolsByAddress  map[common.Address]model.PoolInfo
	poolsByPair     map[pairKey]model.PoolInfo
	pools           []model.PoolInfo
}

type pairKey struct {
	low, high string
}

func newPairKey(a, b string) pairKey {
	if a > b {
		a, b = b, a
	}
	return pairKey{low: a, high: b}
}

// New builds a Registry from raw declarations. Every pool token must be a
// declared token symbol. When the same unordered pair is declared more than
// once, the first declaration wins; later duplicates are retained only for
// address and per-token lookups.
func New(tokens []TokenEntry, pools []PoolEntry) (*Registry, error) {
	r := &Registry{
		tokensBySymbol:  make(map[string]model.TokenInfo, len(tokens)),
		tokensByAddress: make(map[common.Address]model.TokenInfo, len(tokens)),
		poolsByAddress:  make(map[common.Address]model.PoolInfo, len(pools)),
		poolsByPair:     make(map[pairKey]model.PoolInfo, len(pools)),
		pools:           make([]model.PoolInfo, 0, len(pools)),
	}

	for _, entry := range tokens {
		if entry.Symbol == "" {
			return nil, fmt.Errorf("token with empty symbol")
		}
		if !common.IsHexAddress(entry.Address) {
			return nil, fmt.Errorf("token %s: invalid address %q", entry.Symbol, entry.Address)
		}
		if _, exists := r.tokensBySymbol[entry.Symbol]; exists {
			return nil, fmt.Errorf("token %s declared twice", entry.Symbol)
		}
		info := model.TokenInfo{
			Symbol:   entry.Symbol,
			Address:  common.HexToAddress(entry.Address),
			Decimals: entry.Decimals,
		}
		r.tokensBySymbol[info.Symbol] = info
		r.tokensByAddress[info.Address] = info
	}

	for _, entry := range pools {
		if !common.IsHexAddress(entry.Address) {
			return nil, fmt.Errorf("pool %s/%s: invalid address %q", entry.TokenA, entry.TokenB, entry.Address)
		}
		if entry.TokenA == entry.TokenB {
			return nil, fmt.Errorf("pool %s: identical tokens", entry.Address)
		}
		for _, symbol := range []string{entry.TokenA, entry.TokenB} {
			if _, ok := r.tokensBySymbol[symbol]; !ok {
				return nil, fmt.Errorf("pool %s: %w: %s", entry.Address, ErrUnknownToken, symbol)
			}
		}
		info := model.PoolInfo{
			TokenA:  entry.TokenA,
			TokenB:  entry.TokenB,
			Address: common.HexToAddress(entry.Address),
		}
		r.pools = append(r.pools, info)
		r.poolsByAddress[info.Address] = info
		key := newPairKey(entry.TokenA, entry.TokenB)
		if _, exists := r.poolsByPair[key]; !exists {
			r.poolsByPair[key] = info
		}
	}

	return r, nil
}

// Token looks up a token by symbol.
func (r *Registry) Token(symbol string) (model.TokenInfo, error) {
	info, ok := r.tokensBySymbol[symbol]
	if !ok {
		return model.TokenInfo{}, fmt.Errorf("%w: %s", ErrUnknownToken, symbol)
	}
	return info, nil
}

// TokenByAddress looks up a token by contract address.
func (r *Registry) TokenByAddress(address common.Address) (model.TokenInfo, error) {
	info, ok := r.tokensByAddress[address]
	if !ok {
		return model.TokenInfo{}, fmt.Errorf("%w: %s", ErrUnknownToken, address.Hex())
	}
	return info, nil
}

// HasToken reports whether the symbol is registered.
func (r *Registry) HasToken(symbol string) bool {
	_, ok := r.tokensBySymbol[symbol]
	return ok
}

// PoolsFor returns every pool trading the given symbol, in declaration
// order.
func (r *Registry) PoolsFor(symbol string) []model.PoolInfo {
	pools := make([]model.PoolInfo, 0)
	for _, pool := range r.pools {
		if pool.Trades(symbol) {
			pools = append(pools, pool)
		}
	}
	return pools
}

// PoolByAddress looks up a pool by contract address.
func (r *Registry) PoolByAddress(address common.Address) (model.PoolInfo, error) {
	info, ok := r.poolsByAddress[address]
	if !ok {
		return model.PoolInfo{}, fmt.Errorf("%w: %s", ErrPoolNotFound, address.Hex())
	}
	return info, nil
}

// PairPool returns the pool trading the unordered pair {a, b}. When the
// registry declares the same pair more than once the first declaration is
// returned.
func (r *Registry) PairPool(a, b string) (model.PoolInfo, error) {
	if _, err := r.Token(a); err != nil {
		return model.PoolInfo{}, err
	}
	if _, err := r.Token(b); err != nil {
		return model.PoolInfo{}, err
	}
	info, ok := r.poolsByPair[newPairKey(a, b)]
	if !ok {
		return model.PoolInfo{}, fmt.Errorf("%w: %s/%s", ErrPoolNotFound, a, b)
	}
	return info, nil
}
