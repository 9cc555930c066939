package model

import "github.com/ethereum/go-ethereum/common"

// PoolInfo describes a V2 pair contract trading an unordered pair of
// registered tokens. TokenA/TokenB follow the registry declaration order,
// which is not necessarily the pair's on-chain storage order.
type PoolInfo struct {
	TokenA  string
	TokenB  string
	Address common.Address
}

// Trades reports whether the pool has the given symbol on either side.
func (p PoolInfo) Trades(symbol string) bool {
	return p.TokenA == symbol || p.TokenB == symbol
}

// Other returns the counter-token of symbol, or "" if symbol is not in the
// pool.
func (p PoolInfo) Other(symbol string) string {
	switch symbol {
	case p.TokenA:
		return p.TokenB
	case p.TokenB:
		return p.TokenA
	default:
		return ""
	}
}
