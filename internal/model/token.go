package model

import "github.com/ethereum/go-ethereum/common"

// TokenInfo captures a registered ERC20 token. Immutable once the registry
// is built.
type TokenInfo struct {
	Symbol   string
	Address  common.Address
	Decimals uint8
}
