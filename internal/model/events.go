package model

import "math/big"

// SwapEventData is the decoded payload of a V2 pair Swap event.
type SwapEventData struct {
	Amount0In  *big.Int
	Amount1In  *big.Int
	Amount0Out *big.Int
	Amount1Out *big.Int
}

// Net0 returns amount0In - amount0Out.
func (s SwapEventData) Net0() *big.Int {
	return new(big.Int).Sub(s.Amount0In, s.Amount0Out)
}

// Net1 returns amount1In - amount1Out.
func (s SwapEventData) Net1() *big.Int {
	return new(big.Int).Sub(s.Amount1In, s.Amount1Out)
}
