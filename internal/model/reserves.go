package model

import "github.com/shopspring/decimal"

// ReservePair holds a pool's two reserve balances in human units, already
// oriented to the (token0, token1) order the caller asked for.
type ReservePair struct {
	ReserveA decimal.Decimal
	ReserveB decimal.Decimal
}

// Swapped returns the pair with the two sides exchanged.
func (r ReservePair) Swapped() ReservePair {
	return ReservePair{ReserveA: r.ReserveB, ReserveB: r.ReserveA}
}
