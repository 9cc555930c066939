package swap

import (
	"math/big"
	"testing"
)

func TestAmountOutKnownValue(t *testing.T) {
	got := AmountOut(big.NewInt(1000), big.NewInt(10000), big.NewInt(10000))
	if got == nil {
		t.Fatalf("expected a quote")
	}
	// floor(997000 * 10000 / (10000*1000 + 997000)) = 906
	if got.Cmp(big.NewInt(906)) != 0 {
		t.Fatalf("amount out mismatch: got %s, want 906", got)
	}
}

func TestAmountOutBoundaries(t *testing.T) {
	cases := []struct {
		name                            string
		amountIn, reserveIn, reserveOut int64
	}{
		{"zero amount in", 0, 100, 100},
		{"zero reserve in", 10, 0, 100},
		{"zero reserve out", 10, 100, 0},
		{"negative amount in", -5, 100, 100},
	}

	for _, tc := range cases {
		got := AmountOut(big.NewInt(tc.amountIn), big.NewInt(tc.reserveIn), big.NewInt(tc.reserveOut))
		if got != nil {
			t.Fatalf("%s: expected no quote, got %s", tc.name, got)
		}
	}

	if got := AmountOut(nil, big.NewInt(1), big.NewInt(1)); got != nil {
		t.Fatalf("nil amount in: expected no quote, got %s", got)
	}
}

func TestAmountOutFeeReducesOutput(t *testing.T) {
	cases := []struct {
		amountIn, reserveIn, reserveOut int64
	}{
		{1, 1, 1},
		{1000, 10000, 10000},
		{5000, 100, 900000},
		{1, 1000000, 3},
		{999999, 999999, 999999},
	}

	for _, tc := range cases {
		amountIn := big.NewInt(tc.amountIn)
		reserveIn := big.NewInt(tc.reserveIn)
		reserveOut := big.NewInt(tc.reserveOut)

		got := AmountOut(amountIn, reserveIn, reserveOut)
		if got == nil {
			t.Fatalf("(%d,%d,%d): expected a quote", tc.amountIn, tc.reserveIn, tc.reserveOut)
		}
		if got.Sign() < 0 {
			t.Fatalf("(%d,%d,%d): negative output %s", tc.amountIn, tc.reserveIn, tc.reserveOut, got)
		}

		// the fee keeps the output strictly below amountIn * reserveOut / reserveIn
		noFee := new(big.Rat).SetFrac(
			new(big.Int).Mul(amountIn, reserveOut),
			reserveIn,
		)
		gotRat := new(big.Rat).SetInt(got)
		if gotRat.Cmp(noFee) >= 0 {
			t.Fatalf("(%d,%d,%d): output %s not below fee-free bound %s",
				tc.amountIn, tc.reserveIn, tc.reserveOut, got, noFee.FloatString(6))
		}
	}
}
