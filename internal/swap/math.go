package swap

import "math/big"

var (
	feeNumerator   = big.NewInt(997)
	feeDenominator = big.NewInt(1000)
)

// AmountOut computes the constant-product swap output for a trade against a
// V2 pair, after the 0.3% fee:
//
//	amountInWithFee = amountIn * 997
//	amountOut = amountInWithFee * reserveOut / (reserveIn * 1000 + amountInWithFee)
//
// Division is integer division, matching the pair contract. Returns nil when
// no quote exists: any nil, zero, or negative input.
func AmountOut(amountIn, reserveIn, reserveOut *big.Int) *big.Int {
	if amountIn == nil || reserveIn == nil || reserveOut == nil {
		return nil
	}
	if amountIn.Sign() <= 0 || reserveIn.Sign() <= 0 || reserveOut.Sign() <= 0 {
		return nil
	}

	amountInWithFee := new(big.Int).Mul(amountIn, feeNumerator)
	numerator := new(big.Int).Mul(amountInWithFee, reserveOut)
	denominator := new(big.Int).Mul(reserveIn, feeDenominator)
	denominator.Add(denominator, amountInWithFee)
	return numerator.Div(numerator, denominator)
}
