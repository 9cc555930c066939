package model

import "github.com/shopspring/decimal"

// SourceMetrics is the common metric set every price source reports for its
// tracked token. Null fields mean "no reading", which consumers treat
// differently from a zero value when weighting.
type SourceMetrics struct {
	Symbol       string
	PriceETH     decimal.NullDecimal
	PriceUSD     decimal.NullDecimal
	LiquidityETH decimal.Decimal
	VolumeTokens decimal.Decimal
	VolumeETH    decimal.NullDecimal
	VolumeUSD    decimal.NullDecimal
	ETHPriceUSD  decimal.NullDecimal
	BTCPriceUSD  decimal.NullDecimal
	Change24h    decimal.NullDecimal
	LastUpdated  int64 // unix seconds, 0 means never updated
}

// Weight returns the source's volume in ETH, or zero when the source has no
// volume reading. Used as the aggregation weight for price and change
// queries.
func (m SourceMetrics) Weight() decimal.Decimal {
	if !m.VolumeETH.Valid {
		return decimal.Zero
	}
	return m.VolumeETH.Decimal
}
