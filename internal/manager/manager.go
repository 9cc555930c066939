// Package manager combines the readings of independent price sources into
// liquidity-weighted estimates.
package manager

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"priceScope/internal/average"
	"priceScope/internal/metrics"
	"priceScope/internal/model"
	"priceScope/internal/source"
)

// FilterAll matches every source name in query filters.
const FilterAll = "all"

const defaultRefreshTimeout = 30 * time.Second

// Manager owns a flat list of sources, refreshes them with per-source
// failure isolation, and answers aggregate queries weighted by each
// source's ETH volume.
type Manager struct {
	sources        []source.Source
	refreshTimeout time.Duration
	logger         *zap.Logger
}

// NewManager builds a Manager. refreshTimeout bounds each source's refresh;
// zero uses the default.
func NewManager(sources []source.Source, refreshTimeout time.Duration, logger *zap.Logger) *Manager {
	if refreshTimeout <= 0 {
		refreshTimeout = defaultRefreshTimeout
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Manager{
		sources:        sources,
		refreshTimeout: refreshTimeout,
		logger:         logger,
	}
}

// RefreshAll refreshes every source in turn. A failing source is logged and
// counted but never prevents the others from refreshing; its previous
// metrics stay in place until the next call.
func (m *Manager) RefreshAll(ctx context.Context) {
	for _, s := range m.sources {
		metrics.SourceRefreshTotal.WithLabelValues(s.Name()).Inc()

		refreshCtx, cancel := context.WithTimeout(ctx, m.refreshTimeout)
		err := s.Refresh(refreshCtx)
		cancel()

		if err != nil {
			metrics.SourceRefreshErrors.WithLabelValues(s.Name()).Inc()
			m.logger.Error("source refresh failed",
				zap.String("source", s.Name()),
				zap.String("symbol", s.TrackedSymbol()),
				zap.Error(err))
			continue
		}
		m.logger.Debug("source refreshed",
			zap.String("source", s.Name()),
			zap.String("symbol", s.TrackedSymbol()))
	}
}

// PriceETH returns the volume-weighted ETH price of the symbol across
// matching sources. The second return is false when no source has a
// reading.
func (m *Manager) PriceETH(symbol, sourceName string) (decimal.Decimal, bool) {
	return m.weighted(symbol, sourceName, func(sm model.SourceMetrics) decimal.NullDecimal {
		return sm.PriceETH
	})
}

// PriceUSD returns the volume-weighted USD price of the symbol across
// matching sources.
func (m *Manager) PriceUSD(symbol, sourceName string) (decimal.Decimal, bool) {
	return m.weighted(symbol, sourceName, func(sm model.SourceMetrics) decimal.NullDecimal {
		return sm.PriceUSD
	})
}

// Change24h returns the volume-weighted 24h change of the symbol across
// matching sources.
func (m *Manager) Change24h(symbol, sourceName string) (decimal.Decimal, bool) {
	return m.weighted(symbol, sourceName, func(sm model.SourceMetrics) decimal.NullDecimal {
		return sm.Change24h
	})
}

// VolumeETH sums the 24h ETH volume of the symbol across matching sources.
func (m *Manager) VolumeETH(symbol, sourceName string) decimal.Decimal {
	return m.sum(symbol, sourceName, func(sm model.SourceMetrics) decimal.NullDecimal {
		return sm.VolumeETH
	})
}

// VolumeUSD sums the 24h USD volume of the symbol across matching sources.
func (m *Manager) VolumeUSD(symbol, sourceName string) decimal.Decimal {
	return m.sum(symbol, sourceName, func(sm model.SourceMetrics) decimal.NullDecimal {
		return sm.VolumeUSD
	})
}

// ETHPriceUSD returns the volume-weighted ETH/USD estimate across matching
// sources, regardless of tracked symbol.
func (m *Manager) ETHPriceUSD(sourceName string) (decimal.Decimal, bool) {
	result := average.WeightedAverage{}
	for _, s := range m.sources {
		if !nameMatches(s, sourceName) {
			continue
		}
		sm := s.Metrics()
		if !sm.ETHPriceUSD.Valid {
			continue
		}
		result.Add(sm.ETHPriceUSD.Decimal, sm.Weight())
	}
	return result.Average()
}

// BTCPriceUSD returns the volume-weighted BTC/USD estimate across matching
// sources, regardless of tracked symbol.
func (m *Manager) BTCPriceUSD(sourceName string) (decimal.Decimal, bool) {
	result := average.WeightedAverage{}
	for _, s := range m.sources {
		if !nameMatches(s, sourceName) {
			continue
		}
		sm := s.Metrics()
		if !sm.BTCPriceUSD.Valid {
			continue
		}
		result.Add(sm.BTCPriceUSD.Decimal, sm.Weight())
	}
	return result.Average()
}

// LastUpdated returns the oldest non-zero update time across matching
// sources, surfacing how stale the most out-of-date source is. Zero means
// no source has ever updated.
func (m *Manager) LastUpdated(sourceName string) int64 {
	var oldest int64
	for _, s := range m.sources {
		if !nameMatches(s, sourceName) {
			continue
		}
		updated := s.Metrics().LastUpdated
		if updated == 0 {
			continue
		}
		if oldest == 0 || updated < oldest {
			oldest = updated
		}
	}
	return oldest
}

func (m *Manager) weighted(symbol, sourceName string, field func(model.SourceMetrics) decimal.NullDecimal) (decimal.Decimal, bool) {
	result := average.WeightedAverage{}
	for _, s := range m.sources {
		if !matches(s, symbol, sourceName) {
			continue
		}
		sm := s.Metrics()
		value := field(sm)
		if !value.Valid {
			continue
		}
		result.Add(value.Decimal, sm.Weight())
	}
	return result.Average()
}

func (m *Manager) sum(symbol, sourceName string, field func(model.SourceMetrics) decimal.NullDecimal) decimal.Decimal {
	total := decimal.Zero
	for _, s := range m.sources {
		if !matches(s, symbol, sourceName) {
			continue
		}
		value := field(s.Metrics())
		if !value.Valid {
			continue
		}
		total = total.Add(value.Decimal)
	}
	return total
}

func matches(s source.Source, symbol, sourceName string) bool {
	return s.TrackedSymbol() == symbol && nameMatches(s, sourceName)
}

func nameMatches(s source.Source, sourceName string) bool {
	return sourceName == "" || sourceName == FilterAll || s.Name() == sourceName
}
