package source

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"priceScope/internal/model"
	"priceScope/internal/registry"
	"priceScope/internal/swap"
	"priceScope/internal/volume"
)

const (
	uniswapSourceName = "uniswap"
	quoteSymbol       = "WETH"

	defaultVolumeWindow   = 24 * time.Hour
	defaultVolumeInterval = time.Hour
)

// defaultETHBasket holds the stable pairs averaged into the ETH/USD
// estimate. Unweighted mean; a liquidity-weighted mean would track the
// market more closely.
// TODO: weight the basket by pair liquidity.
var defaultETHBasket = []string{"DAI", "USDT", "USDC"}

// UniswapConfig configures a UniswapV2Source.
type UniswapConfig struct {
	TrackedSymbol string

	// ETHBasket lists the stable symbols averaged against WETH for the
	// ETH/USD estimate. Defaults to DAI/USDT/USDC.
	ETHBasket []string

	// VolumeWindow is the trailing window scanned for volume. Defaults to
	// 24h.
	VolumeWindow time.Duration

	// VolumeInterval is the minimum age of the last volume reading before
	// a refresh rescans the chain. Defaults to 1h.
	VolumeInterval time.Duration

	// Now supplies wall-clock time. Defaults to time.Now.
	Now func() time.Time
}

// UniswapV2Source reports metrics for one token from on-chain V2 pair
// state. Prices and liquidity are re-read on every refresh; volume is only
// rescanned once VolumeInterval has passed, because the log scan is
// expensive.
type UniswapV2Source struct {
	cfg      UniswapConfig
	registry *registry.Registry
	quoter   *swap.Quoter
	scanner  *volume.Scanner
	logger   *zap.Logger

	mu           sync.RWMutex
	metrics      model.SourceMetrics
	volumeTokens decimal.Decimal
	volumeAt     time.Time
}

var _ Source = (*UniswapV2Source)(nil)

// NewUniswapV2Source builds the source. The tracked symbol must be
// registered and must not be the quote token itself.
func NewUniswapV2Source(cfg UniswapConfig, reg *registry.Registry, quoter *swap.Quoter, scanner *volume.Scanner, logger *zap.Logger) (*UniswapV2Source, error) {
	if !reg.HasToken(cfg.TrackedSymbol) {
		return nil, fmt.Errorf("%w: %s", registry.ErrUnknownToken, cfg.TrackedSymbol)
	}
	if cfg.TrackedSymbol == quoteSymbol {
		return nil, fmt.Errorf("tracked symbol cannot be %s", quoteSymbol)
	}
	if len(cfg.ETHBasket) == 0 {
		cfg.ETHBasket = defaultETHBasket
	}
	if cfg.VolumeWindow <= 0 {
		cfg.VolumeWindow = defaultVolumeWindow
	}
	if cfg.VolumeInterval <= 0 {
		cfg.VolumeInterval = defaultVolumeInterval
	}
	if cfg.Now == nil {
		cfg.Now = time.Now
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	return &UniswapV2Source{
		cfg:      cfg,
		registry: reg,
		quoter:   quoter,
		scanner:  scanner,
		logger:   logger,
		metrics:  model.SourceMetrics{Symbol: cfg.TrackedSymbol},
	}, nil
}

// Name implements Source.
func (s *UniswapV2Source) Name() string { return uniswapSourceName }

// TrackedSymbol implements Source.
func (s *UniswapV2Source) TrackedSymbol() string { return s.cfg.TrackedSymbol }

// Metrics implements Source.
func (s *UniswapV2Source) Metrics() model.SourceMetrics {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.metrics
}

// Refresh implements Source. The new snapshot is assembled completely
// before it replaces the old one, so a failure part-way leaves the previous
// snapshot untouched.
func (s *UniswapV2Source) Refresh(ctx context.Context) error {
	now := s.cfg.Now()

	priceETH, err := s.quoter.SpotPrice(ctx, quoteSymbol, s.cfg.TrackedSymbol)
	if err != nil {
		return fmt.Errorf("price %s: %w", s.cfg.TrackedSymbol, err)
	}

	reserves, err := s.quoter.Reserves(ctx, quoteSymbol, s.cfg.TrackedSymbol)
	if err != nil {
		return fmt.Errorf("reserves %s: %w", s.cfg.TrackedSymbol, err)
	}

	ethUSD, err := s.ethPriceUSD(ctx)
	if err != nil {
		return fmt.Errorf("eth price: %w", err)
	}

	volumeTokens, volumeAt := s.lastVolume()
	if now.Sub(volumeAt) > s.cfg.VolumeInterval {
		volumeTokens, err = s.scanVolume(ctx)
		if err != nil {
			return fmt.Errorf("volume %s: %w", s.cfg.TrackedSymbol, err)
		}
		volumeAt = now
	}

	volumeETH := volumeTokens.Mul(priceETH)

	snapshot := model.SourceMetrics{
		Symbol:       s.cfg.TrackedSymbol,
		PriceETH:     decimal.NewNullDecimal(priceETH),
		PriceUSD:     decimal.NewNullDecimal(priceETH.Mul(ethUSD)),
		LiquidityETH: reserves.ReserveA,
		VolumeTokens: volumeTokens,
		VolumeETH:    decimal.NewNullDecimal(volumeETH),
		VolumeUSD:    decimal.NewNullDecimal(volumeETH.Mul(ethUSD)),
		ETHPriceUSD:  decimal.NewNullDecimal(ethUSD),
		LastUpdated:  now.Unix(),
	}

	s.mu.Lock()
	s.metrics = snapshot
	s.volumeTokens = volumeTokens
	s.volumeAt = volumeAt
	s.mu.Unlock()

	s.logger.Debug("source refreshed",
		zap.String("source", uniswapSourceName),
		zap.String("symbol", s.cfg.TrackedSymbol),
		zap.String("price_eth", priceETH.String()),
		zap.String("volume_tokens", volumeTokens.String()))
	return nil
}

// ethPriceUSD averages the basket stables' spot prices against WETH.
func (s *UniswapV2Source) ethPriceUSD(ctx context.Context) (decimal.Decimal, error) {
	sum := decimal.Zero
	for _, stable := range s.cfg.ETHBasket {
		price, err := s.quoter.SpotPrice(ctx, stable, quoteSymbol)
		if err != nil {
			return decimal.Zero, fmt.Errorf("basket %s: %w", stable, err)
		}
		sum = sum.Add(price)
	}
	return sum.Div(decimal.NewFromInt(int64(len(s.cfg.ETHBasket)))), nil
}

// scanVolume totals the tracked token's swap volume across every pool that
// trades it.
func (s *UniswapV2Source) scanVolume(ctx context.Context) (decimal.Decimal, error) {
	total := decimal.Zero
	for _, pool := range s.registry.PoolsFor(s.cfg.TrackedSymbol) {
		poolVolume, err := s.scanner.WindowVolume(ctx, pool, s.cfg.TrackedSymbol, s.cfg.VolumeWindow)
		if err != nil {
			return decimal.Zero, err
		}
		total = total.Add(poolVolume)
	}
	return total, nil
}

func (s *UniswapV2Source) lastVolume() (decimal.Decimal, time.Time) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.volumeTokens, s.volumeAt
}
