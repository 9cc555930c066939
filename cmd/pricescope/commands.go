package main

import (
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"priceScope/internal/chain"
	"priceScope/internal/config"
	"priceScope/internal/manager"
	"priceScope/internal/metrics"
	"priceScope/internal/registry"
	"priceScope/internal/source"
	"priceScope/internal/swap"
	"priceScope/internal/volume"
)

// deps bundles the wired collaborators every subcommand needs.
type deps struct {
	cfg      config.Config
	logger   *zap.Logger
	chain    *chain.Client
	registry *registry.Registry
	quoter   *swap.Quoter
	scanner  *volume.Scanner
}

func setup(cmd *cobra.Command) (*deps, func(), error) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return nil, nil, err
	}
	if err := requireRPC(cfg); err != nil {
		return nil, nil, err
	}

	logger, err := newLogger(cfg.LogLevel)
	if err != nil {
		return nil, nil, err
	}

	reg, err := registry.Mainnet()
	if err != nil {
		return nil, nil, fmt.Errorf("build registry: %w", err)
	}

	chainClient, err := chain.NewClient(cmd.Context(), cfg.RPCURL)
	if err != nil {
		return nil, nil, fmt.Errorf("connect rpc: %w", err)
	}

	d := &deps{
		cfg:      cfg,
		logger:   logger,
		chain:    chainClient,
		registry: reg,
		quoter:   swap.NewQuoter(reg, chainClient),
		scanner:  volume.NewScanner(chainClient, reg, cfg.SecondsPerBlock, logger),
	}
	cleanup := func() {
		chainClient.Close()
		_ = logger.Sync()
	}
	return d, cleanup, nil
}

func runRefresh(cmd *cobra.Command, _ []string) error {
	d, cleanup, err := setup(cmd)
	if err != nil {
		return err
	}
	defer cleanup()

	ctx, stop := signalContext()
	defer stop()

	metrics.Serve(ctx, d.cfg.MetricsAddr, d.logger)

	sources := make([]source.Source, 0, len(d.cfg.Symbols))
	for _, symbol := range d.cfg.Symbols {
		s, err := source.NewUniswapV2Source(source.UniswapConfig{
			TrackedSymbol:  symbol,
			ETHBasket:      d.cfg.ETHBasket,
			VolumeWindow:   d.cfg.VolumeWindow,
			VolumeInterval: d.cfg.VolumeInterval,
		}, d.registry, d.quoter, d.scanner, d.logger)
		if err != nil {
			return err
		}
		sources = append(sources, s)
	}

	m := manager.NewManager(sources, d.cfg.RefreshTimeout, d.logger)
	m.RefreshAll(ctx)

	for _, symbol := range d.cfg.Symbols {
		printAggregate(m, symbol)
	}
	if ethUSD, ok := m.ETHPriceUSD(manager.FilterAll); ok {
		fmt.Printf("eth_price_usd: %s\n", ethUSD.StringFixed(2))
	}
	fmt.Printf("last_updated: %d\n", m.LastUpdated(manager.FilterAll))
	return nil
}

func printAggregate(m *manager.Manager, symbol string) {
	fmt.Printf("%s:\n", symbol)
	if price, ok := m.PriceETH(symbol, manager.FilterAll); ok {
		fmt.Printf("  price_eth:  %s\n", price.String())
	}
	if price, ok := m.PriceUSD(symbol, manager.FilterAll); ok {
		fmt.Printf("  price_usd:  %s\n", price.StringFixed(4))
	}
	fmt.Printf("  volume_eth: %s\n", m.VolumeETH(symbol, manager.FilterAll).String())
	fmt.Printf("  volume_usd: %s\n", m.VolumeUSD(symbol, manager.FilterAll).StringFixed(2))
	if change, ok := m.Change24h(symbol, manager.FilterAll); ok {
		fmt.Printf("  change_24h: %s\n", change.String())
	}
}

func runReserves(cmd *cobra.Command, args []string) error {
	d, cleanup, err := setup(cmd)
	if err != nil {
		return err
	}
	defer cleanup()

	ctx, stop := signalContext()
	defer stop()

	reserves, err := d.quoter.Reserves(ctx, args[0], args[1])
	if err != nil {
		return err
	}
	fmt.Printf("%s: %s\n%s: %s\n", args[0], reserves.ReserveA.String(), args[1], reserves.ReserveB.String())
	return nil
}

func runPrice(cmd *cobra.Command, args []string) error {
	d, cleanup, err := setup(cmd)
	if err != nil {
		return err
	}
	defer cleanup()

	ctx, stop := signalContext()
	defer stop()

	price, err := d.quoter.SpotPrice(ctx, args[0], args[1])
	if err != nil {
		return err
	}
	fmt.Printf("%s per %s: %s\n", args[0], args[1], price.String())
	return nil
}

func runSwap(cmd *cobra.Command, args []string) error {
	d, cleanup, err := setup(cmd)
	if err != nil {
		return err
	}
	defer cleanup()

	ctx, stop := signalContext()
	defer stop()

	amount, err := decimal.NewFromString(args[0])
	if err != nil {
		return fmt.Errorf("invalid amount %q: %w", args[0], err)
	}

	out, err := d.quoter.QuoteSwap(ctx, amount, args[1], args[2])
	if err != nil {
		return err
	}
	fmt.Printf("%s %s swaps for %s %s\n", amount.String(), args[1], out.String(), args[2])
	return nil
}

func runVolume(cmd *cobra.Command, args []string) error {
	d, cleanup, err := setup(cmd)
	if err != nil {
		return err
	}
	defer cleanup()

	ctx, stop := signalContext()
	defer stop()

	symbol := args[0]
	total := decimal.Zero
	for _, pool := range d.registry.PoolsFor(symbol) {
		poolVolume, err := d.scanner.WindowVolume(ctx, pool, symbol, d.cfg.VolumeWindow)
		if err != nil {
			return err
		}
		d.logger.Info("pool volume",
			zap.String("pool", pool.Address.Hex()),
			zap.String("volume", poolVolume.String()))
		total = total.Add(poolVolume)
	}
	fmt.Printf("%s volume over %s: %s\n", symbol, d.cfg.VolumeWindow, total.String())
	return nil
}
