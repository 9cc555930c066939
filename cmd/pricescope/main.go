package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"priceScope/internal/config"
)

func main() {
	root := &cobra.Command{
		Use:          "pricescope",
		Short:        "On-chain pair pricing and market estimation",
		SilenceUsage: true,
	}

	root.PersistentFlags().String("config", "", "config file path")
	root.PersistentFlags().String("rpc", "", "Ethereum RPC URL")
	root.PersistentFlags().String("log-level", "info", "log level (debug, info, warn, error)")

	refreshCmd := &cobra.Command{
		Use:   "refresh",
		Short: "Refresh all sources and print aggregate metrics",
		RunE:  runRefresh,
	}
	refreshCmd.Flags().StringSlice("symbol", []string{"0xBTC"}, "tracked token symbols (comma-separated)")
	refreshCmd.Flags().StringSlice("eth-basket", []string{"DAI", "USDT", "USDC"}, "stable symbols averaged for ETH/USD")
	refreshCmd.Flags().Duration("refresh-timeout", 30*time.Second, "per-source refresh timeout")
	refreshCmd.Flags().Duration("volume-window", 24*time.Hour, "trailing window scanned for volume")
	refreshCmd.Flags().Duration("volume-interval", time.Hour, "minimum age before volume is rescanned")
	refreshCmd.Flags().Uint64("seconds-per-block", 13, "average seconds per block")
	refreshCmd.Flags().String("metrics-addr", "", "address serving prometheus metrics for the run (empty disables)")
	root.AddCommand(refreshCmd)

	reservesCmd := &cobra.Command{
		Use:   "reserves <tokenA> <tokenB>",
		Short: "Print pool reserves for a pair",
		Args:  cobra.ExactArgs(2),
		RunE:  runReserves,
	}
	root.AddCommand(reservesCmd)

	priceCmd := &cobra.Command{
		Use:   "price <tokenA> <tokenB>",
		Short: "Print the spot price of tokenB in tokenA",
		Args:  cobra.ExactArgs(2),
		RunE:  runPrice,
	}
	root.AddCommand(priceCmd)

	swapCmd := &cobra.Command{
		Use:   "swap <amount> <tokenIn> <tokenOut>",
		Short: "Quote a swap through the pair, fee included",
		Args:  cobra.ExactArgs(3),
		RunE:  runSwap,
	}
	root.AddCommand(swapCmd)

	volumeCmd := &cobra.Command{
		Use:   "volume <symbol>",
		Short: "Scan trailing swap volume for a token",
		Args:  cobra.ExactArgs(1),
		RunE:  runVolume,
	}
	volumeCmd.Flags().Duration("volume-window", 24*time.Hour, "trailing window scanned for volume")
	volumeCmd.Flags().Uint64("seconds-per-block", 13, "average seconds per block")
	root.AddCommand(volumeCmd)

	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}

func loadConfig(cmd *cobra.Command) (config.Config, error) {
	cfgFile, _ := cmd.Flags().GetString("config")
	merged := cmd.Flags()
	return config.Load(cfgFile, merged)
}

func newLogger(level string) (*zap.Logger, error) {
	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevel()
	if err := cfg.Level.UnmarshalText([]byte(level)); err != nil {
		return nil, err
	}

	cfg.EncoderConfig.TimeKey = "ts"
	cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	return cfg.Build()
}

func signalContext() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
}

func requireRPC(cfg config.Config) error {
	if cfg.RPCURL == "" {
		return fmt.Errorf("rpc url is required")
	}
	return nil
}
