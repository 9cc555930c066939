// Package volume accumulates traded token volume for a pool over a trailing
// block window.
package volume

import (
	"bytes"
	"context"
	"fmt"
	"math/big"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"priceScope/internal/dex"
	"priceScope/internal/metrics"
	"priceScope/internal/model"
	"priceScope/internal/registry"
)

// DefaultSecondsPerBlock is the average mainnet block time used to convert
// a time window into a block range.
const DefaultSecondsPerBlock = 13

// defaultBatchSize caps how many blocks a single log query spans.
const defaultBatchSize = 2000

// LogReader is the chain access the scanner needs. *chain.Client satisfies
// it.
type LogReader interface {
	LatestBlockNumber(ctx context.Context) (uint64, error)
	FilterLogs(ctx context.Context, fromBlock, toBlock uint64, addresses []common.Address, topic0 []common.Hash) ([]types.Log, error)
}

// Scanner walks a pool's recent logs and totals swap flow for a tracked
// token. Liquidity management events (sync, mint, burn, transfer, approval)
// never count toward volume.
type Scanner struct {
	reader          LogReader
	registry        *registry.Registry
	logger          *zap.Logger
	secondsPerBlock uint64
}

// NewScanner builds a Scanner. A zero secondsPerBlock falls back to the
// mainnet default.
func NewScanner(reader LogReader, reg *registry.Registry, secondsPerBlock uint64, logger *zap.Logger) *Scanner {
	if logger == nil {
		logger = zap.NewNop()
	}
	if secondsPerBlock == 0 {
		secondsPerBlock = DefaultSecondsPerBlock
	}
	return &Scanner{
		reader:          reader,
		registry:        reg,
		logger:          logger,
		secondsPerBlock: secondsPerBlock,
	}
}

// WindowVolume returns the total amount of trackedSymbol traded through the
// pool over the trailing window, in human units. Each swap contributes the
// absolute net flow of the tracked side; swaps in a pool that does not
// trade the symbol contribute nothing.
func (s *Scanner) WindowVolume(ctx context.Context, pool model.PoolInfo, trackedSymbol string, window time.Duration) (decimal.Decimal, error) {
	tracked, err := s.registry.Token(trackedSymbol)
	if err != nil {
		return decimal.Zero, err
	}

	side, err := s.trackedSide(pool, tracked)
	if err != nil {
		return decimal.Zero, err
	}

	// a non-positive window would underflow into a genesis-to-head scan
	if window <= 0 {
		return decimal.Zero, nil
	}

	latest, err := s.reader.LatestBlockNumber(ctx)
	if err != nil {
		return decimal.Zero, fmt.Errorf("get latest block: %w", err)
	}

	blocks := uint64(window.Seconds()) / s.secondsPerBlock
	fromBlock := uint64(0)
	if latest > blocks {
		fromBlock = latest - blocks
	}
	toBlock := latest
	if toBlock > 0 {
		toBlock--
	}
	if fromBlock > toBlock {
		return decimal.Zero, nil
	}

	ranges, err := splitRange(fromBlock, toBlock, defaultBatchSize)
	if err != nil {
		return decimal.Zero, err
	}

	total := decimal.Zero
	for _, batch := range ranges {
		logs, err := s.reader.FilterLogs(ctx, batch.From, batch.To, []common.Address{pool.Address}, nil)
		if err != nil {
			return decimal.Zero, fmt.Errorf("filter logs %s: %w", pool.Address.Hex(), err)
		}
		total = total.Add(s.accumulate(logs, side, tracked))
	}

	return total, nil
}

// accumulate classifies a batch of pool logs and totals the tracked side of
// every swap.
func (s *Scanner) accumulate(logs []types.Log, side int, tracked model.TokenInfo) decimal.Decimal {
	total := decimal.Zero
	for _, lg := range logs {
		metrics.LogsScanned.Inc()

		if len(lg.Topics) == 0 {
			s.logger.Debug("log without topics", zap.String("tx", lg.TxHash.Hex()))
			continue
		}

		switch dex.Classify(lg.Topics[0]) {
		case dex.EventSwap:
			swapEvent, err := dex.DecodeSwap(lg)
			if err != nil {
				s.logger.Warn("swap decode failed",
					zap.String("tx", lg.TxHash.Hex()),
					zap.Error(err))
				continue
			}
			if side < 0 {
				continue
			}
			net := swapEvent.Net0()
			if side == 1 {
				net = swapEvent.Net1()
			}
			total = total.Add(scaleAbs(net, tracked.Decimals))
			metrics.SwapsCounted.Inc()
		case dex.EventSync, dex.EventBurn, dex.EventTransfer, dex.EventApproval, dex.EventMint:
			// liquidity management, not trades
		default:
			s.logger.Debug("unknown topic",
				zap.String("tx", lg.TxHash.Hex()),
				zap.String("topic0", lg.Topics[0].Hex()))
		}
	}

	return total
}

// trackedSide returns which native side of the pool holds the tracked
// token: 0, 1, or -1 when the pool does not trade it. Native token0 is the
// constituent with the lower address.
func (s *Scanner) trackedSide(pool model.PoolInfo, tracked model.TokenInfo) (int, error) {
	infoA, err := s.registry.Token(pool.TokenA)
	if err != nil {
		return -1, err
	}
	infoB, err := s.registry.Token(pool.TokenB)
	if err != nil {
		return -1, err
	}

	token0, token1 := infoA, infoB
	if bytes.Compare(infoA.Address[:], infoB.Address[:]) > 0 {
		token0, token1 = infoB, infoA
	}

	switch tracked.Symbol {
	case token0.Symbol:
		return 0, nil
	case token1.Symbol:
		return 1, nil
	default:
		return -1, nil
	}
}

func scaleAbs(amount *big.Int, decimals uint8) decimal.Decimal {
	abs := new(big.Int).Abs(amount)
	return decimal.NewFromBigInt(abs, -int32(decimals))
}
