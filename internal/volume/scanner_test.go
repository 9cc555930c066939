package volume

import (
	"context"
	"math/big"
	"testing"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/shopspring/decimal"

	"priceScope/internal/dex"
	"priceScope/internal/registry"
)

const (
	btcAddr  = "0xB6eD7644C69416d67B522e20bC294A9a9B405B31"
	wethAddr = "0xC02aaA39b223FE8D0A0e5C4F27eAD9083C756Cc2"
	daiAddr  = "0x6B175474E89094C44Da98b954EedeAC495271d0F"

	btcWethPool = "0xc12c4c3E0008B838F75189BFb39283467cf6e5b3"
	daiWethPool = "0xA478c2975Ab1Ea89e8196811F51A7B7Ade33eB11"
)

// fakeReader serves one canned batch of logs on the first query and nothing
// afterwards.
type fakeReader struct {
	latest      uint64
	logs        []types.Log
	filterCalls int
}

func (f *fakeReader) LatestBlockNumber(context.Context) (uint64, error) {
	return f.latest, nil
}

func (f *fakeReader) FilterLogs(_ context.Context, _, _ uint64, _ []common.Address, _ []common.Hash) ([]types.Log, error) {
	f.filterCalls++
	if f.filterCalls == 1 {
		return f.logs, nil
	}
	return nil, nil
}

func scannerRegistry(t *testing.T) *registry.Registry {
	t.Helper()
	reg, err := registry.New(
		[]registry.TokenEntry{
			{Symbol: "0xBTC", Address: btcAddr, Decimals: 8},
			{Symbol: "WETH", Address: wethAddr, Decimals: 18},
			{Symbol: "DAI", Address: daiAddr, Decimals: 18},
		},
		[]registry.PoolEntry{
			{TokenA: "0xBTC", TokenB: "WETH", Address: btcWethPool},
			{TokenA: "DAI", TokenB: "WETH", Address: daiWethPool},
		},
	)
	if err != nil {
		t.Fatalf("build registry: %v", err)
	}
	return reg
}

func swapLog(t *testing.T, a0In, a1In, a0Out, a1Out int64) types.Log {
	t.Helper()
	pairABI, err := dex.V2PairABI()
	if err != nil {
		t.Fatalf("parse abi: %v", err)
	}
	data, err := pairABI.Events["Swap"].Inputs.NonIndexed().Pack(
		big.NewInt(a0In), big.NewInt(a1In), big.NewInt(a0Out), big.NewInt(a1Out),
	)
	if err != nil {
		t.Fatalf("pack swap: %v", err)
	}
	return types.Log{
		Address: common.HexToAddress(btcWethPool),
		Topics: []common.Hash{
			dex.SwapTopic,
			common.HexToHash("0x01"),
			common.HexToHash("0x02"),
		},
		Data: data,
	}
}

func noiseLog(topic common.Hash) types.Log {
	return types.Log{
		Address: common.HexToAddress(btcWethPool),
		Topics:  []common.Hash{topic},
		Data:    []byte{0xde, 0xad},
	}
}

func TestWindowVolumeCountsOnlySwaps(t *testing.T) {
	// 0xBTC sorts below WETH, so 0xBTC is native token0: 5 tokens in at 8
	// decimals.
	onlySwap := []types.Log{swapLog(t, 500_000_000, 0, 0, 1)}
	withNoise := append([]types.Log{
		noiseLog(dex.SyncTopic),
		noiseLog(dex.BurnTopic),
		noiseLog(dex.TransferTopic),
		noiseLog(dex.ApprovalTopic),
		noiseLog(dex.MintTopic),
		noiseLog(common.HexToHash("0xffffffffffffffffffffffffffffffffffffffffffffffffffffffffffffffff")),
	}, onlySwap...)

	reg := scannerRegistry(t)
	pool, err := reg.PoolByAddress(common.HexToAddress(btcWethPool))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var totals []decimal.Decimal
	for _, logs := range [][]types.Log{onlySwap, withNoise} {
		reader := &fakeReader{latest: 100_000, logs: logs}
		scanner := NewScanner(reader, reg, 13, nil)

		total, err := scanner.WindowVolume(context.Background(), pool, "0xBTC", 24*time.Hour)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		totals = append(totals, total)
	}

	if !totals[0].Equal(decimal.NewFromInt(5)) {
		t.Fatalf("swap-only volume mismatch: got %s, want 5", totals[0])
	}
	if !totals[0].Equal(totals[1]) {
		t.Fatalf("noise events changed the total: %s vs %s", totals[0], totals[1])
	}
}

func TestWindowVolumeBothDirections(t *testing.T) {
	logs := []types.Log{
		// 5 tokens flow in
		swapLog(t, 500_000_000, 0, 0, 1),
		// 2 tokens flow out
		swapLog(t, 0, 1, 200_000_000, 0),
	}
	reg := scannerRegistry(t)
	pool, err := reg.PoolByAddress(common.HexToAddress(btcWethPool))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	reader := &fakeReader{latest: 100_000, logs: logs}
	scanner := NewScanner(reader, reg, 13, nil)

	total, err := scanner.WindowVolume(context.Background(), pool, "0xBTC", 24*time.Hour)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !total.Equal(decimal.NewFromInt(7)) {
		t.Fatalf("volume mismatch: got %s, want 7", total)
	}
}

func TestWindowVolumeUntrackedPool(t *testing.T) {
	reg := scannerRegistry(t)
	pool, err := reg.PoolByAddress(common.HexToAddress(daiWethPool))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	reader := &fakeReader{latest: 100_000, logs: []types.Log{swapLog(t, 500_000_000, 0, 0, 1)}}
	scanner := NewScanner(reader, reg, 13, nil)

	total, err := scanner.WindowVolume(context.Background(), pool, "0xBTC", 24*time.Hour)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !total.IsZero() {
		t.Fatalf("expected zero volume for pool not trading the symbol, got %s", total)
	}
}

func TestWindowVolumeNonPositiveWindow(t *testing.T) {
	reg := scannerRegistry(t)
	pool, err := reg.PoolByAddress(common.HexToAddress(btcWethPool))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	reader := &fakeReader{latest: 100_000, logs: []types.Log{swapLog(t, 500_000_000, 0, 0, 1)}}
	scanner := NewScanner(reader, reg, 13, nil)

	for _, window := range []time.Duration{0, -time.Hour} {
		total, err := scanner.WindowVolume(context.Background(), pool, "0xBTC", window)
		if err != nil {
			t.Fatalf("window %s: unexpected error: %v", window, err)
		}
		if !total.IsZero() {
			t.Fatalf("window %s: expected zero volume, got %s", window, total)
		}
	}
	if reader.filterCalls != 0 {
		t.Fatalf("non-positive window queried logs %d times", reader.filterCalls)
	}
}

func TestWindowVolumeBatchesQueries(t *testing.T) {
	reg := scannerRegistry(t)
	pool, err := reg.PoolByAddress(common.HexToAddress(btcWethPool))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	reader := &fakeReader{latest: 100_000}
	scanner := NewScanner(reader, reg, 13, nil)

	if _, err := scanner.WindowVolume(context.Background(), pool, "0xBTC", 24*time.Hour); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// 24h at 13s per block is 6646 blocks, split into 2000-block batches
	if reader.filterCalls != 4 {
		t.Fatalf("filter call count mismatch: got %d, want 4", reader.filterCalls)
	}
}
