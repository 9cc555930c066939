package dex

import (
	"math/big"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
)

func packSwapData(t *testing.T, a0In, a1In, a0Out, a1Out int64) []byte {
	t.Helper()
	pairABI, err := V2PairABI()
	if err != nil {
		t.Fatalf("parse abi: %v", err)
	}
	data, err := pairABI.Events["Swap"].Inputs.NonIndexed().Pack(
		big.NewInt(a0In), big.NewInt(a1In), big.NewInt(a0Out), big.NewInt(a1Out),
	)
	if err != nil {
		t.Fatalf("pack swap: %v", err)
	}
	return data
}

func TestDecodeSwap(t *testing.T) {
	log := types.Log{
		Topics: []common.Hash{
			SwapTopic,
			common.HexToHash("0x01"),
			common.HexToHash("0x02"),
		},
		Data: packSwapData(t, 100, 0, 0, 42),
	}

	got, err := DecodeSwap(log)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Amount0In.Cmp(big.NewInt(100)) != 0 {
		t.Fatalf("amount0In mismatch: got %s, want 100", got.Amount0In)
	}
	if got.Amount1Out.Cmp(big.NewInt(42)) != 0 {
		t.Fatalf("amount1Out mismatch: got %s, want 42", got.Amount1Out)
	}
	if got.Net0().Cmp(big.NewInt(100)) != 0 {
		t.Fatalf("net0 mismatch: got %s, want 100", got.Net0())
	}
	if got.Net1().Cmp(big.NewInt(-42)) != 0 {
		t.Fatalf("net1 mismatch: got %s, want -42", got.Net1())
	}
}

func TestDecodeSwapRejectsWrongTopicCount(t *testing.T) {
	data := packSwapData(t, 100, 0, 0, 42)
	cases := []struct {
		name   string
		topics []common.Hash
	}{
		{"no indexed topics", []common.Hash{SwapTopic}},
		{"one indexed topic", []common.Hash{SwapTopic, common.HexToHash("0x01")}},
		{"extra topic", []common.Hash{SwapTopic, common.HexToHash("0x01"), common.HexToHash("0x02"), common.HexToHash("0x03")}},
	}

	for _, tc := range cases {
		if _, err := DecodeSwap(types.Log{Topics: tc.topics, Data: data}); err == nil {
			t.Fatalf("%s: expected decode error", tc.name)
		}
	}
}

func TestDecodeSwapRejectsTruncatedData(t *testing.T) {
	log := types.Log{
		Topics: []common.Hash{
			SwapTopic,
			common.HexToHash("0x01"),
			common.HexToHash("0x02"),
		},
		Data: []byte{0xde, 0xad},
	}
	if _, err := DecodeSwap(log); err == nil {
		t.Fatalf("expected decode error for truncated data")
	}
}
