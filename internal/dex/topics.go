package dex

import "github.com/ethereum/go-ethereum/common"

// EventKind classifies a pair log by its topic0 signature.
type EventKind int

const (
	EventUnknown EventKind = iota
	EventSwap
	EventSync
	EventBurn
	EventTransfer
	EventApproval
	EventMint
)

// Topic0 signatures emitted by V2 pair contracts.
var (
	SwapTopic     = common.HexToHash("0xd78ad95fa46c994b6551d0da85fc275fe613ce37657fb8d5e3d130840159d822")
	SyncTopic     = common.HexToHash("0x1c411e9a96e071241c2f21f7726b17ae89e3cab4c78be50e062b03a9fffbbad1")
	BurnTopic     = common.HexToHash("0xdccd412f0b1252819cb1fd330b93224ca42612892bb3f4f789976e6d81936496")
	TransferTopic = common.HexToHash("0xddf252ad1be2c89b69c2b068fc378daa952ba7f163c4a11628f55a4df523b3ef")
	ApprovalTopic = common.HexToHash("0x8c5be1e5ebec7d5bd14f71427d1e84f3dd0314c0f7b2291e5b200ac8c7c3b925")
	MintTopic     = common.HexToHash("0x4c209b5fc8ad50758f13e2e1088ba56a560dff690a1c6fef26394f4c03821c4f")
)

var kindsByTopic = map[common.Hash]EventKind{
	SwapTopic:     EventSwap,
	SyncTopic:     EventSync,
	BurnTopic:     EventBurn,
	TransferTopic: EventTransfer,
	ApprovalTopic: EventApproval,
	MintTopic:     EventMint,
}

// Classify maps a topic0 hash to its event kind.
func Classify(topic0 common.Hash) EventKind {
	if kind, ok := kindsByTopic[topic0]; ok {
		return kind
	}
	return EventUnknown
}

func (k EventKind) String() string {
	switch k {
	case EventSwap:
		return "swap"
	case EventSync:
		return "sync"
	case EventBurn:
		return "burn"
	case EventTransfer:
		return "transfer"
	case EventApproval:
		return "approval"
	case EventMint:
		return "mint"
	default:
		return "unknown"
	}
}
