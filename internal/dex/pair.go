package dex

import (
	"context"
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"

	"priceScope/internal/model"
)

// ContractCaller is the single chain read pair state access needs.
// *chain.Client satisfies it.
type ContractCaller interface {
	CallContract(ctx context.Context, msg ethereum.CallMsg, blockNumber *big.Int) ([]byte, error)
}

// ReadReserves returns a pair's raw integer reserves in the pair's native
// storage order.
func ReadReserves(ctx context.Context, caller ContractCaller, pool common.Address) (*big.Int, *big.Int, error) {
	pairABI, err := V2PairABI()
	if err != nil {
		return nil, nil, fmt.Errorf("parse pair abi: %w", err)
	}

	data, err := pairABI.Pack("getReserves")
	if err != nil {
		return nil, nil, fmt.Errorf("pack getReserves: %w", err)
	}
	msg := ethereum.CallMsg{To: &pool, Data: data}
	resp, err := caller.CallContract(ctx, msg, nil)
	if err != nil {
		return nil, nil, fmt.Errorf("call getReserves: %w", err)
	}
	values, err := pairABI.Unpack("getReserves", resp)
	if err != nil {
		return nil, nil, fmt.Errorf("unpack getReserves: %w", err)
	}
	if len(values) < 2 {
		return nil, nil, fmt.Errorf("getReserves return size %d", len(values))
	}

	reserve0, err := asBigInt(values[0])
	if err != nil {
		return nil, nil, fmt.Errorf("reserve0: %w", err)
	}
	reserve1, err := asBigInt(values[1])
	if err != nil {
		return nil, nil, fmt.Errorf("reserve1: %w", err)
	}
	return reserve0, reserve1, nil
}

// DecodeSwap unpacks the four transfer amounts from a Swap log.
func DecodeSwap(log types.Log) (model.SwapEventData, error) {
	pairABI, err := V2PairABI()
	if err != nil {
		return model.SwapEventData{}, fmt.Errorf("parse pair abi: %w", err)
	}

	// topic0 plus the two indexed addresses (sender, to)
	if len(log.Topics) != 3 {
		return model.SwapEventData{}, fmt.Errorf("swap topic count %d", len(log.Topics))
	}

	values, err := pairABI.Unpack("Swap", log.Data)
	if err != nil {
		return model.SwapEventData{}, fmt.Errorf("unpack swap: %w", err)
	}
	if len(values) != 4 {
		return model.SwapEventData{}, fmt.Errorf("swap payload size %d", len(values))
	}

	amounts := make([]*big.Int, 4)
	for i, value := range values {
		amount, err := asBigInt(value)
		if err != nil {
			return model.SwapEventData{}, fmt.Errorf("swap amount %d: %w", i, err)
		}
		amounts[i] = amount
	}

	return model.SwapEventData{
		Amount0In:  amounts[0],
		Amount1In:  amounts[1],
		Amount0Out: amounts[2],
		Amount1Out: amounts[3],
	}, nil
}

func asBigInt(value interface{}) (*big.Int, error) {
	switch v := value.(type) {
	case *big.Int:
		return new(big.Int).Set(v), nil
	case big.Int:
		return new(big.Int).Set(&v), nil
	case uint8:
		return new(big.Int).SetUint64(uint64(v)), nil
	case uint16:
		return new(big.Int).SetUint64(uint64(v)), nil
	case uint32:
		return new(big.Int).SetUint64(uint64(v)), nil
	case uint64:
		return new(big.Int).SetUint64(v), nil
	default:
		return nil, fmt.Errorf("unsupported int type %T", value)
	}
}
