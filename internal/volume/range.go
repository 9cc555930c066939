package volume

import "fmt"

// blockRange is an inclusive block range.
type blockRange struct {
	From uint64
	To   uint64
}

// splitRange splits a block range into batches of size batchSize, so a long
// trailing window never turns into one oversized log query.
func splitRange(from, to, batchSize uint64) ([]blockRange, error) {
	if batchSize == 0 {
		return nil, fmt.Errorf("batch size must be greater than zero")
	}
	if to < from {
		return nil, fmt.Errorf("to block must be >= from block")
	}

	ranges := make([]blockRange, 0)
	start := from
	for start <= to {
		remaining := to - start + 1
		var end uint64
		if remaining <= batchSize {
			end = to
		} else {
			end = start + batchSize - 1
		}
		ranges = append(ranges, blockRange{From: start, To: end})
		if end == to {
			break
		}
		start = end + 1
	}

	return ranges, nil
}
