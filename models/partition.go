package models

import (
	"fmt"
	"strings"
)

// PartitionStrategy selects how records are split across parallel workers.
type PartitionStrategy string

const (
	// PartitionByKey keeps every student's records in a single shard.
	PartitionByKey PartitionStrategy = "key"
	// PartitionByRange splits records into contiguous ranges. A student whose
	// records cross a boundary gets a partial result from the last chunk.
	PartitionByRange PartitionStrategy = "range"
)

// ParsePartitionStrategy maps a flag value to a strategy. Empty means key.
func ParsePartitionStrategy(s string) (PartitionStrategy, error) {
	switch strings.TrimSpace(strings.ToLower(s)) {
	case "", string(PartitionByKey):
		return PartitionByKey, nil
	case string(PartitionByRange):
		return PartitionByRange, nil
	}
	return "", fmt.Errorf("unknown partition strategy %q (want key or range)", s)
}
