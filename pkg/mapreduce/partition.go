package mapreduce

import (
	"errors"
	"fmt"

	"github.com/cespare/xxhash/v2"
	"github.com/dtnitsch/feeday/models"
)

// ErrInvalidChunkCount is returned when fewer than one chunk is requested.
var ErrInvalidChunkCount = errors.New("chunk count must be at least 1")

// Chunk splits records into n contiguous ranges of len/n records each; the
// last range also takes the remainder. Ranges share the backing array with
// records. Empty ranges, which occur when there are fewer records than
// chunks, are dropped.
func Chunk(records []models.FeeRecord, n int) ([][]models.FeeRecord, error) {
	if n < 1 {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidChunkCount, n)
	}
	// With more chunks than records every range but the last is empty.
	if n > len(records) {
		if len(records) == 0 {
			return [][]models.FeeRecord{}, nil
		}
		return [][]models.FeeRecord{records[:len(records):len(records)]}, nil
	}

	size := len(records) / n
	chunks := make([][]models.FeeRecord, 0, n)
	for i := 0; i < n; i++ {
		start := i * size
		end := start + size
		if i == n-1 {
			end = len(records)
		}
		if start == end {
			continue
		}
		chunks = append(chunks, records[start:end:end])
	}
	return chunks, nil
}

// ShardByKey assigns every student to one of n shards by hashing the
// student id, so each student's full record set lands in exactly one shard.
// Records keep their original relative order within a shard. Empty shards
// are dropped.
func ShardByKey(records []models.FeeRecord, n int) ([][]models.FeeRecord, error) {
	if n < 1 {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidChunkCount, n)
	}
	// No more shards than records can be non-empty.
	n = min(n, max(len(records), 1))

	shards := make([][]models.FeeRecord, n)
	for _, r := range records {
		idx := xxhash.Sum64String(r.StudentID) % uint64(n)
		shards[idx] = append(shards[idx], r)
	}

	nonEmpty := shards[:0]
	for _, shard := range shards {
		if len(shard) > 0 {
			nonEmpty = append(nonEmpty, shard)
		}
	}
	return nonEmpty, nil
}

// Partition splits records using the given strategy.
func Partition(records []models.FeeRecord, n int, strategy models.PartitionStrategy) ([][]models.FeeRecord, error) {
	switch strategy {
	case models.PartitionByRange:
		return Chunk(records, n)
	case models.PartitionByKey, "":
		return ShardByKey(records, n)
	}
	return nil, fmt.Errorf("unknown partition strategy %q", strategy)
}

// SpanningKeys returns the students whose records appear in more than one
// chunk, in natural order. With range partitioning these students get a
// partial result from whichever chunk is merged last.
func SpanningKeys(chunks [][]models.FeeRecord) []string {
	firstChunk := make(map[string]int)
	spanning := make(map[string]struct{})
	for i, chunk := range chunks {
		for _, r := range chunk {
			first, seen := firstChunk[r.StudentID]
			if !seen {
				firstChunk[r.StudentID] = i
				continue
			}
			if first != i {
				spanning[r.StudentID] = struct{}{}
			}
		}
	}

	keys := make([]string, 0, len(spanning))
	for k := range spanning {
		keys = append(keys, k)
	}
	models.SortStudentIDs(keys)
	return keys
}

// ChunkSizes returns the record count of each chunk.
func ChunkSizes(chunks [][]models.FeeRecord) []int {
	sizes := make([]int, len(chunks))
	for i, c := range chunks {
		sizes[i] = len(c)
	}
	return sizes
}
