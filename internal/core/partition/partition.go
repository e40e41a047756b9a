package partition

import "hash/fnv"

// Count is the fixed number of lock shards.
const Count = 64

// For returns the shard index for a lock key.
// Stable and deterministic: the same key always maps to the same shard.
func For(key string) int {
	h := fnv.New32a()
	h.Write([]byte(key))
	return int(h.Sum32() % Count)
}
