package partition

import "hash/fnv"

// Count is the default number of lock stripes a grouping key can map to.
const Count = 256

// Of returns the stripe for key within [0, n). Stable and deterministic:
// the same key always maps to the same stripe for a given n.
// Uses FNV-32a (stdlib, fast, well-distributed).
func Of(key string, n int) int {
	if n <= 1 {
		return 0
	}
	h := fnv.New32a()
	h.Write([]byte(key))
	return int(h.Sum32() % uint32(n))
}
