package solver

import "fmt"

// DefaultTableSize is the number of slots in a freshly constructed
// transposition table.
const DefaultTableSize = 128

const (
	keyBits = 56
	keyMask = uint64(1)<<keyBits - 1
)

// tableEntry is a single slot. A zero key marks an empty slot, which
// means the empty-board key (also zero) is never cached; the search
// re-expands that one node per depth, a harmless quirk.
type tableEntry struct {
	key   uint64 // 56 significant bits
	value uint8
}

// TranspositionTable memoizes score bounds for previously searched
// positions, keyed by the board's canonical 56-bit key. Capacity is
// fixed at construction; entries are never evicted individually, only
// wiped wholesale by Reset. Collisions are resolved by double hashing.
//
// Known limitation, kept for output parity with the reference corpus:
// a stored value of 0 cannot be told apart from a miss, and the
// isUpperBound flag accepted by Put is not represented in storage.
type TranspositionTable struct {
	table []tableEntry

	lookups uint64
	hits    uint64
	stores  uint64
}

// NewTranspositionTable creates a table with the given number of
// slots; size <= 0 selects DefaultTableSize.
func NewTranspositionTable(size int) *TranspositionTable {
	if size < 2 {
		size = DefaultTableSize
	}
	return &TranspositionTable{table: make([]tableEntry, size)}
}

// Reset empties every slot and zeroes the counters. No allocation.
func (t *TranspositionTable) Reset() {
	clear(t.table)
	t.lookups = 0
	t.hits = 0
	t.stores = 0
}

// mix1 is the splitmix64 finalizer; it decides the probe start slot.
func mix1(x uint64) uint64 {
	x ^= x >> 30
	x *= 0xbf58476d1ce4e5b9
	x ^= x >> 27
	x *= 0x94d049bb133111eb
	x ^= x >> 31
	return x
}

// mix2 is the murmur3 finalizer; it decides the probe step.
func mix2(x uint64) uint64 {
	x ^= x >> 33
	x *= 0xff51afd7ed558ccd
	x ^= x >> 33
	x *= 0xc4ceb9fe1a85ec53
	x ^= x >> 33
	return x
}

// probe returns the start slot and step for key. The step is nonzero
// and forced odd so it is coprime with power-of-two table sizes,
// giving a full-period probe sequence.
func (t *TranspositionTable) probe(key uint64) (idx, step uint64) {
	n := uint64(len(t.table))
	idx = mix1(key) % n
	step = (1 + mix2(key)%(n-1)) | 1
	if step >= n {
		step = 1
	}
	return idx, step
}

func checkKey(key uint64) {
	if key > keyMask {
		panic(fmt.Sprintf("transposition key %d exceeds %d bits", key, keyBits))
	}
}

// Put stores value under key, overwriting a previous value for the
// same key. The isUpperBound flag is accepted for interface parity but
// not stored. A key wider than 56 bits is a caller bug and panics.
// If every slot along the probe sequence is occupied by other keys,
// the entry is dropped.
func (t *TranspositionTable) Put(key uint64, value uint8, isUpperBound bool) {
	_ = isUpperBound
	checkKey(key)
	idx, step := t.probe(key)
	n := uint64(len(t.table))
	for i := 0; i < len(t.table); i++ {
		e := &t.table[idx]
		if e.key == 0 || e.key == key {
			e.key = key
			e.value = value
			t.stores++
			return
		}
		idx = (idx + step) % n
	}
}

// Get returns the value stored under key, or 0 if the key is absent.
func (t *TranspositionTable) Get(key uint64) uint8 {
	checkKey(key)
	t.lookups++
	idx, step := t.probe(key)
	n := uint64(len(t.table))
	for i := 0; i < len(t.table); i++ {
		e := t.table[idx]
		if e.key == 0 {
			return 0
		}
		if e.key == key {
			t.hits++
			return e.value
		}
		idx = (idx + step) % n
	}
	return 0
}
