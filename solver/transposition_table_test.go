package solver

import (
	"testing"

	"github.com/matryer/is"
	"lukechampine.com/frand"
)

func TestPutAndGet(t *testing.T) {
	is := is.New(t)
	tt := NewTranspositionTable(0)

	tt.Put(123, 42, false)
	is.Equal(tt.Get(123), uint8(42))

	// Same key overwrites.
	tt.Put(123, 99, false)
	is.Equal(tt.Get(123), uint8(99))

	// Absent key misses.
	is.Equal(tt.Get(456), uint8(0))
}

func TestReset(t *testing.T) {
	is := is.New(t)
	tt := NewTranspositionTable(0)
	tt.Put(123, 42, false)
	tt.Put(456, 99, false)

	tt.Reset()

	is.Equal(tt.Get(123), uint8(0))
	is.Equal(tt.Get(456), uint8(0))
	is.Equal(tt.lookups, uint64(2))
	is.Equal(tt.hits, uint64(0))
}

func TestCollisionProbing(t *testing.T) {
	is := is.New(t)
	tt := NewTranspositionTable(0)

	// 100 distinct random keys into 128 slots; double hashing must
	// find a free slot for each, and each must be retrievable.
	keys := make(map[uint64]uint8, 100)
	for len(keys) < 100 {
		k := frand.Uint64n(keyMask-1) + 1
		if _, ok := keys[k]; ok {
			continue
		}
		v := uint8(len(keys)%250) + 1
		keys[k] = v
		tt.Put(k, v, false)
	}
	for k, v := range keys {
		is.Equal(tt.Get(k), v)
	}
}

func TestProbeSequenceExhaustion(t *testing.T) {
	is := is.New(t)
	tt := NewTranspositionTable(4)

	// Saturate a tiny table; overflowing entries are dropped and both
	// Put and Get must still terminate.
	for k := uint64(1); k <= 32; k++ {
		tt.Put(k, uint8(k), false)
	}
	stored := 0
	for k := uint64(1); k <= 32; k++ {
		if v := tt.Get(k); v != 0 {
			is.Equal(v, uint8(k))
			stored++
		}
	}
	is.Equal(stored, 4)
	// A key never inserted misses even though no slot is empty.
	is.Equal(tt.Get(1 << 40), uint8(0))
}

func TestWideKeyPanics(t *testing.T) {
	is := is.New(t)
	defer func() {
		is.True(recover() != nil)
	}()
	tt := NewTranspositionTable(0)
	tt.Put(1<<keyBits, 1, false)
}

func TestZeroKeyIsNeverStored(t *testing.T) {
	is := is.New(t)
	tt := NewTranspositionTable(0)
	tt.Put(0, 42, false)
	is.Equal(tt.Get(0), uint8(0))
}
