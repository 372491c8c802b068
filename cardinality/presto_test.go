package cardinality

import (
	"fmt"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPrestoLargeDistinctCountWithinTolerance(t *testing.T) {
	const n = 500_000
	h := NewPresto(14)
	for i := 0; i < n; i++ {
		h.Add(IntKey(i))
	}
	h.ComputeCardinality()

	got := h.Cardinality()
	errPct := math.Abs(float64(got)-float64(n)) / float64(n)
	assert.Lessf(t, errPct, 0.05, "estimate %d too far from %d (%.2f%% error)", got, n, errPct*100)
}

func TestPrestoEmptyEstimator(t *testing.T) {
	h := NewPresto(4)
	assert.Equal(t, uint64(0), h.Cardinality())
	h.ComputeCardinality()
	assert.Equal(t, uint64(0), h.Cardinality())
}

func TestPrestoRegistersMonotonic(t *testing.T) {
	h := NewPresto(6)
	snapshot := func() []uint8 {
		out := make([]uint8, h.m)
		for i := range out {
			out[i] = h.get(uint64(i))
		}
		return out
	}

	for i := 0; i < 5000; i++ {
		before := snapshot()
		h.Add(StringKey(fmt.Sprintf("presto-%d", i)))
		after := snapshot()
		for j := range before {
			require.GreaterOrEqual(t, after[j], before[j])
		}
	}
}

func TestPrestoDeterministic(t *testing.T) {
	build := func() uint64 {
		h := NewPresto(8)
		for i := 0; i < 2000; i++ {
			h.Add(IntKey(i % 750))
		}
		h.ComputeCardinality()
		return h.Cardinality()
	}
	assert.Equal(t, build(), build())
}

func TestPrestoOrderIndependent(t *testing.T) {
	keys := make([]Key, 0, 3000)
	for i := 0; i < 3000; i++ {
		keys = append(keys, IntKey(i%1000))
	}

	forward := NewPresto(10)
	for _, k := range keys {
		forward.Add(k)
	}
	forward.ComputeCardinality()

	reversed := NewPresto(10)
	for i := len(keys) - 1; i >= 0; i-- {
		reversed.Add(keys[i])
	}
	reversed.ComputeCardinality()

	assert.Equal(t, forward.Cardinality(), reversed.Cardinality())
}

// Overflow bits are only materialized when a register's value exceeds
// what DenseBits alone can hold, and cleared again if put() is ever
// called with a value whose high bits are zero.
func TestPrestoOverflowEncoding(t *testing.T) {
	h := NewPresto(4)

	h.put(0, 5) // fits entirely in the dense bits (5 < 16)
	assert.Equal(t, uint8(5), h.dense[0])
	_, hasOverflow := h.over[0]
	assert.False(t, hasOverflow)

	h.put(0, 20) // 20 = 0b10100, needs DenseBits(4) low bits (0b0100) + overflow high bit
	assert.Equal(t, uint8(0b0100), h.dense[0])
	hi, hasOverflow := h.over[0]
	assert.True(t, hasOverflow)
	assert.Equal(t, uint8(1), hi)
	assert.Equal(t, uint8(20), h.get(0))

	h.put(0, 3) // back under DenseBits: overflow entry must clear
	_, hasOverflow = h.over[0]
	assert.False(t, hasOverflow)
	assert.Equal(t, uint8(3), h.get(0))
}

func TestTrailingOnePosConvention(t *testing.T) {
	// bit 0 set: zero trailing zeros, position 1.
	assert.Equal(t, 1, trailingOnePos(0b0001, 4))
	// bit 2 set (lowest two bits zero): position 3.
	assert.Equal(t, 3, trailingOnePos(0b0100, 4))
	// field entirely zero within width 4: exhausts all bits, width+1.
	assert.Equal(t, 5, trailingOnePos(0, 4))
}

func TestLeftmostOnePosConvention(t *testing.T) {
	// top bit of a 4-bit field set: position 1.
	assert.Equal(t, 1, leftmostOnePos(0b1000, 4))
	// second-from-top bit set: position 2.
	assert.Equal(t, 2, leftmostOnePos(0b0100, 4))
	// field entirely zero: position 0, per the MSB convention's explicit
	// "zero when empty" rule (distinct from the Presto/LSB convention).
	assert.Equal(t, 0, leftmostOnePos(0, 4))
}
