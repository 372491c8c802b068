package cardinality

import (
	"fmt"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Scenario H1: with b=14, inserting one million distinct integer keys
// should yield an estimate within ±5% of 1,000,000.
func TestScenarioH1LargeDistinctCount(t *testing.T) {
	const n = 1_000_000
	h := New(14)
	for i := 0; i < n; i++ {
		h.Add(IntKey(i))
	}
	h.ComputeCardinality()

	got := h.Cardinality()
	errPct := math.Abs(float64(got)-float64(n)) / float64(n)
	assert.Lessf(t, errPct, 0.05, "estimate %d too far from %d (%.2f%% error)", got, n, errPct*100)
}

// Scenario H2: a freshly constructed estimator reports cardinality 0
// both before any ComputeCardinality call and after one, since all of
// its registers are still zero.
func TestScenarioH2EmptyEstimator(t *testing.T) {
	h := New(4)
	assert.Equal(t, uint64(0), h.Cardinality())

	h.ComputeCardinality()
	assert.Equal(t, uint64(0), h.Cardinality())
}

func TestCardinalityZeroBeforeCompute(t *testing.T) {
	h := New(10)
	h.Add(IntKey(42))
	assert.Equal(t, uint64(0), h.Cardinality())
}

// Monotonic registers: Add never decreases any register.
func TestRegistersMonotonic(t *testing.T) {
	h := New(6)
	snapshot := func() []uint8 {
		out := make([]uint8, len(h.registers))
		copy(out, h.registers)
		return out
	}

	for i := 0; i < 5000; i++ {
		before := snapshot()
		h.Add(StringKey(fmt.Sprintf("key-%d", i)))
		after := snapshot()
		for j := range before {
			require.GreaterOrEqual(t, after[j], before[j])
		}
	}
}

// Determinism: the same hasher and key sequence always produces the
// same estimate.
func TestDeterministic(t *testing.T) {
	build := func() uint64 {
		h := New(8)
		for i := 0; i < 2000; i++ {
			h.Add(IntKey(i % 750))
		}
		h.ComputeCardinality()
		return h.Cardinality()
	}

	assert.Equal(t, build(), build())
}

// Order-independence: cardinality depends only on the multiset of
// keys, not on insertion order.
func TestOrderIndependent(t *testing.T) {
	keys := make([]Key, 0, 3000)
	for i := 0; i < 3000; i++ {
		keys = append(keys, IntKey(i%1000))
	}

	forward := New(10)
	for _, k := range keys {
		forward.Add(k)
	}
	forward.ComputeCardinality()

	reversed := New(10)
	for i := len(keys) - 1; i >= 0; i-- {
		reversed.Add(keys[i])
	}
	reversed.ComputeCardinality()

	assert.Equal(t, forward.Cardinality(), reversed.Cardinality())
}

func TestNegativeNBitsClampedToZero(t *testing.T) {
	h := New(-5)
	assert.Equal(t, 0, h.nBits)
	assert.Equal(t, uint64(1), h.m)
}

func TestNBitsClampedToSixtyFour(t *testing.T) {
	h := New(100)
	assert.Equal(t, 64, h.nBits)
}

func TestIntAndStringDomainsAreDistinct(t *testing.T) {
	hasher := NewHasher()
	assert.NotEqual(t, hasher.HashInt64(0), hasher.HashString(""))
}
