// Package cardinality implements two probabilistic distinct-count
// estimators over streams of typed keys: HyperLogLog (HLL) and its
// dense/overflow-register variant, HyperLogLog-Presto. Both share the
// same register-max-update rule and cardinality formula; they differ
// only in how a register is stored and in which end of the hash's value
// field supplies the update.
//
// Neither estimator is safe for concurrent use: each instance is
// single-writer, and callers are expected to serialize their own Add
// calls, exactly as the buffer pool serializes access to a replacer
// frame before calling into it.
package cardinality

import (
	"encoding/binary"

	"github.com/cespare/xxhash/v2"
)

// Hasher produces a uniform 64-bit hash for a typed key. String and
// integer hash domains must be distinct: HashInt64(0) must not collide
// with HashString("") by construction, not by chance.
type Hasher interface {
	HashInt64(v int64) uint64
	HashString(v string) uint64
}

// domain tags keep the int64 and string hash domains apart even though
// both eventually feed the same 64-bit hash function.
const (
	intDomainTag    byte = 0x01
	stringDomainTag byte = 0x02
)

// xxHasher is the default Hasher, grounded on xxhash usage elsewhere in
// the retrieval pack (ristretto's cache sketch and the count-min-sketch
// reference implementations all key off cespare/xxhash/v2).
type xxHasher struct{}

// NewHasher returns the default 64-bit hash function used by both
// estimators when the caller has no reason to inject another one.
func NewHasher() Hasher { return xxHasher{} }

func (xxHasher) HashInt64(v int64) uint64 {
	var buf [9]byte
	buf[0] = intDomainTag
	binary.LittleEndian.PutUint64(buf[1:], uint64(v))
	return xxhash.Sum64(buf[:])
}

func (xxHasher) HashString(v string) uint64 {
	buf := make([]byte, 1+len(v))
	buf[0] = stringDomainTag
	copy(buf[1:], v)
	return xxhash.Sum64(buf)
}

// Key is a typed value an estimator can hash: either a 64-bit signed
// integer or a variable-length string, per the external hashing
// contract. It's a small closed set of monomorphisations rather than a
// generic hash trait, matching the "explicit set of monomorphisations"
// alternative called out for replacing template instantiation.
type Key interface {
	hash(h Hasher) uint64
}

// IntKey wraps a 64-bit signed integer key.
type IntKey int64

func (k IntKey) hash(h Hasher) uint64 { return h.HashInt64(int64(k)) }

// StringKey wraps a variable-length string key.
type StringKey string

func (k StringKey) hash(h Hasher) uint64 { return h.HashString(string(k)) }
