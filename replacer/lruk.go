package replacer

import (
	"sync"
	"sync/atomic"

	"github.com/mackushev/bustub/internal/assert"
)

// LRUKReplacer tracks per-frame access history for a buffer pool and
// names the evictable frame with the largest backward k-distance on
// demand. It is safe for concurrent use by many buffer-pool workers.
//
// Two disjoint critical sections guard the replacer's state: storeMu
// guards the node store (per-frame history and evictability), heapMu
// guards the evictable heap. evict is the only operation that needs
// both; it always acquires storeMu before heapMu, matching the order
// every other multi-lock-adjacent call implicitly follows, so no
// deadlock cycle can form.
type LRUKReplacer struct {
	numFrames uint64
	k         int

	nextTimestamp atomic.Uint64

	storeMu sync.Mutex
	nodes   map[FrameID]*frameNode

	heapMu sync.Mutex
	heap   *evictableHeap
}

// New constructs a replacer bounding legal frame ids to [0, numFrames)
// and keeping up to k most-recent accesses per frame. k must be at
// least 1 and numFrames must be positive; violating either is a caller
// bug, not a recoverable condition.
func New(numFrames uint64, k int) *LRUKReplacer {
	assert.Assert(numFrames > 0, "numFrames must be greater than zero")
	assert.Assert(k >= 1, "k must be at least 1")

	return &LRUKReplacer{
		numFrames: numFrames,
		k:         k,
		nodes:     make(map[FrameID]*frameNode),
		heap:      newEvictableHeap(),
	}
}

// RecordAccess registers one access to id, assigning it the next
// timestamp. kind is an advisory hint and never affects ordering. If
// the frame is currently evictable, its position in the eviction
// structure is refreshed before RecordAccess returns.
func (r *LRUKReplacer) RecordAccess(id FrameID, kind AccessType) {
	assert.Assert(uint64(id) < r.numFrames, "frame id %d is out of range [0, %d)", id, r.numFrames)
	_ = kind // advisory only; accepted for interface compatibility with the buffer pool contract.

	ts := Timestamp(r.nextTimestamp.Add(1) - 1)

	r.storeMu.Lock()
	node, ok := r.nodes[id]
	if !ok {
		node = newFrameNode(id, ts)
		r.nodes[id] = node
	} else {
		node.recordAccess(ts, r.k)
	}
	evictableNow := node.evictable
	var key evictionKey
	if evictableNow {
		key = computeEvictionKey(node, r.k)
	}
	r.storeMu.Unlock()

	if evictableNow {
		r.heapMu.Lock()
		r.heap.upsert(key)
		r.heapMu.Unlock()
	}
}

// SetEvictable flips a tracked frame's evictability. It silently
// no-ops if the frame is untracked or already at the requested state,
// so repeated calls with the same flag are idempotent.
func (r *LRUKReplacer) SetEvictable(id FrameID, evictable bool) {
	r.storeMu.Lock()
	node, ok := r.nodes[id]
	if !ok || node.evictable == evictable {
		r.storeMu.Unlock()
		return
	}
	node.evictable = evictable
	var key evictionKey
	if evictable {
		key = computeEvictionKey(node, r.k)
	}
	r.storeMu.Unlock()

	r.heapMu.Lock()
	if evictable {
		r.heap.upsert(key)
	} else {
		r.heap.remove(id)
	}
	r.heapMu.Unlock()
}

// Remove drops a frame's node and history entirely. The frame must
// currently be evictable; removing a pinned (non-evictable) frame is a
// caller bug and aborts. Removing an untracked frame is a no-op.
func (r *LRUKReplacer) Remove(id FrameID) {
	r.storeMu.Lock()
	node, ok := r.nodes[id]
	if !ok {
		r.storeMu.Unlock()
		return
	}
	assert.Assert(node.evictable, "remove called on frame %d which is not evictable", id)
	delete(r.nodes, id)
	r.storeMu.Unlock()

	r.heapMu.Lock()
	r.heap.remove(id)
	r.heapMu.Unlock()
}

// Evict names and removes the evictable frame with the largest backward
// k-distance, returning false if no frame is evictable.
func (r *LRUKReplacer) Evict() (FrameID, bool) {
	r.storeMu.Lock()
	defer r.storeMu.Unlock()

	r.heapMu.Lock()
	defer r.heapMu.Unlock()

	id, ok := r.heap.popMax()
	if !ok {
		return 0, false
	}
	delete(r.nodes, id)
	return id, true
}

// Size reports the number of currently evictable frames.
func (r *LRUKReplacer) Size() uint64 {
	r.heapMu.Lock()
	defer r.heapMu.Unlock()
	return uint64(r.heap.Len())
}
