package replacer

import "container/heap"

// evictableHeap is a binary heap over evictionKeys, indexed by FrameID so
// that a frame's key can be located and fixed in O(log n) without a
// linear scan. This is the "indexed priority queue" alternative the
// eviction-ordering design calls out: record_access and set_evictable
// update a frame's key eagerly via heap.Fix instead of batching updates
// into a side map and re-heapifying at evict() time.
type evictableHeap struct {
	keys  []evictionKey
	index map[FrameID]int
}

func newEvictableHeap() *evictableHeap {
	return &evictableHeap{index: make(map[FrameID]int)}
}

func (h *evictableHeap) Len() int { return len(h.keys) }

// Less defines heap order so that index 0 always holds the frame with
// the largest backward k-distance: the frame container/heap would pop
// first under Less is exactly the one higherPriority ranks first.
func (h *evictableHeap) Less(i, j int) bool {
	return higherPriority(h.keys[i], h.keys[j])
}

func (h *evictableHeap) Swap(i, j int) {
	h.keys[i], h.keys[j] = h.keys[j], h.keys[i]
	h.index[h.keys[i].id] = i
	h.index[h.keys[j].id] = j
}

func (h *evictableHeap) Push(x any) {
	key := x.(evictionKey)
	h.index[key.id] = len(h.keys)
	h.keys = append(h.keys, key)
}

func (h *evictableHeap) Pop() any {
	n := len(h.keys)
	key := h.keys[n-1]
	h.keys = h.keys[:n-1]
	delete(h.index, key.id)
	return key
}

// upsert inserts key if its frame isn't tracked yet, or fixes its
// position if it is.
func (h *evictableHeap) upsert(key evictionKey) {
	if i, ok := h.index[key.id]; ok {
		h.keys[i] = key
		heap.Fix(h, i)
		return
	}
	heap.Push(h, key)
}

// remove drops a frame's key from the heap, if present.
func (h *evictableHeap) remove(id FrameID) {
	i, ok := h.index[id]
	if !ok {
		return
	}
	heap.Remove(h, i)
}

// popMax removes and returns the FrameID of the highest-priority
// evictable frame, if any.
func (h *evictableHeap) popMax() (FrameID, bool) {
	if h.Len() == 0 {
		return 0, false
	}
	key := heap.Pop(h).(evictionKey)
	return key.id, true
}
