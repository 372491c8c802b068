package replacer

import "github.com/mackushev/bustub/internal/optional"

// evictionKey orders evictable frames by backward k-distance without
// carrying the current timestamp explicitly: since current_time is
// common to every frame being compared, "current_time - kth" orders
// identically to "-kth", so only the kth timestamp (when present) or the
// frame's oldest timestamp (when it isn't) needs to be stored.
//
// kth holds Some(timestamp) once the frame has k recorded accesses, the
// timestamp being the k-th most recent one; it is None while the frame
// has fewer than k accesses, in which case the backward k-distance is
// +infinity and oldest (the back of the frame's history, i.e. its
// first-ever recorded access) breaks ties among other +infinity frames.
type evictionKey struct {
	id     FrameID
	oldest Timestamp
	kth    optional.Optional[Timestamp]
}

// computeEvictionKey derives the eviction key for a frame's current
// history under a replacer configured with the given k.
func computeEvictionKey(n *frameNode, k int) evictionKey {
	key := evictionKey{id: n.id, oldest: n.history[len(n.history)-1]}
	if len(n.history) == k {
		key.kth = optional.Some(n.history[k-1])
	}
	return key
}

// higherPriority reports whether a should be evicted before b: a has
// the larger backward k-distance.
//
//   - a frame with no kth access (fewer than k accesses, +infinity
//     distance) always outranks one that has a kth access.
//   - between two such frames, the one with the smaller oldest
//     timestamp (the one seen first) outranks the other.
//   - between two frames that both have a kth access, the one with the
//     smaller kth timestamp has the larger distance and outranks the
//     other; timestamps are unique (invariant 3), so no tie remains.
func higherPriority(a, b evictionKey) bool {
	aKth, aHasKth := a.kth.Get()
	bKth, bHasKth := b.kth.Get()

	switch {
	case !aHasKth && !bHasKth:
		return a.oldest < b.oldest
	case !aHasKth:
		return true
	case !bHasKth:
		return false
	default:
		return aKth < bKth
	}
}
