package replacer

// frameNode is the per-frame access record kept in the replacer's node
// store. history is ordered most-recent first and never grows past k
// entries (invariant 2).
type frameNode struct {
	id        FrameID
	history   []Timestamp
	evictable bool
}

// recordAccess prepends ts to the node's history, dropping the oldest
// entry once the history already holds k timestamps.
func (n *frameNode) recordAccess(ts Timestamp, k int) {
	n.history = append(n.history, 0)
	copy(n.history[1:], n.history[:len(n.history)-1])
	n.history[0] = ts
	if len(n.history) > k {
		n.history = n.history[:k]
	}
}

// newFrameNode creates a freshly-seen frame node with a single access
// recorded and evictable=false, per invariant 5.
func newFrameNode(id FrameID, ts Timestamp) *frameNode {
	return &frameNode{id: id, history: []Timestamp{ts}, evictable: false}
}
