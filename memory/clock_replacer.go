package memory

import "container/ring"

// clockEntry is the per-node payload stored in the ring: which frame it
// names and whether it has been referenced since the hand last passed it.
type clockEntry struct {
	frameId FrameId
	refBit  bool
}

// ClockReplacer implements second-chance replacement over a circular
// doubly-linked list (container/ring, the stdlib's own circular list
// primitive, reached for here rather than hand-rolled pointer chasing), a
// map from FrameId to ring node, and a hand that sweeps the ring.
type ClockReplacer struct {
	capacity int
	count    int
	hand     *ring.Ring // nil iff count == 0
	nodes    map[FrameId]*ring.Ring
}

// NewClockReplacer builds a clock replacer sized to capacity frames.
func NewClockReplacer(capacity int) *ClockReplacer {
	return &ClockReplacer{
		capacity: capacity,
		nodes:    make(map[FrameId]*ring.Ring, capacity),
	}
}

// Insert implements Replacer.
func (c *ClockReplacer) Insert(frameId FrameId) {
	if node, ok := c.nodes[frameId]; ok {
		node.Value.(*clockEntry).refBit = true
		return
	}

	if c.count < c.capacity {
		node := ring.New(1)
		node.Value = &clockEntry{frameId: frameId, refBit: true}
		if c.hand == nil {
			c.hand = node
		} else {
			// Splice immediately before the hand, so it is the last node
			// inspected in the current revolution.
			c.hand.Prev().Link(node)
		}
		c.nodes[frameId] = node
		c.count++
		return
	}

	// Overflow: size == capacity. Sweep from the hand, clearing reference
	// bits, until an unreferenced node is found; reuse that node in place
	// for the new frame rather than allocating and evicting separately.
	for {
		entry := c.hand.Value.(*clockEntry)
		if entry.refBit {
			entry.refBit = false
			c.hand = c.hand.Next()
			continue
		}
		delete(c.nodes, entry.frameId)
		entry.frameId = frameId
		entry.refBit = true
		c.nodes[frameId] = c.hand
		c.hand = c.hand.Next()
		return
	}
}

// Remove implements Replacer.
func (c *ClockReplacer) Remove(frameId FrameId) {
	node, ok := c.nodes[frameId]
	if !ok {
		return
	}
	delete(c.nodes, frameId)
	if c.count == 1 {
		c.hand = nil
	} else {
		if c.hand == node {
			c.hand = node.Next()
		}
		node.Prev().Unlink(1)
	}
	c.count--
}

// Victim implements Replacer: the hand sweeps the ring, clearing reference
// bits, until it finds a node whose bit is already clear.
func (c *ClockReplacer) Victim() (FrameId, bool) {
	if c.hand == nil {
		return 0, false
	}
	for {
		entry := c.hand.Value.(*clockEntry)
		if entry.refBit {
			entry.refBit = false
			c.hand = c.hand.Next()
			continue
		}

		victim := c.hand
		frameId := entry.frameId
		delete(c.nodes, frameId)
		if c.count == 1 {
			c.hand = nil
		} else {
			next := c.hand.Next()
			victim.Prev().Unlink(1)
			c.hand = next
		}
		c.count--
		return frameId, true
	}
}

// Size implements Replacer.
func (c *ClockReplacer) Size() int {
	return c.count
}
