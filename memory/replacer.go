package memory

// Replacer owns the candidate set of unpinned resident frames and chooses a
// victim among them when the buffer manager needs to reclaim one. There are
// exactly two implementations -- LRUReplacer and ClockReplacer -- and the
// buffer manager is agnostic to which one it is wired against.
type Replacer interface {
	// Insert adds frameId to the candidate set if absent; if already
	// present, it refreshes the frame's recency/reference state according
	// to the policy without changing set membership.
	Insert(frameId FrameId)

	// Remove removes frameId from the candidate set. No-op if absent.
	Remove(frameId FrameId)

	// Victim elects a frame for eviction and removes it from the candidate
	// set. The second return value is false when the candidate set is
	// empty.
	Victim() (FrameId, bool)

	// Size reports the number of frames currently tracked.
	Size() int
}
