package memory

import (
	"fmt"
	"log/slog"

	"bufferpool/disk"
)

// Policy names which Replacer a BufferManager is built against.
type Policy string

const (
	PolicyLRU   Policy = "lru"
	PolicyClock Policy = "clock"
)

// NewReplacer builds the Replacer implementation named by policy, sized to
// capacity frames.
func NewReplacer(policy Policy, capacity int) (Replacer, error) {
	switch policy {
	case PolicyLRU:
		return NewLRUReplacer(capacity), nil
	case PolicyClock:
		return NewClockReplacer(capacity), nil
	default:
		return nil, fmt.Errorf("memory: unknown replacer policy %q", policy)
	}
}

// Stats is a snapshot of the buffer manager's monotone counters.
type Stats struct {
	ReadIO  int
	WriteIO int
	Hits    int
}

// TotalIO is ReadIO + WriteIO.
func (s Stats) TotalIO() int {
	return s.ReadIO + s.WriteIO
}

// HitRate returns hits / accesses * 100, or 0 if accesses is 0.
func (s Stats) HitRate(accesses int) float64 {
	if accesses == 0 {
		return 0
	}
	return float64(s.Hits) / float64(accesses) * 100
}

// BufferManager maps page ids to frames, enforces pin-count discipline, and
// coordinates faulting pages in from and flushing dirty pages out to the
// Data Storage Manager.
type BufferManager struct {
	frames     []*Page
	pageTable  map[disk.PageId]FrameId
	freeFrames []FrameId // never-populated frame ids, consumed front-first
	dsm        disk.Manager
	replacer   Replacer

	readIO  int
	writeIO int
	hits    int
}

// NewBufferManager builds a pool of frameCount frames over dsm, using the
// named replacer policy to select eviction victims among unpinned frames.
func NewBufferManager(dsm disk.Manager, frameCount int, policy Policy) (*BufferManager, error) {
	replacer, err := NewReplacer(policy, frameCount)
	if err != nil {
		return nil, err
	}
	frames := make([]*Page, frameCount)
	free := make([]FrameId, frameCount)
	for i := 0; i < frameCount; i++ {
		frames[i] = newPage(FrameId(i))
		free[i] = FrameId(i)
	}
	return &BufferManager{
		frames:     frames,
		pageTable:  make(map[disk.PageId]FrameId, frameCount),
		freeFrames: free,
		dsm:        dsm,
		replacer:   replacer,
	}, nil
}

// Stats returns a snapshot of the manager's read/write/hit counters.
func (m *BufferManager) Stats() Stats {
	return Stats{ReadIO: m.readIO, WriteIO: m.writeIO, Hits: m.hits}
}

// FixPage brings pageId into memory if it is not already resident, pins it,
// and ORs dirty into its dirty flag. It returns false only when the pool is
// exhausted (every frame pinned) and pageId was not already resident.
func (m *BufferManager) FixPage(pageId disk.PageId, dirty bool) (*Page, bool) {
	if frameId, ok := m.pageTable[pageId]; ok {
		m.hits++
		page := m.frames[frameId]
		if page.PinCount() == 0 {
			m.replacer.Remove(frameId)
		}
		page.incrementPinCount()
		page.SetDirty(dirty)
		slog.Debug("bufferpool: fix hit", "pageId", pageId, "frameId", frameId, "pinCount", page.PinCount())
		return page, true
	}

	frameId, ok := m.selectVictim()
	if !ok {
		slog.Debug("bufferpool: fix miss, pool exhausted", "pageId", pageId)
		return nil, false
	}

	page := m.frames[frameId]
	page.zero()
	if err := m.dsm.ReadPage(pageId, page.data); err != nil {
		// Roll the frame back to unoccupied before propagating: it must
		// not be mistaken for a resident page after a failed fault-in. The
		// frame is not returned to the free list -- it may have come from
		// the replacer, not the free list, and a frame id must never visit
		// the free list twice.
		page.install(disk.InvalidPageId)
		slog.Error("memory: fault-in failed", "pageId", pageId, "frameId", frameId, "err", err)
		panic(fmt.Sprintf("memory: fault-in page %d into frame %d: %v", pageId, frameId, err))
	}
	m.readIO++

	page.install(pageId)
	page.incrementPinCount()
	page.SetDirty(dirty)
	m.pageTable[pageId] = frameId
	slog.Debug("bufferpool: fix miss, loaded", "pageId", pageId, "frameId", frameId, "readIO", m.readIO)
	return page, true
}

// FixNewPage allocates a fresh page on disk via the Data Storage Manager,
// installs it pinned and dirty in a frame, and returns its page id along
// with the frame. It returns false if the pool is exhausted.
func (m *BufferManager) FixNewPage() (disk.PageId, *Page, bool) {
	frameId, ok := m.selectVictim()
	if !ok {
		return disk.InvalidPageId, nil, false
	}

	pageId, err := m.dsm.NewPage()
	if err != nil {
		// As in FixPage, the frame is not returned to the free list -- it
		// may have come from the replacer, not the free list.
		slog.Error("memory: allocate new page failed", "frameId", frameId, "err", err)
		panic(fmt.Sprintf("memory: allocate new page for frame %d: %v", frameId, err))
	}

	page := m.frames[frameId]
	page.zero()
	page.install(pageId)
	page.incrementPinCount()
	page.SetDirty(true)
	m.pageTable[pageId] = frameId
	slog.Debug("bufferpool: fix new page", "pageId", pageId, "frameId", frameId)
	return pageId, page, true
}

// UnfixPage releases one claim on pageId. When the pin count reaches zero,
// the frame is re-enrolled with the replacer and becomes eligible for
// eviction. It returns false if pageId is not resident.
func (m *BufferManager) UnfixPage(pageId disk.PageId) (FrameId, bool) {
	frameId, ok := m.pageTable[pageId]
	if !ok {
		return 0, false
	}
	page := m.frames[frameId]
	page.decrementPinCount() // panics on underflow
	if page.PinCount() == 0 {
		m.replacer.Insert(frameId)
	}
	return frameId, true
}

// selectVictim returns a frame ready to take on new residency: from the
// free list if any frame has never been populated, else from the replacer.
// A replacer-supplied victim is flushed if dirty and removed from the page
// table before being handed back; the caller installs the new residency.
func (m *BufferManager) selectVictim() (FrameId, bool) {
	if len(m.freeFrames) > 0 {
		frameId := m.freeFrames[0]
		m.freeFrames = m.freeFrames[1:]
		return frameId, true
	}

	frameId, ok := m.replacer.Victim()
	if !ok {
		return 0, false
	}
	page := m.frames[frameId]
	if page.PinCount() != 0 {
		slog.Error("memory: replacer elected pinned frame as victim", "frameId", frameId, "pageId", page.pageId, "pinCount", page.PinCount())
		panic(fmt.Sprintf("memory: replacer elected pinned frame %d as victim", frameId))
	}
	if page.IsDirty() {
		if err := m.dsm.WritePage(page.pageId, page.data); err != nil {
			// The dirty flag must survive a failed write-back, and the
			// frame must not be handed out as the new page's home.
			slog.Error("memory: write-back failed during eviction", "frameId", frameId, "pageId", page.pageId, "err", err)
			panic(fmt.Sprintf("memory: write back frame %d (page %d): %v", frameId, page.pageId, err))
		}
		m.writeIO++
		page.dirty = false
		slog.Debug("bufferpool: evicted dirty frame", "frameId", frameId, "pageId", page.pageId, "writeIO", m.writeIO)
	}
	delete(m.pageTable, page.pageId)
	return frameId, true
}

// Flush writes every dirty frame back to disk, in no particular order. It
// is intended as the deterministic teardown operation; it tolerates being
// called on a pool with no dirty frames.
func (m *BufferManager) Flush() error {
	for _, page := range m.frames {
		if !page.IsDirty() {
			continue
		}
		if err := m.dsm.WritePage(page.pageId, page.data); err != nil {
			return fmt.Errorf("memory: flush frame %d (page %d): %w", page.frameId, page.pageId, err)
		}
		m.writeIO++
		page.dirty = false
	}
	return nil
}

// Close flushes all dirty frames and closes the underlying Data Storage
// Manager.
func (m *BufferManager) Close() error {
	if err := m.Flush(); err != nil {
		return err
	}
	return m.dsm.Close()
}
