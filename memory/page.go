package memory

import (
	"log/slog"

	"bufferpool/disk"
)

// FrameId names a slot in the buffer pool, stable for the lifetime of the
// pool.
type FrameId int

// Page is a frame-resident value: identity, bytes, dirty flag, pin count.
// It is the in-memory representation of a disk page while it is cached.
type Page struct {
	frameId  FrameId
	pageId   disk.PageId
	data     []byte
	dirty    bool
	pinCount int
}

func newPage(frameId FrameId) *Page {
	return &Page{
		frameId: frameId,
		pageId:  disk.InvalidPageId,
		data:    make([]byte, disk.PageSize),
	}
}

// FrameId returns the stable slot this page occupies.
func (p *Page) FrameId() FrameId { return p.frameId }

// PageId returns the logical page identity currently loaded into this
// frame, or disk.InvalidPageId if the frame has never been populated.
func (p *Page) PageId() disk.PageId { return p.pageId }

// Data returns the frame's byte buffer. Callers may read and write it in
// place; mutating it does not itself set the dirty flag -- call SetDirty.
func (p *Page) Data() []byte { return p.data }

// IsDirty reports whether the frame's contents diverge from disk.
func (p *Page) IsDirty() bool { return p.dirty }

// SetDirty ORs dirty into the frame's dirty flag. It never clears it;
// clearing happens only after a successful write-back.
func (p *Page) SetDirty(dirty bool) {
	p.dirty = p.dirty || dirty
}

// PinCount returns the number of outstanding claims on this frame.
func (p *Page) PinCount() int { return p.pinCount }

// zero clears the page's byte buffer. Used when a frame is about to take on
// new content read from disk, so that a short read can never leak the
// previous resident's bytes.
func (p *Page) zero() {
	for i := range p.data {
		p.data[i] = 0
	}
}

// incrementPinCount records a new claim on the frame.
func (p *Page) incrementPinCount() {
	p.pinCount++
}

// decrementPinCount releases a claim on the frame. Decrementing a frame
// with a zero pin count is a programming error: the caller unpinned a page
// it never held, or unpinned it twice.
func (p *Page) decrementPinCount() {
	if p.pinCount <= 0 {
		slog.Error("memory: decrementPinCount called on frame with pin count 0", "frameId", p.frameId, "pageId", p.pageId)
		panic("memory: decrementPinCount called on frame with pin count 0")
	}
	p.pinCount--
}

// install resets the frame's identity and clears its dirty flag, for reuse
// by a new resident page. The caller is responsible for populating Data.
func (p *Page) install(pageId disk.PageId) {
	p.pageId = pageId
	p.dirty = false
	p.pinCount = 0
}
