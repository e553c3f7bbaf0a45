// Package trace replays a recorded sequence of page accesses against a
// memory.BufferManager. It is thin glue between a text file and the buffer
// manager's fix/unfix pair, with no page-content interpretation of its own.
package trace

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"bufferpool/disk"
	"bufferpool/memory"
)

// Event is one parsed line of a trace file: whether the access dirties the
// page, and the 0-based page id to access.
type Event struct {
	Dirty  bool
	PageId disk.PageId
}

// Parse reads UTF-8 trace text, one "dirty_flag,page_id_1based" event per
// line, and returns the parsed events in file order. dirty_flag is an
// unsigned byte (non-zero means dirty); page_id_1based is translated to a
// 0-based disk.PageId by subtracting one.
func Parse(r io.Reader) ([]Event, error) {
	scanner := bufio.NewScanner(r)
	var events []Event
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		parts := strings.SplitN(line, ",", 2)
		if len(parts) != 2 {
			return nil, fmt.Errorf("trace: line %d: expected \"dirty,page_id\", got %q", lineNo, line)
		}
		dirtyFlag, err := strconv.ParseUint(strings.TrimSpace(parts[0]), 10, 8)
		if err != nil {
			return nil, fmt.Errorf("trace: line %d: invalid dirty flag %q: %w", lineNo, parts[0], err)
		}
		pageId1Based, err := strconv.ParseUint(strings.TrimSpace(parts[1]), 10, 64)
		if err != nil {
			return nil, fmt.Errorf("trace: line %d: invalid page id %q: %w", lineNo, parts[1], err)
		}
		if pageId1Based == 0 {
			return nil, fmt.Errorf("trace: line %d: page id must be 1-based (got 0)", lineNo)
		}
		events = append(events, Event{
			Dirty:  dirtyFlag != 0,
			PageId: disk.PageId(pageId1Based - 1),
		})
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("trace: read: %w", err)
	}
	return events, nil
}

// Replay drives each event through bm as an immediate fix_page/unfix_page
// pair, in order. Events that cannot be fixed (pool exhausted) are skipped
// rather than aborting the whole replay, since that is a benign outcome.
func Replay(bm *memory.BufferManager, events []Event) {
	for _, ev := range events {
		if _, ok := bm.FixPage(ev.PageId, ev.Dirty); !ok {
			continue
		}
		bm.UnfixPage(ev.PageId)
	}
}
