// Command bufferpool replays a page-access trace against a buffer pool and
// reports read/write/hit statistics. Argument parsing lives here and the
// trace driver in package trace; the buffer manager, replacers, and disk
// manager do not know either package exists.
package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"bufferpool/config"
	"bufferpool/disk"
	"bufferpool/memory"
	"bufferpool/trace"
)

const usage = "usage: bufferpool <lru|clock> <trace-file>"

func main() {
	if err := run(os.Args[1:], os.Stdout); err != nil {
		fmt.Fprintln(os.Stderr, err)
		fmt.Fprintln(os.Stderr, usage)
		os.Exit(1)
	}
}

func run(args []string, out io.Writer) error {
	if len(args) != 2 {
		return fmt.Errorf("bufferpool: expected 2 arguments, got %d", len(args))
	}

	policy := memory.Policy(args[0])
	if policy != memory.PolicyLRU && policy != memory.PolicyClock {
		return fmt.Errorf("bufferpool: unknown policy %q", args[0])
	}

	tracePath := args[1]
	traceFile, err := os.Open(tracePath)
	if err != nil {
		return fmt.Errorf("bufferpool: open trace file: %w", err)
	}
	defer traceFile.Close()

	events, err := trace.Parse(traceFile)
	if err != nil {
		return fmt.Errorf("bufferpool: parse trace: %w", err)
	}

	cfg, err := config.Load("bufferpool.yaml")
	if err != nil {
		return err
	}
	cfg.Policy = policy // the CLI's policy argument always wins over config

	dbPath, err := os.CreateTemp("", "bufferpool-*.db")
	if err != nil {
		return fmt.Errorf("bufferpool: create backing file: %w", err)
	}
	dbPath.Close()
	defer os.Remove(dbPath.Name())

	dsm, err := disk.NewFileManager(dbPath.Name())
	if err != nil {
		return fmt.Errorf("bufferpool: open disk manager: %w", err)
	}

	// The backing file starts empty: allocate every page the trace refers
	// to, so that each fault-in finds a full page on disk.
	for _, ev := range events {
		for disk.PageId(dsm.NumPages()) <= ev.PageId {
			if _, err := dsm.NewPage(); err != nil {
				dsm.Close()
				return fmt.Errorf("bufferpool: allocate backing pages: %w", err)
			}
		}
	}

	bm, err := memory.NewBufferManager(dsm, cfg.FrameCount, cfg.Policy)
	if err != nil {
		dsm.Close()
		return fmt.Errorf("bufferpool: build buffer manager: %w", err)
	}

	slog.Debug("bufferpool: replay starting", "events", len(events), "policy", cfg.Policy, "frameCount", cfg.FrameCount)
	replayStart := time.Now()
	trace.Replay(bm, events)
	replayElapsed := time.Since(replayStart)
	if err := bm.Close(); err != nil {
		return fmt.Errorf("bufferpool: teardown: %w", err)
	}

	stats := bm.Stats()
	fmt.Fprintf(out, "read_io: %d\n", stats.ReadIO)
	fmt.Fprintf(out, "write_io: %d\n", stats.WriteIO)
	fmt.Fprintf(out, "total_io: %d\n", stats.TotalIO())
	fmt.Fprintf(out, "hits: %d\n", stats.Hits)
	fmt.Fprintf(out, "hit_rate: %.2f\n", stats.HitRate(len(events)))
	fmt.Fprintf(out, "replay_time_ms: %d\n", replayElapsed.Milliseconds())
	return nil
}
