package classifier

import (
	"context"
	"errors"
	"sync"
	"time"
)

const DefaultQuietPeriod = 300 * time.Millisecond

var SupersededError = errors.New("classification superseded by a newer request")

// Debouncer coalesces bursts of classification requests sharing a key (one
// key per rank being edited). A request waits for the quiet period and is
// dropped with SupersededError if a newer request for the same key arrives
// before its result is ready.
type Debouncer struct {
	classifier RankClassifier
	quiet      time.Duration

	mu      sync.Mutex
	pending map[string]*debounceEntry
}

type debounceEntry struct {
	gen    uint64
	cancel context.CancelFunc
}

func NewDebouncer(classifier RankClassifier, quiet time.Duration) *Debouncer {
	return &Debouncer{
		classifier: classifier,
		quiet:      quiet,
		pending:    make(map[string]*debounceEntry),
	}
}

func (d *Debouncer) Classify(ctx context.Context, key string, in Input) (Result, error) {
	d.mu.Lock()
	entry, ok := d.pending[key]
	if !ok {
		entry = &debounceEntry{}
		d.pending[key] = entry
	}
	if entry.cancel != nil {
		entry.cancel()
	}
	entry.gen++
	gen := entry.gen
	reqCtx, cancel := context.WithCancel(ctx)
	entry.cancel = cancel
	d.mu.Unlock()

	defer cancel()

	timer := time.NewTimer(d.quiet)
	defer timer.Stop()

	select {
	case <-reqCtx.Done():
		d.release(key, entry, gen)
		if ctx.Err() != nil {
			return Result{}, ctx.Err()
		}
		return Result{}, SupersededError
	case <-timer.C:
	}

	res, err := d.classifier.Classify(reqCtx, in)
	if !d.release(key, entry, gen) {
		return Result{}, SupersededError
	}
	return res, err
}

// release drops the pending entry if gen is still the latest request for the
// key. It reports whether it was.
func (d *Debouncer) release(key string, entry *debounceEntry, gen uint64) bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	if entry.gen != gen {
		return false
	}
	if d.pending[key] == entry {
		delete(d.pending, key)
	}
	return true
}
