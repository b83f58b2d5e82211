package fetch

import (
	"io"
	"sync"
)

// Hook receives byte-count progress for a transfer. Start is called once
// with the expected total (-1 when the server sends no Content-Length),
// then Advance for every chunk read. Implementations must be fast; the
// download reader calls Advance inline.
type Hook interface {
	Start(total int64)
	Advance(n int64)
}

// NopHook discards progress.
type NopHook struct{}

func (NopHook) Start(int64)   {}
func (NopHook) Advance(int64) {}

// Tracker is a Hook that keeps running byte counts and exposes the
// completed fraction. Safe for concurrent use.
type Tracker struct {
	// OnUpdate, when set, is called after every Advance with the current
	// counts. Called outside the Tracker's lock.
	OnUpdate func(done, total int64)

	mu    sync.Mutex
	total int64
	done  int64
}

// Start implements Hook.
func (t *Tracker) Start(total int64) {
	t.mu.Lock()
	t.total = total
	t.done = 0
	t.mu.Unlock()
}

// Advance implements Hook.
func (t *Tracker) Advance(n int64) {
	t.mu.Lock()
	t.done += n
	done, total := t.done, t.total
	t.mu.Unlock()
	if t.OnUpdate != nil {
		t.OnUpdate(done, total)
	}
}

// Done returns the bytes seen so far.
func (t *Tracker) Done() int64 {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.done
}

// Total returns the expected byte count, -1 or 0 when unknown.
func (t *Tracker) Total() int64 {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.total
}

// Fraction returns completion in [0,1], or 0 while the total is unknown.
func (t *Tracker) Fraction() float64 {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.total <= 0 {
		return 0
	}
	return float64(t.done) / float64(t.total)
}

// countingReader reports every chunk read to the hook before handing the
// bytes on.
type countingReader struct {
	r    io.Reader
	hook Hook
}

func (c *countingReader) Read(p []byte) (int, error) {
	n, err := c.r.Read(p)
	if n > 0 {
		c.hook.Advance(int64(n))
	}
	return n, err
}
