package coordinator

import "sync"

// Cursor is the last block height whose full range has been scanned.
// It never moves backwards until Reset.
type Cursor struct {
	mu     sync.Mutex
	height uint64
	seeded bool
}

func NewCursor() *Cursor {
	return &Cursor{}
}

// Seed sets the starting height if the cursor has not been seeded yet.
func (c *Cursor) Seed(height uint64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.seeded {
		return
	}
	c.height = height
	c.seeded = true
}

// Load returns the current height and whether the cursor was seeded.
func (c *Cursor) Load() (uint64, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.height, c.seeded
}

// Advance moves the cursor to height when it is ahead of the current one and
// returns the resulting value.
func (c *Cursor) Advance(height uint64) uint64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.seeded || height > c.height {
		c.height = height
		c.seeded = true
	}
	return c.height
}

func (c *Cursor) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.height = 0
	c.seeded = false
}
