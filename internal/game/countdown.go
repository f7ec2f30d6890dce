package game

// Countdown is a per-attempt timer counting whole seconds down from a limit.
// Reaching zero stops the count but never resolves the attempt.
type Countdown struct {
	limit     int
	remaining int
	running   bool
}

// Start initializes remaining to limit and marks the countdown running.
func (c *Countdown) Start(limit int) {
	if limit < 0 {
		limit = 0
	}
	c.limit = limit
	c.remaining = limit
	c.running = true
}

// Restart re-initializes the countdown after a failed attempt.
func (c *Countdown) Restart(limit int) {
	c.Start(limit)
}

// Pause halts the countdown without touching the remaining time.
func (c *Countdown) Pause() {
	c.running = false
}

// Tick decrements the remaining time by one second when running.
// It returns true if the countdown can keep ticking afterwards.
func (c *Countdown) Tick() bool {
	if !c.running || c.remaining <= 0 {
		return false
	}
	c.remaining--
	return c.remaining > 0
}

// Remaining returns the remaining whole seconds, always in [0, limit].
func (c *Countdown) Remaining() int { return c.remaining }

// Limit returns the limit the countdown was last started with.
func (c *Countdown) Limit() int { return c.limit }

// Running reports whether the countdown is active.
func (c *Countdown) Running() bool { return c.running }
