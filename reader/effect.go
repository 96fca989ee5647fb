package reader

import (
	"time"

	"github.com/callebjorkell/nfc-chime/led"
)

// chaser bounces a single bright pixel over a dim background.
type chaser struct {
	index     int
	dir       int
	lastFired time.Time
}

func (c *chaser) reset() {
	c.index = 0
	c.dir = 1
	c.lastFired = time.Time{}
}

// due reports whether a new chase step should be drawn at now.
func (c *chaser) due(now time.Time, interval time.Duration) bool {
	return c.lastFired.IsZero() || elapsedSince(c.lastFired, now) >= interval
}

// frame draws the current step from scratch.
func (c *chaser) frame(n int, color led.Color, dim uint8) []led.Color {
	f := led.Fill(n, color.Scale(dim))
	f[c.index] = color
	return f
}

// advance moves the cursor and flips direction once it lands on either end.
func (c *chaser) advance(n int) {
	if n < 2 {
		c.index = 0
		return
	}
	c.index += c.dir
	if c.index >= n-1 || c.index <= 0 {
		c.dir = -c.dir
	}
}

func rampComplete(elapsed, duration time.Duration) bool {
	return elapsed >= duration
}

// rampBrightness interpolates linearly from lo to hi over duration.
func rampBrightness(elapsed, duration time.Duration, lo, hi uint8) uint8 {
	if duration <= 0 || elapsed >= duration {
		return hi
	}
	if elapsed <= 0 {
		return lo
	}
	span := int64(hi) - int64(lo)
	return uint8(int64(lo) + span*int64(elapsed)/int64(duration))
}

// elapsedSince never goes negative, so a clock that steps backwards holds a timed effect instead of breaking it.
func elapsedSince(t, now time.Time) time.Duration {
	d := now.Sub(t)
	if d < 0 {
		return 0
	}
	return d
}
