package sim

// Clock turns frame time into simulated days.
type Clock struct {
	dayLength float64
	acc       float64
	day       uint32
}

// NewClock creates a clock with the given day length in seconds.
func NewClock(dayLength float64) *Clock {
	if dayLength <= 0 {
		panic("sim: day length must be positive")
	}
	return &Clock{dayLength: dayLength}
}

// Advance adds dt seconds and reports whether a day boundary was crossed.
// The accumulator restarts from zero on a crossing, so a single long frame
// yields one day, never several.
func (c *Clock) Advance(dt float64) bool {
	c.acc += dt
	if c.acc < c.dayLength {
		return false
	}
	c.acc = 0
	c.day++
	return true
}

// Day returns the number of completed days.
func (c *Clock) Day() uint32 {
	return c.day
}

// Progress returns the fraction of the current day that has elapsed.
func (c *Clock) Progress() float64 {
	return c.acc / c.dayLength
}
