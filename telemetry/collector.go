package telemetry

// DayCounters accumulates events within one simulated day. A fresh value is
// created at every day boundary and passed by pointer to the systems that
// record events.
type DayCounters struct {
	PredationDeaths int
	IllnessDeaths   int
	NewInfections   int
	Recoveries      int
	Reproductions   int
}

// NewDayCounters returns a zeroed accumulator.
func NewDayCounters() *DayCounters {
	return &DayCounters{}
}

// Deaths returns all deaths recorded so far today.
func (c *DayCounters) Deaths() int {
	return c.PredationDeaths + c.IllnessDeaths
}
