package telemetry

import (
	"log/slog"
	"time"
)

// Phase names for the simulation step, in frame order.
const (
	PhaseDaily        = "daily"
	PhaseSteering     = "steering"
	PhaseAdvance      = "advance"
	PhaseReproduction = "reproduction"
	PhasePredation    = "predation"
	PhasePurge        = "purge"
)

// Phases lists every phase in frame order.
var Phases = []string{
	PhaseDaily, PhaseSteering, PhaseAdvance,
	PhaseReproduction, PhasePredation, PhasePurge,
}

// DayPerf is the wall-clock cost of one simulated day. It covers the frames
// up to and including the one whose clock crossing closed the day, so the
// daily block that filed the day's report is part of it.
type DayPerf struct {
	Day            uint32
	Frames         int
	FrameTime      time.Duration // sum over the day's frames
	MaxFrame       time.Duration
	DayBlock       time.Duration // daily update run by the closing frame
	OrganismFrames int           // live organisms summed over frames
	Organisms      int           // live organisms when the day closed
	Phases         map[string]time.Duration
}

// AvgFrame is the mean frame time over the day.
func (d DayPerf) AvgFrame() time.Duration {
	if d.Frames == 0 {
		return 0
	}
	return d.FrameTime / time.Duration(d.Frames)
}

// PerOrganism is the frame time spent per live organism per frame.
func (d DayPerf) PerOrganism() time.Duration {
	if d.OrganismFrames == 0 {
		return 0
	}
	return d.FrameTime / time.Duration(d.OrganismFrames)
}

// PhasePct is the share of the day's frame time spent in phase.
func (d DayPerf) PhasePct(phase string) float64 {
	if d.FrameTime <= 0 {
		return 0
	}
	return float64(d.Phases[phase]) / float64(d.FrameTime) * 100
}

// LogValue implements slog.LogValuer for structured logging.
func (d DayPerf) LogValue() slog.Value {
	attrs := []slog.Attr{
		slog.Any("day", d.Day),
		slog.Int("frames", d.Frames),
		slog.Int64("avg_frame_us", d.AvgFrame().Microseconds()),
		slog.Int64("max_frame_us", d.MaxFrame.Microseconds()),
		slog.Int64("day_block_us", d.DayBlock.Microseconds()),
		slog.Int("organisms", d.Organisms),
		slog.Int64("ns_per_organism", d.PerOrganism().Nanoseconds()),
	}
	for _, phase := range Phases {
		if pct := d.PhasePct(phase); pct > 0.1 {
			attrs = append(attrs, slog.Float64(phase+"_pct", float64(int(pct*10))/10))
		}
	}
	return slog.GroupValue(attrs...)
}

// DayPerfCSV is the perf.csv row for one day.
type DayPerfCSV struct {
	Day             uint32  `csv:"day"`
	Frames          int     `csv:"frames"`
	AvgFrameUS      int64   `csv:"avg_frame_us"`
	MaxFrameUS      int64   `csv:"max_frame_us"`
	DayBlockUS      int64   `csv:"day_block_us"`
	Organisms       int     `csv:"organisms"`
	NSPerOrganism   int64   `csv:"ns_per_organism"`
	DailyPct        float64 `csv:"daily_pct"`
	SteeringPct     float64 `csv:"steering_pct"`
	AdvancePct      float64 `csv:"advance_pct"`
	ReproductionPct float64 `csv:"reproduction_pct"`
	PredationPct    float64 `csv:"predation_pct"`
	PurgePct        float64 `csv:"purge_pct"`
}

// ToCSV flattens the day for perf.csv.
func (d DayPerf) ToCSV() DayPerfCSV {
	return DayPerfCSV{
		Day:             d.Day,
		Frames:          d.Frames,
		AvgFrameUS:      d.AvgFrame().Microseconds(),
		MaxFrameUS:      d.MaxFrame.Microseconds(),
		DayBlockUS:      d.DayBlock.Microseconds(),
		Organisms:       d.Organisms,
		NSPerOrganism:   d.PerOrganism().Nanoseconds(),
		DailyPct:        d.PhasePct(PhaseDaily),
		SteeringPct:     d.PhasePct(PhaseSteering),
		AdvancePct:      d.PhasePct(PhaseAdvance),
		ReproductionPct: d.PhasePct(PhaseReproduction),
		PredationPct:    d.PhasePct(PhasePredation),
		PurgePct:        d.PhasePct(PhasePurge),
	}
}

// DayProfiler times engine frames by phase and rolls them up per simulated
// day. It keeps the last few closed days for the on-screen panel.
type DayProfiler struct {
	now func() time.Time

	days   []DayPerf // ring of closed days
	next   int
	closed int

	open       DayPerf
	frameStart time.Time
	phaseStart time.Time
	phase      string

	// Render loop timing, independent of simulated days
	lastFrameTime time.Time
	frameDuration time.Duration
}

// NewDayProfiler creates a profiler that averages over windowDays closed days.
func NewDayProfiler(windowDays int) *DayProfiler {
	if windowDays < 1 {
		windowDays = 7
	}
	p := &DayProfiler{
		now:  time.Now,
		days: make([]DayPerf, windowDays),
	}
	p.open = p.fresh(0)
	return p
}

func (p *DayProfiler) fresh(day uint32) DayPerf {
	return DayPerf{Day: day, Phases: make(map[string]time.Duration, len(Phases))}
}

// BeginFrame starts timing an engine step.
func (p *DayProfiler) BeginFrame() {
	p.frameStart = p.now()
	p.phase = ""
}

// Phase closes the running phase and starts timing the next one.
func (p *DayProfiler) Phase(name string) {
	now := p.now()
	p.endPhase(now)
	p.phaseStart = now
	p.phase = name
}

func (p *DayProfiler) endPhase(now time.Time) {
	if p.phase == "" {
		return
	}
	d := now.Sub(p.phaseStart)
	p.open.Phases[p.phase] += d
	if p.phase == PhaseDaily {
		p.open.DayBlock += d
	}
	p.phase = ""
}

// EndFrame finishes the step. organisms is the live count after the purge.
func (p *DayProfiler) EndFrame(organisms int) {
	now := p.now()
	p.endPhase(now)

	d := now.Sub(p.frameStart)
	p.open.Frames++
	p.open.FrameTime += d
	if d > p.open.MaxFrame {
		p.open.MaxFrame = d
	}
	p.open.OrganismFrames += organisms
	p.open.Organisms = organisms
}

// CloseDay files the open day under the given day number and starts the next.
func (p *DayProfiler) CloseDay(day uint32) DayPerf {
	done := p.open
	done.Day = day

	p.days[p.next] = done
	p.next = (p.next + 1) % len(p.days)
	if p.closed < len(p.days) {
		p.closed++
	}
	p.open = p.fresh(day + 1)
	return done
}

// RecordFrame records render loop timing for the window front-end.
func (p *DayProfiler) RecordFrame() {
	now := p.now()
	if !p.lastFrameTime.IsZero() {
		p.frameDuration = now.Sub(p.lastFrameTime)
	}
	p.lastFrameTime = now
}

// PerfStats aggregates the recent days for display.
type PerfStats struct {
	Days         int // closed days in the window
	AvgFrame     time.Duration
	MaxFrame     time.Duration
	FramesPerDay float64
	AvgDayBlock  time.Duration
	PerOrganism  time.Duration

	PhaseAvg map[string]time.Duration // per frame
	PhasePct map[string]float64

	// Render loop
	FrameDuration time.Duration
	FPS           float64
}

// Stats aggregates the closed days in the window. Before the first day closes
// it reports the day in progress so the panel is never blank.
func (p *DayProfiler) Stats() PerfStats {
	s := PerfStats{
		PhaseAvg:      make(map[string]time.Duration),
		PhasePct:      make(map[string]float64),
		FrameDuration: p.frameDuration,
	}
	if p.frameDuration > 0 {
		s.FPS = float64(time.Second) / float64(p.frameDuration)
	}

	days := p.days[:p.closed]
	if p.closed == 0 {
		days = []DayPerf{p.open}
	}

	var total DayPerf
	total.Phases = make(map[string]time.Duration)
	for _, d := range days {
		total.Frames += d.Frames
		total.FrameTime += d.FrameTime
		total.DayBlock += d.DayBlock
		total.OrganismFrames += d.OrganismFrames
		if d.MaxFrame > total.MaxFrame {
			total.MaxFrame = d.MaxFrame
		}
		for phase, dur := range d.Phases {
			total.Phases[phase] += dur
		}
	}
	if total.Frames == 0 {
		return s
	}

	s.Days = p.closed
	s.AvgFrame = total.AvgFrame()
	s.MaxFrame = total.MaxFrame
	s.PerOrganism = total.PerOrganism()
	if p.closed > 0 {
		s.FramesPerDay = float64(total.Frames) / float64(p.closed)
		s.AvgDayBlock = total.DayBlock / time.Duration(p.closed)
	}
	for phase, dur := range total.Phases {
		s.PhaseAvg[phase] = dur / time.Duration(total.Frames)
		s.PhasePct[phase] = total.PhasePct(phase)
	}
	return s
}
