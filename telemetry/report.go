package telemetry

import "log/slog"

// DailyStatistics is the end-of-day record. Field order matches the
// reports.csv columns.
type DailyStatistics struct {
	Day             uint32 `csv:"day"`
	Rabbits         int    `csv:"rabbits"`
	Mice            int    `csv:"mice"`
	Squirrels       int    `csv:"squirrels"`
	Total           int    `csv:"total"`
	PredationDeaths int    `csv:"predation_deaths"`
	IllnessDeaths   int    `csv:"illness_deaths"`
	NewInfections   int    `csv:"new_infections"`
	Recoveries      int    `csv:"recoveries"`
	Reproductions   int    `csv:"reproductions"`
	SickPredators   int    `csv:"sick_predators"`
	LivePredators   int    `csv:"live_predators"`
}

// LogValue implements slog.LogValuer for structured logging.
func (s DailyStatistics) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Int("day", int(s.Day)),
		slog.Int("rabbits", s.Rabbits),
		slog.Int("mice", s.Mice),
		slog.Int("squirrels", s.Squirrels),
		slog.Int("total", s.Total),
		slog.Int("predation_deaths", s.PredationDeaths),
		slog.Int("illness_deaths", s.IllnessDeaths),
		slog.Int("new_infections", s.NewInfections),
		slog.Int("recoveries", s.Recoveries),
		slog.Int("reproductions", s.Reproductions),
		slog.Int("sick_predators", s.SickPredators),
		slog.Int("live_predators", s.LivePredators),
	)
}

// ReportLog is the append-only, day-ordered list of daily records.
type ReportLog struct {
	records []DailyStatistics
}

// NewReportLog creates an empty log.
func NewReportLog() *ReportLog {
	return &ReportLog{}
}

// Append adds a record. Records must arrive in increasing day order.
func (l *ReportLog) Append(s DailyStatistics) {
	if n := len(l.records); n > 0 && s.Day <= l.records[n-1].Day {
		panic("telemetry: report appended out of day order")
	}
	l.records = append(l.records, s)
}

// Len returns the number of records.
func (l *ReportLog) Len() int {
	return len(l.records)
}

// Records returns a copy of all records.
func (l *ReportLog) Records() []DailyStatistics {
	out := make([]DailyStatistics, len(l.records))
	copy(out, l.records)
	return out
}

// Last returns the most recent record, if any.
func (l *ReportLog) Last() (DailyStatistics, bool) {
	if len(l.records) == 0 {
		return DailyStatistics{}, false
	}
	return l.records[len(l.records)-1], true
}

// Column extracts one numeric series from the log, in day order.
func (l *ReportLog) Column(f func(DailyStatistics) int) []float64 {
	out := make([]float64, len(l.records))
	for i, r := range l.records {
		out[i] = float64(f(r))
	}
	return out
}
