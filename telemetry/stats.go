package telemetry

import (
	"log/slog"
	"sort"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// Summary holds descriptive statistics of a series.
type Summary struct {
	N      int
	Mean   float64
	Std    float64
	Min    float64
	Median float64
	Max    float64
}

// Mean returns the arithmetic mean, or 0 for an empty slice.
func Mean(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	return stat.Mean(values, nil)
}

// Summarize computes descriptive statistics. The input is not modified.
func Summarize(values []float64) Summary {
	n := len(values)
	if n == 0 {
		return Summary{}
	}

	sorted := make([]float64, n)
	copy(sorted, values)
	sort.Float64s(sorted)

	s := Summary{
		N:      n,
		Min:    floats.Min(sorted),
		Max:    floats.Max(sorted),
		Median: stat.Quantile(0.5, stat.Empirical, sorted, nil),
	}
	if n > 1 {
		s.Mean, s.Std = stat.MeanStdDev(sorted, nil)
	} else {
		s.Mean = sorted[0]
	}
	return s
}

// LogValue implements slog.LogValuer for structured logging.
func (s Summary) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Int("n", s.N),
		slog.Float64("mean", s.Mean),
		slog.Float64("std", s.Std),
		slog.Float64("min", s.Min),
		slog.Float64("median", s.Median),
		slog.Float64("max", s.Max),
	)
}

// RunSummary describes a whole run from its report log.
type RunSummary struct {
	Days            int
	Total           Summary
	LivePredators   Summary
	CoexistDays     int
	PredationDeaths int
	IllnessDeaths   int
	Reproductions   int
}

// SummarizeRun aggregates a report log.
func SummarizeRun(l *ReportLog) RunSummary {
	rs := RunSummary{
		Days:          l.Len(),
		Total:         Summarize(l.Column(func(s DailyStatistics) int { return s.Total })),
		LivePredators: Summarize(l.Column(func(s DailyStatistics) int { return s.LivePredators })),
		CoexistDays:   CoexistenceDays(l.records),
	}
	for _, r := range l.records {
		rs.PredationDeaths += r.PredationDeaths
		rs.IllnessDeaths += r.IllnessDeaths
		rs.Reproductions += r.Reproductions
	}
	return rs
}

// LogValue implements slog.LogValuer for structured logging.
func (rs RunSummary) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Int("days", rs.Days),
		slog.Int("coexist_days", rs.CoexistDays),
		slog.Any("total", rs.Total),
		slog.Any("live_predators", rs.LivePredators),
		slog.Int("predation_deaths", rs.PredationDeaths),
		slog.Int("illness_deaths", rs.IllnessDeaths),
		slog.Int("reproductions", rs.Reproductions),
	)
}

// CoexistenceDays counts the leading days on which every species and at
// least one predator were alive.
func CoexistenceDays(records []DailyStatistics) int {
	for i, r := range records {
		if r.Rabbits == 0 || r.Mice == 0 || r.Squirrels == 0 || r.LivePredators == 0 {
			return i
		}
	}
	return len(records)
}
