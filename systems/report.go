package systems

import (
	"github.com/pthm-cable/warren/species"
	"github.com/pthm-cable/warren/telemetry"
)

// CompileReport aggregates the population and the day's counters into one record.
func CompileReport(day uint32, pop *Population, counters *telemetry.DayCounters) telemetry.DailyStatistics {
	counts := pop.LiveCounts()
	live, sick := pop.LivePredators()

	return telemetry.DailyStatistics{
		Day:             day,
		Rabbits:         counts[species.Rabbit],
		Mice:            counts[species.Mouse],
		Squirrels:       counts[species.Squirrel],
		Total:           counts[species.Rabbit] + counts[species.Mouse] + counts[species.Squirrel],
		PredationDeaths: counters.PredationDeaths,
		IllnessDeaths:   counters.IllnessDeaths,
		NewInfections:   counters.NewInfections,
		Recoveries:      counters.Recoveries,
		Reproductions:   counters.Reproductions,
		SickPredators:   sick,
		LivePredators:   live,
	}
}

// SpeciesSummary describes the live members of one species.
type SpeciesSummary struct {
	Species   species.ID
	Count     int
	AvgAge    float64
	AvgWeight float64
}

// Summarize returns per-species summaries of the live prey, in catalog order.
func Summarize(pop *Population) []SpeciesSummary {
	ages := make([][]float64, species.Count)
	weights := make([][]float64, species.Count)
	for _, p := range pop.Prey() {
		if !p.IsAlive() {
			continue
		}
		id := p.State.Species
		ages[id] = append(ages[id], float64(p.State.Age))
		weights[id] = append(weights[id], float64(p.State.Weight))
	}

	out := make([]SpeciesSummary, 0, species.Count)
	for _, id := range species.All() {
		out = append(out, SpeciesSummary{
			Species:   id,
			Count:     len(ages[id]),
			AvgAge:    telemetry.Mean(ages[id]),
			AvgWeight: telemetry.Mean(weights[id]),
		})
	}
	return out
}
