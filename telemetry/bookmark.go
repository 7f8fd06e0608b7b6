package telemetry

import (
	"fmt"
	"log/slog"
)

// BookmarkType identifies the type of bookmark.
type BookmarkType string

const (
	BookmarkSpeciesExtinct  BookmarkType = "species_extinct"
	BookmarkPredatorsGone   BookmarkType = "predators_extinct"
	BookmarkPreyCrash       BookmarkType = "prey_crash"
	BookmarkPreyRecovery    BookmarkType = "prey_recovery"
	BookmarkStableEcosystem BookmarkType = "stable_ecosystem"
)

// Bookmark marks a notable day in the population history.
type Bookmark struct {
	Type        BookmarkType
	Day         uint32
	Description string
}

// LogBookmark logs the bookmark using slog.
func (b Bookmark) LogBookmark() {
	slog.Info("bookmark",
		"type", string(b.Type),
		"day", b.Day,
		"description", b.Description,
	)
}

// BookmarkDetector watches daily reports for extinctions, crashes, recoveries
// and stable stretches.
type BookmarkDetector struct {
	// Rolling history (circular buffer)
	history     []DailyStatistics
	historySize int
	historyIdx  int
	historyFull bool

	prev    DailyStatistics
	hasPrev bool

	recentPreyMin   int // minimum prey total since the last recovery
	recentPreyPeak  int // peak prey total since the last crash
	stableDaysCount int // consecutive days with steady populations
}

// NewBookmarkDetector creates a detector with the given history size in days.
func NewBookmarkDetector(historySize int) *BookmarkDetector {
	if historySize < 5 {
		historySize = 5
	}
	return &BookmarkDetector{
		history:       make([]DailyStatistics, historySize),
		historySize:   historySize,
		recentPreyMin: -1,
	}
}

// Prime records the starting population as the previous day, so an
// extinction on the first day is still reported.
func (bd *BookmarkDetector) Prime(initial DailyStatistics) {
	bd.prev = initial
	bd.hasPrev = true
	bd.recentPreyPeak = initial.Total
}

// Check analyzes the latest report and returns any triggered bookmarks.
func (bd *BookmarkDetector) Check(stats DailyStatistics) []Bookmark {
	var bookmarks []Bookmark

	if bd.hasPrev {
		bookmarks = append(bookmarks, bd.checkExtinctions(stats)...)
	}
	if b := bd.checkPreyCrash(stats); b != nil {
		bookmarks = append(bookmarks, *b)
	}
	if b := bd.checkPreyRecovery(stats); b != nil {
		bookmarks = append(bookmarks, *b)
	}
	if b := bd.checkStableEcosystem(stats); b != nil {
		bookmarks = append(bookmarks, *b)
	}

	bd.addToHistory(stats)
	bd.prev = stats
	bd.hasPrev = true

	if stats.Total > bd.recentPreyPeak {
		bd.recentPreyPeak = stats.Total
	}
	if bd.recentPreyMin < 0 || stats.Total < bd.recentPreyMin {
		bd.recentPreyMin = stats.Total
	}

	return bookmarks
}

func (bd *BookmarkDetector) addToHistory(stats DailyStatistics) {
	bd.history[bd.historyIdx] = stats
	bd.historyIdx = (bd.historyIdx + 1) % bd.historySize
	if bd.historyIdx == 0 {
		bd.historyFull = true
	}
}

// recent returns up to n of the latest days, oldest first.
func (bd *BookmarkDetector) recent(n int) []DailyStatistics {
	count := bd.historyIdx
	if bd.historyFull {
		count = bd.historySize
	}
	if n > count {
		n = count
	}
	out := make([]DailyStatistics, n)
	for i := 0; i < n; i++ {
		idx := (bd.historyIdx - n + i + bd.historySize) % bd.historySize
		out[i] = bd.history[idx]
	}
	return out
}

func (bd *BookmarkDetector) checkExtinctions(stats DailyStatistics) []Bookmark {
	var out []Bookmark
	species := []struct {
		name     string
		was, now int
	}{
		{"rabbit", bd.prev.Rabbits, stats.Rabbits},
		{"mouse", bd.prev.Mice, stats.Mice},
		{"squirrel", bd.prev.Squirrels, stats.Squirrels},
	}
	for _, s := range species {
		if s.was > 0 && s.now == 0 {
			out = append(out, Bookmark{
				Type:        BookmarkSpeciesExtinct,
				Day:         stats.Day,
				Description: fmt.Sprintf("Last %s gone (%d the day before)", s.name, s.was),
			})
		}
	}
	if bd.prev.LivePredators > 0 && stats.LivePredators == 0 {
		out = append(out, Bookmark{
			Type:        BookmarkPredatorsGone,
			Day:         stats.Day,
			Description: fmt.Sprintf("Last of %d predators died", bd.prev.LivePredators),
		})
	}
	return out
}

func (bd *BookmarkDetector) checkPreyCrash(stats DailyStatistics) *Bookmark {
	if bd.recentPreyPeak == 0 {
		return nil
	}

	dropPercent := 1.0 - float64(stats.Total)/float64(bd.recentPreyPeak)
	if dropPercent > 0.30 && stats.Total < bd.recentPreyPeak-10 {
		oldPeak := bd.recentPreyPeak
		bd.recentPreyPeak = stats.Total

		return &Bookmark{
			Type:        BookmarkPreyCrash,
			Day:         stats.Day,
			Description: fmt.Sprintf("Prey crashed %.0f%% from peak %d to %d", dropPercent*100, oldPeak, stats.Total),
		}
	}
	return nil
}

func (bd *BookmarkDetector) checkPreyRecovery(stats DailyStatistics) *Bookmark {
	if bd.recentPreyMin <= 0 || bd.recentPreyMin > 10 {
		return nil
	}

	if stats.Total >= bd.recentPreyMin*3 && stats.Total >= 20 {
		oldMin := bd.recentPreyMin
		bd.recentPreyMin = stats.Total

		return &Bookmark{
			Type:        BookmarkPreyRecovery,
			Day:         stats.Day,
			Description: fmt.Sprintf("Prey recovered from %d to %d", oldMin, stats.Total),
		}
	}
	return nil
}

func (bd *BookmarkDetector) checkStableEcosystem(stats DailyStatistics) *Bookmark {
	if stats.Total < 10 || stats.LivePredators == 0 {
		bd.stableDaysCount = 0
		return nil
	}

	window := append(bd.recent(3), stats)
	if len(window) < 4 {
		return nil
	}

	var sum float64
	for _, h := range window {
		sum += float64(h.Total)
	}
	mean := sum / float64(len(window))

	var variance float64
	for _, h := range window {
		d := float64(h.Total) - mean
		variance += d * d
	}
	variance /= float64(len(window))

	// CV^2 < 0.04 means CV < 0.2
	if variance/(mean*mean) < 0.04 {
		bd.stableDaysCount++
	} else {
		bd.stableDaysCount = 0
	}

	if bd.stableDaysCount == 5 {
		return &Bookmark{
			Type:        BookmarkStableEcosystem,
			Day:         stats.Day,
			Description: fmt.Sprintf("Steady herd of about %.0f prey with %d predators for 5 days", mean, stats.LivePredators),
		}
	}
	return nil
}
