package telemetry

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/gocarina/gocsv"
	"github.com/pthm-cable/warren/config"
)

// DefaultReportFile is used when no report file name is configured.
const DefaultReportFile = "reports.csv"

// OutputManager handles run output: the daily report CSV, a perf CSV
// stream and a snapshot of the config.
type OutputManager struct {
	dir        string
	reportFile string
	perfFile   *os.File

	// Track if headers have been written
	perfHeaderWritten bool
}

// NewOutputManager creates a new output manager and initializes the output directory.
// Returns nil if dir is empty (output disabled).
func NewOutputManager(dir, reportFile string) (*OutputManager, error) {
	if dir == "" {
		return nil, nil
	}
	if reportFile == "" {
		reportFile = DefaultReportFile
	}

	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("creating output directory: %w", err)
	}

	return &OutputManager{dir: dir, reportFile: reportFile}, nil
}

// WriteConfig saves the current configuration as YAML.
func (om *OutputManager) WriteConfig(cfg *config.Config) error {
	if om == nil {
		return nil
	}
	configPath := filepath.Join(om.dir, "config.yaml")
	return cfg.WriteYAML(configPath)
}

// WriteReports writes the whole report log, one row per day, replacing any
// previous report file.
func (om *OutputManager) WriteReports(log *ReportLog) error {
	if om == nil {
		return nil
	}
	return WriteReportsCSV(om.ReportPath(), log.Records())
}

// WriteReportsCSV writes daily records with a header row to path.
func WriteReportsCSV(path string, records []DailyStatistics) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", filepath.Base(path), err)
	}
	if err := gocsv.Marshal(records, f); err != nil {
		f.Close()
		return fmt.Errorf("writing reports: %w", err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("closing %s: %w", filepath.Base(path), err)
	}
	return nil
}

// ReadReportsCSV loads daily records written by WriteReportsCSV.
func ReadReportsCSV(path string) ([]DailyStatistics, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", filepath.Base(path), err)
	}
	defer f.Close()

	var records []DailyStatistics
	if err := gocsv.UnmarshalFile(f, &records); err != nil {
		return nil, fmt.Errorf("reading reports: %w", err)
	}
	return records, nil
}

// WritePerf appends one day's timings to perf.csv, creating the file on
// first use.
func (om *OutputManager) WritePerf(day DayPerf) error {
	if om == nil {
		return nil
	}
	if om.perfFile == nil {
		f, err := os.Create(filepath.Join(om.dir, "perf.csv"))
		if err != nil {
			return fmt.Errorf("creating perf.csv: %w", err)
		}
		om.perfFile = f
	}

	records := []DayPerfCSV{day.ToCSV()}

	if !om.perfHeaderWritten {
		// First write includes headers
		if err := gocsv.Marshal(records, om.perfFile); err != nil {
			return fmt.Errorf("writing perf: %w", err)
		}
		om.perfHeaderWritten = true
	} else {
		// Subsequent writes skip headers
		if err := gocsv.MarshalWithoutHeaders(records, om.perfFile); err != nil {
			return fmt.Errorf("writing perf: %w", err)
		}
	}

	return nil
}

// ReportPath returns the full path of the report CSV.
func (om *OutputManager) ReportPath() string {
	if om == nil {
		return ""
	}
	return filepath.Join(om.dir, om.reportFile)
}

// Dir returns the output directory path.
func (om *OutputManager) Dir() string {
	if om == nil {
		return ""
	}
	return om.dir
}

// Close flushes and closes all output files.
func (om *OutputManager) Close() error {
	if om == nil || om.perfFile == nil {
		return nil
	}
	return om.perfFile.Close()
}
