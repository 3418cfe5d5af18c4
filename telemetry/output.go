package telemetry

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/gocarina/gocsv"

	"github.com/pthm-cable/rps/config"
)

// OutputManager handles structured experiment output with CSV logging.
type OutputManager struct {
	dir           string
	telemetryFile *os.File
	matchFile     *os.File

	// Track if headers have been written
	telemetryHeaderWritten bool
	matchHeaderWritten     bool
}

// NewOutputManager creates a new output manager and initializes the output directory.
// Returns nil if dir is empty (output disabled).
func NewOutputManager(dir string) (*OutputManager, error) {
	if dir == "" {
		return nil, nil
	}

	// Create output directory
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("creating output directory: %w", err)
	}

	om := &OutputManager{dir: dir}

	// Open telemetry.csv
	telemetryPath := filepath.Join(dir, "telemetry.csv")
	f, err := os.Create(telemetryPath)
	if err != nil {
		return nil, fmt.Errorf("creating telemetry.csv: %w", err)
	}
	om.telemetryFile = f

	// Open matches.csv
	matchPath := filepath.Join(dir, "matches.csv")
	f, err = os.Create(matchPath)
	if err != nil {
		om.telemetryFile.Close()
		return nil, fmt.Errorf("creating matches.csv: %w", err)
	}
	om.matchFile = f

	return om, nil
}

// WriteConfig saves the current configuration as YAML.
func (om *OutputManager) WriteConfig(cfg *config.Config) error {
	if om == nil {
		return nil
	}
	configPath := filepath.Join(om.dir, "config.yaml")
	return cfg.WriteYAML(configPath)
}

// WriteTelemetry writes a window stats record to telemetry.csv.
func (om *OutputManager) WriteTelemetry(stats WindowStats) error {
	if om == nil {
		return nil
	}
	if err := writeRecords(om.telemetryFile, &om.telemetryHeaderWritten, []WindowStats{stats}); err != nil {
		return fmt.Errorf("writing telemetry: %w", err)
	}
	return nil
}

// WriteMatch writes one match result to matches.csv.
func (om *OutputManager) WriteMatch(res MatchResult) error {
	return om.WriteMatches([]MatchResult{res})
}

// WriteMatches writes match results to matches.csv in the given order.
func (om *OutputManager) WriteMatches(results []MatchResult) error {
	if om == nil || len(results) == 0 {
		return nil
	}
	if err := writeRecords(om.matchFile, &om.matchHeaderWritten, results); err != nil {
		return fmt.Errorf("writing matches: %w", err)
	}
	return nil
}

// writeRecords marshals records, including the header on the first write only.
func writeRecords(f *os.File, headerWritten *bool, records interface{}) error {
	if !*headerWritten {
		if err := gocsv.Marshal(records, f); err != nil {
			return err
		}
		*headerWritten = true
		return nil
	}
	return gocsv.MarshalWithoutHeaders(records, f)
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
	if om == nil {
		return nil
	}

	var firstErr error

	if om.telemetryFile != nil {
		if err := om.telemetryFile.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}

	if om.matchFile != nil {
		if err := om.matchFile.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}

	return firstErr
}
