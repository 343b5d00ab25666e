package telemetry

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/gocarina/gocsv"
)

// FrameRecord is one row of the performance CSV.
type FrameRecord struct {
	Frame      int64   `csv:"frame"`
	ElapsedS   float64 `csv:"elapsed_s"`
	FPS        float64 `csv:"fps"`
	FrameMsAvg float64 `csv:"frame_ms_avg"`
	FrameMsMax float64 `csv:"frame_ms_max"`
	Move       float32 `csv:"move"`
	Pressed    float32 `csv:"pressed"`
}

// Snapshot builds a record from the current stats.
func (s *FrameStats) Snapshot(elapsedS float64, move, pressed float32) FrameRecord {
	return FrameRecord{
		Frame:      s.Frames(),
		ElapsedS:   elapsedS,
		FPS:        s.FPS(),
		FrameMsAvg: float64(s.Avg().Microseconds()) / 1000,
		FrameMsMax: float64(s.Max().Microseconds()) / 1000,
		Move:       move,
		Pressed:    pressed,
	}
}

// CSVWriter appends frame records to a CSV file.
type CSVWriter struct {
	file          *os.File
	headerWritten bool
}

// NewCSVWriter creates the file at path, including parent directories.
// Returns nil if path is empty (output disabled).
func NewCSVWriter(path string) (*CSVWriter, error) {
	if path == "" {
		return nil, nil
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("creating output directory: %w", err)
		}
	}
	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("creating %s: %w", path, err)
	}
	return &CSVWriter{file: f}, nil
}

// Write appends one record. A nil writer discards it.
func (w *CSVWriter) Write(rec FrameRecord) error {
	if w == nil {
		return nil
	}

	records := []FrameRecord{rec}

	if !w.headerWritten {
		// First write includes headers
		if err := gocsv.Marshal(records, w.file); err != nil {
			return fmt.Errorf("writing perf: %w", err)
		}
		w.headerWritten = true
	} else {
		if err := gocsv.MarshalWithoutHeaders(records, w.file); err != nil {
			return fmt.Errorf("writing perf: %w", err)
		}
	}
	return nil
}

// Close flushes and closes the file.
func (w *CSVWriter) Close() error {
	if w == nil {
		return nil
	}
	return w.file.Close()
}
