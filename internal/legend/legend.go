package legend

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"

	"github.com/DimStarGB/COD42WOLFET-BRUSH-PORTER/internal/texture"
)

// columns is the fixed header row.
var columns = []string{"placeholder", "original_texture"}

// Writer streams legend rows as CSV.
type Writer struct {
	csv *csv.Writer
}

// NewWriter creates a Writer emitting to w.
func NewWriter(w io.Writer) *Writer {
	return &Writer{csv: csv.NewWriter(w)}
}

// WriteHeader writes the header row.
func (w *Writer) WriteHeader() error {
	return w.csv.Write(columns)
}

// WriteEntries writes one row per legend entry in the given order.
func (w *Writer) WriteEntries(entries []texture.LegendEntry) error {
	for _, e := range entries {
		if err := w.csv.Write([]string{e.Placeholder, e.Original}); err != nil {
			return err
		}
	}
	return nil
}

// Flush flushes buffered rows and returns any write error.
func (w *Writer) Flush() error {
	w.csv.Flush()
	return w.csv.Error()
}

// WriteFile writes a complete legend file at path, header plus one row per
// entry.
func WriteFile(path string, entries []texture.LegendEntry) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create legend file: %w", err)
	}
	defer f.Close()

	w := NewWriter(f)
	if err := w.WriteHeader(); err != nil {
		return fmt.Errorf("write legend header: %w", err)
	}
	if err := w.WriteEntries(entries); err != nil {
		return fmt.Errorf("write legend rows: %w", err)
	}
	if err := w.Flush(); err != nil {
		return fmt.Errorf("flush legend: %w", err)
	}
	return f.Close()
}
