package writer

import (
	"encoding/csv"
	"fmt"
	"os"
	"strconv"
	"sync"

	"github.com/nndjoli/eqty/internal/model"
)

// CSVWriter writes one row per record with a fixed column set: the
// ticker followed by every schema field under its display name.
type CSVWriter struct {
	mu   sync.Mutex
	file *os.File
	w    *csv.Writer
}

// NewCSVWriter creates the output file and writes the header row.
func NewCSVWriter(path string) (*CSVWriter, error) {
	file, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("create csv file: %w", err)
	}

	w := csv.NewWriter(file)

	header := make([]string, 0, len(model.Fields)+1)
	header = append(header, "Ticker")
	for _, f := range model.Fields {
		header = append(header, f.Display)
	}
	if err := w.Write(header); err != nil {
		file.Close()
		return nil, fmt.Errorf("write csv header: %w", err)
	}

	return &CSVWriter{file: file, w: w}, nil
}

// Write appends one record row. Nil field values render as empty cells.
func (c *CSVWriter) Write(rec model.QuoteRecord) error {
	row := make([]string, 0, len(model.Fields)+1)
	row = append(row, rec.Ticker)
	for _, f := range model.Fields {
		row = append(row, renderValue(rec.Fields[f.Name]))
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if err := c.w.Write(row); err != nil {
		return fmt.Errorf("write csv row for %s: %w", rec.Ticker, err)
	}
	return nil
}

// Close flushes buffered rows and closes the file.
func (c *CSVWriter) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.w.Flush()
	if err := c.w.Error(); err != nil {
		c.file.Close()
		return fmt.Errorf("flush csv: %w", err)
	}
	return c.file.Close()
}

// renderValue formats a decoded JSON value for a CSV cell.
func renderValue(v any) string {
	switch x := v.(type) {
	case nil:
		return ""
	case string:
		return x
	case bool:
		return strconv.FormatBool(x)
	case float64:
		// Plain notation: large caps and volumes must not come out
		// in scientific form.
		return strconv.FormatFloat(x, 'f', -1, 64)
	default:
		return fmt.Sprint(x)
	}
}
