// Package dataset implements the ingestion and profiling engine for
// uploaded CSV files. It parses raw bytes into a typed table, builds the
// persisted dataset record with a sanitized preview, and computes
// per-column statistics with data-quality recommendations.
// This package has no storage or HTTP dependencies.
package dataset

import (
	"encoding/json"
	"time"
)

// CellKind tags the parsed representation of a single CSV cell.
type CellKind uint8

const (
	// CellMissing marks an absent value: an empty cell, or a numeric
	// literal that parsed to NaN or +/-Inf.
	CellMissing CellKind = iota
	CellNumber
	CellText
)

// Cell is one parsed value. Cells are produced once during parsing so
// every consumer (preview, profiler) works on the same representation
// instead of re-inferring types per use.
type Cell struct {
	Kind CellKind
	Num  float64
	Text string
}

// Missing returns the missing-value cell.
func Missing() Cell { return Cell{Kind: CellMissing} }

// Number returns a numeric cell. The value must be finite.
func Number(f float64) Cell { return Cell{Kind: CellNumber, Num: f} }

// Text returns a text cell.
func Text(s string) Cell { return Cell{Kind: CellText, Text: s} }

// Value converts the cell to a JSON-safe scalar: nil, float64 or string.
func (c Cell) Value() any {
	switch c.Kind {
	case CellNumber:
		return c.Num
	case CellText:
		return c.Text
	}
	return nil
}

// ColumnKind is the inferred type of a whole column.
type ColumnKind uint8

const (
	// ColumnString is assigned when any non-missing value in the column
	// fails to parse as a number.
	ColumnString ColumnKind = iota
	ColumnNumeric
)

// Table is a fully parsed CSV file: a rectangular grid of typed cells.
type Table struct {
	Columns []string
	Kinds   []ColumnKind // one per column
	Rows    [][]Cell     // each row has exactly len(Columns) cells
}

// RowCount returns the number of data rows (header excluded).
func (t *Table) RowCount() int { return len(t.Rows) }

// Dataset is the persisted record of one uploaded file. Records are
// immutable after creation; profiling re-reads the stored bytes and
// never mutates the record.
type Dataset struct {
	ID         string           `json:"id"`
	Name       string           `json:"name"`
	FileName   string           `json:"fileName"`
	FilePath   string           `json:"filePath"`
	UploadedAt time.Time        `json:"uploadedAt"`
	Columns    []string         `json:"columns"`
	RowCount   int              `json:"rowCount"`
	Preview    []map[string]any `json:"previewData"`
}

// ColumnProfile holds per-column statistics computed on demand.
// The wire shape depends on the column kind: string columns carry
// sampleValues, numeric columns carry min/max/mean, and degraded
// columns (numeric aggregation failed) carry only the shared fields.
type ColumnProfile struct {
	DataType          string
	Numeric           bool
	Degraded          bool
	MissingCount      int
	MissingPercentage float64
	UniqueCount       int
	SampleValues      []string
	Min               *float64
	Max               *float64
	Mean              *float64
}

// MarshalJSON emits the camelCase wire shape. min/max/mean serialize as
// explicit nulls when unset; non-finite values are scrubbed defensively.
func (p *ColumnProfile) MarshalJSON() ([]byte, error) {
	m := map[string]any{
		"dataType":          p.DataType,
		"uniqueValues":      p.UniqueCount,
		"missingValues":     p.MissingCount,
		"missingPercentage": p.MissingPercentage,
	}
	switch {
	case p.Degraded:
		// Reduced profile only.
	case p.Numeric:
		m["min"] = p.Min
		m["max"] = p.Max
		m["mean"] = p.Mean
	default:
		samples := p.SampleValues
		if samples == nil {
			samples = []string{}
		}
		m["sampleValues"] = samples
	}
	return json.Marshal(Clean(m))
}

// Recommendation types, in the order they are evaluated per column.
const (
	RecMissingValues = "missing_values"
	RecUniqueValues  = "unique_values"
	RecValueRange    = "value_range"
)

// Recommendation is a rule-derived data-quality hint tied to one column.
type Recommendation struct {
	Type    string `json:"type"`
	Column  string `json:"column"`
	Message string `json:"message"`
}

// Analysis is the result of profiling one dataset. It is ephemeral:
// computed on demand and never persisted.
type Analysis struct {
	Columns         map[string]*ColumnProfile `json:"columns"`
	Recommendations []Recommendation          `json:"recommendations"`
}
