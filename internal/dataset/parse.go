package dataset

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"math"
	"strconv"
	"strings"
	"unicode/utf8"
)

// ParseTable decodes raw bytes as UTF-8 CSV into a typed table.
// The first record is the header; its fields become the column names
// verbatim, order preserved. Column types are inferred from the data:
// a column is numeric only if every non-missing value parses as a
// number, otherwise it is a string column.
func ParseTable(raw []byte) (*Table, error) {
	if !utf8.Valid(raw) {
		return nil, &FormatError{Reason: "file is not valid UTF-8"}
	}

	r := csv.NewReader(bytes.NewReader(raw))
	records, err := r.ReadAll()
	if err != nil {
		return nil, &FormatError{Reason: "invalid csv", Err: err}
	}
	if len(records) == 0 {
		return nil, &FormatError{Reason: "empty file"}
	}

	header := records[0]
	if err := validateHeader(header); err != nil {
		return nil, err
	}
	rows := records[1:]

	t := &Table{
		Columns: header,
		Kinds:   make([]ColumnKind, len(header)),
		Rows:    make([][]Cell, len(rows)),
	}

	for col := range header {
		t.Kinds[col] = inferKind(rows, col)
	}
	for i, record := range rows {
		cells := make([]Cell, len(header))
		for col := range header {
			cells[col] = parseCell(record[col], t.Kinds[col])
		}
		t.Rows[i] = cells
	}

	return t, nil
}

// validateHeader enforces the dataset schema invariants: at least one
// column, no blank names, no duplicates.
func validateHeader(header []string) error {
	if len(header) == 0 {
		return &FormatError{Reason: "missing header row"}
	}
	seen := make(map[string]struct{}, len(header))
	for _, name := range header {
		if strings.TrimSpace(name) == "" {
			return &FormatError{Reason: "header contains an empty column name"}
		}
		if _, dup := seen[name]; dup {
			return &FormatError{Reason: fmt.Sprintf("duplicate column name %q", name)}
		}
		seen[name] = struct{}{}
	}
	return nil
}

// inferKind classifies one column from its raw values. Missing cells are
// allowed in numeric columns; a single unparsable non-missing value
// makes the whole column a string column. Non-finite literals such as
// "inf" or "nan" still parse as numbers here and so do not force the
// string kind; they are normalized to missing cells afterwards.
func inferKind(rows [][]string, col int) ColumnKind {
	for _, record := range rows {
		v := strings.TrimSpace(record[col])
		if v == "" {
			continue
		}
		if _, err := strconv.ParseFloat(v, 64); err != nil {
			return ColumnString
		}
	}
	return ColumnNumeric
}

// parseCell converts a raw field into a tagged cell under the column's
// inferred kind. Empty cells are missing in both kinds. In numeric
// columns, literals that parse to NaN or +/-Inf become missing so that
// no non-finite value can leave the engine.
func parseCell(raw string, kind ColumnKind) Cell {
	if kind == ColumnString {
		if raw == "" {
			return Missing()
		}
		return Text(raw)
	}

	v := strings.TrimSpace(raw)
	if v == "" {
		return Missing()
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return Missing()
	}
	return Number(f)
}
