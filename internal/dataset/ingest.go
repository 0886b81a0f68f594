package dataset

import "strings"

// PreviewRows is the number of data rows kept in the stored preview.
const PreviewRows = 3

// Ingestion is the parse result for one uploaded file: everything the
// caller needs to build and persist a Dataset record.
type Ingestion struct {
	Name     string
	Columns  []string
	RowCount int
	Preview  []map[string]any
}

// Ingest parses an uploaded CSV file into its schema and a bounded,
// sanitized preview. The file name must carry a .csv extension; the
// check runs before any byte of the payload is touched.
func Ingest(raw []byte, fileName string) (*Ingestion, error) {
	if !strings.HasSuffix(strings.ToLower(fileName), ".csv") {
		return nil, &FormatError{Reason: "not a csv file"}
	}

	t, err := ParseTable(raw)
	if err != nil {
		return nil, err
	}

	n := t.RowCount()
	if n > PreviewRows {
		n = PreviewRows
	}
	preview := make([]map[string]any, n)
	for i := 0; i < n; i++ {
		row := make(map[string]any, len(t.Columns))
		for col, name := range t.Columns {
			row[name] = t.Rows[i][col].Value()
		}
		preview[i] = row
	}

	return &Ingestion{
		Name:     fileName[:len(fileName)-len(".csv")],
		Columns:  t.Columns,
		RowCount: t.RowCount(),
		Preview:  preview,
	}, nil
}
