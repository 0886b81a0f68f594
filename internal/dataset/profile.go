package dataset

import (
	"fmt"
	"math"
	"math/rand"
	"strconv"
)

// SampleSize is the maximum number of distinct values sampled for a
// string column.
const SampleSize = 5

// Profile computes per-column statistics and data-quality
// recommendations for a parsed table, using the column list recorded at
// ingestion time. Profiling is read-only and idempotent; only the
// contents of sampleValues may differ between calls.
//
// A recorded column absent from the re-parsed file is fatal: the stored
// schema no longer matches the bytes. A failure while aggregating one
// numeric column is not: that column degrades to the reduced profile.
func Profile(t *Table, columns []string) (*Analysis, error) {
	index := make(map[string]int, len(t.Columns))
	for i, name := range t.Columns {
		index[name] = i
	}

	profiles := make(map[string]*ColumnProfile, len(columns))
	for _, name := range columns {
		col, ok := index[name]
		if !ok {
			return nil, fmt.Errorf("recorded column %q missing from file", name)
		}
		profiles[name] = profileColumn(t, col)
	}

	return &Analysis{
		Columns:         profiles,
		Recommendations: recommend(columns, profiles),
	}, nil
}

func profileColumn(t *Table, col int) *ColumnProfile {
	if t.Kinds[col] == ColumnNumeric {
		return profileNumeric(t, col)
	}
	return profileString(t, col)
}

// profileString counts missing cells and distinct values, and draws a
// random sample of distinct values. Empty strings were folded into the
// missing cell at parse time, so missing here covers both null-like
// cells and empty strings.
func profileString(t *Table, col int) *ColumnProfile {
	missing := 0
	distinct := make(map[string]struct{})
	for _, row := range t.Rows {
		c := row[col]
		if c.Kind == CellMissing {
			missing++
			continue
		}
		distinct[c.Text] = struct{}{}
	}

	return &ColumnProfile{
		DataType:          "string",
		MissingCount:      missing,
		MissingPercentage: percentage(missing, t.RowCount()),
		UniqueCount:       len(distinct),
		SampleValues:      sampleDistinct(distinct, SampleSize),
	}
}

// profileNumeric aggregates min/max/mean over non-missing values. All
// three stay nil when the column has no values. If aggregation produces
// a non-finite result (e.g. the mean overflows), the column degrades to
// the reduced profile instead of failing the whole analysis.
func profileNumeric(t *Table, col int) *ColumnProfile {
	missing := 0
	count := 0
	integral := true
	var sum, min, max float64
	distinct := make(map[float64]struct{})

	for _, row := range t.Rows {
		c := row[col]
		if c.Kind == CellMissing {
			missing++
			continue
		}
		v := c.Num
		distinct[v] = struct{}{}
		if v != math.Trunc(v) {
			integral = false
		}
		if count == 0 || v < min {
			min = v
		}
		if count == 0 || v > max {
			max = v
		}
		sum += v
		count++
	}

	p := &ColumnProfile{
		DataType:          numericTag(count, missing, integral),
		Numeric:           true,
		MissingCount:      missing,
		MissingPercentage: percentage(missing, t.RowCount()),
		UniqueCount:       len(distinct),
	}
	if count == 0 {
		return p
	}

	mean := sum / float64(count)
	if !finite(min) || !finite(max) || !finite(mean) {
		p.Degraded = true
		return p
	}
	p.Min, p.Max, p.Mean = &min, &max, &mean
	return p
}

// numericTag mirrors dataframe dtype display: a numeric column reports
// int64 only when it has values, no missing cells, and every value is
// integral. Missing cells force the float representation.
func numericTag(count, missing int, integral bool) string {
	if count > 0 && missing == 0 && integral {
		return "int64"
	}
	return "float64"
}

// percentage guards the zero-row case, defined as 0 by convention.
func percentage(missing, rows int) float64 {
	if rows == 0 {
		return 0
	}
	return 100 * float64(missing) / float64(rows)
}

// sampleDistinct draws up to n distinct values without replacement.
// The choice is genuinely random between calls.
func sampleDistinct(distinct map[string]struct{}, n int) []string {
	values := make([]string, 0, len(distinct))
	for v := range distinct {
		values = append(values, v)
	}
	rand.Shuffle(len(values), func(i, j int) {
		values[i], values[j] = values[j], values[i]
	})
	if len(values) > n {
		values = values[:n]
	}
	return values
}

// recommend derives validation hints per column, in column order, then
// rule order within a column. Each rule emits at most one entry.
func recommend(columns []string, profiles map[string]*ColumnProfile) []Recommendation {
	recs := []Recommendation{}
	for _, name := range columns {
		p := profiles[name]

		if p.MissingPercentage > 0 {
			recs = append(recs, Recommendation{
				Type:    RecMissingValues,
				Column:  name,
				Message: fmt.Sprintf("Column '%s' has %.1f%% missing values", name, p.MissingPercentage),
			})
		}
		if p.UniqueCount == 1 {
			recs = append(recs, Recommendation{
				Type:    RecUniqueValues,
				Column:  name,
				Message: fmt.Sprintf("Column '%s' has only one unique value", name),
			})
		}
		// Range hints require a resolved min and max, so all-missing and
		// degraded numeric columns never produce one.
		if p.Min != nil && p.Max != nil {
			recs = append(recs, Recommendation{
				Type:    RecValueRange,
				Column:  name,
				Message: fmt.Sprintf("Column '%s' has values between %s and %s", name, formatNumber(*p.Min), formatNumber(*p.Max)),
			})
		}
	}
	return recs
}

func formatNumber(f float64) string {
	return strconv.FormatFloat(f, 'g', -1, 64)
}
