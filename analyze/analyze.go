// Package analyze computes descriptive statistics over converted CSV
// tables: per-column summaries, and detection of the channels that
// actually carried varying data during a capture.
package analyze

import (
	"encoding/csv"
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// placeholders that do not count as channel activity.
var ignoredValues = map[string]bool{
	"":        true,
	"0":       true,
	"Not Avl": true,
}

// Report is one loaded CSV table ready for summarization.
type Report struct {
	Name    string
	Headers []string
	Records [][]string
}

// Load reads a converted CSV file into a report. The first line is the
// header row.
func Load(r io.Reader) (*Report, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1

	headers, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}
	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read rows: %w", err)
	}
	return &Report{Headers: headers, Records: records}, nil
}

// Rows returns the number of data rows.
func (r *Report) Rows() int {
	return len(r.Records)
}

// Columns returns the number of columns, row counter included.
func (r *Report) Columns() int {
	return len(r.Headers)
}

func (r *Report) column(idx int) []string {
	values := make([]string, 0, len(r.Records))
	for _, rec := range r.Records {
		if idx < len(rec) {
			values = append(values, rec[idx])
		}
	}
	return values
}

// ValueCount pairs a column value with its occurrence count.
type ValueCount struct {
	Value string
	Count int
}

// ColumnStats summarizes one column. Numeric columns carry min, max,
// mean and standard deviation; non-numeric columns carry their most
// common values instead.
type ColumnStats struct {
	Name    string
	Total   int
	Unique  int
	Numeric int
	Min     float64
	Max     float64
	Mean    float64
	Stdev   float64
	Top     []ValueCount
}

// Column computes statistics for the column at idx.
func (r *Report) Column(idx int) (ColumnStats, error) {
	if idx < 0 || idx >= len(r.Headers) {
		return ColumnStats{}, fmt.Errorf("no column %d in %d column table", idx, len(r.Headers))
	}

	values := r.column(idx)
	st := ColumnStats{Name: r.Headers[idx], Total: len(values)}

	counts := make(map[string]int)
	var xs []float64
	for _, v := range values {
		counts[v]++
		if x, err := strconv.ParseFloat(v, 64); err == nil {
			xs = append(xs, x)
		}
	}
	st.Unique = len(counts)

	if len(xs) > 0 {
		st.Numeric = len(xs)
		st.Min = floats.Min(xs)
		st.Max = floats.Max(xs)
		st.Mean = stat.Mean(xs, nil)
		if len(xs) > 1 {
			st.Stdev = stat.StdDev(xs, nil)
		}
		return st, nil
	}

	top := make([]ValueCount, 0, len(counts))
	for v, n := range counts {
		top = append(top, ValueCount{Value: v, Count: n})
	}
	sort.Slice(top, func(i, j int) bool {
		if top[i].Count != top[j].Count {
			return top[i].Count > top[j].Count
		}
		return top[i].Value < top[j].Value
	})
	if len(top) > 5 {
		top = top[:5]
	}
	st.Top = top
	return st, nil
}

// ActiveChannel is a column whose values vary during the capture.
type ActiveChannel struct {
	Index   int
	Name    string
	Unique  int
	Samples []string
}

// ActiveChannels returns the columns, row counter excluded, whose value
// set has more than one member once placeholder values are ignored.
func (r *Report) ActiveChannels() []ActiveChannel {
	var active []ActiveChannel
	for i := 1; i < len(r.Headers); i++ {
		uniq := make(map[string]bool)
		for _, v := range r.column(i) {
			if !ignoredValues[v] {
				uniq[v] = true
			}
		}
		if len(uniq) <= 1 {
			continue
		}
		samples := make([]string, 0, len(uniq))
		for v := range uniq {
			samples = append(samples, v)
		}
		sort.Strings(samples)
		if len(samples) > 5 {
			samples = samples[:5]
		}
		active = append(active, ActiveChannel{
			Index:   i,
			Name:    r.Headers[i],
			Unique:  len(uniq),
			Samples: samples,
		})
	}
	return active
}

// WriteSummary renders the human readable report.
func (r *Report) WriteSummary(w io.Writer) error {
	rule := strings.Repeat("=", 70)

	fmt.Fprintf(w, "%s\n", rule)
	fmt.Fprintf(w, "  Diagnostic Data Summary: %s\n", r.Name)
	fmt.Fprintf(w, "%s\n\n", rule)
	fmt.Fprintf(w, "  Total Rows:    %d\n", r.Rows())
	fmt.Fprintf(w, "  Total Columns: %d\n\n", r.Columns())

	active := r.ActiveChannels()
	fmt.Fprintf(w, "  Active Channels: %d (columns with varying data)\n\n", len(active))

	show := active
	if len(show) > 10 {
		show = show[:10]
	}
	for i, ch := range show {
		fmt.Fprintf(w, "  %2d. %s\n", i+1, ch.Name)
		fmt.Fprintf(w, "      Unique values: %d\n", ch.Unique)
		fmt.Fprintf(w, "      Samples: %s\n\n", strings.Join(ch.Samples, ", "))
	}

	if len(active) > 0 {
		st, err := r.Column(active[0].Index)
		if err != nil {
			return err
		}
		fmt.Fprintf(w, "  Detailed statistics for %s:\n", st.Name)
		fmt.Fprintf(w, "      values: %d, unique: %d\n", st.Total, st.Unique)
		if st.Numeric > 0 {
			fmt.Fprintf(w, "      min: %g, max: %g, mean: %g, stdev: %g\n", st.Min, st.Max, st.Mean, st.Stdev)
		} else {
			for _, vc := range st.Top {
				fmt.Fprintf(w, "      %q: %d occurrences\n", vc.Value, vc.Count)
			}
		}
	}
	fmt.Fprintf(w, "%s\n", rule)
	return nil
}
