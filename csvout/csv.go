// Package csvout renders decoded diagnostic tables as CSV text: one
// header row built from the channel descriptors, then one line per
// decoded row with the sequence number first.
package csvout

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"x431/decode"
)

// Style selects the column header dialect.
type Style int

const (
	// Numbered mirrors the scanner vendor's export: a "Num" row counter
	// and "1. Name (Unit)" headers.
	Numbered Style = iota
	// Clean produces spreadsheet friendly headers with simplified channel
	// names.
	Clean
)

// cleanReplacer expands the abbreviations scanners pack into channel
// names so spreadsheet headers read naturally.
var cleanReplacer = strings.NewReplacer(
	"B1S1", "(Bank1 Sensor1)",
	"B2S1", "(Bank2 Sensor1)",
	"A/F", "Air/Fuel",
	"A/C", "AC",
	"Cat OT MF F/C", "Catalyst Misfire",
	"#", "Count",
)

// CleanName simplifies a channel name for spreadsheet viewing. Empty
// names become "Unknown".
func CleanName(name string) string {
	name = strings.TrimSpace(name)
	if name == "" {
		return "Unknown"
	}
	return cleanReplacer.Replace(name)
}

// Headers renders the header row for a decoded channel list, row counter
// column first. Inactive channels keep their column so values stay
// aligned with the channel table.
func Headers(cols []decode.Column, style Style) []string {
	hs := make([]string, 0, len(cols)+1)
	if style == Clean {
		hs = append(hs, "Row")
		for _, c := range cols {
			name := CleanName(c.Name)
			// A unit only earns a bracket when it says something the name
			// does not.
			if unit := CleanName(c.Unit); unit != name && unit != "Unknown" {
				name = fmt.Sprintf("%s [%s]", name, unit)
			}
			hs = append(hs, name)
		}
		return hs
	}

	hs = append(hs, "Num")
	for i, c := range cols {
		name := c.Name
		if name == "" {
			name = "Unknown"
		}
		h := fmt.Sprintf("%d. %s", i+1, name)
		if c.Unit != "" {
			h = fmt.Sprintf("%s (%s)", h, c.Unit)
		}
		hs = append(hs, h)
	}
	return hs
}

// Writer emits decoded rows as CSV text.
type Writer struct {
	cw *csv.Writer
}

// NewWriter creates a CSV writer over w.
func NewWriter(w io.Writer) *Writer {
	return &Writer{cw: csv.NewWriter(w)}
}

// WriteHeader writes the header row.
func (w *Writer) WriteHeader(cols []decode.Column, style Style) error {
	return w.cw.Write(Headers(cols, style))
}

// WriteRow writes one decoded row, sequence number first.
func (w *Writer) WriteRow(row decode.Row) error {
	rs := make([]string, 0, len(row.Values)+1)
	rs = append(rs, strconv.Itoa(row.Seq))
	for _, v := range row.Values {
		rs = append(rs, FormatValue(v))
	}
	return w.cw.Write(rs)
}

// Flush writes any buffered rows to the underlying writer.
func (w *Writer) Flush() error {
	w.cw.Flush()
	return w.cw.Error()
}

// FormatValue renders a resolved value with enough significant digits for
// scanner calibrations without exposing binary rounding noise.
func FormatValue(v float64) string {
	return strconv.FormatFloat(v, 'g', 12, 64)
}

// Convert decodes one log buffer and writes it as CSV text to dst. It is
// the one-call pipeline: channel table to header row, then every record
// streamed straight through. It returns the number of data rows written.
func Convert(dst io.Writer, data []byte, p decode.Profile, style Style) (int, error) {
	sess, err := decode.NewSessionProfile(data, p)
	if err != nil {
		return 0, err
	}
	return ConvertSession(dst, sess, style)
}

// ConvertSession is Convert over an already opened decode session, for
// callers that configure the session themselves.
func ConvertSession(dst io.Writer, sess *decode.Session, style Style) (int, error) {
	w := NewWriter(dst)
	if err := w.WriteHeader(sess.Columns(), style); err != nil {
		return 0, err
	}
	rows := 0
	for {
		row, err := sess.Next()
		if errors.Is(err, decode.ErrDone) {
			break
		}
		if err != nil {
			return rows, err
		}
		if err := w.WriteRow(row); err != nil {
			return rows, err
		}
		rows++
	}
	return rows, w.Flush()
}
