package decode

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
)

var approx = cmpopts.EquateApprox(0, 1e-9)

func TestStreamRowCountAndWidth(t *testing.T) {
	chans := []testChannel{
		{name: "Battery Voltage", unit: "V", width: 2, scale: 0.1},
		{name: "RPM", unit: "rpm", width: 2, scale: 1},
	}
	records := [][]int64{
		{142, 850},
		{141, 855},
		{140, 860},
	}
	buf := buildLog(t, chans, records)

	s, err := NewSession(buf)
	if err != nil {
		t.Fatalf("NewSession: %v", err)
	}
	rows := drain(t, s)
	if len(rows) != len(records) {
		t.Fatalf("decoded %d rows, want %d", len(rows), len(records))
	}
	for i, row := range rows {
		if row.Seq != i+1 {
			t.Errorf("rows[%d].Seq = %d, want %d", i, row.Seq, i+1)
		}
		if len(row.Values) != len(chans) {
			t.Errorf("rows[%d] has %d values, want %d", i, len(row.Values), len(chans))
		}
	}
	want := []Row{
		{Seq: 1, Values: []float64{14.2, 850}},
		{Seq: 2, Values: []float64{14.1, 855}},
		{Seq: 3, Values: []float64{14.0, 860}},
	}
	if diff := cmp.Diff(want, rows, approx); diff != "" {
		t.Errorf("row mismatch (-want +got):\n%s", diff)
	}
}

func TestStreamTrailingPartialRecord(t *testing.T) {
	chans := []testChannel{
		{name: "Speed", unit: "km/h", width: 2, scale: 1},
		{name: "Load", unit: "%", width: 2, scale: 1},
	}
	records := [][]int64{{50, 20}, {60, 25}}
	buf := buildLog(t, chans, records)

	s, err := NewSession(buf)
	if err != nil {
		t.Fatalf("NewSession: %v", err)
	}
	want := drain(t, s)
	recSize := s.RecordSize()

	// Padding the buffer with anything shorter than one record must not
	// change the decoded row sequence.
	for pad := 1; pad < recSize; pad++ {
		padded := append(append([]byte(nil), buf...), make([]byte, pad)...)
		s, err := NewSession(padded)
		if err != nil {
			t.Fatalf("NewSession with %d pad bytes: %v", pad, err)
		}
		got := drain(t, s)
		if diff := cmp.Diff(want, got, approx); diff != "" {
			t.Errorf("rows differ with %d pad bytes (-want +got):\n%s", pad, diff)
		}
	}
}

func TestStreamRowsRemaining(t *testing.T) {
	chans := []testChannel{{name: "RPM", unit: "rpm", width: 2, scale: 1}}
	records := [][]int64{{800}, {820}, {840}, {860}}
	buf := buildLog(t, chans, records)

	s, err := NewSession(buf)
	if err != nil {
		t.Fatalf("NewSession: %v", err)
	}
	if got := s.RowsRemaining(); got != 4 {
		t.Fatalf("RowsRemaining = %d, want 4", got)
	}
	if _, err := s.Next(); err != nil {
		t.Fatalf("Next: %v", err)
	}
	if got := s.RowsRemaining(); got != 3 {
		t.Errorf("RowsRemaining after one row = %d, want 3", got)
	}
}

func TestStreamDeterminism(t *testing.T) {
	chans := []testChannel{
		{name: "Ignition Advance", unit: "deg", width: 1, signed: true, scale: 0.5},
		{name: "MAF", unit: "g/s", width: 4, scale: 0.01},
	}
	records := [][]int64{{-12, 120}, {8, 455}, {0, 0}}
	buf := buildLog(t, chans, records)

	decodeAll := func() ([]Column, []Row) {
		s, err := NewSession(buf)
		if err != nil {
			t.Fatalf("NewSession: %v", err)
		}
		return s.Columns(), drain(t, s)
	}

	cols1, rows1 := decodeAll()
	cols2, rows2 := decodeAll()
	if diff := cmp.Diff(cols1, cols2); diff != "" {
		t.Errorf("columns differ between runs:\n%s", diff)
	}
	if diff := cmp.Diff(rows1, rows2); diff != "" {
		t.Errorf("rows differ between runs:\n%s", diff)
	}
}

func TestStreamSignExtension(t *testing.T) {
	chans := []testChannel{
		{name: "S8", unit: "", width: 1, signed: true, scale: 1},
		{name: "U8", unit: "", width: 1, scale: 1},
		{name: "S16", unit: "", width: 2, signed: true, scale: 1},
		{name: "U16", unit: "", width: 2, scale: 1},
		{name: "S32", unit: "", width: 4, signed: true, scale: 1},
		{name: "U32", unit: "", width: 4, scale: 1},
	}
	records := [][]int64{
		{-1, 0xFF, -2, 0xFFFE, -3, 0xFFFFFFFD},
		{-128, 0x80, -32768, 0x8000, -2147483648, 0x80000000},
	}
	buf := buildLog(t, chans, records)

	s, err := NewSession(buf)
	if err != nil {
		t.Fatalf("NewSession: %v", err)
	}
	rows := drain(t, s)
	want := []Row{
		{Seq: 1, Values: []float64{-1, 255, -2, 65534, -3, 4294967293}},
		{Seq: 2, Values: []float64{-128, 128, -32768, 32768, -2147483648, 2147483648}},
	}
	if diff := cmp.Diff(want, rows, approx); diff != "" {
		t.Errorf("sign extension mismatch (-want +got):\n%s", diff)
	}
}

func TestStreamNoRecords(t *testing.T) {
	chans := []testChannel{{name: "RPM", unit: "rpm", width: 2, scale: 1}}
	buf := buildLog(t, chans, nil)

	s, err := NewSession(buf)
	if err != nil {
		t.Fatalf("NewSession: %v", err)
	}
	if _, err := s.Next(); err != ErrDone {
		t.Fatalf("Next on empty stream = %v, want ErrDone", err)
	}
	// ErrDone is sticky.
	if _, err := s.Next(); err != ErrDone {
		t.Fatalf("second Next = %v, want ErrDone", err)
	}
}
