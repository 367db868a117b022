package decode

import (
	"encoding/binary"

	"x431/common"
)

// Column is one tabular output column: the header seam handed to the CSV
// emitter.
type Column struct {
	Name   string
	Unit   string
	Active bool
}

// Row is one decoded record: a 1-based sequence number and one resolved
// value per channel, in channel table order. Rows are handed to the
// output sink as they are decoded and never retained by the session.
type Row struct {
	Seq    int
	Values []float64
}

// Session decodes one log buffer. It owns the buffer, the channel table
// and the cursor; streaming is forward-only and strictly sequential, a
// restart requires a fresh session. Sessions over distinct buffers are
// independent and may run in parallel.
type Session struct {
	buf     []byte
	profile Profile
	table   ChannelTable
	cur     *Cursor
	recSize int
	seq     int
	log     common.Logger
}

// NewSession parses the channel table of data using the default format
// profile and positions the stream on the first record.
func NewSession(data []byte) (*Session, error) {
	return NewSessionProfile(data, DefaultProfile())
}

// NewSessionProfile is NewSession with an explicit format profile.
func NewSessionProfile(data []byte, p Profile) (*Session, error) {
	return NewSessionLogger(data, p, nil)
}

// NewSessionLogger is NewSessionProfile with a logger for debug traces.
// A nil logger discards them.
func NewSessionLogger(data []byte, p Profile, logger common.Logger) (*Session, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	if logger == nil {
		logger = common.NewNoOpLogger()
	}
	cur := NewCursor(data, p.order())
	table, err := parseChannelTable(cur, p)
	if err != nil {
		return nil, err
	}
	s := &Session{
		buf:     data,
		profile: p,
		table:   table,
		cur:     cur,
		recSize: table.RecordSize(),
		log:     logger,
	}
	s.log.Debugf("channel table: %d channels, %d byte records, %d rows", len(table), s.recSize, s.RowsRemaining())
	return s, nil
}

// Table returns the parsed channel table.
func (s *Session) Table() ChannelTable {
	return s.table
}

// Columns returns the ordered column descriptors of the tabular result.
func (s *Session) Columns() []Column {
	cols := make([]Column, len(s.table))
	for i, d := range s.table {
		cols[i] = Column{Name: d.Name, Unit: d.Unit, Active: d.Active}
	}
	return cols
}

// RecordSize returns the byte size of one record.
func (s *Session) RecordSize() int {
	return s.recSize
}

// RowsRemaining returns how many full records are left to stream.
func (s *Session) RowsRemaining() int {
	return s.cur.Remaining() / s.recSize
}

// Next decodes and returns the next row. It returns ErrDone once fewer
// bytes remain than one full record; a trailing partial record is
// discarded silently since scanner logs commonly end mid-write.
func (s *Session) Next() (Row, error) {
	if s.cur.Remaining() < s.recSize {
		if rem := s.cur.Remaining(); rem > 0 {
			s.log.Debugf("discarding %d byte partial record after row %d", rem, s.seq)
		}
		return Row{}, ErrDone
	}
	rec, err := s.cur.ReadBytes(s.recSize)
	if err != nil {
		return Row{}, err
	}

	values := make([]float64, len(s.table))
	off := 0
	order := s.profile.order()
	for i, d := range s.table {
		raw := decodeRaw(rec[off:off+d.Width], order, d.Signed)
		values[i] = Resolve(raw, d.Scale, d.Offset)
		off += d.Width
	}
	s.seq++
	return Row{Seq: s.seq, Values: values}, nil
}

// decodeRaw interprets b as an integer of width len(b), sign extending
// when the channel is declared signed.
func decodeRaw(b []byte, order binary.ByteOrder, signed bool) int64 {
	switch len(b) {
	case 1:
		if signed {
			return int64(int8(b[0]))
		}
		return int64(b[0])
	case 2:
		v := order.Uint16(b)
		if signed {
			return int64(int16(v))
		}
		return int64(v)
	case 4:
		v := order.Uint32(b)
		if signed {
			return int64(int32(v))
		}
		return int64(v)
	}
	return 0
}
