package decode

import (
	"bytes"
	"encoding/binary"
	"math"
	"testing"
)

// testChannel describes one channel of a synthetic log.
type testChannel struct {
	name   string
	unit   string
	width  int
	signed bool
	scale  float64
	offset float64
}

// buildLog assembles a synthetic revision A log buffer: zero padding up
// to the metadata offset, the channel table, then one record per entry of
// records with raw values encoded per channel width.
func buildLog(t *testing.T, chans []testChannel, records [][]int64) []byte {
	t.Helper()

	var buf bytes.Buffer
	buf.Write(make([]byte, DefaultMetadataOffset))

	var count [2]byte
	binary.LittleEndian.PutUint16(count[:], uint16(len(chans)))
	buf.Write(count[:])

	for _, ch := range chans {
		buf.WriteString(ch.name)
		buf.WriteByte(0)
		buf.WriteString(ch.unit)
		buf.WriteByte(0)
		buf.WriteByte(byte(ch.width))
		var flags byte
		if ch.signed {
			flags |= flagSigned
		}
		buf.WriteByte(flags)
		var f [8]byte
		binary.LittleEndian.PutUint64(f[:], math.Float64bits(ch.scale))
		buf.Write(f[:])
		binary.LittleEndian.PutUint64(f[:], math.Float64bits(ch.offset))
		buf.Write(f[:])
	}

	for _, rec := range records {
		if len(rec) != len(chans) {
			t.Fatalf("record has %d values, want %d", len(rec), len(chans))
		}
		for i, raw := range rec {
			writeRaw(&buf, raw, chans[i].width)
		}
	}
	return buf.Bytes()
}

func writeRaw(buf *bytes.Buffer, raw int64, width int) {
	switch width {
	case 1:
		buf.WriteByte(byte(raw))
	case 2:
		var b [2]byte
		binary.LittleEndian.PutUint16(b[:], uint16(raw))
		buf.Write(b[:])
	case 4:
		var b [4]byte
		binary.LittleEndian.PutUint32(b[:], uint32(raw))
		buf.Write(b[:])
	}
}

// drain pulls every row out of a session.
func drain(t *testing.T, s *Session) []Row {
	t.Helper()

	var rows []Row
	for {
		row, err := s.Next()
		if err == ErrDone {
			return rows
		}
		if err != nil {
			t.Fatalf("Next: %v", err)
		}
		rows = append(rows, row)
	}
}
