package decode

import "errors"

// Descriptor flag bits.
const flagSigned = 1 << 0

// ChannelDescriptor describes one monitored diagnostic channel: its
// column header strings and the encoding parameters needed to interpret
// its raw samples.
type ChannelDescriptor struct {
	// Index is the channel's ordinal position in the table; it is dense
	// and unique and fixes the channel's slot in every record.
	Index  int
	Name   string
	Unit   string
	Width  int
	Signed bool
	Scale  float64
	Offset float64
	// Active is false for channels whose name decodes to an empty string.
	// Such channels keep their slot so that raw samples stay aligned, but
	// downstream consumers may hide them.
	Active bool
}

// ChannelTable is the ordered channel descriptor list built once from the
// metadata table. It is immutable after construction; its length is the
// fixed column count of every record that follows.
type ChannelTable []ChannelDescriptor

// RecordSize returns the byte size of one record: the sum of all channel
// sample widths.
func (t ChannelTable) RecordSize() int {
	var n int
	for _, d := range t {
		n += d.Width
	}
	return n
}

// validWidth reports whether w is a sample width that occurs in revision
// A logs.
func validWidth(w int) bool {
	switch w {
	case 1, 2, 4:
		return true
	}
	return false
}

// parseChannelTable reads the channel metadata table at the profile's
// structural offset and leaves the cursor positioned on the first record.
// A count of zero or a table that outruns the buffer is malformed; a
// partial table is never returned.
func parseChannelTable(cur *Cursor, p Profile) (ChannelTable, error) {
	if err := cur.Seek(p.MetadataOffset); err != nil {
		return nil, err
	}
	count, err := cur.ReadUint16()
	if err != nil {
		return nil, err
	}
	if count == 0 {
		return nil, newError(KindMalformedChannelTable, p.MetadataOffset, "channel count is zero")
	}
	table := make(ChannelTable, 0, count)
	for i := 0; i < int(count); i++ {
		d, err := readDescriptor(cur, p)
		if err != nil {
			return nil, tableError(err, i)
		}
		d.Index = i
		table = append(table, d)
	}
	return table, nil
}

func readDescriptor(cur *Cursor, p Profile) (ChannelDescriptor, error) {
	var d ChannelDescriptor

	name, err := cur.ReadCString(p.NameLimit)
	if err != nil {
		return d, err
	}
	unit, err := cur.ReadCString(p.UnitLimit)
	if err != nil {
		return d, err
	}
	width, err := cur.ReadUint8()
	if err != nil {
		return d, err
	}
	flags, err := cur.ReadUint8()
	if err != nil {
		return d, err
	}
	scale, err := cur.ReadFloat64()
	if err != nil {
		return d, err
	}
	offset, err := cur.ReadFloat64()
	if err != nil {
		return d, err
	}

	d = ChannelDescriptor{
		Name:   name,
		Unit:   unit,
		Width:  int(width),
		Signed: flags&flagSigned != 0,
		Scale:  scale,
		Offset: offset,
		Active: name != "",
	}
	if !validWidth(d.Width) {
		return d, newError(KindMalformedChannelTable, cur.Offset(), "channel %q: unsupported sample width %d", name, d.Width)
	}
	return d, nil
}

// tableError folds a truncated descriptor read into the malformed table
// class: the declared count promised more bytes than the buffer holds.
func tableError(err error, index int) error {
	var de *Error
	if errors.As(err, &de) && de.Kind == KindTruncatedInput {
		return newError(KindMalformedChannelTable, de.Offset, "descriptor %d: %s", index, de.Message)
	}
	return err
}
