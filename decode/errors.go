package decode

import (
	"errors"
	"fmt"
	"strings"
)

// ErrDone terminates record streaming normally. It is returned by
// Session.Next once fewer bytes remain than one full record; it is not a
// decode failure.
var ErrDone = errors.New("no more records")

// Kind identifies the structural failure classes of the decoder. All of
// them are fatal for the session: the input cannot be decoded and
// retrying with the same bytes reproduces the same failure.
type Kind int

const (
	// KindTruncatedInput reports a read that requested more bytes than
	// remain in the buffer.
	KindTruncatedInput Kind = iota + 1
	// KindInvalidOffset reports a seek target outside the buffer bounds.
	KindInvalidOffset
	// KindMalformedChannelTable reports a channel count or descriptor
	// layout inconsistent with the buffer size.
	KindMalformedChannelTable
)

type kindDesc struct {
	name string
	msg  string
}

var kindDescs = map[Kind]kindDesc{
	KindTruncatedInput:        {"truncated input", "a read requested more bytes than remain in the buffer"},
	KindInvalidOffset:         {"invalid offset", "a seek targeted a position outside the buffer bounds"},
	KindMalformedChannelTable: {"malformed channel table", "channel count or descriptors inconsistent with the buffer size"},
}

func (k Kind) String() string {
	if d, ok := kindDescs[k]; ok {
		return d.name
	}
	return "unknown"
}

// Error is the decoder error object. It carries the failure class, the
// buffer offset where the failure was detected and a free-form message.
type Error struct {
	Kind    Kind
	Offset  int
	Message string
}

func newError(kind Kind, offset int, format string, args ...interface{}) *Error {
	return &Error{
		Kind:    kind,
		Offset:  offset,
		Message: fmt.Sprintf(format, args...),
	}
}

// Error implements the standard error interface.
func (e *Error) Error() string {
	var sb strings.Builder

	sb.WriteString(e.Kind.String())
	fmt.Fprintf(&sb, " at offset 0x%X", e.Offset)
	if e.Message != "" {
		sb.WriteString(": ")
		sb.WriteString(e.Message)
	}
	return sb.String()
}

// Describe returns the long description of the failure class.
func (e *Error) Describe() string {
	if d, ok := kindDescs[e.Kind]; ok {
		return d.msg
	}
	return "unknown decode failure"
}

// KindOf returns the failure class carried by err, or zero when err is
// not a decoder error.
func KindOf(err error) Kind {
	var de *Error
	if errors.As(err, &de) {
		return de.Kind
	}
	return 0
}
