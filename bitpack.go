// Package bitpack reads and writes integers of arbitrary bit width (1 to 128
// bits) at arbitrary bit offsets inside byte buffers, converting between the
// packed representation and native signed or unsigned integers with explicit
// two's-complement sign extension and saturation. Buffers are interpreted as
// little-endian storage and every operation touches only the minimum byte
// span covering the requested bit range.
//
// Operations never panic. A bit-width demand that cannot be hosted by any
// storage granularity is a normal, checkable failure (ok == false); a buffer
// too short for the requested span is an exceptional condition reported
// through the codec's Reporter while the call degrades to a zero-filled
// scratch value.
package bitpack

import (
	"fmt"

	"bitpack/log"
)

//go:generate go tool stringer -type=Severity

// Severity classifies conditions reported through a Reporter.
type Severity uint8

const (
	Information Severity = iota
	Warning
	RecoverableError
	FatalError
)

// Reporter receives faults that the codec cannot surface through return
// values, such as a copy that would overrun a caller buffer. Implementations
// must not panic; the codec continues after reporting.
type Reporter interface {
	Report(sev Severity, msg string)
}

// logReporter is the default Reporter. It forwards to the codec log module,
// mapping severities onto log levels. FatalError never terminates the
// process.
type logReporter struct{}

func (logReporter) Report(sev Severity, msg string) {
	e := log.ModCodec.WithField("severity", sev.String())
	switch sev {
	case Information:
		e.Infof("%s", msg)
	case Warning:
		e.Warnf("%s", msg)
	default:
		e.Errorf("%s", msg)
	}
}

// Codec converts bit fields between byte buffers. It holds no buffer state:
// every call is reentrant and the only memory mutated is the destination
// span the caller names.
type Codec struct {
	rep Reporter
}

// NewCodec returns a codec reporting faults to rep. A nil rep falls back to
// the log-backed reporter.
func NewCodec(rep Reporter) *Codec {
	if rep == nil {
		rep = logReporter{}
	}
	return &Codec{rep: rep}
}

var std = NewCodec(nil)

// Default returns the shared codec backed by the log reporter.
func Default() *Codec {
	return std
}

// Cursor addresses a bit position inside a byte buffer. Bit 0 is the least
// significant bit of the first byte.
type Cursor uint

// Advance moves the cursor forward by the given number of bits.
func (c Cursor) Advance(bits uint8) Cursor {
	return c + Cursor(bits)
}

func (c Cursor) byteIndex() int {
	return int(c >> 3)
}

func (c Cursor) bitOffset() uint8 {
	return uint8(c & 7)
}

// BitSetToBitSet copies a bit field of srcBits bits at srcCur in src into a
// bit field of dstBits bits at dstCur in dst. The value is converted between
// the two widths and signedness interpretations: a negative source saturates
// to zero in an unsigned destination, sign-extends into a wider signed
// destination, and saturates to the most negative representable value when
// it does not fit a narrower signed destination; a non-negative source
// saturates to the destination's maximum. Destination bits outside the
// target field are preserved.
//
// Both field widths must be in [1,128] and the combined bit demand of each
// range (offset within its storage unit plus width) must fit the largest
// granularity of 128 bits; otherwise no memory is touched and ok is false.
// The returned cursors are always the input cursors advanced by the field
// widths, so consecutive fields can be packed without recomputing offsets.
func (c *Codec) BitSetToBitSet(dst []byte, dstCur Cursor, dstBits uint8, dstSigned bool,
	src []byte, srcCur Cursor, srcBits uint8, srcSigned bool) (dstNext, srcNext Cursor, ok bool) {

	dstNext = dstCur.Advance(dstBits)
	srcNext = srcCur.Advance(srcBits)

	if dstBits == 0 || dstBits > 128 || srcBits == 0 || srcBits > 128 {
		return dstNext, srcNext, false
	}

	// normalize both cursors so the in-unit shift is below a byte
	srcBase, srcShift := srcCur.byteIndex(), srcCur.bitOffset()
	dstBase, dstShift := dstCur.byteIndex(), dstCur.bitOffset()

	g, ok := granFor(srcShift+srcBits, dstShift+dstBits)
	if !ok {
		return dstNext, srcNext, false
	}

	srcWin := window(src, srcBase)
	dstWin := window(dst, dstBase)

	switch g {
	case Gran8:
		bsToBS[uint8](c, dstWin, dstShift, dstBits, dstSigned, srcWin, srcShift, srcBits, srcSigned)
	case Gran16:
		bsToBS[uint16](c, dstWin, dstShift, dstBits, dstSigned, srcWin, srcShift, srcBits, srcSigned)
	case Gran32:
		bsToBS[uint32](c, dstWin, dstShift, dstBits, dstSigned, srcWin, srcShift, srcBits, srcSigned)
	case Gran64:
		bsToBS[uint64](c, dstWin, dstShift, dstBits, dstSigned, srcWin, srcShift, srcBits, srcSigned)
	case Gran128:
		c.bsToBS128(dstWin, dstShift, dstBits, dstSigned, srcWin, srcShift, srcBits, srcSigned)
	}

	return dstNext, srcNext, true
}

// window slices buf from the normalized byte base. An out-of-range base
// yields an empty window; the bounded copy then fails and gets reported.
func window(buf []byte, base int) []byte {
	if base >= len(buf) {
		return nil
	}
	return buf[base:]
}

func (c *Codec) report(sev Severity, format string, args ...any) {
	c.rep.Report(sev, fmt.Sprintf(format, args...))
}
