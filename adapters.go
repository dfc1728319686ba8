package bitpack

import (
	"unsafe"

	"bitpack/shift"
)

// BitSetToInteger extracts a bit field of srcBits bits at srcCur in src into
// dest, treating dest as a full-width field at offset 0 with the signedness
// of its type. On failure dest is left unchanged.
func BitSetToInteger[T shift.Integer](c *Codec, dest *T, src []byte, srcCur Cursor, srcBits uint8, srcSigned bool) (Cursor, bool) {
	var buf [8]byte
	n := int(unsafe.Sizeof(*dest))
	_, srcNext, ok := c.BitSetToBitSet(buf[:n], 0, uint8(n*8), isSigned[T](),
		src, srcCur, srcBits, srcSigned)
	if ok {
		var u uint64
		for i := n - 1; i >= 0; i-- {
			u = u<<8 | uint64(buf[i])
		}
		*dest = T(u)
	}
	return srcNext, ok
}

// IntegerToBitSet inserts src into a bit field of dstBits bits at dstCur in
// dst, treating src as a full-width field at offset 0 with the signedness of
// its type.
func IntegerToBitSet[T shift.Integer](c *Codec, dst []byte, dstCur Cursor, dstBits uint8, dstSigned bool, src T) (Cursor, bool) {
	var buf [8]byte
	n := int(unsafe.Sizeof(src))
	u := uint64(src)
	for i := range n {
		buf[i] = byte(u)
		u >>= 8
	}
	dstNext, _, ok := c.BitSetToBitSet(dst, dstCur, dstBits, dstSigned,
		buf[:n], 0, uint8(n*8), isSigned[T]())
	return dstNext, ok
}

// isSigned reports whether T is a signed type: only then is -1, i.e. the
// all-ones pattern, negative.
func isSigned[T shift.Integer]() bool {
	var zero T
	return ^zero < zero
}
