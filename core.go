package bitpack

import (
	"bitpack/mem"
	"bitpack/shift"
	"bitpack/uint128"
)

// bsToBS transfers one bit field between two storage units of type T. The
// windows start at the units hosting the fields; shifts are in-unit bit
// offsets, already normalized below 8. All arithmetic goes through safe
// shifts so that a width covering the whole unit stays well defined.
func bsToBS[T shift.Unsigned](c *Codec, dst []byte, dstShift, dstBits uint8, dstSigned bool,
	src []byte, srcShift, srcBits uint8, srcSigned bool) {

	width := shift.Width[T]()

	// masks covering the two field ranges, anchored at bit 0
	srcMask := shift.LogicalRight(^T(0), width-srcBits)
	dstMask := shift.LogicalRight(^T(0), width-dstBits)

	// single bit pinpointing each field's sign position
	srcSignMask := shift.LogicalLeft(T(1), srcBits-1)
	dstSignMask := shift.LogicalLeft(T(1), dstBits-1)

	// pull in exactly the bytes covering the source range
	var in [16]byte
	srcBytes := (int(srcBits) + int(srcShift) + 7) / 8
	if !mem.Copy(in[:srcBytes], src, srcBytes) {
		c.report(FatalError, "bsToBS: failed source copy (%d bytes)", srcBytes)
	}
	scratch := loadLE[T](in[:srcBytes])

	// drop the bits below the field, then the bits above it
	scratch = shift.LogicalRight(scratch, srcShift)
	scratch &= srcMask

	negative := srcSigned && scratch&srcSignMask != 0
	if negative {
		switch {
		case !dstSigned:
			// no unsigned representation: clamp to the domain minimum
			scratch = 0
		case srcBits > dstBits:
			// All bits where the source range exceeds the signed
			// destination range, plus the destination's own sign bit,
			// must be ones for the value to fit.
			// ex. 1101 fits 3 bits (mask=1100), 1001 does not.
			m := srcMask - shift.LogicalRight(dstMask, 1)
			if scratch&m != m {
				// 100... is the destination's most negative value
				scratch = dstSignMask
			}
		default:
			// widening: replicate the sign over the extra bits
			scratch |= dstMask - srcMask
		}
	} else {
		maxPositive := dstMask
		if dstSigned {
			maxPositive = shift.LogicalRight(dstMask, 1)
		}
		if scratch > maxPositive {
			scratch = maxPositive
		}
	}

	// truncate to the destination width: a narrowed negative value still
	// carries sign bits above dstBits at this point
	scratch &= dstMask

	// move the value into output position and build the complement mask
	// preserving the unrelated destination bits
	scratch = shift.LogicalLeft(scratch, dstShift)
	keep := ^shift.LogicalLeft(dstMask, dstShift)

	var out [16]byte
	dstBytes := (int(dstBits) + int(dstShift) + 7) / 8
	if !mem.Copy(out[:dstBytes], dst, dstBytes) {
		c.report(FatalError, "bsToBS: failed destination read (%d bytes)", dstBytes)
	}
	merged := scratch | loadLE[T](out[:dstBytes])&keep

	storeLE(out[:dstBytes], merged)
	if !mem.Copy(dst, out[:dstBytes], dstBytes) {
		c.report(FatalError, "bsToBS: failed destination write (%d bytes)", dstBytes)
	}
}

// bsToBS128 is the extended-precision variant of bsToBS, written against the
// Uint128 operator set instead of native operators.
func (c *Codec) bsToBS128(dst []byte, dstShift, dstBits uint8, dstSigned bool,
	src []byte, srcShift, srcBits uint8, srcSigned bool) {

	srcMask := shift.LogicalRight128(uint128.Max(), 128-srcBits)
	dstMask := shift.LogicalRight128(uint128.Max(), 128-dstBits)

	srcSignMask := shift.LogicalLeft128(uint128.New(0, 1), srcBits-1)
	dstSignMask := shift.LogicalLeft128(uint128.New(0, 1), dstBits-1)

	var in [16]byte
	srcBytes := (int(srcBits) + int(srcShift) + 7) / 8
	if !mem.Copy(in[:srcBytes], src, srcBytes) {
		c.report(FatalError, "bsToBS128: failed source copy (%d bytes)", srcBytes)
	}
	scratch := uint128.LoadLE(in[:srcBytes])

	scratch = shift.LogicalRight128(scratch, srcShift)
	scratch = scratch.And(srcMask)

	negative := srcSigned && !scratch.And(srcSignMask).IsZero()
	if negative {
		switch {
		case !dstSigned:
			scratch = uint128.Uint128{}
		case srcBits > dstBits:
			m := srcMask.Sub(shift.LogicalRight128(dstMask, 1))
			if scratch.And(m) != m {
				scratch = dstSignMask
			}
		default:
			scratch = scratch.Or(dstMask.Sub(srcMask))
		}
	} else {
		maxPositive := dstMask
		if dstSigned {
			maxPositive = shift.LogicalRight128(dstMask, 1)
		}
		if scratch.Cmp(maxPositive) > 0 {
			scratch = maxPositive
		}
	}

	scratch = scratch.And(dstMask)

	scratch = shift.LogicalLeft128(scratch, dstShift)
	keep := shift.LogicalLeft128(dstMask, dstShift).Not()

	var out [16]byte
	dstBytes := (int(dstBits) + int(dstShift) + 7) / 8
	if !mem.Copy(out[:dstBytes], dst, dstBytes) {
		c.report(FatalError, "bsToBS128: failed destination read (%d bytes)", dstBytes)
	}
	merged := scratch.Or(uint128.LoadLE(out[:dstBytes]).And(keep))

	uint128.PutLE(out[:dstBytes], merged)
	if !mem.Copy(dst, out[:dstBytes], dstBytes) {
		c.report(FatalError, "bsToBS128: failed destination write (%d bytes)", dstBytes)
	}
}

// loadLE assembles a value of type T from little-endian bytes. len(b) never
// exceeds the byte size of T.
func loadLE[T shift.Unsigned](b []byte) T {
	var v T
	for i := len(b) - 1; i >= 0; i-- {
		v = shift.LogicalLeft(v, 8) | T(b[i])
	}
	return v
}

// storeLE writes the low len(b) bytes of v, little-endian.
func storeLE[T shift.Unsigned](b []byte, v T) {
	for i := range b {
		b[i] = byte(v)
		v = shift.LogicalRight(v, 8)
	}
}
