// Package shift implements shift operations with a uniform out-of-range
// contract: any shift count at or beyond the operand's bit width yields the
// zero value instead of the native wrap or sign-fill behavior. Logical
// variants never propagate the sign bit, even for signed operands;
// mathematical variants keep native arithmetic semantics within range.
package shift

import (
	"unsafe"

	"bitpack/uint128"
)

// Unsigned is the set of native unsigned widths used as storage granules.
type Unsigned interface {
	~uint8 | ~uint16 | ~uint32 | ~uint64
}

// Signed is the set of native signed integer widths.
type Signed interface {
	~int8 | ~int16 | ~int32 | ~int64
}

// Integer is any fixed-width native integer.
type Integer interface {
	Unsigned | Signed
}

// Width returns the size of T in bits.
func Width[T Integer]() uint8 {
	var z T
	return uint8(unsafe.Sizeof(z) * 8)
}

// LogicalRight shifts number right by s bits without propagating the sign
// bit: a signed operand is reinterpreted as an unsigned value of the same
// width before shifting. Shift counts >= the width of T return zero.
func LogicalRight[T Integer](number T, s uint8) T {
	w := Width[T]()
	if s >= w {
		return 0
	}
	// Widen without the sign by masking down to w bits, shift, truncate.
	u := uint64(number) & (^uint64(0) >> (64 - w))
	return T(u >> s)
}

// LogicalLeft shifts number left by s bits. Shift counts >= the width of T
// return zero.
func LogicalLeft[T Integer](number T, s uint8) T {
	if s >= Width[T]() {
		return 0
	}
	return number << s
}

// MathematicRight shifts number right by s bits with native semantics:
// negative signed operands sign-extend. Shift counts >= the width of T
// return zero.
func MathematicRight[T Integer](number T, s uint8) T {
	if s >= Width[T]() {
		return 0
	}
	return number >> s
}

// MathematicLeft shifts number left by s bits. Shift counts >= the width of T
// return zero.
func MathematicLeft[T Integer](number T, s uint8) T {
	if s >= Width[T]() {
		return 0
	}
	return number << s
}

// LogicalRight128 shifts an unsigned 128-bit value right by s bits. The
// halves carry no sign, so this delegates to the type's own shift. Shift
// counts >= 128 return zero.
func LogicalRight128(number uint128.Uint128, s uint8) uint128.Uint128 {
	if s >= 128 {
		return uint128.Uint128{}
	}
	return number.Rsh(s)
}

// LogicalLeft128 shifts an unsigned 128-bit value left by s bits. Shift
// counts >= 128 return zero.
func LogicalLeft128(number uint128.Uint128, s uint8) uint128.Uint128 {
	if s >= 128 {
		return uint128.Uint128{}
	}
	return number.Lsh(s)
}

// LogicalRightSigned128 shifts a signed 128-bit value right by s bits without
// sign-extending the bits shifted within a half, while a shift that consumes
// the whole lower half refills the upper half with the sign of the old upper
// half. Shift counts >= 128 return zero.
func LogicalRightSigned128(number uint128.Int128, s uint8) uint128.Int128 {
	if s >= 128 {
		return uint128.Int128{}
	}
	// A shift equal to a half's width maps back to shift 0 on some targets,
	// so the zero count is handled before anything else.
	if s == 0 {
		return number
	}
	lower := number.Lower()
	upper := number.Upper()
	if s < 64 {
		// shift the lower half, then pull the carry bits down from the
		// upper half
		lower = lower >> s
		lower |= uint64(upper) << (64 - s)
		upper = int64(uint64(upper) >> s)
	} else {
		// the whole lower half is consumed: the old upper half slides
		// down and the new upper half is sign fill
		s -= 64
		lower = uint64(upper) >> s
		if upper < 0 {
			upper = -1
		} else {
			upper = 0
		}
	}
	number.SetLower(lower)
	number.SetUpper(upper)
	return number
}

// MathematicRight128 shifts a signed 128-bit value right by s bits,
// sign-extending negative operands. Shift counts >= 128 return zero.
func MathematicRight128(number uint128.Int128, s uint8) uint128.Int128 {
	if s >= 128 {
		return uint128.Int128{}
	}
	return number.Rsh(s)
}

// MathematicLeft128 shifts a signed 128-bit value left by s bits. Shift
// counts >= 128 return zero.
func MathematicLeft128(number uint128.Int128, s uint8) uint128.Int128 {
	if s >= 128 {
		return uint128.Int128{}
	}
	return number.Lsh(s)
}
