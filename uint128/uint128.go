// Package uint128 implements 128-bit integers stored as ordered pairs of
// 64-bit halves. Uint128 is the storage granule used by the codec when a bit
// range does not fit a native word; Int128 is its signed counterpart.
package uint128

import (
	"fmt"
	"math/bits"
)

// Uint128 is an unsigned 128-bit integer.
type Uint128 struct {
	Hi uint64
	Lo uint64
}

// New builds a Uint128 from its upper and lower halves.
func New(hi, lo uint64) Uint128 {
	return Uint128{Hi: hi, Lo: lo}
}

// Max is the largest representable Uint128 (all bits set).
func Max() Uint128 {
	return Uint128{Hi: ^uint64(0), Lo: ^uint64(0)}
}

// Lower returns the low 64 bits.
func (u Uint128) Lower() uint64 { return u.Lo }

// Upper returns the high 64 bits.
func (u Uint128) Upper() uint64 { return u.Hi }

// SetLower replaces the low 64 bits.
func (u *Uint128) SetLower(lo uint64) { u.Lo = lo }

// SetUpper replaces the high 64 bits.
func (u *Uint128) SetUpper(hi uint64) { u.Hi = hi }

func (u Uint128) IsZero() bool { return u.Hi == 0 && u.Lo == 0 }

func (u Uint128) And(v Uint128) Uint128 {
	return Uint128{Hi: u.Hi & v.Hi, Lo: u.Lo & v.Lo}
}

func (u Uint128) Or(v Uint128) Uint128 {
	return Uint128{Hi: u.Hi | v.Hi, Lo: u.Lo | v.Lo}
}

func (u Uint128) Xor(v Uint128) Uint128 {
	return Uint128{Hi: u.Hi ^ v.Hi, Lo: u.Lo ^ v.Lo}
}

func (u Uint128) Not() Uint128 {
	return Uint128{Hi: ^u.Hi, Lo: ^u.Lo}
}

// Add returns u+v, wrapping on overflow.
func (u Uint128) Add(v Uint128) Uint128 {
	lo, carry := bits.Add64(u.Lo, v.Lo, 0)
	hi, _ := bits.Add64(u.Hi, v.Hi, carry)
	return Uint128{Hi: hi, Lo: lo}
}

// Sub returns u-v, wrapping on underflow.
func (u Uint128) Sub(v Uint128) Uint128 {
	lo, borrow := bits.Sub64(u.Lo, v.Lo, 0)
	hi, _ := bits.Sub64(u.Hi, v.Hi, borrow)
	return Uint128{Hi: hi, Lo: lo}
}

// Lsh returns u shifted left by s bits. Shift counts of 128 or more yield
// zero.
func (u Uint128) Lsh(s uint8) Uint128 {
	switch {
	case s >= 128:
		return Uint128{}
	case s >= 64:
		return Uint128{Hi: u.Lo << (s - 64)}
	default:
		// s in [0,64): the cross-half carry u.Lo>>(64-s) is 0 when s is 0
		// since Go defines shifts by the full word width as 0.
		return Uint128{
			Hi: u.Hi<<s | u.Lo>>(64-s),
			Lo: u.Lo << s,
		}
	}
}

// Rsh returns u shifted right by s bits, filling with zeroes. Shift counts of
// 128 or more yield zero.
func (u Uint128) Rsh(s uint8) Uint128 {
	switch {
	case s >= 128:
		return Uint128{}
	case s >= 64:
		return Uint128{Lo: u.Hi >> (s - 64)}
	default:
		return Uint128{
			Hi: u.Hi >> s,
			Lo: u.Lo>>s | u.Hi<<(64-s),
		}
	}
}

// Cmp compares u and v and returns -1, 0 or +1.
func (u Uint128) Cmp(v Uint128) int {
	switch {
	case u.Hi != v.Hi:
		if u.Hi < v.Hi {
			return -1
		}
		return 1
	case u.Lo != v.Lo:
		if u.Lo < v.Lo {
			return -1
		}
		return 1
	}
	return 0
}

func (u Uint128) String() string {
	return fmt.Sprintf("%016x%016x", u.Hi, u.Lo)
}

// LoadLE assembles a Uint128 from up to 16 little-endian bytes. Missing high
// bytes read as zero.
func LoadLE(b []byte) Uint128 {
	var u Uint128
	if len(b) > 16 {
		b = b[:16]
	}
	for i := len(b) - 1; i >= 0; i-- {
		u = u.Lsh(8)
		u.Lo |= uint64(b[i])
	}
	return u
}

// PutLE stores the low len(b) bytes of u into b, little-endian. At most 16
// bytes are written.
func PutLE(b []byte, u Uint128) {
	if len(b) > 16 {
		b = b[:16]
	}
	for i := range b {
		b[i] = byte(u.Lo)
		u = u.Rsh(8)
	}
}

// Int128 is a signed (two's complement) 128-bit integer. The sign lives in
// the upper half; the lower half is magnitude bits only.
type Int128 struct {
	Hi int64
	Lo uint64
}

// NewSigned builds an Int128 from its upper and lower halves.
func NewSigned(hi int64, lo uint64) Int128 {
	return Int128{Hi: hi, Lo: lo}
}

// Lower returns the low 64 bits.
func (i Int128) Lower() uint64 { return i.Lo }

// Upper returns the high 64 bits, carrying the sign.
func (i Int128) Upper() int64 { return i.Hi }

// SetLower replaces the low 64 bits.
func (i *Int128) SetLower(lo uint64) { i.Lo = lo }

// SetUpper replaces the high 64 bits.
func (i *Int128) SetUpper(hi int64) { i.Hi = hi }

// Sign returns -1 for negative values, 0 for zero and +1 otherwise.
func (i Int128) Sign() int {
	switch {
	case i.Hi < 0:
		return -1
	case i.Hi == 0 && i.Lo == 0:
		return 0
	}
	return 1
}

// Uint returns the raw two's-complement bit pattern.
func (i Int128) Uint() Uint128 {
	return Uint128{Hi: uint64(i.Hi), Lo: i.Lo}
}

// Lsh returns i shifted left by s bits. Shift counts of 128 or more yield
// zero.
func (i Int128) Lsh(s uint8) Int128 {
	u := i.Uint().Lsh(s)
	return Int128{Hi: int64(u.Hi), Lo: u.Lo}
}

// Rsh returns i shifted right by s bits, replicating the sign bit. Shift
// counts of 128 or more yield all zeroes or all ones depending on sign.
func (i Int128) Rsh(s uint8) Int128 {
	switch {
	case s >= 128:
		return Int128{Hi: i.Hi >> 63, Lo: uint64(i.Hi >> 63)}
	case s >= 64:
		return Int128{Hi: i.Hi >> 63, Lo: uint64(i.Hi >> (s - 64))}
	default:
		return Int128{
			Hi: i.Hi >> s,
			Lo: i.Lo>>s | uint64(i.Hi)<<(64-s),
		}
	}
}

func (i Int128) String() string {
	return fmt.Sprintf("%016x%016x", uint64(i.Hi), i.Lo)
}
