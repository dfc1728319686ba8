package uint128

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestAccessors(t *testing.T) {
	u := New(0xAAAA, 0xBBBB)
	require.Equal(t, uint64(0xAAAA), u.Upper())
	require.Equal(t, uint64(0xBBBB), u.Lower())

	u.SetUpper(1)
	u.SetLower(2)
	require.Equal(t, New(1, 2), u)

	i := NewSigned(-1, 42)
	require.Equal(t, int64(-1), i.Upper())
	require.Equal(t, uint64(42), i.Lower())
	i.SetUpper(7)
	i.SetLower(8)
	require.Equal(t, NewSigned(7, 8), i)
}

func TestAddSubCarry(t *testing.T) {
	one := New(0, 1)

	// carry into the upper half
	require.Equal(t, New(1, 0), New(0, ^uint64(0)).Add(one))
	// borrow from the upper half
	require.Equal(t, New(0, ^uint64(0)), New(1, 0).Sub(one))
	// wrap around
	require.Equal(t, Uint128{}, Max().Add(one))
	require.Equal(t, Max(), Uint128{}.Sub(one))

	r := rand.New(rand.NewSource(7))
	for range 1000 {
		u := New(0, r.Uint64())
		v := New(0, r.Uint64())
		sum := u.Add(v)
		require.Equal(t, u, sum.Sub(v))
	}
}

func TestShifts(t *testing.T) {
	u := New(0x0123456789ABCDEF, 0xFEDCBA9876543210)

	require.Equal(t, u, u.Lsh(0))
	require.Equal(t, u, u.Rsh(0))

	require.Equal(t, New(u.Lo, 0), u.Lsh(64))
	require.Equal(t, New(0, u.Hi), u.Rsh(64))

	require.Equal(t, Uint128{}, u.Lsh(128))
	require.Equal(t, Uint128{}, u.Rsh(128))

	// cross-half carries
	got := u.Rsh(8)
	require.Equal(t, uint64(0x000123456789ABCD), got.Hi)
	require.Equal(t, uint64(0xEFFEDCBA98765432), got.Lo)

	got = u.Lsh(8)
	require.Equal(t, uint64(0x23456789ABCDEFFE), got.Hi)
	require.Equal(t, uint64(0xDCBA987654321000), got.Lo)

	require.Equal(t, New(0, 1), New(1<<63, 0).Rsh(127))
	require.Equal(t, New(1<<63, 0), New(0, 1).Lsh(127))
}

func TestSignedShifts(t *testing.T) {
	i := NewSigned(-1, 0)
	require.Equal(t, NewSigned(-1, ^uint64(0)), i.Rsh(64))
	require.Equal(t, NewSigned(-1, ^uint64(0)), i.Rsh(128))

	p := NewSigned(1, 0)
	require.Equal(t, NewSigned(0, 1<<63), p.Rsh(1))
	require.Equal(t, Int128{}, p.Rsh(128))
}

func TestCmp(t *testing.T) {
	require.Equal(t, 0, New(1, 2).Cmp(New(1, 2)))
	require.Equal(t, -1, New(1, 2).Cmp(New(2, 0)))
	require.Equal(t, 1, New(2, 0).Cmp(New(1, ^uint64(0))))
	require.Equal(t, -1, New(1, 1).Cmp(New(1, 2)))
	require.Equal(t, 1, New(1, 3).Cmp(New(1, 2)))
}

func TestSign(t *testing.T) {
	require.Equal(t, 0, Int128{}.Sign())
	require.Equal(t, 1, NewSigned(0, 1).Sign())
	require.Equal(t, 1, NewSigned(1, 0).Sign())
	require.Equal(t, -1, NewSigned(-1, ^uint64(0)).Sign())
}

func TestLoadPutLE(t *testing.T) {
	b := []byte{0x10, 0x32, 0x54, 0x76, 0x98, 0xBA, 0xDC, 0xFE, 0xEF, 0xCD, 0xAB, 0x89, 0x67, 0x45, 0x23, 0x01}
	u := LoadLE(b)
	require.Equal(t, New(0x0123456789ABCDEF, 0xFEDCBA9876543210), u)

	out := make([]byte, 16)
	PutLE(out, u)
	require.Equal(t, b, out)

	// short loads pad the high bytes with zero
	require.Equal(t, New(0, 0x3210), LoadLE(b[:2]))

	// short stores only write what fits
	short := make([]byte, 3)
	PutLE(short, u)
	require.Equal(t, []byte{0x10, 0x32, 0x54}, short)
}
