// Package layout packs and unpacks named sequences of bit fields. A Layout
// describes fields in wire order; Pack and Unpack walk it with the codec's
// cursor contract so fields land back to back regardless of byte boundaries.
// Layouts can be declared in Go (see PackStruct for the struct-tag form) or
// loaded from TOML files.
package layout

import (
	"fmt"

	"github.com/BurntSushi/toml"

	"bitpack"
)

// Field is one named bit field of a layout.
type Field struct {
	Name   string `toml:"name"`
	Bits   uint8  `toml:"bits"`
	Signed bool   `toml:"signed"`
}

// Layout is an ordered list of bit fields packed contiguously, the first
// field at bit 0.
type Layout struct {
	Name   string  `toml:"name"`
	Fields []Field `toml:"fields"`
}

// BitSize returns the total number of bits the layout occupies.
func (l *Layout) BitSize() uint {
	var n uint
	for _, f := range l.Fields {
		n += uint(f.Bits)
	}
	return n
}

// ByteSize returns the number of bytes needed to hold a packed layout.
func (l *Layout) ByteSize() int {
	return int(l.BitSize()+7) / 8
}

// Validate checks that the layout has at least one field, that names are
// unique and non-empty and that each width is in [1,64], at most 63 for
// unsigned fields. Wider fields cannot round-trip through the int64 value
// maps Pack and Unpack use.
func (l *Layout) Validate() error {
	if len(l.Fields) == 0 {
		return fmt.Errorf("layout %q has no fields", l.Name)
	}
	seen := make(map[string]bool, len(l.Fields))
	for _, f := range l.Fields {
		if f.Name == "" {
			return fmt.Errorf("layout %q: field with empty name", l.Name)
		}
		if seen[f.Name] {
			return fmt.Errorf("layout %q: duplicate field %q", l.Name, f.Name)
		}
		seen[f.Name] = true
		max := uint8(64)
		if !f.Signed {
			max = 63
		}
		if f.Bits < 1 || f.Bits > max {
			return fmt.Errorf("layout %q: field %q has invalid width %d (max %d)", l.Name, f.Name, f.Bits, max)
		}
	}
	return nil
}

// Pack writes the given field values into dst, in layout order starting at
// bit 0. Every field must have a value; values outside a field's domain
// saturate per the codec rules. dst must hold at least ByteSize bytes.
func (l *Layout) Pack(c *bitpack.Codec, dst []byte, values map[string]int64) error {
	if err := l.Validate(); err != nil {
		return err
	}
	if len(dst) < l.ByteSize() {
		return fmt.Errorf("layout %q: buffer too small: %d bytes, need %d", l.Name, len(dst), l.ByteSize())
	}
	var cur bitpack.Cursor
	for _, f := range l.Fields {
		v, found := values[f.Name]
		if !found {
			return fmt.Errorf("layout %q: missing value for field %q", l.Name, f.Name)
		}
		next, ok := bitpack.IntegerToBitSet(c, dst, cur, f.Bits, f.Signed, v)
		if !ok {
			return fmt.Errorf("layout %q: failed to pack field %q", l.Name, f.Name)
		}
		cur = next
	}
	return nil
}

// Unpack reads the layout's fields out of src into a value map. Signed
// fields come back sign-extended.
func (l *Layout) Unpack(c *bitpack.Codec, src []byte) (map[string]int64, error) {
	if err := l.Validate(); err != nil {
		return nil, err
	}
	if len(src) < l.ByteSize() {
		return nil, fmt.Errorf("layout %q: buffer too small: %d bytes, need %d", l.Name, len(src), l.ByteSize())
	}
	values := make(map[string]int64, len(l.Fields))
	var cur bitpack.Cursor
	for _, f := range l.Fields {
		var v int64
		next, ok := bitpack.BitSetToInteger(c, &v, src, cur, f.Bits, f.Signed)
		if !ok {
			return nil, fmt.Errorf("layout %q: failed to unpack field %q", l.Name, f.Name)
		}
		values[f.Name] = v
		cur = next
	}
	return values, nil
}

// Load reads and validates a layout from a TOML file.
func Load(path string) (*Layout, error) {
	var l Layout
	if _, err := toml.DecodeFile(path, &l); err != nil {
		return nil, fmt.Errorf("failed to decode layout: %w", err)
	}
	if err := l.Validate(); err != nil {
		return nil, err
	}
	return &l, nil
}
