package layout

import (
	"fmt"
	"reflect"
	"strconv"
	"strings"

	"bitpack"
)

// Struct fields tagged "bitfield" map onto consecutive bit fields, in
// declaration order. The tag carries comma-separated options:
//
//	bits=N      Field width in bits, 1 to 64. Mandatory: untagged fields
//	            and fields without a bits option are not part of the
//	            packed representation and are skipped.
//
//	signed      Force signed interpretation of the packed field.
//	unsigned    Force unsigned interpretation.
//
// Without a signedness option the Go field type decides (intN are signed,
// uintN are not).

type taggedField struct {
	name   string
	bits   uint8
	signed bool
	index  int
}

// structFields parses the bitfield tags of v, which must be a non-nil
// pointer to a struct.
func structFields(v any) ([]taggedField, reflect.Value, error) {
	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Pointer || rv.IsNil() || rv.Elem().Kind() != reflect.Struct {
		return nil, reflect.Value{}, fmt.Errorf("want non-nil struct pointer, got %T", v)
	}
	rv = rv.Elem()
	rt := rv.Type()

	var fields []taggedField
	for i := 0; i < rt.NumField(); i++ {
		sf := rt.Field(i)
		tag, found := sf.Tag.Lookup("bitfield")
		if !found {
			continue
		}
		tf, err := parseTag(sf, tag)
		if err != nil {
			return nil, reflect.Value{}, fmt.Errorf("field %s: %w", sf.Name, err)
		}
		tf.index = i
		fields = append(fields, tf)
	}
	if len(fields) == 0 {
		return nil, reflect.Value{}, fmt.Errorf("%s has no bitfield-tagged fields", rt)
	}
	return fields, rv, nil
}

func parseTag(sf reflect.StructField, tag string) (taggedField, error) {
	tf := taggedField{name: sf.Name}

	switch sf.Type.Kind() {
	case reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		tf.signed = true
	case reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		tf.signed = false
	default:
		return tf, fmt.Errorf("unsupported type %s", sf.Type)
	}

	for _, opt := range strings.Split(tag, ",") {
		key, val, _ := strings.Cut(opt, "=")
		switch key {
		case "bits":
			n, err := strconv.ParseUint(val, 0, 8)
			if err != nil {
				return tf, fmt.Errorf("invalid bits option %q", val)
			}
			tf.bits = uint8(n)
		case "signed":
			tf.signed = true
		case "unsigned":
			tf.signed = false
		case "":
			// tolerate stray commas
		default:
			return tf, fmt.Errorf("unknown option %q", key)
		}
	}

	if tf.bits < 1 || tf.bits > 64 {
		return tf, fmt.Errorf("invalid width %d", tf.bits)
	}
	return tf, nil
}

// PackStruct packs the bitfield-tagged fields of v (a struct pointer) into
// dst, first field at bit 0. Out-of-domain values saturate per the codec
// rules.
func PackStruct(c *bitpack.Codec, dst []byte, v any) error {
	fields, rv, err := structFields(v)
	if err != nil {
		return err
	}
	var cur bitpack.Cursor
	for _, f := range fields {
		fv := rv.Field(f.index)
		var ok bool
		if fv.CanInt() {
			cur, ok = bitpack.IntegerToBitSet(c, dst, cur, f.bits, f.signed, fv.Int())
		} else {
			cur, ok = bitpack.IntegerToBitSet(c, dst, cur, f.bits, f.signed, fv.Uint())
		}
		if !ok {
			return fmt.Errorf("failed to pack field %s", f.name)
		}
	}
	return nil
}

// UnpackStruct fills the bitfield-tagged fields of v (a struct pointer) from
// src. Signed fields come back sign-extended; values too wide for the Go
// field type saturate.
func UnpackStruct(c *bitpack.Codec, src []byte, v any) error {
	fields, rv, err := structFields(v)
	if err != nil {
		return err
	}
	var cur bitpack.Cursor
	for _, f := range fields {
		fv := rv.Field(f.index)
		var ok bool
		if fv.CanInt() {
			var val int64
			cur, ok = bitpack.BitSetToInteger(c, &val, src, cur, f.bits, f.signed)
			if ok {
				fv.SetInt(clampInt(val, fv.Type().Bits()))
			}
		} else {
			var val uint64
			cur, ok = bitpack.BitSetToInteger(c, &val, src, cur, f.bits, f.signed)
			if ok {
				fv.SetUint(clampUint(val, fv.Type().Bits()))
			}
		}
		if !ok {
			return fmt.Errorf("failed to unpack field %s", f.name)
		}
	}
	return nil
}

// clampInt saturates v to a signed integer of the given bit width.
func clampInt(v int64, bits int) int64 {
	if bits >= 64 {
		return v
	}
	max := int64(1)<<(bits-1) - 1
	min := -max - 1
	switch {
	case v > max:
		return max
	case v < min:
		return min
	}
	return v
}

// clampUint saturates v to an unsigned integer of the given bit width.
func clampUint(v uint64, bits int) uint64 {
	if bits >= 64 {
		return v
	}
	max := uint64(1)<<bits - 1
	if v > max {
		return max
	}
	return v
}
