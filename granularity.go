package bitpack

// Granularity is the storage-unit width, in bits, hosting one codec
// operation. The dispatch layer picks the smallest granularity whose unit can
// contain both the source and destination bit ranges, so a call never touches
// more memory than the field demands.
type Granularity uint8

const (
	Gran8   Granularity = 8
	Gran16  Granularity = 16
	Gran32  Granularity = 32
	Gran64  Granularity = 64
	Gran128 Granularity = 128
)

var granularities = [...]Granularity{Gran8, Gran16, Gran32, Gran64, Gran128}

// granFor returns the smallest granularity able to host both bit-range ends
// (in-unit shift plus field width, each at most 7+128).
func granFor(srcEnd, dstEnd uint8) (Granularity, bool) {
	for _, g := range granularities {
		if srcEnd <= uint8(g) && dstEnd <= uint8(g) {
			return g, true
		}
	}
	return 0, false
}
