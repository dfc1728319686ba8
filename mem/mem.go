// Package mem provides the bounded byte copy the codec uses to move scratch
// values in and out of caller buffers.
package mem

// Copy copies exactly n bytes from src to dst. It returns false and copies
// nothing when n is negative or either slice holds fewer than n bytes: a
// failed copy never leaves a partial result behind.
func Copy(dst, src []byte, n int) bool {
	if n < 0 || len(dst) < n || len(src) < n {
		return false
	}
	copy(dst[:n], src[:n])
	return true
}
