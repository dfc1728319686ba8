package mem

import (
	"bytes"
	"testing"
)

func TestCopy(t *testing.T) {
	src := []byte{1, 2, 3, 4}
	dst := make([]byte, 4)
	if !Copy(dst, src, 3) {
		t.Fatal("copy failed")
	}
	if !bytes.Equal(dst, []byte{1, 2, 3, 0}) {
		t.Fatalf("wrong copy result: %v", dst)
	}
}

func TestCopyNeverPartial(t *testing.T) {
	src := []byte{1, 2}
	dst := []byte{9, 9, 9}

	// short source
	if Copy(dst, src, 3) {
		t.Fatal("copy should fail on short source")
	}
	if !bytes.Equal(dst, []byte{9, 9, 9}) {
		t.Fatalf("failed copy touched destination: %v", dst)
	}

	// short destination
	if Copy(dst[:1], src, 2) {
		t.Fatal("copy should fail on short destination")
	}
	if dst[0] != 9 {
		t.Fatalf("failed copy touched destination: %v", dst)
	}

	// negative count
	if Copy(dst, src, -1) {
		t.Fatal("copy should fail on negative count")
	}
}

func TestCopyZeroBytes(t *testing.T) {
	if !Copy(nil, nil, 0) {
		t.Fatal("zero-byte copy should succeed")
	}
}
