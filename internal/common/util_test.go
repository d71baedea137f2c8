package common

import (
	"bytes"
	"testing"
)

func TestWipeByteArray_Zeroes(t *testing.T) {
	b := []byte("s3cr3t-password")
	WipeByteArray(b)
	if !bytes.Equal(b, make([]byte, len(b))) {
		t.Fatalf("expected slice to be zeroed, got %v", b)
	}
}

func TestWipeByteArray_NilIsNoop(t *testing.T) {
	WipeByteArray(nil) // must not panic
}

func TestWipeByteArray_Empty(t *testing.T) {
	b := []byte{}
	WipeByteArray(b)
	if len(b) != 0 {
		t.Fatalf("expected empty slice to stay empty")
	}
}
