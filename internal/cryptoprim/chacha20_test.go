package cryptoprim

import (
	"bytes"
	"testing"
)

func TestChaCha20RoundTrip(t *testing.T) {
	var key [32]byte
	for i := range key {
		key[i] = byte(i)
	}

	cases := [][]byte{
		nil,
		[]byte("a"),
		bytes.Repeat([]byte{0x42}, 40), // the packet's encrypted-region size
		bytes.Repeat([]byte{0xaa}, blockSize),
		bytes.Repeat([]byte{0x5a}, blockSize+17),
	}

	for _, plain := range cases {
		orig := append([]byte(nil), plain...)
		buf := append([]byte(nil), plain...)

		ChaCha20XORInPlace(&key, 12345, buf)
		if len(plain) > 0 && bytes.Equal(buf, orig) {
			t.Fatalf("encrypt was a no-op for len=%d", len(plain))
		}
		ChaCha20XORInPlace(&key, 12345, buf)
		if !bytes.Equal(buf, orig) {
			t.Fatalf("round trip mismatch for len=%d: got %x want %x", len(plain), buf, orig)
		}
	}
}

func TestChaCha20SeqChangesKeystream(t *testing.T) {
	var key [32]byte
	for i := range key {
		key[i] = byte(i + 1)
	}
	a := bytes.Repeat([]byte{0}, 40)
	b := bytes.Repeat([]byte{0}, 40)
	ChaCha20XORInPlace(&key, 1, a)
	ChaCha20XORInPlace(&key, 2, b)
	if bytes.Equal(a, b) {
		t.Fatal("different sequence numbers produced identical keystream")
	}
}

func TestChaCha20PartialFinalBlock(t *testing.T) {
	var key [32]byte
	data := make([]byte, blockSize+5)
	ChaCha20XORInPlace(&key, 0, data)
	// The final 5-byte block must have been touched (non-zero after
	// XOR with a non-all-zero keystream tail) just like the first
	// blockSize bytes; a truncation bug would leave it as zero.
	allZero := true
	for _, b := range data[blockSize:] {
		if b != 0 {
			allZero = false
		}
	}
	if allZero {
		t.Fatal("partial final block was not XORed")
	}
}
