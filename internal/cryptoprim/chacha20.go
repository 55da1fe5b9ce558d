// Package cryptoprim implements the two primitives the ingress wire
// protocol is built on: a 64-bit-nonce ChaCha20 stream cipher and
// SipHash-2-4. Both match the exact state layout of the reference
// firmware byte-for-byte, which rules out golang.org/x/crypto/chacha20
// (IETF 96-bit nonce, 32-bit counter) as a substitute — see DESIGN.md.
package cryptoprim

import "encoding/binary"

const (
	chachaRounds = 10 // 20 rounds == 10 double-rounds
	blockSize    = 64
)

var chachaConst = [4]uint32{0x61707865, 0x3320646e, 0x79622d32, 0x6b206574}

// chachaState builds the 16-word ChaCha20 state for the given key,
// sequence number and counter. The nonce is 64 bits: the low 32 bits
// hold seq, the high 32 bits are always zero (spec.md §6).
func chachaState(key *[32]byte, seq uint32, counter uint32) [16]uint32 {
	var s [16]uint32
	copy(s[0:4], chachaConst[:])
	for i := 0; i < 8; i++ {
		s[4+i] = binary.LittleEndian.Uint32(key[4*i:])
	}
	s[12] = counter
	s[13] = seq
	s[14] = 0
	s[15] = 0
	return s
}

func rotl32(v uint32, n uint) uint32 {
	return (v << n) | (v >> (32 - n))
}

func quarterRound(x *[16]uint32, a, b, c, d int) {
	x[a] += x[b]
	x[d] = rotl32(x[d]^x[a], 16)
	x[c] += x[d]
	x[b] = rotl32(x[b]^x[c], 12)
	x[a] += x[b]
	x[d] = rotl32(x[d]^x[a], 8)
	x[c] += x[d]
	x[b] = rotl32(x[b]^x[c], 7)
}

func chachaBlock(in [16]uint32) [16]uint32 {
	x := in
	for i := 0; i < chachaRounds; i++ {
		quarterRound(&x, 0, 4, 8, 12)
		quarterRound(&x, 1, 5, 9, 13)
		quarterRound(&x, 2, 6, 10, 14)
		quarterRound(&x, 3, 7, 11, 15)
		quarterRound(&x, 0, 5, 10, 15)
		quarterRound(&x, 1, 6, 11, 12)
		quarterRound(&x, 2, 7, 8, 13)
		quarterRound(&x, 3, 4, 9, 14)
	}
	for i := range x {
		x[i] += in[i]
	}
	return x
}

// ChaCha20XORInPlace XORs data with the ChaCha20 keystream seeded by
// key and seq, starting at block counter 0. It is its own inverse:
// encrypting and decrypting are the same operation (IP7).
//
// The nonce carries only 32 bits of entropy (the packet seq); at a
// 50 Hz packet rate the sequence space exhausts in roughly 2.7 years
// of continuous uptime. This is a known, accepted limitation carried
// from the reference design — see DESIGN.md open question 2.
func ChaCha20XORInPlace(key *[32]byte, seq uint32, data []byte) {
	counter := uint32(0)
	for len(data) > 0 {
		block := chachaBlock(chachaState(key, seq, counter))
		var ks [blockSize]byte
		for i, w := range block {
			binary.LittleEndian.PutUint32(ks[4*i:], w)
		}
		n := len(data)
		if n > blockSize {
			n = blockSize
		}
		for i := 0; i < n; i++ {
			data[i] ^= ks[i]
		}
		data = data[n:]
		counter++
	}
}
