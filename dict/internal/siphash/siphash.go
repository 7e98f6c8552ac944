// Package siphash implements SipHash-2-4, the keyed hash used by the core
// as its default key hash function (dict's §4.6 hash function contract).
package siphash

import "encoding/binary"

const (
	initV0 = 0x736f6d6570736575
	initV1 = 0x646f72616e646f6d
	initV2 = 0x6c7967656e657261
	initV3 = 0x7465646279746573
)

func rotl(x uint64, b uint) uint64 {
	return (x << b) | (x >> (64 - b))
}

// Sum64 computes the SipHash-2-4 digest of data keyed by (k0, k1).
func Sum64(k0, k1 uint64, data []byte) uint64 {
	v0 := k0 ^ initV0
	v1 := k1 ^ initV1
	v2 := k0 ^ initV2
	v3 := k1 ^ initV3

	round := func() {
		v0 += v1
		v1 = rotl(v1, 13)
		v1 ^= v0
		v0 = rotl(v0, 32)
		v2 += v3
		v3 = rotl(v3, 16)
		v3 ^= v2
		v0 += v3
		v3 = rotl(v3, 21)
		v3 ^= v0
		v2 += v1
		v1 = rotl(v1, 17)
		v1 ^= v2
		v2 = rotl(v2, 32)
	}

	n := len(data)
	end := n - n%8
	tail := uint64(n) << 56

	for i := 0; i < end; i += 8 {
		m := binary.LittleEndian.Uint64(data[i : i+8])
		v3 ^= m
		round()
		round()
		v0 ^= m
	}

	var last [8]byte
	copy(last[:], data[end:])
	tail |= binary.LittleEndian.Uint64(last[:])

	v3 ^= tail
	round()
	round()
	v0 ^= tail

	v2 ^= 0xff
	round()
	round()
	round()
	round()

	return v0 ^ v1 ^ v2 ^ v3
}
