// Copyright (c) 2024 Arista Networks, Inc.
// Use of this source code is governed by the Apache License 2.0
// that can be found in the COPYING file.

package dict

import (
	"encoding/binary"
	"strings"

	"github.com/aristanetworks/dictcore/dict/internal/siphash"
)

// processSeed is the 128-bit, process-wide seed mixed into every builtin
// hash function. It must be set, if at all, before the first Dict using a
// builtin Type is created: hash functions must not depend on Dict state,
// but they may depend on this seed.
var processSeed [16]byte

// SetHashFunctionSeed sets the process-wide seed used by StringHash and
// StringHashCI. It is not safe to call after any Dict using those
// functions has been populated.
func SetHashFunctionSeed(seed [16]byte) {
	processSeed = seed
}

func seedKeys() (uint64, uint64) {
	return binary.LittleEndian.Uint64(processSeed[0:8]), binary.LittleEndian.Uint64(processSeed[8:16])
}

// StringHash is the default case-sensitive key hash: SipHash-2-4 over the
// key's bytes, keyed by the process seed.
func StringHash(key any) uint64 {
	k0, k1 := seedKeys()
	return siphash.Sum64(k0, k1, []byte(key.(string)))
}

// StringHashCI is the case-insensitive counterpart of StringHash: ASCII
// letters are lowercased before hashing.
func StringHashCI(key any) uint64 {
	k0, k1 := seedKeys()
	s := key.(string)
	lower := make([]byte, len(s))
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c >= 'A' && c <= 'Z' {
			c += 'a' - 'A'
		}
		lower[i] = c
	}
	return siphash.Sum64(k0, k1, lower)
}

// StringType is a ready-made Type for string keys, hashed and compared
// case-sensitively.
func StringType() *Type {
	return &Type{
		HashFunction: StringHash,
		KeyCompare: func(_ any, a, b any) bool {
			return a.(string) == b.(string)
		},
	}
}

// StringTypeCaseInsensitive is StringType's case-insensitive counterpart.
func StringTypeCaseInsensitive() *Type {
	return &Type{
		HashFunction: StringHashCI,
		KeyCompare: func(_ any, a, b any) bool {
			return strings.EqualFold(a.(string), b.(string))
		},
	}
}
