package cache

import "github.com/cespare/xxhash/v2"

// DJB2 is the default hash function: accumulator starts at 5381 and each key
// byte c updates it as acc = acc*33 + c. It depends only on the key's byte
// content, so placement at insert time and at resize time always agree.
func DJB2(key string) uint64 {
	h := uint64(5381)
	for i := 0; i < len(key); i++ {
		h = h*33 + uint64(key[i])
	}
	return h
}

// XXHash hashes keys with xxHash64. It distributes better than DJB2 on long
// or structured keys and is the drop-in alternative for Config.Hash.
func XXHash(key string) uint64 {
	return xxhash.Sum64String(key)
}
