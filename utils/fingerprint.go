package utils

import (
	"fmt"
	"hash/fnv"
)

func U64ToBytes(u uint64) []byte {
	return []byte{
		byte(u >> 56), byte(u >> 48), byte(u >> 40), byte(u >> 32),
		byte(u >> 24), byte(u >> 16), byte(u >> 8), byte(u),
	}
}

func FingerprintString(s string) uint64 {
	h := fnv.New64a()
	h.Write([]byte(s))
	return h.Sum64()
}

// FingerprintValue hashes a literal together with its dynamic type so that
// 1 and "1" never collide.
func FingerprintValue(v any) uint64 {
	return FingerprintString(fmt.Sprintf("%T:%v", v, v))
}
