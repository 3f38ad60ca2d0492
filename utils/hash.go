package utils

import "hash/fnv"

func U64(s string) uint64 {
	h := fnv.New64a()
	_, _ = h.Write([]byte(s))
	return h.Sum64()
}

func Mix64(a, b uint64) uint64 {
	h := fnv.New64a()
	h.Write(U64ToBytes(a))
	h.Write(U64ToBytes(b))
	return h.Sum64()
}

// MixAll folds parts into seed left to right.
func MixAll(seed uint64, parts ...uint64) uint64 {
	acc := seed
	for _, p := range parts {
		acc = Mix64(acc, p)
	}
	return acc
}

// Bool maps a flag to a stable fingerprint component.
func Bool(b bool) uint64 {
	if b {
		return 0x9e3779b185ebca87
	}
	return 0x7f4a7c159e3779b9
}
