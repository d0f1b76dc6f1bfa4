package utils

import (
	"hash/fnv"
	"strconv"
)

// Fingerprint hashes parts with FNV-1a, separating them with a NUL byte so that
// ("ab", "c") and ("a", "bc") differ.
func Fingerprint(parts ...string) uint64 {
	h := fnv.New64a()
	for i, p := range parts {
		if i > 0 {
			_, _ = h.Write([]byte{0})
		}
		_, _ = h.Write([]byte(p))
	}
	return h.Sum64()
}

// FingerprintHex is Fingerprint rendered as 16 lowercase hex digits.
func FingerprintHex(parts ...string) string {
	s := strconv.FormatUint(Fingerprint(parts...), 16)
	for len(s) < 16 {
		s = "0" + s
	}
	return s
}
