package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFingerprint(t *testing.T) {
	assert.Equal(t, Fingerprint("SELECT 1"), Fingerprint("SELECT 1"))
	assert.NotEqual(t, Fingerprint("ab", "c"), Fingerprint("a", "bc"))
	assert.Len(t, FingerprintHex("x"), 16)
	assert.Len(t, FingerprintHex(""), 16)
}
