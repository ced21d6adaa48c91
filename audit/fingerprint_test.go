package audit

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFingerprintDeterministic(t *testing.T) {
	region := make([]byte, 2048)
	region[100] = 0x42

	a := Fingerprint(region)
	b := Fingerprint(region)
	assert.Equal(t, a, b)
}

func TestFingerprintChangesOnMutation(t *testing.T) {
	region := make([]byte, 2048)
	before := Fingerprint(region)

	region[512] ^= 0xFF
	after := Fingerprint(region)

	assert.NotEqual(t, before, after)
}
