//go:build unit

package hash

import (
	"encoding/hex"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMD5Algorithm_Sum(t *testing.T) {
	t.Run("produces the well known MD5 digest", func(t *testing.T) {
		// Prepare
		alg := NewMD5Algorithm()

		// Execute
		digest := alg.Sum([]byte("abc"))

		// Check
		assert.Equal(t, "900150983cd24fb0d6963f7d28e17f72", hex.EncodeToString(digest), "correct digest")
	})
}

func TestMD5Algorithm_DigestLength(t *testing.T) {
	t.Run("returns the MD5 digest length", func(t *testing.T) {
		// Prepare
		alg := NewMD5Algorithm()

		// Execute
		length := alg.DigestLength()

		// Check
		assert.Equal(t, int64(16), length, "correct digest length")
	})
}
