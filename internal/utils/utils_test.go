//go:build unit

package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsEqual(t *testing.T) {
	t.Run("equal slices", func(t *testing.T) {
		// Execute
		equal := IsEqual([]byte("abc12"), []byte("abc12"))

		// Check
		assert.True(t, equal, "equal both in size and contents")
	})

	t.Run("different contents", func(t *testing.T) {
		// Execute
		equal := IsEqual([]byte("abc12"), []byte("abc13"))

		// Check
		assert.False(t, equal, "different contents")
	})

	t.Run("different lengths", func(t *testing.T) {
		// Execute
		equal := IsEqual([]byte("abc12"), []byte("abc1"))

		// Check
		assert.False(t, equal, "different lengths")
	})
}

func TestCompare(t *testing.T) {
	t.Run("orders lexicographically", func(t *testing.T) {
		// Execute and Check
		assert.Equal(t, -1, Compare([]byte("AAAAB"), []byte("AAAAC")), "a before b")
		assert.Equal(t, 1, Compare([]byte("AAAAC"), []byte("AAAAB")), "a after b")
		assert.Equal(t, 0, Compare([]byte("AAAAB"), []byte("AAAAB")), "equal")
	})

	t.Run("shorter prefix sorts first", func(t *testing.T) {
		// Execute and Check
		assert.Equal(t, -1, Compare([]byte("AAA"), []byte("AAAA")), "prefix before longer")
		assert.Equal(t, 1, Compare([]byte("AAAA"), []byte("AAA")), "longer after prefix")
	})
}
