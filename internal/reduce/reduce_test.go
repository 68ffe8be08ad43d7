//go:build unit

package reduce

import (
	"crypto/md5"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewReducer(t *testing.T) {
	t.Run("creates a reducer", func(t *testing.T) {
		// Execute
		reducer, err := NewReducer(5)

		// Check
		assert.NoError(t, err, "creates reducer")
		assert.Equal(t, uint64(1073741824), reducer.SpaceSize(), "correct space size")
	})

	t.Run("error when plaintext length is unsupported", func(t *testing.T) {
		// Execute
		_, err := NewReducer(0)

		// Check
		assert.Error(t, err)
	})
}

func TestReducer_Reduce(t *testing.T) {
	t.Run("reduces low order digest bytes plus column", func(t *testing.T) {
		// Prepare
		digest := make([]byte, 16)
		digest[0] = 1

		reducer, err := NewReducer(5)
		assert.NoError(t, err, "creates reducer")

		// Execute
		pass, err := reducer.Reduce(digest, 2)

		// Check
		assert.NoError(t, err, "reduces digest")
		assert.Equal(t, []byte("DAAAA"), pass, "correct plaintext for index 3")
	})

	t.Run("is deterministic over repeated calls", func(t *testing.T) {
		// Prepare
		digest := md5.Sum([]byte("abc12"))

		reducer, err := NewReducer(5)
		assert.NoError(t, err, "creates reducer")

		// Execute
		pass1, err := reducer.Reduce(digest[:], 17)
		assert.NoError(t, err, "reduces digest")
		pass2, err := reducer.Reduce(digest[:], 17)

		// Check
		assert.NoError(t, err, "reduces digest")
		assert.Equal(t, pass1, pass2, "same digest and column yield same plaintext")
	})

	t.Run("different columns decorrelate the same digest", func(t *testing.T) {
		// Prepare
		digest := md5.Sum([]byte("abc12"))

		reducer, err := NewReducer(5)
		assert.NoError(t, err, "creates reducer")

		// Execute
		pass1, err := reducer.Reduce(digest[:], 0)
		assert.NoError(t, err, "reduces digest")
		pass2, err := reducer.Reduce(digest[:], 1)

		// Check
		assert.NoError(t, err, "reduces digest")
		assert.NotEqual(t, pass1, pass2, "adjacent columns yield different plaintexts")
	})

	t.Run("error when digest is too short", func(t *testing.T) {
		// Prepare
		reducer, err := NewReducer(5)
		assert.NoError(t, err, "creates reducer")

		// Execute
		_, err = reducer.Reduce([]byte{1, 2, 3}, 0)

		// Check
		assert.Error(t, err)
	})
}
