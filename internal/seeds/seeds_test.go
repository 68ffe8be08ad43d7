//go:build unit

package seeds

import (
	"os"
	"testing"

	"github.com/DataDog/zstd"
	"github.com/stretchr/testify/assert"
)

const testWordlist string = "abc12\ntoolong1\nxyz34\nhi\nF0O0O\n"

func TestLoadSeeds(t *testing.T) {
	t.Run("loads seeds of matching length", func(t *testing.T) {
		// Prepare
		fileName := "testseeds.txt"
		defer func() {
			_ = os.Remove(fileName)
		}()

		err := os.WriteFile(fileName, []byte(testWordlist), 0644)
		assert.NoError(t, err, "writes wordlist")

		// Execute
		loaded, skipped, err := LoadSeeds(fileName, 5, 0)

		// Check
		assert.NoError(t, err, "loads seeds")
		assert.Equal(t, [][]byte{[]byte("abc12"), []byte("xyz34"), []byte("F0O0O")}, loaded, "correct seeds in file order")
		assert.Equal(t, int64(2), skipped, "correct number of skipped lines")
	})

	t.Run("honors the seed limit", func(t *testing.T) {
		// Prepare
		fileName := "testseeds.txt"
		defer func() {
			_ = os.Remove(fileName)
		}()

		err := os.WriteFile(fileName, []byte(testWordlist), 0644)
		assert.NoError(t, err, "writes wordlist")

		// Execute
		loaded, _, err := LoadSeeds(fileName, 5, 2)

		// Check
		assert.NoError(t, err, "loads seeds")
		assert.Equal(t, [][]byte{[]byte("abc12"), []byte("xyz34")}, loaded, "correct limited seeds")
	})

	t.Run("loads compressed wordlists", func(t *testing.T) {
		// Prepare
		fileName := "testseeds.txt.zst"
		defer func() {
			_ = os.Remove(fileName)
		}()

		compressed, err := zstd.Compress(nil, []byte(testWordlist))
		assert.NoError(t, err, "compresses wordlist")

		err = os.WriteFile(fileName, compressed, 0644)
		assert.NoError(t, err, "writes wordlist")

		// Execute
		loaded, skipped, err := LoadSeeds(fileName, 5, 0)

		// Check
		assert.NoError(t, err, "loads seeds")
		assert.Equal(t, [][]byte{[]byte("abc12"), []byte("xyz34"), []byte("F0O0O")}, loaded, "correct seeds in file order")
		assert.Equal(t, int64(2), skipped, "correct number of skipped lines")
	})

	t.Run("error when wordlist doesn't exist", func(t *testing.T) {
		// Execute
		_, _, err := LoadSeeds("nosuchwordlist.txt", 5, 0)

		// Check
		assert.Error(t, err)
	})
}
