//go:build integration

package rainbowtable

import (
	"crypto/md5"
	"errors"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/gostonefire/rainbowtable/crt"
	"github.com/gostonefire/rainbowtable/internal/utils"
)

func TestRainbowTable_Search(t *testing.T) {
	t.Run("recovers a plaintext covered by the table", func(t *testing.T) {
		// Prepare
		defer func() {
			_ = os.Remove(testTable)
		}()

		table, _, err := NewRainbowTable(testTable, RainbowConf{
			ChainCount:  100,
			ChainLength: 100,
			PassLength:  5,
			Seeds:       [][]byte{[]byte("abc12")},
		})
		assert.NoError(t, err, "creates rainbow table")

		digest := md5.Sum([]byte("abc12"))

		// Execute
		pass, err := table.Search(digest[:])

		// Check
		assert.NoError(t, err, "recovers a plaintext")
		verification := md5.Sum(pass)
		assert.Equal(t, digest, verification, "recovered plaintext hashes to the target")
	})

	t.Run("recovers plaintexts from interior chain columns", func(t *testing.T) {
		// Prepare
		defer func() {
			_ = os.Remove(testTable)
		}()

		table, _, err := NewRainbowTable(testTable, RainbowConf{ChainCount: 50, ChainLength: 50, PassLength: 5})
		assert.NoError(t, err, "creates rainbow table")

		start := table.chains[7].Start

		for _, column := range []int64{0, 1, 25, 49} {
			interior, err := table.generator.WalkPrefix(start, column)
			assert.NoError(t, err, "walks to interior plaintext")

			target := table.hashAlgorithm.Sum(interior)

			// Execute
			pass, err := table.Search(target)

			// Check
			assert.NoError(t, err, "recovers a plaintext")
			assert.True(t, utils.IsEqual(table.hashAlgorithm.Sum(pass), target), "recovered plaintext hashes to the target")
		}
	})

	t.Run("search works the same after reloading from file", func(t *testing.T) {
		// Prepare
		defer func() {
			_ = os.Remove(testTable)
		}()

		_, _, err := NewRainbowTable(testTable, RainbowConf{
			ChainCount:  100,
			ChainLength: 100,
			PassLength:  5,
			Seeds:       [][]byte{[]byte("abc12")},
		})
		assert.NoError(t, err, "creates rainbow table")

		table, _, err := NewFromExistingFile(testTable, nil)
		assert.NoError(t, err, "opens rainbow table")

		digest := md5.Sum([]byte("abc12"))

		// Execute
		pass, err := table.Search(digest[:])

		// Check
		assert.NoError(t, err, "recovers a plaintext")
		verification := md5.Sum(pass)
		assert.Equal(t, digest, verification, "recovered plaintext hashes to the target")
	})

	t.Run("recovers a plaintext with a single worker", func(t *testing.T) {
		// Prepare
		defer func() {
			_ = os.Remove(testTable)
		}()

		_, _, err := NewRainbowTable(testTable, RainbowConf{
			ChainCount:  100,
			ChainLength: 100,
			PassLength:  5,
			Seeds:       [][]byte{[]byte("abc12")},
		})
		assert.NoError(t, err, "creates rainbow table")

		table, _, err := NewFromExistingFile(testTable, nil)
		assert.NoError(t, err, "opens rainbow table")

		table.SetWorkers(1)

		digest := md5.Sum([]byte("abc12"))

		// Execute
		pass, err := table.Search(digest[:])

		// Check
		assert.NoError(t, err, "recovers a plaintext")
		verification := md5.Sum(pass)
		assert.Equal(t, digest, verification, "recovered plaintext hashes to the target")
	})

	t.Run("never returns an unverified plaintext", func(t *testing.T) {
		// Prepare
		defer func() {
			_ = os.Remove(testTable)
		}()

		table, _, err := NewRainbowTable(testTable, RainbowConf{ChainCount: 20, ChainLength: 20, PassLength: 5})
		assert.NoError(t, err, "creates rainbow table")

		// Digests of plaintexts outside the encodable space can never be covered by chains,
		// any answer other than not found would be a false positive escaping verification
		targets := [][]byte{[]byte("!!!!!"), []byte("#####"), []byte(" no  ")}

		for _, target := range targets {
			digest := md5.Sum(target)

			// Execute
			pass, err := table.Search(digest[:])

			// Check
			if err == nil {
				verification := md5.Sum(pass)
				assert.Equal(t, digest, verification, "found plaintext hashes to the target")
			} else {
				assert.True(t, errors.Is(err, crt.NotFoundError{}), "is a not found error")
			}
		}
	})

	t.Run("format error when digest has wrong width", func(t *testing.T) {
		// Prepare
		defer func() {
			_ = os.Remove(testTable)
		}()

		table, _, err := NewRainbowTable(testTable, RainbowConf{ChainCount: 10, ChainLength: 10, PassLength: 5})
		assert.NoError(t, err, "creates rainbow table")

		// Execute
		_, err = table.Search([]byte{1, 2, 3})

		// Check
		assert.True(t, errors.As(err, &crt.FormatError{}), "is a format error")
	})
}

func TestRainbowTable_Stat(t *testing.T) {
	t.Run("accounts for every chain", func(t *testing.T) {
		// Prepare
		defer func() {
			_ = os.Remove(testTable)
		}()

		table, _, err := NewRainbowTable(testTable, RainbowConf{ChainCount: 500, ChainLength: 20, PassLength: 5})
		assert.NoError(t, err, "creates rainbow table")

		// Execute
		stat := table.Stat()

		// Check
		assert.Equal(t, int64(500), stat.Chains, "correct chain count")
		assert.Equal(t, stat.Chains, stat.DistinctEnds+stat.MergedChains, "distinct and merged add up")
		assert.GreaterOrEqual(t, stat.LargestMergeGroup, int64(1), "largest merge group is at least one")
	})

	t.Run("detects merged chains", func(t *testing.T) {
		// Prepare
		defer func() {
			_ = os.Remove(testTable)
		}()

		// Duplicate starts produce identical chains, hence a guaranteed merge
		table, _, err := NewRainbowTable(testTable, RainbowConf{
			ChainCount:  10,
			ChainLength: 10,
			PassLength:  5,
			Seeds:       [][]byte{[]byte("abc12"), []byte("abc12")},
		})
		assert.NoError(t, err, "creates rainbow table")

		// Execute
		stat := table.Stat()

		// Check
		assert.GreaterOrEqual(t, stat.MergedChains, int64(1), "at least one merged chain")
		assert.GreaterOrEqual(t, stat.LargestMergeGroup, int64(2), "merge group of at least two")
	})
}
