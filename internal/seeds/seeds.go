package seeds

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/DataDog/zstd"
	"github.com/gostonefire/rainbowtable/internal/conf"
)

// LoadSeeds - Loads starting plaintexts from a wordlist file holding one word per line.
// A file name ending in .zst is read zstd compressed. Lines not matching the wanted
// plaintext length are skipped, wordlists typically mix lengths.
//   - path is the wordlist file name
//   - passLength is the plaintext length to keep
//   - limit is the maximum number of seeds to load, zero or negative means no limit
//
// It returns:
//   - loaded is the seeds in file order
//   - skipped is the number of lines dropped due to wrong length
//   - err is a standard error, if something went wrong
func LoadSeeds(path string, passLength int64, limit int64) (loaded [][]byte, skipped int64, err error) {
	filePtr, err := os.Open(path)
	if err != nil {
		err = fmt.Errorf("unable to open seed file: %s", err)
		return
	}
	defer func() {
		_ = filePtr.Close()
	}()

	var scanner *bufio.Scanner
	if strings.HasSuffix(path, conf.ZstFileSuffix) {
		zr := zstd.NewReader(filePtr)
		defer func() {
			_ = zr.Close()
		}()
		scanner = bufio.NewScanner(zr)
	} else {
		scanner = bufio.NewScanner(filePtr)
	}

	for scanner.Scan() {
		line := scanner.Text()
		if int64(len(line)) != passLength {
			skipped++
			continue
		}

		loaded = append(loaded, []byte(line))
		if limit > 0 && int64(len(loaded)) >= limit {
			break
		}
	}

	if err = scanner.Err(); err != nil {
		err = fmt.Errorf("error while reading seed file: %s", err)
		loaded = nil
	}

	return
}
