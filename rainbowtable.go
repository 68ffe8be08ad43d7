package rainbowtable

import (
	"fmt"
	"runtime"
	"sort"
	"sync"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/gostonefire/rainbowtable/crt"
	hashfunc "github.com/gostonefire/rainbowtable/interfaces"
	"github.com/gostonefire/rainbowtable/internal/alphabet"
	"github.com/gostonefire/rainbowtable/internal/chain"
	"github.com/gostonefire/rainbowtable/internal/file"
	"github.com/gostonefire/rainbowtable/internal/hash"
	"github.com/gostonefire/rainbowtable/internal/model"
	"github.com/gostonefire/rainbowtable/internal/utils"
)

// minDigestLength - Least digest width the reduction functions can consume
const minDigestLength int64 = 8

// TableInfo - Information structure containing some information about the rainbow table created or opened
//   - ChainCount is the number of chain records in the table
//   - ChainLength is the number of hash/reduce rounds per chain
//   - PassLength is the plaintext length in bytes
//   - SpaceSize is the total number of distinct plaintexts of that length
//   - FileSize is the total logical size of the table file
type TableInfo struct {
	ChainCount  int64
	ChainLength int64
	PassLength  int64
	SpaceSize   uint64
	FileSize    int64
}

// RainbowConf - Is a struct to be passed in the call to NewRainbowTable and contains configuration
// that affects table generation.
//   - ChainCount is the number of chains to generate
//   - ChainLength is the number of hash/reduce rounds per chain
//   - PassLength is the plaintext length in bytes
//   - HashAlgorithm is an optional entry to provide a custom hash algorithm following the hashfunc.HashAlgorithm interface
//   - Seeds is an optional list of starting plaintexts, used in order before falling back to enumerated starts
//   - Workers is the number of parallel generation workers, zero or negative selects one per CPU
type RainbowConf struct {
	ChainCount    int64
	ChainLength   int64
	PassLength    int64
	HashAlgorithm hashfunc.HashAlgorithm
	Seeds         [][]byte
	Workers       int
}

// RainbowTable - The main implementation struct. A rainbow table is built once, persisted immutably
// to a single file and loaded read-only for arbitrarily many searches. The in-memory chain records
// are kept sorted by end plaintext and are never mutated after construction, which is what makes
// concurrent searches safe without locking.
type RainbowTable struct {
	fileName          string
	chainCount        int64
	chainLength       int64
	passLength        int64
	chains            []model.Chain
	hashAlgorithm     hashfunc.HashAlgorithm
	internalAlgorithm bool
	generator         *chain.Generator
	workers           int
}

// NewRainbowTable - Generates a new rainbow table according to given configuration and persists it
// to file. Chain starts are taken from conf.Seeds first, any remaining starts are enumerated evenly
// spaced over the plaintext index space. Duplicate starts are tolerated, they only waste storage.
//   - fileName is the name of the table file to create, a .zst suffix selects zstd compression
//   - conf is a RainbowConf struct providing configuration parameters affecting generation
//
// It returns:
//   - rainbowTable is a pointer to a RainbowTable struct ready for searches
//   - tableInfo is a TableInfo struct containing some data regarding the table created
//   - err is of type crt.ConfigError when configuration is invalid, otherwise a standard error
func NewRainbowTable(fileName string, conf RainbowConf) (rainbowTable *RainbowTable, tableInfo TableInfo, err error) {
	if fileName == "" {
		err = crt.NewConfigError("fileName can not be empty, it will be used to name the table file")
		return
	}
	if conf.ChainCount < 1 {
		err = crt.NewConfigError(fmt.Sprintf("chain count must be a positive value higher than 0 (zero), got %d", conf.ChainCount))
		return
	}
	if conf.ChainLength < 1 {
		err = crt.NewConfigError(fmt.Sprintf("chain length must be a positive value higher than 0 (zero), got %d", conf.ChainLength))
		return
	}

	// If no HashAlgorithm was given then use the default internal
	hashAlgorithm := conf.HashAlgorithm
	var internalAlg bool
	if hashAlgorithm == nil {
		hashAlgorithm = hash.NewMD5Algorithm()
		internalAlg = true
	}
	if hashAlgorithm.DigestLength() < minDigestLength {
		err = crt.NewConfigError(fmt.Sprintf("digest length must be at least %d bytes, got %d", minDigestLength, hashAlgorithm.DigestLength()))
		return
	}

	generator, err := chain.NewGenerator(hashAlgorithm, conf.PassLength, conf.ChainLength)
	if err != nil {
		err = crt.NewConfigError(err.Error())
		return
	}

	for i, seed := range conf.Seeds {
		if int64(len(seed)) != conf.PassLength {
			err = crt.NewConfigError(fmt.Sprintf("seed %d has length %d, expected plaintext length %d", i, len(seed), conf.PassLength))
			return
		}
	}

	rainbowTable = &RainbowTable{
		fileName:          fileName,
		chainCount:        conf.ChainCount,
		chainLength:       conf.ChainLength,
		passLength:        conf.PassLength,
		hashAlgorithm:     hashAlgorithm,
		internalAlgorithm: internalAlg,
		generator:         generator,
		workers:           workerCount(conf.Workers),
	}

	starts, err := rainbowTable.pickStarts(conf.Seeds)
	if err != nil {
		rainbowTable = nil
		return
	}

	began := time.Now()
	err = rainbowTable.generateChains(starts)
	if err != nil {
		rainbowTable = nil
		return
	}

	// Sorting by end plaintext is what enables binary search during lookup, chains sharing
	// an end are all retained since any of them might be the true originator of a target digest
	sort.Slice(rainbowTable.chains, func(i, j int) bool {
		return utils.Compare(rainbowTable.chains[i].End, rainbowTable.chains[j].End) < 0
	})

	log.WithFields(log.Fields{
		"chains":       conf.ChainCount,
		"chain_length": conf.ChainLength,
		"duration":     time.Since(began).Round(time.Millisecond),
	}).Info("generated rainbow chains")

	header := model.Header{
		InternalAlg: internalAlg,
		ChainCount:  conf.ChainCount,
		ChainLength: conf.ChainLength,
		PassLength:  conf.PassLength,
		FileSize:    file.ExpectedFileSize(conf.ChainCount, conf.PassLength),
	}

	err = file.WriteTableFile(fileName, header, rainbowTable.chains)
	if err != nil {
		rainbowTable = nil
		return
	}

	tableInfo = TableInfo{
		ChainCount:  header.ChainCount,
		ChainLength: header.ChainLength,
		PassLength:  header.PassLength,
		SpaceSize:   generator.SpaceSize(),
		FileSize:    header.FileSize,
	}

	return
}

// NewFromExistingFile - Opens an existing table file. The file must have a valid header and its size
// must match the header exactly, and if the table was created with a custom hash algorithm, also that
// same algorithm has to be supplied.
//   - fileName is the name of an existing table file, a .zst suffix selects zstd decompression
//   - hashAlgorithm is an optional entry to provide a custom hash algorithm following the hashfunc.HashAlgorithm interface
//
// It returns:
//   - rainbowTable is a pointer to a RainbowTable struct ready for searches
//   - tableInfo is a TableInfo struct containing some data regarding the table opened
//   - err is of type crt.FormatError when the file doesn't conform with the format, crt.ConfigError when the
//     hash algorithm doesn't match what the table was created with, otherwise a standard error
func NewFromExistingFile(fileName string, hashAlgorithm hashfunc.HashAlgorithm) (rainbowTable *RainbowTable, tableInfo TableInfo, err error) {
	header, chains, err := file.ReadTableFile(fileName, hashAlgorithm != nil)
	if err != nil {
		return
	}

	var internalAlg bool
	if hashAlgorithm == nil {
		if !header.InternalAlg {
			err = crt.NewConfigError("seems the table file was created with an external hash algorithm but none was given")
			return
		}
		hashAlgorithm = hash.NewMD5Algorithm()
		internalAlg = true
	}
	if hashAlgorithm.DigestLength() < minDigestLength {
		err = crt.NewConfigError(fmt.Sprintf("digest length must be at least %d bytes, got %d", minDigestLength, hashAlgorithm.DigestLength()))
		return
	}

	// The stored order is the lookup index, a table that isn't sorted by end can not be
	// binary searched and is considered malformed
	for i := int64(1); i < header.ChainCount; i++ {
		if utils.Compare(chains[i-1].End, chains[i].End) > 0 {
			err = crt.NewFormatError(fmt.Sprintf("table file chain records are not sorted by end plaintext at record %d", i))
			return
		}
	}

	generator, err := chain.NewGenerator(hashAlgorithm, header.PassLength, header.ChainLength)
	if err != nil {
		err = crt.NewConfigError(err.Error())
		return
	}

	rainbowTable = &RainbowTable{
		fileName:          fileName,
		chainCount:        header.ChainCount,
		chainLength:       header.ChainLength,
		passLength:        header.PassLength,
		chains:            chains,
		hashAlgorithm:     hashAlgorithm,
		internalAlgorithm: internalAlg,
		generator:         generator,
		workers:           workerCount(0),
	}

	tableInfo = TableInfo{
		ChainCount:  header.ChainCount,
		ChainLength: header.ChainLength,
		PassLength:  header.PassLength,
		SpaceSize:   generator.SpaceSize(),
		FileSize:    header.FileSize,
	}

	log.WithFields(log.Fields{
		"path":   fileName,
		"chains": header.ChainCount,
	}).Debug("loaded rainbow table")

	return
}

// GetStorageParameters - Returns parameters describing how the table is stored
func (R *RainbowTable) GetStorageParameters() (params model.StorageParameters) {
	params = model.StorageParameters{
		ChainCount:        R.chainCount,
		ChainLength:       R.chainLength,
		PassLength:        R.passLength,
		TableFileSize:     file.ExpectedFileSize(R.chainCount, R.passLength),
		InternalAlgorithm: R.internalAlgorithm,
	}

	return
}

// SetWorkers - Sets the number of parallel workers used by subsequent searches
//   - workers is the number of workers to use, zero or negative selects one per CPU
func (R *RainbowTable) SetWorkers(workers int) {
	R.workers = workerCount(workers)
}

// pickStarts - Assembles the chain starting plaintexts, seeds first and then enumerated starts
// evenly spaced over the plaintext index space
func (R *RainbowTable) pickStarts(seeds [][]byte) (starts [][]byte, err error) {
	starts = make([][]byte, 0, R.chainCount)
	for _, seed := range seeds {
		if int64(len(starts)) == R.chainCount {
			return
		}
		starts = append(starts, seed)
	}

	needed := R.chainCount - int64(len(starts))
	if needed == 0 {
		return
	}

	spaceSize := R.generator.SpaceSize()
	step := spaceSize / uint64(needed)
	if step == 0 {
		step = 1
	}

	var pass []byte
	for i := uint64(0); int64(len(starts)) < R.chainCount; i++ {
		pass, err = alphabet.Encode((i*step)%spaceSize, R.passLength)
		if err != nil {
			starts = nil
			return
		}
		starts = append(starts, pass)
	}

	return
}

// generateChains - Builds one chain per start in parallel. Every chain is a pure function of its
// start, so the workers share nothing but the pre-allocated result slice, each writing its own
// disjoint index range.
func (R *RainbowTable) generateChains(starts [][]byte) (err error) {
	R.chains = make([]model.Chain, len(starts))

	workers := R.workers
	if workers > len(starts) {
		workers = len(starts)
	}

	var wg sync.WaitGroup
	errs := make([]error, workers)

	chunk := (len(starts) + workers - 1) / workers
	for w := 0; w < workers; w++ {
		from := w * chunk
		to := from + chunk
		if to > len(starts) {
			to = len(starts)
		}
		if from >= to {
			break
		}

		wg.Add(1)
		go func(worker, from, to int) {
			defer wg.Done()
			for i := from; i < to; i++ {
				end, buildErr := R.generator.BuildChain(starts[i])
				if buildErr != nil {
					errs[worker] = buildErr
					return
				}
				R.chains[i] = model.Chain{Start: starts[i], End: end}
			}
		}(w, from, to)
	}

	wg.Wait()

	for _, workerErr := range errs {
		if workerErr != nil {
			err = fmt.Errorf("error while generating chains: %s", workerErr)
			R.chains = nil
			return
		}
	}

	return
}

// workerCount - Resolves a configured worker count, zero or negative selects one worker per CPU
func workerCount(configured int) int {
	if configured > 0 {
		return configured
	}
	return runtime.NumCPU()
}
