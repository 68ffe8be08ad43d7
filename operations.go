package rainbowtable

import (
	"context"
	"fmt"
	"sort"
	"sync"

	log "github.com/sirupsen/logrus"

	"github.com/gostonefire/rainbowtable/crt"
	"github.com/gostonefire/rainbowtable/internal/utils"
)

// Search - Given a target digest it tries to recover a plaintext whose hash equals the target.
// Every column of the table is tried, assuming the target digest occurred at that position of some
// generated chain, scanning from the last column backward. Candidates found through the sorted end
// records are always verified by regenerating the chain prefix and re-hashing, a matching end alone
// proves nothing since distinct chains can merge into the same end.
//
// Columns are searched by parallel workers over the immutable table, the first verified plaintext
// cancels remaining work best effort.
//   - digest is the target digest, it has to be of same length as the hash algorithm produces
//
// It returns:
//   - pass is a verified plaintext whose hash equals the target, if one was recovered
//   - err is of type crt.NotFoundError when the table doesn't cover the target, which is a normal
//     outcome and not a system fault, or of type crt.FormatError given a digest of wrong width
func (R *RainbowTable) Search(digest []byte) (pass []byte, err error) {
	if int64(len(digest)) != R.hashAlgorithm.DigestLength() {
		err = crt.NewFormatError(fmt.Sprintf("wrong length of digest, should be %d", R.hashAlgorithm.DigestLength()))
		return
	}

	workers := R.workers
	if int64(workers) > R.chainLength {
		workers = int(R.chainLength)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	columns := make(chan int64)
	go func() {
		defer close(columns)
		for column := R.chainLength - 1; column >= 0; column-- {
			select {
			case columns <- column:
			case <-ctx.Done():
				return
			}
		}
	}()

	found := make(chan []byte, workers)
	errs := make([]error, workers)

	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func(worker int) {
			defer wg.Done()
			for column := range columns {
				verified, ok, searchErr := R.searchColumn(digest, column)
				if searchErr != nil {
					errs[worker] = searchErr
					cancel()
					return
				}
				if ok {
					found <- verified
					cancel()
					return
				}
			}
		}(w)
	}

	wg.Wait()
	close(found)

	if pass = <-found; pass != nil {
		return
	}

	for _, workerErr := range errs {
		if workerErr != nil {
			err = fmt.Errorf("error while searching columns: %s", workerErr)
			return
		}
	}

	err = crt.NotFoundError{}

	return
}

// Stat - Walks through the entire set of chain records and produces a TableStat struct with
// information on how many chains have merged, i.e. share their end plaintext with another chain.
// Merged chains reduce effective coverage, they cover largely overlapping plaintexts.
func (R *RainbowTable) Stat() (tableStat *TableStat) {
	var ts TableStat
	ts.Chains = R.chainCount

	groupSize := int64(0)
	for i := range R.chains {
		if i > 0 && utils.IsEqual(R.chains[i-1].End, R.chains[i].End) {
			groupSize++
		} else {
			groupSize = 1
			ts.DistinctEnds++
		}
		if groupSize > ts.LargestMergeGroup {
			ts.LargestMergeGroup = groupSize
		}
	}

	ts.MergedChains = ts.Chains - ts.DistinctEnds
	tableStat = &ts

	return
}

// TableStat - Statistics on the overall chain distribution in a table
//   - Chains is the total number of chain records
//   - DistinctEnds is the number of unique end plaintexts
//   - MergedChains is the number of chains sharing an end with an earlier chain
//   - LargestMergeGroup is the size of the largest group of chains sharing one end
type TableStat struct {
	Chains            int64
	DistinctEnds      int64
	MergedChains      int64
	LargestMergeGroup int64
}

// searchColumn - Tries to recover a plaintext assuming the target digest occurred at the given
// column of some generated chain. Computes the end such a chain would be stored under, binary
// searches the sorted records for it and verifies every matching chain by replaying its prefix.
func (R *RainbowTable) searchColumn(digest []byte, column int64) (pass []byte, ok bool, err error) {
	candidate, err := R.generator.CandidateEnd(digest, column)
	if err != nil {
		return
	}

	i := sort.Search(len(R.chains), func(i int) bool {
		return utils.Compare(R.chains[i].End, candidate) >= 0
	})

	// There may be zero, one or multiple chains sharing the candidate end, all of them are
	// checked since any of them might be the true originator
	var prefix []byte
	for ; i < len(R.chains) && utils.IsEqual(R.chains[i].End, candidate); i++ {
		prefix, err = R.generator.WalkPrefix(R.chains[i].Start, column)
		if err != nil {
			return
		}

		if utils.IsEqual(R.hashAlgorithm.Sum(prefix), digest) {
			log.WithFields(log.Fields{"column": column}).Debug("verified plaintext candidate")
			pass = prefix
			ok = true
			return
		}
	}

	return
}
