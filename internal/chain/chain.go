package chain

import (
	"fmt"

	hashfunc "github.com/gostonefire/rainbowtable/interfaces"
	"github.com/gostonefire/rainbowtable/internal/reduce"
)

// Generator - Implements the chain engine. A chain is chainLength rounds of hash followed by
// column-indexed reduction, starting at column 0. Only start and end plaintexts are ever kept,
// interior plaintexts are regenerated on demand. All walks are pure functions of their inputs
// and the hash/reduce primitives, hence safe to run from any number of goroutines.
type Generator struct {
	hashAlgorithm hashfunc.HashAlgorithm
	reducer       *reduce.Reducer
	chainLength   int64
}

// NewGenerator - Returns a pointer to a new Generator instance
//   - hashAlgorithm is the one-way hash primitive chains are built over
//   - passLength is the plaintext length in bytes
//   - chainLength is the number of hash/reduce rounds per chain
//
// It returns:
//   - generator which is a pointer to the created instance
//   - err which is a standard error if the parameters can not produce chains
func NewGenerator(hashAlgorithm hashfunc.HashAlgorithm, passLength, chainLength int64) (generator *Generator, err error) {
	if hashAlgorithm == nil {
		err = fmt.Errorf("hash algorithm must not be nil")
		return
	}
	if chainLength < 1 {
		err = fmt.Errorf("chain length must be a positive value higher than 0 (zero), got %d", chainLength)
		return
	}

	reducer, err := reduce.NewReducer(passLength)
	if err != nil {
		return
	}

	generator = &Generator{
		hashAlgorithm: hashAlgorithm,
		reducer:       reducer,
		chainLength:   chainLength,
	}

	return
}

// BuildChain - Builds one chain from a starting plaintext and returns its end plaintext.
// The end is the result of chainLength rounds of hash and reduce with columns 0 through chainLength-1.
//   - start is the starting plaintext
//
// It returns:
//   - end is the end plaintext of the chain
//   - err is a standard error, if something went wrong
func (G *Generator) BuildChain(start []byte) (end []byte, err error) {
	return G.walk(start, 0, G.chainLength)
}

// WalkPrefix - Regenerates the plaintext occupying the given column of a chain, by walking
// forward from its start over columns 0 through column-1. Used during lookup verification.
//   - start is the starting plaintext of the chain
//   - column is the chain position to walk to
//
// It returns:
//   - pass is the plaintext at the given column
//   - err is a standard error, if something went wrong
func (G *Generator) WalkPrefix(start []byte, column int64) (pass []byte, err error) {
	return G.walk(start, 0, column)
}

// CandidateEnd - Computes the end a chain would reach if the given digest truly occurred at the
// given column of it, by reducing the digest at that column and then walking the remaining rounds.
//   - digest is the digest assumed to occur at the column
//   - column is the assumed chain position of the digest
//
// It returns:
//   - end is the end plaintext such a chain would be stored under
//   - err is a standard error, if something went wrong
func (G *Generator) CandidateEnd(digest []byte, column int64) (end []byte, err error) {
	pass, err := G.reducer.Reduce(digest, uint64(column))
	if err != nil {
		return
	}

	return G.walk(pass, column+1, G.chainLength)
}

// ChainLength - Returns the number of hash/reduce rounds per chain
func (G *Generator) ChainLength() int64 {
	return G.chainLength
}

// SpaceSize - Returns the total number of distinct plaintexts of the configured length
func (G *Generator) SpaceSize() uint64 {
	return G.reducer.SpaceSize()
}

// walk - Applies rounds of hash and reduce over columns fromColumn through toColumn-1
func (G *Generator) walk(pass []byte, fromColumn, toColumn int64) (end []byte, err error) {
	end = pass
	for column := fromColumn; column < toColumn; column++ {
		end, err = G.reducer.Reduce(G.hashAlgorithm.Sum(end), uint64(column))
		if err != nil {
			return
		}
	}

	return
}
