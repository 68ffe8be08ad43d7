package reduce

import (
	"encoding/binary"
	"fmt"

	"github.com/gostonefire/rainbowtable/internal/alphabet"
)

// digestBytesUsed - Number of low-order digest bytes interpreted as the reduction integer
const digestBytesUsed int = 8

// Reducer - Implements the column-indexed reduction function family for one plaintext length.
// A reduction maps a digest to a plaintext shaped value, it is in no way an inverse of the hash.
// The column index decorrelates reductions at different chain positions, without it two chains
// hitting the same digest anywhere would share their entire suffix.
type Reducer struct {
	passLength int64
	spaceSize  uint64
}

// NewReducer - Returns a pointer to a new Reducer instance for the given plaintext length
//   - passLength is the plaintext length in bytes
//
// It returns:
//   - reducer which is a pointer to the created instance
//   - err which is a standard error if the plaintext length is unsupported
func NewReducer(passLength int64) (reducer *Reducer, err error) {
	spaceSize, err := alphabet.SpaceSize(passLength)
	if err != nil {
		return
	}

	reducer = &Reducer{passLength: passLength, spaceSize: spaceSize}

	return
}

// Reduce - Maps a digest and a column index to a plaintext. Deterministic, the same digest and
// column always yield the same plaintext in every process, which the lookup protocol depends on.
//   - digest is the digest to reduce, must be at least 8 bytes
//   - column is the chain position the reduction is applied at
//
// It returns:
//   - pass is the resulting plaintext of the configured length
//   - err is a standard error if the digest is too short
func (R *Reducer) Reduce(digest []byte, column uint64) (pass []byte, err error) {
	if len(digest) < digestBytesUsed {
		err = fmt.Errorf("digest must be at least %d bytes, got %d", digestBytesUsed, len(digest))
		return
	}

	v := binary.LittleEndian.Uint64(digest[:digestBytesUsed])
	index := (v + column) % R.spaceSize

	pass, err = alphabet.Encode(index, R.passLength)

	return
}

// SpaceSize - Returns the total number of distinct plaintexts the reducer maps into
func (R *Reducer) SpaceSize() uint64 {
	return R.spaceSize
}
