package alphabet

import (
	"fmt"
)

// Characters - The fixed, ordered alphabet that plaintexts are drawn from.
// Its size being a power of two keeps the index arithmetic in Encode and Decode cheap.
const Characters string = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789_."

// Size - Number of characters in the alphabet
const Size uint64 = 64

// MaxPassLength - Maximum supported plaintext length, beyond it the index space no longer fits in an uint64
const MaxPassLength int64 = 10

// lookup - Reverse lookup from character to its position in the alphabet, -1 for bytes outside the alphabet
var lookup [256]int16

func init() {
	for i := range lookup {
		lookup[i] = -1
	}
	for i := 0; i < len(Characters); i++ {
		lookup[Characters[i]] = int16(i)
	}
}

// SpaceSize - Returns the total number of distinct plaintexts of the given length, i.e. Size to the
// power of passLength.
//   - passLength is the plaintext length in bytes
//
// It returns:
//   - spaceSize is the total number of encodable plaintexts
//   - err is a standard error if passLength is outside the supported range
func SpaceSize(passLength int64) (spaceSize uint64, err error) {
	if passLength < 1 || passLength > MaxPassLength {
		err = fmt.Errorf("plaintext length must be between 1 and %d, got %d", MaxPassLength, passLength)
		return
	}

	spaceSize = 1
	for i := int64(0); i < passLength; i++ {
		spaceSize *= Size
	}

	return
}

// Encode - Converts an index to its plaintext representation of the given length.
// The least significant digit of the index ends up in the first byte of the plaintext.
//   - index is the plaintext number to encode, must be within [0, SpaceSize(passLength))
//   - passLength is the plaintext length in bytes
//
// It returns:
//   - pass is the encoded plaintext
//   - err is a standard error if index is out of range for the given length
func Encode(index uint64, passLength int64) (pass []byte, err error) {
	spaceSize, err := SpaceSize(passLength)
	if err != nil {
		return
	}
	if index >= spaceSize {
		err = fmt.Errorf("index %d out of range for plaintext length %d", index, passLength)
		return
	}

	pass = make([]byte, passLength)
	for i := int64(0); i < passLength; i++ {
		pass[i] = Characters[index%Size]
		index /= Size
	}

	return
}

// Decode - Converts a plaintext back to its index, the exact inverse of Encode.
//   - pass is the plaintext to decode
//
// It returns:
//   - index is the decoded plaintext number
//   - err is a standard error if the length is unsupported or a byte falls outside the alphabet
func Decode(pass []byte) (index uint64, err error) {
	if _, err = SpaceSize(int64(len(pass))); err != nil {
		return
	}

	for i := len(pass) - 1; i >= 0; i-- {
		pos := lookup[pass[i]]
		if pos < 0 {
			err = fmt.Errorf("byte 0x%02x at position %d is not in the alphabet", pass[i], i)
			index = 0
			return
		}
		index = index*Size + uint64(pos)
	}

	return
}
