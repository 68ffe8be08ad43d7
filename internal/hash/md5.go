package hash

import (
	"crypto/md5"
)

// MD5Algorithm - The internally used hash algorithm, producing 128 bit MD5 digests over plaintexts.
// MD5 being broken for cryptographic purposes is beside the point here, the table inverts whatever
// one-way function it was generated with and MD5 is the supported 128 bit primitive.
type MD5Algorithm struct{}

// NewMD5Algorithm - Returns a pointer to a new MD5Algorithm instance
func NewMD5Algorithm() *MD5Algorithm {
	return &MD5Algorithm{}
}

// Sum - Given a plaintext it returns the MD5 digest over it
func (M *MD5Algorithm) Sum(plaintext []byte) []byte {
	digest := md5.Sum(plaintext)
	return digest[:]
}

// DigestLength - Returns the fixed MD5 digest length of 16 bytes
func (M *MD5Algorithm) DigestLength() int64 {
	return md5.Size
}
