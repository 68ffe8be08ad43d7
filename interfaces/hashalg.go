package hashfunc

// HashAlgorithm - Interface that permits an implementation using the RainbowTable to supply a custom
// one-way hash algorithm suited for its particular use case. The algorithm has to be deterministic with
// fixed size output, table generation and lookup depend on exact reproducibility across processes.
type HashAlgorithm interface {
	// Sum - Given a plaintext it returns the digest over it.
	// The returned slice must always be of length DigestLength.
	Sum(plaintext []byte) []byte
	// DigestLength - Returns the fixed length in bytes of digests produced by Sum.
	// The reduction functions consume the 8 low-order bytes, hence any length less than 8 will be
	// rejected down stream.
	DigestLength() int64
}
