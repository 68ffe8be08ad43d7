package model

// Header - Represents the table file header data
type Header struct {
	InternalAlg bool
	ChainCount  int64
	ChainLength int64
	PassLength  int64
	FileSize    int64
}

// Chain - Represents one chain record, the only part of a chain that is ever stored.
// Start and End are plaintexts of the table's configured length.
type Chain struct {
	Start []byte
	End   []byte
}

// StorageParameters - Represents parameters of a table as stored in or loaded from file
type StorageParameters struct {
	ChainCount        int64
	ChainLength       int64
	PassLength        int64
	TableFileSize     int64
	InternalAlgorithm bool
}
