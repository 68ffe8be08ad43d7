package conf

// TableFileHeaderLength - Length of the table file header
const TableFileHeaderLength int64 = 64

// HashAlgorithmOffset - Header offset to whether using internal (1) or external (0) hash algorithm - 1 byte
const HashAlgorithmOffset int64 = 0

// ChainCountOffset - Header offset to the number of chain records in the file - 8 bytes
const ChainCountOffset int64 = 1

// ChainLengthOffset - Header offset to the number of hash/reduce rounds per chain - 8 bytes
const ChainLengthOffset int64 = 9

// PassLengthOffset - Header offset to the plaintext length in bytes - 4 bytes
const PassLengthOffset int64 = 17

// FileSizeOffset - Header offset to the file size (should of course reflect true file size) - 8 bytes
const FileSizeOffset int64 = 21

// ZstFileSuffix - File name suffix selecting transparent zstd compression of table files
const ZstFileSuffix string = ".zst"
