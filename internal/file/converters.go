package file

import (
	"encoding/binary"

	"github.com/gostonefire/rainbowtable/internal/conf"
	"github.com/gostonefire/rainbowtable/internal/model"
)

// bytesToHeader - Converts a slice of bytes to a Header struct
func bytesToHeader(buf []byte) (header model.Header) {
	header = model.Header{
		InternalAlg: buf[conf.HashAlgorithmOffset] == 1,
		ChainCount:  int64(binary.LittleEndian.Uint64(buf[conf.ChainCountOffset:])),
		ChainLength: int64(binary.LittleEndian.Uint64(buf[conf.ChainLengthOffset:])),
		PassLength:  int64(binary.LittleEndian.Uint32(buf[conf.PassLengthOffset:])),
		FileSize:    int64(binary.LittleEndian.Uint64(buf[conf.FileSizeOffset:])),
	}

	return
}

// headerToBytes - Converts a Header struct to a slice of bytes
func headerToBytes(header model.Header) (buf []byte) {
	buf = make([]byte, conf.TableFileHeaderLength)

	if header.InternalAlg {
		buf[conf.HashAlgorithmOffset] = 1
	}

	binary.LittleEndian.PutUint64(buf[conf.ChainCountOffset:], uint64(header.ChainCount))
	binary.LittleEndian.PutUint64(buf[conf.ChainLengthOffset:], uint64(header.ChainLength))
	binary.LittleEndian.PutUint32(buf[conf.PassLengthOffset:], uint32(header.PassLength))
	binary.LittleEndian.PutUint64(buf[conf.FileSizeOffset:], uint64(header.FileSize))

	return
}

// chainToBytes - Converts a Chain struct to its fixed size record representation of start
// followed by end plaintext
func chainToBytes(chain model.Chain, passLength int64) (buf []byte) {
	buf = make([]byte, 0, 2*passLength)
	buf = append(buf, chain.Start...)
	buf = append(buf, chain.End...)

	return
}

// bytesToChain - Converts one fixed size record to a Chain struct
func bytesToChain(buf []byte, passLength int64) (chain model.Chain) {
	start := make([]byte, passLength)
	end := make([]byte, passLength)
	_ = copy(start, buf[:passLength])
	_ = copy(end, buf[passLength:2*passLength])

	chain = model.Chain{Start: start, End: end}

	return
}
