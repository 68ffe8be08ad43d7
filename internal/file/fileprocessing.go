package file

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/DataDog/zstd"
	"github.com/gostonefire/rainbowtable/crt"
	"github.com/gostonefire/rainbowtable/internal/alphabet"
	"github.com/gostonefire/rainbowtable/internal/conf"
	"github.com/gostonefire/rainbowtable/internal/model"
)

// ExpectedFileSize - Returns the exact size a table file must have given its parameters.
// For compressed files the size refers to the decompressed stream.
func ExpectedFileSize(chainCount, passLength int64) int64 {
	return conf.TableFileHeaderLength + chainCount*2*passLength
}

// WriteTableFile - Creates a new table file and writes header and all chain records to it.
// If the file already exists it will first be truncated to zero length, hence deleting all existing data.
// A file name ending in .zst is written zstd compressed.
//   - fileName is the name of the table file to create
//   - header is the table parameters to store, its FileSize must reflect the logical (decompressed) size
//   - chains is the full set of chain records, expected to already be sorted by end plaintext
//
// It returns:
//   - err is a standard error, if something went wrong
func WriteTableFile(fileName string, header model.Header, chains []model.Chain) (err error) {
	filePtr, err := os.OpenFile(fileName, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, 0644)
	if err != nil {
		err = fmt.Errorf("error while open/create new table file: %s", err)
		return
	}
	defer func() {
		_ = filePtr.Close()
	}()

	var w io.Writer = filePtr
	var zw io.WriteCloser
	if strings.HasSuffix(fileName, conf.ZstFileSuffix) {
		zw = zstd.NewWriter(filePtr)
		w = zw
	}

	buffered := bufio.NewWriter(w)

	_, err = buffered.Write(headerToBytes(header))
	if err != nil {
		err = fmt.Errorf("error while writing header to table file: %s", err)
		return
	}

	for _, chain := range chains {
		_, err = buffered.Write(chainToBytes(chain, header.PassLength))
		if err != nil {
			err = fmt.Errorf("error while writing chain record to table file: %s", err)
			return
		}
	}

	err = buffered.Flush()
	if err != nil {
		err = fmt.Errorf("error while flushing table file: %s", err)
		return
	}

	if zw != nil {
		err = zw.Close()
		if err != nil {
			err = fmt.Errorf("error while closing compressed table stream: %s", err)
			return
		}
	}

	err = filePtr.Sync()
	if err != nil {
		err = fmt.Errorf("error while syncing table file: %s", err)
	}

	return
}

// ReadTableFile - Opens an existing table file, does thorough checks of its validity and reads
// header and all chain records into memory. A file name ending in .zst is read zstd compressed.
//   - fileName is the name of the table file to open
//   - externalAlg indicates whether the caller supplied a custom hash algorithm
//
// It returns:
//   - header is the table parameters from the file header
//   - chains is the full set of chain records in stored order
//   - err is of type crt.FormatError when the file doesn't conform with the format, otherwise a standard error
func ReadTableFile(fileName string, externalAlg bool) (header model.Header, chains []model.Chain, err error) {
	stat, statErr := os.Stat(fileName)
	if statErr != nil {
		err = fmt.Errorf("table file not found: %s", fileName)
		return
	}

	filePtr, err := os.Open(fileName)
	if err != nil {
		err = fmt.Errorf("unable to open existing table file: %s", err)
		return
	}
	defer func() {
		_ = filePtr.Close()
	}()

	var r io.Reader = filePtr
	compressed := strings.HasSuffix(fileName, conf.ZstFileSuffix)
	if compressed {
		zr := zstd.NewReader(filePtr)
		defer func() {
			_ = zr.Close()
		}()
		r = zr
	}

	buffered := bufio.NewReader(r)

	buf := make([]byte, conf.TableFileHeaderLength)
	_, err = io.ReadFull(buffered, buf)
	if err != nil {
		err = crt.NewFormatError(fmt.Sprintf("unable to read header from table file: %s", err))
		return
	}

	header = bytesToHeader(buf)

	if header.ChainCount < 1 || header.ChainLength < 1 {
		err = crt.NewFormatError("table file header holds zero chains or zero chain length")
		return
	}
	if header.PassLength < 1 || header.PassLength > alphabet.MaxPassLength {
		err = crt.NewFormatError(fmt.Sprintf("table file header holds unsupported plaintext length %d", header.PassLength))
		return
	}
	if header.InternalAlg && externalAlg {
		err = fmt.Errorf("seems the table file was created with the internal hash algorithm but an external was given")
		return
	}

	expected := ExpectedFileSize(header.ChainCount, header.PassLength)
	if header.FileSize != expected {
		err = crt.NewFormatError(fmt.Sprintf("header indicated file size (%d) doesn't conform with header parameters (%d)", header.FileSize, expected))
		return
	}
	if !compressed && stat.Size() != expected {
		err = crt.NewFormatError(fmt.Sprintf("actual file size (%d) doesn't conform with header indicated file size (%d)", stat.Size(), expected))
		return
	}

	chains = make([]model.Chain, header.ChainCount)
	record := make([]byte, 2*header.PassLength)
	for i := int64(0); i < header.ChainCount; i++ {
		_, err = io.ReadFull(buffered, record)
		if err != nil {
			err = crt.NewFormatError(fmt.Sprintf("table file ends short of its declared %d chain records: %s", header.ChainCount, err))
			chains = nil
			return
		}
		chains[i] = bytesToChain(record, header.PassLength)
	}

	// The stored stream must end exactly after the declared records
	_, err = buffered.ReadByte()
	if err != io.EOF {
		err = crt.NewFormatError("table file holds trailing data beyond its declared chain records")
		chains = nil
		return
	}
	err = nil

	return
}
