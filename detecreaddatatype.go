package peakroc

import (
	"bufio"
	"bytes"
	"compress/bzip2"
	"errors"
	"io"

	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
	"github.com/krolaw/zipstream"
	"github.com/pierrec/lz4"
	"github.com/xi2/xz"
)

type DataType byte

const (
	DataTypeInvalid DataType = iota
	DataTypeNoCompression
	DataTypeGzip
	DataTypeZip
	DataTypeXZ
	DataTypeBZip2
	DataTypeZstd
	DataTypeLZ4
)

func (d DataType) String() string {
	switch d {
	case DataTypeNoCompression:
		return "uncompressed"
	case DataTypeGzip:
		return "gzip"
	case DataTypeZip:
		return "zip"
	case DataTypeXZ:
		return "xz"
	case DataTypeBZip2:
		return "bzip2"
	case DataTypeZstd:
		return "zstd"
	case DataTypeLZ4:
		return "lz4"
	}

	return "invalid"
}

var byteCodeSigs = map[DataType][]byte{
	DataTypeGzip:  {0x1f, 0x8b, 0x08},
	DataTypeZip:   {0x50, 0x4b, 0x03, 0x04},
	DataTypeXZ:    {0xfd, 0x37, 0x7a, 0x58, 0x5a, 0x00},
	DataTypeBZip2: {0x42, 0x5a, 0x68},
	DataTypeZstd:  {0x28, 0xb5, 0x2f, 0xfd},
	DataTypeLZ4:   {0x04, 0x22, 0x4d, 0x18},
}

// maxSigLen is the longest signature in byteCodeSigs.
const maxSigLen = 6

// DetectDataType attempts to detect the data type of the leading bytes of a
// stream by checking against a set of known data types. Byte code signatures
// from https://stackoverflow.com/a/19127748/199475
func DetectDataType(head []byte) DataType {
	for dt, sig := range byteCodeSigs {
		if bytes.HasPrefix(head, sig) {
			return dt
		}
	}

	return DataTypeNoCompression
}

// MaybeDecompress peeks at the start of rc and, if it carries a known
// compression signature, returns a reader over the decompressed stream.
// Closing the returned reader closes rc as well.
func MaybeDecompress(rc io.ReadCloser) (io.ReadCloser, DataType, error) {
	br := bufio.NewReader(rc)

	// A short file is fine: Peek returns what it has along with io.EOF.
	head, err := br.Peek(maxSigLen)
	if err != nil && err != io.EOF && err != bufio.ErrBufferFull {
		return nil, DataTypeInvalid, err
	}

	dt := DetectDataType(head)

	var r io.Reader
	var inner io.Closer

	switch dt {
	case DataTypeGzip:
		gz, err := gzip.NewReader(br)
		if err != nil {
			return nil, dt, err
		}
		r, inner = gz, gz
	case DataTypeZip:
		// Only the first entry of an archive is read.
		zr := zipstream.NewReader(br)
		if _, err := zr.Next(); err == io.EOF {
			return nil, dt, errors.New("empty zip archive")
		} else if err != nil {
			return nil, dt, err
		}
		r = zr
	case DataTypeBZip2:
		r = bzip2.NewReader(br)
	case DataTypeXZ:
		xzr, err := xz.NewReader(br, 0)
		if err != nil {
			return nil, dt, err
		}
		r = xzr
	case DataTypeZstd:
		zr, err := zstd.NewReader(br)
		if err != nil {
			return nil, dt, err
		}
		zrc := zr.IOReadCloser()
		r, inner = zrc, zrc
	case DataTypeLZ4:
		r = lz4.NewReader(br)
	default:
		// No data type detected. For now, we assume this is uncompressed.
		r = br
	}

	return &stackedReadCloser{Reader: r, inner: inner, outer: rc}, dt, nil
}

// stackedReadCloser closes the decompressor (if it needs closing) and then
// the underlying source.
type stackedReadCloser struct {
	io.Reader
	inner io.Closer
	outer io.Closer
}

func (s *stackedReadCloser) Close() error {
	var err error
	if s.inner != nil {
		err = s.inner.Close()
	}

	if cerr := s.outer.Close(); cerr != nil && err == nil {
		err = cerr
	}

	return err
}
