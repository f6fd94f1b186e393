// Package pngenc writes 8-bit RGBA pixel data as a PNG stream.
//
// The stream is laid out by hand: signature, one IHDR chunk, one IDAT
// chunk with the zlib-compressed scanlines (filter type 0 on every row),
// and an empty IEND chunk.
package pngenc

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"hash/crc32"
	"io"
	"math"

	"github.com/klauspost/compress/zlib"
)

var (
	// ErrEncoding reports pixel data that does not match the declared
	// dimensions, or a stream that fails verification.
	ErrEncoding = errors.New("png: encoding error")
	// ErrIO wraps failures of the compressor or the underlying writer.
	ErrIO = errors.New("png: i/o failure")
)

const (
	bytesPerPixel = 4
	bitDepth      = 8
	colorTypeRGBA = 6
	filterNone    = 0

	// maxChunkLen is the largest length a chunk may declare.
	maxChunkLen = 1<<31 - 1
)

var signature = [8]byte{0x89, 'P', 'N', 'G', '\r', '\n', 0x1a, '\n'}

// Bytes encodes pix and returns the PNG stream.
func Bytes(width, height int, pix []byte) ([]byte, error) {
	var buf bytes.Buffer
	if err := Encode(&buf, width, height, pix); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Encode writes pix as a PNG image to w. pix holds width*height pixels as
// R,G,B,A bytes in row-major order. Output is compressed at
// zlib.BestCompression; the same input always produces the same bytes.
func Encode(w io.Writer, width, height int, pix []byte) error {
	if err := checkSize(width, height, len(pix)); err != nil {
		return err
	}

	idat, err := compress(width, height, pix)
	if err != nil {
		return err
	}
	if len(idat) > maxChunkLen {
		return fmt.Errorf("%w: IDAT payload of %d bytes exceeds chunk limit", ErrEncoding, len(idat))
	}

	e := &encoder{w: w}
	e.write(signature[:])
	e.writeChunk("IHDR", ihdr(width, height))
	e.writeChunk("IDAT", idat)
	e.writeChunk("IEND", nil)
	if e.err != nil {
		return fmt.Errorf("%w: %w", ErrIO, e.err)
	}
	return nil
}

func checkSize(width, height, n int) error {
	if width <= 0 || height <= 0 {
		return fmt.Errorf("%w: non-positive dimensions %dx%d", ErrEncoding, width, height)
	}
	if width > maxChunkLen || height > maxChunkLen {
		return fmt.Errorf("%w: dimensions %dx%d exceed PNG limit", ErrEncoding, width, height)
	}
	// Stride plus filter byte must not overflow.
	if width > (math.MaxInt/bytesPerPixel-1)/height {
		return fmt.Errorf("%w: dimensions %dx%d too large", ErrEncoding, width, height)
	}
	if want := width * height * bytesPerPixel; n != want {
		return fmt.Errorf("%w: got %d bytes of pixel data, want %d for %dx%d", ErrEncoding, n, want, width, height)
	}
	return nil
}

func ihdr(width, height int) []byte {
	b := make([]byte, 13)
	binary.BigEndian.PutUint32(b[0:4], uint32(width))
	binary.BigEndian.PutUint32(b[4:8], uint32(height))
	b[8] = bitDepth
	b[9] = colorTypeRGBA
	b[10] = 0 // compression: deflate
	b[11] = 0 // filter method: adaptive
	b[12] = 0 // interlace: none
	return b
}

// compress prefixes every scanline with filter byte 0 and deflates the
// result into a zlib stream.
func compress(width, height int, pix []byte) ([]byte, error) {
	var buf bytes.Buffer
	zw, err := zlib.NewWriterLevel(&buf, zlib.BestCompression)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrIO, err)
	}

	stride := width * bytesPerPixel
	filter := []byte{filterNone}
	for y := 0; y < height; y++ {
		if _, err := zw.Write(filter); err != nil {
			return nil, fmt.Errorf("%w: compress: %w", ErrIO, err)
		}
		if _, err := zw.Write(pix[y*stride : (y+1)*stride]); err != nil {
			return nil, fmt.Errorf("%w: compress: %w", ErrIO, err)
		}
	}
	if err := zw.Close(); err != nil {
		return nil, fmt.Errorf("%w: compress: %w", ErrIO, err)
	}
	return buf.Bytes(), nil
}

// encoder writes chunks to w and keeps the first error.
type encoder struct {
	w   io.Writer
	err error
	tmp [8]byte
}

func (e *encoder) write(b []byte) {
	if e.err != nil {
		return
	}
	_, e.err = e.w.Write(b)
}

// writeChunk emits length, type, payload, and the CRC-32 of type+payload.
func (e *encoder) writeChunk(typ string, payload []byte) {
	binary.BigEndian.PutUint32(e.tmp[:4], uint32(len(payload)))
	copy(e.tmp[4:8], typ)

	crc := crc32.NewIEEE()
	crc.Write(e.tmp[4:8])
	crc.Write(payload)

	e.write(e.tmp[:8])
	e.write(payload)
	binary.BigEndian.PutUint32(e.tmp[:4], crc.Sum32())
	e.write(e.tmp[:4])
}
