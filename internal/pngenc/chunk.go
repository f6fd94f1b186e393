package pngenc

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"hash/crc32"
	"io"

	"github.com/klauspost/compress/zlib"
)

// Chunk is one PNG chunk as it appears in the stream.
type Chunk struct {
	Type string
	Data []byte
	CRC  uint32
}

// Header holds the IHDR fields.
type Header struct {
	Width       uint32
	Height      uint32
	BitDepth    uint8
	ColorType   uint8
	Compression uint8
	Filter      uint8
	Interlace   uint8
}

// Chunks splits a PNG stream into its chunks. It checks the signature,
// every declared length, and every CRC. Data slices alias data.
func Chunks(data []byte) ([]Chunk, error) {
	if len(data) < len(signature) || !bytes.Equal(data[:len(signature)], signature[:]) {
		return nil, fmt.Errorf("%w: missing PNG signature", ErrEncoding)
	}

	var out []Chunk
	off := len(signature)
	for off < len(data) {
		if off+12 > len(data) {
			return nil, fmt.Errorf("%w: truncated chunk at offset %d", ErrEncoding, off)
		}
		n := binary.BigEndian.Uint32(data[off : off+4])
		if uint64(n) > uint64(len(data)-off-12) {
			return nil, fmt.Errorf("%w: chunk at offset %d declares %d bytes past end of stream", ErrEncoding, off, n)
		}
		end := off + 8 + int(n)
		c := Chunk{
			Type: string(data[off+4 : off+8]),
			Data: data[off+8 : end],
			CRC:  binary.BigEndian.Uint32(data[end : end+4]),
		}
		if sum := crc32.ChecksumIEEE(data[off+4 : end]); sum != c.CRC {
			return nil, fmt.Errorf("%w: chunk %s CRC %08x, computed %08x", ErrEncoding, c.Type, c.CRC, sum)
		}
		out = append(out, c)
		off = end + 4
	}
	return out, nil
}

// ReadHeader decodes the IHDR chunk, which must come first.
func ReadHeader(data []byte) (Header, error) {
	chunks, err := Chunks(data)
	if err != nil {
		return Header{}, err
	}
	if len(chunks) == 0 {
		return Header{}, fmt.Errorf("%w: no chunks", ErrEncoding)
	}
	return parseHeader(chunks[0])
}

func parseHeader(c Chunk) (Header, error) {
	if c.Type != "IHDR" {
		return Header{}, fmt.Errorf("%w: first chunk is %s, want IHDR", ErrEncoding, c.Type)
	}
	if len(c.Data) != 13 {
		return Header{}, fmt.Errorf("%w: IHDR length %d, want 13", ErrEncoding, len(c.Data))
	}
	return Header{
		Width:       binary.BigEndian.Uint32(c.Data[0:4]),
		Height:      binary.BigEndian.Uint32(c.Data[4:8]),
		BitDepth:    c.Data[8],
		ColorType:   c.Data[9],
		Compression: c.Data[10],
		Filter:      c.Data[11],
		Interlace:   c.Data[12],
	}, nil
}

// Verify checks that data is a stream this package would produce for a
// width×height image: IHDR first with matching fields, IDAT chunks that
// inflate to exactly one filtered scanline per row, and an empty IEND last.
func Verify(data []byte, width, height int) error {
	chunks, err := Chunks(data)
	if err != nil {
		return err
	}
	if len(chunks) < 3 {
		return fmt.Errorf("%w: %d chunks, want at least 3", ErrEncoding, len(chunks))
	}

	h, err := parseHeader(chunks[0])
	if err != nil {
		return err
	}
	if int64(h.Width) != int64(width) || int64(h.Height) != int64(height) {
		return fmt.Errorf("%w: header says %dx%d, want %dx%d", ErrEncoding, h.Width, h.Height, width, height)
	}
	if h.BitDepth != bitDepth || h.ColorType != colorTypeRGBA || h.Compression != 0 || h.Filter != 0 || h.Interlace != 0 {
		return fmt.Errorf("%w: unexpected header %+v", ErrEncoding, h)
	}

	last := chunks[len(chunks)-1]
	if last.Type != "IEND" || len(last.Data) != 0 {
		return fmt.Errorf("%w: stream does not end with an empty IEND", ErrEncoding)
	}

	// IDAT chunks must be consecutive; IHDR and IEND appear once.
	var idat []byte
	idatDone := false
	for i, c := range chunks[1 : len(chunks)-1] {
		switch c.Type {
		case "IHDR", "IEND":
			return fmt.Errorf("%w: unexpected %s at chunk %d", ErrEncoding, c.Type, i+1)
		case "IDAT":
			if idatDone {
				return fmt.Errorf("%w: IDAT chunks are not consecutive", ErrEncoding)
			}
			idat = append(idat, c.Data...)
		default:
			if len(idat) > 0 {
				idatDone = true
			}
		}
	}
	if len(idat) == 0 {
		return fmt.Errorf("%w: no IDAT chunk", ErrEncoding)
	}
	return checkScanlines(idat, width, height)
}

func checkScanlines(idat []byte, width, height int) error {
	zr, err := zlib.NewReader(bytes.NewReader(idat))
	if err != nil {
		return fmt.Errorf("%w: IDAT: %w", ErrEncoding, err)
	}
	defer zr.Close()

	rowLen := 1 + width*bytesPerPixel
	want := int64(height) * int64(rowLen)
	// One byte past the expected size is enough to detect excess data.
	raw, err := io.ReadAll(io.LimitReader(zr, want+1))
	if err != nil {
		return fmt.Errorf("%w: IDAT: %w", ErrEncoding, err)
	}
	if int64(len(raw)) != want {
		return fmt.Errorf("%w: IDAT inflates to %d bytes or more, want %d", ErrEncoding, len(raw), want)
	}
	for y := 0; y < height; y++ {
		if f := raw[y*rowLen]; f != filterNone {
			return fmt.Errorf("%w: row %d has filter type %d", ErrEncoding, y, f)
		}
	}
	return nil
}
