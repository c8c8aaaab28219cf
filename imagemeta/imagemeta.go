// Package imagemeta extracts pixel dimensions from image byte streams.
//
// PNG and JPEG dimensions are read from the file header alone — a few
// dozen bytes instead of a full pixel decode — because the validation run
// scans thousands of logo files. Other formats, and headers the fast
// paths reject, fall back to the registered general-purpose decoders.
package imagemeta

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"image"
	"os"
	"path/filepath"
	"strings"

	// Fallback decoders for formats without a fast path.
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

// ErrInvalidFormat is returned when a byte stream does not match the
// format its extension promises, or when the JPEG marker scan exceeds its
// bound.
var ErrInvalidFormat = errors.New("invalid image format")

// maxJPEGScan bounds the JPEG marker scan so malformed or adversarial
// segment lengths cannot seek forever.
const maxJPEGScan = 1 << 20 // 1 MB

var pngSignature = []byte{0x89, 'P', 'N', 'G', '\r', '\n', 0x1a, '\n'}

// Dimensions returns the pixel width and height of an image held in
// memory. filename supplies the extension hint selecting the fast path;
// when the hint does not apply or the fast path rejects the bytes, the
// general decoders take over and their error is propagated verbatim.
func Dimensions(data []byte, filename string) (width, height uint32, err error) {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".png":
		if w, h, err := pngDimensions(data); err == nil {
			return w, h, nil
		}
	case ".jpg", ".jpeg":
		if w, h, err := jpegDimensions(data); err == nil {
			return w, h, nil
		}
	}

	cfg, _, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return 0, 0, err
	}
	return uint32(cfg.Width), uint32(cfg.Height), nil
}

// DimensionsFile is Dimensions for a file on disk.
func DimensionsFile(path string) (width, height uint32, err error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return 0, 0, err
	}
	return Dimensions(data, path)
}

// pngDimensions reads width and height from the IHDR chunk, which the PNG
// specification requires to be the first chunk after the 8-byte
// signature.
func pngDimensions(data []byte) (uint32, uint32, error) {
	// signature + chunk length + chunk tag + width + height
	if len(data) < 8+4+4+4+4 {
		return 0, 0, fmt.Errorf("%w: truncated PNG header", ErrInvalidFormat)
	}
	if !bytes.Equal(data[:8], pngSignature) {
		return 0, 0, fmt.Errorf("%w: bad PNG signature", ErrInvalidFormat)
	}
	if !bytes.Equal(data[12:16], []byte("IHDR")) {
		return 0, 0, fmt.Errorf("%w: first chunk is not IHDR", ErrInvalidFormat)
	}

	width := binary.BigEndian.Uint32(data[16:20])
	height := binary.BigEndian.Uint32(data[20:24])
	return width, height, nil
}

// sofMarker reports whether a JPEG marker code is a Start-Of-Frame
// carrying dimensions: 0xC0–0xC3, 0xC5–0xC7, 0xC9–0xCB, 0xCD–0xCF.
// 0xC4 (DHT), 0xC8 (JPG) and 0xCC (DAC) sit in the same range but carry
// no frame header.
func sofMarker(code byte) bool {
	switch code {
	case 0xC4, 0xC8, 0xCC:
		return false
	}
	return code >= 0xC0 && code <= 0xCF
}

// jpegDimensions scans marker segments for a Start-Of-Frame and reads the
// dimensions from its header. The scan is bounded by maxJPEGScan.
func jpegDimensions(data []byte) (uint32, uint32, error) {
	if len(data) < 2 || data[0] != 0xFF || data[1] != 0xD8 {
		return 0, 0, fmt.Errorf("%w: missing JPEG SOI marker", ErrInvalidFormat)
	}

	pos := 2
	for {
		if pos > maxJPEGScan {
			return 0, 0, fmt.Errorf("%w: no SOF marker within scan limit", ErrInvalidFormat)
		}
		if pos+4 > len(data) {
			return 0, 0, fmt.Errorf("%w: truncated JPEG stream", ErrInvalidFormat)
		}
		if data[pos] != 0xFF {
			return 0, 0, fmt.Errorf("%w: expected marker prefix at offset %d", ErrInvalidFormat, pos)
		}

		code := data[pos+1]
		length := int(binary.BigEndian.Uint16(data[pos+2 : pos+4]))
		if length < 2 {
			return 0, 0, fmt.Errorf("%w: segment length %d too small", ErrInvalidFormat, length)
		}

		if sofMarker(code) {
			// 2-byte length, 1 precision byte, then height and width.
			if pos+4+1+4 > len(data) {
				return 0, 0, fmt.Errorf("%w: truncated SOF segment", ErrInvalidFormat)
			}
			height := uint32(binary.BigEndian.Uint16(data[pos+5 : pos+7]))
			width := uint32(binary.BigEndian.Uint16(data[pos+7 : pos+9]))
			return width, height, nil
		}

		pos += 2 + length
	}
}
