package normalize

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"strings"
)

// Raster normalizes photo formats by stripping all embedded metadata and
// re-emitting pixel data. Three strategies run in order, short-circuiting on
// the first success:
//
//  1. exiftool rewrites the file with every metadata tag removed.
//  2. The actual encoding is sniffed from file content (the extension may
//     lie) and ImageMagick re-encodes losslessly with -strip.
//  3. ImageMagick re-encodes generically, trusting its own detection.
//
// Every failed attempt's message is kept so an exhausted chain reports the
// full trail.
type Raster struct {
	exiftool string
	magick   string
}

// NewRaster builds the raster backend over the given tool binaries.
func NewRaster(exiftool, magick string) *Raster {
	return &Raster{exiftool: exiftool, magick: magick}
}

func (r *Raster) Normalize(ctx context.Context, path string) (Payload, error) {
	var trail []string

	out, err := runCapture(ctx, r.exiftool, "-all=", "-o", "-", path)
	if err == nil && len(out) > 0 {
		return SinglePayload(out), nil
	}
	trail = append(trail, attemptFailure("exiftool strip", out, err))

	if format, sniffErr := sniffFormat(path); sniffErr != nil {
		trail = append(trail, fmt.Sprintf("format sniff: %v", sniffErr))
	} else {
		out, err = runCapture(ctx, r.magick, format+":"+path, "-strip", "ppm:-")
		if err == nil && len(out) > 0 {
			return SinglePayload(out), nil
		}
		trail = append(trail, attemptFailure(format+" re-encode", out, err))
	}

	out, err = runCapture(ctx, r.magick, path, "-strip", "ppm:-")
	if err == nil && len(out) > 0 {
		return SinglePayload(out), nil
	}
	trail = append(trail, attemptFailure("generic re-encode", out, err))

	return Payload{}, fmt.Errorf("all raster strategies failed: %s", strings.Join(trail, "; "))
}

func attemptFailure(stage string, out []byte, err error) string {
	if err != nil {
		return fmt.Sprintf("%s: %v", stage, err)
	}
	return fmt.Sprintf("%s: produced no output (%d bytes)", stage, len(out))
}

// sniffFormat reads magic bytes and names the actual image encoding,
// regardless of extension.
func sniffFormat(path string) (string, error) {
	file, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer file.Close()

	header := make([]byte, 16)
	n, err := io.ReadFull(file, header)
	if err != nil && n == 0 {
		return "", err
	}
	header = header[:n]

	switch {
	case len(header) >= 3 && bytes.Equal(header[:3], []byte{0xFF, 0xD8, 0xFF}):
		return "jpeg", nil
	case len(header) >= 8 && bytes.Equal(header[:8], []byte{0x89, 'P', 'N', 'G', 0x0D, 0x0A, 0x1A, 0x0A}):
		return "png", nil
	case len(header) >= 6 && (bytes.Equal(header[:6], []byte("GIF87a")) || bytes.Equal(header[:6], []byte("GIF89a"))):
		return "gif", nil
	case len(header) >= 4 && (bytes.Equal(header[:4], []byte("II*\x00")) || bytes.Equal(header[:4], []byte("MM\x00*"))):
		return "tiff", nil
	case len(header) >= 12 && bytes.Equal(header[:4], []byte("RIFF")) && bytes.Equal(header[8:12], []byte("WEBP")):
		return "webp", nil
	case len(header) >= 2 && bytes.Equal(header[:2], []byte("BM")):
		return "bmp", nil
	default:
		return "", fmt.Errorf("unrecognized image signature in %s", path)
	}
}
