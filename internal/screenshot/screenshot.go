// Package screenshot decodes base64 screenshots posted by the desktop client,
// normalizes them to PNG and fingerprints them for caching.
package screenshot

import (
	"bytes"
	"encoding/base64"
	"errors"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	"image/png"
	"strings"

	"github.com/corona10/goimagehash"
	_ "golang.org/x/image/webp"
)

// MaxEncodedSize bounds the base64 payload.
const MaxEncodedSize = 16 << 20

var (
	ErrEmptyImage      = errors.New("screenshot: empty image")
	ErrTooLarge        = errors.New("screenshot: image too large")
	ErrInvalidBase64   = errors.New("screenshot: invalid base64")
	ErrUnsupportedKind = errors.New("screenshot: unsupported image format")
)

// Screenshot is a decoded, PNG-normalized image.
type Screenshot struct {
	PNG    []byte
	Format string
	Width  int
	Height int
	// Hash is the perceptual dHash; visually identical captures share it.
	Hash string
}

// Decode parses a base64 image, optionally wrapped as a data URL. PNG, JPEG,
// GIF and WebP are accepted.
func Decode(encoded string) (*Screenshot, error) {
	encoded = strings.TrimSpace(encoded)
	if _, payload, ok := strings.Cut(encoded, ";base64,"); ok && strings.HasPrefix(encoded, "data:") {
		encoded = payload
	}
	if encoded == "" {
		return nil, ErrEmptyImage
	}
	if len(encoded) > MaxEncodedSize {
		return nil, ErrTooLarge
	}

	raw, err := decodeBase64(encoded)
	if err != nil {
		return nil, err
	}

	img, format, err := image.Decode(bytes.NewReader(raw))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrUnsupportedKind, err)
	}

	pngBytes := raw
	if format != "png" {
		var buf bytes.Buffer
		if err = png.Encode(&buf, img); err != nil {
			return nil, fmt.Errorf("encode png: %w", err)
		}
		pngBytes = buf.Bytes()
	}

	hash, err := goimagehash.DifferenceHash(img)
	if err != nil {
		return nil, fmt.Errorf("hash image: %w", err)
	}

	bounds := img.Bounds()
	return &Screenshot{
		PNG:    pngBytes,
		Format: format,
		Width:  bounds.Dx(),
		Height: bounds.Dy(),
		Hash:   hash.ToString(),
	}, nil
}

func decodeBase64(s string) ([]byte, error) {
	s = strings.Map(func(r rune) rune {
		if r == '\n' || r == '\r' || r == ' ' || r == '\t' {
			return -1
		}
		return r
	}, s)

	for _, enc := range []*base64.Encoding{base64.StdEncoding, base64.RawStdEncoding, base64.URLEncoding, base64.RawURLEncoding} {
		if b, err := enc.DecodeString(s); err == nil {
			if len(b) == 0 {
				return nil, ErrEmptyImage
			}
			return b, nil
		}
	}
	return nil, ErrInvalidBase64
}
