// Package imaging normalises uploaded item photos: only JPEG and PNG are
// accepted, large pictures are downscaled and everything is stored as JPEG.
package imaging

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/jpeg"
	_ "image/png" // register the PNG decoder
	"net/http"

	"golang.org/x/image/draw"
)

const (
	// MaxDimension bounds the width and height of a stored photo.
	MaxDimension = 1024
	jpegQuality  = 85
)

// ErrUnsupportedFormat is returned for anything that does not sniff as JPEG or PNG.
var ErrUnsupportedFormat = errors.New("photo must be a JPEG or PNG image")

// ErrCorrupt is returned when the bytes sniff as an image but do not decode.
var ErrCorrupt = errors.New("photo could not be decoded")

// Photo is a normalised image ready to be stored.
type Photo struct {
	Data          []byte
	Width, Height int
}

// ContentType is always JPEG after normalisation.
func (p *Photo) ContentType() string { return "image/jpeg" }

// Normalize sniffs the bytes rather than trusting client headers, decodes,
// downscales to MaxDimension and re-encodes as JPEG.
func Normalize(data []byte) (*Photo, error) {
	switch http.DetectContentType(data) {
	case "image/jpeg", "image/png":
	default:
		return nil, ErrUnsupportedFormat
	}

	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCorrupt, err)
	}
	img = fit(img, MaxDimension)

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: jpegQuality}); err != nil {
		return nil, fmt.Errorf("encode photo: %w", err)
	}

	b := img.Bounds()
	return &Photo{Data: buf.Bytes(), Width: b.Dx(), Height: b.Dy()}, nil
}

// fit scales img down so its longer side is at most limit, keeping the aspect ratio.
func fit(img image.Image, limit int) image.Image {
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	if w <= limit && h <= limit {
		return img
	}

	nw, nh := limit, limit
	if w > h {
		nh = h * limit / w
	} else {
		nw = w * limit / h
	}
	nw, nh = atLeastOne(nw), atLeastOne(nh)

	dst := image.NewRGBA(image.Rect(0, 0, nw, nh))
	draw.CatmullRom.Scale(dst, dst.Bounds(), img, b, draw.Over, nil)
	return dst
}

func atLeastOne(n int) int {
	if n < 1 {
		return 1
	}
	return n
}
