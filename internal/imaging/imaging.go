// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package imaging normalizes uploaded branding assets. Logos and favicons
// are decoded, downscaled to a bounded width, and re-encoded as PNG so the
// stored asset is always a predictable format regardless of what the admin
// uploaded.
package imaging

import (
	"bytes"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	"image/png"

	"golang.org/x/image/draw"
	_ "golang.org/x/image/webp"
)

// Asset is a normalized image ready for upload.
type Asset struct {
	Data        []byte
	ContentType string // Always "image/png"
	Width       int
	Height      int
}

// Normalize decodes the image, scales it down to at most maxWidth pixels
// wide (never upscaling), and re-encodes it as PNG. The aspect ratio is
// preserved.
func Normalize(data []byte, maxWidth int) (*Asset, error) {
	src, format, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("imaging: decode failed: %w", err)
	}

	bounds := src.Bounds()
	width := bounds.Dx()
	height := bounds.Dy()
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("imaging: empty %s image", format)
	}

	if width > maxWidth {
		scaled := scale(src, maxWidth)
		src = scaled
		width = scaled.Bounds().Dx()
		height = scaled.Bounds().Dy()
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, src); err != nil {
		return nil, fmt.Errorf("imaging: encode failed: %w", err)
	}

	return &Asset{
		Data:        buf.Bytes(),
		ContentType: "image/png",
		Width:       width,
		Height:      height,
	}, nil
}

// scale resizes to the target width with Catmull-Rom resampling.
func scale(src image.Image, targetWidth int) *image.RGBA {
	bounds := src.Bounds()
	targetHeight := bounds.Dy() * targetWidth / bounds.Dx()
	if targetHeight < 1 {
		targetHeight = 1
	}
	dst := image.NewRGBA(image.Rect(0, 0, targetWidth, targetHeight))
	draw.CatmullRom.Scale(dst, dst.Bounds(), src, bounds, draw.Over, nil)
	return dst
}
