package render

import (
	"bytes"
	"image"
	"image/color"
	"image/draw"
	"image/png"

	"qr-seat-reservation/internal/pkg/errs"
)

// BlankCanvas returns a white PNG of the given size, used as the base image
// until an operator uploads one.
func BlankCanvas(width, height int) ([]byte, error) {
	if width <= 0 || height <= 0 {
		return nil, errs.Detailf(errs.ErrRender, "canvas size %dx%d is not positive", width, height)
	}
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	draw.Draw(img, img.Bounds(), image.NewUniform(color.White), image.Point{}, draw.Src)

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, errs.Wrap(err, "failed to encode blank canvas")
	}
	return buf.Bytes(), nil
}
