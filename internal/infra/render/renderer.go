// Package render composes ticket images: a QR symbol of the ticket code and
// the code itself on a label plate, both drawn over the event's base image.
package render

import (
	"bytes"
	"image"
	"image/color"
	"image/draw"
	_ "image/jpeg" // base images are often JPEG
	"image/png"

	"qr-seat-reservation/internal/domain/setting"
	"qr-seat-reservation/internal/pkg/errs"

	"github.com/skip2/go-qrcode"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"
)

const (
	qrScale  = 13 // pixels per module
	qrBorder = 1  // quiet zone in modules

	// Text wider or taller than the plate is clipped.
	PlateWidth  = 300
	PlateHeight = 50
)

type QRTicketRenderer struct {
	font *opentype.Font
}

func NewQRTicketRenderer() (*QRTicketRenderer, error) {
	f, err := opentype.Parse(goregular.TTF)
	if err != nil {
		return nil, errs.Wrap(err, "failed to parse label font")
	}
	return &QRTicketRenderer{font: f}, nil
}

// Render never modifies baseImage; every call decodes its own copy.
func (r *QRTicketRenderer) Render(baseImage []byte, code string, geometry setting.RenderGeometry) ([]byte, error) {
	if geometry.FontSize <= 0 {
		return nil, errs.Detailf(errs.ErrRender, "font size must be positive, got %d", geometry.FontSize)
	}
	if code == "" {
		return nil, errs.Detailf(errs.ErrRender, "ticket code is empty")
	}

	base, _, err := image.Decode(bytes.NewReader(baseImage))
	if err != nil {
		return nil, errs.Detailf(errs.ErrRender, "base image for ticket %s cannot be decoded: %v", code, err)
	}

	canvas := image.NewRGBA(base.Bounds())
	draw.Draw(canvas, canvas.Bounds(), base, base.Bounds().Min, draw.Src)
	origin := canvas.Bounds().Min

	if err := drawQR(canvas, code, origin.Add(image.Pt(geometry.QRX, geometry.QRY))); err != nil {
		return nil, err
	}

	plate, err := r.plate(code, geometry.FontSize)
	if err != nil {
		return nil, err
	}
	at := origin.Add(image.Pt(geometry.TextX, geometry.TextY))
	draw.Draw(canvas, plate.Bounds().Add(at), plate, image.Point{}, draw.Src)

	var buf bytes.Buffer
	if err := png.Encode(&buf, canvas); err != nil {
		return nil, errs.Detailf(errs.ErrRender, "ticket %s cannot be encoded: %v", code, err)
	}
	return buf.Bytes(), nil
}

// drawQR paints a white quiet zone and black modules; draw.Draw clips
// anything outside the canvas.
func drawQR(dst draw.Image, code string, at image.Point) error {
	qr, err := qrcode.New(code, qrcode.Medium)
	if err != nil {
		return errs.Detailf(errs.ErrRender, "ticket %s cannot be encoded as QR: %v", code, err)
	}
	qr.DisableBorder = true
	modules := qr.Bitmap()

	side := (len(modules) + 2*qrBorder) * qrScale
	draw.Draw(dst, image.Rect(0, 0, side, side).Add(at), image.White, image.Point{}, draw.Src)

	for y, row := range modules {
		for x, dark := range row {
			if !dark {
				continue
			}
			px := at.Add(image.Pt((x+qrBorder)*qrScale, (y+qrBorder)*qrScale))
			draw.Draw(dst, image.Rect(0, 0, qrScale, qrScale).Add(px), image.Black, image.Point{}, draw.Src)
		}
	}
	return nil
}

// plate renders code in white on a black PlateWidth x PlateHeight rectangle,
// starting a quarter of the way in with the baseline at the font ascent.
func (r *QRTicketRenderer) plate(code string, fontSize int) (*image.RGBA, error) {
	face, err := opentype.NewFace(r.font, &opentype.FaceOptions{
		Size:    float64(fontSize),
		DPI:     72,
		Hinting: font.HintingFull,
	})
	if err != nil {
		return nil, errs.Detailf(errs.ErrRender, "font size %d is not usable: %v", fontSize, err)
	}
	defer face.Close()

	plate := image.NewRGBA(image.Rect(0, 0, PlateWidth, PlateHeight))
	draw.Draw(plate, plate.Bounds(), image.NewUniform(color.Black), image.Point{}, draw.Src)

	d := font.Drawer{
		Dst:  plate,
		Src:  image.NewUniform(color.White),
		Face: face,
		Dot:  fixed.P(PlateWidth/4, face.Metrics().Ascent.Ceil()),
	}
	d.DrawString(code)
	return plate, nil
}
