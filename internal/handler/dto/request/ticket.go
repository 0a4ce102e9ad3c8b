package request

import "qr-seat-reservation/internal/domain/setting"

// GenerateTicketsRequest with a zero count generates the configured maximum.
type GenerateTicketsRequest struct {
	Count int `json:"count" binding:"min=0,max=100000"`
}

type PreviewTicketRequest struct {
	Code     string `json:"code" binding:"max=64"`
	FontSize int    `json:"font_size" binding:"required,min=1,max=500"`
	QRX      int    `json:"qr_x" binding:"min=0"`
	QRY      int    `json:"qr_y" binding:"min=0"`
	TextX    int    `json:"text_x" binding:"min=0"`
	TextY    int    `json:"text_y" binding:"min=0"`
}

func (r PreviewTicketRequest) Geometry() setting.RenderGeometry {
	return setting.RenderGeometry{
		FontSize: r.FontSize,
		QRX:      r.QRX,
		QRY:      r.QRY,
		TextX:    r.TextX,
		TextY:    r.TextY,
	}
}
