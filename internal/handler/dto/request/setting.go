package request

import (
	"encoding/base64"

	"qr-seat-reservation/internal/pkg/errs"
	"qr-seat-reservation/internal/usecase/commands"

	"github.com/jinzhu/copier"
)

// UpdateSettingRequest is a partial update; omitted fields keep their value.
type UpdateSettingRequest struct {
	EventName      *string `json:"event_name,omitempty" binding:"omitempty,max=120"`
	Venue          *string `json:"venue,omitempty" binding:"omitempty,max=200"`
	TableSize      *int    `json:"table_size,omitempty" binding:"omitempty,min=1"`
	SeatSize       *int    `json:"seat_size,omitempty" binding:"omitempty,min=1"`
	NoOfColumns    *int    `json:"no_of_columns,omitempty" binding:"omitempty,min=1"`
	FontSize       *int    `json:"font_size,omitempty" binding:"omitempty,min=1"`
	QRX            *int    `json:"qr_x,omitempty" binding:"omitempty,min=0"`
	QRY            *int    `json:"qr_y,omitempty" binding:"omitempty,min=0"`
	TextX          *int    `json:"text_x,omitempty" binding:"omitempty,min=0"`
	TextY          *int    `json:"text_y,omitempty" binding:"omitempty,min=0"`
	TicketPrefix   *string `json:"ticket_prefix,omitempty" binding:"omitempty,max=16"`
	NoOfDigits     *int    `json:"no_of_digits,omitempty" binding:"omitempty,min=1,max=18"`
	MaxNoOfTickets *int    `json:"max_no_of_tickets,omitempty" binding:"omitempty,min=1"`
	// BaseImage is the standard base64 encoding of a PNG or JPEG.
	BaseImage string `json:"base_image,omitempty" copier:"-"`
}

func (r UpdateSettingRequest) ToPatch() (commands.SettingPatch, error) {
	var patch commands.SettingPatch
	if err := copier.Copy(&patch, &r); err != nil {
		return commands.SettingPatch{}, errs.Wrap(err, "failed to copy settings request")
	}
	if r.BaseImage != "" {
		img, err := base64.StdEncoding.DecodeString(r.BaseImage)
		if err != nil {
			return commands.SettingPatch{}, errs.Detailf(errs.ErrValidation, "base_image is not valid base64: %v", err)
		}
		patch.BaseImage = img
	}
	return patch, nil
}
