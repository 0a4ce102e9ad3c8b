package setting

import (
	"strings"
	"time"

	"qr-seat-reservation/internal/domain/ticket"
	"qr-seat-reservation/internal/pkg/errs"
)

// SingletonID is the only row id the settings table accepts.
const SingletonID = 1

const (
	MaxEventNameRunes = 120
	MaxVenueRunes     = 200
	MaxNoOfTickets    = 100000
)

// Layout is stored for the seating canvas and returned as-is.
type Layout struct {
	TableSize   int
	SeatSize    int
	NoOfColumns int
}

// RenderGeometry positions the QR symbol and the code plate on the base image.
type RenderGeometry struct {
	FontSize int
	QRX      int
	QRY      int
	TextX    int
	TextY    int
}

func (g RenderGeometry) Validate() error {
	if g.FontSize <= 0 {
		return errs.Detailf(errs.ErrValidation, "font size must be positive, got %d", g.FontSize)
	}
	if g.QRX < 0 || g.QRY < 0 || g.TextX < 0 || g.TextY < 0 {
		return errs.Detailf(errs.ErrValidation, "render coordinates must be non-negative (qr=%d,%d text=%d,%d)", g.QRX, g.QRY, g.TextX, g.TextY)
	}
	return nil
}

// Params is the flat, editable view of a Setting.
type Params struct {
	EventName      string
	Venue          string
	TableSize      int
	SeatSize       int
	NoOfColumns    int
	FontSize       int
	QRX            int
	QRY            int
	TextX          int
	TextY          int
	TicketPrefix   string
	NoOfDigits     int
	MaxNoOfTickets int
	BaseImage      []byte
}

type Setting struct {
	eventName      string
	venue          string
	layout         Layout
	render         RenderGeometry
	codeFormat     ticket.CodeFormat
	maxNoOfTickets int
	baseImage      []byte
	createdAt      time.Time
	updatedAt      time.Time
}

func NewSetting(p Params, now time.Time) (*Setting, error) {
	s := &Setting{createdAt: now}
	if err := s.apply(p, now); err != nil {
		return nil, err
	}
	return s, nil
}

func ReconstructSetting(
	eventName, venue string,
	layout Layout,
	render RenderGeometry,
	codeFormat ticket.CodeFormat,
	maxNoOfTickets int,
	baseImage []byte,
	createdAt, updatedAt time.Time,
) *Setting {
	return &Setting{
		eventName:      eventName,
		venue:          venue,
		layout:         layout,
		render:         render,
		codeFormat:     codeFormat,
		maxNoOfTickets: maxNoOfTickets,
		baseImage:      baseImage,
		createdAt:      createdAt,
		updatedAt:      updatedAt,
	}
}

// Update validates p as a whole and only then replaces the stored values.
func (s *Setting) Update(p Params, now time.Time) error {
	return s.apply(p, now)
}

func (s *Setting) apply(p Params, now time.Time) error {
	eventName := strings.TrimSpace(p.EventName)
	if eventName == "" {
		return errs.Detailf(errs.ErrValidation, "event name is required")
	}
	if len([]rune(eventName)) > MaxEventNameRunes {
		return errs.Detailf(errs.ErrValidation, "event name exceeds %d characters", MaxEventNameRunes)
	}
	venue := strings.TrimSpace(p.Venue)
	if len([]rune(venue)) > MaxVenueRunes {
		return errs.Detailf(errs.ErrValidation, "venue exceeds %d characters", MaxVenueRunes)
	}

	layout := Layout{TableSize: p.TableSize, SeatSize: p.SeatSize, NoOfColumns: p.NoOfColumns}
	if layout.TableSize <= 0 || layout.SeatSize <= 0 || layout.NoOfColumns <= 0 {
		return errs.Detailf(errs.ErrValidation, "layout values must be positive (table=%d seat=%d columns=%d)",
			layout.TableSize, layout.SeatSize, layout.NoOfColumns)
	}

	render := RenderGeometry{FontSize: p.FontSize, QRX: p.QRX, QRY: p.QRY, TextX: p.TextX, TextY: p.TextY}
	if err := render.Validate(); err != nil {
		return err
	}

	format, err := ticket.NewCodeFormat(p.TicketPrefix, p.NoOfDigits)
	if err != nil {
		return err
	}
	if p.MaxNoOfTickets <= 0 || p.MaxNoOfTickets > MaxNoOfTickets {
		return errs.Detailf(errs.ErrValidation, "max number of tickets %d is outside 1..%d", p.MaxNoOfTickets, MaxNoOfTickets)
	}
	if int64(p.MaxNoOfTickets) > format.Space() {
		return errs.Detailf(errs.ErrCapacity, "%d tickets do not fit %d digits", p.MaxNoOfTickets, format.Digits())
	}

	baseImage := p.BaseImage
	if len(baseImage) == 0 {
		baseImage = s.baseImage
	}
	if len(baseImage) == 0 {
		return errs.Detailf(errs.ErrValidation, "base image is required")
	}

	s.eventName = eventName
	s.venue = venue
	s.layout = layout
	s.render = render
	s.codeFormat = format
	s.maxNoOfTickets = p.MaxNoOfTickets
	s.baseImage = baseImage
	s.updatedAt = now
	return nil
}

func (s *Setting) EventName() string             { return s.eventName }
func (s *Setting) Venue() string                 { return s.venue }
func (s *Setting) Layout() Layout                { return s.layout }
func (s *Setting) Render() RenderGeometry        { return s.render }
func (s *Setting) CodeFormat() ticket.CodeFormat { return s.codeFormat }
func (s *Setting) MaxNoOfTickets() int           { return s.maxNoOfTickets }
func (s *Setting) BaseImage() []byte             { return s.baseImage }
func (s *Setting) CreatedAt() time.Time          { return s.createdAt }
func (s *Setting) UpdatedAt() time.Time          { return s.updatedAt }

// Params returns the current values, ready to be patched and passed to Update.
func (s *Setting) Params() Params {
	return Params{
		EventName:      s.eventName,
		Venue:          s.venue,
		TableSize:      s.layout.TableSize,
		SeatSize:       s.layout.SeatSize,
		NoOfColumns:    s.layout.NoOfColumns,
		FontSize:       s.render.FontSize,
		QRX:            s.render.QRX,
		QRY:            s.render.QRY,
		TextX:          s.render.TextX,
		TextY:          s.render.TextY,
		TicketPrefix:   s.codeFormat.Prefix(),
		NoOfDigits:     s.codeFormat.Digits(),
		MaxNoOfTickets: s.maxNoOfTickets,
		BaseImage:      s.baseImage,
	}
}
