package repository

import (
	"context"
	"time"

	"qr-seat-reservation/internal/domain/setting"
	"qr-seat-reservation/internal/domain/ticket"
	"qr-seat-reservation/internal/infra"
)

type SettingRepository struct {
	db DBTX
}

func NewSettingRepository(db DBTX) *SettingRepository {
	return &SettingRepository{db: db}
}

func (r *SettingRepository) Get(ctx context.Context) (*setting.Setting, error) {
	var (
		eventName, venue, prefix string
		layout                   setting.Layout
		render                   setting.RenderGeometry
		digits, maxTickets       int
		baseImage                []byte
		createdAt, updatedAt     time.Time
	)
	err := r.db.QueryRow(ctx, `
		SELECT event_name, venue, table_size, seat_size, no_of_columns,
		       font_size, qr_x, qr_y, text_x, text_y,
		       ticket_prefix, no_of_digits, max_no_of_tickets, base_image, created_at, updated_at
		FROM settings WHERE id = $1`, setting.SingletonID).
		Scan(&eventName, &venue, &layout.TableSize, &layout.SeatSize, &layout.NoOfColumns,
			&render.FontSize, &render.QRX, &render.QRY, &render.TextX, &render.TextY,
			&prefix, &digits, &maxTickets, &baseImage, &createdAt, &updatedAt)
	if err != nil {
		return nil, wrapErr("setting not found", err)
	}

	format, err := ticket.NewCodeFormat(prefix, digits)
	if err != nil {
		return nil, infra.WrapRepoErr("stored ticket code format is invalid", err)
	}
	return setting.ReconstructSetting(eventName, venue, layout, render, format, maxTickets, baseImage, createdAt, updatedAt), nil
}

func (r *SettingRepository) Save(ctx context.Context, s *setting.Setting) error {
	layout, render, format := s.Layout(), s.Render(), s.CodeFormat()
	_, err := r.db.Exec(ctx, `
		INSERT INTO settings (id, event_name, venue, table_size, seat_size, no_of_columns,
		                      font_size, qr_x, qr_y, text_x, text_y,
		                      ticket_prefix, no_of_digits, max_no_of_tickets, base_image, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17)
		ON CONFLICT (id) DO UPDATE SET
			event_name = EXCLUDED.event_name,
			venue = EXCLUDED.venue,
			table_size = EXCLUDED.table_size,
			seat_size = EXCLUDED.seat_size,
			no_of_columns = EXCLUDED.no_of_columns,
			font_size = EXCLUDED.font_size,
			qr_x = EXCLUDED.qr_x,
			qr_y = EXCLUDED.qr_y,
			text_x = EXCLUDED.text_x,
			text_y = EXCLUDED.text_y,
			ticket_prefix = EXCLUDED.ticket_prefix,
			no_of_digits = EXCLUDED.no_of_digits,
			max_no_of_tickets = EXCLUDED.max_no_of_tickets,
			base_image = EXCLUDED.base_image,
			updated_at = EXCLUDED.updated_at`,
		setting.SingletonID, s.EventName(), s.Venue(), layout.TableSize, layout.SeatSize, layout.NoOfColumns,
		render.FontSize, render.QRX, render.QRY, render.TextX, render.TextY,
		format.Prefix(), format.Digits(), s.MaxNoOfTickets(), s.BaseImage(), s.CreatedAt(), s.UpdatedAt())
	if err != nil {
		return wrapErr("failed to save setting", err)
	}
	return nil
}
