package commands

//go:generate mockgen -source=ticket.go -destination=../../../tests/mock/commands/ticket.go -package=commandsmock

import (
	"context"
	"log/slog"

	"qr-seat-reservation/internal/domain/setting"
	"qr-seat-reservation/internal/domain/ticket"
	"qr-seat-reservation/internal/infra"
	"qr-seat-reservation/internal/pkg/clock"
	"qr-seat-reservation/internal/pkg/errs"
	"qr-seat-reservation/internal/usecase/shared"
)

type GenerateResult struct {
	Requested int
	Codes     []string
}

type TicketCommands interface {
	// Generate stores count new tickets, each in its own transaction. On error
	// the result still lists the tickets stored before it.
	Generate(ctx context.Context, p GenerateParams) (*GenerateResult, error)
	// GenerateFromSettings uses the stored format, geometry and base image.
	// A non-positive count means the configured maximum.
	GenerateFromSettings(ctx context.Context, count int) (*GenerateResult, error)
	AllocateOne(ctx context.Context) (string, error)
	// RenderPreview renders code onto the stored base image without touching
	// the pool. An empty code previews the first code of the configured format.
	RenderPreview(ctx context.Context, geometry setting.RenderGeometry, code string) ([]byte, error)
}

type ticketCommandsImpl struct {
	uow      shared.UnitOfWork
	renderer shared.TicketRenderer
	source   ticket.Source
	clock    clock.Clock
}

// NewTicketCommands draws codes from source, or from math/rand when source is nil.
func NewTicketCommands(uow shared.UnitOfWork, renderer shared.TicketRenderer, source ticket.Source, clock clock.Clock) TicketCommands {
	if source == nil {
		source = ticket.DefaultSource()
	}
	return &ticketCommandsImpl{
		uow:      uow,
		renderer: renderer,
		source:   source,
		clock:    clock,
	}
}

func (c *ticketCommandsImpl) Generate(ctx context.Context, p GenerateParams) (*GenerateResult, error) {
	result := &GenerateResult{Requested: p.Count}

	if err := p.Geometry.Validate(); err != nil {
		return result, err
	}
	if len(p.BaseImage) == 0 {
		return result, errs.Detailf(errs.ErrValidation, "base image is required to generate tickets")
	}

	existing, err := c.countTickets(ctx)
	if err != nil {
		return result, err
	}
	batch, err := ticket.PlanBatch(p.Format, c.source, existing, p.Count)
	if err != nil {
		return result, err
	}

	for len(result.Codes) < p.Count {
		if err := ctx.Err(); err != nil {
			slog.Warn("ticket generation cancelled", "generated", len(result.Codes), "requested", p.Count)
			return result, errs.Wrapf(err, "ticket generation stopped after %d of %d", len(result.Codes), p.Count)
		}

		code, err := batch.Next(func(code string) (bool, error) {
			return c.codeTaken(ctx, code)
		})
		if err != nil {
			return result, err
		}

		image, err := c.renderer.Render(p.BaseImage, code, p.Geometry)
		if err != nil {
			return result, err
		}

		stored, err := c.store(ctx, code, image)
		if err != nil {
			return result, err
		}
		if !stored {
			// another generator took the code between the check and the insert
			continue
		}
		result.Codes = append(result.Codes, code)
	}

	slog.Info("tickets generated", "count", len(result.Codes), "prefix", p.Format.Prefix(), "digits", p.Format.Digits())
	return result, nil
}

func (c *ticketCommandsImpl) countTickets(ctx context.Context) (int, error) {
	total := 0
	err := c.uow.WithinReadOnly(ctx, func(ctx context.Context, tx shared.Tx) error {
		counts, err := tx.Tickets().CountByStatus(ctx)
		if err != nil {
			return shared.RepoErr(err, nil, "")
		}
		for _, n := range counts {
			total += n
		}
		return nil
	})
	return total, err
}

func (c *ticketCommandsImpl) codeTaken(ctx context.Context, code string) (bool, error) {
	var taken bool
	err := c.uow.WithinReadOnly(ctx, func(ctx context.Context, tx shared.Tx) error {
		var err error
		taken, err = tx.Tickets().ExistsByCode(ctx, code)
		return shared.RepoErr(err, nil, "")
	})
	return taken, err
}

// store reports false when the code collided with a ticket stored concurrently.
func (c *ticketCommandsImpl) store(ctx context.Context, code string, image []byte) (bool, error) {
	t, err := ticket.NewTicket(code, image, c.clock.Now())
	if err != nil {
		return false, err
	}
	err = c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		return tx.Tickets().Create(ctx, t)
	})
	if infra.IsKind(err, infra.KindDuplicateKey) {
		slog.Debug("ticket code collided on insert", "code", code)
		return false, nil
	}
	if err != nil {
		return false, shared.RepoErr(err, nil, "")
	}
	return true, nil
}

func (c *ticketCommandsImpl) GenerateFromSettings(ctx context.Context, count int) (*GenerateResult, error) {
	s, err := c.settings(ctx)
	if err != nil {
		return &GenerateResult{Requested: count}, err
	}
	if count <= 0 {
		count = s.MaxNoOfTickets()
	}
	return c.Generate(ctx, GenerateParams{
		Count:     count,
		Format:    s.CodeFormat(),
		Geometry:  s.Render(),
		BaseImage: s.BaseImage(),
	})
}

func (c *ticketCommandsImpl) settings(ctx context.Context) (*setting.Setting, error) {
	var s *setting.Setting
	err := c.uow.WithinReadOnly(ctx, func(ctx context.Context, tx shared.Tx) error {
		var err error
		s, err = tx.Settings().Get(ctx)
		return shared.RepoErr(err, errs.ErrSettingNotFound, "no settings record")
	})
	if err != nil {
		return nil, err
	}
	return s, nil
}

func (c *ticketCommandsImpl) AllocateOne(ctx context.Context) (string, error) {
	var code string
	err := c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		t, err := takeTicket(ctx, tx, c.clock.Now())
		if err != nil {
			return err
		}
		code = t.Code()
		return nil
	})
	if err != nil {
		return "", err
	}
	return code, nil
}

func (c *ticketCommandsImpl) RenderPreview(ctx context.Context, geometry setting.RenderGeometry, code string) ([]byte, error) {
	if err := geometry.Validate(); err != nil {
		return nil, err
	}
	s, err := c.settings(ctx)
	if err != nil {
		return nil, err
	}
	if code == "" {
		code = s.CodeFormat().Format(0)
	}
	return c.renderer.Render(s.BaseImage(), code, geometry)
}
