// Command ticketgen pre-generates tickets into the configured store using the
// stored settings, optionally writing each PNG to a directory.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"qr-seat-reservation/cmd/bootstrap"
	"qr-seat-reservation/internal/pkg/config"
	"qr-seat-reservation/internal/usecase/commands"
	"qr-seat-reservation/internal/usecase/queries"

	"github.com/spf13/pflag"
	"go.uber.org/fx"
)

type options struct {
	count int
	out   string
}

func parseFlags(args []string) (options, error) {
	var opts options
	fs := pflag.NewFlagSet("ticketgen", pflag.ContinueOnError)
	fs.IntVarP(&opts.count, "count", "n", 0, "number of tickets to generate")
	fs.StringVarP(&opts.out, "out", "o", "", "directory to write ticket images to")
	if err := fs.Parse(args); err != nil {
		return options{}, err
	}
	if opts.count <= 0 {
		return options{}, fmt.Errorf("--count must be positive, got %d", opts.count)
	}
	return opts, nil
}

func main() {
	opts, err := parseFlags(os.Args[1:])
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, opts); err != nil {
		slog.Error("ticket generation failed", "error", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, opts options) error {
	var (
		cfg     config.Config
		ticketC commands.TicketCommands
		ticketQ queries.TicketQueries
	)
	app := fx.New(
		bootstrap.CoreModule,
		fx.NopLogger,
		fx.Populate(&cfg, &ticketC, &ticketQ),
	)
	if err := app.Start(ctx); err != nil {
		return err
	}
	defer func() {
		if err := app.Stop(context.Background()); err != nil {
			slog.Warn("shutdown failed", "error", err)
		}
	}()

	if cfg.Store.Driver == config.StoreDriverMemory {
		slog.Warn("STORE_DRIVER=memory: generated tickets are discarded on exit")
	}

	res, err := ticketC.GenerateFromSettings(ctx, opts.count)
	if res != nil {
		slog.Info("tickets generated", "requested", res.Requested, "generated", len(res.Codes))
	}
	if err != nil {
		return err
	}

	if opts.out == "" {
		return nil
	}
	if err := os.MkdirAll(opts.out, 0o755); err != nil {
		return err
	}
	for _, code := range res.Codes {
		img, err := ticketQ.Image(ctx, code)
		if err != nil {
			return err
		}
		if err := os.WriteFile(filepath.Join(opts.out, code+".png"), img, 0o644); err != nil {
			return err
		}
	}
	slog.Info("ticket images written", "dir", opts.out, "files", len(res.Codes))
	return nil
}
