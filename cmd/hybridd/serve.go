package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/aevon-lab/hybrid-events/internal/bus"
	corecfg "github.com/aevon-lab/hybrid-events/internal/core/config"
	"github.com/aevon-lab/hybrid-events/internal/importer"
	"github.com/aevon-lab/hybrid-events/internal/ingestion"
	"github.com/aevon-lab/hybrid-events/internal/producer"
	"github.com/aevon-lab/hybrid-events/internal/server"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

var withProducer bool

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the REST API",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runServe(cmd.Context(), cfg, withProducer)
	},
}

func init() {
	serveCmd.Flags().BoolVar(&withProducer, "with-producer", false, "also run the synthetic producer in this process")
}

func runServe(ctx context.Context, cfg *corecfg.Config, withProducer bool) error {
	b, err := openBackend(ctx, cfg)
	if err != nil {
		return err
	}
	defer b.Close()

	publisher, err := openPublisher(cfg.Bus)
	if err != nil {
		return err
	}
	defer publisher.Close()

	srv, p, err := buildServeUnits(cfg, b, publisher, withProducer)
	if err != nil {
		return err
	}

	g, gctx := errgroup.WithContext(ctx)

	// HTTP server blocks until ctx is cancelled.
	g.Go(func() error {
		return srv.Run(gctx)
	})

	if p != nil {
		g.Go(func() error {
			_, err := p.Run(gctx, cfg.Producer.Count, cfg.Producer.ThrottleDuration())
			if errors.Is(err, context.Canceled) {
				return nil
			}
			return err
		})
	}

	if err := g.Wait(); err != nil {
		slog.Error("Server stopped with error", "error", err)
		return err
	}
	return nil
}

// buildServeUnits constructs the server and, if requested, the producer.
// Nothing is started, so a construction error leaves no goroutine behind.
func buildServeUnits(cfg *corecfg.Config, b *backend, publisher bus.Publisher, withProducer bool) (*server.Server, *producer.Producer, error) {
	var p *producer.Producer
	if withProducer {
		var err error
		p, err = producer.New(b.sequencer, b.events, producer.Options{
			Source:    cfg.Producer.Source,
			Publisher: publisher,
			Subject:   cfg.Bus.Subject,
		})
		if err != nil {
			return nil, nil, fmt.Errorf("failed to create producer: %w", err)
		}
	}

	loader := importer.New(importer.Options{
		S3Region:   cfg.Importer.S3Region,
		S3Endpoint: cfg.Importer.S3Endpoint,
	})
	ingestionSvc := ingestion.NewService(b.events, loader, publisher, ingestion.Options{
		MaxBodySizeMB: cfg.Server.MaxBodySizeMB,
		Debug:         cfg.Server.Mode == "debug",
		Subject:       cfg.Bus.Subject,
	})

	srv := server.New(cfg.Server.Addr(), b.events, cfg.Server.Mode)
	ingestionSvc.RegisterRoutes(srv.Engine)
	return srv, p, nil
}
