package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"time"

	corecfg "github.com/aevon-lab/hybrid-events/internal/core/config"
	"github.com/aevon-lab/hybrid-events/internal/producer"
	"github.com/spf13/cobra"
)

var produceCmd = &cobra.Command{
	Use:   "produce [count] [throttleSeconds]",
	Short: "Insert synthetic events from the shared sequence counter",
	Long: `Insert synthetic events numbered by the shared sequence counter.

count defaults to producer.count; -1 runs until interrupted.
throttleSeconds is the pause between events and defaults to producer.throttle.`,
	Args: cobra.MaximumNArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		count, throttle, err := parseProduceArgs(args, cfg.Producer)
		if err != nil {
			return err
		}
		return runProduce(cmd.Context(), cfg, count, throttle)
	},
}

// parseProduceArgs applies positional overrides on top of the config.
func parseProduceArgs(args []string, pc corecfg.ProducerConfig) (int, time.Duration, error) {
	count := pc.Count
	throttle := pc.ThrottleDuration()

	if len(args) > 0 {
		n, err := strconv.Atoi(args[0])
		if err != nil || n < -1 {
			return 0, 0, fmt.Errorf("invalid count %q (must be an integer >= -1)", args[0])
		}
		count = n
	}
	if len(args) > 1 {
		secs, err := strconv.ParseFloat(args[1], 64)
		if err != nil || secs < 0 {
			return 0, 0, fmt.Errorf("invalid throttleSeconds %q (must be a number >= 0)", args[1])
		}
		if throttle, err = corecfg.ParseThrottle(args[1]); err != nil {
			return 0, 0, fmt.Errorf("invalid throttleSeconds %q: %w", args[1], err)
		}
	}
	return count, throttle, nil
}

func runProduce(ctx context.Context, cfg *corecfg.Config, count int, throttle time.Duration) error {
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

	p, err := producer.New(b.sequencer, b.events, producer.Options{
		Source:    cfg.Producer.Source,
		Publisher: publisher,
		Subject:   cfg.Bus.Subject,
	})
	if err != nil {
		return err
	}

	inserted, err := p.Run(ctx, count, throttle)
	if errors.Is(err, context.Canceled) {
		slog.Info("Producer interrupted", "producer_id", p.ID(), "inserted", inserted)
		return nil
	}
	return err
}
