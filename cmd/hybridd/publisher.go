package main

import (
	"log/slog"

	"github.com/aevon-lab/hybrid-events/internal/bus"
	corecfg "github.com/aevon-lab/hybrid-events/internal/core/config"
)

// openPublisher connects to NATS when configured and falls back to a no-op publisher.
func openPublisher(bc corecfg.BusConfig) (bus.Publisher, error) {
	if bc.NATSURL == "" {
		slog.Info("Announcements disabled (bus.nats_url not set)")
		return &bus.NoopPublisher{}, nil
	}
	pub, err := bus.NewNATSPublisher(bc.NATSURL)
	if err != nil {
		return nil, err
	}
	slog.Info("Announcements enabled", "nats_url", bc.NATSURL, "subject", bc.Subject)
	return pub, nil
}
