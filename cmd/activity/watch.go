// cmd/activity/watch.go
package main

import (
	"fmt"
	"os/signal"
	"syscall"

	"github.com/jonboulle/clockwork"
	"github.com/spf13/cobra"

	"github.com/tamzrod/activity-status/internal/poller"
	"github.com/tamzrod/activity-status/internal/status"
	"github.com/tamzrod/activity-status/internal/writer"
)

func newWatchCmd(flags *rootFlags) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Poll the status proxy and render the presence card.",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(flags.configPath)
			if err != nil {
				return err
			}
			log := newLogger(flags.verbose || cfg.Log.Verbose)

			// ---- poller ----
			p, err := poller.Build(cfg.Poller, log)
			if err != nil {
				return fmt.Errorf("poller build failed: %w", err)
			}

			// ---- writer ----
			format := writer.FormatCard
			if asJSON {
				format = writer.FormatJSON
			}
			w, err := writer.New(cmd.OutOrStdout(), format, clockwork.NewRealClock())
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			// Tracker is owned here; the poller only produces results.
			tracker := status.NewTracker()
			if err := w.Write(tracker.Current()); err != nil {
				log.Error("write failed", "error", err)
			}

			log.Info("polling status proxy", "endpoint", cfg.Poller.Endpoint, "interval_ms", cfg.Poller.IntervalMs)
			inst := poller.Mount(ctx, p, func(res poller.PollResult) {
				snap, applied := tracker.Apply(res)
				if !applied {
					log.Debug("stale poll result dropped", "seq", res.Seq)
					return
				}
				if snap.State == status.StateError {
					log.Debug("status unavailable, card hidden", "seq", snap.Seq, "error", snap.LastErr)
				}
				if err := w.Write(snap); err != nil {
					log.Error("write failed", "seq", snap.Seq, "error", err)
				}
			})

			<-ctx.Done()
			inst.Unmount()
			tracker.Stop()
			log.Info("stopped polling")
			return nil
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "print one JSON line per state change instead of the card")
	return cmd
}
