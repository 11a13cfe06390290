package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
)

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Follow live device updates until interrupted",
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx, cancel := signalContext()
		defer cancel()

		account, cfg, log, err := setup(ctx)
		if err != nil {
			return err
		}

		if err := account.Refresh(ctx); err != nil {
			return fmt.Errorf("initial refresh failed: %w", err)
		}

		printDevices(account.Devices())

		updates := make(chan struct{}, 1)

		account.Start(func() {
			select {
			case updates <- struct{}{}:
			default:
			}
		})
		defer account.Stop()

		// The stream pushes positions and trips; the periodic pull picks up
		// everything the stream does not carry, like subscriptions.
		ticker := time.NewTicker(time.Duration(cfg.RefreshInterval))
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				return nil
			case <-ticker.C:
				if err := account.Refresh(ctx); err != nil && ctx.Err() == nil {
					log.Warn().Err(err).Msg("Periodic refresh failed")
				}
			case <-updates:
				printDevices(account.Devices())
			}
		}
	},
}

func init() {
	rootCmd.AddCommand(watchCmd)
}
