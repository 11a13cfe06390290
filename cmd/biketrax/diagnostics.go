package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var diagnosticsCmd = &cobra.Command{
	Use:   "diagnostics",
	Short: "Dump a redacted snapshot of all account data",
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx, cancel := signalContext()
		defer cancel()

		account, _, log, err := setup(ctx)
		if err != nil {
			return err
		}

		// Partial data is still worth dumping, so refresh failures only warn.
		if err := account.Refresh(ctx); err != nil {
			log.Warn().Err(err).Msg("Refresh failed, dumping partial data")
		}

		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")

		if err := enc.Encode(account.Diagnostics()); err != nil {
			return fmt.Errorf("failed to encode diagnostics: %w", err)
		}

		return nil
	},
}

func init() {
	rootCmd.AddCommand(diagnosticsCmd)
}
