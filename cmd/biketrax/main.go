// Command biketrax is a small operator CLI for PowUnity BikeTrax accounts:
// it lists devices, follows live updates and toggles the alarm.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/vlebourl/custom-biketrax/pkg/client"
	"github.com/vlebourl/custom-biketrax/pkg/config"
	"github.com/vlebourl/custom-biketrax/pkg/logger"
)

var cfgFile string

var rootCmd = &cobra.Command{
	Use:           "biketrax",
	Short:         "PowUnity BikeTrax account client",
	SilenceUsage:  true,
	SilenceErrors: true,
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "/etc/biketrax/biketrax.json", "Path to config file")
}

// signalContext is the lifetime of one CLI invocation, ended by SIGINT or
// SIGTERM.
func signalContext() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
}

// setup loads the config, builds the logger and wires an account around the
// production API stack. The account cache starts empty; callers refresh it.
func setup(ctx context.Context) (*client.Account, *config.Config, logger.Logger, error) {
	var cfg config.Config

	if err := config.LoadFile(ctx, cfgFile, &cfg); err != nil {
		return nil, nil, nil, err
	}

	log, err := logger.New(cfg.Logging)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("failed to initialize logger: %w", err)
	}

	account := client.New(client.Config{
		Username:         cfg.Username,
		Password:         cfg.Password,
		IdentityEndpoint: cfg.IdentityEndpoint,
		DeviceEndpoint:   cfg.DeviceEndpoint,
		AdminEndpoint:    cfg.AdminEndpoint,
	}, log)

	return account, &cfg, log, nil
}
