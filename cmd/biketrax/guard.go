package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/vlebourl/custom-biketrax/pkg/client"
)

var armCmd = &cobra.Command{
	Use:   "arm <name|id>",
	Short: "Arm the alarm of a device",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return setGuarded(args[0], true)
	},
}

var disarmCmd = &cobra.Command{
	Use:   "disarm <name|id>",
	Short: "Disarm the alarm of a device",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return setGuarded(args[0], false)
	},
}

func init() {
	rootCmd.AddCommand(armCmd)
	rootCmd.AddCommand(disarmCmd)
}

func setGuarded(arg string, guarded bool) error {
	ctx, cancel := signalContext()
	defer cancel()

	account, _, _, err := setup(ctx)
	if err != nil {
		return err
	}

	if err := account.UpdateDevices(ctx); err != nil {
		return fmt.Errorf("refresh failed: %w", err)
	}

	device, err := resolveDevice(account, arg)
	if err != nil {
		return err
	}

	if err := device.SetGuarded(ctx, guarded); err != nil {
		return err
	}

	if state, ok := device.IsGuarded(); ok && state {
		fmt.Printf("Device %d is guarded\n", device.ID())
	} else {
		fmt.Printf("Device %d is not guarded\n", device.ID())
	}

	return nil
}

// resolveDevice accepts either a numeric device id or a device name.
func resolveDevice(account *client.Account, arg string) (*client.Device, error) {
	if id, err := strconv.Atoi(arg); err == nil {
		return account.Device(id), nil
	}

	device, ok := account.DeviceByName(arg)
	if !ok {
		return nil, fmt.Errorf("no device named %q", arg)
	}

	return device, nil
}
