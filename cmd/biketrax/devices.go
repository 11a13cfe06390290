package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/vlebourl/custom-biketrax/pkg/client"
)

var devicesCmd = &cobra.Command{
	Use:   "devices",
	Short: "List the devices on the account",
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx, cancel := signalContext()
		defer cancel()

		account, _, _, err := setup(ctx)
		if err != nil {
			return err
		}

		if err := account.Refresh(ctx); err != nil {
			return fmt.Errorf("refresh failed: %w", err)
		}

		printDevices(account.Devices())

		return nil
	},
}

func init() {
	rootCmd.AddCommand(devicesCmd)
}

func printDevices(devices []*client.Device) {
	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tNAME\tSTATUS\tGUARDED\tBATTERY\tDISTANCE\tPOSITION")

	for _, device := range devices {
		name, _ := device.Name()
		status, _ := device.Status()

		fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\t%s\t%s\n",
			device.ID(),
			name,
			status,
			formatBool(device.IsGuarded()),
			formatBattery(device.BatteryLevel()),
			formatDistance(device.TotalDistance()),
			formatCoordinates(device),
		)
	}

	w.Flush()
}

func formatBool(v, ok bool) string {
	if !ok {
		return "-"
	}

	if v {
		return "yes"
	}

	return "no"
}

func formatBattery(level int, ok bool) string {
	if !ok {
		return "-"
	}

	return fmt.Sprintf("%d%%", level)
}

func formatDistance(km float64, ok bool) string {
	if !ok {
		return "-"
	}

	return fmt.Sprintf("%.1fkm", km)
}

func formatCoordinates(device *client.Device) string {
	lat, ok := device.Latitude()
	if !ok {
		return "-"
	}

	lon, _ := device.Longitude()

	return fmt.Sprintf("%.5f,%.5f", lat, lon)
}
