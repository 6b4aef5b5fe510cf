package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/monset/monset/internal/monitor"
	"github.com/monset/monset/internal/x11"
)

var monitorsCmd = &cobra.Command{
	Use:   "monitors",
	Short: "Print connected monitors and their ids",
	Long: `Run one discovery pass and print every connected monitor with its
stable EDID-derived id. The hex id is what setup files reference, so a
monitor keeps it no matter which connector it is plugged into.`,
	RunE: runMonitors,
}

func init() {
	rootCmd.AddCommand(monitorsCmd)
}

func runMonitors(cmd *cobra.Command, args []string) error {
	conn, err := x11.Connect()
	if err != nil {
		return err
	}
	defer conn.Close()

	monitors, err := monitor.Discover(conn)
	if err != nil {
		return err
	}

	if len(monitors) == 0 {
		fmt.Println("No connected monitors")
		return nil
	}

	fmt.Println("Connected monitors:")
	for _, m := range monitors {
		fmt.Printf("  %s (%x) %dx%d\n", m.Name, m.ID, m.Width, m.Height)
	}
	return nil
}
