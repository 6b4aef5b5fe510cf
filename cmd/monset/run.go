package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/monset/monset/internal/daemon"
	"github.com/monset/monset/internal/setup"
	"github.com/monset/monset/internal/x11"
)

var runOpts struct {
	detach bool
}

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Poll for monitor changes and keep the layout applied",
	Long: `Connect to the X server and reconcile the connected monitors
against the setup library on a fixed interval, forever. With --detach the
process re-executes itself into a new session and the foreground command
returns immediately.`,
	RunE: runRun,
}

func init() {
	rootCmd.AddCommand(runCmd)

	runCmd.Flags().BoolVarP(&runOpts.detach, "detach", "d", false,
		"Run in the background, detached from the terminal")
}

func runRun(cmd *cobra.Command, args []string) error {
	dir := setupDir()
	setups, err := setup.LoadDir(dir)
	if err != nil {
		return err
	}
	logger.Info("setup library loaded", "dir", dir, "setups", len(setups))

	if runOpts.detach {
		return detach()
	}

	conn, err := x11.Connect()
	if err != nil {
		return err
	}
	defer conn.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	loop := &daemon.Loop{
		Display:  conn,
		Setups:   setups,
		Interval: cfg.Interval.Duration(),
		Logger:   logger,
		Ping:     conn.Ping,
	}
	return loop.Run(ctx)
}

// detach re-executes the current invocation without --detach in a fresh
// session with stdio on /dev/null, the Go stand-in for fork-based
// daemonization.
func detach() error {
	exe, err := os.Executable()
	if err != nil {
		return fmt.Errorf("locate executable: %w", err)
	}

	var childArgs []string
	for _, arg := range os.Args[1:] {
		if arg == "--detach" || arg == "-d" {
			continue
		}
		childArgs = append(childArgs, arg)
	}

	devnull, err := os.OpenFile(os.DevNull, os.O_RDWR, 0)
	if err != nil {
		return fmt.Errorf("open %s: %w", os.DevNull, err)
	}
	defer devnull.Close()

	child := &os.ProcAttr{
		Files: []*os.File{devnull, devnull, devnull},
		Sys:   &syscall.SysProcAttr{Setsid: true},
	}
	proc, err := os.StartProcess(exe, append([]string{exe}, childArgs...), child)
	if err != nil {
		return fmt.Errorf("start detached process: %w", err)
	}

	logger.Info("detached", "pid", proc.Pid)
	return proc.Release()
}
