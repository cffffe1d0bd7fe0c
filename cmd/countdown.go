package cmd

import (
	"fmt"
	"io"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"engagementAPI/internal/countdown"
)

var countdownCmd = &cobra.Command{
	Use:   "countdown",
	Short: "Print the time left until the event",
	Args:  cobra.NoArgs,
	RunE:  runCountdown,
}

func init() {
	countdownCmd.Flags().Bool("watch", false, "keep printing once a second until interrupted")
	rootCmd.AddCommand(countdownCmd)
}

func runCountdown(cmd *cobra.Command, args []string) error {
	watch, _ := cmd.Flags().GetBool("watch")

	event, err := cfg.EventTime()
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if !watch {
		printFields(out, countdown.Remaining(time.Now(), event).Display())
		return nil
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	shown := make(map[countdown.Field]string, len(countdown.Order))
	countdown.NewTicker(event, nil).Run(ctx, time.Second, func(changes []countdown.Change) {
		for _, c := range changes {
			shown[c.Field] = c.Value
		}
		printFields(out, shown)
	})
	return nil
}

func printFields(out io.Writer, d map[countdown.Field]string) {
	fmt.Fprintf(out, "%s days %s hours %s minutes %s seconds\n",
		d[countdown.Days], d[countdown.Hours], d[countdown.Minutes], d[countdown.Seconds])
}
