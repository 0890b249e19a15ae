// cmd/send.go
package cmd

import (
	"fmt"

	"github.com/ColonelBlimp/fanremote/internal/dispatch"
	"github.com/spf13/cobra"
)

var sendCmd = &cobra.Command{
	Use:   "send <command>...",
	Short: "Send one or more fan commands",
	Long: `Sends each command in order and prints its status.

Commands: power, speed_1 ... speed_5, boost, sleep, led,
timer_1h, timer_2h, timer_4h, timer_cycle.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runSend,
}

func init() {
	rootCmd.AddCommand(sendCmd)
}

func runSend(cmd *cobra.Command, args []string) error {
	// Reject typos before anything is transmitted
	commands := make([]dispatch.Command, 0, len(args))
	for _, arg := range args {
		c, err := dispatch.ParseCommand(arg)
		if err != nil {
			return err
		}
		commands = append(commands, c)
	}

	a, err := newApp(cmd.OutOrStdout())
	if err != nil {
		return err
	}
	defer a.Close()

	for _, c := range commands {
		out := a.dispatcher.Dispatch(c)
		fmt.Fprintln(cmd.OutOrStdout(), out.Status())
	}
	return nil
}
