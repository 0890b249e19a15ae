// cmd/interactive.go
package cmd

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/ColonelBlimp/fanremote/internal/dispatch"
	"github.com/ColonelBlimp/fanremote/internal/recovery"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var interactiveCmd = &cobra.Command{
	Use:     "interactive",
	Aliases: []string{"i"},
	Short:   "Read fan commands from stdin",
	Long: `Reads one command per line and sends it, like pressing handset buttons.

Besides the fan commands it understands:
  help     list commands available under the active profile
  reload   re-read the profile document
  quit     exit`,
	Args: cobra.NoArgs,
	RunE: runInteractive,
}

func init() {
	interactiveCmd.Flags().BoolP("watch", "w", false, "reload the profile document when it changes")
	viper.BindPFlag("watch_profile", interactiveCmd.Flags().Lookup("watch"))

	rootCmd.AddCommand(interactiveCmd)
}

// console is a line-based button panel
type console struct {
	mu       sync.Mutex
	out      io.Writer
	triggers map[dispatch.Command]func()
}

func newConsole(out io.Writer) *console {
	return &console{out: out, triggers: make(map[dispatch.Command]func())}
}

func (c *console) Register(cmd dispatch.Command, trigger func()) {
	c.triggers[cmd] = trigger
}

func (c *console) SetStatus(status string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	fmt.Fprintf(c.out, "> %s\n", status)
}

func (c *console) press(cmd dispatch.Command) {
	if trigger, ok := c.triggers[cmd]; ok {
		trigger()
	}
}

func runInteractive(cmd *cobra.Command, _ []string) error {
	out := cmd.OutOrStdout()
	a, err := newApp(out)
	if err != nil {
		return err
	}
	defer a.Close()

	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()

	path := a.settings.ProfilePath
	if a.settings.WatchProfile {
		var wg sync.WaitGroup
		wg.Add(1)
		go func() {
			defer wg.Done()
			defer recovery.HandlePanicFunc(cancel)
			if err := a.loader.Watch(ctx, path); err != nil {
				a.log.WithError(err).Error("profile watcher stopped")
			}
		}()
		defer func() {
			cancel()
			wg.Wait()
		}()
	}

	ui := newConsole(out)
	a.dispatcher.Bind(ui, ui)

	fmt.Fprintf(out, "profile %s, transmitter %s. Type help for commands.\n",
		a.store.Active().Name(), a.settings.Transmitter)

	lines := make(chan string)
	go func() {
		defer close(lines)
		scanner := bufio.NewScanner(cmd.InOrStdin())
		for scanner.Scan() {
			select {
			case lines <- scanner.Text():
			case <-ctx.Done():
				return
			}
		}
	}()

	for {
		var line string
		select {
		case <-ctx.Done():
			return nil
		case l, ok := <-lines:
			if !ok {
				return nil
			}
			line = strings.TrimSpace(l)
		}

		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		switch line {
		case "quit", "exit", "q":
			return nil
		case "help", "?":
			printHelp(out, a)
			continue
		case "reload":
			if path == "" {
				fmt.Fprintln(out, "no profile document configured")
			} else if err := a.loader.LoadFile(path); err != nil {
				fmt.Fprintf(out, "reload failed, keeping %s\n", a.store.Active().Name())
			} else {
				fmt.Fprintf(out, "loaded %s\n", a.store.Active().Name())
			}
			continue
		}

		c, err := dispatch.ParseCommand(line)
		if err != nil {
			fmt.Fprintf(out, "%v (try help)\n", err)
			continue
		}
		ui.press(c)
	}
}

func printHelp(out io.Writer, a *app) {
	fmt.Fprintf(out, "profile: %s\n", a.store.Active().Name())
	for _, c := range dispatch.Commands() {
		mark := " "
		if !a.dispatcher.Supported(c) {
			mark = "-"
		}
		fmt.Fprintf(out, "  %s %-12s %s\n", mark, c, c.Label())
	}
	fmt.Fprintln(out, "  (- not configured on this handset)")
}
