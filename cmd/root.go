// cmd/root.go
package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/ColonelBlimp/fanremote/internal/config"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var rootCmd = &cobra.Command{
	Use:   "fanremote",
	Short: "Infrared remote control for BLDC ceiling fans",
	Long: `Sends ceiling-fan commands through an infrared emitter.

Power, speed and boost always use the captured handset patterns. Sleep, LED
and the timers come from the active handset profile, which can be overridden
with a JSON, YAML or TOML document.`,
	SilenceUsage: true,
}

func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		stop()
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	// Global flags (override config file)
	rootCmd.PersistentFlags().StringP("profile", "p", "", "handset profile document (json, yaml or toml)")
	rootCmd.PersistentFlags().StringP("transmitter", "t", "lirc", "transmitter backend: lirc, audio, dryrun or none")
	rootCmd.PersistentFlags().String("lirc-device", "/dev/lirc0", "LIRC transmit device")
	rootCmd.PersistentFlags().IntP("device", "d", -1, "audio device index (-1 for default)")
	rootCmd.PersistentFlags().BoolP("debug", "D", false, "enable debug output")
	rootCmd.PersistentFlags().String("log-format", "text", "log format: text or json")

	bindFlags()
}

// bindFlags binds the global flags to viper keys
func bindFlags() {
	viper.BindPFlag("profile_path", rootCmd.PersistentFlags().Lookup("profile"))
	viper.BindPFlag("transmitter", rootCmd.PersistentFlags().Lookup("transmitter"))
	viper.BindPFlag("lirc_device", rootCmd.PersistentFlags().Lookup("lirc-device"))
	viper.BindPFlag("audio_device_index", rootCmd.PersistentFlags().Lookup("device"))
	viper.BindPFlag("debug", rootCmd.PersistentFlags().Lookup("debug"))
	viper.BindPFlag("log_format", rootCmd.PersistentFlags().Lookup("log-format"))
}

func initConfig() {
	if err := config.Init(); err != nil {
		fmt.Fprintf(os.Stderr, "config error: %v\n", err)
		os.Exit(1)
	}
}
