// cmd/patterns.go
package cmd

import (
	"fmt"

	"github.com/ColonelBlimp/fanremote/internal/ir"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

var patternsCmd = &cobra.Command{
	Use:   "patterns [name]",
	Short: "List the captured handset patterns",
	Long:  `Without a name, lists the built-in patterns. With a name, prints that pattern as YAML.`,
	Args:  cobra.MaximumNArgs(1),
	RunE:  runPatterns,
}

func init() {
	rootCmd.AddCommand(patternsCmd)
}

// patternDoc is the YAML shape of one catalog entry
type patternDoc struct {
	Name      string   `yaml:"name"`
	CarrierHz int      `yaml:"carrier_hz"`
	Elements  int      `yaml:"elements"`
	Duration  uint64   `yaml:"duration_us"`
	Pattern   []uint32 `yaml:"pattern,flow"`
}

func runPatterns(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()
	if len(args) == 0 {
		for _, name := range ir.PatternNames() {
			w, _ := ir.Pattern(name)
			fmt.Fprintf(out, "%-14s %3d elements %6d us\n", name, len(w), w.Duration())
		}
		return nil
	}

	w, ok := ir.Pattern(args[0])
	if !ok {
		return fmt.Errorf("%w: %q", ir.ErrUnknownPattern, args[0])
	}

	enc := yaml.NewEncoder(out)
	enc.SetIndent(2)
	defer enc.Close()
	return enc.Encode(patternDoc{
		Name:      args[0],
		CarrierHz: ir.CarrierHz,
		Elements:  len(w),
		Duration:  w.Duration(),
		Pattern:   w,
	})
}
