// cmd/profile.go
package cmd

import (
	"fmt"
	"strings"

	"github.com/ColonelBlimp/fanremote/internal/profile"
	"github.com/sirupsen/logrus"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

var profileCmd = &cobra.Command{
	Use:   "profile",
	Short: "Inspect handset profiles",
}

var profileShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the active profile as YAML",
	Long: `Prints the profile that commands would use right now: the configured
document if it loads, otherwise the built-in handset. The output can be saved
and edited as a profile document.`,
	Args: cobra.NoArgs,
	RunE: runProfileShow,
}

var profileCheckCmd = &cobra.Command{
	Use:   "check <path>",
	Short: "Validate a profile document",
	Long:  `Loads the document the same way the remote does and reports which controls it binds.`,
	Args:  cobra.ExactArgs(1),
	RunE:  runProfileCheck,
}

func init() {
	profileCmd.AddCommand(profileShowCmd)
	profileCmd.AddCommand(profileCheckCmd)
	rootCmd.AddCommand(profileCmd)
}

func runProfileShow(cmd *cobra.Command, _ []string) error {
	a, err := newApp(cmd.OutOrStdout())
	if err != nil {
		return err
	}
	defer a.Close()

	p := a.store.Active()
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "# profile: %s\n", p.Name())

	enc := yaml.NewEncoder(out)
	enc.SetIndent(2)
	defer enc.Close()
	return enc.Encode(p.Spec())
}

func runProfileCheck(cmd *cobra.Command, args []string) error {
	// Errors are returned to the caller, so keep the loader quiet
	log := logrus.New()
	log.SetOutput(cmd.ErrOrStderr())
	log.SetLevel(logrus.FatalLevel)

	store := profile.NewStore(profile.New("", nil))
	loader := profile.NewLoader(store, afero.NewOsFs(), log)
	if err := loader.LoadFile(args[0]); err != nil {
		return err
	}

	p := store.Active()
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "%s: ok\n", args[0])
	for _, slot := range profile.Slots() {
		action, ok := p.Lookup(slot)
		if !ok {
			fmt.Fprintf(out, "  %-12s not configured\n", slot.Key())
			continue
		}
		fmt.Fprintf(out, "  %-12s %s\n", slot.Key(), action)
	}

	bound := make([]string, 0, len(p.Bound()))
	for _, s := range p.Bound() {
		bound = append(bound, s.Key())
	}
	if len(bound) == 0 {
		fmt.Fprintln(out, "warning: document binds no controls")
	} else {
		fmt.Fprintf(out, "binds %s\n", strings.Join(bound, ", "))
	}
	return nil
}
