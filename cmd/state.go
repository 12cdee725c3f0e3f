package cmd

import (
	"fmt"
	"slices"
	"strings"

	"github.com/spf13/cobra"

	"github.com/zjrosen/requisite/internal/api"
	"github.com/zjrosen/requisite/internal/config"
	"github.com/zjrosen/requisite/internal/presentation"
	"github.com/zjrosen/requisite/internal/state"
)

var stateCmd = &cobra.Command{
	Use:   "state",
	Short: "Inspect and change stored settings and capabilities",
	Args:  cobra.NoArgs,
	RunE:  runWithApp(runStateShow),
}

var stateGetCmd = &cobra.Command{
	Use:   "get <key>",
	Short: "Print one setting",
	Args:  cobra.ExactArgs(1),
	RunE:  runWithApp(runStateGet),
}

var stateSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Store a setting without going through a configuration step",
	Args:  cobra.ExactArgs(2),
	RunE:  runWithApp(runStateSet),
}

var stateUnsetCmd = &cobra.Command{
	Use:   "unset <key>",
	Short: "Remove a setting",
	Args:  cobra.ExactArgs(1),
	RunE:  runWithApp(runStateUnset),
}

var stateEnableCmd = &cobra.Command{
	Use:   "enable <capability>",
	Short: "Enable a capability",
	Args:  cobra.ExactArgs(1),
	RunE:  runWithApp(runCapability(true)),
}

var stateDisableCmd = &cobra.Command{
	Use:   "disable <capability>",
	Short: "Disable a capability",
	Args:  cobra.ExactArgs(1),
	RunE:  runWithApp(runCapability(false)),
}

func init() {
	for _, c := range []*cobra.Command{stateEnableCmd, stateDisableCmd} {
		c.Flags().Bool("persist", false, "also update the capabilities list in the config file")
	}
	stateCmd.AddCommand(stateGetCmd, stateSetCmd, stateUnsetCmd, stateEnableCmd, stateDisableCmd)
	rootCmd.AddCommand(stateCmd)
}

func runStateShow(cmd *cobra.Command, _ []string, a *app) error {
	ctx := cmd.Context()
	settings, err := a.svc.Settings(ctx)
	if err != nil {
		return err
	}
	caps, err := a.svc.Capabilities(ctx)
	if err != nil {
		return err
	}

	f, err := newFormatter(cmd.OutOrStdout())
	if err != nil {
		return err
	}
	if caps == nil {
		caps = []string{}
	}
	if f.Format() == presentation.FormatJSON {
		return f.FormatJSON(api.StateResponse{Settings: settings, Capabilities: caps})
	}

	out := cmd.OutOrStdout()
	keys := make([]string, 0, len(settings))
	for k := range settings {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	fmt.Fprintln(out, "Settings:")
	if len(keys) == 0 {
		fmt.Fprintln(out, "  (none)")
	}
	for _, k := range keys {
		fmt.Fprintf(out, "  %s = %s\n", k, settings[k])
	}
	fmt.Fprintln(out, "Capabilities:")
	if len(caps) == 0 {
		fmt.Fprintln(out, "  (none)")
	} else {
		fmt.Fprintf(out, "  %s\n", strings.Join(caps, ", "))
	}
	return nil
}

func runStateGet(cmd *cobra.Command, args []string, a *app) error {
	v, ok, err := a.store.Setting(cmd.Context(), args[0])
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("setting %q is not set", args[0])
	}
	_, err = fmt.Fprintln(cmd.OutOrStdout(), v)
	return err
}

func runStateSet(cmd *cobra.Command, args []string, a *app) error {
	if err := state.ValidateKey(args[0]); err != nil {
		return err
	}
	return a.svc.SetSetting(cmd.Context(), args[0], args[1])
}

func runStateUnset(cmd *cobra.Command, args []string, a *app) error {
	return a.svc.DeleteSetting(cmd.Context(), args[0])
}

func runCapability(enabled bool) func(*cobra.Command, []string, *app) error {
	return func(cmd *cobra.Command, args []string, a *app) error {
		name, err := state.NormalizeCapability(args[0])
		if err != nil {
			return err
		}
		if err := a.svc.SetCapability(cmd.Context(), name, enabled); err != nil {
			return err
		}

		persist, _ := cmd.Flags().GetBool("persist")
		if !persist {
			return nil
		}
		caps := slices.Clone(cfg.Capabilities)
		if enabled {
			caps = append(caps, name)
		} else {
			caps = slices.DeleteFunc(caps, func(c string) bool { return c == name })
		}
		path, err := configPath()
		if err != nil {
			return err
		}
		if err := config.SaveCapabilities(path, caps); err != nil {
			return fmt.Errorf("saving capabilities: %w", err)
		}
		cfg.Capabilities = caps
		return nil
	}
}
