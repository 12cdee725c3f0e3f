package cmd

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/zjrosen/requisite/internal/api"
	"github.com/zjrosen/requisite/internal/presentation"
	requirement "github.com/zjrosen/requisite/internal/requirement/domain"
)

var configureCmd = &cobra.Command{
	Use:   "configure <requirement> [key=value...]",
	Short: "Submit values for a requirement's configuration step",
	Long: `Validate the given values against the requirement's form and store them.
Nothing is stored unless every field is valid.

Example:
  requisite configure smtp smtp.host=mail.example.com smtp.port=587
  requisite configure smtp smtp.port=99999 --dry-run`,
	Args: cobra.MinimumNArgs(1),
	RunE: runWithApp(runConfigure),
}

var historyCmd = &cobra.Command{
	Use:   "history [requirement]",
	Short: "Show accepted configuration submissions",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runWithApp(runHistory),
}

func init() {
	configureCmd.Flags().Bool("dry-run", false, "validate and show the changes without storing them")
	rootCmd.AddCommand(configureCmd, historyCmd)
}

// parseAssignments turns key=value arguments into values. A key may repeat;
// the last one wins.
func parseAssignments(args []string) (requirement.Values, error) {
	values := make(requirement.Values, len(args))
	for _, arg := range args {
		key, value, ok := strings.Cut(arg, "=")
		if !ok || strings.TrimSpace(key) == "" {
			return nil, fmt.Errorf("invalid assignment %q: want key=value", arg)
		}
		values[strings.TrimSpace(key)] = value
	}
	return values, nil
}

func runConfigure(cmd *cobra.Command, args []string, a *app) error {
	id := args[0]
	values, err := parseAssignments(args[1:])
	if err != nil {
		return err
	}

	f, err := newFormatter(cmd.OutOrStdout())
	if err != nil {
		return err
	}

	if dryRun, _ := cmd.Flags().GetBool("dry-run"); dryRun {
		p, err := a.svc.Preview(cmd.Context(), id, values)
		if err != nil {
			return err
		}
		return f.FormatPreview(presentation.FromPreview(id, p.Current, p.Proposed, p.Errors))
	}

	res, err := a.svc.Configure(cmd.Context(), id, values)
	if err != nil {
		var verr *requirement.ValidationError
		if errors.As(err, &verr) {
			errOut := cmd.ErrOrStderr()
			for _, fe := range verr.Fields {
				fmt.Fprintf(errOut, "  %s: %s\n", fe.Field, fe.Message)
			}
		}
		return err
	}

	if f.Format() == presentation.FormatJSON {
		return f.FormatJSON(api.ConfigureResponse{
			RequirementID: res.RequirementID,
			Values:        res.Values,
			Completed:     res.Completed,
		})
	}
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Stored %d value(s) for %s.\n", len(res.Values), res.RequirementID)
	if !res.Completed {
		fmt.Fprintln(out, "The requirement is not completed yet.")
	}
	return nil
}

func runHistory(cmd *cobra.Command, args []string, a *app) error {
	var id string
	if len(args) == 1 {
		id = args[0]
		if _, err := a.svc.Get(id); err != nil {
			return err
		}
	}
	subs, err := a.svc.History(cmd.Context(), id)
	if err != nil {
		return err
	}
	f, err := newFormatter(cmd.OutOrStdout())
	if err != nil {
		return err
	}
	return f.FormatHistory(subs)
}
