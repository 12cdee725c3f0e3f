package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/zjrosen/requisite/internal/api"
	"github.com/zjrosen/requisite/internal/presentation"
)

// runWithApp opens the app for the duration of fn.
func runWithApp(fn func(cmd *cobra.Command, args []string, a *app) error) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		a, err := newApp(cmd.Context())
		if err != nil {
			return err
		}
		defer a.Close()
		return fn(cmd, args, a)
	}
}

var listCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "Show every applicable requirement and its state",
	Args:    cobra.NoArgs,
	RunE:    runWithApp(runList),
}

var nextCmd = &cobra.Command{
	Use:   "next",
	Short: "Show the next requirement to resolve",
	Args:  cobra.NoArgs,
	RunE:  runWithApp(runNext),
}

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Summarize the checklist; exits 1 while requirements are unresolved",
	Args:  cobra.NoArgs,
	RunE:  runWithApp(runStatus),
}

var showCmd = &cobra.Command{
	Use:   "show <requirement>",
	Short: "Show one requirement and its configuration form",
	Args:  cobra.ExactArgs(1),
	RunE:  runWithApp(runShow),
}

var groupsCmd = &cobra.Command{
	Use:   "groups",
	Short: "List requirement groups",
	Args:  cobra.NoArgs,
	RunE:  runWithApp(runGroups),
}

func init() {
	rootCmd.AddCommand(listCmd, nextCmd, statusCmd, showCmd, groupsCmd)
}

func runList(cmd *cobra.Command, _ []string, a *app) error {
	rep, err := a.svc.Evaluate(cmd.Context())
	if err != nil {
		return err
	}
	f, err := newFormatter(cmd.OutOrStdout())
	if err != nil {
		return err
	}
	return f.FormatReport(presentation.FromDomainReport(rep, a.svc))
}

func runNext(cmd *cobra.Command, _ []string, a *app) error {
	req, ok, err := a.svc.NextUnresolved(cmd.Context())
	if err != nil {
		return err
	}
	if !ok {
		_, err := fmt.Fprintln(cmd.OutOrStdout(), "All requirements are resolved.")
		return err
	}
	return showRequirement(cmd.Context(), cmd, a, req.ID())
}

func runStatus(cmd *cobra.Command, _ []string, a *app) error {
	rep, err := a.svc.Evaluate(cmd.Context())
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	f, err := newFormatter(out)
	if err != nil {
		return err
	}
	if f.Format() == presentation.FormatJSON {
		if err := f.FormatJSON(api.StatusResponse{
			FullyResolved: rep.FullyResolved,
			Next:          rep.Next,
			Summary:       rep.Summary,
		}); err != nil {
			return err
		}
	} else {
		s := rep.Summary
		fmt.Fprintf(out, "%d/%d completed, %d actionable, %d waiting, %d blocked\n",
			s.Completed, s.Total, s.Actionable, s.Waiting, s.Blocked)
		if rep.Next != "" {
			fmt.Fprintf(out, "Next: %s\n", rep.Next)
		}
	}

	if !rep.FullyResolved {
		return errUnresolved
	}
	return nil
}

func runShow(cmd *cobra.Command, args []string, a *app) error {
	return showRequirement(cmd.Context(), cmd, a, args[0])
}

func showRequirement(ctx context.Context, cmd *cobra.Command, a *app, id string) error {
	req, err := a.svc.Get(id)
	if err != nil {
		return err
	}
	rep, err := a.svc.Evaluate(ctx)
	if err != nil {
		return err
	}

	dto := presentation.FromDomainRequirement(req, a.svc)
	dto.State = presentation.StateNotApplicable
	if st, ok := rep.Status(id); ok {
		dto = presentation.FromDomainStatus(st, a.svc)
	}

	var form *presentation.FormDTO
	if f, err := a.svc.Form(id); err == nil {
		settings, err := a.svc.Settings(ctx)
		if err != nil {
			return err
		}
		fd := presentation.FromDomainForm(req, f, settings)
		form = &fd
	}

	out, err := newFormatter(cmd.OutOrStdout())
	if err != nil {
		return err
	}
	return out.FormatRequirement(dto, form)
}

func runGroups(cmd *cobra.Command, _ []string, a *app) error {
	f, err := newFormatter(cmd.OutOrStdout())
	if err != nil {
		return err
	}
	return f.FormatGroups(presentation.FromDomainGroups(a.svc.Groups(), a.svc.List()))
}
