package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	appreq "github.com/zjrosen/requisite/internal/requirement/application"
	"github.com/zjrosen/requisite/internal/state"
)

var validateCmd = &cobra.Command{
	Use:   "validate <manifest>...",
	Short: "Check manifest files without touching stored state",
	Long: `Parse each manifest file or directory, check it against the manifest schema,
compile its expressions and check that the combined requirement graph has no
duplicate ids, unknown dependencies or cycles.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runValidate,
}

func init() {
	rootCmd.AddCommand(validateCmd)
}

func runValidate(cmd *cobra.Command, args []string) error {
	var manifests []*appreq.Manifest
	for _, p := range args {
		ms, err := appreq.LoadManifestPath(p)
		if err != nil {
			return err
		}
		manifests = append(manifests, ms...)
	}

	store := state.NewMemoryStore()
	reg, err := appreq.BuildRegistry(manifests, store, store)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	for _, m := range manifests {
		fmt.Fprintf(out, "ok  %s\n", m.Source)
	}
	fmt.Fprintf(out, "%d requirement(s) in %d group(s)\n", reg.Len(), len(reg.Groups()))
	return nil
}
