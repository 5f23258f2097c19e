package cli

import (
	"fmt"
	"strings"

	"github.com/larascaffold/larascaffold/internal/scaffold"
	"github.com/spf13/cobra"
)

func init() {
	templatesCmd.AddCommand(templatesListCmd)
	templatesCmd.AddCommand(templatesExportCmd)
	templatesCmd.AddCommand(templatesValidateCmd)
	rootCmd.AddCommand(templatesCmd)
}

var templatesCmd = &cobra.Command{
	Use:   "templates",
	Short: "Inspect and customise template sets",
	Long: `A template set is a directory with a scaffold.yaml manifest and the
templates it references. Export the built-in set, edit it, and point
controller:generate at it with --templates or the "templates" config key.`,
}

var templatesListCmd = &cobra.Command{
	Use:   "list",
	Short: "List the built-in template sets",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		names, err := scaffold.EmbeddedSets()
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()
		for _, name := range names {
			set, err := scaffold.LoadEmbedded(name)
			if err != nil {
				return err
			}
			kinds := make([]string, 0, len(set.Artifacts))
			for _, a := range set.Artifacts {
				kinds = append(kinds, a.Kind)
			}
			fmt.Fprintf(out, "%s\t%s\n", set.Name, set.Description)
			fmt.Fprintf(out, "  artifacts: %s\n", strings.Join(kinds, ", "))
		}
		return nil
	},
}

var templatesExportCmd = &cobra.Command{
	Use:   "export <name> <dir>",
	Short: "Copy a built-in template set to a directory",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		files, err := scaffold.Export(args[0], args[1])
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "Exported %s to %s/\n", args[0], args[1])
		for _, f := range files {
			fmt.Fprintf(out, "  %s\n", f)
		}
		return nil
	},
}

var templatesValidateCmd = &cobra.Command{
	Use:   "validate <dir>",
	Short: "Check a template set's manifest and templates",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		set, err := scaffold.LoadDir(args[0])
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s: %d artifacts OK\n", set.Name, len(set.Artifacts))
		return nil
	},
}
