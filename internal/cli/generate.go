package cli

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/larascaffold/larascaffold/internal/config"
	"github.com/larascaffold/larascaffold/internal/logging"
	"github.com/larascaffold/larascaffold/internal/project"
	"github.com/larascaffold/larascaffold/internal/scaffold"
	"github.com/larascaffold/larascaffold/internal/writer"
	"github.com/spf13/cobra"
)

// SuccessMessage is printed after a scaffold has been written.
const SuccessMessage = "Controller, model, migration, and views generated successfully!"

var (
	generateProjectDir string
	generateForce      bool
	generateDryRun     bool
	generateForceRoot  bool
)

func init() {
	f := generateCmd.Flags()
	f.StringVar(&generateProjectDir, "project-dir", ".", "Laravel project root")
	f.BoolVar(&generateForce, "force", false, "Rewrite the shared layout even if it exists")
	f.BoolVar(&generateDryRun, "dry-run", false, "Show what would be written without touching files")
	f.BoolVar(&generateForceRoot, "force-root", false, "Skip the Laravel project root check")
	f.String("templates", "", "Template set: embedded set name or directory (default: laravel)")
	f.String("migration-style", "", "Migration class style: named or anonymous")
	rootCmd.AddCommand(generateCmd)
}

var generateCmd = &cobra.Command{
	Use:   "controller:generate <name> <model> <columns>",
	Short: "Generate a controller, model, migration and views for a resource",
	Long: `Generate a resource scaffold for a Laravel project.

<columns> is a comma-separated list of name:type pairs. The type is used
verbatim as the schema builder method in the migration. Columns typed
integer, bigInteger, float, double or boolean are left out of the model's
$fillable list.

The shared layout is only written when it does not exist yet (use --force to
rewrite it). The resource route is added to routes/web.php once; running the
command again does not duplicate it.

Examples:
  larascaffold controller:generate post post title:string,body:text,views:integer
  larascaffold controller:generate comment Comment body:text,approved:boolean --dry-run`,
	Args: requireArgs("name", "model", "columns"),
	RunE: runGenerate,
}

func runGenerate(cmd *cobra.Command, args []string) error {
	root, err := filepath.Abs(generateProjectDir)
	if err != nil {
		return fmt.Errorf("resolving project directory: %w", err)
	}

	proj, err := project.Detect(root, !generateForceRoot)
	if err != nil {
		return err
	}
	if proj.Version != nil {
		logging.Logger.Debugw("detected framework",
			logging.FieldVersion, proj.Version.String(),
			logging.FieldPath, proj.VersionSource)
	}

	settings, err := config.LoadSettings(root, cmd.Flags())
	if err != nil {
		return err
	}

	set, err := scaffold.Load(templatesRef(cmd, root, settings.Templates))
	if err != nil {
		return err
	}

	in := buildInput(args, settings, proj)
	w := writer.New(root, writer.WithDryRun(generateDryRun))

	result, err := scaffold.NewGenerator(set, w).Run(in)
	if err != nil {
		return err
	}

	printResult(cmd.OutOrStdout(), result)
	return nil
}

// templatesRef resolves a relative template directory. A --templates flag is
// relative to the working directory; a value from config or environment is
// relative to the project root, where .larascaffold.yaml lives.
func templatesRef(cmd *cobra.Command, root, ref string) string {
	if ref == "" || scaffold.IsEmbedded(ref) || filepath.IsAbs(ref) || cmd.Flags().Changed("templates") {
		return ref
	}
	return filepath.Join(root, ref)
}

// buildInput merges the positional arguments, settings and detected project
// conventions. Settings win over detection.
func buildInput(args []string, s *config.Settings, proj *project.Project) scaffold.Input {
	modelsDir := s.Paths.Models
	if modelsDir == "" {
		modelsDir = proj.ModelsDir()
	}
	modelsNS := s.Namespaces.Models
	if modelsNS == "" {
		modelsNS = proj.ModelNamespace()
	}

	return scaffold.Input{
		Name:    args[0],
		Model:   args[1],
		Columns: args[2],
		Paths: scaffold.Paths{
			Controllers: s.Paths.Controllers,
			Models:      modelsDir,
			Migrations:  s.Paths.Migrations,
			Views:       s.Paths.Views,
			Routes:      s.Paths.Routes,
		},
		Namespaces: scaffold.Namespaces{
			Controllers: s.Namespaces.Controllers,
			Models:      modelsNS,
		},
		MigrationStyle: s.MigrationStyle,
		ExcludedTypes:  s.ExcludedTypes,
		Force:          generateForce,
	}
}

// requireArgs enforces exactly the named positional arguments and names the
// first missing one.
func requireArgs(names ...string) cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) error {
		if len(args) < len(names) {
			return fmt.Errorf("missing required argument %q\n\nUsage:\n  %s", names[len(args)], cmd.UseLine())
		}
		if len(args) > len(names) {
			return fmt.Errorf("accepts %d arg(s) (%s), received %d", len(names), strings.Join(names, ", "), len(args))
		}
		return nil
	}
}

func printResult(out io.Writer, result *scaffold.Result) {
	if result.DryRun {
		fmt.Fprintf(out, "Dry run: nothing written to %s\n", result.Root)
	} else {
		fmt.Fprintln(out, SuccessMessage)
	}
	for _, f := range result.Files {
		fmt.Fprintf(out, "  %-11s %s\n", f.Status, f.Path)
	}
}
