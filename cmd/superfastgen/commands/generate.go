package commands

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/superfastgen/superfastgen/config"
	"github.com/superfastgen/superfastgen/errors"
	"github.com/superfastgen/superfastgen/pipeline"
)

var (
	generateInput      string
	generateConfigPath string
)

// GenerateCmd runs one generation pass over the project sources
var GenerateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Run code generation once",
	Long: `Scan the project's Dart sources and generate immutable classes,
JSON serialization, and Riverpod providers for every annotated declaration.

Companion files (*.freezed.dart, *.g.dart) are written next to their
sources, matching the build_runner layout. Unchanged outputs are left
untouched so editors and analyzers see no spurious modifications.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, root, err := loadProject()
		if err != nil {
			return err
		}

		input := resolveInput(cfg, root)
		if _, err := os.Stat(input); err != nil {
			return errors.Wrapf(err, "input directory %s", input)
		}

		if cfg.Generate.DeleteConflictingOutputs {
			removed, err := pipeline.CleanGenerated(input)
			if err != nil {
				return err
			}
			if removed > 0 {
				pterm.Info.Printf("Removed %d stale generated files\n", removed)
			}
		}

		p := pipeline.New(cfg)
		report, err := p.RunBatch(cmd.Context(), input)
		if err != nil {
			return err
		}

		printReport(report)
		if report.HasErrors() {
			return fmt.Errorf("generation finished with %d errors", len(report.Errors()))
		}
		return nil
	},
}

func init() {
	GenerateCmd.Flags().StringVarP(&generateInput, "input", "i", "", "Directory to scan (default: generate.input from config)")
	GenerateCmd.Flags().StringVarP(&generateConfigPath, "config", "c", "", "Path to a superfastgen.yaml (default: project discovery)")
}

// loadProject resolves the configuration and the Flutter project root.
// An explicit --config path skips project discovery for the config itself
// but the root is still needed to anchor relative input paths.
func loadProject() (*config.Config, string, error) {
	var cfg *config.Config
	var err error

	if generateConfigPath != "" {
		cfg, err = config.LoadFromFile(generateConfigPath)
	} else {
		cfg, err = config.Load()
	}
	if err != nil {
		return nil, "", err
	}

	wd, err := os.Getwd()
	if err != nil {
		return nil, "", errors.Wrap(err, "resolving working directory")
	}

	root, err := config.FindProjectRoot(wd)
	if err != nil {
		// Outside a Flutter project the working directory anchors everything
		root = wd
	}
	return cfg, root, nil
}

// resolveInput picks the scan directory: the --input flag wins, then the
// configured generate.input, both anchored at the project root unless
// already absolute.
func resolveInput(cfg *config.Config, root string) string {
	input := generateInput
	if input == "" {
		input = cfg.Generate.Input
	}
	if !filepath.IsAbs(input) {
		input = filepath.Join(root, input)
	}
	return input
}

func printReport(report *pipeline.Report) {
	emitted := report.EmittedByVariant()
	pterm.Info.Printf("Processed %d files\n", report.FilesProcessed())
	pterm.Info.Printf("Generated: %d freezed, %d json, %d provider\n",
		emitted[config.VariantImmutable],
		emitted[config.VariantJSONCodec],
		emitted[config.VariantProvider])

	for _, w := range report.Warnings() {
		pterm.Warning.Println(w)
	}
	for _, e := range report.Errors() {
		pterm.Error.Println(e)
	}

	if !report.HasErrors() {
		pterm.Success.Printf("Generation complete\n")
	}
}
