package commands

import (
	"os"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/superfastgen/superfastgen/errors"
	"github.com/superfastgen/superfastgen/pipeline"
)

// CleanCmd deletes every generated companion under the input directory
var CleanCmd = &cobra.Command{
	Use:   "clean",
	Short: "Remove all generated companion files",
	Long: `Delete every *.freezed.dart, *.g.dart, and *.config.dart file under
the input directory. Source files are never touched.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, root, err := loadProject()
		if err != nil {
			return err
		}

		input := resolveInput(cfg, root)
		if _, err := os.Stat(input); err != nil {
			return errors.Wrapf(err, "input directory %s", input)
		}

		removed, err := pipeline.CleanGenerated(input)
		if err != nil {
			return err
		}
		pterm.Success.Printf("Removed %d generated files\n", removed)
		return nil
	},
}
