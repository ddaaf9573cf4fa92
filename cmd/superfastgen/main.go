package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/superfastgen/superfastgen/cmd/superfastgen/commands"
	"github.com/superfastgen/superfastgen/logger"
)

var rootCmd = &cobra.Command{
	Use:   "superfastgen",
	Short: "SuperFastGen - Fast code generation for Dart and Flutter",
	Long: `SuperFastGen - Fast code generation for Dart and Flutter projects.

SuperFastGen scans annotated Dart sources and generates immutable data
classes, JSON serialization, and Riverpod providers without the overhead
of build_runner.

Available commands:
  generate - Run code generation once over the project
  watch    - Watch sources and regenerate on change
  clean    - Remove all generated companion files
  version  - Show version information

Examples:
  superfastgen generate            # Generate once into lib/
  superfastgen generate -i lib/src # Generate for a subtree
  superfastgen watch               # Regenerate on save
  superfastgen clean               # Delete *.freezed.dart and *.g.dart`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		jsonLogs, _ := cmd.Flags().GetBool("json-logs")
		if err := logger.Initialize(jsonLogs); err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().CountP("verbose", "v", "Increase output verbosity (repeat for more detail: -v, -vv)")
	rootCmd.PersistentFlags().Bool("json-logs", false, "Emit logs as JSON instead of console output")

	rootCmd.AddCommand(commands.GenerateCmd)
	rootCmd.AddCommand(commands.WatchCmd)
	rootCmd.AddCommand(commands.CleanCmd)
	rootCmd.AddCommand(commands.VersionCmd)
}

func main() {
	defer logger.Cleanup()
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
