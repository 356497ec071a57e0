// Package cli provides the Cobra command structure for rsfmt.
package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/yaklabco/rsfmt/internal/configloader"
	"github.com/yaklabco/rsfmt/internal/logging"
	"github.com/yaklabco/rsfmt/internal/ui/pretty"
)

// BuildInfo holds build-time version information.
type BuildInfo struct {
	Version string
	Commit  string
	Date    string
}

// NewRootCommand creates the root rsfmt command with all subcommands.
func NewRootCommand(info BuildInfo) *cobra.Command {
	var debug bool
	var configPath string
	var color string

	rootCmd := &cobra.Command{
		Use:   "rsfmt",
		Short: "A width-aware Rust source formatter",
		Long: `rsfmt reprints Rust source in a canonical layout.

It parses each file, attaches every comment to a nearby syntax node and
lays the result out within the configured line width, breaking the
outermost groups first. Rust code blocks inside Markdown files are
formatted too.` + envHelp(),
		PersistentPreRun: func(_ *cobra.Command, _ []string) {
			if debug {
				logging.SetLevel("debug")
			}
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// Global flags.
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug logging")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "path to config file")
	rootCmd.PersistentFlags().StringVar(&color, "color", pretty.ColorAuto,
		"colorize output: auto, always, never")

	// Add subcommands.
	rootCmd.AddCommand(newFormatCommand())
	rootCmd.AddCommand(newDebugCommand())
	rootCmd.AddCommand(newInitCommand())
	rootCmd.AddCommand(newMigrateCommand())
	rootCmd.AddCommand(newVersionCommand(info))

	// Apply styled help formatting.
	helpFormatter := NewHelpFormatter(color, os.Stdout)
	helpFormatter.ApplyToCommand(rootCmd)

	return rootCmd
}

// envHelp lists the environment overrides for the root help text.
func envHelp() string {
	var builder strings.Builder
	builder.WriteString("\n\nEnvironment:\n")
	for _, v := range configloader.ListEnvVars() {
		fmt.Fprintf(&builder, "  %-24s %s\n", v.Name, v.Help)
	}
	return strings.TrimRight(builder.String(), "\n")
}
