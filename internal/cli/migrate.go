package cli

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/yaklabco/rsfmt/internal/configloader"
	"github.com/yaklabco/rsfmt/internal/logging"
)

// migrateFlags holds the flags for the migrate command.
type migrateFlags struct {
	force  bool
	output string
	input  string
}

func newMigrateCommand() *cobra.Command {
	flags := &migrateFlags{}

	cmd := &cobra.Command{
		Use:   "migrate [input]",
		Short: "Convert a rustfmt configuration to rsfmt format",
		Long: `Convert the layout options of a rustfmt.toml (or .rustfmt.toml) file
to an rsfmt configuration file (.rsfmt.yml).

max_width, tab_spaces, hard_tabs, newline_style and ignore carry over.
Other rustfmt options have no rsfmt equivalent and are reported.

If no input file is specified, the command looks for a rustfmt
configuration file in the current directory.

Examples:
  rsfmt migrate                        Auto-detect and convert rustfmt.toml
  rsfmt migrate .rustfmt.toml          Convert specific file
  rsfmt migrate --output rsfmt.toml    Write TOML to a custom output path`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 1 {
				flags.input = args[0]
			}
			return runMigrate(cmd, flags)
		},
	}

	cmd.Flags().BoolVarP(&flags.force, "force", "f", false, "Overwrite existing output file")
	cmd.Flags().StringVarP(&flags.output, "output", "o", configloader.MigratedConfigName, "Output file path")

	return cmd
}

func runMigrate(cmd *cobra.Command, flags *migrateFlags) error {
	logger := logging.NewWithWriter(cmd.ErrOrStderr(), "info")

	// Find input file
	inputPath := flags.input
	if inputPath == "" {
		cwd, err := os.Getwd()
		if err != nil {
			return fmt.Errorf("get working directory: %w", err)
		}

		inputPath, err = configloader.FindRustfmtConfig(commandContext(cmd), cwd)
		if err != nil {
			return err
		}
		if inputPath == "" {
			return errors.New("no rustfmt configuration file found")
		}

		logger.Info("found rustfmt config", logging.FieldPath, inputPath)
	}

	// Check input exists
	if _, err := os.Stat(inputPath); os.IsNotExist(err) {
		return fmt.Errorf("input file does not exist: %s", inputPath)
	}

	// Make output path absolute
	absOutput, err := filepath.Abs(flags.output)
	if err != nil {
		return fmt.Errorf("resolve output path: %w", err)
	}

	// Check output exists
	if _, err := os.Stat(absOutput); err == nil {
		if !flags.force {
			return fmt.Errorf("output file %q already exists; use --force to overwrite", flags.output)
		}
		logger.Warn("overwriting existing file", logging.FieldPath, flags.output)
	}

	result, err := configloader.ConvertRustfmtConfig(inputPath)
	if err != nil {
		return fmt.Errorf("convert configuration: %w", err)
	}

	for _, warning := range result.Warnings {
		logger.Warn(warning)
	}

	// Validate before writing so a broken ignore glob is caught here.
	validation := configloader.ValidateWithFile(result.Config, inputPath)
	if !validation.Valid() {
		return &validation.Errors[0]
	}

	header := configloader.GenerateMigrationHeader(inputPath)
	if err := configloader.WriteConfig(result.Config, absOutput, header); err != nil {
		return fmt.Errorf("write output file: %w", err)
	}

	logger.Info("migration complete", logging.FieldPath, inputPath, logging.FieldOutput, flags.output)

	if len(result.Warnings) > 0 {
		logger.Warn("review warnings above and verify the migrated configuration")
	}

	return nil
}
