package cli

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/yaklabco/rsfmt/internal/logging"
	"github.com/yaklabco/rsfmt/internal/ui/pretty"
	"github.com/yaklabco/rsfmt/pkg/config"
	"github.com/yaklabco/rsfmt/pkg/format"
	"github.com/yaklabco/rsfmt/pkg/langdetect"
	"github.com/yaklabco/rsfmt/pkg/reporter"
	"github.com/yaklabco/rsfmt/pkg/runner"
	"github.com/yaklabco/rsfmt/pkg/rustlite"
)

// defaultStdinPath names standard input when --stdin-filepath is not given.
const defaultStdinPath = "stdin.rs"

type formatFlags struct {
	write           bool
	check           bool
	output          string
	printWidth      int
	tabWidth        int
	useTabs         bool
	endOfLine       string
	ignoreDirective string
	jobs            int
	ignore          []string
	noEmbedded      bool
	stdin           bool
	stdinFilepath   string
	cursorOffset    int
	verbose         bool
	includeVendored bool
	followSymlinks  bool
}

func newFormatCommand() *cobra.Command {
	flags := &formatFlags{}

	cmd := &cobra.Command{
		Use:     "format [paths...]",
		Aliases: []string{"fmt"},
		Short:   "Format Rust sources",
		Long:    formatLongDescription,
		Args:    cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if flags.stdin && len(args) > 0 {
				return errors.New("--stdin does not take path arguments")
			}
			return runFormat(cmd, args, flags)
		},
	}

	addFormatFlags(cmd, flags)

	return cmd
}

const formatLongDescription = `Format Rust source files.

By default, formats all .rs files in the current directory and
subdirectories, along with the rust code blocks of .md and .markdown files.
Specify paths to format specific files or directories. Without --write the
command only reports which files would change.

Examples:
  rsfmt format                    # Report files that need formatting
  rsfmt format -w src/            # Rewrite files under src/
  rsfmt format --check            # Exit 1 if any file needs formatting
  rsfmt format --output diff      # Show the changes as unified diffs
  rsfmt format --stdin < main.rs  # Format standard input to standard output`

func addFormatFlags(cmd *cobra.Command, flags *formatFlags) {
	cmd.Flags().BoolVarP(&flags.write, "write", "w", false, "rewrite files in place")
	cmd.Flags().BoolVar(&flags.check, "check", false, "exit 1 when a file needs formatting; never writes")
	cmd.Flags().StringVar(&flags.output, "output", "text", "output format: text, json, diff")
	cmd.Flags().IntVar(&flags.printWidth, "print-width", 0, "line width to stay within")
	cmd.Flags().IntVar(&flags.tabWidth, "tab-width", 0, "width of one indentation level")
	cmd.Flags().BoolVar(&flags.useTabs, "use-tabs", false, "indent with tabs")
	cmd.Flags().StringVar(&flags.endOfLine, "end-of-line", "", "line endings: lf, crlf, cr, auto")
	cmd.Flags().StringVar(&flags.ignoreDirective, "ignore-directive", "",
		"comment that keeps the next node as written")
	cmd.Flags().IntVar(&flags.jobs, "jobs", 0, "number of parallel workers (0 = auto)")
	cmd.Flags().StringSliceVar(&flags.ignore, "ignore", nil, "glob patterns to ignore")
	cmd.Flags().BoolVar(&flags.noEmbedded, "no-embedded", false, "leave code blocks in Markdown files alone")
	cmd.Flags().BoolVar(&flags.stdin, "stdin", false, "format standard input and print the result")
	cmd.Flags().StringVar(&flags.stdinFilepath, "stdin-filepath", "",
		"path used to pick the language of standard input (default "+defaultStdinPath+")")
	cmd.Flags().IntVar(&flags.cursorOffset, "cursor-offset", format.NoCursor,
		"with --stdin, print where this byte offset moves to on stderr")
	cmd.Flags().BoolVarP(&flags.verbose, "verbose", "v", false, "also list unchanged and skipped files")
	cmd.Flags().BoolVar(&flags.includeVendored, "include-vendored", false,
		"format vendored and generated files too")
	cmd.Flags().BoolVar(&flags.followSymlinks, "follow-symlinks", false, "follow directory symlinks")

	cmd.MarkFlagsMutuallyExclusive("write", "check")
	cmd.MarkFlagsMutuallyExclusive("stdin", "write")
}

// cliConfig maps the flags that were set onto a config layer.
func (f *formatFlags) cliConfig(cmd *cobra.Command) *config.Config {
	cfg := &config.Config{
		Write:           f.write,
		Check:           f.check,
		PrintWidth:      f.printWidth,
		TabWidth:        f.tabWidth,
		EndOfLine:       f.endOfLine,
		IgnoreDirective: f.ignoreDirective,
		Jobs:            f.jobs,
		Ignore:          f.ignore,
	}
	if cmd.Flags().Changed("output") {
		cfg.Format = config.OutputFormat(f.output)
	}
	if cmd.Flags().Changed("use-tabs") {
		cfg.UseTabs = config.Bool(f.useTabs)
	}
	if f.noEmbedded {
		cfg.Embedded = config.Bool(false)
	}
	return cfg
}

func runFormat(cmd *cobra.Command, args []string, flags *formatFlags) error {
	logger := logging.Default()
	ctx := logging.WithLogger(commandContext(cmd), logger)

	cfg, workDir, err := loadConfig(ctx, cmd, flags.cliConfig(cmd), flags.stdin)
	if err != nil {
		return err
	}

	outputFormat, err := reporter.ParseFormat(string(cfg.Format))
	if err != nil {
		return fmt.Errorf("invalid output: %w", err)
	}

	if flags.stdin {
		return runFormatStdin(ctx, cmd, cfg, flags, outputFormat)
	}
	if flags.cursorOffset != format.NoCursor {
		return errors.New("--cursor-offset requires --stdin")
	}

	runOpts := runner.Options{
		Paths:           args,
		WorkingDir:      workDir,
		Extensions:      runner.DefaultExtensions(),
		ExcludeGlobs:    cfg.Ignore,
		FollowSymlinks:  flags.followSymlinks,
		IncludeVendored: flags.includeVendored,
		Jobs:            cfg.Jobs,
		Config:          cfg,
	}

	logger.Debug("starting format run",
		logging.FieldPaths, runOpts.Paths,
		logging.FieldWorkingDir, runOpts.WorkingDir,
		logging.FieldJobs, runOpts.Jobs,
	)

	result, err := runner.New().Run(ctx, runOpts)
	if err != nil {
		return errors.Join(errors.New("format run failed"), err)
	}

	rep, err := reporter.New(reporter.Options{
		Writer:      cmd.OutOrStdout(),
		Format:      outputFormat,
		Color:       colorMode(cmd),
		ShowSummary: true,
		Verbose:     flags.verbose,
		WorkingDir:  workDir,
	})
	if err != nil {
		return fmt.Errorf("create reporter: %w", err)
	}

	if _, err := rep.Report(ctx, result); err != nil {
		logger.Error("report failed", logging.FieldError, err)
		return fmt.Errorf("report results: %w", err)
	}

	return errorForExitCode(ExitCodeFromResult(result, cfg.Check))
}

// runFormatStdin formats standard input. Text output prints the formatted
// source; json and diff go through the reporter like a one-file run.
func runFormatStdin(
	ctx context.Context,
	cmd *cobra.Command,
	cfg *config.Config,
	flags *formatFlags,
	outputFormat reporter.Format,
) error {
	src, err := io.ReadAll(cmd.InOrStdin())
	if err != nil {
		return fmt.Errorf("read stdin: %w", err)
	}

	path := flags.stdinFilepath
	if path == "" {
		path = defaultStdinPath
	}

	if flags.cursorOffset != format.NoCursor {
		return formatStdinWithCursor(ctx, cmd, cfg, path, src, flags.cursorOffset)
	}

	outcome := runner.New().FormatSource(ctx, path, src, runner.Options{
		IncludeVendored: true,
		Config:          cfg,
	})
	result := runner.NewResult(outcome)

	if outputFormat != reporter.FormatText {
		rep, err := reporter.New(reporter.Options{
			Writer: cmd.OutOrStdout(),
			Format: outputFormat,
			Color:  colorMode(cmd),
		})
		if err != nil {
			return fmt.Errorf("create reporter: %w", err)
		}
		if _, err := rep.Report(ctx, result); err != nil {
			return fmt.Errorf("report results: %w", err)
		}
		return errorForExitCode(ExitCodeFromResult(result, cfg.Check))
	}

	if outcome.Error != nil {
		writeFormatError(cmd, path, outcome.Error)
		return ErrFormatFailed
	}

	if cfg.Check {
		if outcome.Changed {
			styles := pretty.NewStyles(pretty.IsColorEnabled(colorMode(cmd), cmd.ErrOrStderr()))
			fmt.Fprint(cmd.ErrOrStderr(), styles.FormatFileStatus(path, "needs formatting"))
			return ErrUnformatted
		}
		return nil
	}

	if _, err := cmd.OutOrStdout().Write(outcome.Formatted); err != nil {
		return fmt.Errorf("write output: %w", err)
	}
	return nil
}

// formatStdinWithCursor formats Rust from standard input, writing the source
// to stdout and the new cursor offset to stderr.
func formatStdinWithCursor(
	ctx context.Context,
	cmd *cobra.Command,
	cfg *config.Config,
	path string,
	src []byte,
	cursor int,
) error {
	if langdetect.ForPath(path) != langdetect.Rust {
		return fmt.Errorf("--cursor-offset requires Rust input, got %s", path)
	}

	opts := cfg.FormatOptions()
	opts.CursorOffset = cursor
	opts.Logger = logging.FromContext(ctx).With(logging.FieldPath, path)

	result, err := rustlite.FormatWithCursor(src, opts)
	if err != nil {
		writeFormatError(cmd, path, err)
		return ErrFormatFailed
	}

	if _, err := io.WriteString(cmd.OutOrStdout(), result.Formatted); err != nil {
		return fmt.Errorf("write output: %w", err)
	}
	fmt.Fprintln(cmd.ErrOrStderr(), result.CursorOffset)
	return nil
}

// writeFormatError prints err for path, with the position of syntax errors.
func writeFormatError(cmd *cobra.Command, path string, err error) {
	styles := pretty.NewStyles(pretty.IsColorEnabled(colorMode(cmd), cmd.ErrOrStderr()))

	line, col, message := 0, 0, err.Error()
	var syntaxErr *rustlite.SyntaxError
	if errors.As(err, &syntaxErr) {
		line, col, message = syntaxErr.Line, syntaxErr.Column, syntaxErr.Message
	}

	fmt.Fprint(cmd.ErrOrStderr(), styles.FormatError(styles.FormatLocation(path, line, col), message))
}
