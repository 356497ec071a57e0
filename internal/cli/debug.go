package cli

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/yaklabco/rsfmt/internal/logging"
	"github.com/yaklabco/rsfmt/pkg/config"
	"github.com/yaklabco/rsfmt/pkg/doc"
	"github.com/yaklabco/rsfmt/pkg/langdetect"
	"github.com/yaklabco/rsfmt/pkg/rustlite"
)

// debugFlags holds the flags shared by the debug subcommands.
type debugFlags struct {
	width int
	laid  bool
}

func newDebugCommand() *cobra.Command {
	flags := &debugFlags{}

	cmd := &cobra.Command{
		Use:   "debug",
		Short: "Inspect how a file is formatted",
		Long: `Inspect the intermediate stages of formatting a Rust file.

Pass "-" as the file to read standard input.

Examples:
  rsfmt debug doc src/lib.rs          Print the document as builder calls
  rsfmt debug doc --laid-out lib.rs   Print the formatted output instead
  rsfmt debug comments src/lib.rs     Print where each comment is attached`,
	}

	docCmd := &cobra.Command{
		Use:   "doc <file>",
		Short: "Print the document built for a file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDebugDoc(cmd, args[0], flags)
		},
	}
	docCmd.Flags().IntVar(&flags.width, "width", 0, "layout width (default: terminal width)")
	docCmd.Flags().BoolVar(&flags.laid, "laid-out", false, "print the document laid out at the configured width")

	commentsCmd := &cobra.Command{
		Use:   "comments <file>",
		Short: "Print the comment attachment of a file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDebugComments(cmd, args[0])
		},
	}

	cmd.AddCommand(docCmd, commentsCmd)
	return cmd
}

// readDebugSource reads a Rust file, or standard input for "-".
func readDebugSource(cmd *cobra.Command, path string) ([]byte, error) {
	if path == "-" {
		src, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return nil, fmt.Errorf("read stdin: %w", err)
		}
		return src, nil
	}

	if langdetect.ForPath(path) != langdetect.Rust {
		return nil, fmt.Errorf("%s: debug supports Rust sources only", path)
	}

	src, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read file: %w", err)
	}
	return src, nil
}

func runDebugDoc(cmd *cobra.Command, path string, flags *debugFlags) error {
	ctx := commandContext(cmd)

	cfg, _, err := loadConfig(ctx, cmd, &config.Config{}, true)
	if err != nil {
		return err
	}

	src, err := readDebugSource(cmd, path)
	if err != nil {
		return err
	}

	opts := cfg.FormatOptions()
	opts.Logger = logging.FromContext(ctx).With(logging.FieldPath, path)

	built, err := rustlite.BuildDoc(src, opts)
	if err != nil {
		return err
	}

	printOpts := doc.PrintOptions{
		PrintWidth: debugWidth(cmd.OutOrStdout(), flags.width),
		TabWidth:   opts.TabWidth,
	}
	if flags.laid {
		printOpts.PrintWidth = opts.PrintWidth
		printOpts.UseTabs = opts.UseTabs
	} else {
		built = doc.DebugDoc(built)
	}

	result, err := doc.PrintDocToString(built, printOpts)
	if err != nil {
		return fmt.Errorf("print document: %w", err)
	}

	out := result.Formatted
	if out != "" && out[len(out)-1] != '\n' {
		out += "\n"
	}
	if _, err := io.WriteString(cmd.OutOrStdout(), out); err != nil {
		return fmt.Errorf("write output: %w", err)
	}
	return nil
}

func runDebugComments(cmd *cobra.Command, path string) error {
	src, err := readDebugSource(cmd, path)
	if err != nil {
		return err
	}

	table, err := rustlite.AttachComments(src)
	if err != nil {
		return err
	}

	all := table.All()
	if len(all) == 0 {
		_, err := fmt.Fprintln(cmd.OutOrStdout(), "no comments")
		return err
	}

	var writeErr error
	for _, c := range all {
		_, err := fmt.Fprintln(cmd.OutOrStdout(), c.Describe())
		writeErr = errors.Join(writeErr, err)
	}
	return writeErr
}

// debugWidth returns the explicit width, the terminal width of w, or the
// engine default.
func debugWidth(w io.Writer, explicit int) int {
	if explicit > 0 {
		return explicit
	}
	if f, ok := w.(*os.File); ok {
		if width, _, err := term.GetSize(int(f.Fd())); err == nil && width > 0 {
			return width
		}
	}
	return doc.DefaultPrintWidth
}
