package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"mmfront/internal/diagfmt"
	"mmfront/internal/driver"
)

func (a *app) parseCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "parse [flags] file.mm",
		Short: "Print the productions of a database",
		Long: `Parse groups the token stream of a database into productions (comments,
scope blocks, declarations, assertions and included file ends) and prints them`,
		Args: cobra.ExactArgs(1),
		RunE: a.runParse,
	}
	cmd.Flags().String("format", "pretty", "output format (pretty|json|msgpack)")
	cmd.Flags().StringP("output", "o", "", "write productions to this file instead of stdout")
	cmd.Flags().Int("width", -1, "truncate pretty lines to this many columns (-1=terminal width, 0=off)")
	return cmd
}

func (a *app) runParse(cmd *cobra.Command, args []string) error {
	defer a.dumpTraceOnPanic()

	format, err := cmd.Flags().GetString("format")
	if err != nil {
		return fmt.Errorf("failed to get format flag: %w", err)
	}
	outputPath, err := cmd.Flags().GetString("output")
	if err != nil {
		return fmt.Errorf("failed to get output flag: %w", err)
	}
	width, err := cmd.Flags().GetInt("width")
	if err != nil {
		return fmt.Errorf("failed to get width flag: %w", err)
	}
	switch format {
	case "pretty", "json":
	case "msgpack":
		if outputPath == "" && isTerminal(cmd.OutOrStdout()) {
			return fmt.Errorf("refusing to write msgpack to a terminal; use --output")
		}
	default:
		return fmt.Errorf("unknown format: %s", format)
	}

	result, err := driver.Parse(cmd.Context(), args[0], a.driverOptions())
	if err != nil {
		return a.reportError(cmd.ErrOrStderr(), err)
	}

	if outputPath == "" {
		err = writeProductions(cmd.OutOrStdout(), format, width, result)
	} else {
		err = writeProductionsFile(outputPath, format, result)
	}
	if err != nil {
		return err
	}

	if err := a.printDiagnostics(cmd.ErrOrStderr(), result.Bag, result.FileSet); err != nil {
		return err
	}
	if result.Err != nil {
		return errFaults
	}
	return nil
}

func writeProductions(out io.Writer, format string, width int, result *driver.ParseResult) error {
	switch format {
	case "json":
		return diagfmt.FormatProductionsJSON(out, result.Productions, result.FileSet, result.Root)
	case "msgpack":
		return diagfmt.FormatProductionsMsgpack(out, result.Productions, result.FileSet, result.Root)
	default:
		if width < 0 {
			width = terminalWidth(out)
		}
		return diagfmt.FormatProductionsPretty(out, result.Productions, result.FileSet, width)
	}
}

func writeProductionsFile(path, format string, result *driver.ParseResult) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := writeProductions(f, format, 0, result); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}

// terminalWidth returns the width of w when it is a terminal, 0 otherwise.
func terminalWidth(w io.Writer) int {
	f, ok := w.(*os.File)
	if !ok || !isTerminal(f) {
		return 0
	}
	width, _, err := term.GetSize(int(f.Fd())) // #nosec G115 -- file descriptors fit in int
	if err != nil {
		return 0
	}
	return width
}
