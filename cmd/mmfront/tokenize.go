package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"mmfront/internal/diagfmt"
	"mmfront/internal/driver"
)

func (a *app) tokenizeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tokenize [flags] file.mm",
		Short: "Print the token stream of a database",
		Long: `Tokenize reads a database, splices included files in place of their
directives and prints every token, including one EOF per file`,
		Args: cobra.ExactArgs(1),
		RunE: a.runTokenize,
	}
	cmd.Flags().String("format", "pretty", "output format (pretty|json)")
	return cmd
}

func (a *app) runTokenize(cmd *cobra.Command, args []string) error {
	defer a.dumpTraceOnPanic()

	format, err := cmd.Flags().GetString("format")
	if err != nil {
		return fmt.Errorf("failed to get format flag: %w", err)
	}
	if format != "pretty" && format != "json" {
		return fmt.Errorf("unknown format: %s", format)
	}

	result, err := driver.Tokenize(cmd.Context(), args[0], a.driverOptions())
	if err != nil {
		return a.reportError(cmd.ErrOrStderr(), err)
	}

	out := cmd.OutOrStdout()
	switch format {
	case "json":
		err = diagfmt.FormatTokensJSON(out, result.Tokens, result.FileSet)
	default:
		err = diagfmt.FormatTokensPretty(out, result.Tokens, result.FileSet)
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
