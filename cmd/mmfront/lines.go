package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"mmfront/internal/driver"
)

func (a *app) linesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "lines file",
		Short: "Count the lines of a file",
		Long: `Lines counts the lines of a file. A trailing newline is reported
separately, as in "12+1"`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			count, err := driver.CountLines(args[0])
			if err != nil {
				return a.reportError(cmd.ErrOrStderr(), err)
			}
			if a.quiet {
				_, err = fmt.Fprintln(cmd.OutOrStdout(), count)
			} else {
				_, err = fmt.Fprintf(cmd.OutOrStdout(), "The file has %s lines\n", count)
			}
			return err
		},
	}
}
