package main

import (
	"fmt"
	"io"

	"mmfront/internal/diag"
	"mmfront/internal/diagfmt"
	"mmfront/internal/source"
)

func (a *app) prettyOpts(w io.Writer) diagfmt.PrettyOpts {
	return diagfmt.PrettyOpts{
		Color:     a.useColor(w),
		Context:   1,
		ShowNotes: true,
	}
}

// printDiagnostics renders bag to w; an empty bag prints nothing.
func (a *app) printDiagnostics(w io.Writer, bag *diag.Bag, fs *source.FileSet) error {
	if bag == nil || bag.Len() == 0 {
		return nil
	}
	if a.style == "short" {
		_, err := fmt.Fprintln(w, diag.FormatShort(bag.Items(), fs, true))
		return err
	}
	return diagfmt.Pretty(w, bag, fs, a.prettyOpts(w))
}

// reportError prints err as a diagnostic when it is one and turns it into
// errFaults; other errors are returned unchanged.
func (a *app) reportError(w io.Writer, err error) error {
	de, ok := diag.AsError(err)
	if !ok {
		return err
	}
	bag := diag.NewBag(1)
	diag.ReportError(diag.BagReporter{Bag: bag}, de)
	if perr := a.printDiagnostics(w, bag, source.NewFileSet()); perr != nil {
		return perr
	}
	return errFaults
}
