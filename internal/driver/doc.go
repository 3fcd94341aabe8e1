// Package driver runs the front end over databases on disk: it loads the
// top-level file, wires lexer, include resolver and production builder
// together, and collects the outcome into results the CLI renders.
//
// Every database gets its own source.FileSet; Check runs several databases
// concurrently but each one is still processed by a single goroutine.
package driver
