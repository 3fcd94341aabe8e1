// Package fuzztests holds Go fuzz harnesses for the front end
// (source -> lexer -> include resolver -> production builder). They guard
// against panics, hangs and broken stream invariants on arbitrary input.
package fuzztests
