// Package include splices included files into the token stream.
//
// A Resolver owns one Lexer per file on the inclusion stack. It recognises the
// directive "$[ path $]", loads path relative to the including file and keeps
// reading from the new file until its EOF token, which is passed through as a
// boundary marker before reading resumes after the directive. The stack is
// checked before every push, so a file can never be opened while it is still
// open. Re-including a file that was already closed is governed by Policy.
package include
