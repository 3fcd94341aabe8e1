// Package token defines lexical token kinds for Metamath databases.
// Invariants:
//   - Token.Text is the exact source slice covered by Token.Span.
//   - Word, Label, MathSymbol, CommentedLiteral and CompressedProofPart always
//     carry non-empty Text.
//   - The lexer only ever produces Word for bare words; Label and MathSymbol are
//     assigned by the production builder, which knows the grammatical slot.
//   - EOF is synthetic: one per fully consumed file, with an empty span at the
//     end of that file.
package token
