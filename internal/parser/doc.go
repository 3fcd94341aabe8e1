// Package parser groups resolved tokens into productions.
//
// The Builder is a small state machine (idle, comment, statement, proof)
// plus a stack of open scopes. It is the place where provisional words get
// their final role: statement labels and proof steps become Label, words of
// expressions and declarations become MathSymbol, and "(" / ")" outside a
// proof are ordinary math symbols.
//
// Comments that occur inside a statement belong to that statement's
// production. The end of an included file seen between statements becomes a
// one-token CatFileEnd production; the end of the root file ends the stream.
package parser
