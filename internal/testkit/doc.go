// Package testkit checks the structural invariants of token and production
// streams. Tests and fuzz targets call it on every stream they produce.
package testkit
