// Package model holds the mutable state of an inspected object.
//
// A [Source] enumerates the browsable properties of a bound object and owns
// one [Property] per property name. A Property mediates between the value an
// editor shows and the value stored on the object: edits land in Value, and
// CommitOrRollback either converts and writes them through or restores the
// last committed value. [Categories] groups and orders the properties of a
// Source for display.
//
// Everything in this package is single-threaded. Calls, including change
// notifications raised by the bound object, are expected on the goroutine
// that owns the object.
package model
