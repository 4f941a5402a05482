// Package formats provides parsers for the model file formats lumen reads.
// Parsers are pure: they never touch the GPU and are safe to run from
// several goroutines at once.
package formats
