// Package display renders user-facing output for the pngseq CLI: the
// old-name/new-name preview table, collision reports, and warnings.
//
// Color output is enabled only when writing to a real terminal, detected
// with go-isatty; everything degrades to plain text when piped.
package display
