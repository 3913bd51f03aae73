// Package diag holds the diagnostic value types exchanged between the
// analysis engine adapter and the result matcher. Diagnostics are
// produced fresh by every run and discarded after matching.
package diag
