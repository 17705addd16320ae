// Package internalcheck holds static policy tests for the textrsa packages.
//
// The tests load the library with golang.org/x/tools/go/packages and walk
// its syntax trees. They fail on comparisons of *big.Int by pointer, on
// printf-style hex formatting (secrets must go through logging.Redacted) and
// on direct printing from the computational packages.
//
// # Internal Use Only
//
// Nothing here is meant to be imported.
package internalcheck
