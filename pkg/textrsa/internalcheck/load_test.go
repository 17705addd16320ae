package internalcheck

import (
	"testing"

	"golang.org/x/tools/go/packages"
)

const libraryPattern = "github.com/coinbase/textrsa-go/pkg/textrsa/..."

func loadLibrary(t *testing.T, mode packages.LoadMode) []*packages.Package {
	t.Helper()

	cfg := &packages.Config{Mode: mode}
	pkgs, err := packages.Load(cfg, libraryPattern)
	if err != nil {
		t.Fatalf("load packages: %v", err)
	}
	if packages.PrintErrors(pkgs) > 0 {
		t.Fatalf("packages under %s have errors", libraryPattern)
	}
	return pkgs
}
