package blob

import (
	"sort"
	"strings"
	"testing"

	"golang.org/x/tools/go/packages"
)

// TestOnlyExportPackageImportsBlobDrivers ensures that the concrete blob
// drivers stay behind the Store interface. Only the export package, which
// hosts the driver factory, may import them directly.
func TestOnlyExportPackageImportsBlobDrivers(t *testing.T) {
	driverPrefix := "electroplan/internal/blob/"
	allowed := map[string]bool{
		"electroplan/internal/export": true,
	}

	cfg := &packages.Config{Mode: packages.NeedName | packages.NeedImports, Tests: true}
	pkgs, err := packages.Load(cfg, "electroplan/...")
	if err != nil {
		t.Fatalf("load packages: %v", err)
	}

	seen := make(map[string]struct{})
	for _, pkg := range pkgs {
		base := strings.TrimSuffix(strings.TrimSuffix(pkg.PkgPath, "_test"), ".test")
		if allowed[base] || strings.HasPrefix(base, driverPrefix) {
			continue
		}
		for importPath := range pkg.Imports {
			if strings.HasPrefix(importPath, driverPrefix) {
				seen[base+": "+importPath] = struct{}{}
			}
		}
	}

	if len(seen) > 0 {
		violations := make([]string, 0, len(seen))
		for v := range seen {
			violations = append(violations, v)
		}
		sort.Strings(violations)
		for _, v := range violations {
			t.Errorf("forbidden import of blob driver package: %s", v)
		}
		t.Fatalf("found %d forbidden imports of blob driver packages", len(violations))
	}
}
