package domain

import (
	"testing"

	"electroplan/testutil"
)

// TestDomainStaysFreeOfInternalImports keeps the domain package a pure data
// layer. Storage, pricing, and transport all import domain, never the other
// way around.
func TestDomainStaysFreeOfInternalImports(t *testing.T) {
	testutil.AssertNoDirectImports(t, ".", testutil.InternalImportForbidden,
		"pkg/domain must not depend on internal packages")
	testutil.AssertNoTransitiveDependency(t, ".", testutil.InternalImportForbidden,
		"pkg/domain must not depend on internal packages")
}
