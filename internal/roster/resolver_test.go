package roster

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"SignalScanner/internal/domain"
)

func testRoster() []domain.CompanyRef {
	return []domain.CompanyRef{
		{ID: 1, Name: "Acme Capital", Tier: domain.TierSQO, Priority: 1},
		{ID: 2, Name: "Beta Lending, LLC", Tier: domain.TierTAM, Priority: 5},
	}
}

func TestResolveExactCaseInsensitive(t *testing.T) {
	t.Parallel()

	r := NewResolver(testRoster(), false)

	ref, ok := r.Resolve("acme capital")
	require.True(t, ok)
	assert.Equal(t, int64(1), ref.ID)

	ref, ok = r.Resolve("ACME CAPITAL")
	require.True(t, ok)
	assert.Equal(t, int64(1), ref.ID)
}

func TestResolveStrictness(t *testing.T) {
	t.Parallel()

	r := NewResolver(testRoster(), false)

	// No substring or fuzzy matching: a longer variant must not resolve.
	_, ok := r.Resolve("Acme Capital Group")
	assert.False(t, ok)

	_, ok = r.Resolve("Acme")
	assert.False(t, ok)

	_, ok = r.Resolve("private credit securitization")
	assert.False(t, ok)
}

func TestResolveSuffixPolicyDefaultOff(t *testing.T) {
	t.Parallel()

	r := NewResolver(testRoster(), false)

	_, ok := r.Resolve("Beta Lending")
	assert.False(t, ok, "suffix-bearing roster name must not match its bare form when the policy is off")
}

func TestResolveSuffixPolicyEnabled(t *testing.T) {
	t.Parallel()

	r := NewResolver(testRoster(), true)

	ref, ok := r.Resolve("Beta Lending")
	require.True(t, ok)
	assert.Equal(t, int64(2), ref.ID)

	ref, ok = r.Resolve("Acme Capital Inc.")
	require.True(t, ok)
	assert.Equal(t, int64(1), ref.ID)

	// Suffix stripping is not fuzzy matching.
	_, ok = r.Resolve("Acme Capital Group")
	assert.False(t, ok)
}
