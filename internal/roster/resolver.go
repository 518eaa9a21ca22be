package roster

import (
	"strings"

	"SignalScanner/internal/domain"
)

// corporateSuffixes are stripped from names when the loose matching policy is
// enabled. The list is deliberately short; anything fuzzier belongs to the
// roster-import tooling, not the automated feed.
var corporateSuffixes = []string{"inc", "llc", "ltd", "corp", "co"}

// Resolver maps a signal's matched query back to a roster company. Matching
// is exact string equality (case-insensitive); adapters that query by generic
// keyword phrases produce signals that cannot resolve here and are dropped.
type Resolver struct {
	byName        map[string]domain.CompanyRef
	stripSuffixes bool
}

// NewResolver builds the name lookup once per run from the full roster.
// With stripSuffixes enabled, trailing corporate suffixes ("Inc", "LLC", ...)
// are removed from both roster names and incoming queries before comparison.
func NewResolver(companies []domain.CompanyRef, stripSuffixes bool) *Resolver {
	r := &Resolver{
		byName:        make(map[string]domain.CompanyRef, len(companies)),
		stripSuffixes: stripSuffixes,
	}
	for _, c := range companies {
		r.byName[r.normalize(c.Name)] = c
	}
	return r
}

// Resolve returns the company the query names, if any.
func (r *Resolver) Resolve(query string) (domain.CompanyRef, bool) {
	ref, ok := r.byName[r.normalize(query)]
	return ref, ok
}

func (r *Resolver) normalize(name string) string {
	name = strings.ToLower(strings.TrimSpace(name))
	if !r.stripSuffixes {
		return name
	}
	for changed := true; changed; {
		changed = false
		name = strings.TrimSuffix(strings.TrimSpace(name), ",")
		for _, suffix := range corporateSuffixes {
			for _, form := range []string{" " + suffix, " " + suffix + "."} {
				if strings.HasSuffix(name, form) {
					name = strings.TrimSpace(strings.TrimSuffix(name, form))
					changed = true
				}
			}
		}
	}
	return name
}
