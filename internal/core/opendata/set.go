package opendata

import "sort"

// StringSet tracks distinct identifiers inside one group accumulator.
// Accumulators are request-scoped, so the set never outlives one
// aggregation call; cardinality is read only at finalize time.
type StringSet map[string]struct{}

// NewStringSet returns an empty set.
func NewStringSet() StringSet {
	return make(StringSet)
}

// Add inserts v. Empty strings are ignored so that NULL/blank identifiers
// never inflate distinct counts. Idempotent.
func (s StringSet) Add(v string) {
	if v == "" {
		return
	}
	s[v] = struct{}{}
}

// Has reports whether v is in the set.
func (s StringSet) Has(v string) bool {
	_, ok := s[v]
	return ok
}

// Len is the set cardinality.
func (s StringSet) Len() int {
	return len(s)
}

// Values returns the members in sorted order, for deterministic output.
func (s StringSet) Values() []string {
	out := make([]string, 0, len(s))
	for v := range s {
		out = append(out, v)
	}
	sort.Strings(out)
	return out
}
