// Package dataset holds the classification datasets: the boycotted and
// recommended company sets and the brand-alias graph. All three are loaded
// once at startup and are read-only for the life of the process.
package dataset

import (
	"sort"
	"strings"

	"github.com/pfaustino/boycott-evil/internal/model"
)

// Library is the immutable in-memory view of the classification datasets.
// Construct with Load or NewLibrary; never mutate after construction.
type Library struct {
	boycotted   map[string]model.CompanyRecord
	recommended map[string]model.CompanyRecord
	aliases     map[string]string

	// Sorted key slices give scans a deterministic order; maps alone
	// would make search results and brand extraction order-unstable.
	boycottedNames   []string
	recommendedNames []string
	aliasKeys        []string
}

// NewLibrary builds a Library from already-parsed datasets. Keys are
// normalized to lowercase and self-aliases are dropped.
func NewLibrary(boycotted, recommended map[string]model.CompanyRecord, aliases map[string]string) *Library {
	lib := &Library{
		boycotted:   make(map[string]model.CompanyRecord, len(boycotted)),
		recommended: make(map[string]model.CompanyRecord, len(recommended)),
		aliases:     make(map[string]string, len(aliases)),
	}

	for name, rec := range boycotted {
		lib.boycotted[model.NormalizeName(name)] = rec
	}
	for name, rec := range recommended {
		lib.recommended[model.NormalizeName(name)] = rec
	}
	for brand, parent := range aliases {
		b := model.NormalizeName(brand)
		p := model.NormalizeName(parent)
		if b == "" || p == "" || b == p {
			continue
		}
		lib.aliases[b] = p
	}

	lib.boycottedNames = sortedKeys(lib.boycotted)
	lib.recommendedNames = sortedKeys(lib.recommended)
	lib.aliasKeys = make([]string, 0, len(lib.aliases))
	for k := range lib.aliases {
		lib.aliasKeys = append(lib.aliasKeys, k)
	}
	sort.Strings(lib.aliasKeys)

	return lib
}

// Boycotted looks up a company in the boycotted set by normalized name.
func (l *Library) Boycotted(name string) (model.CompanyRecord, bool) {
	rec, ok := l.boycotted[model.NormalizeName(name)]
	return rec, ok
}

// Recommended looks up a company in the recommended set by normalized name.
func (l *Library) Recommended(name string) (model.CompanyRecord, bool) {
	rec, ok := l.recommended[model.NormalizeName(name)]
	return rec, ok
}

// ResolveAlias maps a brand to its canonical parent company name.
// Resolution is single-hop: an alias value is assumed to be a company name,
// never another alias.
func (l *Library) ResolveAlias(brand string) (string, bool) {
	parent, ok := l.aliases[model.NormalizeName(brand)]
	return parent, ok
}

// BoycottedNames returns the boycotted company names in sorted order.
func (l *Library) BoycottedNames() []string {
	return l.boycottedNames
}

// RecommendedNames returns the recommended company names in sorted order.
func (l *Library) RecommendedNames() []string {
	return l.recommendedNames
}

// AliasKeys returns the alias brand keys in sorted order.
func (l *Library) AliasKeys() []string {
	return l.aliasKeys
}

// Counts returns the sizes of the three datasets.
func (l *Library) Counts() (boycotted, recommended, aliases int) {
	return len(l.boycotted), len(l.recommended), len(l.aliases)
}

// MatchNames returns up to limit names from the given sorted slice that
// contain term, compared case-insensitively.
func MatchNames(names []string, term string, limit int) []string {
	term = strings.ToLower(term)
	var out []string
	for _, name := range names {
		if strings.Contains(strings.ToLower(name), term) {
			out = append(out, name)
			if len(out) == limit {
				break
			}
		}
	}
	return out
}

func sortedKeys(m map[string]model.CompanyRecord) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
