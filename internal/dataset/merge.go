package dataset

import (
	"strings"

	"github.com/pfaustino/boycott-evil/internal/model"
)

// Merge combines two classification records for the same company into a new
// record, without mutating either input. Import sources report the same
// company repeatedly, so merging must be idempotent:
//
//   - supports are unioned with case-insensitive dedup
//   - alternatives are unioned by exact string
//   - citations are unioned by URL
//   - differing reasons are joined with "; "
//   - evil/good flags are OR-ed; the first non-empty category wins
func Merge(a, b model.CompanyRecord) model.CompanyRecord {
	out := model.CompanyRecord{
		Evil:     a.Evil || b.Evil,
		Good:     a.Good || b.Good,
		Reason:   mergeReasons(a.Reason, b.Reason),
		Category: a.Category,
	}
	if out.Category == "" {
		out.Category = b.Category
	}

	seen := make(map[string]bool, len(a.Supports)+len(b.Supports))
	for _, s := range append(append([]string{}, a.Supports...), b.Supports...) {
		key := strings.ToLower(strings.TrimSpace(s))
		if key == "" || seen[key] {
			continue
		}
		seen[key] = true
		out.Supports = append(out.Supports, s)
	}

	seenAlt := make(map[string]bool, len(a.Alternatives)+len(b.Alternatives))
	for _, alt := range append(append([]string{}, a.Alternatives...), b.Alternatives...) {
		if alt == "" || seenAlt[alt] {
			continue
		}
		seenAlt[alt] = true
		out.Alternatives = append(out.Alternatives, alt)
	}

	seenURL := make(map[string]bool, len(a.Citations)+len(b.Citations))
	for _, c := range append(append([]model.Citation{}, a.Citations...), b.Citations...) {
		if c.URL == "" || seenURL[c.URL] {
			continue
		}
		seenURL[c.URL] = true
		out.Citations = append(out.Citations, c)
	}

	return out
}

// MergeAll merges every record of src into dst under normalized keys,
// mutating and returning dst. A nil dst is allocated.
func MergeAll(dst, src map[string]model.CompanyRecord) map[string]model.CompanyRecord {
	if dst == nil {
		dst = make(map[string]model.CompanyRecord, len(src))
	}
	for name, rec := range src {
		key := model.NormalizeName(name)
		if key == "" {
			continue
		}
		if existing, ok := dst[key]; ok {
			dst[key] = Merge(existing, rec)
		} else {
			dst[key] = rec
		}
	}
	return dst
}

func mergeReasons(a, b string) string {
	switch {
	case a == "":
		return b
	case b == "" || a == b:
		return a
	case strings.Contains(a, b):
		return a
	default:
		return a + "; " + b
	}
}
