package model

// Citation is one published source backing a company's classification.
type Citation struct {
	URL    string `json:"url"`
	Source string `json:"source"`
	Title  string `json:"title,omitempty"`
	Date   string `json:"date,omitempty"`
}

// CompanyRecord is the classification record for one canonical company.
// The same shape serves both the boycotted ("evil") and recommended
// ("good") datasets; records are built by the import pipeline through
// repeated merges and are read-only to the resolution core.
type CompanyRecord struct {
	Evil         bool       `json:"evil,omitempty"`
	Good         bool       `json:"good,omitempty"`
	Reason       string     `json:"reason,omitempty"`
	Category     string     `json:"category,omitempty"`
	Alternatives []string   `json:"alternatives,omitempty"`
	Supports     []string   `json:"supports,omitempty"`
	Citations    []Citation `json:"citations,omitempty"`
}

// HasSupport reports whether the record carries the given tag category,
// compared case-insensitively.
func (r CompanyRecord) HasSupport(tag string) bool {
	want := NormalizeName(tag)
	for _, s := range r.Supports {
		if NormalizeName(s) == want {
			return true
		}
	}
	return false
}
