package discovery

import "strings"

// Filter keeps only tests whose path starts with one of a set of
// prefixes. An empty filter matches everything.
type Filter struct {
	prefixes []string
}

// NewFilter creates a Filter from path prefixes as given on the command
// line, without leading slashes.
func NewFilter(prefixes []string) *Filter {
	cleaned := make([]string, 0, len(prefixes))
	for _, p := range prefixes {
		cleaned = append(cleaned, strings.TrimPrefix(p, "/"))
	}
	return &Filter{prefixes: cleaned}
}

// Matches reports whether the canonical test path (leading slash
// included) passes the filter.
func (f *Filter) Matches(path string) bool {
	if f == nil || len(f.prefixes) == 0 {
		return true
	}
	rel := strings.TrimPrefix(path, "/")
	for _, p := range f.prefixes {
		if strings.HasPrefix(rel, p) {
			return true
		}
	}
	return false
}
