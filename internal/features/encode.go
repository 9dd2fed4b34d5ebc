package features

import (
	"sort"
	"strings"
)

// CategoryMapping is the bijection from category label to dense integer
// code for one batch. Codes are stable only within a single run; the
// mapping is exported alongside the data so consumers can invert it.
type CategoryMapping map[string]int

// ResolveCategory maps a nullable raw category to its label: NULL becomes
// "Other", then the value is trimmed. A present-but-empty string stays
// empty and is encoded as its own label.
func ResolveCategory(category *string) string {
	if category == nil {
		return "Other"
	}
	return strings.TrimSpace(*category)
}

// EncodeCategories assigns dense integer codes 0..n-1 to the distinct
// labels in sorted lexical order. The mapping is computed directly from
// the label set, so two runs over the same batch always agree.
func EncodeCategories(labels []string) CategoryMapping {
	distinct := make(map[string]bool, len(labels))
	for _, l := range labels {
		distinct[l] = true
	}

	sorted := make([]string, 0, len(distinct))
	for l := range distinct {
		sorted = append(sorted, l)
	}
	sort.Strings(sorted)

	mapping := make(CategoryMapping, len(sorted))
	for code, label := range sorted {
		mapping[label] = code
	}
	return mapping
}

// Labels returns the mapping's labels ordered by code.
func (m CategoryMapping) Labels() []string {
	labels := make([]string, len(m))
	for label, code := range m {
		labels[code] = label
	}
	return labels
}
