// Package report renders the analysis report: summary statistics, a chart
// panel as a static SVG image, and an HTML document that embeds both.
// All rendering configuration is explicit; the package holds no globals.
package report

import (
	"time"

	"github.com/dkeller9/contactlens/internal/contact"
	"github.com/dkeller9/contactlens/internal/features"
)

// HighQualityScore is the quality-score threshold used in the summary.
const HighQualityScore = 5

// Summary holds the headline statistics shown in the report.
type Summary struct {
	TotalContacts    int       `json:"total_contacts"`
	UniqueCategories int       `json:"unique_categories"`
	WithEmail        int       `json:"contacts_with_email"`
	WithNotes        int       `json:"contacts_with_notes"`
	International    int       `json:"international_numbers"`
	HighQuality      int       `json:"high_quality"`
	GeneratedAt      time.Time `json:"generated_at"`
}

// BuildSummary computes the summary statistics for a batch.
func BuildSummary(records []contact.Enriched, mapping features.CategoryMapping, now time.Time) Summary {
	s := Summary{
		TotalContacts:    len(records),
		UniqueCategories: len(mapping),
		GeneratedAt:      now,
	}
	for i := range records {
		e := &records[i]
		s.WithEmail += e.HasEmail
		s.WithNotes += e.HasNotes
		s.International += e.IsInternational
		if e.QualityScore >= HighQualityScore {
			s.HighQuality++
		}
	}
	return s
}
