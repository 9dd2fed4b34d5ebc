// Package features implements the feature engine: a pure batch
// transformation of contact records into enriched records plus a category
// encoding. Every derived field is a function of its own row, the injected
// reference instant, and fixed lookup sets; rows are never dropped,
// reordered, or mutated.
package features

import (
	"time"

	"github.com/dkeller9/contactlens/internal/contact"
)

// Result is the feature engine output: enriched rows (same length and
// order as the input) and the category mapping for the batch.
type Result struct {
	Records []contact.Enriched `json:"records"`
	Mapping CategoryMapping    `json:"category_mapping"`
}

// Enrich derives all features for a batch of records.
//
// The reference instant `now` pins days_since_creation, making the
// transform deterministic: the same input and the same `now` produce
// identical output. An empty input yields an empty result, not an error.
//
// Category encoding is two-phase: distinct labels are collected across the
// whole batch before any row's code is assigned.
func Enrich(records []contact.Record, now time.Time) *Result {
	labels := make([]string, len(records))
	for i := range records {
		labels[i] = ResolveCategory(records[i].Category)
	}
	mapping := EncodeCategories(labels)

	enriched := make([]contact.Enriched, len(records))
	for i := range records {
		e := enrichRow(records[i], now)
		e.CategoryLabel = labels[i]
		e.CategoryEncoded = mapping[labels[i]]
		enriched[i] = e
	}

	return &Result{Records: enriched, Mapping: mapping}
}

// enrichRow derives every per-row feature except the category code, which
// needs the full batch.
func enrichRow(r contact.Record, now time.Time) contact.Enriched {
	e := contact.Enriched{Record: r}
	e.Name = trimName(r.Name)

	e.NameLength, e.NameWords, e.HasTitle, e.IsCompany = nameFeatures(e.Name)
	e.PhoneClean, e.PhoneDigitCount, e.IsInternational, e.AreaCode, e.HasExtension = phoneFeatures(r.Phone)
	e.HasEmail, e.EmailDomain, e.EmailIsFree = emailFeatures(r.Email)
	e.HasNotes, e.NotesLength, e.NotesWordCount, e.NotesHasURL = notesFeatures(r.Notes)
	applyTimeFeatures(&e, r.CreatedAt, r.UpdatedAt, now)

	e.QualityScore = QualityScore(e.HasEmail, e.HasNotes, e.NotesLength, e.EmailIsFree)

	return e
}
