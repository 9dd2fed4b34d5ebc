package features

import (
	"time"

	"github.com/dkeller9/contactlens/internal/contact"
)

// MLColumns is the ML-ready feature subset. Downstream consumers depend on
// this exact order; append-only.
var MLColumns = []string{
	"name_length",
	"name_words",
	"has_title",
	"is_company",
	"phone_digit_count",
	"is_international",
	"has_extension",
	"has_email",
	"email_is_free",
	"has_notes",
	"notes_length",
	"notes_word_count",
	"notes_has_url",
	"created_month",
	"created_dayofweek",
	"created_hour",
	"is_weekend",
	"contact_quality_score",
	"category_encoded",
}

// FullColumns is the column order of the full enriched dataset: source
// columns first, then derived columns in engine order. The category column
// carries the resolved label ("Other" for NULL, trimmed).
var FullColumns = []string{
	"id", "name", "phone", "category", "email", "notes", "created_at", "updated_at",
	"name_length", "name_words", "has_title", "is_company",
	"phone_clean", "phone_digit_count", "is_international", "area_code", "has_extension",
	"has_email", "email_domain", "email_is_free",
	"has_notes", "notes_length", "notes_word_count", "notes_has_url",
	"created_year", "created_month", "created_dayofweek", "created_hour",
	"is_weekend", "days_since_creation", "was_recently_updated",
	"category_encoded", "contact_quality_score",
}

// MLValues returns the row's values in MLColumns order. Absent derived
// values are nil.
func MLValues(e contact.Enriched) []any {
	return []any{
		e.NameLength,
		e.NameWords,
		e.HasTitle,
		e.IsCompany,
		e.PhoneDigitCount,
		e.IsInternational,
		e.HasExtension,
		e.HasEmail,
		e.EmailIsFree,
		e.HasNotes,
		e.NotesLength,
		e.NotesWordCount,
		e.NotesHasURL,
		derefAny(e.CreatedMonth),
		derefAny(e.CreatedDayOfWeek),
		derefAny(e.CreatedHour),
		derefAny(e.IsWeekend),
		e.QualityScore,
		e.CategoryEncoded,
	}
}

// FullValues returns the row's values in FullColumns order.
func FullValues(e contact.Enriched) []any {
	return []any{
		e.ID, e.Name, e.Phone, e.CategoryLabel,
		strAny(e.Email), strAny(e.Notes),
		timeAny(e.CreatedAt), timeAny(e.UpdatedAt),
		e.NameLength, e.NameWords, e.HasTitle, e.IsCompany,
		e.PhoneClean, e.PhoneDigitCount, e.IsInternational, strAny(e.AreaCode), e.HasExtension,
		e.HasEmail, strAny(e.EmailDomain), e.EmailIsFree,
		e.HasNotes, e.NotesLength, e.NotesWordCount, e.NotesHasURL,
		derefAny(e.CreatedYear), derefAny(e.CreatedMonth), derefAny(e.CreatedDayOfWeek), derefAny(e.CreatedHour),
		derefAny(e.IsWeekend), derefAny(e.DaysSinceCreation), derefAny(e.WasRecentlyUpdated),
		e.CategoryEncoded, e.QualityScore,
	}
}

func derefAny(p *int) any {
	if p == nil {
		return nil
	}
	return *p
}

func strAny(p *string) any {
	if p == nil {
		return nil
	}
	return *p
}

func timeAny(t *time.Time) any {
	if t == nil {
		return nil
	}
	return t.Format("2006-01-02T15:04:05")
}
