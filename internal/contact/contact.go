// Package contact defines the contact record types shared across the
// pipeline: the raw row shape read from the record source and the
// enriched row shape produced by the feature engine.
package contact

import (
	"strings"
	"time"
)

// Record is a raw contact row as read from the record source.
// Nullable columns are pointers; a nil timestamp means the stored value
// was absent or failed to parse.
type Record struct {
	ID        int64      `json:"id"`
	Name      string     `json:"name"`
	Phone     string     `json:"phone"`
	Category  *string    `json:"category"`
	Email     *string    `json:"email"`
	Notes     *string    `json:"notes"`
	CreatedAt *time.Time `json:"created_at"`
	UpdatedAt *time.Time `json:"updated_at"`
}

// Enriched is a Record plus the derived feature fields. Derived fields
// that depend on an absent or unparseable source value are nil.
//
// Boolean features are encoded as 0/1 ints so the exported datasets are
// directly ML-consumable.
type Enriched struct {
	Record

	NameLength int `json:"name_length"`
	NameWords  int `json:"name_words"`
	HasTitle   int `json:"has_title"`
	IsCompany  int `json:"is_company"`

	PhoneClean      string  `json:"phone_clean"`
	PhoneDigitCount int     `json:"phone_digit_count"`
	IsInternational int     `json:"is_international"`
	AreaCode        *string `json:"area_code"`
	HasExtension    int     `json:"has_extension"`

	HasEmail    int     `json:"has_email"`
	EmailDomain *string `json:"email_domain"`
	EmailIsFree int     `json:"email_is_free"`

	HasNotes       int `json:"has_notes"`
	NotesLength    int `json:"notes_length"`
	NotesWordCount int `json:"notes_word_count"`
	NotesHasURL    int `json:"notes_has_url"`

	CreatedYear        *int `json:"created_year"`
	CreatedMonth       *int `json:"created_month"`
	CreatedDayOfWeek   *int `json:"created_dayofweek"`
	CreatedHour        *int `json:"created_hour"`
	IsWeekend          *int `json:"is_weekend"`
	DaysSinceCreation  *int `json:"days_since_creation"`
	WasRecentlyUpdated *int `json:"was_recently_updated"`

	// CategoryLabel is the resolved category: NULL replaced with "Other",
	// then trimmed. The embedded Record keeps the raw value.
	CategoryLabel   string `json:"category_label"`
	CategoryEncoded int    `json:"category_encoded"`

	QualityScore int `json:"contact_quality_score"`
}

// timestampLayouts are tried in order when parsing stored timestamps.
var timestampLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// ParseTimestamp parses a stored timestamp string leniently.
// Returns nil for empty or unparseable input; a bad timestamp must never
// fail the row it belongs to.
func ParseTimestamp(s string) *time.Time {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	for _, layout := range timestampLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return &t
		}
	}
	return nil
}
