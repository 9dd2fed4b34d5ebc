package features

import (
	"time"

	"github.com/dkeller9/contactlens/internal/contact"
)

// applyTimeFeatures fills the time-derived fields on e.
//
// A nil created_at leaves every dependent field nil; the row itself is
// kept. was_recently_updated needs both timestamps and means the update
// happened more than one day after creation.
func applyTimeFeatures(e *contact.Enriched, created, updated *time.Time, now time.Time) {
	if created != nil {
		e.CreatedYear = intPtr(created.Year())
		e.CreatedMonth = intPtr(int(created.Month()))
		e.CreatedDayOfWeek = intPtr(mondayIndexed(created.Weekday()))
		e.CreatedHour = intPtr(created.Hour())

		weekend := 0
		if *e.CreatedDayOfWeek == 5 || *e.CreatedDayOfWeek == 6 {
			weekend = 1
		}
		e.IsWeekend = intPtr(weekend)

		e.DaysSinceCreation = intPtr(int(now.Sub(*created).Hours() / 24))
	}

	if created != nil && updated != nil {
		recent := 0
		if updated.Sub(*created) > 24*time.Hour {
			recent = 1
		}
		e.WasRecentlyUpdated = intPtr(recent)
	}
}

// mondayIndexed converts Go's Sunday-first weekday to 0=Monday..6=Sunday.
func mondayIndexed(d time.Weekday) int {
	return (int(d) + 6) % 7
}

func intPtr(v int) *int { return &v }
