package features

import (
	"strings"
	"unicode/utf8"
)

// notesFeatures derives the notes-based features. A nil notes field counts
// as empty text: zero length, zero words.
func notesFeatures(notes *string) (hasNotes, length, wordCount, hasURL int) {
	if notes == nil {
		return 0, 0, 0, 0
	}
	hasNotes = 1

	length = utf8.RuneCountInString(*notes)
	wordCount = len(strings.Fields(*notes))

	lower := strings.ToLower(*notes)
	if strings.Contains(lower, "http://") || strings.Contains(lower, "https://") {
		hasURL = 1
	}
	return hasNotes, length, wordCount, hasURL
}
