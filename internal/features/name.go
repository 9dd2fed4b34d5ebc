package features

import (
	"strings"
	"unicode/utf8"
)

// titleTokens are personal/professional titles, matched case-insensitively
// as whole words, optionally followed by a period.
var titleTokens = map[string]bool{
	"dr": true, "mr": true, "mrs": true, "ms": true,
	"prof": true, "eng": true, "sir": true, "lady": true,
}

// companySuffixes are matched case-sensitively as whole words. "Co." is
// handled separately because its period is part of the token.
var companySuffixes = map[string]bool{
	"Inc": true, "Ltd": true, "Corp": true, "LLC": true,
	"GmbH": true, "Company": true,
}

func trimName(name string) string {
	return strings.TrimSpace(name)
}

// nameFeatures derives the name-based features from an already-trimmed name.
func nameFeatures(name string) (length, words, hasTitle, isCompany int) {
	length = utf8.RuneCountInString(name)
	fields := strings.Fields(name)
	words = len(fields)

	for _, tok := range fields {
		// Strip surrounding punctuation so "(Dr.)" and "Dr." both match.
		bare := strings.Trim(tok, "().,;:")
		if titleTokens[strings.ToLower(bare)] {
			hasTitle = 1
		}

		if companySuffixes[strings.TrimRight(strings.Trim(tok, "(),;:"), ".")] {
			isCompany = 1
		}
		// "Co." requires its period; a bare "Co" is not a company marker.
		if strings.HasPrefix(strings.Trim(tok, "(),;:"), "Co.") {
			isCompany = 1
		}
	}

	return length, words, hasTitle, isCompany
}
