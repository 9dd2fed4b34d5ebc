package features

import "strings"

// phoneFeatures derives the phone-based features from the raw phone string.
//
// The cleaned projection keeps digit characters only. The area code is the
// first three digits and is defined only when at least ten digits are
// present; is_international means more than ten.
func phoneFeatures(raw string) (clean string, digitCount, isInternational int, areaCode *string, hasExtension int) {
	var b strings.Builder
	for _, r := range raw {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	clean = b.String()
	digitCount = len(clean)

	if digitCount > 10 {
		isInternational = 1
	}
	if digitCount >= 10 {
		code := clean[:3]
		areaCode = &code
	}

	lower := strings.ToLower(raw)
	if strings.Contains(lower, "x") || strings.Contains(lower, "ext") || strings.Contains(lower, "#") {
		hasExtension = 1
	}

	return clean, digitCount, isInternational, areaCode, hasExtension
}
