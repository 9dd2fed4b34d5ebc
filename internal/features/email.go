package features

import "strings"

// freeDomains is the fixed consumer-webmail set.
var freeDomains = map[string]bool{
	"gmail.com":   true,
	"yahoo.com":   true,
	"hotmail.com": true,
	"outlook.com": true,
	"icloud.com":  true,
	"proton.me":   true,
}

// emailFeatures derives the email-based features. The domain is the
// lowercased substring after the last "@"; an address without "@" yields
// the whole lowercased string, matching the original split semantics.
func emailFeatures(email *string) (hasEmail int, domain *string, isFree int) {
	if email == nil {
		return 0, nil, 0
	}
	hasEmail = 1

	d := strings.ToLower(*email)
	if idx := strings.LastIndex(d, "@"); idx >= 0 {
		d = d[idx+1:]
	}
	domain = &d

	if freeDomains[d] {
		isFree = 1
	}
	return hasEmail, domain, isFree
}
