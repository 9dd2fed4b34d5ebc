package features

import "testing"

func TestPhoneFeaturesCleanIsDigitsOnly(t *testing.T) {
	cases := []struct {
		raw   string
		clean string
	}{
		{"+1 (415) 555-0199", "14155550199"},
		{"555-1234", "5551234"},
		{"no digits here", ""},
		{"", ""},
		{"00 49 (0)30 901820", "0049030901820"},
	}

	for _, tc := range cases {
		clean, count, _, _, _ := phoneFeatures(tc.raw)
		if clean != tc.clean {
			t.Errorf("phoneFeatures(%q) clean = %q, want %q", tc.raw, clean, tc.clean)
		}
		if count != len(clean) {
			t.Errorf("phoneFeatures(%q) count = %d, want len(clean) = %d", tc.raw, count, len(clean))
		}
		for _, r := range clean {
			if r < '0' || r > '9' {
				t.Errorf("phoneFeatures(%q) clean contains non-digit %q", tc.raw, r)
			}
		}
	}
}

func TestPhoneFeaturesInternationalAndAreaCode(t *testing.T) {
	// Exactly 10 digits: domestic, but area code defined.
	_, count, intl, area, _ := phoneFeatures("(415) 555-0199")
	if count != 10 || intl != 0 {
		t.Errorf("10-digit: count=%d intl=%d, want 10/0", count, intl)
	}
	if area == nil || *area != "415" {
		t.Errorf("10-digit: area = %v, want 415", area)
	}

	// 11 digits: international.
	_, _, intl, area, _ = phoneFeatures("+1 415 555 0199 ")
	if intl != 1 {
		t.Errorf("11-digit: intl = %d, want 1", intl)
	}
	if area == nil || *area != "141" {
		t.Errorf("11-digit: area = %v, want first three cleaned digits", area)
	}

	// 9 digits: no area code.
	_, _, _, area, _ = phoneFeatures("415 555 019")
	if area != nil {
		t.Errorf("9-digit: area = %v, want nil", area)
	}
}

func TestPhoneFeaturesExtension(t *testing.T) {
	cases := []struct {
		raw  string
		want int
	}{
		{"555-0199 ext 12", 1},
		{"555-0199 X4", 1},
		{"555-0199#12", 1},
		{"555-0199", 0},
	}
	for _, tc := range cases {
		_, _, _, _, ext := phoneFeatures(tc.raw)
		if ext != tc.want {
			t.Errorf("phoneFeatures(%q) hasExtension = %d, want %d", tc.raw, ext, tc.want)
		}
	}
}
