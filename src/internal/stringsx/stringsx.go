package stringsx

import "strings"

// FirstNonEmpty returns the first string in vals that is non-empty when trimmed.
func FirstNonEmpty(vals ...string) string {
	for _, v := range vals {
		if s := strings.TrimSpace(v); s != "" {
			return s
		}
	}
	return ""
}

// CollapseSpace trims s and collapses every internal whitespace run to a
// single space.
func CollapseSpace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// DigitsOnly reports whether s is non-empty and contains only ASCII digits.
func DigitsOnly(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
