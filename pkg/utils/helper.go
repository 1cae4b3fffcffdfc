package utils

import (
	"strings"
)

// ShortRef formats the customer-facing order reference, e.g. "#3F2A9C1B".
func ShortRef(id string, length int) string {
	ref := strings.ReplaceAll(id, "-", "")
	if length > 0 && len(ref) > length {
		ref = ref[:length]
	}
	return "#" + strings.ToUpper(ref)
}

// NilIfBlank trims s and returns nil when nothing is left.
func NilIfBlank(s string) *string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	return &s
}
