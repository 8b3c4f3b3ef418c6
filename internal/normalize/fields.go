package normalize

import "strings"

// Field returns the first non-empty value among several possible header
// spellings. An exact-key pass runs before a case-insensitive pass, so
// dialects that differ only in casing still resolve predictably. Returns ""
// when no candidate key holds a value.
func Field(row map[string]string, keys ...string) string {
	for _, k := range keys {
		if v, ok := row[k]; ok && strings.TrimSpace(v) != "" {
			return v
		}
	}
	lower := make(map[string]string, len(row))
	for k, v := range row {
		lower[strings.ToLower(k)] = v
	}
	for _, k := range keys {
		if v, ok := lower[strings.ToLower(k)]; ok && strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}
