package link

import (
	"strings"

	"golang.org/x/text/unicode/norm"
)

// Snapshot is a field-presence-checkable record of an entity, supplied
// by the caller's entity provider. Providers return best-effort partial
// records so validation can name the exact missing fields.
type Snapshot map[string]any

// Has reports whether the snapshot carries a usable value for the
// field. Presence is truthiness: absent, nil, empty string and numeric
// zero all count as missing. Callers must supply fully-populated
// snapshots to avoid false negatives on legitimately-zero numeric
// fields.
func (s Snapshot) Has(field string) bool {
	v, ok := s[field]
	if !ok || v == nil {
		return false
	}
	switch val := v.(type) {
	case string:
		return val != ""
	case bool:
		return val
	case int:
		return val != 0
	case int64:
		return val != 0
	case float64:
		return val != 0
	}
	return true
}

// CanonicalID returns the canonical form of an entity identifier:
// trimmed and NFC-normalized, so identifiers arriving from different
// external systems compare stably.
func CanonicalID(id string) string {
	return norm.NFC.String(strings.TrimSpace(id))
}
