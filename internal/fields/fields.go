// Package fields implements the flattened list encoding used by the content
// tables: multi-value fields are stored as a single delimiter-joined string
// rather than a separate table. No escaping is performed, so items must not
// contain the delimiter; the write path rejects ones that do.
package fields

import "strings"

// Delimiters. CSVSep joins tags and technology lists, BulletSep joins
// feature and description bullet lists.
const (
	CSVSep    = ", "
	BulletSep = " • "
)

// JoinCSV flattens items into a comma-joined string.
func JoinCSV(items []string) string {
	return strings.Join(items, CSVSep)
}

// SplitCSV expands a comma-joined string. An empty string yields an empty
// slice, not a one-element slice.
func SplitCSV(s string) []string {
	return split(s, CSVSep)
}

// JoinBullets flattens items into a bullet-joined string.
func JoinBullets(items []string) string {
	return strings.Join(items, BulletSep)
}

// SplitBullets expands a bullet-joined string.
func SplitBullets(s string) []string {
	return split(s, BulletSep)
}

// Valid reports whether every item is non-empty and free of both
// delimiters, the precondition for the join/split round trip.
func Valid(items []string) bool {
	for _, it := range items {
		if it == "" || strings.Contains(it, CSVSep) || strings.Contains(it, BulletSep) {
			return false
		}
	}
	return true
}

func split(s, sep string) []string {
	if s == "" {
		return []string{}
	}
	return strings.Split(s, sep)
}
