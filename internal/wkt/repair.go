// Package wkt repairs and parses Well-Known Text geometry strings.
package wkt

import "strings"

const polygonTag = "POLYGON"

// Repair closes an unclosed POLYGON exterior ring. Input that is not a
// single-ring POLYGON, or whose ring already closes, is returned unchanged.
//
// Polygons with holes are not rebuilt; they pass through as-is and are left
// for Parse to accept or reject.
func Repair(text string) string {
	trimmed := strings.TrimSpace(text)
	if !strings.HasPrefix(trimmed, polygonTag) {
		return text
	}

	open := strings.Index(trimmed, "((")
	closing := strings.LastIndex(trimmed, "))")
	if open < 0 || closing < open+2 {
		return text
	}

	body := trimmed[open+2 : closing]
	if strings.ContainsAny(body, "()") {
		return text
	}

	coords := ringTokens(body)
	if len(coords) == 0 || coords[0] == coords[len(coords)-1] {
		return text
	}
	coords = append(coords, coords[0])

	header := strings.TrimSpace(trimmed[:open])
	return header + " ((" + strings.Join(coords, ", ") + "))"
}

// ringTokens splits a ring body into normalized coordinate tokens,
// dropping the empty tokens left by stray separators.
func ringTokens(body string) []string {
	parts := strings.Split(body, ",")
	coords := make([]string, 0, len(parts)+1)
	for _, p := range parts {
		tok := strings.Join(strings.Fields(p), " ")
		if tok == "" {
			continue
		}
		coords = append(coords, tok)
	}
	return coords
}
