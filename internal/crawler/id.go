package crawler

import (
	"fmt"
	"strings"
)

// ParseID extracts a puzzle ID and kind from user input: either a bare
// numeric ID or a nonograms.org URL like .../nonograms2/i/65831. Bare
// IDs default to color puzzles.
func ParseID(input string) (Kind, string, error) {
	trimmed := strings.TrimSpace(input)
	if trimmed != "" && allDigits(trimmed) {
		return Color, trimmed, nil
	}

	kind := Color
	if strings.Contains(trimmed, "/nonograms/") {
		kind = BlackWhite
	}

	const marker = "/i/"
	start := strings.Index(trimmed, marker)
	if start < 0 {
		return "", "", fmt.Errorf("not a nonograms.org URL or puzzle ID: %q", input)
	}
	rest := trimmed[start+len(marker):]
	end := 0
	for end < len(rest) && rest[end] >= '0' && rest[end] <= '9' {
		end++
	}
	if end == 0 {
		return "", "", fmt.Errorf("no puzzle ID in %q", input)
	}
	return kind, rest[:end], nil
}

func allDigits(s string) bool {
	for _, ch := range s {
		if ch < '0' || ch > '9' {
			return false
		}
	}
	return true
}
