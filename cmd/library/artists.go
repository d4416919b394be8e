package library

import (
	"regexp"
	"strings"

	"github.com/samber/lo"
)

var artistSeparator = regexp.MustCompile(`(?i)\s*(?:,|;|&|/|\bfeat\.?|\bft\.?|\bfeaturing)\s+`)

// SplitArtists breaks a combined artist credit such as "A feat. B & C" into
// its individual names.
func SplitArtists(s string) []string {
	parts := artistSeparator.Split(s, -1)
	parts = lo.Map(parts, func(p string, _ int) string { return strings.TrimSpace(p) })
	return lo.Compact(parts)
}
