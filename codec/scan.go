package codec

import (
	"regexp"
	"sort"
)

// Match is one tilemap field value found in program source.
type Match struct {
	Start int
	End   int
	Text  string
	Line  int
}

var fieldPatterns = map[Dialect][]*regexp.Regexp{
	TypeScript: {
		regexp.MustCompile("tilemap\\s*`[^`]*`"),
		regexp.MustCompile(`tiles\s*\.\s*createTilemap\s*\((?s:.*?)TileScale\s*\.\s*\w+\s*\)`),
	},
	Python: {
		regexp.MustCompile(`tilemap\s*\(\s*"""(?s:.*?)"""\s*\)`),
		regexp.MustCompile(`tiles\s*\.\s*create_tilemap\s*\((?s:.*?)TileScale\s*\.\s*\w+\s*\)`),
	},
}

// FindFields returns every tilemap reference or literal in src, in source order.
func FindFields(src string, d Dialect) []Match {
	var out []Match
	for _, re := range fieldPatterns[d] {
		for _, loc := range re.FindAllStringIndex(src, -1) {
			out = append(out, Match{Start: loc[0], End: loc[1], Text: src[loc[0]:loc[1]]})
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Start < out[j].Start })

	line, pos := 1, 0
	for i := range out {
		for ; pos < out[i].Start; pos++ {
			if src[pos] == '\n' {
				line++
			}
		}
		out[i].Line = line
	}
	return out
}
