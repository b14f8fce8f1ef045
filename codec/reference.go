package codec

import (
	"fmt"
	"regexp"
	"strings"
)

var (
	tsReferenceRe = regexp.MustCompile("^\\s*tilemap\\s*`([^`]*)`\\s*$")
	pyReferenceRe = regexp.MustCompile(`^\s*tilemap\s*\(\s*"""(.*?)"""\s*\)\s*$`)
)

// ReferenceText renders the reference form pointing at a named asset.
func ReferenceText(name string, d Dialect) string {
	if d == Python {
		return fmt.Sprintf(`tilemap("""%s""")`, name)
	}
	return fmt.Sprintf("tilemap`%s`", name)
}

// ParseReference extracts the (trimmed) asset name from a reference form.
func ParseReference(text string, d Dialect) (string, bool) {
	re := tsReferenceRe
	if d == Python {
		re = pyReferenceRe
	}
	m := re.FindStringSubmatch(text)
	if m == nil {
		return "", false
	}
	return strings.TrimSpace(m[1]), true
}

// UnescapeBackticks undoes the &#96; escaping applied to backticks inside
// markdown-hosted program text.
func UnescapeBackticks(s string) string {
	return strings.ReplaceAll(s, "&#96;", "`")
}
