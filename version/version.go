// Package version compares tool version strings for display purposes only.
// The result decides whether a menu entry reads "Install" or "Update"; it
// never gates an installation.
package version

import (
	"strings"

	goversion "github.com/hashicorp/go-version"
)

type Result int

const (
	// NotComparable covers missing or unparsable versions. Callers treat
	// it as "not installed".
	NotComparable Result = iota
	// Newer means the latest version is newer than the current one.
	Newer
	// OlderOrEqual means the current version is up to date.
	OlderOrEqual
)

func (r Result) String() string {
	switch r {
	case Newer:
		return "newer"
	case OlderOrEqual:
		return "older/equal"
	}
	return "not comparable"
}

// Normalize strips exactly one leading "v" or "go" prefix and any build
// metadata after a hyphen or colon: "go1.25.1" -> "1.25.1",
// "v2.3.0-rc1" -> "2.3.0".
func Normalize(v string) string {
	v = strings.TrimSpace(v)
	if rest, found := strings.CutPrefix(v, "go"); found {
		v = rest
	} else if rest, found := strings.CutPrefix(v, "v"); found {
		v = rest
	}
	if i := strings.IndexAny(v, "-:"); i >= 0 {
		v = v[:i]
	}
	return v
}

// Compare classifies latest against current after normalizing both sides.
func Compare(current, latest string) Result {
	c := Normalize(current)
	l := Normalize(latest)
	if c == "" || l == "" {
		return NotComparable
	}

	cv, err := goversion.NewVersion(c)
	if err != nil {
		return NotComparable
	}
	lv, err := goversion.NewVersion(l)
	if err != nil {
		return NotComparable
	}

	if lv.GreaterThan(cv) {
		return Newer
	}
	return OlderOrEqual
}
