package reconcile

import (
	"regexp"
	"strings"

	"github.com/antzucaro/matchr"
)

var whitespaceRegex = regexp.MustCompile(`\s+`)

func normalize(name string) string {
	name = strings.ToLower(name)
	return whitespaceRegex.ReplaceAllString(name, "")
}

// Link pairs an expected column name with the document header that most
// resembles it. Similarity is 1 for an exact match.
type Link struct {
	Expected   string
	Actual     string
	Similarity float64
}

// Columns pairs expected column names with actual header names, ignoring
// case and whitespace. Exact matches are taken first, every remaining expected name is then paired
// with the most Jaro-Winkler-similar header not already taken. Expected
// names without any candidate left are omitted.
func Columns(expected, actual []string) []Link {
	var result []Link
	matchedExpected := make(map[string]struct{})
	matchedActual := make(map[string]struct{})

	for _, e := range expected {
		for _, a := range actual {
			if _, taken := matchedActual[a]; taken {
				continue
			}
			if normalize(e) == normalize(a) {
				result = append(result, Link{Expected: e, Actual: a, Similarity: 1})
				matchedExpected[e] = struct{}{}
				matchedActual[a] = struct{}{}
				break
			}
		}
	}

	for _, e := range expected {
		if _, done := matchedExpected[e]; done {
			continue
		}

		var best float64
		var bestActual string
		for _, a := range actual {
			if _, taken := matchedActual[a]; taken {
				continue
			}
			similarity := matchr.JaroWinkler(normalize(e), normalize(a), false)
			if similarity > best {
				best = similarity
				bestActual = a
			}
		}

		if best > 0 {
			result = append(result, Link{Expected: e, Actual: bestActual, Similarity: best})
			matchedExpected[e] = struct{}{}
			matchedActual[bestActual] = struct{}{}
		}
	}

	return result
}

// Unmatched returns the actual headers no link points at.
func Unmatched(links []Link, actual []string) []string {
	used := make(map[string]struct{}, len(links))
	for _, l := range links {
		used[l.Actual] = struct{}{}
	}
	var out []string
	for _, a := range actual {
		if _, ok := used[a]; !ok {
			out = append(out, a)
		}
	}
	return out
}
