package lookup

import (
	"slices"
	"sort"

	"github.com/lithammer/fuzzysearch/fuzzy"
)

// maxSuggestions caps the candidate list attached to a lookup miss.
const maxSuggestions = 3

// Suggest returns known texture keys or skeleton codes close to code.
// Keys that contain code as a subsequence rank first, then keys that are
// a prefix-style subsequence of code (e.g. "ls" for "ls9"), by edit distance.
func (t *Tables) Suggest(code string) []string {
	if code == "" {
		return nil
	}

	known := append(slices.Clone(t.textureKeys), t.rockCodes...)

	ranks := fuzzy.RankFindFold(code, known)
	for _, key := range known {
		if key != code && fuzzy.MatchFold(key, code) {
			ranks = append(ranks, fuzzy.Rank{
				Source:   code,
				Target:   key,
				Distance: fuzzy.LevenshteinDistance(code, key),
			})
		}
	}

	sort.Stable(ranks)

	out := make([]string, 0, maxSuggestions)
	for _, r := range ranks {
		if r.Target == code || slices.Contains(out, r.Target) {
			continue
		}

		out = append(out, r.Target)
		if len(out) == maxSuggestions {
			break
		}
	}

	return out
}
