// Package suggest finds known names similar to a mistyped one.
package suggest

import (
	"cmp"
	"slices"
	"strings"
)

// threshold is the minimum similarity score required for a name to be suggested.
const threshold = 0.5

type scored struct {
	name  string
	score float64
}

// FindSimilar returns up to maxResults candidates similar to target, most similar first. Names
// are compared case-insensitively and duplicate candidates are reported once. It returns nil
// when nothing is similar enough.
func FindSimilar(target string, candidates []string, maxResults int) []string {
	if target == "" || maxResults <= 0 {
		return nil
	}
	seen := make(map[string]bool, len(candidates))
	var matches []scored
	for _, name := range candidates {
		key := strings.ToLower(name)
		if seen[key] {
			continue
		}
		seen[key] = true
		if score := similarity(target, name); score > threshold {
			matches = append(matches, scored{name: name, score: score})
		}
	}
	if len(matches) == 0 {
		return nil
	}
	slices.SortFunc(matches, func(a, b scored) int {
		if c := cmp.Compare(b.score, a.score); c != 0 {
			return c
		}
		return cmp.Compare(a.name, b.name)
	})
	result := make([]string, 0, min(maxResults, len(matches)))
	for _, m := range matches[:min(maxResults, len(matches))] {
		result = append(result, m.name)
	}
	return result
}

// similarity scores a and b between 0 and 1. A candidate starting with the target scores 0.9;
// otherwise the score is derived from the edit distance.
func similarity(a, b string) float64 {
	a, b = strings.ToLower(a), strings.ToLower(b)
	if a == b {
		return 1.0
	}
	if a != "" && strings.HasPrefix(b, a) {
		return 0.9
	}
	ra, rb := []rune(a), []rune(b)
	longest := max(len(ra), len(rb))
	return 1.0 - float64(distance(ra, rb))/float64(longest)
}

// distance is the Levenshtein distance between a and b, computed with two rows.
func distance(a, b []rune) int {
	prev := make([]int, len(b)+1)
	curr := make([]int, len(b)+1)
	for j := range prev {
		prev[j] = j
	}
	for i := 1; i <= len(a); i++ {
		curr[0] = i
		for j := 1; j <= len(b); j++ {
			cost := 1
			if a[i-1] == b[j-1] {
				cost = 0
			}
			curr[j] = min(prev[j]+1, curr[j-1]+1, prev[j-1]+cost)
		}
		prev, curr = curr, prev
	}
	return prev[len(b)]
}
