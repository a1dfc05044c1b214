package nlp

import "strings"

// FuzzyMatch is a pattern that cleared a similarity threshold.
type FuzzyMatch struct {
	Pattern string
	Score   float64
}

// FuzzyMatcher scores string pairs by Levenshtein edit distance.
type FuzzyMatcher struct{}

// NewFuzzyMatcher creates a fuzzy matcher.
func NewFuzzyMatcher() *FuzzyMatcher {
	return &FuzzyMatcher{}
}

// LevenshteinDistance returns the minimum number of single-character edits
// (insertions, deletions, substitutions) to transform a into b.
func (m *FuzzyMatcher) LevenshteinDistance(a, b string) int {
	ra := []rune(a)
	rb := []rune(b)
	if len(ra) == 0 {
		return len(rb)
	}
	if len(rb) == 0 {
		return len(ra)
	}

	d := make([][]int, len(ra)+1)
	for i := range d {
		d[i] = make([]int, len(rb)+1)
		d[i][0] = i
	}
	for j := 0; j <= len(rb); j++ {
		d[0][j] = j
	}

	for i := 1; i <= len(ra); i++ {
		for j := 1; j <= len(rb); j++ {
			cost := 1
			if ra[i-1] == rb[j-1] {
				cost = 0
			}
			d[i][j] = min(d[i-1][j]+1, min(d[i][j-1]+1, d[i-1][j-1]+cost))
		}
	}
	return d[len(ra)][len(rb)]
}

// Similarity returns 1 - distance/maxLen on the lowercased inputs.
// Two empty strings are identical, so the score is 1.
func (m *FuzzyMatcher) Similarity(a, b string) float64 {
	a = strings.ToLower(a)
	b = strings.ToLower(b)
	la := len([]rune(a))
	lb := len([]rune(b))
	if la == 0 && lb == 0 {
		return 1
	}
	longest := la
	if lb > longest {
		longest = lb
	}
	return 1 - float64(m.LevenshteinDistance(a, b))/float64(longest)
}

// FindBestMatch scans patterns linearly and returns the highest-scoring one
// at or above the threshold, or false if none qualifies.
func (m *FuzzyMatcher) FindBestMatch(query string, patterns []string, threshold float64) (FuzzyMatch, bool) {
	best := FuzzyMatch{Score: -1}
	for _, p := range patterns {
		if score := m.Similarity(query, p); score >= threshold && score > best.Score {
			best = FuzzyMatch{Pattern: p, Score: score}
		}
	}
	return best, best.Score >= 0
}

// ContainsFuzzy is an any-match probe: literal substring containment scores
// 1.0 immediately, otherwise query words are compared pairwise against
// pattern words and the first pair clearing the threshold wins. Iteration
// order of patterns and words decides ties.
func (m *FuzzyMatcher) ContainsFuzzy(query string, patterns []string, threshold float64) (FuzzyMatch, bool) {
	lower := strings.ToLower(query)
	for _, p := range patterns {
		if strings.Contains(lower, strings.ToLower(p)) {
			return FuzzyMatch{Pattern: p, Score: 1.0}, true
		}
	}
	queryWords := strings.Fields(lower)
	for _, p := range patterns {
		for _, pw := range strings.Fields(strings.ToLower(p)) {
			for _, qw := range queryWords {
				if score := m.Similarity(qw, pw); score >= threshold {
					return FuzzyMatch{Pattern: p, Score: score}, true
				}
			}
		}
	}
	return FuzzyMatch{}, false
}
