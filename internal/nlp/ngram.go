package nlp

import "strings"

// NGramGenerator extracts character and word n-grams and scores texts by
// n-gram set overlap.
type NGramGenerator struct{}

// NewNGramGenerator creates an n-gram generator.
func NewNGramGenerator() *NGramGenerator {
	return &NGramGenerator{}
}

// CharNGrams returns the sliding character windows of length n over the
// lowercased, whitespace-collapsed text. Text shorter than n yields nothing.
func (g *NGramGenerator) CharNGrams(text string, n int) []string {
	if n <= 0 {
		return nil
	}
	s := strings.Join(strings.Fields(strings.ToLower(text)), " ")
	runes := []rune(s)
	if len(runes) < n {
		return nil
	}
	grams := make([]string, 0, len(runes)-n+1)
	for i := 0; i+n <= len(runes); i++ {
		grams = append(grams, string(runes[i:i+n]))
	}
	return grams
}

// WordNGrams returns the sliding windows of length n over the token
// sequence, each joined by a single space.
func (g *NGramGenerator) WordNGrams(tokens []string, n int) []string {
	if n <= 0 || len(tokens) < n {
		return nil
	}
	grams := make([]string, 0, len(tokens)-n+1)
	for i := 0; i+n <= len(tokens); i++ {
		grams = append(grams, strings.Join(tokens[i:i+n], " "))
	}
	return grams
}

// Similarity returns the Jaccard similarity of the two texts' character
// n-gram sets. Two empty sets score 1, exactly one empty set scores 0.
func (g *NGramGenerator) Similarity(text1, text2 string, n int) float64 {
	set1 := toSet(g.CharNGrams(text1, n))
	set2 := toSet(g.CharNGrams(text2, n))

	if len(set1) == 0 && len(set2) == 0 {
		return 1
	}
	if len(set1) == 0 || len(set2) == 0 {
		return 0
	}

	intersection := 0
	for gram := range set1 {
		if set2[gram] {
			intersection++
		}
	}
	union := len(set1) + len(set2) - intersection
	return float64(intersection) / float64(union)
}

func toSet(grams []string) map[string]bool {
	set := make(map[string]bool, len(grams))
	for _, g := range grams {
		set[g] = true
	}
	return set
}
