package nlp

import "testing"

func TestLevenshteinDistance(t *testing.T) {
	m := NewFuzzyMatcher()

	tests := []struct {
		a, b string
		want int
	}{
		{"kitten", "sitting", 3},
		{"", "", 0},
		{"abc", "", 3},
		{"", "abc", 3},
		{"hello", "hello", 0},
		{"flaw", "lawn", 2},
	}
	for _, tt := range tests {
		if got := m.LevenshteinDistance(tt.a, tt.b); got != tt.want {
			t.Errorf("LevenshteinDistance(%q, %q) = %d, want %d", tt.a, tt.b, got, tt.want)
		}
	}
}

func TestSimilarity(t *testing.T) {
	m := NewFuzzyMatcher()

	tests := []struct {
		a, b string
		want float64
	}{
		{"hello", "hello", 1},
		{"", "", 1},
		{"abc", "xyz", 0},
		{"Hello", "hello", 1}, // case-insensitive
	}
	for _, tt := range tests {
		if got := m.Similarity(tt.a, tt.b); got != tt.want {
			t.Errorf("Similarity(%q, %q) = %v, want %v", tt.a, tt.b, got, tt.want)
		}
	}
}

func TestFindBestMatch(t *testing.T) {
	m := NewFuzzyMatcher()
	patterns := []string{"how to earn", "withdraw money", "referral code"}

	match, ok := m.FindBestMatch("how to earm", patterns, 0.6)
	if !ok {
		t.Fatal("expected a match")
	}
	if match.Pattern != "how to earn" {
		t.Errorf("got pattern %q, want %q", match.Pattern, "how to earn")
	}
	if match.Score < 0.6 || match.Score >= 1 {
		t.Errorf("score %v outside expected range", match.Score)
	}

	if _, ok := m.FindBestMatch("zzzzzzzz", patterns, 0.6); ok {
		t.Error("expected no match for junk input")
	}
}

func TestContainsFuzzy(t *testing.T) {
	m := NewFuzzyMatcher()
	patterns := []string{"withdraw", "referral"}

	// Literal containment scores 1.0.
	match, ok := m.ContainsFuzzy("I want to withdraw now", patterns, 0.7)
	if !ok || match.Score != 1.0 {
		t.Fatalf("expected containment match with score 1.0, got %+v ok=%v", match, ok)
	}

	// First qualifying word pair wins.
	match, ok = m.ContainsFuzzy("referal please", patterns, 0.7)
	if !ok {
		t.Fatal("expected fuzzy word match")
	}
	if match.Pattern != "referral" {
		t.Errorf("got pattern %q, want %q", match.Pattern, "referral")
	}

	if _, ok := m.ContainsFuzzy("qqq www", patterns, 0.7); ok {
		t.Error("expected no match")
	}
}
