package nlp

import "strings"

// Sentiment labels.
const (
	SentimentPositive = "positive"
	SentimentNegative = "negative"
	SentimentNeutral  = "neutral"
)

// Sentiment is the result of lexicon scoring: a score in [-1, 1] and its
// discrete label.
type Sentiment struct {
	Score float64
	Label string
}

// Both lexicons mix English and Roman-Urdu terms so a single pass covers
// either language.
var positiveWords = map[string]bool{
	"good": true, "great": true, "awesome": true, "excellent": true,
	"amazing": true, "love": true, "like": true, "best": true,
	"nice": true, "happy": true, "thanks": true, "thank": true,
	"helpful": true, "perfect": true, "wonderful": true, "easy": true,
	"fast": true, "works": true, "working": true, "solved": true,
	"acha": true, "accha": true, "behtreen": true, "zabardast": true,
	"shukriya": true, "shandar": true, "khush": true, "pasand": true,
	"mazedar": true, "kamal": true, "theek": true, "thik": true,
}

var negativeWords = map[string]bool{
	"bad": true, "terrible": true, "awful": true, "horrible": true,
	"hate": true, "worst": true, "problem": true, "issue": true,
	"error": true, "broken": true, "slow": true, "useless": true,
	"angry": true, "annoyed": true, "scam": true, "fraud": true,
	"stuck": true, "failed": true, "wrong": true, "disappointed": true,
	"bura": true, "kharab": true, "ganda": true, "bekaar": true,
	"bakwas": true, "naraz": true, "masla": true, "mushkil": true,
	"ghalat": true, "dhoka": true, "pareshan": true, "tang": true,
}

// SentimentAnalyzer scores text by counting lexicon hits. Words in neither
// lexicon are ignored; there is no negation handling.
type SentimentAnalyzer struct{}

// NewSentimentAnalyzer creates a sentiment analyzer.
func NewSentimentAnalyzer() *SentimentAnalyzer {
	return &SentimentAnalyzer{}
}

// Analyze computes score = (pos-neg)/(pos+neg) over lexicon hits, 0 when no
// sentiment word is present. Scores above 0.2 are positive, below -0.2
// negative, everything else neutral.
func (a *SentimentAnalyzer) Analyze(text string) Sentiment {
	var pos, neg int
	for _, w := range strings.Fields(strings.ToLower(text)) {
		w = strings.Trim(w, ".,!?;:\"'")
		if positiveWords[w] {
			pos++
		} else if negativeWords[w] {
			neg++
		}
	}

	var score float64
	if pos+neg > 0 {
		score = float64(pos-neg) / float64(pos+neg)
	}

	label := SentimentNeutral
	switch {
	case score > 0.2:
		label = SentimentPositive
	case score < -0.2:
		label = SentimentNegative
	}
	return Sentiment{Score: score, Label: label}
}
