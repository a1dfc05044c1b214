package nlp

import (
	"regexp"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/unicode/norm"
)

// Supported language tags. Every message resolves to one of these two;
// ambiguous or very short text defaults to English.
const (
	LangEnglish = "en"
	LangUrdu    = "ur"
)

var (
	// Keeps word characters, whitespace and the Arabic script block so that
	// literal Urdu script survives normalization alongside Roman Urdu.
	nonWordRe    = regexp.MustCompile(`[^\w\s\x{0600}-\x{06FF}]+`)
	whitespaceRe = regexp.MustCompile(`\s+`)

	arabicScriptRe = regexp.MustCompile(`[\x{0600}-\x{06FF}]`)

	// Common Roman-Urdu function and content words. A single hit classifies
	// the whole message as Urdu.
	romanUrduRe = regexp.MustCompile(`(?i)\b(kya|kia|hai|hain|ka|ki|ke|ko|se|mein|mei|aur|nahi|nahin|haan|ap|aap|kaise|kaisay|kese|paisa|paise|kamana|kamai|kamao|karna|karo|karein|mera|meri|tum|acha|theek|thik|shukriya|bhai|batao|bataen|madad|chahiye|raha|rahi|wala|wali)\b`)
)

var englishStopWords = map[string]bool{
	"a": true, "an": true, "the": true, "is": true, "am": true, "are": true,
	"was": true, "were": true, "be": true, "been": true, "being": true,
	"do": true, "does": true, "did": true, "will": true, "would": true,
	"can": true, "could": true, "should": true, "may": true, "might": true,
	"i": true, "me": true, "my": true, "we": true, "our": true, "you": true,
	"your": true, "he": true, "she": true, "it": true, "they": true,
	"them": true, "this": true, "that": true, "these": true, "those": true,
	"and": true, "or": true, "but": true, "if": true, "of": true, "at": true,
	"by": true, "for": true, "with": true, "about": true, "to": true,
	"from": true, "in": true, "on": true, "so": true, "not": true,
	"what": true, "how": true, "when": true, "where": true, "there": true,
}

// Roman-Urdu grammatical particles and auxiliaries.
var urduStopWords = map[string]bool{
	"ka": true, "ki": true, "ke": true, "ko": true, "se": true, "mein": true,
	"mei": true, "par": true, "hai": true, "hain": true, "tha": true,
	"thi": true, "thay": true, "ho": true, "hun": true, "hoon": true,
	"aur": true, "ya": true, "to": true, "bhi": true, "hi": true,
	"ne": true, "ye": true, "yeh": true, "wo": true, "woh": true,
	"is": true, "us": true, "ab": true, "kya": true, "kia": true,
	"ap": true, "aap": true, "main": true, "mujhe": true, "mera": true,
	"meri": true, "tum": true, "na": true, "nahi": true, "haan": true,
}

// Ordered longest-match-first suffix lists for the stemming heuristic.
// This is a deterministic normalization step, not a linguistic stemmer.
var englishSuffixes = []string{"tion", "ness", "ment", "able", "ing", "ed", "ly", "es", "s"}

var urduSuffixes = []string{"karna", "wala", "wali", "wale", "ein", "ain", "iyan", "on"}

// Processor normalizes and tokenizes free-text messages in English and
// Roman Urdu. All methods are pure and safe for concurrent use.
type Processor struct{}

// NewProcessor creates a text processor.
func NewProcessor() *Processor {
	return &Processor{}
}

// Normalize lowercases the text, strips punctuation and symbols, and
// collapses runs of whitespace.
func (p *Processor) Normalize(text string) string {
	s := norm.NFC.String(strings.ToLower(text))
	s = nonWordRe.ReplaceAllString(s, " ")
	s = whitespaceRe.ReplaceAllString(s, " ")
	return strings.TrimSpace(s)
}

// Tokenize splits normalized text on whitespace, discarding single-character
// tokens.
func (p *Processor) Tokenize(text string) []string {
	fields := strings.Fields(p.Normalize(text))
	tokens := make([]string, 0, len(fields))
	for _, f := range fields {
		if utf8.RuneCountInString(f) > 1 {
			tokens = append(tokens, f)
		}
	}
	return tokens
}

// RemoveStopWords filters tokens against the stop-word set for the language.
func (p *Processor) RemoveStopWords(tokens []string, language string) []string {
	stop := englishStopWords
	if language == LangUrdu {
		stop = urduStopWords
	}
	out := make([]string, 0, len(tokens))
	for _, t := range tokens {
		if !stop[t] {
			out = append(out, t)
		}
	}
	return out
}

// Stem strips the longest matching suffix from the fixed per-language list,
// provided the word is long enough to keep a usable stem.
func (p *Processor) Stem(word, language string) string {
	suffixes := englishSuffixes
	if language == LangUrdu {
		suffixes = urduSuffixes
	}
	for _, suf := range suffixes {
		if strings.HasSuffix(word, suf) && len(word) > len(suf)+2 {
			return strings.TrimSuffix(word, suf)
		}
	}
	return word
}

// Preprocess runs the canonical tokenize -> stop-word -> stem pipeline.
// The result is the term representation used for TF-IDF indexing.
func (p *Processor) Preprocess(text, language string) []string {
	tokens := p.RemoveStopWords(p.Tokenize(text), language)
	for i, t := range tokens {
		tokens[i] = p.Stem(t, language)
	}
	return tokens
}

// DetectLanguage classifies raw text as English or Roman Urdu. Urdu wins on
// either a Roman-Urdu vocabulary hit or the presence of Arabic-script
// characters; everything else, including ambiguous short text, is English.
func (p *Processor) DetectLanguage(text string) string {
	if romanUrduRe.MatchString(text) || arabicScriptRe.MatchString(text) {
		return LangUrdu
	}
	return LangEnglish
}
