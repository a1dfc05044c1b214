package chatbot

import (
	"strconv"
	"strings"

	"github.com/hamzasdq/earnlybot/internal/knowledge"
	"github.com/hamzasdq/earnlybot/internal/nlp"
	"github.com/hamzasdq/earnlybot/internal/tfidf"
)

// Detector is one stage of the intent cascade. Stages run in order; the
// first stage to report ok wins and the rest are never consulted.
type Detector interface {
	Detect(message, language string, conv *Conversation) (Detection, bool)
}

// docID namespaces a TF-IDF document as intent/language/kind-index. The
// "::" separator cannot appear in intent ids, so the owning intent is
// recoverable from any document id.
func docID(intentID, language, kind string, i int) string {
	return intentID + "::" + language + "::" + kind + "::" + strconv.Itoa(i)
}

func intentFromDocID(id string) string {
	if i := strings.Index(id, "::"); i >= 0 {
		return id[:i]
	}
	return id
}

// exactDetector matches by substring containment in either direction:
// message contains pattern, or pattern contains message. Iteration order is
// intent declaration order, then pattern order, so the first declared match
// wins ties.
type exactDetector struct {
	kb *knowledge.Base
}

func (d *exactDetector) Detect(message, language string, _ *Conversation) (Detection, bool) {
	msg := strings.ToLower(strings.TrimSpace(message))
	if msg == "" {
		return Detection{}, false
	}
	for _, in := range d.kb.Intents {
		for _, pattern := range in.Patterns[language] {
			p := strings.ToLower(pattern)
			if strings.Contains(msg, p) || strings.Contains(p, msg) {
				return Detection{IntentID: in.ID, Confidence: 1.0, Method: "exact"}, true
			}
		}
	}
	return Detection{}, false
}

// fuzzyDetector keeps the single best Levenshtein score across all patterns
// at or above the threshold.
type fuzzyDetector struct {
	kb        *knowledge.Base
	matcher   *nlp.FuzzyMatcher
	threshold float64
}

func (d *fuzzyDetector) Detect(message, language string, _ *Conversation) (Detection, bool) {
	best := Detection{Confidence: -1}
	for _, in := range d.kb.Intents {
		for _, pattern := range in.Patterns[language] {
			if score := d.matcher.Similarity(message, pattern); score >= d.threshold && score > best.Confidence {
				best = Detection{IntentID: in.ID, Confidence: score, Method: "fuzzy"}
			}
		}
	}
	return best, best.Confidence >= 0
}

// ngramDetector collects 3-gram candidates at or above the candidate floor,
// but accepts the winner only past the higher acceptance floor. The split
// guards against weak ties between near-equal candidates.
type ngramDetector struct {
	kb        *knowledge.Base
	gen       *nlp.NGramGenerator
	candidate float64
	accept    float64
}

func (d *ngramDetector) Detect(message, language string, _ *Conversation) (Detection, bool) {
	best := Detection{Confidence: -1}
	for _, in := range d.kb.Intents {
		for _, pattern := range in.Patterns[language] {
			if score := d.gen.Similarity(message, pattern, 3); score >= d.candidate && score > best.Confidence {
				best = Detection{IntentID: in.ID, Confidence: score, Method: "ngram"}
			}
		}
	}
	if best.Confidence < d.accept {
		return Detection{}, false
	}
	return best, true
}

// semanticDetector consults the TF-IDF index. Raw TF-IDF scores run lower
// than the other stages', so an accepted score is boosted and then capped
// below full confidence: this is the least precise signal.
type semanticDetector struct {
	index     *tfidf.Engine
	threshold float64
	boost     float64
	cap       float64
}

func (d *semanticDetector) Detect(message, language string, _ *Conversation) (Detection, bool) {
	best, ok := d.index.GetBestMatch(message, language)
	if !ok || best.Score < d.threshold {
		return Detection{}, false
	}
	conf := best.Score * d.boost
	if conf > d.cap {
		conf = d.cap
	}
	return Detection{IntentID: intentFromDocID(best.ID), Confidence: conf, Method: "semantic"}, true
}

// followUpDetector tries the previous intent's declared continuations,
// fuzzy-matching the message against each candidate's own patterns. A
// follow-up id missing from the base is skipped rather than failing the
// request.
type followUpDetector struct {
	kb        *knowledge.Base
	matcher   *nlp.FuzzyMatcher
	threshold float64
}

func (d *followUpDetector) Detect(message, language string, conv *Conversation) (Detection, bool) {
	if conv == nil || conv.LastIntent == "" {
		return Detection{}, false
	}
	last, ok := d.kb.Intent(conv.LastIntent)
	if !ok {
		return Detection{}, false
	}
	for _, candidateID := range last.FollowUp {
		candidate, ok := d.kb.Intent(candidateID)
		if !ok {
			continue
		}
		if _, ok := d.matcher.FindBestMatch(message, candidate.Patterns[language], d.threshold); ok {
			return Detection{IntentID: candidateID, Confidence: 0.7, Method: "context"}, true
		}
	}
	return Detection{}, false
}
