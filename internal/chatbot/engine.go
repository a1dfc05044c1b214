// Package chatbot implements the support-chat intent engine: a
// rule/statistics hybrid that classifies free-text English and Roman-Urdu
// messages against a static knowledge base, tracks per-session conversation
// state, and produces varied context-aware replies without any external AI
// service.
package chatbot

import (
	"math"
	"math/rand"
	"strings"
	"time"

	"github.com/hamzasdq/earnlybot/internal/knowledge"
	"github.com/hamzasdq/earnlybot/internal/nlp"
	"github.com/hamzasdq/earnlybot/internal/tfidf"
)

// Engine wires the text pipeline, the detector cascade and the conversation
// store. Construction indexes every knowledge-base pattern and response
// into the TF-IDF corpus; after that the knowledge side is read-only and
// ProcessMessage is pure in-memory computation.
type Engine struct {
	kb         *knowledge.Base
	store      *ContextStore
	proc       *nlp.Processor
	sentiment  *nlp.SentimentAnalyzer
	index      *tfidf.Engine
	detectors  []Detector
	responder  *Responder
	thresholds Thresholds
}

// Option configures an Engine.
type Option func(*Engine)

// WithRand sets the random source used for response decoration. Tests pass
// a seeded source for deterministic output.
func WithRand(rng *rand.Rand) Option {
	return func(e *Engine) {
		e.responder = NewResponder(e.kb, e.thresholds, rng)
	}
}

// WithThresholds overrides the cascade parameters.
func WithThresholds(t Thresholds) Option {
	return func(e *Engine) {
		e.thresholds = t
	}
}

// NewEngine builds an engine over the given knowledge base and context
// store. The store is injected so tests and multi-tenant callers control
// its lifetime.
func NewEngine(kb *knowledge.Base, store *ContextStore, opts ...Option) *Engine {
	proc := nlp.NewProcessor()
	e := &Engine{
		kb:         kb,
		store:      store,
		proc:       proc,
		sentiment:  nlp.NewSentimentAnalyzer(),
		index:      tfidf.NewEngine(proc),
		thresholds: DefaultThresholds(),
	}
	for _, opt := range opts {
		opt(e)
	}
	if e.responder == nil {
		rng := rand.New(rand.NewSource(time.Now().UnixNano()))
		e.responder = NewResponder(kb, e.thresholds, rng)
	}

	// Index every pattern and response across both languages, then freeze.
	for _, in := range kb.Intents {
		for lang, patterns := range in.Patterns {
			for i, p := range patterns {
				e.index.AddDocument(docID(in.ID, lang, "pattern", i), p, lang)
			}
		}
		for lang, responses := range in.Responses {
			for i, r := range responses {
				e.index.AddDocument(docID(in.ID, lang, "response", i), r, lang)
			}
		}
	}

	matcher := nlp.NewFuzzyMatcher()
	e.detectors = []Detector{
		&exactDetector{kb: kb},
		&fuzzyDetector{kb: kb, matcher: matcher, threshold: e.thresholds.Fuzzy},
		&ngramDetector{kb: kb, gen: nlp.NewNGramGenerator(), candidate: e.thresholds.NGramCandidate, accept: e.thresholds.NGramAccept},
		&semanticDetector{index: e.index, threshold: e.thresholds.Low, boost: e.thresholds.SemanticBoost, cap: e.thresholds.SemanticCap},
		&followUpDetector{kb: kb, matcher: matcher, threshold: e.thresholds.FollowUp},
	}
	return e
}

// DetectIntent runs language detection and the cascade only, without
// touching conversation state. Used by the KB self-check.
func (e *Engine) DetectIntent(message string) (Detection, string) {
	language := e.proc.DetectLanguage(message)
	for _, d := range e.detectors {
		if det, ok := d.Detect(message, language, nil); ok {
			return det, language
		}
	}
	return Detection{}, language
}

// ProcessMessage runs the full per-message pipeline and returns the
// structured response. Calls for distinct (userID, sessionID) pairs are
// independent; same-key calls must be serialized by the caller.
func (e *Engine) ProcessMessage(message, userName, userID, sessionID string) Response {
	if userName == "" {
		userName = "User"
	}
	if userID == "" {
		userID = "anonymous"
	}
	if sessionID == "" {
		sessionID = "default"
	}
	conv := e.store.Get(userID, sessionID)

	language := e.proc.DetectLanguage(message)
	if len(conv.Turns) == 0 {
		conv.Traits.PreferredLanguage = language
	}
	conv.Language = language

	AppendTurn(conv, RoleUser, message, "")

	// The security boundary outranks everything, including exact pattern
	// matches.
	if e.isBlockedTopic(message) {
		response := e.responder.Refusal(language, userName)
		AppendTurn(conv, RoleBot, response, IntentSecurityBlocked)
		return Response{
			Response:   response,
			Language:   language,
			Intent:     IntentSecurityBlocked,
			Confidence: 1.0,
			Sentiment:  nlp.SentimentNeutral,
		}
	}

	sent := e.sentiment.Analyze(message)
	// Two-point average: recent sentiment weighs more than a running mean
	// would allow, while single-message spikes are still smoothed.
	conv.Traits.Sentiment = (conv.Traits.Sentiment + sent.Score) / 2
	conv.Traits.QuestionsCount++

	var det Detection
	found := false
	for _, d := range e.detectors {
		if candidate, ok := d.Detect(message, language, conv); ok {
			det = candidate
			found = true
			break
		}
	}

	resp := Response{Language: language, Sentiment: sent.Label}

	if found && det.Confidence >= e.thresholds.Minimum {
		intent, _ := e.kb.Intent(det.IntentID)
		resp.Intent = det.IntentID
		resp.Confidence = round2(det.Confidence)
		resp.Response = e.responder.Generate(intent, language, userName, conv, det.Confidence)
		resp.SuggestedActions = e.suggestedActions(intent, language)

		touchTopic(conv, det.IntentID)
		conv.LastIntent = det.IntentID
		AppendTurn(conv, RoleBot, resp.Response, det.IntentID)
	} else {
		resp.Intent = "none"
		resp.Response = e.responder.Fallback(language, userName, conv)
		if e.fallbackTurns(conv)+1 >= 3 {
			resp.Response += EscalationNote(language)
			resp.IsEscalation = true
		}
		AppendTurn(conv, RoleBot, resp.Response, "")
	}

	if sent.Label == nlp.SentimentNegative && !resp.IsEscalation {
		resp.Response = e.responder.Empathize(resp.Response, language)
	}

	return resp
}

// ConversationHistory returns the bounded turn history for the pair.
func (e *Engine) ConversationHistory(userID, sessionID string) []Turn {
	conv, ok := e.store.Peek(userID, sessionID)
	if !ok {
		return nil
	}
	out := make([]Turn, len(conv.Turns))
	copy(out, conv.Turns)
	return out
}

// ClearConversation drops all state for the pair.
func (e *Engine) ClearConversation(userID, sessionID string) {
	e.store.Clear(userID, sessionID)
}

// Stats returns a snapshot of engine state.
func (e *Engine) Stats() Stats {
	return Stats{
		TotalIntents:        len(e.kb.Intents),
		TotalPatterns:       e.kb.TotalPatterns(),
		ActiveConversations: e.store.Count(),
		Version:             e.kb.Version,
	}
}

// Intents exposes the loaded intents for diagnostics.
func (e *Engine) Intents() []knowledge.Intent { return e.kb.Intents }

// KnowledgeBaseVersion returns the loaded knowledge-base version string.
func (e *Engine) KnowledgeBaseVersion() string { return e.kb.Version }

// LastUpdated returns the knowledge-base last-updated stamp.
func (e *Engine) LastUpdated() string { return e.kb.LastUpdated }

func (e *Engine) isBlockedTopic(message string) bool {
	msg := strings.ToLower(message)
	for _, topic := range e.kb.BlockedTopics {
		if strings.Contains(msg, strings.ToLower(topic)) {
			return true
		}
	}
	return false
}

// suggestedActions labels the intent's follow-up continuations with their
// first pattern phrase in the conversation language.
func (e *Engine) suggestedActions(intent *knowledge.Intent, language string) []string {
	var actions []string
	for _, id := range intent.FollowUp {
		target, ok := e.kb.Intent(id)
		if !ok {
			continue
		}
		if label := firstPattern(target, language); label != "" {
			actions = append(actions, label)
		}
	}
	return actions
}

// fallbackTurns counts untagged bot turns in the bounded history.
func (e *Engine) fallbackTurns(conv *Conversation) int {
	n := 0
	for _, t := range conv.Turns {
		if t.Role == RoleBot && t.Intent == "" {
			n++
		}
	}
	return n
}

func touchTopic(conv *Conversation, intentID string) {
	for _, t := range conv.Traits.TopicsAsked {
		if t == intentID {
			return
		}
	}
	conv.Traits.TopicsAsked = append(conv.Traits.TopicsAsked, intentID)
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
