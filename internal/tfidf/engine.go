// Package tfidf implements the semantic similarity index used by the chat
// engine: a small in-process TF-IDF vector space over the knowledge-base
// patterns and responses, queried with cosine similarity.
package tfidf

import (
	"math"
	"sort"

	"github.com/hamzasdq/earnlybot/internal/nlp"
)

// Document is a preprocessed text held by the engine. Created once at
// indexing time and never mutated.
type Document struct {
	ID       string
	Tokens   []string
	Original string
	Language string
}

// Result is a scored document returned from a similarity search.
type Result struct {
	ID       string
	Score    float64
	Document Document
}

// Engine builds TF-IDF vectors for a fixed document corpus and ranks
// documents by cosine similarity against a query. The corpus is populated
// once at startup and then only read, so lookups need no locking.
type Engine struct {
	proc *nlp.Processor
	docs []Document

	idfCache map[string]float64
	vecCache map[string]map[string]float64
}

// NewEngine creates an empty engine using the given text processor.
func NewEngine(proc *nlp.Processor) *Engine {
	return &Engine{
		proc:     proc,
		idfCache: make(map[string]float64),
		vecCache: make(map[string]map[string]float64),
	}
}

// AddDocument preprocesses the text and stores it under the given id.
// Adding a document changes corpus composition, so all cached IDF values
// and document vectors are invalidated.
func (e *Engine) AddDocument(id, text, language string) {
	e.docs = append(e.docs, Document{
		ID:       id,
		Tokens:   e.proc.Preprocess(text, language),
		Original: text,
		Language: language,
	})
	e.idfCache = make(map[string]float64)
	e.vecCache = make(map[string]map[string]float64)
}

// DocumentCount returns the corpus size.
func (e *Engine) DocumentCount() int {
	return len(e.docs)
}

// calculateTF returns raw term count divided by token count.
func calculateTF(tokens []string) map[string]float64 {
	tf := make(map[string]float64, len(tokens))
	if len(tokens) == 0 {
		return tf
	}
	for _, t := range tokens {
		tf[t]++
	}
	n := float64(len(tokens))
	for t := range tf {
		tf[t] /= n
	}
	return tf
}

// idf returns the smoothed inverse document frequency for the term:
// ln((N+1)/(df+1)) + 1, which stays positive and finite for terms present
// in every document or in none. Memoized until the corpus changes.
func (e *Engine) idf(term string) float64 {
	if v, ok := e.idfCache[term]; ok {
		return v
	}
	df := 0
	for _, doc := range e.docs {
		for _, t := range doc.Tokens {
			if t == term {
				df++
				break
			}
		}
	}
	v := math.Log(float64(len(e.docs)+1)/float64(df+1)) + 1
	e.idfCache[term] = v
	return v
}

// vector builds the TF-IDF weight map for a token sequence.
func (e *Engine) vector(tokens []string) map[string]float64 {
	vec := calculateTF(tokens)
	for term, tf := range vec {
		vec[term] = tf * e.idf(term)
	}
	return vec
}

// documentVector returns the cached vector for a stored document.
func (e *Engine) documentVector(doc Document) map[string]float64 {
	if v, ok := e.vecCache[doc.ID]; ok {
		return v
	}
	v := e.vector(doc.Tokens)
	e.vecCache[doc.ID] = v
	return v
}

// cosine returns the cosine similarity of two sparse vectors. Two all-zero
// vectors are defined to have similarity 0.
func cosine(a, b map[string]float64) float64 {
	var dot, normA, normB float64
	for term, wa := range a {
		normA += wa * wa
		if wb, ok := b[term]; ok {
			dot += wa * wb
		}
	}
	for _, wb := range b {
		normB += wb * wb
	}
	if normA == 0 || normB == 0 {
		return 0
	}
	return dot / (math.Sqrt(normA) * math.Sqrt(normB))
}

// FindSimilar ranks documents in the given language by cosine similarity to
// the query, keeping scores at or above threshold, best first, at most topK.
func (e *Engine) FindSimilar(query, language string, topK int, threshold float64) []Result {
	queryVec := e.vector(e.proc.Preprocess(query, language))

	var results []Result
	for _, doc := range e.docs {
		if doc.Language != language {
			continue
		}
		score := cosine(queryVec, e.documentVector(doc))
		if score >= threshold {
			results = append(results, Result{ID: doc.ID, Score: score, Document: doc})
		}
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Score > results[j].Score
	})
	if topK > 0 && len(results) > topK {
		results = results[:topK]
	}
	return results
}

// GetBestMatch is a permissive single-result probe: the top document at a
// low 0.05 threshold, or false when the query shares no signal with the
// corpus.
func (e *Engine) GetBestMatch(query, language string) (Result, bool) {
	results := e.FindSimilar(query, language, 1, 0.05)
	if len(results) == 0 {
		return Result{}, false
	}
	return results[0], true
}
