package chatbot

import (
	"math/rand"
	"strings"
	"sync"

	"github.com/hamzasdq/earnlybot/internal/knowledge"
	"github.com/hamzasdq/earnlybot/internal/nlp"
)

var greetingPhrases = map[string][]string{
	nlp.LangEnglish: {"Hello!", "Hi there!", "Hey!"},
	nlp.LangUrdu:    {"Assalam o alaikum!", "Salam!", "Ji janab!"},
}

// Words that count as an existing greeting at the start of a template.
var greetingWords = map[string]bool{
	"hello": true, "hi": true, "hey": true, "welcome": true,
	"salam": true, "assalam": true, "walaikum": true, "ji": true,
}

var transitionPhrases = map[string][]string{
	nlp.LangEnglish: {"Sure thing! ", "Great question! ", "Happy to help! "},
	nlp.LangUrdu:    {"Ji zaroor! ", "Acha sawal hai! ", "Zaroor bataata hoon! "},
}

var closingPhrases = map[string][]string{
	nlp.LangEnglish: {" Anything else I can help with?", " Let me know if you need more help."},
	nlp.LangUrdu:    {" Aur kuch poochna ho to batayen.", " Mazeed madad chahiye to zaroor likhein."},
}

var empathyPhrases = map[string][]string{
	nlp.LangEnglish: {"I'm sorry to hear that. ", "Sorry about the trouble. "},
	nlp.LangUrdu:    {"Afsos hua sun kar. ", "Maazrat, aapko pareshani hui. "},
}

// empathyCues mark responses that already express sympathy, so the empathy
// prefix is not stacked on top.
var empathyCues = []string{"sorry", "apolog", "afsos", "maazrat", "pareshani"}

var refusalResponses = map[string]string{
	nlp.LangEnglish: "Sorry {name}, I can't share details about that topic. I can help you with earning, referrals, tasks and withdrawals.",
	nlp.LangUrdu:    "Maazrat {name}, is mauzo par maloomat share nahi kar sakta. Main earning, referrals aur withdrawal mein aapki madad kar sakta hoon.",
}

var escalationNotes = map[string]string{
	nlp.LangEnglish: " If you still need help, please reach our support team at support@earnly.app and a human will take over.",
	nlp.LangUrdu:    " Agar phir bhi madad chahiye to hamari support team ko support@earnly.app par likhein, ek insaan aap se raabta karega.",
}

var suggestionLeads = map[string]string{
	nlp.LangEnglish: " Maybe you want to know about: ",
	nlp.LangUrdu:    " Shayad aap yeh jaanna chahein: ",
}

// Responder turns a resolved intent (or the fallback path) into a decorated
// natural-language reply. Decorations are independent random draws behind a
// seedable source, so variety is real in production and deterministic in
// tests.
type Responder struct {
	kb         *knowledge.Base
	thresholds Thresholds

	mu  sync.Mutex
	rng *rand.Rand
}

// NewResponder creates a responder using the given random source.
func NewResponder(kb *knowledge.Base, thresholds Thresholds, rng *rand.Rand) *Responder {
	return &Responder{kb: kb, thresholds: thresholds, rng: rng}
}

func (r *Responder) pick(pool []string) string {
	if len(pool) == 0 {
		return ""
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	return pool[r.rng.Intn(len(pool))]
}

func (r *Responder) chance(p float64) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.rng.Float64() < p
}

// Generate picks a random template from the intent's pool for the language,
// substitutes the user's name, then applies up to three independent
// decorations: an opening greeting on the first strong answer, a transition
// phrase on strong answers, and a closing phrase early in the conversation.
func (r *Responder) Generate(intent *knowledge.Intent, language, name string, conv *Conversation, confidence float64) string {
	response := substituteName(r.pick(intent.Responses[language]), name)

	high := confidence >= r.thresholds.High

	if conv.Traits.QuestionsCount <= 1 && high && !startsWithGreeting(response) {
		response = r.pick(greetingPhrases[language]) + " " + response
	}

	if high && r.chance(0.4) {
		transition := r.pick(transitionPhrases[language])
		if !strings.HasPrefix(response, transition) {
			response = transition + response
		}
	}

	if conv.Traits.QuestionsCount <= 2 && r.chance(0.3) {
		response += r.pick(closingPhrases[language])
	}

	return response
}

// Fallback picks a random fallback phrase and, when the user has touched
// topics before, appends a related-topic suggestion drawn from the
// hand-authored relatedness graph.
func (r *Responder) Fallback(language, name string, conv *Conversation) string {
	response := substituteName(r.pick(r.kb.Fallbacks[language]), name)

	if len(conv.Traits.TopicsAsked) == 0 {
		return response
	}
	lastTopic := conv.Traits.TopicsAsked[len(conv.Traits.TopicsAsked)-1]
	related := r.kb.Related(lastTopic)
	if len(related) == 0 {
		return response
	}
	suggestion, ok := r.kb.Intent(r.pick(related))
	if !ok {
		return response
	}
	if label := firstPattern(suggestion, language); label != "" {
		response += suggestionLeads[language] + "\"" + label + "\"?"
	}
	return response
}

// Refusal is the fixed security-boundary response.
func (r *Responder) Refusal(language, name string) string {
	return substituteName(refusalResponses[language], name)
}

// EscalationNote is appended to a fallback once the conversation has
// repeatedly missed.
func EscalationNote(language string) string {
	return escalationNotes[language]
}

// Empathize prepends an empathy phrase unless the response already carries
// an empathy cue.
func (r *Responder) Empathize(response, language string) string {
	lower := strings.ToLower(response)
	for _, cue := range empathyCues {
		if strings.Contains(lower, cue) {
			return response
		}
	}
	return r.pick(empathyPhrases[language]) + response
}

func substituteName(template, name string) string {
	return strings.ReplaceAll(template, "{name}", name)
}

func startsWithGreeting(response string) bool {
	fields := strings.Fields(strings.ToLower(response))
	if len(fields) == 0 {
		return false
	}
	return greetingWords[strings.Trim(fields[0], "!,.")]
}

func firstPattern(intent *knowledge.Intent, language string) string {
	if pats := intent.Patterns[language]; len(pats) > 0 {
		return pats[0]
	}
	if pats := intent.Patterns[nlp.LangEnglish]; len(pats) > 0 {
		return pats[0]
	}
	return ""
}
