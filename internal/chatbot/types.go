package chatbot

import "time"

// Turn roles.
const (
	RoleUser = "user"
	RoleBot  = "bot"
)

// IntentSecurityBlocked tags refusal responses for blocked topics.
const IntentSecurityBlocked = "security_blocked"

// Turn is one message in a conversation's bounded history.
type Turn struct {
	Role      string    `json:"role"`
	Message   string    `json:"message"`
	Intent    string    `json:"intent,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}

// Traits accumulates per-user signals across a conversation.
type Traits struct {
	PreferredLanguage string   `json:"preferred_language"`
	Sentiment         float64  `json:"sentiment"`
	TopicsAsked       []string `json:"topics_asked"`
	QuestionsCount    int      `json:"questions_count"`
}

// Conversation is the mutable per-(user, session) state. It is owned by the
// engine; nothing else mutates it.
type Conversation struct {
	UserID    string
	SessionID string
	Language  string
	Turns     []Turn
	LastIntent string
	Traits    Traits
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Response is the structured result returned to the transport layer.
type Response struct {
	Response         string   `json:"response"`
	Language         string   `json:"language"`
	Intent           string   `json:"intent"`
	Confidence       float64  `json:"confidence"`
	Sentiment        string   `json:"sentiment,omitempty"`
	SuggestedActions []string `json:"suggested_actions,omitempty"`
	IsEscalation     bool     `json:"is_escalation,omitempty"`
}

// Stats is a read-only snapshot of engine state.
type Stats struct {
	TotalIntents        int    `json:"total_intents"`
	TotalPatterns       int    `json:"total_patterns"`
	ActiveConversations int    `json:"active_conversations"`
	Version             string `json:"version"`
}

// Detection is a cascade stage's verdict for a message.
type Detection struct {
	IntentID   string
	Confidence float64
	Method     string
}

// Thresholds are the tuned cascade parameters. The n-gram two-tier pair and
// the semantic boost/cap are carried over from production tuning; change
// them together or matching behavior shifts.
type Thresholds struct {
	Minimum        float64 // floor below which a detection falls back
	Low            float64 // semantic stage acceptance
	High           float64 // confidence considered strong for decoration
	Fuzzy          float64
	NGramCandidate float64
	NGramAccept    float64
	FollowUp       float64
	SemanticBoost  float64
	SemanticCap    float64
}

// DefaultThresholds returns the production cascade parameters.
func DefaultThresholds() Thresholds {
	return Thresholds{
		Minimum:        0.15,
		Low:            0.3,
		High:           0.75,
		Fuzzy:          0.7,
		NGramCandidate: 0.5,
		NGramAccept:    0.6,
		FollowUp:       0.5,
		SemanticBoost:  1.2,
		SemanticCap:    0.95,
	}
}
