package knowledge

// Intent is a named conversational topic with example phrasings and reply
// templates, keyed per language tag.
type Intent struct {
	ID        string              `yaml:"id"`
	Patterns  map[string][]string `yaml:"patterns"`
	Responses map[string][]string `yaml:"responses"`
	Priority  int                 `yaml:"priority,omitempty"`
	FollowUp  []string            `yaml:"follow_up,omitempty"`
	Keywords  []string            `yaml:"keywords,omitempty"`
}

// Base is the full knowledge base: intents, fallback phrase pools, blocked
// topics and the hand-authored related-topic graph used for fallback
// suggestions. Immutable after Load; shared read-only by all conversations.
type Base struct {
	Version       string              `yaml:"version"`
	LastUpdated   string              `yaml:"last_updated"`
	Languages     []string            `yaml:"languages"`
	Intents       []Intent            `yaml:"intents"`
	Fallbacks     map[string][]string `yaml:"fallbacks"`
	BlockedTopics []string            `yaml:"security_blocked_topics"`
	RelatedTopics map[string][]string `yaml:"related_topics"`

	byID map[string]*Intent
}

// Intent looks up an intent by id.
func (b *Base) Intent(id string) (*Intent, bool) {
	in, ok := b.byID[id]
	return in, ok
}

// TotalPatterns counts pattern phrases across all intents and languages.
func (b *Base) TotalPatterns() int {
	n := 0
	for _, in := range b.Intents {
		for _, pats := range in.Patterns {
			n += len(pats)
		}
	}
	return n
}

// Related returns the hand-authored related intent ids for a topic.
func (b *Base) Related(intentID string) []string {
	return b.RelatedTopics[intentID]
}
