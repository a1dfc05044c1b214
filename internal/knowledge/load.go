// Package knowledge loads and validates the static chat knowledge base:
// intents with per-language patterns and response templates, fallback
// phrase pools, blocked topics and related-topic links.
package knowledge

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/bmatcuk/doublestar/v4"
	"gopkg.in/yaml.v3"
)

// Parse decodes and validates a knowledge base from YAML bytes.
func Parse(data []byte) (*Base, error) {
	var b Base
	if err := yaml.Unmarshal(data, &b); err != nil {
		return nil, fmt.Errorf("decoding knowledge base: %w", err)
	}
	if err := b.finish(); err != nil {
		return nil, err
	}
	return &b, nil
}

// Load reads a knowledge base from a single YAML file.
func Load(path string) (*Base, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading knowledge base %s: %w", path, err)
	}
	b, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	return b, nil
}

// LoadGlob reads every YAML file matching the doublestar pattern and merges
// them into one base. The first file provides metadata, fallbacks and
// blocked topics; later files contribute additional intents and
// related-topic links. Files merge in lexical path order so intent
// declaration order, and with it exact-match precedence, stays stable.
func LoadGlob(pattern string) (*Base, error) {
	matches, err := doublestar.FilepathGlob(pattern)
	if err != nil {
		return nil, fmt.Errorf("resolving knowledge glob %s: %w", pattern, err)
	}
	if len(matches) == 0 {
		return nil, fmt.Errorf("knowledge glob %s matched no files", pattern)
	}
	sort.Strings(matches)

	var merged *Base
	for _, path := range matches {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading knowledge base %s: %w", path, err)
		}
		var part Base
		if err := yaml.Unmarshal(data, &part); err != nil {
			return nil, fmt.Errorf("decoding %s: %w", filepath.Base(path), err)
		}
		if merged == nil {
			merged = &part
			continue
		}
		merged.Intents = append(merged.Intents, part.Intents...)
		for topic, related := range part.RelatedTopics {
			if merged.RelatedTopics == nil {
				merged.RelatedTopics = map[string][]string{}
			}
			merged.RelatedTopics[topic] = append(merged.RelatedTopics[topic], related...)
		}
		merged.BlockedTopics = append(merged.BlockedTopics, part.BlockedTopics...)
	}

	if err := merged.finish(); err != nil {
		return nil, err
	}
	return merged, nil
}

// finish indexes intents by id and validates the base eagerly, so
// configuration errors fail at startup instead of degrading at request time.
func (b *Base) finish() error {
	if len(b.Languages) == 0 {
		b.Languages = []string{"en", "ur"}
	}
	if len(b.Intents) == 0 {
		return fmt.Errorf("knowledge base has no intents")
	}

	b.byID = make(map[string]*Intent, len(b.Intents))
	for i := range b.Intents {
		in := &b.Intents[i]
		if in.ID == "" {
			return fmt.Errorf("intent %d has no id", i)
		}
		if _, dup := b.byID[in.ID]; dup {
			return fmt.Errorf("duplicate intent id %q", in.ID)
		}
		b.byID[in.ID] = in
	}

	for _, in := range b.Intents {
		for _, lang := range b.Languages {
			if len(in.Patterns[lang]) == 0 {
				return fmt.Errorf("intent %q has no %s patterns", in.ID, lang)
			}
			if len(in.Responses[lang]) == 0 {
				return fmt.Errorf("intent %q has no %s responses", in.ID, lang)
			}
		}
		for _, target := range in.FollowUp {
			if _, ok := b.byID[target]; !ok {
				return fmt.Errorf("intent %q follow-up references unknown intent %q", in.ID, target)
			}
		}
	}

	for _, lang := range b.Languages {
		if len(b.Fallbacks[lang]) == 0 {
			return fmt.Errorf("no %s fallback phrases", lang)
		}
	}

	for topic, related := range b.RelatedTopics {
		if _, ok := b.byID[topic]; !ok {
			return fmt.Errorf("related_topics key %q is not a known intent", topic)
		}
		for _, r := range related {
			if _, ok := b.byID[r]; !ok {
				return fmt.Errorf("related topic %q of %q is not a known intent", r, topic)
			}
		}
	}

	return nil
}
