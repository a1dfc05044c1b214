package knowledge

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const validKB = `
version: "1.0"
last_updated: "2026-08-01"
languages: [en, ur]
intents:
  - id: greeting
    patterns:
      en: ["hello", "hi"]
      ur: ["salam", "assalam o alaikum"]
    responses:
      en: ["Hello {name}!"]
      ur: ["Walaikum salam {name}!"]
    follow_up: [how_to_earn]
  - id: how_to_earn
    patterns:
      en: ["how do i earn money", "how to earn"]
      ur: ["paisa kaise kamaye"]
    responses:
      en: ["Watch videos and invite friends, {name}."]
      ur: ["Videos dekh kar paise kamayen {name}."]
fallbacks:
  en: ["Sorry {name}, I did not get that."]
  ur: ["Maazrat {name}, samajh nahi aya."]
security_blocked_topics: ["database", "admin panel"]
related_topics:
  how_to_earn: [greeting]
`

func TestParseValid(t *testing.T) {
	b, err := Parse([]byte(validKB))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if b.Version != "1.0" {
		t.Errorf("version = %q", b.Version)
	}
	if len(b.Intents) != 2 {
		t.Fatalf("intents = %d, want 2", len(b.Intents))
	}
	if b.TotalPatterns() != 7 {
		t.Errorf("TotalPatterns = %d, want 7", b.TotalPatterns())
	}
	if _, ok := b.Intent("how_to_earn"); !ok {
		t.Error("Intent lookup failed")
	}
	if got := b.Related("how_to_earn"); len(got) != 1 || got[0] != "greeting" {
		t.Errorf("Related = %v", got)
	}
}

func TestParseRejectsDanglingFollowUp(t *testing.T) {
	bad := strings.Replace(validKB, "follow_up: [how_to_earn]", "follow_up: [nonexistent]", 1)
	if _, err := Parse([]byte(bad)); err == nil {
		t.Fatal("expected error for dangling follow_up")
	}
}

func TestParseRejectsMissingResponses(t *testing.T) {
	bad := strings.Replace(validKB, `      ur: ["Walaikum salam {name}!"]`, "", 1)
	if _, err := Parse([]byte(bad)); err == nil {
		t.Fatal("expected error for missing ur responses")
	}
}

func TestParseRejectsMissingFallbacks(t *testing.T) {
	bad := strings.Replace(validKB, `  ur: ["Maazrat {name}, samajh nahi aya."]`, "", 1)
	if _, err := Parse([]byte(bad)); err == nil {
		t.Fatal("expected error for missing ur fallbacks")
	}
}

func TestParseRejectsDuplicateIntent(t *testing.T) {
	bad := strings.Replace(validKB, "id: how_to_earn", "id: greeting", 1)
	if _, err := Parse([]byte(bad)); err == nil {
		t.Fatal("expected error for duplicate intent id")
	}
}

const extraKB = `
intents:
  - id: withdraw
    patterns:
      en: ["withdraw money"]
      ur: ["paise nikalne hain"]
    responses:
      en: ["Go to wallet, {name}."]
      ur: ["Wallet mein jayen {name}."]
related_topics:
  withdraw: [how_to_earn]
`

func TestLoadGlobMerges(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "00-base.yml"), []byte(validKB), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "10-extra.yml"), []byte(extraKB), 0o644); err != nil {
		t.Fatal(err)
	}

	b, err := LoadGlob(filepath.Join(dir, "*.yml"))
	if err != nil {
		t.Fatalf("LoadGlob: %v", err)
	}
	if len(b.Intents) != 3 {
		t.Fatalf("merged intents = %d, want 3", len(b.Intents))
	}
	if _, ok := b.Intent("withdraw"); !ok {
		t.Error("merged intent missing")
	}
	if got := b.Related("withdraw"); len(got) != 1 || got[0] != "how_to_earn" {
		t.Errorf("merged related topics = %v", got)
	}
	// Declaration order must follow lexical file order.
	if b.Intents[0].ID != "greeting" || b.Intents[2].ID != "withdraw" {
		t.Errorf("intent order = %v", []string{b.Intents[0].ID, b.Intents[1].ID, b.Intents[2].ID})
	}
}

func TestLoadGlobNoMatches(t *testing.T) {
	if _, err := LoadGlob(filepath.Join(t.TempDir(), "*.yml")); err == nil {
		t.Fatal("expected error for empty glob")
	}
}
