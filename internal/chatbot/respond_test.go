package chatbot

import (
	"math/rand"
	"strings"
	"testing"
)

func setupResponder(t *testing.T, seed int64) *Responder {
	t.Helper()
	return NewResponder(mustKB(t), DefaultThresholds(), rand.New(rand.NewSource(seed)))
}

func TestGenerateSubstitutesName(t *testing.T) {
	r := setupResponder(t, 1)
	kb := mustKB(t)
	intent, _ := kb.Intent("how_to_earn")

	// A late, weak answer gets no decoration at all.
	conv := &Conversation{Traits: Traits{QuestionsCount: 5}}
	got := r.Generate(intent, "en", "Ali", conv, 0.5)
	if got != "Watch videos and invite friends, Ali." {
		t.Errorf("response = %q", got)
	}
}

func TestGenerateGreetsFirstStrongAnswer(t *testing.T) {
	r := setupResponder(t, 1)
	kb := mustKB(t)
	intent, _ := kb.Intent("how_to_earn")

	conv := &Conversation{Traits: Traits{QuestionsCount: 1}}
	got := r.Generate(intent, "en", "Ali", conv, 0.9)

	if !strings.Contains(got, "Watch videos and invite friends, Ali.") {
		t.Fatalf("template missing from response: %q", got)
	}
	found := false
	for _, phrase := range greetingPhrases["en"] {
		if strings.Contains(got, phrase) {
			found = true
		}
	}
	if !found {
		t.Errorf("no greeting prepended: %q", got)
	}
}

func TestGenerateSkipsGreetingWhenTemplateGreets(t *testing.T) {
	r := setupResponder(t, 1)
	kb := mustKB(t)
	intent, _ := kb.Intent("greeting")

	conv := &Conversation{Traits: Traits{QuestionsCount: 1}}
	got := r.Generate(intent, "en", "Ali", conv, 0.9)

	// "Hello Ali! ..." already opens with a greeting; none of the standalone
	// greeting phrases may be stacked on top.
	for _, phrase := range greetingPhrases["en"] {
		if strings.Contains(got, phrase) {
			t.Errorf("greeting stacked onto greeting template: %q", got)
		}
	}
}

func TestGenerateDeterministicPerSeed(t *testing.T) {
	kb := mustKB(t)
	intent, _ := kb.Intent("how_to_earn")

	a := setupResponder(t, 7)
	b := setupResponder(t, 7)
	for i := 0; i < 5; i++ {
		conv := &Conversation{Traits: Traits{QuestionsCount: 1}}
		got1 := a.Generate(intent, "en", "Ali", conv, 0.9)
		conv = &Conversation{Traits: Traits{QuestionsCount: 1}}
		got2 := b.Generate(intent, "en", "Ali", conv, 0.9)
		if got1 != got2 {
			t.Fatalf("same seed diverged: %q vs %q", got1, got2)
		}
	}
}

func TestFallbackWithoutTopics(t *testing.T) {
	r := setupResponder(t, 1)

	conv := &Conversation{}
	got := r.Fallback("en", "Ali", conv)
	if got != "I did not understand that, Ali." {
		t.Errorf("fallback = %q", got)
	}
}

func TestFallbackSuggestsFromRelatedGraph(t *testing.T) {
	r := setupResponder(t, 1)

	conv := &Conversation{Traits: Traits{TopicsAsked: []string{"how_to_earn"}}}
	got := r.Fallback("en", "Ali", conv)
	if !strings.Contains(got, `"how do i withdraw"`) {
		t.Errorf("fallback missing related suggestion: %q", got)
	}
}

func TestFallbackNoSuggestionForUnrelatedTopic(t *testing.T) {
	r := setupResponder(t, 1)

	// "withdraw" has no related_topics entry in the test base.
	conv := &Conversation{Traits: Traits{TopicsAsked: []string{"withdraw"}}}
	got := r.Fallback("en", "Ali", conv)
	if got != "I did not understand that, Ali." {
		t.Errorf("fallback = %q", got)
	}
}

func TestRefusal(t *testing.T) {
	r := setupResponder(t, 1)
	got := r.Refusal("en", "Ali")
	if !strings.Contains(got, "Ali") {
		t.Errorf("refusal missing name: %q", got)
	}
}

func TestEmpathize(t *testing.T) {
	r := setupResponder(t, 1)

	got := r.Empathize("Your payout is on the way.", "en")
	if !strings.Contains(strings.ToLower(got), "sorry") {
		t.Errorf("empathy prefix missing: %q", got)
	}

	already := "Sorry about that, it failed."
	if got := r.Empathize(already, "en"); got != already {
		t.Errorf("empathy stacked onto a sympathetic response: %q", got)
	}
}
