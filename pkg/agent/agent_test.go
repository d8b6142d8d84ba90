package agent

import (
	"context"
	"fmt"
	"io"
	"log"
	"reflect"
	"testing"
	"time"

	"aqua-support-be/internal/constant"
	"aqua-support-be/pkg/agent/augment"
	"aqua-support-be/pkg/agent/intent"
	"aqua-support-be/pkg/agent/query"
	"aqua-support-be/pkg/store"
)

const escalationAnswer = "A specialist will take over from here."

type stubClassifier struct {
	cls intent.Classification
}

func (s *stubClassifier) Classify(ctx context.Context, rawQuery string) intent.Classification {
	return s.cls
}

type stubResponder struct{}

func (s *stubResponder) Respond(cls intent.Classification) (string, float64, bool) {
	switch {
	case cls.BusinessSubtype == constant.BusinessSubtypePartnership:
		return "partnership routing", constant.PartnershipConfidence, true
	case cls.BusinessSubtype == constant.BusinessSubtypeTechnicalSupport:
		return "support routing", constant.TechSupportConfidence, true
	case cls.TradeSecret:
		return "trade secret refusal", constant.TradeSecretConfidence, true
	}
	return "", 0, false
}

func (s *stubResponder) DosageFallback() (string, float64) {
	return "follow the packaging instructions", constant.DosageFallbackConfidence
}

func (s *stubResponder) Escalation() string { return escalationAnswer }

type stubReformulator struct{}

func (s *stubReformulator) Reformulate(ctx context.Context, originalQuery, intentName string, attempt int, prior []query.PriorAttempt) string {
	return fmt.Sprintf("%s attempt-%d", originalQuery, attempt)
}

type stubRetriever struct {
	calls int
	docs  [][]store.Document
}

func (s *stubRetriever) Retrieve(ctx context.Context, q string, attempt int) []store.Document {
	s.calls++
	if attempt-1 < len(s.docs) {
		return s.docs[attempt-1]
	}
	return []store.Document{{Title: fmt.Sprintf("doc-%d", attempt), Content: "content"}}
}

type stubScorer struct {
	scores []float64
	calls  int
}

func (s *stubScorer) Score(ctx context.Context, q string, docs []store.Document) (float64, string) {
	score := 0.0
	if s.calls < len(s.scores) {
		score = s.scores[s.calls]
	}
	s.calls++
	return score, fmt.Sprintf("scripted score %.1f", score)
}

type stubAugmenter struct {
	outcome       augment.Outcome
	calls         int
	gotConfidence float64
	gotDocs       []store.Document
}

func (s *stubAugmenter) Augment(ctx context.Context, q string, docs []store.Document, partialConfidence float64) augment.Outcome {
	s.calls++
	s.gotConfidence = partialConfidence
	s.gotDocs = docs
	return s.outcome
}

type stubSynthesizer struct{}

func (s *stubSynthesizer) Synthesize(ctx context.Context, q string, docs []store.Document, attempts int, confidence float64, intentName string, evalLog []string) string {
	return fmt.Sprintf("synthesized from %d docs at %.1f", len(docs), confidence)
}

func classification(intentName string) intent.Classification {
	return intent.Classification{
		Intent:          intentName,
		BusinessSubtype: constant.BusinessSubtypeNone,
		Threshold:       constant.ThresholdFor(intentName),
		Source:          "rules",
	}
}

func newTestAgent(cls intent.Classification, scorer *stubScorer, retriever *stubRetriever, augmenter *stubAugmenter) *Agent {
	return NewAgent(
		&stubClassifier{cls: cls},
		&stubResponder{},
		&stubReformulator{},
		retriever,
		scorer,
		augmenter,
		&stubSynthesizer{},
		constant.MaxReasoningAttempts,
		time.Second,
		log.New(io.Discard, "", 0),
	)
}

func TestAskAcceptsWhenThresholdMet(t *testing.T) {
	scorer := &stubScorer{scores: []float64{3.0, 4.0, 8.0}}
	retriever := &stubRetriever{}
	augmenter := &stubAugmenter{}
	a := newTestAgent(classification(constant.IntentTroubleshooting), scorer, retriever, augmenter)

	result := a.Ask(context.Background(), "why are my corals dying?")

	if result.Resolution != ResolutionAnswered {
		t.Fatalf("resolution = %q, want answered", result.Resolution)
	}
	if result.Attempts != 3 {
		t.Errorf("attempts = %d, want 3", result.Attempts)
	}
	if result.Confidence != 8.0 {
		t.Errorf("confidence = %.1f, want 8.0", result.Confidence)
	}
	if result.Escalated {
		t.Error("accepted result must not be escalated")
	}
	if augmenter.calls != 0 {
		t.Error("augmenter must not run on acceptance")
	}
}

func TestAskAcceptsEarly(t *testing.T) {
	scorer := &stubScorer{scores: []float64{9.0}}
	retriever := &stubRetriever{}
	a := newTestAgent(classification(constant.IntentGeneral), scorer, retriever, &stubAugmenter{})

	result := a.Ask(context.Background(), "what salt do you recommend?")

	if result.Attempts != 1 {
		t.Errorf("attempts = %d, want 1", result.Attempts)
	}
	if retriever.calls != 1 {
		t.Errorf("retriever calls = %d, want 1", retriever.calls)
	}
	if result.Resolution != ResolutionAnswered {
		t.Errorf("resolution = %q", result.Resolution)
	}
}

func TestAskDosageFallback(t *testing.T) {
	scorer := &stubScorer{scores: []float64{4.0, 4.0, 4.0}}
	a := newTestAgent(classification(constant.IntentDosage), scorer, &stubRetriever{}, &stubAugmenter{})

	result := a.Ask(context.Background(), "how much per liter?")

	if result.Resolution != ResolutionDosageFallback {
		t.Fatalf("resolution = %q, want dosage_fallback", result.Resolution)
	}
	if result.Confidence != constant.DosageFallbackConfidence {
		t.Errorf("confidence = %.1f, want %.1f", result.Confidence, constant.DosageFallbackConfidence)
	}
	if result.Escalated {
		t.Error("dosage fallback is a resolved outcome, not an escalation")
	}
	if result.Answer != "follow the packaging instructions" {
		t.Errorf("answer = %q", result.Answer)
	}
}

func TestAskAugmentationPromoted(t *testing.T) {
	attempt2Docs := []store.Document{{Title: "partial-a"}, {Title: "partial-b"}}
	retriever := &stubRetriever{docs: [][]store.Document{
		{{Title: "weak"}},
		attempt2Docs,
		{{Title: "late"}},
	}}
	scorer := &stubScorer{scores: []float64{3.0, 6.0, 4.0}}
	augmenter := &stubAugmenter{outcome: augment.Outcome{
		Answer:     "Based on available information, extended answer.",
		Confidence: 8.0,
		Promoted:   true,
	}}
	a := newTestAgent(classification(constant.IntentGeneral), scorer, retriever, augmenter)

	result := a.Ask(context.Background(), "an unusual question")

	if result.Resolution != ResolutionAugmented {
		t.Fatalf("resolution = %q, want augmented", result.Resolution)
	}
	if !result.AugmentationUsed {
		t.Error("augmentation flag not set")
	}
	if result.Escalated {
		t.Error("promoted augmentation must not escalate")
	}
	if result.Confidence != 8.0 {
		t.Errorf("confidence = %.1f, want 8.0", result.Confidence)
	}
	// The augmenter must receive the best partial, which came from
	// attempt 2, not the final attempt's documents.
	if augmenter.gotConfidence != 6.0 {
		t.Errorf("partial confidence = %.1f, want 6.0", augmenter.gotConfidence)
	}
	if !reflect.DeepEqual(augmenter.gotDocs, attempt2Docs) {
		t.Errorf("augmenter docs = %v, want attempt 2 docs", augmenter.gotDocs)
	}
}

func TestAskAugmentationRejectedEscalates(t *testing.T) {
	scorer := &stubScorer{scores: []float64{5.5, 5.0, 5.0}}
	augmenter := &stubAugmenter{outcome: augment.Outcome{Reason: "safety gate failed: too short"}}
	a := newTestAgent(classification(constant.IntentGeneral), scorer, &stubRetriever{}, augmenter)

	result := a.Ask(context.Background(), "an unusual question")

	if result.Resolution != ResolutionEscalated {
		t.Fatalf("resolution = %q, want escalated", result.Resolution)
	}
	if !result.Escalated {
		t.Error("escalated flag not set")
	}
	if result.Answer != escalationAnswer {
		t.Errorf("answer = %q", result.Answer)
	}
	if augmenter.calls != 1 {
		t.Errorf("augmenter calls = %d, want 1", augmenter.calls)
	}
}

func TestAskNoUsablePartialSkipsAugmentation(t *testing.T) {
	scorer := &stubScorer{scores: []float64{3.0, 4.0, 4.5}}
	augmenter := &stubAugmenter{}
	a := newTestAgent(classification(constant.IntentGeneral), scorer, &stubRetriever{}, augmenter)

	result := a.Ask(context.Background(), "an unusual question")

	if result.Resolution != ResolutionEscalated {
		t.Fatalf("resolution = %q, want escalated", result.Resolution)
	}
	if augmenter.calls != 0 {
		t.Errorf("augmenter calls = %d, want 0 without usable partial", augmenter.calls)
	}
}

func TestAskProtectedIntentNeverAugments(t *testing.T) {
	// Production that slips into the loop holds usable partials but is
	// protected from augmentation.
	cls := classification(constant.IntentGeneral)
	cls.Intent = constant.IntentProduction
	cls.Threshold = 9.5 // force exhaustion despite decent partials

	scorer := &stubScorer{scores: []float64{6.0, 6.5, 6.2}}
	augmenter := &stubAugmenter{}
	a := newTestAgent(cls, scorer, &stubRetriever{}, augmenter)

	result := a.Ask(context.Background(), "how strong is your production line?")

	if result.Resolution != ResolutionEscalated {
		t.Fatalf("resolution = %q, want escalated", result.Resolution)
	}
	if augmenter.calls != 0 {
		t.Error("protected intent reached the augmenter")
	}
}

func TestAskBusinessShortCircuit(t *testing.T) {
	cls := intent.Classification{
		Intent:          constant.IntentBusiness,
		BusinessSubtype: constant.BusinessSubtypePartnership,
		Threshold:       constant.ThresholdFor(constant.IntentBusiness),
	}
	retriever := &stubRetriever{}
	scorer := &stubScorer{}
	a := newTestAgent(cls, scorer, retriever, &stubAugmenter{})

	result := a.Ask(context.Background(), "I want to distribute your products")

	if result.Resolution != ResolutionBusinessDirect {
		t.Fatalf("resolution = %q, want business_direct", result.Resolution)
	}
	if result.Confidence != constant.PartnershipConfidence {
		t.Errorf("confidence = %.1f, want %.1f", result.Confidence, constant.PartnershipConfidence)
	}
	if retriever.calls != 0 || scorer.calls != 0 {
		t.Error("short-circuit path must not touch retrieval or evaluation")
	}
	if result.Attempts != 0 {
		t.Errorf("attempts = %d, want 0", result.Attempts)
	}
}

func TestAskTradeSecretShortCircuit(t *testing.T) {
	cls := intent.Classification{
		Intent:          constant.IntentProduction,
		BusinessSubtype: constant.BusinessSubtypeNone,
		TradeSecret:     true,
		Threshold:       constant.ThresholdFor(constant.IntentProduction),
	}
	retriever := &stubRetriever{}
	a := newTestAgent(cls, &stubScorer{}, retriever, &stubAugmenter{})

	result := a.Ask(context.Background(), "what is your exact salt formula?")

	if result.Resolution != ResolutionTradeSecret {
		t.Fatalf("resolution = %q, want trade_secret_direct", result.Resolution)
	}
	if !result.TradeSecretHandled {
		t.Error("trade secret flag not set")
	}
	if retriever.calls != 0 {
		t.Error("trade secret queries must never retrieve")
	}
	if result.Answer != "trade secret refusal" {
		t.Errorf("answer = %q", result.Answer)
	}
}

type panickingRetriever struct{}

func (p *panickingRetriever) Retrieve(ctx context.Context, q string, attempt int) []store.Document {
	panic("vector store unreachable")
}

func TestAskPanicRecovery(t *testing.T) {
	a := NewAgent(
		&stubClassifier{cls: classification(constant.IntentGeneral)},
		&stubResponder{},
		&stubReformulator{},
		&panickingRetriever{},
		&stubScorer{},
		&stubAugmenter{},
		&stubSynthesizer{},
		constant.MaxReasoningAttempts,
		time.Second,
		log.New(io.Discard, "", 0),
	)

	result := a.Ask(context.Background(), "anything at all")

	if result == nil {
		t.Fatal("panic must degrade to a result, not nil")
	}
	if !result.Escalated || result.Resolution != ResolutionEscalated {
		t.Fatalf("resolution = %q escalated = %v, want escalated", result.Resolution, result.Escalated)
	}
	if result.Answer != escalationAnswer {
		t.Errorf("answer = %q", result.Answer)
	}
	if len(result.EvaluationTrace) == 0 {
		t.Fatal("evaluation trace missing system error entry")
	}
}

func TestAskDeterministicWithFixedOracles(t *testing.T) {
	run := func() *Result {
		scorer := &stubScorer{scores: []float64{3.0, 4.0, 8.0}}
		a := newTestAgent(classification(constant.IntentTroubleshooting), scorer, &stubRetriever{}, &stubAugmenter{})
		return a.Ask(context.Background(), "why are my corals dying?")
	}

	first := run()
	second := run()

	if first.Attempts != second.Attempts ||
		first.Intent != second.Intent ||
		first.Resolution != second.Resolution ||
		first.Confidence != second.Confidence {
		t.Errorf("fixed oracles must yield identical outcomes:\n%+v\n%+v", first, second)
	}
}

func TestAskNeverExceedsMaxAttempts(t *testing.T) {
	retriever := &stubRetriever{}
	scorer := &stubScorer{scores: []float64{1.0, 1.0, 1.0, 1.0, 1.0}}
	a := newTestAgent(classification(constant.IntentGeneral), scorer, retriever, &stubAugmenter{})

	result := a.Ask(context.Background(), "question with no answer")

	if result.Attempts > constant.MaxReasoningAttempts {
		t.Errorf("attempts = %d, exceeds %d", result.Attempts, constant.MaxReasoningAttempts)
	}
	if retriever.calls != constant.MaxReasoningAttempts {
		t.Errorf("retriever calls = %d, want %d", retriever.calls, constant.MaxReasoningAttempts)
	}
}
