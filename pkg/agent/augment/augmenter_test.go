package augment

import (
	"context"
	"errors"
	"io"
	"log"
	"strings"
	"testing"

	"aqua-support-be/internal/constant"
	"aqua-support-be/pkg/llm"
	"aqua-support-be/pkg/store"
)

// scriptedLLM returns queued responses in order; the augmenter makes two
// calls per pass (generate, then evaluate).
type scriptedLLM struct {
	responses []string
	errs      []error
	call      int
}

func (s *scriptedLLM) next() (string, error) {
	i := s.call
	s.call++
	var resp string
	var err error
	if i < len(s.responses) {
		resp = s.responses[i]
	}
	if i < len(s.errs) {
		err = s.errs[i]
	}
	return resp, err
}

func (s *scriptedLLM) Chat(ctx context.Context, history []llm.Message, options ...llm.Option) (string, error) {
	return s.next()
}

func (s *scriptedLLM) Generate(ctx context.Context, prompt string, options ...llm.Option) (string, error) {
	return s.next()
}

func discardLogger() *log.Logger {
	return log.New(io.Discard, "", 0)
}

const testPhone = "+1-800-555-0199"
const testEmail = "support@aquareef.example.com"

// goodAnswer satisfies every static safety check.
var goodAnswer = "Based on available information, your alkalinity drop is consistent with coral uptake.\n\n" +
	"Measure KH daily for one week to establish demand, then match it with a two-part dosing system. " +
	"Avoid corrections larger than 0.5 dKH per day.\n\n" +
	"If the drop continues, contact our support team at " + testPhone + " for a guided parameter review."

func TestEligible(t *testing.T) {
	tests := []struct {
		name       string
		confidence float64
		intent     string
		want       bool
	}{
		{"usable general partial", 5.0, constant.IntentGeneral, true},
		{"usable troubleshooting partial", 6.5, constant.IntentTroubleshooting, true},
		{"below floor", 4.9, constant.IntentGeneral, false},
		{"business protected", 8.0, constant.IntentBusiness, false},
		{"dosage protected", 8.0, constant.IntentDosage, false},
		{"production protected", 8.0, constant.IntentProduction, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Eligible(tt.confidence, tt.intent); got != tt.want {
				t.Errorf("Eligible(%.1f, %s) = %v, want %v", tt.confidence, tt.intent, got, tt.want)
			}
		})
	}
}

func TestAugmentPromotes(t *testing.T) {
	provider := &scriptedLLM{responses: []string{
		goodAnswer,
		"CONFIDENCE: 8.0\nREASONING: Grounded and safe.",
	}}
	a := NewAugmenter(provider, testPhone, testEmail, discardLogger())

	outcome := a.Augment(context.Background(), "why does my KH drop", []store.Document{{Title: "KH guide"}}, 6.0)
	if !outcome.Promoted {
		t.Fatalf("not promoted: %s", outcome.Reason)
	}
	if outcome.Confidence != 8.0 {
		t.Errorf("confidence = %.1f, want 8.0", outcome.Confidence)
	}
	if outcome.Answer != goodAnswer {
		t.Error("answer does not match generated text")
	}
}

func TestAugmentRejectsLowSecondPass(t *testing.T) {
	provider := &scriptedLLM{responses: []string{
		goodAnswer,
		"CONFIDENCE: 6.5\nREASONING: Some claims unsupported.",
	}}
	a := NewAugmenter(provider, testPhone, testEmail, discardLogger())

	outcome := a.Augment(context.Background(), "q", []store.Document{{Title: "doc"}}, 6.0)
	if outcome.Promoted {
		t.Fatal("promoted despite low second-pass confidence")
	}
	if !strings.Contains(outcome.Reason, "below") {
		t.Errorf("reason = %q", outcome.Reason)
	}
}

func TestAugmentSafetyGates(t *testing.T) {
	longFiller := strings.Repeat("water chemistry stays stable when changes are slow. ", 6)

	tests := []struct {
		name       string
		generated  string
		wantReason string
	}{
		{
			name:       "too short",
			generated:  "Based on available information, dose slowly.\n\nContact support.",
			wantReason: "response too short",
		},
		{
			name:       "too long",
			generated:  "Based on available information. contact us.\n\n" + strings.Repeat("x", constant.AugmentationMaxLength),
			wantReason: "response too long",
		},
		{
			name:       "missing contact",
			generated:  "Based on available information, " + longFiller + "\n\nKeep testing daily.",
			wantReason: "missing expert contact reference",
		},
		{
			name:       "missing grounding phrase",
			generated:  longFiller + "\n\nPlease contact our team for details.",
			wantReason: "missing grounding reference",
		},
		{
			name:       "single block",
			generated:  "Based on available information, contact support. " + longFiller,
			wantReason: "insufficient structure",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			provider := &scriptedLLM{responses: []string{
				tt.generated,
				"CONFIDENCE: 9.0\nREASONING: fine",
			}}
			a := NewAugmenter(provider, testPhone, testEmail, discardLogger())

			outcome := a.Augment(context.Background(), "q", []store.Document{{Title: "doc"}}, 6.0)
			if outcome.Promoted {
				t.Fatal("promoted despite gate failure")
			}
			if !strings.Contains(outcome.Reason, tt.wantReason) {
				t.Errorf("reason = %q, want containing %q", outcome.Reason, tt.wantReason)
			}
		})
	}
}

func TestAugmentGenerationFailure(t *testing.T) {
	provider := &scriptedLLM{errs: []error{errors.New("oracle down")}}
	a := NewAugmenter(provider, testPhone, testEmail, discardLogger())

	outcome := a.Augment(context.Background(), "q", nil, 6.0)
	if outcome.Promoted {
		t.Fatal("promoted after generation failure")
	}
	if outcome.Answer != "" {
		t.Errorf("answer = %q, want empty", outcome.Answer)
	}
}
