package eval

import (
	"context"
	"errors"
	"io"
	"log"
	"strings"
	"testing"
	"unicode/utf8"

	"aqua-support-be/internal/constant"
	"aqua-support-be/pkg/llm"
	"aqua-support-be/pkg/store"
)

type stubLLM struct {
	response string
	err      error
	calls    int
}

func (s *stubLLM) Chat(ctx context.Context, history []llm.Message, options ...llm.Option) (string, error) {
	s.calls++
	return s.response, s.err
}

func (s *stubLLM) Generate(ctx context.Context, prompt string, options ...llm.Option) (string, error) {
	s.calls++
	return s.response, s.err
}

func discardLogger() *log.Logger {
	return log.New(io.Discard, "", 0)
}

func TestParseConfidence(t *testing.T) {
	tests := []struct {
		name           string
		text           string
		wantConfidence float64
		wantReasoning  string
	}{
		{
			name:           "well formed",
			text:           "CONFIDENCE: 8.5\nREASONING: Covers the dosage table directly.",
			wantConfidence: 8.5,
			wantReasoning:  "Covers the dosage table directly.",
		},
		{
			name:           "max score",
			text:           "CONFIDENCE: 10",
			wantConfidence: 10,
			wantReasoning:  "No reasoning provided",
		},
		{
			name:           "integer score",
			text:           "Some preamble.\nCONFIDENCE: 4\nREASONING: Only tangential matches.",
			wantConfidence: 4,
			wantReasoning:  "Only tangential matches.",
		},
		{
			name:           "missing confidence defaults",
			text:           "The documents look decent overall.",
			wantConfidence: constant.UnparsableConfidenceDefault,
			wantReasoning:  "No reasoning provided",
		},
		{
			name:           "multiline reasoning kept whole",
			text:           "CONFIDENCE: 7.0\nREASONING: First line.\nSecond line.",
			wantConfidence: 7.0,
			wantReasoning:  "First line.\nSecond line.",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			confidence, reasoning := ParseConfidence(tt.text)
			if confidence != tt.wantConfidence {
				t.Errorf("confidence = %.2f, want %.2f", confidence, tt.wantConfidence)
			}
			if reasoning != tt.wantReasoning {
				t.Errorf("reasoning = %q, want %q", reasoning, tt.wantReasoning)
			}
		})
	}
}

func TestScoreEmptyResults(t *testing.T) {
	provider := &stubLLM{response: "CONFIDENCE: 9"}
	s := NewScorer(provider, discardLogger())

	confidence, reasoning := s.Score(context.Background(), "any question", nil)
	if confidence != 0.0 {
		t.Errorf("confidence = %.1f, want 0.0", confidence)
	}
	if reasoning != "No search results to evaluate" {
		t.Errorf("reasoning = %q", reasoning)
	}
	if provider.calls != 0 {
		t.Errorf("oracle calls = %d, want 0 for empty input", provider.calls)
	}
}

func TestScoreOracleFailure(t *testing.T) {
	s := NewScorer(&stubLLM{err: errors.New("connection refused")}, discardLogger())

	confidence, reasoning := s.Score(context.Background(), "q", []store.Document{{Title: "Doc"}})
	if confidence != constant.OracleFailureConfidence {
		t.Errorf("confidence = %.1f, want %.1f", confidence, constant.OracleFailureConfidence)
	}
	if !strings.Contains(reasoning, "Evaluation failed") {
		t.Errorf("reasoning = %q", reasoning)
	}
}

func TestBuildEvaluationContext(t *testing.T) {
	docs := []store.Document{
		{Title: "A", ContentType: "guide", Content: strings.Repeat("x", 500), Score: 0.91},
		{Title: "B", ContentType: "faq", Content: "short"},
		{Title: "C", ContentType: "product", Content: "short"},
		{Title: "D", ContentType: "article", Content: "short"},
		{Title: "E", ContentType: "guide", Content: "never shown"},
	}

	got := BuildEvaluationContext(docs)

	if strings.Contains(got, "never shown") {
		t.Error("more than four documents rendered")
	}
	if !strings.Contains(got, "RESULT 4") {
		t.Error("expected four result blocks")
	}
	if !strings.Contains(got, strings.Repeat("x", 400)+"...") {
		t.Error("long content not truncated to excerpt")
	}
	if strings.Contains(got, strings.Repeat("x", 401)) {
		t.Error("excerpt exceeds limit")
	}
	if strings.Contains(got, "0.91") {
		t.Error("similarity score leaked into oracle context")
	}
}

func TestBuildEvaluationContextMultibyteExcerpt(t *testing.T) {
	docs := []store.Document{
		{Title: "PL", ContentType: "guide", Content: strings.Repeat("ż", 450)},
	}

	got := BuildEvaluationContext(docs)

	if !utf8.ValidString(got) {
		t.Fatal("excerpt truncation produced invalid UTF-8")
	}
	if !strings.Contains(got, strings.Repeat("ż", 400)+"...") {
		t.Error("multibyte content not truncated on a rune boundary")
	}
}
