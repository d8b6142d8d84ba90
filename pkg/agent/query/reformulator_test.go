package query

import (
	"context"
	"errors"
	"io"
	"log"
	"strings"
	"testing"

	"aqua-support-be/pkg/llm"
)

type stubLLM struct {
	response string
	err      error
}

func (s *stubLLM) Chat(ctx context.Context, history []llm.Message, options ...llm.Option) (string, error) {
	return s.response, s.err
}

func (s *stubLLM) Generate(ctx context.Context, prompt string, options ...llm.Option) (string, error) {
	return s.response, s.err
}

func discardLogger() *log.Logger {
	return log.New(io.Discard, "", 0)
}

func TestReformulateCleansOracleOutput(t *testing.T) {
	tests := []struct {
		name     string
		response string
		want     string
	}{
		{
			name:     "strips keyword prefix and quotes",
			response: `Keywords: "reef salt" mixing ratio`,
			want:     "reef salt mixing ratio",
		},
		{
			name:     "collapses whitespace",
			response: "salinity   target    parameters",
			want:     "salinity target parameters",
		},
		{
			name:     "caps at ten words",
			response: "one two three four five six seven eight nine ten eleven twelve",
			want:     "one two three four five six seven eight nine ten",
		},
		{
			name:     "pads single word",
			response: "salinity",
			want:     "aquarium AquaReef salinity",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := NewReformulator(&stubLLM{response: tt.response}, discardLogger())
			got := r.Reformulate(context.Background(), "anything about reefs", "general", 1, nil)
			if got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}

func TestReformulateAvoidsRepeatingPrior(t *testing.T) {
	// Oracle keeps proposing the exact query attempt 1 already used.
	r := NewReformulator(&stubLLM{response: "reef salt mixing ratio"}, discardLogger())
	prior := []PriorAttempt{{Attempt: 1, Query: "Reef Salt Mixing Ratio", Confidence: 4.0}}

	got := r.Reformulate(context.Background(), "how to mix reef salt", "general", 2, prior)
	if strings.EqualFold(got, "reef salt mixing ratio") {
		t.Fatalf("got repeated prior query %q", got)
	}
}

func TestReformulateFallbackTopics(t *testing.T) {
	r := NewReformulator(&stubLLM{err: errors.New("oracle down")}, discardLogger())

	tests := []struct {
		name    string
		query   string
		attempt int
		want    string
	}{
		{
			name:    "problem topic attempt 1",
			query:   "How do I get rid of this algae problem?",
			attempt: 1,
			want:    "problem cyanobacteria algae nitrates phosphates",
		},
		{
			name:    "problem topic broadens on attempt 2",
			query:   "How do I get rid of this algae problem?",
			attempt: 2,
			want:    "problem solution cyano algae nitrates phosphates clarity",
		},
		{
			name:    "water topic attempt 3",
			query:   "my alkalinity keeps dropping",
			attempt: 3,
			want:    "aquarium water parameters testing AquaReef",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := r.Reformulate(context.Background(), tt.query, "general", tt.attempt, nil)
			if got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}

func TestReformulateFallbackGeneric(t *testing.T) {
	r := NewReformulator(nil, discardLogger())

	got := r.Reformulate(context.Background(), "Recommend something interesting", "general", 3, nil)
	if got != "aquaristics seawater freshwater AquaReef" {
		t.Errorf("got %q", got)
	}

	got = r.Reformulate(context.Background(), "Recommend something interesting", "general", 1, nil)
	if !strings.Contains(got, "recommend") || !strings.Contains(got, "aquarium") {
		t.Errorf("attempt 1 generic fallback = %q", got)
	}
}
