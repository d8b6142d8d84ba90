package agent

import (
	"testing"

	"aqua-support-be/internal/constant"
	"aqua-support-be/pkg/store"
)

func TestBestPartialMemo(t *testing.T) {
	tests := []struct {
		name           string
		scores         []float64
		wantConfidence float64
		wantAttempt    int
		wantNil        bool
	}{
		{
			name:    "all below floor",
			scores:  []float64{3.0, 4.0, 4.9},
			wantNil: true,
		},
		{
			name:           "floor itself is usable",
			scores:         []float64{5.0},
			wantConfidence: 5.0,
			wantAttempt:    1,
		},
		{
			name:           "strictly increasing keeps the latest",
			scores:         []float64{5.0, 6.0, 6.5},
			wantConfidence: 6.5,
			wantAttempt:    3,
		},
		{
			name:           "equal score does not replace",
			scores:         []float64{6.0, 6.0},
			wantConfidence: 6.0,
			wantAttempt:    1,
		},
		{
			name:           "later drop keeps the peak",
			scores:         []float64{3.0, 6.0, 4.0},
			wantConfidence: 6.0,
			wantAttempt:    2,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			state := NewSessionState("query")
			for _, score := range tt.scores {
				docs := []store.Document{{Title: "doc", Content: "c"}}
				state = state.WithAttempt("query", docs).WithEvaluation(score, "reasoning")
			}

			if tt.wantNil {
				if state.BestPartial != nil {
					t.Fatalf("partial = %+v, want nil", state.BestPartial)
				}
				return
			}
			if state.BestPartial == nil {
				t.Fatal("partial missing")
			}
			if state.BestPartial.Confidence != tt.wantConfidence {
				t.Errorf("partial confidence = %.1f, want %.1f", state.BestPartial.Confidence, tt.wantConfidence)
			}
			if state.BestPartial.Attempt != tt.wantAttempt {
				t.Errorf("partial attempt = %d, want %d", state.BestPartial.Attempt, tt.wantAttempt)
			}
		})
	}
}

func TestBestPartialSnapshotsDocuments(t *testing.T) {
	docs := []store.Document{{Title: "original", Content: "c"}}
	state := NewSessionState("query").WithAttempt("query", docs).WithEvaluation(6.0, "good")

	docs[0].Title = "mutated"

	if state.BestPartial.Documents[0].Title != "original" {
		t.Error("partial must hold its own copy of the documents")
	}
}

func TestTransitionsDoNotAliasPriorState(t *testing.T) {
	base := NewSessionState("query").WithAttempt("q1", nil).WithEvaluation(3.0, "weak")
	branch := base.WithAttempt("q2", nil).WithEvaluation(8.0, "strong")

	if len(base.AttemptHistory) != 1 {
		t.Errorf("base history grew to %d entries", len(base.AttemptHistory))
	}
	if len(branch.AttemptHistory) != 2 {
		t.Errorf("branch history = %d entries, want 2", len(branch.AttemptHistory))
	}
	if base.ModelConfidence != 3.0 {
		t.Errorf("base confidence mutated to %.1f", base.ModelConfidence)
	}
}

func TestWithTerminalFlags(t *testing.T) {
	tests := []struct {
		resolution    string
		wantEscalated bool
		wantAugmented bool
	}{
		{ResolutionAnswered, false, false},
		{ResolutionEscalated, true, false},
		{ResolutionAugmented, false, true},
		{ResolutionDosageFallback, false, false},
	}

	for _, tt := range tests {
		t.Run(tt.resolution, func(t *testing.T) {
			state := NewSessionState("query").WithTerminal(tt.resolution, "answer", 7.0, "note")
			if state.Escalated != tt.wantEscalated {
				t.Errorf("escalated = %v, want %v", state.Escalated, tt.wantEscalated)
			}
			if state.AugmentationUsed != tt.wantAugmented {
				t.Errorf("augmented = %v, want %v", state.AugmentationUsed, tt.wantAugmented)
			}
		})
	}
}

func TestNewSessionStateDefaults(t *testing.T) {
	state := NewSessionState("my question")

	if state.Intent != constant.IntentGeneral {
		t.Errorf("intent = %q, want general", state.Intent)
	}
	if state.ConfidenceThreshold != constant.DefaultConfidenceThreshold {
		t.Errorf("threshold = %.1f, want default", state.ConfidenceThreshold)
	}
	if state.Resolution != ResolutionPending {
		t.Errorf("resolution = %q, want pending", state.Resolution)
	}
	if len(state.EvaluationLog) != 1 {
		t.Errorf("evaluation log = %d entries, want the opening entry only", len(state.EvaluationLog))
	}
}
