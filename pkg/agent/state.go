package agent

import (
	"fmt"
	"time"

	"aqua-support-be/internal/constant"
	"aqua-support-be/pkg/store"
	"aqua-support-be/pkg/utils"
)

// Resolution names the single terminal path a session took. Exactly one
// applies per session.
const (
	ResolutionPending        = "pending"
	ResolutionAnswered       = "answered"
	ResolutionBusinessDirect = "business_direct"
	ResolutionTradeSecret    = "trade_secret_direct"
	ResolutionDosageFallback = "dosage_fallback"
	ResolutionAugmented      = "augmented"
	ResolutionEscalated      = "escalated"
)

// AttemptRecord is one retrieval attempt, immutable once appended.
type AttemptRecord struct {
	Attempt     int       `json:"attempt"`
	Query       string    `json:"query"`
	ResultCount int       `json:"result_count"`
	Timestamp   time.Time `json:"timestamp"`
}

// BestPartial memoizes the strongest document set seen so far. Only the
// evaluation step may set or replace it, and only when a new confidence
// strictly exceeds the current one.
type BestPartial struct {
	Documents  []store.Document
	Confidence float64
	Reasoning  string
	Attempt    int
}

// SessionState is the accumulator threaded through one ask invocation.
// Stages never mutate a state in place; each transition returns a
// replacement value, so a stage always sees a consistent snapshot.
type SessionState struct {
	OriginalQuery string
	CurrentQuery  string

	AttemptCount       int
	AttemptHistory     []AttemptRecord
	AttemptConfidences []float64
	AttemptReasonings  []string

	// Results of the most recent attempt only.
	SearchResults []store.Document

	BestPartial *BestPartial

	ModelConfidence float64

	Intent              string
	BusinessSubtype     string
	ConfidenceThreshold float64
	TradeSecret         bool

	EvaluationLog []string

	FinalAnswer      string
	Resolution       string
	Escalated        bool
	AugmentationUsed bool
}

// NewSessionState initializes the accumulator for one query.
func NewSessionState(originalQuery string) SessionState {
	return SessionState{
		OriginalQuery:       originalQuery,
		CurrentQuery:        originalQuery,
		Intent:              constant.IntentGeneral,
		BusinessSubtype:     constant.BusinessSubtypeNone,
		ConfidenceThreshold: constant.DefaultConfidenceThreshold,
		Resolution:          ResolutionPending,
		EvaluationLog:       []string{fmt.Sprintf("Starting evaluation for: %q", originalQuery)},
	}
}

// WithClassification merges the classifier's verdict. Threshold and
// intent are read-only for the rest of the session.
func (s SessionState) WithClassification(intent, businessSubtype string, tradeSecret bool, threshold float64) SessionState {
	next := s.clone()
	next.Intent = intent
	next.BusinessSubtype = businessSubtype
	next.TradeSecret = tradeSecret
	next.ConfidenceThreshold = threshold
	next.EvaluationLog = append(next.EvaluationLog,
		fmt.Sprintf("Intent: %s (subtype=%s, trade_secret=%v, threshold=%.1f)",
			intent, businessSubtype, tradeSecret, threshold))
	return next
}

// WithAttempt records one retrieval pass. SearchResults always reflect
// the latest attempt only.
func (s SessionState) WithAttempt(query string, results []store.Document) SessionState {
	next := s.clone()
	next.AttemptCount++
	next.CurrentQuery = query
	next.SearchResults = results
	next.AttemptHistory = append(next.AttemptHistory, AttemptRecord{
		Attempt:     next.AttemptCount,
		Query:       query,
		ResultCount: len(results),
		Timestamp:   time.Now(),
	})
	next.EvaluationLog = append(next.EvaluationLog,
		fmt.Sprintf("Attempt %d: %q -> %d results found", next.AttemptCount, query, len(results)))
	return next
}

// WithEvaluation records an adequacy score and maintains the best-partial
// memo. The memo updates on every evaluation, not only at exhaustion, and
// only strictly upward once set.
func (s SessionState) WithEvaluation(confidence float64, reasoning string) SessionState {
	next := s.clone()
	next.ModelConfidence = confidence
	next.AttemptConfidences = append(next.AttemptConfidences, confidence)
	next.AttemptReasonings = append(next.AttemptReasonings, reasoning)

	short := utils.TruncateRunes(reasoning, 50)
	next.EvaluationLog = append(next.EvaluationLog,
		fmt.Sprintf("Model evaluation: %.1f/10 - %s", confidence, short))

	if confidence >= constant.PartialUsabilityFloor &&
		(next.BestPartial == nil || confidence > next.BestPartial.Confidence) {
		docs := make([]store.Document, len(s.SearchResults))
		copy(docs, s.SearchResults)
		next.BestPartial = &BestPartial{
			Documents:  docs,
			Confidence: confidence,
			Reasoning:  reasoning,
			Attempt:    next.AttemptCount,
		}
	}

	return next
}

// WithTerminal closes the session on one resolution path.
func (s SessionState) WithTerminal(resolution, answer string, confidence float64, note string) SessionState {
	next := s.clone()
	next.Resolution = resolution
	next.FinalAnswer = answer
	next.ModelConfidence = confidence
	next.Escalated = resolution == ResolutionEscalated
	next.AugmentationUsed = resolution == ResolutionAugmented
	if note != "" {
		next.EvaluationLog = append(next.EvaluationLog, note)
	}
	return next
}

// clone copies the state with fresh slice headers so appends on the
// replacement never alias the previous snapshot.
func (s SessionState) clone() SessionState {
	next := s
	next.AttemptHistory = append([]AttemptRecord(nil), s.AttemptHistory...)
	next.AttemptConfidences = append([]float64(nil), s.AttemptConfidences...)
	next.AttemptReasonings = append([]string(nil), s.AttemptReasonings...)
	next.EvaluationLog = append([]string(nil), s.EvaluationLog...)
	return next
}
