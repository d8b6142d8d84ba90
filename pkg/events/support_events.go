package events

import "time"

const (
	EventInquiryEscalated = "INQUIRY_ESCALATED"
	EventInquiryAnswered  = "INQUIRY_ANSWERED"
	EventDocumentEmbedded = "DOCUMENT_EMBEDDED"
)

// NewInquiryEscalatedEvent is emitted when the agent exhausts its retrieval
// attempts without reaching an acceptable answer and hands off to a human.
func NewInquiryEscalatedEvent(inquiryID, question, intent string, confidence float64, attempts int) Event {
	return BaseEvent{
		Type: EventInquiryEscalated,
		Data: map[string]interface{}{
			"inquiry_id": inquiryID,
			"question":   question,
			"intent":     intent,
			"confidence": confidence,
			"attempts":   attempts,
		},
		OccurredAt: time.Now(),
	}
}

// NewInquiryAnsweredEvent is emitted when the agent accepts an answer.
func NewInquiryAnsweredEvent(inquiryID, intent string, confidence float64, attempts int, augmented bool) Event {
	return BaseEvent{
		Type: EventInquiryAnswered,
		Data: map[string]interface{}{
			"inquiry_id": inquiryID,
			"intent":     intent,
			"confidence": confidence,
			"attempts":   attempts,
			"augmented":  augmented,
		},
		OccurredAt: time.Now(),
	}
}

// NewDocumentEmbeddedEvent is emitted after a knowledge base document has
// been chunked and its embeddings stored.
func NewDocumentEmbeddedEvent(documentID string, chunks int) Event {
	return BaseEvent{
		Type: EventDocumentEmbedded,
		Data: map[string]interface{}{
			"document_id": documentID,
			"chunks":      chunks,
		},
		OccurredAt: time.Now(),
	}
}
