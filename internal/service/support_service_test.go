package service

import (
	"context"
	"io"
	"log"
	"testing"
	"time"

	"aqua-support-be/internal/constant"
	"aqua-support-be/internal/dto"
	"aqua-support-be/internal/entity"
	"aqua-support-be/internal/pkg/logger"
	"aqua-support-be/internal/repository/contract"
	"aqua-support-be/internal/repository/memory"
	"aqua-support-be/internal/repository/specification"
	"aqua-support-be/internal/repository/unitofwork"
	"aqua-support-be/pkg/agent"
	"aqua-support-be/pkg/agent/augment"
	"aqua-support-be/pkg/agent/intent"
	"aqua-support-be/pkg/agent/query"
	"aqua-support-be/pkg/store"
)

// Fake persistence layer. Only the inquiry repository is exercised by the
// support flow; the other accessors stay nil.

type fakeInquiryRepo struct {
	created []*entity.Inquiry
}

func (f *fakeInquiryRepo) Create(ctx context.Context, inquiry *entity.Inquiry) error {
	f.created = append(f.created, inquiry)
	return nil
}

func (f *fakeInquiryRepo) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Inquiry, error) {
	return nil, nil
}

func (f *fakeInquiryRepo) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Inquiry, error) {
	return nil, nil
}

func (f *fakeInquiryRepo) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	return int64(len(f.created)), nil
}

type fakeUnitOfWork struct {
	inquiries *fakeInquiryRepo
}

func (f *fakeUnitOfWork) Begin(ctx context.Context) error { return nil }
func (f *fakeUnitOfWork) Commit() error                   { return nil }
func (f *fakeUnitOfWork) Rollback() error                 { return nil }

func (f *fakeUnitOfWork) KbDocumentRepository() contract.KbDocumentRepository   { return nil }
func (f *fakeUnitOfWork) KbEmbeddingRepository() contract.KbEmbeddingRepository { return nil }
func (f *fakeUnitOfWork) InquiryRepository() contract.InquiryRepository         { return f.inquiries }
func (f *fakeUnitOfWork) AdminUserRepository() contract.AdminUserRepository     { return nil }

type fakeUowFactory struct {
	uow *fakeUnitOfWork
}

func (f *fakeUowFactory) NewUnitOfWork(ctx context.Context) unitofwork.UnitOfWork { return f.uow }

type noopLogger struct{}

func (noopLogger) Debug(module, message string, details map[string]interface{}) {}
func (noopLogger) Info(module, message string, details map[string]interface{})  {}
func (noopLogger) Warn(module, message string, details map[string]interface{})  {}
func (noopLogger) Error(module, message string, details map[string]interface{}) {}
func (noopLogger) Sync() error                                                  { return nil }
func (noopLogger) GetLogs(level string, limit, offset int) ([]logger.LogEntry, error) {
	return nil, nil
}
func (noopLogger) GetLogById(id string) (*logger.LogEntry, error) { return nil, nil }

// Deterministic agent collaborators. The scripted scorer decides the
// outcome without any oracle involvement.

type fixedClassifier struct {
	cls intent.Classification
}

func (f *fixedClassifier) Classify(ctx context.Context, rawQuery string) intent.Classification {
	return f.cls
}

type fixedResponder struct{}

func (fixedResponder) Respond(cls intent.Classification) (string, float64, bool) {
	return "", 0, false
}
func (fixedResponder) DosageFallback() (string, float64) { return "see packaging", 7.0 }
func (fixedResponder) Escalation() string                { return "a human will follow up" }

type fixedReformulator struct{}

func (fixedReformulator) Reformulate(ctx context.Context, originalQuery, intentName string, attempt int, prior []query.PriorAttempt) string {
	return originalQuery
}

type fixedRetriever struct{}

func (fixedRetriever) Retrieve(ctx context.Context, q string, attempt int) []store.Document {
	return []store.Document{{Title: "doc", Content: "content"}}
}

type fixedScorer struct {
	score float64
}

func (f *fixedScorer) Score(ctx context.Context, q string, docs []store.Document) (float64, string) {
	return f.score, "fixed"
}

type fixedAugmenter struct{}

func (fixedAugmenter) Augment(ctx context.Context, q string, docs []store.Document, partialConfidence float64) augment.Outcome {
	return augment.Outcome{}
}

type fixedSynthesizer struct{}

func (fixedSynthesizer) Synthesize(ctx context.Context, q string, docs []store.Document, attempts int, confidence float64, intentName string, evalLog []string) string {
	return "a grounded answer"
}

func newSupportFixture(t *testing.T, score float64) (ISupportService, *fakeInquiryRepo) {
	t.Helper()
	supportAgent := agent.NewAgent(
		&fixedClassifier{cls: intent.Classification{
			Intent:          constant.IntentGeneral,
			BusinessSubtype: constant.BusinessSubtypeNone,
			Threshold:       constant.ThresholdFor(constant.IntentGeneral),
		}},
		fixedResponder{},
		fixedReformulator{},
		fixedRetriever{},
		&fixedScorer{score: score},
		fixedAugmenter{},
		fixedSynthesizer{},
		constant.MaxReasoningAttempts,
		time.Second,
		log.New(io.Discard, "", 0),
	)

	repo := &fakeInquiryRepo{}
	factory := &fakeUowFactory{uow: &fakeUnitOfWork{inquiries: repo}}
	memo := memory.NewAnswerMemoRepository(time.Minute)

	svc := NewSupportService(supportAgent, factory, memo, nil, nil, "", nil, noopLogger{})
	return svc, repo
}

func TestAskPersistsInquiry(t *testing.T) {
	svc, repo := newSupportFixture(t, 8.0)

	resp, err := svc.Ask(context.Background(), &dto.AskRequest{Question: "how do I raise KH?"})
	if err != nil {
		t.Fatalf("Ask: %v", err)
	}

	if resp.Resolution != agent.ResolutionAnswered {
		t.Errorf("resolution = %q, want answered", resp.Resolution)
	}
	if resp.Cached {
		t.Error("first ask must not be served from memo")
	}
	if len(repo.created) != 1 {
		t.Fatalf("persisted %d inquiries, want 1", len(repo.created))
	}
	inquiry := repo.created[0]
	if inquiry.Question != "how do I raise KH?" || inquiry.Answer != "a grounded answer" {
		t.Errorf("persisted inquiry = %+v", inquiry)
	}
	if inquiry.Escalated {
		t.Error("answered inquiry marked escalated")
	}
	if len(inquiry.Trace) == 0 {
		t.Error("inquiry missing evaluation trace")
	}
}

func TestAskServesMemoOnRepeat(t *testing.T) {
	svc, repo := newSupportFixture(t, 8.0)
	ctx := context.Background()

	if _, err := svc.Ask(ctx, &dto.AskRequest{Question: "how do I raise KH?"}); err != nil {
		t.Fatalf("first Ask: %v", err)
	}
	resp, err := svc.Ask(ctx, &dto.AskRequest{Question: "  HOW do i raise kh?  "})
	if err != nil {
		t.Fatalf("second Ask: %v", err)
	}

	if !resp.Cached {
		t.Error("repeat question must be served from memo")
	}
	if resp.Answer != "a grounded answer" {
		t.Errorf("cached answer = %q", resp.Answer)
	}
	if len(repo.created) != 1 {
		t.Errorf("memo hit still persisted an inquiry, repo has %d", len(repo.created))
	}
}

func TestAskEscalationPersistsAndSurvivesNilChannels(t *testing.T) {
	// All below threshold and below the partial floor. Publisher, mailer
	// and hub are nil; the flow must still complete.
	svc, repo := newSupportFixture(t, 2.0)

	resp, err := svc.Ask(context.Background(), &dto.AskRequest{Question: "something obscure"})
	if err != nil {
		t.Fatalf("Ask: %v", err)
	}

	if !resp.Escalated || resp.Resolution != agent.ResolutionEscalated {
		t.Fatalf("resolution = %q escalated = %v, want escalated", resp.Resolution, resp.Escalated)
	}
	if resp.Answer != "a human will follow up" {
		t.Errorf("answer = %q", resp.Answer)
	}
	if len(repo.created) != 1 || !repo.created[0].Escalated {
		t.Error("escalated inquiry not persisted with the escalation flag")
	}
}
