package service

import (
	"context"
	"log"
	"time"

	"aqua-support-be/internal/dto"
	"aqua-support-be/internal/entity"
	"aqua-support-be/internal/pkg/logger"
	"aqua-support-be/internal/pkg/mailer"
	"aqua-support-be/internal/repository/memory"
	"aqua-support-be/internal/repository/unitofwork"
	"aqua-support-be/internal/websocket"
	"aqua-support-be/pkg/agent"
	"aqua-support-be/pkg/events"
	pkgNats "aqua-support-be/pkg/nats"

	"github.com/google/uuid"
)

type ISupportService interface {
	Ask(ctx context.Context, req *dto.AskRequest) (*dto.AskResponse, error)
}

type supportService struct {
	supportAgent    *agent.Agent
	uowFactory      unitofwork.RepositoryFactory
	answerMemo      *memory.AnswerMemoRepository
	eventPublisher  *pkgNats.Publisher
	emailService    mailer.IEmailService
	escalationEmail string
	hub             *websocket.Hub
	logger          logger.ILogger
}

func NewSupportService(
	supportAgent *agent.Agent,
	uowFactory unitofwork.RepositoryFactory,
	answerMemo *memory.AnswerMemoRepository,
	eventPublisher *pkgNats.Publisher,
	emailService mailer.IEmailService,
	escalationEmail string,
	hub *websocket.Hub,
	appLogger logger.ILogger,
) ISupportService {
	return &supportService{
		supportAgent:    supportAgent,
		uowFactory:      uowFactory,
		answerMemo:      answerMemo,
		eventPublisher:  eventPublisher,
		emailService:    emailService,
		escalationEmail: escalationEmail,
		hub:             hub,
		logger:          appLogger,
	}
}

func (s *supportService) Ask(ctx context.Context, req *dto.AskRequest) (*dto.AskResponse, error) {
	// Identical questions inside the memo window get the identical answer
	// without re-running the agent.
	if cached, ok := s.answerMemo.Get(req.Question); ok {
		s.logger.Info("Support", "Answer served from memo", map[string]interface{}{
			"intent":     cached.Intent,
			"confidence": cached.Confidence,
		})
		resp := toAskResponse(uuid.Nil, cached, time.Now())
		resp.Cached = true
		return resp, nil
	}

	result := s.supportAgent.Ask(ctx, req.Question)

	inquiry := &entity.Inquiry{
		Id:               uuid.New(),
		Question:         result.Query,
		Answer:           result.Answer,
		Intent:           result.Intent,
		BusinessSubtype:  result.BusinessSubtype,
		Resolution:       result.Resolution,
		Confidence:       result.Confidence,
		Attempts:         result.Attempts,
		Escalated:        result.Escalated,
		TradeSecret:      result.TradeSecretHandled,
		AugmentationUsed: result.AugmentationUsed,
		Trace:            result.EvaluationTrace,
		CreatedAt:        time.Now(),
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	if err := uow.InquiryRepository().Create(ctx, inquiry); err != nil {
		// The customer still gets their answer; only the audit trail failed.
		s.logger.Error("Support", "Failed to persist inquiry", map[string]interface{}{
			"error": err.Error(),
		})
	}

	s.answerMemo.Save(req.Question, result)

	if result.Escalated {
		s.notifyEscalation(ctx, inquiry)
	} else {
		s.publishAnswered(ctx, inquiry)
	}

	return toAskResponse(inquiry.Id, result, inquiry.CreatedAt), nil
}

func (s *supportService) publishAnswered(ctx context.Context, inquiry *entity.Inquiry) {
	if s.eventPublisher == nil {
		return
	}
	evt := events.NewInquiryAnsweredEvent(inquiry.Id.String(), inquiry.Intent, inquiry.Confidence, inquiry.Attempts, inquiry.AugmentationUsed)
	if err := s.eventPublisher.Publish(ctx, evt); err != nil {
		log.Printf("[WARN] Failed to publish %s event: %v", events.EventInquiryAnswered, err)
	}
}

// notifyEscalation fans the handoff out to every channel the support team
// watches. Each channel failing alone must not block the others.
func (s *supportService) notifyEscalation(ctx context.Context, inquiry *entity.Inquiry) {
	if s.eventPublisher != nil {
		evt := events.NewInquiryEscalatedEvent(inquiry.Id.String(), inquiry.Question, inquiry.Intent, inquiry.Confidence, inquiry.Attempts)
		if err := s.eventPublisher.Publish(ctx, evt); err != nil {
			log.Printf("[WARN] Failed to publish %s event: %v", events.EventInquiryEscalated, err)
		}
	}

	if s.emailService != nil && s.escalationEmail != "" {
		go func(inq entity.Inquiry) {
			if err := s.emailService.SendEscalationAlert(s.escalationEmail, inq.Id.String(), inq.Question, inq.Intent, inq.Confidence, inq.Attempts); err != nil {
				s.logger.Error("Support", "Escalation email failed", map[string]interface{}{
					"inquiry_id": inq.Id,
					"error":      err.Error(),
				})
			}
		}(*inquiry)
	}

	if s.hub != nil {
		s.hub.Broadcast(websocket.EscalationNotice{
			InquiryID:  inquiry.Id.String(),
			Question:   inquiry.Question,
			Intent:     inquiry.Intent,
			Confidence: inquiry.Confidence,
			Attempts:   inquiry.Attempts,
			Timestamp:  inquiry.CreatedAt,
		})
	}

	s.logger.Warn("Support", "Inquiry escalated to human support", map[string]interface{}{
		"inquiry_id": inquiry.Id,
		"intent":     inquiry.Intent,
		"confidence": inquiry.Confidence,
		"attempts":   inquiry.Attempts,
	})
}

func toAskResponse(inquiryId uuid.UUID, result *agent.Result, createdAt time.Time) *dto.AskResponse {
	return &dto.AskResponse{
		InquiryId:        inquiryId,
		Question:         result.Query,
		Answer:           result.Answer,
		Intent:           result.Intent,
		BusinessSubtype:  result.BusinessSubtype,
		Resolution:       result.Resolution,
		Confidence:       result.Confidence,
		Attempts:         result.Attempts,
		Escalated:        result.Escalated,
		AugmentationUsed: result.AugmentationUsed,
		CreatedAt:        createdAt,
	}
}
