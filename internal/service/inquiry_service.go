package service

import (
	"context"

	"aqua-support-be/internal/dto"
	"aqua-support-be/internal/entity"
	"aqua-support-be/internal/repository/specification"
	"aqua-support-be/internal/repository/unitofwork"

	"github.com/google/uuid"
)

type IInquiryService interface {
	Show(ctx context.Context, id uuid.UUID) (*dto.InquiryResponse, error)
	List(ctx context.Context, req *dto.ListInquiriesRequest) (*dto.ListInquiriesResponse, error)
}

type inquiryService struct {
	uowFactory unitofwork.RepositoryFactory
}

func NewInquiryService(uowFactory unitofwork.RepositoryFactory) IInquiryService {
	return &inquiryService{uowFactory: uowFactory}
}

func (s *inquiryService) Show(ctx context.Context, id uuid.UUID) (*dto.InquiryResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	inquiry, err := uow.InquiryRepository().FindOne(ctx, specification.ByID{ID: id})
	if err != nil {
		return nil, err
	}
	if inquiry == nil {
		return nil, nil
	}
	return toInquiryResponse(inquiry, true), nil
}

func (s *inquiryService) List(ctx context.Context, req *dto.ListInquiriesRequest) (*dto.ListInquiriesResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	var filters []specification.Specification
	if req.Intent != "" {
		filters = append(filters, specification.ByIntent{Intent: req.Intent})
	}
	if req.Escalated {
		filters = append(filters, specification.EscalatedOnly{})
	}

	total, err := uow.InquiryRepository().Count(ctx, filters...)
	if err != nil {
		return nil, err
	}

	page := req.Page
	if page < 1 {
		page = 1
	}
	perPage := req.PerPage
	if perPage < 1 || perPage > 100 {
		perPage = 20
	}
	listSpecs := append(filters,
		specification.OrderBy{Field: "created_at", Desc: true},
		specification.Pagination{Limit: perPage, Offset: (page - 1) * perPage},
	)

	inquiries, err := uow.InquiryRepository().FindAll(ctx, listSpecs...)
	if err != nil {
		return nil, err
	}

	resp := &dto.ListInquiriesResponse{
		Inquiries: make([]dto.InquiryResponse, 0, len(inquiries)),
		Total:     total,
	}
	for _, inquiry := range inquiries {
		resp.Inquiries = append(resp.Inquiries, *toInquiryResponse(inquiry, false))
	}
	return resp, nil
}

func toInquiryResponse(inquiry *entity.Inquiry, withTrace bool) *dto.InquiryResponse {
	resp := &dto.InquiryResponse{
		Id:               inquiry.Id,
		Question:         inquiry.Question,
		Answer:           inquiry.Answer,
		Intent:           inquiry.Intent,
		BusinessSubtype:  inquiry.BusinessSubtype,
		Resolution:       inquiry.Resolution,
		Confidence:       inquiry.Confidence,
		Attempts:         inquiry.Attempts,
		Escalated:        inquiry.Escalated,
		TradeSecret:      inquiry.TradeSecret,
		AugmentationUsed: inquiry.AugmentationUsed,
		CreatedAt:        inquiry.CreatedAt,
	}
	if withTrace {
		resp.Trace = inquiry.Trace
	}
	return resp
}
