package service

import (
	"context"
	"encoding/json"
	"time"

	"aqua-support-be/internal/dto"
	"aqua-support-be/internal/entity"
	"aqua-support-be/internal/repository/specification"
	"aqua-support-be/internal/repository/unitofwork"

	"github.com/google/uuid"
)

type IKnowledgeService interface {
	Create(ctx context.Context, req *dto.CreateDocumentRequest) (*dto.CreateDocumentResponse, error)
	Show(ctx context.Context, id uuid.UUID) (*dto.ShowDocumentResponse, error)
	List(ctx context.Context, contentType, category string, page, perPage int) (*dto.ListDocumentsResponse, error)
	Update(ctx context.Context, req *dto.UpdateDocumentRequest) (*dto.ShowDocumentResponse, error)
	Delete(ctx context.Context, id uuid.UUID) error
	Reindex(ctx context.Context, id uuid.UUID) error
}

type knowledgeService struct {
	uowFactory       unitofwork.RepositoryFactory
	publisherService IPublisherService
}

func NewKnowledgeService(
	uowFactory unitofwork.RepositoryFactory,
	publisherService IPublisherService,
) IKnowledgeService {
	return &knowledgeService{
		uowFactory:       uowFactory,
		publisherService: publisherService,
	}
}

func (s *knowledgeService) Create(ctx context.Context, req *dto.CreateDocumentRequest) (*dto.CreateDocumentResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	doc := entity.KbDocument{
		Id:          uuid.New(),
		Title:       req.Title,
		Content:     req.Content,
		ContentType: req.ContentType,
		URL:         req.URL,
		Category:    req.Category,
		Tags:        req.Tags,
		CreatedAt:   time.Now(),
	}

	if err := uow.KbDocumentRepository().Create(ctx, &doc); err != nil {
		return nil, err
	}

	if err := s.publishEmbed(ctx, doc.Id); err != nil {
		return nil, err
	}

	return &dto.CreateDocumentResponse{Id: doc.Id}, nil
}

func (s *knowledgeService) Show(ctx context.Context, id uuid.UUID) (*dto.ShowDocumentResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	doc, err := uow.KbDocumentRepository().FindOne(ctx, specification.ByID{ID: id})
	if err != nil {
		return nil, err
	}
	if doc == nil {
		return nil, nil
	}

	return toShowDocument(doc), nil
}

func (s *knowledgeService) List(ctx context.Context, contentType, category string, page, perPage int) (*dto.ListDocumentsResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	var filters []specification.Specification
	if contentType != "" {
		filters = append(filters, specification.ByContentType{ContentType: contentType})
	}
	if category != "" {
		filters = append(filters, specification.ByCategory{Category: category})
	}

	total, err := uow.KbDocumentRepository().Count(ctx, filters...)
	if err != nil {
		return nil, err
	}

	if page < 1 {
		page = 1
	}
	if perPage < 1 || perPage > 100 {
		perPage = 20
	}
	listSpecs := append(filters,
		specification.OrderBy{Field: "created_at", Desc: true},
		specification.Pagination{Limit: perPage, Offset: (page - 1) * perPage},
	)

	docs, err := uow.KbDocumentRepository().FindAll(ctx, listSpecs...)
	if err != nil {
		return nil, err
	}

	resp := &dto.ListDocumentsResponse{
		Documents: make([]dto.ShowDocumentResponse, 0, len(docs)),
		Total:     total,
	}
	for _, doc := range docs {
		resp.Documents = append(resp.Documents, *toShowDocument(doc))
	}
	return resp, nil
}

func (s *knowledgeService) Update(ctx context.Context, req *dto.UpdateDocumentRequest) (*dto.ShowDocumentResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	doc, err := uow.KbDocumentRepository().FindOne(ctx, specification.ByID{ID: req.Id})
	if err != nil {
		return nil, err
	}
	if doc == nil {
		return nil, nil
	}

	now := time.Now()
	doc.Title = req.Title
	doc.Content = req.Content
	doc.ContentType = req.ContentType
	doc.URL = req.URL
	doc.Category = req.Category
	doc.Tags = req.Tags
	doc.UpdatedAt = &now

	if err := uow.KbDocumentRepository().Update(ctx, doc); err != nil {
		return nil, err
	}

	// Content changed, so the stored vectors are stale.
	if err := s.publishEmbed(ctx, doc.Id); err != nil {
		return nil, err
	}

	return toShowDocument(doc), nil
}

func (s *knowledgeService) Delete(ctx context.Context, id uuid.UUID) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	if err := uow.Begin(ctx); err != nil {
		return err
	}
	defer uow.Rollback()

	if err := uow.KbDocumentRepository().Delete(ctx, id); err != nil {
		return err
	}
	if err := uow.KbEmbeddingRepository().DeleteByDocumentId(ctx, id); err != nil {
		return err
	}

	return uow.Commit()
}

func (s *knowledgeService) Reindex(ctx context.Context, id uuid.UUID) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	doc, err := uow.KbDocumentRepository().FindOne(ctx, specification.ByID{ID: id})
	if err != nil {
		return err
	}
	if doc == nil {
		return ErrDocumentNotFound
	}

	return s.publishEmbed(ctx, id)
}

func (s *knowledgeService) publishEmbed(ctx context.Context, documentId uuid.UUID) error {
	payload := dto.PublishEmbedDocumentMessage{DocumentId: documentId}
	msgJson, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	return s.publisherService.Publish(ctx, msgJson)
}

func toShowDocument(doc *entity.KbDocument) *dto.ShowDocumentResponse {
	return &dto.ShowDocumentResponse{
		Id:          doc.Id,
		Title:       doc.Title,
		Content:     doc.Content,
		ContentType: doc.ContentType,
		URL:         doc.URL,
		Category:    doc.Category,
		Tags:        doc.Tags,
		CreatedAt:   doc.CreatedAt,
		UpdatedAt:   doc.UpdatedAt,
	}
}
