package unitofwork

import (
	"context"

	"aqua-support-be/internal/repository/contract"
)

type UnitOfWork interface {
	Begin(ctx context.Context) error
	Commit() error
	Rollback() error

	KbDocumentRepository() contract.KbDocumentRepository
	KbEmbeddingRepository() contract.KbEmbeddingRepository
	InquiryRepository() contract.InquiryRepository
	AdminUserRepository() contract.AdminUserRepository
}
