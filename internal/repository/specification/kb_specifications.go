package specification

import "gorm.io/gorm"

// ByContentType filters knowledge base documents by their content type.
type ByContentType struct {
	ContentType string
}

func (s ByContentType) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("content_type = ?", s.ContentType)
}

// ByCategory filters knowledge base documents by category.
type ByCategory struct {
	Category string
}

func (s ByCategory) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("category = ?", s.Category)
}

// TitleContains does a case-insensitive title search.
type TitleContains struct {
	Term string
}

func (s TitleContains) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("title ILIKE ?", "%"+s.Term+"%")
}

// EscalatedOnly narrows inquiries to those handed off to a human.
type EscalatedOnly struct{}

func (s EscalatedOnly) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("escalated = ?", true)
}

// ByIntent filters inquiries by their classified intent.
type ByIntent struct {
	Intent string
}

func (s ByIntent) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("intent = ?", s.Intent)
}
