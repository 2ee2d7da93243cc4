package specification

import "gorm.io/gorm"

// ByEmail filters employee records by exact email
type ByEmail struct {
	Email string
}

func (s ByEmail) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("email = ?", s.Email)
}

// ByName filters employee records by display name, case-insensitive
type ByName struct {
	Name string
}

func (s ByName) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("LOWER(name) = LOWER(?)", s.Name)
}

// ByRole filters employee records by role
type ByRole struct {
	Role string
}

func (s ByRole) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("role = ?", s.Role)
}

// ByDocumentID filters policy chunks by source document
type ByDocumentID struct {
	DocumentID string
}

func (s ByDocumentID) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("document_id = ?", s.DocumentID)
}
