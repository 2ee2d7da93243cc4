package entity

import (
	"time"

	"github.com/google/uuid"
)

// EmployeeRecord is the structured per-user record the record lookup
// capability reads from. HR and applicant records share the same shape;
// applicant rows leave the compensation fields at zero.
type EmployeeRecord struct {
	Id         uuid.UUID
	UserId     uuid.UUID
	Name       string
	Email      string
	Role       Role
	Position   string
	Department string
	BaseSalary float64
	Bonus      float64

	AnnualLeaveDays int
	SickLeaveDays   int
	JoinDate        *time.Time

	// Applicant-specific fields
	ApplicantStatus string

	// Document submission tracking: document name -> submitted/approved
	UploadedDocuments     map[string]bool
	ResubmissionRequested map[string]bool

	CreatedAt time.Time
	UpdatedAt *time.Time
}

// TotalCompensation is base salary plus bonus.
func (r *EmployeeRecord) TotalCompensation() float64 {
	return r.BaseSalary + r.Bonus
}
