package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type EmployeeRecord struct {
	Id         uuid.UUID  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	UserId     uuid.UUID  `gorm:"type:uuid;not null;uniqueIndex"`
	Name       string     `gorm:"type:text;not null"`
	Email      string     `gorm:"type:text;not null;index"`
	Role       string     `gorm:"type:text;not null;index"`
	Position   string     `gorm:"type:text"`
	Department string     `gorm:"type:text"`
	BaseSalary float64    `gorm:"type:numeric(12,2);default:0"`
	Bonus      float64    `gorm:"type:numeric(12,2);default:0"`
	AnnualLeaveDays int    `gorm:"default:0"`
	SickLeaveDays   int    `gorm:"default:0"`
	JoinDate        *time.Time
	ApplicantStatus string `gorm:"type:text"`

	// Document submission maps stored as JSONB: name -> approved
	UploadedDocuments     datatypes.JSONMap `gorm:"type:jsonb"`
	ResubmissionRequested datatypes.JSONMap `gorm:"type:jsonb"`

	CreatedAt time.Time `gorm:"autoCreateTime"`
	UpdatedAt time.Time `gorm:"autoUpdateTime"`
}

func (EmployeeRecord) TableName() string {
	return "employee_records"
}
