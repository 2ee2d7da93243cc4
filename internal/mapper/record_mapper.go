package mapper

import (
	"time"

	"hr-assistant-be/internal/entity"
	"hr-assistant-be/internal/model"

	"gorm.io/datatypes"
)

type RecordMapper struct{}

func NewRecordMapper() *RecordMapper {
	return &RecordMapper{}
}

func (m *RecordMapper) ToEntity(r *model.EmployeeRecord) *entity.EmployeeRecord {
	if r == nil {
		return nil
	}

	var updatedAt *time.Time
	if !r.UpdatedAt.IsZero() {
		t := r.UpdatedAt
		updatedAt = &t
	}

	return &entity.EmployeeRecord{
		Id:                    r.Id,
		UserId:                r.UserId,
		Name:                  r.Name,
		Email:                 r.Email,
		Role:                  entity.Role(r.Role),
		Position:              r.Position,
		Department:            r.Department,
		BaseSalary:            r.BaseSalary,
		Bonus:                 r.Bonus,
		AnnualLeaveDays:       r.AnnualLeaveDays,
		SickLeaveDays:         r.SickLeaveDays,
		JoinDate:              r.JoinDate,
		ApplicantStatus:       r.ApplicantStatus,
		UploadedDocuments:     jsonMapToBoolMap(r.UploadedDocuments),
		ResubmissionRequested: jsonMapToBoolMap(r.ResubmissionRequested),
		CreatedAt:             r.CreatedAt,
		UpdatedAt:             updatedAt,
	}
}

func (m *RecordMapper) ToModel(r *entity.EmployeeRecord) *model.EmployeeRecord {
	if r == nil {
		return nil
	}

	var updatedAt time.Time
	if r.UpdatedAt != nil {
		updatedAt = *r.UpdatedAt
	}

	return &model.EmployeeRecord{
		Id:                    r.Id,
		UserId:                r.UserId,
		Name:                  r.Name,
		Email:                 r.Email,
		Role:                  string(r.Role),
		Position:              r.Position,
		Department:            r.Department,
		BaseSalary:            r.BaseSalary,
		Bonus:                 r.Bonus,
		AnnualLeaveDays:       r.AnnualLeaveDays,
		SickLeaveDays:         r.SickLeaveDays,
		JoinDate:              r.JoinDate,
		ApplicantStatus:       r.ApplicantStatus,
		UploadedDocuments:     boolMapToJSONMap(r.UploadedDocuments),
		ResubmissionRequested: boolMapToJSONMap(r.ResubmissionRequested),
		CreatedAt:             r.CreatedAt,
		UpdatedAt:             updatedAt,
	}
}

func jsonMapToBoolMap(in datatypes.JSONMap) map[string]bool {
	if in == nil {
		return nil
	}
	out := make(map[string]bool, len(in))
	for k, v := range in {
		if b, ok := v.(bool); ok {
			out[k] = b
		}
	}
	return out
}

func boolMapToJSONMap(in map[string]bool) datatypes.JSONMap {
	if in == nil {
		return nil
	}
	out := make(datatypes.JSONMap, len(in))
	for k, v := range in {
		out[k] = v
	}
	return out
}
