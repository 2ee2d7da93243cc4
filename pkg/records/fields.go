package records

import "hr-assistant-be/internal/entity"

// Field is the closed set of record attributes the lookup capability can
// answer about. The router maps free text onto these; anything else is
// unmappable.
type Field string

const (
	FieldName            Field = "name"
	FieldEmail           Field = "email"
	FieldPosition        Field = "position"
	FieldDepartment      Field = "department"
	FieldSalary          Field = "salary"
	FieldLeaveDays       Field = "leave_days"
	FieldSickDays        Field = "sick_days"
	FieldJoinDate        Field = "join_date"
	FieldApplicantStatus Field = "applicant_status"
	FieldDocumentStatus  Field = "document_status"

	// FieldAll summarizes the whole record in one answer.
	FieldAll Field = "all"

	// FieldApplicantCount is an aggregate over all applicant records.
	FieldApplicantCount Field = "applicant_count"
)

var knownFields = map[Field]bool{
	FieldName:            true,
	FieldEmail:           true,
	FieldPosition:        true,
	FieldDepartment:      true,
	FieldSalary:          true,
	FieldSickDays:        true,
	FieldLeaveDays:       true,
	FieldJoinDate:        true,
	FieldApplicantStatus: true,
	FieldDocumentStatus:  true,
	FieldAll:             true,
	FieldApplicantCount:  true,
}

// applicantFields are the only attributes an applicant may read, and only
// about themselves.
var applicantFields = map[Field]bool{
	FieldApplicantStatus: true,
	FieldDocumentStatus:  true,
}

func IsKnownField(f Field) bool {
	return knownFields[f]
}

// Authorize is the single authorization decision for record access. It is
// pure and independent of how the request was phrased or routed:
//   - hr reads any field of any record, plus aggregates;
//   - employees read any field of their own record only;
//   - applicants read applicant fields of their own record only.
func Authorize(role entity.Role, self bool, field Field) bool {
	if !IsKnownField(field) {
		return false
	}

	switch role {
	case entity.RoleHR:
		return true
	case entity.RoleEmployee:
		return self && field != FieldApplicantCount
	case entity.RoleApplicant:
		return self && applicantFields[field]
	default:
		return false
	}
}
