package records

import (
	"context"
	"strings"
	"testing"
	"time"

	"hr-assistant-be/internal/entity"
	"hr-assistant-be/internal/repository/contract"
	"hr-assistant-be/internal/repository/specification"
	"hr-assistant-be/internal/repository/unitofwork"
	"hr-assistant-be/pkg/agent"

	"github.com/google/uuid"
)

// fakeRecordRepo serves records keyed by user id, email, and name.
type fakeRecordRepo struct {
	contract.RecordRepository
	records   []*entity.EmployeeRecord
	findCalls int
}

func (f *fakeRecordRepo) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.EmployeeRecord, error) {
	f.findCalls++
	for _, spec := range specs {
		switch s := spec.(type) {
		case specification.ByUserID:
			for _, r := range f.records {
				if r.UserId == s.UserID {
					return r, nil
				}
			}
		case specification.ByEmail:
			for _, r := range f.records {
				if r.Email == s.Email {
					return r, nil
				}
			}
		case specification.ByName:
			for _, r := range f.records {
				if strings.EqualFold(r.Name, s.Name) {
					return r, nil
				}
			}
		}
	}
	return nil, nil
}

func (f *fakeRecordRepo) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	var count int64
	for _, spec := range specs {
		if s, ok := spec.(specification.ByRole); ok {
			for _, r := range f.records {
				if string(r.Role) == s.Role {
					count++
				}
			}
		}
	}
	return count, nil
}

type fakeUow struct {
	unitofwork.UnitOfWork
	recordRepo *fakeRecordRepo
}

func (f *fakeUow) RecordRepository() contract.RecordRepository { return f.recordRepo }

type fakeUowFactory struct {
	uow *fakeUow
}

func (f *fakeUowFactory) NewUnitOfWork(ctx context.Context) unitofwork.UnitOfWork { return f.uow }

func fixtureRepo() *fakeRecordRepo {
	join := time.Date(2020, 5, 4, 0, 0, 0, 0, time.UTC)
	return &fakeRecordRepo{records: []*entity.EmployeeRecord{
		{
			UserId:          uuid.MustParse("11111111-1111-1111-1111-111111111111"),
			Name:            "Alice Chen",
			Email:           "alice.chen@corp.example",
			Role:            entity.RoleEmployee,
			Position:        "Software Engineer",
			Department:      "Engineering",
			BaseSalary:      82000,
			Bonus:           6000,
			AnnualLeaveDays: 14,
			SickLeaveDays:   8,
			JoinDate:        &join,
		},
		{
			UserId:          uuid.MustParse("44444444-4444-4444-4444-444444444444"),
			Name:            "Evan Osei",
			Email:           "evan.osei@mail.example",
			Role:            entity.RoleApplicant,
			ApplicantStatus: "interview scheduled",
			UploadedDocuments: map[string]bool{
				"cv":           true,
				"cover_letter": false,
			},
		},
	}}
}

func newTestResolver(routerResponse string, repo *fakeRecordRepo) *Resolver {
	router := NewRouter(&mockLLM{responses: []string{routerResponse}})
	return NewResolver(router, &fakeUowFactory{uow: &fakeUow{recordRepo: repo}})
}

func TestLookupSelfSalary(t *testing.T) {
	repo := fixtureRepo()
	resolver := newTestResolver(`{"target": "self", "field": "salary"}`, repo)

	identity := &entity.Identity{
		UserId: uuid.MustParse("11111111-1111-1111-1111-111111111111"),
		Role:   entity.RoleEmployee,
		Name:   "Alice Chen",
	}
	result := resolver.Lookup(context.Background(), identity, "what is my salary?")

	if result.Status != agent.StatusOK {
		t.Fatalf("Status = %s, want ok (err: %v)", result.Status, result.Err)
	}
	if !strings.Contains(result.Content, "88000.00") {
		t.Errorf("expected total compensation in content, got %q", result.Content)
	}
}

func TestLookupCrossUserDeniedForEmployee(t *testing.T) {
	repo := fixtureRepo()
	resolver := newTestResolver(`{"target": "alice.chen@corp.example", "field": "salary"}`, repo)

	identity := &entity.Identity{UserId: uuid.New(), Role: entity.RoleEmployee, Name: "Bob"}
	result := resolver.Lookup(context.Background(), identity, "what does alice earn?")

	if result.Status != agent.StatusDenied {
		t.Fatalf("Status = %s, want denied", result.Status)
	}
	// Denial happens before any store access: no data can leak
	if repo.findCalls != 0 {
		t.Errorf("store was read %d times on a denied request", repo.findCalls)
	}
	if strings.Contains(result.Content, "82000") {
		t.Errorf("denied result leaked data: %q", result.Content)
	}
}

func TestLookupCrossUserForHR(t *testing.T) {
	tests := []struct {
		name     string
		response string
	}{
		{"by user id", `{"target": "11111111-1111-1111-1111-111111111111", "field": "leave_days"}`},
		{"by email", `{"target": "alice.chen@corp.example", "field": "leave_days"}`},
		{"by display name", `{"target": "Alice Chen", "field": "leave_days"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resolver := newTestResolver(tt.response, fixtureRepo())

			identity := &entity.Identity{UserId: uuid.New(), Role: entity.RoleHR, Name: "Dana"}
			result := resolver.Lookup(context.Background(), identity, "alice's leave balance")

			if result.Status != agent.StatusOK {
				t.Fatalf("Status = %s, want ok (err: %v)", result.Status, result.Err)
			}
			if !strings.Contains(result.Content, "14 annual leave days") {
				t.Errorf("unexpected content: %q", result.Content)
			}
		})
	}
}

func TestLookupApplicantOwnStatus(t *testing.T) {
	resolver := newTestResolver(`{"target": "self", "field": "applicant_status"}`, fixtureRepo())

	identity := &entity.Identity{
		UserId: uuid.MustParse("44444444-4444-4444-4444-444444444444"),
		Role:   entity.RoleApplicant,
		Name:   "Evan Osei",
	}
	result := resolver.Lookup(context.Background(), identity, "where is my application?")

	if result.Status != agent.StatusOK {
		t.Fatalf("Status = %s, want ok (err: %v)", result.Status, result.Err)
	}
	if !strings.Contains(result.Content, "interview scheduled") {
		t.Errorf("unexpected content: %q", result.Content)
	}
}

func TestLookupApplicantSalaryDenied(t *testing.T) {
	resolver := newTestResolver(`{"target": "self", "field": "salary"}`, fixtureRepo())

	identity := &entity.Identity{
		UserId: uuid.MustParse("44444444-4444-4444-4444-444444444444"),
		Role:   entity.RoleApplicant,
	}
	result := resolver.Lookup(context.Background(), identity, "what would my salary be?")

	if result.Status != agent.StatusDenied {
		t.Fatalf("Status = %s, want denied", result.Status)
	}
}

func TestLookupUnknownTargetNotFound(t *testing.T) {
	resolver := newTestResolver(`{"target": "nobody@corp.example", "field": "salary"}`, fixtureRepo())

	identity := &entity.Identity{UserId: uuid.New(), Role: entity.RoleHR}
	result := resolver.Lookup(context.Background(), identity, "salary of nobody")

	if result.Status != agent.StatusNotFound {
		t.Fatalf("Status = %s, want not_found", result.Status)
	}
}

func TestLookupUnmappableNeverGuesses(t *testing.T) {
	resolver := newTestResolver("no json here", fixtureRepo())

	identity := &entity.Identity{UserId: uuid.New(), Role: entity.RoleHR}
	result := resolver.Lookup(context.Background(), identity, "tell me something")

	if result.Status != agent.StatusUnmappable {
		t.Fatalf("Status = %s, want unmappable", result.Status)
	}
	if result.Content != "" {
		t.Errorf("unmappable result must carry no content, got %q", result.Content)
	}
}

func TestLookupApplicantCount(t *testing.T) {
	resolver := newTestResolver(`{"target": "", "field": "applicant_count"}`, fixtureRepo())

	identity := &entity.Identity{UserId: uuid.New(), Role: entity.RoleHR}
	result := resolver.Lookup(context.Background(), identity, "how many applicants do we have?")

	if result.Status != agent.StatusOK {
		t.Fatalf("Status = %s, want ok (err: %v)", result.Status, result.Err)
	}
	if !strings.Contains(result.Content, "1 applicant") {
		t.Errorf("unexpected content: %q", result.Content)
	}
}

func TestFormatFieldMissingValues(t *testing.T) {
	record := &entity.EmployeeRecord{Name: "Empty", Email: "empty@corp.example"}

	if _, ok := formatField(record, FieldJoinDate); ok {
		t.Error("missing join date should report not found")
	}
	if _, ok := formatField(record, FieldApplicantStatus); ok {
		t.Error("missing applicant status should report not found")
	}
	if _, ok := formatField(record, FieldSalary); ok {
		t.Error("zero compensation should report not found")
	}
}

func TestFormatDocumentStatus(t *testing.T) {
	record := &entity.EmployeeRecord{
		Name: "Evan Osei",
		UploadedDocuments: map[string]bool{
			"cv":           true,
			"cover_letter": true,
			"references":   false,
		},
		ResubmissionRequested: map[string]bool{
			"cover_letter": true,
		},
	}

	content, ok := formatField(record, FieldDocumentStatus)
	if !ok {
		t.Fatal("expected document status content")
	}
	if !strings.Contains(content, "cv: submitted") {
		t.Errorf("missing submitted doc: %q", content)
	}
	if !strings.Contains(content, "cover_letter: resubmission requested") {
		t.Errorf("resubmission flag should win over submitted: %q", content)
	}
	if !strings.Contains(content, "references: missing") {
		t.Errorf("missing doc not reported: %q", content)
	}
}
