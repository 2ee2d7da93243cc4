package records

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"hr-assistant-be/internal/entity"
	"hr-assistant-be/internal/repository/specification"
	"hr-assistant-be/internal/repository/unitofwork"
	"hr-assistant-be/pkg/agent"

	"github.com/google/uuid"
)

// Resolver is the record lookup capability. Every lookup runs the same
// sequence: route, authorize, and only then read the store. A denied lookup
// performs no read at all.
type Resolver struct {
	router     *Router
	uowFactory unitofwork.RepositoryFactory
}

func NewResolver(router *Router, uowFactory unitofwork.RepositoryFactory) *Resolver {
	return &Resolver{
		router:     router,
		uowFactory: uowFactory,
	}
}

// Lookup implements agent.RecordCapability.
func (r *Resolver) Lookup(ctx context.Context, identity *entity.Identity, query string) agent.Result {
	action, err := r.router.Route(ctx, identity, query)
	if err != nil {
		if agent.IsUpstream(err) {
			return agent.FailedResult(agent.CapabilityRecordLookup, err)
		}
		return agent.Result{
			Capability: agent.CapabilityRecordLookup,
			Status:     agent.StatusUnmappable,
			Err:        err,
		}
	}

	// Cross-user requests are only constructible for roles with cross-user
	// rights; everyone else is denied before any resolution happens.
	if !action.IsSelf() && !identity.Role.CanReadOthers() {
		return agent.DeniedResult(agent.CapabilityRecordLookup,
			agent.NewAccessDeniedError(fmt.Sprintf("role %s may only access its own record", identity.Role)))
	}

	if !Authorize(identity.Role, action.IsSelf(), action.Field) {
		return agent.DeniedResult(agent.CapabilityRecordLookup,
			agent.NewAccessDeniedError(fmt.Sprintf("role %s may not read %s", identity.Role, action.Field)))
	}

	if action.Field == FieldApplicantCount {
		return r.applicantCount(ctx)
	}

	record, err := r.resolveTarget(ctx, identity, action)
	if err != nil {
		return agent.FailedResult(agent.CapabilityRecordLookup, agent.NewUpstreamError("record read", err))
	}
	if record == nil {
		return agent.Result{
			Capability: agent.CapabilityRecordLookup,
			Status:     agent.StatusNotFound,
			Err:        agent.ErrNotFound,
		}
	}

	content, ok := formatField(record, action.Field)
	if !ok {
		return agent.Result{
			Capability: agent.CapabilityRecordLookup,
			Status:     agent.StatusNotFound,
			Err:        agent.ErrNotFound,
		}
	}

	return agent.OkResult(agent.CapabilityRecordLookup, content)
}

// resolveTarget finds the record the action is about. Self lookups bind the
// requester's own user id; cross-user lookups (HR only, checked upstream)
// resolve the reference as user id, then email, then display name.
func (r *Resolver) resolveTarget(ctx context.Context, identity *entity.Identity, action *RoutedAction) (*entity.EmployeeRecord, error) {
	uow := r.uowFactory.NewUnitOfWork(ctx)
	repo := uow.RecordRepository()

	if action.IsSelf() {
		return repo.FindOne(ctx, specification.ByUserID{UserID: identity.UserId})
	}

	if id, err := uuid.Parse(action.Target); err == nil {
		return repo.FindOne(ctx, specification.ByUserID{UserID: id})
	}

	if strings.Contains(action.Target, "@") {
		return repo.FindOne(ctx, specification.ByEmail{Email: action.Target})
	}

	return repo.FindOne(ctx, specification.ByName{Name: action.Target})
}

func (r *Resolver) applicantCount(ctx context.Context) agent.Result {
	uow := r.uowFactory.NewUnitOfWork(ctx)

	count, err := uow.RecordRepository().Count(ctx, specification.ByRole{Role: string(entity.RoleApplicant)})
	if err != nil {
		return agent.FailedResult(agent.CapabilityRecordLookup, agent.NewUpstreamError("applicant count", err))
	}

	return agent.OkResult(agent.CapabilityRecordLookup,
		fmt.Sprintf("There are currently %d applicants on file.", count))
}

// formatField renders one field as synthesizer-ready text. The second return
// is false when the record has no value for the requested field.
func formatField(record *entity.EmployeeRecord, field Field) (string, bool) {
	switch field {
	case FieldName:
		return fmt.Sprintf("%s's name on file is %s.", record.Email, record.Name), record.Name != ""
	case FieldEmail:
		return fmt.Sprintf("%s's email is %s.", record.Name, record.Email), record.Email != ""
	case FieldPosition:
		return fmt.Sprintf("%s works as %s.", record.Name, record.Position), record.Position != ""
	case FieldDepartment:
		return fmt.Sprintf("%s is in the %s department.", record.Name, record.Department), record.Department != ""
	case FieldSalary:
		if record.BaseSalary == 0 && record.Bonus == 0 {
			return "", false
		}
		return fmt.Sprintf("%s's compensation: base salary %.2f, bonus %.2f, total %.2f.",
			record.Name, record.BaseSalary, record.Bonus, record.TotalCompensation()), true
	case FieldLeaveDays:
		return fmt.Sprintf("%s has %d annual leave days remaining.", record.Name, record.AnnualLeaveDays), true
	case FieldSickDays:
		return fmt.Sprintf("%s has %d sick leave days remaining.", record.Name, record.SickLeaveDays), true
	case FieldJoinDate:
		if record.JoinDate == nil {
			return "", false
		}
		return fmt.Sprintf("%s joined on %s.", record.Name, record.JoinDate.Format("2 January 2006")), true
	case FieldApplicantStatus:
		if record.ApplicantStatus == "" {
			return "", false
		}
		return fmt.Sprintf("%s's application status is: %s.", record.Name, record.ApplicantStatus), true
	case FieldDocumentStatus:
		return formatDocumentStatus(record)
	case FieldAll:
		return formatSummary(record), true
	default:
		return "", false
	}
}

func formatDocumentStatus(record *entity.EmployeeRecord) (string, bool) {
	if len(record.UploadedDocuments) == 0 && len(record.ResubmissionRequested) == 0 {
		return "", false
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Document status for %s:\n", record.Name))
	for _, doc := range sortedKeys(record.UploadedDocuments) {
		state := "missing"
		if record.UploadedDocuments[doc] {
			state = "submitted"
		}
		if record.ResubmissionRequested[doc] {
			state = "resubmission requested"
		}
		sb.WriteString(fmt.Sprintf("- %s: %s\n", doc, state))
	}
	return sb.String(), true
}

func formatSummary(record *entity.EmployeeRecord) string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Record summary for %s (%s):\n", record.Name, record.Email))
	sb.WriteString(fmt.Sprintf("- role: %s\n", record.Role))
	if record.Position != "" {
		sb.WriteString(fmt.Sprintf("- position: %s, department: %s\n", record.Position, record.Department))
	}
	if record.BaseSalary > 0 || record.Bonus > 0 {
		sb.WriteString(fmt.Sprintf("- compensation: base %.2f, bonus %.2f, total %.2f\n",
			record.BaseSalary, record.Bonus, record.TotalCompensation()))
	}
	sb.WriteString(fmt.Sprintf("- leave: %d annual days, %d sick days remaining\n",
		record.AnnualLeaveDays, record.SickLeaveDays))
	if record.JoinDate != nil {
		sb.WriteString(fmt.Sprintf("- joined: %s\n", record.JoinDate.Format("2 January 2006")))
	}
	if record.ApplicantStatus != "" {
		sb.WriteString(fmt.Sprintf("- application status: %s\n", record.ApplicantStatus))
	}
	return sb.String()
}

func sortedKeys(m map[string]bool) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
