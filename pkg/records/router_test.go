package records

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"hr-assistant-be/internal/entity"
	"hr-assistant-be/pkg/agent"
	"hr-assistant-be/pkg/llm"

	"github.com/google/uuid"
)

// mockLLM returns canned responses in order and records prompts.
type mockLLM struct {
	responses []string
	errs      []error
	calls     int
	prompts   []string
}

func (m *mockLLM) Generate(ctx context.Context, prompt string, options ...llm.Option) (string, error) {
	m.prompts = append(m.prompts, prompt)
	i := m.calls
	m.calls++
	var err error
	if i < len(m.errs) {
		err = m.errs[i]
	}
	if i < len(m.responses) {
		return m.responses[i], err
	}
	return "", err
}

func (m *mockLLM) Chat(ctx context.Context, history []llm.Message, options ...llm.Option) (string, error) {
	if len(history) == 0 {
		return "", fmt.Errorf("empty history")
	}
	return m.Generate(ctx, history[len(history)-1].Content)
}

func testIdentity(role entity.Role) *entity.Identity {
	return &entity.Identity{
		UserId: uuid.New(),
		Role:   role,
		Name:   "Test User",
	}
}

func TestRoute(t *testing.T) {
	tests := []struct {
		name       string
		response   string
		wantTarget string
		wantField  Field
		wantErr    error
	}{
		{
			name:       "self salary",
			response:   `{"target": "self", "field": "salary"}`,
			wantTarget: "self",
			wantField:  FieldSalary,
		},
		{
			name:       "cross-user by email",
			response:   `{"target": "jane@corp.example", "field": "leave_days"}`,
			wantTarget: "jane@corp.example",
			wantField:  FieldLeaveDays,
		},
		{
			name:       "chatty response around json",
			response:   "Sure, here is the mapping:\n{\"target\": \"self\", \"field\": \"join_date\"}\nHope that helps.",
			wantTarget: "self",
			wantField:  FieldJoinDate,
		},
		{
			name:       "empty target defaults to self",
			response:   `{"target": "", "field": "email"}`,
			wantTarget: "self",
			wantField:  FieldEmail,
		},
		{
			name:     "explicit unmappable",
			response: `{"target": "self", "field": "unmappable"}`,
			wantErr:  agent.ErrUnmappable,
		},
		{
			name:     "invented field is unmappable",
			response: `{"target": "self", "field": "shoe_size"}`,
			wantErr:  agent.ErrUnmappable,
		},
		{
			name:     "malformed json is unmappable",
			response: "I think the user wants their salary",
			wantErr:  agent.ErrUnmappable,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router := NewRouter(&mockLLM{responses: []string{tt.response}})

			action, err := router.Route(context.Background(), testIdentity(entity.RoleEmployee), "irrelevant")

			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("err = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if action.Target != tt.wantTarget {
				t.Errorf("Target = %q, want %q", action.Target, tt.wantTarget)
			}
			if action.Field != tt.wantField {
				t.Errorf("Field = %q, want %q", action.Field, tt.wantField)
			}
		})
	}
}

func TestRouteUpstreamFailure(t *testing.T) {
	router := NewRouter(&mockLLM{errs: []error{errors.New("connection refused")}})

	_, err := router.Route(context.Background(), testIdentity(entity.RoleHR), "salary of bob")
	if !agent.IsUpstream(err) {
		t.Fatalf("want upstream error, got %v", err)
	}
}

func TestRoutedActionIsSelf(t *testing.T) {
	if !(&RoutedAction{Target: "self"}).IsSelf() {
		t.Error("explicit self should be self")
	}
	if !(&RoutedAction{Target: ""}).IsSelf() {
		t.Error("empty target should be self")
	}
	if (&RoutedAction{Target: "jane@corp.example"}).IsSelf() {
		t.Error("identifier target must not be self")
	}
}
