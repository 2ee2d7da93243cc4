package service

import (
	"context"
	"io"
	"log"
	"testing"

	"hr-assistant-be/internal/dto"
	"hr-assistant-be/internal/entity"
	"hr-assistant-be/pkg/agent"
	"hr-assistant-be/pkg/agent/access"
	"hr-assistant-be/pkg/events"
	"hr-assistant-be/pkg/llm"

	"github.com/google/uuid"
)

type stubPlanner struct {
	plan *agent.Plan
}

func (s *stubPlanner) Plan(ctx context.Context, identity *entity.Identity, window []llm.Message, message string) (*agent.Plan, error) {
	return s.plan, nil
}

type stubSynthesizer struct {
	reply string
}

func (s *stubSynthesizer) Synthesize(ctx context.Context, window []llm.Message, message string, results []agent.Result) (string, error) {
	return s.reply, nil
}

type stubRecords struct {
	result agent.Result
}

func (s *stubRecords) Lookup(ctx context.Context, identity *entity.Identity, query string) agent.Result {
	return s.result
}

type stubDocuments struct{}

func (stubDocuments) Search(ctx context.Context, query string) agent.Result {
	return agent.OkResult(agent.CapabilityDocumentSearch, "")
}

type memoryTurnStore struct {
	turns []*entity.Turn
}

func (m *memoryTurnStore) Read(ctx context.Context, userId uuid.UUID) ([]*entity.Turn, error) {
	return m.turns, nil
}

func (m *memoryTurnStore) Append(ctx context.Context, userId uuid.UUID, turns ...*entity.Turn) error {
	m.turns = append(m.turns, turns...)
	return nil
}

type captureAuditPublisher struct {
	published []events.Event
}

func (c *captureAuditPublisher) Publish(ctx context.Context, event events.Event) error {
	c.published = append(c.published, event)
	return nil
}

func (c *captureAuditPublisher) typesSeen() map[string]bool {
	seen := make(map[string]bool)
	for _, evt := range c.published {
		seen[evt.EventType()] = true
	}
	return seen
}

type noopLogger struct{}

func (noopLogger) Debug(module, message string, details map[string]interface{}) {}
func (noopLogger) Info(module, message string, details map[string]interface{})  {}
func (noopLogger) Warn(module, message string, details map[string]interface{})  {}
func (noopLogger) Error(module, message string, details map[string]interface{}) {}
func (noopLogger) Sync() error                                                  { return nil }

func newTestAssistantService(recordResult agent.Result, reply string, audit IAuditPublisher) IAssistantService {
	plan := &agent.Plan{Steps: []agent.PlanStep{
		{Capability: string(agent.CapabilityRecordLookup), Query: "salary lookup"},
	}}
	agentCore := agent.NewAgent(
		&stubPlanner{plan: plan},
		&stubSynthesizer{reply: reply},
		&stubRecords{result: recordResult},
		stubDocuments{},
		&memoryTurnStore{},
		agent.DefaultConfig(),
		log.New(io.Discard, "", 0),
	)
	return NewAssistantService(agentCore, access.NewVerifier(nil, 0), nil, audit, noopLogger{})
}

func TestSendMessageEmitsAccessDeniedAuditEvent(t *testing.T) {
	audit := &captureAuditPublisher{}
	svc := newTestAssistantService(
		agent.DeniedResult(agent.CapabilityRecordLookup, agent.NewAccessDeniedError("self only")),
		"I can't share that information.",
		audit,
	)

	identity := &entity.Identity{UserId: uuid.New(), Role: entity.RoleEmployee, Name: "Alice"}
	res, err := svc.SendMessage(context.Background(), identity, &dto.SendMessageRequest{Message: "what does bob earn?"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Reply != "I can't share that information." {
		t.Errorf("reply = %q", res.Reply)
	}

	seen := audit.typesSeen()
	if !seen[events.EventAccessDenied] {
		t.Error("denied lookup published no ACCESS_DENIED audit event")
	}
	if !seen[events.EventChatHandled] {
		t.Error("handled message published no CHAT_HANDLED audit event")
	}

	for _, evt := range audit.published {
		if evt.EventType() != events.EventAccessDenied {
			continue
		}
		caps, ok := evt.Payload()["capabilities"].([]agent.CapabilityName)
		if !ok || len(caps) != 1 || caps[0] != agent.CapabilityRecordLookup {
			t.Errorf("denial event capabilities = %v, want [record_lookup]", evt.Payload()["capabilities"])
		}
	}
}

func TestSendMessageSkipsDenialEventWhenAllowed(t *testing.T) {
	audit := &captureAuditPublisher{}
	svc := newTestAssistantService(
		agent.OkResult(agent.CapabilityRecordLookup, "base 82000, bonus 6000"),
		"Your total compensation is 88000.",
		audit,
	)

	identity := &entity.Identity{UserId: uuid.New(), Role: entity.RoleEmployee, Name: "Alice"}
	if _, err := svc.SendMessage(context.Background(), identity, &dto.SendMessageRequest{Message: "what is my salary?"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	seen := audit.typesSeen()
	if seen[events.EventAccessDenied] {
		t.Error("permitted lookup should not publish ACCESS_DENIED")
	}
	if !seen[events.EventChatHandled] {
		t.Error("handled message published no CHAT_HANDLED audit event")
	}
}
