package agent

import (
	"context"
	"log"
	"sync"
	"time"

	"hr-assistant-be/internal/entity"
	"hr-assistant-be/pkg/llm"
	"hr-assistant-be/pkg/memory"

	"github.com/google/uuid"
)

// GuardrailReply is the standard refusal for bulk-data requests. It is
// synthesized without touching any store.
const GuardrailReply = "bulk data request refused: the assistant answers questions about individual records the requester is authorized to see, never full listings"

// Planner proposes capability steps for a message.
type Planner interface {
	Plan(ctx context.Context, identity *entity.Identity, window []llm.Message, message string) (*Plan, error)
}

// Synthesizer produces the final reply text from capability results.
type Synthesizer interface {
	Synthesize(ctx context.Context, window []llm.Message, message string, results []Result) (string, error)
}

// RecordCapability answers questions about a person's HR record. The
// identity is bound at call time; authorization happens inside, before any
// store read.
type RecordCapability interface {
	Lookup(ctx context.Context, identity *entity.Identity, query string) Result
}

// DocumentCapability searches the policy document index.
type DocumentCapability interface {
	Search(ctx context.Context, query string) Result
}

// ConversationStore is the append-only persisted conversation log.
type ConversationStore interface {
	Read(ctx context.Context, userId uuid.UUID) ([]*entity.Turn, error)
	Append(ctx context.Context, userId uuid.UUID, turns ...*entity.Turn) error
}

// Config bounds every external call the core makes, including the
// conversation store. No call may hold the per-user lock indefinitely.
type Config struct {
	PlanTimeout       time.Duration
	CapabilityTimeout time.Duration
	SynthesisTimeout  time.Duration
	MemoryTimeout     time.Duration
	WindowSize        int
}

func DefaultConfig() Config {
	return Config{
		PlanTimeout:       20 * time.Second,
		CapabilityTimeout: 20 * time.Second,
		SynthesisTimeout:  30 * time.Second,
		MemoryTimeout:     10 * time.Second,
		WindowSize:        10,
	}
}

// Reply is the outcome of one handled message. Denied lists the capabilities
// whose lookup was refused by access policy, so callers can audit denials
// without inspecting raw results.
type Reply struct {
	Text             string
	Citations        []Citation
	CapabilitiesUsed []CapabilityName
	Denied           []CapabilityName
}

// Agent is the decision core: plan, dispatch, synthesize, remember.
type Agent struct {
	planner     Planner
	synthesizer Synthesizer
	records     RecordCapability
	documents   DocumentCapability
	store       ConversationStore
	locks       *KeyedLock
	config      Config
	logger      *log.Logger
}

func NewAgent(
	planner Planner,
	synthesizer Synthesizer,
	records RecordCapability,
	documents DocumentCapability,
	store ConversationStore,
	config Config,
	logger *log.Logger,
) *Agent {
	return &Agent{
		planner:     planner,
		synthesizer: synthesizer,
		records:     records,
		documents:   documents,
		store:       store,
		locks:       NewKeyedLock(),
		config:      config,
		logger:      logger,
	}
}

// Handle runs one full turn for the given identity. Calls for the same user
// are serialized; calls for different users proceed concurrently. The only
// fatal error is a failed conversation append; every other failure degrades
// into reply text.
func (a *Agent) Handle(ctx context.Context, identity *entity.Identity, message string) (*Reply, error) {
	a.locks.Lock(identity.UserId)
	defer a.locks.Unlock(identity.UserId)

	readCtx, cancelRead := context.WithTimeout(ctx, a.config.MemoryTimeout)
	turns, err := a.store.Read(readCtx, identity.UserId)
	cancelRead()
	if err != nil {
		// A lost window degrades the answer, it does not block it
		a.logger.Printf("[WARN] history read failed for user %s: %v", identity.UserId, err)
		turns = nil
	}
	window := toMessages(memory.Window(turns, a.config.WindowSize))

	plan := a.plan(ctx, identity, window, message)
	results := a.dispatch(ctx, identity, plan)

	synthCtx, cancel := context.WithTimeout(ctx, a.config.SynthesisTimeout)
	reply, err := a.synthesizer.Synthesize(synthCtx, window, message, results)
	cancel()
	if err != nil {
		a.logger.Printf("[WARN] synthesis degraded for user %s: %v", identity.UserId, err)
	}
	if reply == "" {
		reply = ApologyReply
	}

	appendCtx, cancelAppend := context.WithTimeout(ctx, a.config.MemoryTimeout)
	defer cancelAppend()
	if err := a.store.Append(appendCtx, identity.UserId,
		&entity.Turn{UserId: identity.UserId, Role: entity.TurnRoleUser, Content: message},
		&entity.Turn{UserId: identity.UserId, Role: entity.TurnRoleAssistant, Content: reply},
	); err != nil {
		// Persistence is the one guarantee the core does not degrade
		return nil, NewUpstreamError("conversation append", err)
	}

	return &Reply{
		Text:             reply,
		Citations:        collectCitations(results),
		CapabilitiesUsed: collectCapabilities(results),
		Denied:           collectDenied(results),
	}, nil
}

func (a *Agent) plan(ctx context.Context, identity *entity.Identity, window []llm.Message, message string) *Plan {
	planCtx, cancel := context.WithTimeout(ctx, a.config.PlanTimeout)
	defer cancel()

	plan, err := a.planner.Plan(planCtx, identity, window, message)
	if err != nil {
		a.logger.Printf("[WARN] planning failed for user %s, falling back to document search: %v", identity.UserId, err)
		return FallbackPlan(message)
	}
	return plan
}

// dispatch runs all plan steps concurrently and preserves step order in the
// result slice.
func (a *Agent) dispatch(ctx context.Context, identity *entity.Identity, plan *Plan) []Result {
	results := make([]Result, len(plan.Steps))

	var wg sync.WaitGroup
	for i, step := range plan.Steps {
		wg.Add(1)
		go func(i int, step PlanStep) {
			defer wg.Done()
			results[i] = a.runStep(ctx, identity, step)
		}(i, step)
	}
	wg.Wait()

	return results
}

func (a *Agent) runStep(ctx context.Context, identity *entity.Identity, step PlanStep) Result {
	stepCtx, cancel := context.WithTimeout(ctx, a.config.CapabilityTimeout)
	defer cancel()

	result := a.callCapability(stepCtx, identity, step)

	// One retry with backoff, for upstream failures only
	if result.Status == StatusFailed && IsUpstream(result.Err) {
		a.logger.Printf("[WARN] capability %s failed, retrying: %v", step.Capability, result.Err)
		time.Sleep(300 * time.Millisecond)

		retryCtx, cancelRetry := context.WithTimeout(ctx, a.config.CapabilityTimeout)
		defer cancelRetry()
		result = a.callCapability(retryCtx, identity, step)
	}

	return result
}

func (a *Agent) callCapability(ctx context.Context, identity *entity.Identity, step PlanStep) Result {
	switch CapabilityName(step.Capability) {
	case CapabilityRecordLookup:
		return a.records.Lookup(ctx, identity, step.Query)
	case CapabilityDocumentSearch:
		return a.documents.Search(ctx, step.Query)
	case CapabilityGuardrail:
		return OkResult(CapabilityGuardrail, GuardrailReply)
	default:
		return FailedResult(CapabilityName(step.Capability), ErrUnmappable)
	}
}

func toMessages(turns []*entity.Turn) []llm.Message {
	messages := make([]llm.Message, 0, len(turns))
	for _, turn := range turns {
		role := "user"
		if turn.Role == entity.TurnRoleAssistant {
			role = "assistant"
		}
		messages = append(messages, llm.Message{Role: role, Content: turn.Content})
	}
	return messages
}

func collectCitations(results []Result) []Citation {
	var citations []Citation
	for _, result := range results {
		citations = append(citations, result.Citations...)
	}
	return citations
}

func collectCapabilities(results []Result) []CapabilityName {
	seen := make(map[CapabilityName]bool)
	var used []CapabilityName
	for _, result := range results {
		if !seen[result.Capability] {
			seen[result.Capability] = true
			used = append(used, result.Capability)
		}
	}
	return used
}

func collectDenied(results []Result) []CapabilityName {
	seen := make(map[CapabilityName]bool)
	var denied []CapabilityName
	for _, result := range results {
		if result.Status == StatusDenied && !seen[result.Capability] {
			seen[result.Capability] = true
			denied = append(denied, result.Capability)
		}
	}
	return denied
}
