package agent

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"hr-assistant-be/internal/entity"
	"hr-assistant-be/pkg/llm"
)

// Plan is the probabilistic output of the planning step. Every step still
// passes deterministic authorization downstream; the plan only proposes.
type Plan struct {
	Steps     []PlanStep `json:"steps"`
	Reasoning string     `json:"reasoning"`
}

type PlanStep struct {
	Capability string `json:"capability"`
	Query      string `json:"query"`
}

// FallbackPlan is used when planning fails entirely: the message is treated
// as a policy question and only the document index is consulted.
func FallbackPlan(message string) *Plan {
	return &Plan{
		Steps: []PlanStep{
			{Capability: string(CapabilityDocumentSearch), Query: message},
		},
		Reasoning: "fallback: document search only",
	}
}

// PlannerService decides which capabilities a message needs.
type PlannerService struct {
	llmProvider llm.LLMProvider
	composer    *planPromptComposer
}

func NewPlannerService(llmProvider llm.LLMProvider) *PlannerService {
	return &PlannerService{
		llmProvider: llmProvider,
		composer:    &planPromptComposer{},
	}
}

// Plan interprets the message against the conversation window and returns an
// ordered list of capability steps. One bounded retry on malformed output;
// after that the caller falls back to a document-search-only plan.
func (p *PlannerService) Plan(
	ctx context.Context,
	identity *entity.Identity,
	window []llm.Message,
	message string,
) (*Plan, error) {
	prompt := p.composer.Compose(identity, window, message)

	var lastErr error
	for attempt := 0; attempt < 2; attempt++ {
		if attempt > 0 {
			time.Sleep(200 * time.Millisecond)
		}

		response, err := p.llmProvider.Generate(ctx, prompt, llm.WithTemperature(0.1))
		if err != nil {
			lastErr = NewUpstreamError("planner llm", err)
			continue
		}

		plan, err := extractPlan(response)
		if err != nil {
			lastErr = err
			continue
		}

		return plan, nil
	}

	return nil, fmt.Errorf("%w: %v", ErrReasoning, lastErr)
}

// extractPlan parses the model output into a validated plan.
func extractPlan(response string) (*Plan, error) {
	jsonContent := extractJSON(response)

	var plan Plan
	if err := json.Unmarshal([]byte(jsonContent), &plan); err != nil {
		return nil, fmt.Errorf("json unmarshal failed: %w", err)
	}

	if len(plan.Steps) == 0 {
		return nil, fmt.Errorf("plan has no steps")
	}

	for _, step := range plan.Steps {
		switch CapabilityName(step.Capability) {
		case CapabilityRecordLookup, CapabilityDocumentSearch, CapabilityGuardrail:
		default:
			return nil, fmt.Errorf("unknown capability %q in plan", step.Capability)
		}
	}

	return &plan, nil
}

// extractJSON isolates the JSON object from a possibly chatty model response.
func extractJSON(response string) string {
	startIdx := strings.Index(response, "{")
	endIdx := strings.LastIndex(response, "}")

	if startIdx == -1 || endIdx == -1 || endIdx <= startIdx {
		return response
	}

	return response[startIdx : endIdx+1]
}

// planPromptComposer structures the planning prompt the model reasons over.
type planPromptComposer struct{}

func (c *planPromptComposer) Compose(identity *entity.Identity, window []llm.Message, message string) string {
	var prompt strings.Builder

	c.writeSystemRole(&prompt)
	c.writeCapabilityDefinitions(&prompt)
	c.writeRequesterContext(&prompt, identity)
	c.writeConversationWindow(&prompt, window)
	c.writeUserInput(&prompt, message)
	c.writeOutputStructure(&prompt)

	return prompt.String()
}

func (c *planPromptComposer) writeSystemRole(prompt *strings.Builder) {
	prompt.WriteString("<system_role>\n")
	prompt.WriteString("You are the planning stage of an HR assistant.\n")
	prompt.WriteString("Your job is to decide which internal capabilities are needed to answer the user, not to answer yourself.\n")
	prompt.WriteString("Authorization is enforced elsewhere; plan for what the user asked, never refuse here except via the guardrail capability.\n")
	prompt.WriteString("</system_role>\n\n")
}

func (c *planPromptComposer) writeCapabilityDefinitions(prompt *strings.Builder) {
	prompt.WriteString("<capability_definitions>\n")
	prompt.WriteString("Emit one step per distinct information need. A single message may need several steps.\n\n")

	prompt.WriteString("<capability name=\"record_lookup\">\n")
	prompt.WriteString("  Use for questions about a specific person's HR record: name, email, position,\n")
	prompt.WriteString("  department, salary, leave balance, sick days, join date, applicant status,\n")
	prompt.WriteString("  document submission status, or a full record summary.\n")
	prompt.WriteString("  query: restate the lookup in one sentence, keeping any person reference\n")
	prompt.WriteString("  (\"my salary\", \"leave balance of jane@corp.com\").\n")
	prompt.WriteString("</capability>\n\n")

	prompt.WriteString("<capability name=\"document_search\">\n")
	prompt.WriteString("  Use for questions about company policy, rules, benefits, procedures, or\n")
	prompt.WriteString("  anything answerable from policy documents rather than a person's record.\n")
	prompt.WriteString("  query: a standalone search phrase.\n")
	prompt.WriteString("</capability>\n\n")

	prompt.WriteString("<capability name=\"guardrail_refusal\">\n")
	prompt.WriteString("  Use when the user asks for bulk data dumps (\"list all employees\",\n")
	prompt.WriteString("  \"everyone's salaries\") or other mass extraction. Emit this step alone.\n")
	prompt.WriteString("  query: short label of what was refused.\n")
	prompt.WriteString("</capability>\n")
	prompt.WriteString("</capability_definitions>\n\n")

	prompt.WriteString("<examples>\n")
	prompt.WriteString("User: \"How many leave days do I have left, and what does the leave policy say about carry-over?\"\n")
	prompt.WriteString("Plan: [{record_lookup: \"my remaining leave days\"}, {document_search: \"annual leave carry-over policy\"}]\n\n")
	prompt.WriteString("User: \"Give me the salaries of the whole engineering department\"\n")
	prompt.WriteString("Plan: [{guardrail_refusal: \"bulk salary listing\"}]\n")
	prompt.WriteString("</examples>\n\n")
}

func (c *planPromptComposer) writeRequesterContext(prompt *strings.Builder, identity *entity.Identity) {
	prompt.WriteString("<requester>\n")
	prompt.WriteString(fmt.Sprintf("The requester is %s with role %s.\n", identity.Name, identity.Role))
	prompt.WriteString("</requester>\n\n")
}

func (c *planPromptComposer) writeConversationWindow(prompt *strings.Builder, window []llm.Message) {
	prompt.WriteString("<conversation>\n")
	if len(window) == 0 {
		prompt.WriteString("This is the beginning of the conversation.\n")
	}
	for _, msg := range window {
		speaker := "User"
		if msg.Role == "assistant" || msg.Role == "model" {
			speaker = "Assistant"
		}
		prompt.WriteString(fmt.Sprintf("%s said: \"%s\"\n", speaker, trimContent(msg.Content, 200)))
	}
	prompt.WriteString("</conversation>\n\n")
}

func (c *planPromptComposer) writeUserInput(prompt *strings.Builder, message string) {
	prompt.WriteString("<user_input>\n")
	prompt.WriteString(message)
	prompt.WriteString("\n</user_input>\n\n")
}

func (c *planPromptComposer) writeOutputStructure(prompt *strings.Builder) {
	prompt.WriteString("<output_format>\n")
	prompt.WriteString("Respond with ONLY valid JSON in this exact structure:\n\n")
	prompt.WriteString("{\n")
	prompt.WriteString("  \"steps\": [\n")
	prompt.WriteString("    {\"capability\": \"record_lookup|document_search|guardrail_refusal\", \"query\": \"...\"}\n")
	prompt.WriteString("  ],\n")
	prompt.WriteString("  \"reasoning\": \"one sentence on why these steps answer the message\"\n")
	prompt.WriteString("}\n\n")
	prompt.WriteString("IMPORTANT: Output ONLY the JSON. No preamble, no explanation outside the JSON.\n")
	prompt.WriteString("</output_format>\n")
}

// trimContent shortens long turns for the plan prompt, cutting on a rune
// boundary so multi-byte characters are never split.
func trimContent(content string, maxLength int) string {
	runes := []rune(content)
	if len(runes) <= maxLength {
		return content
	}
	return string(runes[:maxLength]) + "..."
}
