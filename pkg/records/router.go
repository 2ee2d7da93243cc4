package records

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"hr-assistant-be/internal/entity"
	"hr-assistant-be/pkg/agent"
	"hr-assistant-be/pkg/llm"
)

// TargetSelf marks a lookup about the requester's own record.
const TargetSelf = "self"

// RoutedAction is the structured form of a record question: who it is about
// and which attribute it wants.
type RoutedAction struct {
	Target string `json:"target"`
	Field  Field  `json:"field"`
}

// IsSelf reports whether the action targets the requester's own record.
func (a *RoutedAction) IsSelf() bool {
	return a.Target == TargetSelf || a.Target == ""
}

// Router maps free-text record questions onto the closed field set with an
// internal LLM call. Anything outside the closed set is ErrUnmappable; the
// router never guesses a field.
type Router struct {
	llmProvider llm.LLMProvider
}

func NewRouter(llmProvider llm.LLMProvider) *Router {
	return &Router{
		llmProvider: llmProvider,
	}
}

func (r *Router) Route(ctx context.Context, identity *entity.Identity, query string) (*RoutedAction, error) {
	prompt := buildRouterPrompt(identity, query)

	response, err := r.llmProvider.Generate(ctx, prompt, llm.WithTemperature(0))
	if err != nil {
		return nil, agent.NewUpstreamError("record router llm", err)
	}

	return parseRoutedAction(response)
}

func parseRoutedAction(response string) (*RoutedAction, error) {
	jsonContent := extractJSON(response)

	var action RoutedAction
	if err := json.Unmarshal([]byte(jsonContent), &action); err != nil {
		return nil, fmt.Errorf("%w: malformed router output", agent.ErrUnmappable)
	}

	if action.Field == "unmappable" || !IsKnownField(action.Field) {
		return nil, agent.ErrUnmappable
	}

	action.Target = strings.TrimSpace(action.Target)
	if action.Target == "" {
		action.Target = TargetSelf
	}

	return &action, nil
}

func buildRouterPrompt(identity *entity.Identity, query string) string {
	var prompt strings.Builder

	prompt.WriteString("<system_role>\n")
	prompt.WriteString("You map an HR record question onto a fixed attribute set. You never answer the question.\n")
	prompt.WriteString("</system_role>\n\n")

	prompt.WriteString("<fields>\n")
	prompt.WriteString("name, email, position, department, salary, leave_days, sick_days, join_date,\n")
	prompt.WriteString("applicant_status, document_status, all, applicant_count\n\n")
	prompt.WriteString("Notes:\n")
	prompt.WriteString("- salary covers base pay, bonus, and total compensation questions.\n")
	prompt.WriteString("- all means a full summary of one person's record.\n")
	prompt.WriteString("- applicant_count means \"how many applicants are there\", an aggregate with no person target.\n")
	prompt.WriteString("- If the question fits none of these fields, the field is \"unmappable\".\n")
	prompt.WriteString("</fields>\n\n")

	prompt.WriteString("<target_rules>\n")
	prompt.WriteString(fmt.Sprintf("The requester is %s. ", identity.Name))
	prompt.WriteString("If the question is about the requester themselves (\"my\", \"I\", \"me\"), target is \"self\".\n")
	prompt.WriteString("Otherwise target is the person reference exactly as written: a user id, an email\n")
	prompt.WriteString("address, or a display name. Do not normalize or invent identifiers.\n")
	prompt.WriteString("</target_rules>\n\n")

	prompt.WriteString("<question>\n")
	prompt.WriteString(query)
	prompt.WriteString("\n</question>\n\n")

	prompt.WriteString("<output_format>\n")
	prompt.WriteString("Respond with ONLY valid JSON:\n")
	prompt.WriteString("{\"target\": \"self|<identifier>\", \"field\": \"<field or unmappable>\"}\n")
	prompt.WriteString("</output_format>\n")

	return prompt.String()
}

func extractJSON(response string) string {
	startIdx := strings.Index(response, "{")
	endIdx := strings.LastIndex(response, "}")

	if startIdx == -1 || endIdx == -1 || endIdx <= startIdx {
		return response
	}

	return response[startIdx : endIdx+1]
}
