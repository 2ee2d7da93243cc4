package agent

import (
	"context"
	"fmt"
	"strings"
	"time"

	"hr-assistant-be/pkg/llm"
)

// ApologyReply is returned when synthesis fails after its retry.
const ApologyReply = "Sorry, something went wrong while preparing your answer. Please try again in a moment."

// SynthesizerService turns capability results into one grounded reply.
type SynthesizerService struct {
	llmProvider llm.LLMProvider
}

func NewSynthesizerService(llmProvider llm.LLMProvider) *SynthesizerService {
	return &SynthesizerService{
		llmProvider: llmProvider,
	}
}

// Synthesize builds the grounded prompt from the window plus every capability
// result, including denied and errored ones, so the reply can acknowledge
// what could not be answered without inventing data. One retry, then an
// apology reply.
func (s *SynthesizerService) Synthesize(
	ctx context.Context,
	window []llm.Message,
	message string,
	results []Result,
) (string, error) {
	prompt := buildGroundedPrompt(message, results)
	fullHistory := append(append([]llm.Message{}, window...), llm.Message{Role: "user", Content: prompt})

	var lastErr error
	for attempt := 0; attempt < 2; attempt++ {
		if attempt > 0 {
			time.Sleep(200 * time.Millisecond)
		}

		response, err := s.llmProvider.Chat(ctx, fullHistory)
		if err != nil {
			lastErr = NewUpstreamError("synthesizer llm", err)
			continue
		}

		return strings.TrimSpace(response), nil
	}

	return ApologyReply, lastErr
}

func buildGroundedPrompt(message string, results []Result) string {
	var prompt strings.Builder

	prompt.WriteString("<grounded_reference_material>\n")
	prompt.WriteString("CRITICAL: This is the ONLY data source. Do NOT use outside knowledge.\n")
	prompt.WriteString("Each block below is the outcome of one internal lookup.\n\n")

	for i, result := range results {
		prompt.WriteString(fmt.Sprintf("--- RESULT %d (%s, %s) ---\n", i+1, result.Capability, result.Status))
		switch result.Status {
		case StatusOK:
			if result.Content == "" {
				prompt.WriteString("No matching passages were found.\n")
			} else {
				prompt.WriteString(result.Content)
				prompt.WriteString("\n")
			}
		case StatusDenied:
			prompt.WriteString("This lookup was blocked by access policy. ")
			prompt.WriteString("Tell the user they are not permitted to see this information. ")
			prompt.WriteString("Do not reveal or guess the underlying value.\n")
		case StatusUnmappable, StatusNotFound:
			prompt.WriteString("The assistant does not have this information. Say so plainly.\n")
		case StatusFailed:
			prompt.WriteString("This lookup failed due to a system problem. Apologize for the gap.\n")
		}
		prompt.WriteString(fmt.Sprintf("--- END RESULT %d ---\n\n", i+1))
	}
	prompt.WriteString("</grounded_reference_material>\n\n")

	prompt.WriteString("<task_instructions>\n")
	prompt.WriteString("You are an HR assistant answering the user's message using ONLY the results above.\n")
	prompt.WriteString("EXECUTION RULES (MUST FOLLOW):\n")
	prompt.WriteString("1. Answer directly and concisely; never ask 'Do you want me to...'.\n")
	prompt.WriteString("2. If every result is empty, denied, or failed, say you cannot help with that and why, in one or two sentences.\n")
	prompt.WriteString("3. Never fabricate names, numbers, dates, or policy text that is not in the results.\n")
	prompt.WriteString("4. Match the language and tone of the user's message.\n")
	prompt.WriteString("</task_instructions>\n\n")

	prompt.WriteString("<user_message>\n")
	prompt.WriteString(message)
	prompt.WriteString("\n</user_message>\n")

	return prompt.String()
}
