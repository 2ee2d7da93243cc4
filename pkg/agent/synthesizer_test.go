package agent

import (
	"context"
	"errors"
	"strings"
	"testing"
)

func TestSynthesizeUsesResults(t *testing.T) {
	provider := &mockLLM{responses: []string{"You have 14 annual leave days left."}}
	synthesizer := NewSynthesizerService(provider)

	results := []Result{
		OkResult(CapabilityRecordLookup, "Alice has 14 annual leave days remaining."),
	}
	reply, err := synthesizer.Synthesize(context.Background(), nil, "how many leave days do I have?", results)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if reply != "You have 14 annual leave days left." {
		t.Errorf("reply = %q", reply)
	}

	prompt := provider.prompts[0]
	if !strings.Contains(prompt, "Alice has 14 annual leave days remaining.") {
		t.Error("grounded prompt missing capability content")
	}
	if !strings.Contains(prompt, "ONLY data source") {
		t.Error("grounded prompt missing grounding instruction")
	}
}

func TestSynthesizePromptNeverCarriesDeniedData(t *testing.T) {
	provider := &mockLLM{responses: []string{"I'm not allowed to share that."}}
	synthesizer := NewSynthesizerService(provider)

	results := []Result{
		DeniedResult(CapabilityRecordLookup, NewAccessDeniedError("role employee may only access its own record")),
	}
	if _, err := synthesizer.Synthesize(context.Background(), nil, "what does bob earn?", results); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	prompt := provider.prompts[0]
	if !strings.Contains(prompt, "blocked by access policy") {
		t.Error("prompt should explain the denial")
	}
	if !strings.Contains(prompt, "Do not reveal or guess") {
		t.Error("prompt should forbid guessing the protected value")
	}
}

func TestSynthesizeEmptyResultsForbidFabrication(t *testing.T) {
	provider := &mockLLM{responses: []string{"I don't have any policy documents about that."}}
	synthesizer := NewSynthesizerService(provider)

	results := []Result{OkResult(CapabilityDocumentSearch, "")}
	if _, err := synthesizer.Synthesize(context.Background(), nil, "parental leave policy?", results); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	prompt := provider.prompts[0]
	if !strings.Contains(prompt, "No matching passages were found.") {
		t.Error("empty search result should be stated explicitly")
	}
	if !strings.Contains(prompt, "Never fabricate") {
		t.Error("prompt must forbid fabrication")
	}
}

func TestSynthesizeRetriesThenApologizes(t *testing.T) {
	boom := errors.New("model offline")
	provider := &mockLLM{errs: []error{boom, boom}}
	synthesizer := NewSynthesizerService(provider)

	reply, err := synthesizer.Synthesize(context.Background(), nil, "hello", nil)
	if err == nil {
		t.Fatal("expected an error after exhausted retries")
	}
	if reply != ApologyReply {
		t.Errorf("reply = %q, want apology", reply)
	}
	if provider.calls != 2 {
		t.Errorf("llm calls = %d, want 2", provider.calls)
	}
}

func TestSynthesizeRecoversOnRetry(t *testing.T) {
	provider := &mockLLM{
		responses: []string{"", "All good now."},
		errs:      []error{errors.New("timeout"), nil},
	}
	synthesizer := NewSynthesizerService(provider)

	reply, err := synthesizer.Synthesize(context.Background(), nil, "hello", nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if reply != "All good now." {
		t.Errorf("reply = %q", reply)
	}
}
