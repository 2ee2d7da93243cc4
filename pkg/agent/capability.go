package agent

// CapabilityName identifies a tool the planner may dispatch to.
type CapabilityName string

const (
	CapabilityRecordLookup   CapabilityName = "record_lookup"
	CapabilityDocumentSearch CapabilityName = "document_search"
	CapabilityGuardrail      CapabilityName = "guardrail_refusal"
)

// ResultStatus classifies the outcome of a single capability call.
type ResultStatus string

const (
	StatusOK         ResultStatus = "ok"
	StatusDenied     ResultStatus = "denied"
	StatusUnmappable ResultStatus = "unmappable"
	StatusNotFound   ResultStatus = "not_found"
	StatusFailed     ResultStatus = "failed"
)

// Request is a single planned capability invocation. The identity is not
// carried here; it is bound by the capability itself at construction time.
type Request struct {
	Capability CapabilityName
	Query      string
}

// Citation points at a policy document passage that grounded a reply.
type Citation struct {
	DocumentId string `json:"document_id"`
	Title      string `json:"title"`
	ChunkIndex int    `json:"chunk_index"`
}

// Result is the outcome of one capability call. Denied and errored results
// still flow to the synthesizer so the reply can explain what happened
// without leaking the underlying data.
type Result struct {
	Capability CapabilityName
	Status     ResultStatus
	Content    string
	Citations  []Citation
	Err        error
}

func OkResult(capability CapabilityName, content string, citations ...Citation) Result {
	return Result{
		Capability: capability,
		Status:     StatusOK,
		Content:    content,
		Citations:  citations,
	}
}

func DeniedResult(capability CapabilityName, err error) Result {
	return Result{
		Capability: capability,
		Status:     StatusDenied,
		Err:        err,
	}
}

func FailedResult(capability CapabilityName, err error) Result {
	return Result{
		Capability: capability,
		Status:     StatusFailed,
		Err:        err,
	}
}
