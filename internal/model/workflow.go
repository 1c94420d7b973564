package model

// CandidateSource records where a workflow candidate came from.
type CandidateSource string

const (
	SourceUser      CandidateSource = "user"
	SourceGenerated CandidateSource = "generated"
)

// NameCandidate is one name considered by a naming workflow.
type NameCandidate struct {
	Name   string          `json:"name"`
	Source CandidateSource `json:"source"`
	// DomainsAvailable holds the quick domain screen, TLD to availability.
	DomainsAvailable   map[string]bool   `json:"domains_available"`
	PassedDomainFilter bool              `json:"passed_domain_filter"`
	RejectionReason    string            `json:"rejection_reason,omitempty"`
	Evaluation         *EvaluationResult `json:"evaluation"`
}

// Recommendation is the best evaluated workflow candidate.
type Recommendation struct {
	Name       string            `json:"name"`
	Source     CandidateSource   `json:"source"`
	Score      float64           `json:"score"`
	Evaluation *EvaluationResult `json:"evaluation"`
}

// WorkflowResult is the outcome of a naming workflow. Candidates keep the
// order they were gathered in: user ideas first, then generated names.
type WorkflowResult struct {
	ProjectDescription string          `json:"project_description"`
	Candidates         []NameCandidate `json:"all_candidates"`
	ViableCount        int             `json:"viable_count"`
	EvaluatedCount     int             `json:"evaluated_count"`
	Recommended        *Recommendation `json:"recommended"`
}
