package model

import (
	"strings"
	"time"
)

// RiskLevel is a categorical severity used for trademark and confusion risk.
type RiskLevel string

const (
	RiskLow    RiskLevel = "low"
	RiskMedium RiskLevel = "medium"
	RiskHigh   RiskLevel = "high"
)

// Severity orders risk levels: low < medium < high.
func (r RiskLevel) Severity() int {
	switch r {
	case RiskHigh:
		return 2
	case RiskMedium:
		return 1
	default:
		return 0
	}
}

// MaxRisk returns the higher-severity of two risk levels. Ties keep a.
func MaxRisk(a, b RiskLevel) RiskLevel {
	if b.Severity() > a.Severity() {
		return b
	}
	return a
}

// ParseRiskLevel maps a free-form label onto a RiskLevel. Unknown labels
// are treated as low.
func ParseRiskLevel(s string) RiskLevel {
	switch RiskLevel(strings.ToLower(strings.TrimSpace(s))) {
	case RiskHigh:
		return RiskHigh
	case RiskMedium:
		return RiskMedium
	default:
		return RiskLow
	}
}

// ReasonCode explains why two names were considered similar.
type ReasonCode string

const (
	ReasonIdentical         ReasonCode = "identical"
	ReasonSharesPrefix      ReasonCode = "shares_prefix"
	ReasonSoundsSimilar     ReasonCode = "sounds_similar"
	ReasonVeryCloseSpelling ReasonCode = "very_close_spelling"
	ReasonSimilarSpelling   ReasonCode = "similar_spelling"
	ReasonPartiallySimilar  ReasonCode = "partially_similar"
)

// SimilarityMatch is an existing company whose name may be confused with a candidate.
type SimilarityMatch struct {
	Name     string  `json:"name"`
	Score    float64 `json:"similarity_score"`
	Category string  `json:"industry"`
	// Reason is a ReasonCode for catalog matches; oracle matches may carry
	// free-text explanations.
	Reason string `json:"reason"`
}

// SimilarCompaniesResult is the ranked, size-bounded list of confusable companies.
type SimilarCompaniesResult struct {
	Matches       []SimilarityMatch `json:"matches"`
	ConfusionRisk RiskLevel         `json:"confusion_risk"`
}

// DomainStatus is the outcome of a single domain lookup.
type DomainStatus string

const (
	DomainAvailable DomainStatus = "available"
	DomainTaken     DomainStatus = "taken"
	// DomainUnknown marks a failed lookup; it is neither available nor taken.
	DomainUnknown DomainStatus = "unknown"
)

// SocialHandleResult is the availability of a handle on one platform.
type SocialHandleResult struct {
	Platform            string   `json:"platform"`
	ExactAvailable      bool     `json:"exact_available"`
	BestAlternative     string   `json:"best_alternative,omitempty"`
	AlternativesChecked []string `json:"alternatives_checked"`
}

// TrademarkMatch is a registered mark that conflicts with a candidate.
type TrademarkMatch struct {
	Mark         string `json:"mark"`
	Owner        string `json:"owner,omitempty"`
	Class        string `json:"class,omitempty"`
	Registration string `json:"registration,omitempty"`
}

// TrademarkResult is the outcome of a trademark search.
type TrademarkResult struct {
	RiskLevel RiskLevel        `json:"risk_level"`
	Matches   []TrademarkMatch `json:"matches"`
}

// Spelling difficulty labels.
const (
	SpellingEasy   = "easy"
	SpellingMedium = "medium"
	SpellingHard   = "hard"
)

// PronunciationResult captures how easy a name is to say and spell.
type PronunciationResult struct {
	Score              float64 `json:"score"`
	Syllables          int     `json:"syllables"`
	SpellingDifficulty string  `json:"spelling_difficulty"`
}

// InternationalResult flags an unfortunate meaning in one language.
type InternationalResult struct {
	HasIssue bool   `json:"has_issue"`
	Meaning  string `json:"meaning,omitempty"`
}

// PersonaResponse is one simulated persona's reaction to a name.
type PersonaResponse struct {
	Persona       string `json:"persona"`
	Age           int    `json:"age"`
	Occupation    string `json:"occupation"`
	Evokes        string `json:"evokes"`
	IndustryGuess string `json:"industry_guess"`
	WouldTrust    bool   `json:"would_trust"`
	Memorable     bool   `json:"memorable"`
	Explanation   string `json:"explanation"`
}

// Perception sources.
const (
	PerceptionSourcePlaceholder = "placeholder"
	PerceptionSourceOracle      = "oracle"
)

// PerceptionResult is the aggregated brand perception of a name.
type PerceptionResult struct {
	Evokes              string            `json:"evokes"`
	IndustryAssociation []string          `json:"industry_association"`
	Memorability        string            `json:"memorability"`
	MissionAlignment    *float64          `json:"mission_alignment,omitempty"`
	MissionExplanation  string            `json:"mission_explanation,omitempty"`
	ConsensusScore      float64           `json:"consensus_score"`
	Personas            []PersonaResponse `json:"persona_responses,omitempty"`
	Source              string            `json:"source"`
}

// EvaluationResult is the complete, immutable evaluation of one name.
// OverallScore is always the weighted combination of the six sub-scores.
type EvaluationResult struct {
	Name                  string  `json:"name"`
	OverallScore          float64 `json:"overall_score"`
	DomainScore           float64 `json:"domain_score"`
	SocialScore           float64 `json:"social_score"`
	TrademarkScore        float64 `json:"trademark_score"`
	PronunciationScore    float64 `json:"pronunciation_score"`
	InternationalScore    float64 `json:"international_score"`
	SimilarCompaniesScore float64 `json:"similar_companies_score"`

	Domains          map[string]DomainStatus        `json:"domains"`
	Social           map[string]SocialHandleResult  `json:"social"`
	Trademark        *TrademarkResult               `json:"trademark,omitempty"`
	Pronunciation    *PronunciationResult           `json:"pronunciation,omitempty"`
	International    map[string]InternationalResult `json:"international"`
	Perception       *PerceptionResult              `json:"perception,omitempty"`
	SimilarCompanies *SimilarCompaniesResult        `json:"similar_companies,omitempty"`

	EvaluatedAt time.Time `json:"evaluated_at"`
}

// Comparison is the outcome of evaluating several names side by side.
type Comparison struct {
	Results     []EvaluationResult `json:"results"`
	Winner      string             `json:"winner"`
	WinnerScore float64            `json:"winner_score"`
}
