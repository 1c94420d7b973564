package model

import (
	"fmt"
	"sort"
	"strings"
)

// Markdown renders the evaluation as a plain-text markdown report. Section
// order is fixed: Overall Score, Domain Availability, Social Handles,
// Trademark Risk, Pronunciation Score, Similar Companies, then International
// and Perception.
func (r *EvaluationResult) Markdown() string {
	var b strings.Builder

	fmt.Fprintf(&b, "## Brand Evaluation: %s\n\n", r.Name)
	fmt.Fprintf(&b, "### Overall Score: %.0f/100\n\n", r.OverallScore)

	b.WriteString("### Domain Availability\n")
	b.WriteString("| TLD | Status |\n")
	b.WriteString("|-----|--------|\n")
	for _, tld := range domainOrder(r.Domains) {
		fmt.Fprintf(&b, "| %s | %s |\n", tld, domainLabel(r.Domains[tld]))
	}

	b.WriteString("\n### Social Handles\n")
	b.WriteString("| Platform | Status |\n")
	b.WriteString("|----------|--------|\n")
	for _, platform := range sortedKeys(r.Social) {
		fmt.Fprintf(&b, "| %s | %s |\n", platform, socialLabel(r.Social[platform]))
	}

	if r.Trademark != nil {
		fmt.Fprintf(&b, "\n### Trademark Risk: %s\n", strings.ToUpper(string(r.Trademark.RiskLevel)))
	}

	if r.Pronunciation != nil {
		fmt.Fprintf(&b, "\n### Pronunciation Score: %.1f/10\n", r.Pronunciation.Score)
		fmt.Fprintf(&b, "- Syllables: %d\n", r.Pronunciation.Syllables)
		fmt.Fprintf(&b, "- Spelling: %s\n", r.Pronunciation.SpellingDifficulty)
	}

	if r.SimilarCompanies != nil {
		fmt.Fprintf(&b, "\n### Similar Companies: %s RISK\n\n", strings.ToUpper(string(r.SimilarCompanies.ConfusionRisk)))
		if len(r.SimilarCompanies.Matches) == 0 {
			b.WriteString("- None found\n")
		}
		for _, m := range r.SimilarCompanies.Matches {
			fmt.Fprintf(&b, "- **%s** (%s) - %s\n", m.Name, m.Category, m.Reason)
		}
	}

	var issues []string
	for _, lang := range sortedKeys(r.International) {
		if res := r.International[lang]; res.HasIssue {
			issues = append(issues, fmt.Sprintf("- %s: %s", lang, res.Meaning))
		}
	}
	b.WriteString("\n### International\n")
	if len(issues) == 0 {
		b.WriteString("- No issues found\n")
	} else {
		b.WriteString(strings.Join(issues, "\n"))
		b.WriteString("\n")
	}

	if p := r.Perception; p != nil {
		b.WriteString("\n### Perception\n")
		fmt.Fprintf(&b, "- Evokes: %s\n", p.Evokes)
		fmt.Fprintf(&b, "- Industries: %s\n", strings.Join(p.IndustryAssociation, ", "))
		fmt.Fprintf(&b, "- Memorability: %s\n", p.Memorability)
		if p.MissionAlignment != nil {
			fmt.Fprintf(&b, "- Mission Alignment: %.1f/10\n", *p.MissionAlignment)
		}
	}

	return b.String()
}

func domainLabel(s DomainStatus) string {
	switch s {
	case DomainAvailable:
		return "Available"
	case DomainTaken:
		return "Taken"
	default:
		return "Unknown"
	}
}

func socialLabel(s SocialHandleResult) string {
	switch {
	case s.ExactAvailable:
		return "Available"
	case s.BestAlternative != "":
		return "Taken (try @" + s.BestAlternative + ")"
	default:
		return "Taken"
	}
}

// domainOrder lists .com first, then the remaining TLDs alphabetically.
func domainOrder(m map[string]DomainStatus) []string {
	keys := sortedKeys(m)
	for i, k := range keys {
		if k == ".com" {
			copy(keys[1:i+1], keys[:i])
			keys[0] = ".com"
			break
		}
	}
	return keys
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
