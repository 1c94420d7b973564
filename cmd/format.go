package main

import (
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/sells-group/namecast/internal/model"
	"github.com/sells-group/namecast/internal/similarity"
	"github.com/sells-group/namecast/internal/store"
)

// writeJSON writes v as indented JSON.
func writeJSON(out io.Writer, v any) error {
	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// formatComparison writes one row per name followed by the winner.
func formatComparison(out io.Writer, cmp *model.Comparison) {
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	_, _ = fmt.Fprintln(w, "NAME\tOVERALL\tDOMAIN\tSOCIAL\tTRADEMARK\tPRONUNCIATION\tINTERNATIONAL\tSIMILAR")
	_, _ = fmt.Fprintln(w, "----\t-------\t------\t------\t---------\t-------------\t-------------\t-------")

	for _, r := range cmp.Results {
		_, _ = fmt.Fprintf(w, "%s\t%.1f\t%.1f\t%.1f\t%.1f\t%.1f\t%.1f\t%.1f\n",
			r.Name,
			r.OverallScore,
			r.DomainScore,
			r.SocialScore,
			r.TrademarkScore,
			r.PronunciationScore,
			r.InternationalScore,
			r.SimilarCompaniesScore,
		)
	}
	_ = w.Flush()

	_, _ = fmt.Fprintf(out, "\nWinner: %s (%.1f/100)\n", cmp.Winner, cmp.WinnerScore)
}

// formatSimilar writes the matches and the confusion risk.
func formatSimilar(out io.Writer, name string, res *model.SimilarCompaniesResult) {
	_, _ = fmt.Fprintf(out, "Similar companies for %s (confusion risk: %s)\n\n", name, res.ConfusionRisk)
	if len(res.Matches) == 0 {
		_, _ = fmt.Fprintln(out, "No similar companies found.")
		return
	}

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	_, _ = fmt.Fprintln(w, "NAME\tSCORE\tCATEGORY\tREASON")
	_, _ = fmt.Fprintln(w, "----\t-----\t--------\t------")
	for _, m := range res.Matches {
		_, _ = fmt.Fprintf(w, "%s\t%.2f\t%s\t%s\n", m.Name, m.Score, m.Category, m.Reason)
	}
	_ = w.Flush()
}

// formatCatalog writes every catalog entry in order.
func formatCatalog(out io.Writer, c *similarity.Catalog) {
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	_, _ = fmt.Fprintln(w, "NAME\tCATEGORY")
	_, _ = fmt.Fprintln(w, "----\t--------")
	for _, e := range c.Entities() {
		_, _ = fmt.Fprintf(w, "%s\t%s\n", e.Name, e.Category)
	}
	_ = w.Flush()
	_, _ = fmt.Fprintf(out, "\n%d known companies\n", c.Len())
}

// formatHistory writes a tabular list of saved evaluations.
func formatHistory(out io.Writer, recs []store.Record) {
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	_, _ = fmt.Fprintln(w, "ID\tNAME\tSCORE\tEVALUATED\tSAVED")
	_, _ = fmt.Fprintln(w, "--\t----\t-----\t---------\t-----")

	for _, r := range recs {
		name := r.Result.Name
		if len(name) > 30 {
			name = name[:27] + "..."
		}
		_, _ = fmt.Fprintf(w, "%s\t%s\t%.1f\t%s\t%s\n",
			truncateID(r.ID),
			name,
			r.Result.OverallScore,
			r.Result.EvaluatedAt.Format("2006-01-02 15:04"),
			r.CreatedAt.Format("2006-01-02 15:04"),
		)
	}
	_ = w.Flush()
}

// formatWorkflow writes one row per candidate followed by the recommendation.
func formatWorkflow(out io.Writer, res *model.WorkflowResult) {
	_, _ = fmt.Fprintf(out, "Project: %s\n\n", res.ProjectDescription)

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	_, _ = fmt.Fprintln(w, "NAME\tSOURCE\t.COM\t.AI\t.IO\tSCORE\tSTATUS")
	_, _ = fmt.Fprintln(w, "----\t------\t----\t---\t---\t-----\t------")
	for _, c := range res.Candidates {
		score, status := "-", "not evaluated"
		switch {
		case c.Evaluation != nil:
			score, status = fmt.Sprintf("%.1f", c.Evaluation.OverallScore), "evaluated"
		case c.RejectionReason != "":
			status = c.RejectionReason
		}
		_, _ = fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\t%s\n",
			c.Name,
			c.Source,
			availability(c.DomainsAvailable, ".com"),
			availability(c.DomainsAvailable, ".ai"),
			availability(c.DomainsAvailable, ".io"),
			score,
			status,
		)
	}
	_ = w.Flush()

	_, _ = fmt.Fprintf(out, "\n%d candidates, %d viable, %d evaluated\n",
		len(res.Candidates), res.ViableCount, res.EvaluatedCount)
	if res.Recommended == nil {
		_, _ = fmt.Fprintln(out, "No recommendation.")
		return
	}
	_, _ = fmt.Fprintf(out, "Recommended: %s (%.1f/100, %s)\n",
		res.Recommended.Name, res.Recommended.Score, res.Recommended.Source)
}

func availability(domains map[string]bool, tld string) string {
	available, ok := domains[tld]
	switch {
	case !ok:
		return "-"
	case available:
		return "yes"
	default:
		return "no"
	}
}

// truncateID returns the first 8 characters of a UUID for compact display.
func truncateID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
