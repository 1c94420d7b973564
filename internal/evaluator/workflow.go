package evaluator

import (
	"context"
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/sells-group/namecast/internal/metrics"
	"github.com/sells-group/namecast/internal/model"
)

// MinDescriptionLength is the shortest project description a workflow accepts.
const MinDescriptionLength = 10

// ErrDescriptionTooShort is returned for project descriptions shorter than
// MinDescriptionLength.
var ErrDescriptionTooShort = eris.New("evaluator: project description must be at least 10 characters")

// FilterTLDs are screened before full evaluation; a candidate needs one of
// them available to stay in the running.
var FilterTLDs = []string{".com", ".ai", ".io"}

const noDomainReason = "no .com, .ai or .io domain available"

// NameGenerator proposes candidate names for a project.
type NameGenerator interface {
	Generate(ctx context.Context, description string, count int) ([]string, error)
}

// WorkflowRequest drives a naming workflow.
type WorkflowRequest struct {
	Description string
	// Ideas are the caller's own names. They are kept ahead of generated names.
	Ideas []string
	// GenerateCount and MaxToEvaluate fall back to the evaluator options
	// when zero.
	GenerateCount int
	MaxToEvaluate int
}

// Workflow gathers the caller's ideas and generated names, screens them on
// FilterTLDs, fully evaluates the best-placed survivors against the
// description and recommends the highest scorer. User ideas and names with
// .com available are evaluated first. Generator failures leave only the
// caller's ideas.
func (e *Evaluator) Workflow(ctx context.Context, req WorkflowRequest) (*model.WorkflowResult, error) {
	desc := strings.TrimSpace(req.Description)
	if utf8.RuneCountInString(desc) < MinDescriptionLength {
		return nil, ErrDescriptionTooShort
	}
	count := req.GenerateCount
	if count <= 0 {
		count = e.opts.GenerateCount
	}
	limit := req.MaxToEvaluate
	if limit <= 0 {
		limit = e.opts.MaxToEvaluate
	}
	log := zap.L().With(zap.Int("ideas", len(req.Ideas)))

	candidates := gatherCandidates(req.Ideas, e.generate(ctx, desc, count))

	viable := e.screen(ctx, candidates)
	sort.SliceStable(viable, func(i, j int) bool {
		a, b := &candidates[viable[i]], &candidates[viable[j]]
		if (a.Source == model.SourceUser) != (b.Source == model.SourceUser) {
			return a.Source == model.SourceUser
		}
		return a.DomainsAvailable[".com"] && !b.DomainsAvailable[".com"]
	})

	picked := viable[:min(limit, len(viable))]
	g := new(errgroup.Group)
	g.SetLimit(e.opts.MaxConcurrent)
	for _, idx := range picked {
		g.Go(func() error {
			c := &candidates[idx]
			res, err := e.Evaluate(ctx, c.Name, desc)
			if err != nil {
				c.RejectionReason = "evaluation failed: " + err.Error()
				return nil
			}
			c.Evaluation = res
			return nil
		})
	}
	_ = g.Wait()

	out := &model.WorkflowResult{
		ProjectDescription: desc,
		Candidates:         candidates,
		ViableCount:        len(viable),
	}
	for _, idx := range picked {
		c := &candidates[idx]
		if c.Evaluation == nil {
			continue
		}
		out.EvaluatedCount++
		if out.Recommended == nil || c.Evaluation.OverallScore > out.Recommended.Score {
			out.Recommended = &model.Recommendation{
				Name:       c.Name,
				Source:     c.Source,
				Score:      c.Evaluation.OverallScore,
				Evaluation: c.Evaluation,
			}
		}
	}

	fields := []zap.Field{
		zap.Int("candidates", len(candidates)),
		zap.Int("viable", out.ViableCount),
		zap.Int("evaluated", out.EvaluatedCount),
	}
	if out.Recommended != nil {
		fields = append(fields, zap.String("recommended", out.Recommended.Name))
	}
	log.Info("evaluator: workflow complete", fields...)
	return out, nil
}

func (e *Evaluator) generate(ctx context.Context, desc string, count int) []string {
	if e.generator == nil {
		return nil
	}
	names, err := e.generator.Generate(ctx, desc, count)
	if err != nil {
		zap.L().Warn("evaluator: name generation failed, using ideas only", zap.Error(err))
		metrics.CollaboratorFailures.WithLabelValues("generator").Inc()
		return nil
	}
	if len(names) > count {
		names = names[:count]
	}
	return names
}

// gatherCandidates lists ideas then generated names, trimmed, skipping
// blanks and case-insensitive repeats.
func gatherCandidates(ideas, generated []string) []model.NameCandidate {
	seen := make(map[string]bool, len(ideas)+len(generated))
	var out []model.NameCandidate
	add := func(name string, source model.CandidateSource) {
		name = strings.TrimSpace(name)
		key := strings.ToLower(name)
		if name == "" || seen[key] {
			return
		}
		seen[key] = true
		out = append(out, model.NameCandidate{Name: name, Source: source})
	}
	for _, n := range ideas {
		add(n, model.SourceUser)
	}
	for _, n := range generated {
		add(n, model.SourceGenerated)
	}
	return out
}

// screen runs the quick domain check on every candidate and returns the
// indexes of those that passed, in candidate order.
func (e *Evaluator) screen(ctx context.Context, candidates []model.NameCandidate) []int {
	g := new(errgroup.Group)
	g.SetLimit(e.opts.MaxConcurrent)
	for i := range candidates {
		g.Go(func() error {
			c := &candidates[i]
			if err := ValidateName(c.Name); err != nil {
				c.RejectionReason = err.Error()
				return nil
			}
			c.DomainsAvailable = make(map[string]bool, len(FilterTLDs))
			for tld, status := range e.checkTLDs(ctx, c.Name, FilterTLDs) {
				c.DomainsAvailable[tld] = status == model.DomainAvailable
				c.PassedDomainFilter = c.PassedDomainFilter || status == model.DomainAvailable
			}
			if !c.PassedDomainFilter {
				c.RejectionReason = noDomainReason
			}
			return nil
		})
	}
	_ = g.Wait()

	var viable []int
	for i, c := range candidates {
		if c.PassedDomainFilter {
			viable = append(viable, i)
		}
	}
	return viable
}
