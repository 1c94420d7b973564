package evaluator

import (
	"context"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/sells-group/namecast/internal/model"
)

// Compare evaluates each name against the same mission and picks the
// highest overall score as winner. Results keep input order and ties go
// to the earliest name.
func (e *Evaluator) Compare(ctx context.Context, names []string, mission string) (*model.Comparison, error) {
	if len(names) < 2 {
		return nil, ErrTooFewNames
	}
	for _, name := range names {
		if err := ValidateName(name); err != nil {
			return nil, err
		}
	}

	results := make([]model.EvaluationResult, len(names))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(e.opts.MaxConcurrent)
	for i, name := range names {
		g.Go(func() error {
			res, err := e.Evaluate(gctx, name, mission)
			if err != nil {
				return err
			}
			results[i] = *res
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	cmp := &model.Comparison{Results: results}
	for i, r := range results {
		if i == 0 || r.OverallScore > cmp.WinnerScore {
			cmp.Winner = r.Name
			cmp.WinnerScore = r.OverallScore
		}
	}

	zap.L().Info("evaluator: compared names",
		zap.Strings("names", names),
		zap.String("winner", cmp.Winner),
		zap.Float64("winner_score", cmp.WinnerScore),
	)
	return cmp, nil
}
