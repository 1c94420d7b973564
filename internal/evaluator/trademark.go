package evaluator

import (
	"context"

	"go.uber.org/zap"

	"github.com/sells-group/namecast/internal/metrics"
	"github.com/sells-group/namecast/internal/model"
)

// TrademarkSearcher searches registered marks for conflicts with name.
type TrademarkSearcher interface {
	Search(ctx context.Context, name string) (*model.TrademarkResult, error)
}

// PlaceholderTrademarkSearcher reports low risk with no matches.
type PlaceholderTrademarkSearcher struct{}

// Search implements TrademarkSearcher.
func (PlaceholderTrademarkSearcher) Search(context.Context, string) (*model.TrademarkResult, error) {
	return &model.TrademarkResult{RiskLevel: model.RiskLow, Matches: []model.TrademarkMatch{}}, nil
}

// CheckTrademark searches for conflicting marks. A failed search is reported
// as medium risk since nothing could be verified.
func (e *Evaluator) CheckTrademark(ctx context.Context, name string) *model.TrademarkResult {
	res, err := e.trademark.Search(ctx, name)
	if err != nil || res == nil {
		zap.L().Warn("evaluator: trademark search failed",
			zap.String("name", name),
			zap.Error(err),
		)
		metrics.CollaboratorFailures.WithLabelValues("trademark").Inc()
		return &model.TrademarkResult{RiskLevel: model.RiskMedium, Matches: []model.TrademarkMatch{}}
	}
	return res
}
