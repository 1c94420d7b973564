package evaluator

import (
	"context"

	"go.uber.org/zap"

	"github.com/sells-group/namecast/internal/metrics"
	"github.com/sells-group/namecast/internal/model"
)

// placeholderMissionAlignment is reported when a mission is given but no
// oracle could judge it.
const placeholderMissionAlignment = 7.0

// PerceptionOracle judges how a name is perceived, optionally against a
// company mission.
type PerceptionOracle interface {
	Perceive(ctx context.Context, name, mission string) (*model.PerceptionResult, error)
}

// AnalyzePerception asks the perception oracle about name, bounded by
// PerceptionTimeout. Without an oracle, or when it fails, a fixed
// placeholder is returned.
func (e *Evaluator) AnalyzePerception(ctx context.Context, name, mission string) *model.PerceptionResult {
	if e.perception != nil {
		ctx, cancel := context.WithTimeout(ctx, e.opts.PerceptionTimeout)
		defer cancel()

		res, err := e.perception.Perceive(ctx, name, mission)
		if err == nil && res != nil {
			metrics.OracleCalls.WithLabelValues("perception", "ok").Inc()
			return res
		}
		zap.L().Warn("evaluator: perception oracle failed, using placeholder",
			zap.String("name", name),
			zap.Error(err),
		)
		metrics.OracleCalls.WithLabelValues("perception", "failed").Inc()
	}
	return PlaceholderPerception(mission)
}

// PlaceholderPerception is the perception reported without an oracle.
func PlaceholderPerception(mission string) *model.PerceptionResult {
	res := &model.PerceptionResult{
		Evokes:              "professional, modern",
		IndustryAssociation: []string{"technology", "business"},
		Memorability:        "high",
		Source:              model.PerceptionSourcePlaceholder,
	}
	if mission != "" {
		alignment := placeholderMissionAlignment
		res.MissionAlignment = &alignment
	}
	return res
}
