// Package store persists evaluation history.
package store

import (
	"context"
	"encoding/json"
	"time"

	"github.com/rotisserie/eris"

	"github.com/sells-group/namecast/internal/config"
	"github.com/sells-group/namecast/internal/model"
)

// DefaultListLimit bounds ListEvaluations when no limit is given.
const DefaultListLimit = 20

// ErrNotFound is returned by GetEvaluation for an unknown id.
var ErrNotFound = eris.New("store: evaluation not found")

// Record is a saved evaluation.
type Record struct {
	ID        string                 `json:"id"`
	Result    model.EvaluationResult `json:"result"`
	CreatedAt time.Time              `json:"created_at"`
}

// ListFilter narrows ListEvaluations. Name matches case-insensitively.
type ListFilter struct {
	Name   string `json:"name,omitempty"`
	Limit  int    `json:"limit,omitempty"`
	Offset int    `json:"offset,omitempty"`
}

func (f ListFilter) limit() int {
	if f.Limit <= 0 {
		return DefaultListLimit
	}
	return f.Limit
}

// Store defines evaluation persistence.
type Store interface {
	SaveEvaluation(ctx context.Context, result *model.EvaluationResult) (string, error)
	GetEvaluation(ctx context.Context, id string) (*Record, error)
	// ListEvaluations returns the newest records first.
	ListEvaluations(ctx context.Context, filter ListFilter) ([]Record, error)

	Migrate(ctx context.Context) error
	Close() error
}

// Open creates and migrates the store selected by cfg.Driver. The none
// driver yields a nil Store and no error.
func Open(ctx context.Context, cfg config.StoreConfig) (Store, error) {
	var (
		s   Store
		err error
	)
	switch cfg.Driver {
	case "none":
		return nil, nil
	case "sqlite":
		s, err = NewSQLite(cfg.DatabaseURL)
	case "postgres":
		s, err = NewPostgres(ctx, cfg.DatabaseURL)
	default:
		return nil, eris.Errorf("store: unknown driver %q", cfg.Driver)
	}
	if err != nil {
		return nil, err
	}
	if err := s.Migrate(ctx); err != nil {
		_ = s.Close()
		return nil, err
	}
	return s, nil
}

func encodeResult(result *model.EvaluationResult) ([]byte, error) {
	if result == nil {
		return nil, eris.New("store: nil evaluation")
	}
	raw, err := json.Marshal(result)
	if err != nil {
		return nil, eris.Wrap(err, "store: marshal evaluation")
	}
	return raw, nil
}

func decodeResult(raw []byte, r *Record) error {
	if err := json.Unmarshal(raw, &r.Result); err != nil {
		return eris.Wrapf(err, "store: unmarshal evaluation %s", r.ID)
	}
	return nil
}
