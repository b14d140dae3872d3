package memory

import (
	"context"
	"sync"

	"github.com/m-mizutani/goerr/v2"
	"github.com/riskops-lab/moirai/pkg/domain/model"
	"github.com/riskops-lab/moirai/pkg/domain/types"
)

type riskRepository struct {
	mu    sync.RWMutex
	risks map[types.RiskID]*model.Risk
	order []types.RiskID
}

func newRiskRepository() *riskRepository {
	return &riskRepository{
		risks: make(map[types.RiskID]*model.Risk),
	}
}

func (r *riskRepository) Put(ctx context.Context, risk *model.Risk) error {
	if err := risk.ID.Validate(); err != nil {
		return goerr.Wrap(err, "invalid risk ID")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.risks[risk.ID]; !exists {
		r.order = append(r.order, risk.ID)
	}
	r.risks[risk.ID] = risk.Clone()
	return nil
}

func (r *riskRepository) Get(ctx context.Context, id types.RiskID) (*model.Risk, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	risk, exists := r.risks[id]
	if !exists {
		return nil, goerr.Wrap(ErrNotFound, "risk not found", goerr.V("id", id))
	}

	// Return a copy to prevent external modification
	return risk.Clone(), nil
}

func (r *riskRepository) List(ctx context.Context) ([]model.Risk, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	risks := make([]model.Risk, 0, len(r.order))
	for _, id := range r.order {
		risks = append(risks, *r.risks[id].Clone())
	}
	return risks, nil
}

func (r *riskRepository) Delete(ctx context.Context, id types.RiskID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.risks[id]; !exists {
		return goerr.Wrap(ErrNotFound, "risk not found", goerr.V("id", id))
	}

	delete(r.risks, id)
	for i, existing := range r.order {
		if existing == id {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
	return nil
}
