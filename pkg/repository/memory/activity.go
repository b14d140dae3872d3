package memory

import (
	"context"
	"sync"

	"github.com/m-mizutani/goerr/v2"
	"github.com/riskops-lab/moirai/pkg/domain/model"
	"github.com/riskops-lab/moirai/pkg/domain/types"
)

type activityRepository struct {
	mu         sync.RWMutex
	activities map[types.ActivityID]*model.Activity
	order      []types.ActivityID
}

func newActivityRepository() *activityRepository {
	return &activityRepository{
		activities: make(map[types.ActivityID]*model.Activity),
	}
}

func (r *activityRepository) Put(ctx context.Context, activity *model.Activity) error {
	if err := activity.ID.Validate(); err != nil {
		return goerr.Wrap(err, "invalid activity ID")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.activities[activity.ID]; !exists {
		r.order = append(r.order, activity.ID)
	}
	r.activities[activity.ID] = activity.Clone()
	return nil
}

func (r *activityRepository) Get(ctx context.Context, id types.ActivityID) (*model.Activity, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	activity, exists := r.activities[id]
	if !exists {
		return nil, goerr.Wrap(ErrNotFound, "activity not found", goerr.V("id", id))
	}

	// Return a copy to prevent external modification
	return activity.Clone(), nil
}

func (r *activityRepository) List(ctx context.Context) ([]model.Activity, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	activities := make([]model.Activity, 0, len(r.order))
	for _, id := range r.order {
		activities = append(activities, *r.activities[id].Clone())
	}
	return activities, nil
}

func (r *activityRepository) Delete(ctx context.Context, id types.ActivityID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.activities[id]; !exists {
		return goerr.Wrap(ErrNotFound, "activity not found", goerr.V("id", id))
	}

	delete(r.activities, id)
	for i, existing := range r.order {
		if existing == id {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
	return nil
}
