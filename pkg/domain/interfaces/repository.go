package interfaces

import (
	"context"

	"github.com/riskops-lab/moirai/pkg/domain/model"
	"github.com/riskops-lab/moirai/pkg/domain/types"
)

// Repository defines the interface for roster staging. Nothing persists
// between analysis runs; implementations are in-process only.
type Repository interface {
	Activity() ActivityRepository
	Risk() RiskRepository
}

type ActivityRepository interface {
	// Put stores or replaces an activity by ID
	Put(ctx context.Context, activity *model.Activity) error

	// Get retrieves an activity by ID
	Get(ctx context.Context, id types.ActivityID) (*model.Activity, error)

	// List retrieves all activities in insertion order
	List(ctx context.Context) ([]model.Activity, error)

	// Delete removes an activity by ID
	Delete(ctx context.Context, id types.ActivityID) error
}

type RiskRepository interface {
	// Put stores or replaces a risk by ID
	Put(ctx context.Context, risk *model.Risk) error

	// Get retrieves a risk by ID
	Get(ctx context.Context, id types.RiskID) (*model.Risk, error)

	// List retrieves all risks in insertion order
	List(ctx context.Context) ([]model.Risk, error)

	// Delete removes a risk by ID
	Delete(ctx context.Context, id types.RiskID) error
}
