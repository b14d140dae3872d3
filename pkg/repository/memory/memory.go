package memory

import (
	"github.com/m-mizutani/goerr/v2"
	"github.com/riskops-lab/moirai/pkg/domain/interfaces"
)

// ErrNotFound is returned when a requested record does not exist
var ErrNotFound = goerr.New("record not found")

// Memory is an in-process repository used to stage a roster for one
// analysis run. It is safe for concurrent use.
type Memory struct {
	activity *activityRepository
	risk     *riskRepository
}

// New creates an empty in-memory repository
func New() *Memory {
	return &Memory{
		activity: newActivityRepository(),
		risk:     newRiskRepository(),
	}
}

func (m *Memory) Activity() interfaces.ActivityRepository {
	return m.activity
}

func (m *Memory) Risk() interfaces.RiskRepository {
	return m.risk
}

var _ interfaces.Repository = (*Memory)(nil)
