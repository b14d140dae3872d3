package usecase

import (
	"github.com/riskops-lab/moirai/pkg/domain/interfaces"
	"github.com/riskops-lab/moirai/pkg/service/propagation"
	"github.com/riskops-lab/moirai/pkg/service/score"
)

// UseCases wires the analysis engine together. The engine itself is a pure
// function of its input; the repository only stages rosters for callers
// that load records incrementally.
type UseCases struct {
	repo    interfaces.Repository
	weights score.Weights
	prop    propagation.Config
	calc    *score.Calculator
}

type Option func(*UseCases)

// WithWeights overrides the behavior score blend
func WithWeights(weights score.Weights) Option {
	return func(uc *UseCases) {
		uc.weights = weights
	}
}

// WithPropagation overrides the relaxation tuning
func WithPropagation(cfg propagation.Config) Option {
	return func(uc *UseCases) {
		uc.prop = cfg
	}
}

func New(repo interfaces.Repository, opts ...Option) *UseCases {
	uc := &UseCases{
		repo:    repo,
		weights: score.DefaultWeights(),
		prop:    propagation.DefaultConfig(),
	}

	for _, opt := range opts {
		opt(uc)
	}

	uc.calc = score.NewCalculator(uc.weights)
	return uc
}
