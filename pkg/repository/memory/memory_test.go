package memory_test

import (
	"context"
	"errors"
	"testing"

	"github.com/m-mizutani/gt"
	"github.com/riskops-lab/moirai/pkg/domain/model"
	"github.com/riskops-lab/moirai/pkg/domain/types"
	"github.com/riskops-lab/moirai/pkg/repository/memory"
)

func TestActivityRepository(t *testing.T) {
	ctx := context.Background()

	t.Run("Put and Get return a detached copy", func(t *testing.T) {
		repo := memory.New()
		act := &model.Activity{ID: "a1", Title: "Build", Level: types.LevelTask, Cost: 500}

		gt.NoError(t, repo.Activity().Put(ctx, act)).Required()

		// Mutating the original must not affect the stored record
		act.Cost = 0

		got, err := repo.Activity().Get(ctx, "a1")
		gt.NoError(t, err).Required()
		gt.Value(t, got.Cost).Equal(500)

		got.Title = "changed"
		again, err := repo.Activity().Get(ctx, "a1")
		gt.NoError(t, err).Required()
		gt.Value(t, again.Title).Equal("Build")
	})

	t.Run("Get unknown ID returns ErrNotFound", func(t *testing.T) {
		repo := memory.New()
		_, err := repo.Activity().Get(ctx, "missing")
		gt.Error(t, err)
		gt.Bool(t, errors.Is(err, memory.ErrNotFound)).True()
	})

	t.Run("List preserves insertion order", func(t *testing.T) {
		repo := memory.New()
		for _, id := range []types.ActivityID{"a3", "a1", "a2"} {
			gt.NoError(t, repo.Activity().Put(ctx, &model.Activity{ID: id, Level: types.LevelTask}))
		}

		listed, err := repo.Activity().List(ctx)
		gt.NoError(t, err).Required()
		gt.Array(t, listed).Length(3)
		gt.Value(t, listed[0].ID).Equal(types.ActivityID("a3"))
		gt.Value(t, listed[1].ID).Equal(types.ActivityID("a1"))
		gt.Value(t, listed[2].ID).Equal(types.ActivityID("a2"))
	})

	t.Run("Put with empty ID fails", func(t *testing.T) {
		repo := memory.New()
		err := repo.Activity().Put(ctx, &model.Activity{})
		gt.Error(t, err)
	})
}

func TestRiskRepository(t *testing.T) {
	ctx := context.Background()

	t.Run("Put replaces by ID", func(t *testing.T) {
		repo := memory.New()
		gt.NoError(t, repo.Risk().Put(ctx, &model.Risk{ID: "r1", Probability: 10}))
		gt.NoError(t, repo.Risk().Put(ctx, &model.Risk{ID: "r1", Probability: 60}))

		got, err := repo.Risk().Get(ctx, "r1")
		gt.NoError(t, err).Required()
		gt.Value(t, got.Probability).Equal(60)

		listed, err := repo.Risk().List(ctx)
		gt.NoError(t, err).Required()
		gt.Array(t, listed).Length(1)
	})

	t.Run("Delete removes the record", func(t *testing.T) {
		repo := memory.New()
		gt.NoError(t, repo.Risk().Put(ctx, &model.Risk{ID: "r1"}))
		gt.NoError(t, repo.Risk().Delete(ctx, "r1"))

		_, err := repo.Risk().Get(ctx, "r1")
		gt.Bool(t, errors.Is(err, memory.ErrNotFound)).True()

		gt.Error(t, repo.Risk().Delete(ctx, "r1"))
	})
}
