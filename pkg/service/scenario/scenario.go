package scenario

import (
	"math"

	"github.com/riskops-lab/moirai/pkg/domain/model"
	"github.com/riskops-lab/moirai/pkg/domain/types"
)

// maxCombinedPercent caps the summed impact percentages of a subset so
// stacking many risks cannot run away.
const maxCombinedPercent = 200

// Combine computes the joint impact of a risk subset over the level-2
// activities every risk in the subset affects (intersection, not union).
// An empty intersection or an unresolvable subset yields a zeroed scenario
// with the risk IDs retained.
func Combine(riskIDs []types.RiskID, risks []model.Risk, index map[types.ActivityID]*model.Activity) model.CombinedScenario {
	result := model.CombinedScenario{
		RiskIDs:          append([]types.RiskID{}, riskIDs...),
		CommonActivities: []types.ActivityID{},
	}

	roster := make(map[types.RiskID]*model.Risk, len(risks))
	for i := range risks {
		roster[risks[i].ID] = &risks[i]
	}

	subset := make([]*model.Risk, 0, len(riskIDs))
	for _, id := range riskIDs {
		risk, ok := roster[id]
		if !ok {
			return result
		}
		subset = append(subset, risk)
	}
	if len(subset) == 0 {
		return result
	}

	common := intersection(subset, index)
	if len(common) == 0 {
		return result
	}
	result.CommonActivities = common

	var timePercent, costPercent, probabilitySum float64
	for _, risk := range subset {
		timePercent += risk.TimeImpactPercent
		costPercent += risk.CostImpactPercent
		probabilitySum += risk.Probability
	}
	result.CombinedTimeImpactPercent = math.Min(maxCombinedPercent, timePercent)
	result.CombinedCostImpactPercent = math.Min(maxCombinedPercent, costPercent)
	result.AverageProbability = probabilitySum / float64(len(subset))

	for _, id := range common {
		activity := index[id]
		result.AffectedDurationSum += activity.DurationDays
		result.AffectedCostSum += activity.BaselineCost
	}

	result.CombinedAddedDays = result.AffectedDurationSum * result.CombinedTimeImpactPercent / 100
	result.CombinedExpectedTimeImpact = result.CombinedAddedDays * result.AverageProbability / 100
	result.CombinedAddedCost = result.AffectedCostSum * result.CombinedCostImpactPercent / 100
	result.CombinedExpectedCostImpact = result.CombinedAddedCost * result.AverageProbability / 100

	return result
}

// intersection returns the level-2 activity IDs affected by every risk in
// the subset, in the first risk's declaration order.
func intersection(subset []*model.Risk, index map[types.ActivityID]*model.Activity) []types.ActivityID {
	var common []types.ActivityID
	for _, id := range subset[0].AffectedActivities {
		activity, ok := index[id]
		if !ok || !activity.Level.Schedulable() {
			continue
		}

		shared := true
		for _, other := range subset[1:] {
			if !affects(other, id) {
				shared = false
				break
			}
		}
		if shared {
			common = append(common, id)
		}
	}
	return common
}

func affects(risk *model.Risk, id types.ActivityID) bool {
	for _, affected := range risk.AffectedActivities {
		if affected == id {
			return true
		}
	}
	return false
}
