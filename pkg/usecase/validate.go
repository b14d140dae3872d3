package usecase

import (
	"fmt"

	"github.com/riskops-lab/moirai/pkg/domain/model"
	"github.com/riskops-lab/moirai/pkg/domain/types"
	"github.com/riskops-lab/moirai/pkg/service/enrich"
)

// ValidateInput checks an input bundle for structural and referential
// correctness and returns field-scoped findings. Malformed domain data is
// a reported validity state, not a fault: this function never fails.
//
// The engine does not re-validate; callers that skip validation get
// degenerate but non-crashing output.
func ValidateInput(input *model.AnalysisInput) []model.ValidationError {
	var errs []model.ValidationError
	report := func(field, format string, args ...any) {
		errs = append(errs, model.ValidationError{
			Field:   field,
			Message: fmt.Sprintf(format, args...),
		})
	}

	knownActivities := make(map[types.ActivityID]bool, len(input.Activities))
	seenActivities := make(map[types.ActivityID]bool, len(input.Activities))
	for i := range input.Activities {
		activity := &input.Activities[i]
		field := func(name string) string {
			return fmt.Sprintf("activities[%d].%s", i, name)
		}

		if activity.ID == "" {
			report(field("id"), "activity ID is required")
		} else {
			if seenActivities[activity.ID] {
				report(field("id"), "duplicate activity ID %q", activity.ID)
			}
			seenActivities[activity.ID] = true
			knownActivities[activity.ID] = true
		}

		if activity.Title == "" {
			report(field("title"), "activity title is required")
		}
		if err := activity.Level.Validate(); err != nil {
			report(field("level"), "activity level must be 1 (artifact) or 2 (task), got %d", int(activity.Level))
		}
		if activity.Cost < 0 {
			report(field("cost"), "cost must not be negative, got %v", activity.Cost)
		}

		if activity.Level.Schedulable() {
			start, startOK := enrich.ParseDate(activity.Start)
			end, endOK := enrich.ParseDate(activity.End)
			if activity.Start != "" && !startOK {
				report(field("start"), "start date %q is not a valid date", activity.Start)
			}
			if activity.End != "" && !endOK {
				report(field("end"), "end date %q is not a valid date", activity.End)
			}
			if startOK && endOK && end.Before(start) {
				report(field("end"), "end date must not precede start date")
			}
		}
	}

	seenRisks := make(map[types.RiskID]bool, len(input.Risks))
	for i := range input.Risks {
		risk := &input.Risks[i]
		field := func(name string) string {
			return fmt.Sprintf("risks[%d].%s", i, name)
		}

		if risk.ID == "" {
			report(field("id"), "risk ID is required")
		} else {
			if seenRisks[risk.ID] {
				report(field("id"), "duplicate risk ID %q", risk.ID)
			}
			seenRisks[risk.ID] = true
		}

		if risk.Title == "" {
			report(field("title"), "risk title is required")
		}
		if risk.Probability < 0 || risk.Probability > 100 {
			report(field("probability"), "probability must be within [0,100], got %v", risk.Probability)
		}
		if risk.TimeImpactPercent < 0 {
			report(field("timeImpactPercent"), "time impact percent must not be negative, got %v", risk.TimeImpactPercent)
		}
		if risk.CostImpactPercent < 0 {
			report(field("costImpactPercent"), "cost impact percent must not be negative, got %v", risk.CostImpactPercent)
		}

		if len(risk.AffectedActivities) == 0 {
			report(field("affectedActivities"), "risk must affect at least one activity")
		}
		for j, id := range risk.AffectedActivities {
			if !knownActivities[id] {
				report(fmt.Sprintf("risks[%d].affectedActivities[%d]", i, j),
					"affected activity %q does not exist", id)
			}
		}

		for j, rel := range risk.RelatedRisks {
			relField := func(name string) string {
				return fmt.Sprintf("risks[%d].relatedRisks[%d].%s", i, j, name)
			}
			if err := rel.RelationType.Validate(); err != nil {
				report(relField("relationType"), "relation type must be dependency or concurrent, got %q", rel.RelationType)
			}
			if rel.Strength < 0 || rel.Strength > 1 {
				report(relField("strength"), "relation strength must be within [0,1], got %v", rel.Strength)
			}
			if !riskExists(input.Risks, rel.RiskID) {
				report(relField("riskId"), "related risk %q does not exist", rel.RiskID)
			}
		}
	}

	return errs
}

func riskExists(risks []model.Risk, id types.RiskID) bool {
	for i := range risks {
		if risks[i].ID == id {
			return true
		}
	}
	return false
}
