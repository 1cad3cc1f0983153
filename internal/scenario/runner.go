package scenario

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/osse101/FairyGrove_Go/internal/domain"
	"github.com/osse101/FairyGrove_Go/internal/engine"
)

// Runner executes scenarios against a fresh game document
type Runner struct {
	game     *engine.Engine
	registry *Registry
}

// NewRunner creates a scenario runner
func NewRunner(game *engine.Engine, registry *Registry) *Runner {
	return &Runner{game: game, registry: registry}
}

// Execute runs a registered scenario by ID starting at start
func (r *Runner) Execute(ctx context.Context, scenarioID string, start time.Time) (*ExecutionResult, error) {
	sc, ok := r.registry.Get(scenarioID)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrScenarioNotFound, scenarioID)
	}
	return r.ExecuteScenario(ctx, sc, start)
}

// ExecuteScenario runs sc on a new game. Execution stops at the first failed step.
func (r *Runner) ExecuteScenario(ctx context.Context, sc Scenario, start time.Time) (*ExecutionResult, error) {
	result := NewExecutionResult(sc.ID, sc.Name, start)
	state := &ExecutionState{
		Clock: NewSimulatedClock(start),
		Doc:   r.game.NewGame(start),
	}

	for i, step := range sc.Steps {
		if err := ctx.Err(); err != nil {
			result.SetError(err)
			result.CompletedAt = state.Clock.Now()
			return result, err
		}

		stepResult := r.executeStep(step, i, state)
		result.AddStepResult(*stepResult)
		if !stepResult.Success {
			break
		}
	}

	result.FinalState = snapshot(state.Doc)
	result.CompletedAt = state.Clock.Now()
	return result, nil
}

func (r *Runner) executeStep(step Step, index int, state *ExecutionState) *StepResult {
	res := NewStepResult(step.Name, index, step.Action, state.Clock.Now())

	if err := r.apply(step, state, res.Output); err != nil {
		res.SetError(err)
		return res
	}

	for k, v := range snapshot(state.Doc) {
		res.Output[k] = v
	}
	for _, a := range step.Assertions {
		res.AddAssertionResult(checkAssertion(a, res.Output))
	}
	return res
}

func (r *Runner) apply(step Step, state *ExecutionState, out map[string]int64) error {
	now := state.Clock.Now()

	switch step.Action {
	case ActionTimeWarp:
		d, err := durationParam(step.Parameters)
		if err != nil {
			return err
		}
		state.Clock.Advance(d)

	case ActionCollectAll:
		doc, res, err := r.game.CollectAll(state.Doc, now)
		if err != nil {
			return err
		}
		state.Doc = doc
		recordEarned(out, res.Earned)

	case ActionOfflineReturn:
		doc, bonus := r.game.ApplyOfflineBonus(state.Doc, now)
		state.Doc = doc
		recordEarned(out, bonus)

	case ActionBuy:
		itemID, ok := step.Parameters[ParamItemID].(string)
		if !ok || itemID == "" {
			return &ParameterError{Parameter: ParamItemID, Message: "required", Err: ErrMissingParameter}
		}
		doc, _, err := r.game.Buy(state.Doc, itemID, now)
		if err != nil {
			return err
		}
		state.Doc = doc

	case ActionMergeAll:
		merges, err := r.mergeAll(state, now)
		if err != nil {
			return err
		}
		out[OutputMerges] = int64(merges)

	case ActionClaimQuests:
		claimed, err := r.claimQuests(state, now)
		if err != nil {
			return err
		}
		out[OutputClaimed] = int64(claimed)

	default:
		return fmt.Errorf("%w: %s", ErrInvalidAction, step.Action)
	}

	// Keep the player "online" between scripted actions, except across a warp
	if step.Action != ActionTimeWarp {
		state.Doc = engine.Touch(state.Doc, now)
	}
	return nil
}

// mergeAll merges matching pairs until none remain, always folding the later slot into the earlier
func (r *Runner) mergeAll(state *ExecutionState, now time.Time) (int, error) {
	merges := 0
	for {
		from, to, ok := findPair(state.Doc)
		if !ok {
			return merges, nil
		}
		doc, _, err := r.game.Merge(state.Doc, from, to, now)
		if err != nil {
			return merges, err
		}
		state.Doc = doc
		merges++
	}
}

func findPair(doc *domain.GameDocument) (from, to string, ok bool) {
	for i, a := range doc.Grid {
		if a == nil || a.Level >= domain.MaxLevel {
			continue
		}
		for _, b := range doc.Grid[i+1:] {
			if b != nil && b.Family == a.Family && b.Level == a.Level {
				return b.ID, a.ID, true
			}
		}
	}
	return "", "", false
}

func (r *Runner) claimQuests(state *ExecutionState, now time.Time) (int, error) {
	claimed := 0
	for _, q := range state.Doc.DailyQuests {
		if !q.Completed || q.IsClaimed() {
			continue
		}
		doc, _, err := r.game.Quests().Claim(state.Doc, q.ID, now)
		if err != nil {
			if errors.Is(err, domain.ErrAlreadyClaimed) {
				continue
			}
			return claimed, err
		}
		state.Doc = doc
		claimed++
	}
	return claimed, nil
}

func durationParam(params map[string]interface{}) (time.Duration, error) {
	raw, ok := params[ParamDuration]
	if !ok {
		return 0, &ParameterError{Parameter: ParamDuration, Message: "required", Err: ErrMissingParameter}
	}

	var d time.Duration
	switch v := raw.(type) {
	case string:
		parsed, err := time.ParseDuration(v)
		if err != nil {
			return 0, &ParameterError{Parameter: ParamDuration, Message: "not a duration", Err: ErrInvalidParameter}
		}
		d = parsed
	case float64:
		d = time.Duration(v * float64(time.Second))
	case time.Duration:
		d = v
	default:
		return 0, &ParameterError{Parameter: ParamDuration, Message: fmt.Sprintf("unsupported type %T", raw), Err: ErrInvalidParameter}
	}

	if d <= 0 {
		return 0, &ParameterError{Parameter: ParamDuration, Message: d.String(), Err: ErrInvalidTimeDelta}
	}
	return d, nil
}

func recordEarned(out map[string]int64, earned domain.ResourceBundle) {
	out[OutputEarnedLeaves] = earned.Leaves
	out[OutputEarnedDew] = earned.Dew
	out[OutputEarnedBerries] = earned.Berries
}

func snapshot(doc *domain.GameDocument) map[string]int64 {
	return map[string]int64{
		OutputLeaves:      doc.Resources.Leaves,
		OutputDew:         doc.Resources.Dew,
		OutputBerries:     doc.Resources.Berries,
		OutputLevel:       int64(doc.Level),
		OutputExperience:  doc.Experience,
		OutputTotalMerges: doc.TotalMerges,
		OutputCreatures:   int64(doc.OccupiedSlots()),
	}
}

func checkAssertion(a Assertion, output map[string]int64) AssertionResult {
	res := AssertionResult{Type: a.Type, Path: a.Path}

	actual, found := output[a.Path]
	if !found {
		res.Error = fmt.Sprintf("path '%s' not found", a.Path)
		return res
	}
	res.Actual = actual

	switch a.Type {
	case AssertEquals:
		res.Passed = actual == a.Value
	case AssertGreaterThan:
		res.Passed = actual > a.Value
	case AssertLessThan:
		res.Passed = actual < a.Value
	case AssertBetween:
		res.Passed = actual >= a.Min && actual <= a.Max
	default:
		res.Error = fmt.Sprintf("unknown assertion type %q", a.Type)
		return res
	}

	if !res.Passed {
		res.Error = fmt.Sprintf("%s %s: got %d", a.Path, a.Type, actual)
	}
	return res
}
