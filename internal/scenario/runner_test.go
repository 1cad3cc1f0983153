package scenario

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/osse101/FairyGrove_Go/internal/catalog"
	"github.com/osse101/FairyGrove_Go/internal/engine"
	"github.com/osse101/FairyGrove_Go/internal/idgen"
)

var start = time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)

func newRunner() *Runner {
	return NewRunner(engine.New(catalog.Default(), idgen.NewSeeded(7)), DefaultRegistry())
}

func TestBuiltinScenariosPass(t *testing.T) {
	runner := newRunner()

	for _, summary := range DefaultRegistry().List() {
		t.Run(summary.ID, func(t *testing.T) {
			result, err := runner.Execute(context.Background(), summary.ID, start)
			require.NoError(t, err)
			for _, step := range result.Steps {
				assert.True(t, step.Success, "step %q failed: %s %v", step.StepName, step.Error, step.Assertions)
			}
			assert.True(t, result.Success)
			assert.Len(t, result.Steps, summary.StepCount)
		})
	}
}

func TestExecute_UnknownScenario(t *testing.T) {
	_, err := newRunner().Execute(context.Background(), "nope", start)
	assert.ErrorIs(t, err, ErrScenarioNotFound)
}

func TestCollectLoop_EarnsPerInterval(t *testing.T) {
	sc := CollectLoop(time.Hour, 10*time.Minute)
	require.Len(t, sc.Steps, 13)

	result, err := newRunner().ExecuteScenario(context.Background(), sc, start)
	require.NoError(t, err)
	require.True(t, result.Success)

	// two cats at 20 ticks plus a sprite at 24 ticks of 3
	collect := result.Steps[1]
	assert.Equal(t, ActionCollectAll, collect.Action)
	assert.Equal(t, int64(112), collect.Output[OutputEarnedLeaves])
	assert.Equal(t, start.Add(10*time.Minute), collect.At)
	assert.Equal(t, time.Hour, result.CompletedAt.Sub(result.StartedAt))
	assert.GreaterOrEqual(t, result.FinalState[OutputLeaves], int64(10+6*112))
}

func TestOfflineReturn_UnderThirtySecondsEarnsNothing(t *testing.T) {
	result, err := newRunner().ExecuteScenario(context.Background(), OfflineReturn(29*time.Second), start)
	require.NoError(t, err)

	step := result.GetStepByName("return")
	require.NotNil(t, step)
	assert.Equal(t, int64(0), step.Output[OutputEarnedLeaves])
	assert.Equal(t, int64(10), step.Output[OutputLeaves])
}

func TestExecuteScenario_StopsAtFirstFailure(t *testing.T) {
	sc := Scenario{
		ID: "broken",
		Steps: []Step{
			{Name: "buy nothing", Action: ActionBuy},
			{Name: "never runs", Action: ActionCollectAll},
		},
	}

	result, err := newRunner().ExecuteScenario(context.Background(), sc, start)

	require.NoError(t, err)
	assert.False(t, result.Success)
	require.Len(t, result.Steps, 1)
	assert.Contains(t, result.Steps[0].Error, ParamItemID)
}

func TestExecuteScenario_StepErrors(t *testing.T) {
	tests := []struct {
		name    string
		step    Step
		wantErr string
	}{
		{"unknown action", Step{Action: "dance"}, "invalid action"},
		{"negative warp", Step{Action: ActionTimeWarp, Parameters: map[string]interface{}{ParamDuration: "-1h"}}, "invalid time delta"},
		{"garbage warp", Step{Action: ActionTimeWarp, Parameters: map[string]interface{}{ParamDuration: "soon"}}, "not a duration"},
		{"missing warp", Step{Action: ActionTimeWarp}, "missing required parameter"},
		{"premium buy", Step{Action: ActionBuy, Parameters: map[string]interface{}{ParamItemID: "no_ads"}}, "use payment flow"},
		{"too poor", Step{Action: ActionBuy, Parameters: map[string]interface{}{ParamItemID: "buy_fox_1"}}, "insufficient resources"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := newRunner().ExecuteScenario(context.Background(), Scenario{Steps: []Step{tt.step}}, start)
			require.NoError(t, err)
			require.Len(t, result.Steps, 1)
			assert.False(t, result.Steps[0].Success)
			assert.Contains(t, result.Steps[0].Error, tt.wantErr)
		})
	}
}

func TestExecuteScenario_AssertionFailureMarksStep(t *testing.T) {
	sc := Scenario{Steps: []Step{{
		Name:       "merge",
		Action:     ActionMergeAll,
		Assertions: []Assertion{{Type: AssertGreaterThan, Path: OutputMerges, Value: 5}},
	}}}

	result, err := newRunner().ExecuteScenario(context.Background(), sc, start)

	require.NoError(t, err)
	assert.False(t, result.Success)
	require.Len(t, result.Steps[0].Assertions, 1)
	assert.Equal(t, int64(1), result.Steps[0].Assertions[0].Actual)
}

func TestExecuteScenario_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	result, err := newRunner().ExecuteScenario(ctx, OfflineReturn(time.Hour), start)

	assert.ErrorIs(t, err, context.Canceled)
	assert.False(t, result.Success)
	assert.Empty(t, result.Steps)
}

func TestSimulatedClock(t *testing.T) {
	c := NewSimulatedClock(start)
	c.Advance(90 * time.Second)
	assert.Equal(t, start.Add(90*time.Second), c.Now())
	assert.Equal(t, 90*time.Second, c.Elapsed(start))

	c.Advance(-time.Hour)
	assert.Equal(t, start.Add(90*time.Second), c.Now())
}

func TestParameterError(t *testing.T) {
	err := &ParameterError{Parameter: ParamDuration, Message: "not a duration", Err: ErrInvalidParameter}
	assert.ErrorIs(t, err, ErrInvalidParameter)
	assert.Equal(t, `step parameter "duration": not a duration: invalid parameter value`, err.Error())
}
