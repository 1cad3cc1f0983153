package scenario

import (
	"encoding/json"
	"time"
)

// ExecutionResult represents the complete result of a scenario execution.
// Times are simulated, not wall-clock.
type ExecutionResult struct {
	ScenarioID   string           `json:"scenario_id"`
	ScenarioName string           `json:"scenario_name"`
	Success      bool             `json:"success"`
	StartedAt    time.Time        `json:"started_at"`
	CompletedAt  time.Time        `json:"completed_at"`
	Steps        []StepResult     `json:"steps"`
	Error        string           `json:"error,omitempty"`
	FinalState   map[string]int64 `json:"final_state,omitempty"`
}

// StepResult represents the result of a single step execution
type StepResult struct {
	StepName   string            `json:"step_name"`
	StepIndex  int               `json:"step_index"`
	Action     ActionType        `json:"action"`
	At         time.Time         `json:"at"`
	Success    bool              `json:"success"`
	Output     map[string]int64  `json:"output,omitempty"`
	Error      string            `json:"error,omitempty"`
	Assertions []AssertionResult `json:"assertions,omitempty"`
}

// AssertionResult represents the result of a single assertion
type AssertionResult struct {
	Type   AssertionType `json:"type"`
	Path   string        `json:"path"`
	Actual int64         `json:"actual"`
	Passed bool          `json:"passed"`
	Error  string        `json:"error,omitempty"`
}

// NewExecutionResult creates a new ExecutionResult
func NewExecutionResult(scenarioID, scenarioName string, start time.Time) *ExecutionResult {
	return &ExecutionResult{
		ScenarioID:   scenarioID,
		ScenarioName: scenarioName,
		Success:      true,
		StartedAt:    start,
		Steps:        make([]StepResult, 0),
	}
}

// AddStepResult adds a step result and updates overall success
func (r *ExecutionResult) AddStepResult(step StepResult) {
	r.Steps = append(r.Steps, step)
	if !step.Success {
		r.Success = false
	}
}

// SetError marks the execution as failed with an error
func (r *ExecutionResult) SetError(err error) {
	r.Success = false
	r.Error = err.Error()
}

// NewStepResult creates a new StepResult
func NewStepResult(stepName string, stepIndex int, action ActionType, at time.Time) *StepResult {
	return &StepResult{
		StepName:  stepName,
		StepIndex: stepIndex,
		Action:    action,
		At:        at,
		Success:   true,
		Output:    make(map[string]int64),
	}
}

// SetError marks the step as failed with an error
func (r *StepResult) SetError(err error) {
	r.Success = false
	r.Error = err.Error()
}

// AddAssertionResult adds an assertion result and updates step success
func (r *StepResult) AddAssertionResult(a AssertionResult) {
	r.Assertions = append(r.Assertions, a)
	if !a.Passed {
		r.Success = false
	}
}

// ToPrettyJSON converts the result to indented JSON bytes
func (r *ExecutionResult) ToPrettyJSON() ([]byte, error) {
	return json.MarshalIndent(r, "", "  ")
}

// GetStepByName finds a step result by name
func (r *ExecutionResult) GetStepByName(name string) *StepResult {
	for i := range r.Steps {
		if r.Steps[i].StepName == name {
			return &r.Steps[i]
		}
	}
	return nil
}

// ExecutionSummary is a brief summary of an execution
type ExecutionSummary struct {
	ScenarioID   string `json:"scenario_id"`
	ScenarioName string `json:"scenario_name"`
	Success      bool   `json:"success"`
	TotalSteps   int    `json:"total_steps"`
	PassedSteps  int    `json:"passed_steps"`
	SimulatedFor string `json:"simulated_for"`
}

// ToSummary converts the result to a summary
func (r *ExecutionResult) ToSummary() ExecutionSummary {
	passed := 0
	for _, step := range r.Steps {
		if step.Success {
			passed++
		}
	}
	return ExecutionSummary{
		ScenarioID:   r.ScenarioID,
		ScenarioName: r.ScenarioName,
		Success:      r.Success,
		TotalSteps:   len(r.Steps),
		PassedSteps:  passed,
		SimulatedFor: r.CompletedAt.Sub(r.StartedAt).String(),
	}
}
