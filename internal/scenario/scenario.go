// Package scenario replays scripted play sessions against the economy engine on a
// simulated clock. The devtool uses it to inspect long-horizon balance.
package scenario

import (
	"time"

	"github.com/osse101/FairyGrove_Go/internal/domain"
)

// ActionType defines the type of action in a scenario step
type ActionType string

const (
	ActionTimeWarp      ActionType = "time_warp" // requires duration
	ActionCollectAll    ActionType = "collect_all"
	ActionOfflineReturn ActionType = "offline_return"
	ActionBuy           ActionType = "buy" // requires item_id
	ActionMergeAll      ActionType = "merge_all"
	ActionClaimQuests   ActionType = "claim_quests"
)

// Parameter names
const (
	ParamDuration = "duration"
	ParamItemID   = "item_id"
)

// AssertionType defines the type of assertion
type AssertionType string

const (
	AssertEquals      AssertionType = "equals"
	AssertGreaterThan AssertionType = "greater_than"
	AssertLessThan    AssertionType = "less_than"
	AssertBetween     AssertionType = "between"
)

// Output keys recorded after every step
const (
	OutputLeaves      = "resources.leaves"
	OutputDew         = "resources.dew"
	OutputBerries     = "resources.berries"
	OutputLevel       = "level"
	OutputExperience  = "experience"
	OutputTotalMerges = "total_merges"
	OutputCreatures   = "creatures"

	OutputEarnedLeaves  = "earned.leaves"
	OutputEarnedDew     = "earned.dew"
	OutputEarnedBerries = "earned.berries"
	OutputMerges        = "merges"
	OutputClaimed       = "claimed"
)

// Scenario is a named, ordered list of steps
type Scenario struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Steps       []Step `json:"steps"`
}

// Step defines a single step within a scenario
type Step struct {
	Name       string                 `json:"name"`
	Action     ActionType             `json:"action"`
	Parameters map[string]interface{} `json:"parameters,omitempty"`
	Assertions []Assertion            `json:"assertions,omitempty"`
}

// Assertion defines an expected numeric outcome for a step
type Assertion struct {
	Type  AssertionType `json:"type"`
	Path  string        `json:"path"`
	Value int64         `json:"value,omitempty"`
	Min   int64         `json:"min,omitempty"`
	Max   int64         `json:"max,omitempty"`
}

// ExecutionState holds the document and clock while a scenario runs
type ExecutionState struct {
	Clock *SimulatedClock
	Doc   *domain.GameDocument
}

// ScenarioSummary provides a brief overview of a scenario for listing
type ScenarioSummary struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	StepCount   int    `json:"step_count"`
}

// ToSummary converts a Scenario to a ScenarioSummary
func (s *Scenario) ToSummary() ScenarioSummary {
	return ScenarioSummary{
		ID:          s.ID,
		Name:        s.Name,
		Description: s.Description,
		StepCount:   len(s.Steps),
	}
}

// TimeWarp is a convenience constructor for a time_warp step
func TimeWarp(d time.Duration) Step {
	return Step{
		Name:       "warp " + d.String(),
		Action:     ActionTimeWarp,
		Parameters: map[string]interface{}{ParamDuration: d.String()},
	}
}
