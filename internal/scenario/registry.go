package scenario

import (
	"sort"
	"sync"
	"time"
)

// Registry holds named scenarios
type Registry struct {
	mu        sync.RWMutex
	scenarios map[string]Scenario
}

// NewRegistry creates an empty registry
func NewRegistry() *Registry {
	return &Registry{scenarios: make(map[string]Scenario)}
}

// DefaultRegistry returns a registry with the built-in balance scenarios
func DefaultRegistry() *Registry {
	r := NewRegistry()
	for _, sc := range builtin() {
		r.Register(sc)
	}
	return r
}

// Register adds or replaces a scenario
func (r *Registry) Register(sc Scenario) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.scenarios[sc.ID] = sc
}

// Get retrieves a scenario by ID
func (r *Registry) Get(id string) (Scenario, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	sc, ok := r.scenarios[id]
	return sc, ok
}

// List returns summaries sorted by ID
func (r *Registry) List() []ScenarioSummary {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]ScenarioSummary, 0, len(r.scenarios))
	for _, sc := range r.scenarios {
		out = append(out, sc.ToSummary())
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// CollectLoop plays for total, collecting every interval, and claims finished quests at the end
func CollectLoop(total, every time.Duration) Scenario {
	sc := Scenario{
		ID:          "collect-loop",
		Name:        "Collect loop",
		Description: "Active play: collect all creatures every " + every.String() + " for " + total.String(),
	}
	if every <= 0 {
		every = total
	}
	for elapsed := time.Duration(0); elapsed+every <= total; elapsed += every {
		sc.Steps = append(sc.Steps, TimeWarp(every), Step{Name: "collect", Action: ActionCollectAll})
	}
	sc.Steps = append(sc.Steps, Step{Name: "claim", Action: ActionClaimQuests})
	return sc
}

// OfflineReturn leaves the game for away and comes back once
func OfflineReturn(away time.Duration) Scenario {
	return Scenario{
		ID:          "offline-return",
		Name:        "Offline return",
		Description: "Leave the grove for " + away.String() + " and claim the catch-up bonus",
		Steps: []Step{
			TimeWarp(away),
			{Name: "return", Action: ActionOfflineReturn},
		},
	}
}

func builtin() []Scenario {
	return []Scenario{
		CollectLoop(time.Hour, time.Minute),
		{
			ID:          "offline-overnight",
			Name:        "Overnight away",
			Description: "Ten hours away is capped at eight hours of production",
			Steps: []Step{
				TimeWarp(10 * time.Hour),
				{
					Name:   "return",
					Action: ActionOfflineReturn,
					Assertions: []Assertion{
						// two fairy cats (960 each) plus a mushroom sprite (3456)
						{Type: AssertEquals, Path: OutputEarnedLeaves, Value: 5376},
					},
				},
			},
		},
		{
			ID:          "first-merges",
			Name:        "First merges",
			Description: "Merge the starter cats, buy a second sprite and merge again",
			Steps: []Step{
				{
					Name:       "merge starters",
					Action:     ActionMergeAll,
					Assertions: []Assertion{{Type: AssertEquals, Path: OutputMerges, Value: 1}},
				},
				{Name: "buy sprite", Action: ActionBuy, Parameters: map[string]interface{}{ParamItemID: "buy_mushroom_1"}},
				{
					Name:   "merge sprites",
					Action: ActionMergeAll,
					Assertions: []Assertion{
						{Type: AssertEquals, Path: OutputMerges, Value: 1},
						{Type: AssertEquals, Path: OutputExperience, Value: 40},
						{Type: AssertEquals, Path: OutputTotalMerges, Value: 2},
					},
				},
			},
		},
	}
}
