package domain

// Quest is one active daily quest inside a game document
type Quest struct {
	ID             string `json:"id"`
	Type           string `json:"type"` // 'merge', 'collect', 'collect_type'
	TargetAmount   int64  `json:"targetAmount"`
	CurrentAmount  int64  `json:"currentAmount"`
	RewardLeaves   int64  `json:"rewardLeaves"`
	RewardDew      int64  `json:"rewardDew"`
	RewardBerries  int64  `json:"rewardBerries"`
	Completed      bool   `json:"completed"`
	ClaimedAt      *int64 `json:"claimedAt"`
	TargetResource string `json:"targetResource,omitempty"` // For: collect, collect_type
	TargetFamily   string `json:"targetFamily,omitempty"`   // For: collect_type
}

// QuestTemplate is the catalog blueprint a Quest is instantiated from
type QuestTemplate struct {
	Type           string `json:"type"`
	TargetAmount   int64  `json:"target_amount"`
	RewardLeaves   int64  `json:"reward_leaves"`
	RewardDew      int64  `json:"reward_dew"`
	RewardBerries  int64  `json:"reward_berries"`
	TargetResource string `json:"target_resource,omitempty"`
	TargetFamily   string `json:"target_family,omitempty"`
}

// Quest type constants
const (
	QuestTypeMerge       = "merge"        // Merge X times
	QuestTypeCollect     = "collect"      // Collect X of a resource from any creature
	QuestTypeCollectType = "collect_type" // Collect X of a resource from one family
)

// Reward returns the quest's reward bundle
func (q Quest) Reward() ResourceBundle {
	return ResourceBundle{Leaves: q.RewardLeaves, Dew: q.RewardDew, Berries: q.RewardBerries}
}

// IsClaimed reports whether the reward has been paid out
func (q Quest) IsClaimed() bool {
	return q.ClaimedAt != nil
}

// TrackedResource returns the resource a collect quest counts, defaulting to leaves
func (q Quest) TrackedResource() string {
	if q.TargetResource == "" {
		return ResourceLeaves
	}
	return q.TargetResource
}
