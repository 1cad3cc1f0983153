package quest

// DailyQuestCount is how many quests a fresh daily list holds
const DailyQuestCount = 4

// Event kinds
const (
	EventMerge   = "merge"
	EventCollect = "collect"
)
