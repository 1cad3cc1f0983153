package domain

import (
	"encoding/json"
	"reflect"
	"strings"
	"time"
)

// Creature occupies one grid slot
type Creature struct {
	ID               string         `json:"id"`
	Family           string         `json:"family"`
	Level            int            `json:"level"`
	LastCollected    int64          `json:"lastCollected"` // unix ms
	PendingResources ResourceBundle `json:"pendingResources"`
	IsCollecting     bool           `json:"isCollecting"`
}

// Discovery is one entry of the append-only collection ledger
type Discovery struct {
	Family       string `json:"family"`
	Level        int    `json:"level"`
	DiscoveredAt int64  `json:"discoveredAt"` // unix ms
	TotalMerged  int64  `json:"totalMerged"`
}

// Building is an owned building instance; DefID selects its production modifier
type Building struct {
	ID    string `json:"id,omitempty"`
	DefID string `json:"defId"`
}

// Grid is the fixed-capacity board. A nil entry is an empty slot.
type Grid [MaxGridSize]*Creature

// GameDocument is the persisted state of one player.
// Operations never mutate a document in place; they Clone and return the copy.
type GameDocument struct {
	SchemaVersion       int            `json:"schemaVersion"`
	Grid                Grid           `json:"grid"`
	UnlockedSlots       int            `json:"unlockedSlots"`
	Resources           ResourceBundle `json:"resources"`
	Level               int            `json:"level"`
	Experience          int64          `json:"experience"`
	LastOnline          int64          `json:"lastOnline"` // unix ms
	CatchupBonus        ResourceBundle `json:"catchupBonus"`
	DiscoveredCreatures []Discovery    `json:"discoveredCreatures"`
	Buildings           []Building     `json:"buildings"`
	DailyQuests         []Quest        `json:"dailyQuests"`
	QuestLastReset      int64          `json:"questLastReset"` // unix ms
	TotalMerges         int64          `json:"totalMerges"`
	ReferralCode        string         `json:"referralCode"`
	ReferralCount       int64          `json:"referralCount"`
	Subscription        string         `json:"subscription"`
	SubscriptionExpires int64          `json:"subscriptionExpires,omitempty"` // unix ms, 0 = no expiry tracked
	NoAds               bool           `json:"noAds"`

	// Extra keeps fields this version does not know about so they survive a load/save cycle.
	Extra map[string]json.RawMessage `json:"-"`
}

// FindCreature returns the slot index and creature with the given id, or -1
func (d *GameDocument) FindCreature(id string) (int, *Creature) {
	if id == "" {
		return -1, nil
	}
	for i, c := range d.Grid {
		if c != nil && c.ID == id {
			return i, c
		}
	}
	return -1, nil
}

// FirstFreeSlot returns the lowest empty index below UnlockedSlots, or -1
func (d *GameDocument) FirstFreeSlot() int {
	limit := d.UnlockedSlots
	if limit > MaxGridSize {
		limit = MaxGridSize
	}
	for i := 0; i < limit; i++ {
		if d.Grid[i] == nil {
			return i
		}
	}
	return -1
}

// OccupiedSlots counts non-empty slots
func (d *GameDocument) OccupiedSlots() int {
	n := 0
	for _, c := range d.Grid {
		if c != nil {
			n++
		}
	}
	return n
}

// FindDiscovery returns the ledger index for (family, level), or -1
func (d *GameDocument) FindDiscovery(family string, level int) int {
	for i, disc := range d.DiscoveredCreatures {
		if disc.Family == family && disc.Level == level {
			return i
		}
	}
	return -1
}

// FindQuest returns the index of the quest with the given id, or -1
func (d *GameDocument) FindQuest(id string) int {
	for i, q := range d.DailyQuests {
		if q.ID == id {
			return i
		}
	}
	return -1
}

// Clone returns a deep copy that shares no mutable memory with d
func (d *GameDocument) Clone() *GameDocument {
	if d == nil {
		return nil
	}
	out := *d

	for i, c := range d.Grid {
		if c != nil {
			cp := *c
			out.Grid[i] = &cp
		}
	}

	if d.DiscoveredCreatures != nil {
		out.DiscoveredCreatures = append([]Discovery(nil), d.DiscoveredCreatures...)
	}
	if d.Buildings != nil {
		out.Buildings = append([]Building(nil), d.Buildings...)
	}
	if d.DailyQuests != nil {
		out.DailyQuests = make([]Quest, len(d.DailyQuests))
		for i, q := range d.DailyQuests {
			if q.ClaimedAt != nil {
				at := *q.ClaimedAt
				q.ClaimedAt = &at
			}
			out.DailyQuests[i] = q
		}
	}
	if d.Extra != nil {
		out.Extra = make(map[string]json.RawMessage, len(d.Extra))
		for k, v := range d.Extra {
			out.Extra[k] = append(json.RawMessage(nil), v...)
		}
	}
	return &out
}

// gameDocumentJSON has the document's fields without its methods
type gameDocumentJSON GameDocument

var knownDocumentFields = jsonFieldNames(reflect.TypeOf(gameDocumentJSON{}))

func jsonFieldNames(t reflect.Type) map[string]struct{} {
	names := make(map[string]struct{}, t.NumField())
	for i := 0; i < t.NumField(); i++ {
		tag := t.Field(i).Tag.Get("json")
		name, _, _ := strings.Cut(tag, ",")
		if name == "" || name == "-" {
			continue
		}
		names[name] = struct{}{}
	}
	return names
}

// UnmarshalJSON decodes a document, keeping unknown fields in Extra and
// upgrading documents written before schema versioning.
func (d *GameDocument) UnmarshalJSON(data []byte) error {
	var aux gameDocumentJSON
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}

	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	for key := range raw {
		if _, known := knownDocumentFields[key]; known {
			delete(raw, key)
		}
	}
	if len(raw) > 0 {
		aux.Extra = raw
	}

	*d = GameDocument(aux)
	if d.SchemaVersion < CurrentSchemaVersion {
		d.upgradeLegacy()
	}
	return nil
}

// MarshalJSON encodes the document and merges Extra back in.
// Known fields always win over an Extra entry with the same name.
func (d GameDocument) MarshalJSON() ([]byte, error) {
	base, err := json.Marshal(gameDocumentJSON(d))
	if err != nil {
		return nil, err
	}
	if len(d.Extra) == 0 {
		return base, nil
	}

	var merged map[string]json.RawMessage
	if err := json.Unmarshal(base, &merged); err != nil {
		return nil, err
	}
	for k, v := range d.Extra {
		if _, exists := merged[k]; !exists {
			merged[k] = v
		}
	}
	return json.Marshal(merged)
}

// upgradeLegacy fills defaults that schema version 1 documents left implicit
func (d *GameDocument) upgradeLegacy() {
	if d.UnlockedSlots <= 0 {
		d.UnlockedSlots = DefaultUnlockedSlots
	}
	if d.UnlockedSlots > MaxGridSize {
		d.UnlockedSlots = MaxGridSize
	}
	if d.Level <= 0 {
		d.Level = 1
	}
	if d.Subscription == "" {
		d.Subscription = SubscriptionNone
	}
	for i := range d.DailyQuests {
		q := &d.DailyQuests[i]
		q.Completed = q.CurrentAmount >= q.TargetAmount
	}
	d.SchemaVersion = CurrentSchemaVersion
}

// MillisToTime converts a stored unix-millisecond timestamp
func MillisToTime(ms int64) time.Time {
	return time.UnixMilli(ms).UTC()
}
