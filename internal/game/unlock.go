package game

// WorldState tells whether a student can enter a world.
type WorldState string

const (
	WorldActive  WorldState = "active"
	WorldBlocked WorldState = "blocked"
)

// WorldRef is the part of a world the unlock policy looks at.
type WorldRef struct {
	ID    uint
	Order int
}

// ProgressSummary is a student's own progress in a world.
type ProgressSummary struct {
	State      ProgressState `json:"state"`
	Percentage int           `json:"percentage"`
}

// Decoration is the unlock state and progress attached to one world.
type Decoration struct {
	WorldID  uint            `json:"worldId"`
	State    WorldState      `json:"state"`
	Progress ProgressSummary `json:"progress"`
}

// DecorateWorlds computes, for worlds sorted by ascending order, which are
// accessible given the student's progress keyed by world id.
//
// The first world is always active. Any other world is active only when the
// world ordered immediately before it is completed. A world whose predecessor
// order is missing from the catalogue stays active.
func DecorateWorlds(worlds []WorldRef, progress map[uint]ProgressSummary) []Decoration {
	byOrder := make(map[int]WorldRef, len(worlds))
	for _, w := range worlds {
		byOrder[w.Order] = w
	}

	out := make([]Decoration, 0, len(worlds))
	for _, w := range worlds {
		summary, ok := progress[w.ID]
		if !ok {
			summary = ProgressSummary{State: ProgressNotStarted, Percentage: 0}
		}

		state := WorldActive
		if w.Order > 1 {
			if prev, ok := byOrder[w.Order-1]; ok {
				p, started := progress[prev.ID]
				if !started || p.State != ProgressCompleted {
					state = WorldBlocked
				}
			}
		}

		out = append(out, Decoration{WorldID: w.ID, State: state, Progress: summary})
	}
	return out
}
