package game

import "fmt"

// ProgressState is the lifecycle of a student's progress in one world.
type ProgressState string

const (
	ProgressNotStarted ProgressState = "not_started"
	ProgressInProgress ProgressState = "in_progress"
	ProgressCompleted  ProgressState = "completed"
)

const (
	// LastWorldID is the highest world id that unlocks a successor.
	LastWorldID uint = 8
	// CompletionPoints is granted on every correct attempt.
	CompletionPoints = 100
	// CompletionPercentage marks a completed world.
	CompletionPercentage = 100
)

// Badge is granted the first time a student completes a world.
type Badge struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

var worldBadges = map[uint]Badge{
	1: {Name: "Valley Explorer", Description: "Completed World 1: Valley of the Limit"},
	2: {Name: "Lateral Master", Description: "Completed World 2: Convergence Gorge"},
	3: {Name: "Mathematical Alchemist", Description: "Completed World 3: Alchemy Workshop"},
	4: {Name: "Discontinuity Hunter", Description: "Completed World 4: Broken Bridge"},
	5: {Name: "Asymptote Master", Description: "Completed World 5: Infinite Tower"},
	6: {Name: "Abyss Explorer", Description: "Completed World 6: Indeterminate Abyss"},
	7: {Name: "Lord of Continuity", Description: "Completed World 7: Castle of Continuity"},
	8: {Name: "Grand Master of Limits", Description: "Completed World 8: Temple of the Theorem"},
}

// BadgeForWorld looks up the badge for a completed world.
func BadgeForWorld(worldID uint) (Badge, bool) {
	b, ok := worldBadges[worldID]
	return b, ok
}

// BadgeKey identifies a world badge so it is granted once per student.
func BadgeKey(worldID uint) string {
	return fmt.Sprintf("world:%d", worldID)
}

// NextUnlockedWorld returns the world unlocked by completing worldID, or nil
// after the last world.
func NextUnlockedWorld(worldID uint) *uint {
	next := worldID + 1
	if next > LastWorldID {
		return nil
	}
	return &next
}

// CompletionMessage describes the points reward for a world.
func CompletionMessage(worldID uint) string {
	return fmt.Sprintf("You completed World %d", worldID)
}
