package game

// MaxHintLevel caps how far hints escalate.
const MaxHintLevel = 3

// Hint is a guide character's tip for a challenge.
type Hint struct {
	Level     int    `json:"level"`
	Character string `json:"character"`
	Text      string `json:"text"`
}

var limitPropertyHints = map[int]Hint{
	1: {Character: "Calcin", Text: "Remember: the limit of a sum is the sum of the limits. Work out each limit separately first."},
	2: {Character: "Professor Numix", Text: "Evaluate lim f(x) and lim g(x) at the given point, then apply the operation to those results."},
	3: {Character: "Calcin", Text: "If f(x)=x and g(x)=2x at x=2, then lim(f+g) = lim(f) + lim(g) = 2 + 4 = 6."},
}

var generalHints = map[int]Hint{
	1: {Character: "Calcin", Text: "Remember: to find the limit you have to get closer and closer to the target point."},
	2: {Character: "Professor Numix", Text: "Look at the values of f(x) on the stones next to the point. Which number are they approaching?"},
	3: {Character: "Calcin", Text: "Try moving in small steps. The limit is very close to the point you are looking for."},
}

// HintLevel derives the hint level from the number of incorrect attempts
// already made on a challenge.
func HintLevel(incorrectAttempts int64) int {
	level := int(incorrectAttempts) + 1
	if level > MaxHintLevel {
		return MaxHintLevel
	}
	if level < 1 {
		return 1
	}
	return level
}

// HintFor picks the hint for a challenge kind at a level, clamped to 1..3.
func HintFor(kind ChallengeKind, level int) Hint {
	if level < 1 {
		level = 1
	}
	if level > MaxHintLevel {
		level = MaxHintLevel
	}
	table := generalHints
	if kind == KindLimitProperties {
		table = limitPropertyHints
	}
	h := table[level]
	h.Level = level
	return h
}
