package game

import (
	"sort"
	"strings"
)

// PracticeTopic is a free algebra practice track.
type PracticeTopic string

const (
	TopicFactoring       PracticeTopic = "factoring"
	TopicRationalization PracticeTopic = "rationalization"
)

// PracticeLevel is the difficulty of a practice exercise.
type PracticeLevel string

const (
	LevelBasic        PracticeLevel = "basic"
	LevelIntermediate PracticeLevel = "intermediate"
	LevelAdvanced     PracticeLevel = "advanced"
)

var practicePoints = map[PracticeLevel]int{
	LevelBasic:        10,
	LevelIntermediate: 20,
	LevelAdvanced:     30,
}

func ValidTopic(t string) bool {
	switch PracticeTopic(t) {
	case TopicFactoring, TopicRationalization:
		return true
	}
	return false
}

func ValidLevel(l string) bool {
	_, ok := practicePoints[PracticeLevel(l)]
	return ok
}

// PracticePoints is what a correct answer at level earns.
func PracticePoints(level PracticeLevel) int {
	return practicePoints[level]
}

var expressionReplacer = strings.NewReplacer(
	" ", "",
	"\t", "",
	"·", "",
	"*", "",
	"−", "-",
	"√", "sqrt",
	"[", "(",
	"]", ")",
)

// NormalizeExpression reduces an algebraic answer to a canonical spelling.
// Products of parenthesised factors are reordered so that (x-1)(x+1) and
// (x+1)(x-1) compare equal; any leading coefficient stays in front.
func NormalizeExpression(expr string) string {
	s := expressionReplacer.Replace(strings.ToLower(strings.TrimSpace(expr)))

	prefix, factors, ok := splitFactors(s)
	if !ok || len(factors) < 2 {
		return s
	}
	sort.Strings(factors)
	return prefix + strings.Join(factors, "")
}

// EquivalentAnswers compares two expressions after normalisation.
func EquivalentAnswers(answer, solution string) bool {
	a := NormalizeExpression(answer)
	return a != "" && a == NormalizeExpression(solution)
}

// splitFactors splits "k(a)(b)..." into "k" and ["(a)", "(b)"]. It reports
// false when anything other than parenthesised groups follows the prefix.
func splitFactors(s string) (string, []string, bool) {
	start := strings.IndexByte(s, '(')
	if start < 0 {
		return s, nil, false
	}
	prefix := s[:start]
	if strings.ContainsAny(prefix, "+-/") && prefix != "-" {
		return s, nil, false
	}

	var factors []string
	depth, open := 0, start
	for i := start; i < len(s); i++ {
		switch s[i] {
		case '(':
			if depth == 0 {
				open = i
			}
			depth++
		case ')':
			depth--
			if depth < 0 {
				return s, nil, false
			}
			if depth == 0 {
				factors = append(factors, s[open:i+1])
			}
		default:
			if depth == 0 {
				return s, nil, false
			}
		}
	}
	if depth != 0 {
		return s, nil, false
	}
	return prefix, factors, true
}
