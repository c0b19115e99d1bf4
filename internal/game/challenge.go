package game

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"
)

// ChallengeKind is the grading rule a challenge is evaluated with.
type ChallengeKind string

const (
	KindApproximation       ChallengeKind = "approximation"
	KindPrecision           ChallengeKind = "precision"
	KindLateralLimits       ChallengeKind = "lateral_limits"
	KindLimitProperties     ChallengeKind = "limit_properties"
	KindAlgebraicOperations ChallengeKind = "algebraic_operations"
)

const (
	DefaultApproximationTolerance = 0.1
	DefaultOperationsTolerance    = 0.01
)

// Params holds the typed settings stored in a challenge's parameter bag.
// Unknown keys are ignored.
type Params struct {
	Tolerance       *float64 `json:"tolerance,omitempty"`
	LegacyTolerance *float64 `json:"tolerancia,omitempty"`
}

// ToleranceOr returns the configured tolerance, or def when none is set.
// A zero tolerance counts as unset.
func (p Params) ToleranceOr(def float64) float64 {
	for _, t := range []*float64{p.Tolerance, p.LegacyTolerance} {
		if t != nil && *t != 0 && !math.IsNaN(*t) {
			return *t
		}
	}
	return def
}

// ParseParams decodes a raw parameter bag. Malformed input yields empty
// params and a non-nil error the caller may log; it is never fatal.
func ParseParams(raw []byte) (Params, error) {
	var p Params
	trimmed := strings.TrimSpace(string(raw))
	if trimmed == "" || trimmed == "null" {
		return p, nil
	}
	if err := json.Unmarshal([]byte(trimmed), &p); err != nil {
		return Params{}, err
	}
	return p, nil
}

// Definition is the read-only view of a challenge the evaluator needs.
type Definition struct {
	ID            uint
	WorldID       uint
	Kind          ChallengeKind
	Params        Params
	CorrectAnswer *float64
}

// Answer is a submitted value kept exactly as the client sent it, so that
// both JSON numbers and strings are accepted.
type Answer string

func (a *Answer) UnmarshalJSON(b []byte) error {
	s := strings.TrimSpace(string(b))
	if s == "null" {
		*a = ""
		return nil
	}
	if strings.HasPrefix(s, `"`) {
		var str string
		if err := json.Unmarshal(b, &str); err != nil {
			return err
		}
		*a = Answer(str)
		return nil
	}
	*a = Answer(s)
	return nil
}

// Float parses the answer as a finite number.
func (a Answer) Float() (float64, bool) {
	s := strings.TrimSpace(string(a))
	if s == "" {
		return 0, false
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return f, true
}

// Submission is what a student sends for one challenge.
type Submission struct {
	Answer           Answer
	LeftLimit        *float64
	RightLimit       *float64
	DistanceToTarget *float64
	ResponseTime     float64
}
