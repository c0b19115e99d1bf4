package game

import (
	"math"

	"go.uber.org/zap"
)

// Evaluator grades submissions against challenge definitions. It never
// fails: anything it cannot establish as correct is incorrect.
type Evaluator struct {
	log *zap.Logger
}

func NewEvaluator(log *zap.Logger) *Evaluator {
	if log == nil {
		log = zap.NewNop()
	}
	return &Evaluator{log: log}
}

// Evaluate returns whether sub is a correct answer to def.
func (e *Evaluator) Evaluate(def Definition, sub Submission) bool {
	switch def.Kind {
	case KindApproximation, KindPrecision:
		return e.evaluateApproximation(def, sub)
	case KindLateralLimits:
		return e.evaluateLateralLimits(def, sub)
	case KindLimitProperties, KindAlgebraicOperations:
		return e.evaluateLimitOperations(def, sub)
	default:
		e.log.Warn("unknown challenge type",
			zap.Uint("challenge_id", def.ID),
			zap.String("type", string(def.Kind)),
		)
		return false
	}
}

func (e *Evaluator) evaluateApproximation(def Definition, sub Submission) bool {
	submitted, ok := sub.Answer.Float()
	if !ok || def.CorrectAnswer == nil {
		return false
	}
	return withinTolerance(submitted, *def.CorrectAnswer, def.Params.ToleranceOr(DefaultApproximationTolerance))
}

// evaluateLateralLimits checks the student's judgement of whether the limit
// exists. A canonical answer of 1 means it exists, anything else that it
// does not.
func (e *Evaluator) evaluateLateralLimits(def Definition, sub Submission) bool {
	if sub.LeftLimit == nil || sub.RightLimit == nil {
		return false
	}
	equal := *sub.LeftLimit == *sub.RightLimit
	expectExists := def.CorrectAnswer != nil && *def.CorrectAnswer == 1
	return equal == expectExists
}

func (e *Evaluator) evaluateLimitOperations(def Definition, sub Submission) bool {
	if sub.LeftLimit == nil || sub.RightLimit == nil {
		e.log.Warn("limit operation submitted without both lateral values",
			zap.Uint("challenge_id", def.ID),
			zap.String("type", string(def.Kind)),
		)
		return false
	}

	submitted, ok := sub.Answer.Float()
	if !ok {
		return false
	}
	// without a canonical value the client computed the expected result
	if def.CorrectAnswer == nil {
		return true
	}
	return withinTolerance(submitted, *def.CorrectAnswer, def.Params.ToleranceOr(DefaultOperationsTolerance))
}

func withinTolerance(got, want, tolerance float64) bool {
	return math.Abs(got-want) <= tolerance
}
