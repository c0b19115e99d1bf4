package service

import (
	"context"
	"testing"

	"pygely_backend/internal/game"
	"pygely_backend/internal/model"
	"pygely_backend/internal/testutil"
)

func TestHintsEscalateWithIncorrectAttempts(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	student := testutil.SeedUser(t, f.db, "s@example.com", model.Student)
	testutil.SeedWorlds(t, f.db, 3)
	ch := testutil.SeedChallenge(t, f.db, 3, game.KindLimitProperties, map[string]interface{}{"tolerance": 0.01}, testutil.Float(6))

	wantLevels := []int{1, 2, 3, 3}
	for i, want := range wantLevels {
		hint, err := f.hints.RequestHint(ctx, student.ID, ch.ID)
		if err != nil {
			t.Fatalf("RequestHint: %v", err)
		}
		if hint.Level != want {
			t.Fatalf("hint %d level = %d, want %d", i+1, hint.Level, want)
		}
		if hint.Text != game.HintFor(game.KindLimitProperties, want).Text {
			t.Fatalf("hint %d did not use the limit property table", i+1)
		}

		sub := game.Submission{Answer: "5.5", LeftLimit: testutil.Float(2), RightLimit: testutil.Float(4)}
		if _, err := f.progression.RegisterAttempt(ctx, student.ID, AttemptInput{ChallengeID: ch.ID, Submission: sub}); err != nil {
			t.Fatalf("RegisterAttempt: %v", err)
		}
	}

	var usages int64
	f.db.Model(&model.HintUsage{}).Where("student_id = ?", student.ID).Count(&usages)
	if usages != int64(len(wantLevels)) {
		t.Fatalf("hint usages = %d", usages)
	}
}

func TestHintForUnknownChallengeUsesGeneralTable(t *testing.T) {
	f := newFixture(t)
	student := testutil.SeedUser(t, f.db, "s@example.com", model.Student)

	hint, err := f.hints.RequestHint(context.Background(), student.ID, 404)
	if err != nil {
		t.Fatalf("RequestHint: %v", err)
	}
	if hint.Level != 1 || hint.Text != game.HintFor(game.KindApproximation, 1).Text {
		t.Fatalf("hint = %+v", hint)
	}
}
