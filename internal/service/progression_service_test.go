package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"pygely_backend/internal/game"
	"pygely_backend/internal/model"
	"pygely_backend/internal/testutil"
	"pygely_backend/internal/util"
	"pygely_backend/pkg/events"

	"gorm.io/gorm"
)

func answer(v string, rt float64) game.Submission {
	return game.Submission{Answer: game.Answer(v), ResponseTime: rt}
}

func TestRegisterAttemptCorrectCompletesWorld(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	student := testutil.SeedUser(t, f.db, "s@example.com", model.Student)
	testutil.SeedWorlds(t, f.db, 8)
	ch := testutil.SeedChallenge(t, f.db, 1, game.KindApproximation, map[string]interface{}{"tolerance": 0.1}, testutil.Float(4))

	res, err := f.progression.RegisterAttempt(ctx, student.ID, AttemptInput{ChallengeID: ch.ID, Submission: answer("4.0", 12.5)})
	if err != nil {
		t.Fatalf("RegisterAttempt: %v", err)
	}
	if !res.Success || !res.Correct || !res.WorldCompleted {
		t.Fatalf("result = %+v", res)
	}
	if res.CompletedWorldID == nil || *res.CompletedWorldID != 1 {
		t.Fatalf("completedWorldId = %v", res.CompletedWorldID)
	}
	if res.NextUnlockedWorldID == nil || *res.NextUnlockedWorldID != 2 {
		t.Fatalf("nextUnlockedWorldId = %v", res.NextUnlockedWorldID)
	}
	if res.BadgeEarned == nil || res.PointsEarned != 100 {
		t.Fatalf("rewards in result = %+v", res)
	}

	var p model.Progress
	if err := f.db.Where("student_id = ? AND world_id = ?", student.ID, 1).First(&p).Error; err != nil {
		t.Fatalf("load progress: %v", err)
	}
	if p.State != game.ProgressCompleted || p.Percentage != 100 || p.Attempts != 1 || p.TotalTime != 12.5 {
		t.Fatalf("progress = %+v", p)
	}
	if p.StartedAt == nil || p.CompletedAt == nil {
		t.Fatal("timestamps not set on created progress")
	}

	summary, err := f.gamification.Summary(ctx, student.ID)
	if err != nil {
		t.Fatalf("Summary: %v", err)
	}
	if summary.Points != 100 || summary.TotalBadges != 1 {
		t.Fatalf("summary = %+v", summary)
	}

	evts := f.events.Events()
	if len(evts) != 2 || evts[0].Type != events.WorldCompleted || evts[1].Type != events.BadgeGranted {
		t.Fatalf("events = %+v", evts)
	}
}

func TestRegisterAttemptIncorrectOnlyLogsAttempt(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	student := testutil.SeedUser(t, f.db, "s@example.com", model.Student)
	testutil.SeedWorlds(t, f.db, 2)
	ch := testutil.SeedChallenge(t, f.db, 1, game.KindApproximation, nil, testutil.Float(4))

	res, err := f.progression.RegisterAttempt(ctx, student.ID, AttemptInput{ChallengeID: ch.ID, Submission: answer("5", 3)})
	if err != nil {
		t.Fatalf("RegisterAttempt: %v", err)
	}
	if !res.Success || res.Correct || res.WorldCompleted || res.AttemptID == 0 {
		t.Fatalf("result = %+v", res)
	}
	if res.CompletedWorldID != nil || res.NextUnlockedWorldID != nil {
		t.Fatalf("unlock info on incorrect attempt: %+v", res)
	}

	var attempts, progress, rewards int64
	f.db.Model(&model.Attempt{}).Count(&attempts)
	f.db.Model(&model.Progress{}).Count(&progress)
	f.db.Model(&model.Reward{}).Count(&rewards)
	if attempts != 1 || progress != 0 || rewards != 0 {
		t.Fatalf("rows = %d attempts, %d progress, %d rewards", attempts, progress, rewards)
	}
	if len(f.events.Events()) != 0 {
		t.Fatal("events published for an incorrect attempt")
	}
}

func TestRegisterAttemptUnknownChallenge(t *testing.T) {
	f := newFixture(t)
	student := testutil.SeedUser(t, f.db, "s@example.com", model.Student)

	_, err := f.progression.RegisterAttempt(context.Background(), student.ID, AttemptInput{ChallengeID: 999, Submission: answer("1", 1)})
	if !errors.Is(err, util.ErrChallengeNotFound) {
		t.Fatalf("err = %v, want ErrChallengeNotFound", err)
	}
}

func TestRegisterAttemptUpdatesStartedWorld(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	student := testutil.SeedUser(t, f.db, "s@example.com", model.Student)
	testutil.SeedWorlds(t, f.db, 3)
	ch := testutil.SeedChallenge(t, f.db, 2, game.KindLateralLimits, nil, testutil.Float(1))

	started, created, err := f.worlds.Start(ctx, student.ID, 2)
	if err != nil || !created {
		t.Fatalf("Start = %v, %v", created, err)
	}

	sub := game.Submission{LeftLimit: testutil.Float(1), RightLimit: testutil.Float(1), ResponseTime: 4}
	res, err := f.progression.RegisterAttempt(ctx, student.ID, AttemptInput{ChallengeID: ch.ID, Submission: sub})
	if err != nil || !res.Correct {
		t.Fatalf("RegisterAttempt = %+v, %v", res, err)
	}

	var p model.Progress
	f.db.First(&p, started.ID)
	if p.State != game.ProgressCompleted || p.Attempts != 1 || p.TotalTime != 4 {
		t.Fatalf("progress = %+v", p)
	}
	var count int64
	f.db.Model(&model.Progress{}).Count(&count)
	if count != 1 {
		t.Fatalf("progress rows = %d, want 1", count)
	}
}

// Without an idempotency key a repeated correct answer is a new attempt:
// attempts and time grow and another points reward is appended. The badge
// is only granted once.
func TestRegisterAttemptResubmissionIsNotIdempotent(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	student := testutil.SeedUser(t, f.db, "s@example.com", model.Student)
	testutil.SeedWorlds(t, f.db, 8)
	ch := testutil.SeedChallenge(t, f.db, 8, game.KindApproximation, nil, testutil.Float(4))

	var last *AttemptResult
	for i := 0; i < 2; i++ {
		res, err := f.progression.RegisterAttempt(ctx, student.ID, AttemptInput{ChallengeID: ch.ID, Submission: answer("4", 10)})
		if err != nil || !res.Correct {
			t.Fatalf("attempt %d = %+v, %v", i+1, res, err)
		}
		last = res
	}
	if last.NextUnlockedWorldID != nil {
		t.Fatalf("world 8 unlocked %d", *last.NextUnlockedWorldID)
	}
	if last.BadgeEarned != nil {
		t.Fatal("badge granted twice")
	}

	var p model.Progress
	f.db.Where("student_id = ? AND world_id = ?", student.ID, 8).First(&p)
	if p.Attempts != 2 || p.TotalTime != 20 {
		t.Fatalf("progress = %+v", p)
	}

	summary, err := f.gamification.Summary(ctx, student.ID)
	if err != nil {
		t.Fatalf("Summary: %v", err)
	}
	if summary.Points != 200 || summary.TotalBadges != 1 {
		t.Fatalf("summary = %+v", summary)
	}
}

func TestRegisterAttemptReplaysIdempotencyKey(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	student := testutil.SeedUser(t, f.db, "s@example.com", model.Student)
	other := testutil.SeedUser(t, f.db, "o@example.com", model.Student)
	testutil.SeedWorlds(t, f.db, 2)
	ch := testutil.SeedChallenge(t, f.db, 1, game.KindApproximation, nil, testutil.Float(4))
	ch2 := testutil.SeedChallenge(t, f.db, 2, game.KindApproximation, nil, testutil.Float(4))

	in := AttemptInput{ChallengeID: ch.ID, Submission: answer("4", 5), IdempotencyKey: "key-1"}
	first, err := f.progression.RegisterAttempt(ctx, student.ID, in)
	if err != nil {
		t.Fatalf("first: %v", err)
	}
	second, err := f.progression.RegisterAttempt(ctx, student.ID, in)
	if err != nil {
		t.Fatalf("second: %v", err)
	}
	if !second.Replayed || second.AttemptID != first.AttemptID || second.Reference != first.Reference {
		t.Fatalf("replay = %+v, first = %+v", second, first)
	}
	if second.NextUnlockedWorldID == nil || *second.NextUnlockedWorldID != 2 {
		t.Fatalf("replayed unlock = %v", second.NextUnlockedWorldID)
	}

	var attempts, rewards int64
	f.db.Model(&model.Attempt{}).Count(&attempts)
	f.db.Model(&model.Reward{}).Where("kind = ?", model.RewardPoints).Count(&rewards)
	if attempts != 1 || rewards != 1 {
		t.Fatalf("rows after replay = %d attempts, %d points rewards", attempts, rewards)
	}

	// keys are scoped per student
	if _, err := f.progression.RegisterAttempt(ctx, other.ID, in); err != nil {
		t.Fatalf("other student with same key: %v", err)
	}

	in.ChallengeID = ch2.ID
	if _, err := f.progression.RegisterAttempt(ctx, student.ID, in); !errors.Is(err, util.ErrIdempotencyKeyReused) {
		t.Fatalf("reused key err = %v", err)
	}
}

func TestWorldsUnlockAfterCompletion(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	student := testutil.SeedUser(t, f.db, "s@example.com", model.Student)
	testutil.SeedWorlds(t, f.db, 3)
	ch := testutil.SeedChallenge(t, f.db, 1, game.KindApproximation, nil, testutil.Float(4))

	states := func() map[uint]game.WorldState {
		views, err := f.worlds.List(ctx, student.ID)
		if err != nil {
			t.Fatalf("List: %v", err)
		}
		out := map[uint]game.WorldState{}
		for _, v := range views {
			out[v.ID] = v.State
		}
		return out
	}

	before := states()
	if before[1] != game.WorldActive || before[2] != game.WorldBlocked || before[3] != game.WorldBlocked {
		t.Fatalf("before = %v", before)
	}

	if _, err := f.progression.RegisterAttempt(ctx, student.ID, AttemptInput{ChallengeID: ch.ID, Submission: answer("4", 1)}); err != nil {
		t.Fatalf("RegisterAttempt: %v", err)
	}

	after := states()
	if after[2] != game.WorldActive || after[3] != game.WorldBlocked {
		t.Fatalf("after = %v", after)
	}
}

// insertProgressFirst makes the next progress insert lose a race: a row for
// the same (student, world) is written inside the transaction just before it.
func insertProgressFirst(t *testing.T, db *gorm.DB, studentID, worldID uint) *int {
	t.Helper()
	fired := new(int)
	err := db.Callback().Create().Before("gorm:create").Register("test:progress_race", func(tx *gorm.DB) {
		if *fired > 0 || tx.Statement.Schema == nil || tx.Statement.Schema.Table != "progress" {
			return
		}
		*fired++
		now := time.Now()
		tx.Session(&gorm.Session{NewDB: true}).Exec(
			"INSERT INTO progress (created_at, updated_at, student_id, world_id, state, percentage, attempts, total_time) VALUES (?, ?, ?, ?, ?, ?, ?, ?)",
			now, now, studentID, worldID, game.ProgressInProgress, 0, 0, 0)
	})
	if err != nil {
		t.Fatalf("register callback: %v", err)
	}
	t.Cleanup(func() { db.Callback().Create().Remove("test:progress_race") })
	return fired
}

func TestRegisterAttemptRetriesLostProgressRace(t *testing.T) {
	for _, key := range []string{"", "race-key"} {
		name := "without key"
		if key != "" {
			name = "with key"
		}
		t.Run(name, func(t *testing.T) {
			f := newFixture(t)
			ctx := context.Background()
			student := testutil.SeedUser(t, f.db, "race@example.com", model.Student)
			testutil.SeedWorlds(t, f.db, 2)
			ch := testutil.SeedChallenge(t, f.db, 1, game.KindApproximation, map[string]interface{}{"tolerance": 0.1}, testutil.Float(4))
			fired := insertProgressFirst(t, f.db, student.ID, 1)

			res, err := f.progression.RegisterAttempt(ctx, student.ID, AttemptInput{
				ChallengeID:    ch.ID,
				Submission:     answer("4", 5),
				IdempotencyKey: key,
			})
			if err != nil {
				t.Fatalf("RegisterAttempt: %v", err)
			}
			if *fired != 1 {
				t.Fatalf("conflicting insert ran %d times, want 1", *fired)
			}
			if !res.Correct || !res.WorldCompleted || res.Replayed {
				t.Fatalf("result = %+v", res)
			}

			var attempts, progress int64
			f.db.Model(&model.Attempt{}).Where("student_id = ?", student.ID).Count(&attempts)
			f.db.Model(&model.Progress{}).Where("student_id = ? AND world_id = ?", student.ID, 1).Count(&progress)
			if attempts != 1 || progress != 1 {
				t.Fatalf("attempts = %d, progress rows = %d, want 1 and 1", attempts, progress)
			}

			if key == "" {
				return
			}
			again, err := f.progression.RegisterAttempt(ctx, student.ID, AttemptInput{
				ChallengeID:    ch.ID,
				Submission:     answer("4", 5),
				IdempotencyKey: key,
			})
			if err != nil || !again.Replayed || again.AttemptID != res.AttemptID {
				t.Fatalf("replay = %+v, %v", again, err)
			}
		})
	}
}
