package service

import (
	"context"
	"errors"
	"testing"

	"pygely_backend/internal/game"
	"pygely_backend/internal/model"
	"pygely_backend/internal/testutil"
	"pygely_backend/internal/util"
)

func TestStartWorld(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	student := testutil.SeedUser(t, f.db, "s@example.com", model.Student)
	testutil.SeedWorlds(t, f.db, 2)

	p, created, err := f.worlds.Start(ctx, student.ID, 1)
	if err != nil || !created {
		t.Fatalf("first Start = %v, %v", created, err)
	}
	if p.State != game.ProgressInProgress || p.StartedAt == nil {
		t.Fatalf("progress = %+v", p)
	}

	again, created, err := f.worlds.Start(ctx, student.ID, 1)
	if err != nil || created || again.ID != p.ID {
		t.Fatalf("second Start = %+v, %v, %v", again, created, err)
	}

	if _, _, err := f.worlds.Start(ctx, student.ID, 42); !errors.Is(err, util.ErrWorldNotFound) {
		t.Fatalf("unknown world err = %v", err)
	}
}

func TestWorldListCarriesProgress(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	student := testutil.SeedUser(t, f.db, "s@example.com", model.Student)
	testutil.SeedWorlds(t, f.db, 2)
	if _, _, err := f.worlds.Start(ctx, student.ID, 1); err != nil {
		t.Fatalf("Start: %v", err)
	}

	views, err := f.worlds.List(ctx, student.ID)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(views) != 2 || views[0].Order != 1 || views[1].Order != 2 {
		t.Fatalf("views = %+v", views)
	}
	if views[0].Progress.State != game.ProgressInProgress {
		t.Fatalf("world 1 progress = %+v", views[0].Progress)
	}
	if views[1].Progress.State != game.ProgressNotStarted || views[1].State != game.WorldBlocked {
		t.Fatalf("world 2 = %+v", views[1])
	}
}

func TestWorldDetail(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	testutil.SeedWorlds(t, f.db, 1)
	testutil.SeedChallenge(t, f.db, 1, game.KindApproximation, map[string]interface{}{"tolerance": 0.1}, testutil.Float(4))

	detail, err := f.worlds.Detail(ctx, 1)
	if err != nil {
		t.Fatalf("Detail: %v", err)
	}
	if detail.World.ID != 1 || len(detail.Challenges) != 1 {
		t.Fatalf("detail = %+v", detail)
	}

	if _, err := f.worlds.Detail(ctx, 7); !errors.Is(err, util.ErrWorldNotFound) {
		t.Fatalf("unknown world err = %v", err)
	}
}
