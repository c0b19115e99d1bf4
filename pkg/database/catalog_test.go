package database

import (
	"testing"

	"pygely_backend/internal/game"
	"pygely_backend/internal/model"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func TestDefaultCatalogCoversEveryBadgeWorld(t *testing.T) {
	c, err := DefaultCatalog()
	if err != nil {
		t.Fatalf("DefaultCatalog: %v", err)
	}
	if len(c.Worlds) != int(game.LastWorldID) {
		t.Fatalf("worlds = %d, want %d", len(c.Worlds), game.LastWorldID)
	}
	for i, w := range c.Worlds {
		if w.Order != i+1 {
			t.Fatalf("world %q has order %d, want %d", w.Name, w.Order, i+1)
		}
		if len(w.Challenges) == 0 {
			t.Fatalf("world %q has no challenges", w.Name)
		}
	}
}

func TestDefaultPracticeSolutionsAreSelfConsistent(t *testing.T) {
	c, err := DefaultCatalog()
	if err != nil {
		t.Fatalf("DefaultCatalog: %v", err)
	}
	seen := map[game.PracticeTopic]bool{}
	for _, e := range c.Practice {
		seen[e.Topic] = true
		if !game.EquivalentAnswers(e.Solution, e.Solution) {
			t.Fatalf("solution %q does not match itself", e.Solution)
		}
	}
	if !seen[game.TopicFactoring] || !seen[game.TopicRationalization] {
		t.Fatalf("practice bank topics = %v", seen)
	}
}

func TestParseCatalogRejectsInvalidEntries(t *testing.T) {
	tests := map[string]string{
		"non-positive order": "worlds:\n  - order: 0\n    name: Nowhere\n",
		"unknown topic":      "practice:\n  - topic: calculus\n    level: basic\n    expression: x\n    solution: x\n",
		"malformed yaml":     "worlds: [",
	}
	for name, body := range tests {
		t.Run(name, func(t *testing.T) {
			if _, err := ParseCatalog([]byte(body)); err == nil {
				t.Fatal("expected error")
			}
		})
	}
}

func TestSeedCatalogIsRepeatable(t *testing.T) {
	db, err := gorm.Open(sqlite.Open("file:seed_catalog?mode=memory&cache=shared"), &gorm.Config{TranslateError: true})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := Migrate(db); err != nil {
		t.Fatalf("Migrate: %v", err)
	}
	c, err := DefaultCatalog()
	if err != nil {
		t.Fatalf("DefaultCatalog: %v", err)
	}

	for i := 0; i < 2; i++ {
		if err := SeedCatalog(db, c); err != nil {
			t.Fatalf("SeedCatalog run %d: %v", i+1, err)
		}
	}

	var worlds, challenges, exercises int64
	db.Model(&model.World{}).Count(&worlds)
	db.Model(&model.Challenge{}).Count(&challenges)
	db.Model(&model.PracticeExercise{}).Count(&exercises)

	wantChallenges := 0
	for _, w := range c.Worlds {
		wantChallenges += len(w.Challenges)
	}
	if worlds != int64(len(c.Worlds)) || challenges != int64(wantChallenges) || exercises != int64(len(c.Practice)) {
		t.Fatalf("counts = %d worlds, %d challenges, %d exercises", worlds, challenges, exercises)
	}

	var first model.Challenge
	if err := db.Where("world_id = ?", 1).First(&first).Error; err != nil {
		t.Fatalf("load first challenge: %v", err)
	}
	def, err := first.Definition()
	if err != nil {
		t.Fatalf("Definition: %v", err)
	}
	if def.Params.ToleranceOr(0) != 0.1 || def.CorrectAnswer == nil || *def.CorrectAnswer != 4 {
		t.Fatalf("first challenge = %+v", def)
	}
}
