// Package testutil opens throwaway databases and seeds fixtures for tests.
package testutil

import (
	"encoding/json"
	"fmt"
	"strings"
	"testing"

	"pygely_backend/internal/game"
	"pygely_backend/internal/model"
	"pygely_backend/pkg/database"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/datatypes"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// DB returns a migrated in-memory SQLite database private to tb.
func DB(tb testing.TB) *gorm.DB {
	tb.Helper()

	dsn := fmt.Sprintf("file:testdb_%s?mode=memory&cache=shared", uuid.NewString())

	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger:         gormlogger.Default.LogMode(gormlogger.Silent),
		TranslateError: true,
	})
	if err != nil {
		tb.Fatalf("open sqlite: %v", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		tb.Fatalf("sql db: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)
	tb.Cleanup(func() { sqlDB.Close() })

	if err := database.Migrate(db); err != nil {
		tb.Fatalf("migrate: %v", err)
	}
	return db
}

// SeedUser stores a user whose password is "password123".
func SeedUser(tb testing.TB, db *gorm.DB, email string, role model.UserRole) *model.User {
	tb.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.MinCost)
	if err != nil {
		tb.Fatalf("hash password: %v", err)
	}
	u := &model.User{Name: strings.Split(email, "@")[0], Email: email, Password: string(hash), Role: role}
	if err := db.Create(u).Error; err != nil {
		tb.Fatalf("seed user: %v", err)
	}
	return u
}

// SeedWorlds creates worlds with ids and order indexes 1..n.
func SeedWorlds(tb testing.TB, db *gorm.DB, n int) []model.World {
	tb.Helper()

	worlds := make([]model.World, 0, n)
	for i := 1; i <= n; i++ {
		w := model.World{Name: fmt.Sprintf("World %d", i), Description: "test world", Order: i}
		w.ID = uint(i)
		if err := db.Create(&w).Error; err != nil {
			tb.Fatalf("seed world %d: %v", i, err)
		}
		worlds = append(worlds, w)
	}
	return worlds
}

func SeedChallenge(tb testing.TB, db *gorm.DB, worldID uint, kind game.ChallengeKind, params map[string]interface{}, correct *float64) *model.Challenge {
	tb.Helper()

	raw, err := json.Marshal(params)
	if err != nil {
		tb.Fatalf("encode params: %v", err)
	}
	c := &model.Challenge{
		WorldID:       worldID,
		Name:          fmt.Sprintf("%s challenge", kind),
		Kind:          kind,
		Parameters:    datatypes.JSON(raw),
		CorrectAnswer: correct,
	}
	if err := db.Create(c).Error; err != nil {
		tb.Fatalf("seed challenge: %v", err)
	}
	return c
}

func SeedExercise(tb testing.TB, db *gorm.DB, topic game.PracticeTopic, level game.PracticeLevel, expression, solution string) *model.PracticeExercise {
	tb.Helper()

	e := &model.PracticeExercise{Topic: topic, Level: level, Expression: expression, Solution: solution, StepsText: "step one\nstep two"}
	if err := db.Create(e).Error; err != nil {
		tb.Fatalf("seed exercise: %v", err)
	}
	return e
}

func Float(v float64) *float64 { return &v }
