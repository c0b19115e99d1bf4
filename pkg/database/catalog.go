package database

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"pygely_backend/internal/game"
	"pygely_backend/internal/model"
	"pygely_backend/pkg/logger"

	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

//go:embed catalog.yaml
var defaultCatalog []byte

type Catalog struct {
	Worlds   []CatalogWorld    `yaml:"worlds"`
	Practice []CatalogExercise `yaml:"practice"`
}

type CatalogWorld struct {
	Order       int                `yaml:"order"`
	Name        string             `yaml:"name"`
	Description string             `yaml:"description"`
	Challenges  []CatalogChallenge `yaml:"challenges"`
}

type CatalogChallenge struct {
	Name          string                 `yaml:"name"`
	Type          game.ChallengeKind     `yaml:"type"`
	Parameters    map[string]interface{} `yaml:"parameters"`
	CorrectAnswer *float64               `yaml:"correct_answer"`
}

type CatalogExercise struct {
	Topic      game.PracticeTopic `yaml:"topic"`
	Level      game.PracticeLevel `yaml:"level"`
	Expression string             `yaml:"expression"`
	Solution   string             `yaml:"solution"`
	Steps      []string           `yaml:"steps"`
}

func ParseCatalog(data []byte) (*Catalog, error) {
	var c Catalog
	if err := yaml.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("parse catalog: %w", err)
	}
	for _, w := range c.Worlds {
		if w.Order < 1 {
			return nil, fmt.Errorf("world %q: order must be positive", w.Name)
		}
	}
	for _, e := range c.Practice {
		if !game.ValidTopic(string(e.Topic)) || !game.ValidLevel(string(e.Level)) {
			return nil, fmt.Errorf("practice exercise %q: invalid topic or level", e.Expression)
		}
	}
	return &c, nil
}

func DefaultCatalog() (*Catalog, error) {
	return ParseCatalog(defaultCatalog)
}

func LoadCatalogFile(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return ParseCatalog(data)
}

// SeedCatalog inserts worlds, their challenges and the practice bank. Worlds
// are matched by order; a world that already has challenges is left alone,
// and the practice bank is only filled when empty.
func SeedCatalog(db *gorm.DB, c *Catalog) error {
	return db.Transaction(func(tx *gorm.DB) error {
		for _, cw := range c.Worlds {
			world := model.World{Name: cw.Name, Description: cw.Description, Order: cw.Order}
			if err := tx.Where("order_index = ?", cw.Order).FirstOrCreate(&world).Error; err != nil {
				return fmt.Errorf("seed world %d: %w", cw.Order, err)
			}

			var existing int64
			if err := tx.Model(&model.Challenge{}).Where("world_id = ?", world.ID).Count(&existing).Error; err != nil {
				return err
			}
			if existing > 0 {
				continue
			}

			for _, cc := range cw.Challenges {
				if cc.Parameters == nil {
					cc.Parameters = map[string]interface{}{}
				}
				params, err := json.Marshal(cc.Parameters)
				if err != nil {
					return fmt.Errorf("encode parameters for %q: %w", cc.Name, err)
				}
				challenge := model.Challenge{
					WorldID:       world.ID,
					Name:          cc.Name,
					Kind:          cc.Type,
					Parameters:    datatypes.JSON(params),
					CorrectAnswer: cc.CorrectAnswer,
				}
				if err := tx.Create(&challenge).Error; err != nil {
					return fmt.Errorf("seed challenge %q: %w", cc.Name, err)
				}
			}
		}

		var practiceCount int64
		if err := tx.Model(&model.PracticeExercise{}).Count(&practiceCount).Error; err != nil {
			return err
		}
		if practiceCount == 0 && len(c.Practice) > 0 {
			exercises := make([]model.PracticeExercise, 0, len(c.Practice))
			for _, e := range c.Practice {
				exercises = append(exercises, model.PracticeExercise{
					Topic:      e.Topic,
					Level:      e.Level,
					Expression: e.Expression,
					Solution:   e.Solution,
					StepsText:  strings.Join(e.Steps, "\n"),
				})
			}
			if err := tx.Create(&exercises).Error; err != nil {
				return fmt.Errorf("seed practice bank: %w", err)
			}
		}

		logger.Log.Info("Catalog seeded",
			zap.Int("worlds", len(c.Worlds)),
			zap.Int("practice", len(c.Practice)))
		return nil
	})
}

