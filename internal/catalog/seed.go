package catalog

import (
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"sync"

	"github.com/osse101/stardust-engine/internal/domain"
	"github.com/osse101/stardust-engine/internal/validation"
)

//go:embed mission_catalog.schema.json
var catalogSchema []byte

var (
	schemaOnce      sync.Once
	schemaValidator validation.SchemaValidator
	schemaErr       error
)

func catalogValidator() (validation.SchemaValidator, error) {
	schemaOnce.Do(func() {
		schemaValidator, schemaErr = validation.NewSchemaValidator("mission_catalog.schema.json", catalogSchema)
	})
	return schemaValidator, schemaErr
}

// File is the on-disk catalog format
type File struct {
	Missions []domain.MissionTemplate `json:"missions"`
}

// LoadFile reads mission templates from a JSON catalog file, checking it
// against the catalog schema first. A missing file yields the built-in
// chapter 1 missions.
func LoadFile(path string) ([]domain.MissionTemplate, error) {
	if path == "" {
		return DefaultMissions(), nil
	}
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return DefaultMissions(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read mission catalog: %w", err)
	}

	v, err := catalogValidator()
	if err != nil {
		return nil, err
	}
	if err := v.ValidateBytes(data); err != nil {
		return nil, fmt.Errorf("invalid mission catalog %s: %w", path, err)
	}

	var f File
	if err := json.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("failed to parse mission catalog %s: %w", path, err)
	}
	return f.Missions, nil
}

// DefaultMissions returns the chapter 1 missions
func DefaultMissions() []domain.MissionTemplate {
	return []domain.MissionTemplate{
		{
			ID:            1,
			Name:          "Training Academy",
			Description:   "Complete your training as a Stardust Engineer",
			Chapter:       1,
			RequiredLevel: 1,
			Objectives: []domain.Objective{
				{ID: 1, Description: "Mint your first Common asset", Kind: domain.ObjectiveCollectAssets, TargetAmount: 1},
				{ID: 2, Description: "Win a practice battle", Kind: domain.ObjectiveWinBattles, TargetAmount: 1},
				{ID: 3, Description: "Reach Level 2", Kind: domain.ObjectiveReachLevel, TargetAmount: 2},
			},
			Rewards: []domain.Reward{
				domain.ExperienceReward{Amount: 200},
				domain.AssetReward{Template: domain.AssetTemplate{
					Type:        domain.AssetWeapon,
					Rarity:      domain.RarityRare,
					Name:        "Training Blade",
					Description: "A blade forged for new Engineers",
				}},
				domain.TitleReward{Title: "Rookie Engineer"},
			},
			Prerequisites:  []uint64{},
			RequiredAssets: []domain.AssetRequirement{},
		},
	}
}
