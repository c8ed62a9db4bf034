package domain

import (
	"encoding/json"
	"fmt"
	"slices"
	"strings"
	"time"
)

// ObjectiveKind selects how an objective completion is validated
type ObjectiveKind string

const (
	ObjectiveCollectAssets    ObjectiveKind = "CollectAssets"
	ObjectiveWinBattles       ObjectiveKind = "WinBattles"
	ObjectiveReachLevel       ObjectiveKind = "ReachLevel"
	ObjectiveJoinTournament   ObjectiveKind = "JoinTournament"
	ObjectiveExploreTerritory ObjectiveKind = "ExploreTerritory"
)

// Valid reports whether k is a known objective kind
func (k ObjectiveKind) Valid() bool {
	switch k {
	case ObjectiveCollectAssets, ObjectiveWinBattles, ObjectiveReachLevel,
		ObjectiveJoinTournament, ObjectiveExploreTerritory:
		return true
	}
	return false
}

// MissionStatus is the state of a player's mission instance
type MissionStatus string

const (
	MissionActive    MissionStatus = "Active"
	MissionCompleted MissionStatus = "Completed"
	// MissionFailed is part of the status set but nothing assigns it.
	MissionFailed MissionStatus = "Failed"
)

// Objective is one step of a mission
type Objective struct {
	ID           uint64        `json:"id"`
	Description  string        `json:"description"`
	Kind         ObjectiveKind `json:"objective_type"`
	TargetAmount uint64        `json:"target_amount"`
}

// AssetRequirement demands an owned asset of a type at or above a rarity
type AssetRequirement struct {
	Type      AssetType `json:"asset_type"`
	MinRarity Rarity    `json:"min_rarity"`
}

// Satisfied reports whether any of the assets meets the requirement
func (r AssetRequirement) Satisfied(assets []GameAsset) bool {
	for _, a := range assets {
		if a.Type == r.Type && a.Rarity.AtLeast(r.MinRarity) {
			return true
		}
	}
	return false
}

// MissionTemplate is an immutable catalog entry
type MissionTemplate struct {
	ID             uint64             `json:"id"`
	Name           string             `json:"name"`
	Description    string             `json:"description"`
	Chapter        uint32             `json:"chapter"`
	RequiredLevel  uint32             `json:"required_level"`
	Objectives     []Objective        `json:"objectives"`
	Rewards        []Reward           `json:"-"`
	Prerequisites  []uint64           `json:"prerequisites"`
	RequiredAssets []AssetRequirement `json:"required_assets"`
}

type missionTemplateJSON struct {
	ID             uint64             `json:"id"`
	Name           string             `json:"name"`
	Description    string             `json:"description"`
	Chapter        uint32             `json:"chapter"`
	RequiredLevel  uint32             `json:"required_level"`
	Objectives     []Objective        `json:"objectives"`
	Rewards        []RewardSpec       `json:"rewards"`
	Prerequisites  []uint64           `json:"prerequisites"`
	RequiredAssets []AssetRequirement `json:"required_assets"`
}

// MarshalJSON encodes rewards through their serialized form
func (m MissionTemplate) MarshalJSON() ([]byte, error) {
	specs, err := SpecsFromRewards(m.Rewards)
	if err != nil {
		return nil, err
	}
	return json.Marshal(missionTemplateJSON{
		ID:             m.ID,
		Name:           m.Name,
		Description:    m.Description,
		Chapter:        m.Chapter,
		RequiredLevel:  m.RequiredLevel,
		Objectives:     m.Objectives,
		Rewards:        specs,
		Prerequisites:  m.Prerequisites,
		RequiredAssets: m.RequiredAssets,
	})
}

// UnmarshalJSON decodes rewards through their serialized form
func (m *MissionTemplate) UnmarshalJSON(data []byte) error {
	var raw missionTemplateJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	rewards, err := RewardsFromSpecs(raw.Rewards)
	if err != nil {
		return err
	}
	*m = MissionTemplate{
		ID:             raw.ID,
		Name:           raw.Name,
		Description:    raw.Description,
		Chapter:        raw.Chapter,
		RequiredLevel:  raw.RequiredLevel,
		Objectives:     raw.Objectives,
		Rewards:        rewards,
		Prerequisites:  raw.Prerequisites,
		RequiredAssets: raw.RequiredAssets,
	}
	return nil
}

// Objective looks up an objective by its 1-based id
func (m *MissionTemplate) Objective(id uint64) (Objective, bool) {
	if id == 0 || id > uint64(len(m.Objectives)) {
		return Objective{}, false
	}
	return m.Objectives[id-1], true
}

// Validate checks the structural rules a template must satisfy before it
// enters the catalog.
func (m *MissionTemplate) Validate() error {
	if m.ID == 0 {
		return fmt.Errorf("%w: id must be positive", ErrInvalidMission)
	}
	if strings.TrimSpace(m.Name) == "" {
		return fmt.Errorf("%w: name is required", ErrInvalidMission)
	}
	if len(m.Objectives) == 0 {
		return fmt.Errorf("%w: at least one objective is required", ErrInvalidMission)
	}
	for i, o := range m.Objectives {
		if o.ID != uint64(i+1) {
			return fmt.Errorf("%w: objective %d has id %d, ids must be 1..n in order", ErrInvalidMission, i+1, o.ID)
		}
		if !o.Kind.Valid() {
			return fmt.Errorf("%w: %q", ErrInvalidObjectiveKind, o.Kind)
		}
	}
	if slices.Contains(m.Prerequisites, m.ID) {
		return fmt.Errorf("%w: mission cannot require itself", ErrInvalidMission)
	}
	for _, req := range m.RequiredAssets {
		if !req.Type.Valid() {
			return fmt.Errorf("%w: %q", ErrInvalidAssetType, req.Type)
		}
		if !req.MinRarity.Valid() {
			return fmt.Errorf("%w: %q", ErrInvalidRarity, req.MinRarity)
		}
	}
	for i, r := range m.Rewards {
		if err := ValidateReward(r); err != nil {
			return fmt.Errorf("reward %d: %w", i, err)
		}
	}
	return nil
}

// ValidateReward checks that a reward can be applied
func ValidateReward(r Reward) error {
	switch v := r.(type) {
	case ExperienceReward, PointsReward:
		return nil
	case AssetReward:
		if !v.Template.Type.Valid() || !v.Template.Rarity.Valid() || strings.TrimSpace(v.Template.Name) == "" {
			return ErrRewardMissingAsset
		}
		return nil
	case TitleReward:
		if strings.TrimSpace(v.Title) == "" {
			return ErrRewardMissingTitle
		}
		return nil
	default:
		return fmt.Errorf("%w: %T", ErrInvalidRewardKind, r)
	}
}

// PlayerMission is a player's instance of a mission
type PlayerMission struct {
	Player              string        `json:"player"`
	MissionID           uint64        `json:"mission_id"`
	Status              MissionStatus `json:"status"`
	Progress            uint32        `json:"progress"`
	CompletedObjectives []uint64      `json:"objectives_completed"`
	StartedAt           time.Time     `json:"started_at"`
	CompletedAt         *time.Time    `json:"completed_at,omitempty"`
}

// ObjectiveDone reports whether the objective id was already recorded
func (pm *PlayerMission) ObjectiveDone(id uint64) bool {
	return slices.Contains(pm.CompletedObjectives, id)
}

// Clone returns a deep copy
func (pm PlayerMission) Clone() PlayerMission {
	pm.CompletedObjectives = slices.Clone(pm.CompletedObjectives)
	if pm.CompletedAt != nil {
		t := *pm.CompletedAt
		pm.CompletedAt = &t
	}
	return pm
}
