package domain

import (
	"fmt"
	"strings"
)

// RewardKind names a reward variant on the wire
type RewardKind string

const (
	RewardExperience RewardKind = "Experience"
	RewardPoints     RewardKind = "StardustPoints"
	RewardAsset      RewardKind = "Asset"
	RewardTitle      RewardKind = "Title"
)

// Reward is a closed set of grantable rewards. Only the types in this file implement it.
type Reward interface {
	Kind() RewardKind
	isReward()
}

// ExperienceReward adds player experience
type ExperienceReward struct {
	Amount uint64
}

// PointsReward adds to the point balance
type PointsReward struct {
	Amount uint64
}

// AssetReward mints a new asset from a template
type AssetReward struct {
	Template AssetTemplate
}

// TitleReward inserts a title into the player's title set
type TitleReward struct {
	Title string
}

func (ExperienceReward) Kind() RewardKind { return RewardExperience }
func (PointsReward) Kind() RewardKind     { return RewardPoints }
func (AssetReward) Kind() RewardKind      { return RewardAsset }
func (TitleReward) Kind() RewardKind      { return RewardTitle }

func (ExperienceReward) isReward() {}
func (PointsReward) isReward()     {}
func (AssetReward) isReward()      {}
func (TitleReward) isReward()      {}

// RewardSpec is the serialized form of a Reward used in catalog files,
// request bodies and storage.
type RewardSpec struct {
	Kind          RewardKind     `json:"reward_type" validate:"required"`
	Amount        uint64         `json:"amount,omitempty"`
	AssetTemplate *AssetTemplate `json:"asset_template,omitempty"`
	Title         string         `json:"title,omitempty"`
}

// ToReward resolves the serialized form into a Reward. A spec that cannot be
// resolved is a data integrity fault.
func (s RewardSpec) ToReward() (Reward, error) {
	switch s.Kind {
	case RewardExperience:
		return ExperienceReward{Amount: s.Amount}, nil
	case RewardPoints:
		return PointsReward{Amount: s.Amount}, nil
	case RewardAsset:
		if s.AssetTemplate == nil {
			return nil, ErrRewardMissingAsset
		}
		return AssetReward{Template: *s.AssetTemplate}, nil
	case RewardTitle:
		if strings.TrimSpace(s.Title) == "" {
			return nil, ErrRewardMissingTitle
		}
		return TitleReward{Title: s.Title}, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrInvalidRewardKind, s.Kind)
	}
}

// SpecFromReward converts a Reward into its serialized form
func SpecFromReward(r Reward) (RewardSpec, error) {
	switch v := r.(type) {
	case ExperienceReward:
		return RewardSpec{Kind: RewardExperience, Amount: v.Amount}, nil
	case PointsReward:
		return RewardSpec{Kind: RewardPoints, Amount: v.Amount}, nil
	case AssetReward:
		tmpl := v.Template
		return RewardSpec{Kind: RewardAsset, AssetTemplate: &tmpl}, nil
	case TitleReward:
		return RewardSpec{Kind: RewardTitle, Title: v.Title}, nil
	default:
		return RewardSpec{}, fmt.Errorf("%w: %T", ErrInvalidRewardKind, r)
	}
}

// RewardsFromSpecs resolves a list of specs, failing on the first bad entry
func RewardsFromSpecs(specs []RewardSpec) ([]Reward, error) {
	rewards := make([]Reward, 0, len(specs))
	for i, s := range specs {
		r, err := s.ToReward()
		if err != nil {
			return nil, fmt.Errorf("reward %d: %w", i, err)
		}
		rewards = append(rewards, r)
	}
	return rewards, nil
}

// SpecsFromRewards serializes a list of rewards
func SpecsFromRewards(rewards []Reward) ([]RewardSpec, error) {
	specs := make([]RewardSpec, 0, len(rewards))
	for i, r := range rewards {
		s, err := SpecFromReward(r)
		if err != nil {
			return nil, fmt.Errorf("reward %d: %w", i, err)
		}
		specs = append(specs, s)
	}
	return specs, nil
}
