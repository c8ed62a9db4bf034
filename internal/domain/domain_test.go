package domain

import (
	"encoding/json"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestErrorCategories(t *testing.T) {
	t.Run("precondition errors match only the precondition root", func(t *testing.T) {
		err := fmt.Errorf("%w: battle 7", ErrNotYourTurn)
		assert.ErrorIs(t, err, ErrNotYourTurn)
		assert.ErrorIs(t, err, ErrPrecondition)
		assert.NotErrorIs(t, err, ErrNotFound)
		assert.NotErrorIs(t, err, ErrDataIntegrity)
	})

	t.Run("not found errors are also preconditions", func(t *testing.T) {
		err := fmt.Errorf("%w: 42", ErrBattleNotFound)
		assert.ErrorIs(t, err, ErrNotFound)
		assert.ErrorIs(t, err, ErrPrecondition)
		assert.False(t, errors.Is(err, ErrMissionNotFound))
	})

	t.Run("integrity errors are not preconditions", func(t *testing.T) {
		assert.ErrorIs(t, ErrRewardMissingAsset, ErrDataIntegrity)
		assert.NotErrorIs(t, ErrRewardMissingAsset, ErrPrecondition)
	})
}

func TestRarityOrder(t *testing.T) {
	assert.True(t, RarityLegendary.AtLeast(RarityEpic))
	assert.True(t, RarityRare.AtLeast(RarityRare))
	assert.False(t, RarityCommon.AtLeast(RarityRare))
	assert.True(t, RarityEpic.AtLeast(RarityCommon))
}

func TestParseEnums(t *testing.T) {
	at, err := ParseAssetType("weapon")
	require.NoError(t, err)
	assert.Equal(t, AssetWeapon, at)

	r, err := ParseRarity("LEGENDARY")
	require.NoError(t, err)
	assert.Equal(t, RarityLegendary, r)

	mk, err := ParseMoveKind(" combo ")
	require.NoError(t, err)
	assert.Equal(t, MoveCombo, mk)

	_, err = ParseRarity("mythic")
	assert.ErrorIs(t, err, ErrInvalidRarity)

	_, err = ParseBattleKind("arena")
	assert.ErrorIs(t, err, ErrPrecondition)
}

func TestRewardSpec_ToReward(t *testing.T) {
	tests := []struct {
		name    string
		spec    RewardSpec
		want    Reward
		wantErr error
	}{
		{"experience", RewardSpec{Kind: RewardExperience, Amount: 200}, ExperienceReward{Amount: 200}, nil},
		{"points", RewardSpec{Kind: RewardPoints, Amount: 5}, PointsReward{Amount: 5}, nil},
		{"title", RewardSpec{Kind: RewardTitle, Title: "Rookie Engineer"}, TitleReward{Title: "Rookie Engineer"}, nil},
		{"asset without template", RewardSpec{Kind: RewardAsset}, nil, ErrRewardMissingAsset},
		{"title without name", RewardSpec{Kind: RewardTitle}, nil, ErrRewardMissingTitle},
		{"unknown kind", RewardSpec{Kind: "Gold"}, nil, ErrInvalidRewardKind},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.spec.ToReward()
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.ErrorIs(t, err, ErrDataIntegrity)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestMissionTemplate_JSON(t *testing.T) {
	raw := `{
		"id": 1,
		"name": "Training Academy",
		"chapter": 1,
		"required_level": 1,
		"objectives": [{"id": 1, "objective_type": "ReachLevel", "target_amount": 2}],
		"rewards": [
			{"reward_type": "Experience", "amount": 200},
			{"reward_type": "Asset", "asset_template": {"asset_type": "Weapon", "rarity": "Rare", "name": "Training Blade"}}
		]
	}`

	var m MissionTemplate
	require.NoError(t, json.Unmarshal([]byte(raw), &m))
	require.Len(t, m.Rewards, 2)
	assert.Equal(t, ExperienceReward{Amount: 200}, m.Rewards[0])
	assert.Equal(t, RewardAsset, m.Rewards[1].Kind())
	require.NoError(t, m.Validate())

	bad := `{"id": 2, "name": "x", "objectives": [], "rewards": [{"reward_type": "Asset"}]}`
	err := json.Unmarshal([]byte(bad), &m)
	assert.ErrorIs(t, err, ErrDataIntegrity)
}

func TestMissionTemplate_Validate(t *testing.T) {
	base := func() MissionTemplate {
		return MissionTemplate{
			ID:   3,
			Name: "Scout",
			Objectives: []Objective{
				{ID: 1, Kind: ObjectiveWinBattles, TargetAmount: 1},
				{ID: 2, Kind: ObjectiveReachLevel, TargetAmount: 2},
			},
		}
	}

	m := base()
	assert.NoError(t, m.Validate())

	m = base()
	m.Objectives[1].ID = 5
	assert.ErrorIs(t, m.Validate(), ErrInvalidMission)

	m = base()
	m.Objectives = nil
	assert.ErrorIs(t, m.Validate(), ErrInvalidMission)

	m = base()
	m.Prerequisites = []uint64{3}
	assert.ErrorIs(t, m.Validate(), ErrInvalidMission)

	m = base()
	m.Rewards = []Reward{AssetReward{}}
	assert.ErrorIs(t, m.Validate(), ErrDataIntegrity)
}

func TestMissionTemplate_Objective(t *testing.T) {
	m := MissionTemplate{Objectives: []Objective{{ID: 1}, {ID: 2}}}

	o, ok := m.Objective(2)
	assert.True(t, ok)
	assert.Equal(t, uint64(2), o.ID)

	_, ok = m.Objective(0)
	assert.False(t, ok)
	_, ok = m.Objective(3)
	assert.False(t, ok)
}

func TestBattle_TurnOwnership(t *testing.T) {
	b := Battle{
		Attacker:       "erd1attacker",
		Defender:       "erd1defender",
		AttackerAssets: []uint64{1},
		DefenderAssets: []uint64{2},
		Turn:           FirstBattleTurn,
	}

	assert.Equal(t, "erd1attacker", b.PlayerToMove())
	assert.Equal(t, []uint64{1}, b.AssetsToMove())

	b.Turn = 2
	assert.Equal(t, "erd1defender", b.PlayerToMove())
	assert.Equal(t, []uint64{2}, b.AssetsToMove())

	assert.False(t, b.ShouldResolve())
	b.Turn = MaxBattleTurns + 1
	assert.True(t, b.ShouldResolve())
}

func TestAssetRequirement_Satisfied(t *testing.T) {
	req := AssetRequirement{Type: AssetWeapon, MinRarity: RarityRare}

	assert.False(t, req.Satisfied([]GameAsset{{Type: AssetWeapon, Rarity: RarityCommon}}))
	assert.False(t, req.Satisfied([]GameAsset{{Type: AssetSkin, Rarity: RarityLegendary}}))
	assert.True(t, req.Satisfied([]GameAsset{
		{Type: AssetSkin, Rarity: RarityLegendary},
		{Type: AssetWeapon, Rarity: RarityEpic},
	}))
}
