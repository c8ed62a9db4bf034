package memory

import (
	"cmp"
	"context"
	"fmt"
	"slices"

	"github.com/osse101/stardust-engine/internal/domain"
)

// view reads committed state overlaid with pending writes. Writes require a
// pending state and are only reachable through a Tx.
type view struct {
	base    *state
	pending *state
}

func (v *view) pendingMap() *state {
	if v.pending == nil {
		return &state{}
	}
	return v.pending
}

func (v *view) GetPlayer(_ context.Context, address string) (*domain.Player, error) {
	p, ok := lookup(v.base.players, v.pendingMap().players, address)
	if !ok {
		return nil, fmt.Errorf("%w: %s", domain.ErrPlayerNotFound, address)
	}
	out := p.Clone()
	return &out, nil
}

func (v *view) CreatePlayer(_ context.Context, player domain.Player) error {
	if _, ok := lookup(v.base.players, v.pending.players, player.Address); ok {
		return fmt.Errorf("%w: %s", domain.ErrAlreadyRegistered, player.Address)
	}
	v.pending.players[player.Address] = player.Clone()
	return nil
}

func (v *view) UpdatePlayer(_ context.Context, player domain.Player) error {
	if _, ok := lookup(v.base.players, v.pending.players, player.Address); !ok {
		return fmt.Errorf("%w: %s", domain.ErrPlayerNotFound, player.Address)
	}
	v.pending.players[player.Address] = player.Clone()
	return nil
}

func (v *view) GetAsset(_ context.Context, id uint64) (*domain.GameAsset, error) {
	a, ok := lookup(v.base.assets, v.pendingMap().assets, id)
	if !ok {
		return nil, fmt.Errorf("%w: %d", domain.ErrAssetNotFound, id)
	}
	return &a, nil
}

func (v *view) ListAssetsByOwner(_ context.Context, owner string) ([]domain.GameAsset, error) {
	var out []domain.GameAsset
	for _, a := range merged(v.base.assets, v.pendingMap().assets) {
		if a.Owner == owner {
			out = append(out, a)
		}
	}
	return out, nil
}

func (v *view) CreateAsset(_ context.Context, asset domain.GameAsset) (*domain.GameAsset, error) {
	v.pending.lastAssetID++
	asset.ID = v.pending.lastAssetID
	v.pending.assets[asset.ID] = asset
	return &asset, nil
}

func (v *view) UpdateAsset(_ context.Context, asset domain.GameAsset) error {
	if _, ok := lookup(v.base.assets, v.pending.assets, asset.ID); !ok {
		return fmt.Errorf("%w: %d", domain.ErrAssetNotFound, asset.ID)
	}
	v.pending.assets[asset.ID] = asset
	return nil
}

func (v *view) GetBattle(_ context.Context, id uint64) (*domain.Battle, error) {
	b, ok := lookup(v.base.battles, v.pendingMap().battles, id)
	if !ok {
		return nil, fmt.Errorf("%w: %d", domain.ErrBattleNotFound, id)
	}
	out := b.Clone()
	return &out, nil
}

func (v *view) ListBattleIDsByPlayer(_ context.Context, address string) ([]uint64, error) {
	var ids []uint64
	for _, b := range merged(v.base.battles, v.pendingMap().battles) {
		if b.Involves(address) {
			ids = append(ids, b.ID)
		}
	}
	return ids, nil
}

func (v *view) CreateBattle(_ context.Context, battle domain.Battle) (*domain.Battle, error) {
	v.pending.lastBattleID++
	battle.ID = v.pending.lastBattleID
	v.pending.battles[battle.ID] = battle.Clone()
	out := battle.Clone()
	return &out, nil
}

func (v *view) UpdateBattle(_ context.Context, battle domain.Battle) error {
	if _, ok := lookup(v.base.battles, v.pending.battles, battle.ID); !ok {
		return fmt.Errorf("%w: %d", domain.ErrBattleNotFound, battle.ID)
	}
	v.pending.battles[battle.ID] = battle.Clone()
	return nil
}

func (v *view) GetMissionTemplate(_ context.Context, id uint64) (*domain.MissionTemplate, error) {
	m, ok := lookup(v.base.missions, v.pendingMap().missions, id)
	if !ok {
		return nil, fmt.Errorf("%w: %d", domain.ErrMissionNotFound, id)
	}
	out := cloneMission(m)
	return &out, nil
}

func (v *view) ListMissionTemplates(_ context.Context) ([]domain.MissionTemplate, error) {
	all := merged(v.base.missions, v.pendingMap().missions)
	for i := range all {
		all[i] = cloneMission(all[i])
	}
	return all, nil
}

func (v *view) CreateMissionTemplate(_ context.Context, mission domain.MissionTemplate) error {
	if _, ok := lookup(v.base.missions, v.pending.missions, mission.ID); ok {
		return fmt.Errorf("%w: %d", domain.ErrMissionExists, mission.ID)
	}
	v.pending.missions[mission.ID] = cloneMission(mission)
	return nil
}

func (v *view) GetPlayerMission(_ context.Context, player string, missionID uint64) (*domain.PlayerMission, error) {
	pm, ok := lookup(v.base.playerMissions, v.pendingMap().playerMissions, missionKey{player, missionID})
	if !ok {
		return nil, fmt.Errorf("%w: %s/%d", domain.ErrPlayerMissionNotFound, player, missionID)
	}
	out := pm.Clone()
	return &out, nil
}

func (v *view) SavePlayerMission(_ context.Context, mission domain.PlayerMission) error {
	v.pending.playerMissions[missionKey{mission.Player, mission.MissionID}] = mission.Clone()
	return nil
}

func (v *view) ListPlayerMissions(_ context.Context, player string, status domain.MissionStatus) ([]domain.PlayerMission, error) {
	pending := v.pendingMap().playerMissions
	var out []domain.PlayerMission
	collect := func(k missionKey, pm domain.PlayerMission) {
		if k.player == player && pm.Status == status {
			out = append(out, pm.Clone())
		}
	}
	for k, pm := range v.base.playerMissions {
		if _, overridden := pending[k]; !overridden {
			collect(k, pm)
		}
	}
	for k, pm := range pending {
		collect(k, pm)
	}
	slices.SortFunc(out, func(a, b domain.PlayerMission) int {
		return cmp.Compare(a.MissionID, b.MissionID)
	})
	return out, nil
}

func (v *view) ListCompletedMissionIDs(_ context.Context, player string) ([]uint64, error) {
	ids, _ := lookup(v.base.completed, v.pendingMap().completed, player)
	return slices.Clone(ids), nil
}

func (v *view) AddCompletedMission(_ context.Context, player string, missionID uint64) error {
	ids, _ := lookup(v.base.completed, v.pending.completed, player)
	if slices.Contains(ids, missionID) {
		return nil
	}
	v.pending.completed[player] = append(slices.Clone(ids), missionID)
	return nil
}

func (v *view) GetPlatformStats(_ context.Context) (domain.PlatformStats, error) {
	p := v.pendingMap()
	return domain.PlatformStats{
		TotalPlayers:  countMerged(v.base.players, p.players),
		TotalAssets:   countMerged(v.base.assets, p.assets),
		TotalBattles:  countMerged(v.base.battles, p.battles),
		TotalMissions: countMerged(v.base.missions, p.missions),
	}, nil
}

func countMerged[K comparable, V any](base, pending map[K]V) int64 {
	n := int64(len(base))
	for k := range pending {
		if _, ok := base[k]; !ok {
			n++
		}
	}
	return n
}
