package memory

import (
	"context"

	"github.com/osse101/stardust-engine/internal/domain"
	"github.com/osse101/stardust-engine/internal/repository"
)

func (s *Store) GetPlayer(ctx context.Context, address string) (p *domain.Player, err error) {
	err = s.read(func(v *view) error {
		p, err = v.GetPlayer(ctx, address)
		return err
	})
	return p, err
}

func (s *Store) CreatePlayer(ctx context.Context, player domain.Player) error {
	return s.write(ctx, func(tx repository.Tx) error {
		return tx.CreatePlayer(ctx, player)
	})
}

func (s *Store) UpdatePlayer(ctx context.Context, player domain.Player) error {
	return s.write(ctx, func(tx repository.Tx) error {
		return tx.UpdatePlayer(ctx, player)
	})
}

func (s *Store) GetAsset(ctx context.Context, id uint64) (a *domain.GameAsset, err error) {
	err = s.read(func(v *view) error {
		a, err = v.GetAsset(ctx, id)
		return err
	})
	return a, err
}

func (s *Store) ListAssetsByOwner(ctx context.Context, owner string) (out []domain.GameAsset, err error) {
	err = s.read(func(v *view) error {
		out, err = v.ListAssetsByOwner(ctx, owner)
		return err
	})
	return out, err
}

func (s *Store) CreateAsset(ctx context.Context, asset domain.GameAsset) (a *domain.GameAsset, err error) {
	err = s.write(ctx, func(tx repository.Tx) error {
		a, err = tx.CreateAsset(ctx, asset)
		return err
	})
	return a, err
}

func (s *Store) UpdateAsset(ctx context.Context, asset domain.GameAsset) error {
	return s.write(ctx, func(tx repository.Tx) error {
		return tx.UpdateAsset(ctx, asset)
	})
}

func (s *Store) GetBattle(ctx context.Context, id uint64) (b *domain.Battle, err error) {
	err = s.read(func(v *view) error {
		b, err = v.GetBattle(ctx, id)
		return err
	})
	return b, err
}

func (s *Store) ListBattleIDsByPlayer(ctx context.Context, address string) (ids []uint64, err error) {
	err = s.read(func(v *view) error {
		ids, err = v.ListBattleIDsByPlayer(ctx, address)
		return err
	})
	return ids, err
}

func (s *Store) CreateBattle(ctx context.Context, battle domain.Battle) (b *domain.Battle, err error) {
	err = s.write(ctx, func(tx repository.Tx) error {
		b, err = tx.CreateBattle(ctx, battle)
		return err
	})
	return b, err
}

func (s *Store) UpdateBattle(ctx context.Context, battle domain.Battle) error {
	return s.write(ctx, func(tx repository.Tx) error {
		return tx.UpdateBattle(ctx, battle)
	})
}

func (s *Store) GetMissionTemplate(ctx context.Context, id uint64) (m *domain.MissionTemplate, err error) {
	err = s.read(func(v *view) error {
		m, err = v.GetMissionTemplate(ctx, id)
		return err
	})
	return m, err
}

func (s *Store) ListMissionTemplates(ctx context.Context) (out []domain.MissionTemplate, err error) {
	err = s.read(func(v *view) error {
		out, err = v.ListMissionTemplates(ctx)
		return err
	})
	return out, err
}

func (s *Store) CreateMissionTemplate(ctx context.Context, mission domain.MissionTemplate) error {
	return s.write(ctx, func(tx repository.Tx) error {
		return tx.CreateMissionTemplate(ctx, mission)
	})
}

func (s *Store) GetPlayerMission(ctx context.Context, player string, missionID uint64) (pm *domain.PlayerMission, err error) {
	err = s.read(func(v *view) error {
		pm, err = v.GetPlayerMission(ctx, player, missionID)
		return err
	})
	return pm, err
}

func (s *Store) SavePlayerMission(ctx context.Context, mission domain.PlayerMission) error {
	return s.write(ctx, func(tx repository.Tx) error {
		return tx.SavePlayerMission(ctx, mission)
	})
}

func (s *Store) ListPlayerMissions(ctx context.Context, player string, status domain.MissionStatus) (out []domain.PlayerMission, err error) {
	err = s.read(func(v *view) error {
		out, err = v.ListPlayerMissions(ctx, player, status)
		return err
	})
	return out, err
}

func (s *Store) ListCompletedMissionIDs(ctx context.Context, player string) (ids []uint64, err error) {
	err = s.read(func(v *view) error {
		ids, err = v.ListCompletedMissionIDs(ctx, player)
		return err
	})
	return ids, err
}

func (s *Store) AddCompletedMission(ctx context.Context, player string, missionID uint64) error {
	return s.write(ctx, func(tx repository.Tx) error {
		return tx.AddCompletedMission(ctx, player, missionID)
	})
}

func (s *Store) GetPlatformStats(ctx context.Context) (st domain.PlatformStats, err error) {
	err = s.read(func(v *view) error {
		st, err = v.GetPlatformStats(ctx)
		return err
	})
	return st, err
}
