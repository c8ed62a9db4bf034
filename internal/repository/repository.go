package repository

import (
	"context"

	"github.com/osse101/stardust-engine/internal/domain"
)

// Players persists player records
type Players interface {
	// GetPlayer returns domain.ErrPlayerNotFound when the address is not registered
	GetPlayer(ctx context.Context, address string) (*domain.Player, error)
	// CreatePlayer returns domain.ErrAlreadyRegistered on a duplicate address
	CreatePlayer(ctx context.Context, player domain.Player) error
	UpdatePlayer(ctx context.Context, player domain.Player) error
}

// Assets persists game assets
type Assets interface {
	// GetAsset returns domain.ErrAssetNotFound for unknown ids
	GetAsset(ctx context.Context, id uint64) (*domain.GameAsset, error)
	ListAssetsByOwner(ctx context.Context, owner string) ([]domain.GameAsset, error)
	// CreateAsset allocates the next asset id and returns the stored asset
	CreateAsset(ctx context.Context, asset domain.GameAsset) (*domain.GameAsset, error)
	UpdateAsset(ctx context.Context, asset domain.GameAsset) error
}

// Battles persists battles and their move logs
type Battles interface {
	// GetBattle returns domain.ErrBattleNotFound for unknown ids
	GetBattle(ctx context.Context, id uint64) (*domain.Battle, error)
	ListBattleIDsByPlayer(ctx context.Context, address string) ([]uint64, error)
	// CreateBattle allocates the next battle id and returns the stored battle
	CreateBattle(ctx context.Context, battle domain.Battle) (*domain.Battle, error)
	// UpdateBattle replaces mutable battle state and appends moves not yet stored
	UpdateBattle(ctx context.Context, battle domain.Battle) error
}

// Missions persists mission templates and per-player mission state
type Missions interface {
	// GetMissionTemplate returns domain.ErrMissionNotFound for unknown ids
	GetMissionTemplate(ctx context.Context, id uint64) (*domain.MissionTemplate, error)
	ListMissionTemplates(ctx context.Context) ([]domain.MissionTemplate, error)
	// CreateMissionTemplate returns domain.ErrMissionExists when the id is taken
	CreateMissionTemplate(ctx context.Context, mission domain.MissionTemplate) error

	// GetPlayerMission returns domain.ErrPlayerMissionNotFound when the player never started it
	GetPlayerMission(ctx context.Context, player string, missionID uint64) (*domain.PlayerMission, error)
	SavePlayerMission(ctx context.Context, mission domain.PlayerMission) error
	ListPlayerMissions(ctx context.Context, player string, status domain.MissionStatus) ([]domain.PlayerMission, error)
	ListCompletedMissionIDs(ctx context.Context, player string) ([]uint64, error)
	AddCompletedMission(ctx context.Context, player string, missionID uint64) error
}

// Stats exposes registry-wide totals
type Stats interface {
	GetPlatformStats(ctx context.Context) (domain.PlatformStats, error)
}

// Repository groups every registry
type Repository interface {
	Players
	Assets
	Battles
	Missions
	Stats
}
