package event

import (
	"github.com/osse101/stardust-engine/internal/domain"
)

// Typed event payloads. Every game event carries the address it concerns in
// Metadata[MetadataKeyPlayer] so sinks can index it without decoding the payload.

// PlayerRegisteredPayloadV1 is the payload for player.registered
type PlayerRegisteredPayloadV1 struct {
	Address   string `json:"address"`
	Points    uint64 `json:"points"`
	Timestamp int64  `json:"timestamp"`
}

// ExperienceGainedPayloadV1 is the payload for player.experience_gained
type ExperienceGainedPayloadV1 struct {
	Address    string `json:"address"`
	Amount     uint64 `json:"amount"`
	Experience uint64 `json:"experience"`
	OldLevel   uint32 `json:"old_level"`
	NewLevel   uint32 `json:"new_level"`
}

// AssetMintedPayloadV1 is the payload for asset.minted
type AssetMintedPayloadV1 struct {
	AssetID   uint64           `json:"asset_id"`
	Owner     string           `json:"owner"`
	AssetType domain.AssetType `json:"asset_type"`
	Rarity    domain.Rarity    `json:"rarity"`
	Name      string           `json:"name"`
	Source    string           `json:"source"`
}

// AssetTransferredPayloadV1 is the payload for asset.transferred
type AssetTransferredPayloadV1 struct {
	AssetID uint64 `json:"asset_id"`
	From    string `json:"from"`
	To      string `json:"to"`
}

// BattleInitiatedPayloadV1 is the payload for battle.initiated
type BattleInitiatedPayloadV1 struct {
	BattleID       uint64            `json:"battle_id"`
	Attacker       string            `json:"attacker"`
	Defender       string            `json:"defender"`
	BattleType     domain.BattleKind `json:"battle_type"`
	AttackerAssets []uint64          `json:"attacker_assets"`
}

// BattleAcceptedPayloadV1 is the payload for battle.accepted
type BattleAcceptedPayloadV1 struct {
	BattleID       uint64   `json:"battle_id"`
	Defender       string   `json:"defender"`
	DefenderAssets []uint64 `json:"defender_assets"`
}

// BattleMoveMadePayloadV1 is the payload for battle.move_made
type BattleMoveMadePayloadV1 struct {
	BattleID    uint64          `json:"battle_id"`
	Turn        uint32          `json:"turn"`
	Player      string          `json:"player"`
	AssetID     uint64          `json:"asset_id"`
	MoveType    domain.MoveKind `json:"move_type"`
	TargetAsset *uint64         `json:"target_asset,omitempty"`
}

// BattleResolvedPayloadV1 is the payload for battle.resolved
type BattleResolvedPayloadV1 struct {
	BattleID      uint64            `json:"battle_id"`
	BattleType    domain.BattleKind `json:"battle_type"`
	Winner        string            `json:"winner"`
	Loser         string            `json:"loser"`
	AttackerPower uint64            `json:"attacker_power"`
	DefenderPower uint64            `json:"defender_power"`
	Moves         int               `json:"moves"`
}

// MissionCreatedPayloadV1 is the payload for mission.created
type MissionCreatedPayloadV1 struct {
	MissionID uint64 `json:"mission_id"`
	Name      string `json:"name"`
	Chapter   uint32 `json:"chapter"`
}

// MissionStartedPayloadV1 is the payload for mission.started
type MissionStartedPayloadV1 struct {
	MissionID uint64 `json:"mission_id"`
	Player    string `json:"player"`
}

// ObjectiveCompletedPayloadV1 is the payload for mission.objective_completed
type ObjectiveCompletedPayloadV1 struct {
	MissionID   uint64 `json:"mission_id"`
	Player      string `json:"player"`
	ObjectiveID uint64 `json:"objective_id"`
	Progress    uint32 `json:"progress"`
}

// MissionCompletedPayloadV1 is the payload for mission.completed
type MissionCompletedPayloadV1 struct {
	MissionID uint64              `json:"mission_id"`
	Player    string              `json:"player"`
	Chapter   uint32              `json:"chapter"`
	Rewards   []domain.RewardSpec `json:"rewards"`
}

func newEvent(t Type, player string, payload interface{}) Event {
	return Event{
		Version:  EventSchemaVersion,
		Type:     t,
		Payload:  payload,
		Metadata: Metadata{MetadataKeyPlayer: player},
	}
}

// Type-safe event constructors

// NewPlayerRegisteredEvent creates a player.registered event
func NewPlayerRegisteredEvent(p domain.Player) Event {
	return newEvent(PlayerRegistered, p.Address, PlayerRegisteredPayloadV1{
		Address:   p.Address,
		Points:    p.Points,
		Timestamp: p.RegisteredAt.Unix(),
	})
}

// NewExperienceGainedEvent creates a player.experience_gained event
func NewExperienceGainedEvent(p domain.Player, amount uint64, oldLevel uint32) Event {
	return newEvent(ExperienceGained, p.Address, ExperienceGainedPayloadV1{
		Address:    p.Address,
		Amount:     amount,
		Experience: p.Experience,
		OldLevel:   oldLevel,
		NewLevel:   p.Level,
	})
}

// NewAssetMintedEvent creates an asset.minted event. Source is "mint" or "reward".
func NewAssetMintedEvent(a domain.GameAsset, source string) Event {
	return newEvent(AssetMinted, a.Owner, AssetMintedPayloadV1{
		AssetID:   a.ID,
		Owner:     a.Owner,
		AssetType: a.Type,
		Rarity:    a.Rarity,
		Name:      a.Name,
		Source:    source,
	})
}

// NewAssetTransferredEvent creates an asset.transferred event
func NewAssetTransferredEvent(assetID uint64, from, to string) Event {
	return newEvent(AssetTransferred, from, AssetTransferredPayloadV1{
		AssetID: assetID,
		From:    from,
		To:      to,
	})
}

// NewBattleInitiatedEvent creates a battle.initiated event
func NewBattleInitiatedEvent(b domain.Battle) Event {
	return newEvent(BattleInitiated, b.Attacker, BattleInitiatedPayloadV1{
		BattleID:       b.ID,
		Attacker:       b.Attacker,
		Defender:       b.Defender,
		BattleType:     b.Kind,
		AttackerAssets: b.AttackerAssets,
	})
}

// NewBattleAcceptedEvent creates a battle.accepted event
func NewBattleAcceptedEvent(b domain.Battle) Event {
	return newEvent(BattleAccepted, b.Defender, BattleAcceptedPayloadV1{
		BattleID:       b.ID,
		Defender:       b.Defender,
		DefenderAssets: b.DefenderAssets,
	})
}

// NewBattleMoveMadeEvent creates a battle.move_made event
func NewBattleMoveMadeEvent(battleID uint64, m domain.BattleMove) Event {
	return newEvent(BattleMoveMade, m.Player, BattleMoveMadePayloadV1{
		BattleID:    battleID,
		Turn:        m.Turn,
		Player:      m.Player,
		AssetID:     m.AssetID,
		MoveType:    m.Kind,
		TargetAsset: m.TargetAsset,
	})
}

// NewBattleResolvedEvent creates a battle.resolved event
func NewBattleResolvedEvent(b domain.Battle, outcome domain.BattleOutcome) Event {
	return newEvent(BattleResolved, outcome.Winner, BattleResolvedPayloadV1{
		BattleID:      b.ID,
		BattleType:    b.Kind,
		Winner:        outcome.Winner,
		Loser:         outcome.Loser,
		AttackerPower: outcome.AttackerPower,
		DefenderPower: outcome.DefenderPower,
		Moves:         len(b.Moves),
	})
}

// NewMissionCreatedEvent creates a mission.created event
func NewMissionCreatedEvent(m domain.MissionTemplate, admin string) Event {
	return newEvent(MissionCreated, admin, MissionCreatedPayloadV1{
		MissionID: m.ID,
		Name:      m.Name,
		Chapter:   m.Chapter,
	})
}

// NewMissionStartedEvent creates a mission.started event
func NewMissionStartedEvent(pm domain.PlayerMission) Event {
	return newEvent(MissionStarted, pm.Player, MissionStartedPayloadV1{
		MissionID: pm.MissionID,
		Player:    pm.Player,
	})
}

// NewObjectiveCompletedEvent creates a mission.objective_completed event
func NewObjectiveCompletedEvent(pm domain.PlayerMission, objectiveID uint64) Event {
	return newEvent(ObjectiveCompleted, pm.Player, ObjectiveCompletedPayloadV1{
		MissionID:   pm.MissionID,
		Player:      pm.Player,
		ObjectiveID: objectiveID,
		Progress:    pm.Progress,
	})
}

// NewMissionCompletedEvent creates a mission.completed event. Rewards that
// cannot be serialized are left out of the payload.
func NewMissionCompletedEvent(pm domain.PlayerMission, m domain.MissionTemplate) Event {
	specs, _ := domain.SpecsFromRewards(m.Rewards)
	return newEvent(MissionCompleted, pm.Player, MissionCompletedPayloadV1{
		MissionID: pm.MissionID,
		Player:    pm.Player,
		Chapter:   m.Chapter,
		Rewards:   specs,
	})
}
