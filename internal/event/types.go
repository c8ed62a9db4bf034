package event

import "github.com/osse101/stardust-engine/internal/domain"

// Game event types
const (
	PlayerRegistered   Type = domain.EventTypePlayerRegistered
	ExperienceGained   Type = domain.EventTypeExperienceGained
	AssetMinted        Type = domain.EventTypeAssetMinted
	AssetTransferred   Type = domain.EventTypeAssetTransferred
	BattleInitiated    Type = domain.EventTypeBattleInitiated
	BattleAccepted     Type = domain.EventTypeBattleAccepted
	BattleMoveMade     Type = domain.EventTypeBattleMoveMade
	BattleResolved     Type = domain.EventTypeBattleResolved
	MissionCreated     Type = domain.EventTypeMissionCreated
	MissionStarted     Type = domain.EventTypeMissionStarted
	ObjectiveCompleted Type = domain.EventTypeObjectiveCompleted
	MissionCompleted   Type = domain.EventTypeMissionCompleted
)

// AllTypes returns every game event type
func AllTypes() []Type {
	types := make([]Type, 0, len(domain.AllEventTypes))
	for _, t := range domain.AllEventTypes {
		types = append(types, Type(t))
	}
	return types
}
