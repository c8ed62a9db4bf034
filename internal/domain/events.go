package domain

// Event type constants used across the application for event bus subscriptions
// and metrics tracking.
//
// Event types follow the pattern: <entity>.<action> (e.g., "battle.resolved")
const (
	// EventTypePlayerRegistered is published when an address registers
	EventTypePlayerRegistered = "player.registered"

	// EventTypeExperienceGained is published when an admin grants experience
	EventTypeExperienceGained = "player.experience_gained"

	// EventTypeAssetMinted is published when a player mints an asset
	EventTypeAssetMinted = "asset.minted"

	// EventTypeAssetTransferred is published when an asset changes owner
	EventTypeAssetTransferred = "asset.transferred"

	// EventTypeBattleInitiated is published when an attacker opens a challenge
	EventTypeBattleInitiated = "battle.initiated"

	// EventTypeBattleAccepted is published when the defender commits assets
	EventTypeBattleAccepted = "battle.accepted"

	// EventTypeBattleMoveMade is published for every accepted move
	EventTypeBattleMoveMade = "battle.move_made"

	// EventTypeBattleResolved is published once per battle with the winner and loser
	EventTypeBattleResolved = "battle.resolved"

	// EventTypeMissionCreated is published when a template enters the catalog
	EventTypeMissionCreated = "mission.created"

	// EventTypeMissionStarted is published when a player starts a mission
	EventTypeMissionStarted = "mission.started"

	// EventTypeObjectiveCompleted is published when an objective is recorded
	EventTypeObjectiveCompleted = "mission.objective_completed"

	// EventTypeMissionCompleted is published after rewards are applied
	EventTypeMissionCompleted = "mission.completed"
)

// AllEventTypes lists every event type the engine publishes, in lifecycle order
var AllEventTypes = []string{
	EventTypePlayerRegistered,
	EventTypeExperienceGained,
	EventTypeAssetMinted,
	EventTypeAssetTransferred,
	EventTypeBattleInitiated,
	EventTypeBattleAccepted,
	EventTypeBattleMoveMade,
	EventTypeBattleResolved,
	EventTypeMissionCreated,
	EventTypeMissionStarted,
	EventTypeObjectiveCompleted,
	EventTypeMissionCompleted,
}
