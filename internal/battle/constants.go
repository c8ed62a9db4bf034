package battle

// Log messages
const (
	LogMsgBattleInitiated = "Battle initiated"
	LogMsgBattleAccepted  = "Battle accepted"
	LogMsgMoveSubmitted   = "Battle move submitted"
	LogMsgBattleResolved  = "Battle resolved"
	LogMsgBattleRejected  = "Battle operation rejected"
)

// lockKeyFormat scopes the per-battle mutex in the shared lock manager
const lockKeyFormat = "battle:%d"
