package quest

// Log messages
const (
	LogMsgMissionStarted     = "Mission started"
	LogMsgObjectiveCompleted = "Objective completed"
	LogMsgMissionCompleted   = "Mission completed"
	LogMsgQuestRejected      = "Quest operation rejected"
)

// lockKeyFormat scopes the per-player mutex in the shared lock manager
const lockKeyFormat = "player:%s"

// MintSourceReward tags assets minted by mission rewards
const MintSourceReward = "reward"
