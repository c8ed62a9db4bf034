package player

// Log messages
const (
	LogMsgRegisterCalled    = "RegisterPlayer called"
	LogMsgPlayerRegistered  = "Player registered"
	LogMsgExperienceGranted = "Experience granted"
	LogMsgPlayerRejected    = "Player operation rejected"
)

// lockKeyFormat matches the quest engine's per-player key so experience grants
// and mission progress never interleave.
const lockKeyFormat = "player:%s"
